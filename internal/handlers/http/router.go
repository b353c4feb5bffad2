package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/rafabene/ladino-web/internal/domain/ports"
	"github.com/rafabene/ladino-web/internal/handlers/dto"
	"github.com/rafabene/ladino-web/internal/handlers/middleware"
	"github.com/rafabene/ladino-web/internal/handlers/view"
	"github.com/rafabene/ladino-web/internal/infrastructure/config"
	"github.com/rafabene/ladino-web/internal/infrastructure/i18n"
	"github.com/rafabene/ladino-web/internal/infrastructure/metrics"
	"github.com/rafabene/ladino-web/internal/infrastructure/session"
	"github.com/rafabene/ladino-web/internal/services"
)

// RouterDeps reúne o que o roteador precisa
type RouterDeps struct {
	Config          *config.Config
	Logger          ports.Logger
	I18n            *i18n.Service
	Metrics         *metrics.Metrics
	UserService     *services.UserService
	AnalysisService *services.AnalysisService
	Tokens          *session.TokenCodec
	LoginLimiter    *middleware.LoginLimiter
}

// NewRouter monta o gin com as páginas do site, a API JSON e os endpoints operacionais
func NewRouter(deps RouterDeps) (*gin.Engine, error) {
	cfg := deps.Config

	renderer, err := view.NewRenderer()
	if err != nil {
		return nil, err
	}

	router := gin.New()
	router.HTMLRender = renderer
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(deps.Logger, deps.Metrics))

	// Middleware global para adicionar base URL ao contexto
	router.Use(func(c *gin.Context) {
		c.Set(dto.BaseURLContextKey, cfg.Server.BaseURL)
		c.Next()
	})

	// Middleware i18n
	i18nMiddleware := middleware.NewI18nMiddleware(deps.I18n)
	router.Use(i18nMiddleware.DetectLanguage())

	router.Use(middleware.BodyLimit(cfg.Upload.MaxBytes))

	// Sessão e formulário de login (presente em todas as páginas)
	sessions := middleware.NewSessionMiddleware(
		deps.UserService,
		deps.Tokens,
		cfg.Session.CookieName,
		cfg.Session.Secure,
		deps.Logger,
	)
	login := middleware.NewLoginMiddleware(deps.UserService, sessions, deps.LoginLimiter, deps.Metrics, deps.Logger)
	router.Use(sessions.Resume(), login.Handle())

	p := newPages(deps.I18n, deps.Logger)
	siteHandler := NewSiteHandler(p)
	analysisHandler := NewAnalysisHandler(deps.AnalysisService, p, deps.Metrics, deps.Logger)
	userHandler := NewUserHandler(deps.UserService, sessions, p, deps.Metrics)
	apiHandler := NewAPIHandler(deps.AnalysisService, deps.Logger)

	// Páginas aceitam POST porque o login do topo posta na própria URL
	pageMethods := []string{http.MethodGet, http.MethodPost}

	router.Match(pageMethods, "/", siteHandler.Home)
	router.Match(pageMethods, "/downloads", siteHandler.Downloads)
	router.Match(pageMethods, "/faq", siteHandler.FAQ)
	router.Match(pageMethods, "/analises", analysisHandler.List)
	router.Match(pageMethods, "/analise", analysisHandler.Show)
	router.Match(pageMethods, "/analise-novo", analysisHandler.Form)
	router.Match(pageMethods, "/analise-alterar", analysisHandler.Form)
	router.POST("/analise-excluir", analysisHandler.Delete)
	router.GET("/arquivo-set", analysisHandler.DownloadSet)
	router.Match(pageMethods, "/usuario-novo", userHandler.Register)
	router.Match(pageMethods, "/usuario-alterar", userHandler.Profile)
	router.GET("/logout", userHandler.Logout)
	router.NoRoute(siteHandler.NotFound)

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"env":    cfg.Env,
		})
	})
	router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API routes
	v1 := router.Group("/api/v1", middleware.CORS(cfg.CORS.AllowedOrigins))
	{
		analyses := v1.Group("/analises")
		{
			analyses.GET("", apiHandler.ListAnalyses)
			analyses.GET("/ativos", apiHandler.ListAssets)
			analyses.GET("/:id", apiHandler.GetAnalysis)
			analyses.DELETE("/:id", apiHandler.DeleteAnalysis)
		}
		// preflight: o middleware CORS responde antes deste handler
		v1.OPTIONS("/*path", func(c *gin.Context) {
			c.AbortWithStatus(http.StatusNoContent)
		})
	}

	return router, nil
}
