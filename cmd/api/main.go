package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	_ "github.com/rafabene/ladino-web/docs"
	"github.com/rafabene/ladino-web/internal/domain/ports"
	httphandlers "github.com/rafabene/ladino-web/internal/handlers/http"
	"github.com/rafabene/ladino-web/internal/handlers/middleware"
	"github.com/rafabene/ladino-web/internal/infrastructure/config"
	"github.com/rafabene/ladino-web/internal/infrastructure/i18n"
	"github.com/rafabene/ladino-web/internal/infrastructure/logging"
	"github.com/rafabene/ladino-web/internal/infrastructure/metrics"
	"github.com/rafabene/ladino-web/internal/infrastructure/persistence/sqlstore"
	"github.com/rafabene/ladino-web/internal/infrastructure/security"
	"github.com/rafabene/ladino-web/internal/infrastructure/session"
	"github.com/rafabene/ladino-web/internal/services"
)

const shutdownTimeout = 5 * time.Second

// @title Ladino API
// @version 1.0
// @description Análises de backtest publicadas pela comunidade do LadinoBot.
// @BasePath /api/v1
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	logger := logging.NewSlogLogger(cfg.Logging.Level)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("ladino web stopped", "error", err)
		os.Exit(1)
	}
	logger.Info("server exited")
}

func run(ctx context.Context, cfg *config.Config, logger ports.Logger) error {
	logger.Info("starting ladino web",
		"env", cfg.Env,
		"db_driver", cfg.Database.Driver,
	)

	db, err := sqlstore.NewDatabaseConnection(&cfg.Database, cfg.Logging.Level, logger)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer closeDB(db, logger)

	if cfg.Database.Migrate {
		if err := sqlstore.Migrate(ctx, db, cfg.Database.Driver); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}
	}

	router, err := buildRouter(cfg, db, logger)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server starting", "host", cfg.Server.Host, "port", cfg.Server.Port)
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return nil
}

// buildRouter liga repositórios, serviços e handlers
func buildRouter(cfg *config.Config, db *gorm.DB, logger ports.Logger) (*gin.Engine, error) {
	translations, err := i18n.NewService(cfg.I18n.LocalesDir, cfg.I18n.DefaultLanguage)
	if err != nil {
		return nil, fmt.Errorf("loading translations: %w", err)
	}
	logger.Info("translations loaded",
		"default_language", translations.DefaultLanguage(),
		"languages", translations.Languages(),
	)

	hasher, err := security.NewPasswordHasher(cfg.Security.PasswordHasher, cfg.Security.BcryptCost)
	if err != nil {
		return nil, err
	}

	uow := sqlstore.NewUnitOfWork(db)
	userService := services.NewUserService(
		sqlstore.NewUserRepository(db), uow, hasher, session.NewStore(cfg.Session.TTL), logger,
	)
	analysisService := services.NewAnalysisService(sqlstore.NewAnalysisRepository(db), uow, logger)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	return httphandlers.NewRouter(httphandlers.RouterDeps{
		Config:          cfg,
		Logger:          logger,
		I18n:            translations,
		Metrics:         metrics.New(),
		UserService:     userService,
		AnalysisService: analysisService,
		Tokens:          session.NewTokenCodec(cfg.Session.Secret, cfg.Session.TTL),
		LoginLimiter:    middleware.NewLoginLimiter(cfg.Security.LoginRate, cfg.Security.LoginBurst, 10*time.Minute),
	})
}

func closeDB(db *gorm.DB, logger ports.Logger) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		logger.Warn("closing database", "error", err)
	}
}
