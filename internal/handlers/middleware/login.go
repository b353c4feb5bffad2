package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/ladino-web/internal/domain/errors"
	"github.com/rafabene/ladino-web/internal/domain/ports"
	"github.com/rafabene/ladino-web/internal/infrastructure/metrics"
	"github.com/rafabene/ladino-web/internal/services"
)

const (
	loginAttemptContextKey = "login_attempt"
	// LoginErrorContextKey guarda o erro da tentativa de login que falhou
	LoginErrorContextKey = "login_error"
	// LoginEmailContextKey guarda o email digitado, para reexibir no formulário
	LoginEmailContextKey = "login_email"
)

// LoginMiddleware trata o formulário de login presente em todas as páginas (POST com ac=logar)
type LoginMiddleware struct {
	users    *services.UserService
	sessions *SessionMiddleware
	limiter  *LoginLimiter
	metrics  *metrics.Metrics
	logger   ports.Logger
}

// NewLoginMiddleware cria um novo LoginMiddleware
func NewLoginMiddleware(users *services.UserService, sessions *SessionMiddleware, limiter *LoginLimiter, m *metrics.Metrics, logger ports.Logger) *LoginMiddleware {
	return &LoginMiddleware{
		users:    users,
		sessions: sessions,
		limiter:  limiter,
		metrics:  m,
		logger:   logger,
	}
}

// Handle autentica e redireciona para a home; na falha a página é exibida com a mensagem de erro
func (m *LoginMiddleware) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost || c.PostForm("ac") != "logar" {
			c.Next()
			return
		}

		email := c.PostForm("email")
		c.Set(loginAttemptContextKey, true)
		c.Set(LoginEmailContextKey, email)

		if !m.limiter.Allow(c.ClientIP()) {
			m.record("throttled")
			m.logger.Warn("login throttled", "ip", c.ClientIP())
			c.Set(LoginErrorContextKey, errors.ErrTooManyAttempts)
			c.Next()
			return
		}

		user, err := m.users.Login(c.Request.Context(), email, c.PostForm("senha"))
		if err != nil {
			m.record("failure")
			c.Set(LoginErrorContextKey, err)
			c.Next()
			return
		}

		if err := m.sessions.Start(c, user); err != nil {
			m.logger.Error("failed to start session", "error", err)
			c.Set(LoginErrorContextKey, err)
			c.Next()
			return
		}

		m.record("success")
		c.Redirect(http.StatusFound, "/")
		c.Abort()
	}
}

func (m *LoginMiddleware) record(result string) {
	if m.metrics != nil {
		m.metrics.Login(result)
	}
}

// IsLoginAttempt indica que o POST era do formulário de login (e não do formulário da página)
func IsLoginAttempt(c *gin.Context) bool {
	return c.GetBool(loginAttemptContextKey)
}

// LoginError retorna o erro da tentativa de login, se houver
func LoginError(c *gin.Context) error {
	v, ok := c.Get(LoginErrorContextKey)
	if !ok {
		return nil
	}
	err, _ := v.(error)
	return err
}
