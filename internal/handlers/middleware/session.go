package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/ladino-web/internal/domain/entities"
	"github.com/rafabene/ladino-web/internal/domain/ports"
	"github.com/rafabene/ladino-web/internal/infrastructure/session"
	"github.com/rafabene/ladino-web/internal/services"
)

// SessionIDContextKey guarda o id da sessão da requisição
const SessionIDContextKey = "session_id"

// SessionMiddleware liga o cookie de sessão ao usuário guardado no servidor
type SessionMiddleware struct {
	users      *services.UserService
	tokens     *session.TokenCodec
	cookieName string
	secure     bool
	logger     ports.Logger
}

// NewSessionMiddleware cria um novo SessionMiddleware
func NewSessionMiddleware(users *services.UserService, tokens *session.TokenCodec, cookieName string, secure bool, logger ports.Logger) *SessionMiddleware {
	return &SessionMiddleware{
		users:      users,
		tokens:     tokens,
		cookieName: cookieName,
		secure:     secure,
		logger:     logger,
	}
}

// Resume carrega o usuário da sessão no contexto da requisição; sem sessão a requisição segue anônima
func (m *SessionMiddleware) Resume() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(m.cookieName)
		if err != nil || token == "" {
			c.Next()
			return
		}

		sessionID, err := m.tokens.Parse(token)
		if err != nil {
			m.logger.Debug("discarding invalid session cookie", "error", err)
			m.expireCookie(c)
			c.Next()
			return
		}

		ctx, _, ok := m.users.ResumeSession(c.Request.Context(), sessionID)
		if ok {
			c.Request = c.Request.WithContext(ctx)
			c.Set(SessionIDContextKey, sessionID)
		}

		c.Next()
	}
}

// Start abre uma nova sessão para o usuário e grava o cookie
func (m *SessionMiddleware) Start(c *gin.Context, user *entities.User) error {
	if previous := c.GetString(SessionIDContextKey); previous != "" {
		m.users.ClearSession(previous)
	}

	sessionID, token, err := m.tokens.Issue()
	if err != nil {
		return err
	}

	m.users.PersistToSession(sessionID, user)
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.cookieName, token, int(m.tokens.TTL().Seconds()), "/", "", m.secure, true)
	c.Set(SessionIDContextKey, sessionID)
	return nil
}

// Refresh regrava o usuário na sessão atual (após alterar o cadastro)
func (m *SessionMiddleware) Refresh(c *gin.Context, user *entities.User) {
	if sessionID := c.GetString(SessionIDContextKey); sessionID != "" {
		m.users.PersistToSession(sessionID, user)
	}
}

// End encerra a sessão atual e apaga o cookie
func (m *SessionMiddleware) End(c *gin.Context) {
	if sessionID := c.GetString(SessionIDContextKey); sessionID != "" {
		m.users.ClearSession(sessionID)
	}
	m.expireCookie(c)
}

func (m *SessionMiddleware) expireCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.cookieName, "", -1, "/", "", m.secure, true)
}
