package http

import (
	errs "errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/ladino-web/internal/domain/errors"
	"github.com/rafabene/ladino-web/internal/domain/ports"
	"github.com/rafabene/ladino-web/internal/domain/session"
	"github.com/rafabene/ladino-web/internal/handlers/middleware"
	"github.com/rafabene/ladino-web/internal/handlers/view"
)

// pages monta e renderiza as páginas HTML com o usuário, idioma e alertas da requisição
type pages struct {
	translator view.Translator
	logger     ports.Logger
}

func newPages(translator view.Translator, logger ports.Logger) *pages {
	return &pages{translator: translator, logger: logger}
}

func (p *pages) newPage(c *gin.Context, name, titleKey string) *view.Page {
	page := view.NewPage(p.translator, middleware.Language(c), name, titleKey)
	page.Path = c.Request.URL.Path

	if user, ok := session.UserFrom(c.Request.Context()); ok {
		page.User = user
	}

	// Falha do formulário de login do topo
	if err := middleware.LoginError(c); err != nil {
		page.ErrorKey = messageKey(err)
		page.LoginEmail = c.GetString(middleware.LoginEmailContextKey)
	}
	return page
}

func (p *pages) render(c *gin.Context, status int, page *view.Page) {
	c.HTML(status, page.Name, page)
}

// renderError exibe a página de erro com o status correspondente ao erro
func (p *pages) renderError(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		p.logger.Error("request failed", "path", c.Request.URL.Path, "error", err)
		_ = c.Error(err)
	}

	page := p.newPage(c, "error", "error_page.title")
	page.ErrorKey = messageKey(err)
	p.render(c, status, page)
}

// statusFor traduz os erros de domínio em status HTTP
func statusFor(err error) int {
	var tooLarge *http.MaxBytesError

	switch {
	case errs.Is(err, errors.ErrAnalysisNotFound), errs.Is(err, errors.ErrUserNotFound):
		return http.StatusNotFound
	case errs.Is(err, errors.ErrAuthRequired), errs.Is(err, errors.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errs.Is(err, errors.ErrForbidden):
		return http.StatusForbidden
	case errs.Is(err, errors.ErrEmailAlreadyExists):
		return http.StatusConflict
	case errs.Is(err, errors.ErrTooManyAttempts):
		return http.StatusTooManyRequests
	case errs.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errs.Is(err, errors.ErrAnalysisIDRequired):
		return http.StatusBadRequest
	}

	if _, ok := errors.AsValidation(err); ok {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// messageKey devolve o message ID exibido ao usuário; erros internos ficam com a mensagem genérica
func messageKey(err error) string {
	if key := errors.MessageKey(err); key != "" {
		return key
	}
	var tooLarge *http.MaxBytesError
	if errs.As(err, &tooLarge) {
		return errors.KeyUploadInvalid
	}
	return "error.internal.detail"
}
