package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/ladino-web/internal/domain/errors"
	"github.com/rafabene/ladino-web/internal/domain/session"
	"github.com/rafabene/ladino-web/internal/handlers/middleware"
	"github.com/rafabene/ladino-web/internal/handlers/view"
	"github.com/rafabene/ladino-web/internal/infrastructure/metrics"
	"github.com/rafabene/ladino-web/internal/services"
)

// UserHandler lida com cadastro, alteração e saída de usuários
type UserHandler struct {
	userService *services.UserService
	sessions    *middleware.SessionMiddleware
	pages       *pages
	metrics     *metrics.Metrics
}

// NewUserHandler cria um novo UserHandler
func NewUserHandler(userService *services.UserService, sessions *middleware.SessionMiddleware, p *pages, m *metrics.Metrics) *UserHandler {
	return &UserHandler{
		userService: userService,
		sessions:    sessions,
		pages:       p,
		metrics:     m,
	}
}

// Register cadastra um novo usuário e já abre a sessão dele
func (h *UserHandler) Register(c *gin.Context) {
	page := h.pages.newPage(c, "usuario_form", "user.new_title")
	page.Data = view.UserFormData{}

	if c.Request.Method != http.MethodPost || middleware.IsLoginAttempt(c) {
		h.pages.render(c, http.StatusOK, page)
		return
	}

	var input services.UserInput
	if err := c.ShouldBind(&input); err != nil {
		page.ErrorKey = errors.KeyUserMissing
		h.pages.render(c, http.StatusBadRequest, page)
		return
	}
	page.Data = view.UserFormData{Name: input.Name, Email: input.Email}

	user, err := h.userService.Create(c.Request.Context(), &input)
	if err != nil {
		h.formError(c, page, err)
		return
	}
	h.metrics.UsersRegistered.Inc()

	if err := h.sessions.Start(c, user); err != nil {
		h.pages.renderError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/")
}

// Profile altera nome, email e senha do usuário logado
func (h *UserHandler) Profile(c *gin.Context) {
	current, ok := session.UserFrom(c.Request.Context())
	if !ok {
		h.pages.renderError(c, errors.ErrAuthRequired)
		return
	}

	page := h.pages.newPage(c, "usuario_form", "user.edit_title")
	page.Data = view.UserFormData{Edit: true, Name: current.Name, Email: current.Email.String()}

	if c.Request.Method != http.MethodPost || middleware.IsLoginAttempt(c) {
		h.pages.render(c, http.StatusOK, page)
		return
	}

	var input services.UserInput
	if err := c.ShouldBind(&input); err != nil {
		page.ErrorKey = errors.KeyUserMissing
		h.pages.render(c, http.StatusBadRequest, page)
		return
	}
	input.ID = current.ID
	page.Data = view.UserFormData{Edit: true, Name: input.Name, Email: input.Email}

	user, err := h.userService.Update(c.Request.Context(), &input)
	if err != nil {
		h.formError(c, page, err)
		return
	}

	h.sessions.Refresh(c, user)
	page.User = user
	page.SuccessKey = "user.saved"
	page.Data = view.UserFormData{Edit: true, Name: user.Name, Email: user.Email.String()}
	h.pages.render(c, http.StatusOK, page)
}

// Logout encerra a sessão e volta para a home
func (h *UserHandler) Logout(c *gin.Context) {
	h.sessions.End(c)
	c.Redirect(http.StatusFound, "/")
}

func (h *UserHandler) formError(c *gin.Context, page *view.Page, err error) {
	if !errors.IsUserFacing(err) {
		h.pages.renderError(c, err)
		return
	}
	page.ErrorKey = errors.MessageKey(err)
	h.pages.render(c, statusFor(err), page)
}
