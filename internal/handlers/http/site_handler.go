package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SiteHandler atende as páginas institucionais
type SiteHandler struct {
	pages *pages
}

// NewSiteHandler cria um novo SiteHandler
func NewSiteHandler(p *pages) *SiteHandler {
	return &SiteHandler{pages: p}
}

func (h *SiteHandler) Home(c *gin.Context) {
	h.pages.render(c, http.StatusOK, h.pages.newPage(c, "index", "nav.home"))
}

func (h *SiteHandler) Downloads(c *gin.Context) {
	h.pages.render(c, http.StatusOK, h.pages.newPage(c, "downloads", "downloads.title"))
}

func (h *SiteHandler) FAQ(c *gin.Context) {
	h.pages.render(c, http.StatusOK, h.pages.newPage(c, "faq", "faq.title"))
}

// NotFound responde rotas desconhecidas com a página de erro
func (h *SiteHandler) NotFound(c *gin.Context) {
	page := h.pages.newPage(c, "error", "error_page.title")
	page.ErrorKey = "error.not_found.title"
	h.pages.render(c, http.StatusNotFound, page)
}
