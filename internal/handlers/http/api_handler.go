package http

import (
	errs "errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/ladino-web/internal/domain/errors"
	"github.com/rafabene/ladino-web/internal/domain/ports"
	"github.com/rafabene/ladino-web/internal/domain/repositories"
	"github.com/rafabene/ladino-web/internal/handlers/dto"
	"github.com/rafabene/ladino-web/internal/handlers/middleware"
	"github.com/rafabene/ladino-web/internal/services"
)

// APIHandler expõe as análises publicadas em JSON
type APIHandler struct {
	analysisService *services.AnalysisService
	logger          ports.Logger
}

// NewAPIHandler cria um novo APIHandler
func NewAPIHandler(analysisService *services.AnalysisService, logger ports.Logger) *APIHandler {
	return &APIHandler{
		analysisService: analysisService,
		logger:          logger,
	}
}

// ListAnalyses lista as análises ativas
//
//	@Summary		Lista análises
//	@Description	Lista as análises ativas, 20 por página, filtradas por ativo e autor
//	@Tags			analises
//	@Produce		json
//	@Param			pg		query		int		false	"Página (começa em 1)"
//	@Param			ativo	query		string	false	"Ativo negociado"
//	@Param			usuario	query		int		false	"ID do autor"
//	@Success		200		{object}	dto.AnalysisListResponse
//	@Failure		400		{object}	dto.ErrorResponse
//	@Failure		500		{object}	dto.ErrorResponse
//	@Router			/analises [get]
func (h *APIHandler) ListAnalyses(c *gin.Context) {
	filters := repositories.AnalysisFilters{
		Asset: strings.ToUpper(strings.TrimSpace(c.Query("ativo"))),
	}
	if raw := c.Query("usuario"); raw != "" {
		id, ok := parseID(raw)
		if !ok {
			dto.WriteProblem(c, dto.BadRequestErrorResponseI18n(c, "usuario"))
			return
		}
		filters.OwnerID = &id
	}
	current, _ := strconv.Atoi(c.Query("pg"))

	page, err := h.analysisService.ListPage(c.Request.Context(), filters, current, analysesPerPage)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.AnalysisListResponse{
		Items:    dto.ToAnalysisResponses(page.Items),
		Total:    page.Total,
		Page:     page.Page,
		PageSize: page.PageSize,
		Pages:    page.Pages(),
	})
}

// ListAssets conta as análises ativas por ativo
//
//	@Summary	Conta análises por ativo
//	@Tags		analises
//	@Produce	json
//	@Success	200	{array}		dto.AssetCountResponse
//	@Failure	500	{object}	dto.ErrorResponse
//	@Router		/analises/ativos [get]
func (h *APIHandler) ListAssets(c *gin.Context) {
	counts, err := h.analysisService.ListAssetCounts(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAssetCountResponses(counts))
}

// GetAnalysis busca uma análise com os parâmetros do .set
//
//	@Summary	Busca análise
//	@Tags		analises
//	@Produce	json
//	@Param		id	path		int	true	"ID da análise"
//	@Success	200	{object}	dto.AnalysisResponse
//	@Failure	400	{object}	dto.ErrorResponse
//	@Failure	404	{object}	dto.ErrorResponse
//	@Router		/analises/{id} [get]
func (h *APIHandler) GetAnalysis(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		dto.WriteProblem(c, dto.BadRequestErrorResponseI18n(c, "id"))
		return
	}

	analysis, err := h.analysisService.Get(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAnalysisResponse(analysis, true))
}

// DeleteAnalysis desativa uma análise do usuário logado (cookie de sessão do site)
//
//	@Summary	Desativa análise
//	@Tags		analises
//	@Param		id	path	int	true	"ID da análise"
//	@Success	204
//	@Failure	400	{object}	dto.ErrorResponse
//	@Failure	401	{object}	dto.ErrorResponse
//	@Failure	403	{object}	dto.ErrorResponse
//	@Failure	404	{object}	dto.ErrorResponse
//	@Router		/analises/{id} [delete]
func (h *APIHandler) DeleteAnalysis(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		dto.WriteProblem(c, dto.BadRequestErrorResponseI18n(c, "id"))
		return
	}

	if err := h.analysisService.SoftDelete(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// writeError converte erros do domínio em problem documents
func (h *APIHandler) writeError(c *gin.Context, err error) {
	if ve, ok := errors.AsValidation(err); ok {
		dto.WriteProblem(c, dto.ValidationErrorResponseI18n(c, []dto.ValidationError{
			{Field: ve.Field, Message: middleware.Translate(c, ve.Key)},
		}))
		return
	}

	switch {
	case errs.Is(err, errors.ErrAnalysisNotFound):
		dto.WriteProblem(c, dto.NotFoundErrorResponseI18n(c, "Analysis"))
	case errs.Is(err, errors.ErrUserNotFound):
		dto.WriteProblem(c, dto.NotFoundErrorResponseI18n(c, "User"))
	case errs.Is(err, errors.ErrAnalysisIDRequired):
		dto.WriteProblem(c, dto.BadRequestErrorResponseI18n(c, "id"))
	case errs.Is(err, errors.ErrAuthRequired), errs.Is(err, errors.ErrInvalidCredentials):
		dto.WriteProblem(c, dto.UnauthorizedErrorResponseI18n(c))
	case errs.Is(err, errors.ErrForbidden):
		dto.WriteProblem(c, dto.ForbiddenErrorResponseI18n(c))
	case errs.Is(err, errors.ErrEmailAlreadyExists):
		dto.WriteProblem(c, dto.ConflictErrorResponseI18n(c, errors.MessageKey(err)))
	default:
		h.logger.Error("api request failed", "path", c.Request.URL.Path, "error", err)
		dto.WriteProblem(c, dto.InternalErrorResponseI18n(c))
	}
}
