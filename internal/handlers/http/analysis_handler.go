package http

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/ladino-web/internal/domain/entities"
	"github.com/rafabene/ladino-web/internal/domain/errors"
	"github.com/rafabene/ladino-web/internal/domain/ports"
	"github.com/rafabene/ladino-web/internal/domain/repositories"
	"github.com/rafabene/ladino-web/internal/domain/session"
	"github.com/rafabene/ladino-web/internal/handlers/middleware"
	"github.com/rafabene/ladino-web/internal/handlers/view"
	"github.com/rafabene/ladino-web/internal/infrastructure/metrics"
	"github.com/rafabene/ladino-web/internal/services"
)

const analysesPerPage = 20

// AnalysisHandler atende as páginas de análises
type AnalysisHandler struct {
	analyses *services.AnalysisService
	pages    *pages
	metrics  *metrics.Metrics
	logger   ports.Logger
}

// NewAnalysisHandler cria um novo AnalysisHandler
func NewAnalysisHandler(analyses *services.AnalysisService, p *pages, m *metrics.Metrics, logger ports.Logger) *AnalysisHandler {
	return &AnalysisHandler{
		analyses: analyses,
		pages:    p,
		metrics:  m,
		logger:   logger,
	}
}

// List exibe as análises ativas filtradas por ativo e autor, 20 por página
func (h *AnalysisHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	filters := repositories.AnalysisFilters{
		Asset: strings.ToUpper(strings.TrimSpace(c.Query("ativo"))),
	}
	var ownerID int64
	if id, ok := parseID(c.Query("usuario")); ok {
		ownerID = id
		filters.OwnerID = &ownerID
	}
	current, _ := strconv.Atoi(c.Query("pg"))

	result, err := h.analyses.ListPage(ctx, filters, current, analysesPerPage)
	if err != nil {
		h.pages.renderError(c, err)
		return
	}

	assets, err := h.analyses.ListAssetCounts(ctx)
	if err != nil {
		h.pages.renderError(c, err)
		return
	}

	page := h.pages.newPage(c, "analises", "analyses.title")
	page.Data = &view.AnalysesData{
		Items:   result.Items,
		Assets:  assets,
		Asset:   filters.Asset,
		OwnerID: ownerID,
		Pager: view.Pager{
			Page:  page,
			Links: view.Paginate(result.Pages(), result.Page, c.Request.URL.Query()),
		},
	}
	h.pages.render(c, http.StatusOK, page)
}

// Show exibe uma análise com o relatório, os parâmetros e os valores calculados
func (h *AnalysisHandler) Show(c *gin.Context) {
	id, ok := parseID(c.Query("analise"))
	if !ok {
		h.pages.renderError(c, errors.ErrAnalysisIDRequired)
		return
	}

	analysis, err := h.analyses.Get(c.Request.Context(), id)
	if err != nil {
		h.pages.renderError(c, err)
		return
	}

	page := h.pages.newPage(c, "analise", "analyses.details")
	page.Data = analysis
	if c.Query("salvo") != "" && page.ErrorKey == "" {
		page.SuccessKey = "analysis.saved"
	}
	h.pages.render(c, http.StatusOK, page)
}

// Form exibe e processa o formulário de análise; o parâmetro "analise" seleciona a alteração
func (h *AnalysisHandler) Form(c *gin.Context) {
	ctx := c.Request.Context()

	user, ok := session.UserFrom(ctx)
	if !ok {
		h.pages.renderError(c, errors.ErrAuthRequired)
		return
	}

	var existing *entities.Analysis
	titleKey := "analysis.new_title"
	if raw := c.Query("analise"); raw != "" {
		id, ok := parseID(raw)
		if !ok {
			h.pages.renderError(c, errors.ErrAnalysisNotFound)
			return
		}
		stored, err := h.analyses.Get(ctx, id)
		if err != nil {
			h.pages.renderError(c, err)
			return
		}
		if !stored.IsOwnedBy(user.ID) {
			h.pages.renderError(c, errors.ErrForbidden)
			return
		}
		existing = &stored.Analysis
		titleKey = "analysis.edit_title"
	}

	page := h.pages.newPage(c, "analise_form", titleKey)
	formData := view.NewAnalysisFormData(existing)
	page.Data = formData

	if c.Request.Method != http.MethodPost || middleware.IsLoginAttempt(c) {
		h.pages.render(c, http.StatusOK, page)
		return
	}

	var input services.AnalysisInput
	if err := c.ShouldBind(&input); err != nil {
		h.logger.Warn("failed to bind analysis form", "error", err)
		page.ErrorKey = errors.KeyUploadInvalid
		h.pages.render(c, http.StatusBadRequest, page)
		return
	}
	page.Data = withSubmitted(formData, input)

	uploads, err := readUploads(c)
	if err != nil {
		h.logger.Warn("failed to read uploads", "error", err)
		page.ErrorKey = errors.KeyUploadInvalid
		h.pages.render(c, statusFor(err), page)
		return
	}

	analysis, err := h.analyses.FromSubmittedForm(existing, input, uploads)
	if err != nil {
		h.formError(c, page, err)
		return
	}

	if existing == nil {
		id, err := h.analyses.Create(ctx, analysis)
		if err != nil {
			h.formError(c, page, err)
			return
		}
		analysis.ID = id
		h.metrics.AnalysesCreated.Inc()
	} else {
		if err := h.analyses.Update(ctx, analysis); err != nil {
			h.formError(c, page, err)
			return
		}
		h.metrics.AnalysesUpdated.Inc()
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("/analise?analise=%d&salvo=1", analysis.ID))
}

// formError reexibe o formulário com a mensagem; erros internos vão para a página de erro
func (h *AnalysisHandler) formError(c *gin.Context, page *view.Page, err error) {
	if !errors.IsUserFacing(err) {
		h.pages.renderError(c, err)
		return
	}
	page.ErrorKey = errors.MessageKey(err)
	h.pages.render(c, statusFor(err), page)
}

// Delete desativa uma análise do usuário logado
func (h *AnalysisHandler) Delete(c *gin.Context) {
	id, ok := parseID(c.Query("analise"))
	if !ok {
		h.pages.renderError(c, errors.ErrAnalysisIDRequired)
		return
	}

	if middleware.IsLoginAttempt(c) {
		c.Redirect(http.StatusFound, fmt.Sprintf("/analise?analise=%d", id))
		return
	}

	if err := h.analyses.SoftDelete(c.Request.Context(), id); err != nil {
		h.pages.renderError(c, err)
		return
	}

	userID, _ := session.UserID(c.Request.Context())
	c.Redirect(http.StatusFound, fmt.Sprintf("/analises?usuario=%d", userID))
}

// DownloadSet entrega o arquivo .set da análise como anexo.
// O conteúdo sai sempre em UTF-8: arquivos UTF-16 são convertidos quando gravados.
func (h *AnalysisHandler) DownloadSet(c *gin.Context) {
	id, ok := parseID(c.Query("analise"))
	if !ok {
		h.pages.renderError(c, errors.ErrAnalysisIDRequired)
		return
	}

	analysis, err := h.analyses.Get(c.Request.Context(), id)
	if err != nil {
		h.pages.renderError(c, err)
		return
	}

	data := []byte(analysis.ConfigData)
	c.DataFromReader(http.StatusOK, int64(len(data)), "application/octet-stream", bytes.NewReader(data),
		map[string]string{"Content-Disposition": "attachment; filename=" + analysis.SetFileName()})
}

func parseID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// withSubmitted reexibe no formulário o que foi digitado
func withSubmitted(data view.AnalysisFormData, input services.AnalysisInput) view.AnalysisFormData {
	fields := []struct {
		value *string
		dest  *string
	}{
		{input.Description, &data.Description},
		{input.Asset, &data.Asset},
		{input.StartDate, &data.StartDate},
		{input.EndDate, &data.EndDate},
		{input.InitialDeposit, &data.InitialDeposit},
		{input.TotalGain, &data.TotalGain},
		{input.TradeCount, &data.TradeCount},
		{input.MaxVolume, &data.MaxVolume},
		{input.Status, &data.Status},
	}
	for _, f := range fields {
		if f.value != nil {
			*f.dest = *f.value
		}
	}
	return data
}

// readUploads lê os arquivos enviados; campos sem arquivo ficam nil e mantêm o valor gravado
func readUploads(c *gin.Context) (services.AnalysisUploads, error) {
	var uploads services.AnalysisUploads

	files := []struct {
		field string
		dest  *[]byte
	}{
		{"arquivo_set", &uploads.SetFile},
		{"arquivo_html", &uploads.ReportHTML},
		{"arquivo_capital", &uploads.CapitalImage},
	}
	for _, f := range files {
		header, err := c.FormFile(f.field)
		if err != nil || header.Size == 0 {
			continue
		}
		data, err := readFormFile(header)
		if err != nil {
			return uploads, err
		}
		*f.dest = data
	}
	return uploads, nil
}

func readFormFile(header *multipart.FileHeader) ([]byte, error) {
	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return io.ReadAll(file)
}
