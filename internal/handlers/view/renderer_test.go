package view

import (
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rafabene/ladino-web/internal/domain/entities"
	"github.com/rafabene/ladino-web/internal/domain/repositories"
)

// echoTranslator devolve a própria chave, com os parâmetros anexados
type echoTranslator struct{}

func (echoTranslator) T(_ string, key string, params ...map[string]interface{}) string {
	if len(params) > 0 {
		if name, ok := params[0]["Name"]; ok {
			return key + ":" + name.(string)
		}
	}
	return key
}

func renderPage(t *testing.T, r *Renderer, page *Page) string {
	t.Helper()

	w := httptest.NewRecorder()
	require.NoError(t, r.Instance(page.Name, page).Render(w))
	return w.Body.String()
}

func sampleAnalysis(id, owner int64, config string) *entities.AnalysisView {
	return entities.NewAnalysisView(&entities.Analysis{
		ID:         id,
		OwnerID:    owner,
		OwnerName:  "Maria",
		Asset:      "WIN",
		TotalGain:  decimal.NewFromInt(1500),
		TradeCount: decimal.NewFromInt(100),
		Status:     entities.StatusActive,
		ConfigData: config,
		ReportHTML: `<html><body><script>alert("x")</script></body></html>`,
	})
}

func TestRenderer(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	t.Run("todas as páginas compilam e usam o layout", func(t *testing.T) {
		for _, name := range []string{"index", "downloads", "faq", "error"} {
			page := NewPage(echoTranslator{}, "pt-BR", name, "nav.home")
			body := renderPage(t, r, page)

			assert.Contains(t, body, "<!DOCTYPE html>", name)
			assert.Contains(t, body, `name="ac" value="logar"`, name)
		}
	})

	t.Run("usuário logado vê saudação e não o formulário de login", func(t *testing.T) {
		page := NewPage(echoTranslator{}, "pt-BR", "index", "nav.home")
		page.User = &entities.User{ID: 7, Name: "Maria"}

		body := renderPage(t, r, page)

		assert.Contains(t, body, "nav.greeting:Maria")
		assert.Contains(t, body, "/analises?usuario=7")
		assert.NotContains(t, body, `value="logar"`)
	})

	t.Run("alerta de erro traduzido", func(t *testing.T) {
		page := NewPage(echoTranslator{}, "pt-BR", "faq", "faq.title")
		page.ErrorKey = "error.invalid_credentials"

		body := renderPage(t, r, page)

		assert.Contains(t, body, "alert-danger")
		assert.Contains(t, body, "error.invalid_credentials")
	})

	t.Run("listagem com ativos, desconhecidos e paginação", func(t *testing.T) {
		page := NewPage(echoTranslator{}, "pt-BR", "analises", "analyses.title")
		page.Data = &AnalysesData{
			Items: []*entities.AnalysisView{
				sampleAnalysis(1, 3, "corretagem=0.50"),
				sampleAnalysis(2, 3, ""),
				sampleAnalysis(3, 3, "corretagem=20"),
			},
			Assets: []repositories.AssetCount{{Asset: "WDO", Count: 1}, {Asset: "WIN", Count: 2}},
			Asset:  "WIN",
			Pager: Pager{
				Page:  page,
				Links: Paginate(2, 1, url.Values{"ativo": {"WIN"}}),
			},
		}

		body := renderPage(t, r, page)

		assert.Contains(t, body, `href="/analises?ativo=WDO"`)
		assert.Contains(t, body, "analyses.by:Maria")
		assert.Contains(t, body, `class="resultado-positivo">1.450,00`)
		assert.Contains(t, body, `class="resultado-negativo">-500,00`)
		assert.Contains(t, body, "analysis.unknown")
		assert.Contains(t, body, "?ativo=WIN&amp;pg=2")
	})

	t.Run("detalhe isola o relatório e mostra ações do dono", func(t *testing.T) {
		page := NewPage(echoTranslator{}, "pt-BR", "analise", "analyses.details")
		page.User = &entities.User{ID: 3, Name: "Maria"}
		page.Data = sampleAnalysis(9, 3, "corretagem=1\nlote=2")

		body := renderPage(t, r, page)

		assert.Contains(t, body, "<iframe sandbox srcdoc=")
		assert.NotContains(t, body, `<script>alert`)
		assert.Contains(t, body, "/analise-alterar?analise=9")
		assert.Contains(t, body, `action="/analise-excluir?analise=9"`)
		assert.Contains(t, body, "<th>lote</th>")
	})

	t.Run("visitante não vê ações do dono", func(t *testing.T) {
		page := NewPage(echoTranslator{}, "pt-BR", "analise", "analyses.details")
		page.Data = sampleAnalysis(9, 3, "")

		body := renderPage(t, r, page)

		assert.NotContains(t, body, "/analise-alterar")
		assert.Contains(t, body, "/arquivo-set?analise=9")
	})

	t.Run("formulário de alteração vem preenchido", func(t *testing.T) {
		a := sampleAnalysis(4, 3, "").Analysis
		page := NewPage(echoTranslator{}, "pt-BR", "analise_form", "analysis.edit_title")
		page.Data = NewAnalysisFormData(&a)

		body := renderPage(t, r, page)

		assert.Contains(t, body, `enctype="multipart/form-data"`)
		assert.Contains(t, body, `value="1.500,00"`)
		assert.Contains(t, body, `name="cod_situacao"`)
		assert.True(t, strings.Contains(body, `name="arquivo_capital"`))
	})

	t.Run("página desconhecida cai no template de erro", func(t *testing.T) {
		page := NewPage(echoTranslator{}, "pt-BR", "inexistente", "error_page.title")

		body := renderPage(t, r, page)

		assert.Contains(t, body, "error_page.back")
	})
}
