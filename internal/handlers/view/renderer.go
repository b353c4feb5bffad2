package view

import (
	"embed"
	"fmt"
	"html/template"

	"github.com/gin-gonic/gin/render"
)

//go:embed templates
var templateFS embed.FS

// Páginas disponíveis; cada uma define o bloco "content" usado pelo layout
var pageNames = []string{
	"index",
	"downloads",
	"faq",
	"analises",
	"analise",
	"analise_form",
	"usuario_form",
	"error",
}

// Renderer implementa render.HTMLRender do gin com um conjunto de templates por página
type Renderer struct {
	templates map[string]*template.Template
}

// NewRenderer compila o layout, os parciais e as páginas embutidas
func NewRenderer() (*Renderer, error) {
	base, err := template.New("layout.html").
		Funcs(Funcs()).
		ParseFS(templateFS, "templates/layout.html", "templates/partials/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse layout: %w", err)
	}

	r := &Renderer{templates: make(map[string]*template.Template, len(pageNames))}
	for _, name := range pageNames {
		tmpl, err := base.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := tmpl.ParseFS(templateFS, "templates/pages/"+name+".html"); err != nil {
			return nil, fmt.Errorf("failed to parse page %s: %w", name, err)
		}
		r.templates[name] = tmpl
	}

	return r, nil
}

// Instance devolve o render da página name; páginas desconhecidas caem no template de erro
func (r *Renderer) Instance(name string, data any) render.Render {
	tmpl, ok := r.templates[name]
	if !ok {
		tmpl = r.templates["error"]
	}
	return render.HTML{Template: tmpl, Name: "layout", Data: data}
}
