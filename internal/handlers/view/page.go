package view

import (
	"github.com/rafabene/ladino-web/internal/domain/entities"
)

// Translator traduz message IDs (implementado por i18n.Service)
type Translator interface {
	T(lang, key string, params ...map[string]interface{}) string
}

// Page é o dado comum a todas as páginas HTML
type Page struct {
	Name       string // template da página
	TitleKey   string
	Lang       string
	Path       string
	User       *entities.User
	ErrorKey   string // message ID do alerta de erro
	SuccessKey string // message ID do alerta de sucesso
	LoginEmail string
	Data       any

	tr Translator
}

// NewPage cria uma página traduzida por tr no idioma lang
func NewPage(tr Translator, lang, name, titleKey string) *Page {
	return &Page{Name: name, TitleKey: titleKey, Lang: lang, tr: tr}
}

// T traduz uma chave; args são pares nome/valor para interpolação ({{.Name}})
func (p *Page) T(key string, args ...any) string {
	if p.tr == nil {
		return key
	}
	if len(args) < 2 {
		return p.tr.T(p.Lang, key)
	}

	params := make(map[string]interface{}, len(args)/2)
	for i := 0; i+1 < len(args); i += 2 {
		name, ok := args[i].(string)
		if !ok {
			continue
		}
		params[name] = args[i+1]
	}
	return p.tr.T(p.Lang, key, params)
}

// LoggedIn indica usuário autenticado
func (p *Page) LoggedIn() bool {
	return p.User != nil
}

// IsOwner indica se o usuário logado é o dono do registro
func (p *Page) IsOwner(ownerID int64) bool {
	return p.User != nil && p.User.ID == ownerID
}

// Pager é o dado do parcial de paginação
type Pager struct {
	Page  *Page
	Links []PageLink
}
