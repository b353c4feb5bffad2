package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"
)

const (
	// LanguageContextKey guarda o idioma escolhido para a requisição
	LanguageContextKey = "language"
	// TranslatorContextKey guarda o catálogo usado por Translate
	TranslatorContextKey = "translator"

	// LanguageCookie lembra a escolha feita com ?lang=
	LanguageCookie = "ladino_lang"

	fallbackLanguage     = "pt-BR"
	languageCookieMaxAge = 365 * 24 * 60 * 60
)

// Catalog é o que o middleware usa do serviço de traduções
type Catalog interface {
	T(lang, key string, params ...map[string]interface{}) string
	Languages() []string
	Supports(lang string) bool
}

// I18nMiddleware escolhe o idioma de cada requisição
type I18nMiddleware struct {
	catalog   Catalog
	languages []string
	matcher   language.Matcher
}

// NewI18nMiddleware monta o matcher com os idiomas do catálogo; o primeiro é o padrão
func NewI18nMiddleware(catalog Catalog) *I18nMiddleware {
	langs := catalog.Languages()
	tags := make([]language.Tag, 0, len(langs))
	for _, l := range langs {
		tags = append(tags, language.Make(l))
	}
	return &I18nMiddleware{
		catalog:   catalog,
		languages: langs,
		matcher:   language.NewMatcher(tags),
	}
}

// DetectLanguage resolve o idioma na ordem: ?lang= (gravado em cookie), cookie,
// Accept-Language e por fim o idioma padrão.
func (m *I18nMiddleware) DetectLanguage() gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := ""
		if q := c.Query("lang"); q != "" && m.catalog.Supports(q) {
			lang = q
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(LanguageCookie, q, languageCookieMaxAge, "/", "", false, true)
		}
		if lang == "" {
			if v, err := c.Cookie(LanguageCookie); err == nil && m.catalog.Supports(v) {
				lang = v
			}
		}
		if lang == "" {
			lang = m.match(c.GetHeader("Accept-Language"))
		}

		c.Set(LanguageContextKey, lang)
		c.Set(TranslatorContextKey, m.catalog)
		c.Next()
	}
}

// match escolhe o idioma suportado mais próximo do header, respeitando os pesos q
func (m *I18nMiddleware) match(header string) string {
	if len(m.languages) == 0 {
		return fallbackLanguage
	}
	if header == "" {
		return m.languages[0]
	}

	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return m.languages[0]
	}

	_, idx, confidence := m.matcher.Match(tags...)
	if confidence == language.No {
		return m.languages[0]
	}
	return m.languages[idx]
}

// Language devolve o idioma da requisição
func Language(c *gin.Context) string {
	if lang := c.GetString(LanguageContextKey); lang != "" {
		return lang
	}
	return fallbackLanguage
}

// Translate traduz key no idioma da requisição; sem catálogo no contexto devolve a chave
func Translate(c *gin.Context, key string, params ...map[string]interface{}) string {
	v, ok := c.Get(TranslatorContextKey)
	if !ok {
		return key
	}
	catalog, ok := v.(Catalog)
	if !ok {
		return key
	}
	return catalog.T(Language(c), key, params...)
}
