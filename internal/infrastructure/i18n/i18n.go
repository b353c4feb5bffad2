package i18n

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
	"sync"
	"text/template"
)

//go:embed locales/*.json
var embeddedLocales embed.FS

// catalog guarda as mensagens de um idioma
type catalog map[string]string

// Service resolve message IDs para os textos do site nos idiomas carregados.
// Os catálogos são somente leitura depois de NewService; só o cache de templates muda.
type Service struct {
	catalogs  map[string]catalog
	fallback  string
	languages []string
	templates sync.Map // mensagem -> *template.Template
}

// NewService carrega os catálogos de localesDir, ou os embutidos no binário quando vazio.
// fallback é o idioma usado quando a chave não existe no idioma pedido.
func NewService(localesDir, fallback string) (*Service, error) {
	if localesDir != "" {
		return NewServiceFromFS(os.DirFS(localesDir), fallback)
	}
	sub, err := fs.Sub(embeddedLocales, "locales")
	if err != nil {
		return nil, err
	}
	return NewServiceFromFS(sub, fallback)
}

// NewServiceFromFS lê um <idioma>.json por idioma da raiz de fsys
func NewServiceFromFS(fsys fs.FS, fallback string) (*Service, error) {
	files, err := fs.Glob(fsys, "*.json")
	if err != nil {
		return nil, fmt.Errorf("listing locales: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no locale files found")
	}

	s := &Service{catalogs: make(map[string]catalog, len(files)), fallback: fallback}
	for _, file := range files {
		cat, err := readCatalog(fsys, file)
		if err != nil {
			return nil, err
		}
		lang := strings.TrimSuffix(path.Base(file), ".json")
		s.catalogs[lang] = cat
		s.languages = append(s.languages, lang)
	}

	if _, ok := s.catalogs[fallback]; !ok {
		return nil, fmt.Errorf("default language %s not found in locale files", fallback)
	}

	// Idioma padrão primeiro, o resto em ordem alfabética
	sort.Slice(s.languages, func(i, j int) bool {
		a, b := s.languages[i], s.languages[j]
		if a == fallback || b == fallback {
			return a == fallback
		}
		return a < b
	})
	return s, nil
}

func readCatalog(fsys fs.FS, file string) (catalog, error) {
	data, err := fs.ReadFile(fsys, file)
	if err != nil {
		return nil, fmt.Errorf("reading locale %s: %w", file, err)
	}
	var cat catalog
	if err := json.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("parsing locale %s: %w", file, err)
	}
	return cat, nil
}

// T devolve a mensagem de key em lang, caindo para o idioma padrão e depois para a própria chave.
// Mensagens com {{.Campo}} são preenchidas com params[0].
func (s *Service) T(lang, key string, params ...map[string]interface{}) string {
	msg, ok := s.lookup(lang, key)
	if !ok {
		return key
	}
	if len(params) == 0 || !strings.Contains(msg, "{{") {
		return msg
	}

	tmpl, err := s.template(msg)
	if err != nil {
		return msg
	}
	// Com map[string]string um parâmetro ausente vira "" em vez de "<no value>"
	values := make(map[string]string, len(params[0]))
	for k, v := range params[0] {
		values[k] = fmt.Sprint(v)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, values); err != nil {
		return msg
	}
	return buf.String()
}

func (s *Service) lookup(lang, key string) (string, bool) {
	if msg, ok := s.catalogs[lang][key]; ok {
		return msg, true
	}
	msg, ok := s.catalogs[s.fallback][key]
	return msg, ok
}

func (s *Service) template(msg string) (*template.Template, error) {
	if cached, ok := s.templates.Load(msg); ok {
		return cached.(*template.Template), nil
	}
	tmpl, err := template.New("msg").Option("missingkey=zero").Parse(msg)
	if err != nil {
		return nil, err
	}
	s.templates.Store(msg, tmpl)
	return tmpl, nil
}

// DefaultLanguage é o idioma de fallback
func (s *Service) DefaultLanguage() string {
	return s.fallback
}

// Languages lista os idiomas carregados, o padrão primeiro
func (s *Service) Languages() []string {
	out := make([]string, len(s.languages))
	copy(out, s.languages)
	return out
}

// Supports informa se há catálogo para lang
func (s *Service) Supports(lang string) bool {
	_, ok := s.catalogs[lang]
	return ok
}

// Keys retorna as chaves do catálogo de lang, ordenadas
func (s *Service) Keys(lang string) []string {
	keys := make([]string, 0, len(s.catalogs[lang]))
	for k := range s.catalogs[lang] {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
