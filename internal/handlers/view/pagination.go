package view

import (
	"net/url"
	"strconv"
)

// Quantidade de páginas exibidas antes e depois da atual
const pageWindow = 5

// Parâmetros que não são repassados para os links de página
var droppedParams = []string{"pg", "page", "tema", "theme", "slug"}

// PageLink é um item da barra de paginação
type PageLink struct {
	Kind   string // "previous", "page" ou "next"
	Number int
	Href   string
	Active bool
}

// Paginate monta os links de paginação preservando os filtros da query string
func Paginate(totalPages, currentPage int, query url.Values) []PageLink {
	if totalPages < 1 {
		totalPages = 1
	}
	if currentPage < 1 || currentPage > totalPages {
		currentPage = 1
	}

	base := make(url.Values, len(query))
	for k, v := range query {
		base[k] = v
	}
	for _, k := range droppedParams {
		base.Del(k)
	}

	href := func(page int) string {
		q := make(url.Values, len(base)+1)
		for k, v := range base {
			q[k] = v
		}
		q.Set("pg", strconv.Itoa(page))
		return "?" + q.Encode()
	}

	links := make([]PageLink, 0, 2*pageWindow+3)

	if currentPage > 1 {
		links = append(links, PageLink{Kind: "previous", Number: currentPage - 1, Href: href(currentPage - 1)})
	}

	first := max(1, currentPage-pageWindow)
	last := min(totalPages, currentPage+pageWindow)
	for p := first; p <= last; p++ {
		if p == currentPage {
			links = append(links, PageLink{Kind: "page", Number: p, Active: true})
			continue
		}
		links = append(links, PageLink{Kind: "page", Number: p, Href: href(p)})
	}

	if currentPage < totalPages {
		links = append(links, PageLink{Kind: "next", Number: currentPage + 1, Href: href(currentPage + 1)})
	}

	return links
}
