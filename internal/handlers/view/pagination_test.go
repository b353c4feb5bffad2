package view

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func numbers(links []PageLink) []int {
	var ns []int
	for _, l := range links {
		if l.Kind == "page" {
			ns = append(ns, l.Number)
		}
	}
	return ns
}

func TestPaginate(t *testing.T) {
	t.Run("primeira página sem anterior", func(t *testing.T) {
		links := Paginate(3, 1, url.Values{})

		require.NotEmpty(t, links)
		assert.Equal(t, "page", links[0].Kind)
		assert.True(t, links[0].Active)
		assert.Empty(t, links[0].Href)
		assert.Equal(t, []int{1, 2, 3}, numbers(links))
		assert.Equal(t, "next", links[len(links)-1].Kind)
		assert.Equal(t, "?pg=2", links[len(links)-1].Href)
	})

	t.Run("última página sem próximo", func(t *testing.T) {
		links := Paginate(3, 3, url.Values{})

		assert.Equal(t, "previous", links[0].Kind)
		assert.Equal(t, "page", links[len(links)-1].Kind)
		assert.True(t, links[len(links)-1].Active)
	})

	t.Run("janela de no máximo onze páginas", func(t *testing.T) {
		links := Paginate(40, 20, url.Values{})
		assert.Equal(t, []int{15, 16, 17, 18, 19, 20, 21, 22, 23, 24, 25}, numbers(links))

		links = Paginate(40, 2, url.Values{})
		assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7}, numbers(links))
	})

	t.Run("preserva filtros e descarta parâmetros de página e tema", func(t *testing.T) {
		query := url.Values{
			"ativo": {"WIN"},
			"pg":    {"2"},
			"page":  {"9"},
			"tema":  {"escuro"},
			"theme": {"dark"},
			"slug":  {"x"},
		}
		links := Paginate(3, 2, query)

		assert.Equal(t, "?ativo=WIN&pg=1", links[0].Href)
		assert.Equal(t, "?ativo=WIN&pg=3", links[len(links)-1].Href)
		assert.Equal(t, []string{"2"}, query["pg"])
	})

	t.Run("página inválida volta para a primeira", func(t *testing.T) {
		for _, current := range []int{0, -3, 99} {
			links := Paginate(5, current, url.Values{})
			assert.Equal(t, "page", links[0].Kind)
			assert.True(t, links[0].Active)
			assert.Equal(t, 1, links[0].Number)
		}
	})

	t.Run("página única", func(t *testing.T) {
		links := Paginate(1, 1, url.Values{})
		require.Len(t, links, 1)
		assert.True(t, links[0].Active)
	})
}
