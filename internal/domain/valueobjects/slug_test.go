package valueobjects

import "testing"

func TestSlug(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "acentos e ordinal", input: "Análise Ações 2º", expected: "Analise-Acoes-2"},
		{name: "sobrescritos viram dígitos", input: "m² e m³", expected: "m2-e-m3"},
		{name: "espaços repetidos", input: "WIN   diário", expected: "WIN-diario"},
		{name: "pontuação removida", input: "Teste (v1.0)!", expected: "Teste-v10"},
		{name: "ligaduras", input: "Straße Æon", expected: "Strase-AEon"},
		{name: "hífen preservado", input: "WIN-Teste", expected: "WIN-Teste"},
		{name: "espaços nas pontas", input: "  abc  ", expected: "abc"},
		{name: "vazio", input: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Slug(tt.input)
			if result != tt.expected {
				t.Errorf("esperava '%s', obteve '%s'", tt.expected, result)
			}

			// idempotente
			if again := Slug(result); again != result {
				t.Errorf("slug não é idempotente: '%s' -> '%s'", result, again)
			}
		})
	}
}

func TestSetFileName(t *testing.T) {
	result := SetFileName("WIN", "Estratégia Média")
	if result != "win-estrategia-media.set" {
		t.Errorf("esperava 'win-estrategia-media.set', obteve '%s'", result)
	}
}
