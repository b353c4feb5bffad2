package view

import (
	"html/template"

	"github.com/shopspring/decimal"

	"github.com/rafabene/ladino-web/internal/domain/entities"
	"github.com/rafabene/ladino-web/internal/domain/valueobjects"
)

// Funcs são as funções disponíveis nos templates
func Funcs() template.FuncMap {
	return template.FuncMap{
		"money":      formatMoney,
		"number":     formatNumber,
		"nullMoney":  formatNullMoney,
		"date":       valueobjects.FormatDate,
		"capital":    capitalImageURL,
		"statusKey":  statusKey,
		"isNegative": isNegative,
	}
}

func formatMoney(d decimal.Decimal) string {
	return valueobjects.FormatNumber(d, 2)
}

// formatNumber exibe quantidades sem casas decimais quando forem inteiras
func formatNumber(d decimal.Decimal) string {
	if d.Equal(d.Truncate(0)) {
		return valueobjects.FormatNumber(d, 0)
	}
	return valueobjects.FormatNumber(d, 2)
}

// formatNullMoney exibe "" para valores desconhecidos; o template mostra o texto "n/d"
func formatNullMoney(n decimal.NullDecimal) string {
	if !n.Valid {
		return ""
	}
	return valueobjects.FormatNumber(n.Decimal, 2)
}

func isNegative(n decimal.NullDecimal) bool {
	return n.Valid && n.Decimal.IsNegative()
}

// capitalImageURL monta o data URI da imagem; o conteúdo é base64 gerado pelo próprio upload
func capitalImageURL(stored string) template.URL {
	return template.URL(valueobjects.CapitalImageDataURI(stored)) //nolint:gosec
}

func statusKey(s entities.Status) string {
	if s.IsActive() {
		return "status.active"
	}
	return "status.inactive"
}
