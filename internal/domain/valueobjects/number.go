package valueobjects

import (
	"errors"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrMalformedNumber = errors.New("malformed number")
)

// Aceita "1234", "1234,5", "1.234", "1.234,56" e o sinal opcional.
var localeNumberPattern = regexp.MustCompile(`^[-+]?(\d{1,3}(\.\d{3})+|\d+)(,\d+)?$`)

// ParseNumber converte um número no formato brasileiro (milhar ".", decimal ",") para decimal
func ParseNumber(input string) (decimal.Decimal, error) {
	input = strings.TrimSpace(input)
	if !localeNumberPattern.MatchString(input) {
		return decimal.Zero, ErrMalformedNumber
	}

	canonical := strings.ReplaceAll(input, ".", "")
	canonical = strings.Replace(canonical, ",", ".", 1)

	d, err := decimal.NewFromString(canonical)
	if err != nil {
		return decimal.Zero, ErrMalformedNumber
	}
	return d.Round(2), nil
}

// NormalizeNumber devolve a codificação canônica gravada no banco: duas casas e "." como separador
func NormalizeNumber(input string) (string, error) {
	d, err := ParseNumber(input)
	if err != nil {
		return "", err
	}
	return CanonicalNumber(d), nil
}

// CanonicalNumber formata um decimal na codificação de gravação
func CanonicalNumber(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// FormatNumber formata para exibição no padrão brasileiro ("1.234,56")
func FormatNumber(d decimal.Decimal, places int32) string {
	fixed := d.StringFixed(places)

	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign = "-"
		fixed = fixed[1:]
	}

	integer, fraction, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	b.WriteString(sign)
	for i, r := range integer {
		if i > 0 && (len(integer)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	if fraction != "" {
		b.WriteByte(',')
		b.WriteString(fraction)
	}
	return b.String()
}
