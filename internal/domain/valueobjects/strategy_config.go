package valueobjects

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// BrokerageKey é o parâmetro do .set com a corretagem cobrada por negociação
const BrokerageKey = "corretagem"

// StrategyConfig é o mapa chave=valor de um arquivo .set do MetaTrader.
// As chaves são guardadas em minúsculo.
type StrategyConfig map[string]string

// DecodeStrategyFile converte o conteúdo bruto de um .set para texto UTF-8.
// O MetaTrader 5 grava esses arquivos em UTF-16 com BOM; sem BOM assume UTF-8.
func DecodeStrategyFile(data []byte) string {
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	text, _, err := transform.Bytes(decoder, data)
	if err != nil {
		return string(data)
	}
	return string(text)
}

// ParseStrategyConfig quebra o texto em linhas "chave=valor".
// Linhas de comentário (";") e sem "=" são ignoradas; chave repetida fica com o último valor.
func ParseStrategyConfig(text string) StrategyConfig {
	config := make(StrategyConfig)

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.HasPrefix(strings.TrimSpace(line), ";") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}

		key = strings.ToLower(strings.TrimSpace(key))
		if key == "" {
			continue
		}
		config[key] = strings.TrimSpace(value)
	}

	return config
}

// Get busca um parâmetro sem diferenciar maiúsculas
func (c StrategyConfig) Get(key string) (string, bool) {
	value, ok := c[strings.ToLower(key)]
	return value, ok
}

// Decimal lê um parâmetro numérico. Parâmetros de otimização vêm como
// "valor||inicio||passo||fim||Y"; apenas o primeiro segmento é considerado.
func (c StrategyConfig) Decimal(key string) (decimal.Decimal, bool) {
	value, ok := c.Get(key)
	if !ok {
		return decimal.Zero, false
	}

	value, _, _ = strings.Cut(value, "||")
	value = strings.TrimSpace(value)
	if d, err := decimal.NewFromString(value); err == nil {
		return d, true
	}
	// aceita também a vírgula decimal digitada à mão ("0,50")
	if d, err := ParseNumber(value); err == nil {
		return d, true
	}
	return decimal.Zero, false
}

// Keys retorna as chaves em ordem alfabética
func (c StrategyConfig) Keys() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
