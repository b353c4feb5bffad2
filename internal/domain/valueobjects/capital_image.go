package valueobjects

import (
	"encoding/base64"
	"strings"
)

const capitalImageLineWidth = 76

// EncodeCapitalImage codifica a imagem da curva de capital em base64 quebrado em linhas de 76 colunas (CRLF)
func EncodeCapitalImage(data []byte) string {
	encoded := base64.StdEncoding.EncodeToString(data)

	var b strings.Builder
	b.Grow(len(encoded) + 2*(len(encoded)/capitalImageLineWidth+1))
	for len(encoded) > 0 {
		n := capitalImageLineWidth
		if len(encoded) < n {
			n = len(encoded)
		}
		b.WriteString(encoded[:n])
		b.WriteString("\r\n")
		encoded = encoded[n:]
	}
	return b.String()
}

// CapitalImageDataURI monta o data URI usado na tag <img>
func CapitalImageDataURI(stored string) string {
	if stored == "" {
		return ""
	}
	compact := strings.NewReplacer("\r", "", "\n", "").Replace(stored)
	return "data:image/png;base64," + compact
}
