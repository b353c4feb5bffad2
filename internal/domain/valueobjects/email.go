package valueobjects

import (
	"strings"
)

// Email é um value object que guarda o email sempre normalizado (minúsculo, sem espaços nas pontas)
type Email struct {
	value string
}

// NewEmail cria um novo Email normalizado
func NewEmail(email string) Email {
	return Email{value: strings.TrimSpace(strings.ToLower(email))}
}

// String retorna o valor do email
func (e Email) String() string {
	return e.value
}

// IsEmpty indica se nenhum email foi informado
func (e Email) IsEmpty() bool {
	return e.value == ""
}
