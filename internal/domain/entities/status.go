package entities

import (
	"errors"
	"strconv"
)

var (
	ErrInvalidStatus = errors.New("invalid status")
)

// Status representa a situação de um registro (coluna cod_situacao)
type Status int

const (
	StatusActive   Status = 1
	StatusInactive Status = 2
)

// IsActive verifica se o registro está ativo
func (s Status) IsActive() bool {
	return s == StatusActive
}

func (s Status) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusInactive:
		return "inactive"
	default:
		return "unknown"
	}
}

// ParseStatus converte o código numérico enviado pelos formulários
func ParseStatus(code string) (Status, error) {
	n, err := strconv.Atoi(code)
	if err != nil {
		return 0, ErrInvalidStatus
	}

	status := Status(n)
	if status != StatusActive && status != StatusInactive {
		return 0, ErrInvalidStatus
	}

	return status, nil
}
