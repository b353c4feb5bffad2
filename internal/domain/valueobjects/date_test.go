package valueobjects

import (
	"errors"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	jan2 := time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		input    string
		expected time.Time
		wantErr  bool
	}{
		{name: "dd/mm/aaaa", input: "02/01/2023", expected: jan2},
		{name: "sem zeros à esquerda", input: "2/1/2023", expected: jan2},
		{name: "separador hífen", input: "02-01-2023", expected: jan2},
		{name: "ISO", input: "2023-01-02", expected: jan2},
		{name: "dia inválido", input: "31/02/2023", wantErr: true},
		{name: "texto", input: "ontem", wantErr: true},
		{name: "incompleta", input: "02/01", wantErr: true},
		{name: "vazia", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseDate(tt.input)

			if tt.wantErr {
				if !errors.Is(err, ErrMalformedDate) {
					t.Fatalf("esperava ErrMalformedDate, obteve %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("erro inesperado: %v", err)
			}
			if !result.Equal(tt.expected) {
				t.Errorf("esperava %v, obteve %v", tt.expected, result)
			}
		})
	}
}

func TestFormatDate(t *testing.T) {
	if got := FormatDate(time.Date(2023, 6, 30, 0, 0, 0, 0, time.UTC)); got != "30/06/2023" {
		t.Errorf("esperava '30/06/2023', obteve '%s'", got)
	}
	if got := FormatDate(time.Time{}); got != "" {
		t.Errorf("data zerada deveria virar vazio, obteve '%s'", got)
	}
}
