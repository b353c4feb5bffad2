package entities

import (
	"errors"
	"testing"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		input    string
		expected Status
		wantErr  bool
	}{
		{input: "1", expected: StatusActive},
		{input: "2", expected: StatusInactive},
		{input: "3", wantErr: true},
		{input: "ativo", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run("código "+tt.input, func(t *testing.T) {
			status, err := ParseStatus(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidStatus) {
					t.Fatalf("esperava ErrInvalidStatus, obteve %v", err)
				}
				return
			}
			if status != tt.expected {
				t.Errorf("esperava %v, obteve %v", tt.expected, status)
			}
		})
	}
}

func TestUser_Lifecycle(t *testing.T) {
	user := &User{ID: 1, Name: "Maria", Status: StatusActive}

	clone := user.Clone()
	user.Status = StatusInactive

	if user.IsActive() {
		t.Error("usuário deveria estar inativo")
	}
	if !clone.IsActive() {
		t.Error("cópia não deveria mudar junto com o original")
	}

	user.Restore()
	if !user.IsActive() {
		t.Error("usuário deveria estar ativo")
	}
	if (*User)(nil).Clone() != nil {
		t.Error("clone de nil deveria ser nil")
	}
}
