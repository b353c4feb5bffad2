package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestNewPasswordHasher(t *testing.T) {
	tests := []struct {
		name    string
		kind    string
		wantErr bool
	}{
		{"padrão é texto puro", "", false},
		{"texto puro", "plain", false},
		{"bcrypt", "bcrypt", false},
		{"desconhecido", "md5", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := NewPasswordHasher(tt.kind, bcrypt.MinCost)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, h)
		})
	}
}

func TestPlainHasher(t *testing.T) {
	h := PlainHasher{}

	stored, err := h.Hash("abc123")
	require.NoError(t, err)
	assert.Equal(t, "abc123", stored)

	assert.True(t, h.Matches(stored, "abc123"))
	assert.False(t, h.Matches(stored, "abc1234"))
	assert.False(t, h.Matches(stored, ""))
}

func TestBcryptHasher(t *testing.T) {
	h := BcryptHasher{Cost: bcrypt.MinCost}

	stored, err := h.Hash("abc123")
	require.NoError(t, err)
	assert.NotEqual(t, "abc123", stored)

	assert.True(t, h.Matches(stored, "abc123"))
	assert.False(t, h.Matches(stored, "errada"))
	assert.False(t, h.Matches("abc123", "abc123"))
}
