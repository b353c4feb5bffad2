package security

import (
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/rafabene/ladino-web/internal/domain/ports"
)

// PlainHasher grava a senha como foi digitada (compatível com a base legada)
type PlainHasher struct{}

func (PlainHasher) Hash(password string) (string, error) {
	return password, nil
}

func (PlainHasher) Matches(stored, password string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(password)) == 1
}

// BcryptHasher grava hashes bcrypt
type BcryptHasher struct {
	Cost int
}

func (h BcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.Cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (h BcryptHasher) Matches(stored, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
}

// NewPasswordHasher escolhe a implementação pelo nome configurado ("plain" ou "bcrypt")
func NewPasswordHasher(kind string, cost int) (ports.PasswordHasher, error) {
	switch kind {
	case "", "plain":
		return PlainHasher{}, nil
	case "bcrypt":
		if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
			cost = bcrypt.DefaultCost
		}
		return BcryptHasher{Cost: cost}, nil
	default:
		return nil, fmt.Errorf("unsupported password hasher %q", kind)
	}
}
