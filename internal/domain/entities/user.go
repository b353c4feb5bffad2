package entities

import (
	"github.com/rafabene/ladino-web/internal/domain/valueobjects"
)

// User representa um usuário do site
type User struct {
	ID       int64
	Name     string
	Email    valueobjects.Email
	Password string // texto puro ou hash, conforme o PasswordHasher configurado
	Status   Status
}

// IsActive verifica se o usuário não foi desativado
func (u *User) IsActive() bool {
	return u.Status.IsActive()
}

// Restore reativa um usuário inativo
func (u *User) Restore() {
	u.Status = StatusActive
}

// Clone devolve uma cópia independente do usuário
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}
