// Package session carrega o usuário autenticado no contexto da requisição.
package session

import (
	"context"

	"github.com/rafabene/ladino-web/internal/domain/entities"
)

type contextKey struct{}

// WithUser devolve um contexto carregando o usuário autenticado
func WithUser(ctx context.Context, user *entities.User) context.Context {
	return context.WithValue(ctx, contextKey{}, user)
}

// UserFrom retorna o usuário autenticado da requisição, se houver
func UserFrom(ctx context.Context) (*entities.User, bool) {
	user, ok := ctx.Value(contextKey{}).(*entities.User)
	if !ok || user == nil {
		return nil, false
	}
	return user, true
}

// UserID retorna o id do usuário autenticado
func UserID(ctx context.Context) (int64, bool) {
	user, ok := UserFrom(ctx)
	if !ok {
		return 0, false
	}
	return user.ID, true
}
