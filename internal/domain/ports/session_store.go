package ports

import "github.com/rafabene/ladino-web/internal/domain/entities"

// SessionStore guarda o usuário autenticado de cada sessão no servidor
type SessionStore interface {
	Get(sessionID string) (*entities.User, bool)
	Save(sessionID string, user *entities.User)
	Delete(sessionID string)
}
