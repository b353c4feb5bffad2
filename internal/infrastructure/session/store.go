package session

import (
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/rafabene/ladino-web/internal/domain/entities"
	"github.com/rafabene/ladino-web/internal/domain/ports"
)

// Store guarda em memória o usuário de cada sessão, com expiração deslizante
type Store struct {
	cache *cache.Cache
	ttl   time.Duration
}

// NewStore cria um Store cujas entradas expiram após ttl sem uso
func NewStore(ttl time.Duration) ports.SessionStore {
	return &Store{
		cache: cache.New(ttl, ttl*2),
		ttl:   ttl,
	}
}

func (s *Store) Get(sessionID string) (*entities.User, bool) {
	v, ok := s.cache.Get(sessionID)
	if !ok {
		return nil, false
	}

	user := v.(*entities.User)
	// renova a validade a cada acesso
	s.cache.Set(sessionID, user, s.ttl)
	return user.Clone(), true
}

func (s *Store) Save(sessionID string, user *entities.User) {
	s.cache.Set(sessionID, user.Clone(), s.ttl)
}

func (s *Store) Delete(sessionID string) {
	s.cache.Delete(sessionID)
}
