package middleware

import (
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// LoginLimiter limita as tentativas de login por IP de origem
type LoginLimiter struct {
	limiters *cache.Cache
	limit    rate.Limit
	burst    int
}

// NewLoginLimiter cria um limitador de perSecond tentativas por segundo com rajada burst.
// Limitadores sem uso somem do cache após idle.
func NewLoginLimiter(perSecond float64, burst int, idle time.Duration) *LoginLimiter {
	return &LoginLimiter{
		limiters: cache.New(idle, idle*2),
		limit:    rate.Limit(perSecond),
		burst:    burst,
	}
}

// Allow consome uma tentativa do IP
func (l *LoginLimiter) Allow(ip string) bool {
	if l == nil || l.burst <= 0 {
		return true
	}

	if v, ok := l.limiters.Get(ip); ok {
		return v.(*rate.Limiter).Allow()
	}

	limiter := rate.NewLimiter(l.limit, l.burst)
	// outra requisição pode ter criado o limitador entre o Get e o Add
	if err := l.limiters.Add(ip, limiter, cache.DefaultExpiration); err != nil {
		if v, ok := l.limiters.Get(ip); ok {
			return v.(*rate.Limiter).Allow()
		}
	}
	return limiter.Allow()
}
