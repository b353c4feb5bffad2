package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid session token")

// TokenCodec assina e lê o cookie de sessão. O token carrega apenas o id da sessão (jti);
// os dados do usuário ficam no Store.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenCodec(secret string, ttl time.Duration) *TokenCodec {
	return &TokenCodec{secret: []byte(secret), ttl: ttl}
}

// Issue gera um novo id de sessão e o token assinado correspondente
func (c *TokenCodec) Issue() (sessionID, token string, err error) {
	sessionID = uuid.NewString()
	now := time.Now()

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ID:        sessionID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
	})

	token, err = t.SignedString(c.secret)
	if err != nil {
		return "", "", err
	}
	return sessionID, token, nil
}

// Parse valida assinatura e expiração e devolve o id da sessão
func (c *TokenCodec) Parse(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}

	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", err
	}

	if !parsed.Valid || claims.ID == "" {
		return "", ErrInvalidToken
	}
	return claims.ID, nil
}

// TTL é a validade usada no cookie
func (c *TokenCodec) TTL() time.Duration {
	return c.ttl
}
