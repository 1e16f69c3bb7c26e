// Package token issues and verifies the signed bearer tokens used to
// authenticate requests. A token carries only the username and an expiry:
// roles are deliberately left out so they are re-read from the user store on
// every decision, and role changes take effect without re-issuing tokens.
package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/taskboard/todo-system/internal/core/domain"
)

const defaultTTL = 24 * time.Hour

// Manager signs and verifies HS256 JWTs with a shared server-side secret.
type Manager struct {
	secret []byte
	ttl    time.Duration
}

func NewManager(secret string, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Manager{secret: []byte(secret), ttl: ttl}
}

// Issue returns a signed token for username, expiring after the configured TTL.
func (m *Manager) Issue(username string) (string, error) {
	claims := jwt.MapClaims{
		"username": username,
		"exp":      time.Now().Add(m.ttl).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(m.secret)
}

// Verify validates the signature and expiry and returns the embedded username.
// Verification is all-or-nothing: any failure yields domain.ErrInvalidToken.
func (m *Manager) Verify(tokenString string) (string, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return m.secret, nil
	})
	if err != nil || !tkn.Valid {
		return "", domain.ErrInvalidToken
	}

	username, _ := claims["username"].(string)
	if username == "" {
		return "", domain.ErrInvalidToken
	}
	return username, nil
}
