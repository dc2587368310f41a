// Package token issues and validates the signed bearer tokens that carry a
// session's identity. Tokens are self-contained: validation is purely
// cryptographic and never consults storage, so there is no server-side
// revocation: a signed, unexpired token remains valid even if the account
// behind it has since been changed or deleted.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jobtrackr/jobtracker-api/internal/core/domain"
)

const DefaultTTL = 7 * 24 * time.Hour

var (
	ErrTokenMalformed = errors.New("token malformed or signature invalid")
	ErrTokenExpired   = errors.New("token expired")
)

// Claims binds an account to a session.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"id"`
	Email  string `json:"email"`
}

// Manager signs and verifies session tokens with a process-wide symmetric key.
// It is read-only after construction and safe for concurrent use.
type Manager struct {
	secret []byte
	ttl    time.Duration
}

// NewManager builds a Manager signing with secret. A zero ttl falls back to
// DefaultTTL. A negative ttl is honoured as-is and mints already-expired
// tokens.
func NewManager(secret string, ttl time.Duration) *Manager {
	if ttl == 0 {
		ttl = DefaultTTL
	}
	return &Manager{secret: []byte(secret), ttl: ttl}
}

// Issue mints a signed token for user, expiring ttl from now.
func (m *Manager) Issue(user *domain.User) (string, error) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.ttl)),
		},
		UserID: user.ID,
		Email:  user.Email,
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(m.secret)
}

// Validate parses and verifies a token string. It returns ErrTokenExpired
// when the embedded expiry has passed and ErrTokenMalformed for every other
// failure, including a signature from the wrong key or a non-HS256 algorithm.
func (m *Manager) Validate(tokenString string) (*Claims, error) {
	claims := &Claims{}
	t, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenMalformed
	}
	if !t.Valid {
		return nil, ErrTokenMalformed
	}
	return claims, nil
}
