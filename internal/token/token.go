// Package token issues and verifies the signed bearer and refresh tokens
// used by the user account routes. Tokens are stateless: validity is purely
// signature plus expiry, there is no server-side revocation list.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"

	// DefaultAccessTTL applies when the caller does not specify a lifetime.
	DefaultAccessTTL = 10 * time.Minute
	// DefaultRefreshTTL applies to refresh tokens issued at login time.
	DefaultRefreshTTL = time.Hour
	// RefreshedTTL is the fixed lifetime of refresh tokens minted by the
	// refresh operation, regardless of what the client asked for at login.
	RefreshedTTL = 24 * time.Hour
)

var (
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenMalformed = errors.New("token is malformed")
)

// Claims is the signed payload carried by both token families.
type Claims struct {
	Email     string `json:"email"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// Service signs and verifies tokens with a process-wide symmetric secret.
// The secret is fixed at startup; there is no rotation and no key id.
type Service struct {
	secret []byte
}

func New(secret string) (*Service, error) {
	if secret == "" {
		return nil, errors.New("token: signing secret must not be empty")
	}
	return &Service{secret: []byte(secret)}, nil
}

// IssueAccess signs a short-lived access token for the given subject. A zero
// ttl means the default of 10 minutes. Negative ttls are honoured and produce
// an already-expired token.
func (s *Service) IssueAccess(email string, ttl time.Duration) (string, error) {
	if ttl == 0 {
		ttl = DefaultAccessTTL
	}
	return s.issue(email, TypeAccess, ttl)
}

// IssueRefresh signs a refresh token for the given subject. A zero ttl means
// the default of one hour.
func (s *Service) IssueRefresh(email string, ttl time.Duration) (string, error) {
	if ttl == 0 {
		ttl = DefaultRefreshTTL
	}
	return s.issue(email, TypeRefresh, ttl)
}

func (s *Service) issue(email, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()

	claims := &Claims{
		Email:     email,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("signing %s token: %w", tokenType, err)
	}

	return signed, nil
}

// Verify checks the signature and expiry of a token and returns its claims.
// The two failure kinds are distinguished so callers can return different
// messages for an expired token and a tampered or garbled one.
func (s *Service) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}

	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenMalformed
	}

	if !parsed.Valid {
		return nil, ErrTokenMalformed
	}

	return claims, nil
}
