// Package token issues and verifies the signed identity tokens presented on
// protected routes. Tokens are stateless: verification is pure and consults
// no store, so a verified subject is trusted for the request lifetime only.
package token

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenDuration is how long an issued token stays valid.
const TokenDuration = 7 * 24 * time.Hour

// ErrInvalidToken covers every verification failure: bad signature, malformed
// payload, wrong algorithm, or expiry. Callers never need to distinguish.
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims are the identity claims embedded in every issued token.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// Service signs and verifies tokens with a shared HS256 secret.
type Service struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewService(secret string) *Service {
	return &Service{
		secret: []byte(secret),
		ttl:    TokenDuration,
		now:    time.Now,
	}
}

// Issue creates a signed token for the given subject. The expiry is fixed at
// issuance time.
func (s *Service) Issue(userID, email string) (string, error) {
	now := s.now().UTC()
	claims := Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify parses and validates a token string, returning its claims.
// Any failure collapses to ErrInvalidToken.
func (s *Service) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	tk, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return s.now() }),
	)
	if err != nil || !tk.Valid || claims.UserID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// FromAuthHeader extracts the bearer token from an Authorization header
// value. A bare token without the "Bearer " prefix is accepted too.
func FromAuthHeader(header string) string {
	header = strings.TrimSpace(header)
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	return header
}
