package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/emploirapide/api/internal/models"
)

// TokenService issues and validates the HS256 session tokens the API uses
// in place of server-side session state.
type TokenService struct {
	secret   []byte
	tokenTTL time.Duration
}

// Claims carries the authenticated identity: subject is the user id, Role
// the app-level role.
type Claims struct {
	Role models.UserRole `json:"role"`
	jwt.RegisteredClaims
}

func NewTokenService(secret string, tokenTTL time.Duration) (*TokenService, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is required")
	}
	if tokenTTL <= 0 {
		return nil, errors.New("token ttl must be positive")
	}
	return &TokenService{secret: []byte(secret), tokenTTL: tokenTTL}, nil
}

// Issue signs a token for the given user.
func (s *TokenService) Issue(userID string, role models.UserRole) (string, error) {
	now := time.Now()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Validate parses and verifies a token, returning its claims.
func (s *TokenService) Validate(raw string) (*Claims, error) {
	if raw == "" {
		return nil, errors.New("token string is empty")
	}

	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	if tok == nil || !tok.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.Subject == "" {
		return nil, errors.New("missing subject")
	}
	if _, ok := models.ParseRole(string(claims.Role)); !ok {
		return nil, errors.New("unknown role")
	}
	return claims, nil
}
