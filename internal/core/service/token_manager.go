package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/andrianarivo/haustiere/internal/core/domain"
)

const defaultTokenTTL = 24 * time.Hour

// TokenManager issues and verifies the signed session tokens that carry user
// identity across all three transports. Tokens are stateless: possession of a
// validly signed, unexpired token is the whole proof, and logout is purely
// client-local. Rotating the secret invalidates every outstanding token.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

// Issue mints an HS256 token embedding the user's id and role alongside the
// standard issued-at/expiry claims.
func (m *TokenManager) Issue(userID uint, role domain.Role) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    string(role),
		"iat":     now.Unix(),
		"exp":     now.Add(m.ttl).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify validates signature and expiry and returns the embedded claims.
// Malformed structure, bad signature, and expiry all collapse into
// domain.ErrInvalidToken so callers cannot tell which check failed.
func (m *TokenManager) Verify(raw string) (*domain.TokenClaims, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return m.secret, nil
	})
	if err != nil || !tkn.Valid {
		return nil, domain.ErrInvalidToken
	}

	userID, ok := claims["user_id"].(float64)
	if !ok || userID <= 0 {
		return nil, domain.ErrInvalidToken
	}
	roleStr, _ := claims["role"].(string)
	role := domain.Role(roleStr)
	if !role.Valid() {
		return nil, domain.ErrInvalidToken
	}

	return &domain.TokenClaims{UserID: uint(userID), Role: role}, nil
}
