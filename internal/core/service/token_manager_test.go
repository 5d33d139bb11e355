package service

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/andrianarivo/haustiere/internal/core/domain"
)

func TestTokenManager_IssueVerify_Roundtrip(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)

	token, err := tm.Issue(42, domain.RoleAdmin)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}

	claims, err := tm.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.UserID != 42 {
		t.Fatalf("expected user id 42, got %d", claims.UserID)
	}
	if claims.Role != domain.RoleAdmin {
		t.Fatalf("expected ADMIN role, got %s", claims.Role)
	}
}

func TestTokenManager_Verify_Idempotent(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)

	token, err := tm.Issue(7, domain.RoleUser)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	first, err := tm.Verify(token)
	if err != nil {
		t.Fatalf("first verify: %v", err)
	}
	second, err := tm.Verify(token)
	if err != nil {
		t.Fatalf("second verify: %v", err)
	}
	if *first != *second {
		t.Fatalf("claims differ between verifications: %+v vs %+v", first, second)
	}
}

func TestTokenManager_Verify_Expired(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)

	claims := jwt.MapClaims{
		"user_id": 1,
		"role":    string(domain.RoleUser),
		"iat":     time.Now().Add(-2 * time.Hour).Unix(),
		"exp":     time.Now().Add(-time.Hour).Unix(),
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := tm.Verify(expired); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestTokenManager_Verify_WrongSecret(t *testing.T) {
	other := NewTokenManager("other-secret", time.Hour)
	token, err := other.Issue(1, domain.RoleAdmin)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	tm := NewTokenManager("secret", time.Hour)
	if _, err := tm.Verify(token); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for wrong secret, got %v", err)
	}
}

func TestTokenManager_Verify_Tampered(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)
	token, err := tm.Issue(1, domain.RoleUser)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	tampered := token + "x"
	if _, err := tm.Verify(tampered); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for tampered token, got %v", err)
	}
}

func TestTokenManager_Verify_Malformed(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)

	for _, raw := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := tm.Verify(raw); !errors.Is(err, domain.ErrInvalidToken) {
			t.Fatalf("expected ErrInvalidToken for %q, got %v", raw, err)
		}
	}
}

func TestTokenManager_Verify_MissingClaims(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)

	claims := jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := tm.Verify(token); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for claimless token, got %v", err)
	}
}
