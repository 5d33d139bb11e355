package service

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/andrianarivo/haustiere/internal/core/domain"
	"github.com/andrianarivo/haustiere/internal/core/ports"
)

// bcryptCost matches the work factor used for every stored credential.
const bcryptCost = bcrypt.DefaultCost

// AuthService implements registration, login, and the shared
// authenticate/authorize procedure used by every transport adapter.
type AuthService struct {
	repo   ports.UserRepository
	tokens *TokenManager
}

func NewAuthService(repo ports.UserRepository, tokens *TokenManager) *AuthService {
	return &AuthService{repo: repo, tokens: tokens}
}

// Register creates a new account. Every registration gets the USER role;
// promotion to ADMIN happens only by direct administrative action.
func (s *AuthService) Register(ctx context.Context, email, password string) (*domain.User, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
	}

	return s.repo.Create(ctx, user)
}

// Login verifies the credential pair and mints a session token. Unknown email
// and wrong password both surface as ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

// Authenticate verifies the token and re-resolves the user from the store.
// The re-fetch makes authorization reflect the current persisted role rather
// than the claim frozen into the token at mint time; the same policy applies
// on every transport. A user deleted after mint yields ErrInvalidToken, never
// a not-found signal, so account existence does not leak.
func (s *AuthService) Authenticate(ctx context.Context, rawToken string) (*domain.User, error) {
	claims, err := s.tokens.Verify(rawToken)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	user, err := s.repo.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	return user, nil
}

// Authorize checks the acting role against an action's declared requirement.
// Actions that declare no roles are open to any authenticated identity.
func (s *AuthService) Authorize(acting domain.Role, required ...domain.Role) error {
	if len(required) == 0 {
		return nil
	}
	for _, r := range required {
		if acting == r {
			return nil
		}
	}
	return domain.ErrForbidden
}
