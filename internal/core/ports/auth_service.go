package ports

import (
	"context"

	"github.com/andrianarivo/haustiere/internal/core/domain"
)

// AuthService is the single authentication/authorization procedure shared by
// the REST, GraphQL, and WebSocket adapters. Each transport only extracts the
// token from its own envelope; everything else goes through here.
type AuthService interface {
	Register(ctx context.Context, email, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)

	// Authenticate verifies a raw token and re-resolves the user from the
	// credential store, so authorization always reflects the current
	// persisted role. Any failure yields domain.ErrInvalidToken.
	Authenticate(ctx context.Context, rawToken string) (*domain.User, error)

	// Authorize checks the acting role against an action's required set.
	// An empty requirement admits any authenticated role.
	Authorize(acting domain.Role, required ...domain.Role) error
}
