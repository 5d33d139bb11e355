package graphql

import (
	"context"

	"github.com/andrianarivo/haustiere/internal/core/domain"
)

type userKey struct{}

// WithUser stores the authenticated user on the request context so resolvers
// can run the authorization gate.
func WithUser(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, userKey{}, user)
}

// UserFrom returns the authenticated user, or nil when absent.
func UserFrom(ctx context.Context) *domain.User {
	user, _ := ctx.Value(userKey{}).(*domain.User)
	return user
}
