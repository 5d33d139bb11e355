package ports

import (
	"context"

	"github.com/andrianarivo/haustiere/internal/core/domain"
)

// UserRepository defines the credential store collaborator contract.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id uint) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
