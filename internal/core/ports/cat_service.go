package ports

import (
	"context"

	"github.com/andrianarivo/haustiere/internal/core/domain"
)

// CreateCatInput carries the fields accepted when listing a new cat.
type CreateCatInput struct {
	Name  string
	Age   int
	Breed string
}

// UpdateCatInput carries a partial update; nil fields are left unchanged.
type UpdateCatInput struct {
	Name  *string
	Age   *int
	Breed *string
}

// CatEventPublisher fans cat mutations out to live listeners (the WebSocket
// hub). Implementations must not block the calling goroutine.
type CatEventPublisher interface {
	CatCreated(cat *domain.Cat)
	CatUpdated(cat *domain.Cat)
	CatRemoved(cat *domain.Cat)
}

type CatService interface {
	Create(ctx context.Context, input CreateCatInput) (*domain.Cat, error)
	FindAll(ctx context.Context) ([]domain.Cat, error)
	FindOne(ctx context.Context, id uint) (*domain.Cat, error)
	Update(ctx context.Context, id uint, input UpdateCatInput) (*domain.Cat, error)
	Remove(ctx context.Context, id uint) (*domain.Cat, error)
}
