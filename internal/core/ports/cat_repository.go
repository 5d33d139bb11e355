package ports

import (
	"context"

	"github.com/andrianarivo/haustiere/internal/core/domain"
)

// CatRepository defines persistence for the cats resource.
type CatRepository interface {
	Create(ctx context.Context, cat *domain.Cat) (*domain.Cat, error)
	FindAll(ctx context.Context) ([]domain.Cat, error)
	FindByID(ctx context.Context, id uint) (*domain.Cat, error)
	Update(ctx context.Context, cat *domain.Cat) (*domain.Cat, error)
	Delete(ctx context.Context, id uint) (*domain.Cat, error)
	UpdateStatus(ctx context.Context, id uint, status domain.AdoptionStatus) error
}
