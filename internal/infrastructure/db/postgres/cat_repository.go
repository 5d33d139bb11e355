package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/andrianarivo/haustiere/internal/core/domain"
)

// CatRepository is the gorm-backed store for the cats resource.
type CatRepository struct {
	db *gorm.DB
}

func NewCatRepository(db *gorm.DB) *CatRepository {
	return &CatRepository{db: db}
}

func (r *CatRepository) Create(ctx context.Context, cat *domain.Cat) (*domain.Cat, error) {
	if err := r.db.WithContext(ctx).Create(cat).Error; err != nil {
		return nil, fmt.Errorf("insert cat: %w", err)
	}
	return cat, nil
}

func (r *CatRepository) FindAll(ctx context.Context) ([]domain.Cat, error) {
	var cats []domain.Cat
	if err := r.db.WithContext(ctx).Order("id").Find(&cats).Error; err != nil {
		return nil, fmt.Errorf("list cats: %w", err)
	}
	return cats, nil
}

func (r *CatRepository) FindByID(ctx context.Context, id uint) (*domain.Cat, error) {
	var cat domain.Cat
	if err := r.db.WithContext(ctx).First(&cat, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCatNotFound
		}
		return nil, fmt.Errorf("find cat: %w", err)
	}
	return &cat, nil
}

func (r *CatRepository) Update(ctx context.Context, cat *domain.Cat) (*domain.Cat, error) {
	res := r.db.WithContext(ctx).Model(&domain.Cat{}).Where("id = ?", cat.ID).Updates(map[string]any{
		"name":  cat.Name,
		"age":   cat.Age,
		"breed": cat.Breed,
	})
	if res.Error != nil {
		return nil, fmt.Errorf("update cat: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, domain.ErrCatNotFound
	}
	return r.FindByID(ctx, cat.ID)
}

func (r *CatRepository) Delete(ctx context.Context, id uint) (*domain.Cat, error) {
	cat, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Delete(&domain.Cat{}, id).Error; err != nil {
		return nil, fmt.Errorf("delete cat: %w", err)
	}
	return cat, nil
}

func (r *CatRepository) UpdateStatus(ctx context.Context, id uint, status domain.AdoptionStatus) error {
	res := r.db.WithContext(ctx).Model(&domain.Cat{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("update cat status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrCatNotFound
	}
	return nil
}
