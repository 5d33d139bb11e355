package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/andrianarivo/haustiere/internal/core/domain"
	"github.com/andrianarivo/haustiere/internal/core/ports"
)

// CatService implements CRUD over the cats resource. Every mutation is
// published to the event publisher so WebSocket clients see changes made
// through any transport.
type CatService struct {
	repo      ports.CatRepository
	publisher ports.CatEventPublisher
	logger    zerolog.Logger
}

func NewCatService(repo ports.CatRepository, publisher ports.CatEventPublisher, logger zerolog.Logger) *CatService {
	return &CatService{repo: repo, publisher: publisher, logger: logger}
}

func (s *CatService) Create(ctx context.Context, input ports.CreateCatInput) (*domain.Cat, error) {
	cat := &domain.Cat{
		Name:   input.Name,
		Age:    input.Age,
		Breed:  input.Breed,
		Status: domain.AdoptionAvailable,
	}

	created, err := s.repo.Create(ctx, cat)
	if err != nil {
		s.logger.Error().Err(err).Str("name", input.Name).Msg("failed to create cat")
		return nil, err
	}

	s.logger.Info().Uint("cat_id", created.ID).Str("name", created.Name).Msg("cat listed for adoption")

	if s.publisher != nil {
		s.publisher.CatCreated(created)
	}
	return created, nil
}

func (s *CatService) FindAll(ctx context.Context) ([]domain.Cat, error) {
	return s.repo.FindAll(ctx)
}

func (s *CatService) FindOne(ctx context.Context, id uint) (*domain.Cat, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *CatService) Update(ctx context.Context, id uint, input ports.UpdateCatInput) (*domain.Cat, error) {
	cat, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		cat.Name = *input.Name
	}
	if input.Age != nil {
		cat.Age = *input.Age
	}
	if input.Breed != nil {
		cat.Breed = *input.Breed
	}

	updated, err := s.repo.Update(ctx, cat)
	if err != nil {
		s.logger.Error().Err(err).Uint("cat_id", id).Msg("failed to update cat")
		return nil, err
	}

	if s.publisher != nil {
		s.publisher.CatUpdated(updated)
	}
	return updated, nil
}

func (s *CatService) Remove(ctx context.Context, id uint) (*domain.Cat, error) {
	removed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Uint("cat_id", id).Msg("cat removed")

	if s.publisher != nil {
		s.publisher.CatRemoved(removed)
	}
	return removed, nil
}
