package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/andrianarivo/haustiere/internal/core/domain"
	"github.com/andrianarivo/haustiere/internal/core/ports"
)

// AdoptionService applies completed-payment events: the paid-for cat is
// marked adopted and the change is broadcast to live listeners. It runs on
// the dispatcher's worker goroutines.
type AdoptionService struct {
	cats      ports.CatRepository
	publisher ports.CatEventPublisher
	log       zerolog.Logger
}

func NewAdoptionService(cats ports.CatRepository, publisher ports.CatEventPublisher, log zerolog.Logger) *AdoptionService {
	return &AdoptionService{cats: cats, publisher: publisher, log: log}
}

// Process marks the event's cat as adopted. Applying the same event twice is
// harmless (the status write is idempotent), so redeliveries that slip past
// the webhook dedup do no damage.
func (s *AdoptionService) Process(ctx context.Context, event ports.PaymentEvent) error {
	if err := s.cats.UpdateStatus(ctx, event.CatID, domain.AdoptionAdopted); err != nil {
		return fmt.Errorf("process adoption: %w", err)
	}

	s.log.Info().
		Uint("cat_id", event.CatID).
		Str("event_id", event.ID).
		Msg("adoption completed")

	if s.publisher != nil {
		cat, err := s.cats.FindByID(ctx, event.CatID)
		if err == nil {
			s.publisher.CatUpdated(cat)
		}
	}
	return nil
}
