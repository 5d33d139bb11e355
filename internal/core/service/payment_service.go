package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/andrianarivo/haustiere/internal/core/domain"
	"github.com/andrianarivo/haustiere/internal/core/ports"
)

// WebhookDedup abstracts the idempotency store (Redis). Stripe retries
// webhook deliveries, so each event id must be applied at most once.
type WebhookDedup interface {
	IsDuplicate(ctx context.Context, eventID string) (bool, error)
	Mark(ctx context.Context, eventID string) error
}

// AdoptionEnqueuer hands completed-payment events to the async dispatcher.
type AdoptionEnqueuer interface {
	Enqueue(event ports.PaymentEvent)
}

// PaymentService creates Stripe checkout sessions and payment intents for
// adoption fees and handles the provider's webhook callbacks.
type PaymentService struct {
	gateway ports.PaymentGateway
	cats    ports.CatRepository
	dedup   WebhookDedup
	queue   AdoptionEnqueuer
	log     zerolog.Logger
}

func NewPaymentService(
	gateway ports.PaymentGateway,
	cats ports.CatRepository,
	dedup WebhookDedup,
	queue AdoptionEnqueuer,
	log zerolog.Logger,
) *PaymentService {
	return &PaymentService{
		gateway: gateway,
		cats:    cats,
		dedup:   dedup,
		queue:   queue,
		log:     log,
	}
}

// CreateCheckoutSession builds a hosted checkout page for the given cat.
// The cat must exist and still be available for adoption.
func (s *PaymentService) CreateCheckoutSession(ctx context.Context, catID uint) (*ports.CheckoutSession, error) {
	cat, err := s.cats.FindByID(ctx, catID)
	if err != nil {
		return nil, err
	}
	if cat.Status == domain.AdoptionAdopted {
		return nil, domain.ErrInvalidPayment
	}

	session, err := s.gateway.CreateCheckoutSession(ctx, catID, domain.AdoptionFeeCents)
	if err != nil {
		s.log.Error().Err(err).Uint("cat_id", catID).Msg("checkout session creation failed")
		return nil, err
	}

	s.log.Info().Uint("cat_id", catID).Str("session_id", session.ID).Msg("checkout session created")
	return session, nil
}

// CreatePaymentIntent is the mobile-client flow: the client confirms the
// payment in-app using the returned client secret.
func (s *PaymentService) CreatePaymentIntent(ctx context.Context, catID uint) (string, error) {
	cat, err := s.cats.FindByID(ctx, catID)
	if err != nil {
		return "", err
	}
	if cat.Status == domain.AdoptionAdopted {
		return "", domain.ErrInvalidPayment
	}

	return s.gateway.CreatePaymentIntent(ctx, catID, domain.AdoptionFeeCents)
}

func (s *PaymentService) RetrieveSession(ctx context.Context, sessionID string) (*ports.SessionDetails, error) {
	return s.gateway.RetrieveSession(ctx, sessionID)
}

// HandleWebhook verifies the provider signature, deduplicates by event id,
// and enqueues completed payments for async adoption processing. Event types
// we do not care about are acknowledged and dropped.
func (s *PaymentService) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	event, err := s.gateway.ParseWebhookEvent(payload, signature)
	if err != nil {
		return fmt.Errorf("webhook: %w", err)
	}

	switch event.Type {
	case "checkout.session.completed", "payment_intent.succeeded":
	default:
		s.log.Debug().Str("type", event.Type).Msg("ignoring webhook event")
		return nil
	}

	isDup, err := s.dedup.IsDuplicate(ctx, event.ID)
	if err != nil {
		s.log.Warn().Err(err).Str("event_id", event.ID).Msg("dedup check failed, processing anyway")
	} else if isDup {
		s.log.Debug().Str("event_id", event.ID).Msg("duplicate webhook event skipped")
		return nil
	}

	// Mark before enqueueing so a redelivery during processing is dropped.
	if markErr := s.dedup.Mark(ctx, event.ID); markErr != nil {
		s.log.Warn().Err(markErr).Str("event_id", event.ID).Msg("failed to set dedup key")
	}

	s.queue.Enqueue(*event)
	s.log.Info().Str("event_id", event.ID).Uint("cat_id", event.CatID).Msg("payment completed, adoption queued")
	return nil
}
