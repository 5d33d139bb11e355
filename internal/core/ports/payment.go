package ports

import (
	"context"
	"time"
)

// CheckoutSession is a hosted payment page created for one cat adoption.
type CheckoutSession struct {
	ID  string
	URL string
}

// PaymentGateway abstracts the payment provider (Stripe).
type PaymentGateway interface {
	CreateCheckoutSession(ctx context.Context, catID uint, amountCents int64) (*CheckoutSession, error)
	CreatePaymentIntent(ctx context.Context, catID uint, amountCents int64) (clientSecret string, err error)
	RetrieveSession(ctx context.Context, sessionID string) (*SessionDetails, error)

	// ParseWebhookEvent verifies the provider signature over the raw payload
	// and decodes the event. An invalid signature is a hard failure.
	ParseWebhookEvent(payload []byte, signature string) (*PaymentEvent, error)
}

// SessionDetails is the subset of a checkout session the success page needs.
type SessionDetails struct {
	ID    string
	CatID uint
	Paid  bool
}

// PaymentEvent is a provider webhook notification relevant to adoptions.
type PaymentEvent struct {
	ID        string
	Type      string
	CatID     uint
	Timestamp time.Time
}

// PaymentService drives checkout creation and webhook handling.
type PaymentService interface {
	CreateCheckoutSession(ctx context.Context, catID uint) (*CheckoutSession, error)
	CreatePaymentIntent(ctx context.Context, catID uint) (string, error)
	RetrieveSession(ctx context.Context, sessionID string) (*SessionDetails, error)
	HandleWebhook(ctx context.Context, payload []byte, signature string) error
}

// AdoptionProcessor consumes completed-payment events, typically behind the
// sharded dispatcher so events for one cat are applied in order.
type AdoptionProcessor interface {
	Process(ctx context.Context, event PaymentEvent) error
}
