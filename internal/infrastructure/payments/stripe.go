package payments

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/client"
	"github.com/stripe/stripe-go/v81/webhook"

	"github.com/andrianarivo/haustiere/internal/core/domain"
	"github.com/andrianarivo/haustiere/internal/core/ports"
)

// catIDMetadataKey is the metadata field carrying the cat being adopted
// through the whole checkout/webhook roundtrip.
const catIDMetadataKey = "catId"

// StripeGateway implements ports.PaymentGateway against the Stripe API.
type StripeGateway struct {
	api           *client.API
	webhookSecret string
	frontendURL   string
}

func NewStripeGateway(secretKey, webhookSecret, frontendURL string) *StripeGateway {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeGateway{
		api:           api,
		webhookSecret: webhookSecret,
		frontendURL:   frontendURL,
	}
}

func (g *StripeGateway) CreateCheckoutSession(ctx context.Context, catID uint, amountCents int64) (*ports.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Params:             stripe.Params{Context: ctx},
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(string(stripe.CurrencyUSD)),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name:        stripe.String(fmt.Sprintf("Cat #%d", catID)),
					Description: stripe.String("Adorable cat for adoption"),
				},
				UnitAmount: stripe.Int64(amountCents),
			},
			Quantity: stripe.Int64(1),
		}},
		SuccessURL: stripe.String(g.frontendURL + "/success?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:  stripe.String(g.frontendURL + "/cancel"),
	}
	params.AddMetadata(catIDMetadataKey, strconv.FormatUint(uint64(catID), 10))

	session, err := g.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe checkout session: %w", err)
	}
	if session.URL == "" {
		return nil, domain.ErrInvalidPayment
	}

	return &ports.CheckoutSession{ID: session.ID, URL: session.URL}, nil
}

func (g *StripeGateway) CreatePaymentIntent(ctx context.Context, catID uint, amountCents int64) (string, error) {
	params := &stripe.PaymentIntentParams{
		Params:   stripe.Params{Context: ctx},
		Amount:   stripe.Int64(amountCents),
		Currency: stripe.String(string(stripe.CurrencyUSD)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.AddMetadata(catIDMetadataKey, strconv.FormatUint(uint64(catID), 10))

	intent, err := g.api.PaymentIntents.New(params)
	if err != nil {
		return "", fmt.Errorf("stripe payment intent: %w", err)
	}
	if intent.ClientSecret == "" {
		return "", domain.ErrInvalidPayment
	}
	return intent.ClientSecret, nil
}

func (g *StripeGateway) RetrieveSession(ctx context.Context, sessionID string) (*ports.SessionDetails, error) {
	session, err := g.api.CheckoutSessions.Get(sessionID, &stripe.CheckoutSessionParams{
		Params: stripe.Params{Context: ctx},
	})
	if err != nil {
		return nil, fmt.Errorf("stripe retrieve session: %w", err)
	}

	catID, err := catIDFromMetadata(session.Metadata)
	if err != nil {
		return nil, err
	}

	return &ports.SessionDetails{
		ID:    session.ID,
		CatID: catID,
		Paid:  session.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid,
	}, nil
}

// ParseWebhookEvent verifies the Stripe-Signature header over the raw payload
// and extracts the cat id from the event's metadata.
func (g *StripeGateway) ParseWebhookEvent(payload []byte, signature string) (*ports.PaymentEvent, error) {
	event, err := webhook.ConstructEvent(payload, signature, g.webhookSecret)
	if err != nil {
		return nil, fmt.Errorf("webhook signature: %w", err)
	}

	out := &ports.PaymentEvent{
		ID:        event.ID,
		Type:      string(event.Type),
		Timestamp: time.Unix(event.Created, 0).UTC(),
	}

	switch event.Type {
	case "checkout.session.completed":
		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			return nil, fmt.Errorf("webhook payload: %w", err)
		}
		if out.CatID, err = catIDFromMetadata(session.Metadata); err != nil {
			return nil, err
		}
	case "payment_intent.succeeded":
		var intent stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
			return nil, fmt.Errorf("webhook payload: %w", err)
		}
		if out.CatID, err = catIDFromMetadata(intent.Metadata); err != nil {
			return nil, err
		}
	}

	return out, nil
}

func catIDFromMetadata(md map[string]string) (uint, error) {
	raw, ok := md[catIDMetadataKey]
	if !ok {
		return 0, domain.ErrInvalidPayment
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidPayment
	}
	return uint(id), nil
}
