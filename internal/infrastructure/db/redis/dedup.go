package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// dedupTTL is longer than Stripe's retry window, so every redelivery of an
// already-applied event still hits the key.
const dedupTTL = 24 * time.Hour

// WebhookDedup provides idempotency checks for webhook deliveries backed by
// Redis. Key format: webhook:<event_id>
type WebhookDedup struct {
	client *redis.Client
}

// NewWebhookDedup creates a WebhookDedup wrapping the given Redis client.
func NewWebhookDedup(client *redis.Client) *WebhookDedup {
	return &WebhookDedup{client: client}
}

// IsDuplicate reports whether this event has already been processed.
func (d *WebhookDedup) IsDuplicate(ctx context.Context, eventID string) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(eventID)).Result()
	if err != nil {
		return false, fmt.Errorf("dedup check: %w", err)
	}
	return n > 0, nil
}

// Mark records that this event has been processed (expires after dedupTTL).
func (d *WebhookDedup) Mark(ctx context.Context, eventID string) error {
	return d.client.Set(ctx, d.key(eventID), "1", dedupTTL).Err()
}

func (d *WebhookDedup) key(eventID string) string {
	return "webhook:" + eventID
}
