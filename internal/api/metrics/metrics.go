// Package metrics defines and registers all custom Prometheus metrics for the
// adoption service. It is the single source of truth for metric names, labels,
// and help strings. Registration happens through promauto at package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "adoption"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// RegistrationsTotal counts successfully created accounts.
var RegistrationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of accounts created.",
	},
)

// LoginsTotal counts login attempts by outcome ("success" or "failure").
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by outcome.",
	},
	[]string{"outcome"},
)

// AuthFailuresTotal counts rejected requests on any transport.
// Labels:
//   - transport: "rest", "graphql", or "ws"
//   - reason: "unauthenticated" or "forbidden"
var AuthFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_failures_total",
		Help:      "Total number of requests rejected by the auth layer.",
	},
	[]string{"transport", "reason"},
)

// ── Cat metrics ───────────────────────────────────────────────────────────────

// CatsCreatedTotal counts cats listed for adoption.
var CatsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cats_created_total",
		Help:      "Total number of cats listed for adoption.",
	},
)

// ── Payment metrics ───────────────────────────────────────────────────────────

// WebhookEventsTotal counts webhook deliveries by result
// ("processed" or "rejected").
var WebhookEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "webhook_events_total",
		Help:      "Total number of payment webhook deliveries, by result.",
	},
	[]string{"result"},
)

// AdoptionsProcessedTotal counts adoptions applied by the dispatcher workers.
var AdoptionsProcessedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "adoptions_processed_total",
		Help:      "Total number of completed adoptions applied.",
	},
)

// AdoptionsErrorsTotal counts adoption events that failed processing.
var AdoptionsErrorsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "adoptions_errors_total",
		Help:      "Total number of adoption events that failed processing.",
	},
)

// AdoptionQueueDepth tracks events waiting in each dispatcher worker channel.
var AdoptionQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "adoption_queue_depth",
		Help:      "Current number of events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// ── WebSocket metrics ─────────────────────────────────────────────────────────

// WSConnectionsActive tracks currently open WebSocket connections.
var WSConnectionsActive = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "ws_connections_active",
		Help:      "Number of currently open WebSocket connections.",
	},
)
