package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/andrianarivo/haustiere/internal/api/metrics"
	"github.com/andrianarivo/haustiere/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 64
)

// Dispatcher routes completed-payment events to a fixed set of workers using
// consistent hashing on the cat id, guaranteeing per-cat event ordering.
type Dispatcher struct {
	workers   []chan ports.PaymentEvent
	processor ports.AdoptionProcessor
	log       zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, processor ports.AdoptionProcessor, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:   make([]chan ports.PaymentEvent, numWorkers),
		processor: processor,
		log:       log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.PaymentEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends an event to the worker responsible for its cat.
// The call is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(event ports.PaymentEvent) {
	idx := d.shardIndex(event.CatID)
	d.workers[idx] <- event
	metrics.AdoptionQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
}

// shardIndex maps a cat id deterministically to a worker index.
func (d *Dispatcher) shardIndex(catID uint) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(strconv.FormatUint(uint64(catID), 10)))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.PaymentEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			if err := d.processor.Process(ctx, event); err != nil {
				metrics.AdoptionsErrorsTotal.Inc()
				d.log.Error().Err(err).
					Uint("cat_id", event.CatID).
					Int("worker_id", id).
					Msg("adoption processing failed")
				continue
			}
			metrics.AdoptionsProcessedTotal.Inc()
			metrics.AdoptionQueueDepth.WithLabelValues(strconv.Itoa(id)).Set(float64(len(ch)))
		}
	}
}
