package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/andrianarivo/haustiere/internal/core/ports"
)

type recordingProcessor struct {
	mu     sync.Mutex
	events []ports.PaymentEvent
	done   chan struct{}
	want   int
}

func newRecordingProcessor(want int) *recordingProcessor {
	return &recordingProcessor{done: make(chan struct{}), want: want}
}

func (p *recordingProcessor) Process(_ context.Context, event ports.PaymentEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	if len(p.events) == p.want {
		close(p.done)
	}
	return nil
}

func (p *recordingProcessor) wait(t *testing.T) []ports.PaymentEvent {
	t.Helper()
	select {
	case <-p.done:
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for events")
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]ports.PaymentEvent, len(p.events))
	copy(out, p.events)
	return out
}

func TestDispatcher_ProcessesEnqueuedEvent(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	processor := newRecordingProcessor(1)
	d := NewDispatcher(2, processor, zerolog.Nop())
	d.Start(ctx)

	d.Enqueue(ports.PaymentEvent{ID: "evt_1", Type: "checkout.session.completed", CatID: 7})

	events := processor.wait(t)
	if events[0].CatID != 7 {
		t.Fatalf("unexpected event: %+v", events[0])
	}
}

func TestDispatcher_SameCatSameWorker(t *testing.T) {
	d := NewDispatcher(4, nil, zerolog.Nop())

	first := d.shardIndex(42)
	for i := 0; i < 10; i++ {
		if got := d.shardIndex(42); got != first {
			t.Fatalf("shard index not stable: %d vs %d", got, first)
		}
	}
}

func TestDispatcher_OrderPreservedPerCat(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	const n = 20
	processor := newRecordingProcessor(n)
	d := NewDispatcher(1, processor, zerolog.Nop())
	d.Start(ctx)

	for i := 0; i < n; i++ {
		d.Enqueue(ports.PaymentEvent{ID: "evt", Type: "checkout.session.completed", CatID: 5, Timestamp: time.Unix(int64(i), 0)})
	}

	events := processor.wait(t)
	for i := 1; i < len(events); i++ {
		if events[i].Timestamp.Before(events[i-1].Timestamp) {
			t.Fatalf("events out of order at %d", i)
		}
	}
}

func TestDispatcher_DefaultWorkerCount(t *testing.T) {
	d := NewDispatcher(0, nil, zerolog.Nop())
	if len(d.workers) != defaultWorkers {
		t.Fatalf("expected %d workers, got %d", defaultWorkers, len(d.workers))
	}
}
