package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/hospital-ms/portal/internal/core/domain"
)

type recordingProcessor struct {
	mu     sync.Mutex
	events []domain.AccessEvent
	done   chan struct{}
	want   int
}

func (p *recordingProcessor) Process(_ context.Context, e domain.AccessEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	if len(p.events) == p.want {
		close(p.done)
	}
	return nil
}

func TestDispatcher_PreservesPerClientOrder(t *testing.T) {
	proc := &recordingProcessor{done: make(chan struct{}), want: 20}
	d := NewDispatcher(3, proc, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	for i := 0; i < 10; i++ {
		d.Record(domain.AccessEvent{ClientID: "a", Path: string(rune('a' + i))})
		d.Record(domain.AccessEvent{ClientID: "b", Path: string(rune('a' + i))})
	}

	select {
	case <-proc.done:
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for events")
	}

	proc.mu.Lock()
	defer proc.mu.Unlock()
	last := map[string]string{}
	for _, e := range proc.events {
		if e.Path <= last[e.ClientID] {
			t.Fatalf("out of order for client %s: %q after %q", e.ClientID, e.Path, last[e.ClientID])
		}
		last[e.ClientID] = e.Path
	}
}

func TestDispatcher_DropsWhenFull(t *testing.T) {
	proc := &recordingProcessor{done: make(chan struct{}), want: -1}
	d := NewDispatcher(1, proc, zerolog.Nop())

	// Workers are not started, so the buffer fills and further events drop
	// instead of blocking the caller.
	for i := 0; i < channelBuffer+10; i++ {
		d.Record(domain.AccessEvent{ClientID: "a"})
	}
	if got := len(d.workers[0]); got != channelBuffer {
		t.Fatalf("expected full buffer of %d, got %d", channelBuffer, got)
	}
}

func TestDispatcher_DefaultWorkers(t *testing.T) {
	d := NewDispatcher(0, &recordingProcessor{}, zerolog.Nop())
	if len(d.workers) != defaultWorkers {
		t.Fatalf("expected %d workers, got %d", defaultWorkers, len(d.workers))
	}
}
