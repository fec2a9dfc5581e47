package store

import (
	"context"
	"testing"
	"time"

	"tableflip.dev/trip/pkg/itinerary"
)

func TestPersistenceWatchEmitsDocumentChanges(t *testing.T) {
	p, _ := newTestPersistence(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := p.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}

	// Allow watcher goroutine to subscribe before writing.
	time.Sleep(50 * time.Millisecond)

	if err := p.Save(ctx, itinerary.Seed(seedTime)); err != nil {
		t.Fatalf("save: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case evt := <-ch:
			if evt.Type == EventDocumentChanged {
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for document change event")
		}
	}
}

func TestEventThrottleCoalesces(t *testing.T) {
	th := newEventThrottle(20 * time.Millisecond)
	defer th.Stop()

	got := make(chan Event, 8)
	send := func(ev Event) { got <- ev }
	for i := 0; i < 5; i++ {
		th.Enqueue(Event{Type: EventDocumentChanged}, send)
	}
	th.Enqueue(Event{Type: EventThemeChanged}, send)

	time.Sleep(100 * time.Millisecond)
	if len(got) != 2 {
		t.Fatalf("expected 2 coalesced events, got %d", len(got))
	}
	if first := <-got; first.Type != EventDocumentChanged {
		t.Fatalf("expected document event first, got %v", first.Type)
	}
}

func TestEventThrottleStopped(t *testing.T) {
	th := newEventThrottle(10 * time.Millisecond)
	got := make(chan Event, 1)
	th.Enqueue(Event{Type: EventDocumentChanged}, func(ev Event) { got <- ev })
	th.Stop()
	time.Sleep(40 * time.Millisecond)
	if len(got) != 0 {
		t.Fatalf("expected no events after stop")
	}
}
