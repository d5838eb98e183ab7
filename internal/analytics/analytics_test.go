package analytics

import (
	"context"
	"errors"
	"sync"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type recordingTracker struct {
	mu     sync.Mutex
	events []Event
	err    error
	panic  bool
}

func (r *recordingTracker) Track(_ context.Context, event Event) error {
	if r.panic {
		panic("boom")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return r.err
}

func TestDispatcherDelivers(t *testing.T) {
	tracker := &recordingTracker{}
	d := NewDispatcher(tracker, zap.NewNop())

	d.Fire(EventFAQView, nil)
	d.Fire(EventFAQToggle, map[string]any{"id": "q1", "open": "true"})
	d.Wait()

	if len(tracker.events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(tracker.events))
	}
	for _, e := range tracker.events {
		if e.Time.IsZero() {
			t.Fatalf("expected event time to be set")
		}
	}
}

func TestDispatcherSwallowsFailures(t *testing.T) {
	core, observed := observer.New(zapcore.DebugLevel)
	d := NewDispatcher(&recordingTracker{err: errors.New("broker down")}, zap.New(core))

	d.Fire(EventJDDiffRun, map[string]any{"jobs": 2})
	d.Wait()

	if observed.FilterMessage("analytics event dropped").Len() != 1 {
		t.Fatalf("expected dropped event to be logged")
	}
}

func TestDispatcherRecoversPanics(t *testing.T) {
	d := NewDispatcher(&recordingTracker{panic: true}, zap.NewNop())
	d.Fire(EventStarCoached, nil)
	d.Wait()
}

func TestNilDispatcherAndTracker(t *testing.T) {
	var d *Dispatcher
	d.Fire(EventFAQView, nil)
	d.Wait()

	NewDispatcher(nil, nil).Fire(EventFAQView, nil)
}

func TestLogTracker(t *testing.T) {
	core, observed := observer.New(zapcore.DebugLevel)
	tracker := &LogTracker{Logger: zap.New(core)}

	if err := tracker.Track(context.Background(), Event{Name: EventFAQView}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entries := observed.All()
	if len(entries) != 1 || entries[0].ContextMap()["event"] != EventFAQView {
		t.Fatalf("unexpected log entries: %+v", entries)
	}
}
