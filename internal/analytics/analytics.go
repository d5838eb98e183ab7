// Package analytics dispatches best-effort usage events. Delivery failures
// never reach the caller.
package analytics

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	EventFAQView     = "faq_view"
	EventFAQToggle   = "faq_toggle"
	EventJDDiffRun   = "jd_diff_run"
	EventStarCoached = "star_coached"
	EventAnalysisRun = "analysis_run"

	defaultSendTimeout = 3 * time.Second
)

// Event is a named usage event with flat properties.
type Event struct {
	Name  string         `json:"name"`
	Props map[string]any `json:"props,omitempty"`
	Time  time.Time      `json:"time"`
}

// Tracker delivers a single event.
type Tracker interface {
	Track(ctx context.Context, event Event) error
}

// Dispatcher sends events in the background and swallows failures.
type Dispatcher struct {
	tracker Tracker
	logger  *zap.Logger
	timeout time.Duration
	wg      sync.WaitGroup
}

// NewDispatcher wraps tracker. A nil tracker drops every event.
func NewDispatcher(tracker Tracker, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{tracker: tracker, logger: logger, timeout: defaultSendTimeout}
}

// Fire schedules the event and returns immediately.
func (d *Dispatcher) Fire(name string, props map[string]any) {
	if d == nil || d.tracker == nil {
		return
	}

	event := Event{Name: name, Props: props, Time: time.Now().UTC()}

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				d.logger.Debug("analytics tracker panicked", zap.String("event", name), zap.Any("panic", r))
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()

		if err := d.tracker.Track(ctx, event); err != nil {
			d.logger.Debug("analytics event dropped", zap.String("event", name), zap.Error(err))
		}
	}()
}

// Wait blocks until scheduled events finish. Called before the process exits.
func (d *Dispatcher) Wait() {
	if d == nil {
		return
	}
	d.wg.Wait()
}

// LogTracker writes events to the logger at debug level.
type LogTracker struct {
	Logger *zap.Logger
}

func (l *LogTracker) Track(_ context.Context, event Event) error {
	l.Logger.Debug("analytics event", zap.String("event", event.Name), zap.Any("props", event.Props))
	return nil
}
