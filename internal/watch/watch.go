// Package watch turns pointer movement into activity events. It is the
// only part of the tracker that touches the host environment; the
// ledger consumes the resulting timestamps and nothing else.
package watch

import (
	"context"
	"fmt"
	"time"

	"github.com/tvesterlund/workhours/internal/datetime"
	"github.com/tvesterlund/workhours/internal/ledger"
)

// Source reports the current pointer position.
type Source interface {
	Position() (x, y int, err error)
}

type position struct {
	x, y int
}

// Watcher polls a Source on a fixed period and records an activity
// event whenever the pointer has moved since the previous sample.
type Watcher struct {
	Source   Source
	Ledger   *ledger.Ledger
	Interval time.Duration

	// OnActivity, if set, runs after each recorded activity (the watch
	// command uses it to rewrite the stats file).
	OnActivity func(at datetime.DateTime)

	// Clock defaults to datetime.Now; tests replace it.
	Clock func() datetime.DateTime
}

// Run polls until ctx is cancelled. The first successful sample counts
// as activity: the process was just started by someone. Source and
// store failures end the loop; retrying is the caller's call.
func (w *Watcher) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.Interval)
	defer ticker.Stop()

	// Latest position is loop state, deliberately not a field: one Run,
	// one pointer history.
	var last *position
	var err error
	if last, err = w.sample(last); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if last, err = w.sample(last); err != nil {
				return err
			}
		}
	}
}

// sample takes one pointer reading and records activity if it differs
// from the previous one.
func (w *Watcher) sample(last *position) (*position, error) {
	x, y, err := w.Source.Position()
	if err != nil {
		return last, fmt.Errorf("read pointer: %w", err)
	}
	current := position{x: x, y: y}
	if last != nil && current == *last {
		return last, nil
	}

	at := w.now()
	if err := w.Ledger.RecordActivity(at); err != nil {
		return &current, fmt.Errorf("record activity: %w", err)
	}
	if w.OnActivity != nil {
		w.OnActivity(at)
	}
	return &current, nil
}

func (w *Watcher) now() datetime.DateTime {
	if w.Clock != nil {
		return w.Clock()
	}
	return datetime.Now()
}
