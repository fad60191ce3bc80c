package watch

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/tvesterlund/workhours/internal/datetime"
	"github.com/tvesterlund/workhours/internal/ledger"
	"github.com/tvesterlund/workhours/internal/store"
)

type fakeSource struct {
	mu        sync.Mutex
	positions [][2]int
	i         int
	err       error
}

func (f *fakeSource) Position() (int, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return 0, 0, f.err
	}
	p := f.positions[f.i]
	if f.i < len(f.positions)-1 {
		f.i++
	}
	return p[0], p[1], nil
}

func (f *fakeSource) setErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

// fixedClock hands out minute-stepped timestamps on a known Monday.
type fixedClock struct {
	minute int
}

func (c *fixedClock) now() datetime.DateTime {
	c.minute++
	return datetime.DateTime{
		Date: datetime.Date{Year: 2026, Month: time.August, Day: 24},
		Time: datetime.TimeOfDay{Hour: 10, Minute: c.minute},
	}
}

func newTestWatcher(t *testing.T, src Source) (*Watcher, *ledger.Ledger) {
	t.Helper()
	s, err := store.NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	l := ledger.New(s, ledger.DefaultConfig())
	clock := &fixedClock{}
	return &Watcher{
		Source:   src,
		Ledger:   l,
		Interval: time.Millisecond,
		Clock:    clock.now,
	}, l
}

func TestSampleFirstReadingCountsAsActivity(t *testing.T) {
	w, l := newTestWatcher(t, &fakeSource{positions: [][2]int{{100, 100}}})

	last, err := w.sample(nil)
	if err != nil {
		t.Fatal(err)
	}
	if last == nil {
		t.Fatal("sample should return a position")
	}

	d := datetime.Date{Year: 2026, Month: time.August, Day: 24}
	slots, err := l.Slots(d)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := slots[ledger.FirstOfDay]; !ok {
		t.Fatal("first sample should record activity")
	}
}

func TestSampleIgnoresStationaryPointer(t *testing.T) {
	w, l := newTestWatcher(t, &fakeSource{positions: [][2]int{{100, 100}, {100, 100}, {200, 150}}})

	last, err := w.sample(nil) // records (first reading)
	if err != nil {
		t.Fatal(err)
	}
	last, err = w.sample(last) // same position: no record
	if err != nil {
		t.Fatal(err)
	}
	last, err = w.sample(last) // moved: records
	if err != nil {
		t.Fatal(err)
	}
	_ = last

	d := datetime.Date{Year: 2026, Month: time.August, Day: 24}
	slots, _ := l.Slots(d)
	// Clock ticks once per recorded activity: first at 10:01, the move
	// at 10:02. A stationary sample in between must not tick.
	if got := slots[ledger.LastOfDay]; got != (datetime.TimeOfDay{Hour: 10, Minute: 2}) {
		t.Fatalf("last of day = %v, want 10:02 (exactly two recordings)", got)
	}
}

func TestSampleSourceErrorPropagates(t *testing.T) {
	wantErr := errors.New("display gone")
	w, _ := newTestWatcher(t, &fakeSource{err: wantErr})

	if _, err := w.sample(nil); !errors.Is(err, wantErr) {
		t.Fatalf("err = %v, want wrapped %v", err, wantErr)
	}
}

func TestOnActivityCallback(t *testing.T) {
	w, _ := newTestWatcher(t, &fakeSource{positions: [][2]int{{1, 1}, {1, 1}, {2, 2}}})

	var calls []datetime.DateTime
	w.OnActivity = func(at datetime.DateTime) { calls = append(calls, at) }

	last, _ := w.sample(nil)
	last, _ = w.sample(last)
	w.sample(last)

	if len(calls) != 2 {
		t.Fatalf("OnActivity called %d times, want 2", len(calls))
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	w, _ := newTestWatcher(t, &fakeSource{positions: [][2]int{{1, 1}}})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("Run returned %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}

func TestRunStopsOnSourceError(t *testing.T) {
	src := &fakeSource{positions: [][2]int{{1, 1}}}
	w, _ := newTestWatcher(t, src)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	time.Sleep(5 * time.Millisecond)
	src.setErr(errors.New("display gone"))

	select {
	case err := <-done:
		if err == nil {
			t.Fatal("Run should surface the source error")
		}
	case <-time.After(time.Second):
		t.Fatal("Run did not stop on source error")
	}
}
