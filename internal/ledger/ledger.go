// Package ledger decides which of the four daily slot records an
// activity timestamp updates, and derives work durations from them.
package ledger

import (
	"fmt"
	"sync"
	"time"

	"github.com/tvesterlund/workhours/internal/datetime"
)

// SlotKind names one of the four daily markers. The numeric values are
// the stable storage representation and must not be reordered.
type SlotKind int

const (
	FirstOfDay SlotKind = iota
	LastOfMorning
	FirstOfAfternoon
	LastOfDay
)

var slotNames = map[SlotKind]string{
	FirstOfDay:       "first_of_day",
	LastOfMorning:    "last_of_morning",
	FirstOfAfternoon: "first_of_afternoon",
	LastOfDay:        "last_of_day",
}

func (k SlotKind) String() string {
	if name, ok := slotNames[k]; ok {
		return name
	}
	return fmt.Sprintf("slot(%d)", int(k))
}

// SlotKindFrom converts a stored representation back to a SlotKind.
func SlotKindFrom(v int) (SlotKind, error) {
	k := SlotKind(v)
	if _, ok := slotNames[k]; !ok {
		return 0, fmt.Errorf("unknown slot kind %d", v)
	}
	return k, nil
}

// Entry is one persisted slot record. The ID is assigned by the store
// and stays stable when the timestamp is overwritten.
type Entry struct {
	ID   int64
	Kind SlotKind
	At   datetime.DateTime
}

// Config bounds the working day. It is loaded from the settings table
// at startup; SetConfig swaps it when the user edits their hours.
type Config struct {
	StartOfDay       datetime.TimeOfDay // activity before this is discarded
	EndOfDay         datetime.TimeOfDay // activity after this is discarded
	EndOfMorning     datetime.TimeOfDay // upper bound for the last-of-morning slot
	StartOfAfternoon datetime.TimeOfDay // lower bound for the first-of-afternoon slot
	ValidDayMinimum  time.Duration      // days shorter than this are excluded from averages
}

// DefaultConfig mirrors the bounds the tracker has always shipped with:
// a 08:45–21:00 day, lunch pivot at 13:00, 7 hours to count as a real
// working day.
func DefaultConfig() Config {
	return Config{
		StartOfDay:       datetime.TimeOfDay{Hour: 8, Minute: 45},
		EndOfDay:         datetime.TimeOfDay{Hour: 21, Minute: 0},
		EndOfMorning:     datetime.TimeOfDay{Hour: 13, Minute: 0},
		StartOfAfternoon: datetime.TimeOfDay{Hour: 13, Minute: 0},
		ValidDayMinimum:  7 * time.Hour,
	}
}

// Store is the persistence the ledger needs: point lookups and
// insert/overwrite keyed by (date, kind). Implemented by
// internal/store on SQLite.
type Store interface {
	InsertSlot(date datetime.Date, kind SlotKind, at datetime.TimeOfDay) (int64, error)
	UpdateSlot(id int64, at datetime.TimeOfDay) error
	QuerySlot(date datetime.Date, kind SlotKind) (*Entry, error)
	EarliestSlot() (*Entry, error)
}

// Ledger applies the slot rules. It keeps no cache: every decision
// re-reads current state from the store, so a restarted process picks
// up exactly where it left off.
type Ledger struct {
	store Store
	cfg   Config

	// Slot rules are check-then-act; the mutex makes RecordActivity and
	// the multi-slot reads mutually exclusive so a day's slots are
	// always observed at one consistent point.
	mu sync.Mutex
}

func New(store Store, cfg Config) *Ledger {
	return &Ledger{store: store, cfg: cfg}
}

func (l *Ledger) Config() Config {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cfg
}

// SetConfig replaces the working-hours configuration for subsequent
// recordings and aggregations. Slots already stored are not revisited.
func (l *Ledger) SetConfig(cfg Config) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cfg = cfg
}

// RecordActivity folds one activity observation into the day's slots.
// Weekend activity and activity outside the configured day bounds is
// discarded without touching the store.
func (l *Ledger) RecordActivity(at datetime.DateTime) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if at.Date.IsWeekend() {
		return nil
	}
	if at.Time.Before(l.cfg.StartOfDay) || at.Time.After(l.cfg.EndOfDay) {
		return nil
	}

	if err := l.fixAtFirst(at, FirstOfDay); err != nil {
		return err
	}
	if !at.Time.After(l.cfg.EndOfMorning) {
		if err := l.extendToLatest(at, LastOfMorning); err != nil {
			return err
		}
	}
	if !at.Time.Before(l.cfg.StartOfAfternoon) {
		if err := l.fixAtFirst(at, FirstOfAfternoon); err != nil {
			return err
		}
	}
	return l.extendToLatest(at, LastOfDay)
}

// fixAtFirst inserts the slot on the first qualifying activity of the
// day and never touches it again.
func (l *Ledger) fixAtFirst(at datetime.DateTime, kind SlotKind) error {
	existing, err := l.store.QuerySlot(at.Date, kind)
	if err != nil {
		return fmt.Errorf("query %s: %w", kind, err)
	}
	if existing != nil {
		return nil
	}
	if _, err := l.store.InsertSlot(at.Date, kind, at.Time); err != nil {
		return fmt.Errorf("insert %s: %w", kind, err)
	}
	return nil
}

// extendToLatest inserts on first activity, then overwrites the
// timestamp in place (identity preserved) on every later one.
func (l *Ledger) extendToLatest(at datetime.DateTime, kind SlotKind) error {
	existing, err := l.store.QuerySlot(at.Date, kind)
	if err != nil {
		return fmt.Errorf("query %s: %w", kind, err)
	}
	if existing == nil {
		if _, err := l.store.InsertSlot(at.Date, kind, at.Time); err != nil {
			return fmt.Errorf("insert %s: %w", kind, err)
		}
		return nil
	}
	if err := l.store.UpdateSlot(existing.ID, at.Time); err != nil {
		return fmt.Errorf("update %s: %w", kind, err)
	}
	return nil
}

// Slot returns the recorded time for one slot of a day, or nil when
// the day has no such record.
func (l *Ledger) Slot(date datetime.Date, kind SlotKind) (*datetime.TimeOfDay, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.slotLocked(date, kind)
}

func (l *Ledger) slotLocked(date datetime.Date, kind SlotKind) (*datetime.TimeOfDay, error) {
	entry, err := l.store.QuerySlot(date, kind)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", kind, err)
	}
	if entry == nil {
		return nil, nil
	}
	t := entry.At.Time
	return &t, nil
}

// Slots reads all four markers of a day in one locked pass, so the
// result is a consistent snapshot even while the watcher is writing.
func (l *Ledger) Slots(date datetime.Date) (map[SlotKind]datetime.TimeOfDay, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.slotsLocked(date)
}

func (l *Ledger) slotsLocked(date datetime.Date) (map[SlotKind]datetime.TimeOfDay, error) {
	slots := make(map[SlotKind]datetime.TimeOfDay, 4)
	for _, kind := range []SlotKind{FirstOfDay, LastOfMorning, FirstOfAfternoon, LastOfDay} {
		t, err := l.slotLocked(date, kind)
		if err != nil {
			return nil, err
		}
		if t != nil {
			slots[kind] = *t
		}
	}
	return slots, nil
}
