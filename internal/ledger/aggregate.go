package ledger

import (
	"time"

	"github.com/tvesterlund/workhours/internal/datetime"
)

// DayDuration computes one day's worked duration from its four markers.
// A day without both an arrival and a departure cannot be measured and
// counts as zero. The lunch gap is subtracted only when both lunch
// markers exist; a lone marker is ignored rather than estimated.
// Anomalous orderings (clock skew) produce negative values on purpose,
// so they surface in reports instead of being papered over.
func DayDuration(first, lastMorning, firstAfternoon, last *datetime.TimeOfDay) time.Duration {
	if first == nil || last == nil {
		return 0
	}
	d := last.Sub(*first)
	if lastMorning != nil && firstAfternoon != nil {
		d -= firstAfternoon.Sub(*lastMorning)
	}
	return d
}

func durationFromSlots(slots map[SlotKind]datetime.TimeOfDay) time.Duration {
	pick := func(k SlotKind) *datetime.TimeOfDay {
		if t, ok := slots[k]; ok {
			return &t
		}
		return nil
	}
	return DayDuration(pick(FirstOfDay), pick(LastOfMorning), pick(FirstOfAfternoon), pick(LastOfDay))
}

// WorkDay returns the worked duration recorded for one date.
func (l *Ledger) WorkDay(date datetime.Date) (time.Duration, error) {
	slots, err := l.Slots(date)
	if err != nil {
		return 0, err
	}
	return durationFromSlots(slots), nil
}

// WorkWeek sums the Monday–Friday durations of the week containing
// anyDayInWeek. A weekend argument is rewound to the Friday before it,
// so the result always covers exactly one calendar week's weekdays.
func (l *Ledger) WorkWeek(anyDayInWeek datetime.Date) (time.Duration, error) {
	day := anyDayInWeek
	for day.IsWeekend() {
		day = day.AddDays(-1)
	}
	// Back to Monday.
	for !day.AddDays(-1).IsWeekend() {
		day = day.AddDays(-1)
	}

	var total time.Duration
	for !day.IsWeekend() {
		d, err := l.WorkDay(day)
		if err != nil {
			return 0, err
		}
		total += d
		day = day.AddDays(1)
	}
	return total, nil
}

// Average is the result of AverageWorkDay. Days is the number of
// qualifying working days; when it is zero there is no data and PerDay
// is meaningless.
type Average struct {
	PerDay      time.Duration
	Days        int
	EarliestDay *datetime.Date
}

// Valid reports whether at least one qualifying day contributed.
func (a Average) Valid() bool { return a.Days > 0 }

// PerWeek extrapolates the daily average to a five-day week.
func (a Average) PerWeek() time.Duration { return a.PerDay * 5 }

// AverageWorkDay walks backward from endDate to startDate over weekdays
// only, averaging the durations of days that meet the configured
// minimum. Short days (holidays, sick days, half days) are dropped from
// both the sum and the count so they do not drag the average down.
func (l *Ledger) AverageWorkDay(startDate, endDate datetime.Date) (Average, error) {
	var (
		total    time.Duration
		days     int
		earliest *datetime.Date
	)
	minimum := l.Config().ValidDayMinimum

	day := endDate
	for day.IsWeekend() {
		day = day.AddDays(-1)
	}
	for !day.Before(startDate) {
		d, err := l.WorkDay(day)
		if err != nil {
			return Average{}, err
		}
		if d >= minimum {
			total += d
			days++
			current := day
			earliest = &current
		}
		day = day.AddDays(-1)
		for day.IsWeekend() {
			day = day.AddDays(-1)
		}
	}

	if days == 0 {
		return Average{}, nil
	}
	return Average{
		PerDay:      total / time.Duration(days),
		Days:        days,
		EarliestDay: earliest,
	}, nil
}

// EarliestDay returns the date of the oldest slot record, or nil for an
// empty ledger. It bounds the all-time average.
func (l *Ledger) EarliestDay() (*datetime.Date, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	entry, err := l.store.EarliestSlot()
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, nil
	}
	d := entry.At.Date
	return &d, nil
}

// DaySummary is one working day's markers and duration, ready for
// display or export.
type DaySummary struct {
	Date             datetime.Date
	FirstOfDay       *datetime.TimeOfDay
	LastOfMorning    *datetime.TimeOfDay
	FirstOfAfternoon *datetime.TimeOfDay
	LastOfDay        *datetime.TimeOfDay
	Duration         time.Duration
}

// Summary assembles the summary row for one date.
func (l *Ledger) Summary(date datetime.Date) (DaySummary, error) {
	slots, err := l.Slots(date)
	if err != nil {
		return DaySummary{}, err
	}
	pick := func(k SlotKind) *datetime.TimeOfDay {
		if t, ok := slots[k]; ok {
			return &t
		}
		return nil
	}
	return DaySummary{
		Date:             date,
		FirstOfDay:       pick(FirstOfDay),
		LastOfMorning:    pick(LastOfMorning),
		FirstOfAfternoon: pick(FirstOfAfternoon),
		LastOfDay:        pick(LastOfDay),
		Duration:         durationFromSlots(slots),
	}, nil
}

// DaySummaries returns one row per working day from `from` to `to`
// inclusive, oldest first. Weekend days are skipped.
func (l *Ledger) DaySummaries(from, to datetime.Date) ([]DaySummary, error) {
	var out []DaySummary
	for day := from; !day.After(to); day = day.AddDays(1) {
		if day.IsWeekend() {
			continue
		}
		s, err := l.Summary(day)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}
