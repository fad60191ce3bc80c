package ledger_test

import (
	"testing"
	"time"

	"github.com/tvesterlund/workhours/internal/datetime"
	"github.com/tvesterlund/workhours/internal/ledger"
)

func tp(h, m int) *datetime.TimeOfDay {
	return &datetime.TimeOfDay{Hour: h, Minute: m}
}

// ============================================================
// DayDuration
// ============================================================

func TestDayDurationWithLunch(t *testing.T) {
	// (18:00 - 09:00) - (13:15 - 12:30) = 9h - 45m = 8h15m
	got := ledger.DayDuration(tp(9, 0), tp(12, 30), tp(13, 15), tp(18, 0))
	if want := 8*time.Hour + 15*time.Minute; got != want {
		t.Fatalf("DayDuration = %v, want %v", got, want)
	}
}

func TestDayDurationNoLunchMarkers(t *testing.T) {
	got := ledger.DayDuration(tp(9, 0), nil, nil, tp(18, 0))
	if want := 9 * time.Hour; got != want {
		t.Fatalf("DayDuration = %v, want %v", got, want)
	}
}

func TestDayDurationSingleLunchMarker(t *testing.T) {
	// Only one lunch marker present: no partial break estimation.
	got := ledger.DayDuration(tp(9, 0), tp(12, 30), nil, tp(18, 0))
	if want := 9 * time.Hour; got != want {
		t.Fatalf("with last-of-morning only = %v, want %v", got, want)
	}
	got = ledger.DayDuration(tp(9, 0), nil, tp(13, 15), tp(18, 0))
	if want := 9 * time.Hour; got != want {
		t.Fatalf("with first-of-afternoon only = %v, want %v", got, want)
	}
}

func TestDayDurationIncompleteDay(t *testing.T) {
	if got := ledger.DayDuration(nil, tp(12, 30), tp(13, 15), tp(18, 0)); got != 0 {
		t.Fatalf("missing arrival = %v, want 0", got)
	}
	if got := ledger.DayDuration(tp(9, 0), tp(12, 30), tp(13, 15), nil); got != 0 {
		t.Fatalf("missing departure = %v, want 0", got)
	}
}

func TestDayDurationNegativeLunchGap(t *testing.T) {
	// Clock anomaly: lunch markers reversed. The negative gap flows
	// through unclamped, inflating the day.
	got := ledger.DayDuration(tp(9, 0), tp(14, 0), tp(13, 0), tp(18, 0))
	if want := 10 * time.Hour; got != want {
		t.Fatalf("DayDuration = %v, want %v (negative gap propagated)", got, want)
	}
}

// ============================================================
// WorkWeek
// ============================================================

// seedDay records an uninterrupted working day from first to last. For
// days spanning the 13:00 lunch pivot an event at the pivot itself is
// recorded, which sets both lunch markers to 13:00 (a zero-width
// break), so the day's duration is simply last - first.
func seedDay(t *testing.T, l *ledger.Ledger, d datetime.Date, firstH, firstM, lastH, lastM int) {
	t.Helper()
	record(t, l, d, firstH, firstM)
	if lastH > 13 || (lastH == 13 && lastM > 0) {
		record(t, l, d, 13, 0)
	}
	record(t, l, d, lastH, lastM)
}

func TestWorkWeekSumsWeekdays(t *testing.T) {
	l, _ := newTestLedger(t)
	mon := monday(t) // 2026-08-24

	seedDay(t, l, mon, 9, 0, 17, 0)            // 8h
	seedDay(t, l, mon.AddDays(2), 9, 0, 18, 0) // Wednesday, 9h

	got, err := l.WorkWeek(mon.AddDays(2))
	if err != nil {
		t.Fatal(err)
	}
	if want := 17 * time.Hour; got != want {
		t.Fatalf("WorkWeek = %v, want %v", got, want)
	}
}

func TestWorkWeekSameForEveryDayOfWeek(t *testing.T) {
	l, _ := newTestLedger(t)
	mon := monday(t)
	seedDay(t, l, mon, 9, 0, 17, 0)

	want, err := l.WorkWeek(mon)
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i < 5; i++ {
		got, err := l.WorkWeek(mon.AddDays(i))
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Fatalf("WorkWeek(+%dd) = %v, want %v", i, got, want)
		}
	}
}

func TestWorkWeekFromWeekendRewinds(t *testing.T) {
	l, _ := newTestLedger(t)
	mon := monday(t)
	seedDay(t, l, mon, 9, 0, 17, 0)

	// Saturday and Sunday after that week resolve to the same week.
	for _, off := range []int{5, 6} {
		got, err := l.WorkWeek(mon.AddDays(off))
		if err != nil {
			t.Fatal(err)
		}
		if want := 8 * time.Hour; got != want {
			t.Fatalf("WorkWeek(weekend+%d) = %v, want %v", off, got, want)
		}
	}
}

func TestWorkWeekExcludesAdjacentWeeks(t *testing.T) {
	l, _ := newTestLedger(t)
	mon := monday(t)
	seedDay(t, l, mon, 9, 0, 17, 0)
	seedDay(t, l, mon.AddDays(-3), 9, 0, 17, 0) // previous Friday
	seedDay(t, l, mon.AddDays(7), 9, 0, 17, 0)  // next Monday

	got, err := l.WorkWeek(mon)
	if err != nil {
		t.Fatal(err)
	}
	if want := 8 * time.Hour; got != want {
		t.Fatalf("WorkWeek = %v, want %v (adjacent weeks leaked in)", got, want)
	}
}

// ============================================================
// AverageWorkDay
// ============================================================

func TestAverageExcludesShortDays(t *testing.T) {
	l, _ := newTestLedger(t)
	mon := monday(t)

	seedDay(t, l, mon, 9, 0, 17, 0)            // 8h, valid
	seedDay(t, l, mon.AddDays(1), 9, 0, 19, 0) // 10h, valid
	seedDay(t, l, mon.AddDays(2), 9, 0, 11, 0) // 2h, below the 7h minimum

	avg, err := l.AverageWorkDay(mon, mon.AddDays(2))
	if err != nil {
		t.Fatal(err)
	}
	if !avg.Valid() {
		t.Fatal("expected data")
	}
	if avg.Days != 2 {
		t.Fatalf("Days = %d, want 2 (short day excluded)", avg.Days)
	}
	if want := 9 * time.Hour; avg.PerDay != want {
		t.Fatalf("PerDay = %v, want %v", avg.PerDay, want)
	}
	if avg.EarliestDay == nil || *avg.EarliestDay != mon {
		t.Fatalf("EarliestDay = %v, want %v", avg.EarliestDay, mon)
	}
	if want := 45 * time.Hour; avg.PerWeek() != want {
		t.Fatalf("PerWeek = %v, want %v", avg.PerWeek(), want)
	}
}

func TestAverageSkipsWeekends(t *testing.T) {
	l, _ := newTestLedger(t)
	mon := monday(t)
	fri := mon.AddDays(4)
	nextMon := mon.AddDays(7)

	seedDay(t, l, fri, 9, 0, 17, 0)
	seedDay(t, l, nextMon, 9, 0, 17, 0)

	// Range spans the weekend; only the two seeded weekdays count.
	avg, err := l.AverageWorkDay(fri, nextMon)
	if err != nil {
		t.Fatal(err)
	}
	if avg.Days != 2 {
		t.Fatalf("Days = %d, want 2", avg.Days)
	}
	if avg.EarliestDay == nil || *avg.EarliestDay != fri {
		t.Fatalf("EarliestDay = %v, want %v", avg.EarliestDay, fri)
	}
}

func TestAverageNoQualifyingDays(t *testing.T) {
	l, _ := newTestLedger(t)
	mon := monday(t)

	// Nothing recorded at all.
	avg, err := l.AverageWorkDay(mon, mon.AddDays(4))
	if err != nil {
		t.Fatal(err)
	}
	if avg.Valid() {
		t.Fatalf("empty range should have no data, got %+v", avg)
	}
	if avg.Days != 0 || avg.PerDay != 0 || avg.EarliestDay != nil {
		t.Fatalf("no-data result not zero: %+v", avg)
	}

	// Only a too-short day recorded: still no data.
	seedDay(t, l, mon, 9, 0, 10, 0)
	avg, err = l.AverageWorkDay(mon, mon.AddDays(4))
	if err != nil {
		t.Fatal(err)
	}
	if avg.Valid() {
		t.Fatal("short-only range should have no data")
	}
}

func TestAverageEndDateOnWeekend(t *testing.T) {
	l, _ := newTestLedger(t)
	mon := monday(t)
	fri := mon.AddDays(4)
	sun := mon.AddDays(6)

	seedDay(t, l, fri, 9, 0, 17, 0)

	avg, err := l.AverageWorkDay(mon, sun)
	if err != nil {
		t.Fatal(err)
	}
	if avg.Days != 1 {
		t.Fatalf("Days = %d, want 1", avg.Days)
	}
}

// ============================================================
// Summaries
// ============================================================

func TestDaySummaries(t *testing.T) {
	l, _ := newTestLedger(t)
	mon := monday(t)

	for _, hm := range [][2]int{{9, 0}, {12, 30}, {13, 15}, {18, 0}} {
		record(t, l, mon, hm[0], hm[1])
	}

	// Monday through Sunday: five working-day rows.
	rows, err := l.DaySummaries(mon, mon.AddDays(6))
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 5 {
		t.Fatalf("rows = %d, want 5 (weekends skipped)", len(rows))
	}

	first := rows[0]
	if first.Date != mon {
		t.Fatalf("first row date = %v", first.Date)
	}
	if first.FirstOfDay == nil || *first.FirstOfDay != (datetime.TimeOfDay{Hour: 9, Minute: 0}) {
		t.Fatalf("FirstOfDay = %v", first.FirstOfDay)
	}
	if want := 8*time.Hour + 15*time.Minute; first.Duration != want {
		t.Fatalf("Duration = %v, want %v", first.Duration, want)
	}

	empty := rows[1]
	if empty.FirstOfDay != nil || empty.Duration != 0 {
		t.Fatalf("empty day row = %+v", empty)
	}
}

func TestWorkDayReadsStore(t *testing.T) {
	l, _ := newTestLedger(t)
	mon := monday(t)
	seedDay(t, l, mon, 9, 30, 17, 30)

	d, err := l.WorkDay(mon)
	if err != nil {
		t.Fatal(err)
	}
	if want := 8 * time.Hour; d != want {
		t.Fatalf("WorkDay = %v, want %v", d, want)
	}
}
