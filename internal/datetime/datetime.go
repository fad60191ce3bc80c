// Package datetime holds the minute-granularity calendar values the
// tracker works with. Everything is an immutable value type; arithmetic
// that crosses day boundaries goes through the host calendar so month
// lengths and leap years are handled correctly.
package datetime

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidDate = errors.New("invalid calendar date")
	ErrInvalidTime = errors.New("invalid time of day")
)

// Date is a local calendar date.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate validates year/month/day against the real calendar, so
// February 30 is rejected, not just day 32.
func NewDate(year int, month time.Month, day int) (Date, error) {
	if month < time.January || month > time.December {
		return Date{}, fmt.Errorf("%w: month %d", ErrInvalidDate, int(month))
	}
	if day < 1 || day > daysInMonth(year, month) {
		return Date{}, fmt.Errorf("%w: day %d of %s %d", ErrInvalidDate, day, month, year)
	}
	return Date{Year: year, Month: month, Day: day}, nil
}

func daysInMonth(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// DateOf truncates t to its calendar date.
func DateOf(t time.Time) Date {
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// Today returns the current date on the local clock.
func Today() Date {
	return DateOf(time.Now())
}

func (d Date) Weekday() time.Weekday {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC).Weekday()
}

func (d Date) IsWeekend() bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// Compare orders dates by (year, month, day), returning -1, 0 or 1.
func (d Date) Compare(other Date) int {
	switch {
	case d.Year != other.Year:
		return cmp(d.Year, other.Year)
	case d.Month != other.Month:
		return cmp(int(d.Month), int(other.Month))
	default:
		return cmp(d.Day, other.Day)
	}
}

func (d Date) Before(other Date) bool { return d.Compare(other) < 0 }
func (d Date) After(other Date) bool  { return d.Compare(other) > 0 }

// AddDays steps n calendar days (n may be negative), rolling through
// months and years.
func (d Date) AddDays(n int) Date {
	return DateOf(time.Date(d.Year, d.Month, d.Day+n, 0, 0, 0, 0, time.UTC))
}

// WorkingDayAgo returns the n-th most recent non-weekend day at or
// before from; n = 0 rewinds to the nearest weekday.
func WorkingDayAgo(from Date, n int) Date {
	d := from
	for d.IsWeekend() {
		d = d.AddDays(-1)
	}
	for i := 0; i < n; i++ {
		d = d.AddDays(-1)
		for d.IsWeekend() {
			d = d.AddDays(-1)
		}
	}
	return d
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// TimeOfDay is a wall-clock time with minute precision.
type TimeOfDay struct {
	Hour   int
	Minute int
}

func NewTimeOfDay(hour, minute int) (TimeOfDay, error) {
	if hour < 0 || hour > 23 {
		return TimeOfDay{}, fmt.Errorf("%w: hour %d", ErrInvalidTime, hour)
	}
	if minute < 0 || minute > 59 {
		return TimeOfDay{}, fmt.Errorf("%w: minute %d", ErrInvalidTime, minute)
	}
	return TimeOfDay{Hour: hour, Minute: minute}, nil
}

// ParseTimeOfDay parses "HH:MM".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	return NewTimeOfDay(h, m)
}

func (t TimeOfDay) Compare(other TimeOfDay) int {
	if t.Hour != other.Hour {
		return cmp(t.Hour, other.Hour)
	}
	return cmp(t.Minute, other.Minute)
}

func (t TimeOfDay) Before(other TimeOfDay) bool { return t.Compare(other) < 0 }
func (t TimeOfDay) After(other TimeOfDay) bool  { return t.Compare(other) > 0 }

// Sub returns t - other as a signed duration.
func (t TimeOfDay) Sub(other TimeOfDay) time.Duration {
	return time.Duration((t.Hour*60+t.Minute)-(other.Hour*60+other.Minute)) * time.Minute
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// DateTime is a date plus a time of day.
type DateTime struct {
	Date Date
	Time TimeOfDay
}

// Of builds a DateTime from a time.Time, dropping seconds.
func Of(t time.Time) DateTime {
	return DateTime{
		Date: DateOf(t),
		Time: TimeOfDay{Hour: t.Hour(), Minute: t.Minute()},
	}
}

// Now returns the current local date and time, minute precision.
func Now() DateTime {
	return Of(time.Now())
}

// AddMinutes steps n minutes (n may be negative), carrying across day,
// month and year boundaries.
func (dt DateTime) AddMinutes(n int) DateTime {
	t := time.Date(dt.Date.Year, dt.Date.Month, dt.Date.Day, dt.Time.Hour, dt.Time.Minute+n, 0, 0, time.UTC)
	return Of(t)
}

func (dt DateTime) String() string {
	return dt.Date.String() + " " + dt.Time.String()
}

func cmp(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
