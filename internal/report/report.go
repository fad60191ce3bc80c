// Package report renders the stats block the tracker has always
// printed: recent working days with their markers, weekly totals, and
// the all-time average.
package report

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/tvesterlund/workhours/internal/datetime"
	"github.com/tvesterlund/workhours/internal/ledger"
)

var (
	labelStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))  // yellow
	arrivalStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))  // magenta
	lunchStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))  // dark grey
	departureStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))  // blue
	emphStyle      = lipgloss.NewStyle().Bold(true).Underline(true)
)

type Options struct {
	Color bool
	Days  int // recent working days to list (default 8)
	Weeks int // weeks of totals to list (default 5)
}

// Render writes the stats block for today to w.
func Render(w io.Writer, l *ledger.Ledger, today datetime.Date, opts Options) error {
	if opts.Days <= 0 {
		opts.Days = 8
	}
	if opts.Weeks <= 0 {
		opts.Weeks = 5
	}
	style := func(s lipgloss.Style, text string) string {
		if !opts.Color {
			return text
		}
		return s.Render(text)
	}

	// Recent working days.
	for i := 0; i < opts.Days; i++ {
		day := datetime.WorkingDayAgo(today, i)
		sum, err := l.Summary(day)
		if err != nil {
			return err
		}
		label := fmt.Sprintf("%-11s", day.Weekday().String()+":")
		line := style(labelStyle, label) + FormatDuration(sum.Duration)
		if sum.FirstOfDay != nil {
			line += "  " + style(arrivalStyle, sum.FirstOfDay.String())
		}
		if sum.LastOfMorning != nil {
			line += "  " + style(lunchStyle, sum.LastOfMorning.String())
		}
		if sum.FirstOfAfternoon != nil {
			line += "  " + style(lunchStyle, sum.FirstOfAfternoon.String())
		}
		if sum.LastOfDay != nil {
			line += "  " + style(departureStyle, sum.LastOfDay.String())
		}
		fmt.Fprintln(w, line)
	}
	fmt.Fprintln(w)

	// Weekly totals, current week first.
	for i := 0; i < opts.Weeks; i++ {
		day := datetime.WorkingDayAgo(today, i*5)
		total, err := l.WorkWeek(day)
		if err != nil {
			return err
		}
		var label string
		switch i {
		case 0:
			label = "This week:"
		case 1:
			label = "Last week:"
		default:
			label = fmt.Sprintf("%d weeks ago:", i)
		}
		fmt.Fprintf(w, "%s%s\n", style(labelStyle, fmt.Sprintf("%-13s", label)), FormatDuration(total))
	}
	fmt.Fprintln(w)

	// All-time average since the earliest recorded day.
	earliest, err := l.EarliestDay()
	if err != nil {
		return err
	}
	if earliest == nil {
		fmt.Fprintln(w, "No activity recorded yet.")
		return nil
	}
	avg, err := l.AverageWorkDay(*earliest, today)
	if err != nil {
		return err
	}
	if !avg.Valid() {
		fmt.Fprintln(w, "No full working day recorded yet.")
		return nil
	}
	fmt.Fprintf(w, "%s %s/day (%s/week) over %d working days since %s\n",
		style(emphStyle, "Average:"),
		FormatDuration(avg.PerDay),
		FormatDuration(avg.PerWeek()),
		avg.Days,
		avg.EarliestDay.String(),
	)
	return nil
}

// WriteFile renders the plain (uncolored) stats block to a file,
// replacing its previous content.
func WriteFile(path string, l *ledger.Ledger, today datetime.Date) error {
	var b strings.Builder
	if err := Render(&b, l, today, Options{Color: false}); err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write stats file: %w", err)
	}
	return nil
}

// FormatDuration renders a duration as "8h15m". Negative durations
// (clock anomalies are not clamped upstream) keep their sign.
func FormatDuration(d time.Duration) string {
	sign := ""
	if d < 0 {
		sign = "-"
		d = -d
	}
	h := int(d / time.Hour)
	m := int(d/time.Minute) % 60
	return fmt.Sprintf("%s%dh%02dm", sign, h, m)
}
