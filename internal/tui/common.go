package tui

import (
	"time"

	"github.com/tvesterlund/workhours/internal/datetime"
	"github.com/tvesterlund/workhours/internal/ledger"
)

// viewState represents the currently active view.
type viewState int

const (
	viewToday viewState = iota
	viewHistory
	viewSettings
)

var viewNames = []string{"Today", "History", "Settings"}

// --- Messages ---

type statusMsg struct {
	text    string
	isError bool
}

type tickMsg time.Time

type exportDoneMsg struct {
	path string
}

type settingsSavedMsg struct {
	cfg ledger.Config
}

// --- Helpers ---

func formatClock(t *datetime.TimeOfDay) string {
	if t == nil {
		return "--:--"
	}
	return t.String()
}

// mondayOf returns the Monday of the working week the date belongs to.
// Weekend dates map to the week that just ended.
func mondayOf(d datetime.Date) datetime.Date {
	for d.IsWeekend() {
		d = d.AddDays(-1)
	}
	for !d.AddDays(-1).IsWeekend() {
		d = d.AddDays(-1)
	}
	return d
}
