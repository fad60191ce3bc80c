package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tvesterlund/workhours/internal/datetime"
	"github.com/tvesterlund/workhours/internal/ledger"
	"github.com/tvesterlund/workhours/internal/report"
)

type todayModel struct {
	ledger *ledger.Ledger
	width  int
	height int

	date      datetime.Date
	summary   ledger.DaySummary
	weekTotal time.Duration
	avg       ledger.Average
}

func newTodayModel(l *ledger.Ledger) todayModel {
	return todayModel{ledger: l, date: datetime.Today()}
}

func (t todayModel) Init() tea.Cmd {
	return t.loadData()
}

func (t *todayModel) setSize(w, h int) {
	t.width = w
	t.height = h
}

type todayDataMsg struct {
	date      datetime.Date
	summary   ledger.DaySummary
	weekTotal time.Duration
	avg       ledger.Average
}

func (t todayModel) loadData() tea.Cmd {
	return func() tea.Msg {
		today := datetime.Today()
		summary, err := t.ledger.Summary(today)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Load error: %v", err), isError: true}
		}
		weekTotal, err := t.ledger.WorkWeek(today)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Load error: %v", err), isError: true}
		}

		var avg ledger.Average
		if earliest, err := t.ledger.EarliestDay(); err == nil && earliest != nil {
			avg, _ = t.ledger.AverageWorkDay(*earliest, today)
		}

		return todayDataMsg{date: today, summary: summary, weekTotal: weekTotal, avg: avg}
	}
}

func (t todayModel) update(msg tea.Msg) (todayModel, tea.Cmd) {
	switch msg := msg.(type) {
	case todayDataMsg:
		t.date = msg.date
		t.summary = msg.summary
		t.weekTotal = msg.weekTotal
		t.avg = msg.avg
		return t, nil

	case tickMsg:
		return t, t.loadData()
	}
	return t, nil
}

func (t todayModel) view() string {
	if t.width < 20 {
		return "Terminal too small"
	}

	contentWidth := t.width - 4

	if t.date.IsWeekend() {
		content := lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render(t.dateLine()),
			"",
			mutedStyle.Render("Weekend. Nothing is recorded."),
		)
		return panelStyle.Width(contentWidth).Render(content)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		t.renderMarkersPanel(contentWidth),
		t.renderTotalsPanel(contentWidth),
	)
}

func (t todayModel) dateLine() string {
	return fmt.Sprintf("%s, %s", t.date.Weekday(), t.date)
}

func (t todayModel) renderMarkersPanel(w int) string {
	title := titleStyle.Render(t.dateLine())

	if t.summary.FirstOfDay == nil {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No activity yet today."),
		)
		return panelStyle.Width(w).Render(content)
	}

	rows := []string{
		markerRow("Arrival", t.summary.FirstOfDay, highlightStyle),
		markerRow("Lunch out", t.summary.LastOfMorning, accentStyle),
		markerRow("Lunch back", t.summary.FirstOfAfternoon, accentStyle),
		markerRow("Last seen", t.summary.LastOfDay, highlightStyle),
	}

	dur := report.FormatDuration(t.summary.Duration)
	style := durationStyle
	if t.summary.Duration >= t.ledger.Config().ValidDayMinimum {
		style = durationDoneStyle
	}
	readout := style.Width(w - 6).Render(dur)

	content := lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		strings.Join(rows, "\n"),
		"",
		readout,
	)
	return activePanelStyle.Width(w).Render(content)
}

func markerRow(label string, t *datetime.TimeOfDay, style lipgloss.Style) string {
	return fmt.Sprintf("  %-12s %s", label, style.Render(formatClock(t)))
}

func (t todayModel) renderTotalsPanel(w int) string {
	var rows []string
	rows = append(rows, fmt.Sprintf("  %-12s %s",
		"This week", highlightStyle.Render(report.FormatDuration(t.weekTotal))))

	if t.avg.Valid() {
		rows = append(rows, fmt.Sprintf("  %-12s %s",
			"Average day", highlightStyle.Render(report.FormatDuration(t.avg.PerDay))))
		rows = append(rows, fmt.Sprintf("  %-12s %s",
			"Average week", highlightStyle.Render(report.FormatDuration(t.avg.PerWeek()))))
	} else {
		rows = append(rows, mutedStyle.Render("  No full working day recorded yet."))
	}

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
