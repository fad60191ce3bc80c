package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tvesterlund/workhours/internal/datetime"
	"github.com/tvesterlund/workhours/internal/ledger"
	"github.com/tvesterlund/workhours/internal/report"
)

type historyModel struct {
	ledger *ledger.Ledger
	width  int
	height int

	offset    int // weeks back from the current week (0 = current)
	days      []ledger.DaySummary
	weekTotal time.Duration
	avg       ledger.Average

	chart barchart.Model
}

func newHistoryModel(l *ledger.Ledger) historyModel {
	return historyModel{
		ledger: l,
		chart:  barchart.New(60, 12),
	}
}

func (h *historyModel) setSize(w, ht int) {
	h.width = w
	h.height = ht
}

// weekStart is the Monday of the week the model is currently showing.
func (h historyModel) weekStart() datetime.Date {
	return mondayOf(datetime.Today().AddDays(-7 * h.offset))
}

type historyDataMsg struct {
	days      []ledger.DaySummary
	weekTotal time.Duration
	avg       ledger.Average
}

func (h historyModel) refresh() tea.Cmd {
	return func() tea.Msg {
		monday := h.weekStart()
		days, err := h.ledger.DaySummaries(monday, monday.AddDays(4))
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Load error: %v", err), isError: true}
		}
		weekTotal, err := h.ledger.WorkWeek(monday)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Load error: %v", err), isError: true}
		}

		var avg ledger.Average
		if earliest, err := h.ledger.EarliestDay(); err == nil && earliest != nil {
			avg, _ = h.ledger.AverageWorkDay(*earliest, datetime.Today())
		}

		return historyDataMsg{days: days, weekTotal: weekTotal, avg: avg}
	}
}

func (h historyModel) update(msg tea.Msg) (historyModel, tea.Cmd) {
	switch msg := msg.(type) {
	case historyDataMsg:
		h.days = msg.days
		h.weekTotal = msg.weekTotal
		h.avg = msg.avg
		h.buildChart()
		return h, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			h.offset++
			return h, h.refresh()
		case key.Matches(msg, keys.Right):
			if h.offset > 0 {
				h.offset--
			}
			return h, h.refresh()
		case key.Matches(msg, keys.Refresh):
			return h, h.refresh()
		}
	}
	return h, nil
}

func (h *historyModel) buildChart() {
	chartWidth := h.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 10
	if h.height > 28 {
		chartHeight = 14
	}

	h.chart = barchart.New(chartWidth, chartHeight)

	var bars []barchart.BarData
	for _, d := range h.days {
		hours := d.Duration.Hours()
		style := lipgloss.NewStyle().Foreground(colorPrimary)
		if hours <= 0 {
			// The chart cannot draw negative bars; leave an empty slot.
			hours = 0
			style = lipgloss.NewStyle().Foreground(colorSubtle)
		}
		bars = append(bars, barchart.BarData{
			Label: d.Date.Weekday().String()[:3],
			Values: []barchart.BarValue{
				{Name: d.Date.String(), Value: hours, Style: style},
			},
		})
	}

	h.chart.PushAll(bars)
	h.chart.Draw()
}

func (h historyModel) view() string {
	w := h.width - 4

	monday := h.weekStart()
	weekLabel := fmt.Sprintf("Week of %s", monday)
	if h.offset == 0 {
		weekLabel = "This week"
	} else if h.offset == 1 {
		weekLabel = "Last week"
	}

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("History"), "  ",
		mutedStyle.Render(fmt.Sprintf("%s (%s — %s)", weekLabel, monday, monday.AddDays(4))),
	)

	chartView := h.chart.View()
	tableView := h.renderWeekTable()
	totals := h.renderTotals()
	nav := mutedStyle.Render("  ←/→: change week  r: refresh")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", chartView, "", tableView, "", totals, "", nav,
		),
	)
}

func (h historyModel) renderWeekTable() string {
	if len(h.days) == 0 {
		return mutedStyle.Render("  No data for this week")
	}

	var rows []string
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-10s %8s  %7s %7s %7s %7s",
		"Day", "Worked", "In", "Out", "Back", "Gone")))
	rows = append(rows, mutedStyle.Render("  "+strings.Repeat("─", 54)))

	for _, d := range h.days {
		worked := report.FormatDuration(d.Duration)
		if d.FirstOfDay == nil {
			worked = "-"
		}
		rows = append(rows, fmt.Sprintf("  %-10s %8s  %7s %7s %7s %7s",
			d.Date.Weekday(),
			highlightStyle.Render(worked),
			formatClock(d.FirstOfDay),
			formatClock(d.LastOfMorning),
			formatClock(d.FirstOfAfternoon),
			formatClock(d.LastOfDay),
		))
	}

	return strings.Join(rows, "\n")
}

func (h historyModel) renderTotals() string {
	var rows []string
	rows = append(rows, fmt.Sprintf("  %-14s %s",
		"Week total", highlightStyle.Render(report.FormatDuration(h.weekTotal))))

	if h.avg.Valid() {
		since := ""
		if h.avg.EarliestDay != nil {
			since = mutedStyle.Render(fmt.Sprintf("  (%d working days since %s)", h.avg.Days, h.avg.EarliestDay))
		}
		rows = append(rows, fmt.Sprintf("  %-14s %s%s",
			"Average day", highlightStyle.Render(report.FormatDuration(h.avg.PerDay)), since))
	}

	return strings.Join(rows, "\n")
}
