package tui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/tvesterlund/workhours/internal/datetime"
	"github.com/tvesterlund/workhours/internal/ledger"
	"github.com/tvesterlund/workhours/internal/store"
)

type settingsModel struct {
	store  *store.Store
	ledger *ledger.Ledger
	width  int
	height int

	settings   []store.Setting
	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	startOfDay       *string
	endOfDay         *string
	endOfMorning     *string
	startOfAfternoon *string
	validDayMinimum  *string
	monitorInterval  *string
}

func newSettingsModel(s *store.Store, l *ledger.Ledger) settingsModel {
	sod, eod, eom, soa := "", "", "", ""
	vdm, mi := "", ""
	return settingsModel{
		store:            s,
		ledger:           l,
		startOfDay:       &sod,
		endOfDay:         &eod,
		endOfMorning:     &eom,
		startOfAfternoon: &soa,
		validDayMinimum:  &vdm,
		monitorInterval:  &mi,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

type settingsDataMsg struct {
	settings []store.Setting
}

func (s settingsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		settings, _ := s.store.GetAllSettings()
		return settingsDataMsg{settings: settings}
	}
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	switch msg := msg.(type) {
	case settingsDataMsg:
		s.settings = msg.settings
		return s, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Enter):
			return s.showForm()
		}
	}
	return s, nil
}

func validClock(v string) error {
	_, err := datetime.ParseTimeOfDay(v)
	return err
}

func validPositiveInt(v string) error {
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("not a number: %q", v)
	}
	if n <= 0 {
		return fmt.Errorf("must be positive")
	}
	return nil
}

func (s settingsModel) showForm() (settingsModel, tea.Cmd) {
	*s.startOfDay = s.getVal("start_of_day", "08:45")
	*s.endOfDay = s.getVal("end_of_day", "21:00")
	*s.endOfMorning = s.getVal("end_of_morning", "13:00")
	*s.startOfAfternoon = s.getVal("start_of_afternoon", "13:00")
	*s.validDayMinimum = s.getVal("valid_day_minimum_minutes", "420")
	*s.monitorInterval = s.getVal("monitor_interval_seconds", "60")

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Earliest counted activity (HH:MM)").
				Value(s.startOfDay).Validate(validClock),
			huh.NewInput().Title("Latest counted activity (HH:MM)").
				Value(s.endOfDay).Validate(validClock),
			huh.NewInput().Title("Morning ends at (HH:MM)").
				Value(s.endOfMorning).Validate(validClock),
			huh.NewInput().Title("Afternoon starts at (HH:MM)").
				Value(s.startOfAfternoon).Validate(validClock),
		).Title("Working hours"),
		huh.NewGroup(
			huh.NewInput().Title("Full working day (min)").
				Value(s.validDayMinimum).Validate(validPositiveInt),
			huh.NewInput().Title("Mouse poll interval (sec)").
				Value(s.monitorInterval).Validate(validPositiveInt),
		).Title("Tracking"),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		return s, tea.Batch(s.saveSettings(), s.refresh())
	}

	return s, cmd
}

func (s settingsModel) saveSettings() tea.Cmd {
	return func() tea.Msg {
		pairs := map[string]string{
			"start_of_day":              *s.startOfDay,
			"end_of_day":                *s.endOfDay,
			"end_of_morning":            *s.endOfMorning,
			"start_of_afternoon":        *s.startOfAfternoon,
			"valid_day_minimum_minutes": *s.validDayMinimum,
			"monitor_interval_seconds":  *s.monitorInterval,
		}
		for k, v := range pairs {
			if err := s.store.SetSetting(k, v); err != nil {
				return statusMsg{text: fmt.Sprintf("Save error: %v", err), isError: true}
			}
		}

		cfg, err := s.store.LoadConfig()
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Config error: %v", err), isError: true}
		}
		s.ledger.SetConfig(cfg)
		return settingsSavedMsg{cfg: cfg}
	}
}

func (s settingsModel) getVal(k, fallback string) string {
	v, err := s.store.GetSetting(k)
	if err != nil {
		return fallback
	}
	return v
}

func (s settingsModel) view() string {
	w := s.width - 4

	if s.formActive && s.form != nil {
		title := titleStyle.Render("Settings")
		formView := s.form.View()
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", formView),
		)
	}

	title := titleStyle.Render("Settings")
	hint := mutedStyle.Render("Press enter to edit settings")

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	for _, setting := range s.settings {
		label := lipgloss.NewStyle().Width(28).Render(setting.Key)
		value := highlightStyle.Render(formatSettingValue(setting.Key, setting.Value))
		rows = append(rows, fmt.Sprintf("  %s %s", label, value))
	}

	rows = append(rows, "")
	rows = append(rows, hint)

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func formatSettingValue(k, v string) string {
	switch k {
	case "valid_day_minimum_minutes":
		if mins, err := strconv.Atoi(v); err == nil {
			return fmt.Sprintf("%dh%02dm", mins/60, mins%60)
		}
	case "monitor_interval_seconds":
		if secs, err := strconv.Atoi(v); err == nil {
			return fmt.Sprintf("%d sec", secs)
		}
	}
	return v
}
