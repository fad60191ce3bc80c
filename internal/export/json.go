package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/tvesterlund/workhours/internal/ledger"
)

type jsonExport struct {
	ExportedAt string    `json:"exported_at"`
	Count      int       `json:"count"`
	Days       []jsonDay `json:"days"`
}

type jsonDay struct {
	Date        string `json:"date"`
	Weekday     string `json:"weekday"`
	Arrival     string `json:"arrival,omitempty"`
	LunchStart  string `json:"lunch_start,omitempty"`
	LunchEnd    string `json:"lunch_end,omitempty"`
	Departure   string `json:"departure,omitempty"`
	DurationMin int64  `json:"duration_minutes"`
	Duration    string `json:"duration"`
}

func ToJSON(days []ledger.DaySummary, path string) error {
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Count:      len(days),
	}

	for _, d := range days {
		export.Days = append(export.Days, jsonDay{
			Date:        d.Date.String(),
			Weekday:     d.Date.Weekday().String(),
			Arrival:     timeOrEmpty(d.FirstOfDay),
			LunchStart:  timeOrEmpty(d.LastOfMorning),
			LunchEnd:    timeOrEmpty(d.FirstOfAfternoon),
			Departure:   timeOrEmpty(d.LastOfDay),
			DurationMin: int64(d.Duration / time.Minute),
			Duration:    formatDuration(d.Duration),
		})
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
