package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"github.com/tvesterlund/workhours/internal/datetime"
	"github.com/tvesterlund/workhours/internal/ledger"
)

func ToCSV(days []ledger.DaySummary, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	// Header
	header := []string{"Date", "Weekday", "Arrival", "Lunch Start", "Lunch End", "Departure", "Duration (min)", "Duration"}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, d := range days {
		row := []string{
			d.Date.String(),
			d.Date.Weekday().String(),
			timeOrEmpty(d.FirstOfDay),
			timeOrEmpty(d.LastOfMorning),
			timeOrEmpty(d.FirstOfAfternoon),
			timeOrEmpty(d.LastOfDay),
			fmt.Sprintf("%d", int64(d.Duration/time.Minute)),
			formatDuration(d.Duration),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func timeOrEmpty(t *datetime.TimeOfDay) string {
	if t == nil {
		return ""
	}
	return t.String()
}

func formatDuration(d time.Duration) string {
	sign := ""
	if d < 0 {
		sign = "-"
		d = -d
	}
	h := int(d / time.Hour)
	m := int(d/time.Minute) % 60
	return fmt.Sprintf("%s%02d:%02d", sign, h, m)
}
