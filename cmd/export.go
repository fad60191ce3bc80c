package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/tvesterlund/workhours/internal/datetime"
	"github.com/tvesterlund/workhours/internal/export"
)

var (
	exportFormat string
	exportFrom   string
	exportTo     string
	exportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export day summaries to a file",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "Output format: csv, json")
	exportCmd.Flags().StringVar(&exportFrom, "from", "", "First date (YYYY-MM-DD, default: earliest recorded day)")
	exportCmd.Flags().StringVar(&exportTo, "to", "", "Last date (YYYY-MM-DD, default: today)")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output file (default: workhours-export.<format>)")
}

func parseDate(s string) (datetime.Date, error) {
	var y, d int
	var m int
	if _, err := fmt.Sscanf(s, "%d-%d-%d", &y, &m, &d); err != nil {
		return datetime.Date{}, fmt.Errorf("bad date %q: want YYYY-MM-DD", s)
	}
	return datetime.NewDate(y, time.Month(m), d)
}

func runExport(cmd *cobra.Command, args []string) error {
	format := strings.ToLower(exportFormat)
	if format != "csv" && format != "json" {
		return fmt.Errorf("unknown format %q: want csv or json", exportFormat)
	}

	s, err := openStore()
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer s.Close()

	l, err := openLedger(s)
	if err != nil {
		return err
	}

	to := datetime.Today()
	if exportTo != "" {
		if to, err = parseDate(exportTo); err != nil {
			return err
		}
	}

	var from datetime.Date
	if exportFrom != "" {
		if from, err = parseDate(exportFrom); err != nil {
			return err
		}
	} else {
		earliest, err := l.EarliestDay()
		if err != nil {
			return err
		}
		if earliest == nil {
			return fmt.Errorf("nothing recorded yet")
		}
		from = *earliest
	}

	days, err := l.DaySummaries(from, to)
	if err != nil {
		return err
	}

	out := exportOut
	if out == "" {
		out = "workhours-export." + format
	}

	if format == "json" {
		err = export.ToJSON(days, out)
	} else {
		err = export.ToCSV(days, out)
	}
	if err != nil {
		return err
	}

	fmt.Printf("exported %d days to %s\n", len(days), out)
	return nil
}
