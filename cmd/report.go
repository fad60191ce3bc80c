package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tvesterlund/workhours/internal/datetime"
	"github.com/tvesterlund/workhours/internal/report"
)

var (
	reportPlain bool
	reportDays  int
	reportWeeks int
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the attendance summary",
	Args:  cobra.NoArgs,
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().BoolVar(&reportPlain, "plain", false, "Disable colored output")
	reportCmd.Flags().IntVar(&reportDays, "days", 8, "Recent working days to list")
	reportCmd.Flags().IntVar(&reportWeeks, "weeks", 5, "Weeks of totals to list")
}

func runReport(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer s.Close()

	l, err := openLedger(s)
	if err != nil {
		return err
	}

	return report.Render(os.Stdout, l, datetime.Today(), report.Options{
		Color: !reportPlain,
		Days:  reportDays,
		Weeks: reportWeeks,
	})
}
