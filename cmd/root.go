package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/tvesterlund/workhours/internal/ledger"
	"github.com/tvesterlund/workhours/internal/store"
	"github.com/tvesterlund/workhours/internal/tui"
)

var dbPath string

var rootCmd = &cobra.Command{
	Use:   "workhours",
	Short: "Passive working-hours tracker",
	Long: `workhours infers arrival, lunch and departure times from mouse
activity and keeps a per-day attendance ledger in SQLite.

Run "workhours watch" in the background to record activity; run
"workhours" without arguments for the interactive dashboard.`,
	RunE: runTUI,
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "",
		"Path to the SQLite database (default: the user config dir)")
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(exportCmd)
}

func openStore() (*store.Store, error) {
	path := dbPath
	if path == "" {
		var err error
		path, err = store.DefaultDBPath()
		if err != nil {
			return nil, err
		}
	}
	return store.New(path)
}

func openLedger(s *store.Store) (*ledger.Ledger, error) {
	cfg, err := s.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return ledger.New(s, cfg), nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer s.Close()

	l, err := openLedger(s)
	if err != nil {
		return err
	}

	p := tea.NewProgram(tui.NewApp(s, l), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
