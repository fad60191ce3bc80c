package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tvesterlund/workhours/internal/datetime"
	"github.com/tvesterlund/workhours/internal/report"
	"github.com/tvesterlund/workhours/internal/store"
	"github.com/tvesterlund/workhours/internal/watch"
)

var statsFile string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Poll the mouse position and record activity",
	Long: `watch samples the X11 pointer position on a fixed interval and folds
every observed movement into the attendance ledger. A plain-text
summary is rewritten next to the database after each recording.

The process runs until interrupted.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&statsFile, "stats-file", "",
		"Path of the plain-text summary (default: stats.txt next to the database)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer s.Close()

	l, err := openLedger(s)
	if err != nil {
		return err
	}

	interval, err := s.MonitorInterval()
	if err != nil {
		return fmt.Errorf("load monitor interval: %w", err)
	}

	src, err := watch.NewX11Source()
	if err != nil {
		return err
	}
	defer src.Close()

	stats := statsFile
	if stats == "" {
		base := dbPath
		if base == "" {
			base, err = store.DefaultDBPath()
			if err != nil {
				return err
			}
		}
		stats = filepath.Join(filepath.Dir(base), "stats.txt")
	}

	w := &watch.Watcher{
		Source:   src,
		Ledger:   l,
		Interval: interval,
		OnActivity: func(at datetime.DateTime) {
			if err := report.WriteFile(stats, l, at.Date); err != nil {
				fmt.Fprintf(os.Stderr, "write stats file: %v\n", err)
			}
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("watching pointer every %s, recording to %s\n", interval, stats)
	if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
