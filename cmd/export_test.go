package cmd

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/tvesterlund/workhours/internal/datetime"
)

func TestParseDate(t *testing.T) {
	d, err := parseDate("2026-08-24")
	if err != nil {
		t.Fatal(err)
	}
	want := datetime.Date{Year: 2026, Month: time.August, Day: 24}
	if d != want {
		t.Fatalf("parseDate = %v, want %v", d, want)
	}

	for _, bad := range []string{"", "yesterday", "2026-02-30", "2026-13-01"} {
		if _, err := parseDate(bad); err == nil {
			t.Errorf("parseDate(%q) should fail", bad)
		}
	}
}

func TestRunExportEmptyStore(t *testing.T) {
	dir := t.TempDir()
	dbPath = filepath.Join(dir, "workhours.db")
	exportFormat = "csv"
	exportFrom = ""
	exportTo = ""
	exportOut = filepath.Join(dir, "out.csv")
	t.Cleanup(func() { dbPath = "" })

	if err := runExport(exportCmd, nil); err == nil {
		t.Fatal("export of an empty store should fail")
	}
	if _, err := os.Stat(exportOut); err == nil {
		t.Fatal("no file should be written for an empty store")
	}
}

func TestRunExportBadFormat(t *testing.T) {
	exportFormat = "xml"
	t.Cleanup(func() { exportFormat = "csv" })

	if err := runExport(exportCmd, nil); err == nil {
		t.Fatal("unknown format should fail")
	}
}
