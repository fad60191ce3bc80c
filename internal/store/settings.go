package store

import (
	"fmt"
	"strconv"
	"time"

	"github.com/tvesterlund/workhours/internal/datetime"
	"github.com/tvesterlund/workhours/internal/ledger"
)

type Setting struct {
	Key   string
	Value string
}

func (s *Store) GetSetting(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err != nil {
		return "", fmt.Errorf("get setting %q: %w", key, err)
	}
	return value, nil
}

func (s *Store) SetSetting(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	return err
}

func (s *Store) GetAllSettings() ([]Setting, error) {
	rows, err := s.db.Query(`SELECT key, value FROM settings ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	defer rows.Close()

	var settings []Setting
	for rows.Next() {
		var s Setting
		if err := rows.Scan(&s.Key, &s.Value); err != nil {
			return nil, err
		}
		settings = append(settings, s)
	}
	return settings, rows.Err()
}

// LoadConfig reads the working-hours configuration out of the settings
// table. A stored value that does not parse is an error, not a silent
// fallback to defaults; the migration seeds every key so missing rows
// only happen on a tampered database.
func (s *Store) LoadConfig() (ledger.Config, error) {
	cfg := ledger.Config{}

	times := []struct {
		key string
		dst *datetime.TimeOfDay
	}{
		{"start_of_day", &cfg.StartOfDay},
		{"end_of_day", &cfg.EndOfDay},
		{"end_of_morning", &cfg.EndOfMorning},
		{"start_of_afternoon", &cfg.StartOfAfternoon},
	}
	for _, t := range times {
		raw, err := s.GetSetting(t.key)
		if err != nil {
			return ledger.Config{}, err
		}
		tod, err := datetime.ParseTimeOfDay(raw)
		if err != nil {
			return ledger.Config{}, fmt.Errorf("setting %q: %w", t.key, err)
		}
		*t.dst = tod
	}

	raw, err := s.GetSetting("valid_day_minimum_minutes")
	if err != nil {
		return ledger.Config{}, err
	}
	minutes, err := strconv.Atoi(raw)
	if err != nil || minutes < 0 {
		return ledger.Config{}, fmt.Errorf("setting %q: bad value %q", "valid_day_minimum_minutes", raw)
	}
	cfg.ValidDayMinimum = time.Duration(minutes) * time.Minute

	return cfg, nil
}

// MonitorInterval reads the watcher polling period.
func (s *Store) MonitorInterval() (time.Duration, error) {
	raw, err := s.GetSetting("monitor_interval_seconds")
	if err != nil {
		return 0, err
	}
	secs, err := strconv.Atoi(raw)
	if err != nil || secs <= 0 {
		return 0, fmt.Errorf("setting %q: bad value %q", "monitor_interval_seconds", raw)
	}
	return time.Duration(secs) * time.Second, nil
}
