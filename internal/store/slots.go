package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/tvesterlund/workhours/internal/datetime"
	"github.com/tvesterlund/workhours/internal/ledger"
)

// InsertSlot records a slot for (date, kind). The unique index on
// (year, month, day, kind) makes concurrent identical inserts collapse
// into one row; the surviving row's id is returned either way.
func (s *Store) InsertSlot(date datetime.Date, kind ledger.SlotKind, at datetime.TimeOfDay) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO activity_slots (year, month, day, kind, hour, minute)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(year, month, day, kind) DO NOTHING`,
		date.Year, int(date.Month), date.Day, int(kind), at.Hour, at.Minute,
	)
	if err != nil {
		return 0, fmt.Errorf("insert slot: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		// Lost the race; hand back the row that won.
		existing, err := s.QuerySlot(date, kind)
		if err != nil {
			return 0, err
		}
		if existing == nil {
			return 0, fmt.Errorf("insert slot: conflict but no row for %s %s", date, kind)
		}
		return existing.ID, nil
	}
	id, _ := res.LastInsertId()
	return id, nil
}

// UpdateSlot overwrites the timestamp of an existing slot record.
func (s *Store) UpdateSlot(id int64, at datetime.TimeOfDay) error {
	res, err := s.db.Exec(
		`UPDATE activity_slots SET hour = ?, minute = ? WHERE id = ?`,
		at.Hour, at.Minute, id,
	)
	if err != nil {
		return fmt.Errorf("update slot %d: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("update slot %d: no such record", id)
	}
	return nil
}

// QuerySlot is a point lookup; it returns nil when the day has no
// record of that kind.
func (s *Store) QuerySlot(date datetime.Date, kind ledger.SlotKind) (*ledger.Entry, error) {
	row := s.db.QueryRow(
		`SELECT id, kind, year, month, day, hour, minute
		 FROM activity_slots
		 WHERE year = ? AND month = ? AND day = ? AND kind = ?`,
		date.Year, int(date.Month), date.Day, int(kind),
	)
	entry, err := scanSlot(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query slot %s %s: %w", date, kind, err)
	}
	return entry, nil
}

// EarliestSlot returns the oldest record in the ledger, or nil for an
// empty database. It bounds the all-time average.
func (s *Store) EarliestSlot() (*ledger.Entry, error) {
	row := s.db.QueryRow(
		`SELECT id, kind, year, month, day, hour, minute
		 FROM activity_slots
		 ORDER BY year, month, day, id
		 LIMIT 1`,
	)
	entry, err := scanSlot(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query earliest slot: %w", err)
	}
	return entry, nil
}

func scanSlot(row *sql.Row) (*ledger.Entry, error) {
	var (
		id                             int64
		kindVal                        int
		year, month, day, hour, minute int
	)
	if err := row.Scan(&id, &kindVal, &year, &month, &day, &hour, &minute); err != nil {
		return nil, err
	}
	kind, err := ledger.SlotKindFrom(kindVal)
	if err != nil {
		return nil, err
	}
	return &ledger.Entry{
		ID:   id,
		Kind: kind,
		At: datetime.DateTime{
			Date: datetime.Date{Year: year, Month: time.Month(month), Day: day},
			Time: datetime.TimeOfDay{Hour: hour, Minute: minute},
		},
	}, nil
}
