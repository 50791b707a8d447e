/*
Package sqlite persists the configuration and ledger collections.

The store is a dumb collaborator: it never computes balances. It preserves
insertion order via rowids so that remove-by-index matches the order records
were appended, and rebuilds a full Snapshot on every load - the engine
treats any previously computed output as stale after a mutation.

SQLite is opened with WAL and foreign keys on; the schema is migrated on
New(). Use ":memory:" for tests.
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/warp/leave-engine/calendar"
	"github.com/warp/leave-engine/ledger"
)

// Store implements persistence for settings, leave records and credits.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a store backed by the database at path.
func New(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	-- Single-row accrual settings
	CREATE TABLE IF NOT EXISTS settings (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		start_date TEXT NOT NULL,
		start_balance TEXT NOT NULL,
		accrual_per_period TEXT NOT NULL,
		first_payday TEXT NOT NULL,
		pay_frequency_days INTEGER NOT NULL
	);

	-- Leave records; rowid order is insertion order
	CREATE TABLE IF NOT EXISTS leave_records (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		kind TEXT NOT NULL,
		from_date TEXT,
		to_date TEXT,
		day_date TEXT,
		hours TEXT,
		note TEXT NOT NULL DEFAULT ''
	);

	-- Credit entries; rowid order is insertion order
	CREATE TABLE IF NOT EXISTS credit_entries (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		entry_date TEXT NOT NULL,
		hours TEXT NOT NULL,
		note TEXT NOT NULL DEFAULT ''
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// SETTINGS
// =============================================================================

// SaveConfig replaces the configuration wholesale.
func (s *Store) SaveConfig(ctx context.Context, cfg ledger.Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO settings (id, start_date, start_balance, accrual_per_period, first_payday, pay_frequency_days)
		VALUES (1, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			start_date = excluded.start_date,
			start_balance = excluded.start_balance,
			accrual_per_period = excluded.accrual_per_period,
			first_payday = excluded.first_payday,
			pay_frequency_days = excluded.pay_frequency_days`,
		cfg.StartDate.String(),
		cfg.StartBalance.String(),
		cfg.AccrualPerPeriod.String(),
		cfg.FirstPayday.String(),
		cfg.PayFrequencyDays,
	)
	return err
}

// =============================================================================
// LEAVE RECORDS
// =============================================================================

// AppendLeave adds a leave record at the end of the collection.
func (s *Store) AppendLeave(ctx context.Context, rec ledger.LeaveRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO leave_records (kind, from_date, to_date, day_date, hours, note)
		VALUES (?, ?, ?, ?, ?, ?)`,
		string(rec.Kind),
		nullDate(rec.From),
		nullDate(rec.To),
		nullDate(rec.Date),
		rec.Hours.String(),
		rec.Note,
	)
	return err
}

// RemoveLeave deletes the record at the given insertion-order index.
func (s *Store) RemoveLeave(ctx context.Context, index int) error {
	return s.removeByIndex(ctx, "leave_records", index)
}

// =============================================================================
// CREDIT ENTRIES
// =============================================================================

// AppendCredit adds a credit entry at the end of the collection.
func (s *Store) AppendCredit(ctx context.Context, entry ledger.CreditEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO credit_entries (entry_date, hours, note) VALUES (?, ?, ?)`,
		entry.Date.String(),
		entry.Hours.String(),
		entry.Note,
	)
	return err
}

// RemoveCredit deletes the entry at the given insertion-order index.
func (s *Store) RemoveCredit(ctx context.Context, index int) error {
	return s.removeByIndex(ctx, "credit_entries", index)
}

// ErrIndexOutOfRange is returned by remove-by-index for a bad position.
var ErrIndexOutOfRange = fmt.Errorf("index out of range")

func (s *Store) removeByIndex(ctx context.Context, table string, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 {
		return ErrIndexOutOfRange
	}

	// Resolve position -> rowid, then delete. Rowid order is the
	// insertion order of the collection.
	var id int64
	err := s.db.QueryRowContext(ctx,
		fmt.Sprintf("SELECT id FROM %s ORDER BY id LIMIT 1 OFFSET ?", table), index,
	).Scan(&id)
	if err == sql.ErrNoRows {
		return ErrIndexOutOfRange
	}
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = ?", table), id)
	return err
}

// =============================================================================
// SNAPSHOT
// =============================================================================

// LoadSnapshot rebuilds the full in-memory state. A missing settings row
// yields the default configuration.
func (s *Store) LoadSnapshot(ctx context.Context) (ledger.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := ledger.Snapshot{Config: ledger.DefaultConfig()}

	row := s.db.QueryRowContext(ctx, `
		SELECT start_date, start_balance, accrual_per_period, first_payday, pay_frequency_days
		FROM settings WHERE id = 1`)
	var startDate, startBalance, accrual, firstPayday string
	var periodDays int
	err := row.Scan(&startDate, &startBalance, &accrual, &firstPayday, &periodDays)
	switch {
	case err == sql.ErrNoRows:
		// keep defaults
	case err != nil:
		return ledger.Snapshot{}, err
	default:
		snap.Config = ledger.Config{
			StartDate:        scanDate(startDate, snap.Config.StartDate),
			StartBalance:     scanDecimal(startBalance),
			AccrualPerPeriod: scanDecimal(accrual),
			FirstPayday:      scanDate(firstPayday, snap.Config.FirstPayday),
			PayFrequencyDays: periodDays,
		}
	}

	leave, err := s.loadLeave(ctx)
	if err != nil {
		return ledger.Snapshot{}, err
	}
	credits, err := s.loadCredits(ctx)
	if err != nil {
		return ledger.Snapshot{}, err
	}

	snap.Leave = leave
	snap.Credits = credits
	return snap, nil
}

func (s *Store) loadLeave(ctx context.Context) ([]ledger.LeaveRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT kind, from_date, to_date, day_date, hours, note
		FROM leave_records ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []ledger.LeaveRecord
	for rows.Next() {
		var kind, hours, note string
		var from, to, day sql.NullString
		if err := rows.Scan(&kind, &from, &to, &day, &hours, &note); err != nil {
			return nil, err
		}
		records = append(records, ledger.LeaveRecord{
			Kind:  ledger.LeaveKind(kind),
			From:  scanNullDate(from),
			To:    scanNullDate(to),
			Date:  scanNullDate(day),
			Hours: scanDecimal(hours),
			Note:  note,
		})
	}
	return records, rows.Err()
}

func (s *Store) loadCredits(ctx context.Context) ([]ledger.CreditEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT entry_date, hours, note FROM credit_entries ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var credits []ledger.CreditEntry
	for rows.Next() {
		var date, hours, note string
		if err := rows.Scan(&date, &hours, &note); err != nil {
			return nil, err
		}
		credits = append(credits, ledger.CreditEntry{
			Date:  scanDate(date, calendar.Date{}),
			Hours: scanDecimal(hours),
			Note:  note,
		})
	}
	return credits, rows.Err()
}

// ReplaceState overwrites everything atomically. Used by import.
func (s *Store) ReplaceState(ctx context.Context, snap ledger.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range []string{"leave_records", "credit_entries", "settings"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO settings (id, start_date, start_balance, accrual_per_period, first_payday, pay_frequency_days)
		VALUES (1, ?, ?, ?, ?, ?)`,
		snap.Config.StartDate.String(),
		snap.Config.StartBalance.String(),
		snap.Config.AccrualPerPeriod.String(),
		snap.Config.FirstPayday.String(),
		snap.Config.PayFrequencyDays,
	)
	if err != nil {
		return err
	}

	for _, rec := range snap.Leave {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO leave_records (kind, from_date, to_date, day_date, hours, note)
			VALUES (?, ?, ?, ?, ?, ?)`,
			string(rec.Kind), nullDate(rec.From), nullDate(rec.To), nullDate(rec.Date),
			rec.Hours.String(), rec.Note,
		)
		if err != nil {
			return err
		}
	}

	for _, entry := range snap.Credits {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO credit_entries (entry_date, hours, note) VALUES (?, ?, ?)`,
			entry.Date.String(), entry.Hours.String(), entry.Note,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// =============================================================================
// SCAN HELPERS
// =============================================================================

func nullDate(d calendar.Date) any {
	if d.IsZero() {
		return nil
	}
	return d.String()
}

func scanNullDate(s sql.NullString) calendar.Date {
	if !s.Valid {
		return calendar.Date{}
	}
	return scanDate(s.String, calendar.Date{})
}

func scanDate(s string, fallback calendar.Date) calendar.Date {
	d, err := calendar.Parse(s)
	if err != nil {
		return fallback
	}
	return d
}

func scanDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
