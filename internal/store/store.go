// Package store persists the business books in a per-workspace sqlite file.
// It knows nothing about the UI state container: the dashboard loads a DB
// snapshot from here and feeds it into the container, and CLI commands write
// records directly.
package store

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const dbFileName = "ledgerdesk.sqlite"

// ErrNotFound is returned when a record id does not exist.
var ErrNotFound = errors.New("record not found")

// Store locates one workspace directory.
type Store struct {
	Dir string
}

// DefaultDir resolves the workspace dir: LEDGERDESK_DIR, else ~/.ledgerdesk.
func DefaultDir() (string, error) {
	if v := os.Getenv("LEDGERDESK_DIR"); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".ledgerdesk"), nil
}

// Ensure creates the workspace dir if missing.
func (s Store) Ensure() error {
	return os.MkdirAll(s.Dir, 0o755)
}

func (s Store) dbPath() string {
	return filepath.Join(s.Dir, dbFileName)
}

// open returns a migrated connection. Callers close it.
func (s Store) open(ctx context.Context) (*sql.DB, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", s.dbPath())
	if err != nil {
		return nil, err
	}
	// WAL enables one writer + many readers; busy_timeout avoids
	// "database is locked" flakiness when a CLI runs next to the TUI.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// withDB runs fn against a fresh connection. One-shot command pattern:
// every CLI invocation opens, works, closes.
func (s Store) withDB(ctx context.Context, fn func(*sql.DB) error) error {
	db, err := s.open(ctx)
	if err != nil {
		return err
	}
	defer db.Close()
	return fn(db)
}

func migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS income (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			client TEXT NOT NULL,
			service_type TEXT NOT NULL,
			amount_cents INTEGER NOT NULL,
			date TEXT NOT NULL,
			expects_1099 INTEGER NOT NULL,
			notes TEXT NOT NULL DEFAULT '',
			created_at_unixms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_income_date ON income(date);`,
		`CREATE TABLE IF NOT EXISTS expenses (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			category TEXT NOT NULL,
			description TEXT NOT NULL,
			amount_cents INTEGER NOT NULL,
			date TEXT NOT NULL,
			business_purpose TEXT NOT NULL,
			created_at_unixms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_expenses_date ON expenses(date);`,
		`CREATE TABLE IF NOT EXISTS mileage (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			start_location TEXT NOT NULL,
			destination TEXT NOT NULL,
			miles REAL NOT NULL,
			business_purpose TEXT NOT NULL,
			date TEXT NOT NULL,
			deduction_cents INTEGER NOT NULL,
			created_at_unixms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_mileage_date ON mileage(date);`,
		`CREATE TABLE IF NOT EXISTS utilities (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			utility_type TEXT NOT NULL,
			monthly_amount_cents INTEGER NOT NULL,
			business_percent REAL NOT NULL,
			monthly_deduction_cents INTEGER NOT NULL,
			annual_deduction_cents INTEGER NOT NULL,
			created_at_unixms INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS home_office (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			method TEXT NOT NULL,
			office_square_feet INTEGER NOT NULL,
			home_square_feet INTEGER NOT NULL,
			business_percent REAL NOT NULL,
			annual_deduction_cents INTEGER NOT NULL,
			created_at_unixms INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS tax_settings (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			business_name TEXT NOT NULL,
			tax_year INTEGER NOT NULL,
			filing_status TEXT NOT NULL,
			other_income_cents INTEGER NOT NULL,
			prior_year_tax_cents INTEGER NOT NULL,
			created_at_unixms INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS tax_payments (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			quarter TEXT NOT NULL,
			amount_cents INTEGER NOT NULL,
			payment_date TEXT NOT NULL,
			payment_method TEXT NOT NULL DEFAULT '',
			confirmation_number TEXT NOT NULL DEFAULT '',
			created_at_unixms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_tax_payments_date ON tax_payments(payment_date);`,
		`CREATE TABLE IF NOT EXISTS savings_goals (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			target_cents INTEGER NOT NULL,
			current_cents INTEGER NOT NULL,
			target_date TEXT NOT NULL DEFAULT '',
			goal_type TEXT NOT NULL DEFAULT 'general',
			created_at_unixms INTEGER NOT NULL
		);`,
	}
	for _, st := range stmts {
		if _, err := db.ExecContext(ctx, st); err != nil {
			return err
		}
	}
	return nil
}
