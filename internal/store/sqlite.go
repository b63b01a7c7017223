package store

import (
	"context"
	"database/sql"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"remind-cli/internal/model"
)

// Column layout is the flattened snake_case shape the remote API also
// speaks: due_date/created_at/updated_at RFC3339 strings, tags comma-joined.

func (s Store) openSQLite(ctx context.Context) (*sql.DB, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", s.sqlitePath())
	if err != nil {
		return nil, err
	}
	// WAL enables one writer + many readers; busy_timeout avoids
	// "database is locked" flakiness across processes.
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
	if err := migrateSQLite(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func migrateSQLite(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS reminders (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			notes TEXT NOT NULL,
			completed INTEGER NOT NULL,
			due_date TEXT NOT NULL,
			tags TEXT NOT NULL,
			rank INTEGER NOT NULL,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_reminders_due ON reminders(due_date);`,
		`CREATE INDEX IF NOT EXISTS idx_reminders_completed ON reminders(completed);`,
	}
	for _, st := range stmts {
		if _, err := db.ExecContext(ctx, st); err != nil {
			return err
		}
	}
	return nil
}

// Load returns the last saved collection, or an empty collection when
// nothing has been saved yet.
func (s Store) Load(ctx context.Context) ([]model.Reminder, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `SELECT id, title, notes, completed, due_date, tags, rank, created_at, updated_at FROM reminders`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Reminder{}
	for rows.Next() {
		var (
			r                          model.Reminder
			completed                  int
			due, tagsCol, created, upd string
		)
		if err := rows.Scan(&r.ID, &r.Title, &r.Notes, &completed, &due, &tagsCol, &r.Rank, &created, &upd); err != nil {
			return nil, err
		}
		r.Completed = completed != 0
		if due != "" {
			if t, err := time.Parse(time.RFC3339Nano, due); err == nil {
				t = t.UTC()
				r.DueDate = &t
			}
		}
		if tagsCol != "" {
			for _, tag := range strings.Split(tagsCol, ",") {
				if tag = strings.TrimSpace(tag); tag != "" {
					r.Tags = append(r.Tags, tag)
				}
			}
		}
		if t, err := time.Parse(time.RFC3339Nano, created); err == nil {
			r.CreatedAt = t.UTC()
		}
		if t, err := time.Parse(time.RFC3339Nano, upd); err == nil {
			r.UpdatedAt = t.UTC()
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Save replaces the stored collection with col in one transaction.
func (s Store) Save(ctx context.Context, col []model.Reminder) error {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM reminders`); err != nil {
		return err
	}
	for _, r := range col {
		due := ""
		if r.DueDate != nil {
			due = r.DueDate.UTC().Format(time.RFC3339Nano)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO reminders(id, title, notes, completed, due_date, tags, rank, created_at, updated_at) VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			r.ID, r.Title, r.Notes, boolToInt(r.Completed), due,
			strings.Join(r.Tags, ","), r.Rank,
			r.CreatedAt.UTC().Format(time.RFC3339Nano),
			r.UpdatedAt.UTC().Format(time.RFC3339Nano),
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
