// Package storage is the SQLite-backed record store: one table of
// financial records plus the user-credential table.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"finfusion/internal/core"

	_ "modernc.org/sqlite"
)

const dateLayout = "2006-01-02"

type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository opens (creating if necessary) the database at dbPath
// and runs schema migrations.
func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Ping reports whether the store is reachable. Used by the readiness probe.
func (r *SQLiteRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// CreateUser inserts a new credential row. Returns ErrUsernameTaken when
// the username already exists.
func (r *SQLiteRepository) CreateUser(ctx context.Context, username, authHash string) error {
	if _, err := r.db.ExecContext(ctx, createUser, username, authHash); err != nil {
		if isUniqueConstraintError(err) {
			return ErrUsernameTaken
		}
		return fmt.Errorf("create user: %w", err)
	}

	slog.InfoContext(ctx, "User created", "username", username)
	return nil
}

// GetUserAuthHash returns the stored password hash for username, or
// ErrUserNotFound when no such row exists.
func (r *SQLiteRepository) GetUserAuthHash(ctx context.Context, username string) (string, error) {
	var authHash string
	err := r.db.QueryRowContext(ctx, getUserAuthHash, username).Scan(&authHash)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrUserNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get user auth hash: %w", err)
	}
	return authHash, nil
}

// InsertRecord appends one row and returns the assigned id.
func (r *SQLiteRepository) InsertRecord(ctx context.Context, rec core.Record) (int64, error) {
	res, err := r.db.ExecContext(ctx, insertRecord,
		rec.Username,
		rec.Date.Format(dateLayout),
		rec.Description,
		rec.Amount.Cents,
		string(rec.Type),
		string(rec.PaymentMethod),
		rec.Installments,
		string(rec.Necessity),
	)
	if err != nil {
		return 0, fmt.Errorf("insert record: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert record id: %w", err)
	}

	slog.InfoContext(ctx, "Record saved",
		"id", id,
		"username", rec.Username,
		"amount_cents", rec.Amount.Cents,
		"record_type", string(rec.Type))

	return id, nil
}

// ListRecords returns every record owned by username ordered by id. Storage
// failures are returned to the caller; the presentation layer decides
// whether to show an empty table or an error state.
func (r *SQLiteRepository) ListRecords(ctx context.Context, username string) ([]core.Record, error) {
	rows, err := r.db.QueryContext(ctx, listRecords, username)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()

	var records []core.Record
	for rows.Next() {
		var (
			rec     core.Record
			dateStr string
		)
		if err := rows.Scan(
			&rec.ID,
			&rec.Username,
			&dateStr,
			&rec.Description,
			&rec.Amount.Cents,
			&rec.Type,
			&rec.PaymentMethod,
			&rec.Installments,
			&rec.Necessity,
		); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}

		d, err := time.Parse(dateLayout, dateStr)
		if err != nil {
			return nil, fmt.Errorf("parse record date %q: %w", dateStr, err)
		}
		rec.Date = core.Date{Time: d}

		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}

	return records, nil
}

// DeleteRecords removes the rows with the given ids in one transaction.
// Ids that do not exist are silent no-ops; an empty id list does nothing.
func (r *SQLiteRepository) DeleteRecords(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, deleteRecord)
	if err != nil {
		return fmt.Errorf("prepare delete: %w", err)
	}
	defer stmt.Close()

	for _, id := range ids {
		if _, err := stmt.ExecContext(ctx, id); err != nil {
			return fmt.Errorf("delete record %d: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete: %w", err)
	}

	slog.InfoContext(ctx, "Records deleted", "count", len(ids))
	return nil
}
