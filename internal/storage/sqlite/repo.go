// Package sqlite implements the SQLite target-store backend using
// database/sql. SQLite has no bulk-load API like Postgres COPY; a prepared
// INSERT inside the refresh transaction keeps performance acceptable for the
// volumes a full snapshot produces. This backend is also what the
// integration-style tests run against.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/Sha661nk/B2B-ETL-Pipeline/internal/storage"
	"github.com/Sha661nk/B2B-ETL-Pipeline/internal/warehouse"
)

func init() {
	storage.Register("sqlite", func(ctx context.Context, cfg storage.Config) (storage.Repository, error) {
		return NewRepository(ctx, cfg.DSN, cfg.Logger)
	})
	storage.RegisterDDL("sqlite", func(ctx context.Context, repo storage.Repository) error {
		return storage.ApplyDDL(ctx, repo, warehouse.DialectSQLite)
	})
}

// Repository is a SQLite-backed implementation of storage.Repository.
type Repository struct {
	db  *sql.DB
	log *log.Logger
}

// NewRepository opens a SQLite database for dsn, e.g. "file:etl.db" or a
// plain path. Foreign key enforcement is requested through the DSN, so every
// connection in the database/sql pool gets the pragma, not just the one that
// happened to serve the constructor. logger may be nil.
func NewRepository(ctx context.Context, dsn string, logger *log.Logger) (*Repository, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("sqlite: DSN must not be empty")
	}
	if logger == nil {
		logger = log.Default()
	}

	db, err := sql.Open("sqlite", withForeignKeys(dsn))
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: ping: %w", err)
	}

	return &Repository{db: db, log: logger}, nil
}

// withForeignKeys appends the foreign_keys pragma to dsn unless the caller
// already configured one. The pragma is per-connection in SQLite; carrying
// it in the DSN makes the driver apply it on every new connection.
func withForeignKeys(dsn string) string {
	if strings.Contains(dsn, "_pragma=foreign_keys") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)"
}

// Refresh runs the clear-then-insert discipline in a single transaction.
// SQLite has no TRUNCATE; DELETE inside the transaction is equivalent here.
func (r *Repository) Refresh(ctx context.Context, tables []warehouse.Table) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: begin: %w", err)
	}

	if err := storage.RunRefresh(ctx, txOps{tx: tx}, tables, r.log); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		_ = tx.Rollback()
		return &storage.AbortError{Phase: storage.StateInserting, Err: fmt.Errorf("commit: %w", err)}
	}
	return nil
}

// Exec executes a single statement (bootstrap DDL).
func (r *Repository) Exec(ctx context.Context, sqlText string) error {
	_, err := r.db.ExecContext(ctx, sqlText)
	return err
}

// Close closes the database handle.
func (r *Repository) Close() { _ = r.db.Close() }

type txOps struct {
	tx *sql.Tx
}

func (o txOps) Clear(ctx context.Context, table string) error {
	_, err := o.tx.ExecContext(ctx, "DELETE FROM "+table)
	return err
}

func (o txOps) Insert(ctx context.Context, t warehouse.Table) (int64, error) {
	if len(t.Rows) == 0 {
		return 0, nil
	}

	placeholders := make([]string, len(t.Columns))
	for i := range placeholders {
		placeholders[i] = "?"
	}
	stmtSQL := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		t.Name,
		strings.Join(t.Columns, ", "),
		strings.Join(placeholders, ", "),
	)

	stmt, err := o.tx.PrepareContext(ctx, stmtSQL)
	if err != nil {
		return 0, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	var inserted int64
	for _, row := range t.Rows {
		if _, err := stmt.ExecContext(ctx, normalizeRow(row)...); err != nil {
			return inserted, err
		}
		inserted++
	}
	return inserted, nil
}

// normalizeRow converts values the sqlite driver cannot encode natively;
// time.Time becomes an ISO string to match the TEXT date columns.
func normalizeRow(row []any) []any {
	out := make([]any, len(row))
	for i, v := range row {
		if t, ok := v.(time.Time); ok {
			out[i] = t.Format("2006-01-02 15:04:05")
			continue
		}
		out[i] = v
	}
	return out
}
