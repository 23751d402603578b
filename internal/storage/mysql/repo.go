// Package mysql implements the MySQL target-store backend using
// database/sql and go-sql-driver/mysql. MySQL's TRUNCATE implicitly commits,
// which would break refresh atomicity, so clearing uses DELETE inside the
// transaction instead. Inserts use multi-row INSERT statements.
package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"github.com/Sha661nk/B2B-ETL-Pipeline/internal/storage"
	"github.com/Sha661nk/B2B-ETL-Pipeline/internal/warehouse"
)

func init() {
	storage.Register("mysql", func(ctx context.Context, cfg storage.Config) (storage.Repository, error) {
		return NewRepository(ctx, cfg.DSN, cfg.Logger)
	})
	storage.RegisterDDL("mysql", func(ctx context.Context, repo storage.Repository) error {
		return storage.ApplyDDL(ctx, repo, warehouse.DialectMySQL)
	})
}

// insertChunk caps the number of rows per multi-row INSERT to stay well
// under max_allowed_packet.
const insertChunk = 500

// Repository is a MySQL-backed implementation of storage.Repository.
type Repository struct {
	db  *sql.DB
	log *log.Logger
}

// NewRepository opens a MySQL handle for dsn, e.g.
// "user:pass@tcp(localhost:3306)/warehouse?parseTime=true". logger may be
// nil.
func NewRepository(ctx context.Context, dsn string, logger *log.Logger) (*Repository, error) {
	if logger == nil {
		logger = log.Default()
	}
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("mysql: open: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("mysql: ping: %w", err)
	}
	return &Repository{db: db, log: logger}, nil
}

// Refresh runs the clear-then-insert discipline in a single transaction.
func (r *Repository) Refresh(ctx context.Context, tables []warehouse.Table) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("mysql: begin: %w", err)
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

	var inserted int64
	for start := 0; start < len(t.Rows); start += insertChunk {
		end := start + insertChunk
		if end > len(t.Rows) {
			end = len(t.Rows)
		}
		n, err := o.insertChunk(ctx, t, t.Rows[start:end])
		inserted += n
		if err != nil {
			return inserted, err
		}
	}
	return inserted, nil
}

func (o txOps) insertChunk(ctx context.Context, t warehouse.Table, rows [][]any) (int64, error) {
	group := "(" + strings.TrimSuffix(strings.Repeat("?, ", len(t.Columns)), ", ") + ")"
	groups := make([]string, len(rows))
	args := make([]any, 0, len(rows)*len(t.Columns))
	for i, row := range rows {
		groups[i] = group
		args = append(args, row...)
	}

	stmt := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES %s",
		t.Name,
		strings.Join(t.Columns, ", "),
		strings.Join(groups, ", "),
	)

	res, err := o.tx.ExecContext(ctx, stmt, args...)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return n, nil
}
