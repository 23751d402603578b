// Package postgres implements the Postgres target-store backend using pgx
// v5. Inserts go through COPY inside the refresh transaction; TRUNCATE is
// transactional in Postgres, so the whole refresh commits or rolls back as
// one unit.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Sha661nk/B2B-ETL-Pipeline/internal/storage"
	"github.com/Sha661nk/B2B-ETL-Pipeline/internal/warehouse"
)

func init() {
	storage.Register("postgres", func(ctx context.Context, cfg storage.Config) (storage.Repository, error) {
		return NewRepository(ctx, cfg.DSN, cfg.Logger)
	})
	storage.RegisterDDL("postgres", func(ctx context.Context, repo storage.Repository) error {
		return storage.ApplyDDL(ctx, repo, warehouse.DialectPostgres)
	})
}

// Repository is a Postgres-backed implementation of storage.Repository.
type Repository struct {
	pool *pgxpool.Pool
	log  *log.Logger
}

// NewRepository opens a pgx pool for dsn and pings it so bad DSNs fail fast.
// logger may be nil.
func NewRepository(ctx context.Context, dsn string, logger *log.Logger) (*Repository, error) {
	if logger == nil {
		logger = log.Default()
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("pgxpool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pgxpool: ping: %w", err)
	}
	return &Repository{pool: pool, log: logger}, nil
}

// Refresh runs the truncate-then-insert discipline in a single transaction.
func (r *Repository) Refresh(ctx context.Context, tables []warehouse.Table) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("postgres: begin: %w", err)
	}

	if err := storage.RunRefresh(ctx, txOps{tx: tx}, tables, r.log); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		_ = tx.Rollback(ctx)
		return &storage.AbortError{Phase: storage.StateInserting, Table: "", Err: fmt.Errorf("commit: %w", err)}
	}
	return nil
}

// Exec executes a single statement outside the refresh transaction
// (bootstrap DDL).
func (r *Repository) Exec(ctx context.Context, sql string) error {
	_, err := r.pool.Exec(ctx, sql)
	return err
}

// Close releases the pool.
func (r *Repository) Close() { r.pool.Close() }

// txOps adapts an open pgx transaction to the refresh algorithm.
type txOps struct {
	tx pgx.Tx
}

func (o txOps) Clear(ctx context.Context, table string) error {
	_, err := o.tx.Exec(ctx, "TRUNCATE TABLE "+pgIdent(table)+" CASCADE")
	return pgWrap(err)
}

func (o txOps) Insert(ctx context.Context, t warehouse.Table) (int64, error) {
	if len(t.Rows) == 0 {
		return 0, nil
	}
	n, err := o.tx.CopyFrom(ctx, pgx.Identifier{t.Name}, t.Columns, pgx.CopyFromRows(t.Rows))
	return n, pgWrap(err)
}

// pgWrap surfaces the Detail field of Postgres errors, which carries the
// offending key for constraint violations.
func pgWrap(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Detail != "" {
		return fmt.Errorf("%w (%s)", err, pgErr.Detail)
	}
	return err
}

// pgIdent safely quotes a single identifier segment for Postgres.
func pgIdent(id string) string { return `"` + strings.ReplaceAll(id, `"`, `""`) + `"` }
