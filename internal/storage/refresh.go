package storage

import (
	"context"
	"log"

	"github.com/Sha661nk/B2B-ETL-Pipeline/internal/warehouse"
)

// State names the phases of a full-refresh run. A run moves
// Idle → Clearing → Inserting → Committed, or ends RolledBack from any
// phase that fails.
type State int

const (
	StateIdle State = iota
	StateClearing
	StateInserting
	StateCommitted
	StateRolledBack
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateClearing:
		return "clearing"
	case StateInserting:
		return "inserting"
	case StateCommitted:
		return "committed"
	case StateRolledBack:
		return "rolled back"
	default:
		return "unknown"
	}
}

// TxOps is the per-backend transactional surface the refresh algorithm runs
// against. Implementations wrap an open transaction; both operations must
// take effect inside it so a rollback undoes everything.
type TxOps interface {
	// Clear removes all rows from table.
	Clear(ctx context.Context, table string) error
	// Insert writes all rows of t and returns the inserted count.
	Insert(ctx context.Context, t warehouse.Table) (int64, error)
}

// RunRefresh executes the full-refresh discipline against an open
// transaction: clear every table first (in reverse dependency order, so fact
// rows go before the dimension rows they reference), then insert every table
// in the given order (dimensions first). All clears complete before any
// insert begins.
//
// On failure it returns a *AbortError naming the phase and table; the caller
// owns the transaction and must roll it back before surfacing the error.
func RunRefresh(ctx context.Context, ops TxOps, tables []warehouse.Table, logger *log.Logger) error {
	if logger == nil {
		logger = log.Default()
	}

	for i := len(tables) - 1; i >= 0; i-- {
		if err := ops.Clear(ctx, tables[i].Name); err != nil {
			return &AbortError{Phase: StateClearing, Table: tables[i].Name, Err: err}
		}
	}

	for _, t := range tables {
		n, err := ops.Insert(ctx, t)
		if err != nil {
			return &AbortError{Phase: StateInserting, Table: t.Name, Err: err}
		}
		logger.Printf("load: table=%s rows=%d", t.Name, n)
	}
	return nil
}
