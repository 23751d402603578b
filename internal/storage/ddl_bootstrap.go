package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/Sha661nk/B2B-ETL-Pipeline/internal/warehouse"
)

// DDLBootstrapper applies the target star-schema DDL for one backend kind,
// typically by rendering warehouse.DDL in the backend's dialect and executing
// it via repo.Exec. Backends register their implementation at init time.
type DDLBootstrapper func(ctx context.Context, repo Repository) error

var (
	ddlMu  sync.RWMutex
	ddlFns = map[string]DDLBootstrapper{}
)

// RegisterDDL registers (or replaces) the DDLBootstrapper for a backend kind.
func RegisterDDL(kind string, fn DDLBootstrapper) {
	ddlMu.Lock()
	defer ddlMu.Unlock()
	ddlFns[kind] = fn
}

// EnsureSchema creates the seven target tables if they do not exist, using
// the bootstrapper registered for kind. Callers do not need to know which
// dialect the backend speaks.
func EnsureSchema(ctx context.Context, kind string, repo Repository) error {
	ddlMu.RLock()
	fn, ok := ddlFns[kind]
	ddlMu.RUnlock()
	if !ok {
		return fmt.Errorf("no DDL bootstrapper registered for storage.kind=%q", kind)
	}
	return fn(ctx, repo)
}

// ApplyDDL is the shared bootstrapper body: render the star-schema DDL for d
// and execute each statement.
func ApplyDDL(ctx context.Context, repo Repository, d warehouse.Dialect) error {
	stmts, err := warehouse.DDL(d)
	if err != nil {
		return err
	}
	for _, s := range stmts {
		if err := repo.Exec(ctx, s); err != nil {
			return fmt.Errorf("apply DDL: %w", err)
		}
	}
	return nil
}
