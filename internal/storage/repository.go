// Package storage contains the storage-agnostic loading contracts: the
// Repository interface, a factory registry keyed by backend kind, the
// full-refresh state machine, and the DDL bootstrap registry.
//
// Concrete backends (postgres, mysql, sqlite) live in subpackages and
// register themselves at init time; importing storage/all wires every
// built-in backend into a binary.
package storage

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"

	"github.com/Sha661nk/B2B-ETL-Pipeline/internal/warehouse"
)

// Config identifies and configures a target-store backend.
type Config struct {
	// Kind selects the registered backend, e.g. "postgres".
	Kind string
	// DSN is the backend connection string.
	DSN string
	// Logger receives per-table load lines during a refresh. nil falls back
	// to the default logger.
	Logger *log.Logger
}

// Repository is the minimal surface the pipeline needs from a target store.
type Repository interface {
	// Refresh atomically replaces the contents of the given tables: clear
	// all, insert all, in one transaction. On error the target store is left
	// unchanged and a *AbortError is returned.
	Refresh(ctx context.Context, tables []warehouse.Table) error

	// Exec runs a single SQL statement, typically bootstrap DDL.
	Exec(ctx context.Context, sql string) error

	// Close releases the underlying connections.
	Close()
}

// Factory constructs a Repository for a Config.
type Factory func(ctx context.Context, cfg Config) (Repository, error)

var (
	regMu     sync.RWMutex
	factories = map[string]Factory{}
)

// Register installs (or replaces) the factory for a backend kind. It is
// called from backend packages' init functions.
func Register(kind string, f Factory) {
	regMu.Lock()
	defer regMu.Unlock()
	factories[kind] = f
}

// New opens a Repository for cfg.Kind using the registered factory.
func New(ctx context.Context, cfg Config) (Repository, error) {
	regMu.RLock()
	f, ok := factories[cfg.Kind]
	regMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unsupported storage.kind=%s", cfg.Kind)
	}
	return f(ctx, cfg)
}

// ListKinds returns the registered backend kinds, sorted, as a copy.
func ListKinds() []string {
	regMu.RLock()
	defer regMu.RUnlock()
	kinds := make([]string, 0, len(factories))
	for k := range factories {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}
