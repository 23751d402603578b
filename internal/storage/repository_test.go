package storage

import (
	"context"
	"testing"

	"github.com/Sha661nk/B2B-ETL-Pipeline/internal/warehouse"
)

// stubRepo is a do-nothing Repository used to exercise the registries.
type stubRepo struct{ execs []string }

func (s *stubRepo) Refresh(context.Context, []warehouse.Table) error { return nil }
func (s *stubRepo) Exec(_ context.Context, sql string) error {
	s.execs = append(s.execs, sql)
	return nil
}
func (s *stubRepo) Close() {}

/*
TestRegisterAndNew verifies the factory registry round trip and that an
unregistered kind is rejected with a useful error.
*/
func TestRegisterAndNew(t *testing.T) {
	kind := "stub-registry-test"
	want := &stubRepo{}
	Register(kind, func(context.Context, Config) (Repository, error) {
		return want, nil
	})

	got, err := New(context.Background(), Config{Kind: kind, DSN: "ignored"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got != Repository(want) {
		t.Fatalf("New returned %T, want the registered stub", got)
	}

	if _, err := New(context.Background(), Config{Kind: "no-such-kind"}); err == nil {
		t.Fatal("New(unregistered) = nil error, want error")
	}
}

func TestListKindsIncludesRegistered(t *testing.T) {
	kind := "stub-listkinds-test"
	Register(kind, func(context.Context, Config) (Repository, error) {
		return &stubRepo{}, nil
	})

	found := false
	for _, k := range ListKinds() {
		if k == kind {
			found = true
		}
	}
	if !found {
		t.Fatalf("ListKinds() = %v, missing %q", ListKinds(), kind)
	}
}

/*
TestEnsureSchema verifies DDL bootstrap dispatch: a registered bootstrapper
runs against the given repo, an unregistered kind errors.
*/
func TestEnsureSchema(t *testing.T) {
	kind := "stub-ddl-test"
	repo := &stubRepo{}
	RegisterDDL(kind, func(ctx context.Context, r Repository) error {
		return ApplyDDL(ctx, r, warehouse.DialectSQLite)
	})

	if err := EnsureSchema(context.Background(), kind, repo); err != nil {
		t.Fatalf("EnsureSchema: %v", err)
	}
	if len(repo.execs) != 7 {
		t.Fatalf("executed %d statements, want 7", len(repo.execs))
	}

	if err := EnsureSchema(context.Background(), "no-such-kind", repo); err == nil {
		t.Fatal("EnsureSchema(unregistered) = nil error, want error")
	}
}
