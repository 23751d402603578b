package extract

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Sha661nk/B2B-ETL-Pipeline/internal/schema"
)

// fakeRows implements the small part of pgx.Rows the extractor touches.
type fakeRows struct {
	rows [][]any
	pos  int
	err  error
}

func (f *fakeRows) Next() bool {
	if f.pos >= len(f.rows) {
		return false
	}
	f.pos++
	return true
}

func (f *fakeRows) Values() ([]any, error) {
	return f.rows[f.pos-1], nil
}

func (f *fakeRows) Err() error { return f.err }
func (f *fakeRows) Close()     {}

func (f *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (f *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (f *fakeRows) Scan(...any) error                            { return nil }
func (f *fakeRows) RawValues() [][]byte                          { return nil }
func (f *fakeRows) Conn() *pgx.Conn                              { return nil }

// fakeQuerier serves canned rows per table name and records the queries it
// saw.
type fakeQuerier struct {
	data    map[string][][]any
	failOn  string
	queries []string
}

func (f *fakeQuerier) Query(_ context.Context, sql string, _ ...any) (pgx.Rows, error) {
	f.queries = append(f.queries, sql)
	for rel, rows := range f.data {
		if strings.HasSuffix(sql, "FROM "+rel) {
			if rel == f.failOn {
				return nil, fmt.Errorf("relation %q does not exist", rel)
			}
			return &fakeRows{rows: rows}, nil
		}
	}
	return &fakeRows{}, nil
}

func quietLogger() *log.Logger { return log.New(io.Discard, "", 0) }

/*
TestSnapshot verifies that all seven relations are queried with explicit
column lists and their rows land in the snapshot.
*/
func TestSnapshot(t *testing.T) {
	q := &fakeQuerier{data: map[string][][]any{
		"companies": {
			{int64(1), "20111", "Norte", "Company", nil, nil},
			{int64(2), "20222", "Andina", "Supplier", nil, nil},
		},
		"orders": {
			{int64(1), int64(1), int64(1), "2024-04-10 09:00:00", 500.0, nil, nil},
		},
	}}

	snap, err := New(q, quietLogger()).Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}

	if len(snap.Batches) != len(schema.Relations) {
		t.Fatalf("got %d relations, want %d", len(snap.Batches), len(schema.Relations))
	}
	if len(snap.Batches[schema.Companies]) != 2 {
		t.Fatalf("companies rows = %d, want 2", len(snap.Batches[schema.Companies]))
	}
	if len(snap.Batches[schema.Weblog]) != 0 {
		t.Fatalf("weblog rows = %d, want 0", len(snap.Batches[schema.Weblog]))
	}

	if len(q.queries) != len(schema.Relations) {
		t.Fatalf("issued %d queries, want %d", len(q.queries), len(schema.Relations))
	}
	// Explicit column list, never SELECT *.
	for _, query := range q.queries {
		if strings.Contains(query, "*") {
			t.Fatalf("query uses SELECT *: %q", query)
		}
	}
	if want := "SELECT company_id, cuit, company_name, company_type, created_at, updated_at FROM companies"; q.queries[0] != want {
		t.Fatalf("queries[0] = %q, want %q", q.queries[0], want)
	}
}

/*
TestSnapshotFailure verifies that the first failing relation aborts the pass
with a *RetrievalError naming it.
*/
func TestSnapshotFailure(t *testing.T) {
	q := &fakeQuerier{
		data:   map[string][][]any{"products": {{int64(1), "Router", int64(2), 9.5, nil, nil}}},
		failOn: "products",
	}

	_, err := New(q, quietLogger()).Snapshot(context.Background())
	var re *RetrievalError
	if !errors.As(err, &re) {
		t.Fatalf("error = %v, want *RetrievalError", err)
	}
	if re.Relation != schema.Products {
		t.Fatalf("Relation = %s, want products", re.Relation)
	}
	if re.Unwrap() == nil {
		t.Fatal("RetrievalError does not carry a cause")
	}
}
