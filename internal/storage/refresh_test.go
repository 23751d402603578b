package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"testing"

	"github.com/Sha661nk/B2B-ETL-Pipeline/internal/warehouse"
)

// fakeTxOps records the operations RunRefresh performs, optionally failing
// a named clear or insert.
type fakeTxOps struct {
	ops        []string // "clear:<t>" / "insert:<t>" in call order
	failClear  string
	failInsert string
}

func (f *fakeTxOps) Clear(_ context.Context, table string) error {
	f.ops = append(f.ops, "clear:"+table)
	if table == f.failClear {
		return fmt.Errorf("boom clearing %s", table)
	}
	return nil
}

func (f *fakeTxOps) Insert(_ context.Context, t warehouse.Table) (int64, error) {
	f.ops = append(f.ops, "insert:"+t.Name)
	if t.Name == f.failInsert {
		return 0, fmt.Errorf("boom inserting %s", t.Name)
	}
	return int64(len(t.Rows)), nil
}

func testTables() []warehouse.Table {
	names := []string{
		warehouse.TableDimCompany, warehouse.TableDimCustomer,
		warehouse.TableDimProduct, warehouse.TableDimDate,
		warehouse.TableFactOrders, warehouse.TableDimLead,
		warehouse.TableDimDevice,
	}
	tables := make([]warehouse.Table, len(names))
	for i, n := range names {
		tables[i] = warehouse.Table{Name: n, Columns: []string{"c"}, Rows: [][]any{{1}}}
	}
	return tables
}

func quietLogger() *log.Logger { return log.New(io.Discard, "", 0) }

/*
TestRunRefreshOrder verifies the refresh discipline: every table is cleared
in reverse dependency order before any insert happens, then inserts run in
load order.
*/
func TestRunRefreshOrder(t *testing.T) {
	ops := &fakeTxOps{}
	tables := testTables()

	if err := RunRefresh(context.Background(), ops, tables, quietLogger()); err != nil {
		t.Fatalf("RunRefresh: %v", err)
	}

	if len(ops.ops) != 14 {
		t.Fatalf("len(ops) = %d, want 14", len(ops.ops))
	}
	// First seven are clears, reversed.
	for i := 0; i < 7; i++ {
		want := "clear:" + tables[6-i].Name
		if ops.ops[i] != want {
			t.Fatalf("ops[%d] = %q, want %q", i, ops.ops[i], want)
		}
	}
	// Last seven are inserts, in load order.
	for i := 0; i < 7; i++ {
		want := "insert:" + tables[i].Name
		if ops.ops[7+i] != want {
			t.Fatalf("ops[%d] = %q, want %q", 7+i, ops.ops[7+i], want)
		}
	}
}

/*
TestRunRefreshAbortsOnInsertFailure verifies that a mid-run insert failure
stops the run immediately and reports phase and table in a *AbortError.
*/
func TestRunRefreshAbortsOnInsertFailure(t *testing.T) {
	ops := &fakeTxOps{failInsert: warehouse.TableFactOrders}
	tables := testTables()

	err := RunRefresh(context.Background(), ops, tables, quietLogger())

	var abort *AbortError
	if !errors.As(err, &abort) {
		t.Fatalf("error = %v, want *AbortError", err)
	}
	if abort.Phase != StateInserting || abort.Table != warehouse.TableFactOrders {
		t.Fatalf("abort = phase %s table %s, want inserting %s", abort.Phase, abort.Table, warehouse.TableFactOrders)
	}

	// Nothing after the failing table was attempted: 7 clears + 5 inserts.
	if len(ops.ops) != 12 {
		t.Fatalf("len(ops) = %d, want 12 (no work after the failure)", len(ops.ops))
	}
	last := ops.ops[len(ops.ops)-1]
	if last != "insert:"+warehouse.TableFactOrders {
		t.Fatalf("last op = %q, want the failing insert", last)
	}
}

func TestRunRefreshAbortsOnClearFailure(t *testing.T) {
	ops := &fakeTxOps{failClear: warehouse.TableDimDate}
	tables := testTables()

	err := RunRefresh(context.Background(), ops, tables, quietLogger())

	var abort *AbortError
	if !errors.As(err, &abort) {
		t.Fatalf("error = %v, want *AbortError", err)
	}
	if abort.Phase != StateClearing || abort.Table != warehouse.TableDimDate {
		t.Fatalf("abort = phase %s table %s, want clearing %s", abort.Phase, abort.Table, warehouse.TableDimDate)
	}
	for _, op := range ops.ops {
		if strings.HasPrefix(op, "insert:") {
			t.Fatalf("insert attempted after clear failure: %v", ops.ops)
		}
	}
}

func TestAbortErrorMessage(t *testing.T) {
	cause := errors.New("duplicate key value violates unique constraint")
	err := &AbortError{Phase: StateInserting, Table: warehouse.TableFactOrders, Err: cause}

	msg := err.Error()
	for _, want := range []string{"inserting", warehouse.TableFactOrders, "rolled back", cause.Error()} {
		if !strings.Contains(msg, want) {
			t.Fatalf("message %q missing %q", msg, want)
		}
	}
	if !errors.Is(err, cause) {
		t.Fatal("AbortError does not unwrap to its cause")
	}
}
