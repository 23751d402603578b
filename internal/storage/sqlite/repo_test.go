package sqlite

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Sha661nk/B2B-ETL-Pipeline/internal/storage"
	"github.com/Sha661nk/B2B-ETL-Pipeline/internal/warehouse"
)

func newTestRepo(t *testing.T, logger *log.Logger) *Repository {
	t.Helper()
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	ctx := context.Background()
	repo, err := NewRepository(ctx, filepath.Join(t.TempDir(), "warehouse.db"), logger)
	if err != nil {
		t.Fatalf("NewRepository: %v", err)
	}
	t.Cleanup(repo.Close)

	if err := storage.EnsureSchema(ctx, "sqlite", repo); err != nil {
		t.Fatalf("EnsureSchema: %v", err)
	}
	return repo
}

// testModel builds a minimal consistent star schema: one row per table, the
// fact referencing every dimension. quantity marks the dataset so a test can
// tell apart two loads.
func testModel(quantity int64) *warehouse.Model {
	day := time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC)
	return &warehouse.Model{
		Companies: []warehouse.CompanyRow{{CompanyID: 1, CUIT: "20111", CompanyName: "Norte", CompanyType: "Company"}},
		Customers: []warehouse.CustomerRow{{CustomerID: 1, FullName: "Ana Lopez", DocumentNumber: "301"}},
		Products:  []warehouse.ProductRow{{ProductID: 1, ProductName: "Router X1", SupplierID: 1, DefaultPrice: 199.99}},
		Dates:     []warehouse.DateRow{{DateID: 1, Date: day, Month: 4, Year: 2024}},
		Orders: []warehouse.OrderFactRow{{
			OrderID: 1, CompanyID: 1, CustomerID: 1, ProductID: 1,
			DateID: 1, Quantity: quantity, TotalAmount: 400,
			OrderTimestamp: day.Add(9 * time.Hour),
		}},
		Leads:   []warehouse.LeadRow{{FirstName: "Outreach", LastName: "Outreach", CompanyName: 1, LeadSource: 1, EngagementScore: 10, ContactDate: day}},
		Devices: []warehouse.DeviceRow{{DeviceType: "Desktop", UserAgent: "Mozilla/5.0"}},
	}
}

func countRows(t *testing.T, repo *Repository, table string) int {
	t.Helper()
	var n int
	if err := repo.db.QueryRowContext(context.Background(), "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}

func factQuantity(t *testing.T, repo *Repository) int64 {
	t.Helper()
	var q int64
	if err := repo.db.QueryRowContext(context.Background(), "SELECT quantity FROM fact_orders").Scan(&q); err != nil {
		t.Fatalf("read fact quantity: %v", err)
	}
	return q
}

/*
TestRefresh verifies a full load against a real database: all seven tables
populated, and a second refresh replaces rather than appends.
*/
func TestRefresh(t *testing.T) {
	repo := newTestRepo(t, nil)
	ctx := context.Background()

	if err := repo.Refresh(ctx, testModel(4).Tables()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	for _, tbl := range testModel(4).Tables() {
		if n := countRows(t, repo, tbl.Name); n != 1 {
			t.Fatalf("%s has %d rows, want 1", tbl.Name, n)
		}
	}

	if err := repo.Refresh(ctx, testModel(9).Tables()); err != nil {
		t.Fatalf("second Refresh: %v", err)
	}
	if n := countRows(t, repo, warehouse.TableFactOrders); n != 1 {
		t.Fatalf("fact_orders has %d rows after reload, want 1", n)
	}
	if q := factQuantity(t, repo); q != 9 {
		t.Fatalf("fact quantity = %d, want 9 (second dataset)", q)
	}
}

/*
TestRefreshRollsBackOnFailure forces a failure at the fact table (duplicate
primary key inside one batch) and verifies the transaction rolled back: every
table still holds exactly the previous dataset.
*/
func TestRefreshRollsBackOnFailure(t *testing.T) {
	repo := newTestRepo(t, nil)
	ctx := context.Background()

	if err := repo.Refresh(ctx, testModel(4).Tables()); err != nil {
		t.Fatalf("initial Refresh: %v", err)
	}

	bad := testModel(9).Tables()
	facts := &bad[4]
	if facts.Name != warehouse.TableFactOrders {
		t.Fatalf("tables[4] = %q, want %q", facts.Name, warehouse.TableFactOrders)
	}
	// Same order_id twice violates the fact table's primary key.
	facts.Rows = append(facts.Rows, append([]any(nil), facts.Rows[0]...))

	err := repo.Refresh(ctx, bad)
	var abort *storage.AbortError
	if !errors.As(err, &abort) {
		t.Fatalf("error = %v, want *storage.AbortError", err)
	}
	if abort.Phase != storage.StateInserting || abort.Table != warehouse.TableFactOrders {
		t.Fatalf("abort = phase %s table %s, want inserting %s", abort.Phase, abort.Table, warehouse.TableFactOrders)
	}

	for _, tbl := range testModel(4).Tables() {
		if n := countRows(t, repo, tbl.Name); n != 1 {
			t.Fatalf("%s has %d rows after rollback, want the prior 1", tbl.Name, n)
		}
	}
	if q := factQuantity(t, repo); q != 4 {
		t.Fatalf("fact quantity = %d after rollback, want the prior 4", q)
	}
}

/*
TestForeignKeysEnforced verifies the pragma reaches pooled connections: an
insert referencing a missing dimension must fail on a connection other than
the one the constructor used.
*/
func TestForeignKeysEnforced(t *testing.T) {
	repo := newTestRepo(t, nil)
	ctx := context.Background()

	if err := repo.Refresh(ctx, testModel(4).Tables()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	err := repo.Exec(ctx, fmt.Sprintf(
		"INSERT INTO %s (order_id, company_id, customer_id, product_id, date_id, quantity, total_amount, order_timestamp)"+
			" VALUES (999, 999, 999, 999, 999, 1, 1.0, '2024-04-10 09:00:00')",
		warehouse.TableFactOrders))
	if err == nil {
		t.Fatal("insert with dangling references succeeded, want FK violation")
	}
}

func TestWithForeignKeys(t *testing.T) {
	cases := []struct {
		name string
		dsn  string
		want string
	}{
		{"plain path", "warehouse.db", "warehouse.db?_pragma=foreign_keys(1)"},
		{"existing query", "file:wh.db?cache=shared", "file:wh.db?cache=shared&_pragma=foreign_keys(1)"},
		{"already set", "wh.db?_pragma=foreign_keys(0)", "wh.db?_pragma=foreign_keys(0)"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := withForeignKeys(tc.dsn); got != tc.want {
				t.Fatalf("withForeignKeys(%q) = %q, want %q", tc.dsn, got, tc.want)
			}
		})
	}
}

/*
TestRefreshLogsPerTable verifies the refresh writes its per-table load lines
to the logger handed to the constructor, not to the default logger.
*/
func TestRefreshLogsPerTable(t *testing.T) {
	var buf bytes.Buffer
	repo := newTestRepo(t, log.New(&buf, "", 0))

	if err := repo.Refresh(context.Background(), testModel(4).Tables()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	out := buf.String()
	for _, tbl := range testModel(4).Tables() {
		want := "load: table=" + tbl.Name + " rows=1"
		if !strings.Contains(out, want) {
			t.Fatalf("log output missing %q:\n%s", want, out)
		}
	}
}
