// Package seed populates the operational source database with synthetic but
// referentially consistent B2B data: companies and suppliers, end customers,
// products, per-company price lists, orders with line items, marketing
// campaigns, and weblog entries.
//
// Generation is driven by a math/rand source so a fixed seed reproduces the
// exact same dataset, which makes refresh runs comparable across machines.
package seed

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the execution surface the seeder needs. *pgxpool.Pool satisfies it.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Options controls how much synthetic data is generated.
type Options struct {
	Companies     int
	Customers     int
	Products      int
	Orders        int
	Campaigns     int
	WeblogEntries int

	// Seed initializes the random source. The same seed always produces
	// the same dataset.
	Seed int64
}

// DefaultOptions mirrors the dataset sizes the warehouse model was designed
// around.
func DefaultOptions() Options {
	return Options{
		Companies:     20,
		Customers:     50,
		Products:      30,
		Orders:        50,
		Campaigns:     10,
		WeblogEntries: 100,
		Seed:          1,
	}
}

// Seeder writes one synthetic dataset into a source database.
type Seeder struct {
	db  DB
	rng *rand.Rand
	log *log.Logger
}

// New returns a Seeder writing to db with the given random seed. logger may
// be nil, in which case the default logger is used.
func New(db DB, seed int64, logger *log.Logger) *Seeder {
	if logger == nil {
		logger = log.Default()
	}
	return &Seeder{db: db, rng: rand.New(rand.NewSource(seed)), log: logger}
}

// Run truncates the source tables and repopulates them in dependency order.
// The caller is expected to have created the tables (see EnsureTables).
func (s *Seeder) Run(ctx context.Context, opts Options) error {
	if err := s.truncate(ctx); err != nil {
		return err
	}

	companies, err := s.companies(ctx, opts.Companies)
	if err != nil {
		return err
	}
	customers, err := s.customers(ctx, companies, opts.Customers)
	if err != nil {
		return err
	}
	products, err := s.products(ctx, companies, opts.Products)
	if err != nil {
		return err
	}
	if err := s.priceLists(ctx, companies, products); err != nil {
		return err
	}
	orders, err := s.orders(ctx, companies, customers, opts.Orders)
	if err != nil {
		return err
	}
	if err := s.orderItems(ctx, orders, products); err != nil {
		return err
	}
	if err := s.marketing(ctx, companies, products, opts.Campaigns); err != nil {
		return err
	}
	if err := s.weblog(ctx, companies, customers, opts.WeblogEntries); err != nil {
		return err
	}

	s.log.Printf("seed: done companies=%d customers=%d products=%d orders=%d",
		len(companies), len(customers), len(products), len(orders))
	return nil
}

// company pairs an id with its role; only "Company" rows place orders, only
// "Supplier" rows supply products.
type company struct {
	id       int64
	supplier bool
}

func (s *Seeder) truncate(ctx context.Context) error {
	// Reverse dependency order, same as a warehouse clear.
	tables := []string{
		"weblog_data", "marketing_data", "order_items", "orders",
		"price_lists", "products", "end_customers", "companies",
	}
	for _, t := range tables {
		if _, err := s.db.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", t)); err != nil {
			return fmt.Errorf("seed: truncate %s: %w", t, err)
		}
	}
	return nil
}

func (s *Seeder) companies(ctx context.Context, n int) ([]company, error) {
	out := make([]company, 0, n)
	for i := 1; i <= n; i++ {
		c := company{id: int64(i), supplier: s.rng.Intn(2) == 0}
		// Keep at least one of each role so downstream picks never starve.
		if i == 1 {
			c.supplier = false
		}
		if i == 2 {
			c.supplier = true
		}
		kind := "Company"
		if c.supplier {
			kind = "Supplier"
		}
		cuit := fmt.Sprintf("%09d", s.rng.Intn(1_000_000_000))
		name := s.companyName()
		_, err := s.db.Exec(ctx,
			"INSERT INTO companies (company_id, cuit, company_name, company_type) VALUES ($1, $2, $3, $4)",
			c.id, cuit, name, kind)
		if err != nil {
			return nil, fmt.Errorf("seed: companies: %w", err)
		}
		out = append(out, c)
	}
	s.log.Printf("seed: companies=%d", n)
	return out, nil
}

func (s *Seeder) customers(ctx context.Context, companies []company, n int) ([]int64, error) {
	out := make([]int64, 0, n)
	for i := 1; i <= n; i++ {
		id := int64(i)
		doc := fmt.Sprintf("%08d", s.rng.Intn(100_000_000))
		name := s.personName()
		dob := s.dateBetween(time.Date(1945, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2007, 1, 1, 0, 0, 0, 0, time.UTC))
		_, err := s.db.Exec(ctx,
			"INSERT INTO end_customers (customer_id, document_number, full_name, date_of_birth, company_id) VALUES ($1, $2, $3, $4, $5)",
			id, doc, name, dob, s.pickCompany(companies, false))
		if err != nil {
			return nil, fmt.Errorf("seed: end_customers: %w", err)
		}
		out = append(out, id)
	}
	s.log.Printf("seed: end_customers=%d", n)
	return out, nil
}

func (s *Seeder) products(ctx context.Context, companies []company, n int) ([]int64, error) {
	out := make([]int64, 0, n)
	for i := 1; i <= n; i++ {
		id := int64(i)
		_, err := s.db.Exec(ctx,
			"INSERT INTO products (product_id, product_name, supplier_id, default_price) VALUES ($1, $2, $3, $4)",
			id, s.productName(), s.pickCompany(companies, true), s.price(50, 500))
		if err != nil {
			return nil, fmt.Errorf("seed: products: %w", err)
		}
		out = append(out, id)
	}
	s.log.Printf("seed: products=%d", n)
	return out, nil
}

func (s *Seeder) priceLists(ctx context.Context, companies []company, products []int64) error {
	rows := 0
	for _, c := range companies {
		if c.supplier {
			continue
		}
		for _, pid := range s.sample(products, 3+s.rng.Intn(8)) {
			_, err := s.db.Exec(ctx,
				"INSERT INTO price_lists (company_id, product_id, price) VALUES ($1, $2, $3)",
				c.id, pid, s.price(50, 500))
			if err != nil {
				return fmt.Errorf("seed: price_lists: %w", err)
			}
			rows++
		}
	}
	s.log.Printf("seed: price_lists=%d", rows)
	return nil
}

func (s *Seeder) orders(ctx context.Context, companies []company, customers []int64, n int) ([]int64, error) {
	out := make([]int64, 0, n)
	now := time.Now().UTC()
	for i := 1; i <= n; i++ {
		id := int64(i)
		orderDate := s.dateBetween(now.AddDate(-1, 0, 0), now)
		_, err := s.db.Exec(ctx,
			"INSERT INTO orders (order_id, company_id, customer_id, order_date, total_amount) VALUES ($1, $2, $3, $4, $5)",
			id, s.pickCompany(companies, false), customers[s.rng.Intn(len(customers))], orderDate, s.price(100, 1000))
		if err != nil {
			return nil, fmt.Errorf("seed: orders: %w", err)
		}
		out = append(out, id)
	}
	s.log.Printf("seed: orders=%d", n)
	return out, nil
}

func (s *Seeder) orderItems(ctx context.Context, orders, products []int64) error {
	itemID := int64(0)
	for _, oid := range orders {
		for _, pid := range s.sample(products, 1+s.rng.Intn(5)) {
			itemID++
			qty := 1 + s.rng.Intn(10)
			price := s.price(50, 500)
			_, err := s.db.Exec(ctx,
				"INSERT INTO order_items (order_item_id, order_id, product_id, quantity, price, total) VALUES ($1, $2, $3, $4, $5, $6)",
				itemID, oid, pid, qty, price, float64(qty)*price)
			if err != nil {
				return fmt.Errorf("seed: order_items: %w", err)
			}
		}
	}
	s.log.Printf("seed: order_items=%d", itemID)
	return nil
}

func (s *Seeder) marketing(ctx context.Context, companies []company, products []int64, n int) error {
	now := time.Now().UTC()
	for i := 1; i <= n; i++ {
		start := s.dateBetween(now.AddDate(-6, 0, 0), now)
		end := s.dateBetween(start, now)
		audience := 100 + s.rng.Intn(9901)
		conversions := 10 + s.rng.Intn(audience-9)
		_, err := s.db.Exec(ctx,
			"INSERT INTO marketing_data (marketing_id, campaign_name, campaign_start_date, campaign_end_date, target_audience_size, conversions, company_id, product_id) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)",
			int64(i), s.campaignName(), start, end, audience, conversions,
			s.pickCompany(companies, false), products[s.rng.Intn(len(products))])
		if err != nil {
			return fmt.Errorf("seed: marketing_data: %w", err)
		}
	}
	s.log.Printf("seed: marketing_data=%d", n)
	return nil
}

func (s *Seeder) weblog(ctx context.Context, companies []company, customers []int64, n int) error {
	now := time.Now().UTC()
	for i := 1; i <= n; i++ {
		agent := userAgents[s.rng.Intn(len(userAgents))]
		username := "-"
		if s.rng.Intn(2) == 0 {
			username = s.username()
		}
		ip := fmt.Sprintf("%d.%d.%d.%d",
			1+s.rng.Intn(223), s.rng.Intn(256), s.rng.Intn(256), 1+s.rng.Intn(254))
		_, err := s.db.Exec(ctx,
			"INSERT INTO weblog_data (weblog_id, client_ip, username, log_time, device_type, user_agent, customer_id, company_id) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)",
			int64(i), ip, username, s.dateBetween(now.AddDate(0, -11, 0), now),
			agent.device, agent.ua,
			customers[s.rng.Intn(len(customers))], s.pickCompany(companies, false))
		if err != nil {
			return fmt.Errorf("seed: weblog_data: %w", err)
		}
	}
	s.log.Printf("seed: weblog_data=%d", n)
	return nil
}

// pickCompany returns a random company id with the requested role.
func (s *Seeder) pickCompany(companies []company, supplier bool) int64 {
	var pool []int64
	for _, c := range companies {
		if c.supplier == supplier {
			pool = append(pool, c.id)
		}
	}
	return pool[s.rng.Intn(len(pool))]
}

// sample returns up to n distinct elements of ids in random order.
func (s *Seeder) sample(ids []int64, n int) []int64 {
	if n > len(ids) {
		n = len(ids)
	}
	idx := s.rng.Perm(len(ids))[:n]
	out := make([]int64, n)
	for i, j := range idx {
		out[i] = ids[j]
	}
	return out
}

func (s *Seeder) price(lo, hi float64) float64 {
	v := lo + s.rng.Float64()*(hi-lo)
	return float64(int(v*100)) / 100
}

func (s *Seeder) dateBetween(lo, hi time.Time) time.Time {
	if !hi.After(lo) {
		return lo
	}
	d := time.Duration(s.rng.Int63n(int64(hi.Sub(lo))))
	return lo.Add(d).Truncate(time.Second)
}
