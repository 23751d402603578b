// Package warehouse defines the dimensional (star-schema) target model: one
// typed row struct per target table, the fixed table/column contracts used by
// the loader, and per-dialect DDL for bootstrapping an empty target store.
package warehouse

import "time"

// CompanyRow is one row of dim_company: a verbatim subset of the source
// company columns.
type CompanyRow struct {
	CompanyID   int64   `db:"company_id"`
	CUIT        string  `db:"cuit"`
	CompanyName string  `db:"company_name"`
	CompanyType string  `db:"company_type"` // "Company" or "Supplier"
}

// CustomerRow is one row of dim_customer.
type CustomerRow struct {
	CustomerID     int64  `db:"customer_id"`
	FullName       string `db:"full_name"`
	DocumentNumber string `db:"document_number"`
}

// ProductRow is one row of dim_product.
type ProductRow struct {
	ProductID    int64   `db:"product_id"`
	ProductName  string  `db:"product_name"`
	SupplierID   int64   `db:"supplier_id"`
	DefaultPrice float64 `db:"default_price"`
}

// DateRow is one row of dim_date. DateID is a dense surrogate assigned per
// run, starting at 1, in ascending calendar-date order; it carries no meaning
// across runs.
type DateRow struct {
	DateID int64     `db:"date_id"`
	Date   time.Time `db:"date"` // midnight, time-of-day stripped
	Month  int       `db:"month"`
	Year   int       `db:"year"`
}

// OrderFactRow is one row of fact_orders: exactly one row per distinct source
// order id. A multi-line order contributes the line with the lowest
// order_item_id; the collapse is inherited target semantics, not a join bug.
type OrderFactRow struct {
	OrderID        int64     `db:"order_id"`
	CompanyID      int64     `db:"company_id"`
	CustomerID     int64     `db:"customer_id"`
	ProductID      int64     `db:"product_id"`
	DateID         int64     `db:"date_id"`
	Quantity       int64     `db:"quantity"`
	TotalAmount    float64   `db:"total_amount"`
	OrderTimestamp time.Time `db:"order_timestamp"`
}

// LeadRow is one row of dim_lead, a CRM-shaped reinterpretation of a
// marketing campaign. The field remapping (campaign name into both name
// columns, company id into company_name, product id into lead_source) is the
// target store's contract and is preserved as-is.
type LeadRow struct {
	FirstName       string    `db:"first_name"`
	LastName        string    `db:"last_name"`
	Email           *string   `db:"email"`
	PhoneNumber     *string   `db:"phone_number"`
	CompanyName     int64     `db:"company_name"`
	LeadSource      int64     `db:"lead_source"`
	LeadStatus      *string   `db:"lead_status"`
	EngagementScore int64     `db:"engagement_score"`
	ContactDate     time.Time `db:"contact_date"`
}

// DeviceRow is one row of dim_device: a straight projection of a weblog
// entry, intentionally not deduplicated.
type DeviceRow struct {
	DeviceType string `db:"device_type"`
	UserAgent  string `db:"user_agent"`
}

// Model bundles the transformed target tables for one pipeline run.
type Model struct {
	Companies []CompanyRow
	Customers []CustomerRow
	Products  []ProductRow
	Dates     []DateRow
	Orders    []OrderFactRow
	Leads     []LeadRow
	Devices   []DeviceRow
}
