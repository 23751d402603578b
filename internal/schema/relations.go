// Package schema declares the canonical shape of the seven source relations
// and binds raw row batches to it.
//
// The extractor returns positional rows ([][]any) per relation; column order
// is a contract with the source store, not something discovered at runtime.
// Bind attaches the canonical column list to each row, producing records the
// transform stage can address by name. No value-level validation happens
// here; date coercion and referential checks belong downstream.
package schema

// Relation identifies one of the source relations.
type Relation string

const (
	Companies  Relation = "companies"
	Customers  Relation = "end_customers"
	Products   Relation = "products"
	Orders     Relation = "orders"
	OrderItems Relation = "order_items"
	Marketing  Relation = "marketing_data"
	Weblog     Relation = "weblog_data"
)

// Relations lists the source relations in extraction order.
var Relations = []Relation{
	Companies, Customers, Products, Orders, OrderItems, Marketing, Weblog,
}

// columns holds the fixed column order per relation, matching the source
// store's physical column order (SELECT * contract).
var columns = map[Relation][]string{
	Companies: {
		"company_id", "cuit", "company_name", "company_type",
		"created_at", "updated_at",
	},
	Customers: {
		"customer_id", "document_number", "full_name", "date_of_birth",
		"company_id", "created_at", "updated_at",
	},
	Products: {
		"product_id", "product_name", "supplier_id", "default_price",
		"created_at", "updated_at",
	},
	Orders: {
		"order_id", "company_id", "customer_id", "order_date", "total_amount",
		"created_at", "updated_at",
	},
	OrderItems: {
		"order_item_id", "order_id", "product_id", "quantity", "price",
		"total", "created_at", "updated_at",
	},
	Marketing: {
		"marketing_id", "campaign_name", "campaign_start_date",
		"campaign_end_date", "target_audience_size", "conversions",
		"company_id", "product_id", "created_at", "updated_at",
	},
	Weblog: {
		"weblog_id", "client_ip", "username", "log_time", "device_type",
		"user_agent", "customer_id", "company_id", "created_at", "updated_at",
	},
}

// Columns returns the canonical column order for rel, or nil for an unknown
// relation. The returned slice must not be mutated.
func Columns(rel Relation) []string {
	return columns[rel]
}
