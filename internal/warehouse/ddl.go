package warehouse

import "fmt"

// Dialect selects the SQL flavor used for target-store bootstrap DDL.
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectMySQL    Dialect = "mysql"
	DialectSQLite   Dialect = "sqlite"
)

// DDL returns the CREATE TABLE IF NOT EXISTS statements for the seven target
// tables in dependency order (dimensions before the fact table, so the fact
// table's foreign keys can be declared). Statements are idempotent; they are
// applied by the storage DDL bootstrappers when auto_create is enabled.
func DDL(d Dialect) ([]string, error) {
	t, ok := dialectTypes[d]
	if !ok {
		return nil, fmt.Errorf("warehouse: unknown dialect %q", d)
	}

	return []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	company_id   %s PRIMARY KEY,
	cuit         %s NOT NULL,
	company_name %s NOT NULL,
	company_type %s NOT NULL
)`, TableDimCompany, t.id, t.text, t.text, t.text),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	customer_id     %s PRIMARY KEY,
	full_name       %s NOT NULL,
	document_number %s NOT NULL
)`, TableDimCustomer, t.id, t.text, t.text),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	product_id    %s PRIMARY KEY,
	product_name  %s NOT NULL,
	supplier_id   %s NOT NULL,
	default_price %s NOT NULL
)`, TableDimProduct, t.id, t.text, t.id, t.real),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	date_id %s PRIMARY KEY,
	date    %s NOT NULL,
	month   %s NOT NULL,
	year    %s NOT NULL
)`, TableDimDate, t.id, t.date, t.integer, t.integer),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	order_id        %s PRIMARY KEY,
	company_id      %s NOT NULL REFERENCES %s (company_id),
	customer_id     %s NOT NULL REFERENCES %s (customer_id),
	product_id      %s NOT NULL REFERENCES %s (product_id),
	date_id         %s NOT NULL REFERENCES %s (date_id),
	quantity        %s NOT NULL,
	total_amount    %s NOT NULL,
	order_timestamp %s NOT NULL
)`, TableFactOrders,
			t.id,
			t.id, TableDimCompany,
			t.id, TableDimCustomer,
			t.id, TableDimProduct,
			t.id, TableDimDate,
			t.integer, t.real, t.timestamp),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	lead_id          %s,
	first_name       %s NOT NULL,
	last_name        %s NOT NULL,
	email            %s,
	phone_number     %s,
	company_name     %s,
	lead_source      %s,
	lead_status      %s,
	engagement_score %s,
	contact_date     %s
)`, TableDimLead, t.serialPK, t.text, t.text, t.text, t.text, t.id, t.id, t.text, t.integer, t.date),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	device_id   %s,
	device_type %s NOT NULL,
	user_agent  %s NOT NULL
)`, TableDimDevice, t.serialPK, t.text, t.text),
	}, nil
}

// typeSet holds the column type spellings for one SQL dialect.
type typeSet struct {
	id        string // surrogate/natural key columns
	integer   string
	real      string
	text      string
	date      string
	timestamp string
	serialPK  string // auto-assigned primary key column
}

var dialectTypes = map[Dialect]typeSet{
	DialectPostgres: {
		id:        "BIGINT",
		integer:   "INTEGER",
		real:      "DOUBLE PRECISION",
		text:      "TEXT",
		date:      "DATE",
		timestamp: "TIMESTAMP",
		serialPK:  "BIGSERIAL PRIMARY KEY",
	},
	DialectMySQL: {
		id:        "BIGINT",
		integer:   "INT",
		real:      "DOUBLE",
		text:      "VARCHAR(512)",
		date:      "DATE",
		timestamp: "DATETIME",
		serialPK:  "BIGINT AUTO_INCREMENT PRIMARY KEY",
	},
	DialectSQLite: {
		id:        "INTEGER",
		integer:   "INTEGER",
		real:      "REAL",
		text:      "TEXT",
		date:      "TEXT",
		timestamp: "TEXT",
		serialPK:  "INTEGER PRIMARY KEY AUTOINCREMENT",
	},
}
