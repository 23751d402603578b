package warehouse

// Target table names. The loader owns these tables for the duration of a run:
// every run fully truncates and repopulates all seven.
const (
	TableDimCompany  = "dim_company"
	TableDimCustomer = "dim_customer"
	TableDimProduct  = "dim_product"
	TableDimDate     = "dim_date"
	TableFactOrders  = "fact_orders"
	TableDimLead     = "dim_lead"
	TableDimDevice   = "dim_device"
)

// Table is a fully materialized target table: name, destination column order,
// and positional rows aligned to that order. This is the only shape the
// storage backends consume.
type Table struct {
	Name    string
	Columns []string
	Rows    [][]any
}

// Tables flattens the model into the seven target tables in insert order:
// dimensions first, then the fact table, so fact foreign keys always resolve
// against already-inserted dimension rows. Backends must clear in the reverse
// dependency order (fact before dimensions) when they cannot cascade.
func (m *Model) Tables() []Table {
	return []Table{
		{
			Name:    TableDimCompany,
			Columns: []string{"company_id", "cuit", "company_name", "company_type"},
			Rows:    companyRows(m.Companies),
		},
		{
			Name:    TableDimCustomer,
			Columns: []string{"customer_id", "full_name", "document_number"},
			Rows:    customerRows(m.Customers),
		},
		{
			Name:    TableDimProduct,
			Columns: []string{"product_id", "product_name", "supplier_id", "default_price"},
			Rows:    productRows(m.Products),
		},
		{
			Name:    TableDimDate,
			Columns: []string{"date_id", "date", "month", "year"},
			Rows:    dateRows(m.Dates),
		},
		{
			Name: TableFactOrders,
			Columns: []string{
				"order_id", "company_id", "customer_id", "product_id",
				"date_id", "quantity", "total_amount", "order_timestamp",
			},
			Rows: orderFactRows(m.Orders),
		},
		{
			Name: TableDimLead,
			Columns: []string{
				"first_name", "last_name", "email", "phone_number",
				"company_name", "lead_source", "lead_status",
				"engagement_score", "contact_date",
			},
			Rows: leadRows(m.Leads),
		},
		{
			Name:    TableDimDevice,
			Columns: []string{"device_type", "user_agent"},
			Rows:    deviceRows(m.Devices),
		},
	}
}

func companyRows(in []CompanyRow) [][]any {
	out := make([][]any, len(in))
	for i, r := range in {
		out[i] = []any{r.CompanyID, r.CUIT, r.CompanyName, r.CompanyType}
	}
	return out
}

func customerRows(in []CustomerRow) [][]any {
	out := make([][]any, len(in))
	for i, r := range in {
		out[i] = []any{r.CustomerID, r.FullName, r.DocumentNumber}
	}
	return out
}

func productRows(in []ProductRow) [][]any {
	out := make([][]any, len(in))
	for i, r := range in {
		out[i] = []any{r.ProductID, r.ProductName, r.SupplierID, r.DefaultPrice}
	}
	return out
}

func dateRows(in []DateRow) [][]any {
	out := make([][]any, len(in))
	for i, r := range in {
		out[i] = []any{r.DateID, r.Date, r.Month, r.Year}
	}
	return out
}

func orderFactRows(in []OrderFactRow) [][]any {
	out := make([][]any, len(in))
	for i, r := range in {
		out[i] = []any{
			r.OrderID, r.CompanyID, r.CustomerID, r.ProductID,
			r.DateID, r.Quantity, r.TotalAmount, r.OrderTimestamp,
		}
	}
	return out
}

func leadRows(in []LeadRow) [][]any {
	out := make([][]any, len(in))
	for i, r := range in {
		out[i] = []any{
			r.FirstName, r.LastName, nilable(r.Email), nilable(r.PhoneNumber),
			r.CompanyName, r.LeadSource, nilable(r.LeadStatus),
			r.EngagementScore, r.ContactDate,
		}
	}
	return out
}

func deviceRows(in []DeviceRow) [][]any {
	out := make([][]any, len(in))
	for i, r := range in {
		out[i] = []any{r.DeviceType, r.UserAgent}
	}
	return out
}

// nilable converts a nil *string into an untyped nil so drivers encode SQL
// NULL instead of a typed nil pointer.
func nilable(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
