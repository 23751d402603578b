// Package transform reshapes bound source records into the dimensional
// target model: straight column projections for the entity dimensions, a
// synthetic date dimension keyed by distinct order dates, a deduplicated
// order fact table, and two derived dimensions reinterpreting marketing and
// weblog data.
package transform

import (
	"sort"
	"time"

	"github.com/Sha661nk/B2B-ETL-Pipeline/internal/warehouse"
	"github.com/Sha661nk/B2B-ETL-Pipeline/pkg/records"
)

// BuildCompanyDim projects companies onto dim_company. Row order and
// multiplicity are preserved; the source is already unique by primary key.
func BuildCompanyDim(companies []records.Record) []warehouse.CompanyRow {
	out := make([]warehouse.CompanyRow, 0, len(companies))
	for _, rec := range companies {
		id, _ := rec.Int64("company_id")
		cuit, _ := rec.String("cuit")
		name, _ := rec.String("company_name")
		typ, _ := rec.String("company_type")
		out = append(out, warehouse.CompanyRow{
			CompanyID:   id,
			CUIT:        cuit,
			CompanyName: name,
			CompanyType: typ,
		})
	}
	return out
}

// BuildCustomerDim projects end customers onto dim_customer.
func BuildCustomerDim(customers []records.Record) []warehouse.CustomerRow {
	out := make([]warehouse.CustomerRow, 0, len(customers))
	for _, rec := range customers {
		id, _ := rec.Int64("customer_id")
		name, _ := rec.String("full_name")
		doc, _ := rec.String("document_number")
		out = append(out, warehouse.CustomerRow{
			CustomerID:     id,
			FullName:       name,
			DocumentNumber: doc,
		})
	}
	return out
}

// BuildProductDim projects products onto dim_product.
func BuildProductDim(products []records.Record) []warehouse.ProductRow {
	out := make([]warehouse.ProductRow, 0, len(products))
	for _, rec := range products {
		id, _ := rec.Int64("product_id")
		name, _ := rec.String("product_name")
		supplier, _ := rec.Int64("supplier_id")
		price, _ := rec.Float64("default_price")
		out = append(out, warehouse.ProductRow{
			ProductID:    id,
			ProductName:  name,
			SupplierID:   supplier,
			DefaultPrice: price,
		})
	}
	return out
}

// BuildDateDim derives dim_date from the distinct calendar dates observed
// across all orders, time-of-day stripped. Surrogate ids are dense from 1 and
// assigned in ascending date order, which keeps id assignment stable for a
// given snapshot; candidate enumeration from an unordered set would make
// date_id differ between otherwise identical runs.
//
// The returned index maps each calendar date to its surrogate id for the
// fact builder. Orders whose date field cannot be coerced contribute nothing
// here; the fact builder reports them.
func BuildDateDim(orders []records.Record) ([]warehouse.DateRow, map[time.Time]int64) {
	distinct := make(map[time.Time]struct{})
	for _, rec := range orders {
		t, ok := rec.Time("order_date")
		if !ok {
			continue
		}
		distinct[records.Midnight(t)] = struct{}{}
	}

	dates := make([]time.Time, 0, len(distinct))
	for d := range distinct {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	rows := make([]warehouse.DateRow, 0, len(dates))
	index := make(map[time.Time]int64, len(dates))
	for i, d := range dates {
		id := int64(i + 1)
		rows = append(rows, warehouse.DateRow{
			DateID: id,
			Date:   d,
			Month:  int(d.Month()),
			Year:   d.Year(),
		})
		index[d] = id
	}
	return rows, index
}
