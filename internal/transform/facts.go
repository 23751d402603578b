package transform

import (
	"sort"
	"time"

	"github.com/Sha661nk/B2B-ETL-Pipeline/internal/warehouse"
	"github.com/Sha661nk/B2B-ETL-Pipeline/pkg/records"
)

// BuildOrderFacts joins order items to their parent orders and the date
// dimension, then collapses to exactly one row per distinct order id.
//
// The collapse keeps the item with the lowest order_item_id. Items are sorted
// by id before the keep-first pass, so the representative line is the same on
// every run and every engine regardless of the order the extractor returned
// rows in. The item's "total" becomes total_amount; the order's full
// timestamp becomes order_timestamp.
//
// Errors: *OrphanOrderItemError when an item references a missing order,
// *OrphanOrderError when an order's calendar date has no dim_date entry.
func BuildOrderFacts(
	items []records.Record,
	orders []records.Record,
	dateIDs map[time.Time]int64,
) ([]warehouse.OrderFactRow, error) {
	byOrderID := make(map[int64]records.Record, len(orders))
	for _, rec := range orders {
		id, _ := rec.Int64("order_id")
		byOrderID[id] = rec
	}

	sorted := make([]records.Record, len(items))
	copy(sorted, items)
	sort.Slice(sorted, func(i, j int) bool {
		a, _ := sorted[i].Int64("order_item_id")
		b, _ := sorted[j].Int64("order_item_id")
		return a < b
	})

	seen := make(map[int64]struct{}, len(byOrderID))
	out := make([]warehouse.OrderFactRow, 0, len(byOrderID))

	for _, item := range sorted {
		itemID, _ := item.Int64("order_item_id")
		orderID, _ := item.Int64("order_id")

		order, ok := byOrderID[orderID]
		if !ok {
			return nil, &OrphanOrderItemError{OrderItemID: itemID, OrderID: orderID}
		}
		if _, dup := seen[orderID]; dup {
			continue
		}

		orderDate, okDate := order.Time("order_date")
		var dateID int64
		if okDate {
			dateID, okDate = lookupDate(dateIDs, orderDate)
		}
		if !okDate {
			return nil, &OrphanOrderError{OrderID: orderID, Date: orderDate}
		}

		companyID, _ := order.Int64("company_id")
		customerID, _ := order.Int64("customer_id")
		productID, _ := item.Int64("product_id")
		quantity, _ := item.Int64("quantity")
		total, _ := item.Float64("total")

		out = append(out, warehouse.OrderFactRow{
			OrderID:        orderID,
			CompanyID:      companyID,
			CustomerID:     customerID,
			ProductID:      productID,
			DateID:         dateID,
			Quantity:       quantity,
			TotalAmount:    total,
			OrderTimestamp: orderDate,
		})
		seen[orderID] = struct{}{}
	}
	return out, nil
}

func lookupDate(index map[time.Time]int64, t time.Time) (int64, bool) {
	id, ok := index[records.Midnight(t)]
	return id, ok
}
