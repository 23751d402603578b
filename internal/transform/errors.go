package transform

import (
	"fmt"
	"time"
)

// OrphanOrderItemError reports an order item whose order_id has no matching
// order in the extracted snapshot. Referential inconsistency in the source is
// fatal for the run; rows are never silently skipped.
type OrphanOrderItemError struct {
	OrderItemID int64
	OrderID     int64
}

func (e *OrphanOrderItemError) Error() string {
	return fmt.Sprintf(
		"transform: order item %d references unknown order %d",
		e.OrderItemID, e.OrderID,
	)
}

// OrphanOrderError reports an order whose calendar date is absent from the
// date dimension. The dimension is built from the same orders, so this cannot
// happen for parseable dates; it surfaces orders whose date field could not
// be coerced.
type OrphanOrderError struct {
	OrderID int64
	Date    time.Time
}

func (e *OrphanOrderError) Error() string {
	return fmt.Sprintf(
		"transform: order %d has no date dimension entry for %s",
		e.OrderID, e.Date.Format("2006-01-02"),
	)
}
