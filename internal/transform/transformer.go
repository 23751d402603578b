package transform

import (
	"github.com/Sha661nk/B2B-ETL-Pipeline/internal/warehouse"
	"github.com/Sha661nk/B2B-ETL-Pipeline/pkg/records"
)

// Source bundles the bound records of the seven source relations, as produced
// by the schema binder.
type Source struct {
	Companies  []records.Record
	Customers  []records.Record
	Products   []records.Record
	Orders     []records.Record
	OrderItems []records.Record
	Campaigns  []records.Record
	Weblog     []records.Record
}

// Build runs all builders and assembles the full target model for one run.
// It is pure: no I/O, no shared state, deterministic output for a given
// snapshot.
func Build(src Source) (*warehouse.Model, error) {
	dates, dateIDs := BuildDateDim(src.Orders)

	facts, err := BuildOrderFacts(src.OrderItems, src.Orders, dateIDs)
	if err != nil {
		return nil, err
	}

	return &warehouse.Model{
		Companies: BuildCompanyDim(src.Companies),
		Customers: BuildCustomerDim(src.Customers),
		Products:  BuildProductDim(src.Products),
		Dates:     dates,
		Orders:    facts,
		Leads:     BuildLeadDim(src.Campaigns),
		Devices:   BuildDeviceDim(src.Weblog),
	}, nil
}
