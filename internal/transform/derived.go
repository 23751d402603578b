package transform

import (
	"github.com/Sha661nk/B2B-ETL-Pipeline/internal/warehouse"
	"github.com/Sha661nk/B2B-ETL-Pipeline/pkg/records"
)

// BuildLeadDim reinterprets marketing campaigns as CRM-shaped lead rows,
// one per campaign. The remapping is the target store's contract: the
// campaign name fills both name columns, contact fields stay NULL, the raw
// company and product ids land in company_name and lead_source, conversions
// become the engagement score, and the campaign start date becomes the
// contact date. None of the id fields are checked against the dimensions.
func BuildLeadDim(campaigns []records.Record) []warehouse.LeadRow {
	out := make([]warehouse.LeadRow, 0, len(campaigns))
	for _, rec := range campaigns {
		name, _ := rec.String("campaign_name")
		companyID, _ := rec.Int64("company_id")
		productID, _ := rec.Int64("product_id")
		conversions, _ := rec.Int64("conversions")
		start, _ := rec.Time("campaign_start_date")
		out = append(out, warehouse.LeadRow{
			FirstName:       name,
			LastName:        name,
			CompanyName:     companyID,
			LeadSource:      productID,
			EngagementScore: conversions,
			ContactDate:     start,
		})
	}
	return out
}

// BuildDeviceDim projects weblog entries onto dim_device. One output row per
// input row: identical device/user-agent pairs stay duplicated, and the
// user-agent string passes through unparsed (device classification happens
// upstream, at ingestion time).
func BuildDeviceDim(entries []records.Record) []warehouse.DeviceRow {
	out := make([]warehouse.DeviceRow, 0, len(entries))
	for _, rec := range entries {
		device, _ := rec.String("device_type")
		agent, _ := rec.String("user_agent")
		out = append(out, warehouse.DeviceRow{DeviceType: device, UserAgent: agent})
	}
	return out
}
