package pipeline

import (
	"fmt"

	"github.com/zeebo/xxh3"

	"github.com/Sha661nk/B2B-ETL-Pipeline/internal/warehouse"
)

// Fingerprint returns a 64-bit content hash over the full star-schema model.
// Tables and rows are visited in their load order, which is deterministic,
// so two models built from the same source snapshot hash identically.
func Fingerprint(m *warehouse.Model) uint64 {
	h := xxh3.New()

	for _, t := range m.Tables() {
		fmt.Fprintf(h, "table:%s\n", t.Name)
		for _, c := range t.Columns {
			fmt.Fprintf(h, "col:%s\n", c)
		}
		for _, row := range t.Rows {
			for _, v := range row {
				fmt.Fprintf(h, "%v|", v)
			}
			fmt.Fprint(h, "\n")
		}
	}
	return h.Sum64()
}
