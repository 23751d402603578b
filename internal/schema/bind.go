package schema

import (
	"fmt"

	"github.com/Sha661nk/B2B-ETL-Pipeline/pkg/records"
)

// MismatchError reports a row whose arity disagrees with the relation's
// canonical column list. It is fatal: a shape disagreement means the source
// schema drifted, and silently dropping or padding columns would corrupt the
// downstream model.
type MismatchError struct {
	Relation Relation
	Row      int // 0-based index within the batch
	Want     int // expected column count
	Got      int
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf(
		"schema: relation %q row %d has %d columns, want %d",
		e.Relation, e.Row, e.Got, e.Want,
	)
}

// Bind attaches the canonical column list for rel to each positional row,
// producing named records. It returns a *MismatchError on the first row whose
// length differs from the expected column count, and an error for relations
// it has no contract for.
func Bind(rel Relation, rows [][]any) ([]records.Record, error) {
	cols := Columns(rel)
	if cols == nil {
		return nil, fmt.Errorf("schema: unknown relation %q", rel)
	}

	out := make([]records.Record, 0, len(rows))
	for i, row := range rows {
		if len(row) != len(cols) {
			return nil, &MismatchError{Relation: rel, Row: i, Want: len(cols), Got: len(row)}
		}
		rec := make(records.Record, len(cols))
		for j, c := range cols {
			rec[c] = row[j]
		}
		out = append(out, rec)
	}
	return out, nil
}
