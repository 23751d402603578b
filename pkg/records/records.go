// Package records defines the generic record representation that flows
// between the schema binder and the transform stage.
//
// A Record is a column-name → value map. Values keep whatever Go type the
// database driver produced (int64, float64, string, time.Time, nil); the typed
// accessors below perform the small amount of coercion the transform stage
// needs, without pulling a full serialization framework into the hot path.
package records

import (
	"strconv"
	"time"
)

// Record is a single row keyed by canonical column name.
type Record map[string]any

// Int64 returns the value of field as int64. Driver integer widths and
// numeric strings are accepted; anything else yields (0, false).
func (r Record) Int64(field string) (int64, bool) {
	switch v := r[field].(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case int32:
		return int64(v), true
	case float64:
		return int64(v), true
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// Float64 returns the value of field as float64.
func (r Record) Float64(field string) (float64, bool) {
	switch v := r[field].(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int64:
		return float64(v), true
	case int:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// String returns the value of field as a string. nil yields ("", false);
// non-string scalars are not stringified.
func (r Record) String(field string) (string, bool) {
	s, ok := r[field].(string)
	return s, ok
}

// Time returns the value of field as time.Time. String values are parsed with
// the common date/timestamp layouts produced by the source store. Date-only
// type coercion is deliberately left to callers (Midnight).
func (r Record) Time(field string) (time.Time, bool) {
	switch v := r[field].(type) {
	case time.Time:
		return v, true
	case string:
		for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
			if t, err := time.Parse(layout, v); err == nil {
				return t, true
			}
		}
		return time.Time{}, false
	default:
		return time.Time{}, false
	}
}

// Midnight truncates t to its calendar date, discarding time-of-day while
// keeping the location.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
