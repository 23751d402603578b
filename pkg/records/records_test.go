package records

import (
	"testing"
	"time"
)

/*
TestInt64 verifies integer coercion across the value types database drivers
actually produce.
*/
func TestInt64(t *testing.T) {
	cases := []struct {
		name   string
		value  any
		want   int64
		wantOK bool
	}{
		{"int64", int64(42), 42, true},
		{"int", int(7), 7, true},
		{"int32", int32(-3), -3, true},
		{"float64", float64(19), 19, true},
		{"numeric string", "1001", 1001, true},
		{"bad string", "abc", 0, false},
		{"nil", nil, 0, false},
		{"bool", true, 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := Record{"v": tc.value}
			got, ok := r.Int64("v")
			if ok != tc.wantOK || got != tc.want {
				t.Fatalf("Int64 = (%d, %v), want (%d, %v)", got, ok, tc.want, tc.wantOK)
			}
		})
	}
}

func TestFloat64(t *testing.T) {
	cases := []struct {
		name   string
		value  any
		want   float64
		wantOK bool
	}{
		{"float64", 19.5, 19.5, true},
		{"float32", float32(2.5), 2.5, true},
		{"int64", int64(3), 3, true},
		{"numeric string", "42.25", 42.25, true},
		{"bad string", "x", 0, false},
		{"nil", nil, 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := Record{"v": tc.value}
			got, ok := r.Float64("v")
			if ok != tc.wantOK || got != tc.want {
				t.Fatalf("Float64 = (%v, %v), want (%v, %v)", got, ok, tc.want, tc.wantOK)
			}
		})
	}
}

func TestString(t *testing.T) {
	r := Record{"s": "hello", "n": int64(5), "nil": nil}

	if s, ok := r.String("s"); !ok || s != "hello" {
		t.Fatalf("String(s) = (%q, %v), want (\"hello\", true)", s, ok)
	}
	if _, ok := r.String("n"); ok {
		t.Fatalf("String(n) ok = true, want false for non-string scalar")
	}
	if _, ok := r.String("nil"); ok {
		t.Fatalf("String(nil) ok = true, want false")
	}
}

/*
TestTime verifies the accepted timestamp layouts: native time.Time, RFC3339,
space-separated timestamp, and bare date.
*/
func TestTime(t *testing.T) {
	native := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

	cases := []struct {
		name   string
		value  any
		want   time.Time
		wantOK bool
	}{
		{"time.Time", native, native, true},
		{"rfc3339", "2024-03-15T10:30:00Z", native, true},
		{"timestamp", "2024-03-15 10:30:00", time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC), true},
		{"date only", "2024-03-15", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), true},
		{"garbage", "15/03/2024", time.Time{}, false},
		{"nil", nil, time.Time{}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := Record{"v": tc.value}
			got, ok := r.Time("v")
			if ok != tc.wantOK || !got.Equal(tc.want) {
				t.Fatalf("Time = (%v, %v), want (%v, %v)", got, ok, tc.want, tc.wantOK)
			}
		})
	}
}

func TestMidnight(t *testing.T) {
	in := time.Date(2024, 6, 1, 23, 59, 58, 123, time.UTC)
	got := Midnight(in)
	want := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("Midnight = %v, want %v", got, want)
	}
	// Already-midnight values pass through unchanged.
	if again := Midnight(got); !again.Equal(got) {
		t.Fatalf("Midnight(midnight) = %v, want %v", again, got)
	}
}
