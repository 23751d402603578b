package storage

import "fmt"

// AbortError reports a failed full refresh. Phase and Table pinpoint where
// the run failed; Err carries the backend's cause, including constraint
// violation detail where the driver exposes it. By the time the caller sees
// this error the transaction has been rolled back, so the target store is
// exactly as it was before the run.
type AbortError struct {
	Phase State  // Clearing or Inserting
	Table string // table being cleared/inserted when the failure occurred
	Err   error
}

func (e *AbortError) Error() string {
	return fmt.Sprintf(
		"storage: load aborted while %s %s, transaction rolled back: %v",
		e.Phase, e.Table, e.Err,
	)
}

func (e *AbortError) Unwrap() error { return e.Err }
