package report

import (
	"encoding/json"
	"fmt"
)

// Result represents the outcome of one interop test for one pairing.
type Result string

const (
	// ResultAbsent is the zero value; no outcome was recorded for the triple.
	ResultAbsent Result = ""
	// ResultSucceeded indicates the test passed.
	ResultSucceeded Result = "succeeded"
	// ResultFailed indicates the test failed.
	ResultFailed Result = "failed"
	// ResultUnsupported indicates an endpoint does not implement the tested feature.
	ResultUnsupported Result = "unsupported"
)

// Valid reports whether r is one of the recordable outcome values.
func (r Result) Valid() bool {
	switch r {
	case ResultSucceeded, ResultFailed, ResultUnsupported:
		return true
	}
	return false
}

// UnmarshalJSON validates the enumeration on decode so a malformed shard
// fails at parse time instead of flowing bad values into the matrices.
func (r *Result) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("result must be a string: %w", err)
	}
	v := Result(s)
	if !v.Valid() {
		return fmt.Errorf("unknown result %q (want succeeded, failed or unsupported)", s)
	}
	*r = v
	return nil
}
