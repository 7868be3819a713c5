package report

import (
	"encoding/json"
	"fmt"
)

// TestInfo describes one interop test case as carried in the tests union.
type TestInfo struct {
	Name string `json:"name"`
	Desc string `json:"desc,omitempty"`
}

// ResultEntry is one sparse cell entry in a results grid. Shards carry
// {abbr, result}; merged output adds the descriptive name from the tests
// union.
type ResultEntry struct {
	Abbr   string `json:"abbr"`
	Name   string `json:"name,omitempty"`
	Result Result `json:"result"`
}

// Measurement is one measurement record for a pairing. Beyond the mandatory
// abbr key the schema belongs to the test runner, so records pass through
// opaquely and are never diffed.
type Measurement map[string]any

// Abbr returns the measurement's abbreviation key, or "" if it is missing or
// not a string.
func (m Measurement) Abbr() string {
	s, _ := m["abbr"].(string)
	return s
}

// Report is the envelope shared by shard documents and merged reports. A
// shard carries the core fields; a merged report also populates the
// log-directory fields and, when a baseline comparison ran, the trailing
// version and regression fields. Field order matches the wire format the
// interop site consumes.
type Report struct {
	StartTime     *float64            `json:"start_time"`
	EndTime       *float64            `json:"end_time"`
	LogDir        string              `json:"log_dir"`
	S2nQuicLogDir map[string]string   `json:"s2n_quic_log_dir"`
	Servers       []string            `json:"servers"`
	Clients       []string            `json:"clients"`
	URLs          map[string]string   `json:"urls"`
	Tests         map[string]TestInfo `json:"tests"`
	QuicDraft     json.RawMessage     `json:"quic_draft"`
	QuicVersion   json.RawMessage     `json:"quic_version"`
	Results       [][]ResultEntry     `json:"results"`
	Measurements  [][]Measurement     `json:"measurements"`
	NewVersion    string              `json:"new_version,omitempty"`
	PrevVersion   string              `json:"prev_version,omitempty"`
	Regression    *bool               `json:"regression,omitempty"`
}

// ShapeError reports a results or measurements grid whose row count does not
// match the client/server cross product it is positionally indexed by.
type ShapeError struct {
	// Field is the grid that failed the check, "results" or "measurements".
	Field string
	// Rows is the row count the document actually carries.
	Rows int
	// Clients and Servers are the declared list lengths.
	Clients int
	Servers int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s carries %d rows, want %d (%d clients x %d servers)",
		e.Field, e.Rows, e.Clients*e.Servers, e.Clients, e.Servers)
}

// Decode parses one report document and validates it. Errors carry enough
// context to name the offending field; the caller adds the file path.
func Decode(data []byte) (*Report, error) {
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parsing report: %w", err)
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return &r, nil
}

// Validate checks the invariants positional grid consumption relies on: row
// counts matching the cross product and every grid entry carrying an abbr.
func (r *Report) Validate() error {
	want := len(r.Clients) * len(r.Servers)
	if len(r.Results) != want {
		return &ShapeError{Field: "results", Rows: len(r.Results), Clients: len(r.Clients), Servers: len(r.Servers)}
	}
	if len(r.Measurements) != want {
		return &ShapeError{Field: "measurements", Rows: len(r.Measurements), Clients: len(r.Clients), Servers: len(r.Servers)}
	}
	for i, row := range r.Results {
		for _, entry := range row {
			if entry.Abbr == "" {
				return fmt.Errorf("results[%d]: entry without abbr", i)
			}
		}
	}
	for i, row := range r.Measurements {
		for _, m := range row {
			if m.Abbr() == "" {
				return fmt.Errorf("measurements[%d]: measurement without abbr", i)
			}
		}
	}
	return nil
}

// EachPair walks the client x server cross product in the document's own
// declaration order, handing each pair its positional results and
// measurements rows. The explicit row index replaces the implicit alignment
// between the parallel arrays; the length check makes misaligned documents
// fail instead of silently attributing rows to the wrong pair.
func (r *Report) EachPair(fn func(client, server string, results []ResultEntry, measurements []Measurement)) error {
	if err := r.Validate(); err != nil {
		return err
	}
	i := 0
	for _, client := range r.Clients {
		for _, server := range r.Servers {
			fn(client, server, r.Results[i], r.Measurements[i])
			i++
		}
	}
	return nil
}
