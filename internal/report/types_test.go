package report

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const shardDoc = `{
	"start_time": 1620102576.344732,
	"end_time": 1620112708,
	"servers": ["quic-go", "s2n-quic"],
	"clients": ["ngtcp2"],
	"urls": {"ngtcp2": "https://example.com/ngtcp2"},
	"tests": {
		"H": {"name": "handshake", "desc": "Handshake completes"},
		"Z": {"name": "zerortt", "desc": "0-RTT data is accepted"}
	},
	"quic_draft": 34,
	"quic_version": "0xff000022",
	"results": [
		[{"abbr": "H", "result": "succeeded"}],
		[{"abbr": "H", "result": "failed"}, {"abbr": "Z", "result": "unsupported"}]
	],
	"measurements": [
		[],
		[{"abbr": "T", "result": "succeeded", "details": "124 (± 3) kbps"}]
	]
}`

func TestDecode(t *testing.T) {
	doc, err := Decode([]byte(shardDoc))
	require.NoError(t, err)

	require.NotNil(t, doc.StartTime)
	assert.InDelta(t, 1620102576.344732, *doc.StartTime, 1e-9)
	assert.Equal(t, []string{"ngtcp2"}, doc.Clients)
	assert.Equal(t, []string{"quic-go", "s2n-quic"}, doc.Servers)
	assert.Equal(t, "handshake", doc.Tests["H"].Name)
	assert.Len(t, doc.Results, 2)
	assert.Equal(t, ResultUnsupported, doc.Results[1][1].Result)
	assert.Equal(t, "T", doc.Measurements[1][0].Abbr())
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{
			name: "not json",
			doc:  `{"clients": [`,
			want: "parsing report",
		},
		{
			name: "unknown result value",
			doc: `{"clients": ["a"], "servers": ["b"],
				"results": [[{"abbr": "H", "result": "exploded"}]],
				"measurements": [[]]}`,
			want: "unknown result",
		},
		{
			name: "row count does not match cross product",
			doc: `{"clients": ["a", "b"], "servers": ["c"],
				"results": [[]],
				"measurements": [[], []]}`,
			want: "results carries 1 rows, want 2",
		},
		{
			name: "measurements shorter than cross product",
			doc: `{"clients": ["a"], "servers": ["c"],
				"results": [[]],
				"measurements": []}`,
			want: "measurements carries 0 rows, want 1",
		},
		{
			name: "entry without abbr",
			doc: `{"clients": ["a"], "servers": ["c"],
				"results": [[{"result": "succeeded"}]],
				"measurements": [[]]}`,
			want: "entry without abbr",
		},
		{
			name: "measurement without abbr",
			doc: `{"clients": ["a"], "servers": ["c"],
				"results": [[]],
				"measurements": [[{"result": "succeeded"}]]}`,
			want: "measurement without abbr",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestEachPair_Order(t *testing.T) {
	doc, err := Decode([]byte(shardDoc))
	require.NoError(t, err)

	type visit struct {
		client, server string
		results        int
	}
	var visits []visit
	err = doc.EachPair(func(client, server string, results []ResultEntry, measurements []Measurement) {
		visits = append(visits, visit{client, server, len(results)})
	})
	require.NoError(t, err)

	// Outer loop clients, inner loop servers, in declared order.
	assert.Equal(t, []visit{
		{"ngtcp2", "quic-go", 1},
		{"ngtcp2", "s2n-quic", 2},
	}, visits)
}

func TestEachPair_ShapeMismatch(t *testing.T) {
	doc := &Report{
		Clients: []string{"a"},
		Servers: []string{"b", "c"},
		Results: [][]ResultEntry{{}},
	}

	err := doc.EachPair(func(string, string, []ResultEntry, []Measurement) {})
	var shapeErr *ShapeError
	require.ErrorAs(t, err, &shapeErr)
	assert.Equal(t, "results", shapeErr.Field)
}

func TestReport_TimestampsRoundTrip(t *testing.T) {
	// Integral epoch seconds must not grow a decimal point on re-encode and
	// null must survive.
	start := float64(1620102576)
	doc := &Report{
		StartTime:     &start,
		EndTime:       nil,
		S2nQuicLogDir: map[string]string{},
		Servers:       []string{},
		Clients:       []string{},
		URLs:          map[string]string{},
		Tests:         map[string]TestInfo{},
		Results:       [][]ResultEntry{},
		Measurements:  [][]Measurement{},
	}

	data, err := json.Marshal(doc)
	require.NoError(t, err)

	assert.Contains(t, string(data), `"start_time":1620102576,`)
	assert.Contains(t, string(data), `"end_time":null`)
	assert.Contains(t, string(data), `"s2n_quic_log_dir":{}`)
}

func TestResult_Valid(t *testing.T) {
	assert.True(t, ResultSucceeded.Valid())
	assert.True(t, ResultFailed.Valid())
	assert.True(t, ResultUnsupported.Valid())
	assert.False(t, ResultAbsent.Valid())
	assert.False(t, Result("passed").Valid())
}
