package merge

import (
	"bytes"
	"encoding/json"
	"math"

	"github.com/awslabs/interop/internal/report"
)

// Accumulator carries all state of one merge run: the metadata aggregates
// and the identity-keyed result and measurement matrices. Construct one per
// invocation with NewAccumulator and thread it through the ingestion calls;
// nothing is shared between runs.
type Accumulator struct {
	resolver *report.Resolver

	startTime *float64
	endTime   *float64

	urls  map[string]string
	tests map[string]report.TestInfo

	quicDraft   json.RawMessage
	quicVersion json.RawMessage

	clients identitySet
	servers identitySet

	results      map[report.Pair]map[string]report.Result
	measurements map[report.Pair]map[string]report.Measurement

	baselineMerged bool
	regressions    int
}

// NewAccumulator returns an empty accumulator resolving identities through
// the given resolver.
func NewAccumulator(resolver *report.Resolver) *Accumulator {
	return &Accumulator{
		resolver:     resolver,
		urls:         map[string]string{},
		tests:        map[string]report.TestInfo{},
		clients:      identitySet{},
		servers:      identitySet{},
		results:      map[report.Pair]map[string]report.Result{},
		measurements: map[report.Pair]map[string]report.Measurement{},
	}
}

// MergeShard folds one current-run shard into the accumulator. Later shards
// overwrite earlier values for the same (client, server, test) triple.
func (a *Accumulator) MergeShard(shard *report.Report) error {
	a.startTime = foldTime(a.startTime, shard.StartTime, math.Min)
	a.endTime = foldTime(a.endTime, shard.EndTime, math.Max)

	if err := a.foldVersion("quic_draft", &a.quicDraft, shard.QuicDraft); err != nil {
		return err
	}
	if err := a.foldVersion("quic_version", &a.quicVersion, shard.QuicVersion); err != nil {
		return err
	}

	for abbr, info := range shard.Tests {
		a.tests[abbr] = info
	}
	for name, url := range shard.URLs {
		a.urls[name] = url
	}

	// Identities register off the declared lists, not the grid walk, so an
	// implementation listed without any counterpart still reaches the output.
	for _, name := range shard.Clients {
		a.clients.add(a.resolver.Current(name))
	}
	for _, name := range shard.Servers {
		a.servers.add(a.resolver.Current(name))
	}

	return shard.EachPair(func(client, server string, results []report.ResultEntry, measurements []report.Measurement) {
		pair := report.Pair{Client: a.resolver.Current(client), Server: a.resolver.Current(server)}
		for _, entry := range results {
			a.setResult(pair, entry.Abbr, entry.Result)
		}
		for _, m := range measurements {
			a.setMeasurement(pair, m)
		}
	})
}

func (a *Accumulator) setResult(pair report.Pair, abbr string, result report.Result) {
	cell, ok := a.results[pair]
	if !ok {
		cell = map[string]report.Result{}
		a.results[pair] = cell
	}
	cell[abbr] = result
}

func (a *Accumulator) setMeasurement(pair report.Pair, m report.Measurement) {
	cell, ok := a.measurements[pair]
	if !ok {
		cell = map[string]report.Measurement{}
		a.measurements[pair] = cell
	}
	cell[m.Abbr()] = m
}

// resultAt returns the recorded result for a triple, ResultAbsent when none.
func (a *Accumulator) resultAt(pair report.Pair, abbr string) report.Result {
	return a.results[pair][abbr]
}

// foldTime folds an optional timestamp into the aggregate: the first value
// seeds it, later values go through pick (min for start, max for end).
func foldTime(have, next *float64, pick func(float64, float64) float64) *float64 {
	if next == nil {
		return have
	}
	if have == nil {
		v := *next
		return &v
	}
	v := pick(*have, *next)
	return &v
}

// foldVersion keeps the first value seen and rejects later disagreement.
func (a *Accumulator) foldVersion(field string, have *json.RawMessage, next json.RawMessage) error {
	if rawAbsent(next) {
		return nil
	}
	if rawAbsent(*have) {
		*have = next
		return nil
	}
	if !bytes.Equal(compactRaw(*have), compactRaw(next)) {
		return &VersionConflictError{Field: field, Have: string(next), Want: string(*have)}
	}
	return nil
}

func rawAbsent(raw json.RawMessage) bool {
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}

// compactRaw strips insignificant whitespace so equal values encoded
// differently still compare equal.
func compactRaw(raw json.RawMessage) []byte {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return raw
	}
	return buf.Bytes()
}

type identitySet map[report.Identity]struct{}

func (s identitySet) add(id report.Identity) {
	s[id] = struct{}{}
}
