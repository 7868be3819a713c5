package merge

import (
	"sort"

	"github.com/awslabs/interop/internal/report"
)

// Finalize assembles the merged report: ordered identity lists, the sparse
// per-pair grids, and the configuration-supplied URL fields.
func (a *Accumulator) Finalize(cfg Config) *report.Report {
	clients := orderIdentities(a.clients)
	servers := orderIdentities(a.servers)

	urls := make(map[string]string, len(a.urls)+2)
	for name, url := range a.urls {
		urls[name] = url
	}
	if cfg.NewVersionURL != "" {
		urls[a.resolver.NewVersion().Name] = cfg.NewVersionURL
	}
	if cfg.PrevVersionURL != "" {
		urls[a.resolver.PreviousVersion().Name] = cfg.PrevVersionURL
	}

	logDirs := map[string]string{}
	if cfg.NewVersionLogURL != "" {
		logDirs[a.resolver.NewVersion().Name] = cfg.NewVersionLogURL
	}
	if cfg.PrevVersionLogURL != "" {
		logDirs[a.resolver.PreviousVersion().Name] = cfg.PrevVersionLogURL
	}

	abbrs := make([]string, 0, len(a.tests))
	for abbr := range a.tests {
		abbrs = append(abbrs, abbr)
	}
	sort.Strings(abbrs)

	out := &report.Report{
		StartTime:     a.startTime,
		EndTime:       a.endTime,
		LogDir:        cfg.LogDir,
		S2nQuicLogDir: logDirs,
		Servers:       names(servers),
		Clients:       names(clients),
		URLs:          urls,
		Tests:         a.tests,
		QuicDraft:     a.quicDraft,
		QuicVersion:   a.quicVersion,
		Results:       make([][]report.ResultEntry, 0, len(clients)*len(servers)),
		Measurements:  make([][]report.Measurement, 0, len(clients)*len(servers)),
	}

	for _, client := range clients {
		for _, server := range servers {
			pair := report.Pair{Client: client, Server: server}
			out.Results = append(out.Results, a.pairResults(pair, abbrs))
			out.Measurements = append(out.Measurements, a.pairMeasurements(pair))
		}
	}

	if a.baselineMerged {
		regression := a.regressions > 0
		out.Regression = &regression
		out.NewVersion = a.resolver.NewVersion().Name
		out.PrevVersion = a.resolver.PreviousVersion().Name
	}
	return out
}

// pairResults renders one sparse grid cell: test ids in lexicographic order,
// entries only for tests with a recorded outcome for this pair, descriptive
// names taken from the final tests union. A result referencing a test id
// missing from the union is dropped here, never earlier, so a shard loaded
// before the shard defining the test still contributes its result.
func (a *Accumulator) pairResults(pair report.Pair, abbrs []string) []report.ResultEntry {
	cell := a.results[pair]
	entries := make([]report.ResultEntry, 0, len(cell))
	for _, abbr := range abbrs {
		result, ok := cell[abbr]
		if !ok || result == report.ResultAbsent {
			continue
		}
		entries = append(entries, report.ResultEntry{Abbr: abbr, Name: a.tests[abbr].Name, Result: result})
	}
	return entries
}

// pairMeasurements renders one measurement cell sorted by abbr. Measurements
// are not filtered through the tests union; their abbreviation space belongs
// to the runner.
func (a *Accumulator) pairMeasurements(pair report.Pair) []report.Measurement {
	cell := a.measurements[pair]
	abbrs := make([]string, 0, len(cell))
	for abbr := range cell {
		abbrs = append(abbrs, abbr)
	}
	sort.Strings(abbrs)

	out := make([]report.Measurement, 0, len(cell))
	for _, abbr := range abbrs {
		out = append(out, cell[abbr])
	}
	return out
}

// orderIdentities sorts implementation names lexicographically, except the
// reserved-family identities: those are lifted out and reinserted together,
// previous then new then diff, at the position where the bare reserved name
// would sort among the remaining names.
func orderIdentities(set identitySet) []report.Identity {
	others := make([]report.Identity, 0, len(set))
	var prev, newVersion, diff report.Identity
	var hasPrev, hasNew, hasDiff bool
	for id := range set {
		switch id.Role {
		case report.RolePrevious:
			prev, hasPrev = id, true
		case report.RoleNew:
			newVersion, hasNew = id, true
		case report.RoleDiff:
			diff, hasDiff = id, true
		default:
			others = append(others, id)
		}
	}
	sort.Slice(others, func(i, j int) bool { return others[i].Name < others[j].Name })

	family := make([]report.Identity, 0, 3)
	if hasPrev {
		family = append(family, prev)
	}
	if hasNew {
		family = append(family, newVersion)
	}
	if hasDiff {
		family = append(family, diff)
	}
	if len(family) == 0 {
		return others
	}

	pos := sort.Search(len(others), func(i int) bool { return others[i].Name >= report.ReservedName })
	ordered := make([]report.Identity, 0, len(others)+len(family))
	ordered = append(ordered, others[:pos]...)
	ordered = append(ordered, family...)
	ordered = append(ordered, others[pos:]...)
	return ordered
}

func names(ids []report.Identity) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.Name)
	}
	return out
}
