package merge

import "github.com/awslabs/interop/internal/report"

// MergeBaseline folds the previous run's merged report into the matrices,
// scoped to pairs touching the previous-version identity, and diffs each of
// them against the matching new-version pair accumulated from the current
// shards. Differing current values land under the synthetic diff identity;
// a succeeded-to-failed difference counts as a regression.
func (a *Accumulator) MergeBaseline(baseline *report.Report) error {
	a.baselineMerged = true

	prev := a.resolver.PreviousVersion()
	newVersion := a.resolver.NewVersion()
	diff := a.resolver.Diff()

	return baseline.EachPair(func(clientName, serverName string, results []report.ResultEntry, measurements []report.Measurement) {
		client := a.resolver.Baseline(clientName)
		server := a.resolver.Baseline(serverName)

		// Only pairs touching the previous version matter for regression.
		if client != prev && server != prev {
			return
		}
		// Two differing family identities (previous vs new, or a stale
		// suffixed name left in an old report) never diff cleanly; such
		// pairs record nothing at all.
		if client != server && report.FamilyName(client.Name) && report.FamilyName(server.Name) {
			return
		}

		target := report.Pair{Client: newVersion, Server: newVersion}
		diffPair := report.Pair{Client: diff, Server: diff}
		switch {
		case client == prev && server == prev:
			// The self-pair diffs against the new-version self-pair.
		case server == prev:
			target = report.Pair{Client: client, Server: newVersion}
			diffPair = report.Pair{Client: client, Server: diff}
		default: // client == prev
			target = report.Pair{Client: newVersion, Server: server}
			diffPair = report.Pair{Client: diff, Server: server}
		}

		a.clients.add(client)
		a.servers.add(server)
		if client == prev {
			a.clients.add(diff)
		}
		if server == prev {
			a.servers.add(diff)
		}

		pair := report.Pair{Client: client, Server: server}
		for _, entry := range results {
			a.setResult(pair, entry.Abbr, entry.Result)

			current := a.resultAt(target, entry.Abbr)
			if current == entry.Result {
				continue
			}
			if current != report.ResultAbsent {
				a.setResult(diffPair, entry.Abbr, current)
			}
			if entry.Result == report.ResultSucceeded && current == report.ResultFailed {
				a.regressions++
			}
		}

		// Measurements are carried over for the previous build but never
		// diffed.
		for _, m := range measurements {
			a.setMeasurement(pair, m)
		}
	})
}
