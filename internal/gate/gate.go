package gate

import (
	"sort"

	"github.com/awslabs/interop/internal/report"
)

// EndpointRole names the side of an interop pairing a requirement applies to.
type EndpointRole string

const (
	// RoleClient requires the implementation to succeed while acting as the client.
	RoleClient EndpointRole = "client"
	// RoleServer requires the implementation to succeed while acting as the server.
	RoleServer EndpointRole = "server"
)

// Valid reports whether the role is one of the known endpoint roles.
func (r EndpointRole) Valid() bool {
	return r == RoleClient || r == RoleServer
}

// Requirements maps a test name to the implementations that must pass it and
// the endpoint roles they must pass it in. The test key may be the
// abbreviation used in the result grid or the full test name.
type Requirements map[string]map[string][]EndpointRole

// Failure is a single required outcome the report does not satisfy.
type Failure struct {
	// Test is the requirement key as written in the requirements file.
	Test string
	// Implementation is the implementation name the requirement applies to.
	Implementation string
	// Role is the endpoint role the implementation had to succeed in.
	Role EndpointRole
}

func (f Failure) String() string {
	return f.Test + ": " + f.Implementation + " as " + string(f.Role)
}

// outcome keys the satisfaction set built from one grid walk.
type outcome struct {
	abbr string
	impl string
	role EndpointRole
}

// Evaluate checks every requirement against the report grid and returns the
// unmet ones, sorted by test key, then implementation, then role. An empty
// slice means the gate passes.
func Evaluate(doc *report.Report, reqs Requirements) ([]Failure, error) {
	satisfied := make(map[outcome]struct{})
	err := doc.EachPair(func(client, server string, results []report.ResultEntry, _ []report.Measurement) {
		for _, entry := range results {
			if entry.Result != report.ResultSucceeded {
				continue
			}
			satisfied[outcome{entry.Abbr, client, RoleClient}] = struct{}{}
			satisfied[outcome{entry.Abbr, server, RoleServer}] = struct{}{}
		}
	})
	if err != nil {
		return nil, err
	}

	var failures []Failure
	seen := make(map[Failure]struct{})
	for _, test := range sortedKeys(reqs) {
		abbr := resolveTest(doc, test)
		for _, impl := range sortedKeys(reqs[test]) {
			for _, role := range reqs[test][impl] {
				f := Failure{Test: test, Implementation: impl, Role: role}
				if _, dup := seen[f]; dup {
					continue
				}
				seen[f] = struct{}{}
				if _, ok := satisfied[outcome{abbr, impl, role}]; ok {
					continue
				}
				failures = append(failures, f)
			}
		}
	}
	sort.Slice(failures, func(i, j int) bool {
		if failures[i].Test != failures[j].Test {
			return failures[i].Test < failures[j].Test
		}
		if failures[i].Implementation != failures[j].Implementation {
			return failures[i].Implementation < failures[j].Implementation
		}
		return failures[i].Role < failures[j].Role
	})
	return failures, nil
}

// resolveTest maps a requirement key to the grid abbreviation it names.
// An exact abbreviation match beats a full-name match; a key matching
// neither resolves to itself and can never be satisfied.
func resolveTest(doc *report.Report, key string) string {
	if _, ok := doc.Tests[key]; ok {
		return key
	}
	for _, abbr := range sortedKeys(doc.Tests) {
		if doc.Tests[abbr].Name == key {
			return abbr
		}
	}
	return key
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
