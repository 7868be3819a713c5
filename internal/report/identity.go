package report

import "strings"

// ReservedName is the implementation name that is ambiguous between the
// build under test and the reference build until a Resolver assigns roles.
const ReservedName = "s2n-quic"

// Role tags which build an identity refers to within one CI run.
type Role string

const (
	// RoleOther marks a regular implementation with no special handling.
	RoleOther Role = "other"
	// RoleNew marks the build under test.
	RoleNew Role = "new"
	// RolePrevious marks the baseline build used for regression comparison.
	RolePrevious Role = "previous"
	// RoleDiff marks the synthetic identity that carries result differences.
	RoleDiff Role = "diff"
)

// Identity is one named implementation with its resolved role. Matrices are
// keyed by Identity, so a new-version self-pairing never collides with a
// previous-version pairing even when both names resolve to the same literal
// string.
type Identity struct {
	Name string
	Role Role
}

// Pair keys the result and measurement matrices.
type Pair struct {
	Client Identity
	Server Identity
}

// FamilyName reports whether name belongs to the reserved implementation's
// namespace: the reserved name itself or any suffixed variant of it. Old
// baseline reports can contain suffixed names from earlier runs; the
// comparator uses this to keep them out of the merge.
func FamilyName(name string) bool {
	return name == ReservedName || strings.HasPrefix(name, ReservedName+"-")
}

// Resolver rewrites the reserved implementation name into tagged identities.
// With empty suffixes both resolved names equal the reserved name; the roles
// keep them distinct.
type Resolver struct {
	newName  string
	prevName string
	diffName string
}

// NewResolver builds a resolver from the optional version suffixes. Suffixes
// are lowercased before appending so identity names come out the same no
// matter how the CI pipeline cases them.
func NewResolver(newSuffix, prevSuffix string) *Resolver {
	return &Resolver{
		newName:  suffixed(newSuffix),
		prevName: suffixed(prevSuffix),
		diffName: ReservedName + "-diff",
	}
}

func suffixed(suffix string) string {
	if suffix == "" {
		return ReservedName
	}
	return ReservedName + "-" + strings.ToLower(suffix)
}

// NewVersion returns the identity of the build under test.
func (r *Resolver) NewVersion() Identity {
	return Identity{Name: r.newName, Role: RoleNew}
}

// PreviousVersion returns the identity of the baseline build.
func (r *Resolver) PreviousVersion() Identity {
	return Identity{Name: r.prevName, Role: RolePrevious}
}

// Diff returns the synthetic identity carrying result differences.
func (r *Resolver) Diff() Identity {
	return Identity{Name: r.diffName, Role: RoleDiff}
}

// Current resolves an implementation name from a current-run shard. The bare
// reserved name means the build under test here. Literal occurrences of the
// resolved names map back to their roles, so re-merging an already merged
// report keeps its identities instead of duplicating them.
func (r *Resolver) Current(name string) Identity {
	switch name {
	case ReservedName, r.newName:
		return r.NewVersion()
	case r.prevName:
		return r.PreviousVersion()
	case r.diffName:
		return r.Diff()
	}
	return Identity{Name: name, Role: RoleOther}
}

// Baseline resolves an implementation name from the baseline document, where
// the bare reserved name means the previous build.
func (r *Resolver) Baseline(name string) Identity {
	switch name {
	case ReservedName, r.prevName:
		return r.PreviousVersion()
	case r.newName:
		return r.NewVersion()
	case r.diffName:
		return r.Diff()
	}
	return Identity{Name: name, Role: RoleOther}
}
