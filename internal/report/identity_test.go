package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolver_Current(t *testing.T) {
	tests := []struct {
		name       string
		newSuffix  string
		prevSuffix string
		input      string
		expected   Identity
	}{
		{
			name:     "reserved name becomes new version",
			input:    "s2n-quic",
			expected: Identity{Name: "s2n-quic", Role: RoleNew},
		},
		{
			name:      "reserved name with suffix configured",
			newSuffix: "pr-123",
			input:     "s2n-quic",
			expected:  Identity{Name: "s2n-quic-pr-123", Role: RoleNew},
		},
		{
			name:      "suffix is lowercased",
			newSuffix: "PR-123",
			input:     "s2n-quic",
			expected:  Identity{Name: "s2n-quic-pr-123", Role: RoleNew},
		},
		{
			name:      "literal resolved name keeps its role",
			newSuffix: "pr-123",
			input:     "s2n-quic-pr-123",
			expected:  Identity{Name: "s2n-quic-pr-123", Role: RoleNew},
		},
		{
			name:       "literal previous name maps to previous role",
			prevSuffix: "main",
			input:      "s2n-quic-main",
			expected:   Identity{Name: "s2n-quic-main", Role: RolePrevious},
		},
		{
			name:     "literal diff name maps to diff role",
			input:    "s2n-quic-diff",
			expected: Identity{Name: "s2n-quic-diff", Role: RoleDiff},
		},
		{
			name:     "other implementations pass through",
			input:    "quic-go",
			expected: Identity{Name: "quic-go", Role: RoleOther},
		},
		{
			name:      "unconfigured family name passes through",
			newSuffix: "pr-123",
			input:     "s2n-quic-old",
			expected:  Identity{Name: "s2n-quic-old", Role: RoleOther},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewResolver(tt.newSuffix, tt.prevSuffix)
			assert.Equal(t, tt.expected, r.Current(tt.input))
		})
	}
}

func TestResolver_Baseline(t *testing.T) {
	tests := []struct {
		name       string
		newSuffix  string
		prevSuffix string
		input      string
		expected   Identity
	}{
		{
			name:     "reserved name becomes previous version",
			input:    "s2n-quic",
			expected: Identity{Name: "s2n-quic", Role: RolePrevious},
		},
		{
			name:       "reserved name with previous suffix configured",
			prevSuffix: "v1.2",
			input:      "s2n-quic",
			expected:   Identity{Name: "s2n-quic-v1.2", Role: RolePrevious},
		},
		{
			name:      "literal new name maps to new role",
			newSuffix: "pr-123",
			input:     "s2n-quic-pr-123",
			expected:  Identity{Name: "s2n-quic-pr-123", Role: RoleNew},
		},
		{
			name:     "other implementations pass through",
			input:    "ngtcp2",
			expected: Identity{Name: "ngtcp2", Role: RoleOther},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewResolver(tt.newSuffix, tt.prevSuffix)
			assert.Equal(t, tt.expected, r.Baseline(tt.input))
		})
	}
}

func TestResolver_SelfPairingStaysDistinct(t *testing.T) {
	// With no suffixes both builds resolve to the literal reserved name; the
	// roles must still keep (new,new) apart from (previous,previous).
	r := NewResolver("", "")

	newSelf := Pair{Client: r.NewVersion(), Server: r.NewVersion()}
	prevSelf := Pair{Client: r.PreviousVersion(), Server: r.PreviousVersion()}

	assert.Equal(t, newSelf.Client.Name, prevSelf.Client.Name)
	assert.NotEqual(t, newSelf, prevSelf)
}

func TestFamilyName(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"s2n-quic", true},
		{"s2n-quic-pr-99", true},
		{"s2n-quic-diff", true},
		{"s2n-quicer", false},
		{"quic-go", false},
		{"", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, FamilyName(tt.input), "FamilyName(%q)", tt.input)
	}
}
