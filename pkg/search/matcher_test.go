package search

import (
	"testing"

	"github.com/ChrisMcGann/FragSearch/pkg/core"
	"github.com/ChrisMcGann/FragSearch/pkg/digest"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		name      string
		sequence  string
		targets   []float64
		tolerance float64
		rule      digest.Rule
		wantCount int
		wantFrags []string
	}{
		{
			name:      "single residue forward ion",
			sequence:  "N",
			targets:   []float64{114.04293},
			tolerance: 0.01,
			rule:      digest.GluC,
			wantCount: 1,
			wantFrags: []string{"N"},
		},
		{
			name:      "reverse ion includes water",
			sequence:  "N",
			targets:   []float64{114.04293 + core.WaterMass},
			tolerance: 0.01,
			rule:      digest.GluC,
			wantCount: 1,
			wantFrags: []string{"N"},
		},
		{
			name:      "all targets in one fragment",
			sequence:  "PEGK",
			targets:   []float64{57.02146 + 128.09496, 226.09535},
			tolerance: 0.001,
			rule:      digest.GluC,
			wantCount: 0, // targets split across PE and GK
			wantFrags: []string{"PE", "GK"},
		},
		{
			name:      "targets covered without digestion",
			sequence:  "PEGK",
			targets:   []float64{97.05276, 128.09496 + core.WaterMass},
			tolerance: 0.001,
			rule:      digest.Disabled,
			wantCount: 1,
			wantFrags: []string{"PEGK"},
		},
		{
			name:      "count is per fragment",
			sequence:  "GEGEGE",
			targets:   []float64{57.02146},
			tolerance: 0.001,
			rule:      digest.GluC,
			wantCount: 3,
			wantFrags: []string{"GE", "GE", "GE", ""},
		},
		{
			name:      "empty target list satisfies every fragment",
			sequence:  "PEPTIDE",
			targets:   nil,
			tolerance: 0.01,
			rule:      digest.GluC,
			wantCount: 3,
			wantFrags: []string{"PE", "PTIDE", ""},
		},
		{
			name:      "zero tolerance never matches",
			sequence:  "N",
			targets:   []float64{114.04293},
			tolerance: 0,
			rule:      digest.GluC,
			wantCount: 0,
			wantFrags: []string{"N"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMatcher(Query{Targets: tt.targets, Tolerance: tt.tolerance}, tt.rule)
			p := &core.Protein{Sequence: []byte(tt.sequence)}
			if !m.Valid(p) {
				t.Fatalf("Valid(%q) = false", tt.sequence)
			}

			got := m.Match(p)
			if got != tt.wantCount {
				t.Errorf("Match() = %d, want %d", got, tt.wantCount)
			}
			if p.MatchCount != got {
				t.Errorf("MatchCount = %d, want %d", p.MatchCount, got)
			}
			if len(p.Digests) != len(tt.wantFrags) {
				t.Fatalf("Digests = %q, want %q", p.Digests, tt.wantFrags)
			}
			for i := range tt.wantFrags {
				if string(p.Digests[i]) != tt.wantFrags[i] {
					t.Errorf("Digests[%d] = %q, want %q", i, p.Digests[i], tt.wantFrags[i])
				}
			}
		})
	}
}

func TestSatisfiesBoundary(t *testing.T) {
	const glycine = 57.02146
	const tolerance = 0.5

	// glycine - tolerance is exact, so the difference is exactly the tolerance
	onBoundary := NewMatcher(Query{Targets: []float64{glycine - tolerance}, Tolerance: tolerance}, digest.Disabled)
	if onBoundary.Satisfies([]byte("G")) {
		t.Error("mass at exactly target + tolerance should not match")
	}

	inside := NewMatcher(Query{Targets: []float64{glycine - tolerance + 1e-9}, Tolerance: tolerance}, digest.Disabled)
	if !inside.Satisfies([]byte("G")) {
		t.Error("mass just inside the tolerance should match")
	}
}

func TestUnknownResidueExcludesFragment(t *testing.T) {
	m := NewMatcher(Query{}, digest.GluC)
	m.Alphabet = core.Legacy

	p := &core.Protein{Sequence: []byte("PEcK")}
	if !m.Valid(p) {
		t.Fatal("legacy alphabet should accept lowercase c")
	}

	// PE satisfies the empty query; cK has no mass and is excluded
	if got := m.Match(p); got != 1 {
		t.Errorf("Match() = %d, want 1", got)
	}
	if len(p.Digests) != 2 {
		t.Errorf("Digests = %q, want two fragments", p.Digests)
	}
}

func TestValidRejectsNonCanonical(t *testing.T) {
	m := NewMatcher(Query{}, digest.GluC)
	for _, seq := range []string{"PEPXIDE", "PEcK", "BZ"} {
		if m.Valid(&core.Protein{Sequence: []byte(seq)}) {
			t.Errorf("Valid(%q) = true, want false", seq)
		}
	}
}
