// Package search digests proteins, generates fragment ion masses and reports
// proteins whose fragments cover every target mass.
package search

import (
	"github.com/ChrisMcGann/FragSearch/pkg/core"
	"github.com/ChrisMcGann/FragSearch/pkg/digest"
)

// Query is the set of target masses and the absolute tolerance (Da).
type Query struct {
	Targets   []float64
	Tolerance float64
}

// Matcher decides protein-level matches for one query.
type Matcher struct {
	Query    Query
	Rule     digest.Rule
	Alphabet *core.Alphabet
	Table    *core.ResidueTable
}

// NewMatcher returns a Matcher using the canonical alphabet and the
// monoisotopic residue table.
func NewMatcher(q Query, rule digest.Rule) *Matcher {
	return &Matcher{
		Query:    q,
		Rule:     rule,
		Alphabet: core.Canonical,
		Table:    core.Monoisotopic,
	}
}

// Valid reports whether p passes the alphabet gate. Invalid proteins are
// skipped and never digested.
func (m *Matcher) Valid(p *core.Protein) bool {
	return m.Alphabet.Valid(p.Sequence)
}

// Match digests p, attaches the complete fragment list and returns the number
// of fragments that satisfy the query.
func (m *Matcher) Match(p *core.Protein) int {
	p.Digests = m.Rule.Digest(p.Sequence)
	count := 0
	for _, frag := range p.Digests {
		if m.Satisfies(frag) {
			count++
		}
	}
	p.MatchCount = count
	return count
}

// Satisfies reports whether every target mass lies strictly within tolerance
// of at least one ion of fragment. A fragment with an unknown residue has no
// ions and never satisfies, even for an empty target list.
func (m *Matcher) Satisfies(fragment []byte) bool {
	ions, err := m.Table.Ions(fragment)
	if err != nil {
		return false
	}
	for _, target := range m.Query.Targets {
		if !ions.Contains(target, m.Query.Tolerance) {
			return false
		}
	}
	return true
}
