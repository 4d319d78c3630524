// Package digest splits protein sequences into enzymatic digest fragments.
package digest

import "fmt"

// Rule describes a single-residue C-terminal cleavage: the sequence is cut
// immediately after every occurrence of Residue.
type Rule struct {
	Residue byte
	Enabled bool
}

// GluC cleaves after glutamic acid.
var GluC = Rule{Residue: 'E', Enabled: true}

// Disabled leaves sequences whole.
var Disabled = Rule{}

// Name returns a short label for reports.
func (r Rule) Name() string {
	switch {
	case !r.Enabled:
		return "Undigested"
	case r.Residue == 'E':
		return "GluC"
	default:
		return fmt.Sprintf("Cleave-after-%c", r.Residue)
	}
}

// Digest returns the fragments of seq under the rule. Fragments alias seq.
//
// The trailing remainder is always emitted, so a sequence ending in the
// cleavage residue produces a final empty fragment and the fragment count is
// the number of cleavage sites plus one.
func (r Rule) Digest(seq []byte) [][]byte {
	if !r.Enabled {
		return [][]byte{seq}
	}

	frags := make([][]byte, 0, Count(seq, r.Residue)+1)
	start := 0
	for i, b := range seq {
		if b == r.Residue {
			frags = append(frags, seq[start:i+1:i+1])
			start = i + 1
		}
	}
	return append(frags, seq[start:len(seq):len(seq)])
}

// Count returns the number of occurrences of residue in seq.
func Count(seq []byte, residue byte) int {
	n := 0
	for _, b := range seq {
		if b == residue {
			n++
		}
	}
	return n
}
