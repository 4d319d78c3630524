package search

import "github.com/ChrisMcGann/FragSearch/pkg/core"

// Results aggregates a search. The diagnostic slices hold one entry per
// protein seen (searched or skipped), in input order.
type Results struct {
	Searched         int // proteins that passed the alphabet gate
	Skipped          int // proteins rejected by the alphabet gate
	MatchedSequences int // proteins with at least one satisfying fragment
	MatchedFragments int // satisfying fragments over all proteins
	DigestFragments  int // digest fragments over all proteins

	Matches []core.Protein

	SequenceLengths    []int
	DigestLengths      [][]int
	DigestsPerSequence []int
}

// Total returns the number of proteins seen.
func (r *Results) Total() int {
	return r.Searched + r.Skipped
}

// add records one protein after the matcher has run.
func (r *Results) add(p core.Protein, valid bool, count int) {
	if valid {
		r.Searched++
		if count > 0 {
			r.MatchedSequences++
			r.MatchedFragments += count
			r.Matches = append(r.Matches, p)
		}
	} else {
		r.Skipped++
	}
	r.DigestFragments += len(p.Digests)
	r.SequenceLengths = append(r.SequenceLengths, len(p.Sequence))
	r.DigestsPerSequence = append(r.DigestsPerSequence, len(p.Digests))
	r.DigestLengths = append(r.DigestLengths, p.DigestLengths())
}

// Combine concatenates partial results in argument order, summing counters.
func Combine(parts ...Results) Results {
	var matches, seen int
	for i := range parts {
		matches += len(parts[i].Matches)
		seen += len(parts[i].SequenceLengths)
	}

	out := Results{
		Matches:            make([]core.Protein, 0, matches),
		SequenceLengths:    make([]int, 0, seen),
		DigestLengths:      make([][]int, 0, seen),
		DigestsPerSequence: make([]int, 0, seen),
	}
	for _, r := range parts {
		out.Searched += r.Searched
		out.Skipped += r.Skipped
		out.MatchedSequences += r.MatchedSequences
		out.MatchedFragments += r.MatchedFragments
		out.DigestFragments += r.DigestFragments

		out.Matches = append(out.Matches, r.Matches...)
		out.SequenceLengths = append(out.SequenceLengths, r.SequenceLengths...)
		out.DigestLengths = append(out.DigestLengths, r.DigestLengths...)
		out.DigestsPerSequence = append(out.DigestsPerSequence, r.DigestsPerSequence...)
	}
	return out
}
