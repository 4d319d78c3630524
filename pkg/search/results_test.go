package search

import (
	"math"
	"reflect"
	"testing"

	"github.com/ChrisMcGann/FragSearch/pkg/core"
)

func TestCombine(t *testing.T) {
	a := Results{
		Searched: 2, Skipped: 1, MatchedSequences: 1, MatchedFragments: 2, DigestFragments: 4,
		Matches:            []core.Protein{{Description: "a"}},
		SequenceLengths:    []int{3, 4, 5},
		DigestLengths:      [][]int{{3}, {2, 2}, {}},
		DigestsPerSequence: []int{1, 2, 0},
	}
	b := Results{
		Searched: 1, MatchedSequences: 1, MatchedFragments: 1, DigestFragments: 1,
		Matches:            []core.Protein{{Description: "b"}},
		SequenceLengths:    []int{7},
		DigestLengths:      [][]int{{7}},
		DigestsPerSequence: []int{1},
	}

	got := Combine(a, b)
	if got.Searched != 3 || got.Skipped != 1 || got.MatchedSequences != 2 || got.MatchedFragments != 3 || got.DigestFragments != 5 {
		t.Errorf("counters = %+v", got)
	}
	if len(got.Matches) != 2 || got.Matches[0].Description != "a" || got.Matches[1].Description != "b" {
		t.Errorf("Matches = %+v", got.Matches)
	}
	if !reflect.DeepEqual(got.SequenceLengths, []int{3, 4, 5, 7}) {
		t.Errorf("SequenceLengths = %v", got.SequenceLengths)
	}
	if !reflect.DeepEqual(got.DigestsPerSequence, []int{1, 2, 0, 1}) {
		t.Errorf("DigestsPerSequence = %v", got.DigestsPerSequence)
	}
	if len(got.DigestLengths) != 4 || !reflect.DeepEqual(got.DigestLengths[3], []int{7}) {
		t.Errorf("DigestLengths = %v", got.DigestLengths)
	}
}

func TestCombineEmpty(t *testing.T) {
	got := Combine()
	if got.Total() != 0 || len(got.Matches) != 0 {
		t.Errorf("Combine() = %+v", got)
	}
}

func TestStats(t *testing.T) {
	r := Results{
		MatchedFragments:   3,
		DigestFragments:    12,
		SequenceLengths:    []int{10, 2, 6},
		DigestsPerSequence: []int{1, 4, 1},
	}

	pct, ok := r.MatchPercent()
	if !ok || math.Abs(pct-25) > 1e-9 {
		t.Errorf("MatchPercent() = %v, %v; want 25, true", pct, ok)
	}

	lengths, ok := r.SequenceLengthStats()
	if !ok || lengths.Min != 2 || lengths.Max != 10 || math.Abs(lengths.Mean-6) > 1e-9 {
		t.Errorf("SequenceLengthStats() = %+v, %v", lengths, ok)
	}

	digests, ok := r.DigestCountStats()
	if !ok || digests.Min != 1 || digests.Max != 4 || math.Abs(digests.Mean-2) > 1e-9 {
		t.Errorf("DigestCountStats() = %+v, %v", digests, ok)
	}
}

func TestStatsUndefined(t *testing.T) {
	var r Results
	if _, ok := r.MatchPercent(); ok {
		t.Error("MatchPercent() should be undefined with no digest fragments")
	}
	if _, ok := r.SequenceLengthStats(); ok {
		t.Error("SequenceLengthStats() should be undefined with no proteins")
	}
	if _, ok := r.DigestCountStats(); ok {
		t.Error("DigestCountStats() should be undefined with no proteins")
	}
}
