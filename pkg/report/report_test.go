package report

import (
	"errors"
	"strings"
	"testing"

	"github.com/ChrisMcGann/FragSearch/pkg/core"
	"github.com/ChrisMcGann/FragSearch/pkg/digest"
	"github.com/ChrisMcGann/FragSearch/pkg/search"
)

func testResults() *search.Results {
	rule := digest.GluC
	p1 := core.Protein{Source: "a.fasta", Description: "sp|P1|ONE", Sequence: []byte("PEPTIDE")}
	p1.Digests = rule.Digest(p1.Sequence)
	p2 := core.Protein{Source: "b.fasta", Description: "sp|P2|TWO", Sequence: []byte("NNK")}
	p2.Digests = rule.Digest(p2.Sequence)

	return &search.Results{
		Searched:           3,
		Skipped:            1,
		MatchedSequences:   2,
		MatchedFragments:   2,
		DigestFragments:    8,
		Matches:            []core.Protein{p1, p2},
		SequenceLengths:    []int{7, 3, 4, 10},
		DigestsPerSequence: []int{3, 1, 4, 0},
	}
}

func TestWrite(t *testing.T) {
	var sb strings.Builder
	if err := Write(&sb, testResults(), digest.GluC); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	want := "1: sp|P1|ONE [a.fasta]\n" +
		"\tPEPTIDE\n" +
		"\t\tGluC fragments:\n" +
		"\t\tPE\n" +
		"\t\tPTIDE\n" +
		"\t\t\n" +
		"\n" +
		"2: sp|P2|TWO [b.fasta]\n" +
		"\tNNK\n" +
		"\t\tGluC fragments:\n" +
		"\t\tNNK\n" +
		"\n"
	if sb.String() != want {
		t.Errorf("Write() =\n%q\nwant\n%q", sb.String(), want)
	}
}

func TestWriteUndigested(t *testing.T) {
	var sb strings.Builder
	if err := Write(&sb, testResults(), digest.Disabled); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if strings.Contains(sb.String(), "fragments:") {
		t.Errorf("undigested report lists fragments:\n%s", sb.String())
	}
	if !strings.HasPrefix(sb.String(), "1: sp|P1|ONE [a.fasta]\n\tPEPTIDE\n\n2:") {
		t.Errorf("Write() =\n%q", sb.String())
	}
}

func TestWriteRuleName(t *testing.T) {
	var sb strings.Builder
	if err := Write(&sb, testResults(), digest.Rule{Residue: 'K', Enabled: true}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(sb.String(), "\t\tCleave-after-K fragments:\n") {
		t.Errorf("Write() =\n%s", sb.String())
	}
}

func TestWriteEmpty(t *testing.T) {
	var sb strings.Builder
	if err := Write(&sb, &search.Results{}, digest.GluC); err != nil {
		t.Fatal(err)
	}
	if sb.Len() != 0 {
		t.Errorf("Write() with no matches = %q, want empty", sb.String())
	}
}

func TestSummary(t *testing.T) {
	var sb strings.Builder
	if err := Summary(&sb, []float64{114.04293, 226.09535}, testResults()); err != nil {
		t.Fatalf("Summary() error = %v", err)
	}

	want := "Search complete for mass list: 114.04 226.10\n" +
		"2 matches, 3 searched sequences, 8 digests, 1 skipped (4 total) (25.000000%).\n" +
		"2 matching sequences.\n" +
		"Min sequence length = 3, max sequence length = 10, average sequence length = 6.000000\n" +
		"Min num digests = 0, max num digests = 4, average num digests = 2.000000\n"
	if sb.String() != want {
		t.Errorf("Summary() =\n%s\nwant\n%s", sb.String(), want)
	}
}

func TestSummaryEmpty(t *testing.T) {
	var sb strings.Builder
	if err := Summary(&sb, nil, &search.Results{}); err != nil {
		t.Fatalf("Summary() error = %v", err)
	}

	want := "Search complete for mass list:\n" +
		"0 matches, 0 searched sequences, 0 digests, 0 skipped (0 total) (undefined).\n" +
		"0 matching sequences.\n" +
		"Min sequence length = n/a, max sequence length = n/a, average sequence length = n/a\n" +
		"Min num digests = n/a, max num digests = n/a, average num digests = n/a\n"
	if sb.String() != want {
		t.Errorf("Summary() =\n%s\nwant\n%s", sb.String(), want)
	}
}

type failWriter struct{}

func (failWriter) Write(p []byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestWriteError(t *testing.T) {
	if err := Write(failWriter{}, testResults(), digest.GluC); err == nil {
		t.Error("Write() to a failing writer should return an error")
	}
	if err := Summary(failWriter{}, nil, testResults()); err == nil {
		t.Error("Summary() to a failing writer should return an error")
	}
}
