// Package report writes search results as text.
package report

import (
	"bufio"
	"fmt"
	"io"

	"github.com/ChrisMcGann/FragSearch/pkg/digest"
	"github.com/ChrisMcGann/FragSearch/pkg/search"
)

// Write writes every matched protein in result order:
//
//	1: <description> [<database>]
//		<sequence>
//			GluC fragments:
//			<fragment>
//			...
//
// The fragment block is omitted when rule is disabled. Each entry ends with a
// blank line.
func Write(w io.Writer, res *search.Results, rule digest.Rule) error {
	bw := bufio.NewWriter(w)

	for i := range res.Matches {
		p := &res.Matches[i]
		fmt.Fprintf(bw, "%d: %s [%s]\n", i+1, p.Description, p.Source)
		bw.WriteByte('\t')
		bw.Write(p.Sequence)
		bw.WriteByte('\n')

		if rule.Enabled {
			fmt.Fprintf(bw, "\t\t%s fragments:\n", rule.Name())
			for _, frag := range p.Digests {
				bw.WriteString("\t\t")
				bw.Write(frag)
				bw.WriteByte('\n')
			}
		}
		bw.WriteByte('\n')
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// Summary writes the run summary printed after a search.
func Summary(w io.Writer, masses []float64, res *search.Results) error {
	bw := bufio.NewWriter(w)

	bw.WriteString("Search complete for mass list:")
	for _, m := range masses {
		fmt.Fprintf(bw, " %.2f", m)
	}
	bw.WriteByte('\n')

	pct := "undefined"
	if p, ok := res.MatchPercent(); ok {
		pct = fmt.Sprintf("%f%%", p)
	}
	fmt.Fprintf(bw, "%d matches, %d searched sequences, %d digests, %d skipped (%d total) (%s).\n",
		res.MatchedFragments, res.Searched, res.DigestFragments, res.Skipped, res.Total(), pct)
	fmt.Fprintf(bw, "%d matching sequences.\n", res.MatchedSequences)

	if s, ok := res.SequenceLengthStats(); ok {
		fmt.Fprintf(bw, "Min sequence length = %d, max sequence length = %d, average sequence length = %f\n",
			s.Min, s.Max, s.Mean)
	} else {
		bw.WriteString("Min sequence length = n/a, max sequence length = n/a, average sequence length = n/a\n")
	}

	if s, ok := res.DigestCountStats(); ok {
		fmt.Fprintf(bw, "Min num digests = %d, max num digests = %d, average num digests = %f\n",
			s.Min, s.Max, s.Mean)
	} else {
		bw.WriteString("Min num digests = n/a, max num digests = n/a, average num digests = n/a\n")
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	return nil
}
