// Package fasta exports the satisfying digest fragments of matched proteins
// as FASTA records.
package fasta

import (
	"fmt"
	"io"

	"github.com/biogo/biogo/alphabet"
	biofasta "github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"

	"github.com/ChrisMcGann/FragSearch/pkg/core"
	"github.com/ChrisMcGann/FragSearch/pkg/search"
)

// LineWidth is the sequence line length of written records.
const LineWidth = 60

// Writer writes one record per satisfying fragment. Record IDs are
// <protein ordinal>.<fragment ordinal>, both 1-based, followed by the protein
// description and source database.
type Writer struct {
	w       *biofasta.Writer
	matcher *search.Matcher
	written int
}

// NewWriter returns a Writer that flags fragments using m.
func NewWriter(w io.Writer, m *search.Matcher) *Writer {
	return &Writer{
		w:       biofasta.NewWriter(w, LineWidth),
		matcher: m,
	}
}

// Written returns the number of records written so far.
func (w *Writer) Written() int {
	return w.written
}

// WriteResults writes the fragments of every matched protein in res.
func (w *Writer) WriteResults(res *search.Results) error {
	for i := range res.Matches {
		if err := w.WriteProtein(i+1, &res.Matches[i]); err != nil {
			return err
		}
	}
	return nil
}

// WriteProtein writes the satisfying, non-empty fragments of p.
func (w *Writer) WriteProtein(ordinal int, p *core.Protein) error {
	for i, frag := range p.Digests {
		if len(frag) == 0 || !w.matcher.Satisfies(frag) {
			continue
		}

		s := linear.NewSeq(
			fmt.Sprintf("%d.%d", ordinal, i+1),
			alphabet.BytesToLetters(frag),
			alphabet.Protein,
		)
		s.Desc = fmt.Sprintf("%s [%s]", p.Description, p.Source)

		if _, err := w.w.Write(s); err != nil {
			return fmt.Errorf("failed to write fragment %s: %w", s.Name(), err)
		}
		w.written++
	}
	return nil
}
