// Package fasta builds ordered protein collections from FASTA input.
//
// Parsing works on a byte buffer holding the whole file. The buffer is split
// into contiguous ranges that are scanned concurrently; a record belongs to the
// range containing its '>' byte, and the worker owning it reads past its range
// end until the record closes. The concatenated output is identical to a
// single sequential scan for any buffer and worker count.
package fasta

import (
	"sync"

	"github.com/ChrisMcGann/FragSearch/pkg/core"
)

// Parse scans buf with the given number of workers and returns the records in
// file order. Every Protein carries source as its Source.
func Parse(source string, buf []byte, workers int) []core.Protein {
	if workers < 1 {
		workers = 1
	}
	if workers == 1 {
		return scan(buf, source, core.Range{Start: 0, End: len(buf)})
	}

	ranges := core.Partition(len(buf), workers)
	parts := make([][]core.Protein, len(ranges))

	var wg sync.WaitGroup
	wg.Add(len(ranges))
	for i, r := range ranges {
		go func(i int, r core.Range) {
			defer wg.Done()
			parts[i] = scan(buf, source, r)
		}(i, r)
	}
	wg.Wait()

	total := 0
	for _, p := range parts {
		total += len(p)
	}
	proteins := make([]core.Protein, 0, total)
	for _, p := range parts {
		proteins = append(proteins, p...)
	}
	return proteins
}

// scan returns the records whose header byte lies in r, plus the bytes
// preceding the first header when r starts at offset 0.
func scan(buf []byte, source string, r core.Range) []core.Protein {
	if r.Start >= r.End {
		return nil
	}

	var (
		proteins []core.Protein
		desc     []byte
		seq      []byte
		// open is false while skipping the tail of the previous range's record
		open     = r.Start == 0
		inHeader = r.Start > 0 && headerOpenAt(buf, r.Start)
	)

	emit := func() {
		if len(seq) > 0 {
			proteins = append(proteins, core.Protein{
				Source:      source,
				Description: string(desc),
				Sequence:    seq,
			})
		}
	}

	for i := r.Start; i < len(buf); i++ {
		b := buf[i]
		if b == 0 {
			continue
		}

		if !inHeader && b == '>' {
			if open {
				emit()
			}
			// Headers past the range end belong to the next worker
			if i >= r.End {
				return proteins
			}
			open = true
			inHeader = true
			desc = nil
			seq = make([]byte, 0, 720)
			continue
		}

		if !open {
			if i >= r.End {
				return proteins
			}
			if inHeader && (b == '\r' || b == '\n') {
				inHeader = false
			}
			continue
		}

		switch {
		case inHeader:
			if b == '\r' || b == '\n' {
				inHeader = false
			} else {
				desc = append(desc, b)
			}
		case isAlpha(b):
			seq = append(seq, b)
		}
	}

	if open {
		emit()
	}
	return proteins
}

// headerOpenAt reports whether a header line is still open just before offset
// p. A header opens at the first '>' of a line and runs to the next CR or LF,
// so it is open iff the current line contains a '>' before p.
func headerOpenAt(buf []byte, p int) bool {
	for j := p - 1; j >= 0; j-- {
		switch buf[j] {
		case '\r', '\n':
			return false
		case '>':
			return true
		}
	}
	return false
}

func isAlpha(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}
