package search

import (
	"fmt"
	"sync"

	"github.com/ChrisMcGann/FragSearch/pkg/core"
	"github.com/ChrisMcGann/FragSearch/pkg/fasta"
)

// Stage is a step of a per-database search.
type Stage int

const (
	Idle Stage = iota
	Partitioned
	Running
	Joined
	Reduced
)

func (s Stage) String() string {
	switch s {
	case Idle:
		return "idle"
	case Partitioned:
		return "partitioned"
	case Running:
		return "running"
	case Joined:
		return "joined"
	case Reduced:
		return "reduced"
	}
	return fmt.Sprintf("stage(%d)", int(s))
}

// Options control the parallel search.
type Options struct {
	// Workers is the number of partitions per database (values < 1 mean 1)
	Workers int

	// Observer, if set, is called on every stage transition from the
	// goroutine running the search.
	Observer func(database string, stage Stage)
}

// WorkerError reports a worker that failed. The search it belonged to
// returns no results.
type WorkerError struct {
	Database string
	Worker   int
	Value    any
}

func (e *WorkerError) Error() string {
	return fmt.Sprintf("search worker %d failed on %s: %v", e.Worker, e.Database, e.Value)
}

// Search runs m over each database in order and combines the per-database
// results in the same order.
func Search(dbs []*fasta.Database, m *Matcher, opts Options) (*Results, error) {
	parts := make([]Results, 0, len(dbs))
	for _, db := range dbs {
		r, err := SearchDatabase(db.Path, db.Proteins, m, opts)
		if err != nil {
			return nil, err
		}
		parts = append(parts, *r)
	}
	combined := Combine(parts...)
	return &combined, nil
}

// SearchDatabase partitions proteins into contiguous index ranges, searches
// them concurrently and reduces the partial results by partition index, so
// the output does not depend on scheduling. proteins is only read.
func SearchDatabase(name string, proteins []core.Protein, m *Matcher, opts Options) (*Results, error) {
	observe := func(s Stage) {
		if opts.Observer != nil {
			opts.Observer(name, s)
		}
	}
	observe(Idle)

	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}
	ranges := core.Partition(len(proteins), workers)
	partials := make([]Results, len(ranges))
	errs := make([]error, len(ranges))
	observe(Partitioned)

	var wg sync.WaitGroup
	wg.Add(len(ranges))
	for i, r := range ranges {
		go func(i int, r core.Range) {
			defer wg.Done()
			defer func() {
				if v := recover(); v != nil {
					errs[i] = &WorkerError{Database: name, Worker: i, Value: v}
				}
			}()
			partials[i] = searchRange(proteins[r.Start:r.End], m)
		}(i, r)
	}
	observe(Running)

	wg.Wait()
	observe(Joined)

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	res := Combine(partials...)
	observe(Reduced)
	return &res, nil
}

// searchRange runs the matcher over proteins sequentially. Each protein is
// copied before the matcher annotates it.
func searchRange(proteins []core.Protein, m *Matcher) Results {
	n := len(proteins)
	r := Results{
		SequenceLengths:    make([]int, 0, n),
		DigestLengths:      make([][]int, 0, n),
		DigestsPerSequence: make([]int, 0, n),
	}
	for i := range proteins {
		p := proteins[i]
		valid := m.Valid(&p)
		count := 0
		if valid {
			count = m.Match(&p)
		}
		r.add(p, valid, count)
	}
	return r
}
