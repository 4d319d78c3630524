// Package config holds the search settings and reads them from configuration
// files, command line flags and the environment.
package config

import (
	"fmt"
	"math"
	"runtime"
	"strings"

	"github.com/ChrisMcGann/FragSearch/pkg/core"
	"github.com/ChrisMcGann/FragSearch/pkg/digest"
	"github.com/ChrisMcGann/FragSearch/pkg/search"
)

// Config is the full set of search settings.
type Config struct {
	// FASTA databases, searched in order
	Databases []string `toml:"databases"`

	// Every target mass must be found in one fragment for it to match
	TargetMasses []float64 `toml:"target_masses"`

	// Absolute tolerance in Da; a mass matches when |target - mass| < tolerance
	MassTolerance float64 `toml:"mass_tolerance"`

	// Digest proteins before matching (GluC by default)
	Digest          bool   `toml:"gluc_digest"`
	CleavageResidue string `toml:"cleavage_residue"`

	// Worker count for both stages; 0 uses every CPU
	SearchThreads int `toml:"num_search_threads"`

	// Split database parsing across workers
	ReadMultithreaded bool `toml:"read_database_multithreaded"`

	// Residue alphabet for the validity gate: canonical or legacy
	Alphabet string `toml:"alphabet"`

	// Problems found while reading the configuration. Offending entries
	// are ignored.
	Warnings []string `toml:"-"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Digest:            true,
		CleavageResidue:   "E",
		ReadMultithreaded: true,
		Alphabet:          core.Canonical.Name(),
	}
}

func (c *Config) warnf(format string, args ...any) {
	c.Warnings = append(c.Warnings, fmt.Sprintf(format, args...))
}

// Validate checks that the configuration can drive a search.
func (c *Config) Validate() error {
	var errs []string

	if len(c.Databases) == 0 {
		errs = append(errs, "at least one database is required")
	}
	for i, path := range c.Databases {
		if strings.TrimSpace(path) == "" {
			errs = append(errs, fmt.Sprintf("database %d has an empty path", i+1))
		}
	}
	if math.IsNaN(c.MassTolerance) || math.IsInf(c.MassTolerance, 0) || c.MassTolerance < 0 {
		errs = append(errs, "mass tolerance must be a non-negative number")
	}
	for i, m := range c.TargetMasses {
		if math.IsNaN(m) || math.IsInf(m, 0) {
			errs = append(errs, fmt.Sprintf("target mass %d is not a finite number", i+1))
		}
	}
	if c.SearchThreads < 0 {
		errs = append(errs, "thread count must not be negative")
	}
	if len(c.CleavageResidue) != 1 || !core.Canonical.Contains(c.CleavageResidue[0]) {
		errs = append(errs, fmt.Sprintf("cleavage residue %q is not a canonical residue", c.CleavageResidue))
	}
	if _, ok := core.AlphabetByName(c.Alphabet); !ok {
		errs = append(errs, fmt.Sprintf("unknown alphabet %q (want canonical or legacy)", c.Alphabet))
	}

	if len(errs) > 0 {
		return &core.ValidationError{
			Field:   "Config",
			Message: strings.Join(errs, "; "),
		}
	}
	return nil
}

// Advisories returns notes about settings that are valid but unlikely to be
// intended.
func (c *Config) Advisories() []string {
	var notes []string
	if len(c.TargetMasses) == 0 {
		notes = append(notes, "no target masses configured; every fragment of every valid protein will match")
	}
	if c.MassTolerance == 0 && len(c.TargetMasses) > 0 {
		notes = append(notes, "mass tolerance is 0; no mass can match")
	}
	return notes
}

// WorkerCount resolves a configured thread count: n itself when positive,
// otherwise the number of CPUs, and never less than 1.
func WorkerCount(n int) int {
	if n > 0 {
		return n
	}
	if n = runtime.NumCPU(); n > 0 {
		return n
	}
	return 1
}

// SearchWorkers returns the number of search partitions per database.
func (c *Config) SearchWorkers() int {
	return WorkerCount(c.SearchThreads)
}

// IngestWorkers returns the number of parsing workers per database file.
func (c *Config) IngestWorkers() int {
	if !c.ReadMultithreaded {
		return 1
	}
	return WorkerCount(c.SearchThreads)
}

// Rule returns the digestion rule. Call Validate first.
func (c *Config) Rule() digest.Rule {
	residue := byte('E')
	if len(c.CleavageResidue) == 1 {
		residue = c.CleavageResidue[0]
	}
	return digest.Rule{Residue: residue, Enabled: c.Digest}
}

// Matcher builds the protein matcher described by the configuration.
func (c *Config) Matcher() (*search.Matcher, error) {
	alphabet, ok := core.AlphabetByName(c.Alphabet)
	if !ok {
		return nil, fmt.Errorf("unknown alphabet %q", c.Alphabet)
	}
	m := search.NewMatcher(search.Query{
		Targets:   c.TargetMasses,
		Tolerance: c.MassTolerance,
	}, c.Rule())
	m.Alphabet = alphabet
	return m, nil
}
