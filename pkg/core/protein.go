// Package core provides the protein model and validation logic shared by the
// ingestion and search stages.
package core

import "fmt"

// Protein is one FASTA record.
type Protein struct {
	Source      string // path of the database the record was read from
	Description string // header text after '>', without CR/LF
	Sequence    []byte // alphabetic bytes only

	// Set by the search stage
	Digests    [][]byte
	MatchCount int
}

// DigestLengths returns the residue count of every digest fragment.
func (p *Protein) DigestLengths() []int {
	lengths := make([]int, len(p.Digests))
	for i, d := range p.Digests {
		lengths[i] = len(d)
	}
	return lengths
}

// ValidationError represents an error found during validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error in %s: %s", e.Field, e.Message)
}

// Alphabet is a named set of residue symbols accepted by the search.
type Alphabet struct {
	name    string
	letters string
	ok      [256]bool
}

// NewAlphabet creates an alphabet from the given symbols.
func NewAlphabet(name, letters string) *Alphabet {
	a := &Alphabet{name: name, letters: letters}
	for i := 0; i < len(letters); i++ {
		a.ok[letters[i]] = true
	}
	return a
}

var (
	// Canonical holds the 20 standard residues.
	Canonical = NewAlphabet("canonical", "ARNDCEQGHILKMFPSTWYV")

	// Legacy additionally accepts lowercase 'c'. The residue has no mass, so
	// fragments containing it never produce ions.
	Legacy = NewAlphabet("legacy", "ARNDCcEQGHILKMFPSTWYV")
)

// AlphabetByName looks up one of the named alphabets.
func AlphabetByName(name string) (*Alphabet, bool) {
	switch name {
	case "", Canonical.name:
		return Canonical, true
	case Legacy.name:
		return Legacy, true
	}
	return nil, false
}

// Name returns the alphabet name.
func (a *Alphabet) Name() string { return a.name }

// Letters returns the accepted symbols.
func (a *Alphabet) Letters() string { return a.letters }

// Contains reports whether b is in the alphabet.
func (a *Alphabet) Contains(b byte) bool { return a.ok[b] }

// Valid reports whether every residue of seq belongs to the alphabet.
func (a *Alphabet) Valid(seq []byte) bool {
	for _, b := range seq {
		if !a.ok[b] {
			return false
		}
	}
	return true
}
