// Package core provides the residue mass table and fragment ion calculations
// used by the fragment search.
package core

import (
	"fmt"
	"math"
)

// Mass constants (monoisotopic, Da)
const (
	// WaterMass is added to every C-terminal (reverse) ion.
	WaterMass = 18.01088

	// CysteineAdduct is the fixed carbamidomethyl shift applied to every
	// cysteine (reduction-alkylation is assumed for all samples).
	CysteineAdduct = 57.0214
)

// residueMasses maps the canonical one-letter codes to residue masses.
var residueMasses = map[byte]float64{
	'A': 71.03711,
	'R': 156.10111,
	'N': 114.04293,
	'D': 115.02694,
	'C': 103.00919 + CysteineAdduct,
	'E': 129.04259,
	'Q': 128.05858,
	'G': 57.02146,
	'H': 137.05891,
	'I': 113.08406,
	'L': 113.08406,
	'K': 128.09496,
	'M': 131.04049,
	'F': 147.06841,
	'P': 97.05276,
	'S': 87.03203,
	'T': 101.04768,
	'W': 186.07931,
	'Y': 163.06333,
	'V': 99.06841,
}

// UnknownResidueError is returned when a mass is requested for a residue
// outside the table.
type UnknownResidueError struct {
	Residue  byte
	Position int // index within the fragment, -1 when not applicable
}

func (e *UnknownResidueError) Error() string {
	if e.Position < 0 {
		return fmt.Sprintf("unknown residue %q", e.Residue)
	}
	return fmt.Sprintf("unknown residue %q at position %d", e.Residue, e.Position)
}

// ResidueTable is an immutable residue -> mass lookup.
type ResidueTable struct {
	mass  [256]float64
	known [256]bool
}

// NewResidueTable builds a table from a residue mass mapping.
func NewResidueTable(masses map[byte]float64) *ResidueTable {
	t := &ResidueTable{}
	for r, m := range masses {
		t.mass[r] = m
		t.known[r] = true
	}
	return t
}

// Monoisotopic is the default table of the 20 canonical residues.
var Monoisotopic = NewResidueTable(residueMasses)

// Mass returns the residue mass of r.
func (t *ResidueTable) Mass(r byte) (float64, error) {
	if !t.known[r] {
		return 0, &UnknownResidueError{Residue: r, Position: -1}
	}
	return t.mass[r], nil
}

// Has reports whether r has a mass in the table.
func (t *ResidueTable) Has(r byte) bool {
	return t.known[r]
}

// NeutralMass computes the neutral monoisotopic mass of a peptide: the sum of
// its residue masses plus one water.
func (t *ResidueTable) NeutralMass(peptide []byte) (float64, error) {
	mass := WaterMass
	for i, r := range peptide {
		if !t.known[r] {
			return 0, &UnknownResidueError{Residue: r, Position: i}
		}
		mass += t.mass[r]
	}
	return mass, nil
}

// RoundFloat rounds a float to n decimal places
func RoundFloat(val float64, precision int) float64 {
	ratio := math.Pow(10, float64(precision))
	return math.Round(val*ratio) / ratio
}
