package core

// IonSeries holds the theoretical fragment ion masses of one peptide.
//
// Forward[i] is the cumulative residue mass of the first i+1 residues
// (N-terminal ions, no terminal adduct). Reverse[i] is the cumulative residue
// mass of the last i+1 residues plus WaterMass (C-terminal ions).
type IonSeries struct {
	Forward []float64
	Reverse []float64
}

// Len returns the total number of ion masses.
func (s IonSeries) Len() int {
	return len(s.Forward) + len(s.Reverse)
}

// Masses returns the forward series followed by the reverse series.
func (s IonSeries) Masses() []float64 {
	out := make([]float64, 0, s.Len())
	out = append(out, s.Forward...)
	return append(out, s.Reverse...)
}

// Contains reports whether any ion mass lies strictly within tolerance of target.
func (s IonSeries) Contains(target, tolerance float64) bool {
	for _, m := range s.Forward {
		if diff(m, target) < tolerance {
			return true
		}
	}
	for _, m := range s.Reverse {
		if diff(m, target) < tolerance {
			return true
		}
	}
	return false
}

// Ions computes the forward and reverse ion series of a fragment. A residue
// missing from the table yields an *UnknownResidueError and no masses.
func (t *ResidueTable) Ions(fragment []byte) (IonSeries, error) {
	n := len(fragment)
	s := IonSeries{
		Forward: make([]float64, n),
		Reverse: make([]float64, n),
	}

	// N-terminal ions
	mass := 0.0
	for i, r := range fragment {
		if !t.known[r] {
			return IonSeries{}, &UnknownResidueError{Residue: r, Position: i}
		}
		mass += t.mass[r]
		s.Forward[i] = mass
	}

	// C-terminal ions; all residues are known at this point
	mass = 0
	for i := n - 1; i >= 0; i-- {
		mass += t.mass[fragment[i]]
		s.Reverse[n-1-i] = mass + WaterMass
	}

	return s, nil
}

func diff(a, b float64) float64 {
	if a > b {
		return a - b
	}
	return b - a
}
