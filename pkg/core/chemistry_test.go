package core

import (
	"errors"
	"math"
	"testing"
)

func TestResidueMass(t *testing.T) {
	tests := []struct {
		name    string
		residue byte
		want    float64
		wantErr bool
	}{
		{"asparagine", 'N', 114.04293, false},
		{"glutamic acid", 'E', 129.04259, false},
		{"cysteine with adduct", 'C', 160.03059, false},
		{"leucine equals isoleucine", 'L', 113.08406, false},
		{"unknown X", 'X', 0, true},
		{"lowercase c", 'c', 0, true},
		{"selenocysteine", 'U', 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Monoisotopic.Mass(tt.residue)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Mass(%q) error = %v, wantErr %v", tt.residue, err, tt.wantErr)
			}
			if tt.wantErr {
				var ure *UnknownResidueError
				if !errors.As(err, &ure) || ure.Residue != tt.residue {
					t.Errorf("Mass(%q) error = %v, want *UnknownResidueError", tt.residue, err)
				}
				return
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Mass(%q) = %.5f, want %.5f", tt.residue, got, tt.want)
			}
		})
	}
}

func TestMonoisotopicCoversCanonical(t *testing.T) {
	for i := 0; i < len(Canonical.Letters()); i++ {
		r := Canonical.Letters()[i]
		if !Monoisotopic.Has(r) {
			t.Errorf("residue %q missing from table", r)
		}
	}
	if Monoisotopic.Has('c') {
		t.Error("lowercase c should not have a mass")
	}
}

func TestNeutralMass(t *testing.T) {
	tests := []struct {
		name      string
		peptide   string
		wantMass  float64
		tolerance float64
		wantErr   bool
	}{
		{"simple tripeptide", "AAA", 231.121, 0.01, false},
		{"PEPTIDE", "PEPTIDE", 799.360, 0.01, false},
		{"empty peptide is water", "", WaterMass, 1e-9, false},
		{"unknown residue", "PEXTIDE", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Monoisotopic.NeutralMass([]byte(tt.peptide))
			if (err != nil) != tt.wantErr {
				t.Fatalf("NeutralMass() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				var ure *UnknownResidueError
				if !errors.As(err, &ure) || ure.Position != 2 {
					t.Errorf("NeutralMass() error = %v, want unknown residue at position 2", err)
				}
				return
			}
			if math.Abs(got-tt.wantMass) > tt.tolerance {
				t.Errorf("NeutralMass() = %.3f, want %.3f (within %.3f)", got, tt.wantMass, tt.tolerance)
			}
		})
	}
}

func TestRoundFloat(t *testing.T) {
	tests := []struct {
		name      string
		val       float64
		precision int
		want      float64
	}{
		{"round to 2 decimals", 3.14159, 2, 3.14},
		{"round to 4 decimals", 3.14159, 4, 3.1416},
		{"round to 0 decimals", 3.6, 0, 4.0},
		{"round negative", -3.14159, 2, -3.14},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RoundFloat(tt.val, tt.precision)
			if got != tt.want {
				t.Errorf("RoundFloat() = %v, want %v", got, tt.want)
			}
		})
	}
}
