package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ChrisMcGann/FragSearch/pkg/core"
	"github.com/ChrisMcGann/FragSearch/pkg/digest"
)

func newDigestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "digest SEQUENCE",
		Short: "Digest a sequence and print the fragment ion masses",
		Long: `Digest a single protein sequence and print the N-terminal (forward) and
C-terminal (reverse, including water) ion masses of each fragment.

Examples:
  fragsearch digest PEPTIDE
  fragsearch digest MKWVTFISLLK --cleave K
  fragsearch digest PEPTIDE --no-digest`,
		Args: cobra.ExactArgs(1),
		RunE: runDigest,
	}
}

func runDigest(cmd *cobra.Command, args []string) error {
	if len(cleaveResidue) != 1 || !core.Canonical.Contains(cleaveResidue[0]) {
		return fmt.Errorf("invalid cleavage residue '%s'", cleaveResidue)
	}
	rule := digest.Rule{Residue: cleaveResidue[0], Enabled: !noDigest}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s digest of %s:\n", rule.Name(), args[0])

	for i, frag := range rule.Digest([]byte(args[0])) {
		fmt.Fprintf(out, "%d: %s\n", i+1, frag)

		ions, err := core.Monoisotopic.Ions(frag)
		if err != nil {
			// Fragments with unknown residues are never matched
			fmt.Fprintf(out, "\t%v\n", err)
			continue
		}
		if mass, err := core.Monoisotopic.NeutralMass(frag); err == nil && len(frag) > 0 {
			fmt.Fprintf(out, "\tneutral:  %.5f\n", mass)
		}
		fmt.Fprintf(out, "\tforward: %s\n", formatMasses(ions.Forward))
		fmt.Fprintf(out, "\treverse: %s\n", formatMasses(ions.Reverse))
	}

	return nil
}

func formatMasses(masses []float64) string {
	parts := make([]string, len(masses))
	for i, m := range masses {
		parts[i] = fmt.Sprintf("%.5f", m)
	}
	return strings.Join(parts, " ")
}
