package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ChrisMcGann/FragSearch/pkg/config"
	"github.com/ChrisMcGann/FragSearch/pkg/core"
	"github.com/ChrisMcGann/FragSearch/pkg/fasta"
	"github.com/ChrisMcGann/FragSearch/pkg/search"
)

func newSummarizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summarize FASTA...",
		Short: "Summarize protein database contents",
		Long:  `Print the protein count, the number of sequences outside the residue alphabet, and sequence length statistics for each FASTA file.`,
		Args:  cobra.MinimumNArgs(1),
		RunE:  runSummarize,
	}
}

func runSummarize(cmd *cobra.Command, args []string) error {
	alphabet, ok := core.AlphabetByName(summaryAlphabet)
	if !ok {
		return fmt.Errorf("unknown alphabet '%s'", summaryAlphabet)
	}

	dbs, err := fasta.LoadAll(args, config.WorkerCount(summaryThreads))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, db := range dbs {
		lengths := make([]int, len(db.Proteins))
		invalid := 0
		for i := range db.Proteins {
			lengths[i] = len(db.Proteins[i].Sequence)
			if !alphabet.Valid(db.Proteins[i].Sequence) {
				invalid++
			}
		}

		fmt.Fprintf(out, "%s\n", db.Path)
		fmt.Fprintf(out, "\tProteins: %d (%d outside the %s alphabet)\n", len(db.Proteins), invalid, alphabet.Name())
		if s, ok := search.Summarize(lengths); ok {
			fmt.Fprintf(out, "\tSequence length: min %d, max %d, average %.2f\n", s.Min, s.Max, s.Mean)
		} else {
			fmt.Fprintf(out, "\tSequence length: n/a\n")
		}
		fmt.Fprintf(out, "\tRead %d ms, parsed %d ms\n", db.ReadTime.Milliseconds(), db.ParseTime.Milliseconds())
	}

	return nil
}
