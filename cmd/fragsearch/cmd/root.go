// Package cmd provides CLI command implementations
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/ChrisMcGann/FragSearch/pkg/config"
)

var (
	verbose bool

	// Flags for search command
	sqlitePath    string
	fragmentsPath string

	// Flags for digest command
	cleaveResidue string
	noDigest      bool

	// Flags for validate command
	printConfig bool

	// Flags for summarize command
	summaryAlphabet string
	summaryThreads  int
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "fragsearch",
		Short: "FragSearch - Protein fragment mass search tool",
		Long: `FragSearch searches FASTA protein databases for proteins whose digest
fragments explain a list of target masses.

Each protein is digested (GluC by default), every fragment's N-terminal and
C-terminal ion masses are computed, and a fragment matches when every target
mass lies within the tolerance of one of its ion masses.

Settings come from a configuration file (key = value or .toml) and can be
overridden by flags or FRAGSEARCH_* environment variables.`,
		Version:       "1.0.0",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	searchCmd := newSearchCmd()
	digestCmd := newDigestCmd()
	validateCmd := newValidateCmd()
	summarizeCmd := newSummarizeCmd()

	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(digestCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(summarizeCmd)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Trace search stages on stderr")

	// Search command flags
	addOverrideFlags(searchCmd.Flags())
	searchCmd.Flags().StringVar(&sqlitePath, "sqlite", "", "Also write results to a SQLite database")
	searchCmd.Flags().StringVar(&fragmentsPath, "fragments", "", "Also write satisfying fragments to a FASTA file")

	// Digest command flags
	digestCmd.Flags().StringVar(&cleaveResidue, "cleave", "E", "Cleavage residue")
	digestCmd.Flags().BoolVar(&noDigest, "no-digest", false, "Keep the sequence whole")

	// Validate command flags
	addOverrideFlags(validateCmd.Flags())
	validateCmd.Flags().BoolVar(&printConfig, "print", false, "Print the effective configuration as TOML")

	// Summarize command flags
	summarizeCmd.Flags().StringVar(&summaryAlphabet, "alphabet", "canonical", "Residue alphabet: canonical or legacy")
	summarizeCmd.Flags().IntVar(&summaryThreads, "threads", 0, "Parsing workers (0 = all CPUs)")

	return rootCmd
}

// Execute builds the command tree and runs it. Defining the flags resets the
// package-level flag values to their defaults.
func Execute() error {
	return newRootCmd().Execute()
}

// addOverrideFlags defines the flags that override configuration file values.
func addOverrideFlags(fs *pflag.FlagSet) {
	fs.StringSlice(config.KeyDatabases, nil, "FASTA database, repeatable (replaces the configured list)")
	fs.StringSlice(config.KeyMasses, nil, "Comma-separated target masses")
	fs.Float64(config.KeyTolerance, 0, "Mass tolerance in Da")
	fs.Bool(config.KeyDigest, true, "Digest proteins before matching")
	fs.String(config.KeyCleave, "E", "Cleavage residue")
	fs.Int(config.KeyThreads, 0, "Worker threads (0 = all CPUs)")
	fs.Bool(config.KeyReadMultithreaded, true, "Parse each database with multiple workers")
	fs.String(config.KeyAlphabet, "canonical", "Residue alphabet: canonical or legacy")
}

// loadConfig reads the configuration file, applies flag and environment
// overrides and validates the result. Warnings go to stderr.
func loadConfig(cmd *cobra.Command, path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	v := viper.New()
	if err := config.BindFlags(v, cmd.Flags()); err != nil {
		return nil, err
	}
	if err := cfg.Merge(v); err != nil {
		return nil, err
	}

	for _, w := range cfg.Warnings {
		fmt.Fprintf(os.Stderr, "Warning: %s: %s\n", path, w)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	for _, note := range cfg.Advisories() {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", note)
	}

	return cfg, nil
}

func logf(format string, args ...any) {
	if verbose {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}
