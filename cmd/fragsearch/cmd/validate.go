package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate CONFIG",
		Short: "Validate a configuration file",
		Long: `Load a configuration file with any overrides applied, report problems,
and check that every database file exists.

Examples:
  fragsearch validate search.conf
  fragsearch validate search.conf --print > search.toml`,
		Args: cobra.ExactArgs(1),
		RunE: runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args[0])
	if err != nil {
		return err
	}

	missing := 0
	for _, path := range cfg.Databases {
		info, err := os.Stat(path)
		switch {
		case err != nil:
			fmt.Fprintf(os.Stderr, "Warning: database %s: %v\n", path, err)
			missing++
		case info.IsDir():
			fmt.Fprintf(os.Stderr, "Warning: database %s is a directory\n", path)
			missing++
		default:
			logf("database %s: %d bytes", path, info.Size())
		}
	}

	if printConfig {
		if err := cfg.Write(cmd.OutOrStdout()); err != nil {
			return err
		}
	}

	if missing > 0 {
		return fmt.Errorf("%d of %d databases cannot be read", missing, len(cfg.Databases))
	}

	fmt.Fprintf(os.Stderr, "%s: OK (%d databases, %d target masses, %s)\n",
		args[0], len(cfg.Databases), len(cfg.TargetMasses), cfg.Rule().Name())
	return nil
}
