package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ChrisMcGann/FragSearch/pkg/fasta"
	"github.com/ChrisMcGann/FragSearch/pkg/report"
	"github.com/ChrisMcGann/FragSearch/pkg/search"
	fastawriter "github.com/ChrisMcGann/FragSearch/pkg/writer/fasta"
	"github.com/ChrisMcGann/FragSearch/pkg/writer/sqlite"
)

func newSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search CONFIG OUTPUT",
		Short: "Search protein databases for fragments matching the target masses",
		Long: `Search every configured FASTA database and write the matching proteins
to OUTPUT. A summary of the run is printed to stdout.

Examples:
  # Search with the settings in search.conf
  fragsearch search search.conf matches.txt

  # Override the target masses and keep the results in SQLite
  fragsearch search search.toml matches.txt --masses 114.04293,226.09535 --sqlite matches.db

  # Export the satisfying fragments as FASTA
  fragsearch search search.conf matches.txt --fragments fragments.fasta`,
		Args: cobra.ExactArgs(2),
		RunE: runSearch,
	}
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args[0])
	if err != nil {
		return err
	}

	m, err := cfg.Matcher()
	if err != nil {
		return err
	}

	// Every database is read before the search starts
	start := time.Now()
	logf("Reading %d database(s) with %d worker(s)", len(cfg.Databases), cfg.IngestWorkers())
	dbs, err := fasta.LoadAll(cfg.Databases, cfg.IngestWorkers())
	if err != nil {
		return err
	}
	for _, db := range dbs {
		fmt.Fprintf(os.Stderr, "Imported %d sequences from %s. Reading time = %d ms, processing time = %d ms.\n",
			len(db.Proteins), db.Path, db.ReadTime.Milliseconds(), db.ParseTime.Milliseconds())
	}
	readTime := time.Since(start)

	searchStart := time.Now()
	res, err := search.Search(dbs, m, search.Options{
		Workers: cfg.SearchWorkers(),
		Observer: func(db string, s search.Stage) {
			logf("%s: %s", db, s)
		},
	})
	if err != nil {
		return err
	}
	searchTime := time.Since(searchStart)

	// Outputs are created only once the load and search have succeeded
	writeStart := time.Now()
	out, err := os.Create(args[1])
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer out.Close()

	if err := report.Write(out, res, m.Rule); err != nil {
		return err
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}
	if err := writeExtras(m, res); err != nil {
		return err
	}
	writeTime := time.Since(writeStart)

	fmt.Fprintf(os.Stderr, "Elapsed time: %d ms reading, %d ms searching, %d ms writing (%d ms total).\n",
		readTime.Milliseconds(), searchTime.Milliseconds(), writeTime.Milliseconds(), time.Since(start).Milliseconds())

	return report.Summary(os.Stdout, cfg.TargetMasses, res)
}

// writeExtras writes the optional SQLite and FASTA outputs.
func writeExtras(m *search.Matcher, res *search.Results) error {
	if sqlitePath != "" {
		writer, err := sqlite.NewWriter(sqlitePath, m)
		if err != nil {
			return fmt.Errorf("failed to create output database: %w", err)
		}
		defer writer.Close()

		if err := writer.WriteResults(res); err != nil {
			return err
		}
		if err := writer.Finalize(res); err != nil {
			return fmt.Errorf("failed to finalize database: %w", err)
		}
		logf("Wrote run %s to %s", writer.RunID(), sqlitePath)
	}

	if fragmentsPath != "" {
		f, err := os.Create(fragmentsPath)
		if err != nil {
			return fmt.Errorf("failed to create fragment file: %w", err)
		}
		defer f.Close()

		w := fastawriter.NewWriter(f, m)
		if err := w.WriteResults(res); err != nil {
			return err
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("failed to close fragment file: %w", err)
		}
		logf("Wrote %d fragments to %s", w.Written(), fragmentsPath)
	}

	return nil
}
