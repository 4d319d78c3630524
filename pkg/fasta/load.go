package fasta

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/ChrisMcGann/FragSearch/pkg/core"
)

// Database is the ordered protein collection read from one file.
type Database struct {
	Path     string
	Proteins []core.Protein

	// Timings for diagnostics
	ReadTime  time.Duration
	ParseTime time.Duration
}

// LoadError reports a failure to open or read a database file. It always
// aborts the load.
type LoadError struct {
	Path string
	Op   string // open, stat, read, decompress
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Load reads the file at path into memory and parses it with the given number
// of workers. Paths ending in .gz are decompressed first.
func Load(path string, workers int) (*Database, error) {
	start := time.Now()
	buf, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	read := time.Since(start)

	start = time.Now()
	proteins := Parse(path, buf, workers)

	return &Database{
		Path:      path,
		Proteins:  proteins,
		ReadTime:  read,
		ParseTime: time.Since(start),
	}, nil
}

// LoadAll loads every path in order. The first failure aborts the whole load
// and no databases are returned.
func LoadAll(paths []string, workers int) ([]*Database, error) {
	dbs := make([]*Database, 0, len(paths))
	for _, path := range paths {
		db, err := Load(path, workers)
		if err != nil {
			return nil, err
		}
		dbs = append(dbs, db)
	}
	return dbs, nil
}

// ReadFile returns the full contents of path, decompressing .gz files.
func ReadFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Op: "open", Err: err}
	}
	defer f.Close()

	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, &LoadError{Path: path, Op: "decompress", Err: err}
		}
		defer gz.Close()

		buf, err := io.ReadAll(gz)
		if err != nil {
			return nil, &LoadError{Path: path, Op: "decompress", Err: err}
		}
		return buf, nil
	}

	info, err := f.Stat()
	if err != nil {
		return nil, &LoadError{Path: path, Op: "stat", Err: err}
	}
	if info.IsDir() {
		return nil, &LoadError{Path: path, Op: "read", Err: fmt.Errorf("is a directory")}
	}

	// A file that shrinks between stat and read is a short read
	buf := make([]byte, info.Size())
	if _, err := io.ReadFull(f, buf); err != nil {
		return nil, &LoadError{Path: path, Op: "read", Err: fmt.Errorf("read fewer than %d bytes: %w", len(buf), err)}
	}
	return buf, nil
}
