// Package sqlite writes search results to a SQLite database
package sqlite

import (
	"database/sql"
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/ChrisMcGann/FragSearch/pkg/core"
	"github.com/ChrisMcGann/FragSearch/pkg/search"
)

const (
	// Date format for RunTable (ISO 8601)
	runDateFormat = time.RFC3339

	// Decimal places kept for stored neutral masses
	massPrecision = 5
)

// Writer stores matched proteins, their digest fragments and one run record.
// Rows are written in a single transaction committed by Finalize.
type Writer struct {
	db         *sql.DB
	tx         *sql.Tx
	outputPath string
	matcher    *search.Matcher
	runID      uuid.UUID

	proteinStmt  *sql.Stmt
	fragmentStmt *sql.Stmt
	proteinID    int
	fragmentID   int
	closed       bool
}

// NewWriter creates the database at outputPath. m decides which fragments
// are flagged as satisfying the query.
func NewWriter(outputPath string, m *search.Matcher) (*Writer, error) {
	db, err := sql.Open("sqlite3", outputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	w := &Writer{
		db:         db,
		outputPath: outputPath,
		matcher:    m,
		runID:      uuid.New(),
	}

	if err := w.createTables(); err != nil {
		db.Close()
		return nil, err
	}

	if w.tx, err = db.Begin(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := w.seedIDs(); err != nil {
		w.tx.Rollback()
		db.Close()
		return nil, err
	}

	if err := w.prepareStatements(); err != nil {
		w.tx.Rollback()
		db.Close()
		return nil, err
	}

	return w, nil
}

// seedIDs continues the id sequences after the rows of earlier runs in the
// same file.
func (w *Writer) seedIDs() error {
	err := w.tx.QueryRow(`SELECT COALESCE(MAX(ProteinId), 0) + 1 FROM ProteinTable`).Scan(&w.proteinID)
	if err != nil {
		return fmt.Errorf("failed to read protein ids: %w", err)
	}
	err = w.tx.QueryRow(`SELECT COALESCE(MAX(FragmentId), 0) + 1 FROM FragmentTable`).Scan(&w.fragmentID)
	if err != nil {
		return fmt.Errorf("failed to read fragment ids: %w", err)
	}
	return nil
}

// RunID identifies the run in every table.
func (w *Writer) RunID() uuid.UUID {
	return w.runID
}

// createTables creates the required database schema
func (w *Writer) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS RunTable (
		RunId TEXT PRIMARY KEY,
		CreationDate TEXT,
		TargetMasses TEXT,
		MassTolerance DOUBLE,
		DigestRule TEXT,
		Alphabet TEXT,
		SearchedSequences INTEGER,
		SkippedSequences INTEGER,
		MatchedSequences INTEGER,
		MatchedFragments INTEGER,
		DigestFragments INTEGER
	);

	CREATE TABLE IF NOT EXISTS ProteinTable (
		ProteinId INTEGER PRIMARY KEY,
		RunId TEXT REFERENCES RunTable(RunId),
		Description TEXT,
		SourceDatabase TEXT,
		Sequence TEXT,
		Length INTEGER,
		NeutralMass DOUBLE,
		MatchCount INTEGER
	);

	CREATE TABLE IF NOT EXISTS FragmentTable (
		FragmentId INTEGER PRIMARY KEY,
		ProteinId INTEGER REFERENCES ProteinTable(ProteinId),
		Ordinal INTEGER,
		Sequence TEXT,
		NeutralMass DOUBLE,
		Satisfies BOOL,
		blobForward BLOB,
		blobReverse BLOB
	);
	`

	_, err := w.db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}

	return nil
}

// prepareStatements prepares SQL statements for batch insertion
func (w *Writer) prepareStatements() error {
	var err error

	w.proteinStmt, err = w.tx.Prepare(`
		INSERT INTO ProteinTable (
			ProteinId, RunId, Description, SourceDatabase, Sequence,
			Length, NeutralMass, MatchCount
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare protein statement: %w", err)
	}

	w.fragmentStmt, err = w.tx.Prepare(`
		INSERT INTO FragmentTable (
			FragmentId, ProteinId, Ordinal, Sequence, NeutralMass,
			Satisfies, blobForward, blobReverse
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare fragment statement: %w", err)
	}

	return nil
}

// WriteResults writes every matched protein in res.
func (w *Writer) WriteResults(res *search.Results) error {
	for i := range res.Matches {
		if err := w.WriteProtein(&res.Matches[i]); err != nil {
			return err
		}
	}
	return nil
}

// WriteProtein writes a protein and one row per digest fragment. Masses are
// NULL when the sequence holds a residue without a mass.
func (w *Writer) WriteProtein(p *core.Protein) error {
	table := w.matcher.Table

	var mass any
	if m, err := table.NeutralMass(p.Sequence); err == nil {
		mass = core.RoundFloat(m, massPrecision)
	}

	_, err := w.proteinStmt.Exec(
		w.proteinID,        // ProteinId
		w.runID.String(),   // RunId
		p.Description,      // Description
		p.Source,           // SourceDatabase
		string(p.Sequence), // Sequence
		len(p.Sequence),    // Length
		mass,               // NeutralMass
		p.MatchCount,       // MatchCount
	)
	if err != nil {
		return fmt.Errorf("failed to insert protein: %w", err)
	}

	for i, frag := range p.Digests {
		var fragMass, forward, reverse any
		if ions, err := table.Ions(frag); err == nil {
			forward = encodeMasses(ions.Forward)
			reverse = encodeMasses(ions.Reverse)
			if m, err := table.NeutralMass(frag); err == nil {
				fragMass = core.RoundFloat(m, massPrecision)
			}
		}

		_, err := w.fragmentStmt.Exec(
			w.fragmentID,              // FragmentId
			w.proteinID,               // ProteinId
			i+1,                       // Ordinal
			string(frag),              // Sequence
			fragMass,                  // NeutralMass
			w.matcher.Satisfies(frag), // Satisfies
			forward,                   // blobForward
			reverse,                   // blobReverse
		)
		if err != nil {
			return fmt.Errorf("failed to insert fragment: %w", err)
		}
		w.fragmentID++
	}

	w.proteinID++
	return nil
}

// encodeMasses encodes masses as a little-endian float64 blob
func encodeMasses(masses []float64) []byte {
	buf := make([]byte, len(masses)*8)
	for i, m := range masses {
		binary.LittleEndian.PutUint64(buf[i*8:], math.Float64bits(m))
	}
	return buf
}

// DecodeMasses reverses the blob encoding used for ion series.
func DecodeMasses(blob []byte) ([]float64, error) {
	if len(blob)%8 != 0 {
		return nil, fmt.Errorf("mass blob length %d is not a multiple of 8", len(blob))
	}
	masses := make([]float64, len(blob)/8)
	for i := range masses {
		masses[i] = math.Float64frombits(binary.LittleEndian.Uint64(blob[i*8:]))
	}
	return masses, nil
}

// Finalize writes the run record for res, commits and closes the database
func (w *Writer) Finalize(res *search.Results) error {
	if w.closed {
		return fmt.Errorf("writer for %s is already closed", w.outputPath)
	}

	masses := make([]string, len(w.matcher.Query.Targets))
	for i, m := range w.matcher.Query.Targets {
		masses[i] = strconv.FormatFloat(m, 'f', -1, 64)
	}

	_, err := w.tx.Exec(`
		INSERT INTO RunTable (
			RunId, CreationDate, TargetMasses, MassTolerance, DigestRule, Alphabet,
			SearchedSequences, SkippedSequences, MatchedSequences, MatchedFragments, DigestFragments
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, w.runID.String(), time.Now().Format(runDateFormat), strings.Join(masses, ","),
		w.matcher.Query.Tolerance, w.matcher.Rule.Name(), w.matcher.Alphabet.Name(),
		res.Searched, res.Skipped, res.MatchedSequences, res.MatchedFragments, res.DigestFragments)
	if err != nil {
		w.Close()
		return fmt.Errorf("failed to insert run: %w", err)
	}

	w.closeStatements()
	if err := w.tx.Commit(); err != nil {
		w.db.Close()
		w.closed = true
		return fmt.Errorf("failed to commit results: %w", err)
	}
	w.tx = nil

	return w.Close()
}

func (w *Writer) closeStatements() {
	if w.proteinStmt != nil {
		w.proteinStmt.Close()
		w.proteinStmt = nil
	}
	if w.fragmentStmt != nil {
		w.fragmentStmt.Close()
		w.fragmentStmt = nil
	}
}

// Close discards anything not yet committed and closes the database. It is
// safe to call after Finalize.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	w.closeStatements()
	if w.tx != nil {
		w.tx.Rollback()
		w.tx = nil
	}

	// Close database
	if err := w.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	return nil
}
