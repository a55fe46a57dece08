package journal

import (
	"database/sql"
	_ "embed"
	"fmt"
	"os"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// Journal is a durable append-only log of dispatched actions.
// Uses SQLite with WAL mode for concurrent read access.
type Journal struct {
	db    *sql.DB
	clock *Clock
	idGen IDGenerator
}

// Option configures a Journal at open time.
type Option func(*Journal)

// WithIDGenerator overrides the entry ID generator. Tests use
// NewFixedGenerator for deterministic IDs; the default is UUIDv7.
func WithIDGenerator(g IDGenerator) Option {
	return func(j *Journal) { j.idGen = g }
}

// Open creates or opens a journal database at the given path.
// Applies required pragmas and the schema automatically, and resumes the
// logical clock from the highest persisted seq.
//
// This function is idempotent - safe to call multiple times.
func Open(path string, opts ...Option) (*Journal, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite supports one writer at a time; a single connection avoids
	// SQLITE_BUSY under concurrent appends.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	var lastSeq sql.NullInt64
	if err := db.QueryRow(`SELECT MAX(seq) FROM entries`).Scan(&lastSeq); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to read last seq: %w", err)
	}

	j := &Journal{
		db:    db,
		clock: NewClockAt(lastSeq.Int64),
		idGen: UUIDv7Generator{},
	}
	for _, opt := range opts {
		opt(j)
	}

	return j, nil
}

// OpenExisting opens a journal database that must already exist.
// Unlike Open, a missing path is an error rather than a fresh journal;
// read-side tooling uses this to avoid creating empty databases.
func OpenExisting(path string, opts ...Option) (*Journal, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("journal does not exist: %w", err)
	}
	return Open(path, opts...)
}

// Close closes the database connection.
func (j *Journal) Close() error {
	if j.db == nil {
		return nil
	}
	return j.db.Close()
}

// applyPragmas sets required SQLite configuration.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}

	return nil
}
