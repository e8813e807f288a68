package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	// Postgres driver registered as "pgx".
	_ "github.com/jackc/pgx/v5/stdlib"
	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Driver names a supported database backend.
type Driver string

const (
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
)

// ErrNotFound is returned when a lookup by key matches no row.
var ErrNotFound = errors.New("not found")

// Store owns the database handle and hands out repositories over it.
type Store struct {
	db        *sql.DB
	driver    Driver
	builder   *entsql.DialectBuilder
	answerSeq *sequenceCounter
}

// Open connects to the database, applies backend tuning and runs pending
// migrations.
func Open(driver Driver, dsn string) (*Store, error) {
	var (
		sqlDriver string
		dialectID string
	)
	switch driver {
	case DriverSQLite, "":
		driver, sqlDriver, dialectID = DriverSQLite, "sqlite", dialect.SQLite
	case DriverPostgres:
		sqlDriver, dialectID = "pgx", dialect.Postgres
	default:
		return nil, fmt.Errorf("unknown database driver %q", driver)
	}

	db, err := sql.Open(sqlDriver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if driver == DriverSQLite {
		// One connection keeps per-connection pragmas and in-memory
		// databases consistent.
		db.SetMaxOpenConns(1)
		if err := applyPragmas(db); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply pragmas: %w", err)
		}
	} else if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := migrate(db, driver); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &Store{
		db:        db,
		driver:    driver,
		builder:   entsql.Dialect(dialectID),
		answerSeq: &sequenceCounter{db: db},
	}, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Driver returns the backend this store is connected to.
func (s *Store) Driver() Driver {
	return s.driver
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// ReviewRepo returns a ReviewRepo backed by this store.
func (s *Store) ReviewRepo() ReviewRepo {
	return &reviewRepo{db: s.db, b: s.builder}
}

// AnswerRepo returns an AnswerLogRepo backed by this store.
func (s *Store) AnswerRepo() AnswerLogRepo {
	return &answerRepo{db: s.db, b: s.builder, seq: s.answerSeq}
}

// RunRepo returns a RunRepo backed by this store.
func (s *Store) RunRepo() RunRepo {
	return &runRepo{db: s.db, b: s.builder}
}

// CardRepo returns a CardRepo backed by this store.
func (s *Store) CardRepo() CardRepo {
	return &cardRepo{db: s.db, b: s.builder}
}

// VocabularyRepo returns a VocabularyRepo backed by this store.
func (s *Store) VocabularyRepo() VocabularyRepo {
	return &vocabularyRepo{db: s.db, b: s.builder}
}

// PlayRepo returns a PlayRepo backed by this store.
func (s *Store) PlayRepo() PlayRepo {
	return &playRepo{db: s.db, b: s.builder}
}

// EventRepo returns an EventRepo backed by this store.
func (s *Store) EventRepo() EventRepo {
	return &eventRepo{db: s.db, b: s.builder}
}

// applyPragmas configures SQLite for optimal single-user performance.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. CLOSER_DB environment variable
// 2. $XDG_DATA_HOME/closer/closer.db
// 3. ~/.local/share/closer/closer.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("CLOSER_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "closer", "closer.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of a database file path. DSNs
// that are not plain paths are left alone.
func EnsureDir(path string) error {
	if strings.HasPrefix(path, "file:") || strings.Contains(path, "://") {
		return nil
	}
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
