package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"entgo.io/ent/dialect"

	// Postgres driver registered as "pgx".
	_ "github.com/jackc/pgx/v5/stdlib"
	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store holds the database handle and provides access to repositories.
type Store struct {
	db      *sql.DB
	dialect string
}

// Open connects to the history database at dsn and creates the tables.
// A DSN starting with postgres:// or postgresql:// selects Postgres;
// anything else is treated as a SQLite path or URI.
func Open(dsn string) (*Store, error) {
	d, driver := dialectFor(dsn)

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if d == dialect.SQLite {
		if err := applyPragmas(db); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply pragmas: %w", err)
		}
	}

	if err := migrate(db, d); err != nil {
		db.Close()
		return nil, fmt.Errorf("auto-migrate: %w", err)
	}

	return &Store{db: db, dialect: d}, nil
}

func dialectFor(dsn string) (d, driver string) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return dialect.Postgres, "pgx"
	}
	return dialect.SQLite, "sqlite"
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Dialect reports the ent dialect name of the connection.
func (s *Store) Dialect() string {
	return s.dialect
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// AttemptRepo returns an AttemptRepo backed by this store.
func (s *Store) AttemptRepo() AttemptRepo {
	return &attemptRepo{db: s.db, dialect: s.dialect}
}

// OracleCallRepo returns an OracleCallRepo backed by this store.
func (s *Store) OracleCallRepo() OracleCallRepo {
	return &oracleCallRepo{db: s.db, dialect: s.dialect}
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

// DefaultDBPath resolves the history database path in priority order:
// 1. IPRACTICE_DB environment variable
// 2. $XDG_DATA_HOME/interview-practice/history.db
// 3. ~/.local/share/interview-practice/history.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("IPRACTICE_DB"); p != "" {
		if isPostgres(p) {
			return p, nil
		}
		return p, ensureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "interview-practice", "history.db")
	return p, ensureDir(p)
}

func isPostgres(dsn string) bool {
	d, _ := dialectFor(dsn)
	return d == dialect.Postgres
}

// ensureDir creates the parent directory of path if it doesn't exist.
func ensureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}

// ResolveDSN returns dsn when set, creating the parent directory of a
// SQLite path, and DefaultDBPath otherwise.
func ResolveDSN(dsn string) (string, error) {
	if dsn == "" {
		return DefaultDBPath()
	}
	if isPostgres(dsn) || strings.HasPrefix(dsn, "file:") {
		return dsn, nil
	}
	return dsn, ensureDir(dsn)
}
