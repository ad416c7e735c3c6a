package store

import (
	"database/sql"
	"fmt"

	"entgo.io/ent/dialect"
)

// Column types differ only in the sequence key and the float type.
var ddl = map[string][]string{
	dialect.SQLite: {
		`CREATE TABLE IF NOT EXISTS attempts (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			question_id TEXT NOT NULL,
			category TEXT NOT NULL,
			question_text TEXT NOT NULL,
			method TEXT NOT NULL,
			answer TEXT NOT NULL,
			score REAL,
			matched INTEGER NOT NULL,
			created_at_ms INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS attempts_category ON attempts (category)`,
		`CREATE TABLE IF NOT EXISTS oracle_calls (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			provider TEXT NOT NULL,
			model TEXT NOT NULL,
			latency_ms INTEGER NOT NULL,
			success INTEGER NOT NULL,
			error_message TEXT NOT NULL,
			score REAL,
			created_at_ms INTEGER NOT NULL
		)`,
	},
	dialect.Postgres: {
		`CREATE TABLE IF NOT EXISTS attempts (
			seq BIGSERIAL PRIMARY KEY,
			session_id TEXT NOT NULL,
			question_id TEXT NOT NULL,
			category TEXT NOT NULL,
			question_text TEXT NOT NULL,
			method TEXT NOT NULL,
			answer TEXT NOT NULL,
			score DOUBLE PRECISION,
			matched INTEGER NOT NULL,
			created_at_ms BIGINT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS attempts_category ON attempts (category)`,
		`CREATE TABLE IF NOT EXISTS oracle_calls (
			seq BIGSERIAL PRIMARY KEY,
			provider TEXT NOT NULL,
			model TEXT NOT NULL,
			latency_ms INTEGER NOT NULL,
			success INTEGER NOT NULL,
			error_message TEXT NOT NULL,
			score DOUBLE PRECISION,
			created_at_ms BIGINT NOT NULL
		)`,
	},
}

func migrate(db *sql.DB, d string) error {
	stmts, ok := ddl[d]
	if !ok {
		return fmt.Errorf("unsupported dialect %q", d)
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
