package storage

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// New opens a SQLite database connection at the given path.
// It enables foreign keys and sets connection pool settings.
func New(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	// Enable foreign keys (disabled by default in SQLite)
	if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		_ = db.Close()
		return nil, err
	}

	// Set connection pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	// Verify connection
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// Migrate runs database migrations to create the required tables.
// It is idempotent and can be run multiple times safely.
func Migrate(db *sql.DB) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS passages (
			id TEXT PRIMARY KEY,
			source_type TEXT NOT NULL,
			content TEXT NOT NULL,
			metadata TEXT NOT NULL DEFAULT '{}',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE INDEX IF NOT EXISTS idx_passages_source_type ON passages (source_type);`,
		`CREATE TABLE IF NOT EXISTS eval_runs (
			id TEXT PRIMARY KEY,
			mode TEXT NOT NULL,
			top_k INTEGER NOT NULL,
			hit_rate REAL NOT NULL,
			mrr REAL NOT NULL,
			item_count INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS eval_results (
			run_id TEXT NOT NULL,
			position INTEGER NOT NULL,
			query TEXT NOT NULL,
			expected_doc_id TEXT NOT NULL,
			returned_ids TEXT NOT NULL DEFAULT '[]',
			rank INTEGER NOT NULL,
			hit INTEGER NOT NULL DEFAULT 0,
			reciprocal_rank REAL NOT NULL DEFAULT 0,
			PRIMARY KEY (run_id, position),
			FOREIGN KEY (run_id) REFERENCES eval_runs(id) ON DELETE CASCADE
		);`,
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	return nil
}
