package kv

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// DBFile is the file name of the state database inside the data directory.
const DBFile = "state.db"

// SQLite is a Store backed by a single sqlite table.
type SQLite struct {
	db      *sql.DB
	dataDir string
}

// OpenSQLite opens (creating if needed) the state database in dataDir.
func OpenSQLite(dataDir string) (*SQLite, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	db, err := sql.Open("sqlite3", filepath.Join(dataDir, DBFile))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &SQLite{
		db:      db,
		dataDir: dataDir,
	}
	if err := s.init(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize state store: %w", err)
	}

	return s, nil
}

// init creates the database schema
func (s *SQLite) init() error {
	schema := `
	CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Get implements Store.
func (s *SQLite) Get(key string) (string, bool, error) {
	if s.db == nil {
		return "", false, ErrClosed
	}

	var value string
	err := s.db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// Set implements Store.
func (s *SQLite) Set(key, value string) error {
	if s.db == nil {
		return ErrClosed
	}

	query := `
	INSERT OR REPLACE INTO kv (key, value, updated_at)
	VALUES (?, ?, ?)
	`
	_, err := s.db.Exec(query, key, value, time.Now())
	return err
}

// Path returns the database file location.
func (s *SQLite) Path() string {
	return filepath.Join(s.dataDir, DBFile)
}

// Close closes the database connection
func (s *SQLite) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}
