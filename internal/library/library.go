// Package library keeps a catalogue of named patterns in SQLite.
//
// Patterns are stored in the ASCII pattern encoding so the database stays
// human-readable with any sqlite client.
package library

import (
	"bytes"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/san-kum/lifesim/internal/grid"
	"github.com/san-kum/lifesim/internal/pattern"
)

// ErrNotFound indicates no pattern is stored under the requested name.
var ErrNotFound = errors.New("library: pattern not found")

const schema = `
CREATE TABLE IF NOT EXISTS patterns (
	name        TEXT PRIMARY KEY,
	description TEXT NOT NULL DEFAULT '',
	rows        INTEGER NOT NULL,
	cols        INTEGER NOT NULL,
	population  INTEGER NOT NULL,
	body        TEXT NOT NULL,
	created_at  INTEGER NOT NULL
);`

type Entry struct {
	Name        string
	Description string
	Rows        int
	Cols        int
	Population  int
	CreatedAt   time.Time
}

type Store struct {
	sqlDB *sql.DB
}

// Open opens (creating if needed) the catalogue at path. ":memory:" gives a
// private in-memory catalogue.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("library path is required")
	}

	dsn := path
	if path != ":memory:" {
		dsn = filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if path == ":memory:" {
		sqlDB.SetMaxOpenConns(1)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Put stores g under name, replacing any previous pattern with that name.
func (s *Store) Put(name, description string, g *grid.Grid) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("pattern name is required")
	}

	var body bytes.Buffer
	if err := pattern.Encode(&body, g, pattern.FormatASCII); err != nil {
		return fmt.Errorf("encode pattern: %w", err)
	}

	_, err := s.sqlDB.Exec(
		`INSERT INTO patterns (name, description, rows, cols, population, body, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET
			description = excluded.description,
			rows = excluded.rows,
			cols = excluded.cols,
			population = excluded.population,
			body = excluded.body,
			created_at = excluded.created_at`,
		name, description, g.Rows(), g.Cols(), g.Population(), body.String(), time.Now().UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("put pattern %s: %w", name, err)
	}
	return nil
}

// Get decodes the pattern stored under name.
func (s *Store) Get(name string) (*grid.Grid, error) {
	var body string
	err := s.sqlDB.QueryRow(`SELECT body FROM patterns WHERE name = ?`, name).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("get pattern %s: %w", name, err)
	}
	return pattern.Decode(strings.NewReader(body), pattern.FormatASCII)
}

// List returns all entries ordered by name.
func (s *Store) List() ([]Entry, error) {
	rows, err := s.sqlDB.Query(
		`SELECT name, description, rows, cols, population, created_at FROM patterns ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list patterns: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e         Entry
			createdAt int64
		)
		if err := rows.Scan(&e.Name, &e.Description, &e.Rows, &e.Cols, &e.Population, &createdAt); err != nil {
			return nil, err
		}
		e.CreatedAt = time.UnixMilli(createdAt).UTC()
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *Store) Delete(name string) error {
	res, err := s.sqlDB.Exec(`DELETE FROM patterns WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("delete pattern %s: %w", name, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return nil
}
