// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/tablestore/store.go
// Summary: SQLite-backed grid model with a bounded row cache.
//
// Rows are loaded a batch at a time so a lazy measurement pass over N rows
// costs one query instead of N*columns.

package tablestore

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/framegrace/texelgrid/texelui/widgets"
)

// ErrClosed is returned by operations on a closed store.
var ErrClosed = errors.New("tablestore: store is closed")

const (
	defaultCacheRows = 4096
	missWindow       = 32 // rows fetched around a cache miss
)

const schema = `
CREATE TABLE IF NOT EXISTS columns (
    idx   INTEGER PRIMARY KEY,
    title TEXT NOT NULL,
    width INTEGER NOT NULL DEFAULT 0,    -- 0 = measure from content
    lexer TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS cells (
    row  INTEGER NOT NULL,
    col  INTEGER NOT NULL,
    text TEXT NOT NULL,
    PRIMARY KEY (row, col)
) WITHOUT ROWID;

CREATE TABLE IF NOT EXISTS macros (
    row  INTEGER PRIMARY KEY,
    text TEXT NOT NULL
);
`

type cachedRow struct {
	cells []string
	macro string
}

// Store serves grid content from a SQLite database.
type Store struct {
	db *sql.DB

	mu      sync.RWMutex
	columns []widgets.Column
	rows    int
	cache   map[int]*cachedRow
	order   []int // insertion order for eviction
	limit   int
	closed  bool
}

var _ widgets.Model = (*Store)(nil)
var _ widgets.Prefetcher = (*Store)(nil)

// Open opens (creating if needed) the database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	dsn := path +
		"?_pragma=journal_mode(WAL)" +
		"&_pragma=synchronous(NORMAL)" +
		"&_pragma=temp_store(MEMORY)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	s := &Store{db: db, limit: defaultCacheRows}
	if err := s.Refresh(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	s.cache = nil
	return s.db.Close()
}

// Refresh reloads the column definitions and row count and drops the cache.
func (s *Store) Refresh() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	rows, err := s.db.Query(`SELECT title, width, lexer FROM columns ORDER BY idx`)
	if err != nil {
		return fmt.Errorf("failed to load columns: %w", err)
	}
	defer rows.Close()
	var cols []widgets.Column
	for rows.Next() {
		var c widgets.Column
		if err := rows.Scan(&c.Title, &c.Width, &c.Lexer); err != nil {
			return fmt.Errorf("failed to scan column: %w", err)
		}
		cols = append(cols, c)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to load columns: %w", err)
	}

	var count int
	if err := s.db.QueryRow(`SELECT COALESCE(MAX(row) + 1, 0) FROM cells`).Scan(&count); err != nil {
		return fmt.Errorf("failed to count rows: %w", err)
	}

	s.columns = cols
	s.rows = count
	s.resetCacheLocked()
	return nil
}

// SetCacheLimit bounds the number of cached rows (minimum one).
func (s *Store) SetCacheLimit(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.limit = max(1, n)
	s.resetCacheLocked()
}

func (s *Store) resetCacheLocked() {
	s.cache = make(map[int]*cachedRow)
	s.order = s.order[:0]
}

// CachedRows returns how many rows are currently cached.
func (s *Store) CachedRows() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.cache)
}

// RowCount implements widgets.Model.
func (s *Store) RowCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rows
}

// Columns implements widgets.Model.
func (s *Store) Columns() []widgets.Column {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.columns
}

// Cell implements widgets.Model. Missing cells read as "".
func (s *Store) Cell(row, col int) string {
	r := s.row(row)
	if r == nil || col < 0 || col >= len(r.cells) {
		return ""
	}
	return r.cells[col]
}

// Macro implements widgets.Model.
func (s *Store) Macro(row int) string {
	r := s.row(row)
	if r == nil {
		return ""
	}
	return r.macro
}

func (s *Store) row(row int) *cachedRow {
	s.mu.RLock()
	r, ok := s.cache[row]
	n, window := s.rows, min(missWindow, s.limit)
	s.mu.RUnlock()
	if ok {
		return r
	}
	if row < 0 || row >= n {
		return nil
	}
	s.Prefetch(row, window)

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cache[row]
}

// Prefetch loads rows [start, start+count) into the cache with one query
// per table. Errors are logged; affected rows read as empty.
func (s *Store) Prefetch(start, count int) {
	if err := s.load(start, count); err != nil {
		log.Printf("TableStore: Failed to load rows [%d,%d): %v", start, start+count, err)
	}
}

func (s *Store) load(start, count int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	start = max(0, start)
	end := min(s.rows, start+count)
	if start >= end {
		return nil
	}

	loaded := make(map[int]*cachedRow, end-start)
	width := len(s.columns)
	for r := start; r < end; r++ {
		if _, ok := s.cache[r]; !ok {
			loaded[r] = &cachedRow{cells: make([]string, width)}
		}
	}
	if len(loaded) == 0 {
		return nil
	}

	rows, err := s.db.Query(`SELECT row, col, text FROM cells WHERE row >= ? AND row < ?`, start, end)
	if err != nil {
		return err
	}
	for rows.Next() {
		var r, c int
		var text string
		if err := rows.Scan(&r, &c, &text); err != nil {
			rows.Close()
			return err
		}
		if cr := loaded[r]; cr != nil && c >= 0 && c < width {
			cr.cells[c] = text
		}
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	rows.Close()

	mrows, err := s.db.Query(`SELECT row, text FROM macros WHERE row >= ? AND row < ?`, start, end)
	if err != nil {
		return err
	}
	defer mrows.Close()
	for mrows.Next() {
		var r int
		var text string
		if err := mrows.Scan(&r, &text); err != nil {
			return err
		}
		if cr := loaded[r]; cr != nil {
			cr.macro = text
		}
	}
	if err := mrows.Err(); err != nil {
		return err
	}

	for r := start; r < end; r++ {
		if cr, ok := loaded[r]; ok {
			s.insertLocked(r, cr)
		}
	}
	return nil
}

func (s *Store) insertLocked(row int, cr *cachedRow) {
	for len(s.order) >= s.limit {
		delete(s.cache, s.order[0])
		s.order = s.order[1:]
	}
	s.cache[row] = cr
	s.order = append(s.order, row)
}

// SetCell writes one cell and updates the cache.
func (s *Store) SetCell(row, col int, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if col < 0 || col >= len(s.columns) || row < 0 {
		return fmt.Errorf("tablestore: cell (%d,%d) outside %d columns", row, col, len(s.columns))
	}
	_, err := s.db.Exec(`INSERT INTO cells(row, col, text) VALUES (?, ?, ?)
		ON CONFLICT(row, col) DO UPDATE SET text = excluded.text`, row, col, text)
	if err != nil {
		return fmt.Errorf("failed to write cell: %w", err)
	}
	if cr, ok := s.cache[row]; ok {
		cr.cells[col] = text
	}
	if row >= s.rows {
		s.rows = row + 1
	}
	return nil
}
