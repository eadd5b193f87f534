// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/tablestore/seed.go
// Summary: Generates demo content with uneven row heights and macro rows.

package tablestore

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/framegrace/texelgrid/texelui/widgets"
)

// DemoColumns is the column layout written by Seed.
var DemoColumns = []widgets.Column{
	{Title: "#", Width: 7},
	{Title: "Name"},
	{Title: "Description", Width: 34},
	{Title: "Snippet", Width: 38, Lexer: widgets.LexerAuto},
	{Title: "Score", Width: 8},
}

var (
	seedNames = []string{
		"aurora", "basalt", "cinder", "delta", "ember", "fjord", "garnet",
		"harbor", "iris", "juniper", "kestrel", "lumen", "meridian", "nimbus",
	}
	seedWords = strings.Fields(`layout measures rows lazily while the viewport
		scrolls through thousands of cells and only the visible ones are
		created reused or released as the window slides across the table`)
	seedSnippets = []string{
		"package main\n\nfunc main() {\n\tprintln(\"hi\")\n}",
		"SELECT row, text\nFROM cells\nWHERE row < 10;",
		"def area(r):\n    return 3.14159 * r * r",
		"#!/bin/sh\necho \"$HOME\"",
		"{\"row\": 1, \"ok\": true}",
		"fn main() {\n    let v = vec![1, 2, 3];\n}",
		"x := 42",
	}
)

// Seed replaces the store content with rows of generated demo data.
// Content is deterministic for a given row count.
func (s *Store) Seed(rows int) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	err := s.seedLocked(rows)
	s.mu.Unlock()
	if err != nil {
		return err
	}
	return s.Refresh()
}

func (s *Store) seedLocked(rows int) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin seed: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range []string{`DELETE FROM columns`, `DELETE FROM cells`, `DELETE FROM macros`} {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("failed to clear tables: %w", err)
		}
	}
	for i, c := range DemoColumns {
		if _, err := tx.Exec(`INSERT INTO columns(idx, title, width, lexer) VALUES (?, ?, ?, ?)`,
			i, c.Title, c.Width, c.Lexer); err != nil {
			return fmt.Errorf("failed to insert column: %w", err)
		}
	}

	cellStmt, err := tx.Prepare(`INSERT INTO cells(row, col, text) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare cell insert: %w", err)
	}
	defer cellStmt.Close()
	macroStmt, err := tx.Prepare(`INSERT INTO macros(row, text) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare macro insert: %w", err)
	}
	defer macroStmt.Close()

	rng := rand.New(rand.NewSource(int64(rows)))
	for r := 0; r < rows; r++ {
		for c, text := range demoRow(rng, r) {
			if _, err := cellStmt.Exec(r, c, text); err != nil {
				return fmt.Errorf("failed to insert cell (%d,%d): %w", r, c, err)
			}
		}
		if r%7 == 0 {
			note := fmt.Sprintf("note %d: %s", r, sentence(rng, 6+rng.Intn(30)))
			if _, err := macroStmt.Exec(r, note); err != nil {
				return fmt.Errorf("failed to insert macro %d: %w", r, err)
			}
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seed: %w", err)
	}
	return nil
}

func demoRow(rng *rand.Rand, r int) []string {
	name := seedNames[rng.Intn(len(seedNames))]
	if rng.Intn(5) == 0 {
		name += "-" + seedNames[rng.Intn(len(seedNames))]
	}
	return []string{
		fmt.Sprintf("%d", r),
		name,
		sentence(rng, 1+rng.Intn(24)),
		seedSnippets[rng.Intn(len(seedSnippets))],
		fmt.Sprintf("%.2f", rng.Float64()*100),
	}
}

func sentence(rng *rand.Rand, words int) string {
	out := make([]string, words)
	for i := range out {
		out[i] = seedWords[rng.Intn(len(seedWords))]
	}
	return strings.Join(out, " ")
}
