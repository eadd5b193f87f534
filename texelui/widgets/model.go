// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelui/widgets/model.go
// Summary: Data source contract for GridView plus an in-memory implementation.

package widgets

// Column describes one grid column.
type Column struct {
	Title string
	// Width in cells including the one-cell gap; 0 measures it from content.
	Width int
	// Lexer selects syntax highlighting: "" for plain text, "auto" to
	// detect the language from the cell content, or a chroma lexer name
	// or file name.
	Lexer string
}

// Model supplies grid content. Implementations are called from the UI
// goroutine only.
type Model interface {
	RowCount() int
	Columns() []Column
	Cell(row, col int) string
	// Macro returns the text shown under the row across the full width,
	// or "" when the row has none.
	Macro(row int) string
}

// Prefetcher is implemented by models that can load a batch of rows at
// once. GridView calls it before measuring a batch.
type Prefetcher interface {
	Prefetch(start, count int)
}

// SliceModel is a Model backed by in-memory slices.
type SliceModel struct {
	Cols   []Column
	Rows   [][]string
	Macros map[int]string
}

func (m *SliceModel) RowCount() int     { return len(m.Rows) }
func (m *SliceModel) Columns() []Column { return m.Cols }
func (m *SliceModel) Macro(row int) string {
	return m.Macros[row]
}

func (m *SliceModel) Cell(row, col int) string {
	if row < 0 || row >= len(m.Rows) {
		return ""
	}
	r := m.Rows[row]
	if col < 0 || col >= len(r) {
		return ""
	}
	return r[col]
}
