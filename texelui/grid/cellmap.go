// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelui/grid/cellmap.go
// Summary: Dense (row, col) -> cell handle lookup over a fixed window.

package grid

import "fmt"

// WindowError is the panic value raised for out-of-window access. The
// window always matches the visible extent, so such an access is a bug in
// the caller rather than bad input.
type WindowError struct {
	Row, Col int
	Window   Window
}

func (e *WindowError) Error() string {
	return fmt.Sprintf("grid: cell (%d,%d) outside window rows [%d,%d) cols [%d,%d)",
		e.Row, e.Col,
		e.Window.Row, e.Window.Row+e.Window.Rows,
		e.Window.Col, e.Window.Col+e.Window.Cols)
}

// Window is a rectangle of absolute row/column indices.
type Window struct {
	Row, Col   int // first row and column
	Rows, Cols int // extent
}

// Contains reports whether the absolute coordinate is inside the window.
func (w Window) Contains(row, col int) bool {
	return row >= w.Row && row < w.Row+w.Rows && col >= w.Col && col < w.Col+w.Cols
}

// CellMap remembers the handle placed at each (row, col) of a window.
type CellMap[H comparable] struct {
	win   Window
	slots []H
	used  []bool
	count int
}

// NewCellMap creates an empty map over the given window. Negative extents
// are treated as zero.
func NewCellMap[H comparable](rowOffset, colOffset, rows, cols int) *CellMap[H] {
	rows, cols = max(0, rows), max(0, cols)
	return &CellMap[H]{
		win:   Window{Row: rowOffset, Col: colOffset, Rows: rows, Cols: cols},
		slots: make([]H, rows*cols),
		used:  make([]bool, rows*cols),
	}
}

// Window returns the map's bounds.
func (m *CellMap[H]) Window() Window { return m.win }

// Len returns the number of occupied slots.
func (m *CellMap[H]) Len() int { return m.count }

// Contains reports whether (row, col) lies inside the window.
func (m *CellMap[H]) Contains(row, col int) bool { return m.win.Contains(row, col) }

func (m *CellMap[H]) index(row, col int) int {
	if !m.win.Contains(row, col) {
		panic(&WindowError{Row: row, Col: col, Window: m.win})
	}
	return (row-m.win.Row)*m.win.Cols + (col - m.win.Col)
}

// Set stores h at (row, col), replacing any previous handle.
func (m *CellMap[H]) Set(row, col int, h H) {
	i := m.index(row, col)
	if !m.used[i] {
		m.count++
	}
	m.slots[i] = h
	m.used[i] = true
}

// Get returns the handle at (row, col) and whether the slot is occupied.
func (m *CellMap[H]) Get(row, col int) (H, bool) {
	i := m.index(row, col)
	return m.slots[i], m.used[i]
}

// Delete empties the slot at (row, col).
func (m *CellMap[H]) Delete(row, col int) {
	i := m.index(row, col)
	if m.used[i] {
		m.count--
	}
	var zero H
	m.slots[i] = zero
	m.used[i] = false
}

// Visit calls fn for every slot in row-major order, including empty ones.
func (m *CellMap[H]) Visit(fn func(row, col int, h H, ok bool)) {
	for i := range m.slots {
		row := m.win.Row + i/max(1, m.win.Cols)
		col := m.win.Col + i%max(1, m.win.Cols)
		fn(row, col, m.slots[i], m.used[i])
	}
}

// Handles returns the occupied handles in row-major order.
func (m *CellMap[H]) Handles() []H {
	out := make([]H, 0, m.count)
	for i, ok := range m.used {
		if ok {
			out = append(out, m.slots[i])
		}
	}
	return out
}

// Clone returns an independent copy of the map.
func (m *CellMap[H]) Clone() *CellMap[H] {
	c := &CellMap[H]{win: m.win, count: m.count}
	c.slots = append([]H(nil), m.slots...)
	c.used = append([]bool(nil), m.used...)
	return c
}
