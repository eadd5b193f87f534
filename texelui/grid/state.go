// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelui/grid/state.go
// Summary: Snapshot of the last committed render.

package grid

import "sort"

// Geometry is the layout part of a committed render. All slices are
// private copies; the caller's size sequences are never retained.
type Geometry struct {
	// Position is the viewport position actually used, after stale offset
	// correction.
	Position   Position
	ViewWidth  int
	ViewHeight int

	// Sizes of the visible rows/columns, starting at Position.Row/Col.
	RowSizes   []int
	ColSizes   []int
	MacroSizes []int // clamped macro heights aligned with RowSizes

	// Boundaries in viewport coordinates, one more entry than sizes.
	RowBounds []int
	ColBounds []int
}

// RowCount returns the number of visible rows.
func (g *Geometry) RowCount() int { return len(g.RowSizes) }

// ColCount returns the number of visible columns.
func (g *Geometry) ColCount() int { return len(g.ColSizes) }

// Empty reports whether nothing is visible.
func (g *Geometry) Empty() bool { return len(g.RowSizes) == 0 || len(g.ColSizes) == 0 }

// VisibleRows returns the half-open range of visible row indices.
func (g *Geometry) VisibleRows() (first, end int) {
	return g.Position.Row, g.Position.Row + len(g.RowSizes)
}

// VisibleCols returns the half-open range of visible column indices.
func (g *Geometry) VisibleCols() (first, end int) {
	return g.Position.Col, g.Position.Col + len(g.ColSizes)
}

// RowAt returns the absolute row index covering viewport y.
func (g *Geometry) RowAt(y int) (int, bool) {
	i, ok := locate(g.RowBounds, y)
	return g.Position.Row + i, ok
}

// ColAt returns the absolute column index covering viewport x.
func (g *Geometry) ColAt(x int) (int, bool) {
	i, ok := locate(g.ColBounds, x)
	return g.Position.Col + i, ok
}

// RowSpan returns the start and end of an absolute row in viewport coordinates.
func (g *Geometry) RowSpan(row int) (start, end int, ok bool) {
	return span(g.RowBounds, row-g.Position.Row)
}

// ColSpan returns the start and end of an absolute column in viewport coordinates.
func (g *Geometry) ColSpan(col int) (start, end int, ok bool) {
	return span(g.ColBounds, col-g.Position.Col)
}

func span(bounds []int, i int) (int, int, bool) {
	if i < 0 || i+1 >= len(bounds) {
		return 0, 0, false
	}
	return bounds[i], bounds[i+1], true
}

// locate finds i with bounds[i] <= v < bounds[i+1], skipping zero-size elements.
func locate(bounds []int, v int) (int, bool) {
	n := len(bounds) - 1
	if n <= 0 || v < bounds[0] || v >= bounds[n] {
		return 0, false
	}
	i := sort.Search(n, func(i int) bool { return bounds[i+1] > v })
	return i, i < n
}

// RenderedState is the engine's snapshot of its last committed render.
type RenderedState[H comparable] struct {
	Geometry
	Cells  *CellMap[H] // regular cells, keyed by (row, col)
	Macros *CellMap[H] // macro cells, keyed by (row, 0)
}

func emptyState[H comparable]() *RenderedState[H] {
	return &RenderedState[H]{
		Cells:  NewCellMap[H](0, 0, 0, 0),
		Macros: NewCellMap[H](0, 0, 0, 1),
	}
}

// Live returns the number of handles currently placed.
func (s *RenderedState[H]) Live() int {
	return s.Cells.Len() + s.Macros.Len()
}
