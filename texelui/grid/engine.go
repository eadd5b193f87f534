// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelui/grid/engine.go
// Summary: Layout, measurement and cell reconciliation for virtualized grids.
// Usage: A widget owns one Engine per grid and calls Render whenever the
// viewport position, sizes or surface dimensions change.
// Notes: The engine is not safe for concurrent or re-entrant use; callers
// serialize renders (typically one per frame).

package grid

import (
	"errors"
	"fmt"
	"log"

	"github.com/framegrace/texelgrid/config"
	"github.com/framegrace/texelgrid/texelui/core"
)

var (
	ErrInvalidPosition = errors.New("grid: invalid viewport position")
	ErrSizeMismatch    = errors.New("grid: macro sizes not aligned with row sizes")
	ErrStaleOffset     = errors.New("grid: pixel offset exceeds first visible size")
	ErrReentrant       = errors.New("grid: render called from inside a render callback")
	ErrNoPrepare       = errors.New("grid: prepare callback is required")
	ErrDuplicateHandle = errors.New("grid: prepare returned a handle already placed in this pass")
)

// Position is the logical scroll location: the first visible row and
// column, and how far each is scrolled past its start.
type Position struct {
	Row, Col             int
	RowOffset, ColOffset int
}

// Validate rejects negative indices and offsets.
func (p Position) Validate() error {
	if p.Row < 0 || p.Col < 0 {
		return fmt.Errorf("%w: negative index (%d,%d)", ErrInvalidPosition, p.Row, p.Col)
	}
	if p.RowOffset < 0 || p.ColOffset < 0 {
		return fmt.Errorf("%w: negative offset (%d,%d)", ErrInvalidPosition, p.RowOffset, p.ColOffset)
	}
	return nil
}

// CellType distinguishes regular cells from per-row macro cells.
type CellType int

const (
	// CellRegular occupies the top part of a row at a column intersection.
	CellRegular CellType = iota
	// CellMacro spans the bottom slice of a row; its column is always 0.
	CellMacro
)

func (t CellType) String() string {
	if t == CellMacro {
		return "macro"
	}
	return "regular"
}

// Surface reports the current viewport size. It is queried on every render.
type Surface interface {
	ViewportSize() (w, h int)
}

// PrepareFunc returns the handle for a cell, positioned at rect. prev is
// the handle placed at the same coordinate by the previous render, when
// hasPrev is true; returning it reuses it. Returning a different handle
// makes the engine release prev.
type PrepareFunc[H comparable] func(kind CellType, row, col int, rect core.Rect, prev H, hasPrev bool) H

// ReleaseFunc receives handles that are no longer placed.
type ReleaseFunc[H comparable] func(h H)

// Params bundles the inputs of one render pass.
type Params[H comparable] struct {
	Position Position

	RowSizes   []int
	ColSizes   []int
	MacroSizes []int // optional, aligned with RowSizes

	Measure MeasureFunc    // optional when all visible sizes are resolved
	Prepare PrepareFunc[H] // required
	Release ReleaseFunc[H] // optional; nil leaves handle lifetime to the caller
}

// Options tune the engine.
type Options struct {
	// Batch caps the number of entries per measurement request.
	Batch int
	// MacroWidth is the width of macro cells; 0 uses the viewport width.
	MacroWidth int
	// StrictOffsets rejects a stale pixel offset with ErrStaleOffset
	// instead of resetting it to zero.
	StrictOffsets bool
	// Debug logs measurement requests.
	Debug bool
}

// DefaultOptions returns the built-in engine options.
func DefaultOptions() Options {
	return Options{Batch: DefaultBatch}
}

// OptionsFromConfig reads the "grid" section of cfg.
func OptionsFromConfig(cfg config.Config) Options {
	opts := DefaultOptions()
	opts.Batch = cfg.GetInt("grid", "measure_batch", opts.Batch)
	if opts.Batch <= 0 {
		opts.Batch = DefaultBatch
	}
	opts.MacroWidth = max(0, cfg.GetInt("grid", "macro_width", 0))
	opts.StrictOffsets = cfg.GetBool("grid", "strict_offsets", false)
	opts.Debug = cfg.GetBool("grid", "debug", false)
	return opts
}

// Engine lays out and reconciles the cells of one grid.
type Engine[H comparable] struct {
	surface Surface
	opts    Options
	state   *RenderedState[H]
	events  dispatcher
	busy    bool
}

// New creates an engine drawing onto surface.
func New[H comparable](surface Surface, opts Options) *Engine[H] {
	if opts.Batch <= 0 {
		opts.Batch = DefaultBatch
	}
	return &Engine[H]{
		surface: surface,
		opts:    opts,
		state:   emptyState[H](),
	}
}

// Options returns the engine options.
func (e *Engine[H]) Options() Options { return e.opts }

// State returns the last committed render. It is replaced, never mutated,
// by later renders; callers must not modify it.
func (e *Engine[H]) State() *RenderedState[H] { return e.state }

// Subscribe registers l for render and clear events.
func (e *Engine[H]) Subscribe(l Listener) { e.events.subscribe(l) }

// Unsubscribe removes l.
func (e *Engine[H]) Unsubscribe(l Listener) { e.events.unsubscribe(l) }

// pass holds the working data of a single render.
type pass[H comparable] struct {
	params   *Params[H]
	prevCell *CellMap[H]
	prevMac  *CellMap[H]
	cells    *CellMap[H]
	macros   *CellMap[H]
	placed   map[H]struct{}
	created  []H // handles that did not come from the previous render
	replaced []H // previous handles superseded by a different one
}

// Render lays out the visible part of the grid, asks Prepare for a handle
// per visible cell and releases handles that are no longer needed.
//
// Stale offsets (an offset not smaller than the first visible element's
// size) are reset to zero for rows and columns alike, unless
// Options.StrictOffsets is set. On error nothing is committed and the
// previous state stays current.
func (e *Engine[H]) Render(p Params[H]) error {
	if e.busy {
		return ErrReentrant
	}
	e.busy = true
	defer func() { e.busy = false }()

	if p.Prepare == nil {
		return ErrNoPrepare
	}
	pos := p.Position
	if err := pos.Validate(); err != nil {
		return err
	}
	if pos.Row > len(p.RowSizes) || pos.Col > len(p.ColSizes) {
		return fmt.Errorf("%w: (%d,%d) beyond %dx%d grid", ErrInvalidPosition,
			pos.Row, pos.Col, len(p.RowSizes), len(p.ColSizes))
	}
	if p.MacroSizes != nil && len(p.MacroSizes) != len(p.RowSizes) {
		return fmt.Errorf("%w: %d macro sizes for %d rows", ErrSizeMismatch, len(p.MacroSizes), len(p.RowSizes))
	}

	vw, vh := e.surface.ViewportSize()
	vw, vh = max(0, vw), max(0, vh)

	measureRows := e.measurer(p.Measure, AxisRows)
	measureCols := e.measurer(p.Measure, AxisCols)

	var err error
	if pos.RowOffset, err = e.checkOffset(p.RowSizes, pos.Row, pos.RowOffset, measureRows, AxisRows); err != nil {
		return err
	}
	if pos.ColOffset, err = e.checkOffset(p.ColSizes, pos.Col, pos.ColOffset, measureCols, AxisCols); err != nil {
		return err
	}

	rows, _, err := scanSpan(p.RowSizes, p.MacroSizes, pos.Row, pos.RowOffset+vh, measureRows, e.opts.Batch)
	if err != nil {
		return fmt.Errorf("scan rows: %w", err)
	}
	cols, _, err := scanSpan(p.ColSizes, nil, pos.Col, pos.ColOffset+vw, measureCols, e.opts.Batch)
	if err != nil {
		return fmt.Errorf("scan cols: %w", err)
	}
	if vh == 0 {
		rows = Span{Start: pos.Row}
	}
	if vw == 0 {
		cols = Span{Start: pos.Col}
	}

	macroSizes := make([]int, rows.Len())
	for i, size := range rows.Sizes {
		if rows.Aux != nil {
			macroSizes[i] = min(rows.Aux[i], max(0, size))
		}
	}

	geo := Geometry{
		Position:   pos,
		ViewWidth:  vw,
		ViewHeight: vh,
		RowSizes:   rows.Sizes,
		ColSizes:   cols.Sizes,
		MacroSizes: macroSizes,
		RowBounds:  Integrate(-pos.RowOffset, rows.Sizes),
		ColBounds:  Integrate(-pos.ColOffset, cols.Sizes),
	}

	ps := &pass[H]{
		params:   &p,
		prevCell: e.state.Cells.Clone(),
		prevMac:  e.state.Macros.Clone(),
		cells:    NewCellMap[H](pos.Row, pos.Col, rows.Len(), cols.Len()),
		macros:   NewCellMap[H](pos.Row, 0, rows.Len(), 1),
		placed:   make(map[H]struct{}),
	}
	if err := e.layout(ps, &geo); err != nil {
		e.abort(ps)
		return err
	}

	e.releaseLeftovers(ps)
	e.state = &RenderedState[H]{Geometry: geo, Cells: ps.cells, Macros: ps.macros}
	e.events.broadcast(Event{Type: EventRendered, Geometry: &e.state.Geometry})
	return nil
}

// layout walks visible rows top to bottom and, within each, columns left
// to right, then the row's macro cell.
func (e *Engine[H]) layout(ps *pass[H], geo *Geometry) error {
	macroWidth := e.opts.MacroWidth
	if macroWidth <= 0 {
		macroWidth = geo.ViewWidth
	}
	for r, rowSize := range geo.RowSizes {
		row := geo.Position.Row + r
		rowSize = max(0, rowSize)
		macro := geo.MacroSizes[r]
		y := geo.RowBounds[r]

		for c, colSize := range geo.ColSizes {
			rect := core.Rect{X: geo.ColBounds[c], Y: y, W: max(0, colSize), H: rowSize - macro}
			if rect.Empty() {
				continue
			}
			if err := e.place(ps, CellRegular, row, geo.Position.Col+c, rect); err != nil {
				return err
			}
		}

		if macro > 0 && macroWidth > 0 {
			rect := core.Rect{X: 0, Y: y + rowSize - macro, W: macroWidth, H: macro}
			if err := e.place(ps, CellMacro, row, 0, rect); err != nil {
				return err
			}
		}
	}
	return nil
}

// place runs the reuse protocol for one cell.
func (e *Engine[H]) place(ps *pass[H], kind CellType, row, col int, rect core.Rect) error {
	prev, next := ps.prevCell, ps.cells
	if kind == CellMacro {
		prev, next = ps.prevMac, ps.macros
	}

	var old H
	hasOld := false
	if prev.Contains(row, col) {
		old, hasOld = prev.Get(row, col)
	}

	h := ps.params.Prepare(kind, row, col, rect, old, hasOld)
	if _, dup := ps.placed[h]; dup {
		return fmt.Errorf("%w: %s cell (%d,%d)", ErrDuplicateHandle, kind, row, col)
	}
	next.Set(row, col, h)
	ps.placed[h] = struct{}{}

	if hasOld {
		prev.Delete(row, col)
		if h != old {
			ps.replaced = append(ps.replaced, old)
		}
	}
	if !hasOld || h != old {
		ps.created = append(ps.created, h)
	}
	return nil
}

// releaseLeftovers releases superseded handles and every handle of the
// previous render that was not claimed again, each exactly once. Handles
// placed by this pass are never released.
func (e *Engine[H]) releaseLeftovers(ps *pass[H]) {
	release := ps.params.Release
	if release == nil {
		return
	}
	done := make(map[H]struct{})
	drop := func(h H) {
		if _, live := ps.placed[h]; live {
			return
		}
		if _, seen := done[h]; seen {
			return
		}
		done[h] = struct{}{}
		release(h)
	}
	for _, h := range ps.replaced {
		drop(h)
	}
	visit := func(_, _ int, h H, ok bool) {
		if ok {
			drop(h)
		}
	}
	ps.prevCell.Visit(visit)
	ps.prevMac.Visit(visit)
}

// abort hands back handles created by a failed pass that the committed
// state does not reference.
func (e *Engine[H]) abort(ps *pass[H]) {
	release := ps.params.Release
	if release == nil {
		return
	}
	committed := make(map[H]struct{}, e.state.Live())
	for _, h := range e.state.Cells.Handles() {
		committed[h] = struct{}{}
	}
	for _, h := range e.state.Macros.Handles() {
		committed[h] = struct{}{}
	}
	for _, h := range ps.created {
		if _, keep := committed[h]; !keep {
			committed[h] = struct{}{}
			release(h)
		}
	}
}

// checkOffset resolves the first visible element and applies the stale
// offset policy.
func (e *Engine[H]) checkOffset(sizes []int, index, offset int, measure func(start, count int), axis Axis) (int, error) {
	if offset == 0 {
		return 0, nil
	}
	size := 0
	if index < len(sizes) {
		if sizes[index] < 0 {
			if err := resolve(sizes, index, true, measure, e.opts.Batch); err != nil {
				return 0, fmt.Errorf("scan %s: %w", axis, err)
			}
		}
		size = sizes[index]
	}
	if offset < size {
		return offset, nil
	}
	if e.opts.StrictOffsets {
		return 0, fmt.Errorf("%w: %s %d offset %d size %d", ErrStaleOffset, axis, index, offset, size)
	}
	log.Printf("Grid: Stale %s offset %d for index %d (size %d), resetting to 0", axis, offset, index, size)
	return 0, nil
}

// measurer binds the caller's measure callback to one axis. A nil callback
// stays nil so the scanner reports unresolved sizes.
func (e *Engine[H]) measurer(fn MeasureFunc, axis Axis) func(start, count int) {
	if fn == nil {
		return nil
	}
	return func(start, count int) {
		if e.opts.Debug {
			log.Printf("Grid: Measuring %s [%d,%d)", axis, start, start+count)
		}
		fn(axis, start, count)
	}
}

// Clear releases every placed handle, resets the state and notifies
// listeners. release may be nil when the caller tracks handles itself.
func (e *Engine[H]) Clear(release ReleaseFunc[H]) error {
	if e.busy {
		return ErrReentrant
	}
	e.busy = true
	defer func() { e.busy = false }()

	if release != nil {
		done := make(map[H]struct{}, e.state.Live())
		for _, m := range []*CellMap[H]{e.state.Cells, e.state.Macros} {
			for _, h := range m.Handles() {
				if _, seen := done[h]; seen {
					continue
				}
				done[h] = struct{}{}
				release(h)
			}
		}
	}
	e.state = emptyState[H]()
	e.events.broadcast(Event{Type: EventCleared, Geometry: &e.state.Geometry})
	return nil
}
