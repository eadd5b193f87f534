// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelui/resize/tracker.go
// Summary: Drag handles on row and column boundaries of a rendered grid.
// Usage: Subscribe a Tracker to a grid engine and forward mouse events; it
// reports size changes through OnChange and leaves applying them to the owner.

package resize

import (
	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelgrid/config"
	"github.com/framegrace/texelgrid/texelui/grid"
)

// Handle is the trailing edge of one visible row or column.
type Handle struct {
	Axis  grid.Axis
	Index int // absolute row or column index
	Pos   int // viewport coordinate of the edge (last cell of the element)
	Start int // viewport coordinate where the element starts
}

// SizeChange is emitted while a handle is dragged.
type SizeChange struct {
	Axis  grid.Axis
	Index int
	Size  int
}

// Tracker finds draggable boundaries in the last rendered geometry and
// turns drags into size changes. It is driven from the UI goroutine.
type Tracker struct {
	// Tolerance widens the hit area around an edge, in cells.
	Tolerance int
	// MinSize is the smallest size a drag can produce.
	MinSize int
	// OriginX and OriginY locate the grid's top-left corner on screen.
	OriginX, OriginY int
	// OnChange receives size changes; nil discards them.
	OnChange func(SizeChange)

	rows []Handle
	cols []Handle

	dragging bool
	active   Handle
	last     int
}

// NewTracker returns a tracker with a minimum size of one cell.
func NewTracker(onChange func(SizeChange)) *Tracker {
	return &Tracker{MinSize: 1, OnChange: onChange}
}

// Configure applies the "resize" section of cfg.
func (t *Tracker) Configure(cfg config.Config) {
	t.Tolerance = max(0, cfg.GetInt("resize", "tolerance", t.Tolerance))
	t.MinSize = max(0, cfg.GetInt("resize", "min_size", t.MinSize))
}

// OnGridEvent implements grid.Listener.
func (t *Tracker) OnGridEvent(ev grid.Event) {
	switch ev.Type {
	case grid.EventRendered:
		t.rebuild(ev.Geometry)
	case grid.EventCleared:
		t.rows, t.cols = nil, nil
		t.dragging = false
	}
}

// Handles returns the current row and column handles.
func (t *Tracker) Handles() (rows, cols []Handle) {
	return t.rows, t.cols
}

// Dragging reports whether a drag is in progress.
func (t *Tracker) Dragging() bool { return t.dragging }

// Active returns the handle being dragged.
func (t *Tracker) Active() (Handle, bool) { return t.active, t.dragging }

func (t *Tracker) rebuild(g *grid.Geometry) {
	t.rows = handlesFor(grid.AxisRows, g.Position.Row, g.RowSizes, g.RowBounds, g.ViewHeight)
	t.cols = handlesFor(grid.AxisCols, g.Position.Col, g.ColSizes, g.ColBounds, g.ViewWidth)
}

// handlesFor returns one handle per visible element whose trailing edge
// lies inside the viewport. Collapsed elements get no handle.
func handlesFor(axis grid.Axis, first int, sizes, bounds []int, extent int) []Handle {
	out := make([]Handle, 0, len(sizes))
	for i, size := range sizes {
		if size <= 0 {
			continue
		}
		edge := bounds[i+1] - 1
		if edge < 0 || edge >= extent {
			continue
		}
		out = append(out, Handle{Axis: axis, Index: first + i, Pos: edge, Start: bounds[i]})
	}
	return out
}

// HitTest returns the handle under the screen position, preferring columns.
func (t *Tracker) HitTest(x, y int) (Handle, bool) {
	if h, ok := t.HitTestAxis(grid.AxisCols, x, y); ok {
		return h, true
	}
	return t.HitTestAxis(grid.AxisRows, x, y)
}

// HitTestAxis only considers handles of one axis.
func (t *Tracker) HitTestAxis(axis grid.Axis, x, y int) (Handle, bool) {
	handles, v := t.cols, x-t.OriginX
	if axis == grid.AxisRows {
		handles, v = t.rows, y-t.OriginY
	}
	for _, h := range handles {
		if abs(v-h.Pos) <= t.Tolerance {
			return h, true
		}
	}
	return Handle{}, false
}

// Begin starts a drag when (x, y) is on a handle.
func (t *Tracker) Begin(x, y int) bool {
	h, ok := t.HitTest(x, y)
	if !ok {
		return false
	}
	t.start(h)
	return true
}

// BeginAxis starts a drag on a handle of the given axis only.
func (t *Tracker) BeginAxis(axis grid.Axis, x, y int) bool {
	h, ok := t.HitTestAxis(axis, x, y)
	if !ok {
		return false
	}
	t.start(h)
	return true
}

func (t *Tracker) start(h Handle) {
	t.dragging = true
	t.active = h
	t.last = h.Pos - h.Start + 1
}

// Drag reports the size implied by the pointer position. Repeated
// positions that map to the same size are not reported again.
func (t *Tracker) Drag(x, y int) {
	if !t.dragging {
		return
	}
	pos := x - t.OriginX
	if t.active.Axis == grid.AxisRows {
		pos = y - t.OriginY
	}
	size := max(t.MinSize, pos-t.active.Start+1)
	if size == t.last {
		return
	}
	t.last = size
	if t.OnChange != nil {
		t.OnChange(SizeChange{Axis: t.active.Axis, Index: t.active.Index, Size: size})
	}
}

// End finishes the drag.
func (t *Tracker) End() {
	t.dragging = false
}

// HandleMouse drives a drag with the primary button. It returns true while
// the event belongs to a drag.
func (t *Tracker) HandleMouse(ev *tcell.EventMouse) bool {
	x, y := ev.Position()
	down := ev.Buttons()&tcell.Button1 != 0
	switch {
	case down && !t.dragging:
		return t.Begin(x, y)
	case down && t.dragging:
		t.Drag(x, y)
		return true
	case !down && t.dragging:
		t.Drag(x, y)
		t.End()
		return true
	}
	return false
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
