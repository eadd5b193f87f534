// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelui/widgets/gridview.go
// Summary: Virtualized, scrollable grid widget backed by a Model.
// Usage: Add to a UIManager; the grid engine decides which cells exist on
// each frame and GridView paints them, handling scroll keys, the wheel,
// scrollbar clicks and boundary drags.

package widgets

import (
	"log"

	"github.com/alecthomas/chroma/v2"
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/framegrace/texelgrid/config"
	"github.com/framegrace/texelgrid/internal/theming"
	"github.com/framegrace/texelgrid/texelui/core"
	"github.com/framegrace/texelgrid/texelui/grid"
	"github.com/framegrace/texelgrid/texelui/resize"
	"github.com/framegrace/texelgrid/texelui/scroll"
)

const (
	minColWidth      = 3
	columnSampleRows = 50
)

// GridCell is the handle GridView places for every visible cell.
type GridCell struct {
	Kind     grid.CellType
	Row, Col int
	Rect     core.Rect // relative to the grid viewport

	lines  [][]glyph
	width  int
	loaded bool
}

// Lines returns the wrapped text of the cell.
func (c *GridCell) Lines() []string {
	out := make([]string, len(c.lines))
	for i, line := range c.lines {
		rs := make([]rune, len(line))
		for j, g := range line {
			rs[j] = g.r
		}
		out[i] = string(rs)
	}
	return out
}

// GridView displays a Model through a grid engine.
type GridView struct {
	core.BaseWidget
	Style       tcell.Style
	AltStyle    tcell.Style
	HeaderStyle tcell.Style
	MacroStyle  tcell.Style
	SelectStyle tcell.Style
	BarConfig   scroll.BarConfig

	ShowHeader     bool
	ShowScrollbars bool
	MaxColWidth    int
	MaxRowHeight   int

	// OnMove is called after the scroll position or selection changes.
	OnMove func(pos grid.Position)

	model   Model
	columns []Column

	rowSizes   []int
	colSizes   []int
	macroSizes []int
	pinned     map[int]bool

	pos      grid.Position
	selRow   int
	selCol   int
	selected bool

	opts    grid.Options
	engine  *grid.Engine[*GridCell]
	policy  scroll.Policy
	tracker *resize.Tracker

	codeStyle *chroma.Style
	free      []*GridCell
	inv       func(core.Rect)
	lastErr   string
}

// NewGridView creates a grid at the given position showing model.
func NewGridView(x, y, w, h int, model Model) *GridView {
	tm := theming.Get()
	fg := tm.GetSemanticColor("text.primary")
	bg := tm.GetSemanticColor("bg.surface")
	base := tcell.StyleDefault.Foreground(fg).Background(bg)

	g := &GridView{
		Style:          base,
		AltStyle:       base.Background(tm.GetSemanticColor("bg.alt")),
		HeaderStyle:    base.Foreground(tm.GetSemanticColor("accent.primary")).Bold(true),
		MacroStyle:     base.Foreground(tm.GetSemanticColor("text.muted")).Italic(true),
		SelectStyle:    base.Background(tm.GetSemanticColor("accent.primary")).Foreground(bg),
		ShowHeader:     true,
		ShowScrollbars: true,
		MaxColWidth:    40,
		MaxRowHeight:   6,
		pinned:         make(map[int]bool),
		opts:           grid.DefaultOptions(),
		policy:         scroll.DefaultPolicy(),
		codeStyle:      codeStyle(""),
	}
	g.BarConfig = scroll.DefaultBarConfig(
		base.Foreground(tm.GetSemanticColor("text.muted")),
		base.Foreground(tm.GetSemanticColor("border.active")),
	)
	g.tracker = resize.NewTracker(g.applySizeChange)
	g.engine = grid.New[*GridCell](g, g.opts)
	g.engine.Subscribe(g.tracker)
	g.SetPosition(x, y)
	g.Resize(w, h)
	g.SetFocusable(true)
	g.SetModel(model)
	return g
}

// Configure applies the grid, scroll and resize sections of cfg. The
// engine is rebuilt, so previously placed cells are released.
func (g *GridView) Configure(cfg config.Config) {
	g.policy = scroll.PolicyFromConfig(cfg)
	g.tracker.Configure(cfg)
	g.opts = grid.OptionsFromConfig(cfg)
	g.resetEngine()
}

// SetCodeStyle selects the Chroma style used for highlighted columns.
func (g *GridView) SetCodeStyle(name string) {
	g.codeStyle = codeStyle(name)
	g.Reload()
}

// SetModel replaces the data source and forgets all measurements.
func (g *GridView) SetModel(m Model) {
	g.model = m
	g.pos = grid.Position{}
	g.selected = false
	g.Reload()
}

// Model returns the data source.
func (g *GridView) Model() Model { return g.model }

// Engine exposes the underlying grid engine.
func (g *GridView) Engine() *grid.Engine[*GridCell] { return g.engine }

// Reload drops every cached cell and size so the model is read again.
func (g *GridView) Reload() {
	if err := g.engine.Clear(g.release); err != nil {
		log.Printf("GridView: clear failed: %v", err)
	}
	g.columns = nil
	g.rowSizes, g.colSizes, g.macroSizes = nil, nil, nil
	g.pinned = make(map[int]bool)
	g.syncModel()
	g.invalidate()
}

func (g *GridView) resetEngine() {
	if g.engine != nil {
		if err := g.engine.Clear(g.release); err != nil {
			log.Printf("GridView: clear failed: %v", err)
		}
		g.engine.Unsubscribe(g.tracker)
	}
	g.engine = grid.New[*GridCell](g, g.opts)
	g.engine.Subscribe(g.tracker)
	g.invalidate()
}

// ScrollPosition returns the current scroll position.
func (g *GridView) ScrollPosition() grid.Position { return g.pos }

// SetScrollPosition moves the viewport. Out-of-range indices are clamped.
func (g *GridView) SetScrollPosition(pos grid.Position) {
	g.syncModel()
	pos.Row = max(0, min(pos.Row, len(g.rowSizes)-1))
	pos.Col = max(0, min(pos.Col, len(g.colSizes)-1))
	pos.RowOffset = max(0, pos.RowOffset)
	pos.ColOffset = max(0, pos.ColOffset)
	g.pos = pos
	g.moved()
}

// Selected returns the selected cell, if any.
func (g *GridView) Selected() (row, col int, ok bool) {
	return g.selRow, g.selCol, g.selected
}

// Sizes returns the current row, column and macro size sequences.
func (g *GridView) Sizes() (rows, cols, macros []int) {
	return g.rowSizes, g.colSizes, g.macroSizes
}

// SetInvalidator implements core.InvalidationAware.
func (g *GridView) SetInvalidator(fn func(core.Rect)) { g.inv = fn }

func (g *GridView) invalidate() {
	if g.inv != nil {
		g.inv(g.Rect)
	}
}

func (g *GridView) moved() {
	g.invalidate()
	if g.OnMove != nil {
		g.OnMove(g.pos)
	}
}

// Resize re-measures wrapped macros when the width changes.
func (g *GridView) Resize(w, h int) {
	oldW := g.Rect.W
	g.BaseWidget.Resize(w, h)
	if oldW != g.Rect.W && g.model != nil && g.opts.MacroWidth <= 0 {
		g.remeasureRows()
	}
}

// viewRect is the screen area cells are drawn into.
func (g *GridView) viewRect() core.Rect {
	r := g.Rect
	if g.ShowHeader {
		r.Y++
		r.H--
	}
	if g.ShowScrollbars {
		r.W--
		r.H--
	}
	r.W, r.H = max(0, r.W), max(0, r.H)
	return r
}

// ViewportSize implements grid.Surface.
func (g *GridView) ViewportSize() (w, h int) {
	r := g.viewRect()
	return r.W, r.H
}

// syncModel grows or shrinks the size sequences to match the model.
func (g *GridView) syncModel() {
	if g.model == nil {
		g.columns = nil
		g.rowSizes, g.colSizes, g.macroSizes = []int{}, []int{}, []int{}
		return
	}
	cols := g.model.Columns()
	if len(cols) != len(g.columns) {
		g.columns = append([]Column(nil), cols...)
		g.colSizes = grid.Fill(len(cols), grid.Unknown)
	}
	n := g.model.RowCount()
	switch {
	case n > len(g.rowSizes):
		extra := n - len(g.rowSizes)
		g.rowSizes = append(g.rowSizes, grid.Fill(extra, grid.Unknown)...)
		g.macroSizes = append(g.macroSizes, make([]int, extra)...)
	case n < len(g.rowSizes):
		g.rowSizes = g.rowSizes[:n]
		g.macroSizes = g.macroSizes[:n]
		for row := range g.pinned {
			if row >= n {
				delete(g.pinned, row)
			}
		}
	}
	if g.pos.Row > n {
		g.pos = grid.Position{Col: g.pos.Col, ColOffset: g.pos.ColOffset, Row: max(0, n-1)}
	}
	if g.pos.Col > len(cols) {
		g.pos.Col, g.pos.ColOffset = max(0, len(cols)-1), 0
	}
}

// remeasureRows forgets the height of every row not sized by hand.
func (g *GridView) remeasureRows() {
	for i := range g.rowSizes {
		if g.pinned[i] {
			continue
		}
		g.rowSizes[i] = grid.Unknown
		g.macroSizes[i] = 0
	}
}

// measure resolves sizes for the engine and the scroll policy.
func (g *GridView) measure(axis grid.Axis, start, count int) {
	if axis == grid.AxisCols {
		for c := start; c < start+count && c < len(g.colSizes); c++ {
			if g.colSizes[c] < 0 {
				g.colSizes[c] = g.measureColumn(c)
			}
		}
		return
	}
	if p, ok := g.model.(Prefetcher); ok {
		p.Prefetch(start, count)
	}
	macroW := g.macroWidth()
	for r := start; r < start+count && r < len(g.rowSizes); r++ {
		if g.rowSizes[r] >= 0 {
			continue
		}
		body := 1
		for c := range g.columns {
			body = max(body, lineCount(g.model.Cell(r, c), g.textWidth(g.colWidth(c))))
		}
		body = min(body, max(1, g.MaxRowHeight))
		macro := 0
		if text := g.model.Macro(r); text != "" {
			macro = min(lineCount(text, macroW), max(1, g.MaxRowHeight))
		}
		g.rowSizes[r] = body + macro
		g.macroSizes[r] = macro
	}
}

func (g *GridView) measureRows(start, count int) { g.measure(grid.AxisRows, start, count) }
func (g *GridView) measureCols(start, count int) { g.measure(grid.AxisCols, start, count) }

// measureColumn returns the declared width or the widest title/sampled
// cell, capped at MaxColWidth, plus the gap.
func (g *GridView) measureColumn(c int) int {
	col := g.columns[c]
	if col.Width > 0 {
		return col.Width
	}
	w := runewidth.StringWidth(col.Title)
	rows := min(g.model.RowCount(), columnSampleRows)
	for r := 0; r < rows; r++ {
		w = max(w, longestLine(g.model.Cell(r, c)))
	}
	limit := g.MaxColWidth
	if limit <= 0 {
		limit = 40
	}
	return max(minColWidth, min(w, limit)) + 1
}

func (g *GridView) colWidth(c int) int {
	if g.colSizes[c] < 0 {
		g.colSizes[c] = g.measureColumn(c)
	}
	return g.colSizes[c]
}

// textWidth leaves a one-cell gap after the text of a column.
func (g *GridView) textWidth(colWidth int) int { return max(1, colWidth-1) }

func (g *GridView) macroWidth() int {
	if g.opts.MacroWidth > 0 {
		return g.opts.MacroWidth
	}
	w, _ := g.ViewportSize()
	return max(1, w)
}

// prepare reuses the cell placed at the same coordinate when possible and
// reformats it only when its content or width changed.
func (g *GridView) prepare(kind grid.CellType, row, col int, rect core.Rect, prev *GridCell, hasPrev bool) *GridCell {
	c := prev
	if !hasPrev || c == nil {
		c = g.acquire()
	}
	width := rect.W
	if kind == grid.CellRegular {
		width = g.textWidth(rect.W)
	}
	if !c.loaded || c.Kind != kind || c.Row != row || c.Col != col || c.width != width {
		c.Kind, c.Row, c.Col = kind, row, col
		g.format(c, width)
	}
	c.Rect = rect
	return c
}

func (g *GridView) format(c *GridCell, width int) {
	var text []glyph
	if c.Kind == grid.CellMacro {
		text = plainGlyphs(g.model.Macro(c.Row), g.MacroStyle)
	} else {
		lexer := ""
		if c.Col < len(g.columns) {
			lexer = g.columns[c.Col].Lexer
		}
		text = formatCell(g.model.Cell(c.Row, c.Col), lexer, g.codeStyle, g.Style)
	}
	c.lines = wrapGlyphs(text, width)
	c.width = width
	c.loaded = true
}

func (g *GridView) acquire() *GridCell {
	if n := len(g.free); n > 0 {
		c := g.free[n-1]
		g.free = g.free[:n-1]
		return c
	}
	return &GridCell{}
}

func (g *GridView) release(c *GridCell) {
	if c == nil {
		return
	}
	*c = GridCell{lines: c.lines[:0]}
	g.free = append(g.free, c)
}

// Draw renders the visible part of the grid.
func (g *GridView) Draw(p *core.Painter) {
	g.syncModel()
	p.Fill(g.Rect, ' ', g.Style)
	view := g.viewRect()
	g.tracker.OriginX, g.tracker.OriginY = view.X, view.Y

	err := g.engine.Render(grid.Params[*GridCell]{
		Position:   g.pos,
		RowSizes:   g.rowSizes,
		ColSizes:   g.colSizes,
		MacroSizes: g.macroSizes,
		Measure:    g.measure,
		Prepare:    g.prepare,
		Release:    g.release,
	})
	if err != nil {
		if msg := err.Error(); msg != g.lastErr {
			log.Printf("GridView: render failed: %v", err)
			g.lastErr = msg
		}
	} else {
		g.lastErr = ""
		g.pos = g.engine.State().Position
	}

	st := g.engine.State()
	g.drawCells(p.WithClip(view), view, st)
	if g.ShowHeader {
		g.drawHeader(p, view, &st.Geometry)
	}
	if g.ShowScrollbars {
		g.drawBars(p, view)
	}
}

func (g *GridView) drawCells(p *core.Painter, view core.Rect, st *grid.RenderedState[*GridCell]) {
	for _, c := range st.Cells.Handles() {
		selected := g.selected && c.Row == g.selRow && c.Col == g.selCol
		style := g.rowStyle(c.Row)
		if selected {
			style = g.SelectStyle
		}
		g.drawCell(p, view, c, style, selected, g.textWidth(c.Rect.W))
	}
	for _, c := range st.Macros.Handles() {
		g.drawCell(p, view, c, g.rowStyle(c.Row), false, c.Rect.W)
	}
}

func (g *GridView) drawCell(p *core.Painter, view core.Rect, c *GridCell, style tcell.Style, selected bool, textW int) {
	rect := c.Rect.Translate(view.X, view.Y)
	cp := p.WithClip(rect)
	cp.Fill(rect, ' ', style)
	_, bg, _ := style.Decompose()
	for i, line := range c.lines {
		if i >= rect.H {
			break
		}
		if selected {
			line = restyle(line, style)
		}
		drawGlyphLine(cp, rect.X, rect.Y+i, line, textW, bg)
	}
}

func (g *GridView) rowStyle(row int) tcell.Style {
	if row%2 == 1 {
		return g.AltStyle
	}
	return g.Style
}

func (g *GridView) drawHeader(p *core.Painter, view core.Rect, geo *grid.Geometry) {
	y := view.Y - 1
	hp := p.WithClip(core.Rect{X: view.X, Y: y, W: view.W, H: 1})
	hp.Fill(core.Rect{X: view.X, Y: y, W: view.W, H: 1}, ' ', g.HeaderStyle)
	for i, size := range geo.ColSizes {
		col := geo.Position.Col + i
		if col >= len(g.columns) || size <= 0 {
			continue
		}
		x := view.X + geo.ColBounds[i]
		cp := hp.WithClip(core.Rect{X: x, Y: y, W: size, H: 1})
		cp.DrawText(x, y, g.columns[col].Title, g.HeaderStyle, g.textWidth(size))
	}
}

func (g *GridView) drawBars(p *core.Painter, view core.Rect) {
	vm, err := g.policy.Thumb(g.pos.Row, g.rowSizes, view.H, g.measureRows)
	if err != nil {
		log.Printf("GridView: row thumb: %v", err)
	}
	scroll.DrawBar(p, core.Rect{X: view.X + view.W, Y: view.Y, W: 1, H: view.H}, scroll.Vertical, vm, g.BarConfig)

	hm, err := g.policy.Thumb(g.pos.Col, g.colSizes, view.W, g.measureCols)
	if err != nil {
		log.Printf("GridView: column thumb: %v", err)
	}
	hcfg := g.BarConfig
	hcfg.TrackGlyph = '─'
	scroll.DrawBar(p, core.Rect{X: view.X, Y: view.Y + view.H, W: view.W, H: 1}, scroll.Horizontal, hm, hcfg)
}

// Scroll applies a scroll intent. The pixel offset along the scrolled
// axis is reset.
func (g *GridView) Scroll(in scroll.Intent) error {
	g.syncModel()
	w, h := g.ViewportSize()
	var err error
	if in.Axis == grid.AxisCols {
		var col int
		col, err = g.policy.Apply(g.pos.Col, g.colSizes, w, g.measureCols, in.Request)
		if err == nil && (col != g.pos.Col || g.pos.ColOffset != 0) {
			g.pos.Col, g.pos.ColOffset = col, 0
			g.moved()
		}
		return err
	}
	var row int
	row, err = g.policy.Apply(g.pos.Row, g.rowSizes, h, g.measureRows, in.Request)
	if err == nil && (row != g.pos.Row || g.pos.RowOffset != 0) {
		g.pos.Row, g.pos.RowOffset = row, 0
		g.moved()
	}
	return err
}

// HandleKey scrolls on navigation keys.
func (g *GridView) HandleKey(ev *tcell.EventKey) bool {
	in, ok := scroll.IntentForKey(ev)
	if !ok {
		return false
	}
	if err := g.Scroll(in); err != nil {
		log.Printf("GridView: scroll failed: %v", err)
	}
	return true
}

// HandleMouse implements core.MouseAware: boundary drags resize, the
// wheel scrolls, clicks on a scrollbar jump and clicks on a cell select it.
// Column edges are dragged from the header row; row edges need Alt held.
func (g *GridView) HandleMouse(ev *tcell.EventMouse) bool {
	x, y := ev.Position()
	view := g.viewRect()
	down := ev.Buttons()&tcell.Button1 != 0
	if g.tracker.Dragging() {
		g.tracker.HandleMouse(ev)
		g.invalidate()
		return true
	}
	if down && g.beginResize(ev, x, y, view) {
		return true
	}
	if in, ok := scroll.IntentForMouse(ev); ok {
		if err := g.Scroll(in); err != nil {
			log.Printf("GridView: scroll failed: %v", err)
		}
		return true
	}
	if !down {
		return false
	}
	switch {
	case g.ShowScrollbars && x == view.X+view.W && y >= view.Y && y < view.Y+view.H:
		return g.jump(grid.AxisRows, y-view.Y, view.H)
	case g.ShowScrollbars && y == view.Y+view.H && x >= view.X && x < view.X+view.W:
		return g.jump(grid.AxisCols, x-view.X, view.W)
	case view.Contains(x, y):
		return g.selectAt(x-view.X, y-view.Y)
	}
	return false
}

func (g *GridView) beginResize(ev *tcell.EventMouse, x, y int, view core.Rect) bool {
	if g.ShowHeader && y == view.Y-1 && x >= view.X && x < view.X+view.W {
		return g.tracker.BeginAxis(grid.AxisCols, x, view.Y)
	}
	if ev.Modifiers()&tcell.ModAlt != 0 && view.Contains(x, y) {
		return g.tracker.BeginAxis(grid.AxisRows, x, y)
	}
	return false
}

// jump scrolls proportionally to a click at offset along a track.
func (g *GridView) jump(axis grid.Axis, offset, track int) bool {
	v := 0.0
	if track > 1 {
		v = float64(offset) / float64(track-1)
	}
	if err := g.Scroll(scroll.Intent{Axis: axis, Request: scroll.Request{Unit: scroll.UnitProportional, Value: v}}); err != nil {
		log.Printf("GridView: scroll failed: %v", err)
	}
	return true
}

// selectAt selects the cell at viewport coordinates x, y.
func (g *GridView) selectAt(x, y int) bool {
	geo := &g.engine.State().Geometry
	r, okR := geo.RowAt(y)
	c, okC := geo.ColAt(x)
	if !okR || !okC {
		return false
	}
	g.selRow, g.selCol, g.selected = r, c, true
	g.moved()
	return true
}

// applySizeChange stores a dragged size. Column changes re-wrap every row
// that was not sized by hand.
func (g *GridView) applySizeChange(ch resize.SizeChange) {
	switch ch.Axis {
	case grid.AxisRows:
		if ch.Index >= 0 && ch.Index < len(g.rowSizes) {
			if g.rowSizes[ch.Index] < 0 {
				g.measureRows(ch.Index, 1)
			}
			g.rowSizes[ch.Index] = ch.Size
			g.pinned[ch.Index] = true
		}
	case grid.AxisCols:
		if ch.Index >= 0 && ch.Index < len(g.colSizes) {
			g.colSizes[ch.Index] = ch.Size
			g.remeasureRows()
		}
	}
	g.invalidate()
}

// restyle paints line with the colours of style.
func restyle(line []glyph, style tcell.Style) []glyph {
	out := make([]glyph, len(line))
	for i, g := range line {
		out[i] = glyph{r: g.r, style: style}
	}
	return out
}
