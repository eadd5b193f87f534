// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelui/core/painter.go
// Summary: Clipped drawing into a cell framebuffer.

package core

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Cell is one character cell of a framebuffer.
type Cell struct {
	Ch    rune
	Style tcell.Style
}

// Painter writes into a framebuffer, discarding anything outside its clip.
type Painter struct {
	buf  [][]Cell
	clip Rect
}

// NewPainter returns a painter over buf restricted to clip.
func NewPainter(buf [][]Cell, clip Rect) *Painter {
	h := len(buf)
	w := 0
	if h > 0 {
		w = len(buf[0])
	}
	return &Painter{buf: buf, clip: clip.Intersect(Rect{W: w, H: h})}
}

// Clip returns the active clip rectangle.
func (p *Painter) Clip() Rect { return p.clip }

// WithClip returns a painter sharing the buffer with a narrower clip.
func (p *Painter) WithClip(r Rect) *Painter {
	return &Painter{buf: p.buf, clip: p.clip.Intersect(r)}
}

// SetCell writes a single cell when it falls inside the clip.
func (p *Painter) SetCell(x, y int, ch rune, style tcell.Style) {
	if !p.clip.Contains(x, y) {
		return
	}
	p.buf[y][x] = Cell{Ch: ch, Style: style}
}

// Fill paints every cell of r (clipped) with ch.
func (p *Painter) Fill(r Rect, ch rune, style tcell.Style) {
	r = r.Intersect(p.clip)
	for y := r.Y; y < r.Y+r.H; y++ {
		row := p.buf[y]
		for x := r.X; x < r.X+r.W; x++ {
			row[x] = Cell{Ch: ch, Style: style}
		}
	}
}

// DrawText draws s starting at x,y without wrapping and stops at maxW cells.
// Wide runes occupy two cells; a wide rune that would straddle maxW is
// replaced by a space. Returns the number of cells written.
func (p *Painter) DrawText(x, y int, s string, style tcell.Style, maxW int) int {
	used := 0
	for _, r := range s {
		rw := runewidth.RuneWidth(r)
		if rw == 0 {
			continue
		}
		if used+rw > maxW {
			if used < maxW {
				p.SetCell(x+used, y, ' ', style)
				used++
			}
			break
		}
		p.SetCell(x+used, y, r, style)
		if rw == 2 {
			// Continuation cell keeps the style; the terminal renders the
			// wide rune across both.
			p.SetCell(x+used+1, y, 0, style)
		}
		used += rw
	}
	return used
}

// DrawBorder draws a box along the edges of r. charset holds the
// horizontal, vertical, top-left, top-right, bottom-left and bottom-right
// glyphs.
func (p *Painter) DrawBorder(r Rect, style tcell.Style, charset [6]rune) {
	if r.W < 2 || r.H < 2 {
		return
	}
	right, bottom := r.X+r.W-1, r.Y+r.H-1
	for x := r.X + 1; x < right; x++ {
		p.SetCell(x, r.Y, charset[0], style)
		p.SetCell(x, bottom, charset[0], style)
	}
	for y := r.Y + 1; y < bottom; y++ {
		p.SetCell(r.X, y, charset[1], style)
		p.SetCell(right, y, charset[1], style)
	}
	p.SetCell(r.X, r.Y, charset[2], style)
	p.SetCell(right, r.Y, charset[3], style)
	p.SetCell(r.X, bottom, charset[4], style)
	p.SetCell(right, bottom, charset[5], style)
}
