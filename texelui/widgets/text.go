// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelui/widgets/text.go
// Summary: Styled rune wrapping shared by cell measurement and drawing.

package widgets

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/framegrace/texelgrid/texelui/core"
)

// glyph is a rune with its resolved style.
type glyph struct {
	r     rune
	style tcell.Style
}

func plainGlyphs(s string, style tcell.Style) []glyph {
	out := make([]glyph, 0, len(s))
	for _, r := range s {
		out = append(out, glyph{r: r, style: style})
	}
	return out
}

// wrapGlyphs breaks text into lines no wider than width cells. Newlines
// always break; wide runes never straddle a line end. width < 1 is
// treated as 1.
func wrapGlyphs(text []glyph, width int) [][]glyph {
	width = max(1, width)
	var lines [][]glyph
	var line []glyph
	used := 0
	for _, g := range text {
		if g.r == '\n' {
			lines = append(lines, line)
			line, used = nil, 0
			continue
		}
		if g.r == '\t' {
			g.r = ' '
		}
		rw := runewidth.RuneWidth(g.r)
		if rw == 0 {
			continue
		}
		if used+rw > width && used > 0 {
			lines = append(lines, line)
			line, used = nil, 0
		}
		line = append(line, g)
		used += rw
	}
	if len(line) > 0 || len(lines) == 0 {
		lines = append(lines, line)
	}
	return lines
}

// lineCount returns how many lines s occupies at width.
func lineCount(s string, width int) int {
	return len(wrapGlyphs(plainGlyphs(s, tcell.StyleDefault), width))
}

// longestLine returns the widest line of s in cells, ignoring wrapping.
func longestLine(s string) int {
	best, cur := 0, 0
	for _, r := range s {
		if r == '\n' {
			best = max(best, cur)
			cur = 0
			continue
		}
		cur += runewidth.RuneWidth(r)
	}
	return max(best, cur)
}

// drawGlyphLine paints one wrapped line at x, y over background bg, at
// most maxW cells wide.
func drawGlyphLine(p *core.Painter, x, y int, line []glyph, maxW int, bg tcell.Color) {
	used := 0
	for _, g := range line {
		rw := runewidth.RuneWidth(g.r)
		if used+rw > maxW {
			break
		}
		st := g.style.Background(bg)
		p.SetCell(x+used, y, g.r, st)
		if rw == 2 {
			p.SetCell(x+used+1, y, 0, st)
		}
		used += rw
	}
}
