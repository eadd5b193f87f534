// Copyright 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelui/scroll/indicators.go
// Summary: Scrollbar and overflow indicator rendering for scrollable widgets.

package scroll

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelgrid/texelui/core"
)

// Orientation selects a vertical or horizontal scrollbar.
type Orientation int

const (
	Vertical Orientation = iota
	Horizontal
)

// Default glyphs.
const (
	DefaultUpGlyph    = '▲'
	DefaultDownGlyph  = '▼'
	DefaultTrackGlyph = '│'
	DefaultThumbGlyph = '█'
)

// BarConfig configures the appearance of a scrollbar.
type BarConfig struct {
	TrackStyle tcell.Style
	ThumbStyle tcell.Style
	TrackGlyph rune
	ThumbGlyph rune
}

// DefaultBarConfig returns a configuration with standard glyphs.
func DefaultBarConfig(track, thumb tcell.Style) BarConfig {
	return BarConfig{
		TrackStyle: track,
		ThumbStyle: thumb,
		TrackGlyph: DefaultTrackGlyph,
		ThumbGlyph: DefaultThumbGlyph,
	}
}

// ThumbSpan converts metrics into a thumb start and length along a track
// of the given length. The thumb is at least one cell long.
func ThumbSpan(m Metrics, track int) (start, length int) {
	if track <= 0 {
		return 0, 0
	}
	length = int(math.Round(m.Proportion * float64(track)))
	length = max(1, min(track, length))
	start = int(math.Round(m.Position * float64(track-length)))
	start = max(0, min(track-length, start))
	return start, length
}

// DrawBar renders a scrollbar filling rect: a one-cell wide column for
// Vertical, a one-cell high row for Horizontal.
func DrawBar(painter *core.Painter, rect core.Rect, o Orientation, m Metrics, cfg BarConfig) {
	if rect.Empty() {
		return
	}
	track := rect.H
	if o == Horizontal {
		track = rect.W
	}
	trackGlyph := cfg.TrackGlyph
	if trackGlyph == 0 {
		trackGlyph = DefaultTrackGlyph
		if o == Horizontal {
			trackGlyph = '─'
		}
	}
	thumbGlyph := cfg.ThumbGlyph
	if thumbGlyph == 0 {
		thumbGlyph = DefaultThumbGlyph
	}

	start, length := ThumbSpan(m, track)
	for i := 0; i < track; i++ {
		glyph, style := trackGlyph, cfg.TrackStyle
		if i >= start && i < start+length {
			glyph, style = thumbGlyph, cfg.ThumbStyle
		}
		if o == Horizontal {
			painter.SetCell(rect.X+i, rect.Y, glyph, style)
		} else {
			painter.SetCell(rect.X, rect.Y+i, glyph, style)
		}
	}
}

// DrawIndicators draws ▲ at the top-right of rect when content is hidden
// above, and ▼ at the bottom-right when content is hidden below.
func DrawIndicators(painter *core.Painter, rect core.Rect, above, below bool, style tcell.Style) {
	if rect.Empty() {
		return
	}
	x := rect.X + rect.W - 1
	if above {
		painter.SetCell(x, rect.Y, DefaultUpGlyph, style)
	}
	if below {
		painter.SetCell(x, rect.Y+rect.H-1, DefaultDownGlyph, style)
	}
}
