package widgets

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/framegrace/texelgrid/texelui/core"
)

// StatusLine is a one-row widget with left- and right-aligned text.
type StatusLine struct {
	core.BaseWidget
	Style tcell.Style
	Left  string
	Right string
	inv   func(core.Rect)
}

func NewStatusLine(x, y, w int, style tcell.Style) *StatusLine {
	s := &StatusLine{Style: style}
	s.SetPosition(x, y)
	s.Resize(w, 1)
	return s
}

// SetText updates both sides and marks the line dirty.
func (s *StatusLine) SetText(left, right string) {
	if s.Left == left && s.Right == right {
		return
	}
	s.Left, s.Right = left, right
	if s.inv != nil {
		s.inv(s.Rect)
	}
}

func (s *StatusLine) SetInvalidator(fn func(core.Rect)) { s.inv = fn }

func (s *StatusLine) Draw(painter *core.Painter) {
	r := s.Rect
	painter.Fill(r, ' ', s.Style)
	rw := runewidth.StringWidth(s.Right)
	if rw > r.W-2 {
		rw = 0
	}
	painter.DrawText(r.X+1, r.Y, s.Left, s.Style, max(0, r.W-rw-2))
	if rw > 0 {
		painter.DrawText(r.X+r.W-rw-1, r.Y, s.Right, s.Style, rw)
	}
}
