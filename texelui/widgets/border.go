package widgets

import (
	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelgrid/internal/theming"
	"github.com/framegrace/texelgrid/texelui/core"
)

// Border draws a titled frame around its Rect with an optional child inside.
// Keys and mouse events are forwarded to the child.
type Border struct {
	core.BaseWidget
	Style       tcell.Style
	ActiveStyle tcell.Style // used while the child has focus
	Charset     [6]rune     // h, v, tl, tr, bl, br
	Title       string
	Child       core.Widget
}

func NewBorder(x, y, w, h int, style tcell.Style) *Border {
	tm := theming.Get()
	b := &Border{
		Style:       style,
		ActiveStyle: style.Foreground(tm.GetSemanticColor("border.active")),
	}
	// default single-line charset
	b.Charset = [6]rune{'─', '│', '┌', '┐', '└', '┘'}
	b.SetPosition(x, y)
	b.Resize(w, h)
	b.SetFocusable(true)
	return b
}

func (b *Border) ClientRect() core.Rect {
	r := b.Rect
	if r.W < 2 || r.H < 2 {
		return core.Rect{X: r.X, Y: r.Y, W: 0, H: 0}
	}
	return core.Rect{X: r.X + 1, Y: r.Y + 1, W: r.W - 2, H: r.H - 2}
}

func (b *Border) SetChild(w core.Widget) {
	b.Child = w
	b.layoutChild()
}

func (b *Border) layoutChild() {
	if b.Child == nil {
		return
	}
	cr := b.ClientRect()
	b.Child.SetPosition(cr.X, cr.Y)
	b.Child.Resize(cr.W, cr.H)
}

func (b *Border) SetPosition(x, y int) {
	b.BaseWidget.SetPosition(x, y)
	b.layoutChild()
}

func (b *Border) Resize(w, h int) {
	b.BaseWidget.Resize(w, h)
	b.layoutChild()
}

// VisitChildren implements core.ChildContainer.
func (b *Border) VisitChildren(fn func(core.Widget)) {
	if b.Child != nil {
		fn(b.Child)
	}
}

func (b *Border) Focus() {
	b.BaseWidget.Focus()
	if b.Child != nil {
		b.Child.Focus()
	}
}

func (b *Border) Blur() {
	b.BaseWidget.Blur()
	if b.Child != nil {
		b.Child.Blur()
	}
}

func (b *Border) HandleKey(ev *tcell.EventKey) bool {
	if b.Child == nil {
		return false
	}
	return b.Child.HandleKey(ev)
}

func (b *Border) HandleMouse(ev *tcell.EventMouse) bool {
	if ma, ok := b.Child.(core.MouseAware); ok {
		return ma.HandleMouse(ev)
	}
	return false
}

func (b *Border) Draw(p *core.Painter) {
	style := b.Style
	if b.IsFocused() {
		style = b.ActiveStyle
	}
	p.DrawBorder(b.Rect, style, b.Charset)
	if b.Title != "" && b.Rect.W > 4 {
		p.DrawText(b.Rect.X+2, b.Rect.Y, " "+b.Title+" ", style, b.Rect.W-4)
	}
	if b.Child != nil {
		b.Child.Draw(p)
	}
}
