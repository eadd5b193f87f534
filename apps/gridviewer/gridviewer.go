// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/gridviewer/gridviewer.go
// Summary: Bordered grid browser with a position status line.
// Usage: Built by cmd/texelgrid and hosted by the devshell runner.

package gridviewer

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelgrid/config"
	"github.com/framegrace/texelgrid/internal/theming"
	"github.com/framegrace/texelgrid/texelui/adapter"
	"github.com/framegrace/texelgrid/texelui/core"
	"github.com/framegrace/texelgrid/texelui/grid"
	"github.com/framegrace/texelgrid/texelui/widgets"
)

const appName = "gridviewer"

// App shows a Model in a scrollable grid.
type App struct {
	*adapter.UIApp
	border *widgets.Border
	view   *widgets.GridView
	status *widgets.StatusLine
}

// New builds the viewer. A nil cfg reads the gridviewer app config.
func New(title string, model widgets.Model, cfg config.Config) *App {
	if cfg == nil {
		cfg = config.App(appName)
	}
	tm := theming.ForApp(appName)

	ui := core.NewUIManager()
	view := widgets.NewGridView(0, 0, 0, 0, model)
	view.Configure(config.System())
	view.MaxColWidth = cfg.GetInt(appName, "max_col_width", view.MaxColWidth)
	view.MaxRowHeight = cfg.GetInt(appName, "max_row_height", view.MaxRowHeight)
	view.SetCodeStyle(cfg.GetString(appName, "code_style", ""))

	border := widgets.NewBorder(0, 0, 0, 0, tcell.StyleDefault.
		Foreground(tm.GetSemanticColor("text.muted")).
		Background(tm.GetSemanticColor("bg.surface")))
	border.Title = title
	border.SetChild(view)

	status := widgets.NewStatusLine(0, 0, 0, tcell.StyleDefault.
		Foreground(tm.GetSemanticColor("bg.surface")).
		Background(tm.GetSemanticColor("accent.primary")))

	ui.AddWidget(border)
	ui.AddWidget(status)
	ui.Focus(border)

	a := &App{
		UIApp:  adapter.NewUIApp(title, ui),
		border: border,
		view:   view,
		status: status,
	}
	view.OnMove = func(grid.Position) { a.updateStatus() }
	a.SetOnResize(a.layout)
	a.SetOnInput(func() { a.updateStatus() })
	a.updateStatus()
	return a
}

// View returns the grid widget.
func (a *App) View() *widgets.GridView { return a.view }

// Status returns the status line widget.
func (a *App) Status() *widgets.StatusLine { return a.status }

func (a *App) layout(w, h int) {
	a.border.SetPosition(0, 0)
	a.border.Resize(w, max(0, h-1))
	a.status.SetPosition(0, max(0, h-1))
	a.status.Resize(w, 1)
	a.updateStatus()
}

// Render refreshes the status text before composing the frame.
func (a *App) Render() [][]core.Cell {
	out := a.UIApp.Render()
	if a.updateStatus() {
		out = a.UIApp.Render()
	}
	return out
}

// updateStatus reports whether the status text changed.
func (a *App) updateStatus() bool {
	left, right := a.statusText()
	if left == a.status.Left && right == a.status.Right {
		return false
	}
	a.status.SetText(left, right)
	return true
}

func (a *App) statusText() (left, right string) {
	pos := a.view.ScrollPosition()
	rows := 0
	if m := a.view.Model(); m != nil {
		rows = m.RowCount()
	}
	left = fmt.Sprintf("row %d/%d col %d +%d,%d", pos.Row, rows, pos.Col, pos.RowOffset, pos.ColOffset)
	if st := a.view.Engine().State(); st != nil {
		left += fmt.Sprintf("  cells %d", st.Live())
	}
	if r, c, ok := a.view.Selected(); ok {
		right = fmt.Sprintf("%d:%d", r, c)
	}
	return left, right
}
