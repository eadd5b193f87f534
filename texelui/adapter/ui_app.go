// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelui/adapter/ui_app.go
// Summary: Wraps a UIManager as a core.App for the devshell host loop.

package adapter

import (
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelgrid/texelui/core"
)

// UIApp adapts a UIManager to the core.App interface.
type UIApp struct {
	title    string
	ui       *core.UIManager
	stopOnce sync.Once
	stopCh   chan struct{}
	onResize func(w, h int)
	onInput  func()
}

var _ core.App = (*UIApp)(nil)
var _ core.MouseHandler = (*UIApp)(nil)

func NewUIApp(title string, ui *core.UIManager) *UIApp {
	if ui == nil {
		ui = core.NewUIManager()
	}
	return &UIApp{title: title, ui: ui, stopCh: make(chan struct{})}
}

// Run blocks until Stop is called.
func (a *UIApp) Run() error { <-a.stopCh; return nil }

func (a *UIApp) Stop() { a.stopOnce.Do(func() { close(a.stopCh) }) }

// SetOnResize registers a layout callback run after the UI is resized.
func (a *UIApp) SetOnResize(fn func(w, h int)) { a.onResize = fn }

// SetOnInput registers a callback run after each key or mouse event.
func (a *UIApp) SetOnInput(fn func()) { a.onInput = fn }

func (a *UIApp) Resize(cols, rows int) {
	a.ui.Resize(cols, rows)
	if a.onResize != nil {
		a.onResize(cols, rows)
	}
}

func (a *UIApp) Render() [][]core.Cell { return a.ui.Render() }

func (a *UIApp) GetTitle() string {
	if a.title == "" {
		return "TexelUI"
	}
	return a.title
}

func (a *UIApp) HandleKey(ev *tcell.EventKey) {
	a.ui.HandleKey(ev)
	a.input()
}

func (a *UIApp) HandleMouse(ev *tcell.EventMouse) {
	a.ui.HandleMouse(ev)
	a.input()
}

func (a *UIApp) input() {
	if a.onInput != nil {
		a.onInput()
	}
}

func (a *UIApp) SetRefreshNotifier(ch chan<- bool) { a.ui.SetRefreshNotifier(ch) }

// UI exposes the manager for composition.
func (a *UIApp) UI() *core.UIManager { return a.ui }
