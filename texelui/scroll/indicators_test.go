// Copyright 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package scroll

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelgrid/texelui/core"
	"github.com/framegrace/texelgrid/texelui/grid"
)

func newBuffer(w, h int) [][]core.Cell {
	buf := make([][]core.Cell, h)
	for y := range buf {
		buf[y] = make([]core.Cell, w)
	}
	return buf
}

func TestThumbSpan(t *testing.T) {
	tests := []struct {
		m          Metrics
		track      int
		start, len int
	}{
		{Metrics{Position: 0.5, Proportion: 0.25}, 20, 8, 5},
		{Metrics{Position: 1, Proportion: 0.01}, 10, 9, 1},
		{Metrics{Position: 0, Proportion: 1}, 10, 0, 10},
		{Metrics{Position: 0.3, Proportion: 0.5}, 0, 0, 0},
	}
	for _, tt := range tests {
		start, length := ThumbSpan(tt.m, tt.track)
		if start != tt.start || length != tt.len {
			t.Fatalf("ThumbSpan(%+v,%d) = (%d,%d), want (%d,%d)", tt.m, tt.track, start, length, tt.start, tt.len)
		}
	}
}

func TestDrawBarVertical(t *testing.T) {
	buf := newBuffer(1, 10)
	p := core.NewPainter(buf, core.Rect{W: 1, H: 10})
	cfg := DefaultBarConfig(tcell.StyleDefault, tcell.StyleDefault.Bold(true))

	DrawBar(p, core.Rect{W: 1, H: 10}, Vertical, Metrics{Position: 0, Proportion: 0.3}, cfg)
	for y := 0; y < 10; y++ {
		want := DefaultTrackGlyph
		if y < 3 {
			want = DefaultThumbGlyph
		}
		if buf[y][0].Ch != want {
			t.Fatalf("row %d: got %q want %q", y, buf[y][0].Ch, want)
		}
	}
}

func TestDrawIndicators(t *testing.T) {
	buf := newBuffer(4, 3)
	p := core.NewPainter(buf, core.Rect{W: 4, H: 3})
	DrawIndicators(p, core.Rect{W: 4, H: 3}, true, false, tcell.StyleDefault)
	if buf[0][3].Ch != DefaultUpGlyph || buf[2][3].Ch != 0 {
		t.Fatalf("unexpected indicators: top %q bottom %q", buf[0][3].Ch, buf[2][3].Ch)
	}
}

func TestIntentForKey(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want Intent
	}{
		{"down", tcell.NewEventKey(tcell.KeyDown, 0, 0), Intent{grid.AxisRows, Request{UnitSmall, 1}}},
		{"left", tcell.NewEventKey(tcell.KeyLeft, 0, 0), Intent{grid.AxisCols, Request{UnitSmall, -1}}},
		{"page up", tcell.NewEventKey(tcell.KeyPgUp, 0, 0), Intent{grid.AxisRows, Request{UnitLarge, -1}}},
		{"ctrl page down", tcell.NewEventKey(tcell.KeyPgDn, 0, tcell.ModCtrl), Intent{grid.AxisCols, Request{UnitLarge, 1}}},
		{"ctrl end", tcell.NewEventKey(tcell.KeyEnd, 0, tcell.ModCtrl), Intent{grid.AxisRows, Request{UnitProportional, 1}}},
		{"home", tcell.NewEventKey(tcell.KeyHome, 0, 0), Intent{grid.AxisCols, Request{UnitProportional, 0}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := IntentForKey(tt.ev)
			if !ok || got != tt.want {
				t.Fatalf("IntentForKey = %+v,%v want %+v", got, ok, tt.want)
			}
		})
	}
	if _, ok := IntentForKey(tcell.NewEventKey(tcell.KeyRune, 'q', 0)); ok {
		t.Fatalf("rune keys should not scroll")
	}
}

func TestIntentForMouse(t *testing.T) {
	got, ok := IntentForMouse(tcell.NewEventMouse(0, 0, tcell.WheelDown, 0))
	if !ok || got != (Intent{grid.AxisRows, Request{UnitMedium, 1}}) {
		t.Fatalf("wheel down: %+v %v", got, ok)
	}
	got, ok = IntentForMouse(tcell.NewEventMouse(0, 0, tcell.WheelUp, tcell.ModShift))
	if !ok || got != (Intent{grid.AxisCols, Request{UnitMedium, -1}}) {
		t.Fatalf("shift wheel up: %+v %v", got, ok)
	}
	if _, ok := IntentForMouse(tcell.NewEventMouse(0, 0, tcell.Button1, 0)); ok {
		t.Fatalf("clicks should not scroll")
	}
}
