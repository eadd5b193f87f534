// Copyright 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelui/scroll/controller.go
// Summary: Maps keyboard and mouse input to scroll requests.

package scroll

import (
	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelgrid/texelui/grid"
)

// Intent is a scroll request bound to the axis it applies to.
type Intent struct {
	Axis    grid.Axis
	Request Request
}

// IntentForKey maps navigation keys to scroll intents:
// arrows are small steps, PgUp/PgDn are pages, Ctrl+Home/End jump to the
// first or last row and Home/End to the first or last column.
func IntentForKey(ev *tcell.EventKey) (Intent, bool) {
	ctrl := ev.Modifiers()&tcell.ModCtrl != 0
	switch ev.Key() {
	case tcell.KeyUp:
		return Intent{grid.AxisRows, Request{UnitSmall, -1}}, true
	case tcell.KeyDown:
		return Intent{grid.AxisRows, Request{UnitSmall, 1}}, true
	case tcell.KeyLeft:
		return Intent{grid.AxisCols, Request{UnitSmall, -1}}, true
	case tcell.KeyRight:
		return Intent{grid.AxisCols, Request{UnitSmall, 1}}, true
	case tcell.KeyPgUp:
		if ctrl {
			return Intent{grid.AxisCols, Request{UnitLarge, -1}}, true
		}
		return Intent{grid.AxisRows, Request{UnitLarge, -1}}, true
	case tcell.KeyPgDn:
		if ctrl {
			return Intent{grid.AxisCols, Request{UnitLarge, 1}}, true
		}
		return Intent{grid.AxisRows, Request{UnitLarge, 1}}, true
	case tcell.KeyHome:
		if ctrl {
			return Intent{grid.AxisRows, Request{UnitProportional, 0}}, true
		}
		return Intent{grid.AxisCols, Request{UnitProportional, 0}}, true
	case tcell.KeyEnd:
		if ctrl {
			return Intent{grid.AxisRows, Request{UnitProportional, 1}}, true
		}
		return Intent{grid.AxisCols, Request{UnitProportional, 1}}, true
	}
	return Intent{}, false
}

// IntentForMouse maps wheel events to medium steps. Shift turns vertical
// wheel motion into horizontal scrolling.
func IntentForMouse(ev *tcell.EventMouse) (Intent, bool) {
	shift := ev.Modifiers()&tcell.ModShift != 0
	buttons := ev.Buttons()
	switch {
	case buttons&tcell.WheelUp != 0:
		if shift {
			return Intent{grid.AxisCols, Request{UnitMedium, -1}}, true
		}
		return Intent{grid.AxisRows, Request{UnitMedium, -1}}, true
	case buttons&tcell.WheelDown != 0:
		if shift {
			return Intent{grid.AxisCols, Request{UnitMedium, 1}}, true
		}
		return Intent{grid.AxisRows, Request{UnitMedium, 1}}, true
	case buttons&tcell.WheelLeft != 0:
		return Intent{grid.AxisCols, Request{UnitMedium, -1}}, true
	case buttons&tcell.WheelRight != 0:
		return Intent{grid.AxisCols, Request{UnitMedium, 1}}, true
	}
	return Intent{}, false
}
