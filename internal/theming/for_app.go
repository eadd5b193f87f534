// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/theming/for_app.go
// Summary: Semantic color lookup backed by the config store.

package theming

import (
	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelgrid/config"
)

// Palette maps semantic color names (e.g. "text.primary") to colors.
type Palette map[string]tcell.Color

var fallback = Palette{
	"text.primary":   tcell.ColorWhite,
	"text.muted":     tcell.ColorGray,
	"bg.surface":     tcell.ColorBlack,
	"bg.alt":         tcell.ColorBlack,
	"accent.primary": tcell.ColorBlue,
	"border.active":  tcell.ColorYellow,
}

// GetSemanticColor returns the named color or tcell.ColorDefault when unknown.
func (p Palette) GetSemanticColor(name string) tcell.Color {
	if c, ok := p[name]; ok {
		return c
	}
	return tcell.ColorDefault
}

// Get returns the system palette: built-in fallbacks overlaid with the
// "theme" section of the system config.
func Get() Palette {
	p := make(Palette, len(fallback))
	for k, v := range fallback {
		p[k] = v
	}
	applyOverrides(p, config.System().Strings("theme"))
	return p
}

// ForApp returns the base palette merged with any per-app "theme" overrides.
func ForApp(app string) Palette {
	base := Get()
	if app == "" {
		return base
	}
	applyOverrides(base, config.App(app).Strings("theme"))
	return base
}

func applyOverrides(p Palette, overrides map[string]string) {
	for name, value := range overrides {
		c := tcell.GetColor(value)
		if c == tcell.ColorDefault {
			continue
		}
		p[name] = c
	}
}
