// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package theming

import (
	"os"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelgrid/config"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "texelgrid-theming-test")
	if err != nil {
		panic(err)
	}
	os.Setenv("XDG_CONFIG_HOME", dir)
	code := m.Run()
	os.RemoveAll(dir)
	os.Exit(code)
}

func TestGetUsesSystemTheme(t *testing.T) {
	p := Get()
	if got, want := p.GetSemanticColor("text.primary"), tcell.GetColor("#cdd6f4"); got != want {
		t.Fatalf("text.primary = %v, want %v", got, want)
	}
	if got := p.GetSemanticColor("no.such.color"); got != tcell.ColorDefault {
		t.Fatalf("unknown names should map to ColorDefault, got %v", got)
	}
}

func TestForAppOverrides(t *testing.T) {
	config.Default().SetApp("themed", config.Config{
		"theme": map[string]interface{}{
			"accent.primary": "red",
			"text.muted":     "not-a-color",
		},
	})
	p := ForApp("themed")
	if got := p.GetSemanticColor("accent.primary"); got != tcell.ColorRed {
		t.Fatalf("accent.primary = %v, want red", got)
	}
	if got, want := p.GetSemanticColor("text.muted"), Get().GetSemanticColor("text.muted"); got != want {
		t.Fatalf("invalid override should be ignored, got %v want %v", got, want)
	}
}
