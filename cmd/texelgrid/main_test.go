// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/framegrace/texelgrid/config"
	"github.com/framegrace/texelgrid/texelui/core"
)

func TestWriteFrameSkipsWideContinuations(t *testing.T) {
	buf := [][]core.Cell{
		{{Ch: '日'}, {Ch: 0}, {Ch: 'a'}},
		{{Ch: ' '}, {Ch: 'b'}, {Ch: ' '}},
	}
	var out bytes.Buffer
	if err := writeFrame(&out, buf); err != nil {
		t.Fatalf("writeFrame: %v", err)
	}
	if got := out.String(); got != "日a\n b \n" {
		t.Fatalf("unexpected frame %q", got)
	}
}

func TestResolveDBPath(t *testing.T) {
	root := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", root)

	if got, _ := resolveDBPath("/tmp/x.db", nil); got != "/tmp/x.db" {
		t.Fatalf("flag should win, got %q", got)
	}
	cfg := config.Config{appName: map[string]interface{}{"db_path": "/data/g.db"}}
	if got, _ := resolveDBPath("", cfg); got != "/data/g.db" {
		t.Fatalf("config path should be used, got %q", got)
	}
	got, err := resolveDBPath("", config.Config{})
	if err != nil {
		t.Fatalf("resolveDBPath: %v", err)
	}
	want := filepath.Join(root, "texelgrid", "apps", "gridviewer", "data", "grid.db")
	if got != want {
		t.Fatalf("default path = %q, want %q", got, want)
	}
}
