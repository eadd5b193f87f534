// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package gridviewer

import (
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelgrid/config"
	"github.com/framegrace/texelgrid/texelui/core"
	"github.com/framegrace/texelgrid/texelui/widgets"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "texelgrid-gridviewer-test")
	if err != nil {
		panic(err)
	}
	os.Setenv("XDG_CONFIG_HOME", dir)
	code := m.Run()
	os.RemoveAll(dir)
	os.Exit(code)
}

func model(rows int) *widgets.SliceModel {
	m := &widgets.SliceModel{Cols: []widgets.Column{{Title: "Id"}, {Title: "Text"}}}
	for i := 0; i < rows; i++ {
		m.Rows = append(m.Rows, []string{fmt.Sprint(i), fmt.Sprintf("item %d", i)})
	}
	return m
}

func line(buf [][]core.Cell, y int) string {
	var sb strings.Builder
	for _, c := range buf[y] {
		if c.Ch != 0 {
			sb.WriteRune(c.Ch)
		}
	}
	return sb.String()
}

func TestAppLayoutAndStatus(t *testing.T) {
	app := New("Demo", model(30), config.Config{})
	app.Resize(40, 10)
	buf := app.Render()

	if got := buf[0][0].Ch; got != '┌' {
		t.Fatalf("expected border corner, got %q", string(got))
	}
	if !strings.Contains(line(buf, 0), "Demo") {
		t.Fatalf("title missing from top border: %q", line(buf, 0))
	}
	status := line(buf, 9)
	if !strings.Contains(status, "row 0/30") {
		t.Fatalf("unexpected status %q", status)
	}
	if !strings.Contains(status, "cells ") {
		t.Fatalf("expected live cell count in status %q", status)
	}
	if got := app.GetTitle(); got != "Demo" {
		t.Fatalf("GetTitle = %q", got)
	}
}

func TestAppKeysScrollAndUpdateStatus(t *testing.T) {
	app := New("Demo", model(30), config.Config{})
	app.Resize(40, 10)
	app.Render()

	app.HandleKey(tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone))
	app.HandleKey(tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone))
	if got := app.View().ScrollPosition().Row; got != 2 {
		t.Fatalf("expected row 2 after two Down keys, got %d", got)
	}
	buf := app.Render()
	if status := line(buf, 9); !strings.Contains(status, "row 2/30") {
		t.Fatalf("status not updated: %q", status)
	}
	// First data line sits under the header inside the border.
	if got := line(buf, 2); !strings.Contains(got, "item 2") {
		t.Fatalf("expected item 2 on first grid line, got %q", got)
	}
}

func TestAppClickSelects(t *testing.T) {
	app := New("Demo", model(30), config.Config{})
	app.Resize(40, 10)
	app.Render()

	app.HandleMouse(tcell.NewEventMouse(2, 3, tcell.Button1, tcell.ModNone))
	app.HandleMouse(tcell.NewEventMouse(2, 3, tcell.ButtonNone, tcell.ModNone))
	row, col, ok := app.View().Selected()
	if !ok || row != 1 || col != 0 {
		t.Fatalf("expected (1,0) selected, got (%d,%d,%v)", row, col, ok)
	}
	if got := app.Status().Right; got != "1:0" {
		t.Fatalf("status selection = %q", got)
	}
}

func TestAppReadsViewerConfig(t *testing.T) {
	cfg := config.Config{appName: map[string]interface{}{
		"max_col_width":  12.0,
		"max_row_height": 2.0,
	}}
	app := New("Demo", model(3), cfg)
	if app.View().MaxColWidth != 12 || app.View().MaxRowHeight != 2 {
		t.Fatalf("config not applied: %d %d", app.View().MaxColWidth, app.View().MaxRowHeight)
	}
}

func TestAppRunStops(t *testing.T) {
	app := New("Demo", model(1), config.Config{})
	done := make(chan error, 1)
	go func() { done <- app.Run() }()
	app.Stop()
	app.Stop()
	if err := <-done; err != nil {
		t.Fatalf("Run returned %v", err)
	}
}
