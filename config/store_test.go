// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func readDisk(t *testing.T, path string) Config {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	var disk Config
	if err := json.Unmarshal(data, &disk); err != nil {
		t.Fatalf("unmarshal config: %v", err)
	}
	return disk
}

func TestSystemDefaultsWritten(t *testing.T) {
	s := NewStore(t.TempDir())

	cfg := s.System()
	if got := cfg.GetInt("grid", "measure_batch", 0); got != 25 {
		t.Fatalf("expected measure_batch 25, got %d", got)
	}
	if err := s.Err(); err != nil {
		t.Fatalf("unexpected load error: %v", err)
	}

	path, err := s.SystemPath()
	if err != nil {
		t.Fatalf("SystemPath: %v", err)
	}
	disk := readDisk(t, path)
	if disk.Section("scroll") == nil || disk.Section("theme") == nil {
		t.Fatalf("expected scroll and theme sections on disk")
	}
}

func TestMissingKeysGetDefaults(t *testing.T) {
	s := NewStore(t.TempDir())
	path, _ := s.SystemPath()
	if err := writeConfig(path, Config{"grid": map[string]interface{}{"measure_batch": 7}}); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg := s.System()
	if got := cfg.GetInt("grid", "measure_batch", 0); got != 7 {
		t.Fatalf("user value should win, got %d", got)
	}
	if got := cfg.GetInt("scroll", "medium_step", 0); got != 3 {
		t.Fatalf("expected default medium_step 3, got %d", got)
	}
	if cfg.GetBool("grid", "strict_offsets", true) {
		t.Fatalf("expected strict_offsets default false")
	}
}

func TestBrokenConfigReportsError(t *testing.T) {
	s := NewStore(t.TempDir())
	path, _ := s.SystemPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg := s.System()
	if s.Err() == nil {
		t.Fatalf("expected load error for broken file")
	}
	if got := cfg.GetInt("grid", "measure_batch", 0); got != 25 {
		t.Fatalf("defaults should still apply, got %d", got)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "{not json" {
		t.Fatalf("broken file should be left untouched")
	}
}

func TestReloadPicksUpEdits(t *testing.T) {
	s := NewStore(t.TempDir())
	if got := s.App("gridviewer").GetInt("gridviewer", "max_row_height", 0); got != 6 {
		t.Fatalf("expected default max_row_height 6, got %d", got)
	}

	path, _ := s.AppPath("gridviewer")
	if err := writeConfig(path, Config{"gridviewer": map[string]interface{}{"max_row_height": 2}}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := s.Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if got := s.App("gridviewer").GetInt("gridviewer", "max_row_height", 0); got != 2 {
		t.Fatalf("expected reloaded max_row_height 2, got %d", got)
	}
}

func TestSaveSystemWritesUpdates(t *testing.T) {
	s := NewStore(t.TempDir())
	s.SetSystem(Config{"grid": map[string]interface{}{"strict_offsets": true}})
	if err := s.SaveSystem(); err != nil {
		t.Fatalf("SaveSystem: %v", err)
	}
	path, _ := s.SystemPath()
	if !readDisk(t, path).GetBool("grid", "strict_offsets", false) {
		t.Fatalf("expected strict_offsets true on disk")
	}
}

func TestAppDefaultsWritten(t *testing.T) {
	s := NewStore(t.TempDir())

	cfg := s.App("gridviewer")
	if got := cfg.GetString("gridviewer", "code_style", ""); got != "catppuccin-mocha" {
		t.Fatalf("expected default code_style, got %q", got)
	}
	if got := cfg.GetInt("gridviewer", "seed_rows", 0); got != 20000 {
		t.Fatalf("expected seed_rows 20000, got %d", got)
	}
	path, _ := s.AppPath("gridviewer")
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected app config to be written: %v", err)
	}

	// Apps without embedded defaults get an empty config and no file.
	if cfg := s.App("other"); cfg == nil {
		t.Fatalf("expected non-nil config for unknown app")
	}
	other, _ := s.AppPath("other")
	if _, err := os.Stat(other); !os.IsNotExist(err) {
		t.Fatalf("unknown app should not get a config file, stat err %v", err)
	}
}

func TestSaveAppWritesUpdates(t *testing.T) {
	s := NewStore(t.TempDir())
	s.SetApp("gridviewer", Config{
		"gridviewer": map[string]interface{}{
			"max_row_height": 3,
		},
	})
	if err := s.SaveApp("gridviewer"); err != nil {
		t.Fatalf("SaveApp: %v", err)
	}
	path, _ := s.AppPath("gridviewer")
	if got := readDisk(t, path).GetInt("gridviewer", "max_row_height", 0); got != 3 {
		t.Fatalf("expected max_row_height 3, got %d", got)
	}
}

func TestDataDirUnderRoot(t *testing.T) {
	root := t.TempDir()
	s := NewStore(root)
	dir, err := s.DataDir("gridviewer")
	if err != nil {
		t.Fatalf("DataDir: %v", err)
	}
	if want := filepath.Join(root, "apps", "gridviewer", "data"); dir != want {
		t.Fatalf("DataDir = %q, want %q", dir, want)
	}
	if _, err := s.DataDir(""); err == nil {
		t.Fatalf("expected error for empty app name")
	}
}

func TestDefaultStoreUsesUserConfigDir(t *testing.T) {
	root := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", root)
	dir, err := DataDir("gridviewer")
	if err != nil {
		t.Fatalf("DataDir: %v", err)
	}
	if want := filepath.Join(root, "texelgrid", "apps", "gridviewer", "data"); dir != want {
		t.Fatalf("DataDir = %q, want %q", dir, want)
	}
}

func TestCloneCopiesSections(t *testing.T) {
	orig := Config{"grid": map[string]interface{}{"debug": false}, "top": 1}
	c := Clone(orig)
	c.Section("grid")["debug"] = true
	if orig.GetBool("grid", "debug", true) {
		t.Fatalf("clone shares section with original")
	}
	if c["top"] != 1 {
		t.Fatalf("scalar values should be copied")
	}
}
