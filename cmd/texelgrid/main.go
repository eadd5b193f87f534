// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texelgrid/main.go
// Summary: Browses a SQLite-backed grid in the terminal.
// Usage: texelgrid [-db path] [-rows n] [-reseed] [-dump]

package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"golang.org/x/term"

	"github.com/framegrace/texelgrid/apps/gridviewer"
	"github.com/framegrace/texelgrid/config"
	"github.com/framegrace/texelgrid/internal/devshell"
	"github.com/framegrace/texelgrid/internal/tablestore"
	"github.com/framegrace/texelgrid/texelui/core"
)

const appName = "gridviewer"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	fs := flag.NewFlagSet("texelgrid", flag.ContinueOnError)
	dbPath := fs.String("db", "", "Grid database path (default: config db_path or the app data dir)")
	rows := fs.Int("rows", 0, "Rows to generate when seeding (default: config seed_rows)")
	reseed := fs.Bool("reseed", false, "Replace the database content with generated demo rows")
	dump := fs.Bool("dump", false, "Print one frame to stdout and exit")
	title := fs.String("title", "texelgrid", "Title shown on the grid border")
	if err := fs.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}

	cfg := config.App(appName)
	path, err := resolveDBPath(*dbPath, cfg)
	if err != nil {
		return fmt.Errorf("resolve database path: %w", err)
	}

	interactive := !*dump && term.IsTerminal(int(os.Stdout.Fd()))
	if interactive {
		logFile, err := setupLogging()
		if err != nil {
			return fmt.Errorf("setup logging: %w", err)
		}
		defer logFile.Close()
	}

	store, err := tablestore.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer store.Close()

	if *reseed || store.RowCount() == 0 {
		n := *rows
		if n <= 0 {
			n = cfg.GetInt(appName, "seed_rows", 20000)
		}
		log.Printf("TexelGrid: Seeding %d rows into %s", n, path)
		if err := store.Seed(n); err != nil {
			return fmt.Errorf("seed: %w", err)
		}
	}

	app := gridviewer.New(*title, store, cfg)
	if !interactive {
		w, h, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil {
			w, h = 80, 24
		}
		app.Resize(w, h)
		return writeFrame(os.Stdout, app.Render())
	}

	return devshell.Run(func([]string) (core.App, error) { return app, nil }, fs.Args())
}

func resolveDBPath(flagPath string, cfg config.Config) (string, error) {
	if flagPath != "" {
		return flagPath, nil
	}
	if p := cfg.GetString(appName, "db_path", ""); p != "" {
		return p, nil
	}
	dir, err := config.DataDir(appName)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "grid.db"), nil
}

// writeFrame prints the characters of a rendered buffer, one line per row.
func writeFrame(w io.Writer, buf [][]core.Cell) error {
	bw := bufio.NewWriter(w)
	for _, row := range buf {
		for _, c := range row {
			if c.Ch == 0 {
				continue
			}
			bw.WriteRune(c.Ch)
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

func setupLogging() (*os.File, error) {
	dir, err := config.DataDir(appName)
	if err != nil {
		return nil, err
	}
	logDir := filepath.Join(filepath.Dir(dir), "logs")
	if err := os.MkdirAll(logDir, 0o750); err != nil {
		return nil, err
	}
	file, err := os.OpenFile(filepath.Join(logDir, "texelgrid.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o640)
	if err != nil {
		return nil, err
	}
	log.SetOutput(file)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	return file, nil
}
