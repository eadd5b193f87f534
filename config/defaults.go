// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/defaults.go
// Summary: Default values for system and app configuration files.

package config

func applySystemDefaults(cfg Config) {
	if cfg == nil {
		return
	}
	cfg.RegisterDefaults("grid", Section{
		"measure_batch":  25,
		"strict_offsets": false,
		"macro_width":    0,
		"debug":          false,
	})
	cfg.RegisterDefaults("scroll", Section{
		"small_step":         1,
		"medium_step":        3,
		"thumb_sample_pages": 4,
	})
	cfg.RegisterDefaults("resize", Section{
		"tolerance": 0,
		"min_size":  1,
	})
	cfg.RegisterDefaults("theme", Section{})
}

func applyAppDefaults(app string, cfg Config) {
	if cfg == nil {
		return
	}
	switch app {
	case "gridviewer":
		cfg.RegisterDefaults("gridviewer", Section{
			"db_path":        "",
			"seed_rows":      20000,
			"code_style":     "catppuccin-mocha",
			"max_col_width":  40,
			"max_row_height": 6,
		})
	}
}
