// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/config.go
// Summary: Config types and the process-wide default store.

package config

// Config stores configuration sections as JSON-compatible data.
type Config map[string]interface{}

// Section stores key/value pairs for a configuration section.
type Section map[string]interface{}

// defaultStore resolves its root from the user config dir on every access,
// so tests may point XDG_CONFIG_HOME elsewhere before first use.
var defaultStore = NewStore("")

// Default returns the process-wide store.
func Default() *Store { return defaultStore }

// Err returns the most recent system config load error.
func Err() error { return defaultStore.Err() }

// System returns the system configuration (texelgrid.json).
func System() Config { return defaultStore.System() }

// App returns the config for a named app (apps/<app>/config.json).
func App(name string) Config { return defaultStore.App(name) }

// Reload refreshes the system config and all cached app configs.
func Reload() error { return defaultStore.Reload() }

// DataDir returns the directory for app data files such as grid databases.
func DataDir(app string) (string, error) { return defaultStore.DataDir(app) }

// Clone returns a copy of the config with each section copied one level deep.
func Clone(cfg Config) Config {
	if cfg == nil {
		return nil
	}
	clone := make(Config, len(cfg))
	for name, raw := range cfg {
		var src map[string]interface{}
		switch v := raw.(type) {
		case Section:
			src = v
		case map[string]interface{}:
			src = v
		default:
			clone[name] = v
			continue
		}
		out := make(Section, len(src))
		for key, value := range src {
			out[key] = value
		}
		clone[name] = out
	}
	return clone
}
