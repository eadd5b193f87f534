// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/store.go
// Summary: File-backed config store with first-run seeding from embedded defaults.

package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/framegrace/texelgrid/defaults"
)

const systemConfigName = "texelgrid.json"

// Store caches the system config and app configs read from one root
// directory. Missing files are seeded from the embedded defaults.
type Store struct {
	root string // "" resolves <user config dir>/texelgrid

	mu      sync.RWMutex
	system  Config
	apps    map[string]Config
	loaded  bool
	loadErr error
}

// NewStore returns a store rooted at dir. The files are read lazily.
func NewStore(dir string) *Store {
	return &Store{root: dir, apps: make(map[string]Config)}
}

// Root returns the directory holding the config files.
func (s *Store) Root() (string, error) {
	if s.root != "" {
		return s.root, nil
	}
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "texelgrid"), nil
}

func (s *Store) appPath(app string, parts ...string) (string, error) {
	if app == "" {
		return "", fmt.Errorf("app name is required")
	}
	root, err := s.Root()
	if err != nil {
		return "", err
	}
	return filepath.Join(append([]string{root, "apps", app}, parts...)...), nil
}

// SystemPath returns the system config file path.
func (s *Store) SystemPath() (string, error) {
	root, err := s.Root()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, systemConfigName), nil
}

// AppPath returns the config file path of a named app.
func (s *Store) AppPath(app string) (string, error) { return s.appPath(app, "config.json") }

// DataDir returns the directory for app data files such as grid databases.
func (s *Store) DataDir(app string) (string, error) { return s.appPath(app, "data") }

func (s *Store) ensureLoaded() {
	s.mu.RLock()
	loaded := s.loaded
	s.mu.RUnlock()
	if loaded {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		s.loadErr = s.loadSystemLocked()
		s.loaded = true
	}
}

// Err returns the most recent system config load error.
func (s *Store) Err() error {
	s.ensureLoaded()
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadErr
}

// System returns the system configuration.
func (s *Store) System() Config {
	s.ensureLoaded()
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.system
}

// App returns the config of a named app, loading it on first use.
func (s *Store) App(name string) Config {
	if name == "" {
		return nil
	}
	s.mu.RLock()
	cfg := s.apps[name]
	s.mu.RUnlock()
	if cfg != nil {
		return cfg
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if cfg, ok := s.apps[name]; ok {
		return cfg
	}
	loaded, err := s.loadAppLocked(name)
	if err != nil {
		log.Printf("Config: Failed to load app %q config: %v", name, err)
	}
	s.apps[name] = loaded
	return loaded
}

// Reload refreshes the system config and all cached app configs.
func (s *Store) Reload() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadErr = s.loadSystemLocked()
	s.loaded = true
	for name := range s.apps {
		loaded, err := s.loadAppLocked(name)
		if err != nil {
			log.Printf("Config: Failed to reload app %q config: %v", name, err)
			continue
		}
		s.apps[name] = loaded
	}
	return s.loadErr
}

// SetSystem replaces the in-memory system config.
func (s *Store) SetSystem(cfg Config) {
	s.ensureLoaded()
	s.mu.Lock()
	defer s.mu.Unlock()
	if cfg == nil {
		cfg = make(Config)
	}
	s.system = Clone(cfg)
}

// SetApp replaces the in-memory config of a named app.
func (s *Store) SetApp(name string, cfg Config) {
	if name == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if cfg == nil {
		cfg = make(Config)
	}
	s.apps[name] = Clone(cfg)
}

// SaveSystem writes the in-memory system config to disk.
func (s *Store) SaveSystem() error {
	s.ensureLoaded()
	s.mu.RLock()
	defer s.mu.RUnlock()
	path, err := s.SystemPath()
	if err != nil {
		return err
	}
	return writeConfig(path, s.system)
}

// SaveApp writes a named app config to disk.
func (s *Store) SaveApp(name string) error {
	cfg := s.App(name)
	if cfg == nil {
		return nil
	}
	path, err := s.AppPath(name)
	if err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return writeConfig(path, cfg)
}

func (s *Store) loadSystemLocked() error {
	path, err := s.SystemPath()
	if err != nil {
		log.Printf("Config: Failed to resolve system config path: %v", err)
		s.system = make(Config)
		applySystemDefaults(s.system)
		return err
	}
	cfg, err := loadOrSeed(path, func() Config { return embedded("") })
	applySystemDefaults(cfg)
	s.system = cfg
	if err == nil {
		log.Printf("Config: Loaded system config from %s", path)
	}
	return err
}

func (s *Store) loadAppLocked(name string) (Config, error) {
	path, err := s.AppPath(name)
	if err != nil {
		cfg := make(Config)
		applyAppDefaults(name, cfg)
		return cfg, err
	}
	cfg, err := loadOrSeed(path, func() Config { return embedded(name) })
	applyAppDefaults(name, cfg)
	return cfg, err
}

// loadOrSeed reads the config at path. A missing or empty file is replaced
// with the seed, which is written back so users can edit it. A file that
// fails to parse is left on disk and reported.
func loadOrSeed(path string, seed func() Config) (Config, error) {
	cfg, exists, readErr := readConfig(path)
	if readErr != nil {
		log.Printf("Config: Failed to read config %s: %v", path, readErr)
		if exists {
			return make(Config), readErr
		}
		cfg = nil
	}
	if exists && len(cfg) > 0 {
		return cfg, nil
	}

	cfg = seed()
	if cfg == nil {
		return make(Config), readErr
	}
	if err := writeConfig(path, cfg); err != nil {
		log.Printf("Config: Failed to write default config %s: %v", path, err)
		if readErr == nil {
			readErr = err
		}
	}
	return cfg, readErr
}

var (
	embeddedMu    sync.Mutex
	embeddedCache = make(map[string]Config)
)

// embedded returns a copy of the parsed embedded defaults for an app, or
// the system defaults for the empty name. Unknown apps yield nil.
func embedded(app string) Config {
	embeddedMu.Lock()
	defer embeddedMu.Unlock()
	cfg, ok := embeddedCache[app]
	if !ok {
		data, err := defaults.Lookup(app)
		if err == nil {
			if err := json.Unmarshal(data, &cfg); err != nil {
				log.Printf("Config: Embedded defaults for %q are invalid: %v", app, err)
				cfg = nil
			}
		}
		embeddedCache[app] = cfg
	}
	return Clone(cfg)
}

func readConfig(path string) (Config, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, true, err
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, true, err
	}
	return cfg, true, nil
}

func writeConfig(path string, cfg Config) error {
	if cfg == nil {
		cfg = make(Config)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
