// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: defaults/embedded.go
// Summary: Default config files shipped inside the binary.

package defaults

import (
	"embed"
	"path"
)

//go:embed texelgrid.json apps/*/config.json
var files embed.FS

// Lookup returns the default config JSON for an app, or the system
// defaults for the empty name. Apps without defaults return fs.ErrNotExist.
func Lookup(app string) ([]byte, error) {
	if app == "" {
		return files.ReadFile("texelgrid.json")
	}
	return files.ReadFile(path.Join("apps", app, "config.json"))
}
