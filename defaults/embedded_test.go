// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package defaults

import (
	"encoding/json"
	"errors"
	"io/fs"
	"testing"
)

func TestLookupParses(t *testing.T) {
	for _, app := range []string{"", "gridviewer"} {
		data, err := Lookup(app)
		if err != nil {
			t.Fatalf("Lookup(%q): %v", app, err)
		}
		var v map[string]interface{}
		if err := json.Unmarshal(data, &v); err != nil {
			t.Fatalf("defaults for %q are not valid JSON: %v", app, err)
		}
	}
	if _, err := Lookup("nope"); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected fs.ErrNotExist, got %v", err)
	}
}
