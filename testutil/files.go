// Package testutil contains helpers shared by the package tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// FixedTime is a stable timestamp for tests that persist time values.
var FixedTime = time.Date(2024, time.March, 9, 14, 30, 0, 123456789, time.UTC)

// TempJSONPath returns the path of a not yet existing "<name>.json" file in a
// directory removed when the test ends.
func TempJSONPath(t *testing.T, name string) string {
	t.Helper()
	return filepath.Join(t.TempDir(), name+".json")
}

// WriteFile writes content to a new file named name in a temporary directory
// and returns its path.
func WriteFile(t *testing.T, name string, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test file %q: %v", path, err)
	}
	return path
}
