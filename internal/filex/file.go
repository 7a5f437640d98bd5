// Package filex holds small filesystem helpers.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// userHomeDir is a test seam.
var userHomeDir = os.UserHomeDir

// EnsureParentDir expands a leading "~/" in path, creates the parent
// directory if needed and returns the expanded path.
func EnsureParentDir(path string) (string, error) {
	if strings.HasPrefix(path, "~/") {
		home, err := userHomeDir()
		if err != nil {
			return "", fmt.Errorf("home dir: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return path, nil
}
