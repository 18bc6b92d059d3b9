package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ConfigNames lists the accepted config file names in lookup order.
var ConfigNames = []string{"luaufmt.toml", ".luaufmt.toml"}

// FindConfig walks up from startDir to locate a config file. A file path as
// startDir starts the walk at its directory.
func FindConfig(startDir string) (path string, ok bool, err error) {
	if startDir == "" || startDir == "-" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	if st, statErr := os.Stat(dir); statErr == nil && !st.IsDir() {
		dir = filepath.Dir(dir)
	}
	for {
		for _, name := range ConfigNames {
			candidate := filepath.Join(dir, name)
			if st, err := os.Stat(candidate); err == nil && !st.IsDir() {
				return candidate, true, nil
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}
