package cli

import (
	"os"
	"path/filepath"

	"github.com/toyz/ctorgen/internal/config"
)

// ConfigLocator finds the configuration file that applies to a source tree
type ConfigLocator struct {
	fileName string
}

// NewConfigLocator creates a locator looking for config.DefaultFileName
func NewConfigLocator() *ConfigLocator {
	return &ConfigLocator{fileName: config.DefaultFileName}
}

// Locate looks for the configuration file in start and its parent
// directories. start may be a file, a directory or a "dir/..." pattern.
func (l *ConfigLocator) Locate(start string) (string, bool) {
	start = trimRecursive(start)
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", false
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		dir = filepath.Dir(dir)
	}

	for {
		candidate := filepath.Join(dir, l.fileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root directory
			return "", false
		}
		dir = parent
	}
}

func trimRecursive(path string) string {
	switch {
	case path == "..." || path == "":
		return "."
	case filepath.Base(path) == "...":
		return filepath.Dir(path)
	}
	return path
}
