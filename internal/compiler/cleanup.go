// Package compiler drives the external document compiler.
package compiler

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// DefaultByproducts are the compiler byproduct extensions removed after a run
var DefaultByproducts = []string{".aux", ".log", ".out"}

// Cleanup removes files in dir whose names end with one of extensions.
// Names listed in keep are never removed. Running it twice is harmless.
func Cleanup(dir string, extensions []string, keep ...string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	protected := make(map[string]bool, len(keep))
	for _, name := range keep {
		protected[filepath.Base(name)] = true
	}

	var removed []string
	var errs []error
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || protected[name] || !hasAnySuffix(name, extensions) {
			continue
		}
		path := filepath.Join(dir, name)
		if err := os.Remove(path); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				errs = append(errs, err)
			}
			continue
		}
		removed = append(removed, path)
	}
	return removed, errors.Join(errs...)
}

func hasAnySuffix(name string, suffixes []string) bool {
	for _, suffix := range suffixes {
		if suffix != "" && strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}
