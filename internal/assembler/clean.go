// Package assembler runs the generate-compile-cleanup cycle over every
// application directory.
package assembler

import (
	"fmt"
	"path/filepath"

	"github.com/jonathan/application-generator/internal/compiler"
	"github.com/jonathan/application-generator/internal/locate"
)

// Clean removes compiler byproducts from every entity directory and returns
// the removed paths. Sources and compiled documents are kept.
func (a *Assembler) Clean() ([]string, error) {
	if err := requireDir(a.cfg.Root); err != nil {
		return nil, err
	}

	dirs, err := locate.Subdirectories(a.cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("failed to list entities in %s: %w", a.cfg.Root, err)
	}

	var removed []string
	for _, dir := range dirs {
		paths, err := compiler.Cleanup(dir, a.cfg.Byproducts,
			filepath.Join(dir, a.cfg.SourceName),
			a.compiler.OutputPath(dir))
		removed = append(removed, paths...)
		if err != nil {
			return removed, fmt.Errorf("failed to clean %s: %w", dir, err)
		}
	}
	return removed, nil
}
