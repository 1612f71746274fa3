// Package catalog enumerates stylesheet sources under the source root.
package catalog

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/starford/cascade/internal/models"
)

// Catalog walks a source tree for files matching the accepted extensions.
// It holds no state besides its configuration: every List call re-reads the
// filesystem, since sources may change between invocations.
type Catalog struct {
	root string // absolute path to the source root
	exts []string
}

// New creates a Catalog rooted at the given directory, which must exist.
func New(root string, exts []string) (*Catalog, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("catalog: resolve root: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("catalog: stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("catalog: root is not a directory: %s", abs)
	}
	return &Catalog{root: abs, exts: slices.Clone(exts)}, nil
}

// Root returns the absolute source root.
func (c *Catalog) Root() string {
	return c.root
}

// List returns every source file under the root, partials included. The
// order is the filesystem walk order.
func (c *Catalog) List() ([]models.SourceFile, error) {
	var out []models.SourceFile
	err := filepath.WalkDir(c.root, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || !c.accepted(d.Name()) {
			return nil
		}
		rel, err := filepath.Rel(c.root, p)
		if err != nil {
			return err
		}
		out = append(out, models.SourceFile{
			Path:    p,
			Rel:     filepath.ToSlash(rel),
			Partial: strings.HasPrefix(d.Name(), models.PartialPrefix),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("catalog: list: %w", err)
	}
	return out, nil
}

func (c *Catalog) accepted(name string) bool {
	return slices.Contains(c.exts, filepath.Ext(name))
}
