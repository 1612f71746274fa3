// Package pathmap maps slugs to source files and destination artifacts.
package pathmap

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/starford/cascade/internal/apperr"
	"github.com/starford/cascade/internal/models"
)

// Mapper resolves the bidirectional slug mapping: slug to source file via a
// glob over the accepted extensions, and slug to destination path under the
// configured artifact directory.
type Mapper struct {
	sourceRoot string // absolute
	destPath   string // artifact directory, relative to the output root
	exts       []string
}

// New creates a Mapper. sourceRoot must already be absolute (the catalog
// resolves it); destPath stays relative so the artifact writer can confine
// it to the output root.
func New(sourceRoot, destPath string, exts []string) *Mapper {
	return &Mapper{
		sourceRoot: sourceRoot,
		destPath:   destPath,
		exts:       slices.Clone(exts),
	}
}

// ResolveSource returns the source file for slug, trying every accepted
// extension. When more than one extension matches, the lexicographically
// first match wins; this mirrors the tie-break of the glob it replaces and
// is deliberate, not an error. Partials never resolve.
func (m *Mapper) ResolveSource(slug models.Slug) (models.SourceFile, error) {
	if err := slug.Validate(); err != nil {
		return models.SourceFile{}, fmt.Errorf("%w: %v", apperr.ErrNotFound, err)
	}
	if slug.IsPartial() {
		return models.SourceFile{}, fmt.Errorf("%w: %q is a partial", apperr.ErrNotFound, slug)
	}

	matches, err := doublestar.FilepathGlob(m.sourcePattern(slug))
	if err != nil {
		return models.SourceFile{}, fmt.Errorf("pathmap: glob %q: %w", slug, err)
	}
	if len(matches) == 0 {
		return models.SourceFile{}, fmt.Errorf("%w: no source for slug %q", apperr.ErrNotFound, slug)
	}
	slices.Sort(matches)

	rel, err := filepath.Rel(m.sourceRoot, matches[0])
	if err != nil {
		return models.SourceFile{}, fmt.Errorf("pathmap: relativize %q: %w", matches[0], err)
	}
	return models.SourceFile{
		Path: matches[0],
		Rel:  filepath.ToSlash(rel),
	}, nil
}

// Exists reports whether slug resolves to a compilable source file.
// Partials never exist from the public surface.
func (m *Mapper) Exists(slug models.Slug) bool {
	_, err := m.ResolveSource(slug)
	return err == nil
}

// DestinationFor returns the artifact path for slug, relative to the output
// root: <destPath>/<slug segments>.css.
func (m *Mapper) DestinationFor(slug models.Slug) string {
	parts := append([]string{m.destPath}, slug...)
	return filepath.Join(parts...) + models.DestinationExt
}

// SlugOf derives the slug for a cataloged source file by stripping the
// extension from its root-relative path.
func (m *Mapper) SlugOf(file models.SourceFile) models.Slug {
	rel := strings.TrimSuffix(file.Rel, filepath.Ext(file.Rel))
	return models.ParseSlug(rel)
}

// Slugs maps cataloged files to slugs, excluding partials.
func (m *Mapper) Slugs(files []models.SourceFile) []models.Slug {
	var out []models.Slug
	for _, f := range files {
		if f.Partial {
			continue
		}
		out = append(out, m.SlugOf(f))
	}
	return out
}

// sourcePattern builds the candidate glob for slug, e.g.
// "<root>/admin/screen{.less,.lss}".
func (m *Mapper) sourcePattern(slug models.Slug) string {
	parts := append([]string{m.sourceRoot}, slug...)
	return filepath.Join(parts...) + "{" + strings.Join(m.exts, ",") + "}"
}
