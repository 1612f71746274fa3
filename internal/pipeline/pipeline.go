// Package pipeline ties catalog, path mapping, compilation, and artifact
// writing together into the public build operations.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/starford/cascade/internal/apperr"
	"github.com/starford/cascade/internal/artifact"
	"github.com/starford/cascade/internal/catalog"
	"github.com/starford/cascade/internal/checksum"
	"github.com/starford/cascade/internal/compiler"
	"github.com/starford/cascade/internal/models"
	"github.com/starford/cascade/internal/pathmap"
)

// Pipeline runs the build operations against one source and output tree.
// It is synchronous and single-threaded: a pass either completes or fails
// on the first error. Callers that can trigger concurrent builds must
// serialize them; the pipeline does not.
type Pipeline struct {
	cat    *catalog.Catalog
	mapper *pathmap.Mapper
	comp   compiler.Compiler
	writer *artifact.Writer
	opts   artifact.RenderOptions
	logger *slog.Logger
}

// New assembles a Pipeline.
func New(cat *catalog.Catalog, mapper *pathmap.Mapper, comp compiler.Compiler, writer *artifact.Writer, opts artifact.RenderOptions, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		cat:    cat,
		mapper: mapper,
		comp:   comp,
		writer: writer,
		opts:   opts,
		logger: logger,
	}
}

// Exists reports whether slug resolves to a compilable source. Partials
// never exist from this surface, even when a matching file is on disk.
func (p *Pipeline) Exists(slug models.Slug) bool {
	return p.mapper.Exists(slug)
}

// GenerateOne compiles the source for slug and returns the rendered CSS.
// It never writes to disk; persisting is GenerateAll's job. Fails with
// apperr.ErrNotFound when no source exists, or *apperr.CompileError when
// the compiler rejects it.
func (p *Pipeline) GenerateOne(ctx context.Context, slug models.Slug) (string, error) {
	src, err := p.mapper.ResolveSource(slug)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(src.Path)
	if err != nil {
		return "", fmt.Errorf("pipeline: read %s: %w", src.Rel, err)
	}
	css, err := p.comp.Compile(ctx, data)
	if err != nil {
		var cerr *apperr.CompileError
		if errors.As(err, &cerr) && cerr.Path == "" {
			cerr.Path = src.Rel
		}
		return "", err
	}
	return string(artifact.Render(css, src.Rel, p.opts)), nil
}

// GenerateAll compiles every non-partial source and writes its artifact.
// The first failure aborts the pass; re-running after the fix regenerates
// everything, so no partial-failure bookkeeping is kept.
func (p *Pipeline) GenerateAll(ctx context.Context) error {
	files, err := p.cat.List()
	if err != nil {
		return err
	}
	for _, slug := range p.mapper.Slugs(files) {
		css, err := p.GenerateOne(ctx, slug)
		if err != nil {
			return err
		}
		dest := p.mapper.DestinationFor(slug)
		changed, err := p.artifactChanged(dest, []byte(css))
		if err != nil {
			return err
		}
		if err := p.writer.Write(dest, []byte(css)); err != nil {
			return err
		}
		if changed {
			p.logger.Info("generated", slog.String("slug", slug.String()), slog.String("dest", dest))
		} else {
			p.logger.Debug("unchanged", slog.String("slug", slug.String()), slog.String("dest", dest))
		}
	}
	return nil
}

// Clean removes the artifact derived from every cataloged source, partials
// included (a partial's artifact never exists, and removal of an absent
// file is a no-op). It does not compile anything.
func (p *Pipeline) Clean() error {
	files, err := p.cat.List()
	if err != nil {
		return err
	}
	for _, f := range files {
		dest := p.mapper.DestinationFor(p.mapper.SlugOf(f))
		if err := p.writer.Remove(dest); err != nil {
			return err
		}
		p.logger.Debug("removed", slog.String("dest", dest))
	}
	return nil
}

// Entry describes one compilable slug for status reporting.
type Entry struct {
	Slug        models.Slug
	Source      string // root-relative source path
	Destination string // output-root-relative artifact path
	Present     bool   // artifact exists on disk
}

// Status lists every compilable slug with its mapping and whether the
// artifact is currently present. No compilation happens.
func (p *Pipeline) Status() ([]Entry, error) {
	files, err := p.cat.List()
	if err != nil {
		return nil, err
	}
	var out []Entry
	for _, f := range files {
		if f.Partial {
			continue
		}
		slug := p.mapper.SlugOf(f)
		dest := p.mapper.DestinationFor(slug)
		abs, err := p.writer.Path(dest)
		if err != nil {
			return nil, err
		}
		_, statErr := os.Stat(abs)
		out = append(out, Entry{
			Slug:        slug,
			Source:      f.Rel,
			Destination: dest,
			Present:     statErr == nil,
		})
	}
	return out, nil
}

// artifactChanged reports whether data differs from what is already on disk
// at the root-relative dest. A missing artifact counts as changed.
func (p *Pipeline) artifactChanged(dest string, data []byte) (bool, error) {
	abs, err := p.writer.Path(dest)
	if err != nil {
		return false, err
	}
	prev, err := checksum.File(abs)
	if errors.Is(err, fs.ErrNotExist) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("pipeline: checksum %s: %w", dest, err)
	}
	return prev != checksum.Sum(data), nil
}
