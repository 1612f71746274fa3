// Package artifact post-processes compiled CSS and persists it under the
// output root.
package artifact

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// headerTemplate is the provenance comment prepended when headers are
// enabled. The placeholder receives the source file's root-relative path.
const headerTemplate = "/* Generated by cascade from %s. Edit that file instead; this one is overwritten on every build. */\n"

// RenderOptions controls post-processing of compiled CSS.
type RenderOptions struct {
	Compression bool
	Header      bool
}

// Render applies compression and header injection to compiled CSS.
// Compression strips line-break characters only; it is a compaction, not a
// structural minifier. sourceRel names the originating source in the header.
func Render(css []byte, sourceRel string, opts RenderOptions) []byte {
	text := string(css)
	if opts.Compression {
		text = strings.NewReplacer("\r", "", "\n", "").Replace(text)
	}
	if opts.Header {
		text = fmt.Sprintf(headerTemplate, sourceRel) + text
	}
	return []byte(text)
}

// Writer persists artifacts under a single output root. Paths handed to it
// are root-relative and may not escape the root.
type Writer struct {
	root string // absolute path to the output root
}

// NewWriter creates a Writer rooted at root. The root is created if absent:
// for a fresh checkout the output tree does not exist yet.
func NewWriter(root string) (*Writer, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("artifact: resolve root: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("artifact: create root: %w", err)
	}
	return &Writer{root: abs}, nil
}

// Path resolves a root-relative artifact path to an absolute one, rejecting
// any result that escapes the root (directory traversal).
func (w *Writer) Path(rel string) (string, error) {
	cleaned := filepath.Clean(rel)
	if filepath.IsAbs(cleaned) {
		return "", fmt.Errorf("artifact: absolute paths not allowed: %s", rel)
	}
	abs, err := filepath.Abs(filepath.Join(w.root, cleaned))
	if err != nil {
		return "", fmt.Errorf("artifact: resolve path: %w", err)
	}
	if abs != w.root && !strings.HasPrefix(abs, w.root+string(os.PathSeparator)) {
		return "", fmt.Errorf("artifact: path escapes output root: %s", rel)
	}
	return abs, nil
}

// Write persists data at the root-relative path, creating intermediate
// directories as needed and overwriting any existing file. Single-writer
// assumption: concurrent builds of the same tree are the caller's problem.
func (w *Writer) Write(rel string, data []byte) error {
	abs, err := w.Path(rel)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return fmt.Errorf("artifact: mkdir: %w", err)
	}
	if err := os.WriteFile(abs, data, 0o644); err != nil {
		return fmt.Errorf("artifact: write %s: %w", rel, err)
	}
	return nil
}

// Remove deletes the artifact at the root-relative path. A file that is
// already absent counts as success.
func (w *Writer) Remove(rel string) error {
	abs, err := w.Path(rel)
	if err != nil {
		return err
	}
	if err := os.Remove(abs); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("artifact: remove %s: %w", rel, err)
	}
	return nil
}
