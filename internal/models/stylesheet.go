// Package models defines the domain types for Cascade.
package models

import (
	"fmt"
	"strings"
)

// PartialPrefix marks a source file as a partial: compiled only through
// include directives inside other sources, never directly.
const PartialPrefix = "_"

// DestinationExt is the extension every generated artifact carries.
const DestinationExt = ".css"

// Slug identifies one logical stylesheet as an ordered sequence of path
// segments, independent of the physical source extension.
type Slug []string

// ParseSlug splits a slash-separated identifier into a Slug.
func ParseSlug(s string) Slug {
	parts := strings.Split(strings.Trim(s, "/"), "/")
	out := make(Slug, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// String renders the slug with forward slashes, regardless of platform.
func (s Slug) String() string {
	return strings.Join(s, "/")
}

// Base returns the final segment, or "" for an empty slug.
func (s Slug) Base() string {
	if len(s) == 0 {
		return ""
	}
	return s[len(s)-1]
}

// IsPartial reports whether the slug names a partial.
func (s Slug) IsPartial() bool {
	return strings.HasPrefix(s.Base(), PartialPrefix)
}

// Validate rejects slugs that are empty or could escape the source root.
func (s Slug) Validate() error {
	if len(s) == 0 {
		return fmt.Errorf("slug is empty")
	}
	for _, seg := range s {
		switch {
		case seg == "" || seg == "." || seg == "..":
			return fmt.Errorf("slug %q: invalid segment %q", s, seg)
		case strings.ContainsAny(seg, `/\`):
			return fmt.Errorf("slug %q: segment %q contains a path separator", s, seg)
		}
	}
	return nil
}

// SourceFile is one stylesheet source discovered under the source root.
type SourceFile struct {
	Path    string // absolute path on disk
	Rel     string // path relative to the source root, forward slashes
	Partial bool   // filename begins with PartialPrefix
}
