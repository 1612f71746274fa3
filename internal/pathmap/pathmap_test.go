package pathmap

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/starford/cascade/internal/apperr"
	"github.com/starford/cascade/internal/catalog"
	"github.com/starford/cascade/internal/models"
	"github.com/starford/cascade/internal/testutil"
)

var exts = []string{".less", ".lss"}

func newMapper(t *testing.T, files map[string]string) *Mapper {
	t.Helper()
	root := testutil.SourceTree(t, files)
	abs, err := filepath.Abs(root)
	if err != nil {
		t.Fatal(err)
	}
	return New(abs, "stylesheets", exts)
}

func TestResolveSource(t *testing.T) {
	m := newMapper(t, map[string]string{
		"screen.less":      "body{}",
		"print.lss":        "body{}",
		"admin/theme.less": "body{}",
	})

	cases := []struct {
		slug models.Slug
		rel  string
	}{
		{models.Slug{"screen"}, "screen.less"},
		{models.Slug{"print"}, "print.lss"},
		{models.Slug{"admin", "theme"}, "admin/theme.less"},
	}
	for _, c := range cases {
		src, err := m.ResolveSource(c.slug)
		if err != nil {
			t.Errorf("ResolveSource(%v): %v", c.slug, err)
			continue
		}
		if src.Rel != c.rel {
			t.Errorf("ResolveSource(%v).Rel = %q, want %q", c.slug, src.Rel, c.rel)
		}
	}
}

func TestResolveSourceNotFound(t *testing.T) {
	m := newMapper(t, map[string]string{"screen.less": ""})

	_, err := m.ResolveSource(models.Slug{"missing"})
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestResolveSourceAmbiguousPicksFirst(t *testing.T) {
	m := newMapper(t, map[string]string{
		"screen.less": "from less",
		"screen.lss":  "from lss",
	})

	src, err := m.ResolveSource(models.Slug{"screen"})
	if err != nil {
		t.Fatalf("ResolveSource: %v", err)
	}
	// Lexicographic tie-break: .less sorts before .lss.
	if src.Rel != "screen.less" {
		t.Errorf("Rel = %q, want screen.less", src.Rel)
	}
}

func TestPartialsNeverResolve(t *testing.T) {
	m := newMapper(t, map[string]string{"_vars.less": "@c: red;"})

	if m.Exists(models.Slug{"_vars"}) {
		t.Error("a partial must not exist from the public surface")
	}
	_, err := m.ResolveSource(models.Slug{"_vars"})
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestResolveSourceRejectsTraversal(t *testing.T) {
	m := newMapper(t, map[string]string{"screen.less": ""})

	for _, slug := range []models.Slug{{".."}, {"..", "secret"}, {"a", "..", "b"}} {
		if _, err := m.ResolveSource(slug); !errors.Is(err, apperr.ErrNotFound) {
			t.Errorf("ResolveSource(%v) = %v, want ErrNotFound", slug, err)
		}
	}
}

func TestDestinationFor(t *testing.T) {
	m := New("/src", "stylesheets", exts)

	got := m.DestinationFor(models.Slug{"admin", "screen"})
	want := filepath.Join("stylesheets", "admin", "screen") + ".css"
	if got != want {
		t.Errorf("DestinationFor = %q, want %q", got, want)
	}
}

func TestSlugsFromCatalogSkipsPartials(t *testing.T) {
	root := testutil.SourceTree(t, map[string]string{
		"screen.less":       "",
		"_vars.less":        "",
		"admin/screen.less": "",
		"admin/_base.lss":   "",
	})
	cat, err := catalog.New(root, exts)
	if err != nil {
		t.Fatalf("catalog.New: %v", err)
	}
	m := New(cat.Root(), "stylesheets", exts)

	files, err := cat.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	slugs := m.Slugs(files)
	if len(slugs) != 2 {
		t.Fatalf("len = %d, want 2: %v", len(slugs), slugs)
	}
	seen := make(map[string]bool)
	for _, s := range slugs {
		seen[s.String()] = true
	}
	if !seen["screen"] || !seen["admin/screen"] {
		t.Errorf("slugs = %v, want screen and admin/screen", slugs)
	}
}

func TestSlugOfStripsExtension(t *testing.T) {
	m := New("/src", "stylesheets", exts)
	s := m.SlugOf(models.SourceFile{Rel: "admin/theme.lss"})
	if s.String() != "admin/theme" {
		t.Errorf("SlugOf = %q, want admin/theme", s)
	}
}
