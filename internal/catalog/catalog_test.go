package catalog

import (
	"path/filepath"
	"testing"

	"github.com/starford/cascade/internal/testutil"
)

var exts = []string{".less", ".lss"}

func TestNewRejectsMissingRoot(t *testing.T) {
	if _, err := New(filepath.Join(t.TempDir(), "nope"), exts); err == nil {
		t.Fatal("missing root should fail")
	}
}

func TestNewRejectsFileRoot(t *testing.T) {
	root := testutil.SourceTree(t, map[string]string{"f.less": ""})
	if _, err := New(filepath.Join(root, "f.less"), exts); err == nil {
		t.Fatal("file root should fail")
	}
}

func TestListFindsSourcesRecursively(t *testing.T) {
	root := testutil.SourceTree(t, map[string]string{
		"screen.less":       "body{}",
		"print.lss":         "body{}",
		"admin/screen.less": "body{}",
		"readme.txt":        "not a source",
	})
	c, err := New(root, exts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	files, err := c.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(files) != 3 {
		t.Fatalf("len = %d, want 3: %v", len(files), files)
	}
	rels := make(map[string]bool)
	for _, f := range files {
		rels[f.Rel] = true
	}
	for _, want := range []string{"screen.less", "print.lss", "admin/screen.less"} {
		if !rels[want] {
			t.Errorf("missing %s in %v", want, rels)
		}
	}
}

func TestListFlagsPartials(t *testing.T) {
	root := testutil.SourceTree(t, map[string]string{
		"screen.less":      "body{}",
		"_vars.less":       "@c: red;",
		"theme/_base.less": "@b: blue;",
	})
	c, err := New(root, exts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	files, err := c.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	partials := 0
	for _, f := range files {
		if f.Partial {
			partials++
		}
	}
	if len(files) != 3 || partials != 2 {
		t.Errorf("len = %d partials = %d, want 3 and 2", len(files), partials)
	}
}

func TestListIsRecomputedPerCall(t *testing.T) {
	root := testutil.SourceTree(t, map[string]string{"a.less": ""})
	c, err := New(root, exts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if files, _ := c.List(); len(files) != 1 {
		t.Fatalf("first List len = %d, want 1", len(files))
	}
	testutil.WriteFile(t, root, "b.less", "")
	if files, _ := c.List(); len(files) != 2 {
		t.Errorf("second List len = %d, want 2 (no caching across calls)", len(files))
	}
}
