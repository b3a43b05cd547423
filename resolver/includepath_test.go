package resolver

import (
	"os"
	"path/filepath"
	"testing"
)

func TestIncludePathOpenAndResolvePath(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	fileAbs := filepath.Join(sub, "foo.proto")
	if err := os.WriteFile(fileAbs, []byte("syntax = \"proto3\";"), 0o644); err != nil {
		t.Fatal(err)
	}

	ip := NewIncludePath(dir)
	name, ok := ip.ResolvePath(fileAbs)
	if !ok || name != "sub/foo.proto" {
		t.Fatalf("resolve path = %q, %v", name, ok)
	}

	f, err := ip.Open(name)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if string(f.Source) != "syntax = \"proto3\";" {
		t.Errorf("source = %q", f.Source)
	}

	if _, err := ip.Open("missing.proto"); !IsNotFound(err) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestIncludePathShadow(t *testing.T) {
	root1 := t.TempDir()
	root2 := t.TempDir()
	if err := os.WriteFile(filepath.Join(root1, "a.proto"), []byte("one"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root2, "a.proto"), []byte("two"), 0o644); err != nil {
		t.Fatal(err)
	}

	ip := NewIncludePath(root1, root2)
	if _, shadowed := ip.Shadow("a.proto", []byte("one")); shadowed {
		t.Error("expected no shadowing when content matches the first root")
	}
	if root, shadowed := ip.Shadow("a.proto", []byte("two")); !shadowed || root != root1 {
		t.Errorf("shadow = %q, %v, want root1 true", root, shadowed)
	}
}
