package resolver

import "testing"

func TestWellKnownTypesOpenAndResolvePath(t *testing.T) {
	w := NewWellKnownTypes(map[string]string{
		"google/protobuf/timestamp.proto": "syntax = \"proto3\";",
	})
	name, ok := w.ResolvePath("google/protobuf/timestamp.proto")
	if !ok || name != "google/protobuf/timestamp.proto" {
		t.Fatalf("resolve path = %q, %v", name, ok)
	}
	f, err := w.Open(name)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if string(f.Source) != "syntax = \"proto3\";" {
		t.Errorf("source = %q", f.Source)
	}
	if _, err := w.Open("google/protobuf/any.proto"); !IsNotFound(err) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}
