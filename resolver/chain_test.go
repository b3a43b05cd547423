package resolver

import "testing"

type memResolver struct {
	files map[string]string
}

func (m *memResolver) ResolvePath(fsPath string) (string, bool) {
	_, ok := m.files[fsPath]
	return fsPath, ok
}

func (m *memResolver) Open(name string) (*File, error) {
	src, ok := m.files[name]
	if !ok {
		return nil, &NotFoundError{Name: name}
	}
	return &File{Name: name, Source: []byte(src)}, nil
}

func TestChainFallsThroughToNextResolver(t *testing.T) {
	a := &memResolver{files: map[string]string{"a.proto": "syntax = \"proto3\";"}}
	b := &memResolver{files: map[string]string{"b.proto": "syntax = \"proto3\";"}}
	chain := NewChain(a, b)

	if _, err := chain.Open("a.proto"); err != nil {
		t.Fatalf("a.proto: %v", err)
	}
	if _, err := chain.Open("b.proto"); err != nil {
		t.Fatalf("b.proto: %v", err)
	}
	if _, err := chain.Open("missing.proto"); !IsNotFound(err) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestChainResolvePathFirstMatchWins(t *testing.T) {
	a := &memResolver{files: map[string]string{"a.proto": ""}}
	b := &memResolver{files: map[string]string{"b.proto": ""}}
	chain := NewChain(a, b)

	if name, ok := chain.ResolvePath("b.proto"); !ok || name != "b.proto" {
		t.Fatalf("resolve b.proto = %q, %v", name, ok)
	}
	if _, ok := chain.ResolvePath("c.proto"); ok {
		t.Fatal("expected c.proto to be unresolved")
	}
}
