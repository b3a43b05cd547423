package linker

import (
	"testing"

	"github.com/protospec/protofront/parser"
	"github.com/protospec/protofront/report"
)

func buildMap(t *testing.T, src string) (*NameMap, *report.Handler) {
	t.Helper()
	h := report.NewHandler()
	tree := parser.Parse("test.proto", []byte(src), h)
	if h.HasErrors() {
		t.Fatalf("parse errors: %v", h.Diagnostics())
	}
	return BuildFileNameMap(tree, h), h
}

func TestBuildFileNameMapMessageAndFields(t *testing.T) {
	m, h := buildMap(t, `
		syntax = "proto3";
		package foo.bar;
		message Person {
			string name = 1;
			message Address {
				string city = 1;
			}
		}
	`)
	if h.HasErrors() {
		t.Fatalf("unexpected errors: %v", h.Diagnostics())
	}
	for _, fqn := range []string{"foo.bar.Person", "foo.bar.Person.name", "foo.bar.Person.Address", "foo.bar.Person.Address.city"} {
		if _, ok := m.Get(fqn); !ok {
			t.Errorf("expected %q in name map", fqn)
		}
	}
}

func TestBuildFileNameMapEnumValuesAreSiblings(t *testing.T) {
	m, h := buildMap(t, `
		syntax = "proto3";
		package p;
		enum Color {
			RED = 0;
			GREEN = 1;
		}
	`)
	if h.HasErrors() {
		t.Fatalf("unexpected errors: %v", h.Diagnostics())
	}
	if _, ok := m.Get("p.Color"); !ok {
		t.Fatal("expected p.Color")
	}
	if _, ok := m.Get("p.RED"); !ok {
		t.Error("expected enum value RED as sibling of enclosing scope, not nested under Color")
	}
	if _, ok := m.Get("p.Color.RED"); ok {
		t.Error("did not expect RED nested under Color")
	}
}

func TestBuildFileNameMapDuplicateNameReported(t *testing.T) {
	_, h := buildMap(t, `
		syntax = "proto3";
		message M {}
		message M {}
	`)
	if !h.HasErrors() {
		t.Fatal("expected a duplicate name diagnostic")
	}
	if h.Diagnostics()[0].Kind != "duplicate_name" {
		t.Errorf("kind = %v", h.Diagnostics()[0].Kind)
	}
}

func TestScopesWidenOutward(t *testing.T) {
	got := Scopes("a.b.C")
	want := []string{"a.b.C", "a.b", "a", ""}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("scope %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestResolveAbsoluteName(t *testing.T) {
	m := NewNameMap()
	h := report.NewHandler()
	m.Insert("a.b.C", Symbol{Kind: KindMessage}, h)
	sym, fqn, ok := m.Resolve([]string{"x.y"}, ".a.b.C")
	if !ok || fqn != "a.b.C" || sym.Kind != KindMessage {
		t.Fatalf("resolve absolute = %+v, %q, %v", sym, fqn, ok)
	}
}

func TestResolveScopeWidening(t *testing.T) {
	m := NewNameMap()
	h := report.NewHandler()
	m.Insert("a.Foo", Symbol{Kind: KindMessage}, h)
	sym, fqn, ok := m.Resolve(Scopes("a.b.C"), "Foo")
	if !ok || fqn != "a.Foo" || sym.Kind != KindMessage {
		t.Fatalf("resolve widened = %+v, %q, %v", sym, fqn, ok)
	}
}
