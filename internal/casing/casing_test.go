package casing

import "testing"

func TestJSONName(t *testing.T) {
	cases := map[string]string{
		"foo_bar":  "fooBar",
		"foo":      "foo",
		"_foo":     "Foo",
		"foo__bar": "fooBar",
	}
	for in, want := range cases {
		if got := JSONName(in); got != want {
			t.Errorf("JSONName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestJSONNameIdempotent(t *testing.T) {
	for _, in := range []string{"fooBar", "foo", "Foo"} {
		if JSONName(in) != in {
			t.Errorf("JSONName(%q) = %q, want idempotent %q", in, JSONName(in), in)
		}
		if JSONName(JSONName(in)) != JSONName(in) {
			t.Errorf("JSONName not idempotent on %q", in)
		}
	}
}

func TestPascalCase(t *testing.T) {
	cases := map[string]string{
		"foo_bar": "FooBar",
		"entry":   "Entry",
	}
	for in, want := range cases {
		if got := PascalCase(in); got != want {
			t.Errorf("PascalCase(%q) = %q, want %q", in, got, want)
		}
	}
}
