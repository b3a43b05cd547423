package lines

import "testing"

func TestResolve(t *testing.T) {
	r := NewResolver([]byte("hello\nworld\nfoo"))

	cases := []struct {
		offset     int
		line, col int
	}{
		{0, 0, 0}, {4, 0, 4}, {5, 0, 5},
		{6, 1, 0}, {7, 1, 1}, {10, 1, 4}, {11, 1, 5},
		{12, 2, 0}, {13, 2, 1}, {14, 2, 2}, {15, 2, 3},
	}
	for _, c := range cases {
		line, col := r.Resolve(c.offset)
		if line != c.line || col != c.col {
			t.Errorf("Resolve(%d) = (%d,%d), want (%d,%d)", c.offset, line, col, c.line, c.col)
		}
	}
}

func TestSpanSingleLine(t *testing.T) {
	r := NewResolver([]byte("message Foo {}\n"))
	got := r.Span(8, 11)
	want := []int32{0, 8, 11}
	if !equal(got, want) {
		t.Errorf("Span = %v, want %v", got, want)
	}
}

func TestSpanMultiLine(t *testing.T) {
	r := NewResolver([]byte("message Foo {\n  int32 x = 1;\n}\n"))
	got := r.Span(0, 30)
	want := []int32{0, 0, 2, 1}
	if !equal(got, want) {
		t.Errorf("Span = %v, want %v", got, want)
	}
}

func equal(a, b []int32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
