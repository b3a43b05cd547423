package lexer

import (
	"testing"

	"github.com/protospec/protofront/ast"
	"github.com/protospec/protofront/report"
)

func lexAll(t *testing.T, src string) ([]ast.Token, *report.Handler) {
	t.Helper()
	h := report.NewHandler()
	l := New("test.proto", []byte(src), h)
	var toks []ast.Token
	for {
		tok := l.Next()
		toks = append(toks, tok)
		if tok.Kind == ast.TokenEOF {
			break
		}
	}
	return toks, h
}

func TestLexIdentAndPunct(t *testing.T) {
	toks, h := lexAll(t, "message Foo {}")
	if h.HasErrors() {
		t.Fatalf("unexpected errors: %v", h.Diagnostics())
	}
	want := []string{"message", "Foo", "{", "}"}
	if len(toks) != len(want)+1 {
		t.Fatalf("got %d tokens, want %d", len(toks), len(want)+1)
	}
	for i, w := range want {
		if toks[i].Text != w {
			t.Errorf("token %d = %q, want %q", i, toks[i].Text, w)
		}
	}
}

func TestLexIntegers(t *testing.T) {
	toks, h := lexAll(t, "1 0 0777 0x1F")
	if h.HasErrors() {
		t.Fatalf("unexpected errors: %v", h.Diagnostics())
	}
	wantVals := []uint64{1, 0, 0777, 0x1F}
	for i, w := range wantVals {
		if toks[i].Kind != ast.TokenInt || toks[i].IntVal != w {
			t.Errorf("token %d = %+v, want int %d", i, toks[i], w)
		}
	}
}

func TestLexFloats(t *testing.T) {
	toks, h := lexAll(t, "1.5 2e10 .5")
	if h.HasErrors() {
		t.Fatalf("unexpected errors: %v", h.Diagnostics())
	}
	if toks[0].Kind != ast.TokenFloat || toks[0].FloatVal != 1.5 {
		t.Errorf("token 0 = %+v", toks[0])
	}
	if toks[1].Kind != ast.TokenFloat || toks[1].FloatVal != 2e10 {
		t.Errorf("token 1 = %+v", toks[1])
	}
	if toks[2].Kind != ast.TokenFloat || toks[2].FloatVal != 0.5 {
		t.Errorf("token 2 = %+v", toks[2])
	}
}

func TestLexStringEscapes(t *testing.T) {
	toks, h := lexAll(t, `"a\tb\x41\101é"`)
	if h.HasErrors() {
		t.Fatalf("unexpected errors: %v", h.Diagnostics())
	}
	want := "a\tbAAé"
	if string(toks[0].Bytes) != want {
		t.Errorf("got %q, want %q", toks[0].Bytes, want)
	}
}

func TestLexUnterminatedString(t *testing.T) {
	_, h := lexAll(t, "\"abc\n")
	if !h.HasErrors() {
		t.Fatal("expected an UnterminatedString error")
	}
	if h.Diagnostics()[0].Kind != report.UnterminatedString {
		t.Fatalf("got kind %v, want UnterminatedString", h.Diagnostics()[0].Kind)
	}
}

func TestCommentAttachment(t *testing.T) {
	h := report.NewHandler()
	l := New("test.proto", []byte("// leading\nmessage Foo {}\n"), h)
	_ = l.Next() // "message"
	detached, leading := l.TakeComments()
	if len(detached) != 0 {
		t.Fatalf("expected no detached comments, got %v", detached)
	}
	if leading == nil || leading.Text != "// leading" {
		t.Fatalf("expected leading comment, got %v", leading)
	}
}
