package ast

import "testing"

func TestCommentAttacherLeading(t *testing.T) {
	var a CommentAttacher
	a.Comment(Comment{Text: "// leading"})
	detached, leading := a.Take()
	if len(detached) != 0 {
		t.Fatalf("expected no detached comments, got %v", detached)
	}
	if leading == nil || leading.Text != "// leading" {
		t.Fatalf("expected leading comment, got %v", leading)
	}
}

func TestCommentAttacherTrailingThenLeading(t *testing.T) {
	var a CommentAttacher
	// a.Comment right after a decl (no newline yet) is a trailing candidate.
	a.Comment(Comment{Text: "// trailing"})
	trailing := a.TakeTrailing()
	if trailing == nil || trailing.Text != "// trailing" {
		t.Fatalf("expected trailing comment, got %v", trailing)
	}
}

func TestCommentAttacherMergesConsecutiveLineComments(t *testing.T) {
	var a CommentAttacher
	a.Comment(Comment{Text: "// trailing candidate"})
	a.Newline(true) // blank line demotes it to detached, next comment starts fresh leading
	a.Comment(Comment{Text: "// first", Span: Span{Start: 10, End: 18}})
	a.Newline(false) // single newline, no blank line: still the same doc block
	a.Comment(Comment{Text: "// second", Span: Span{Start: 19, End: 28}})
	detached, leading := a.Take()
	if len(detached) != 1 {
		t.Fatalf("expected exactly the earlier detached comment, got %v", detached)
	}
	if leading == nil || leading.Text != "// first\n// second" {
		t.Fatalf("expected merged leading comment, got %v", leading)
	}
	if leading.Span != (Span{Start: 10, End: 28}) {
		t.Fatalf("expected merged span, got %v", leading.Span)
	}
}

func TestCommentAttacherBlockThenLineDoesNotMerge(t *testing.T) {
	var a CommentAttacher
	a.Comment(Comment{Text: "/* block */"})
	a.Newline(false)
	a.Comment(Comment{Text: "// line"})
	detached, leading := a.Take()
	if len(detached) != 1 || detached[0].Text != "/* block */" {
		t.Fatalf("expected the block comment demoted to detached, got %v", detached)
	}
	if leading == nil || leading.Text != "// line" {
		t.Fatalf("expected the line comment as leading, got %v", leading)
	}
}

func TestCommentAttacherDetached(t *testing.T) {
	var a CommentAttacher
	a.Comment(Comment{Text: "// trailing candidate"})
	a.Newline(true) // blank line demotes it to detached
	a.Comment(Comment{Text: "// leading"})
	detached, leading := a.Take()
	if len(detached) != 1 || detached[0].Text != "// trailing candidate" {
		t.Fatalf("expected one detached comment, got %v", detached)
	}
	if leading == nil || leading.Text != "// leading" {
		t.Fatalf("expected leading comment, got %v", leading)
	}
}
