package ast

import "strings"

// Comment is a single // line comment (possibly several merged consecutive
// lines) or /* block */ comment, with the span of its source text.
type Comment struct {
	Text string
	Span Span
}

// isLineComment reports whether c is a "//" comment as opposed to a
// "/* */" block comment.
func (c Comment) isLineComment() bool {
	return strings.HasPrefix(c.Text, "//")
}

// Comments holds every comment associated with a declaration, split by the
// role the attachment state machine (see CommentAttacher) assigned it.
type Comments struct {
	// LeadingDetached holds comment blocks separated from the declaration
	// by at least one blank line.
	LeadingDetached []Comment
	// Leading is the comment immediately preceding the declaration with no
	// intervening blank line.
	Leading *Comment
	// Trailing is the comment on the same logical line as the declaration
	// that precedes it.
	Trailing *Comment
}

// IsEmpty reports whether no comments were attached.
func (c Comments) IsEmpty() bool {
	return len(c.LeadingDetached) == 0 && c.Leading == nil && c.Trailing == nil
}

// attacherState is the state of the comment-attachment machine described in
// the specification: it decides, as the lexer scans whitespace between
// tokens, whether an accumulated comment becomes a future declaration's
// trailing comment, a leading-detached block, or its immediate leading
// comment.
type attacherState int

const (
	stateStart attacherState = iota
	stateStartNewline
	stateMaybeTrailing
	stateDetached
	stateLeading
)

// CommentAttacher implements the comment-attachment state machine. One
// instance is shared by a lexical scan of a single file; the parser calls
// Take before emitting each AST node to drain the comments that belong to
// it, and TakeTrailing after the following newline to capture a trailing
// comment for the node just emitted.
type CommentAttacher struct {
	state     attacherState
	trailing  *Comment
	detached  []Comment
	leading   *Comment
}

// Comment records a comment token encountered between two declarations.
// Consecutive "//" line comments with no blank line between them are
// merged into a single comment string rather than splitting the first
// one off as leading-detached; a block comment, or a blank line, still
// starts a fresh leading comment as before.
func (a *CommentAttacher) Comment(c Comment) {
	switch a.state {
	case stateStart:
		a.trailing = &c
		a.state = stateMaybeTrailing
	case stateStartNewline:
		a.leading = &c
		a.state = stateLeading
	case stateMaybeTrailing:
		a.detached = append(a.detached, *a.trailing)
		a.trailing = nil
		a.leading = &c
		a.state = stateLeading
	case stateDetached:
		a.leading = &c
		a.state = stateLeading
	case stateLeading:
		if a.leading.isLineComment() && c.isLineComment() {
			a.leading = &Comment{
				Text: a.leading.Text + "\n" + c.Text,
				Span: a.leading.Span.Join(c.Span),
			}
			return
		}
		a.detached = append(a.detached, *a.leading)
		a.leading = &c
	}
}

// Newline records a newline in the whitespace between tokens. The first
// newline after a declaration ends the window in which a comment can become
// its trailing comment. A second consecutive newline (a blank line) demotes
// any pending leading comment to leading-detached, per the specification's
// attachment rules.
func (a *CommentAttacher) Newline(blank bool) {
	if !blank {
		if a.state == stateStart {
			a.state = stateStartNewline
		}
		return
	}
	switch a.state {
	case stateMaybeTrailing:
		a.detached = append(a.detached, *a.trailing)
		a.trailing = nil
		a.state = stateDetached
	case stateLeading:
		a.detached = append(a.detached, *a.leading)
		a.leading = nil
		a.state = stateDetached
	case stateStart:
		a.state = stateStartNewline
	}
}

// Take drains the accumulated leading-detached blocks and leading comment,
// for attachment to the node about to be emitted. A trailing candidate that
// no TakeTrailing call claimed (for example a comment before the first token
// of the file) is handed out as the leading comment instead.
func (a *CommentAttacher) Take() ([]Comment, *Comment) {
	if a.state == stateMaybeTrailing && a.leading == nil {
		a.leading, a.trailing = a.trailing, nil
	}
	detached, leading := a.detached, a.leading
	a.detached, a.leading = nil, nil
	a.state = stateStart
	return detached, leading
}

// TakeTrailing drains the pending trailing comment, if the comment
// immediately following a declaration (before any blank line) was not yet
// claimed by a subsequent Take.
func (a *CommentAttacher) TakeTrailing() *Comment {
	t := a.trailing
	a.trailing = nil
	if a.state == stateMaybeTrailing {
		a.state = stateStart
	}
	return t
}

// Reset clears all accumulated state, e.g. at the start of a new file.
func (a *CommentAttacher) Reset() {
	*a = CommentAttacher{}
}
