// Package lexer tokenizes .proto source text. It recognizes identifiers,
// numeric and string literals, punctuation, and reserved words, and
// classifies the comments found in intervening whitespace using the
// attachment rules the parser needs to populate each AST node's Comments.
package lexer

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/protospec/protofront/ast"
	"github.com/protospec/protofront/internal/lines"
	"github.com/protospec/protofront/report"
)

// Lexer scans a single source file into a stream of tokens, reporting
// lexical errors to a report.Handler as it goes rather than aborting on the
// first one.
type Lexer struct {
	filename string
	src      []byte
	pos      int

	lines    *lines.Resolver
	handler  *report.Handler
	attacher ast.CommentAttacher

	// sawNewlineSincePrevToken tracks whether a newline has been scanned
	// since the last token was returned, independent of the comment
	// attachment state; SawNewline exposes it.
	sawNewlineSincePrevToken bool
}

// New creates a Lexer over src, reporting errors through handler.
func New(filename string, src []byte, handler *report.Handler) *Lexer {
	return &Lexer{
		filename: filename,
		src:      src,
		lines:    lines.NewResolver(src),
		handler:  handler,
	}
}

// Pos converts a byte offset within this file into a report.Pos.
func (l *Lexer) Pos(offset int) report.Pos {
	line, col := l.lines.Resolve(offset)
	return report.FromOffset(l.filename, line, col)
}

// TakeComments drains the comment-attachment state for the node about to be
// emitted: leading-detached blocks plus the immediate leading comment.
func (l *Lexer) TakeComments() ([]ast.Comment, *ast.Comment) {
	return l.attacher.Take()
}

// TakeTrailing drains the trailing comment for the node just emitted, if the
// comment immediately following it (before any blank line) hasn't already
// been claimed.
func (l *Lexer) TakeTrailing() *ast.Comment {
	return l.attacher.TakeTrailing()
}

// SawNewline reports whether the lexer crossed at least one newline while
// scanning the whitespace before the token most recently returned by Next.
// The parser does not consult it; it gathers trailing comments through
// TakeTrailing.
func (l *Lexer) SawNewline() bool {
	return l.sawNewlineSincePrevToken
}

func isIdentStart(r byte) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isIdentCont(r byte) bool {
	return isIdentStart(r) || (r >= '0' && r <= '9')
}

func isDigit(r byte) bool { return r >= '0' && r <= '9' }

// Next scans and returns the next token, skipping whitespace and comments
// (feeding both to the comment-attachment machine) along the way. At end of
// input it returns a TokenEOF token whose span is empty at len(src).
func (l *Lexer) Next() ast.Token {
	l.sawNewlineSincePrevToken = false
	l.skipWhitespaceAndComments()

	start := l.pos
	if l.pos >= len(l.src) {
		return ast.Token{Kind: ast.TokenEOF, Span: ast.Span{Start: start, End: start}}
	}

	c := l.src[l.pos]
	switch {
	case isIdentStart(c):
		return l.lexIdent(start)
	case isDigit(c):
		return l.lexNumber(start)
	case c == '.' && l.pos+1 < len(l.src) && isDigit(l.src[l.pos+1]):
		return l.lexNumber(start)
	case c == '"' || c == '\'':
		return l.lexString(start, c)
	default:
		return l.lexPunct(start)
	}
}

func (l *Lexer) skipWhitespaceAndComments() {
	// afterNewline is true while only whitespace has followed the last
	// newline, so a second newline then marks a blank line.
	afterNewline := false
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case c == '\n':
			l.pos++
			blank := afterNewline
			afterNewline = true
			l.sawNewlineSincePrevToken = true
			l.attacher.Newline(blank)
		case c == ' ' || c == '\t' || c == '\r' || c == '\v' || c == '\f':
			l.pos++
		case c == '/' && l.pos+1 < len(l.src) && l.src[l.pos+1] == '/':
			afterNewline = false
			l.lexLineComment()
		case c == '/' && l.pos+1 < len(l.src) && l.src[l.pos+1] == '*':
			afterNewline = false
			l.lexBlockComment()
		default:
			return
		}
	}
}

func (l *Lexer) lexLineComment() {
	start := l.pos
	l.pos += 2
	for l.pos < len(l.src) && l.src[l.pos] != '\n' {
		l.pos++
	}
	l.attacher.Comment(ast.Comment{
		Text: string(l.src[start:l.pos]),
		Span: ast.Span{Start: start, End: l.pos},
	})
}

func (l *Lexer) lexBlockComment() {
	start := l.pos
	l.pos += 2
	for l.pos < len(l.src) {
		if l.src[l.pos] == '*' && l.pos+1 < len(l.src) && l.src[l.pos+1] == '/' {
			l.pos += 2
			l.attacher.Comment(ast.Comment{
				Text: string(l.src[start:l.pos]),
				Span: ast.Span{Start: start, End: l.pos},
			})
			return
		}
		l.pos++
	}
	// unterminated block comment: treat remainder of file as the comment
	l.attacher.Comment(ast.Comment{
		Text: string(l.src[start:l.pos]),
		Span: ast.Span{Start: start, End: l.pos},
	})
}

func (l *Lexer) lexIdent(start int) ast.Token {
	l.pos++
	for l.pos < len(l.src) && isIdentCont(l.src[l.pos]) {
		l.pos++
	}
	text := string(l.src[start:l.pos])
	if text == "true" || text == "false" {
		return ast.Token{
			Kind: ast.TokenBool, Text: text, BoolVal: text == "true",
			Span: ast.Span{Start: start, End: l.pos},
		}
	}
	return ast.Token{Kind: ast.TokenIdent, Text: text, Span: ast.Span{Start: start, End: l.pos}}
}

func (l *Lexer) lexNumber(start int) ast.Token {
	// Hex: 0x... / 0X...
	if l.src[start] == '0' && l.pos+1 < len(l.src) && (l.src[l.pos+1] == 'x' || l.src[l.pos+1] == 'X') {
		l.pos += 2
		digStart := l.pos
		for l.pos < len(l.src) && isHexDigit(l.src[l.pos]) {
			l.pos++
		}
		text := string(l.src[start:l.pos])
		span := ast.Span{Start: start, End: l.pos}
		if l.pos == digStart {
			l.handler.Report(&report.Diagnostic{Kind: report.UnexpectedToken, Pos: l.Pos(start), Message: "expected hex digits after 0x"})
			return ast.Token{Kind: ast.TokenInt, Text: text, Span: span}
		}
		v, err := strconv.ParseUint(string(l.src[digStart:l.pos]), 16, 64)
		tok := ast.Token{Kind: ast.TokenInt, Text: text, IntBase: ast.Hex, Span: span}
		if err != nil {
			l.handler.Report(&report.Diagnostic{Kind: report.IntegerOutOfRange, Pos: l.Pos(start), Message: "integer literal out of range"})
		} else {
			tok.IntVal = v
		}
		return tok
	}

	// Scan the full run of digits first; '.' or exponent marker makes it a float.
	for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
		l.pos++
	}
	isFloat := false
	if l.pos < len(l.src) && l.src[l.pos] == '.' && l.pos+1 < len(l.src) && isDigit(l.src[l.pos+1]) {
		isFloat = true
		l.pos++
		for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
			l.pos++
		}
	} else if l.pos < len(l.src) && l.src[l.pos] == '.' && start == l.pos-0 {
		// leading-dot float handled by caller before dispatch; nothing here.
	}
	if l.pos < len(l.src) && (l.src[l.pos] == 'e' || l.src[l.pos] == 'E') {
		save := l.pos
		p := l.pos + 1
		if p < len(l.src) && (l.src[p] == '+' || l.src[p] == '-') {
			p++
		}
		if p < len(l.src) && isDigit(l.src[p]) {
			isFloat = true
			l.pos = p
			for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
				l.pos++
			}
		} else {
			l.pos = save
		}
	}

	text := string(l.src[start:l.pos])
	span := ast.Span{Start: start, End: l.pos}

	if isFloat {
		f, err := strconv.ParseFloat(text, 64)
		tok := ast.Token{Kind: ast.TokenFloat, Text: text, Span: span}
		if err != nil {
			l.handler.Report(&report.Diagnostic{Kind: report.InvalidFloat, Pos: l.Pos(start), Message: "invalid float literal " + strconv.Quote(text)})
		} else {
			tok.FloatVal = f
		}
		return tok
	}

	// Octal: leading zero with more digits, decimal otherwise.
	base := 10
	digits := text
	baseKind := ast.Decimal
	if len(text) > 1 && text[0] == '0' {
		base = 8
		digits = text[1:]
		baseKind = ast.Octal
	}
	v, err := strconv.ParseUint(digits, base, 64)
	tok := ast.Token{Kind: ast.TokenInt, Text: text, IntBase: baseKind, Span: span}
	if err != nil {
		l.handler.Report(&report.Diagnostic{Kind: report.IntegerOutOfRange, Pos: l.Pos(start), Message: "integer literal out of range"})
	} else {
		tok.IntVal = v
	}
	return tok
}

func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// lexString scans a quoted string literal, decoding escapes to raw bytes
// via the embedded string sub-scanner described in the specification.
func (l *Lexer) lexString(start int, quote byte) ast.Token {
	l.pos++ // opening quote
	var out []byte
	for {
		if l.pos >= len(l.src) {
			l.handler.Report(&report.Diagnostic{Kind: report.UnterminatedString, Pos: l.Pos(start), Message: "unterminated string literal"})
			break
		}
		c := l.src[l.pos]
		if c == quote {
			l.pos++
			break
		}
		if c == '\n' || c == 0 {
			l.handler.Report(&report.Diagnostic{Kind: report.UnterminatedString, Pos: l.Pos(start), Message: "unterminated string literal"})
			break
		}
		if c == '\\' {
			decoded, next, ok := l.decodeEscape(l.pos)
			if !ok {
				l.pos = next
				continue
			}
			out = append(out, decoded...)
			l.pos = next
			continue
		}
		out = append(out, c)
		l.pos++
	}
	return ast.Token{
		Kind: ast.TokenString, Text: string(l.src[start:l.pos]), Bytes: out,
		Span: ast.Span{Start: start, End: l.pos},
	}
}

// decodeEscape decodes one backslash escape starting at pos (pointing at
// the backslash). It returns the decoded bytes, the position just past the
// escape, and whether decoding succeeded.
func (l *Lexer) decodeEscape(pos int) ([]byte, int, bool) {
	errPos := pos
	p := pos + 1
	if p >= len(l.src) {
		l.handler.Report(&report.Diagnostic{Kind: report.InvalidStringCharacter, Pos: l.Pos(errPos), Message: "unterminated escape sequence"})
		return nil, p, false
	}
	switch c := l.src[p]; c {
	case 'a':
		return []byte{7}, p + 1, true
	case 'b':
		return []byte{8}, p + 1, true
	case 'f':
		return []byte{12}, p + 1, true
	case 'n':
		return []byte{10}, p + 1, true
	case 'r':
		return []byte{13}, p + 1, true
	case 't':
		return []byte{9}, p + 1, true
	case 'v':
		return []byte{11}, p + 1, true
	case '\\', '\'', '"', '?':
		return []byte{c}, p + 1, true
	case 'x', 'X':
		q := p + 1
		n := 0
		var v int
		for q < len(l.src) && n < 2 && isHexDigit(l.src[q]) {
			v = v*16 + hexVal(l.src[q])
			q++
			n++
		}
		if n == 0 {
			l.handler.Report(&report.Diagnostic{Kind: report.InvalidStringCharacter, Pos: l.Pos(errPos), Message: "expected hex digits after \\x"})
			return nil, q, false
		}
		return []byte{byte(v)}, q, true
	case 'u':
		return l.decodeUnicodeEscape(errPos, p+1, 4)
	case 'U':
		return l.decodeUnicodeEscape(errPos, p+1, 8)
	default:
		if c >= '0' && c <= '7' {
			q := p
			n := 0
			v := 0
			for q < len(l.src) && n < 3 && l.src[q] >= '0' && l.src[q] <= '7' {
				v = v*8 + int(l.src[q]-'0')
				q++
				n++
			}
			if v > 255 {
				l.handler.Report(&report.Diagnostic{Kind: report.InvalidStringCharacter, Pos: l.Pos(errPos), Message: "octal escape out of range"})
			}
			return []byte{byte(v)}, q, true
		}
		l.handler.Report(&report.Diagnostic{Kind: report.InvalidStringCharacter, Pos: l.Pos(errPos), Message: "invalid escape character"})
		return nil, p + 1, false
	}
}

func (l *Lexer) decodeUnicodeEscape(errPos, start, digits int) ([]byte, int, bool) {
	q := start
	v := 0
	for n := 0; n < digits; n++ {
		if q >= len(l.src) || !isHexDigit(l.src[q]) {
			l.handler.Report(&report.Diagnostic{Kind: report.InvalidStringCharacter, Pos: l.Pos(errPos), Message: "expected exactly " + strconv.Itoa(digits) + " hex digits"})
			return nil, q, false
		}
		v = v*16 + hexVal(l.src[q])
		q++
	}
	if !utf8.ValidRune(rune(v)) {
		l.handler.Report(&report.Diagnostic{Kind: report.InvalidStringCharacter, Pos: l.Pos(errPos), Message: "invalid unicode code point"})
		return nil, q, false
	}
	buf := make([]byte, utf8.UTFMax)
	n := utf8.EncodeRune(buf, rune(v))
	return buf[:n], q, true
}

func hexVal(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	default:
		return int(c-'A') + 10
	}
}

func (l *Lexer) lexPunct(start int) ast.Token {
	const single = ".,;:=(){}[]<>+-"
	c := l.src[start]
	if strings.IndexByte(single, c) >= 0 {
		l.pos++
		return ast.Token{Kind: ast.TokenPunct, Text: string(c), Span: ast.Span{Start: start, End: l.pos}}
	}
	l.handler.Report(&report.Diagnostic{Kind: report.UnexpectedToken, Pos: l.Pos(start), Message: "unexpected character " + strconv.QuoteRune(rune(c))})
	l.pos++
	return ast.Token{Kind: ast.TokenPunct, Text: string(c), Span: ast.Span{Start: start, End: l.pos}}
}
