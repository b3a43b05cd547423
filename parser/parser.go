// Package parser implements a recursive-descent parser over the token
// stream produced by package lexer. It builds the syntax tree defined by
// package ast, attaching spans and comments as it goes, and recovers from
// syntax errors by synchronizing to a caller-supplied set of recovery
// tokens so a single pass can report every error in a file.
package parser

import (
	"math"
	"strings"

	"github.com/protospec/protofront/ast"
	"github.com/protospec/protofront/lexer"
	"github.com/protospec/protofront/report"
)

// Parser holds the mutable state of a single recursive-descent parse.
type Parser struct {
	filename string
	lex      *lexer.Lexer
	handler  *report.Handler

	cur  ast.Token
	prev ast.Token
}

// Parse parses a complete .proto source file and returns its syntax tree.
// Parse errors are reported to handler and recovered from via
// synchronization; the returned tree is always non-nil and contains
// whatever could be parsed, even if handler.HasErrors() is true.
func Parse(filename string, src []byte, handler *report.Handler) *ast.FileNode {
	p := &Parser{
		filename: filename,
		lex:      lexer.New(filename, src, handler),
		handler:  handler,
	}
	p.advance()
	return p.parseFile(src)
}

func (p *Parser) advance() ast.Token {
	p.prev = p.cur
	p.cur = p.lex.Next()
	return p.cur
}

func (p *Parser) pos() report.Pos { return p.lex.Pos(p.cur.Span.Start) }

func (p *Parser) atEOF() bool { return p.cur.Kind == ast.TokenEOF }

func (p *Parser) atText(text string) bool {
	return (p.cur.Kind == ast.TokenIdent || p.cur.Kind == ast.TokenPunct || p.cur.Kind == ast.TokenBool) && p.cur.Text == text
}

func (p *Parser) atKind(k ast.TokenKind) bool { return p.cur.Kind == k }

// accept consumes the current token and returns true if it matches text,
// otherwise leaves the token stream untouched and returns false.
func (p *Parser) accept(text string) bool {
	if p.atText(text) {
		p.advance()
		return true
	}
	return false
}

// expect consumes the current token if it matches text, otherwise reports
// UnexpectedToken and leaves the token stream in place.
func (p *Parser) expect(text string) (ast.Token, bool) {
	if p.atText(text) {
		tok := p.cur
		p.advance()
		return tok, true
	}
	p.errorf(report.UnexpectedToken, "expected %q, found %q", text, p.cur.Text)
	return p.cur, false
}

func (p *Parser) expectIdent() (ast.Token, bool) {
	if p.cur.Kind == ast.TokenIdent {
		tok := p.cur
		p.advance()
		return tok, true
	}
	p.errorf(report.UnexpectedToken, "expected identifier, found %q", p.cur.Text)
	return p.cur, false
}

func (p *Parser) errorf(kind report.Kind, format string, args ...interface{}) {
	p.handler.Errorf(kind, p.pos(), format, args...)
}

// synchronize skips tokens until one in stop is found (or EOF), implementing
// the specification's error-recovery-by-synchronization rule.
func (p *Parser) synchronize(stop map[string]bool) {
	for !p.atEOF() {
		if p.cur.Kind == ast.TokenIdent && stop[p.cur.Text] {
			return
		}
		if p.cur.Kind == ast.TokenPunct && stop[p.cur.Text] {
			return
		}
		p.advance()
	}
}

// leading starts a node: it drains the lexer's pending leading-detached
// blocks and leading comment.
func (p *Parser) leading() ([]ast.Comment, *ast.Comment) {
	return p.lex.TakeComments()
}

// trailing finishes a node: it drains the pending trailing comment, to be
// called once the token stream has advanced past the node's last token.
func (p *Parser) trailing() *ast.Comment {
	return p.lex.TakeTrailing()
}

func (p *Parser) parseFile(src []byte) *ast.FileNode {
	file := &ast.FileNode{Name: p.filename, Source: src, Syntax: "proto2"}
	startSpan := p.cur.Span

	if p.atText("syntax") {
		p.parseSyntax(file)
	}

	for !p.atEOF() {
		detached, leading := p.leading()
		switch {
		case p.atText("package"):
			p.parsePackage(file, detached, leading)
		case p.atText("import"):
			p.parseImport(file, detached, leading)
		case p.atText("option"):
			file.Options = append(file.Options, p.parseOption(detached, leading))
		case p.atText("message"):
			file.Messages = append(file.Messages, p.parseMessage(detached, leading))
		case p.atText("enum"):
			file.Enums = append(file.Enums, p.parseEnum(detached, leading))
		case p.atText("service"):
			file.Services = append(file.Services, p.parseService(detached, leading))
		case p.atText("extend"):
			file.Extends = append(file.Extends, p.parseExtend(detached, leading))
		case p.atText(";"):
			p.advance() // empty statement
		default:
			p.errorf(report.UnexpectedToken, "expected a top-level declaration, found %q", p.cur.Text)
			p.synchronize(topLevelRecoverySet)
		}
	}

	file.SetSpan(ast.Span{Start: startSpan.Start, End: p.cur.Span.End})
	return file
}

func (p *Parser) parseSyntax(file *ast.FileNode) {
	start := p.cur.Span.Start
	p.advance() // "syntax"
	p.expect("=")
	if p.cur.Kind != ast.TokenString {
		p.errorf(report.UnexpectedToken, "expected a quoted syntax value")
	} else {
		val := string(p.cur.Bytes)
		if val != "proto2" && val != "proto3" {
			p.errorf(report.InvalidSyntaxVersion, "unknown syntax %q; expected \"proto2\" or \"proto3\"", val)
		} else {
			file.Syntax = val
		}
		file.HadSyntax = true
		p.advance()
	}
	end := p.prev.Span.End
	p.expect(";")
	file.SyntaxSpan = ast.Span{Start: start, End: end}
}

func (p *Parser) parsePackage(file *ast.FileNode, detached []ast.Comment, leading *ast.Comment) {
	start := p.cur.Span.Start
	p.advance() // "package"
	name, _ := p.parseDottedPath()
	end := p.prev.Span.End
	p.expect(";")
	pkg := &ast.PackageNode{Name: name}
	pkg.SetSpan(ast.Span{Start: start, End: end})
	pkg.SetComments(detached, leading)
	pkg.SetTrailing(p.trailing())
	file.Package = pkg
}

func (p *Parser) parseDottedPath() (string, ast.Span) {
	start := p.cur.Span.Start
	var b strings.Builder
	if tok, ok := p.expectIdent(); ok {
		b.WriteString(tok.Text)
	}
	for p.atText(".") {
		p.advance()
		if tok, ok := p.expectIdent(); ok {
			b.WriteByte('.')
			b.WriteString(tok.Text)
		}
	}
	return b.String(), ast.Span{Start: start, End: p.prev.Span.End}
}

// parseTypeName parses a (possibly dotted, possibly leading-dot) type
// reference as used for field types, extendees, and rpc argument types.
func (p *Parser) parseTypeName() (string, ast.Span) {
	start := p.cur.Span.Start
	var b strings.Builder
	if p.atText(".") {
		b.WriteByte('.')
		p.advance()
	}
	if tok, ok := p.expectIdent(); ok {
		b.WriteString(tok.Text)
	}
	for p.atText(".") {
		p.advance()
		if tok, ok := p.expectIdent(); ok {
			b.WriteByte('.')
			b.WriteString(tok.Text)
		}
	}
	return b.String(), ast.Span{Start: start, End: p.prev.Span.End}
}

func (p *Parser) parseImport(file *ast.FileNode, detached []ast.Comment, leading *ast.Comment) {
	start := p.cur.Span.Start
	p.advance() // "import"
	kind := ast.ImportNormal
	if p.accept("public") {
		kind = ast.ImportPublic
	} else if p.accept("weak") {
		kind = ast.ImportWeak
	}
	var path string
	if p.cur.Kind == ast.TokenString {
		path = string(p.cur.Bytes)
		p.advance()
	} else {
		p.errorf(report.UnexpectedToken, "expected a quoted import path")
	}
	end := p.prev.Span.End
	p.expect(";")
	imp := &ast.ImportNode{Path: path, Kind: kind}
	imp.SetSpan(ast.Span{Start: start, End: end})
	imp.SetComments(detached, leading)
	imp.SetTrailing(p.trailing())
	file.Imports = append(file.Imports, imp)
}

func parseNumberLiteral(tok ast.Token) (int32, bool) {
	if tok.Kind != ast.TokenInt {
		return 0, false
	}
	if tok.IntVal > math.MaxInt32 {
		return 0, false
	}
	return int32(tok.IntVal), true
}
