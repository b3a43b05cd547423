package parser

import (
	"github.com/protospec/protofront/ast"
	"github.com/protospec/protofront/report"
)

func (p *Parser) parseService(detached []ast.Comment, leading *ast.Comment) *ast.ServiceNode {
	start := p.cur.Span.Start
	p.advance() // "service"
	nameTok, _ := p.expectIdent()
	p.expect("{")

	s := &ast.ServiceNode{Name: nameTok.Text, NameSpan: nameTok.Span}
	for !p.atText("}") && !p.atEOF() {
		mdetached, mleading := p.leading()
		switch {
		case p.atText(";"):
			p.advance()
		case p.atText("option"):
			s.Options = append(s.Options, p.parseOption(mdetached, mleading))
		case p.atText("rpc"):
			s.Methods = append(s.Methods, p.parseMethod(mdetached, mleading))
		default:
			p.errorf(report.UnexpectedToken, "expected a service element, found %q", p.cur.Text)
			p.synchronize(serviceBodyRecoverySet)
		}
	}
	p.expect("}")

	s.SetSpan(ast.Span{Start: start, End: p.prev.Span.End})
	s.SetComments(detached, leading)
	s.SetTrailing(p.trailing())
	return s
}

func (p *Parser) parseMethod(detached []ast.Comment, leading *ast.Comment) *ast.MethodNode {
	start := p.cur.Span.Start
	p.advance() // "rpc"
	nameTok, _ := p.expectIdent()

	p.expect("(")
	inStreaming := p.accept("stream")
	inType, inSpan := p.parseTypeName()
	p.expect(")")

	p.expect("returns")
	p.expect("(")
	outStreaming := p.accept("stream")
	outType, outSpan := p.parseTypeName()
	p.expect(")")

	m := &ast.MethodNode{
		Name: nameTok.Text, NameSpan: nameTok.Span,
		InputType: inType, InputStreaming: inStreaming, InputSpan: inSpan,
		OutputType: outType, OutputStreaming: outStreaming, OutputSpan: outSpan,
	}

	if p.atText("{") {
		p.advance()
		for !p.atText("}") && !p.atEOF() {
			odetached, oleading := p.leading()
			if p.atText("option") {
				m.Options = append(m.Options, p.parseOption(odetached, oleading))
			} else if p.atText(";") {
				p.advance()
			} else {
				p.errorf(report.UnexpectedToken, "expected an rpc option, found %q", p.cur.Text)
				p.synchronize(map[string]bool{"option": true, "}": true})
			}
		}
		p.expect("}")
	} else {
		p.expect(";")
	}

	m.SetSpan(ast.Span{Start: start, End: p.prev.Span.End})
	m.SetComments(detached, leading)
	m.SetTrailing(p.trailing())
	return m
}
