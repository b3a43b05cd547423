package parser

import (
	"github.com/protospec/protofront/ast"
	"github.com/protospec/protofront/report"
)

func (p *Parser) parseEnum(detached []ast.Comment, leading *ast.Comment) *ast.EnumNode {
	start := p.cur.Span.Start
	p.advance() // "enum"
	nameTok, _ := p.expectIdent()
	p.expect("{")

	e := &ast.EnumNode{Name: nameTok.Text, NameSpan: nameTok.Span}
	for !p.atText("}") && !p.atEOF() {
		vdetached, vleading := p.leading()
		switch {
		case p.atText(";"):
			p.advance()
		case p.atText("option"):
			e.Options = append(e.Options, p.parseOption(vdetached, vleading))
		case p.atText("reserved"):
			e.Reserved = append(e.Reserved, p.parseReserved(vdetached, vleading))
		case p.cur.Kind == ast.TokenIdent:
			e.Values = append(e.Values, p.parseEnumValue(vdetached, vleading))
		default:
			p.errorf(report.UnexpectedToken, "expected an enum element, found %q", p.cur.Text)
			p.synchronize(enumBodyRecoverySet)
		}
	}
	p.expect("}")

	e.SetSpan(ast.Span{Start: start, End: p.prev.Span.End})
	e.SetComments(detached, leading)
	e.SetTrailing(p.trailing())
	return e
}

func (p *Parser) parseEnumValue(detached []ast.Comment, leading *ast.Comment) *ast.EnumValueNode {
	start := p.cur.Span.Start
	nameTok, _ := p.expectIdent()
	p.expect("=")

	numSpan := p.cur.Span
	neg := p.accept("-")
	var num int32
	if p.cur.Kind == ast.TokenInt {
		n, ok := parseNumberLiteral(p.cur)
		if !ok {
			p.errorf(report.IntegerOutOfRange, "enum value out of range")
		}
		if neg {
			n = -n
		}
		num = n
		p.advance()
	} else {
		p.errorf(report.UnexpectedToken, "expected an enum value number, found %q", p.cur.Text)
	}
	numSpan = ast.Span{Start: numSpan.Start, End: p.prev.Span.End}

	opts := p.parseInlineOptions()
	end := p.prev.Span.End
	p.expect(";")

	v := &ast.EnumValueNode{
		Name: nameTok.Text, NameSpan: nameTok.Span,
		Number: num, NumberSpan: numSpan,
		Options: opts,
	}
	v.SetSpan(ast.Span{Start: start, End: end})
	v.SetComments(detached, leading)
	v.SetTrailing(p.trailing())
	return v
}
