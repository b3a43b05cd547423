package parser

import (
	"github.com/protospec/protofront/ast"
	"github.com/protospec/protofront/report"
)

// parseOption parses a top-level "option name = value;" statement found at
// file/message/oneof/enum/service/method scope.
func (p *Parser) parseOption(detached []ast.Comment, leading *ast.Comment) *ast.OptionNode {
	start := p.cur.Span.Start
	p.advance() // "option"
	name := p.parseOptionName()
	p.expect("=")
	value := p.parseValue()
	end := p.prev.Span.End
	p.expect(";")

	opt := &ast.OptionNode{Name: name, Value: value}
	opt.SetSpan(ast.Span{Start: start, End: end})
	opt.SetComments(detached, leading)
	opt.SetTrailing(p.trailing())
	return opt
}

// parseOptionName parses a dotted option name, where any segment may be an
// "(extension.name)" reference.
func (p *Parser) parseOptionName() []*ast.OptionNamePart {
	var parts []*ast.OptionNamePart
	parts = append(parts, p.parseOptionNamePart())
	for p.atText(".") {
		p.advance()
		parts = append(parts, p.parseOptionNamePart())
	}
	return parts
}

func (p *Parser) parseOptionNamePart() *ast.OptionNamePart {
	start := p.cur.Span.Start
	if p.atText("(") {
		p.advance()
		text, _ := p.parseTypeName()
		p.expect(")")
		part := &ast.OptionNamePart{Text: text, IsExt: true}
		part.SetSpan(ast.Span{Start: start, End: p.prev.Span.End})
		return part
	}
	tok, _ := p.expectIdent()
	part := &ast.OptionNamePart{Text: tok.Text}
	part.SetSpan(ast.Span{Start: start, End: p.prev.Span.End})
	return part
}

// parseInlineOptions parses the "[name = value, ...]" suffix allowed on
// fields and enum values.
func (p *Parser) parseInlineOptions() []*ast.OptionNode {
	if !p.atText("[") {
		return nil
	}
	p.advance()
	var opts []*ast.OptionNode
	for {
		start := p.cur.Span.Start
		name := p.parseOptionName()
		p.expect("=")
		value := p.parseValue()
		opt := &ast.OptionNode{Name: name, Value: value}
		opt.SetSpan(ast.Span{Start: start, End: p.prev.Span.End})
		opts = append(opts, opt)
		if !p.accept(",") {
			break
		}
	}
	p.expect("]")
	return opts
}

// parseValue parses one option literal: a scalar, identifier, aggregate
// message literal, or array literal.
func (p *Parser) parseValue() *ast.ValueNode {
	start := p.cur.Span.Start
	neg := false
	if p.atText("-") || p.atText("+") {
		neg = p.atText("-")
		p.advance()
	}

	var v *ast.ValueNode
	switch {
	case p.cur.Kind == ast.TokenInt:
		n := int64(p.cur.IntVal)
		if neg {
			n = -n
		}
		v = &ast.ValueNode{Kind: ast.ValueInt, Int: n, IntNegative: neg}
		p.advance()
	case p.cur.Kind == ast.TokenFloat:
		f := p.cur.FloatVal
		if neg {
			f = -f
		}
		v = &ast.ValueNode{Kind: ast.ValueFloat, Float: f}
		p.advance()
	case p.cur.Kind == ast.TokenBool:
		v = &ast.ValueNode{Kind: ast.ValueBool, Bool: p.cur.BoolVal}
		p.advance()
	case p.cur.Kind == ast.TokenString:
		b := append([]byte(nil), p.cur.Bytes...)
		p.advance()
		// Adjacent string literals concatenate, per the protobuf grammar.
		for p.cur.Kind == ast.TokenString {
			b = append(b, p.cur.Bytes...)
			p.advance()
		}
		v = &ast.ValueNode{Kind: ast.ValueString, Str: b}
	case p.cur.Kind == ast.TokenIdent && (p.cur.Text == "inf" || p.cur.Text == "nan"):
		f := float64(0)
		switch p.cur.Text {
		case "inf":
			f = posInf()
		case "nan":
			f = nan()
		}
		if neg {
			f = -f
		}
		v = &ast.ValueNode{Kind: ast.ValueFloat, Float: f}
		p.advance()
	case p.cur.Kind == ast.TokenIdent:
		v = &ast.ValueNode{Kind: ast.ValueIdent, Ident: p.cur.Text}
		p.advance()
	case p.atText("{"):
		v = p.parseAggregate()
	case p.atText("["):
		v = p.parseArray()
	default:
		p.errorf(report.UnexpectedToken, "expected an option value, found %q", p.cur.Text)
		v = &ast.ValueNode{Kind: ast.ValueIdent}
	}
	v.SetSpan(ast.Span{Start: start, End: p.prev.Span.End})
	return v
}

func (p *Parser) parseAggregate() *ast.ValueNode {
	start := p.cur.Span.Start
	p.advance() // "{"
	var fields []*ast.AggregateField
	for !p.atText("}") && !p.atEOF() {
		fields = append(fields, p.parseAggregateField())
		p.accept(",")
		p.accept(";")
	}
	p.expect("}")
	v := &ast.ValueNode{Kind: ast.ValueAggregate, Aggregate: fields}
	v.SetSpan(ast.Span{Start: start, End: p.prev.Span.End})
	return v
}

func (p *Parser) parseAggregateField() *ast.AggregateField {
	start := p.cur.Span.Start
	isExt := false
	var name string
	if p.atText("[") {
		p.advance()
		name, _ = p.parseTypeName()
		p.expect("]")
		isExt = true
	} else {
		tok, _ := p.expectIdent()
		name = tok.Text
	}
	p.accept(":")
	value := p.parseValue()
	f := &ast.AggregateField{Name: name, IsExt: isExt, Value: value}
	f.SetSpan(ast.Span{Start: start, End: p.prev.Span.End})
	return f
}

func (p *Parser) parseArray() *ast.ValueNode {
	start := p.cur.Span.Start
	p.advance() // "["
	var items []*ast.ValueNode
	for !p.atText("]") && !p.atEOF() {
		items = append(items, p.parseValue())
		if !p.accept(",") {
			break
		}
	}
	p.expect("]")
	v := &ast.ValueNode{Kind: ast.ValueArray, Array: items}
	v.SetSpan(ast.Span{Start: start, End: p.prev.Span.End})
	return v
}
