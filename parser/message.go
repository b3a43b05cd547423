package parser

import (
	"math"

	"github.com/protospec/protofront/ast"
	"github.com/protospec/protofront/report"
)

var scalarTypes = map[string]bool{
	"double": true, "float": true, "int32": true, "int64": true, "uint32": true,
	"uint64": true, "sint32": true, "sint64": true, "fixed32": true, "fixed64": true,
	"sfixed32": true, "sfixed64": true, "bool": true, "string": true, "bytes": true,
}

func (p *Parser) parseMessage(detached []ast.Comment, leading *ast.Comment) *ast.MessageNode {
	start := p.cur.Span.Start
	p.advance() // "message"
	nameTok, _ := p.expectIdent()
	body := p.parseMessageBody()

	msg := &ast.MessageNode{Name: nameTok.Text, NameSpan: nameTok.Span, Body: body}
	msg.SetSpan(ast.Span{Start: start, End: p.prev.Span.End})
	msg.SetComments(detached, leading)
	msg.SetTrailing(p.trailing())
	return msg
}

// parseMessageBody parses the brace-delimited contents shared by messages
// and proto2 groups.
func (p *Parser) parseMessageBody() *ast.MessageBody {
	p.expect("{")
	body := &ast.MessageBody{}

	for !p.atText("}") && !p.atEOF() {
		detached, leading := p.leading()
		switch {
		case p.atText(";"):
			p.advance()
		case p.atText("message"):
			body.Nested = append(body.Nested, p.parseMessage(detached, leading))
		case p.atText("enum"):
			body.Enums = append(body.Enums, p.parseEnum(detached, leading))
		case p.atText("extend"):
			body.Extends = append(body.Extends, p.parseExtend(detached, leading))
		case p.atText("oneof"):
			body.Oneofs = append(body.Oneofs, p.parseOneof(detached, leading))
		case p.atText("extensions"):
			body.ExtensionRanges = append(body.ExtensionRanges, p.parseExtensionRange(detached, leading))
		case p.atText("reserved"):
			body.Reserved = append(body.Reserved, p.parseReserved(detached, leading))
		case p.atText("option"):
			body.Options = append(body.Options, p.parseOption(detached, leading))
		case p.atText("map"):
			body.Maps = append(body.Maps, p.parseMapField(detached, leading))
		case p.atText("group"):
			body.Groups = append(body.Groups, p.parseGroup(detached, leading))
		case p.isFieldStart():
			field, group := p.parseFieldOrGroup(detached, leading)
			if group != nil {
				body.Groups = append(body.Groups, group)
			} else {
				body.Fields = append(body.Fields, field)
			}
		default:
			p.errorf(report.UnexpectedToken, "expected a message element, found %q", p.cur.Text)
			p.synchronize(messageBodyRecoverySet)
		}
	}
	p.expect("}")
	return body
}

func (p *Parser) isFieldLabel() bool {
	return p.atText("required") || p.atText("optional") || p.atText("repeated")
}

func (p *Parser) isFieldStart() bool {
	if p.isFieldLabel() {
		return true
	}
	if p.cur.Kind != ast.TokenIdent {
		return false
	}
	return true // scalar keyword or a user type name
}

// parseFieldOrGroup parses "[label] type name = number [options];" or, if
// the label (if any) is followed by the "group" keyword, a proto2 group
// declaration instead. The label must be consumed before "group" can be
// seen, so the two productions share this single entry point rather than
// being distinguished by lookahead.
func (p *Parser) parseFieldOrGroup(detached []ast.Comment, leading *ast.Comment) (*ast.FieldNode, *ast.GroupNode) {
	start := p.cur.Span.Start
	label := ast.LabelNone
	labelSpan := ast.Span{}
	switch {
	case p.accept("required"):
		label, labelSpan = ast.LabelRequired, p.prev.Span
	case p.accept("optional"):
		label, labelSpan = ast.LabelOptional, p.prev.Span
	case p.accept("repeated"):
		label, labelSpan = ast.LabelRepeated, p.prev.Span
	}

	if p.atText("group") {
		return nil, p.finishGroup(start, label, labelSpan, detached, leading)
	}

	typeTok, typeSpan := p.parseFieldType()
	nameTok, _ := p.expectIdent()
	p.expect("=")
	numTok, numSpan := p.parseFieldNumber()
	opts := p.parseInlineOptions()
	end := p.prev.Span.End
	p.expect(";")

	f := &ast.FieldNode{
		Label: label, LabelSpan: labelSpan,
		TypeName: typeTok, TypeSpan: typeSpan,
		Name: nameTok.Text, NameSpan: nameTok.Span,
		Number: numTok, NumberSpan: numSpan,
		Options: opts,
	}
	f.SetSpan(ast.Span{Start: start, End: end})
	f.SetComments(detached, leading)
	f.SetTrailing(p.trailing())
	return f, nil
}

func (p *Parser) parseFieldType() (string, ast.Span) {
	if p.cur.Kind == ast.TokenIdent && scalarTypes[p.cur.Text] {
		tok := p.cur
		p.advance()
		return tok.Text, tok.Span
	}
	return p.parseTypeName()
}

func (p *Parser) parseFieldNumber() (int32, ast.Span) {
	span := p.cur.Span
	if p.cur.Kind != ast.TokenInt {
		p.errorf(report.UnexpectedToken, "expected a field number, found %q", p.cur.Text)
		return 0, span
	}
	n, ok := parseNumberLiteral(p.cur)
	if !ok {
		p.errorf(report.IntegerOutOfRange, "field number out of range")
	}
	p.advance()
	return n, span
}

// parseGroup handles the case where "group" was the first token seen (no
// label).
func (p *Parser) parseGroup(detached []ast.Comment, leading *ast.Comment) *ast.GroupNode {
	start := p.cur.Span.Start
	return p.finishGroup(start, ast.LabelNone, ast.Span{}, detached, leading)
}

func (p *Parser) finishGroup(start int, label ast.FieldLabel, labelSpan ast.Span, detached []ast.Comment, leading *ast.Comment) *ast.GroupNode {
	p.expect("group")
	nameTok, _ := p.expectIdent()
	if !ast.IsValidGroupName(nameTok.Text) {
		p.handler.Errorf(report.InvalidGroupName, p.lex.Pos(nameTok.Span.Start),
			"group name %q must start with an uppercase letter", nameTok.Text)
	}
	p.expect("=")
	num, numSpan := p.parseFieldNumber()
	body := p.parseMessageBody()

	g := &ast.GroupNode{
		Label: label, LabelSpan: labelSpan,
		Name: nameTok.Text, NameSpan: nameTok.Span,
		Number: num, NumberSpan: numSpan,
		Body: body,
	}
	g.SetSpan(ast.Span{Start: start, End: p.prev.Span.End})
	g.SetComments(detached, leading)
	g.SetTrailing(p.trailing())
	return g
}

func (p *Parser) parseMapField(detached []ast.Comment, leading *ast.Comment) *ast.MapFieldNode {
	start := p.cur.Span.Start
	p.advance() // "map"
	p.expect("<")
	keyTok, keySpan := p.parseFieldType()
	p.expect(",")
	valTok, valSpan := p.parseFieldType()
	p.expect(">")
	nameTok, _ := p.expectIdent()
	p.expect("=")
	num, numSpan := p.parseFieldNumber()
	opts := p.parseInlineOptions()
	end := p.prev.Span.End
	p.expect(";")

	m := &ast.MapFieldNode{
		KeyType: keyTok, KeySpan: keySpan,
		ValueType: valTok, ValueSpan: valSpan,
		Name: nameTok.Text, NameSpan: nameTok.Span,
		Number: num, NumberSpan: numSpan,
		Options: opts,
	}
	m.SetSpan(ast.Span{Start: start, End: end})
	m.SetComments(detached, leading)
	m.SetTrailing(p.trailing())
	return m
}

func (p *Parser) parseOneof(detached []ast.Comment, leading *ast.Comment) *ast.OneofNode {
	start := p.cur.Span.Start
	p.advance() // "oneof"
	nameTok, _ := p.expectIdent()
	p.expect("{")

	o := &ast.OneofNode{Name: nameTok.Text, NameSpan: nameTok.Span}
	for !p.atText("}") && !p.atEOF() {
		fdetached, fleading := p.leading()
		switch {
		case p.atText(";"):
			p.advance()
		case p.atText("option"):
			o.Options = append(o.Options, p.parseOption(fdetached, fleading))
		case p.atText("group"):
			o.Groups = append(o.Groups, p.parseGroup(fdetached, fleading))
		case p.atText("map"):
			o.Maps = append(o.Maps, p.parseMapField(fdetached, fleading))
		default:
			field, group := p.parseFieldOrGroup(fdetached, fleading)
			if group != nil {
				o.Groups = append(o.Groups, group)
			} else {
				o.Fields = append(o.Fields, field)
			}
		}
	}
	p.expect("}")

	o.SetSpan(ast.Span{Start: start, End: p.prev.Span.End})
	o.SetComments(detached, leading)
	o.SetTrailing(p.trailing())
	return o
}

func (p *Parser) parseExtend(detached []ast.Comment, leading *ast.Comment) *ast.ExtendNode {
	start := p.cur.Span.Start
	p.advance() // "extend"
	extendee, extendeeSpan := p.parseTypeName()
	p.expect("{")

	e := &ast.ExtendNode{Extendee: extendee, ExtendeeSpan: extendeeSpan}
	for !p.atText("}") && !p.atEOF() {
		fdetached, fleading := p.leading()
		if p.atText(";") {
			p.advance()
			continue
		}
		if p.atText("group") {
			e.Groups = append(e.Groups, p.parseGroup(fdetached, fleading))
			continue
		}
		field, group := p.parseFieldOrGroup(fdetached, fleading)
		if group != nil {
			e.Groups = append(e.Groups, group)
		} else {
			e.Fields = append(e.Fields, field)
		}
	}
	p.expect("}")

	e.SetSpan(ast.Span{Start: start, End: p.prev.Span.End})
	e.SetComments(detached, leading)
	e.SetTrailing(p.trailing())
	return e
}

func (p *Parser) parseExtensionRange(detached []ast.Comment, leading *ast.Comment) *ast.ExtensionRangeNode {
	start := p.cur.Span.Start
	p.advance() // "extensions"
	var ranges []*ast.RangeNode
	for {
		ranges = append(ranges, p.parseRange())
		if !p.accept(",") {
			break
		}
	}
	opts := p.parseInlineOptions()
	end := p.prev.Span.End
	p.expect(";")

	r := &ast.ExtensionRangeNode{Ranges: ranges, Options: opts}
	r.SetSpan(ast.Span{Start: start, End: end})
	r.SetComments(detached, leading)
	r.SetTrailing(p.trailing())
	return r
}

func (p *Parser) parseRange() *ast.RangeNode {
	start := p.cur.Span.Start
	var lo int32
	if p.cur.Kind == ast.TokenInt {
		lo, _ = parseNumberLiteral(p.cur)
		p.advance()
	} else {
		p.errorf(report.UnexpectedToken, "expected a field number, found %q", p.cur.Text)
	}
	hi := lo
	if p.accept("to") {
		if p.accept("max") {
			hi = math.MaxInt32
		} else if p.cur.Kind == ast.TokenInt {
			hi, _ = parseNumberLiteral(p.cur)
			p.advance()
		} else {
			p.errorf(report.UnexpectedToken, "expected a field number or \"max\", found %q", p.cur.Text)
		}
	}
	r := &ast.RangeNode{Start: lo, End: hi}
	r.SetSpan(ast.Span{Start: start, End: p.prev.Span.End})
	return r
}

func (p *Parser) parseReserved(detached []ast.Comment, leading *ast.Comment) *ast.ReservedNode {
	start := p.cur.Span.Start
	p.advance() // "reserved"

	r := &ast.ReservedNode{}
	if p.cur.Kind == ast.TokenString {
		for {
			nstart := p.cur.Span.Start
			name := string(p.cur.Bytes)
			p.advance()
			n := &ast.ReservedNameNode{Name: name}
			n.SetSpan(ast.Span{Start: nstart, End: p.prev.Span.End})
			r.Names = append(r.Names, n)
			if !p.accept(",") {
				break
			}
		}
	} else {
		for {
			r.Ranges = append(r.Ranges, p.parseRange())
			if !p.accept(",") {
				break
			}
		}
	}
	end := p.prev.Span.End
	p.expect(";")

	r.SetSpan(ast.Span{Start: start, End: end})
	r.SetComments(detached, leading)
	r.SetTrailing(p.trailing())
	return r
}
