package linker

import (
	"github.com/protospec/protofront/ast"
	"github.com/protospec/protofront/internal/casing"
	"github.com/protospec/protofront/internal/lines"
	"github.com/protospec/protofront/report"
)

// BuildFileNameMap walks a parsed file's syntax tree and inserts every
// definition it declares into a fresh per-file NameMap, keyed by fully
// qualified name (package plus nesting path, no leading dot). Duplicate
// names within the file are reported to handler as they are found.
func BuildFileNameMap(file *ast.FileNode, handler *report.Handler) *NameMap {
	m := NewNameMap()
	lr := lines.NewResolver(file.Source)
	b := &builder{m: m, handler: handler, file: file.Name, lr: lr}

	pkg := ""
	if file.Package != nil {
		pkg = file.Package.Name
	}
	b.messages(pkg, file.Messages)
	for _, e := range file.Enums {
		b.enum(pkg, e)
	}
	b.services(pkg, file.Services)
	for _, ext := range file.Extends {
		b.extend(pkg, ext)
	}
	return m
}

type builder struct {
	m       *NameMap
	handler *report.Handler
	file    string
	lr      *lines.Resolver
}

func (b *builder) pos(span ast.Span) report.Pos {
	l, c := b.lr.Resolve(span.Start)
	return report.FromOffset(b.file, l, c)
}

func (b *builder) insert(fqn string, kind SymbolKind, span ast.Span) {
	b.m.Insert(fqn, Symbol{Kind: kind, File: b.file, Pos: b.pos(span)}, b.handler)
}

func (b *builder) messages(prefix string, msgs []*ast.MessageNode) {
	for _, m := range msgs {
		fqn := join(prefix, m.Name)
		b.insert(fqn, KindMessage, m.NameSpan)
		b.messageBody(fqn, m.Body)
	}
}

func (b *builder) messageBody(fqn string, body *ast.MessageBody) {
	for _, f := range body.Fields {
		b.insert(join(fqn, f.Name), KindField, f.NameSpan)
	}
	for _, mp := range body.Maps {
		b.insert(join(fqn, mp.Name), KindField, mp.NameSpan)
		entryName := casing.PascalCase(mp.Name) + "Entry"
		b.insert(join(fqn, entryName), KindMessage, mp.Span())
	}
	for _, gr := range body.Groups {
		b.insert(join(fqn, lowerFirst(gr.Name)), KindField, gr.NameSpan)
		groupFqn := join(fqn, gr.Name)
		b.insert(groupFqn, KindMessage, gr.NameSpan)
		b.messageBody(groupFqn, gr.Body)
	}
	for _, o := range body.Oneofs {
		b.insert(join(fqn, o.Name), KindOneof, o.NameSpan)
		for _, f := range o.Fields {
			b.insert(join(fqn, f.Name), KindField, f.NameSpan)
		}
		for _, mp := range o.Maps {
			b.insert(join(fqn, mp.Name), KindField, mp.NameSpan)
			entryName := casing.PascalCase(mp.Name) + "Entry"
			b.insert(join(fqn, entryName), KindMessage, mp.Span())
		}
		for _, gr := range o.Groups {
			b.insert(join(fqn, lowerFirst(gr.Name)), KindField, gr.NameSpan)
			groupFqn := join(fqn, gr.Name)
			b.insert(groupFqn, KindMessage, gr.NameSpan)
			b.messageBody(groupFqn, gr.Body)
		}
	}
	b.messages(fqn, body.Nested)
	for _, e := range body.Enums {
		b.enum(fqn, e)
	}
	for _, ext := range body.Extends {
		b.extend(fqn, ext)
	}
}

// enum inserts the enum type itself under prefix, and each of its values
// as a sibling of the enum (not nested under it), matching protobuf's C++
// style enum-value scoping.
func (b *builder) enum(prefix string, e *ast.EnumNode) {
	b.insert(join(prefix, e.Name), KindEnum, e.NameSpan)
	for _, v := range e.Values {
		b.insert(join(prefix, v.Name), KindEnumValue, v.NameSpan)
	}
}

func (b *builder) services(prefix string, services []*ast.ServiceNode) {
	for _, s := range services {
		fqn := join(prefix, s.Name)
		b.insert(fqn, KindService, s.NameSpan)
		for _, method := range s.Methods {
			b.insert(join(fqn, method.Name), KindMethod, method.NameSpan)
		}
	}
}

// extend inserts each field/group the block declares under prefix. An
// extension's name lives in the scope it is lexically declared in, not in
// the extendee's scope.
func (b *builder) extend(prefix string, ext *ast.ExtendNode) {
	for _, f := range ext.Fields {
		b.insert(join(prefix, f.Name), KindExtension, f.NameSpan)
	}
	for _, gr := range ext.Groups {
		b.insert(join(prefix, lowerFirst(gr.Name)), KindExtension, gr.NameSpan)
		groupFqn := join(prefix, gr.Name)
		b.insert(groupFqn, KindMessage, gr.NameSpan)
		b.messageBody(groupFqn, gr.Body)
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'A' && b[0] <= 'Z' {
		b[0] += 'a' - 'A'
	}
	return string(b)
}
