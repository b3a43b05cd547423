// Package descriptor lowers a parsed syntax tree (package ast) into an
// unresolved google.protobuf.FileDescriptorProto, including the
// hierarchical SourceCodeInfo locations IDEs and documentation tools rely
// on. Type references are left as written; package linker resolves them
// once every transitively-imported file has been generated.
package descriptor

import (
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/descriptorpb"

	"github.com/protospec/protofront/ast"
	"github.com/protospec/protofront/internal/lines"
	"github.com/protospec/protofront/report"
)

// generator holds the mutable state of a single file's lowering pass: the
// line resolver used to turn spans into SourceCodeInfo vectors, and the
// path stack threaded through the traversal by reference rather than by a
// coroutine, per the design note on generator-style traversal.
type generator struct {
	lines    *lines.Resolver
	handler  *report.Handler
	withInfo bool

	path []int32
	locs []*descriptorpb.SourceCodeInfo_Location
}

// Generate lowers a parsed file into a FileDescriptorProto. The generator
// reports no diagnostics of its own: handler is kept on the generator state
// but never written to. The returned descriptor is always non-nil.
func Generate(file *ast.FileNode, withSourceInfo bool, handler *report.Handler) *descriptorpb.FileDescriptorProto {
	g := &generator{
		lines:    lines.NewResolver(file.Source),
		handler:  handler,
		withInfo: withSourceInfo,
	}
	fd := g.genFile(file)
	if withSourceInfo {
		fd.SourceCodeInfo = &descriptorpb.SourceCodeInfo{Location: g.locs}
	}
	return fd
}

func (g *generator) push(tag int32, idx int) {
	g.path = append(g.path, tag, int32(idx))
}

func (g *generator) pushTag(tag int32) {
	g.path = append(g.path, tag)
}

func (g *generator) pop(n int) {
	g.path = g.path[:len(g.path)-n]
}

// emit appends one SourceCodeInfo location for the current path, the given
// span, and (if c is non-nil) the comment trio attached to the node that
// owns this path.
func (g *generator) emit(span ast.Span, c *ast.Comments) {
	if !g.withInfo {
		return
	}
	l := &descriptorpb.SourceCodeInfo_Location{
		Path: append([]int32(nil), g.path...),
		Span: g.lines.Span(span.Start, span.End),
	}
	if c != nil {
		if c.Leading != nil {
			l.LeadingComments = proto.String(c.Leading.Text)
		}
		if c.Trailing != nil {
			l.TrailingComments = proto.String(c.Trailing.Text)
		}
		for _, d := range c.LeadingDetached {
			l.LeadingDetachedComments = append(l.LeadingDetachedComments, d.Text)
		}
	}
	g.locs = append(g.locs, l)
}

func (g *generator) emitNode(n ast.Node) {
	c := n.Comments()
	g.emit(n.Span(), &c)
}

func (g *generator) genFile(file *ast.FileNode) *descriptorpb.FileDescriptorProto {
	fd := &descriptorpb.FileDescriptorProto{
		Name:   proto.String(file.Name),
		Syntax: proto.String(file.Syntax),
	}
	g.emit(ast.Span{Start: file.Span().Start, End: file.Span().End}, nil)

	if file.HadSyntax {
		g.pushTag(fileSyntaxTag)
		g.emit(file.SyntaxSpan, nil)
		g.pop(1)
	}

	if file.Package != nil {
		fd.Package = proto.String(file.Package.Name)
		g.pushTag(filePackageTag)
		g.emitNode(file.Package)
		g.pop(1)
	}

	for i, imp := range file.Imports {
		fd.Dependency = append(fd.Dependency, imp.Path)
		idx := int32(len(fd.Dependency) - 1)
		switch imp.Kind {
		case ast.ImportPublic:
			fd.PublicDependency = append(fd.PublicDependency, idx)
		case ast.ImportWeak:
			fd.WeakDependency = append(fd.WeakDependency, idx)
		}
		g.push(fileDependencyTag, i)
		g.emitNode(imp)
		g.pop(2)
	}

	fd.Options = &descriptorpb.FileOptions{}
	var uninterp []*descriptorpb.UninterpretedOption
	g.pushTag(fileOptionsTag)
	uninterp = g.genOptions(file.Options)
	g.pop(1)
	fd.Options.UninterpretedOption = uninterp

	for i, m := range file.Messages {
		g.push(fileMessageTag, i)
		fd.MessageType = append(fd.MessageType, g.genMessage(m, file.Syntax))
		g.pop(2)
	}
	for i, e := range file.Enums {
		g.push(fileEnumTag, i)
		fd.EnumType = append(fd.EnumType, g.genEnum(e))
		g.pop(2)
	}
	for i, s := range file.Services {
		g.push(fileServiceTag, i)
		fd.Service = append(fd.Service, g.genService(s))
		g.pop(2)
	}
	for _, ext := range file.Extends {
		fields := g.genExtend(ext, fileExtensionTag, len(fd.Extension))
		fd.Extension = append(fd.Extension, fields...)
	}

	return fd
}

// genOptions converts the uninterpreted option literals attached to a
// node into UninterpretedOption protos. Semantic interpretation against
// the target option schema happens later, in package options.
func (g *generator) genOptions(opts []*ast.OptionNode) []*descriptorpb.UninterpretedOption {
	var out []*descriptorpb.UninterpretedOption
	for i, o := range opts {
		u := &descriptorpb.UninterpretedOption{}
		for _, part := range o.Name {
			u.Name = append(u.Name, &descriptorpb.UninterpretedOption_NamePart{
				NamePart:    proto.String(part.Text),
				IsExtension: proto.Bool(part.IsExt),
			})
		}
		setUninterpretedValue(u, o.Value)
		out = append(out, u)
		g.push(uninterpretedOptionTag, i)
		g.emitNode(o)
		g.pop(2)
	}
	return out
}

func setUninterpretedValue(u *descriptorpb.UninterpretedOption, v *ast.ValueNode) {
	switch v.Kind {
	case ast.ValueInt:
		if v.IntNegative {
			u.NegativeIntValue = proto.Int64(v.Int)
		} else {
			u.PositiveIntValue = proto.Uint64(uint64(v.Int))
		}
	case ast.ValueFloat:
		u.DoubleValue = proto.Float64(v.Float)
	case ast.ValueBool:
		if v.Bool {
			u.IdentifierValue = proto.String("true")
		} else {
			u.IdentifierValue = proto.String("false")
		}
	case ast.ValueString:
		u.StringValue = append([]byte(nil), v.Str...)
	case ast.ValueIdent:
		u.IdentifierValue = proto.String(v.Ident)
	case ast.ValueAggregate, ast.ValueArray:
		u.AggregateValue = proto.String(renderAggregate(v))
	}
}

// renderAggregate renders an aggregate or array literal back to a
// text-format-ish string, kept in UninterpretedOption.aggregate_value. The
// option interpreter works from the descriptor alone and does not interpret
// aggregate values, so this text is the only form the literal keeps.
func renderAggregate(v *ast.ValueNode) string {
	switch v.Kind {
	case ast.ValueAggregate:
		s := "{"
		for _, f := range v.Aggregate {
			s += " " + f.Name + ":" + renderAggregate(f.Value)
		}
		return s + " }"
	case ast.ValueArray:
		s := "["
		for i, e := range v.Array {
			if i > 0 {
				s += ","
			}
			s += renderAggregate(e)
		}
		return s + "]"
	case ast.ValueString:
		return string(v.Str)
	case ast.ValueIdent:
		return v.Ident
	default:
		return ""
	}
}
