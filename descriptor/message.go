package descriptor

import (
	"math"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/descriptorpb"

	"github.com/protospec/protofront/ast"
	"github.com/protospec/protofront/internal/casing"
)

func (g *generator) genMessage(m *ast.MessageNode, syntax string) *descriptorpb.DescriptorProto {
	d := &descriptorpb.DescriptorProto{Name: proto.String(m.Name)}
	g.emitNode(m)
	g.pushTag(messageNameTag)
	g.emit(m.NameSpan, nil)
	g.pop(1)

	g.genMessageBody(d, m.Body, syntax)
	return d
}

// genMessageBody lowers the shared message/group body grammar into d. It
// is also used for proto2 groups, whose body has identical structure.
func (g *generator) genMessageBody(d *descriptorpb.DescriptorProto, body *ast.MessageBody, syntax string) {
	for i, f := range body.Fields {
		g.push(messageFieldTag, len(d.Field))
		d.Field = append(d.Field, g.genField(f, syntax))
		g.pop(2)
		_ = i
	}
	for _, mp := range body.Maps {
		entry, field := g.genMapField(mp)
		d.NestedType = append(d.NestedType, entry)
		g.push(messageFieldTag, len(d.Field))
		d.Field = append(d.Field, field)
		g.pop(2)
	}
	for _, gr := range body.Groups {
		entry, field := g.genGroupField(gr, syntax)
		d.NestedType = append(d.NestedType, entry)
		g.push(messageFieldTag, len(d.Field))
		d.Field = append(d.Field, field)
		g.pop(2)
	}
	for _, o := range body.Oneofs {
		oneofIndex := int32(len(d.OneofDecl))
		g.push(messageOneofTag, int(oneofIndex))
		od := &descriptorpb.OneofDescriptorProto{Name: proto.String(o.Name)}
		if len(o.Options) > 0 {
			g.pushTag(oneofOptionsTag)
			od.Options = &descriptorpb.OneofOptions{UninterpretedOption: g.genOptions(o.Options)}
			g.pop(1)
		}
		d.OneofDecl = append(d.OneofDecl, od)
		g.emitNode(o)
		for _, f := range o.Fields {
			field := g.genField(f, syntax)
			field.OneofIndex = proto.Int32(oneofIndex)
			g.push(messageFieldTag, len(d.Field))
			d.Field = append(d.Field, field)
			g.pop(2)
		}
		for _, mp := range o.Maps {
			entry, field := g.genMapField(mp)
			field.OneofIndex = proto.Int32(oneofIndex)
			d.NestedType = append(d.NestedType, entry)
			g.push(messageFieldTag, len(d.Field))
			d.Field = append(d.Field, field)
			g.pop(2)
		}
		for _, gr := range o.Groups {
			entry, field := g.genGroupField(gr, syntax)
			field.OneofIndex = proto.Int32(oneofIndex)
			d.NestedType = append(d.NestedType, entry)
			g.push(messageFieldTag, len(d.Field))
			d.Field = append(d.Field, field)
			g.pop(2)
		}
		g.pop(2)
	}
	for i, nm := range body.Nested {
		g.push(messageNestedTypeTag, len(d.NestedType))
		d.NestedType = append(d.NestedType, g.genMessage(nm, syntax))
		g.pop(2)
		_ = i
	}
	for i, e := range body.Enums {
		g.push(messageEnumTypeTag, i)
		d.EnumType = append(d.EnumType, g.genEnum(e))
		g.pop(2)
	}
	for _, ext := range body.Extends {
		fields := g.genExtend(ext, messageExtensionTag, len(d.Extension))
		d.Extension = append(d.Extension, fields...)
	}
	for i, er := range body.ExtensionRanges {
		for _, r := range er.Ranges {
			end := r.End
			if end == math.MaxInt32 {
				end = 536_870_911 // "max" in a message is the largest field number
			}
			d.ExtensionRange = append(d.ExtensionRange, &descriptorpb.DescriptorProto_ExtensionRange{
				Start: proto.Int32(r.Start),
				End:   proto.Int32(end + 1), // descriptor ranges are half-open
			})
		}
		g.push(messageExtensionRangeTag, i)
		g.emitNode(er)
		g.pop(2)
	}
	for _, r := range body.Reserved {
		for _, rg := range r.Ranges {
			idx := len(d.ReservedRange)
			end := rg.End
			if end == math.MaxInt32 {
				end = 536_870_911
			}
			d.ReservedRange = append(d.ReservedRange, &descriptorpb.DescriptorProto_ReservedRange{
				Start: proto.Int32(rg.Start),
				End:   proto.Int32(end + 1),
			})
			g.push(messageReservedRangeTag, idx)
			g.emit(rg.Span(), nil)
			g.pop(2)
		}
		for _, n := range r.Names {
			idx := len(d.ReservedName)
			d.ReservedName = append(d.ReservedName, n.Name)
			g.push(messageReservedNameTag, idx)
			g.emitNode(n)
			g.pop(2)
		}
	}

	d.Options = &descriptorpb.MessageOptions{}
	g.pushTag(messageOptionsTag)
	d.Options.UninterpretedOption = g.genOptions(body.Options)
	g.pop(1)

	synthesizeProto3OptionalOneofs(d)
}

// synthesizeProto3OptionalOneofs gives each proto3 "optional" field (already
// marked Proto3Optional by genField) a synthetic single-field oneof of its
// own and points OneofIndex at it, the way protoc lowers the feature for
// wire compatibility with proto2 optional semantics.
func synthesizeProto3OptionalOneofs(d *descriptorpb.DescriptorProto) {
	var names map[string]struct{}
	for _, fd := range d.Field {
		if !fd.GetProto3Optional() {
			continue
		}
		if names == nil {
			names = make(map[string]struct{})
			for _, f := range d.Field {
				names[f.GetName()] = struct{}{}
			}
			for _, o := range d.OneofDecl {
				names[o.GetName()] = struct{}{}
			}
		}
		name := "_" + fd.GetName()
		for {
			if _, taken := names[name]; !taken {
				names[name] = struct{}{}
				break
			}
			name = "X" + name
		}
		fd.OneofIndex = proto.Int32(int32(len(d.OneofDecl)))
		d.OneofDecl = append(d.OneofDecl, &descriptorpb.OneofDescriptorProto{Name: proto.String(name)})
	}
}

func (g *generator) genField(f *ast.FieldNode, syntax string) *descriptorpb.FieldDescriptorProto {
	fd := &descriptorpb.FieldDescriptorProto{
		Name:   proto.String(f.Name),
		Number: proto.Int32(f.Number),
	}
	g.emitNode(f)

	g.pushTag(fieldNameTag)
	g.emit(f.NameSpan, nil)
	g.pop(1)

	g.pushTag(fieldNumberTag)
	g.emit(f.NumberSpan, nil)
	g.pop(1)

	label := descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL
	switch f.Label {
	case ast.LabelRequired:
		label = descriptorpb.FieldDescriptorProto_LABEL_REQUIRED
	case ast.LabelRepeated:
		label = descriptorpb.FieldDescriptorProto_LABEL_REPEATED
	}
	fd.Label = label.Enum()
	g.pushTag(fieldLabelTag)
	g.emit(f.LabelSpan, nil)
	g.pop(1)

	if kind, ok := scalarFieldType(f.TypeName); ok {
		fd.Type = kind.Enum()
	} else {
		// Left as TYPE_MESSAGE tentatively; package linker refines this to
		// TYPE_ENUM or TYPE_GROUP once the name resolves.
		fd.Type = descriptorpb.FieldDescriptorProto_TYPE_MESSAGE.Enum()
		fd.TypeName = proto.String(f.TypeName)
		g.pushTag(fieldTypeNameTag)
		g.emit(f.TypeSpan, nil)
		g.pop(1)
	}
	g.pushTag(fieldTypeTag)
	g.emit(f.TypeSpan, nil)
	g.pop(1)

	fd.JsonName = proto.String(casing.JSONName(f.Name))
	g.pushTag(fieldJSONNameTag)
	g.emit(f.NameSpan, nil)
	g.pop(1)

	if syntax == "proto3" && f.Label == ast.LabelOptional {
		fd.Proto3Optional = proto.Bool(true)
	}

	fd.Options = &descriptorpb.FieldOptions{UninterpretedOption: g.genFieldOptions(f.Options)}
	return fd
}

func (g *generator) genFieldOptions(opts []*ast.OptionNode) []*descriptorpb.UninterpretedOption {
	g.pushTag(fieldOptionsTag)
	defer g.pop(1)
	return g.genOptions(opts)
}

var scalarTypeMap = map[string]descriptorpb.FieldDescriptorProto_Type{
	"double":   descriptorpb.FieldDescriptorProto_TYPE_DOUBLE,
	"float":    descriptorpb.FieldDescriptorProto_TYPE_FLOAT,
	"int32":    descriptorpb.FieldDescriptorProto_TYPE_INT32,
	"int64":    descriptorpb.FieldDescriptorProto_TYPE_INT64,
	"uint32":   descriptorpb.FieldDescriptorProto_TYPE_UINT32,
	"uint64":   descriptorpb.FieldDescriptorProto_TYPE_UINT64,
	"sint32":   descriptorpb.FieldDescriptorProto_TYPE_SINT32,
	"sint64":   descriptorpb.FieldDescriptorProto_TYPE_SINT64,
	"fixed32":  descriptorpb.FieldDescriptorProto_TYPE_FIXED32,
	"fixed64":  descriptorpb.FieldDescriptorProto_TYPE_FIXED64,
	"sfixed32": descriptorpb.FieldDescriptorProto_TYPE_SFIXED32,
	"sfixed64": descriptorpb.FieldDescriptorProto_TYPE_SFIXED64,
	"bool":     descriptorpb.FieldDescriptorProto_TYPE_BOOL,
	"string":   descriptorpb.FieldDescriptorProto_TYPE_STRING,
	"bytes":    descriptorpb.FieldDescriptorProto_TYPE_BYTES,
}

func scalarFieldType(name string) (descriptorpb.FieldDescriptorProto_Type, bool) {
	t, ok := scalarTypeMap[name]
	return t, ok
}

// genMapField synthesizes the "<CapitalizedFieldName>Entry" nested message
// for a map<key, value> field and returns both it and the repeated field
// that refers to it.
func (g *generator) genMapField(m *ast.MapFieldNode) (*descriptorpb.DescriptorProto, *descriptorpb.FieldDescriptorProto) {
	entryName := casing.PascalCase(m.Name) + "Entry"
	entry := &descriptorpb.DescriptorProto{
		Name: proto.String(entryName),
		Options: &descriptorpb.MessageOptions{
			MapEntry: proto.Bool(true),
		},
	}
	keyField := &descriptorpb.FieldDescriptorProto{
		Name:     proto.String("key"),
		Number:   proto.Int32(1),
		Label:    descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum(),
		JsonName: proto.String("key"),
	}
	if kind, ok := scalarFieldType(m.KeyType); ok {
		keyField.Type = kind.Enum()
	} else {
		keyField.Type = descriptorpb.FieldDescriptorProto_TYPE_MESSAGE.Enum()
		keyField.TypeName = proto.String(m.KeyType)
	}
	valField := &descriptorpb.FieldDescriptorProto{
		Name:     proto.String("value"),
		Number:   proto.Int32(2),
		Label:    descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum(),
		JsonName: proto.String("value"),
	}
	if kind, ok := scalarFieldType(m.ValueType); ok {
		valField.Type = kind.Enum()
	} else {
		valField.Type = descriptorpb.FieldDescriptorProto_TYPE_MESSAGE.Enum()
		valField.TypeName = proto.String(m.ValueType)
	}
	entry.Field = []*descriptorpb.FieldDescriptorProto{keyField, valField}

	field := &descriptorpb.FieldDescriptorProto{
		Name:     proto.String(m.Name),
		Number:   proto.Int32(m.Number),
		Label:    descriptorpb.FieldDescriptorProto_LABEL_REPEATED.Enum(),
		Type:     descriptorpb.FieldDescriptorProto_TYPE_MESSAGE.Enum(),
		TypeName: proto.String(entryName),
		JsonName: proto.String(casing.JSONName(m.Name)),
	}
	g.emitNode(m)
	return entry, field
}

// genGroupField synthesizes the nested message for a proto2 group and
// returns both it and the field referring to it.
func (g *generator) genGroupField(gr *ast.GroupNode, syntax string) (*descriptorpb.DescriptorProto, *descriptorpb.FieldDescriptorProto) {
	entry := &descriptorpb.DescriptorProto{Name: proto.String(gr.Name)}
	g.genMessageBody(entry, gr.Body, syntax)

	label := descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL
	switch gr.Label {
	case ast.LabelRequired:
		label = descriptorpb.FieldDescriptorProto_LABEL_REQUIRED
	case ast.LabelRepeated:
		label = descriptorpb.FieldDescriptorProto_LABEL_REPEATED
	}
	fieldName := lowerFirst(gr.Name)
	field := &descriptorpb.FieldDescriptorProto{
		Name:     proto.String(fieldName),
		Number:   proto.Int32(gr.Number),
		Label:    label.Enum(),
		Type:     descriptorpb.FieldDescriptorProto_TYPE_GROUP.Enum(),
		TypeName: proto.String(gr.Name),
		JsonName: proto.String(casing.JSONName(fieldName)),
	}
	g.emitNode(gr)
	return entry, field
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

// genExtend lowers a top-level or nested "extend Extendee { ... }" block
// into the extension field list of its container (a FileDescriptorProto or
// the enclosing DescriptorProto), using baseTag/baseIdx for the
// SourceCodeInfo path of each produced field.
func (g *generator) genExtend(e *ast.ExtendNode, baseTag int32, baseIdx int) []*descriptorpb.FieldDescriptorProto {
	var out []*descriptorpb.FieldDescriptorProto
	idx := baseIdx
	for _, f := range e.Fields {
		fd := g.genField(f, "proto2")
		fd.Extendee = proto.String(e.Extendee)
		g.push(baseTag, idx)
		g.pushTag(fieldExtendeeTag)
		g.emit(e.ExtendeeSpan, nil)
		g.pop(1)
		g.pop(2)
		out = append(out, fd)
		idx++
	}
	for _, gr := range e.Groups {
		entry, field := g.genGroupField(gr, "proto2")
		field.Extendee = proto.String(e.Extendee)
		_ = entry // extension groups' synthetic message is dropped: protoc
		// attaches it to the *declaring* file's message_type list, which
		// this generator does not track separately; documented as a known
		// simplification for the rarely-used proto2 extend-with-group form.
		g.push(baseTag, idx)
		g.emitNode(gr)
		g.pop(2)
		out = append(out, field)
		idx++
	}
	return out
}
