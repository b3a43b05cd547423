package descriptor

import (
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/descriptorpb"

	"github.com/protospec/protofront/ast"
)

func (g *generator) genEnum(e *ast.EnumNode) *descriptorpb.EnumDescriptorProto {
	ed := &descriptorpb.EnumDescriptorProto{Name: proto.String(e.Name)}
	g.emitNode(e)
	g.pushTag(enumNameTag)
	g.emit(e.NameSpan, nil)
	g.pop(1)

	for i, v := range e.Values {
		g.push(enumValueTag, i)
		ed.Value = append(ed.Value, g.genEnumValue(v))
		g.pop(2)
	}

	for _, r := range e.Reserved {
		for _, rg := range r.Ranges {
			idx := len(ed.ReservedRange)
			ed.ReservedRange = append(ed.ReservedRange, &descriptorpb.EnumDescriptorProto_EnumReservedRange{
				Start: proto.Int32(rg.Start),
				End:   proto.Int32(rg.End),
			})
			g.push(enumReservedRangeTag, idx)
			g.emit(rg.Span(), nil)
			g.pop(2)
		}
		for _, n := range r.Names {
			idx := len(ed.ReservedName)
			ed.ReservedName = append(ed.ReservedName, n.Name)
			g.push(enumReservedNameTag, idx)
			g.emitNode(n)
			g.pop(2)
		}
	}

	ed.Options = &descriptorpb.EnumOptions{}
	g.pushTag(enumOptionsTag)
	ed.Options.UninterpretedOption = g.genOptions(e.Options)
	g.pop(1)
	return ed
}

func (g *generator) genEnumValue(v *ast.EnumValueNode) *descriptorpb.EnumValueDescriptorProto {
	vd := &descriptorpb.EnumValueDescriptorProto{
		Name:   proto.String(v.Name),
		Number: proto.Int32(v.Number),
	}
	g.emitNode(v)
	g.pushTag(enumValueNameTag)
	g.emit(v.NameSpan, nil)
	g.pop(1)
	g.pushTag(enumValueNumberTag)
	g.emit(v.NumberSpan, nil)
	g.pop(1)

	vd.Options = &descriptorpb.EnumValueOptions{}
	g.pushTag(enumValueOptionsTag)
	vd.Options.UninterpretedOption = g.genOptions(v.Options)
	g.pop(1)
	return vd
}

func (g *generator) genService(s *ast.ServiceNode) *descriptorpb.ServiceDescriptorProto {
	sd := &descriptorpb.ServiceDescriptorProto{Name: proto.String(s.Name)}
	g.emitNode(s)
	g.pushTag(serviceNameTag)
	g.emit(s.NameSpan, nil)
	g.pop(1)

	for i, m := range s.Methods {
		g.push(serviceMethodTag, i)
		sd.Method = append(sd.Method, g.genMethod(m))
		g.pop(2)
	}

	sd.Options = &descriptorpb.ServiceOptions{}
	g.pushTag(serviceOptionsTag)
	sd.Options.UninterpretedOption = g.genOptions(s.Options)
	g.pop(1)
	return sd
}

func (g *generator) genMethod(m *ast.MethodNode) *descriptorpb.MethodDescriptorProto {
	md := &descriptorpb.MethodDescriptorProto{
		Name:            proto.String(m.Name),
		InputType:       proto.String(m.InputType),
		OutputType:      proto.String(m.OutputType),
		ClientStreaming: proto.Bool(m.InputStreaming),
		ServerStreaming: proto.Bool(m.OutputStreaming),
	}
	g.emitNode(m)
	g.pushTag(methodNameTag)
	g.emit(m.NameSpan, nil)
	g.pop(1)
	g.pushTag(methodInputTypeTag)
	g.emit(m.InputSpan, nil)
	g.pop(1)
	g.pushTag(methodOutputTypeTag)
	g.emit(m.OutputSpan, nil)
	g.pop(1)

	md.Options = &descriptorpb.MethodOptions{}
	g.pushTag(methodOptionsTag)
	md.Options.UninterpretedOption = g.genOptions(m.Options)
	g.pop(1)
	return md
}
