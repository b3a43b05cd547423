package linker

import (
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/descriptorpb"

	"github.com/protospec/protofront/report"
)

// ResolveFile rewrites every type_name / extendee reference in fd in
// place, using names (the composite map over the whole compilation unit)
// and protobuf's scope-widening lookup rules. Diagnostics are reported
// against file (fd's own name), since descriptor protos do not carry
// spans themselves; the generator attaches spans to the parallel
// SourceCodeInfo instead. No lookaside from descriptor to ast span is kept,
// so every diagnostic carries only the file name, whether the file was
// parsed from source or loaded from a pre-encoded descriptor set.
func ResolveFile(fd *descriptorpb.FileDescriptorProto, names *NameMap, handler *report.Handler) {
	pkg := fd.GetPackage()
	file := fd.GetName()
	resolveMessages(pkg, fd.MessageType, names, handler, file)
	resolveFields(pkg, fd.Extension, names, handler, file, true)
	resolveServices(pkg, fd.Service, names, handler, file)
}

func resolveMessages(prefix string, msgs []*descriptorpb.DescriptorProto, names *NameMap, handler *report.Handler, file string) {
	for _, m := range msgs {
		fqn := join(prefix, m.GetName())
		resolveFields(fqn, m.Field, names, handler, file, false)
		resolveFields(fqn, m.Extension, names, handler, file, true)
		resolveMessages(fqn, m.NestedType, names, handler, file)
	}
}

func resolveServices(prefix string, services []*descriptorpb.ServiceDescriptorProto, names *NameMap, handler *report.Handler, file string) {
	for _, s := range services {
		for _, method := range s.Method {
			resolveMethodType(prefix, method.GetInputType(), names, handler, file, method.InputType != nil, func(v string) { method.InputType = proto.String(v) })
			resolveMethodType(prefix, method.GetOutputType(), names, handler, file, method.OutputType != nil, func(v string) { method.OutputType = proto.String(v) })
		}
	}
}

func resolveMethodType(scopeFqn, name string, names *NameMap, handler *report.Handler, file string, present bool, set func(string)) {
	if !present || name == "" {
		return
	}
	sym, resolved, ok := names.Resolve(Scopes(scopeFqn), name)
	if !ok {
		handler.Errorf(report.TypeNameNotFound, report.Pos{Filename: file}, "%q not found", name)
		return
	}
	if sym.Kind != KindMessage {
		handler.Errorf(report.InvalidMethodTypeName, report.Pos{Filename: file}, "%q is a %s, not a message", name, sym.Kind)
		return
	}
	set("." + resolved)
}

// resolveFields rewrites type_name on every field of fields that the
// generator left pending (non-nil TypeName), and, for extension fields,
// also resolves Extendee.
func resolveFields(scopeFqn string, fields []*descriptorpb.FieldDescriptorProto, names *NameMap, handler *report.Handler, file string, isExtension bool) {
	for _, f := range fields {
		if isExtension && f.Extendee != nil {
			sym, resolved, ok := names.Resolve(Scopes(scopeFqn), f.GetExtendee())
			if !ok {
				handler.Errorf(report.TypeNameNotFound, report.Pos{Filename: file}, "%q not found", f.GetExtendee())
			} else if sym.Kind != KindMessage {
				handler.Errorf(report.InvalidExtendeeTypeName, report.Pos{Filename: file}, "%q is a %s, not a message", f.GetExtendee(), sym.Kind)
			} else {
				f.Extendee = proto.String("." + resolved)
			}
		}

		if f.TypeName == nil {
			continue
		}
		sym, resolved, ok := names.Resolve(Scopes(scopeFqn), f.GetTypeName())
		if !ok {
			handler.Errorf(report.TypeNameNotFound, report.Pos{Filename: file}, "%s: type %q not found", f.GetName(), f.GetTypeName())
			continue
		}
		switch sym.Kind {
		case KindEnum:
			if f.GetType() == descriptorpb.FieldDescriptorProto_TYPE_GROUP {
				handler.Errorf(report.InvalidMessageFieldTypeName, report.Pos{Filename: file}, "%s: %q is an enum, not a group", f.GetName(), f.GetTypeName())
				continue
			}
			f.Type = descriptorpb.FieldDescriptorProto_TYPE_ENUM.Enum()
		case KindMessage:
			// Type is already TYPE_MESSAGE or TYPE_GROUP from the
			// generator; a group's type_name always names one of its own
			// synthetic nested messages, so this case never needs to
			// change Type, only canonicalize the name.
		default:
			handler.Errorf(report.InvalidMessageFieldTypeName, report.Pos{Filename: file},
				"%s: %q is a %s, not a message or enum", f.GetName(), f.GetTypeName(), sym.Kind)
			continue
		}
		f.TypeName = proto.String("." + resolved)
	}
}
