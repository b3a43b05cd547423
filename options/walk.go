package options

import (
	"google.golang.org/protobuf/types/descriptorpb"

	"github.com/protospec/protofront/report"
)

// InterpretFile applies Interpret to every options message in fd: the
// file itself, and every message, field, oneof, enum, enum value,
// service, and method it transitively contains.
func InterpretFile(fd *descriptorpb.FileDescriptorProto, handler *report.Handler) {
	file := fd.GetName()
	if fd.Options != nil {
		Interpret(file, fd.Options, handler)
	}
	for _, m := range fd.MessageType {
		interpretMessage(file, m, handler)
	}
	for _, e := range fd.EnumType {
		interpretEnum(file, e, handler)
	}
	for _, s := range fd.Service {
		if s.Options != nil {
			Interpret(file, s.Options, handler)
		}
		for _, method := range s.Method {
			if method.Options != nil {
				Interpret(file, method.Options, handler)
			}
		}
	}
	for _, f := range fd.Extension {
		if f.Options != nil {
			Interpret(file, f.Options, handler)
		}
	}
}

func interpretMessage(file string, m *descriptorpb.DescriptorProto, handler *report.Handler) {
	if m.Options != nil {
		Interpret(file, m.Options, handler)
	}
	for _, f := range m.Field {
		if f.Options != nil {
			Interpret(file, f.Options, handler)
		}
	}
	for _, f := range m.Extension {
		if f.Options != nil {
			Interpret(file, f.Options, handler)
		}
	}
	for _, o := range m.OneofDecl {
		if o.Options != nil {
			Interpret(file, o.Options, handler)
		}
	}
	for _, nested := range m.NestedType {
		interpretMessage(file, nested, handler)
	}
	for _, e := range m.EnumType {
		interpretEnum(file, e, handler)
	}
}

func interpretEnum(file string, e *descriptorpb.EnumDescriptorProto, handler *report.Handler) {
	if e.Options != nil {
		Interpret(file, e.Options, handler)
	}
	for _, v := range e.Value {
		if v.Options != nil {
			Interpret(file, v.Options, handler)
		}
	}
}
