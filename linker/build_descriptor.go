package linker

import (
	"google.golang.org/protobuf/types/descriptorpb"

	"github.com/protospec/protofront/report"
)

// BuildDescriptorNameMap builds a NameMap directly from an already-built
// FileDescriptorProto, for files that arrived through the descriptor-set
// resolver and therefore have no syntax tree to walk. Such files carry no
// source spans, so every Symbol's Pos is the zero value.
func BuildDescriptorNameMap(fd *descriptorpb.FileDescriptorProto, handler *report.Handler) *NameMap {
	m := NewNameMap()
	file := fd.GetName()
	insert := func(fqn string, kind SymbolKind) {
		m.Insert(fqn, Symbol{Kind: kind, File: file}, handler)
	}

	var walkMessage func(prefix string, d *descriptorpb.DescriptorProto)
	walkMessage = func(prefix string, d *descriptorpb.DescriptorProto) {
		fqn := join(prefix, d.GetName())
		insert(fqn, KindMessage)
		for _, f := range d.Field {
			insert(join(fqn, f.GetName()), KindField)
		}
		for _, f := range d.Extension {
			insert(join(fqn, f.GetName()), KindExtension)
		}
		for _, o := range d.OneofDecl {
			insert(join(fqn, o.GetName()), KindOneof)
		}
		for _, nested := range d.NestedType {
			walkMessage(fqn, nested)
		}
		for _, e := range d.EnumType {
			walkEnum(fqn, e, insert)
		}
	}

	pkg := fd.GetPackage()
	for _, m := range fd.MessageType {
		walkMessage(pkg, m)
	}
	for _, e := range fd.EnumType {
		walkEnum(pkg, e, insert)
	}
	for _, s := range fd.Service {
		fqn := join(pkg, s.GetName())
		insert(fqn, KindService)
		for _, method := range s.Method {
			insert(join(fqn, method.GetName()), KindMethod)
		}
	}
	for _, f := range fd.Extension {
		insert(join(pkg, f.GetName()), KindExtension)
	}
	return m
}

func walkEnum(prefix string, e *descriptorpb.EnumDescriptorProto, insert func(string, SymbolKind)) {
	insert(join(prefix, e.GetName()), KindEnum)
	for _, v := range e.Value {
		insert(join(prefix, v.GetName()), KindEnumValue)
	}
}
