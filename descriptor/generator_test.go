package descriptor

import (
	"testing"

	"google.golang.org/protobuf/types/descriptorpb"

	"github.com/protospec/protofront/parser"
	"github.com/protospec/protofront/report"
)

func generate(t *testing.T, src string) (*descriptorpb.FileDescriptorProto, *report.Handler) {
	t.Helper()
	h := report.NewHandler()
	tree := parser.Parse("test.proto", []byte(src), h)
	if h.HasErrors() {
		t.Fatalf("parse errors: %v", h.Diagnostics())
	}
	return Generate(tree, true, h), h
}

func TestGenerateBasicMessage(t *testing.T) {
	fd, h := generate(t, `
		syntax = "proto3";
		package foo;
		message Person {
			string name = 1;
			int32 age = 2;
		}
	`)
	if h.HasErrors() {
		t.Fatalf("unexpected errors: %v", h.Diagnostics())
	}
	if fd.GetSyntax() != "proto3" || fd.GetPackage() != "foo" {
		t.Fatalf("got syntax=%q package=%q", fd.GetSyntax(), fd.GetPackage())
	}
	if len(fd.MessageType) != 1 || fd.MessageType[0].GetName() != "Person" {
		t.Fatalf("unexpected message types: %+v", fd.MessageType)
	}
	fields := fd.MessageType[0].Field
	if len(fields) != 2 {
		t.Fatalf("got %d fields, want 2", len(fields))
	}
	if fields[0].GetName() != "name" || fields[0].GetNumber() != 1 || fields[0].GetType() != descriptorpb.FieldDescriptorProto_TYPE_STRING {
		t.Errorf("field 0 = %+v", fields[0])
	}
	if fields[0].GetJsonName() != "name" {
		t.Errorf("json name = %q", fields[0].GetJsonName())
	}
}

func TestGenerateMapField(t *testing.T) {
	fd, h := generate(t, `
		syntax = "proto3";
		message M {
			map<string, int32> counts = 1;
		}
	`)
	if h.HasErrors() {
		t.Fatalf("unexpected errors: %v", h.Diagnostics())
	}
	m := fd.MessageType[0]
	if len(m.NestedType) != 1 || !m.NestedType[0].GetOptions().GetMapEntry() {
		t.Fatalf("expected synthesized map entry, got %+v", m.NestedType)
	}
	entry := m.NestedType[0]
	if entry.GetName() != "CountsEntry" {
		t.Errorf("entry name = %q", entry.GetName())
	}
	if len(entry.Field) != 2 || entry.Field[0].GetName() != "key" || entry.Field[1].GetName() != "value" {
		t.Fatalf("entry fields = %+v", entry.Field)
	}
	if m.Field[0].GetTypeName() != "CountsEntry" {
		t.Errorf("field type name = %q", m.Field[0].GetTypeName())
	}
	if m.Field[0].GetLabel() != descriptorpb.FieldDescriptorProto_LABEL_REPEATED {
		t.Errorf("map field label = %v", m.Field[0].GetLabel())
	}
}

func TestGenerateProto3OptionalSynthesizesOneof(t *testing.T) {
	fd, h := generate(t, `
		syntax = "proto3";
		message M {
			optional string name = 1;
		}
	`)
	if h.HasErrors() {
		t.Fatalf("unexpected errors: %v", h.Diagnostics())
	}
	m := fd.MessageType[0]
	if len(m.OneofDecl) != 1 || m.OneofDecl[0].GetName() != "_name" {
		t.Fatalf("expected synthetic oneof, got %+v", m.OneofDecl)
	}
	f := m.Field[0]
	if !f.GetProto3Optional() || f.GetOneofIndex() != 0 {
		t.Errorf("field = %+v", f)
	}
}

func TestGenerateGroupField(t *testing.T) {
	fd, h := generate(t, `
		syntax = "proto2";
		message M {
			optional group Result = 1 {
				optional string value = 1;
			}
		}
	`)
	if h.HasErrors() {
		t.Fatalf("unexpected errors: %v", h.Diagnostics())
	}
	m := fd.MessageType[0]
	if len(m.NestedType) != 1 || m.NestedType[0].GetName() != "Result" {
		t.Fatalf("nested types = %+v", m.NestedType)
	}
	if m.Field[0].GetName() != "result" || m.Field[0].GetType() != descriptorpb.FieldDescriptorProto_TYPE_GROUP {
		t.Errorf("group field = %+v", m.Field[0])
	}
}

func TestGenerateSourceCodeInfoCoversMessage(t *testing.T) {
	fd, h := generate(t, `
		syntax = "proto3";
		// leading comment
		message M {
			string name = 1;
		}
	`)
	if h.HasErrors() {
		t.Fatalf("unexpected errors: %v", h.Diagnostics())
	}
	if fd.SourceCodeInfo == nil || len(fd.SourceCodeInfo.Location) == 0 {
		t.Fatal("expected non-empty SourceCodeInfo")
	}
	var found bool
	for _, loc := range fd.SourceCodeInfo.Location {
		if len(loc.Path) == 2 && loc.Path[0] == fileMessageTag && loc.Path[1] == 0 {
			found = true
			if loc.GetLeadingComments() == "" {
				t.Errorf("expected leading comment on message location")
			}
		}
	}
	if !found {
		t.Fatal("no location recorded for message_type[0]")
	}
}
