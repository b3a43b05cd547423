package linker

import (
	"testing"

	"google.golang.org/protobuf/types/descriptorpb"

	"github.com/protospec/protofront/descriptor"
	"github.com/protospec/protofront/parser"
	"github.com/protospec/protofront/report"
)

func resolveSource(t *testing.T, src string) (*descriptorpb.FileDescriptorProto, *report.Handler) {
	t.Helper()
	h := report.NewHandler()
	tree := parser.Parse("test.proto", []byte(src), h)
	if h.HasErrors() {
		t.Fatalf("parse errors: %v", h.Diagnostics())
	}
	fd := descriptor.Generate(tree, false, h)
	names := BuildFileNameMap(tree, h)
	ResolveFile(fd, names, h)
	return fd, h
}

func TestResolveFileMessageFieldType(t *testing.T) {
	fd, h := resolveSource(t, `
		syntax = "proto3";
		package p;
		message Inner {}
		message Outer {
			Inner inner = 1;
		}
	`)
	if h.HasErrors() {
		t.Fatalf("unexpected errors: %v", h.Diagnostics())
	}
	outer := fd.MessageType[1]
	if outer.Field[0].GetTypeName() != ".p.Inner" {
		t.Errorf("type name = %q", outer.Field[0].GetTypeName())
	}
}

func TestResolveFileUnknownTypeReported(t *testing.T) {
	_, h := resolveSource(t, `
		syntax = "proto3";
		message M {
			Missing f = 1;
		}
	`)
	if !h.HasErrors() {
		t.Fatal("expected a type-not-found diagnostic")
	}
	if h.Diagnostics()[0].Kind != report.TypeNameNotFound {
		t.Errorf("kind = %v", h.Diagnostics()[0].Kind)
	}
}

func TestResolveFileEnumFieldRefinesType(t *testing.T) {
	fd, h := resolveSource(t, `
		syntax = "proto3";
		enum Color { RED = 0; }
		message M {
			Color c = 1;
		}
	`)
	if h.HasErrors() {
		t.Fatalf("unexpected errors: %v", h.Diagnostics())
	}
	f := fd.MessageType[0].Field[0]
	if f.GetType() != descriptorpb.FieldDescriptorProto_TYPE_ENUM {
		t.Errorf("type = %v, want TYPE_ENUM", f.GetType())
	}
	if f.GetTypeName() != ".Color" {
		t.Errorf("type name = %q", f.GetTypeName())
	}
}

func TestResolveFileServiceMethodTypes(t *testing.T) {
	fd, h := resolveSource(t, `
		syntax = "proto3";
		message Req {}
		message Resp {}
		service Svc {
			rpc Do (Req) returns (Resp);
		}
	`)
	if h.HasErrors() {
		t.Fatalf("unexpected errors: %v", h.Diagnostics())
	}
	method := fd.Service[0].Method[0]
	if method.GetInputType() != ".Req" || method.GetOutputType() != ".Resp" {
		t.Errorf("method = %+v", method)
	}
}
