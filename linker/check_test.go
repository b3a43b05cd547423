package linker

import (
	"testing"

	"github.com/protospec/protofront/descriptor"
	"github.com/protospec/protofront/parser"
	"github.com/protospec/protofront/report"
)

func checkSource(t *testing.T, src string) *report.Handler {
	t.Helper()
	h := report.NewHandler()
	tree := parser.Parse("test.proto", []byte(src), h)
	if h.HasErrors() {
		t.Fatalf("parse errors: %v", h.Diagnostics())
	}
	fd := descriptor.Generate(tree, false, h)
	CheckFile(fd, h)
	return h
}

func TestCheckFileDuplicateFieldNumber(t *testing.T) {
	h := checkSource(t, `
		syntax = "proto3";
		message M {
			string a = 1;
			int32 b = 1;
		}
	`)
	if !h.HasErrors() {
		t.Fatal("expected a duplicate number diagnostic")
	}
}

func TestCheckFileReservedRange(t *testing.T) {
	h := checkSource(t, `
		syntax = "proto3";
		message M {
			reserved 1 to 3;
			string a = 2;
		}
	`)
	if !h.HasErrors() {
		t.Fatal("expected a reserved-range diagnostic")
	}
}

func TestCheckFileReservedRangeAroundFieldRange(t *testing.T) {
	h := checkSource(t, `
		syntax = "proto3";
		message M {
			string a = 19500;
		}
	`)
	if !h.HasErrors() {
		t.Fatal("expected field number inside the built-in reserved range to be flagged")
	}
}

func TestCheckFileCamelCaseCollision(t *testing.T) {
	h := checkSource(t, `
		syntax = "proto3";
		message M {
			string foo_bar = 1;
			string fooBar = 2;
		}
	`)
	if !h.HasErrors() {
		t.Fatal("expected a camelCase collision diagnostic")
	}
}

func TestCheckFileValidMessagePasses(t *testing.T) {
	h := checkSource(t, `
		syntax = "proto3";
		message M {
			string name = 1;
			int32 age = 2;
			message Nested {
				string x = 1;
			}
		}
	`)
	if h.HasErrors() {
		t.Fatalf("unexpected errors: %v", h.Diagnostics())
	}
}
