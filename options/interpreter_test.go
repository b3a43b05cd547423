package options

import (
	"testing"

	"github.com/protospec/protofront/descriptor"
	"github.com/protospec/protofront/parser"
	"github.com/protospec/protofront/report"
)

func TestInterpretFileDeprecatedMessageOption(t *testing.T) {
	h := report.NewHandler()
	tree := parser.Parse("test.proto", []byte(`
		syntax = "proto3";
		message M {
			option deprecated = true;
			string name = 1;
		}
	`), h)
	if h.HasErrors() {
		t.Fatalf("parse errors: %v", h.Diagnostics())
	}
	fd := descriptor.Generate(tree, false, h)
	InterpretFile(fd, h)
	if h.HasErrors() {
		t.Fatalf("unexpected errors: %v", h.Diagnostics())
	}
	if !fd.MessageType[0].GetOptions().GetDeprecated() {
		t.Fatal("expected MessageOptions.deprecated to be set")
	}
	if len(fd.MessageType[0].GetOptions().GetUninterpretedOption()) != 0 {
		t.Error("expected no leftover uninterpreted options")
	}
}

func TestInterpretFileFieldPacked(t *testing.T) {
	h := report.NewHandler()
	tree := parser.Parse("test.proto", []byte(`
		syntax = "proto3";
		message M {
			repeated int32 ids = 1 [packed = true];
		}
	`), h)
	if h.HasErrors() {
		t.Fatalf("parse errors: %v", h.Diagnostics())
	}
	fd := descriptor.Generate(tree, false, h)
	InterpretFile(fd, h)
	if h.HasErrors() {
		t.Fatalf("unexpected errors: %v", h.Diagnostics())
	}
	if !fd.MessageType[0].Field[0].GetOptions().GetPacked() {
		t.Fatal("expected FieldOptions.packed to be set")
	}
}

func TestInterpretFileUnknownOptionFieldReported(t *testing.T) {
	h := report.NewHandler()
	tree := parser.Parse("test.proto", []byte(`
		syntax = "proto3";
		message M {
			option not_a_real_option = true;
		}
	`), h)
	if h.HasErrors() {
		t.Fatalf("parse errors: %v", h.Diagnostics())
	}
	fd := descriptor.Generate(tree, false, h)
	InterpretFile(fd, h)
	if !h.HasErrors() {
		t.Fatal("expected an unknown-option-field diagnostic")
	}
}

func TestInterpretFileOneofDeprecatedOption(t *testing.T) {
	h := report.NewHandler()
	tree := parser.Parse("test.proto", []byte(`
		syntax = "proto3";
		message M {
			oneof kind {
				option deprecated = true;
				string name = 1;
				int32 id = 2;
			}
		}
	`), h)
	if h.HasErrors() {
		t.Fatalf("parse errors: %v", h.Diagnostics())
	}
	fd := descriptor.Generate(tree, false, h)
	InterpretFile(fd, h)
	// OneofOptions declares no "deprecated" field, so interpreting the
	// oneof's options reports it as an unknown option field.
	if !h.HasErrors() || h.Diagnostics()[0].Kind != report.OptionUnknownField {
		t.Fatalf("expected an unknown-option-field diagnostic, got %v", h.Diagnostics())
	}
	if len(fd.MessageType[0].OneofDecl[0].GetOptions().GetUninterpretedOption()) != 1 {
		t.Fatal("expected the oneof's unknown option to remain uninterpreted")
	}
}

func TestInterpretFileExtensionOptionLeftUninterpreted(t *testing.T) {
	h := report.NewHandler()
	tree := parser.Parse("test.proto", []byte(`
		syntax = "proto3";
		message M {
			option (my.custom_option) = true;
		}
	`), h)
	if h.HasErrors() {
		t.Fatalf("parse errors: %v", h.Diagnostics())
	}
	fd := descriptor.Generate(tree, false, h)
	InterpretFile(fd, h)
	if h.HasErrors() {
		t.Fatalf("unexpected errors: %v", h.Diagnostics())
	}
	if len(fd.MessageType[0].GetOptions().GetUninterpretedOption()) != 1 {
		t.Fatal("expected the custom option to remain uninterpreted")
	}
}
