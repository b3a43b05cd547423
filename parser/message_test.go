package parser

import (
	"testing"

	"github.com/protospec/protofront/report"
)

func parseSource(t *testing.T, src string) *report.Handler {
	t.Helper()
	h := report.NewHandler()
	Parse("test.proto", []byte(src), h)
	return h
}

func TestParseGroupLowercaseNameReported(t *testing.T) {
	h := parseSource(t, `
		syntax = "proto2";
		message M {
			optional group result = 1 {
				optional string value = 1;
			}
		}
	`)
	if !h.HasErrors() {
		t.Fatal("expected an invalid-group-name diagnostic")
	}
	if h.Diagnostics()[0].Kind != report.InvalidGroupName {
		t.Errorf("kind = %v", h.Diagnostics()[0].Kind)
	}
}

func TestParseGroupUppercaseNameAccepted(t *testing.T) {
	h := parseSource(t, `
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
}
