// Package report defines the compiler's diagnostic model: source positions,
// typed error kinds, and a Handler that accumulates diagnostics for a single
// pass (lexing, parsing, or checking) so a component can recover from an
// error and keep going instead of aborting on the first one.
package report

import (
	"fmt"
	"strings"
)

// Pos is a human-facing source position: a filename plus a one-based line
// and column. It is derived from a zero-based internal (line, column) pair
// computed by internal/lines.
type Pos struct {
	Filename string
	Line     int
	Col      int
}

func (p Pos) String() string {
	if p.Filename == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Col)
	}
	return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Col)
}

// FromOffset builds a Pos from a zero-based (line, col) pair as returned by
// internal/lines.Resolver.Resolve.
func FromOffset(filename string, line, col int) Pos {
	return Pos{Filename: filename, Line: line + 1, Col: col + 1}
}

// Kind identifies the machine-readable category of a diagnostic. Values
// correspond to the error taxonomy in the specification: parse-time,
// check-time, and coordinator errors.
type Kind string

const (
	// Parse-time.
	UnexpectedToken        Kind = "unexpected_token"
	UnexpectedEOF          Kind = "unexpected_eof"
	IntegerOutOfRange      Kind = "integer_out_of_range"
	InvalidFloat           Kind = "invalid_float"
	InvalidStringCharacter Kind = "invalid_string_character"
	UnterminatedString     Kind = "unterminated_string"
	InvalidSyntaxVersion   Kind = "invalid_syntax_version"
	FileTooLarge           Kind = "file_too_large"
	InvalidGroupName       Kind = "invalid_group_name"

	// Check-time.
	DuplicateName               Kind = "duplicate_name"
	DuplicateNumber              Kind = "duplicate_number"
	DuplicateCamelCaseFieldName  Kind = "duplicate_camel_case_field_name"
	UnknownSyntax                Kind = "unknown_syntax"
	TypeNameNotFound             Kind = "type_name_not_found"
	InvalidMessageFieldTypeName  Kind = "invalid_message_field_type_name"
	InvalidExtendeeTypeName      Kind = "invalid_extendee_type_name"
	InvalidExtensionNumber       Kind = "invalid_extension_number"
	InvalidMethodTypeName        Kind = "invalid_method_type_name"
	ReservedMessageNumber        Kind = "reserved_message_number"
	InvalidRange                 Kind = "invalid_range"
	InvalidDefault               Kind = "invalid_default"
	OptionUnknownField           Kind = "option_unknown_field"
	OptionExtensionInvalidExtendee Kind = "option_extension_invalid_extendee"
	OptionScalarFieldAccess      Kind = "option_scalar_field_access"
	OptionInvalidTypeName        Kind = "option_invalid_type_name"
	OptionAlreadySet             Kind = "option_already_set"
	ValueInvalidType             Kind = "value_invalid_type"
	IntegerValueOutOfRange       Kind = "integer_value_out_of_range"
	InvalidUtf8String             Kind = "invalid_utf8_string"
	InvalidEnumValue             Kind = "invalid_enum_value"

	// Coordinator.
	ImportNotFound  Kind = "import_not_found"
	CircularImport  Kind = "circular_import"
	FileNotIncluded Kind = "file_not_included"
	FileShadowed    Kind = "file_shadowed"
	OpenFile        Kind = "open_file"
)

// Label is a secondary position attached to a Diagnostic, e.g. "first
// defined here" pointing at an earlier, conflicting declaration.
type Label struct {
	Pos     Pos
	Message string
}

// Diagnostic is a single structured error or warning produced by the
// compiler. It always carries a primary position and may carry any number
// of secondary labels.
type Diagnostic struct {
	Kind      Kind
	Pos       Pos
	Message   string
	Labels    []Label
}

func (d *Diagnostic) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s", d.Pos, d.Message)
	for _, l := range d.Labels {
		fmt.Fprintf(&b, "\n  %s: %s", l.Pos, l.Message)
	}
	return b.String()
}

// Handler accumulates diagnostics emitted during a single pass over a file
// (or a composite pass over several files) and decides, each time, whether
// the pass should abort or keep going. The default policy never aborts:
// callers that want fail-fast behavior can set Fatal.
type Handler struct {
	diagnostics []*Diagnostic
	// Fatal, when true, makes Report return false for every diagnostic,
	// telling callers to stop after the first error instead of recovering.
	Fatal bool
}

// NewHandler returns a Handler with the default (accumulate, never abort)
// policy.
func NewHandler() *Handler {
	return &Handler{}
}

// Report records a diagnostic and returns whether the caller should keep
// going (true) or abort the current pass (false).
func (h *Handler) Report(d *Diagnostic) bool {
	h.diagnostics = append(h.diagnostics, d)
	return !h.Fatal
}

// Errorf is a convenience wrapper around Report that builds the Diagnostic's
// Message with fmt.Sprintf.
func (h *Handler) Errorf(kind Kind, pos Pos, format string, args ...interface{}) bool {
	return h.Report(&Diagnostic{Kind: kind, Pos: pos, Message: fmt.Sprintf(format, args...)})
}

// Diagnostics returns every diagnostic recorded so far, in report order.
func (h *Handler) Diagnostics() []*Diagnostic {
	return h.diagnostics
}

// HasErrors reports whether any diagnostic has been recorded.
func (h *Handler) HasErrors() bool {
	return len(h.diagnostics) > 0
}

// Error returns a combined error for every recorded diagnostic, or nil if
// none were recorded.
func (h *Handler) Error() error {
	if len(h.diagnostics) == 0 {
		return nil
	}
	if len(h.diagnostics) == 1 {
		return h.diagnostics[0]
	}
	return &MultiError{Diagnostics: h.diagnostics}
}

// MultiError aggregates every diagnostic recorded for a file or compilation
// unit so it can be returned as a single error value.
type MultiError struct {
	Diagnostics []*Diagnostic
}

func (m *MultiError) Error() string {
	var b strings.Builder
	for i, d := range m.Diagnostics {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(d.Error())
	}
	return b.String()
}
