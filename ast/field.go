package ast

// FieldLabel is the label keyword written before a field's type, if any.
type FieldLabel int

const (
	LabelNone FieldLabel = iota
	LabelOptional
	LabelRequired
	LabelRepeated
)

// FieldNode is an ordinary message field declaration:
// "label type name = number [options];".
type FieldNode struct {
	base
	Label     FieldLabel
	LabelSpan Span

	TypeName string // scalar keyword or a (possibly dotted) user type name
	TypeSpan Span

	Name     string
	NameSpan Span

	Number     int32
	NumberSpan Span

	Options []*OptionNode

	// Proto3Optional is not set by the parser, and the generator does not
	// read it: the generator marks a field proto3-optional from the file's
	// syntax and Label, and lowers such fields into a synthetic oneof.
	Proto3Optional bool
}

// MapFieldNode is a "map<key, value> name = number [options];" declaration.
type MapFieldNode struct {
	base
	KeyType   string
	KeySpan   Span
	ValueType string
	ValueSpan Span

	Name     string
	NameSpan Span

	Number     int32
	NumberSpan Span

	Options []*OptionNode
}

// GroupNode is a proto2 "label group Name = number { ... }" declaration. Its
// Body holds the nested fields, which the generator lowers into a synthetic
// nested message.
type GroupNode struct {
	base
	Label     FieldLabel
	LabelSpan Span

	Name     string // PascalCase, also used (lowercased) as the field name
	NameSpan Span

	Number     int32
	NumberSpan Span

	Options []*OptionNode
	Body    *MessageBody
}

// OneofNode is a "oneof name { ... }" declaration.
type OneofNode struct {
	base
	Name     string
	NameSpan Span

	Fields  []*FieldNode
	Maps    []*MapFieldNode
	Groups  []*GroupNode
	Options []*OptionNode
}
