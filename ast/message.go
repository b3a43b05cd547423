package ast

// MessageBody holds the declarations inside a message's braces. It is
// shared between MessageNode and GroupNode, since a proto2 group's body has
// the same grammar as a message body.
type MessageBody struct {
	Fields  []*FieldNode
	Maps    []*MapFieldNode
	Groups  []*GroupNode
	Oneofs  []*OneofNode
	Nested  []*MessageNode
	Enums   []*EnumNode
	Extends []*ExtendNode

	ExtensionRanges []*ExtensionRangeNode
	Reserved        []*ReservedNode
	Options         []*OptionNode
}

// MessageNode is a "message Name { ... }" declaration.
type MessageNode struct {
	base
	Name     string
	NameSpan Span
	Body     *MessageBody
}
