package ast

// EnumValueNode is a single "Name = number [options];" entry inside an enum.
type EnumValueNode struct {
	base
	Name     string
	NameSpan Span

	Number     int32
	NumberSpan Span

	Options []*OptionNode
}

// EnumNode is an "enum Name { ... }" declaration.
type EnumNode struct {
	base
	Name     string
	NameSpan Span

	Values   []*EnumValueNode
	Options  []*OptionNode
	Reserved []*ReservedNode
}
