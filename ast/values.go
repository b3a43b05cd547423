package ast

// ValueKind discriminates the payload carried by a ValueNode.
type ValueKind int

const (
	ValueInt ValueKind = iota
	ValueFloat
	ValueBool
	ValueString
	ValueIdent    // a bare identifier, e.g. an enum value name in an option
	ValueAggregate
	ValueArray
)

// ValueNode is a parsed option or enum-value-option literal. Exactly the
// field matching Kind is meaningful. Aggregate and array values are parsed
// but the contained tokens are otherwise preserved verbatim for later
// interpretation against the target option's schema.
type ValueNode struct {
	base
	Kind ValueKind

	Int       int64
	IntNegative bool
	Float     float64
	Bool      bool
	Str       []byte
	Ident     string

	Aggregate []*AggregateField
	Array     []*ValueNode
}

// AggregateField is one "name: value" (or "name { ... }") pair inside a
// message-literal option value, e.g. `option (x) = { foo: 1 bar: "a" };`.
type AggregateField struct {
	base
	Name  string
	IsExt bool // name was written as "(extension.name)"
	Value *ValueNode
}
