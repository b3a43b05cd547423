package ast

// MethodNode is an "rpc Name (stream? Input) returns (stream? Output)
// [{ options }];" declaration inside a service.
type MethodNode struct {
	base
	Name     string
	NameSpan Span

	InputType       string
	InputStreaming  bool
	InputSpan       Span
	OutputType      string
	OutputStreaming bool
	OutputSpan      Span

	Options []*OptionNode
}

// ServiceNode is a "service Name { ... }" declaration.
type ServiceNode struct {
	base
	Name     string
	NameSpan Span

	Methods []*MethodNode
	Options []*OptionNode
}
