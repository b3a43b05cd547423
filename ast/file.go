package ast

// ImportKind records whether an import statement carried "public", "weak",
// or neither modifier.
type ImportKind int

const (
	ImportNormal ImportKind = iota
	ImportPublic
	ImportWeak
)

// ImportNode is an "import [public|weak] "name";" statement.
type ImportNode struct {
	base
	Path string
	Kind ImportKind
}

// PackageNode is the file's "package a.b.c;" statement, if present.
type PackageNode struct {
	base
	Name string
}

// ExtendNode is an "extend Extendee { ... }" declaration, which may appear
// at file scope or nested inside a message.
type ExtendNode struct {
	base
	Extendee     string
	ExtendeeSpan Span

	Fields []*FieldNode
	Groups []*GroupNode
}

// FileNode is the root of the syntax tree for one .proto source file.
type FileNode struct {
	base
	Name       string // as supplied to the parser, e.g. the import path
	Source     []byte
	Syntax     string // "proto2" or "proto3"; "proto2" if no syntax statement
	SyntaxSpan Span
	HadSyntax  bool

	Package *PackageNode
	Imports []*ImportNode
	Options []*OptionNode

	Messages []*MessageNode
	Enums    []*EnumNode
	Services []*ServiceNode
	Extends  []*ExtendNode
}
