package ast

// Visitor is the traversal protocol shared by every consumer of the syntax
// tree. Visit is called once per node in a pre-order walk; returning false
// prunes that node's children. A Visitor that always returns true performs
// a full traversal, the "default" recursing behavior.
type Visitor interface {
	Visit(n Node) bool
}

// VisitorFunc adapts a plain function to the Visitor interface.
type VisitorFunc func(n Node) bool

func (f VisitorFunc) Visit(n Node) bool { return f(n) }

// Walk performs a pre-order traversal of the syntax tree rooted at n,
// calling v.Visit for every node reached. The descriptor generator does not
// use Walk directly (it needs a path stack tagged with descriptor field
// numbers, which Walk knows nothing about) but any node-order analysis
// (formatting, linting, search) can.
func Walk(v Visitor, n Node) {
	if n == nil || !v.Visit(n) {
		return
	}
	switch n := n.(type) {
	case *FileNode:
		if n.Package != nil {
			Walk(v, n.Package)
		}
		for _, i := range n.Imports {
			Walk(v, i)
		}
		for _, o := range n.Options {
			Walk(v, o)
		}
		for _, m := range n.Messages {
			Walk(v, m)
		}
		for _, e := range n.Enums {
			Walk(v, e)
		}
		for _, s := range n.Services {
			Walk(v, s)
		}
		for _, e := range n.Extends {
			Walk(v, e)
		}
	case *MessageNode:
		walkBody(v, n.Body)
	case *ExtendNode:
		for _, f := range n.Fields {
			Walk(v, f)
		}
		for _, g := range n.Groups {
			Walk(v, g)
		}
	case *OneofNode:
		for _, f := range n.Fields {
			Walk(v, f)
		}
		for _, m := range n.Maps {
			Walk(v, m)
		}
		for _, g := range n.Groups {
			Walk(v, g)
		}
		for _, o := range n.Options {
			Walk(v, o)
		}
	case *GroupNode:
		for _, o := range n.Options {
			Walk(v, o)
		}
		if n.Body != nil {
			walkBody(v, n.Body)
		}
	case *EnumNode:
		for _, val := range n.Values {
			Walk(v, val)
		}
		for _, o := range n.Options {
			Walk(v, o)
		}
		for _, r := range n.Reserved {
			Walk(v, r)
		}
	case *EnumValueNode:
		for _, o := range n.Options {
			Walk(v, o)
		}
	case *ServiceNode:
		for _, m := range n.Methods {
			Walk(v, m)
		}
		for _, o := range n.Options {
			Walk(v, o)
		}
	case *MethodNode:
		for _, o := range n.Options {
			Walk(v, o)
		}
	case *FieldNode:
		for _, o := range n.Options {
			Walk(v, o)
		}
	case *MapFieldNode:
		for _, o := range n.Options {
			Walk(v, o)
		}
	case *OptionNode:
		if n.Value != nil {
			Walk(v, n.Value)
		}
	case *ValueNode:
		for _, a := range n.Aggregate {
			Walk(v, a)
		}
		for _, e := range n.Array {
			Walk(v, e)
		}
	case *AggregateField:
		if n.Value != nil {
			Walk(v, n.Value)
		}
	case *ReservedNode:
		for _, r := range n.Ranges {
			Walk(v, r)
		}
		for _, nm := range n.Names {
			Walk(v, nm)
		}
	case *ExtensionRangeNode:
		for _, r := range n.Ranges {
			Walk(v, r)
		}
		for _, o := range n.Options {
			Walk(v, o)
		}
	}
}

func walkBody(v Visitor, b *MessageBody) {
	if b == nil {
		return
	}
	for _, f := range b.Fields {
		Walk(v, f)
	}
	for _, m := range b.Maps {
		Walk(v, m)
	}
	for _, g := range b.Groups {
		Walk(v, g)
	}
	for _, o := range b.Oneofs {
		Walk(v, o)
	}
	for _, n := range b.Nested {
		Walk(v, n)
	}
	for _, e := range b.Enums {
		Walk(v, e)
	}
	for _, e := range b.Extends {
		Walk(v, e)
	}
	for _, r := range b.ExtensionRanges {
		Walk(v, r)
	}
	for _, r := range b.Reserved {
		Walk(v, r)
	}
	for _, o := range b.Options {
		Walk(v, o)
	}
}
