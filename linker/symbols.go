// Package linker builds the flat fully-qualified-name symbol table for a
// compiled file set, resolves type references against it using protobuf's
// scoping rules, and validates field numbers, reserved ranges, and
// extension placement.
package linker

import (
	"fmt"

	art "github.com/plar/go-adaptive-radix-tree"

	"github.com/protospec/protofront/report"
)

// SymbolKind classifies what a fully-qualified name refers to.
type SymbolKind int

const (
	KindMessage SymbolKind = iota
	KindEnum
	KindEnumValue
	KindExtension
	KindService
	KindMethod
	KindOneof
	KindField
)

func (k SymbolKind) String() string {
	switch k {
	case KindMessage:
		return "message"
	case KindEnum:
		return "enum"
	case KindEnumValue:
		return "enum value"
	case KindExtension:
		return "extension"
	case KindService:
		return "service"
	case KindMethod:
		return "method"
	case KindOneof:
		return "oneof"
	case KindField:
		return "field"
	default:
		return "symbol"
	}
}

// Symbol is one entry of the name map: what kind of declaration a
// fully-qualified name refers to, which file declared it, and where.
type Symbol struct {
	Kind SymbolKind
	File string
	Pos  report.Pos
}

// NameMap is a flat fully-qualified-name -> Symbol table. It is backed by
// an adaptive radix trie rather than a plain Go map: the trie's prefix
// operations are a natural fit for the scope-widening lookup in Resolve,
// and insertion/lookup of dotted protobuf names (which share long common
// prefixes once packages nest) is exactly the trie's favorable case.
type NameMap struct {
	tree art.Tree
}

// NewNameMap returns an empty map.
func NewNameMap() *NameMap {
	return &NameMap{tree: art.New()}
}

// Insert records fqn -> sym. If fqn is already present, it reports
// DuplicateName to handler (with both locations) and leaves the existing
// entry in place.
func (m *NameMap) Insert(fqn string, sym Symbol, handler *report.Handler) {
	key := art.Key(fqn)
	if v, found := m.tree.Search(key); found {
		existing := v.(Symbol)
		handler.Report(&report.Diagnostic{
			Kind:    report.DuplicateName,
			Pos:     sym.Pos,
			Message: fmt.Sprintf("%q is already defined", fqn),
			Labels: []report.Label{
				{Pos: existing.Pos, Message: "first defined here"},
			},
		})
		return
	}
	m.tree.Insert(key, sym)
}

// Get looks up fqn (without a leading dot) directly, with no scope
// widening.
func (m *NameMap) Get(fqn string) (Symbol, bool) {
	v, found := m.tree.Search(art.Key(fqn))
	if !found {
		return Symbol{}, false
	}
	return v.(Symbol), true
}

// Merge inserts every entry of other into m, reporting cross-file
// DuplicateName diagnostics the same way Insert does.
func (m *NameMap) Merge(other *NameMap, handler *report.Handler) {
	other.tree.ForEach(func(node art.Node) bool {
		m.Insert(string(node.Key()), node.Value().(Symbol), handler)
		return true
	})
}

// Len returns the number of distinct fully-qualified names recorded.
func (m *NameMap) Len() int { return m.tree.Size() }

// join appends name to prefix with a dot, or returns name unchanged if
// prefix is the root scope "".
func join(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}

// Scopes returns the scope-widening search order for a reference written
// inside the message/file whose fully-qualified name is fqn: fqn itself,
// each enclosing prefix, and finally the root "".
func Scopes(fqn string) []string {
	if fqn == "" {
		return []string{""}
	}
	out := []string{fqn}
	for i := len(fqn) - 1; i >= 0; i-- {
		if fqn[i] == '.' {
			out = append(out, fqn[:i])
		}
	}
	return append(out, "")
}

// Resolve looks up name starting from the innermost scope in scopes and
// widening outward, per §4.6: a leading-dot name is absolute and is looked
// up directly instead. It returns the matching symbol and the
// fully-qualified name it resolved to.
func (m *NameMap) Resolve(scopes []string, name string) (Symbol, string, bool) {
	if len(name) > 0 && name[0] == '.' {
		key := name[1:]
		sym, ok := m.Get(key)
		return sym, key, ok
	}
	for _, s := range scopes {
		key := join(s, name)
		if sym, ok := m.Get(key); ok {
			return sym, key, true
		}
	}
	return Symbol{}, "", false
}
