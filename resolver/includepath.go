package resolver

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
)

// IncludePath resolves import names against an ordered list of root
// directories, the same way protoc's -I flag does: the first root whose
// relative path exists wins.
type IncludePath struct {
	roots []string
}

// NewIncludePath returns an IncludePath searching roots in order.
func NewIncludePath(roots ...string) *IncludePath {
	return &IncludePath{roots: append([]string(nil), roots...)}
}

func (p *IncludePath) ResolvePath(fsPath string) (string, bool) {
	abs, err := filepath.Abs(fsPath)
	if err != nil {
		return "", false
	}
	for _, root := range p.roots {
		rootAbs, err := filepath.Abs(root)
		if err != nil {
			continue
		}
		rel, err := filepath.Rel(rootAbs, abs)
		if err != nil || strings.HasPrefix(rel, "..") {
			continue
		}
		return filepath.ToSlash(rel), true
	}
	return "", false
}

func (p *IncludePath) Open(name string) (*File, error) {
	for _, root := range p.roots {
		data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(name)))
		if err == nil {
			return &File{Name: name, Source: data}, nil
		}
		if !os.IsNotExist(err) {
			return nil, err
		}
	}
	return nil, &NotFoundError{Name: name}
}

// Shadow reports whether content (already opened for import name
// importName from whichever root actually served it) differs from what an
// earlier, higher-priority root would have served for the same name —
// i.e. the file the caller is compiling is shadowed by a conflicting
// file earlier in the search order. It returns the shadowing root's path
// when shadowed.
func (p *IncludePath) Shadow(importName string, content []byte) (shadowingRoot string, shadowed bool) {
	for _, root := range p.roots {
		data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(importName)))
		if err != nil {
			continue
		}
		if !bytes.Equal(data, content) {
			return root, true
		}
		return "", false
	}
	return "", false
}
