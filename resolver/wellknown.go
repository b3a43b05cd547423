package resolver

import "path/filepath"

// WellKnownTypes serves the fixed google/protobuf/*.proto sources from an
// in-memory map the caller supplies. The actual text of those files is an
// external asset bundle out of scope here; this resolver only needs to
// treat whatever strings it is given as opaque source, the same way it
// would treat any other resolver's output.
type WellKnownTypes struct {
	files map[string]string
}

// NewWellKnownTypes builds a resolver over files, a map from import name
// (e.g. "google/protobuf/timestamp.proto") to source text.
func NewWellKnownTypes(files map[string]string) *WellKnownTypes {
	return &WellKnownTypes{files: files}
}

func (w *WellKnownTypes) ResolvePath(fsPath string) (string, bool) {
	name := filepath.ToSlash(fsPath)
	_, ok := w.files[name]
	return name, ok
}

func (w *WellKnownTypes) Open(name string) (*File, error) {
	src, ok := w.files[name]
	if !ok {
		return nil, &NotFoundError{Name: name}
	}
	return &File{Name: name, Source: []byte(src)}, nil
}
