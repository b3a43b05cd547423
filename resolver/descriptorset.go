package resolver

import (
	"path/filepath"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/descriptorpb"
)

// DescriptorSet serves files out of a pre-compiled FileDescriptorSet
// instead of source text: each file it returns already carries a ready
// descriptor and no Source, so the coordinator skips lexing/parsing/
// generation for it entirely.
type DescriptorSet struct {
	files map[string]*descriptorpb.FileDescriptorProto
}

// NewDescriptorSet indexes set by file name.
func NewDescriptorSet(set *descriptorpb.FileDescriptorSet) *DescriptorSet {
	d := &DescriptorSet{files: make(map[string]*descriptorpb.FileDescriptorProto, len(set.GetFile()))}
	for _, fd := range set.GetFile() {
		d.files[fd.GetName()] = fd
	}
	return d
}

// DecodeDescriptorSet unmarshals a wire-encoded FileDescriptorSet and
// indexes it the same way NewDescriptorSet does.
func DecodeDescriptorSet(data []byte) (*DescriptorSet, error) {
	var set descriptorpb.FileDescriptorSet
	if err := proto.Unmarshal(data, &set); err != nil {
		return nil, err
	}
	return NewDescriptorSet(&set), nil
}

func (d *DescriptorSet) ResolvePath(fsPath string) (string, bool) {
	name := filepath.ToSlash(fsPath)
	_, ok := d.files[name]
	return name, ok
}

func (d *DescriptorSet) Open(name string) (*File, error) {
	fd, ok := d.files[name]
	if !ok {
		return nil, &NotFoundError{Name: name}
	}
	return &File{Name: name, Descriptor: fd}, nil
}
