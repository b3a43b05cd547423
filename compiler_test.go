package protofront

import (
	"testing"

	"github.com/protospec/protofront/resolver"
)

type memResolver struct {
	files map[string]string
}

func (m *memResolver) ResolvePath(fsPath string) (string, bool) {
	_, ok := m.files[fsPath]
	return fsPath, ok
}

func (m *memResolver) Open(name string) (*resolver.File, error) {
	src, ok := m.files[name]
	if !ok {
		return nil, &resolver.NotFoundError{Name: name}
	}
	return &resolver.File{Name: name, Source: []byte(src)}, nil
}

func TestOpenFileSimple(t *testing.T) {
	r := &memResolver{files: map[string]string{
		"a.proto": `
			syntax = "proto3";
			package a;
			message Foo {
				string name = 1;
			}
		`,
	}}
	c := New(r)
	fd, err := c.OpenFile("a.proto")
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	if fd.GetPackage() != "a" || len(fd.MessageType) != 1 {
		t.Fatalf("fd = %+v", fd)
	}
}

func TestOpenFileResolvesAcrossImport(t *testing.T) {
	r := &memResolver{files: map[string]string{
		"a.proto": `
			syntax = "proto3";
			package a;
			import "b.proto";
			message Foo {
				b.Bar bar = 1;
			}
		`,
		"b.proto": `
			syntax = "proto3";
			package b;
			message Bar {}
		`,
	}}
	c := New(r)
	fd, err := c.OpenFile("a.proto")
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	if fd.MessageType[0].Field[0].GetTypeName() != ".b.Bar" {
		t.Fatalf("type name = %q", fd.MessageType[0].Field[0].GetTypeName())
	}
}

func TestOpenFileCircularImportDetected(t *testing.T) {
	r := &memResolver{files: map[string]string{
		"a.proto": `syntax = "proto3"; import "b.proto";`,
		"b.proto": `syntax = "proto3"; import "a.proto";`,
	}}
	c := New(r)
	if _, err := c.OpenFile("a.proto"); err == nil {
		t.Fatal("expected a circular import error")
	}
}

func TestOpenFileUnresolvedImportReported(t *testing.T) {
	r := &memResolver{files: map[string]string{
		"a.proto": `syntax = "proto3"; import "missing.proto";`,
	}}
	c := New(r)
	if _, err := c.OpenFile("a.proto"); err == nil {
		t.Fatal("expected an import-not-found error")
	}
}

func TestFileDescriptorSetHonorsIncludeImports(t *testing.T) {
	r := &memResolver{files: map[string]string{
		"a.proto": `
			syntax = "proto3";
			import "b.proto";
			message Foo {}
		`,
		"b.proto": `syntax = "proto3"; message Bar {}`,
	}}
	c := New(r)
	c.IncludeImports = false
	if _, err := c.OpenFile("a.proto"); err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	set := c.FileDescriptorSet()
	if len(set.File) != 1 || set.File[0].GetName() != "a.proto" {
		t.Fatalf("set = %+v", set)
	}
}

func TestFileDescriptorSetStripsSourceInfo(t *testing.T) {
	r := &memResolver{files: map[string]string{
		"a.proto": `syntax = "proto3"; message Foo {}`,
	}}
	c := New(r)
	c.IncludeSourceInfo = false
	if _, err := c.OpenFile("a.proto"); err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	set := c.FileDescriptorSet()
	if set.File[0].SourceCodeInfo != nil {
		t.Fatal("expected SourceCodeInfo to be stripped")
	}
}

func TestOpenFileExtensionNumberOutsideRangeReported(t *testing.T) {
	r := &memResolver{files: map[string]string{
		"a.proto": `
			syntax = "proto2";
			message M {
				extensions 100 to 199;
			}
			extend M {
				optional string bad = 200;
			}
		`,
	}}
	c := New(r)
	if _, err := c.OpenFile("a.proto"); err == nil {
		t.Fatal("expected an invalid-extension-number error")
	}
}

func TestOpenFileExtensionNumberWithinRangeAccepted(t *testing.T) {
	r := &memResolver{files: map[string]string{
		"a.proto": `
			syntax = "proto2";
			message M {
				extensions 100 to 199;
			}
			extend M {
				optional string ok = 150;
			}
		`,
	}}
	c := New(r)
	if _, err := c.OpenFile("a.proto"); err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
}

func TestOpenFileTooLarge(t *testing.T) {
	r := &memResolver{files: map[string]string{"a.proto": `syntax = "proto3";`}}
	c := New(r)

	saved := maxSourceSize
	maxSourceSize = 4
	defer func() { maxSourceSize = saved }()

	if _, err := c.OpenFile("a.proto"); err == nil {
		t.Fatal("expected a file-too-large error")
	}
}
