// Package resolver provides the pluggable file-lookup abstraction the
// compiler coordinator loads sources through: a chain of include-path,
// well-known-types, and pre-encoded descriptor-set resolvers, any of
// which can answer "what import name does this filesystem path have" and
// "give me the file with this import name".
package resolver

import (
	"errors"
	"fmt"

	"google.golang.org/protobuf/types/descriptorpb"
)

// File is what a resolver hands back for one import name. Source is the
// raw .proto text to lex and parse; it is nil for files that arrived
// pre-compiled (the descriptor-set resolver), in which case Descriptor is
// already a ready FileDescriptorProto that the coordinator uses as-is,
// without re-parsing or re-generating it.
type File struct {
	Name       string
	Source     []byte
	Descriptor *descriptorpb.FileDescriptorProto
}

// NotFoundError is returned by Open when a resolver has no file under the
// requested import name.
type NotFoundError struct{ Name string }

func (e *NotFoundError) Error() string { return fmt.Sprintf("file not found: %s", e.Name) }

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// Resolver maps filesystem paths to import names and opens files by
// import name.
type Resolver interface {
	// ResolvePath normalizes a filesystem path to a slash-delimited import
	// name under one of the resolver's known roots. ok is false if the
	// path is outside anything this resolver knows about.
	ResolvePath(fsPath string) (importName string, ok bool)
	// Open returns the file for an import name, or a *NotFoundError if
	// this resolver has none.
	Open(importName string) (*File, error)
}
