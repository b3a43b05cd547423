// Package protofront implements a protocol buffer compiler front end: it
// parses .proto source (or accepts pre-compiled descriptors), links and
// validates the result, interprets options, and assembles the whole graph
// into a FileDescriptorSet, without ever invoking protoc or any other
// external process.
package protofront

import (
	"fmt"
	"math"
	"strings"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/descriptorpb"

	"github.com/protospec/protofront/descriptor"
	"github.com/protospec/protofront/linker"
	"github.com/protospec/protofront/options"
	"github.com/protospec/protofront/parser"
	"github.com/protospec/protofront/report"
	"github.com/protospec/protofront/resolver"
)

// maxSourceSize bounds a single source file at the largest length a
// protobuf int32 field (like SourceCodeInfo offsets) can address. It is a
// var rather than a const so tests can shrink it instead of allocating a
// two-gigabyte source buffer to exercise the boundary.
var maxSourceSize = math.MaxInt32

type compiledFile struct {
	name       string
	descriptor *descriptorpb.FileDescriptorProto
}

// Compiler coordinates the front end end to end: given a Resolver it loads
// a file and its transitive imports, links the whole set against a shared
// name map, runs semantic checks and option interpretation, and hands back
// descriptors or an assembled FileDescriptorSet.
//
// A Compiler is not safe for concurrent use; the pipeline it drives is
// entirely synchronous and keeps no background goroutines.
type Compiler struct {
	Resolver resolver.Resolver

	// IncludeImports, when true (the default), makes FileDescriptorSet
	// include every transitively-loaded file. When false, only files
	// explicitly passed to OpenFile are included.
	IncludeImports bool

	// IncludeSourceInfo, when true (the default), keeps SourceCodeInfo in
	// the descriptors returned from this Compiler. When false it is
	// stripped before the descriptors are handed back.
	IncludeSourceInfo bool

	handler *report.Handler

	files     map[string]*compiledFile
	nameMaps  map[string]*linker.NameMap
	loadOrder []string

	merged    map[string]bool
	processed map[string]bool
	roots     map[string]bool
	rootOrder []string

	composite *linker.NameMap
	messages  map[string]*descriptorpb.DescriptorProto
}

// New returns a Compiler that loads files through r, with both toggles on
// by default, matching protoc's own defaults.
func New(r resolver.Resolver) *Compiler {
	return &Compiler{
		Resolver:          r,
		IncludeImports:    true,
		IncludeSourceInfo: true,
		handler:           report.NewHandler(),
		files:             make(map[string]*compiledFile),
		nameMaps:          make(map[string]*linker.NameMap),
		merged:            make(map[string]bool),
		processed:         make(map[string]bool),
		roots:             make(map[string]bool),
		messages:          make(map[string]*descriptorpb.DescriptorProto),
	}
}

// OpenFile loads name and its full transitive import closure, links and
// checks the whole newly-grown graph, and returns name's descriptor. If any
// diagnostic was ever recorded for this Compiler, OpenFile returns the
// accumulated diagnostics as an error instead of a descriptor; a caller
// that wants partial results despite errors should use Diagnostics and
// FileDescriptor directly.
func (c *Compiler) OpenFile(name string) (*descriptorpb.FileDescriptorProto, error) {
	if !c.roots[name] {
		c.roots[name] = true
		c.rootOrder = append(c.rootOrder, name)
	}

	if err := c.load(name, nil); err != nil {
		return nil, err
	}
	c.link()

	if c.handler.HasErrors() {
		return nil, c.handler.Error()
	}
	return c.files[name].descriptor, nil
}

// load fetches name through the Resolver, generating its descriptor (or
// reusing a pre-compiled one) and recursing into its dependencies. stack
// holds the chain of names currently being loaded, used to detect import
// cycles.
func (c *Compiler) load(name string, stack []string) error {
	for _, s := range stack {
		if s == name {
			cycle := append(append([]string(nil), stack...), name)
			msg := fmt.Sprintf("import cycle: %s", strings.Join(cycle, " -> "))
			c.handler.Errorf(report.CircularImport, report.Pos{Filename: name}, "%s", msg)
			return fmt.Errorf("%s", msg)
		}
	}
	if _, ok := c.files[name]; ok {
		return nil
	}

	f, err := c.Resolver.Open(name)
	if err != nil {
		if resolver.IsNotFound(err) {
			c.handler.Errorf(report.ImportNotFound, report.Pos{Filename: name}, "import %q could not be resolved", name)
			return fmt.Errorf("import not found: %s", name)
		}
		c.handler.Errorf(report.OpenFile, report.Pos{Filename: name}, "opening %q: %v", name, err)
		return err
	}

	var fd *descriptorpb.FileDescriptorProto
	if f.Descriptor != nil {
		fd = f.Descriptor
	} else {
		if len(f.Source) > maxSourceSize {
			c.handler.Errorf(report.FileTooLarge, report.Pos{Filename: name}, "%s exceeds the maximum source size of %d bytes", name, maxSourceSize)
			return fmt.Errorf("file too large: %s", name)
		}
		if shadower, ok := c.checkShadow(name, f.Source); ok {
			c.handler.Errorf(report.FileShadowed, report.Pos{Filename: name}, "%q is shadowed by an earlier file on the include path (%s)", name, shadower)
		}

		fileHandler := report.NewHandler()
		tree := parser.Parse(name, f.Source, fileHandler)
		fd = descriptor.Generate(tree, true, fileHandler)
		c.nameMaps[name] = linker.BuildFileNameMap(tree, fileHandler)
		for _, d := range fileHandler.Diagnostics() {
			c.handler.Report(d)
		}
	}

	c.files[name] = &compiledFile{name: name, descriptor: fd}
	c.loadOrder = append(c.loadOrder, name)

	for _, dep := range fd.GetDependency() {
		if err := c.load(dep, append(stack, name)); err != nil {
			return err
		}
	}
	return nil
}

// checkShadow asks the Resolver about shadowing when it exposes the
// optional capability (currently only resolver.IncludePath does).
func (c *Compiler) checkShadow(name string, content []byte) (string, bool) {
	type shadowChecker interface {
		Shadow(importName string, content []byte) (string, bool)
	}
	if sc, ok := c.Resolver.(shadowChecker); ok {
		return sc.Shadow(name, content)
	}
	return "", false
}

// link composes the shared name map from every file loaded so far that
// hasn't been merged yet, then runs reference resolution, semantic checks,
// and option interpretation over every file not yet processed. Each file
// is merged and processed at most once across the Compiler's lifetime, so
// repeated OpenFile calls only do incremental work.
func (c *Compiler) link() {
	composite := c.compositeNameMap()
	for _, name := range c.loadOrder {
		if c.merged[name] {
			continue
		}
		nm, ok := c.nameMaps[name]
		if !ok {
			nm = linker.BuildDescriptorNameMap(c.files[name].descriptor, c.handler)
			c.nameMaps[name] = nm
		}
		composite.Merge(nm, c.handler)
		indexMessages(c.files[name].descriptor.GetPackage(), c.files[name].descriptor.MessageType, c.messages)
		c.merged[name] = true
	}

	for _, name := range c.loadOrder {
		if c.processed[name] {
			continue
		}
		fd := c.files[name].descriptor
		linker.ResolveFile(fd, composite, c.handler)
		linker.CheckFile(fd, c.handler)
		linker.CheckFileExtensionNumbers(fd, c.lookupMessage, c.handler)
		options.InterpretFile(fd, c.handler)
		c.processed[name] = true
	}
}

// indexMessages records every message declared by msgs (and, recursively,
// their nested types) into out, keyed by fully qualified name, so
// CheckFileExtensionNumbers can look up an extendee regardless of which
// file declared it.
func indexMessages(prefix string, msgs []*descriptorpb.DescriptorProto, out map[string]*descriptorpb.DescriptorProto) {
	for _, m := range msgs {
		fqn := m.GetName()
		if prefix != "" {
			fqn = prefix + "." + fqn
		}
		out[fqn] = m
		indexMessages(fqn, m.NestedType, out)
	}
}

func (c *Compiler) lookupMessage(fqn string) (*descriptorpb.DescriptorProto, bool) {
	m, ok := c.messages[fqn]
	return m, ok
}

func (c *Compiler) compositeNameMap() *linker.NameMap {
	if c.composite == nil {
		c.composite = linker.NewNameMap()
	}
	return c.composite
}

// Diagnostics returns every diagnostic recorded across every pass run so
// far, in report order.
func (c *Compiler) Diagnostics() []*report.Diagnostic {
	return c.handler.Diagnostics()
}

// HasErrors reports whether any diagnostic has been recorded so far.
func (c *Compiler) HasErrors() bool {
	return c.handler.HasErrors()
}

// FileDescriptor returns the descriptor for an already-loaded file. If the
// file was only ever pulled in as a dependency and IncludeImports is
// false, it reports FileNotIncluded instead of returning a descriptor,
// since such a file would never appear in the assembled set.
func (c *Compiler) FileDescriptor(name string) (*descriptorpb.FileDescriptorProto, error) {
	cf, ok := c.files[name]
	if !ok {
		return nil, &report.Diagnostic{Kind: report.ImportNotFound, Pos: report.Pos{Filename: name}, Message: fmt.Sprintf("%q was never opened", name)}
	}
	if !c.IncludeImports && !c.roots[name] {
		return nil, &report.Diagnostic{Kind: report.FileNotIncluded, Pos: report.Pos{Filename: name}, Message: fmt.Sprintf("%q was loaded only as a dependency and IncludeImports is false", name)}
	}
	return cf.descriptor, nil
}

// FileDescriptorSet assembles every root file opened so far (and, unless
// IncludeImports is false, their transitive dependencies) into a single
// FileDescriptorSet, dependencies ordered before dependents. When
// IncludeSourceInfo is false, SourceCodeInfo is stripped from a clone of
// each descriptor before it is added to the set, leaving the Compiler's
// own copies untouched.
func (c *Compiler) FileDescriptorSet() *descriptorpb.FileDescriptorSet {
	set := &descriptorpb.FileDescriptorSet{}
	seen := make(map[string]bool)
	for _, name := range c.rootOrder {
		c.appendWithDeps(set, name, seen)
	}
	return set
}

func (c *Compiler) appendWithDeps(set *descriptorpb.FileDescriptorSet, name string, seen map[string]bool) {
	if seen[name] {
		return
	}
	seen[name] = true
	cf, ok := c.files[name]
	if !ok {
		return
	}
	if c.IncludeImports {
		for _, dep := range cf.descriptor.GetDependency() {
			c.appendWithDeps(set, dep, seen)
		}
	}

	fd := cf.descriptor
	if !c.IncludeSourceInfo && fd.SourceCodeInfo != nil {
		fd = proto.Clone(fd).(*descriptorpb.FileDescriptorProto)
		fd.SourceCodeInfo = nil
	}
	set.File = append(set.File, fd)
}

// EncodeFileDescriptorSet marshals FileDescriptorSet to its wire format.
func (c *Compiler) EncodeFileDescriptorSet() ([]byte, error) {
	return proto.Marshal(c.FileDescriptorSet())
}
