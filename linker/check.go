package linker

import (
	"strings"

	"google.golang.org/protobuf/types/descriptorpb"

	"github.com/protospec/protofront/internal/casing"
	"github.com/protospec/protofront/internal/ranges"
	"github.com/protospec/protofront/report"
)

const (
	minFieldNumber          = 1
	maxFieldNumber          = 536_870_911
	reservedFieldRangeStart = 19_000
	reservedFieldRangeEnd   = 20_000 // exclusive
)

// CheckFile validates field numbers, reserved-range placement, and
// camelCase field-name collisions across every message in fd, including the
// synthesized map-entry and group messages the generator places in
// NestedType. It does not depend on ResolveFile having run.
func CheckFile(fd *descriptorpb.FileDescriptorProto, handler *report.Handler) {
	for _, m := range fd.MessageType {
		checkMessage(fd.GetName(), m, handler)
	}
}

func checkMessage(file string, m *descriptorpb.DescriptorProto, handler *report.Handler) {
	reserved := reservedRanges(m)
	seenNumbers := map[int32]bool{}
	seenJSON := map[string]string{}

	checkOne := func(name string, number int32) {
		if number < minFieldNumber || number > maxFieldNumber {
			handler.Errorf(report.InvalidRange, report.Pos{Filename: file},
				"%s.%s: field number %d out of range [%d, %d]", m.GetName(), name, number, minFieldNumber, maxFieldNumber)
		} else if number >= reservedFieldRangeStart && number < reservedFieldRangeEnd {
			handler.Errorf(report.ReservedMessageNumber, report.Pos{Filename: file},
				"%s.%s: field number %d falls in the reserved range [%d, %d)", m.GetName(), name, number, reservedFieldRangeStart, reservedFieldRangeEnd)
		} else if reserved.Contains(number) {
			handler.Errorf(report.ReservedMessageNumber, report.Pos{Filename: file},
				"%s.%s: field number %d is reserved", m.GetName(), name, number)
		}
		if seenNumbers[number] {
			handler.Errorf(report.DuplicateNumber, report.Pos{Filename: file},
				"%s.%s: field number %d is already used", m.GetName(), name, number)
		}
		seenNumbers[number] = true

		json := casing.JSONName(name)
		if other, ok := seenJSON[json]; ok && other != name {
			handler.Errorf(report.DuplicateCamelCaseFieldName, report.Pos{Filename: file},
				"%s: fields %q and %q collide once converted to camelCase (%q)", m.GetName(), other, name, json)
		}
		seenJSON[json] = name
	}

	for _, f := range m.Field {
		checkOne(f.GetName(), f.GetNumber())
	}
	for _, er := range m.ExtensionRange {
		if er.GetStart() >= er.GetEnd() {
			handler.Errorf(report.InvalidRange, report.Pos{Filename: file},
				"%s: empty or inverted extension range [%d, %d)", m.GetName(), er.GetStart(), er.GetEnd())
		}
	}
	for _, nested := range m.NestedType {
		checkMessage(file, nested, handler)
	}
}

func reservedRanges(m *descriptorpb.DescriptorProto) ranges.List {
	var rs []ranges.Range
	for _, r := range m.ReservedRange {
		rs = append(rs, ranges.Range{Start: r.GetStart(), End: r.GetEnd()})
	}
	return ranges.New(rs)
}

// CheckExtensionNumber validates that an extension field's number falls
// within one of the extendee's declared extension ranges and does not
// collide with one of the extendee's own declared field numbers, given
// the already-resolved extendee descriptor.
func CheckExtensionNumber(file string, f *descriptorpb.FieldDescriptorProto, extendee *descriptorpb.DescriptorProto, handler *report.Handler) {
	var rs []ranges.Range
	for _, r := range extendee.ExtensionRange {
		rs = append(rs, ranges.Range{Start: r.GetStart(), End: r.GetEnd()})
	}
	list := ranges.New(rs)
	if !list.Contains(f.GetNumber()) {
		handler.Errorf(report.InvalidExtensionNumber, report.Pos{Filename: file},
			"%s: extension number %d is not in any of %s's declared extension ranges", f.GetName(), f.GetNumber(), extendee.GetName())
		return
	}
	for _, ef := range extendee.Field {
		if ef.GetNumber() == f.GetNumber() {
			handler.Errorf(report.InvalidExtensionNumber, report.Pos{Filename: file},
				"%s: extension number %d collides with %s's own field %q", f.GetName(), f.GetNumber(), extendee.GetName(), ef.GetName())
			return
		}
	}
}

// CheckFileExtensionNumbers walks every extension field declared in fd
// (top-level and nested inside any message) and checks it against its
// extendee, looked up by fully qualified name (without the leading dot)
// via messages. It is a separate entry point from CheckFile because it
// needs the whole compilation unit's messages, not just fd's own.
func CheckFileExtensionNumbers(fd *descriptorpb.FileDescriptorProto, messages func(fqn string) (*descriptorpb.DescriptorProto, bool), handler *report.Handler) {
	file := fd.GetName()
	checkExtensions(file, fd.Extension, messages, handler)
	for _, m := range fd.MessageType {
		checkNestedExtensions(file, m, messages, handler)
	}
}

func checkNestedExtensions(file string, m *descriptorpb.DescriptorProto, messages func(fqn string) (*descriptorpb.DescriptorProto, bool), handler *report.Handler) {
	checkExtensions(file, m.Extension, messages, handler)
	for _, nested := range m.NestedType {
		checkNestedExtensions(file, nested, messages, handler)
	}
}

func checkExtensions(file string, fields []*descriptorpb.FieldDescriptorProto, messages func(fqn string) (*descriptorpb.DescriptorProto, bool), handler *report.Handler) {
	for _, f := range fields {
		extendee := f.GetExtendee()
		if extendee == "" {
			continue
		}
		msg, ok := messages(strings.TrimPrefix(extendee, "."))
		if !ok {
			// Extendee itself already failed to resolve in ResolveFile and
			// was reported there; nothing further to check here.
			continue
		}
		CheckExtensionNumber(file, f, msg, handler)
	}
}
