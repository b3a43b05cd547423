// Package options interprets the uninterpreted options the descriptor
// generator attaches to every declaration, applying each one against the
// target descriptor's own options schema (FileOptions, MessageOptions,
// FieldOptions, …) by protoreflect, and type-checking the literal value
// against the resolved field.
//
// Options whose first name segment is a custom (extension) segment are
// neither validated nor interpreted: interpreting them requires a full extension-type registry
// keyed by the compiled NameMap (resolving "(pkg.ext)" to a live
// protoreflect.ExtensionType), which is out of proportion to this
// exercise's scope. They are left attached as UninterpretedOption entries,
// a legal (if degraded) terminal state also produced by protoc itself when
// an extension's Go type is unavailable at compile time.
package options

import (
	"math"
	"unicode/utf8"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/descriptorpb"

	"github.com/protospec/protofront/report"
)

// Interpret walks opts.UninterpretedOption in place, applying every entry
// whose first name segment is not an extension against msg's own
// reflected fields, and type-checking literal values as it goes. Entries
// that cannot be fully interpreted (extensions, and unknown plain fields)
// are left in UninterpretedOption.
func Interpret(file string, msg proto.Message, handler *report.Handler) {
	opts := msg.ProtoReflect()
	fields := opts.Descriptor().Fields()
	uninterp := extractUninterpreted(opts)
	if len(uninterp) == 0 {
		return
	}
	tracker := map[protoreflect.FieldNumber]bool{}
	var remaining []*descriptorpb.UninterpretedOption
	for _, u := range uninterp {
		if len(u.Name) == 0 || u.Name[0].GetIsExtension() {
			remaining = append(remaining, u)
			continue
		}
		fd := fields.ByName(protoreflect.Name(u.Name[0].GetNamePart()))
		if fd == nil {
			handler.Errorf(report.OptionUnknownField, report.Pos{Filename: file},
				"option %q has no field named %q", opts.Descriptor().FullName(), u.Name[0].GetNamePart())
			remaining = append(remaining, u)
			continue
		}
		if len(u.Name) > 1 {
			handler.Errorf(report.OptionScalarFieldAccess, report.Pos{Filename: file},
				"option %q: %q is a scalar field and cannot be dotted into further", opts.Descriptor().FullName(), fd.Name())
			remaining = append(remaining, u)
			continue
		}
		if fd.Cardinality() != protoreflect.Repeated {
			if tracker[fd.Number()] {
				handler.Errorf(report.OptionAlreadySet, report.Pos{Filename: file},
					"option %q is already set", fd.Name())
				continue
			}
			tracker[fd.Number()] = true
		}
		setScalar(file, opts, fd, u, handler)
	}
	setUninterpretedField(opts, remaining)
}

// extractUninterpreted reads the options message's own
// uninterpreted_option field (every *Options message declares one at tag
// 999) without requiring the caller to know its concrete Go type.
func extractUninterpreted(opts protoreflect.Message) []*descriptorpb.UninterpretedOption {
	fd := opts.Descriptor().Fields().ByNumber(999)
	if fd == nil || !opts.Has(fd) {
		return nil
	}
	list := opts.Get(fd).List()
	out := make([]*descriptorpb.UninterpretedOption, 0, list.Len())
	for i := 0; i < list.Len(); i++ {
		out = append(out, list.Get(i).Message().Interface().(*descriptorpb.UninterpretedOption))
	}
	return out
}

func setUninterpretedField(opts protoreflect.Message, remaining []*descriptorpb.UninterpretedOption) {
	fd := opts.Descriptor().Fields().ByNumber(999)
	if fd == nil {
		return
	}
	list := opts.Mutable(fd).List()
	for list.Len() > 0 {
		list.Truncate(0)
	}
	for _, u := range remaining {
		list.Append(protoreflect.ValueOfMessage(u.ProtoReflect()))
	}
}

func setScalar(file string, opts protoreflect.Message, fd protoreflect.FieldDescriptor, u *descriptorpb.UninterpretedOption, handler *report.Handler) {
	switch fd.Kind() {
	case protoreflect.BoolKind:
		b, ok := boolValue(u)
		if !ok {
			handler.Errorf(report.ValueInvalidType, report.Pos{Filename: file}, "option %q expects a bool", fd.Name())
			return
		}
		opts.Set(fd, protoreflect.ValueOfBool(b))

	case protoreflect.StringKind:
		if u.StringValue == nil {
			handler.Errorf(report.ValueInvalidType, report.Pos{Filename: file}, "option %q expects a string", fd.Name())
			return
		}
		if !utf8.Valid(u.StringValue) {
			handler.Errorf(report.InvalidUtf8String, report.Pos{Filename: file}, "option %q: not valid UTF-8", fd.Name())
			return
		}
		opts.Set(fd, protoreflect.ValueOfString(string(u.StringValue)))

	case protoreflect.BytesKind:
		if u.StringValue == nil {
			handler.Errorf(report.ValueInvalidType, report.Pos{Filename: file}, "option %q expects bytes", fd.Name())
			return
		}
		opts.Set(fd, protoreflect.ValueOfBytes(append([]byte(nil), u.StringValue...)))

	case protoreflect.Int32Kind, protoreflect.Sint32Kind, protoreflect.Sfixed32Kind:
		n, ok := intValue(u)
		if !ok || n < math.MinInt32 || n > math.MaxInt32 {
			handler.Errorf(report.IntegerValueOutOfRange, report.Pos{Filename: file},
				"option %q: value out of range for int32 [%d, %d]", fd.Name(), int32(math.MinInt32), int32(math.MaxInt32))
			return
		}
		opts.Set(fd, protoreflect.ValueOfInt32(int32(n)))

	case protoreflect.Int64Kind, protoreflect.Sint64Kind, protoreflect.Sfixed64Kind:
		n, ok := intValue(u)
		if !ok {
			handler.Errorf(report.ValueInvalidType, report.Pos{Filename: file}, "option %q expects an integer", fd.Name())
			return
		}
		opts.Set(fd, protoreflect.ValueOfInt64(n))

	case protoreflect.Uint32Kind, protoreflect.Fixed32Kind:
		if u.PositiveIntValue == nil || u.GetPositiveIntValue() > math.MaxUint32 {
			handler.Errorf(report.IntegerValueOutOfRange, report.Pos{Filename: file}, "option %q: value out of range for uint32", fd.Name())
			return
		}
		opts.Set(fd, protoreflect.ValueOfUint32(uint32(u.GetPositiveIntValue())))

	case protoreflect.Uint64Kind, protoreflect.Fixed64Kind:
		if u.PositiveIntValue == nil {
			handler.Errorf(report.ValueInvalidType, report.Pos{Filename: file}, "option %q expects an unsigned integer", fd.Name())
			return
		}
		opts.Set(fd, protoreflect.ValueOfUint64(u.GetPositiveIntValue()))

	case protoreflect.FloatKind:
		f, ok := floatValue(u)
		if !ok {
			handler.Errorf(report.ValueInvalidType, report.Pos{Filename: file}, "option %q expects a number", fd.Name())
			return
		}
		opts.Set(fd, protoreflect.ValueOfFloat32(float32(f)))

	case protoreflect.DoubleKind:
		f, ok := floatValue(u)
		if !ok {
			handler.Errorf(report.ValueInvalidType, report.Pos{Filename: file}, "option %q expects a number", fd.Name())
			return
		}
		opts.Set(fd, protoreflect.ValueOfFloat64(f))

	case protoreflect.EnumKind:
		if u.IdentifierValue == nil {
			handler.Errorf(report.ValueInvalidType, report.Pos{Filename: file}, "option %q expects an enum value name", fd.Name())
			return
		}
		ev := fd.Enum().Values().ByName(protoreflect.Name(u.GetIdentifierValue()))
		if ev == nil {
			handler.Errorf(report.InvalidEnumValue, report.Pos{Filename: file},
				"%q is not a value of enum %q", u.GetIdentifierValue(), fd.Enum().FullName())
			return
		}
		opts.Set(fd, protoreflect.ValueOfEnum(ev.Number()))

	case protoreflect.MessageKind:
		handler.Errorf(report.ValueInvalidType, report.Pos{Filename: file},
			"option %q: message-typed plain options are not interpreted by this implementation", fd.Name())

	default:
		handler.Errorf(report.ValueInvalidType, report.Pos{Filename: file}, "option %q: unsupported field kind", fd.Name())
	}
}

func boolValue(u *descriptorpb.UninterpretedOption) (bool, bool) {
	if u.IdentifierValue == nil {
		return false, false
	}
	switch u.GetIdentifierValue() {
	case "true":
		return true, true
	case "false":
		return false, true
	default:
		return false, false
	}
}

func intValue(u *descriptorpb.UninterpretedOption) (int64, bool) {
	switch {
	case u.PositiveIntValue != nil:
		if u.GetPositiveIntValue() > math.MaxInt64 {
			return 0, false
		}
		return int64(u.GetPositiveIntValue()), true
	case u.NegativeIntValue != nil:
		return u.GetNegativeIntValue(), true
	default:
		return 0, false
	}
}

func floatValue(u *descriptorpb.UninterpretedOption) (float64, bool) {
	switch {
	case u.DoubleValue != nil:
		return u.GetDoubleValue(), true
	case u.PositiveIntValue != nil:
		return float64(u.GetPositiveIntValue()), true
	case u.NegativeIntValue != nil:
		return float64(u.GetNegativeIntValue()), true
	default:
		return 0, false
	}
}
