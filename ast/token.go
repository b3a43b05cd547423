package ast

// TokenKind classifies a lexical token.
type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenIdent
	TokenInt
	TokenFloat
	TokenBool
	TokenString
	TokenPunct
)

func (k TokenKind) String() string {
	switch k {
	case TokenEOF:
		return "eof"
	case TokenIdent:
		return "identifier"
	case TokenInt:
		return "int literal"
	case TokenFloat:
		return "float literal"
	case TokenBool:
		return "bool literal"
	case TokenString:
		return "string literal"
	case TokenPunct:
		return "punctuation"
	default:
		return "unknown"
	}
}

// IntBase records which numeral system an integer literal was written in,
// since protoc's descriptor generator needs this to choose a default-value
// rendering for some fields.
type IntBase int

const (
	Decimal IntBase = iota
	Octal
	Hex
)

// Token is a single lexical token: its kind, the literal text as written,
// a decoded value where applicable, and its span and attached comments.
type Token struct {
	Kind TokenKind
	Text string
	Span Span

	// IntVal/FloatVal/BoolVal/Bytes hold the decoded value for literal
	// tokens; only the field matching Kind is meaningful.
	IntVal   uint64
	IntBase  IntBase
	FloatVal float64
	BoolVal  bool
	Bytes    []byte // decoded bytes of a string literal

	Comments Comments
}

// IsKeyword reports whether an identifier token's text matches one of the
// protobuf language's reserved words.
func (t Token) IsKeyword() bool {
	_, ok := keywords[t.Text]
	return ok
}

var keywords = map[string]struct{}{
	"syntax": {}, "import": {}, "weak": {}, "public": {}, "package": {},
	"option": {}, "message": {}, "extend": {}, "required": {}, "optional": {},
	"repeated": {}, "group": {}, "oneof": {}, "map": {}, "extensions": {},
	"reserved": {}, "to": {}, "max": {}, "enum": {}, "service": {}, "rpc": {},
	"stream": {}, "returns": {}, "true": {}, "false": {}, "inf": {}, "nan": {},
	"double": {}, "float": {}, "int32": {}, "int64": {}, "uint32": {}, "uint64": {},
	"sint32": {}, "sint64": {}, "fixed32": {}, "fixed64": {}, "sfixed32": {},
	"sfixed64": {}, "bool": {}, "string": {}, "bytes": {},
}

// IsValidIdent reports whether s is a valid protobuf identifier: non-empty,
// starting with an ASCII letter, followed by letters, digits, or
// underscores.
func IsValidIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r == '_' && i > 0:
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

// IsValidGroupName reports whether s is a valid proto2 group name: a valid
// identifier whose leading letter is uppercase.
func IsValidGroupName(s string) bool {
	return IsValidIdent(s) && s[0] >= 'A' && s[0] <= 'Z'
}
