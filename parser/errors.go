package parser

// topLevelRecoverySet is the set of keywords that begin a top-level declaration.
// When a production fails, the parser skips tokens until it sees one of
// these (or end of file), per the specification's synchronization rule.
var topLevelRecoverySet = map[string]bool{
	"enum": true, "extend": true, "import": true, "message": true,
	"option": true, "service": true, "package": true, "syntax": true,
}

// messageBodyRecoverySet holds the keywords that can begin a declaration
// inside a message body, plus the closing brace.
var messageBodyRecoverySet = map[string]bool{
	"enum": true, "extend": true, "extensions": true, "message": true,
	"map": true, "oneof": true, "option": true, "required": true,
	"optional": true, "repeated": true, "reserved": true, "group": true,
	"}": true,
}

var enumBodyRecoverySet = map[string]bool{
	"option": true, "reserved": true, "}": true,
}

var serviceBodyRecoverySet = map[string]bool{
	"rpc": true, "option": true, "}": true,
}
