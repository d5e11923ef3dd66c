package parser

// Declaration modifiers that may precede a type or member declaration
var modifiers = map[string]bool{
	"public":    true,
	"private":   true,
	"protected": true,
	"internal":  true,
	"static":    true,
	"readonly":  true,
	"abstract":  true,
	"sealed":    true,
	"partial":   true,
	"virtual":   true,
	"override":  true,
	"new":       true,
	"extern":    true,
	"unsafe":    true,
	"volatile":  true,
	"async":     true,
	"const":     true,
	"required":  true,
	"file":      true,
	"ref":       true,
}

// Parameter modifiers
var parameterModifiers = map[string]bool{
	"ref":      true,
	"out":      true,
	"in":       true,
	"params":   true,
	"this":     true,
	"scoped":   true,
	"readonly": true,
}

// Statements whose header is followed by a parenthesised expression and an embedded statement
var parenthesisedStatements = map[string]bool{
	"if":      true,
	"while":   true,
	"for":     true,
	"foreach": true,
	"lock":    true,
	"fixed":   true,
	"switch":  true,
	"using":   true,
}

// Statements that introduce a block directly
var blockStatements = map[string]bool{
	"checked":   true,
	"unchecked": true,
	"unsafe":    true,
}

const (
	keywordClass     = "class"
	keywordStruct    = "struct"
	keywordRecord    = "record"
	keywordInterface = "interface"
	keywordEnum      = "enum"
	keywordDelegate  = "delegate"
	keywordNamespace = "namespace"
	keywordEvent     = "event"
	keywordOperator  = "operator"
	keywordThis      = "this"
	keywordBase      = "base"
)
