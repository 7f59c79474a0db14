package ast

// VarType is the enumeration of Slate's primitive types.
// The zero value Null is a sentinel meaning "unannotated": a literal whose
// type has not been pinned down yet and will be inferred from the surrounding
// context (see the parser's context type).
type VarType int

const (
	// Null means "no type yet"; the context type fills it in.
	Null VarType = iota
	// I64 is a signed 64-bit integer.
	I64
	// I32 is a signed 32-bit integer, the default for bare integer literals.
	I32
	// I16 is a signed 16-bit integer.
	I16
	// I8 is a signed 8-bit integer.
	I8
	// Float is a 32-bit IEEE 754 floating-point number.
	Float
	// Double is a 64-bit IEEE 754 floating-point number.
	Double
	// Bool is a boolean.
	Bool
	// Void is the absence of a value; only valid as a return type.
	Void
)

// varTypeNames maps each VarType to its source keyword.
var varTypeNames = map[VarType]string{
	Null:   "<null>",
	I64:    "i64",
	I32:    "i32",
	I16:    "i16",
	I8:     "i8",
	Float:  "float",
	Double: "double",
	Bool:   "bool",
	Void:   "void",
}

// String returns the source keyword for the type ("i32", "double", ...).
// Null renders as "<null>", which is never valid Slate source.
func (vt VarType) String() string {
	if s, ok := varTypeNames[vt]; ok {
		return s
	}
	return "<invalid>"
}

// IsInteger reports whether vt is one of the signed integer types.
func (vt VarType) IsInteger() bool {
	switch vt {
	case I64, I32, I16, I8:
		return true
	}
	return false
}

// IsFloat reports whether vt is a floating-point type.
func (vt VarType) IsFloat() bool {
	return vt == Float || vt == Double
}

// typeKeywords maps each primitive type keyword to its VarType.
var typeKeywords = map[string]VarType{
	"i64":    I64,
	"i32":    I32,
	"i16":    I16,
	"i8":     I8,
	"float":  Float,
	"double": Double,
	"bool":   Bool,
	"void":   Void,
}

// TypeFromKeyword maps a source type keyword to its VarType.
// Any string that is not a type keyword maps to Null.
func TypeFromKeyword(name string) VarType {
	if vt, ok := typeKeywords[name]; ok {
		return vt
	}
	return Null
}

// TypeFromToken maps a literal token kind to the VarType its value carries.
//
// Integer literals map to Null rather than a concrete type: a bare integer
// adopts the context type of the expression it appears in, so that
// `float y = 2;` types the literal as float while a top-level `2` defaults
// to i32. Float literals are always double; true/false are always bool.
func TypeFromToken(tt TokenType) VarType {
	switch tt {
	case INT:
		return Null
	case FLOAT:
		return Double
	case TRUE, FALSE:
		return Bool
	}
	return Null
}
