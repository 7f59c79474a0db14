// Package ast defines the token types, primitive types and AST node types
// shared by the Slate lexer, parser and code generator.
//
// Tokens are the smallest meaningful units of a Slate source file. Every token
// carries its type, the exact literal text it was scanned from, and its source
// position (line + column). Position is 1-based: the first character of a file
// is Line 1, Col 1.
package ast

// TokenType identifies the category of a scanned token.
type TokenType int

const (
	// ── Special ────────────────────────────────────────────────────────────────

	// ILLEGAL represents a character or sequence the lexer could not recognise,
	// such as an unterminated string literal or an unexpected byte value.
	ILLEGAL TokenType = iota
	// EOF marks the end of the input stream. The parser stops when it sees EOF.
	EOF

	// ── Literals ───────────────────────────────────────────────────────────────

	// IDENT is an identifier: [a-zA-Z_][a-zA-Z0-9_]*
	// Identifiers that match a keyword are re-classified to their keyword type
	// by the lexer before the token is returned.
	IDENT
	// INT is a decimal integer literal, e.g. 0, 42.
	INT
	// FLOAT is a decimal floating-point literal, e.g. 3.14, 0.5.
	// The literal must contain a '.' character.
	FLOAT
	// STRING is a double-quoted UTF-8 string literal, e.g. "hello\nworld".
	STRING

	// ── Keywords ───────────────────────────────────────────────────────────────

	// TYPE is any primitive type keyword: i64 i32 i16 i8 float double bool void.
	// The VarType is recovered from the token literal via TypeFromKeyword.
	TYPE
	// FN introduces a function declaration: fn add(i32 a, i32 b) -> i32
	FN
	// RETURN performs a return from a function: return a + b;
	RETURN
	// IF begins a conditional: if (a < b) { ... }
	IF
	// IMPORT textually includes another source file: import "std.lang";
	IMPORT
	// TRUE is the boolean literal true.
	TRUE
	// FALSE is the boolean literal false.
	FALSE

	// ── Arithmetic operators ────────────────────────────────────────────────────

	// PLUS is the addition operator: a + b
	PLUS
	// MINUS is the subtraction operator: a - b
	MINUS
	// ASTERISK is the multiplication operator: a * b
	ASTERISK
	// SLASH is the division operator: a / b
	SLASH

	// ── Comparison operators ────────────────────────────────────────────────────

	// EQ is the equality operator: a == b
	EQ
	// NEQ is the inequality operator: a != b
	NEQ
	// LT is the less-than operator: a < b
	LT
	// GT is the greater-than operator: a > b
	GT
	// LTE is the less-than-or-equal operator: a <= b
	LTE
	// GTE is the greater-than-or-equal operator: a >= b
	GTE

	// ── Logical joiners ─────────────────────────────────────────────────────────

	// AND is the short-circuit conjunction inside if conditions: a < b && b < c
	AND
	// OR is the short-circuit disjunction inside if conditions: a < b || b < c
	OR

	// ── Other operators ─────────────────────────────────────────────────────────

	// ASSIGN is the assignment operator: x = 1
	ASSIGN
	// ARROW separates a prototype's parameter list from its return type: -> i32
	ARROW

	// ── Delimiters ──────────────────────────────────────────────────────────────

	// LPAREN is the left parenthesis: (
	LPAREN
	// RPAREN is the right parenthesis: )
	RPAREN
	// LBRACE is the left curly brace: {
	LBRACE
	// RBRACE is the right curly brace: }
	RBRACE
	// COMMA is the argument and parameter separator: ,
	COMMA
	// SEMICOLON terminates statements: ;
	SEMICOLON
)

// tokenNames maps TokenType values to the names used in error messages.
var tokenNames = map[TokenType]string{
	ILLEGAL:   "ILLEGAL",
	EOF:       "EOF",
	IDENT:     "identifier",
	INT:       "integer literal",
	FLOAT:     "float literal",
	STRING:    "string literal",
	TYPE:      "type keyword",
	FN:        "fn",
	RETURN:    "return",
	IF:        "if",
	IMPORT:    "import",
	TRUE:      "true",
	FALSE:     "false",
	PLUS:      "+",
	MINUS:     "-",
	ASTERISK:  "*",
	SLASH:     "/",
	EQ:        "==",
	NEQ:       "!=",
	LT:        "<",
	GT:        ">",
	LTE:       "<=",
	GTE:       ">=",
	AND:       "&&",
	OR:        "||",
	ASSIGN:    "=",
	ARROW:     "->",
	LPAREN:    "(",
	RPAREN:    ")",
	LBRACE:    "{",
	RBRACE:    "}",
	COMMA:     ",",
	SEMICOLON: ";",
}

// String returns the name of the token type as used in error messages.
func (tt TokenType) String() string {
	if s, ok := tokenNames[tt]; ok {
		return s
	}
	return "UNKNOWN"
}

// keywords maps the literal text of every Slate keyword to its TokenType.
// The lexer consults this map when it finishes scanning an identifier.
// All eight primitive type names share the TYPE token type; the parser
// recovers the concrete type from the literal via TypeFromKeyword.
var keywords = map[string]TokenType{
	"fn":     FN,
	"return": RETURN,
	"if":     IF,
	"import": IMPORT,
	"true":   TRUE,
	"false":  FALSE,
	"i64":    TYPE,
	"i32":    TYPE,
	"i16":    TYPE,
	"i8":     TYPE,
	"float":  TYPE,
	"double": TYPE,
	"bool":   TYPE,
	"void":   TYPE,
}

// LookupIdent checks whether ident is a reserved keyword and returns the
// corresponding TokenType. If ident is not a keyword, IDENT is returned.
func LookupIdent(ident string) TokenType {
	if tt, ok := keywords[ident]; ok {
		return tt
	}
	return IDENT
}

// Token is a single lexical unit produced by the Slate lexer.
//
// Fields:
//   - Type    — the category of this token (see TokenType constants)
//   - Literal — the exact source text that was scanned
//   - Line    — 1-based source line number
//   - Col     — 1-based column of the first character of this token
type Token struct {
	Type    TokenType
	Literal string
	Line    int
	Col     int
}

// String returns the token's literal text.
func (t Token) String() string {
	return t.Literal
}
