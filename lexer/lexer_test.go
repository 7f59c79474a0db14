// Package lexer_test contains integration-style tests for the Slate lexer.
//
// Tests are organised by category:
//   - TestLexer_Keywords        — keywords and all eight type keywords
//   - TestLexer_Operators       — every operator including multi-char ones
//   - TestLexer_Literals_Int    — decimal integer literals
//   - TestLexer_Literals_Float  — floating-point literals and edge cases
//   - TestLexer_Literals_String — strings, escape sequences, unterminated strings
//   - TestLexer_Identifiers     — plain identifiers and ident-vs-keyword boundary
//   - TestLexer_Comments        — line comments are skipped, adjacent tokens returned
//   - TestLexer_Position        — line and column tracking across newlines
//   - TestLexer_Program         — end-to-end function declaration
package lexer_test

import (
	"testing"

	"github.com/slate-lang/slate/ast"
	"github.com/slate-lang/slate/lexer"
)

// tokenCase is a single (type, literal) expectation used in table-driven tests.
type tokenCase struct {
	expectedType    ast.TokenType
	expectedLiteral string
}

// runCases calls NextToken for each case in want and fails the test on mismatch.
func runCases(t *testing.T, input string, want []tokenCase) {
	t.Helper()
	l := lexer.New(input)
	for i, tc := range want {
		tok := l.NextToken()
		if tok.Type != tc.expectedType {
			t.Errorf("case %d: type mismatch — got %v, want %v (literal %q)", i, tok.Type, tc.expectedType, tok.Literal)
		}
		if tok.Literal != tc.expectedLiteral {
			t.Errorf("case %d: literal mismatch — got %q, want %q", i, tok.Literal, tc.expectedLiteral)
		}
	}
}

// ── Keywords ──────────────────────────────────────────────────────────────────

// TestLexer_Keywords verifies that every Slate keyword is recognised and that
// all type keywords share the TYPE token type.
func TestLexer_Keywords(t *testing.T) {
	input := `fn return if import true false
i64 i32 i16 i8 float double bool void`

	want := []tokenCase{
		{ast.FN, "fn"},
		{ast.RETURN, "return"},
		{ast.IF, "if"},
		{ast.IMPORT, "import"},
		{ast.TRUE, "true"},
		{ast.FALSE, "false"},
		{ast.TYPE, "i64"},
		{ast.TYPE, "i32"},
		{ast.TYPE, "i16"},
		{ast.TYPE, "i8"},
		{ast.TYPE, "float"},
		{ast.TYPE, "double"},
		{ast.TYPE, "bool"},
		{ast.TYPE, "void"},
		{ast.EOF, ""},
	}
	runCases(t, input, want)
}

// TestLexer_KeywordBoundary checks that keyword prefixes used as identifiers
// are not mis-classified. E.g. "iffy" must not be split into IF + "fy".
func TestLexer_KeywordBoundary(t *testing.T) {
	input := `iffy returned i32x import_path`
	want := []tokenCase{
		{ast.IDENT, "iffy"},
		{ast.IDENT, "returned"},
		{ast.IDENT, "i32x"},
		{ast.IDENT, "import_path"},
		{ast.EOF, ""},
	}
	runCases(t, input, want)
}

// ── Operators and delimiters ──────────────────────────────────────────────────

func TestLexer_Operators(t *testing.T) {
	input := `+ - * / = == != < > <= >= && || -> ( ) { } , ;`
	want := []tokenCase{
		{ast.PLUS, "+"},
		{ast.MINUS, "-"},
		{ast.ASTERISK, "*"},
		{ast.SLASH, "/"},
		{ast.ASSIGN, "="},
		{ast.EQ, "=="},
		{ast.NEQ, "!="},
		{ast.LT, "<"},
		{ast.GT, ">"},
		{ast.LTE, "<="},
		{ast.GTE, ">="},
		{ast.AND, "&&"},
		{ast.OR, "||"},
		{ast.ARROW, "->"},
		{ast.LPAREN, "("},
		{ast.RPAREN, ")"},
		{ast.LBRACE, "{"},
		{ast.RBRACE, "}"},
		{ast.COMMA, ","},
		{ast.SEMICOLON, ";"},
		{ast.EOF, ""},
	}
	runCases(t, input, want)
}

// TestLexer_OperatorPairs checks that adjacent operators which share a prefix
// are split correctly.
func TestLexer_OperatorPairs(t *testing.T) {
	input := `a<=b a<b a==b a=b x->y`
	want := []tokenCase{
		{ast.IDENT, "a"}, {ast.LTE, "<="}, {ast.IDENT, "b"},
		{ast.IDENT, "a"}, {ast.LT, "<"}, {ast.IDENT, "b"},
		{ast.IDENT, "a"}, {ast.EQ, "=="}, {ast.IDENT, "b"},
		{ast.IDENT, "a"}, {ast.ASSIGN, "="}, {ast.IDENT, "b"},
		{ast.IDENT, "x"}, {ast.ARROW, "->"}, {ast.IDENT, "y"},
		{ast.EOF, ""},
	}
	runCases(t, input, want)
}

// TestLexer_IllegalHalfOperators checks that a lone & | or ! is ILLEGAL.
func TestLexer_IllegalHalfOperators(t *testing.T) {
	input := `& | !`
	want := []tokenCase{
		{ast.ILLEGAL, "&"},
		{ast.ILLEGAL, "|"},
		{ast.ILLEGAL, "!"},
		{ast.EOF, ""},
	}
	runCases(t, input, want)
}

// ── Literals ──────────────────────────────────────────────────────────────────

func TestLexer_Literals_Int(t *testing.T) {
	input := `0 7 42 1000`
	want := []tokenCase{
		{ast.INT, "0"},
		{ast.INT, "7"},
		{ast.INT, "42"},
		{ast.INT, "1000"},
		{ast.EOF, ""},
	}
	runCases(t, input, want)
}

func TestLexer_Literals_Float(t *testing.T) {
	input := `3.14 0.5 100.0`
	want := []tokenCase{
		{ast.FLOAT, "3.14"},
		{ast.FLOAT, "0.5"},
		{ast.FLOAT, "100.0"},
		{ast.EOF, ""},
	}
	runCases(t, input, want)
}

func TestLexer_Literals_String(t *testing.T) {
	input := `"hello" "a\nb" "tab\there" "quote\"inside" ""`
	want := []tokenCase{
		{ast.STRING, "hello"},
		{ast.STRING, "a\nb"},
		{ast.STRING, "tab\there"},
		{ast.STRING, `quote"inside`},
		{ast.STRING, ""},
		{ast.EOF, ""},
	}
	runCases(t, input, want)
}

func TestLexer_UnterminatedString(t *testing.T) {
	l := lexer.New(`"no closing quote`)
	tok := l.NextToken()
	if tok.Type != ast.ILLEGAL {
		t.Fatalf("expected ILLEGAL, got %v (%q)", tok.Type, tok.Literal)
	}
}

// ── Identifiers ───────────────────────────────────────────────────────────────

func TestLexer_Identifiers(t *testing.T) {
	input := `x foo_bar _private camelCase x2`
	want := []tokenCase{
		{ast.IDENT, "x"},
		{ast.IDENT, "foo_bar"},
		{ast.IDENT, "_private"},
		{ast.IDENT, "camelCase"},
		{ast.IDENT, "x2"},
		{ast.EOF, ""},
	}
	runCases(t, input, want)
}

// ── Comments ──────────────────────────────────────────────────────────────────

func TestLexer_Comments(t *testing.T) {
	input := `a // this comment is skipped
b / c // trailing comment`
	want := []tokenCase{
		{ast.IDENT, "a"},
		{ast.IDENT, "b"},
		{ast.SLASH, "/"},
		{ast.IDENT, "c"},
		{ast.EOF, ""},
	}
	runCases(t, input, want)
}

// ── Position tracking ─────────────────────────────────────────────────────────

func TestLexer_Position(t *testing.T) {
	input := "i32 x = 1;\nreturn x;"
	l := lexer.New(input)

	type posCase struct {
		line, col int
	}
	want := []posCase{
		{1, 1},  // i32
		{1, 5},  // x
		{1, 7},  // =
		{1, 9},  // 1
		{1, 10}, // ;
		{2, 1},  // return
		{2, 8},  // x
		{2, 9},  // ;
	}
	for i, pc := range want {
		tok := l.NextToken()
		if tok.Line != pc.line || tok.Col != pc.col {
			t.Errorf("token %d (%q): got line %d col %d, want line %d col %d",
				i, tok.Literal, tok.Line, tok.Col, pc.line, pc.col)
		}
	}
}

// ── End-to-end ────────────────────────────────────────────────────────────────

func TestLexer_Program(t *testing.T) {
	input := `fn add(i32 a, i32 b) -> i32 {
	return a + b;
}`
	want := []tokenCase{
		{ast.FN, "fn"},
		{ast.IDENT, "add"},
		{ast.LPAREN, "("},
		{ast.TYPE, "i32"},
		{ast.IDENT, "a"},
		{ast.COMMA, ","},
		{ast.TYPE, "i32"},
		{ast.IDENT, "b"},
		{ast.RPAREN, ")"},
		{ast.ARROW, "->"},
		{ast.TYPE, "i32"},
		{ast.LBRACE, "{"},
		{ast.RETURN, "return"},
		{ast.IDENT, "a"},
		{ast.PLUS, "+"},
		{ast.IDENT, "b"},
		{ast.SEMICOLON, ";"},
		{ast.RBRACE, "}"},
		{ast.EOF, ""},
	}
	runCases(t, input, want)
}

// TestLexer_Tokenize checks that Tokenize collects the full stream and always
// ends with exactly one EOF token.
func TestLexer_Tokenize(t *testing.T) {
	toks := lexer.New(`i32 x = 1;`).Tokenize()
	if len(toks) != 6 {
		t.Fatalf("token count: got %d, want 6", len(toks))
	}
	if toks[len(toks)-1].Type != ast.EOF {
		t.Fatalf("last token: got %v, want EOF", toks[len(toks)-1].Type)
	}
}
