package ast

import "testing"

func TestTypeFromKeyword(t *testing.T) {
	cases := []struct {
		keyword string
		want    VarType
	}{
		{"i64", I64},
		{"i32", I32},
		{"i16", I16},
		{"i8", I8},
		{"float", Float},
		{"double", Double},
		{"bool", Bool},
		{"void", Void},
		{"string", Null},
		{"", Null},
	}
	for _, tc := range cases {
		if got := TypeFromKeyword(tc.keyword); got != tc.want {
			t.Errorf("TypeFromKeyword(%q): got %v, want %v", tc.keyword, got, tc.want)
		}
	}
}

// TestTypeFromToken pins the contextual-typing contract: integer literals stay
// untyped (Null) until the parser fills in the context type, float literals
// are always double, and booleans are bool.
func TestTypeFromToken(t *testing.T) {
	if got := TypeFromToken(INT); got != Null {
		t.Errorf("INT: got %v, want Null", got)
	}
	if got := TypeFromToken(FLOAT); got != Double {
		t.Errorf("FLOAT: got %v, want Double", got)
	}
	if got := TypeFromToken(TRUE); got != Bool {
		t.Errorf("TRUE: got %v, want Bool", got)
	}
	if got := TypeFromToken(FALSE); got != Bool {
		t.Errorf("FALSE: got %v, want Bool", got)
	}
}

func TestVarType_Classification(t *testing.T) {
	for _, vt := range []VarType{I64, I32, I16, I8} {
		if !vt.IsInteger() || vt.IsFloat() {
			t.Errorf("%v misclassified", vt)
		}
	}
	for _, vt := range []VarType{Float, Double} {
		if !vt.IsFloat() || vt.IsInteger() {
			t.Errorf("%v misclassified", vt)
		}
	}
	if Bool.IsInteger() || Void.IsInteger() || Null.IsFloat() {
		t.Error("non-numeric types misclassified")
	}
}

func TestLookupIdent(t *testing.T) {
	if LookupIdent("fn") != FN {
		t.Error("fn should be a keyword")
	}
	if LookupIdent("i32") != TYPE {
		t.Error("i32 should be a type keyword")
	}
	if LookupIdent("fnord") != IDENT {
		t.Error("fnord should be an identifier")
	}
}

// TestString_Expressions checks the printed form of each expression node.
func TestString_Expressions(t *testing.T) {
	a := &Identifier{Name: "a"}
	b := &Identifier{Name: "b"}

	cases := []struct {
		node Node
		want string
	}{
		{&BinaryExpr{Op: "+", Left: a, Right: b}, "(a + b)"},
		{&CallExpr{Callee: "f", Args: []Expr{a, b}}, "f(a, b)"},
		{&CastExpr{Target: Double, Value: a}, "double(a)"},
		{&AssignExpr{Name: "x", Value: a}, "x = a"},
		{&ImportExpr{Path: "std.lang"}, `import "std.lang"`},
		{&StringLiteral{Value: "hi\n"}, `"hi\n"`},
		{&VarDecl{Name: "x", Type: I32, Value: a}, "i32 x = a;"},
		{&ReturnStmt{Value: a}, "return a;"},
	}
	for _, tc := range cases {
		if got := tc.node.String(); got != tc.want {
			t.Errorf("String(): got %q, want %q", got, tc.want)
		}
	}
}

// TestString_NumberLiteral checks that a parsed literal keeps its source
// spelling and a synthesised one formats by type.
func TestString_NumberLiteral(t *testing.T) {
	parsed := &NumberLiteral{Token: Token{Type: INT, Literal: "007"}, Value: 7, Type: I32}
	if got := parsed.String(); got != "007" {
		t.Errorf("parsed literal: got %q, want %q", got, "007")
	}

	synth := &NumberLiteral{Value: 2.5, Type: Double}
	if got := synth.String(); got != "2.5" {
		t.Errorf("synthesised double: got %q, want %q", got, "2.5")
	}
	flag := &NumberLiteral{Value: 1, Type: Bool}
	if got := flag.String(); got != "true" {
		t.Errorf("synthesised bool: got %q, want %q", got, "true")
	}
}

func TestString_Prototype(t *testing.T) {
	p := &Prototype{
		Name:       "add",
		ArgNames:   []string{"a", "b"},
		ArgTypes:   []VarType{I32, I64},
		ReturnType: I32,
	}
	want := "fn add(i32 a, i64 b) -> i32"
	if got := p.String(); got != want {
		t.Errorf("prototype: got %q, want %q", got, want)
	}
}

func TestString_If(t *testing.T) {
	ifx := &IfExpr{
		Conds: []Condition{
			{Left: &Identifier{Name: "a"}, Op: Token{Type: LT, Literal: "<"}, Right: &Identifier{Name: "b"}},
			{Left: &Identifier{Name: "b"}, Op: Token{Type: LT, Literal: "<"}, Right: &Identifier{Name: "c"}},
		},
		Seps: []TokenType{AND},
		Body: []Node{&AssignExpr{Name: "x", Value: &NumberLiteral{Token: Token{Literal: "1"}, Value: 1, Type: I32}}},
	}
	want := "if (a < b && b < c) {\nx = 1;\n}"
	if got := ifx.String(); got != want {
		t.Errorf("if: got %q, want %q", got, want)
	}
}
