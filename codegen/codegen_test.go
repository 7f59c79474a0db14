package codegen_test

import (
	"strings"
	"testing"

	"github.com/kr/pretty"
	"github.com/stretchr/testify/require"

	"github.com/slate-lang/slate/ast"
	"github.com/slate-lang/slate/codegen"
	"github.com/slate-lang/slate/ir"
	"github.com/slate-lang/slate/lexer"
	"github.com/slate-lang/slate/parser"
)

// compile lexes, parses and lowers src into a fresh module, failing the test
// on any stage error, and returns the module.
func compile(t *testing.T, src string) *ir.Module {
	t.Helper()
	prog, err := parser.Parse(lexer.New(src).Tokenize())
	require.NoError(t, err, "parse")

	gen := codegen.New("test")
	if err := gen.EmitProgram(prog); err != nil {
		t.Log("input AST:")
		t.Log(pretty.Sprint(prog))
		t.Fatalf("emit: %v", err)
	}
	return gen.Module()
}

// compileErr runs the same pipeline but expects lowering to fail.
func compileErr(t *testing.T, src string) error {
	t.Helper()
	prog, err := parser.Parse(lexer.New(src).Tokenize())
	require.NoError(t, err, "parse")

	err = codegen.New("test").EmitProgram(prog)
	require.Error(t, err)
	return err
}

// requireDump asserts that the module dump contains every wanted fragment.
func requireDump(t *testing.T, mod *ir.Module, wants ...string) {
	t.Helper()
	dump := mod.String()
	for _, want := range wants {
		require.Truef(t, strings.Contains(dump, want),
			"dump missing %q\nfull dump:\n%s", want, dump)
	}
}

// ── Functions ─────────────────────────────────────────────────────────────────

func TestCodegen_SimpleFunction(t *testing.T) {
	mod := compile(t, `fn add(i32 a, i32 b) -> i32 { return a + b; }`)

	requireDump(t, mod,
		"define i32 @add(i32 %a, i32 %b)",
		// parameters are spilled to stack slots
		"%a.slot0 = alloca i32",
		"store i32 %a, %a.slot0",
		"%b.slot1 = alloca i32",
		"store i32 %b, %b.slot1",
		// the body loads, adds, stores the return slot and jumps to end
		"add i32",
		"store i32",
		"br label %end",
		// the end block performs the single real return
		"end:",
		"ret i32",
	)
}

func TestCodegen_VoidFunction(t *testing.T) {
	mod := compile(t, `fn noop() -> void { i32 x = 1; }`)

	requireDump(t, mod,
		"define void @noop()",
		"ret void",
	)
	dump := mod.String()
	require.NotContains(t, dump, "ret i32", "void function must not return a value")
	require.NotContains(t, dump, "ret.slot", "void function needs no return slot")
}

// TestCodegen_FallThroughReturn checks that a body without a trailing return
// still reaches the end block.
func TestCodegen_FallThroughReturn(t *testing.T) {
	mod := compile(t, `fn f() -> i32 { i32 x = 1; }`)
	requireDump(t, mod, "br label %end", "ret i32")
}

func TestCodegen_Call(t *testing.T) {
	mod := compile(t, `
fn square(i32 n) -> i32 { return n * n; }
fn main() -> i32 { return square(4); }
`)
	requireDump(t, mod, "call i32 @square(i32 4)")
}

// TestCodegen_CallConvertsArguments checks that arguments are coerced to the
// declared parameter types.
func TestCodegen_CallConvertsArguments(t *testing.T) {
	mod := compile(t, `
fn wide(i64 x) -> i64 { return x; }
fn main() -> i64 { return wide(i32(7)); }
`)
	requireDump(t, mod,
		"sext i32 7 to i64",
		"call i64 @wide(i64",
	)
}

// ── Arithmetic and widening ───────────────────────────────────────────────────

func TestCodegen_IntegerWidening(t *testing.T) {
	mod := compile(t, `fn f(i32 a, i64 b) -> i64 { return a + b; }`)
	requireDump(t, mod,
		"sext i32",
		"to i64",
		"add i64",
	)
}

func TestCodegen_IntFloatPromotion(t *testing.T) {
	mod := compile(t, `fn f(i32 a, double b) -> double { return a + b; }`)
	requireDump(t, mod,
		"sitofp i32",
		"to double",
		"fadd double",
	)
}

func TestCodegen_FloatArithmetic(t *testing.T) {
	mod := compile(t, `fn f(double a, double b) -> double { return a / b; }`)
	requireDump(t, mod, "fdiv double")

	mod = compile(t, `fn f(i32 a, i32 b) -> i32 { return a / b; }`)
	requireDump(t, mod, "sdiv i32")
}

func TestCodegen_Typecast(t *testing.T) {
	mod := compile(t, `fn f() -> double {
	double d = double(3);
	return d;
}`)
	// The cast's inner literal defaults to i32; the cast converts it.
	requireDump(t, mod, "sitofp i32 3 to double")
}

func TestCodegen_NarrowingCast(t *testing.T) {
	mod := compile(t, `fn f(i64 x) -> i8 { return i8(x); }`)
	requireDump(t, mod, "trunc i64", "to i8")
}

// TestCodegen_ContextualLiteral checks that a bare literal under a widening
// declaration produces a constant of the declared type with no cast.
func TestCodegen_ContextualLiteral(t *testing.T) {
	mod := compile(t, `fn f() -> i64 {
	i64 x = 42;
	return x;
}`)
	requireDump(t, mod, "store i64 42")
	require.NotContains(t, mod.String(), "sext", "in-context literal needs no widening")
}

// ── Variables and assignment ──────────────────────────────────────────────────

func TestCodegen_VariableDeclarationAndAssign(t *testing.T) {
	mod := compile(t, `fn f(i32 a) -> i32 {
	i32 x = a + 1;
	x = x * 2;
	return x;
}`)
	requireDump(t, mod,
		"%x.slot",
		"alloca i32",
		"mul i32",
	)
}

// TestCodegen_AssignConverts checks that an assigned value is coerced to the
// slot's declared type.
func TestCodegen_AssignConverts(t *testing.T) {
	mod := compile(t, `fn f(i64 wide) -> i32 {
	i32 narrow = 0;
	narrow = i32(wide);
	return narrow;
}`)
	requireDump(t, mod, "trunc i64", "to i32")
}

// ── If lowering ───────────────────────────────────────────────────────────────

func TestCodegen_If_SingleCondition(t *testing.T) {
	mod := compile(t, `fn f(i32 a, i32 b) -> i32 {
	if (a < b) {
		return 1;
	}
	return 0;
}`)
	requireDump(t, mod,
		"icmp slt i32",
		"label %then, label %merge",
		"then:",
		"merge:",
	)
}

// TestCodegen_If_ShortCircuitAnd checks that a failing && condition jumps
// straight to merge without evaluating the rest.
func TestCodegen_If_ShortCircuitAnd(t *testing.T) {
	mod := compile(t, `fn f(i32 a, i32 b, i32 c) -> i32 {
	if (a < b && b < c) {
		return 1;
	}
	return 0;
}`)
	requireDump(t, mod,
		// first condition: true continues to the next condition block
		"label %cond, label %merge",
		// last condition: true enters the body
		"label %then, label %merge",
		"cond:",
	)
}

// TestCodegen_If_ShortCircuitOr checks that a succeeding || condition jumps
// straight to the body.
func TestCodegen_If_ShortCircuitOr(t *testing.T) {
	mod := compile(t, `fn f(i32 a, i32 b, i32 c) -> i32 {
	if (a < b || b < c) {
		return 1;
	}
	return 0;
}`)
	requireDump(t, mod,
		// first condition: true short-circuits into the body
		"label %then, label %cond",
		"cond:",
	)
}

func TestCodegen_If_FloatComparison(t *testing.T) {
	mod := compile(t, `fn f(double a, double b) -> i32 {
	if (a >= b) {
		return 1;
	}
	return 0;
}`)
	requireDump(t, mod, "fcmp oge double")
}

// TestCodegen_If_MixedComparisonWidens checks operand unification inside an
// if condition.
func TestCodegen_If_MixedComparisonWidens(t *testing.T) {
	mod := compile(t, `fn f(i32 a, i64 b) -> i32 {
	if (a == b) {
		return 1;
	}
	return 0;
}`)
	requireDump(t, mod, "sext i32", "icmp eq i64")
}

// TestCodegen_If_TerminatedBody checks that a body ending in return does not
// get a second terminator.
func TestCodegen_If_TerminatedBody(t *testing.T) {
	mod := compile(t, `fn f(i32 a) -> i32 {
	if (a > 0) {
		return 1;
	}
	return 0;
}`)
	f := mod.Func("f")
	require.NotNil(t, f)
	for _, blk := range f.Blocks {
		terms := 0
		for _, in := range blk.Instrs {
			switch in.Op {
			case "br", "cond_br", "ret":
				terms++
			}
		}
		require.LessOrEqualf(t, terms, 1, "block %s has %d terminators", blk.Name, terms)
	}
}

// ── Imports ───────────────────────────────────────────────────────────────────

// TestCodegen_ImportIsNoOp checks that an import node survives emission
// without contributing instructions; the driver resolves imports beforehand.
func TestCodegen_ImportIsNoOp(t *testing.T) {
	mod := compile(t, `import "std.lang";
fn f() -> i32 { return 0; }`)
	require.Len(t, mod.Funcs, 1)
}

// TestCodegen_StringConstant checks that a string literal lowers to a str
// constant carrying its text.
func TestCodegen_StringConstant(t *testing.T) {
	gen := codegen.New("test")
	v, err := gen.Emit(&ast.StringLiteral{Value: "hello"})
	require.NoError(t, err)
	require.Equal(t, ir.Str, v.Type)
	require.Equal(t, `str "hello"`, v.String())
}

// ── Errors ────────────────────────────────────────────────────────────────────

func TestCodegen_Errors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
	}{
		{
			"unknown variable",
			`fn f() -> i32 { return missing; }`,
			"unknown variable",
		},
		{
			"unknown function",
			`fn f() -> i32 { return missing(); }`,
			"unknown function",
		},
		{
			"wrong arity",
			`fn g(i32 a) -> i32 { return a; }
fn f() -> i32 { return g(1, 2); }`,
			"expects 1 arguments, got 2",
		},
		{
			"return in void function",
			`fn f() -> void { return 1; }`,
			"void function",
		},
		{
			"variable outside function",
			`i32 x = 1;`,
			"outside a function",
		},
		{
			"function redefinition",
			`fn f() -> i32 { return 0; }
fn f() -> i32 { return 1; }`,
			"redefinition",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := compileErr(t, tc.src)
			require.Contains(t, err.Error(), tc.want)
		})
	}
}
