// This file defines the Abstract Syntax Tree (AST) node types for Slate.
//
// Every source construct has a corresponding node type. The hierarchy is:
//
//	Node (interface)
//	  Expr (interface)
//	    NumberLiteral, StringLiteral, Identifier
//	    BinaryExpr, CallExpr, CastExpr, AssignExpr
//	    IfExpr, ImportExpr
//	  VarDecl, ReturnStmt, Prototype, FuncDecl
//
// The AST is a strict tree: every child is exclusively owned by its parent and
// the top-level Program owns the node vector. Nodes are immutable once the
// parser returns; the code generator walks them read-only and keeps its own
// per-function environment (variable slots, return slot, end block).
//
// Positional information is stored on the Token field present in every node.
package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// ── Interfaces ────────────────────────────────────────────────────────────────

// Node is the root interface for every element in the Slate AST.
// Every node carries the token at which it starts (for error reporting).
type Node interface {
	// TokenLiteral returns the literal string of the token that began this node.
	TokenLiteral() string
	// String re-emits the node as parseable Slate source. Re-lexing and
	// re-parsing the output yields a structurally identical node, which is the
	// property the round-trip tests lean on.
	String() string
}

// Expr is a Node that evaluates to a value in the emitted IR.
type Expr interface {
	Node
	exprNode()
}

// ── Top-level program ─────────────────────────────────────────────────────────

// Program is the root AST node produced by the parser: an ordered vector of
// top-level nodes. A Slate source file is a flat list of function declarations,
// variable declarations, and statement-position expressions.
type Program struct {
	Nodes []Node
}

// TokenLiteral returns the literal of the first node's starting token,
// or "" for an empty program.
func (p *Program) TokenLiteral() string {
	if len(p.Nodes) > 0 {
		return p.Nodes[0].TokenLiteral()
	}
	return ""
}

// String re-emits the whole program as Slate source, one statement per line.
func (p *Program) String() string {
	var b strings.Builder
	for _, n := range p.Nodes {
		b.WriteString(stmtString(n))
		b.WriteString("\n")
	}
	return b.String()
}

// stmtString renders a node in statement position. Expressions other than if
// get a trailing semicolon; declarations and returns carry their own.
func stmtString(n Node) string {
	switch n.(type) {
	case *IfExpr, *VarDecl, *ReturnStmt, *FuncDecl, *Prototype:
		return n.String()
	default:
		return n.String() + ";"
	}
}

// ── Expressions ───────────────────────────────────────────────────────────────

// NumberLiteral is a numeric (or boolean) literal with its resolved type.
// Type is never Null on a parsed node: the parser substitutes the context
// type when the literal itself does not pin one down.
type NumberLiteral struct {
	Token Token   // the INT, FLOAT, TRUE or FALSE token
	Value float64 // numeric value; 1 or 0 for booleans
	Type  VarType
}

func (e *NumberLiteral) exprNode()            {}
func (e *NumberLiteral) TokenLiteral() string { return e.Token.Literal }

// String returns the original literal text when available so that round-trips
// preserve the exact spelling; synthesised nodes fall back to formatting the
// value by type.
func (e *NumberLiteral) String() string {
	if e.Token.Literal != "" {
		return e.Token.Literal
	}
	if e.Type == Bool {
		if e.Value != 0 {
			return "true"
		}
		return "false"
	}
	if e.Type.IsFloat() {
		return strconv.FormatFloat(e.Value, 'g', -1, 64)
	}
	return strconv.FormatInt(int64(e.Value), 10)
}

// StringLiteral is an evaluated string literal (escape sequences already
// processed by the lexer).
type StringLiteral struct {
	Token Token
	Value string
}

func (e *StringLiteral) exprNode()            {}
func (e *StringLiteral) TokenLiteral() string { return e.Token.Literal }
func (e *StringLiteral) String() string       { return fmt.Sprintf("%q", e.Value) }

// Identifier is a reference to a local variable or parameter by name.
type Identifier struct {
	Token Token
	Name  string
}

func (e *Identifier) exprNode()            {}
func (e *Identifier) TokenLiteral() string { return e.Token.Literal }
func (e *Identifier) String() string       { return e.Name }

// BinaryExpr is a binary infix expression: left op right.
// Op is the literal string of the operator token.
type BinaryExpr struct {
	Token Token // the operator token
	Op    string
	Left  Expr
	Right Expr
}

func (e *BinaryExpr) exprNode()            {}
func (e *BinaryExpr) TokenLiteral() string { return e.Token.Literal }
func (e *BinaryExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", e.Left.String(), e.Op, e.Right.String())
}

// CallExpr is a call to a named function with ordered arguments.
type CallExpr struct {
	Token  Token // the callee identifier token
	Callee string
	Args   []Expr
}

func (e *CallExpr) exprNode()            {}
func (e *CallExpr) TokenLiteral() string { return e.Token.Literal }
func (e *CallExpr) String() string {
	args := make([]string, len(e.Args))
	for i, a := range e.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", e.Callee, strings.Join(args, ", "))
}

// CastExpr converts an inner expression to a target primitive type:
//
//	double(3)  i8(x + 1)
type CastExpr struct {
	Token  Token // the type keyword token
	Target VarType
	Value  Expr
}

func (e *CastExpr) exprNode()            {}
func (e *CastExpr) TokenLiteral() string { return e.Token.Literal }
func (e *CastExpr) String() string {
	return fmt.Sprintf("%s(%s)", e.Target, e.Value.String())
}

// AssignExpr stores a value into the named local and yields the stored value.
type AssignExpr struct {
	Token Token // the identifier token
	Name  string
	Value Expr
}

func (e *AssignExpr) exprNode()            {}
func (e *AssignExpr) TokenLiteral() string { return e.Token.Literal }
func (e *AssignExpr) String() string {
	return fmt.Sprintf("%s = %s", e.Name, e.Value.String())
}

// Condition is one comparison inside an if header: lhs op rhs.
// The comparison operator is kept as its token, not lowered to a BinaryExpr,
// because the code generator groups conditions with their short-circuit
// joiners when lowering.
type Condition struct {
	Left  Expr
	Op    Token // one of < > <= >= == !=
	Right Expr
}

// String renders the condition as source: "a < b".
func (c Condition) String() string {
	return fmt.Sprintf("%s %s %s", c.Left.String(), c.Op.Literal, c.Right.String())
}

// IfExpr is a conditional with one or more comparisons joined by && / || and
// a single body. There is no else branch in the language.
//
// Invariant: len(Seps) == len(Conds)-1.
// Seps holds the joiner token types (AND or OR) in source order. The parser
// records conditions and joiners verbatim; short-circuit evaluation is the
// code generator's concern.
type IfExpr struct {
	Token Token // the 'if' token
	Conds []Condition
	Seps  []TokenType
	Body  []Node
}

func (e *IfExpr) exprNode()            {}
func (e *IfExpr) TokenLiteral() string { return e.Token.Literal }
func (e *IfExpr) String() string {
	var b strings.Builder
	b.WriteString("if (")
	for i, c := range e.Conds {
		if i > 0 {
			b.WriteString(" " + e.Seps[i-1].String() + " ")
		}
		b.WriteString(c.String())
	}
	b.WriteString(") {\n")
	for _, n := range e.Body {
		b.WriteString(stmtString(n))
		b.WriteString("\n")
	}
	b.WriteString("}")
	return b.String()
}

// ImportExpr names another source file to be lexed, parsed and linked into
// the compilation by the driver. At code generation time it is a no-op.
type ImportExpr struct {
	Token Token // the 'import' token
	Path  string
}

func (e *ImportExpr) exprNode()            {}
func (e *ImportExpr) TokenLiteral() string { return e.Token.Literal }
func (e *ImportExpr) String() string       { return fmt.Sprintf("import %q", e.Path) }

// ── Statement-level nodes ─────────────────────────────────────────────────────

// VarDecl declares and initialises a typed local or global:
//
//	i32 x = 1 + 2 * 3;
type VarDecl struct {
	Token Token // the type keyword token
	Name  string
	Type  VarType
	Value Expr
}

func (d *VarDecl) TokenLiteral() string { return d.Token.Literal }
func (d *VarDecl) String() string {
	return fmt.Sprintf("%s %s = %s;", d.Type, d.Name, d.Value.String())
}

// ReturnStmt returns a value from the enclosing function.
type ReturnStmt struct {
	Token Token // the 'return' token
	Value Expr
}

func (s *ReturnStmt) TokenLiteral() string { return s.Token.Literal }
func (s *ReturnStmt) String() string {
	return fmt.Sprintf("return %s;", s.Value.String())
}

// Prototype is a function signature without its body.
//
// Invariant: len(ArgNames) == len(ArgTypes).
type Prototype struct {
	Token      Token // the function name token
	Name       string
	ArgNames   []string
	ArgTypes   []VarType
	ReturnType VarType
}

func (p *Prototype) TokenLiteral() string { return p.Token.Literal }
func (p *Prototype) String() string {
	params := make([]string, len(p.ArgNames))
	for i, name := range p.ArgNames {
		params[i] = fmt.Sprintf("%s %s", p.ArgTypes[i], name)
	}
	return fmt.Sprintf("fn %s(%s) -> %s", p.Name, strings.Join(params, ", "), p.ReturnType)
}

// FuncDecl is a function declaration: prototype plus ordered body nodes.
// ArgTypes mirrors Proto.ArgTypes; it is kept on the function as well because
// the code generator consults it when allocating parameter slots.
type FuncDecl struct {
	Token    Token // the 'fn' token
	Proto    *Prototype
	Body     []Node
	ArgTypes []VarType
}

func (d *FuncDecl) TokenLiteral() string { return d.Token.Literal }
func (d *FuncDecl) String() string {
	var b strings.Builder
	b.WriteString(d.Proto.String())
	b.WriteString(" {\n")
	for _, n := range d.Body {
		b.WriteString(stmtString(n))
		b.WriteString("\n")
	}
	b.WriteString("}")
	return b.String()
}
