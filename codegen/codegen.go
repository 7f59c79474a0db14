// Package codegen lowers a Slate AST into the ir package's representation.
//
// A [Generator] owns the output module, an instruction builder and the
// per-function environment: the name → stack-slot scope, the return slot and
// the end block. The AST itself stays read-only; all mutable lowering state
// lives here.
//
// Every node kind is emitted through [Generator.Emit], which returns the
// opaque IR value handle the node produces. Dispatch is a type switch over
// the node variants.
package codegen

import (
	"fmt"

	"github.com/slate-lang/slate/ast"
	"github.com/slate-lang/slate/ir"
)

// Generator holds all state for lowering one module.
type Generator struct {
	mod    *ir.Module
	b      *ir.Builder
	protos map[string]*ast.Prototype

	env *funcEnv // active function, nil between functions
}

// funcEnv is the codegen-time state of the function currently being lowered:
// one stack slot per named local, a return slot and the terminal block every
// return jumps to.
type funcEnv struct {
	fn      *ir.Func
	vars    map[string]slot
	retSlot *ir.Value
	retType ast.VarType
	end     *ir.Block
}

// slot is one named stack slot and the Slate type of the value it holds.
type slot struct {
	ptr *ir.Value
	typ ast.VarType
}

// New creates a Generator emitting into a fresh module with the given name.
func New(moduleName string) *Generator {
	return &Generator{
		mod:    ir.NewModule(moduleName),
		b:      ir.NewBuilder(),
		protos: make(map[string]*ast.Prototype),
	}
}

// Module returns the module built so far.
func (g *Generator) Module() *ir.Module { return g.mod }

// EmitProgram lowers every top-level node of the program into the module.
func (g *Generator) EmitProgram(prog *ast.Program) error {
	for _, n := range prog.Nodes {
		if _, err := g.Emit(n); err != nil {
			return err
		}
	}
	return nil
}

// Emit lowers one node and returns the IR value handle it produces.
// Nodes that produce nothing (imports, void definitions) return nil.
func (g *Generator) Emit(n ast.Node) (*ir.Value, error) {
	switch n := n.(type) {
	case *ast.NumberLiteral:
		return g.emitNumber(n)
	case *ast.StringLiteral:
		return ir.ConstString(n.Value), nil
	case *ast.Identifier:
		return g.emitIdentifier(n)
	case *ast.BinaryExpr:
		return g.emitBinary(n)
	case *ast.CallExpr:
		return g.emitCall(n)
	case *ast.CastExpr:
		return g.emitCast(n)
	case *ast.AssignExpr:
		return g.emitAssign(n)
	case *ast.IfExpr:
		return g.emitIf(n)
	case *ast.ImportExpr:
		// Imports are resolved by the driver before emission; here they are
		// a no-op.
		return nil, nil
	case *ast.VarDecl:
		return g.emitVarDecl(n)
	case *ast.ReturnStmt:
		return g.emitReturn(n)
	case *ast.Prototype:
		return nil, g.declare(n)
	case *ast.FuncDecl:
		return g.emitFunc(n)
	default:
		return nil, fmt.Errorf("codegen: unsupported node %T", n)
	}
}

// ── Types ─────────────────────────────────────────────────────────────────────

// irType maps a Slate primitive type to its IR type. Null (which the parser
// never leaves on a node) falls back to i32.
func irType(vt ast.VarType) ir.Type {
	switch vt {
	case ast.I64:
		return ir.I64
	case ast.I32:
		return ir.I32
	case ast.I16:
		return ir.I16
	case ast.I8:
		return ir.I8
	case ast.Float:
		return ir.Float
	case ast.Double:
		return ir.Double
	case ast.Bool:
		return ir.I1
	case ast.Void:
		return ir.Void
	}
	return ir.I32
}

// convert coerces v to the target IR type, emitting the matching cast
// instruction: sign-extend or truncate between integers, int/float
// conversions, and float width changes.
func (g *Generator) convert(v *ir.Value, to ir.Type) *ir.Value {
	from := v.Type
	if from == to {
		return v
	}
	switch {
	case from.IsFloat() && to.IsFloat():
		if from.Bits() < to.Bits() {
			return g.b.FPExt(v, to)
		}
		return g.b.FPTrunc(v, to)
	case from.IsFloat() && !to.IsFloat():
		return g.b.FPToSI(v, to)
	case !from.IsFloat() && to.IsFloat():
		return g.b.SIToFP(v, to)
	case from.Bits() < to.Bits():
		return g.b.SExt(v, to)
	default:
		return g.b.Trunc(v, to)
	}
}

// unify widens two operands to their common type: the wider of the two, with
// floats winning over integers.
func (g *Generator) unify(l, r *ir.Value) (*ir.Value, *ir.Value) {
	lt, rt := l.Type, r.Type
	if lt == rt {
		return l, r
	}
	var common ir.Type
	switch {
	case lt.IsFloat() && !rt.IsFloat():
		common = lt
	case rt.IsFloat() && !lt.IsFloat():
		common = rt
	case lt.Bits() >= rt.Bits():
		common = lt
	default:
		common = rt
	}
	return g.convert(l, common), g.convert(r, common)
}

// ── Expressions ───────────────────────────────────────────────────────────────

func (g *Generator) emitNumber(n *ast.NumberLiteral) (*ir.Value, error) {
	t := irType(n.Type)
	if t.IsFloat() {
		return ir.ConstFloat(t, n.Value), nil
	}
	return ir.ConstInt(t, int64(n.Value)), nil
}

func (g *Generator) emitIdentifier(n *ast.Identifier) (*ir.Value, error) {
	s, ok := g.lookup(n.Name)
	if !ok {
		return nil, fmt.Errorf("codegen: unknown variable %q", n.Name)
	}
	return g.b.Load(irType(s.typ), s.ptr), nil
}

// binOps maps an arithmetic operator to its integer and float instruction
// families.
var binOps = map[string]struct{ i, f func(b *ir.Builder, x, y *ir.Value) *ir.Value }{
	"+": {(*ir.Builder).Add, (*ir.Builder).FAdd},
	"-": {(*ir.Builder).Sub, (*ir.Builder).FSub},
	"*": {(*ir.Builder).Mul, (*ir.Builder).FMul},
	"/": {(*ir.Builder).Div, (*ir.Builder).FDiv},
}

// cmpPreds maps a comparison operator to its icmp and fcmp predicates.
var cmpPreds = map[string]struct{ i, f string }{
	"<":  {"slt", "olt"},
	">":  {"sgt", "ogt"},
	"<=": {"sle", "ole"},
	">=": {"sge", "oge"},
	"==": {"eq", "oeq"},
	"!=": {"ne", "one"},
}

func (g *Generator) emitBinary(n *ast.BinaryExpr) (*ir.Value, error) {
	// `lhs = rhs` reaches the generic binary form only when lhs is not a
	// plain identifier, which the language does not allow.
	if n.Op == "=" {
		return nil, fmt.Errorf("codegen: invalid assignment target %s", n.Left)
	}

	l, err := g.Emit(n.Left)
	if err != nil {
		return nil, err
	}
	r, err := g.Emit(n.Right)
	if err != nil {
		return nil, err
	}
	l, r = g.unify(l, r)

	if ops, ok := binOps[n.Op]; ok {
		if l.Type.IsFloat() {
			return ops.f(g.b, l, r), nil
		}
		return ops.i(g.b, l, r), nil
	}
	if preds, ok := cmpPreds[n.Op]; ok {
		if l.Type.IsFloat() {
			return g.b.FCmp(preds.f, l, r), nil
		}
		return g.b.ICmp(preds.i, l, r), nil
	}
	return nil, fmt.Errorf("codegen: unknown binary operator %q", n.Op)
}

func (g *Generator) emitCall(n *ast.CallExpr) (*ir.Value, error) {
	f := g.mod.Func(n.Callee)
	if f == nil {
		return nil, fmt.Errorf("codegen: unknown function %q", n.Callee)
	}
	proto := g.protos[n.Callee]
	if len(n.Args) != len(f.Params) {
		return nil, fmt.Errorf("codegen: %s expects %d arguments, got %d",
			n.Callee, len(f.Params), len(n.Args))
	}

	// Materialise the arguments left to right, converting each to the
	// declared parameter type.
	args := make([]*ir.Value, len(n.Args))
	for i, a := range n.Args {
		v, err := g.Emit(a)
		if err != nil {
			return nil, err
		}
		args[i] = g.convert(v, irType(proto.ArgTypes[i]))
	}
	return g.b.Call(f, args...), nil
}

func (g *Generator) emitCast(n *ast.CastExpr) (*ir.Value, error) {
	v, err := g.Emit(n.Value)
	if err != nil {
		return nil, err
	}
	return g.convert(v, irType(n.Target)), nil
}

func (g *Generator) emitAssign(n *ast.AssignExpr) (*ir.Value, error) {
	s, ok := g.lookup(n.Name)
	if !ok {
		return nil, fmt.Errorf("codegen: assignment to unknown variable %q", n.Name)
	}
	v, err := g.Emit(n.Value)
	if err != nil {
		return nil, err
	}
	v = g.convert(v, irType(s.typ))
	g.b.Store(v, s.ptr)
	// The assignment's value is the stored value.
	return v, nil
}

// ── If lowering ───────────────────────────────────────────────────────────────

// emitIf lowers the condition chain with short-circuit branches, emits the
// body once and joins control flow in a single merge block.
//
// Conditions are evaluated left to right. An && that fails jumps straight to
// merge; an || that succeeds jumps straight to the body. The last condition
// branches to body or merge directly.
func (g *Generator) emitIf(n *ast.IfExpr) (*ir.Value, error) {
	if g.env == nil {
		return nil, fmt.Errorf("codegen: if outside a function")
	}
	if len(n.Seps) != len(n.Conds)-1 {
		return nil, fmt.Errorf("codegen: malformed if: %d conditions, %d separators",
			len(n.Conds), len(n.Seps))
	}
	fn := g.env.fn
	body := fn.NewBlock("then")
	merge := fn.NewBlock("merge")

	for i, c := range n.Conds {
		cond, err := g.emitCondition(c)
		if err != nil {
			return nil, err
		}
		last := i == len(n.Conds)-1
		switch {
		case last:
			g.b.CondBr(cond, body, merge)
		case n.Seps[i] == ast.AND:
			next := fn.NewBlock("cond")
			g.b.CondBr(cond, next, merge)
			g.b.SetInsertPoint(next)
		default: // OR
			next := fn.NewBlock("cond")
			g.b.CondBr(cond, body, next)
			g.b.SetInsertPoint(next)
		}
	}

	g.b.SetInsertPoint(body)
	for _, bn := range n.Body {
		if _, err := g.Emit(bn); err != nil {
			return nil, err
		}
	}
	if !g.b.InsertBlock().Terminated() {
		g.b.Br(merge)
	}

	g.b.SetInsertPoint(merge)
	// An if has no meaningful value; it yields zero like any other
	// statement-position expression.
	return ir.ConstInt(ir.I32, 0), nil
}

// emitCondition lowers one comparison of an if header to an i1.
func (g *Generator) emitCondition(c ast.Condition) (*ir.Value, error) {
	l, err := g.Emit(c.Left)
	if err != nil {
		return nil, err
	}
	r, err := g.Emit(c.Right)
	if err != nil {
		return nil, err
	}
	l, r = g.unify(l, r)

	preds, ok := cmpPreds[c.Op.Literal]
	if !ok {
		return nil, fmt.Errorf("codegen: invalid comparison operator %q", c.Op.Literal)
	}
	if l.Type.IsFloat() {
		return g.b.FCmp(preds.f, l, r), nil
	}
	return g.b.ICmp(preds.i, l, r), nil
}

// ── Statements ────────────────────────────────────────────────────────────────

func (g *Generator) emitVarDecl(n *ast.VarDecl) (*ir.Value, error) {
	if g.env == nil {
		return nil, fmt.Errorf("codegen: variable %q declared outside a function", n.Name)
	}
	v, err := g.Emit(n.Value)
	if err != nil {
		return nil, err
	}
	v = g.convert(v, irType(n.Type))

	ptr := g.b.Alloca(irType(n.Type), n.Name)
	g.b.Store(v, ptr)
	g.env.vars[n.Name] = slot{ptr: ptr, typ: n.Type}
	return v, nil
}

func (g *Generator) emitReturn(n *ast.ReturnStmt) (*ir.Value, error) {
	if g.env == nil {
		return nil, fmt.Errorf("codegen: return outside a function")
	}
	if g.env.retType == ast.Void {
		return nil, fmt.Errorf("codegen: return with a value in void function %s", g.env.fn.Name)
	}
	v, err := g.Emit(n.Value)
	if err != nil {
		return nil, err
	}
	v = g.convert(v, irType(g.env.retType))

	// Store into the return slot and jump to the end block; the end block
	// performs the single real ret.
	g.b.Store(v, g.env.retSlot)
	g.b.Br(g.env.end)
	return v, nil
}

// declare registers a prototype and creates the function head without a body.
func (g *Generator) declare(p *ast.Prototype) error {
	if g.mod.Func(p.Name) != nil {
		return fmt.Errorf("codegen: redefinition of function %q", p.Name)
	}
	params := make([]ir.Param, len(p.ArgNames))
	for i, name := range p.ArgNames {
		params[i] = ir.Param{Name: name, Type: irType(p.ArgTypes[i])}
	}
	g.mod.NewFunc(p.Name, irType(p.ReturnType), params...)
	g.protos[p.Name] = p
	return nil
}

// emitFunc lowers a function declaration: one stack slot per parameter, a
// return slot, the body, and a terminal end block that loads the return slot.
func (g *Generator) emitFunc(n *ast.FuncDecl) (*ir.Value, error) {
	if err := g.declare(n.Proto); err != nil {
		return nil, err
	}
	fn := g.mod.Func(n.Proto.Name)

	entry := fn.NewBlock("entry")
	g.b.SetInsertPoint(entry)

	env := &funcEnv{
		fn:      fn,
		vars:    make(map[string]slot),
		retType: n.Proto.ReturnType,
	}
	g.env = env
	defer func() { g.env = nil }()

	// Parameters live in stack slots so assignments to them behave like any
	// other local.
	for i, name := range n.Proto.ArgNames {
		t := n.ArgTypes[i]
		ptr := g.b.Alloca(irType(t), name)
		g.b.Store(fn.Param(name), ptr)
		env.vars[name] = slot{ptr: ptr, typ: t}
	}

	if env.retType != ast.Void {
		env.retSlot = g.b.Alloca(irType(env.retType), "ret")
	}
	env.end = fn.NewBlock("end")

	for _, bn := range n.Body {
		if _, err := g.Emit(bn); err != nil {
			return nil, err
		}
	}

	// Fall through to the end block when the body did not end in a return.
	if !g.b.InsertBlock().Terminated() {
		g.b.Br(env.end)
	}

	g.b.SetInsertPoint(env.end)
	if env.retType == ast.Void {
		g.b.RetVoid()
	} else {
		g.b.Ret(g.b.Load(irType(env.retType), env.retSlot))
	}
	fn.MoveToEnd(env.end)

	return nil, nil
}

// lookup resolves a name in the active function's scope.
func (g *Generator) lookup(name string) (slot, bool) {
	if g.env == nil {
		return slot{}, false
	}
	s, ok := g.env.vars[name]
	return s, ok
}
