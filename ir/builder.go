package ir

// Builder appends instructions to an insertion block. Create one with
// [NewBuilder], point it at a block with [Builder.SetInsertPoint] and call the
// instruction methods; each returns the opaque handle of the produced value.
type Builder struct {
	cur *Block
}

// NewBuilder creates a builder with no insertion point.
func NewBuilder() *Builder { return &Builder{} }

// SetInsertPoint directs subsequent instructions into blk.
func (b *Builder) SetInsertPoint(blk *Block) { b.cur = blk }

// InsertBlock returns the current insertion block.
func (b *Builder) InsertBlock() *Block { return b.cur }

// emit appends the instruction to the insertion block and returns its result.
func (b *Builder) emit(in *Instr) *Value {
	b.cur.Instrs = append(b.cur.Instrs, in)
	return in.Res
}

// result creates a fresh temporary of the given type in the current function.
func (b *Builder) result(t Type, prefix string) *Value {
	return &Value{Type: t, kind: instrValue, name: b.cur.fn.tmp(prefix)}
}

// binary emits a two-operand instruction producing a value of x's type.
func (b *Builder) binary(op string, x, y *Value) *Value {
	return b.emit(&Instr{Op: op, Res: b.result(x.Type, "t"), Args: []*Value{x, y}})
}

// ── Arithmetic ────────────────────────────────────────────────────────────────

// Add emits integer addition.
func (b *Builder) Add(x, y *Value) *Value { return b.binary("add", x, y) }

// Sub emits integer subtraction.
func (b *Builder) Sub(x, y *Value) *Value { return b.binary("sub", x, y) }

// Mul emits integer multiplication.
func (b *Builder) Mul(x, y *Value) *Value { return b.binary("mul", x, y) }

// Div emits signed integer division.
func (b *Builder) Div(x, y *Value) *Value { return b.binary("sdiv", x, y) }

// FAdd emits floating-point addition.
func (b *Builder) FAdd(x, y *Value) *Value { return b.binary("fadd", x, y) }

// FSub emits floating-point subtraction.
func (b *Builder) FSub(x, y *Value) *Value { return b.binary("fsub", x, y) }

// FMul emits floating-point multiplication.
func (b *Builder) FMul(x, y *Value) *Value { return b.binary("fmul", x, y) }

// FDiv emits floating-point division.
func (b *Builder) FDiv(x, y *Value) *Value { return b.binary("fdiv", x, y) }

// ── Comparisons ───────────────────────────────────────────────────────────────

// ICmp emits an integer comparison with the given predicate
// (slt, sgt, sle, sge, eq, ne). The result is i1.
func (b *Builder) ICmp(pred string, x, y *Value) *Value {
	return b.emit(&Instr{Op: "icmp " + pred, Res: b.result(I1, "t"), Args: []*Value{x, y}})
}

// FCmp emits a floating-point comparison with the given predicate
// (olt, ogt, ole, oge, oeq, one). The result is i1.
func (b *Builder) FCmp(pred string, x, y *Value) *Value {
	return b.emit(&Instr{Op: "fcmp " + pred, Res: b.result(I1, "t"), Args: []*Value{x, y}})
}

// ── Casts ─────────────────────────────────────────────────────────────────────

func (b *Builder) cast(op string, v *Value, to Type) *Value {
	return b.emit(&Instr{Op: op, Res: b.result(to, "t"), Args: []*Value{v}})
}

// SExt sign-extends an integer to a wider integer type.
func (b *Builder) SExt(v *Value, to Type) *Value { return b.cast("sext", v, to) }

// Trunc truncates an integer to a narrower integer type.
func (b *Builder) Trunc(v *Value, to Type) *Value { return b.cast("trunc", v, to) }

// SIToFP converts a signed integer to a floating-point type.
func (b *Builder) SIToFP(v *Value, to Type) *Value { return b.cast("sitofp", v, to) }

// FPToSI converts a floating-point value to a signed integer type.
func (b *Builder) FPToSI(v *Value, to Type) *Value { return b.cast("fptosi", v, to) }

// FPExt widens float to double.
func (b *Builder) FPExt(v *Value, to Type) *Value { return b.cast("fpext", v, to) }

// FPTrunc narrows double to float.
func (b *Builder) FPTrunc(v *Value, to Type) *Value { return b.cast("fptrunc", v, to) }

// ── Memory ────────────────────────────────────────────────────────────────────

// Alloca reserves one stack slot of the given type and returns the ptr handle.
// The name seeds the slot's temporary name so dumps stay readable.
func (b *Builder) Alloca(t Type, name string) *Value {
	// The slot type is recorded through a zero constant argument; the dump
	// prints "alloca <type>".
	res := &Value{Type: Ptr, kind: instrValue, name: b.cur.fn.tmp(name + ".slot")}
	return b.emit(&Instr{Op: "alloca", Res: res, Args: []*Value{&Value{Type: t, kind: constInt}}})
}

// Load reads a value of type t from a slot.
func (b *Builder) Load(t Type, slot *Value) *Value {
	return b.emit(&Instr{Op: "load", Res: b.result(t, "t"), Args: []*Value{slot}})
}

// Store writes v into a slot. Store produces no value.
func (b *Builder) Store(v, slot *Value) {
	b.emit(&Instr{Op: "store", Args: []*Value{v, slot}})
}

// ── Calls and control flow ────────────────────────────────────────────────────

// Call emits a call to the named function. The result value carries the
// callee's return type; calls to void functions yield a value of type Void
// that must not be used as an operand.
func (b *Builder) Call(f *Func, args ...*Value) *Value {
	res := b.result(f.Ret, "t")
	b.emit(&Instr{Op: "call", Res: res, Args: args, Callee: f.Name})
	return res
}

// Br emits an unconditional branch to target.
func (b *Builder) Br(target *Block) {
	b.emit(&Instr{Op: "br", Targets: []*Block{target}})
}

// CondBr branches to then when cond (an i1) is true and to els otherwise.
func (b *Builder) CondBr(cond *Value, then, els *Block) {
	b.emit(&Instr{Op: "cond_br", Args: []*Value{cond}, Targets: []*Block{then, els}})
}

// Ret returns v from the current function.
func (b *Builder) Ret(v *Value) {
	b.emit(&Instr{Op: "ret", Args: []*Value{v}})
}

// RetVoid returns from a void function.
func (b *Builder) RetVoid() {
	b.emit(&Instr{Op: "ret"})
}
