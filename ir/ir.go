// Package ir defines the intermediate representation the Slate code generator
// lowers the AST into: a module of functions, each a list of basic blocks
// holding typed instructions in SSA-ish form.
//
// Values are opaque handles: constants, parameters and instruction results are
// all *Value, and instructions reference their operands through them. The
// [Builder] appends instructions to an insertion block, mirroring the shape of
// an LLVM IRBuilder without binding to one.
//
// The representation is printable: [Module.String] renders the whole module as
// readable text, which is what the CLI emits and what the tests assert on.
package ir

import (
	"fmt"
	"strconv"
	"strings"
)

// Type is a primitive IR type.
type Type int

const (
	// Void is the type of functions that return nothing.
	Void Type = iota
	// I1 is a single-bit boolean, the result type of comparisons.
	I1
	// I8 is an 8-bit signed integer.
	I8
	// I16 is a 16-bit signed integer.
	I16
	// I32 is a 32-bit signed integer.
	I32
	// I64 is a 64-bit signed integer.
	I64
	// Float is a 32-bit IEEE 754 float.
	Float
	// Double is a 64-bit IEEE 754 float.
	Double
	// Str is a string constant.
	Str
	// Ptr is the type of stack slots produced by alloca.
	Ptr
)

var typeNames = map[Type]string{
	Void:   "void",
	I1:     "i1",
	I8:     "i8",
	I16:    "i16",
	I32:    "i32",
	I64:    "i64",
	Float:  "float",
	Double: "double",
	Str:    "str",
	Ptr:    "ptr",
}

// String renders the type the way the textual dump spells it.
func (t Type) String() string {
	if s, ok := typeNames[t]; ok {
		return s
	}
	return "?"
}

// IsInteger reports whether t is one of the integer types (excluding i1).
func (t Type) IsInteger() bool {
	switch t {
	case I8, I16, I32, I64:
		return true
	}
	return false
}

// IsFloat reports whether t is a floating-point type.
func (t Type) IsFloat() bool { return t == Float || t == Double }

// Bits returns the width of the type in bits; it orders the numeric types
// for widening decisions. Void, Str and Ptr report 0.
func (t Type) Bits() int {
	switch t {
	case I1:
		return 1
	case I8:
		return 8
	case I16:
		return 16
	case I32, Float:
		return 32
	case I64, Double:
		return 64
	}
	return 0
}

// ── Values ────────────────────────────────────────────────────────────────────

type valueKind int

const (
	constInt valueKind = iota
	constFloat
	constStr
	paramValue
	instrValue
)

// Value is an opaque handle to an IR value: a constant, a function parameter,
// or the result of an instruction.
type Value struct {
	Type Type

	kind valueKind
	i    int64
	f    float64
	s    string
	name string // operand spelling for params and instruction results
}

// ConstInt creates an integer constant of the given type.
func ConstInt(t Type, v int64) *Value {
	return &Value{Type: t, kind: constInt, i: v}
}

// ConstFloat creates a floating-point constant of the given type.
func ConstFloat(t Type, v float64) *Value {
	return &Value{Type: t, kind: constFloat, f: v}
}

// ConstString creates a string constant.
func ConstString(s string) *Value {
	return &Value{Type: Str, kind: constStr, s: s}
}

// ConstBool creates an i1 constant.
func ConstBool(v bool) *Value {
	if v {
		return ConstInt(I1, 1)
	}
	return ConstInt(I1, 0)
}

// IsConst reports whether the value is a constant rather than a parameter or
// an instruction result.
func (v *Value) IsConst() bool { return v.kind != paramValue && v.kind != instrValue }

// Name returns the operand spelling of the value: "%x" for named values,
// the literal for constants.
func (v *Value) Name() string {
	switch v.kind {
	case constInt:
		return strconv.FormatInt(v.i, 10)
	case constFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case constStr:
		return strconv.Quote(v.s)
	default:
		return "%" + v.name
	}
}

// String renders the value with its type, e.g. "i32 %x".
func (v *Value) String() string {
	return v.Type.String() + " " + v.Name()
}

// ── Instructions ──────────────────────────────────────────────────────────────

// Instr is one IR instruction. Res is nil for instructions that produce no
// value (store, br, ret).
type Instr struct {
	Op      string // mnemonic, e.g. "add", "icmp slt", "alloca", "br"
	Res     *Value
	Args    []*Value
	Targets []*Block // branch targets, in then/else order for cond_br
	Callee  string   // called function name for "call"
}

// String renders the instruction as one line of the textual dump.
func (in *Instr) String() string {
	var b strings.Builder
	if in.Res != nil {
		b.WriteString(in.Res.Name())
		b.WriteString(" = ")
	}
	b.WriteString(in.Op)

	switch in.Op {
	case "br":
		fmt.Fprintf(&b, " label %%%s", in.Targets[0].Name)
		return b.String()
	case "cond_br":
		fmt.Fprintf(&b, " %s, label %%%s, label %%%s",
			in.Args[0].String(), in.Targets[0].Name, in.Targets[1].Name)
		return b.String()
	case "ret":
		if len(in.Args) == 0 {
			b.WriteString(" void")
		} else {
			b.WriteString(" " + in.Args[0].String())
		}
		return b.String()
	case "call":
		args := make([]string, len(in.Args))
		for i, a := range in.Args {
			args[i] = a.String()
		}
		fmt.Fprintf(&b, " %s @%s(%s)", in.Res.Type, in.Callee, strings.Join(args, ", "))
		return b.String()
	case "alloca":
		fmt.Fprintf(&b, " %s", in.Args[0].Type)
		return b.String()
	case "load":
		fmt.Fprintf(&b, " %s, %s", in.Res.Type, in.Args[0].String())
		return b.String()
	}

	// Uniform operand rendering for arithmetic, comparisons, casts and store:
	// "op <type> a, b" with the first operand's type leading.
	if len(in.Args) > 0 {
		b.WriteString(" " + in.Args[0].String())
		for _, a := range in.Args[1:] {
			b.WriteString(", " + a.Name())
		}
	}
	// Casts name their destination type.
	switch in.Op {
	case "sext", "trunc", "sitofp", "fptosi", "fpext", "fptrunc":
		fmt.Fprintf(&b, " to %s", in.Res.Type)
	}
	return b.String()
}

// ── Blocks ────────────────────────────────────────────────────────────────────

// Block is a basic block: a named, ordered list of instructions ending in at
// most one terminator.
type Block struct {
	Name   string
	Instrs []*Instr

	fn *Func
}

// Terminated reports whether the block already ends in a terminator
// instruction (br, cond_br or ret).
func (blk *Block) Terminated() bool {
	if len(blk.Instrs) == 0 {
		return false
	}
	switch blk.Instrs[len(blk.Instrs)-1].Op {
	case "br", "cond_br", "ret":
		return true
	}
	return false
}

// Func returns the function the block belongs to.
func (blk *Block) Func() *Func { return blk.fn }

// ── Functions ─────────────────────────────────────────────────────────────────

// Param is a function parameter declaration.
type Param struct {
	Name string
	Type Type
}

// Func is one function definition: typed parameters, a return type and an
// ordered list of basic blocks. Declarations without a body have no blocks.
type Func struct {
	Name   string
	Params []*Value
	Ret    Type
	Blocks []*Block

	nextTmp   int
	blockSeen map[string]int
}

// NewBlock appends a new basic block to the function. Block names are made
// unique by suffixing a counter on repeats, so callers can keep asking for
// "then" or "merge".
func (f *Func) NewBlock(name string) *Block {
	if f.blockSeen == nil {
		f.blockSeen = make(map[string]int)
	}
	n := f.blockSeen[name]
	f.blockSeen[name]++
	if n > 0 {
		name = fmt.Sprintf("%s%d", name, n)
	}
	blk := &Block{Name: name, fn: f}
	f.Blocks = append(f.Blocks, blk)
	return blk
}

// MoveToEnd reorders blk to the back of the function's block list. The code
// generator creates the end block early (returns need its handle) but wants
// it printed last.
func (f *Func) MoveToEnd(blk *Block) {
	for i, b := range f.Blocks {
		if b == blk {
			f.Blocks = append(append(f.Blocks[:i:i], f.Blocks[i+1:]...), blk)
			return
		}
	}
}

// Param returns the named parameter value, or nil.
func (f *Func) Param(name string) *Value {
	for _, p := range f.Params {
		if p.name == name {
			return p
		}
	}
	return nil
}

// tmp allocates the next unique temporary name within the function.
func (f *Func) tmp(prefix string) string {
	name := fmt.Sprintf("%s%d", prefix, f.nextTmp)
	f.nextTmp++
	return name
}

// String renders the function definition.
func (f *Func) String() string {
	var b strings.Builder
	params := make([]string, len(f.Params))
	for i, p := range f.Params {
		params[i] = p.String()
	}
	fmt.Fprintf(&b, "define %s @%s(%s)", f.Ret, f.Name, strings.Join(params, ", "))
	if len(f.Blocks) == 0 {
		b.WriteString("\n")
		return b.String()
	}
	b.WriteString(" {\n")
	for _, blk := range f.Blocks {
		fmt.Fprintf(&b, "%s:\n", blk.Name)
		for _, in := range blk.Instrs {
			fmt.Fprintf(&b, "  %s\n", in)
		}
	}
	b.WriteString("}\n")
	return b.String()
}

// ── Module ────────────────────────────────────────────────────────────────────

// Module is one compilation unit: an ordered list of functions.
type Module struct {
	Name  string
	Funcs []*Func

	index map[string]*Func
}

// NewModule creates an empty module with the given name.
func NewModule(name string) *Module {
	return &Module{Name: name, index: make(map[string]*Func)}
}

// NewFunc creates a function in the module. Parameters become values named
// after their declaration.
func (m *Module) NewFunc(name string, ret Type, params ...Param) *Func {
	f := &Func{Name: name, Ret: ret}
	for _, p := range params {
		f.Params = append(f.Params, &Value{Type: p.Type, kind: paramValue, name: p.Name})
	}
	m.Funcs = append(m.Funcs, f)
	m.index[name] = f
	return f
}

// Func returns the named function, or nil when the module does not define it.
func (m *Module) Func(name string) *Func {
	return m.index[name]
}

// String renders the whole module as text.
func (m *Module) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "; module %s\n", m.Name)
	for _, f := range m.Funcs {
		b.WriteString("\n")
		b.WriteString(f.String())
	}
	return b.String()
}
