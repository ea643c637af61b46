// Package ir defines the kernel intermediate representation consumed by
// the GPU lowering stage: a module of host functions and kernel modules,
// functions of (usually single) blocks, and operations with typed
// attributes, operands and nested regions.
//
// The representation is transient: it exists for the duration of one
// compilation pass over one module and is mutated in place by the rewrite
// drivers, which assume exclusive access.
package ir

import (
	"slices"

	"github.com/gomlx/exceptions"
)

// Value is an SSA-style value: either the result of an Operation or a
// block argument (loop induction variables and iteration arguments).
type Value struct {
	def   *Operation // nil for block arguments
	block *Block     // owning block, for block arguments
	name  string
	typ   Type
}

// Def returns the defining operation, or nil for a block argument.
func (v *Value) Def() *Operation { return v.def }

// Type returns the value type.
func (v *Value) Type() Type { return v.typ }

// Name returns the debug name of the value (may be empty).
func (v *Value) Name() string { return v.name }

// SetName sets the debug name of the value.
func (v *Value) SetName(name string) { v.name = name }

// Operation is one IR operation: an OpType plus operands, results,
// attributes and optional nested regions (conditionals and loops).
type Operation struct {
	opType   OpType
	operands []*Value
	results  []*Value
	attrs    Attributes
	regions  []*Block
	block    *Block // containing block, nil while detached
}

// NewOperation creates a detached operation with numResults result values
// of the given type.
func NewOperation(opType OpType, resultType Type, numResults int, operands ...*Value) *Operation {
	op := &Operation{
		opType:   opType,
		operands: slices.Clone(operands),
		attrs:    Attributes{},
	}
	for i := 0; i < numResults; i++ {
		op.results = append(op.results, &Value{def: op, typ: resultType})
	}
	return op
}

// OpType returns the operation kind.
func (op *Operation) OpType() OpType { return op.opType }

// Operands returns the operand list. The returned slice is owned by the
// operation.
func (op *Operation) Operands() []*Value { return op.operands }

// SetOperand replaces operand i.
func (op *Operation) SetOperand(i int, v *Value) { op.operands[i] = v }

// Results returns the result values.
func (op *Operation) Results() []*Value { return op.results }

// Result returns result i, panicking on out-of-range (a programming
// error, not an input error).
func (op *Operation) Result(i int) *Value {
	if i < 0 || i >= len(op.results) {
		exceptions.Panicf("operation %s has %d results, requested result %d", op.opType, len(op.results), i)
	}
	return op.results[i]
}

// Attrs returns the mutable attribute map of the operation.
func (op *Operation) Attrs() Attributes { return op.attrs }

// Regions returns the nested region blocks (then/else for conditionals,
// the body for loops).
func (op *Operation) Regions() []*Block { return op.regions }

// AddRegion appends a new empty region block and returns it.
func (op *Operation) AddRegion() *Block {
	b := &Block{parent: op}
	op.regions = append(op.regions, b)
	return b
}

// Block returns the containing block, or nil while the operation is
// detached.
func (op *Operation) Block() *Block { return op.block }

// ParentOp returns the operation that owns the containing block's region,
// or nil when the operation sits directly in a function body.
func (op *Operation) ParentOp() *Operation {
	if op.block == nil {
		return nil
	}
	return op.block.parent
}

// Func returns the function this operation ultimately belongs to.
func (op *Operation) Func() *Function {
	b := op.block
	for b != nil {
		if b.fn != nil {
			return b.fn
		}
		if b.parent == nil {
			return nil
		}
		b = b.parent.block
	}
	return nil
}

// IsAncestorOf reports whether other is nested (transitively) inside one
// of op's regions.
func (op *Operation) IsAncestorOf(other *Operation) bool {
	for anc := other.ParentOp(); anc != nil; anc = anc.ParentOp() {
		if anc == op {
			return true
		}
	}
	return false
}

// Clone makes a deep copy of the operation: fresh result values, cloned
// regions. Operand references still point at the original values; callers
// cloning whole functions must remap them.
func (op *Operation) Clone() *Operation {
	cloned := &Operation{
		opType:   op.opType,
		operands: slices.Clone(op.operands),
		attrs:    op.attrs.Clone(),
	}
	for _, r := range op.results {
		cloned.results = append(cloned.results, &Value{def: cloned, typ: r.typ, name: r.name})
	}
	for _, region := range op.regions {
		newRegion := cloned.AddRegion()
		for _, arg := range region.args {
			newRegion.AddArg(arg.typ, arg.name)
		}
		for _, inner := range region.ops {
			newRegion.Append(inner.Clone())
		}
	}
	return cloned
}

// Block is an ordered list of operations, ending in a terminator once
// complete. A block belongs either to a function body or to an
// operation's region, never both.
type Block struct {
	parent *Operation
	fn     *Function
	args   []*Value
	ops    []*Operation
}

// Ops returns the operations of the block in order.
func (b *Block) Ops() []*Operation { return b.ops }

// Args returns the block arguments.
func (b *Block) Args() []*Value { return b.args }

// AddArg appends a block argument of the given type and returns it.
func (b *Block) AddArg(typ Type, name string) *Value {
	v := &Value{block: b, typ: typ, name: name}
	b.args = append(b.args, v)
	return v
}

// Append adds op at the end of the block.
func (b *Block) Append(op *Operation) {
	op.block = b
	b.ops = append(b.ops, op)
}

// IndexOf returns the position of op in the block, or -1.
func (b *Block) IndexOf(op *Operation) int {
	return slices.Index(b.ops, op)
}

// InsertBefore inserts op immediately before ref, which must be in the
// block.
func (b *Block) InsertBefore(ref, op *Operation) {
	idx := b.IndexOf(ref)
	if idx < 0 {
		exceptions.Panicf("InsertBefore: reference operation %s not in block", ref.OpType())
	}
	op.block = b
	b.ops = slices.Insert(b.ops, idx, op)
}

// InsertAfter inserts op immediately after ref, which must be in the
// block.
func (b *Block) InsertAfter(ref, op *Operation) {
	idx := b.IndexOf(ref)
	if idx < 0 {
		exceptions.Panicf("InsertAfter: reference operation %s not in block", ref.OpType())
	}
	op.block = b
	b.ops = slices.Insert(b.ops, idx+1, op)
}

// Remove detaches op from the block without touching its uses.
func (b *Block) Remove(op *Operation) {
	idx := b.IndexOf(op)
	if idx < 0 {
		exceptions.Panicf("Remove: operation %s not in block", op.OpType())
	}
	b.ops = slices.Delete(b.ops, idx, idx+1)
	op.block = nil
}

// Terminator returns the last operation of the block, or nil if empty.
func (b *Block) Terminator() *Operation {
	if len(b.ops) == 0 {
		return nil
	}
	return b.ops[len(b.ops)-1]
}

// Walk visits every operation in the block and, recursively, in nested
// regions, in order. The visitor may not mutate the block being walked.
func (b *Block) Walk(visit func(*Operation)) {
	for _, op := range b.ops {
		visit(op)
		for _, region := range op.regions {
			region.Walk(visit)
		}
	}
}

// FuncKind distinguishes host-side functions from device code.
type FuncKind int

const (
	// FuncHost is a regular host-side function.
	FuncHost FuncKind = iota
	// FuncKernel is a GPU kernel entry point, restricted to a single
	// basic block.
	FuncKernel
)

// Function is a named unit of code: host wrapper, launcher, or kernel.
type Function struct {
	name   string
	kind   FuncKind
	attrs  Attributes
	blocks []*Block
	module *Module
	kmod   *KernelModule
}

// Name returns the function symbol name.
func (f *Function) Name() string { return f.name }

// SetName renames the function. The caller is responsible for updating
// symbol references (launch sites, call sites).
func (f *Function) SetName(name string) { f.name = name }

// Kind returns whether this is a host function or a kernel.
func (f *Function) Kind() FuncKind { return f.kind }

// Attrs returns the mutable function attribute map.
func (f *Function) Attrs() Attributes { return f.attrs }

// Blocks returns the body blocks.
func (f *Function) Blocks() []*Block { return f.blocks }

// Body returns the single entry block, creating it on first use.
func (f *Function) Body() *Block {
	if len(f.blocks) == 0 {
		b := &Block{fn: f}
		f.blocks = append(f.blocks, b)
	}
	return f.blocks[0]
}

// AddBlock appends an additional basic block. Kernels with more than one
// block are rejected by the lowering, but the representation allows them
// so the rejection can be tested.
func (f *Function) AddBlock() *Block {
	b := &Block{fn: f}
	f.blocks = append(f.blocks, b)
	return b
}

// Module returns the owning module.
func (f *Function) Module() *Module { return f.module }

// KernelModule returns the owning kernel module for kernels, nil for host
// functions.
func (f *Function) KernelModule() *KernelModule { return f.kmod }

// Walk visits every operation in the function.
func (f *Function) Walk(visit func(*Operation)) {
	for _, b := range f.blocks {
		b.Walk(visit)
	}
}

// KernelModule groups the kernels targeting one device runtime, mirroring
// the nested GPU module of the input IR.
type KernelModule struct {
	name    string
	attrs   Attributes
	kernels []*Function
	module  *Module
}

// Name returns the kernel module symbol name.
func (km *KernelModule) Name() string { return km.name }

// SetName renames the kernel module.
func (km *KernelModule) SetName(name string) { km.name = name }

// Attrs returns the mutable attribute map.
func (km *KernelModule) Attrs() Attributes { return km.attrs }

// Kernels returns the kernels in the module.
func (km *KernelModule) Kernels() []*Function { return km.kernels }

// NewKernel adds a kernel function to the module.
func (km *KernelModule) NewKernel(name string) *Function {
	f := &Function{name: name, kind: FuncKernel, attrs: Attributes{}, module: km.module, kmod: km}
	km.kernels = append(km.kernels, f)
	return f
}

// Module is the whole-compilation symbol container: host functions plus
// kernel modules.
type Module struct {
	name  string
	attrs Attributes
	funcs []*Function
	kmods []*KernelModule
}

// NewModule creates an empty module.
func NewModule(name string) *Module {
	return &Module{name: name, attrs: Attributes{}}
}

// Name returns the module name.
func (m *Module) Name() string { return m.name }

// Attrs returns the mutable module attribute map.
func (m *Module) Attrs() Attributes { return m.attrs }

// Funcs returns the host-side functions in declaration order.
func (m *Module) Funcs() []*Function { return m.funcs }

// KernelModules returns the nested kernel modules.
func (m *Module) KernelModules() []*KernelModule { return m.kmods }

// NewFunc adds a host function to the module.
func (m *Module) NewFunc(name string) *Function {
	f := &Function{name: name, kind: FuncHost, attrs: Attributes{}, module: m}
	m.funcs = append(m.funcs, f)
	return f
}

// NewKernelModule adds an empty kernel module.
func (m *Module) NewKernelModule(name string) *KernelModule {
	km := &KernelModule{name: name, attrs: Attributes{}, module: m}
	m.kmods = append(m.kmods, km)
	return km
}

// LookupFunc resolves a symbol name to a host function or kernel, or nil.
func (m *Module) LookupFunc(name string) *Function {
	for _, f := range m.funcs {
		if f.name == name {
			return f
		}
	}
	for _, km := range m.kmods {
		for _, k := range km.kernels {
			if k.name == name {
				return k
			}
		}
	}
	return nil
}

// Kernels returns all kernels of all kernel modules.
func (m *Module) Kernels() []*Function {
	var all []*Function
	for _, km := range m.kmods {
		all = append(all, km.kernels...)
	}
	return all
}

// Walk visits every operation in every function and kernel of the module.
func (m *Module) Walk(visit func(*Operation)) {
	for _, f := range m.funcs {
		f.Walk(visit)
	}
	for _, k := range m.Kernels() {
		k.Walk(visit)
	}
}

// CountOps returns the number of operations in the module for which
// pred returns true; a nil pred counts everything.
func (m *Module) CountOps(pred func(*Operation) bool) int {
	count := 0
	m.Walk(func(op *Operation) {
		if pred == nil || pred(op) {
			count++
		}
	})
	return count
}
