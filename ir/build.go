package ir

import (
	"github.com/Arslan-e-Mustafa/Accera/ir/affine"
	"github.com/gomlx/exceptions"
)

// Construction helpers for the operations of the kernel IR. They build
// detached operations; callers append them to a block (directly or via a
// rewriter).

// LaunchNumConfigOperands is the number of leading configuration operands
// of a launch operation: grid x/y/z then block x/y/z. The remaining
// operands are the kernel arguments.
const LaunchNumConfigOperands = 6

// NewReturn builds a function terminator.
func NewReturn(operands ...*Value) *Operation {
	return NewOperation(OpTypeReturn, Type{}, 0, operands...)
}

// NewEarlyReturn builds an abstract early-return with optional value.
func NewEarlyReturn(operands ...*Value) *Operation {
	if len(operands) > 1 {
		exceptions.Panicf("early return carries at most one value, got %d", len(operands))
	}
	return NewOperation(OpTypeEarlyReturn, Type{}, 0, operands...)
}

// NewYield builds a region terminator yielding the given values.
func NewYield(operands ...*Value) *Operation {
	return NewOperation(OpTypeYield, Type{}, 0, operands...)
}

// NewCall builds a call to the named function symbol.
func NewCall(callee string, args ...*Value) *Operation {
	op := NewOperation(OpTypeCall, Type{}, 0, args...)
	op.attrs[AttrCallee] = callee
	return op
}

// NewLaunchFunc builds a kernel launch site. grid and block are the six
// configuration operands, args the flat kernel operand list.
func NewLaunchFunc(kernel string, grid, block [3]*Value, args ...*Value) *Operation {
	operands := []*Value{grid[0], grid[1], grid[2], block[0], block[1], block[2]}
	operands = append(operands, args...)
	op := NewOperation(OpTypeLaunchFunc, Type{}, 0, operands...)
	op.attrs[AttrKernel] = kernel
	return op
}

// NewBarrier builds an abstract barrier with the given scope.
func NewBarrier(scope BarrierScope) *Operation {
	op := NewOperation(OpTypeBarrier, Type{}, 0)
	op.attrs[AttrScope] = scope
	return op
}

func newDimQuery(opType OpType, axis string) *Operation {
	op := NewOperation(opType, Scalar(DTypeIndex), 1)
	op.attrs[AttrDimension] = axis
	return op
}

// NewThreadID builds an abstract thread-id query on the given axis.
func NewThreadID(axis string) *Operation { return newDimQuery(OpTypeThreadID, axis) }

// NewBlockID builds an abstract block-id query on the given axis.
func NewBlockID(axis string) *Operation { return newDimQuery(OpTypeBlockID, axis) }

// NewBlockDim builds an abstract block-dimension query on the given axis.
func NewBlockDim(axis string) *Operation { return newDimQuery(OpTypeBlockDim, axis) }

// NewGridDim builds an abstract grid-dimension query on the given axis.
func NewGridDim(axis string) *Operation { return newDimQuery(OpTypeGridDim, axis) }

// NewRawThreadID builds a pass-through hardware thread-id read.
func NewRawThreadID(axis string) *Operation { return newDimQuery(OpTypeRawThreadID, axis) }

// NewRawBlockID builds a pass-through hardware block-id read.
func NewRawBlockID(axis string) *Operation { return newDimQuery(OpTypeRawBlockID, axis) }

// NewRawBlockDim builds a pass-through hardware block-dimension read.
func NewRawBlockDim(axis string) *Operation { return newDimQuery(OpTypeRawBlockDim, axis) }

// NewRawGridDim builds a pass-through hardware grid-dimension read.
func NewRawGridDim(axis string) *Operation { return newDimQuery(OpTypeRawGridDim, axis) }

// NewConstantIndex builds an index-typed integer constant.
func NewConstantIndex(v int64) *Operation {
	op := NewOperation(OpTypeConstantIndex, Scalar(DTypeIndex), 1)
	op.attrs[AttrValue] = v
	return op
}

// NewConstantInt builds an i32 constant.
func NewConstantInt(v int64) *Operation {
	op := NewOperation(OpTypeConstantInt, Scalar(DTypeInt32), 1)
	op.attrs[AttrValue] = v
	return op
}

// NewConstantFloat builds a floating-point constant of the given dtype.
func NewConstantFloat(dt DType, v float64) *Operation {
	op := NewOperation(OpTypeConstantFloat, Scalar(dt), 1)
	op.attrs[AttrValue] = v
	return op
}

// NewIndexCast casts an index value to i32 (or back).
func NewIndexCast(v *Value, to Type) *Operation {
	return NewOperation(OpTypeIndexCast, to, 1, v)
}

// NewAffineIf and NewIf build the two conditional representations. Both
// get a "then" region; the "else" region is added by callers that need
// it.

// NewAffineIf builds an affine conditional with an empty then-region.
func NewAffineIf() *Operation {
	op := NewOperation(OpTypeAffineIf, Type{}, 0)
	op.AddRegion()
	return op
}

// NewIf builds a structured conditional on the given predicate with an
// empty then-region.
func NewIf(pred *Value) *Operation {
	op := NewOperation(OpTypeIf, Type{}, 0, pred)
	op.AddRegion()
	return op
}

// NewFor builds a bounded loop from lb to ub by step. iterInit seeds the
// loop-carried values; the loop yields one result per carried value. The
// body block gets the induction variable plus one argument per carried
// value.
func NewFor(lb, ub, step int64, iterInit ...*Value) *Operation {
	op := NewOperation(OpTypeFor, Type{}, 0, iterInit...)
	op.attrs[AttrLowerBound] = lb
	op.attrs[AttrUpperBound] = ub
	op.attrs[AttrStep] = step
	body := op.AddRegion()
	body.AddArg(Scalar(DTypeIndex), "iv")
	for _, init := range iterInit {
		body.AddArg(init.Type(), "")
		op.results = append(op.results, &Value{def: op, typ: init.Type()})
	}
	return op
}

// ForInductionVar returns the induction variable of a loop built with
// NewFor.
func ForInductionVar(loop *Operation) *Value {
	return loop.Regions()[0].Args()[0]
}

// ForIterArgs returns the loop-carried block arguments of a loop built
// with NewFor.
func ForIterArgs(loop *Operation) []*Value {
	return loop.Regions()[0].Args()[1:]
}

// NewAffineApply builds an affine apply with one result per map
// expression. Operands are the map's dimension values followed by its
// symbol values.
func NewAffineApply(m affine.Map, operands ...*Value) *Operation {
	if len(operands) != m.NumInputs() {
		exceptions.Panicf("affine apply of %s expects %d operands, got %d", m, m.NumInputs(), len(operands))
	}
	op := NewOperation(OpTypeAffineApply, Scalar(DTypeIndex), m.NumResults(), operands...)
	op.attrs[AttrMap] = m
	return op
}

// ApplyMap returns the affine.Map attribute of an affine apply or a
// fragment load/store; the zero Map when absent.
func ApplyMap(op *Operation) affine.Map {
	m, _ := op.attrs[AttrMap].(affine.Map)
	return m
}

// NewAlloc builds a private-memory allocation of the given memref type.
func NewAlloc(t Type, memorySpace string) *Operation {
	op := NewOperation(OpTypeAlloc, t, 1)
	op.attrs[AttrMemorySpace] = memorySpace
	return op
}

// NewDealloc builds the deallocation of an allocated memref.
func NewDealloc(memref *Value) *Operation {
	return NewOperation(OpTypeDealloc, Type{}, 0, memref)
}

// NewLoad builds a scalar load from memref at the given indices.
func NewLoad(memref *Value, indices ...*Value) *Operation {
	operands := append([]*Value{memref}, indices...)
	return NewOperation(OpTypeLoad, Scalar(memref.Type().DType), 1, operands...)
}

// NewLoadAs builds a scalar load typed dt, for widened accumulator loads.
func NewLoadAs(dt DType, memref *Value, indices ...*Value) *Operation {
	operands := append([]*Value{memref}, indices...)
	return NewOperation(OpTypeLoad, Scalar(dt), 1, operands...)
}

// NewStore builds a scalar store of value into memref at the given
// indices.
func NewStore(value, memref *Value, indices ...*Value) *Operation {
	operands := append([]*Value{value, memref}, indices...)
	return NewOperation(OpTypeStore, Type{}, 0, operands...)
}

// NewVectorBroadcast splats a scalar into a vector of the given width.
func NewVectorBroadcast(scalar *Value, lanes int64) *Operation {
	return NewOperation(OpTypeVectorBroadcast, Vector(scalar.Type().DType, lanes), 1, scalar)
}

// NewVectorExtract extracts the lane at position pos from vec.
func NewVectorExtract(vec, pos *Value) *Operation {
	return NewOperation(OpTypeVectorExtract, Scalar(vec.Type().DType), 1, vec, pos)
}

// NewVectorInsert inserts elem into vec at position pos, producing the
// updated vector.
func NewVectorInsert(elem, vec, pos *Value) *Operation {
	return NewOperation(OpTypeVectorInsert, vec.Type(), 1, elem, vec, pos)
}

// NewFPExt widens a f16 value to f32.
func NewFPExt(v *Value) *Operation {
	t := v.Type()
	t.DType = DTypeFloat32
	return NewOperation(OpTypeFPExt, t, 1, v)
}

// NewFPTrunc narrows a f32 value to the given float dtype.
func NewFPTrunc(v *Value, dt DType) *Operation {
	t := v.Type()
	t.DType = dt
	return NewOperation(OpTypeFPTrunc, t, 1, v)
}

// NewMFMALoad builds an abstract fragment load. accessMap is the
// caller-supplied map from loop indices to the tile's base position;
// indices supplies its dimension and symbol operands.
func NewMFMALoad(ft FragmentType, accessMap affine.Map, memref *Value, indices ...*Value) *Operation {
	operands := append([]*Value{memref}, indices...)
	op := NewOperation(OpTypeMFMALoad, Vector(ft.DType, ft.ThreadTileSize()), 1, operands...)
	op.attrs[AttrFragment] = ft
	op.attrs[AttrMap] = accessMap
	return op
}

// NewMFMAStore builds an abstract fragment store of value.
func NewMFMAStore(ft FragmentType, accessMap affine.Map, value, memref *Value, indices ...*Value) *Operation {
	operands := append([]*Value{value, memref}, indices...)
	op := NewOperation(OpTypeMFMAStore, Type{}, 0, operands...)
	op.attrs[AttrFragment] = ft
	op.attrs[AttrMap] = accessMap
	return op
}

// NewMFMAConstant builds an abstract fragment filled with the scalar
// value.
func NewMFMAConstant(ft FragmentType, value *Value) *Operation {
	op := NewOperation(OpTypeMFMAConstant, Vector(ft.DType, ft.ThreadTileSize()), 1, value)
	op.attrs[AttrFragment] = ft
	return op
}

// NewMFMACompute builds the abstract fragment multiply-accumulate
// d = a*b + c.
func NewMFMACompute(ft FragmentType, a, b, c *Value) *Operation {
	op := NewOperation(OpTypeMFMACompute, c.Type(), 1, a, b, c)
	op.attrs[AttrFragment] = ft
	return op
}

// FragmentTypeOf returns the fragment descriptor of an MFMA operation.
func FragmentTypeOf(op *Operation) (FragmentType, bool) {
	ft, ok := op.attrs[AttrFragment].(FragmentType)
	return ft, ok
}
