package gpulower

import (
	"github.com/Arslan-e-Mustafa/Accera/ir"
	"github.com/Arslan-e-Mustafa/Accera/ir/affine"
	"github.com/Arslan-e-Mustafa/Accera/rewrite"
)

// subGroupSize is the number of contiguous fragment elements one lane
// owns per traversal of the accumulator tile.
const subGroupSize = 4

// laneDecomposition holds the per-lane index expressions shared by the
// fragment layout maps: the lane's position within its warp split along
// the fragment's leading dimension.
type laneDecomposition struct {
	m  affine.Expr // intra-warp row position: warpTid mod ld
	ks affine.Expr // traversal set: warpTid floordiv ld
}

// decomposeLane splits a lane id into its leading-dimension
// decomposition. tidX, tidY and bdimX are the symbol expressions the
// caller reserved for the hardware thread coordinates.
func decomposeLane(tidX, tidY, bdimX affine.Expr, warpSize, ld int64) laneDecomposition {
	blockTid := affine.Add(affine.Mul(tidY, bdimX), tidX)
	warpTid := affine.Mod(blockTid, affine.Constant(warpSize))
	return laneDecomposition{
		m:  affine.Mod(warpTid, affine.Constant(ld)),
		ks: affine.FloorDiv(warpTid, affine.Constant(ld)),
	}
}

// accumulatorLayoutMap builds the row/column layout map of the
// accumulator (C) operand: each lane owns subGroupSize-element groups,
// groups wrap along the leading dimension after setsPerCol sets. The
// map has two dimensions (the tile's base position) and four symbols
// [element index, thread x, thread y, block-dim x].
func accumulatorLayoutMap(warpSize, ld int64) affine.Map {
	iElem := affine.Symbol(0)
	lane := decomposeLane(affine.Symbol(1), affine.Symbol(2), affine.Symbol(3), warpSize, ld)
	warpStride := warpSize / ld
	rowsPerSet := warpStride * subGroupSize
	setsPerCol := ld / rowsPerSet
	if setsPerCol < 1 {
		// Narrow tiles where one set already spans the leading
		// dimension: all element groups advance the column.
		setsPerCol = 1
	}
	itemGroup := affine.FloorDiv(iElem, affine.Constant(subGroupSize))
	itemOffset := affine.Mod(iElem, affine.Constant(subGroupSize))
	rowOff := affine.Add(
		affine.Add(affine.MulConst(lane.ks, subGroupSize),
			affine.MulConst(affine.Mod(itemGroup, affine.Constant(setsPerCol)), rowsPerSet)),
		itemOffset)
	colOff := affine.Add(lane.m, affine.MulConst(affine.FloorDiv(itemGroup, affine.Constant(setsPerCol)), ld))
	return affine.MakeMap(2, 4,
		affine.Add(affine.Dim(0), rowOff),
		affine.Add(affine.Dim(1), colOff))
}

// inputLayoutMap builds the layout map of an input (A or B) operand:
// the lane's intra-warp position offsets the tile base, and the element
// index strides the reduction axis by warpSize/ld. The A and B layouts
// are transposes of each other. The composed map has the same symbol
// signature as accumulatorLayoutMap.
func inputLayoutMap(role ir.FragmentRole, warpSize, ld int64) (affine.Map, error) {
	lane := decomposeLane(affine.Symbol(0), affine.Symbol(1), affine.Symbol(2), warpSize, ld)
	warpStride := warpSize / ld
	elemStride := affine.MulConst(affine.Symbol(0), warpStride)
	var offset, stride affine.Map
	switch role {
	case ir.RoleA:
		offset = affine.MakeMap(2, 3, affine.Add(affine.Dim(0), lane.m), affine.Add(affine.Dim(1), lane.ks))
		stride = affine.MakeMap(2, 1, affine.Dim(0), affine.Add(affine.Dim(1), elemStride))
	case ir.RoleB:
		offset = affine.MakeMap(2, 3, affine.Add(affine.Dim(0), lane.ks), affine.Add(affine.Dim(1), lane.m))
		stride = affine.MakeMap(2, 1, affine.Add(affine.Dim(0), elemStride), affine.Dim(1))
	}
	return stride.Compose(offset)
}

// fragmentLayout resolves the layout map, per-lane vector size and
// element type of a fragment operation. For the accumulator the vector
// shrinks by the sub-block count and half-precision elements widen to
// f32 (the accumulate always runs in the wider precision).
func fragmentLayout(op *ir.Operation, ft ir.FragmentType) (layout affine.Map, vecSize int64, elem ir.DType, err error) {
	if verr := ft.Validate(); verr != nil {
		return affine.Map{}, 0, ir.DTypeInvalid, rewrite.MatchFailuref(op, "unhandled matrix shape")
	}
	warpX, warpY := ResolveWarpSize(op)
	warpSize := warpX * warpY
	vecSize = ft.ThreadTileSize()
	elem = ft.DType
	switch ft.Role {
	case ir.RoleC:
		ldC := ft.LeadingDim / ft.NumBlocks
		if ldC <= 0 || warpSize%ldC != 0 {
			return affine.Map{}, 0, ir.DTypeInvalid, rewrite.MatchFailuref(op, "unhandled matrix shape")
		}
		layout = accumulatorLayoutMap(warpSize, ldC)
		vecSize /= ft.NumBlocks
		if elem == ir.DTypeFloat16 {
			elem = ir.DTypeFloat32
		}
	case ir.RoleA, ir.RoleB:
		if warpSize%ft.LeadingDim != 0 {
			return affine.Map{}, 0, ir.DTypeInvalid, rewrite.MatchFailuref(op, "unhandled matrix shape")
		}
		layout, err = inputLayoutMap(ft.Role, warpSize, ft.LeadingDim)
		if err != nil {
			return affine.Map{}, 0, ir.DTypeInvalid, err
		}
	default:
		return affine.Map{}, 0, ir.DTypeInvalid, rewrite.MatchFailuref(op, "unhandled fragment role %s", ft.Role)
	}
	return layout, vecSize, elem, nil
}

// layoutOperands assembles the operand list of the composed address
// map: the access map's dimension operands, the four layout symbols
// (element index, thread x, thread y, block-dim x), then the access
// map's own symbol operands. The returned extra ops must be inserted
// before the rewritten operation; slot is the operand index the loop
// body overwrites with its induction variable.
func layoutOperands(accessMap affine.Map, indices []*ir.Value) (operands []*ir.Value, extra []*ir.Operation, slot int) {
	tidX := ir.NewRawThreadID("x")
	tidY := ir.NewRawThreadID("y")
	bdimX := ir.NewRawBlockDim("x")
	operands = append(operands, indices[:accessMap.NumDims]...)
	slot = len(operands)
	// The element-index slot is seeded with the thread-x read only to
	// keep the operand list well formed until the loop body replaces it.
	operands = append(operands, tidX.Result(0), tidX.Result(0), tidY.Result(0), bdimX.Result(0))
	operands = append(operands, indices[accessMap.NumDims:]...)
	return operands, []*ir.Operation{tidX, tidY, bdimX}, slot
}

// FragmentLoadToROCDLPattern lowers an abstract fragment load into an
// unrolled per-lane gather: a loop over the lane's vector slots that
// applies the composed layout+access map and loads one element per
// iteration into a vector, widening half-precision accumulator
// elements to f32.
type FragmentLoadToROCDLPattern struct{}

func (FragmentLoadToROCDLPattern) MatchAndRewrite(op *ir.Operation, rw *rewrite.Rewriter) error {
	if op.OpType() != ir.OpTypeMFMALoad {
		return rewrite.MatchFailuref(op, "not a fragment load")
	}
	ft, ok := ir.FragmentTypeOf(op)
	if !ok {
		return rewrite.MatchFailuref(op, "missing fragment descriptor")
	}
	layout, vecSize, elem, err := fragmentLayout(op, ft)
	if err != nil {
		return err
	}
	accessMap := ir.ApplyMap(op)
	composed, err := layout.Compose(accessMap)
	if err != nil {
		return err
	}
	memref := op.Operands()[0]
	indices := op.Operands()[1:]
	operands, extra, slot := layoutOperands(accessMap, indices)

	zero := ir.NewConstantFloat(elem, 0)
	seed := ir.NewVectorBroadcast(zero.Result(0), vecSize)
	loop := ir.NewFor(0, vecSize, 1, seed.Result(0))
	body := loop.Regions()[0]
	iv := ir.ForInductionVar(loop)
	dest := ir.ForIterArgs(loop)[0]
	operands[slot] = iv

	addr := ir.NewAffineApply(composed, operands...)
	body.Append(addr)
	load := ir.NewLoad(memref, addr.Results()...)
	body.Append(load)
	elemVal := load.Result(0)
	if ft.Role == ir.RoleC && ft.DType == ir.DTypeFloat16 {
		ext := ir.NewFPExt(elemVal)
		body.Append(ext)
		elemVal = ext.Result(0)
	}
	ins := ir.NewVectorInsert(elemVal, dest, iv)
	body.Append(ins)
	body.Append(ir.NewYield(ins.Result(0)))

	replacements := append(extra, zero, seed, loop)
	rw.ReplaceOp(op, replacements...)
	return nil
}

// FragmentStoreToROCDLPattern lowers an abstract fragment store into
// the scatter symmetric to the accumulator load: a loop extracting one
// vector slot per iteration and storing it through the composed
// layout+access map, truncating back to half precision when the backing
// matrix is f16.
type FragmentStoreToROCDLPattern struct{}

func (FragmentStoreToROCDLPattern) MatchAndRewrite(op *ir.Operation, rw *rewrite.Rewriter) error {
	if op.OpType() != ir.OpTypeMFMAStore {
		return rewrite.MatchFailuref(op, "not a fragment store")
	}
	ft, ok := ir.FragmentTypeOf(op)
	if !ok {
		return rewrite.MatchFailuref(op, "missing fragment descriptor")
	}
	// Stores always address through the accumulator layout.
	cft := ft
	cft.Role = ir.RoleC
	layout, vecSize, _, err := fragmentLayout(op, cft)
	if err != nil {
		return err
	}
	accessMap := ir.ApplyMap(op)
	composed, err := layout.Compose(accessMap)
	if err != nil {
		return err
	}
	value := op.Operands()[0]
	memref := op.Operands()[1]
	indices := op.Operands()[2:]
	operands, extra, slot := layoutOperands(accessMap, indices)

	loop := ir.NewFor(0, vecSize, 1)
	body := loop.Regions()[0]
	iv := ir.ForInductionVar(loop)
	operands[slot] = iv

	addr := ir.NewAffineApply(composed, operands...)
	body.Append(addr)
	extract := ir.NewVectorExtract(value, iv)
	body.Append(extract)
	elemVal := extract.Result(0)
	if value.Type().DType == ir.DTypeFloat32 && ft.DType == ir.DTypeFloat16 {
		trunc := ir.NewFPTrunc(elemVal, ir.DTypeFloat16)
		body.Append(trunc)
		elemVal = trunc.Result(0)
	}
	body.Append(ir.NewStore(elemVal, memref, addr.Results()...))

	replacements := append(extra, loop)
	rw.ReplaceOp(op, replacements...)
	return nil
}

// FragmentConstantToROCDLPattern lowers an abstract constant fragment
// to a plain vector splat of the fill value.
type FragmentConstantToROCDLPattern struct{}

func (FragmentConstantToROCDLPattern) MatchAndRewrite(op *ir.Operation, rw *rewrite.Rewriter) error {
	if op.OpType() != ir.OpTypeMFMAConstant {
		return rewrite.MatchFailuref(op, "not a fragment constant")
	}
	ft, ok := ir.FragmentTypeOf(op)
	if !ok {
		return rewrite.MatchFailuref(op, "missing fragment descriptor")
	}
	if err := ft.Validate(); err != nil {
		return rewrite.MatchFailuref(op, "unhandled matrix shape")
	}
	rw.ReplaceOp(op, ir.NewVectorBroadcast(op.Operands()[0], ft.ThreadTileSize()))
	return nil
}
