package gpulower

import (
	"github.com/pkg/errors"

	"github.com/Arslan-e-Mustafa/Accera/ir"
	"github.com/Arslan-e-Mustafa/Accera/ir/affine"
	"github.com/Arslan-e-Mustafa/Accera/rewrite"
)

// rocdlIntrinsics selects the matrix-fused-multiply-add intrinsic for a
// tile shape and input precision. Half-precision inputs always
// accumulate in f32.
var rocdlIntrinsics = map[ir.FragmentShape]map[ir.DType]string{
	ir.Shape4x16x64: {ir.DTypeFloat16: "mfma_f32_16x16x4f16", ir.DTypeFloat32: "mfma_f32_16x16x1f32"},
	ir.Shape2x32x64: {ir.DTypeFloat16: "mfma_f32_32x32x4f16", ir.DTypeFloat32: "mfma_f32_32x32x1f32"},
	ir.Shape4x4x32:  {ir.DTypeFloat16: "mfma_f32_32x32x8f16", ir.DTypeFloat32: "mfma_f32_32x32x2f32"},
	ir.Shape2x2x16:  {ir.DTypeFloat16: "mfma_f32_16x16x16f16", ir.DTypeFloat32: "mfma_f32_16x16x4f32"},
}

func modifierConstant(op *ir.Operation, attr string) *ir.Operation {
	v, _ := op.Attrs().Int(attr)
	return ir.NewConstantInt(v)
}

// FragmentComputeToROCDLPattern lowers the abstract fragment
// multiply-accumulate into a loop over the lane's vector slots invoking
// the shape-specialized intrinsic. Half-precision inputs step by four,
// gathering four contiguous lanes of A and B into small vectors per
// iteration; f32 inputs step by one and feed scalars. An unsupported
// shape or element type is a hard pass failure, not a declined match.
type FragmentComputeToROCDLPattern struct{}

func (FragmentComputeToROCDLPattern) MatchAndRewrite(op *ir.Operation, rw *rewrite.Rewriter) error {
	if op.OpType() != ir.OpTypeMFMACompute {
		return rewrite.MatchFailuref(op, "not a fragment compute")
	}
	ft, ok := ir.FragmentTypeOf(op)
	if !ok {
		return rewrite.MatchFailuref(op, "missing fragment descriptor")
	}
	opA, opB, opC := op.Operands()[0], op.Operands()[1], op.Operands()[2]
	for _, operand := range []*ir.Value{opA, opB, opC} {
		if !operand.Type().IsVector() {
			return rewrite.MatchFailuref(op, "expecting vector operands")
		}
	}
	inputType := opA.Type().DType
	intrinsic, ok := rocdlIntrinsics[ft.Shape][inputType]
	if !ok {
		return errors.Errorf("no matrix compute intrinsic for shape %s with %s inputs", ft.Shape, inputType)
	}

	cbsz := modifierConstant(op, ir.AttrCbsz)
	abid := modifierConstant(op, ir.AttrAbid)
	blgp := modifierConstant(op, ir.AttrBlgp)

	step := int64(1)
	if inputType == ir.DTypeFloat16 {
		step = subGroupSize
	}
	loop := ir.NewFor(0, ft.ThreadTileSize(), step, opC)
	body := loop.Regions()[0]
	iv := ir.ForInductionVar(loop)
	matD := ir.ForIterArgs(loop)[0]

	var vecA, vecB *ir.Value
	if inputType == ir.DTypeFloat16 {
		vecA, vecB = gatherHalfLanes(body, opA, opB, iv)
	} else {
		extractA := ir.NewVectorExtract(opA, iv)
		extractB := ir.NewVectorExtract(opB, iv)
		body.Append(extractA)
		body.Append(extractB)
		vecA, vecB = extractA.Result(0), extractB.Result(0)
	}
	mfma := ir.NewROCDLMFMA(intrinsic, vecA, vecB, matD,
		cbsz.Result(0), abid.Result(0), blgp.Result(0))
	body.Append(mfma)
	body.Append(ir.NewYield(mfma.Result(0)))

	rw.ReplaceOp(op, cbsz, abid, blgp, loop)
	return nil
}

// gatherHalfLanes emits the inner loop collecting subGroupSize
// contiguous lanes of the A and B vectors, starting at base, into two
// small vectors for the half-precision intrinsic.
func gatherHalfLanes(body *ir.Block, opA, opB, base *ir.Value) (vecA, vecB *ir.Value) {
	zero := ir.NewConstantFloat(ir.DTypeFloat16, 0)
	seedA := ir.NewVectorBroadcast(zero.Result(0), subGroupSize)
	seedB := ir.NewVectorBroadcast(zero.Result(0), subGroupSize)
	body.Append(zero)
	body.Append(seedA)
	body.Append(seedB)

	gather := ir.NewFor(0, subGroupSize, 1, seedA.Result(0), seedB.Result(0))
	inner := gather.Regions()[0]
	innerIv := ir.ForInductionVar(gather)
	iterA, iterB := ir.ForIterArgs(gather)[0], ir.ForIterArgs(gather)[1]

	sum := affine.MakeMap(2, 0, affine.Add(affine.Dim(0), affine.Dim(1)))
	pos := ir.NewAffineApply(sum, innerIv, base)
	inner.Append(pos)
	extractA := ir.NewVectorExtract(opA, pos.Result(0))
	inner.Append(extractA)
	insertA := ir.NewVectorInsert(extractA.Result(0), iterA, innerIv)
	inner.Append(insertA)
	extractB := ir.NewVectorExtract(opB, pos.Result(0))
	inner.Append(extractB)
	insertB := ir.NewVectorInsert(extractB.Result(0), iterB, innerIv)
	inner.Append(insertB)
	inner.Append(ir.NewYield(insertA.Result(0), insertB.Result(0)))

	body.Append(gather)
	return gather.Results()[0], gather.Results()[1]
}

// FragmentComputeToGPUPattern is the CUDA-class lowering of the
// abstract compute: the cooperative matrix op of the GPU dialect
// carries the whole fragment semantics, so the loop expansion is not
// needed.
type FragmentComputeToGPUPattern struct{}

func (FragmentComputeToGPUPattern) MatchAndRewrite(op *ir.Operation, rw *rewrite.Rewriter) error {
	if op.OpType() != ir.OpTypeMFMACompute {
		return rewrite.MatchFailuref(op, "not a fragment compute")
	}
	ft, ok := ir.FragmentTypeOf(op)
	if !ok {
		return rewrite.MatchFailuref(op, "missing fragment descriptor")
	}
	a, b, c := op.Operands()[0], op.Operands()[1], op.Operands()[2]
	rw.ReplaceOp(op, ir.NewSubgroupMmaCompute(ft, a, b, c))
	return nil
}

// FragmentMemToGPUPattern erases fragment loads, stores and constants
// on the CUDA class: the cooperative matrix compute addresses its
// operands itself, so the explicit data movement has no counterpart.
type FragmentMemToGPUPattern struct{}

func (FragmentMemToGPUPattern) MatchAndRewrite(op *ir.Operation, rw *rewrite.Rewriter) error {
	switch op.OpType() {
	case ir.OpTypeMFMALoad, ir.OpTypeMFMAStore, ir.OpTypeMFMAConstant:
		rw.EraseOp(op)
		return nil
	}
	return rewrite.MatchFailuref(op, "not a fragment memory operation")
}

// EarlyReturnToGPUPattern lowers the abstract early return to the GPU
// dialect terminator.
type EarlyReturnToGPUPattern struct{}

func (EarlyReturnToGPUPattern) MatchAndRewrite(op *ir.Operation, rw *rewrite.Rewriter) error {
	if op.OpType() != ir.OpTypeEarlyReturn {
		return rewrite.MatchFailuref(op, "not an early return")
	}
	rw.ReplaceOp(op, ir.NewGPUReturn(op.Operands()...))
	return nil
}

// EarlyReturnToSPIRVPattern lowers the abstract early return to the
// SPIR-V terminators, value-returning when it carries a value.
type EarlyReturnToSPIRVPattern struct{}

func (EarlyReturnToSPIRVPattern) MatchAndRewrite(op *ir.Operation, rw *rewrite.Rewriter) error {
	if op.OpType() != ir.OpTypeEarlyReturn {
		return rewrite.MatchFailuref(op, "not an early return")
	}
	if len(op.Operands()) == 0 {
		rw.ReplaceOp(op, ir.NewSPIRVReturn())
	} else {
		rw.ReplaceOp(op, ir.NewSPIRVReturnValue(op.Operands()[0]))
	}
	return nil
}

// PrivateAllocToSPIRVPattern lowers a statically shaped private-memory
// allocation to a function-storage SPIR-V variable. Dynamic shapes have
// no SPIR-V variable form and fail the pass.
type PrivateAllocToSPIRVPattern struct{}

func (PrivateAllocToSPIRVPattern) MatchAndRewrite(op *ir.Operation, rw *rewrite.Rewriter) error {
	if op.OpType() != ir.OpTypeAlloc {
		return rewrite.MatchFailuref(op, "not an allocation")
	}
	t := op.Result(0).Type()
	if !t.IsMemref() || !staticShape(t) {
		return errors.Errorf("unhandled allocation type %s", t)
	}
	rw.ReplaceOp(op, ir.NewSPIRVVariable(t))
	return nil
}

// PrivateDeallocToSPIRVPattern erases the deallocation of a
// function-storage variable; its lifetime ends with the function.
type PrivateDeallocToSPIRVPattern struct{}

func (PrivateDeallocToSPIRVPattern) MatchAndRewrite(op *ir.Operation, rw *rewrite.Rewriter) error {
	if op.OpType() != ir.OpTypeDealloc {
		return rewrite.MatchFailuref(op, "not a deallocation")
	}
	t := op.Operands()[0].Type()
	if !t.IsMemref() || !staticShape(t) {
		return errors.Errorf("unhandled deallocation type %s", t)
	}
	rw.EraseOp(op)
	return nil
}

func staticShape(t ir.Type) bool {
	for _, d := range t.MemrefDims {
		if d <= 0 {
			return false
		}
	}
	return true
}
