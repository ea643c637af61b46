package gpulower

import (
	"github.com/Arslan-e-Mustafa/Accera/ir"
	"github.com/Arslan-e-Mustafa/Accera/ir/affine"
	"github.com/Arslan-e-Mustafa/Accera/rewrite"
)

// declaredSize returns the kernel's declared size triple under attr
// (blockSize or gridSize), looking on the function first and then its
// kernel module.
func declaredSize(op *ir.Operation, attr string) ([3]int64, bool) {
	fn := op.Func()
	if fn == nil {
		return [3]int64{}, false
	}
	if triple, ok := fn.Attrs().IntTriple(attr); ok {
		return triple, ok
	}
	if km := fn.KernelModule(); km != nil {
		return km.Attrs().IntTriple(attr)
	}
	return [3]int64{}, false
}

// axisBound returns the declared extent of op's axis, or 0 when the
// kernel does not declare one (or the axis is unknown).
func axisBound(op *ir.Operation, attr string) int64 {
	triple, ok := declaredSize(op, attr)
	if !ok {
		return 0
	}
	idx := ir.DimIndex(op.Attrs().String(ir.AttrDimension))
	if idx < 0 {
		return 0
	}
	return triple[idx]
}

// DimQueryPattern lowers the abstract grid/block dimension and id
// queries. Dimension queries fold to the kernel's declared constant
// extent when one is present; id queries become raw hardware reads,
// wrapped in an affine mod by the declared extent so later folding can
// reason about their range.
type DimQueryPattern struct{}

func (DimQueryPattern) MatchAndRewrite(op *ir.Operation, rw *rewrite.Rewriter) error {
	switch op.OpType() {
	case ir.OpTypeBlockDim:
		return lowerDimQuery(op, rw, ir.AttrBlockSize, ir.NewRawBlockDim)
	case ir.OpTypeGridDim:
		return lowerDimQuery(op, rw, ir.AttrGridSize, ir.NewRawGridDim)
	case ir.OpTypeThreadID:
		return lowerIDQuery(op, rw, ir.AttrBlockSize, ir.NewRawThreadID)
	case ir.OpTypeBlockID:
		return lowerIDQuery(op, rw, ir.AttrGridSize, ir.NewRawBlockID)
	}
	return rewrite.MatchFailuref(op, "not a dimension query")
}

func lowerDimQuery(op *ir.Operation, rw *rewrite.Rewriter, attr string, raw func(string) *ir.Operation) error {
	if bound := axisBound(op, attr); bound > 0 {
		rw.ReplaceOp(op, ir.NewConstantIndex(bound))
		return nil
	}
	rw.ReplaceOp(op, raw(op.Attrs().String(ir.AttrDimension)))
	return nil
}

func lowerIDQuery(op *ir.Operation, rw *rewrite.Rewriter, attr string, raw func(string) *ir.Operation) error {
	axis := op.Attrs().String(ir.AttrDimension)
	read := raw(axis)
	bound := axisBound(op, attr)
	if bound <= 0 {
		rw.ReplaceOp(op, read)
		return nil
	}
	mod := affine.MakeMap(0, 1, affine.Mod(affine.Symbol(0), affine.Constant(bound)))
	rw.ReplaceOp(op, read, ir.NewAffineApply(mod, read.Result(0)))
	return nil
}
