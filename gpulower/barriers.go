package gpulower

import (
	"github.com/Arslan-e-Mustafa/Accera/ir"
	"github.com/Arslan-e-Mustafa/Accera/rewrite"
)

// barrierScope reads the scope attribute of a barrier operation.
func barrierScope(op *ir.Operation) ir.BarrierScope {
	scope, _ := op.Attrs()[ir.AttrScope].(ir.BarrierScope)
	return scope
}

// outermostConditional returns the outermost conditional (affine or
// structured) enclosing op, or nil when op is not under one.
func outermostConditional(op *ir.Operation) *ir.Operation {
	var found *ir.Operation
	for p := op.ParentOp(); p != nil; p = p.ParentOp() {
		if p.OpType() == ir.OpTypeAffineIf || p.OpType() == ir.OpTypeIf {
			found = p
		}
	}
	return found
}

// HoistConditionalBarrierPattern moves a barrier out of conditional
// code: a barrier inside an if-body synchronizes only the threads that
// take the branch, which deadlocks when the condition is
// thread-dependent. The barrier is re-created immediately before and
// after the outermost enclosing conditional and removed from the body.
// This over-synchronizes when the condition is uniform, trading a
// redundant barrier for correctness.
type HoistConditionalBarrierPattern struct{}

func (HoistConditionalBarrierPattern) MatchAndRewrite(op *ir.Operation, rw *rewrite.Rewriter) error {
	if op.OpType() != ir.OpTypeBarrier {
		return rewrite.MatchFailuref(op, "not a barrier")
	}
	cond := outermostConditional(op)
	if cond == nil {
		return rewrite.MatchFailuref(op, "barrier is not under a conditional")
	}
	rw.InsertBefore(cond, op.Clone())
	rw.InsertAfter(cond, op.Clone())
	rw.EraseOp(op)
	return nil
}

// BarrierToGPUPattern lowers barriers for the CUDA/ROCm family:
// block-scope barriers become the workgroup sync primitive and
// threadfences a sequentially consistent device-scope fence. Warp-scope
// barriers have no lowering on this family.
type BarrierToGPUPattern struct{}

func (BarrierToGPUPattern) MatchAndRewrite(op *ir.Operation, rw *rewrite.Rewriter) error {
	if op.OpType() != ir.OpTypeBarrier {
		return rewrite.MatchFailuref(op, "not a barrier")
	}
	switch scope := barrierScope(op); scope {
	case ir.BarrierScopeBlock:
		rw.ReplaceOp(op, ir.NewSyncThreads())
		return nil
	case ir.BarrierScopeThreadfence:
		rw.ReplaceOp(op, ir.NewFence(ir.FenceOrderingSeqCst, ir.FenceScopeAgent))
		return nil
	default:
		return rewrite.MatchFailuref(op, "unhandled barrier scope %s", scope)
	}
}

// BarrierToSPIRVPattern lowers barriers for the Vulkan family: block
// scope becomes a workgroup control barrier with acquire-release
// semantics, warp scope a subgroup control barrier additionally
// ordering subgroup memory.
type BarrierToSPIRVPattern struct{}

func (BarrierToSPIRVPattern) MatchAndRewrite(op *ir.Operation, rw *rewrite.Rewriter) error {
	if op.OpType() != ir.OpTypeBarrier {
		return rewrite.MatchFailuref(op, "not a barrier")
	}
	switch scope := barrierScope(op); scope {
	case ir.BarrierScopeBlock:
		rw.ReplaceOp(op, ir.NewSPIRVControlBarrier(
			ir.SPIRVScopeWorkgroup, ir.SPIRVScopeWorkgroup,
			ir.SPIRVSemanticsAcquireRelease))
		return nil
	case ir.BarrierScopeWarp:
		rw.ReplaceOp(op, ir.NewSPIRVControlBarrier(
			ir.SPIRVScopeSubgroup, ir.SPIRVScopeSubgroup,
			ir.SPIRVSemanticsAcquireRelease, ir.SPIRVSemanticsSubgroupMemory))
		return nil
	default:
		return rewrite.MatchFailuref(op, "unhandled barrier scope %s", scope)
	}
}
