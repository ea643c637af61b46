package ir

// Constructors for the backend-specific operations the device lowering
// produces. These mirror the abstract constructors in build.go but
// carry the target dialect's semantics in attributes.

// SPIR-V scope and memory-semantics names, as they appear in the
// serialized module.
const (
	SPIRVScopeWorkgroup = "Workgroup"
	SPIRVScopeSubgroup  = "Subgroup"

	SPIRVSemanticsAcquireRelease = "AcquireRelease"
	SPIRVSemanticsSubgroupMemory = "SubgroupMemory"
)

// Fence semantics on the CUDA/ROCm family.
const (
	FenceOrderingSeqCst = "seq_cst"
	FenceScopeAgent     = "agent"
)

// NewSyncThreads builds a workgroup barrier for the CUDA/ROCm family.
func NewSyncThreads() *Operation {
	return NewOperation(OpTypeSyncThreads, Type{}, 0)
}

// NewFence builds a memory fence with the given ordering over the given
// synchronization scope.
func NewFence(ordering, syncScope string) *Operation {
	op := NewOperation(OpTypeFence, Type{}, 0)
	op.attrs[AttrOrdering] = ordering
	op.attrs[AttrSyncScope] = syncScope
	return op
}

// NewGPUReturn builds the GPU-dialect return terminator.
func NewGPUReturn(operands ...*Value) *Operation {
	return NewOperation(OpTypeGPUReturn, Type{}, 0, operands...)
}

// NewSubgroupMmaCompute builds the cooperative matrix multiply-accumulate
// of the GPU dialect (the CUDA-family lowering of the abstract compute).
func NewSubgroupMmaCompute(ft FragmentType, a, b, c *Value) *Operation {
	op := NewOperation(OpTypeSubgroupMmaCompute, c.Type(), 1, a, b, c)
	op.attrs[AttrFragment] = ft
	return op
}

// NewROCDLMFMA builds a call to the named ROCDL matrix-fused
// multiply-add intrinsic. Operands are a, b, c followed by the cbsz,
// abid and blgp modifier values; the result type matches c.
func NewROCDLMFMA(intrinsic string, a, b, c, cbsz, abid, blgp *Value) *Operation {
	op := NewOperation(OpTypeROCDLMFMA, c.Type(), 1, a, b, c, cbsz, abid, blgp)
	op.attrs[AttrIntrinsic] = intrinsic
	return op
}

// NewSPIRVControlBarrier builds a SPIR-V control barrier with the given
// execution scope, memory scope and memory semantics.
func NewSPIRVControlBarrier(execScope, memScope string, semantics ...string) *Operation {
	op := NewOperation(OpTypeSPIRVControlBarrier, Type{}, 0)
	op.attrs[AttrExecutionScope] = execScope
	op.attrs[AttrMemoryScope] = memScope
	op.attrs[AttrMemorySemantics] = semantics
	return op
}

// NewSPIRVReturn builds the SPIR-V return terminator.
func NewSPIRVReturn() *Operation {
	return NewOperation(OpTypeSPIRVReturn, Type{}, 0)
}

// NewSPIRVReturnValue builds the SPIR-V value-returning terminator.
func NewSPIRVReturnValue(v *Value) *Operation {
	return NewOperation(OpTypeSPIRVReturnValue, Type{}, 0, v)
}

// NewSPIRVVariable builds a function-storage SPIR-V variable of the
// given (statically shaped) memref type.
func NewSPIRVVariable(t Type) *Operation {
	return NewOperation(OpTypeSPIRVVariable, t, 1)
}
