package ir

// OpType is an enum of all operations of the kernel IR: the abstract,
// hardware-agnostic operations produced by the scheduling stage, and the
// backend-concrete operations the lowering rewrites them into.
type OpType int

//go:generate go tool enumer -type=OpType -trimprefix=OpType -output=gen_optype_enumer.go optype.go

const (
	OpTypeInvalid OpType = iota

	// Structural and host-side operations.
	OpTypeReturn
	OpTypeEarlyReturn
	OpTypeYield
	OpTypeCall
	OpTypeLaunchFunc

	// Abstract device operations awaiting lowering.
	OpTypeBarrier
	OpTypeThreadID
	OpTypeBlockID
	OpTypeBlockDim
	OpTypeGridDim
	OpTypeMFMALoad
	OpTypeMFMAStore
	OpTypeMFMACompute
	OpTypeMFMAConstant

	// Control flow. AffineIf and If are the two mutually exclusive
	// conditional representations the input IR may carry.
	OpTypeAffineIf
	OpTypeIf
	OpTypeFor

	// Arithmetic, memory and vector plumbing.
	OpTypeAffineApply
	OpTypeConstantIndex
	OpTypeConstantInt
	OpTypeConstantFloat
	OpTypeIndexCast
	OpTypeAlloc
	OpTypeDealloc
	OpTypeLoad
	OpTypeStore
	OpTypeVectorBroadcast
	OpTypeVectorExtract
	OpTypeVectorInsert
	OpTypeFPExt
	OpTypeFPTrunc

	// Concrete hardware index reads, emitted by the dimension folder.
	OpTypeRawThreadID
	OpTypeRawBlockID
	OpTypeRawBlockDim
	OpTypeRawGridDim

	// CUDA/ROCm-family concrete operations.
	OpTypeSyncThreads
	OpTypeFence
	OpTypeGPUReturn
	OpTypeSubgroupMmaCompute
	OpTypeROCDLMFMA

	// SPIR-V-family concrete operations.
	OpTypeSPIRVControlBarrier
	OpTypeSPIRVReturn
	OpTypeSPIRVReturnValue
	OpTypeSPIRVVariable
)
