// Package rocm implements the ROCm-class lowering pipeline: barriers
// become workgroup syncs and device fences, dimension queries fold
// against the declared kernel sizes, and matrix-fragment operations
// expand into per-lane loops around the MFMA intrinsics.
package rocm

import (
	"github.com/pkg/errors"

	"github.com/Arslan-e-Mustafa/Accera/backends"
	"github.com/Arslan-e-Mustafa/Accera/gpulower"
	"github.com/Arslan-e-Mustafa/Accera/ir"
	"github.com/Arslan-e-Mustafa/Accera/rewrite"
	"github.com/Arslan-e-Mustafa/Accera/types"
)

// BackendName is the registered name of this pipeline.
const BackendName = "rocm"

func init() {
	backends.Register(ir.RuntimeROCm, New)
}

// New returns a fresh ROCm pipeline.
func New() backends.Pipeline { return &Pipeline{} }

// Pipeline is the ROCm-class lowering. It is stateless; one instance
// can lower any number of modules.
type Pipeline struct{}

func (p *Pipeline) Name() string        { return BackendName }
func (p *Pipeline) Runtime() ir.Runtime { return ir.RuntimeROCm }

var target = rewrite.Target{
	Illegal: types.SetWith(
		ir.OpTypeBarrier,
		ir.OpTypeThreadID, ir.OpTypeBlockID,
		ir.OpTypeBlockDim, ir.OpTypeGridDim,
		ir.OpTypeMFMALoad, ir.OpTypeMFMAStore,
		ir.OpTypeMFMACompute, ir.OpTypeMFMAConstant,
		ir.OpTypeEarlyReturn,
	),
	Legal: types.SetWith(
		ir.OpTypeReturn, ir.OpTypeYield, ir.OpTypeCall, ir.OpTypeLaunchFunc,
		ir.OpTypeAffineIf, ir.OpTypeIf, ir.OpTypeFor, ir.OpTypeAffineApply,
		ir.OpTypeConstantIndex, ir.OpTypeConstantInt, ir.OpTypeConstantFloat,
		ir.OpTypeIndexCast,
		ir.OpTypeAlloc, ir.OpTypeDealloc, ir.OpTypeLoad, ir.OpTypeStore,
		ir.OpTypeVectorBroadcast, ir.OpTypeVectorExtract, ir.OpTypeVectorInsert,
		ir.OpTypeFPExt, ir.OpTypeFPTrunc,
		ir.OpTypeRawThreadID, ir.OpTypeRawBlockID,
		ir.OpTypeRawBlockDim, ir.OpTypeRawGridDim,
		ir.OpTypeSyncThreads, ir.OpTypeFence, ir.OpTypeGPUReturn,
		ir.OpTypeROCDLMFMA,
	),
}

var conversionPatterns = []rewrite.Pattern{
	gpulower.DimQueryPattern{},
	gpulower.BarrierToGPUPattern{},
	gpulower.FragmentLoadToROCDLPattern{},
	gpulower.FragmentStoreToROCDLPattern{},
	gpulower.FragmentConstantToROCDLPattern{},
	gpulower.FragmentComputeToROCDLPattern{},
	gpulower.EarlyReturnToGPUPattern{},
}

// Lower validates the kernel runtimes, hoists conditional barriers,
// pairs launch wrappers with their kernels, then runs the full
// conversion to the ROCm legal set.
func (p *Pipeline) Lower(m *ir.Module) error {
	if _, err := gpulower.CheckKernelRuntimes(m); err != nil {
		return errors.Wrap(err, "rocm lowering")
	}
	rewrite.ApplyGreedily(m, []rewrite.Pattern{gpulower.HoistConditionalBarrierPattern{}})
	gpulower.PairDeviceLaunchers(m)
	return rewrite.ApplyFullConversion(m, target, conversionPatterns)
}
