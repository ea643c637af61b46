// Package cuda implements the CUDA-class lowering pipeline. It shares
// the barrier and dimension-query lowering with the ROCm class, but
// fragment computes map onto the cooperative matrix operation of the
// GPU dialect, which subsumes the explicit fragment data movement.
package cuda

import (
	"github.com/pkg/errors"

	"github.com/Arslan-e-Mustafa/Accera/backends"
	"github.com/Arslan-e-Mustafa/Accera/gpulower"
	"github.com/Arslan-e-Mustafa/Accera/ir"
	"github.com/Arslan-e-Mustafa/Accera/rewrite"
	"github.com/Arslan-e-Mustafa/Accera/types"
)

// BackendName is the registered name of this pipeline.
const BackendName = "cuda"

func init() {
	backends.Register(ir.RuntimeCUDA, New)
}

// New returns a fresh CUDA pipeline.
func New() backends.Pipeline { return &Pipeline{} }

// Pipeline is the CUDA-class lowering.
type Pipeline struct{}

func (p *Pipeline) Name() string        { return BackendName }
func (p *Pipeline) Runtime() ir.Runtime { return ir.RuntimeCUDA }

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
		ir.OpTypeSubgroupMmaCompute,
	),
}

var conversionPatterns = []rewrite.Pattern{
	gpulower.DimQueryPattern{},
	gpulower.BarrierToGPUPattern{},
	gpulower.FragmentComputeToGPUPattern{},
	gpulower.FragmentMemToGPUPattern{},
	gpulower.EarlyReturnToGPUPattern{},
}

// Lower validates the kernel runtimes, hoists conditional barriers,
// pairs launch wrappers with their kernels, then runs the full
// conversion to the CUDA legal set.
func (p *Pipeline) Lower(m *ir.Module) error {
	if _, err := gpulower.CheckKernelRuntimes(m); err != nil {
		return errors.Wrap(err, "cuda lowering")
	}
	rewrite.ApplyGreedily(m, []rewrite.Pattern{gpulower.HoistConditionalBarrierPattern{}})
	gpulower.PairDeviceLaunchers(m)
	return rewrite.ApplyFullConversion(m, target, conversionPatterns)
}
