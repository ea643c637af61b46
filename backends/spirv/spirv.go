// Package spirv implements the Vulkan-class lowering pipeline. Unlike
// the CUDA/ROCm pipelines it does not rewrite the original kernel
// modules: each one is deep-cloned under a fresh name and the clone is
// converted, so the abstract module stays available to other consumers.
package spirv

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/Arslan-e-Mustafa/Accera/backends"
	"github.com/Arslan-e-Mustafa/Accera/gpulower"
	"github.com/Arslan-e-Mustafa/Accera/ir"
	"github.com/Arslan-e-Mustafa/Accera/rewrite"
	"github.com/Arslan-e-Mustafa/Accera/types"
)

// BackendName is the registered name of this pipeline.
const BackendName = "spirv"

func init() {
	backends.Register(ir.RuntimeVulkan, New)
}

// New returns a fresh SPIR-V pipeline.
func New() backends.Pipeline { return &Pipeline{} }

// Pipeline is the Vulkan-class lowering.
type Pipeline struct{}

func (p *Pipeline) Name() string        { return BackendName }
func (p *Pipeline) Runtime() ir.Runtime { return ir.RuntimeVulkan }

var target = rewrite.Target{
	Illegal: types.SetWith(
		ir.OpTypeBarrier,
		ir.OpTypeThreadID, ir.OpTypeBlockID,
		ir.OpTypeBlockDim, ir.OpTypeGridDim,
		ir.OpTypeEarlyReturn,
		ir.OpTypeAlloc, ir.OpTypeDealloc,
	),
	Legal: types.SetWith(
		ir.OpTypeReturn, ir.OpTypeYield,
		ir.OpTypeAffineIf, ir.OpTypeIf, ir.OpTypeFor, ir.OpTypeAffineApply,
		ir.OpTypeConstantIndex, ir.OpTypeConstantInt, ir.OpTypeConstantFloat,
		ir.OpTypeIndexCast,
		ir.OpTypeLoad, ir.OpTypeStore,
		ir.OpTypeVectorBroadcast, ir.OpTypeVectorExtract, ir.OpTypeVectorInsert,
		ir.OpTypeFPExt, ir.OpTypeFPTrunc,
		ir.OpTypeRawThreadID, ir.OpTypeRawBlockID,
		ir.OpTypeRawBlockDim, ir.OpTypeRawGridDim,
		ir.OpTypeSPIRVControlBarrier, ir.OpTypeSPIRVReturn,
		ir.OpTypeSPIRVReturnValue, ir.OpTypeSPIRVVariable,
	),
}

var conversionPatterns = []rewrite.Pattern{
	gpulower.DimQueryPattern{},
	gpulower.BarrierToSPIRVPattern{},
	gpulower.EarlyReturnToSPIRVPattern{},
	gpulower.PrivateAllocToSPIRVPattern{},
	gpulower.PrivateDeallocToSPIRVPattern{},
}

// cloneName builds a unique name for a converted kernel-module clone.
func cloneName(base string) string {
	return fmt.Sprintf("%s_spv_%.8s", base, uuid.NewString())
}

// Lower clones every kernel module and fully converts each clone to the
// SPIR-V legal set. The original kernel modules are left untouched.
func (p *Pipeline) Lower(m *ir.Module) error {
	kmods := append([]*ir.KernelModule{}, m.KernelModules()...)
	for _, km := range kmods {
		clone := km.Clone(cloneName(km.Name()))
		rewrite.ApplyGreedily(clone, []rewrite.Pattern{gpulower.HoistConditionalBarrierPattern{}})
		if err := rewrite.ApplyFullConversion(clone, target, conversionPatterns); err != nil {
			return errors.Wrapf(err, "spirv lowering of kernel module %q", km.Name())
		}
	}
	return nil
}
