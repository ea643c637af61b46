package backends_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Arslan-e-Mustafa/Accera/backends"
	"github.com/Arslan-e-Mustafa/Accera/ir"

	_ "github.com/Arslan-e-Mustafa/Accera/backends/cuda"
	_ "github.com/Arslan-e-Mustafa/Accera/backends/rocm"
	_ "github.com/Arslan-e-Mustafa/Accera/backends/spirv"
)

func TestForRuntime(t *testing.T) {
	t.Run("host runtimes need no pipeline", func(t *testing.T) {
		assert.Nil(t, backends.ForRuntime(ir.RuntimeNone))
		assert.Nil(t, backends.ForRuntime(ir.RuntimeOpenMP))
	})

	t.Run("default selects the rocm class", func(t *testing.T) {
		p := backends.ForRuntime(ir.RuntimeDefault)
		require.NotNil(t, p)
		assert.Equal(t, ir.RuntimeROCm, p.Runtime())
	})

	t.Run("each gpu runtime has its pipeline", func(t *testing.T) {
		for _, rt := range []ir.Runtime{ir.RuntimeCUDA, ir.RuntimeROCm, ir.RuntimeVulkan} {
			p := backends.ForRuntime(rt)
			require.NotNil(t, p, "runtime %s", rt)
			assert.Equal(t, rt, p.Runtime())
		}
	})
}

// abstractModule builds a minimal kernelized module targeting rt.
func abstractModule(rt ir.Runtime) *ir.Module {
	m := ir.NewModule("test")
	km := m.NewKernelModule("kernels")
	km.Attrs()[ir.AttrExecRuntime] = rt
	kernel := km.NewKernel("k")
	kernel.Attrs()[ir.AttrBlockSize] = [3]int64{64, 1, 1}
	kernel.Body().Append(ir.NewBarrier(ir.BarrierScopeBlock))
	kernel.Body().Append(ir.NewReturn())
	return m
}

func TestLowerSkipsHostOnlyModules(t *testing.T) {
	m := abstractModule(ir.RuntimeNone)
	require.NoError(t, backends.Lower(m))
	// Untouched: the abstract barrier survives.
	assert.Equal(t, 1, m.CountOps(func(op *ir.Operation) bool {
		return op.OpType() == ir.OpTypeBarrier
	}))
}

func TestLowerRunsResolvedPipeline(t *testing.T) {
	m := abstractModule(ir.RuntimeROCm)
	require.NoError(t, backends.Lower(m))
	assert.Equal(t, 0, m.CountOps(func(op *ir.Operation) bool {
		return op.OpType() == ir.OpTypeBarrier
	}))
	assert.Equal(t, 1, m.CountOps(func(op *ir.Operation) bool {
		return op.OpType() == ir.OpTypeSyncThreads
	}))
}

// fragmentModule builds a ROCm-tagged module whose kernel performs one
// fragment multiply-accumulate. The two GPU-class pipelines lower it
// differently, which makes the selected pipeline observable.
func fragmentModule() *ir.Module {
	m := ir.NewModule("test")
	km := m.NewKernelModule("kernels")
	km.Attrs()[ir.AttrExecRuntime] = ir.RuntimeROCm
	kernel := km.NewKernel("k")
	kernel.Attrs()[ir.AttrBlockSize] = [3]int64{64, 1, 1}

	ft := ir.FragmentType{
		Shape: ir.Shape4x16x64, Role: ir.RoleC, DType: ir.DTypeFloat32,
		LeadingDim: 16, NumBlocks: 1,
	}
	c := ir.NewConstantFloat(ir.DTypeFloat32, 0)
	kernel.Body().Append(c)
	vec := ir.NewVectorBroadcast(c.Result(0), ft.ThreadTileSize())
	kernel.Body().Append(vec)
	kernel.Body().Append(ir.NewMFMACompute(ft, vec.Result(0), vec.Result(0), vec.Result(0)))
	kernel.Body().Append(ir.NewReturn())
	return m
}

func TestLowerEnvOverride(t *testing.T) {
	countOf := func(m *ir.Module, opType ir.OpType) int {
		return m.CountOps(func(op *ir.Operation) bool { return op.OpType() == opType })
	}

	t.Run("valid override wins", func(t *testing.T) {
		t.Setenv(backends.ACCERA_RUNTIME, "CUDA")
		m := fragmentModule()
		require.NoError(t, backends.Lower(m))
		assert.Equal(t, 1, countOf(m, ir.OpTypeSubgroupMmaCompute))
		assert.Equal(t, 0, countOf(m, ir.OpTypeROCDLMFMA))
	})

	t.Run("unknown value is ignored", func(t *testing.T) {
		t.Setenv(backends.ACCERA_RUNTIME, "Metal")
		m := fragmentModule()
		require.NoError(t, backends.Lower(m))
		assert.Equal(t, 0, countOf(m, ir.OpTypeSubgroupMmaCompute))
		assert.Equal(t, 1, countOf(m, ir.OpTypeROCDLMFMA))
	})
}
