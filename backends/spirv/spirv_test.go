package spirv

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Arslan-e-Mustafa/Accera/ir"
)

func countOf(b *ir.Block, opType ir.OpType) int {
	n := 0
	b.Walk(func(op *ir.Operation) {
		if op.OpType() == opType {
			n++
		}
	})
	return n
}

func TestLowerConvertsClones(t *testing.T) {
	m := ir.NewModule("test")
	km := m.NewKernelModule("kernels")
	km.Attrs()[ir.AttrExecRuntime] = ir.RuntimeVulkan
	kernel := km.NewKernel("k")
	kernel.Attrs()[ir.AttrBlockSize] = [3]int64{64, 1, 1}
	alloc := ir.NewAlloc(ir.Memref(ir.DTypeFloat32, 16), "private")
	kernel.Body().Append(alloc)
	kernel.Body().Append(ir.NewBarrier(ir.BarrierScopeWarp))
	kernel.Body().Append(ir.NewDealloc(alloc.Result(0)))
	kernel.Body().Append(ir.NewReturn())

	require.NoError(t, New().Lower(m))

	// The original kernel module stays abstract; a converted clone is
	// added next to it.
	kmods := m.KernelModules()
	require.Len(t, kmods, 2)
	assert.Same(t, km, kmods[0])
	assert.Equal(t, 1, countOf(kernel.Body(), ir.OpTypeBarrier))
	assert.Equal(t, 1, countOf(kernel.Body(), ir.OpTypeAlloc))

	clone := kmods[1]
	assert.True(t, strings.HasPrefix(clone.Name(), "kernels_spv_"))
	require.Len(t, clone.Kernels(), 1)
	body := clone.Kernels()[0].Body()
	assert.Equal(t, 0, countOf(body, ir.OpTypeBarrier))
	assert.Equal(t, 0, countOf(body, ir.OpTypeAlloc))
	assert.Equal(t, 0, countOf(body, ir.OpTypeDealloc))
	assert.Equal(t, 1, countOf(body, ir.OpTypeSPIRVControlBarrier))
	assert.Equal(t, 1, countOf(body, ir.OpTypeSPIRVVariable))

	barrier := func() *ir.Operation {
		var found *ir.Operation
		body.Walk(func(op *ir.Operation) {
			if op.OpType() == ir.OpTypeSPIRVControlBarrier {
				found = op
			}
		})
		return found
	}()
	require.NotNil(t, barrier)
	assert.Equal(t, ir.SPIRVScopeSubgroup, barrier.Attrs().String(ir.AttrExecutionScope))
}

func TestLowerCloneNamesAreUnique(t *testing.T) {
	m := ir.NewModule("test")
	km := m.NewKernelModule("kernels")
	km.Attrs()[ir.AttrExecRuntime] = ir.RuntimeVulkan
	km.NewKernel("k").Body().Append(ir.NewReturn())

	require.NoError(t, New().Lower(m))
	require.NoError(t, New().Lower(m))

	// Two rounds leave the original plus two distinctly named clones.
	// The second round also clones the first round's output; all names
	// stay distinct.
	seen := make(map[string]bool)
	for _, kmod := range m.KernelModules() {
		require.False(t, seen[kmod.Name()], "duplicate kernel module %q", kmod.Name())
		seen[kmod.Name()] = true
	}
	assert.GreaterOrEqual(t, len(seen), 3)
}
