package prettyprint

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Arslan-e-Mustafa/Accera/ir"
)

func deviceModule(rt ir.Runtime) (*ir.Module, *ir.Function) {
	m := ir.NewModule("test")
	km := m.NewKernelModule("kernels")
	km.Attrs()[ir.AttrExecRuntime] = rt
	kernel := km.NewKernel("gemm__gpu__")
	kernel.Attrs()[ir.AttrBlockSize] = [3]int64{64, 1, 1}
	return m, kernel
}

func render(t *testing.T, m *ir.Module) (string, error) {
	t.Helper()
	var sb strings.Builder
	err := Print(&sb, m)
	return sb.String(), err
}

func TestPrintKernel(t *testing.T) {
	m, kernel := deviceModule(ir.RuntimeROCm)
	kernel.Attrs().SetUnit(ir.AttrHeaderDecl)
	kernel.Attrs().SetUnit(ir.AttrRawPointerAPI)
	kernel.Body().Append(ir.NewRawThreadID("x"))
	kernel.Body().Append(ir.NewSyncThreads())
	kernel.Body().Append(ir.NewReturn())

	out, err := render(t, m)
	require.NoError(t, err)

	// Prelude, declaration, then the definition.
	assert.Contains(t, out, "__HIP_PLATFORM_AMD__")
	assert.Contains(t, out, "using vfloatx16_t = float __attribute__((ext_vector_type(16)));")
	assert.Contains(t, out, `extern "C" __global__ __launch_bounds__(64) void gemm__gpu__();`)
	assert.Contains(t, out, "__syncthreads();")

	// The hardware read folds into the declared block extent.
	assert.Contains(t, out, "const size_t threadIdx_x_0 = (threadIdx.x % 64);")
}

func TestPrintDimQueries(t *testing.T) {
	m, kernel := deviceModule(ir.RuntimeCUDA)
	kernel.Attrs()[ir.AttrGridSize] = [3]int64{4, 2, 1}
	kernel.Body().Append(ir.NewRawBlockDim("x"))
	kernel.Body().Append(ir.NewRawGridDim("y"))
	kernel.Body().Append(ir.NewRawBlockID("x"))
	kernel.Body().Append(ir.NewRawThreadID("z"))
	kernel.Body().Append(ir.NewReturn())

	out, err := render(t, m)
	require.NoError(t, err)

	// Declared dimensions print as literals, ids fold modulo their
	// bound, and an axis without a declared bound reads the register.
	assert.Contains(t, out, "const size_t blockDim_x_0 = 64;")
	assert.Contains(t, out, "const size_t gridDim_y_0 = 2;")
	assert.Contains(t, out, "const size_t blockIdx_x_0 = (blockIdx.x % 4);")
	assert.Contains(t, out, "const size_t threadIdx_z_0 = (threadIdx.z % 1);")
}

func TestPrintLaunch(t *testing.T) {
	m, kernel := deviceModule(ir.RuntimeROCm)
	kernel.Body().Append(ir.NewReturn())

	host := m.NewFunc("gemm")
	var dims [6]*ir.Value
	for i := range dims {
		c := ir.NewConstantIndex(int64(i + 1))
		host.Body().Append(c)
		dims[i] = c.Result(0)
	}
	host.Body().Append(ir.NewLaunchFunc("gemm__gpu__",
		[3]*ir.Value{dims[0], dims[1], dims[2]},
		[3]*ir.Value{dims[3], dims[4], dims[5]}))
	host.Body().Append(ir.NewReturn())

	out, err := render(t, m)
	require.NoError(t, err)

	assert.Contains(t, out, "void gemm() {")
	assert.Contains(t, out, "gemm__gpu__<<<dim3(v0, v1, v2), dim3(v3, v4, v5)>>>();")
	assert.Contains(t, out, "return;")
}

func TestPrintFloatConstants(t *testing.T) {
	m, kernel := deviceModule(ir.RuntimeROCm)
	kernel.Body().Append(ir.NewConstantFloat(ir.DTypeFloat32, 0.5))
	kernel.Body().Append(ir.NewConstantFloat(ir.DTypeFloat16, 1.0))
	kernel.Body().Append(ir.NewReturn())

	out, err := render(t, m)
	require.NoError(t, err)

	assert.Contains(t, out, "const float v0 = 0.5f;")
	// Half constants round through their storage format.
	assert.Contains(t, out, "const vhalf v1 = (vhalf)1f;")
}

func TestPrintVectorOps(t *testing.T) {
	m, kernel := deviceModule(ir.RuntimeROCm)
	zero := ir.NewConstantFloat(ir.DTypeFloat32, 0)
	kernel.Body().Append(zero)
	vec := ir.NewVectorBroadcast(zero.Result(0), 16)
	kernel.Body().Append(vec)
	pos := ir.NewConstantIndex(3)
	kernel.Body().Append(pos)
	ins := ir.NewVectorInsert(zero.Result(0), vec.Result(0), pos.Result(0))
	kernel.Body().Append(ins)
	ext := ir.NewVectorExtract(ins.Result(0), pos.Result(0))
	kernel.Body().Append(ext)
	kernel.Body().Append(ir.NewReturn())

	out, err := render(t, m)
	require.NoError(t, err)

	assert.Contains(t, out, "vfloatx16_t v1 = v0;")
	// Insertion copies the vector then assigns the element.
	assert.Contains(t, out, "vfloatx16_t v3 = v1;")
	assert.Contains(t, out, "v3[v2] = v0;")
	assert.Contains(t, out, "const float v4 = v3[v2];")
}

func TestPrintLoopCarriesAccumulator(t *testing.T) {
	m, kernel := deviceModule(ir.RuntimeROCm)
	zero := ir.NewConstantFloat(ir.DTypeFloat32, 0)
	kernel.Body().Append(zero)
	seed := ir.NewVectorBroadcast(zero.Result(0), 4)
	kernel.Body().Append(seed)
	loop := ir.NewFor(0, 4, 1, seed.Result(0))
	body := loop.Regions()[0]
	iv := ir.ForInductionVar(loop)
	ins := ir.NewVectorInsert(zero.Result(0), ir.ForIterArgs(loop)[0], iv)
	body.Append(ins)
	body.Append(ir.NewYield(ins.Result(0)))
	kernel.Body().Append(loop)
	kernel.Body().Append(ir.NewReturn())

	out, err := render(t, m)
	require.NoError(t, err)

	assert.Contains(t, out, "vfloatx4_t acc0 = v1;")
	assert.Contains(t, out, "for (size_t idx0 = 0; idx0 < 4; idx0 += 1) {")
	// The yielded value is copied back into the carried variable.
	assert.Contains(t, out, "acc0 = v2;")
}

func TestPrintPlaceholderDiagnostics(t *testing.T) {
	m, kernel := deviceModule(ir.RuntimeROCm)
	kernel.Body().Append(ir.NewAffineIf())
	kernel.Body().Append(ir.NewSyncThreads())
	kernel.Body().Append(ir.NewReturn())

	out, err := render(t, m)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported operation AffineIf")

	// The diagnostic is embedded in the stream and rendering continues.
	assert.Contains(t, out, "<<unsupported operation AffineIf>>")
	assert.Contains(t, out, "__syncthreads();")
}

func TestPrintOddVectorWidthFails(t *testing.T) {
	m, kernel := deviceModule(ir.RuntimeROCm)
	zero := ir.NewConstantFloat(ir.DTypeFloat32, 0)
	kernel.Body().Append(zero)
	kernel.Body().Append(ir.NewVectorBroadcast(zero.Result(0), 3))
	kernel.Body().Append(ir.NewReturn())

	out, err := render(t, m)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a multiple of 2")
	assert.Contains(t, out, "<<")
}

func TestPrintMultiBlockKernelFails(t *testing.T) {
	m, kernel := deviceModule(ir.RuntimeROCm)
	kernel.Body().Append(ir.NewReturn())
	kernel.AddBlock().Append(ir.NewReturn())

	out, err := render(t, m)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "only single block functions supported")
	assert.Contains(t, out, "<<only single block functions supported>>")
}

func TestPrintRejectsUnsupportedRuntime(t *testing.T) {
	m, kernel := deviceModule(ir.RuntimeVulkan)
	kernel.Body().Append(ir.NewReturn())

	out, err := render(t, m)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is unsupported")
	assert.Empty(t, out, "rejection happens before any output")
}

func TestPrintSkipsHostOnlyModules(t *testing.T) {
	m := ir.NewModule("test")
	m.NewFunc("helper").Body().Append(ir.NewReturn())

	out, err := render(t, m)
	require.NoError(t, err)
	assert.Empty(t, out)
}
