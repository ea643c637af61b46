package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Arslan-e-Mustafa/Accera/ir"
)

const gemmSpec = `{
  "name": "gemm",
  "runtime": "ROCm",
  "kernels": [
    {
      "name": "kernel_0",
      "blockSize": [64, 1, 1],
      "ops": [
        {"op": "threadId", "axis": "x"},
        {"op": "if", "then": [{"op": "barrier", "scope": "Block"}]}
      ]
    }
  ],
  "launchers": [
    {"name": "gemm", "wrapper": "launch_kernel_0", "kernel": "kernel_0"}
  ]
}`

func TestParseModuleSpec(t *testing.T) {
	spec, err := parseModuleSpec([]byte(gemmSpec))
	require.NoError(t, err)
	assert.Equal(t, "gemm", spec.Name)
	assert.Equal(t, "ROCm", spec.Runtime)
	require.Len(t, spec.Kernels, 1)
	require.Len(t, spec.Kernels[0].Ops, 2)
	assert.Equal(t, "if", spec.Kernels[0].Ops[1].Op)
}

func TestParseModuleSpecDefaults(t *testing.T) {
	spec, err := parseModuleSpec([]byte(`{"kernels": [{"name": "k", "ops": []}]}`))
	require.NoError(t, err)
	assert.Equal(t, "module", spec.Name)
}

func TestParseModuleSpecRejectsEmpty(t *testing.T) {
	_, err := parseModuleSpec([]byte(`{"name": "empty"}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no kernels")

	_, err = parseModuleSpec([]byte(`{not json`))
	require.Error(t, err)
}

func TestBuildModule(t *testing.T) {
	spec, err := parseModuleSpec([]byte(gemmSpec))
	require.NoError(t, err)
	m, err := buildModule(spec)
	require.NoError(t, err)

	rt, ok := m.Attrs().Runtime(ir.AttrExecRuntime)
	require.True(t, ok)
	assert.Equal(t, ir.RuntimeROCm, rt)

	require.Len(t, m.KernelModules(), 1)
	km := m.KernelModules()[0]
	assert.Equal(t, "gemm_kernels", km.Name())
	require.Len(t, km.Kernels(), 1)
	kernel := km.Kernels()[0]
	triple, ok := kernel.Attrs().IntTriple(ir.AttrBlockSize)
	require.True(t, ok)
	assert.Equal(t, [3]int64{64, 1, 1}, triple)

	// threadId, conditional with nested barrier, trailing terminator.
	body := kernel.Body().Ops()
	require.Len(t, body, 3)
	assert.Equal(t, ir.OpTypeThreadID, body[0].OpType())
	require.Equal(t, ir.OpTypeAffineIf, body[1].OpType())
	assert.Equal(t, ir.OpTypeBarrier, body[1].Regions()[0].Ops()[0].OpType())
	assert.Equal(t, ir.OpTypeReturn, body[2].OpType())

	// The launcher half: host entry calling the launch wrapper.
	require.Len(t, m.Funcs(), 2)
	host := m.LookupFunc("gemm")
	require.NotNil(t, host)
	assert.True(t, host.Attrs().Has(ir.AttrHeaderDecl))
	wrapper := m.LookupFunc("launch_kernel_0")
	require.NotNil(t, wrapper)
	launch := wrapper.Body().Ops()[len(wrapper.Body().Ops())-2]
	assert.Equal(t, ir.OpTypeLaunchFunc, launch.OpType())
	assert.Equal(t, "kernel_0", launch.Attrs().String(ir.AttrKernel))
}

func TestBuildModuleRejectsUnknowns(t *testing.T) {
	spec := &moduleSpec{
		Name:    "m",
		Kernels: []kernelSpec{{Name: "k", Ops: []opSpec{{Op: "shuffle"}}}},
	}
	_, err := buildModule(spec)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown operation "shuffle"`)

	spec = &moduleSpec{
		Name:    "m",
		Runtime: "Metal",
		Kernels: []kernelSpec{{Name: "k"}},
	}
	_, err = buildModule(spec)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown runtime "Metal"`)

	spec = &moduleSpec{
		Name:      "m",
		Kernels:   []kernelSpec{{Name: "k"}},
		Launchers: []launcherSpec{{Name: "l", Wrapper: "w", Kernel: "missing"}},
	}
	_, err = buildModule(spec)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown kernel "missing"`)
}
