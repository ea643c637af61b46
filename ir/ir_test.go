package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModuleSymbols(t *testing.T) {
	m := NewModule("test")
	host := m.NewFunc("run_matmul")
	km := m.NewKernelModule("run_matmul_module")
	kernel := km.NewKernel("kernel_fn")

	require.Same(t, host, m.LookupFunc("run_matmul"))
	require.Same(t, kernel, m.LookupFunc("kernel_fn"))
	require.Nil(t, m.LookupFunc("missing"))
	require.Equal(t, FuncKernel, kernel.Kind())
	require.Equal(t, []*Function{kernel}, m.Kernels())

	kernel.SetName("kernel_fn_renamed")
	require.Nil(t, m.LookupFunc("kernel_fn"))
	require.Same(t, kernel, m.LookupFunc("kernel_fn_renamed"))
}

func TestBlockEditing(t *testing.T) {
	m := NewModule("test")
	f := m.NewFunc("f")
	body := f.Body()

	a := NewConstantIndex(1)
	b := NewConstantIndex(2)
	ret := NewReturn()
	body.Append(a)
	body.Append(ret)
	body.InsertBefore(ret, b)

	require.Equal(t, []*Operation{a, b, ret}, body.Ops())
	require.Same(t, ret, body.Terminator())

	c := NewConstantIndex(3)
	body.InsertAfter(a, c)
	require.Equal(t, []*Operation{a, c, b, ret}, body.Ops())

	body.Remove(c)
	require.Equal(t, []*Operation{a, b, ret}, body.Ops())
	require.Nil(t, c.Block())
}

func TestAncestors(t *testing.T) {
	m := NewModule("test")
	f := m.NewFunc("f")
	outer := NewAffineIf()
	f.Body().Append(outer)
	inner := NewIf(NewConstantIndex(0).Result(0))
	outer.Regions()[0].Append(inner)
	barrier := NewBarrier(BarrierScopeBlock)
	inner.Regions()[0].Append(barrier)

	require.Same(t, inner, barrier.ParentOp())
	require.Same(t, outer, inner.ParentOp())
	require.Nil(t, outer.ParentOp())
	require.True(t, outer.IsAncestorOf(barrier))
	require.True(t, inner.IsAncestorOf(barrier))
	require.False(t, inner.IsAncestorOf(outer))
	require.Same(t, f, barrier.Func())

	var visited []OpType
	f.Walk(func(op *Operation) { visited = append(visited, op.OpType()) })
	assert.Equal(t, []OpType{OpTypeAffineIf, OpTypeIf, OpTypeBarrier}, visited)
}

func TestCloneIsDeep(t *testing.T) {
	cond := NewAffineIf()
	barrier := NewBarrier(BarrierScopeWarp)
	cond.Regions()[0].Append(barrier)

	clone := cond.Clone()
	require.NotSame(t, cond, clone)
	require.Len(t, clone.Regions(), 1)
	require.Len(t, clone.Regions()[0].Ops(), 1)
	require.NotSame(t, barrier, clone.Regions()[0].Ops()[0])
	require.Equal(t, BarrierScopeWarp, clone.Regions()[0].Ops()[0].Attrs()[AttrScope])

	// Mutating the clone's attributes must not leak into the original.
	clone.Regions()[0].Ops()[0].Attrs()[AttrScope] = BarrierScopeBlock
	require.Equal(t, BarrierScopeWarp, barrier.Attrs()[AttrScope])
}

func TestForLoopStructure(t *testing.T) {
	init := NewConstantFloat(DTypeFloat32, 0)
	vec := NewVectorBroadcast(init.Result(0), 4)
	loop := NewFor(0, 16, 1, vec.Result(0))

	require.Len(t, loop.Results(), 1)
	require.Equal(t, Vector(DTypeFloat32, 4), loop.Result(0).Type())
	require.Equal(t, Scalar(DTypeIndex), ForInductionVar(loop).Type())
	require.Len(t, ForIterArgs(loop), 1)
	require.Equal(t, int64(16), loop.Attrs()[AttrUpperBound])
}

func TestDimIndex(t *testing.T) {
	require.Equal(t, 0, DimIndex("x"))
	require.Equal(t, 1, DimIndex("y"))
	require.Equal(t, 2, DimIndex("z"))
	require.Equal(t, -1, DimIndex("w"))
	require.Equal(t, -1, DimIndex(""))
}

func TestCountOps(t *testing.T) {
	m := NewModule("test")
	km := m.NewKernelModule("kmod")
	k := km.NewKernel("k")
	k.Body().Append(NewBarrier(BarrierScopeBlock))
	k.Body().Append(NewBarrier(BarrierScopeBlock))
	k.Body().Append(NewReturn())

	require.Equal(t, 3, m.CountOps(nil))
	require.Equal(t, 2, m.CountOps(func(op *Operation) bool { return op.OpType() == OpTypeBarrier }))
}
