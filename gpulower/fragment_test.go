package gpulower

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Arslan-e-Mustafa/Accera/ir"
	"github.com/Arslan-e-Mustafa/Accera/ir/affine"
	"github.com/Arslan-e-Mustafa/Accera/rewrite"
)

// identityAccess is the trivial row/column access map of a fragment op
// addressing the matrix tile at its operand indices.
var identityAccess = affine.MakeMap(2, 0, affine.Dim(0), affine.Dim(1))

func TestInputLayoutMapA(t *testing.T) {
	// Composed signature: dims are the tile base, symbols are
	// [element index, thread x, thread y, block-dim x].
	m, err := inputLayoutMap(ir.RoleA, 64, 16)
	require.NoError(t, err)
	require.Equal(t, 2, m.NumDims)
	require.Equal(t, 4, m.NumSymbols)

	// Lane 0, element 0 addresses the tile origin.
	got, err := m.Eval([]int64{0, 0}, []int64{0, 0, 0, 64})
	require.NoError(t, err)
	assert.Equal(t, []int64{0, 0}, got)

	// Lane 5 sits in warp row 5, set 0.
	got, err = m.Eval([]int64{0, 0}, []int64{0, 5, 0, 64})
	require.NoError(t, err)
	assert.Equal(t, []int64{5, 0}, got)

	// Lane 17 decomposes into row 1, set 1; element 2 advances the
	// reduction axis by 2*(64/16).
	got, err = m.Eval([]int64{0, 0}, []int64{2, 17, 0, 64})
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 9}, got)

	// The tile base shifts both coordinates.
	got, err = m.Eval([]int64{10, 20}, []int64{0, 5, 0, 64})
	require.NoError(t, err)
	assert.Equal(t, []int64{15, 20}, got)
}

func TestInputLayoutMapBIsTransposed(t *testing.T) {
	a, err := inputLayoutMap(ir.RoleA, 64, 16)
	require.NoError(t, err)
	b, err := inputLayoutMap(ir.RoleB, 64, 16)
	require.NoError(t, err)

	syms := []int64{3, 21, 0, 64}
	ra, err := a.Eval([]int64{0, 0}, syms)
	require.NoError(t, err)
	rb, err := b.Eval([]int64{0, 0}, syms)
	require.NoError(t, err)
	assert.Equal(t, []int64{ra[1], ra[0]}, rb)
}

func TestAccumulatorLayoutMap(t *testing.T) {
	m := accumulatorLayoutMap(64, 16)
	require.Equal(t, 2, m.NumDims)
	require.Equal(t, 4, m.NumSymbols)

	// Lane 5 owns column 5; its first element group starts at row 0.
	got, err := m.Eval([]int64{0, 0}, []int64{0, 5, 0, 64})
	require.NoError(t, err)
	assert.Equal(t, []int64{0, 5}, got)

	// Element 5 wraps into the second group: one row into the group,
	// one leading-dim stride across.
	got, err = m.Eval([]int64{0, 0}, []int64{5, 5, 0, 64})
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 21}, got)

	// Lane 21 is row set 1: rows start at 4.
	got, err = m.Eval([]int64{0, 0}, []int64{0, 21, 0, 64})
	require.NoError(t, err)
	assert.Equal(t, []int64{4, 5}, got)
}

func TestFragmentLayoutRejectsBadShapes(t *testing.T) {
	kernel := sizedKernel(t, &[3]int64{64, 1, 1}, nil)

	newLoad := func(ft ir.FragmentType) *ir.Operation {
		memref := ir.NewAlloc(ir.Memref(ft.DType, 64, 64), "")
		kernel.Body().Append(memref)
		i0 := ir.NewConstantIndex(0)
		kernel.Body().Append(i0)
		op := ir.NewMFMALoad(ft, identityAccess, memref.Result(0), i0.Result(0), i0.Result(0))
		kernel.Body().Append(op)
		return op
	}

	t.Run("sub-blocked narrow tile is accepted", func(t *testing.T) {
		op := newLoad(ir.FragmentType{
			Shape: ir.Shape2x2x16, Role: ir.RoleC, DType: ir.DTypeFloat32,
			LeadingDim: 16, NumBlocks: 4,
		})
		rw := &rewrite.Rewriter{}
		require.NoError(t, FragmentLoadToROCDLPattern{}.MatchAndRewrite(op, rw))
	})

	t.Run("indivisible sub-block count is rejected", func(t *testing.T) {
		op := newLoad(ir.FragmentType{
			Shape: ir.Shape2x2x16, Role: ir.RoleC, DType: ir.DTypeFloat32,
			LeadingDim: 16, NumBlocks: 3,
		})
		rw := &rewrite.Rewriter{}
		err := FragmentLoadToROCDLPattern{}.MatchAndRewrite(op, rw)
		require.ErrorIs(t, err, rewrite.ErrNoMatch)
		// Rejected before any code was emitted.
		assert.Same(t, op, kernel.Body().Ops()[len(kernel.Body().Ops())-1])
	})
}

func TestFragmentLoadLowering(t *testing.T) {
	ft := ir.FragmentType{
		Shape: ir.Shape4x16x64, Role: ir.RoleA, DType: ir.DTypeFloat32,
		LeadingDim: 16, NumBlocks: 1,
	}
	kernel := sizedKernel(t, &[3]int64{64, 1, 1}, nil)
	memref := ir.NewAlloc(ir.Memref(ir.DTypeFloat32, 64, 64), "")
	kernel.Body().Append(memref)
	i0 := ir.NewConstantIndex(0)
	kernel.Body().Append(i0)
	op := ir.NewMFMALoad(ft, identityAccess, memref.Result(0), i0.Result(0), i0.Result(0))
	kernel.Body().Append(op)

	rw := &rewrite.Rewriter{}
	require.NoError(t, FragmentLoadToROCDLPattern{}.MatchAndRewrite(op, rw))

	// alloc, index, thread reads, zero splat seed, gather loop.
	ops := kernel.Body().Ops()
	require.Len(t, ops, 8)
	assert.Equal(t, ir.OpTypeRawThreadID, ops[2].OpType())
	assert.Equal(t, ir.OpTypeRawThreadID, ops[3].OpType())
	assert.Equal(t, ir.OpTypeRawBlockDim, ops[4].OpType())
	assert.Equal(t, ir.OpTypeConstantFloat, ops[5].OpType())
	assert.Equal(t, ir.OpTypeVectorBroadcast, ops[6].OpType())
	loop := ops[7]
	require.Equal(t, ir.OpTypeFor, loop.OpType())

	ub, _ := loop.Attrs().Int(ir.AttrUpperBound)
	assert.EqualValues(t, ft.ThreadTileSize(), ub)
	step, _ := loop.Attrs().Int(ir.AttrStep)
	assert.EqualValues(t, 1, step)

	body := loop.Regions()[0].Ops()
	require.Len(t, body, 4)
	assert.Equal(t, ir.OpTypeAffineApply, body[0].OpType())
	assert.Equal(t, ir.OpTypeLoad, body[1].OpType())
	assert.Equal(t, ir.OpTypeVectorInsert, body[2].OpType())
	assert.Equal(t, ir.OpTypeYield, body[3].OpType())

	// The composed address map reproduces the lane layout: lane 5,
	// element 0 reads row 5 of the tile.
	composed := ir.ApplyMap(body[0])
	got, err := composed.Eval([]int64{0, 0}, []int64{0, 5, 0, 64})
	require.NoError(t, err)
	assert.Equal(t, []int64{5, 0}, got)
}

func TestFragmentLoadWidensHalfAccumulator(t *testing.T) {
	ft := ir.FragmentType{
		Shape: ir.Shape4x16x64, Role: ir.RoleC, DType: ir.DTypeFloat16,
		LeadingDim: 16, NumBlocks: 1,
	}
	kernel := sizedKernel(t, &[3]int64{64, 1, 1}, nil)
	memref := ir.NewAlloc(ir.Memref(ir.DTypeFloat16, 64, 64), "")
	kernel.Body().Append(memref)
	i0 := ir.NewConstantIndex(0)
	kernel.Body().Append(i0)
	op := ir.NewMFMALoad(ft, identityAccess, memref.Result(0), i0.Result(0), i0.Result(0))
	kernel.Body().Append(op)

	rw := &rewrite.Rewriter{}
	require.NoError(t, FragmentLoadToROCDLPattern{}.MatchAndRewrite(op, rw))

	ops := kernel.Body().Ops()
	loop := ops[len(ops)-1]
	require.Equal(t, ir.OpTypeFor, loop.OpType())

	// The accumulator vector is f32 even though the matrix is f16.
	zero := ops[len(ops)-3]
	require.Equal(t, ir.OpTypeConstantFloat, zero.OpType())
	assert.Equal(t, ir.DTypeFloat32, zero.Result(0).Type().DType)

	body := loop.Regions()[0].Ops()
	require.Len(t, body, 5)
	assert.Equal(t, ir.OpTypeFPExt, body[2].OpType())
}

func TestFragmentStoreLowering(t *testing.T) {
	ft := ir.FragmentType{
		Shape: ir.Shape4x16x64, Role: ir.RoleC, DType: ir.DTypeFloat16,
		LeadingDim: 16, NumBlocks: 1,
	}
	kernel := sizedKernel(t, &[3]int64{64, 1, 1}, nil)
	memref := ir.NewAlloc(ir.Memref(ir.DTypeFloat16, 64, 64), "")
	kernel.Body().Append(memref)
	zero := ir.NewConstantFloat(ir.DTypeFloat32, 0)
	kernel.Body().Append(zero)
	vec := ir.NewVectorBroadcast(zero.Result(0), 16)
	kernel.Body().Append(vec)
	i0 := ir.NewConstantIndex(0)
	kernel.Body().Append(i0)
	op := ir.NewMFMAStore(ft, identityAccess, vec.Result(0), memref.Result(0), i0.Result(0), i0.Result(0))
	kernel.Body().Append(op)

	rw := &rewrite.Rewriter{}
	require.NoError(t, FragmentStoreToROCDLPattern{}.MatchAndRewrite(op, rw))

	ops := kernel.Body().Ops()
	loop := ops[len(ops)-1]
	require.Equal(t, ir.OpTypeFor, loop.OpType())
	assert.Empty(t, loop.Operands(), "a store loop carries no values")

	// Extracted f32 lanes truncate back to the matrix precision.
	body := loop.Regions()[0].Ops()
	require.Len(t, body, 4)
	assert.Equal(t, ir.OpTypeAffineApply, body[0].OpType())
	assert.Equal(t, ir.OpTypeVectorExtract, body[1].OpType())
	assert.Equal(t, ir.OpTypeFPTrunc, body[2].OpType())
	assert.Equal(t, ir.OpTypeStore, body[3].OpType())
}

func TestFragmentConstantLowering(t *testing.T) {
	ft := ir.FragmentType{
		Shape: ir.Shape2x32x64, Role: ir.RoleC, DType: ir.DTypeFloat32,
		LeadingDim: 32, NumBlocks: 1,
	}
	kernel := sizedKernel(t, &[3]int64{64, 1, 1}, nil)
	fill := ir.NewConstantFloat(ir.DTypeFloat32, 0)
	kernel.Body().Append(fill)
	op := ir.NewMFMAConstant(ft, fill.Result(0))
	kernel.Body().Append(op)

	rw := &rewrite.Rewriter{}
	require.NoError(t, FragmentConstantToROCDLPattern{}.MatchAndRewrite(op, rw))

	ops := kernel.Body().Ops()
	require.Len(t, ops, 2)
	require.Equal(t, ir.OpTypeVectorBroadcast, ops[1].OpType())
	assert.EqualValues(t, 32, ops[1].Result(0).Type().Lanes)
	assert.Same(t, fill.Result(0), ops[1].Operands()[0])
}
