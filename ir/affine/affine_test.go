package affine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConstantFolding(t *testing.T) {
	require.Equal(t, Constant(7), Add(Constant(3), Constant(4)))
	require.Equal(t, Constant(12), Mul(Constant(3), Constant(4)))
	require.Equal(t, Constant(2), FloorDiv(Constant(11), Constant(4)))
	require.Equal(t, Constant(3), Mod(Constant(11), Constant(4)))

	// Identities.
	d0 := Dim(0)
	require.Equal(t, d0, Add(d0, Constant(0)))
	require.Equal(t, d0, Mul(d0, Constant(1)))
	require.Equal(t, Constant(0), Mul(d0, Constant(0)))
	require.Equal(t, d0, FloorDiv(d0, Constant(1)))
	require.Equal(t, Constant(0), Mod(d0, Constant(1)))
}

func TestFloorSemantics(t *testing.T) {
	// floordiv rounds towards negative infinity, mod is non-negative for
	// positive divisors.
	require.EqualValues(t, -3, floorDiv(-11, 4))
	require.EqualValues(t, 2, floorDiv(11, 4))
	require.EqualValues(t, 1, floorMod(-11, 4))
	require.EqualValues(t, 3, floorMod(11, 4))
}

func TestEval(t *testing.T) {
	// (d0*16 + s0 mod 64) floordiv 4
	e := FloorDiv(Add(MulConst(Dim(0), 16), Mod(Symbol(0), Constant(64))), Constant(4))
	require.EqualValues(t, (2*16+70%64)/4, e.Eval([]int64{2}, []int64{70}))

	m := MakeMap(1, 1, e, AddConst(Dim(0), 1))
	results, err := m.Eval([]int64{2}, []int64{70})
	require.NoError(t, err)
	require.Equal(t, []int64{9, 3}, results)

	_, err = m.Eval([]int64{2}, nil)
	require.Error(t, err)
}

func TestCompose(t *testing.T) {
	// outer: (d0, d1)[s0] -> (d0 + s0, d1*2)
	outer := MakeMap(2, 1, Add(Dim(0), Symbol(0)), MulConst(Dim(1), 2))
	// inner: (d0)[s0] -> (d0 + 3, s0)
	inner := MakeMap(1, 1, AddConst(Dim(0), 3), Symbol(0))

	composed, err := outer.Compose(inner)
	require.NoError(t, err)
	require.Equal(t, 1, composed.NumDims)
	// Outer's symbols come first, then inner's.
	require.Equal(t, 2, composed.NumSymbols)

	// composed(d0)[s0, s1] = ((d0+3) + s0, s1*2)
	results, err := composed.Eval([]int64{10}, []int64{100, 7})
	require.NoError(t, err)
	require.Equal(t, []int64{113, 14}, results)

	// Arity mismatch must be rejected.
	_, err = outer.Compose(MakeMap(1, 0, Dim(0)))
	require.Error(t, err)
}

func TestComposeIsPure(t *testing.T) {
	outer := MakeMap(1, 1, Add(Dim(0), Symbol(0)))
	inner := MakeMap(1, 0, MulConst(Dim(0), 4))
	before := outer.String()
	_, err := outer.Compose(inner)
	require.NoError(t, err)
	require.Equal(t, before, outer.String(), "composition must not mutate the outer map")
}

func TestString(t *testing.T) {
	m := MakeMap(2, 1, Add(Dim(0), Symbol(0)), Dim(1))
	require.Equal(t, "(d0, d1)[s0] -> ((d0 + s0), d1)", m.String())
}
