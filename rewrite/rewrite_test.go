package rewrite

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/Arslan-e-Mustafa/Accera/ir"
	"github.com/Arslan-e-Mustafa/Accera/types"
)

// barrierToSync is a toy pattern for driver tests: it rewrites a Barrier
// into a SyncThreads.
type barrierToSync struct{}

func (barrierToSync) MatchAndRewrite(op *ir.Operation, rw *Rewriter) error {
	if op.OpType() != ir.OpTypeBarrier {
		return ErrNoMatch
	}
	rw.ReplaceOp(op, ir.NewOperation(ir.OpTypeSyncThreads, ir.Type{}, 0))
	return nil
}

// neverMatches declines everything with a diagnostic.
type neverMatches struct{}

func (neverMatches) MatchAndRewrite(op *ir.Operation, _ *Rewriter) error {
	return MatchFailuref(op, "unhandled operation")
}

func buildKernelWithBarriers(n int) *ir.Module {
	m := ir.NewModule("test")
	km := m.NewKernelModule("kmod")
	k := km.NewKernel("k")
	for i := 0; i < n; i++ {
		k.Body().Append(ir.NewBarrier(ir.BarrierScopeBlock))
	}
	k.Body().Append(ir.NewReturn())
	return m
}

func TestMatchFailuref(t *testing.T) {
	op := ir.NewBarrier(ir.BarrierScopeBlock)
	err := MatchFailuref(op, "unhandled barrier scope")
	require.ErrorIs(t, err, ErrNoMatch)
	require.Contains(t, err.Error(), "unhandled barrier scope")
	require.Contains(t, err.Error(), "Barrier")
}

func TestApplyGreedily(t *testing.T) {
	m := buildKernelWithBarriers(3)
	applied := ApplyGreedily(m, []Pattern{barrierToSync{}})
	require.Equal(t, 3, applied)
	require.Zero(t, m.CountOps(func(op *ir.Operation) bool { return op.OpType() == ir.OpTypeBarrier }))
	require.Equal(t, 3, m.CountOps(func(op *ir.Operation) bool { return op.OpType() == ir.OpTypeSyncThreads }))

	// Fixed point: re-running is a no-op.
	require.Zero(t, ApplyGreedily(m, []Pattern{barrierToSync{}}))
}

func TestReplaceOpRedirectsUses(t *testing.T) {
	m := ir.NewModule("test")
	f := m.NewFunc("f")
	cst := ir.NewConstantIndex(7)
	cast := ir.NewIndexCast(cst.Result(0), ir.Scalar(ir.DTypeInt32))
	f.Body().Append(cst)
	f.Body().Append(cast)
	f.Body().Append(ir.NewReturn(cast.Result(0)))

	rw := &Rewriter{}
	replacement := ir.NewConstantIndex(8)
	rw.ReplaceOp(cst, replacement)

	require.Same(t, replacement.Result(0), cast.Operands()[0])
	require.Equal(t, 1, rw.Applied())
}

func TestFullConversionSucceeds(t *testing.T) {
	m := buildKernelWithBarriers(2)
	target := Target{
		Illegal: types.SetWith(ir.OpTypeBarrier),
		Legal:   types.SetWith(ir.OpTypeSyncThreads, ir.OpTypeReturn),
	}
	require.NoError(t, ApplyFullConversion(m, target, []Pattern{barrierToSync{}}))
	require.Zero(t, m.CountOps(func(op *ir.Operation) bool { return op.OpType() == ir.OpTypeBarrier }))
}

func TestFullConversionReportsUnconvertible(t *testing.T) {
	m := buildKernelWithBarriers(1)
	target := Target{
		Illegal: types.SetWith(ir.OpTypeBarrier),
		Legal:   types.SetWith(ir.OpTypeReturn),
	}
	err := ApplyFullConversion(m, target, []Pattern{neverMatches{}})
	require.Error(t, err)
	require.ErrorIs(t, errors.Cause(err), ErrNoMatch)
	require.Contains(t, err.Error(), "failed to legalize")
}

func TestFullConversionVerifiesLegalSet(t *testing.T) {
	m := buildKernelWithBarriers(1)
	// SyncThreads deliberately missing from the legal set: conversion
	// applies but verification must flag the residue.
	target := Target{
		Illegal: types.SetWith(ir.OpTypeBarrier),
		Legal:   types.SetWith(ir.OpTypeReturn),
	}
	err := ApplyFullConversion(m, target, []Pattern{barrierToSync{}})
	require.Error(t, err)
	require.Contains(t, err.Error(), "not in the backend's legal set")
}
