// Package rewrite provides the pattern-application machinery of the
// lowering stage: a Pattern interface, a Rewriter with the block-editing
// primitives patterns use, a greedy best-effort driver for simplification
// pre-passes, and a full-conversion driver that fails when an illegal
// operation cannot be rewritten.
package rewrite

import (
	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/Arslan-e-Mustafa/Accera/ir"
	"github.com/Arslan-e-Mustafa/Accera/types"
)

// ErrNoMatch is the distinguished failure of Pattern.MatchAndRewrite:
// the pattern does not apply to the operation. Drivers treat it as
// non-fatal; any other error is a hard pass failure.
var ErrNoMatch = errors.New("pattern did not match")

// MatchFailuref builds an ErrNoMatch carrying a diagnostic, attributed to
// the operation that failed to match.
func MatchFailuref(op *ir.Operation, format string, args ...any) error {
	return errors.Wrapf(ErrNoMatch, "%s: "+format, append([]any{op.OpType()}, args...)...)
}

// Pattern rewrites one operation kind into its lowered form.
//
// MatchAndRewrite returns nil once the operation was rewritten, an error
// wrapping ErrNoMatch when the pattern declines, and any other error for
// a hard failure.
type Pattern interface {
	MatchAndRewrite(op *ir.Operation, rw *Rewriter) error
}

// Rewriter carries the mutation primitives available to patterns and
// counts the rewrites applied.
type Rewriter struct {
	applied int
}

// Applied returns the number of rewrites performed through this
// rewriter.
func (rw *Rewriter) Applied() int { return rw.applied }

// InsertBefore places op immediately before ref in ref's block.
func (rw *Rewriter) InsertBefore(ref, op *ir.Operation) {
	ref.Block().InsertBefore(ref, op)
}

// InsertAfter places op immediately after ref in ref's block.
func (rw *Rewriter) InsertAfter(ref, op *ir.Operation) {
	ref.Block().InsertAfter(ref, op)
}

// Clone inserts a copy of op before ref and returns the copy.
func (rw *Rewriter) Clone(ref, op *ir.Operation) *ir.Operation {
	cloned := op.Clone()
	rw.InsertBefore(ref, cloned)
	return cloned
}

// EraseOp detaches op from its block. Uses of its results are left
// dangling; callers erase only ops whose results are unused or already
// replaced.
func (rw *Rewriter) EraseOp(op *ir.Operation) {
	op.Block().Remove(op)
	rw.applied++
}

// ReplaceOp inserts the replacement ops before old, redirects all uses of
// old's results to the results of the last replacement, and erases old.
func (rw *Rewriter) ReplaceOp(old *ir.Operation, replacements ...*ir.Operation) {
	for _, op := range replacements {
		rw.InsertBefore(old, op)
	}
	if len(replacements) > 0 {
		last := replacements[len(replacements)-1]
		rw.ReplaceAllUses(old, old.Results(), last.Results())
	}
	old.Block().Remove(old)
	rw.applied++
}

// ReplaceOpWithValues redirects all uses of old's results to the given
// values and erases old.
func (rw *Rewriter) ReplaceOpWithValues(old *ir.Operation, values ...*ir.Value) {
	rw.ReplaceAllUses(old, old.Results(), values)
	old.Block().Remove(old)
	rw.applied++
}

// ReplaceAllUses rewrites every operand in old's function that references
// one of the from values to the corresponding to value.
func (rw *Rewriter) ReplaceAllUses(old *ir.Operation, from, to []*ir.Value) {
	if len(from) == 0 {
		return
	}
	if len(from) != len(to) {
		klog.Errorf("ReplaceAllUses: %d old results but %d replacement values", len(from), len(to))
		return
	}
	fn := old.Func()
	if fn == nil {
		return
	}
	replacement := make(map[*ir.Value]*ir.Value, len(from))
	for i, f := range from {
		replacement[f] = to[i]
	}
	fn.Walk(func(op *ir.Operation) {
		for i, operand := range op.Operands() {
			if newV, ok := replacement[operand]; ok {
				op.SetOperand(i, newV)
			}
		}
	})
}

// Scope is the IR region a driver runs over: the whole module, or a
// single kernel module (the SPIR-V pipeline converts cloned kernel
// modules in place). Both ir.Module and ir.KernelModule satisfy it.
type Scope interface {
	Name() string
	Walk(func(*ir.Operation))
}

const maxGreedyIterations = 16

// ApplyGreedily repeatedly applies the patterns over the scope until a
// fixed point. It is best effort: hard pattern errors are logged and
// skipped, since greedy application is used for simplification
// pre-passes that are not required for correctness. Returns the number
// of rewrites applied.
func ApplyGreedily(scope Scope, patterns []Pattern) int {
	rw := &Rewriter{}
	for iter := 0; iter < maxGreedyIterations; iter++ {
		before := rw.applied
		var worklist []*ir.Operation
		scope.Walk(func(op *ir.Operation) { worklist = append(worklist, op) })
		for _, op := range worklist {
			if op.Block() == nil {
				continue // erased by an earlier rewrite this round
			}
			for _, p := range patterns {
				err := p.MatchAndRewrite(op, rw)
				if err == nil {
					break
				}
				if !errors.Is(err, ErrNoMatch) {
					klog.Warningf("greedy rewrite of %s failed: %v", op.OpType(), err)
				}
			}
		}
		if rw.applied == before {
			break
		}
	}
	klog.V(1).Infof("greedy driver applied %d rewrites on %q", rw.applied, scope.Name())
	return rw.applied
}

// Target is the legal-operation contract of one backend pipeline.
type Target struct {
	// Illegal operations must be rewritten away by the conversion.
	Illegal types.Set[ir.OpType]
	// Legal is the full set of operations allowed in the converted
	// module.
	Legal types.Set[ir.OpType]
}

// IsIllegal reports whether the operation must be converted.
func (t Target) IsIllegal(op *ir.Operation) bool {
	return t.Illegal.Has(op.OpType())
}

// Verify checks that no operation outside the legal set remains in the
// scope.
func (t Target) Verify(scope Scope) error {
	var bad *ir.Operation
	scope.Walk(func(op *ir.Operation) {
		if bad == nil && !t.Legal.Has(op.OpType()) {
			bad = op
		}
	})
	if bad != nil {
		return errors.Errorf("operation %s remains after conversion but is not in the backend's legal set", bad.OpType())
	}
	return nil
}

const maxConversionIterations = 64

// ApplyFullConversion rewrites the scope until no illegal operation
// remains, then verifies the result against the target's legal set. An
// illegal operation that no pattern converts fails the conversion with
// the last match-failure diagnostic for that operation.
func ApplyFullConversion(scope Scope, target Target, patterns []Pattern) error {
	rw := &Rewriter{}
	for iter := 0; iter < maxConversionIterations; iter++ {
		var worklist []*ir.Operation
		scope.Walk(func(op *ir.Operation) {
			if target.IsIllegal(op) {
				worklist = append(worklist, op)
			}
		})
		if len(worklist) == 0 {
			klog.V(1).Infof("full conversion of %q applied %d rewrites", scope.Name(), rw.applied)
			return target.Verify(scope)
		}
		before := rw.applied
		var failedOp *ir.Operation
		var failure error
		for _, op := range worklist {
			if op.Block() == nil {
				continue
			}
			converted := false
			var lastErr error
			for _, p := range patterns {
				err := p.MatchAndRewrite(op, rw)
				if err == nil {
					converted = true
					break
				}
				if errors.Is(err, ErrNoMatch) {
					lastErr = err
					continue
				}
				return errors.Wrapf(err, "converting %s", op.OpType())
			}
			if !converted && failedOp == nil {
				failedOp = op
				failure = lastErr
			}
		}
		if rw.applied == before {
			if failedOp == nil {
				// Illegal ops remain but all were detached mid-round.
				continue
			}
			if failure != nil {
				return errors.Wrapf(failure, "failed to legalize operation %s", failedOp.OpType())
			}
			return errors.Errorf("failed to legalize operation %s: no pattern matched", failedOp.OpType())
		}
	}
	return errors.Errorf("conversion of %q did not converge", scope.Name())
}
