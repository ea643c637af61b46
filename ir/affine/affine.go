// Package affine implements the closed-form integer index expressions used
// by the GPU lowering to describe per-lane memory addressing.
//
// An Expr is a pure value: dimensions (loop indices), symbols (lane id,
// warp coordinates, block dimensions) and integer-linear combinations of
// them, including floordiv and modulo. A Map bundles a list of result
// expressions with the number of dimension and symbol inputs it expects.
//
// Expressions are composed (outer layout map ∘ inner access map) before
// they are ever lowered to memory address arithmetic, so all operations
// here are referentially transparent: no constructor or method mutates an
// existing expression.
package affine

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Expr is an affine integer expression over dimension and symbol inputs.
type Expr interface {
	fmt.Stringer

	// Eval substitutes the given dimension and symbol values and reduces
	// the expression to an integer.
	Eval(dims, syms []int64) int64

	// replace substitutes dimension i with dimRepl[i] and renumbers symbol
	// j to Symbol(j+symShift). Used by Map.Compose.
	replace(dimRepl []Expr, symShift int) Expr
}

type constExpr struct {
	value int64
}

type dimExpr struct {
	pos int
}

type symbolExpr struct {
	pos int
}

type binKind int

const (
	binAdd binKind = iota
	binMul
	binFloorDiv
	binMod
)

type binExpr struct {
	kind binKind
	lhs  Expr
	rhs  Expr
}

// Constant returns the constant expression v.
func Constant(v int64) Expr { return constExpr{value: v} }

// Dim returns the i-th dimension input.
func Dim(i int) Expr { return dimExpr{pos: i} }

// Symbol returns the i-th symbol input.
func Symbol(i int) Expr { return symbolExpr{pos: i} }

// Add returns lhs+rhs, folding constants.
func Add(lhs, rhs Expr) Expr { return makeBin(binAdd, lhs, rhs) }

// Mul returns lhs*rhs, folding constants.
func Mul(lhs, rhs Expr) Expr { return makeBin(binMul, lhs, rhs) }

// FloorDiv returns lhs floordiv rhs (rounding towards negative infinity).
func FloorDiv(lhs, rhs Expr) Expr { return makeBin(binFloorDiv, lhs, rhs) }

// Mod returns lhs mod rhs. The result is always non-negative for a
// positive rhs, matching hardware index semantics.
func Mod(lhs, rhs Expr) Expr { return makeBin(binMod, lhs, rhs) }

// AddConst is shorthand for Add(lhs, Constant(v)).
func AddConst(lhs Expr, v int64) Expr { return Add(lhs, Constant(v)) }

// MulConst is shorthand for Mul(lhs, Constant(v)).
func MulConst(lhs Expr, v int64) Expr { return Mul(lhs, Constant(v)) }

func makeBin(kind binKind, lhs, rhs Expr) Expr {
	lc, lConst := lhs.(constExpr)
	rc, rConst := rhs.(constExpr)
	if lConst && rConst {
		return constExpr{value: evalBin(kind, lc.value, rc.value)}
	}
	switch kind {
	case binAdd:
		if lConst && lc.value == 0 {
			return rhs
		}
		if rConst && rc.value == 0 {
			return lhs
		}
	case binMul:
		if lConst && lc.value == 1 {
			return rhs
		}
		if rConst && rc.value == 1 {
			return lhs
		}
		if (lConst && lc.value == 0) || (rConst && rc.value == 0) {
			return constExpr{value: 0}
		}
	case binFloorDiv:
		if rConst && rc.value == 1 {
			return lhs
		}
	case binMod:
		if rConst && rc.value == 1 {
			return constExpr{value: 0}
		}
	}
	return binExpr{kind: kind, lhs: lhs, rhs: rhs}
}

func evalBin(kind binKind, lhs, rhs int64) int64 {
	switch kind {
	case binAdd:
		return lhs + rhs
	case binMul:
		return lhs * rhs
	case binFloorDiv:
		return floorDiv(lhs, rhs)
	case binMod:
		return floorMod(lhs, rhs)
	}
	panic("affine: unknown binary expression kind")
}

// floorDiv rounds towards negative infinity, unlike Go's native division.
func floorDiv(lhs, rhs int64) int64 {
	q := lhs / rhs
	if (lhs%rhs != 0) && ((lhs < 0) != (rhs < 0)) {
		q--
	}
	return q
}

func floorMod(lhs, rhs int64) int64 {
	m := lhs % rhs
	if m != 0 && ((m < 0) != (rhs < 0)) {
		m += rhs
	}
	return m
}

func (e constExpr) Eval(_, _ []int64) int64 { return e.value }
func (e constExpr) String() string          { return fmt.Sprintf("%d", e.value) }
func (e constExpr) replace([]Expr, int) Expr {
	return e
}

func (e dimExpr) Eval(dims, _ []int64) int64 { return dims[e.pos] }
func (e dimExpr) String() string             { return fmt.Sprintf("d%d", e.pos) }
func (e dimExpr) replace(dimRepl []Expr, _ int) Expr {
	if dimRepl == nil {
		return e
	}
	return dimRepl[e.pos]
}

func (e symbolExpr) Eval(_, syms []int64) int64 { return syms[e.pos] }
func (e symbolExpr) String() string             { return fmt.Sprintf("s%d", e.pos) }
func (e symbolExpr) replace(_ []Expr, symShift int) Expr {
	if symShift == 0 {
		return e
	}
	return symbolExpr{pos: e.pos + symShift}
}

func (e binExpr) Eval(dims, syms []int64) int64 {
	return evalBin(e.kind, e.lhs.Eval(dims, syms), e.rhs.Eval(dims, syms))
}

func (e binExpr) String() string {
	var op string
	switch e.kind {
	case binAdd:
		op = "+"
	case binMul:
		op = "*"
	case binFloorDiv:
		op = "floordiv"
	case binMod:
		op = "mod"
	}
	return fmt.Sprintf("(%s %s %s)", e.lhs, op, e.rhs)
}

func (e binExpr) replace(dimRepl []Expr, symShift int) Expr {
	return makeBin(e.kind, e.lhs.replace(dimRepl, symShift), e.rhs.replace(dimRepl, symShift))
}

// Map is an affine map from (dims..., syms...) to a tuple of index
// expressions.
type Map struct {
	NumDims    int
	NumSymbols int
	Exprs      []Expr
}

// MakeMap builds a Map after sanity-checking the signature.
func MakeMap(numDims, numSymbols int, exprs ...Expr) Map {
	return Map{NumDims: numDims, NumSymbols: numSymbols, Exprs: exprs}
}

// NumResults returns the number of result expressions of the map.
func (m Map) NumResults() int { return len(m.Exprs) }

// NumInputs returns the total number of dimension and symbol inputs.
func (m Map) NumInputs() int { return m.NumDims + m.NumSymbols }

// IsEmpty reports whether m carries no result expressions, i.e. it is the
// zero Map value.
func (m Map) IsEmpty() bool { return len(m.Exprs) == 0 }

// Compose returns the map m ∘ inner: first inner is applied to the inputs,
// then m is applied to inner's results. inner must produce exactly
// m.NumDims results. The composed map has inner's dimensions, and its
// symbol list is m's symbols followed by inner's symbols.
func (m Map) Compose(inner Map) (Map, error) {
	if inner.NumResults() != m.NumDims {
		return Map{}, errors.Errorf("affine map composition mismatch: outer expects %d dims, inner produces %d results",
			m.NumDims, inner.NumResults())
	}
	// Renumber inner's symbols to come after m's.
	dimRepl := make([]Expr, inner.NumResults())
	for i, e := range inner.Exprs {
		dimRepl[i] = e.replace(nil, m.NumSymbols)
	}
	exprs := make([]Expr, m.NumResults())
	for i, e := range m.Exprs {
		exprs[i] = e.replace(dimRepl, 0)
	}
	return Map{
		NumDims:    inner.NumDims,
		NumSymbols: m.NumSymbols + inner.NumSymbols,
		Exprs:      exprs,
	}, nil
}

// Eval evaluates all result expressions for the given inputs.
func (m Map) Eval(dims, syms []int64) ([]int64, error) {
	if len(dims) != m.NumDims || len(syms) != m.NumSymbols {
		return nil, errors.Errorf("affine map evaluation expects %d dims and %d symbols, got %d and %d",
			m.NumDims, m.NumSymbols, len(dims), len(syms))
	}
	results := make([]int64, m.NumResults())
	for i, e := range m.Exprs {
		results[i] = e.Eval(dims, syms)
	}
	return results, nil
}

// String renders the map in the usual (d0, d1)[s0] -> (...) notation.
func (m Map) String() string {
	var sb strings.Builder
	sb.WriteByte('(')
	for i := 0; i < m.NumDims; i++ {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "d%d", i)
	}
	sb.WriteByte(')')
	if m.NumSymbols > 0 {
		sb.WriteByte('[')
		for i := 0; i < m.NumSymbols; i++ {
			if i > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "s%d", i)
		}
		sb.WriteByte(']')
	}
	sb.WriteString(" -> (")
	for i, e := range m.Exprs {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(e.String())
	}
	sb.WriteByte(')')
	return sb.String()
}
