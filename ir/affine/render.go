package affine

import (
	"fmt"
	"strconv"
)

// Render formats e as C-style index arithmetic, substituting the given
// names for dimension and symbol inputs. Floordiv and mod render as the
// C operators, which agree with the affine semantics for the
// non-negative indices the lowering produces. Out-of-range inputs keep
// their placeholder spelling.
func Render(e Expr, dims, syms []string) string {
	switch x := e.(type) {
	case constExpr:
		return strconv.FormatInt(x.value, 10)
	case dimExpr:
		if x.pos < len(dims) {
			return dims[x.pos]
		}
		return fmt.Sprintf("d%d", x.pos)
	case symbolExpr:
		if x.pos < len(syms) {
			return syms[x.pos]
		}
		return fmt.Sprintf("s%d", x.pos)
	case binExpr:
		lhs := Render(x.lhs, dims, syms)
		rhs := Render(x.rhs, dims, syms)
		var op string
		switch x.kind {
		case binAdd:
			op = "+"
		case binMul:
			op = "*"
		case binFloorDiv:
			op = "/"
		case binMod:
			op = "%"
		}
		return "(" + lhs + " " + op + " " + rhs + ")"
	}
	return e.String()
}

// RenderMap formats every result of m with the given input names.
func (m Map) RenderMap(inputs []string) []string {
	dims := inputs[:min(m.NumDims, len(inputs))]
	var syms []string
	if len(inputs) > m.NumDims {
		syms = inputs[m.NumDims:]
	}
	out := make([]string, 0, len(m.Exprs))
	for _, e := range m.Exprs {
		out = append(out, Render(e, dims, syms))
	}
	return out
}
