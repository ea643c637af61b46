package affine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRender(t *testing.T) {
	dims := []string{"i", "j"}
	syms := []string{"tid"}

	assert.Equal(t, "42", Render(Constant(42), dims, syms))
	assert.Equal(t, "j", Render(Dim(1), dims, syms))
	assert.Equal(t, "tid", Render(Symbol(0), dims, syms))
	assert.Equal(t, "(i + (tid % 64))",
		Render(Add(Dim(0), Mod(Symbol(0), Constant(64))), dims, syms))
	assert.Equal(t, "(tid / 16)",
		Render(FloorDiv(Symbol(0), Constant(16)), dims, syms))
}

func TestRenderOutOfRangeKeepsPlaceholder(t *testing.T) {
	assert.Equal(t, "d2", Render(Dim(2), []string{"i"}, nil))
	assert.Equal(t, "s1", Render(Symbol(1), nil, []string{"tid"}))
}

func TestRenderMap(t *testing.T) {
	m := MakeMap(2, 1,
		Add(Dim(0), Symbol(0)),
		MulConst(Dim(1), 4))
	got := m.RenderMap([]string{"i", "j", "tid"})
	assert.Equal(t, []string{"(i + tid)", "(j * 4)"}, got)
}
