package ir

import (
	"fmt"

	"github.com/pkg/errors"
)

// FragmentRole says which matrix operand a fragment holds.
type FragmentRole int

//go:generate go tool enumer -type=FragmentRole -trimprefix=Role -output=gen_fragmentrole_enumer.go fragment.go

const (
	// RoleA is the left-hand input operand.
	RoleA FragmentRole = iota
	// RoleB is the right-hand input operand.
	RoleB
	// RoleC is the accumulator operand.
	RoleC
)

// FragmentShape enumerates the supported warp-cooperative tile shapes.
// Each shape fixes the warp size it requires and the number of elements
// owned by one lane (the thread tile).
type FragmentShape int

//go:generate go tool enumer -type=FragmentShape -trimprefix=Shape -output=gen_fragmentshape_enumer.go fragment.go

const (
	ShapeInvalid FragmentShape = iota
	Shape4x16x64
	Shape2x32x64
	Shape4x4x32
	Shape2x2x16
)

type fragmentShapeInfo struct {
	threadTile int64
	warpSize   int64
}

var fragmentShapes = map[FragmentShape]fragmentShapeInfo{
	Shape4x16x64: {threadTile: 16, warpSize: 64},
	Shape2x32x64: {threadTile: 32, warpSize: 64},
	Shape4x4x32:  {threadTile: 16, warpSize: 64},
	Shape2x2x16:  {threadTile: 4, warpSize: 64},
}

// FragmentType describes one warp-distributed matrix fragment: the tile
// shape, the operand role, the element type, the leading dimension of the
// backing matrix and the number of hardware sub-blocks composing the
// tile.
type FragmentType struct {
	Shape      FragmentShape
	Role       FragmentRole
	DType      DType
	LeadingDim int64
	NumBlocks  int64
}

// ThreadTileSize returns the number of elements owned by a single lane,
// or 0 for an unknown shape.
func (ft FragmentType) ThreadTileSize() int64 {
	info, ok := fragmentShapes[ft.Shape]
	if !ok {
		return 0
	}
	return info.threadTile
}

// WarpSize returns the warp size the shape requires, or 0 for an unknown
// shape.
func (ft FragmentType) WarpSize() int64 {
	info, ok := fragmentShapes[ft.Shape]
	if !ok {
		return 0
	}
	return info.warpSize
}

// Validate checks the shape preconditions. The lowering calls this before
// computing any fragment address; a failing fragment is rejected without
// emitting code.
func (ft FragmentType) Validate() error {
	info, ok := fragmentShapes[ft.Shape]
	if !ok {
		return errors.Errorf("unhandled matrix shape %s", ft.Shape)
	}
	switch ft.Role {
	case RoleA, RoleB, RoleC:
	default:
		return errors.Errorf("unhandled matrix operand role %d", ft.Role)
	}
	if ft.DType != DTypeFloat16 && ft.DType != DTypeFloat32 {
		return errors.Errorf("fragment element type must be f16 or f32, got %s", ft.DType)
	}
	if ft.LeadingDim <= 0 {
		return errors.Errorf("fragment leading dimension must be positive, got %d", ft.LeadingDim)
	}
	if ft.NumBlocks <= 0 {
		return errors.Errorf("fragment sub-block count must be positive, got %d", ft.NumBlocks)
	}
	if info.threadTile%ft.NumBlocks != 0 {
		return errors.Errorf("thread tile size %d of shape %s is not divisible by %d sub-blocks",
			info.threadTile, ft.Shape, ft.NumBlocks)
	}
	if info.warpSize%ft.LeadingDim != 0 {
		return errors.Errorf("leading dimension %d does not divide warp size %d",
			ft.LeadingDim, info.warpSize)
	}
	return nil
}

func (ft FragmentType) String() string {
	return fmt.Sprintf("fragment<%s, %s, %s, ld=%d, blocks=%d>",
		ft.Shape, ft.Role, ft.DType, ft.LeadingDim, ft.NumBlocks)
}
