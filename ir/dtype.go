package ir

import "fmt"

// DType enumerates the scalar element types the lowering handles.
// Fragment operations are restricted to Float16 and Float32.
type DType int

//go:generate go tool enumer -type=DType -trimprefix=DType -output=gen_dtype_enumer.go dtype.go

const (
	DTypeInvalid DType = iota
	DTypeIndex
	DTypeInt32
	DTypeFloat16
	DTypeFloat32
)

// IsFloat reports whether the dtype is one of the floating point types.
func (dt DType) IsFloat() bool {
	return dt == DTypeFloat16 || dt == DTypeFloat32
}

// Type is a value type: a scalar dtype, a fixed-size 1-D vector of it,
// or a statically shaped memref backing a matrix.
type Type struct {
	DType DType
	// Lanes is 0 for scalars, otherwise the vector width.
	Lanes int64
	// MemrefDims is non-nil for memref types.
	MemrefDims []int64
}

// Scalar returns the scalar type of the given dtype.
func Scalar(dt DType) Type { return Type{DType: dt} }

// Vector returns a 1-D vector type with the given number of lanes.
func Vector(dt DType, lanes int64) Type { return Type{DType: dt, Lanes: lanes} }

// Memref returns a statically shaped memref type.
func Memref(dt DType, dims ...int64) Type { return Type{DType: dt, MemrefDims: dims} }

// IsVector reports whether t is a vector type.
func (t Type) IsVector() bool { return t.Lanes > 0 }

// IsMemref reports whether t is a memref type.
func (t Type) IsMemref() bool { return t.MemrefDims != nil }

// Rank returns the number of memref dimensions.
func (t Type) Rank() int { return len(t.MemrefDims) }

func (t Type) String() string {
	switch {
	case t.IsMemref():
		s := "memref<"
		for _, d := range t.MemrefDims {
			s += fmt.Sprintf("%dx", d)
		}
		return s + t.DType.String() + ">"
	case t.IsVector():
		return fmt.Sprintf("vector<%dx%s>", t.Lanes, t.DType)
	default:
		return t.DType.String()
	}
}
