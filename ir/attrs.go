package ir

import "maps"

// Attribute names shared between the scheduling stage (which sets them)
// and the lowering stage (which consumes them).
const (
	// AttrBlockSize is the declared [3]int64 block size of a kernel.
	AttrBlockSize = "blockSize"
	// AttrGridSize is the optional declared [3]int64 grid size.
	AttrGridSize = "gridSize"
	// AttrExecRuntime tags a function, kernel module or module with its
	// target Runtime.
	AttrExecRuntime = "execRuntime"
	// AttrExecTarget tags a function with an ExecTarget.
	AttrExecTarget = "execTarget"
	// AttrHeaderDecl marks a function as header-visible (declared in the
	// emitted header).
	AttrHeaderDecl = "headerDecl"
	// AttrRawPointerAPI marks a function as using the raw-pointer calling
	// convention.
	AttrRawPointerAPI = "rawPointerAPI"

	// AttrDimension is the axis ("x", "y" or "z") of a grid/block
	// dimension or id query.
	AttrDimension = "dimension"
	// AttrScope is the BarrierScope of a barrier operation.
	AttrScope = "scope"
	// AttrKernel is the kernel symbol referenced by a launch operation.
	AttrKernel = "kernel"
	// AttrCallee is the function symbol referenced by a call operation.
	AttrCallee = "callee"
	// AttrFragment is the FragmentType of a matrix-fragment operation.
	AttrFragment = "fragment"
	// AttrMap is the affine.Map of an affine apply or the access map of a
	// fragment load/store.
	AttrMap = "map"
	// AttrValue is the constant payload of a constant operation.
	AttrValue = "value"
	// AttrLowerBound, AttrUpperBound and AttrStep describe a bounded
	// loop.
	AttrLowerBound = "lowerBound"
	AttrUpperBound = "upperBound"
	AttrStep       = "step"
	// AttrIntrinsic names the backend compute intrinsic of a lowered
	// matrix-multiply operation.
	AttrIntrinsic = "intrinsic"
	// AttrMemorySpace marks an allocation's memory space.
	AttrMemorySpace = "memorySpace"
	// AttrExecutionScope and AttrMemoryScope carry the SPIR-V barrier
	// scopes; AttrMemorySemantics the memory ordering bits.
	AttrExecutionScope  = "executionScope"
	AttrMemoryScope     = "memoryScope"
	AttrMemorySemantics = "memorySemantics"
	// AttrOrdering and AttrSyncScope carry fence semantics on the GPU
	// family ("seq_cst" over scope "agent").
	AttrOrdering  = "ordering"
	AttrSyncScope = "syncScope"
	// AttrCbsz, AttrAbid and AttrBlgp are the broadcast/block-select
	// modifiers forwarded to the MFMA compute intrinsic.
	AttrCbsz = "cbsz"
	AttrAbid = "abid"
	AttrBlgp = "blgp"
)

// ExecTarget says where a function executes.
type ExecTarget int

//go:generate go tool enumer -type=ExecTarget -trimprefix=ExecTarget -output=gen_exectarget_enumer.go attrs.go

const (
	ExecTargetCPU ExecTarget = iota
	ExecTargetGPU
)

// Attributes is the attribute dictionary attached to modules, functions
// and operations. Values are one of: int64, [3]int64, string, bool,
// float64, Runtime, ExecTarget, BarrierScope, FragmentType, affine.Map.
type Attributes map[string]any

// Clone returns a shallow copy (attribute values are immutable).
func (a Attributes) Clone() Attributes {
	return maps.Clone(a)
}

// Has reports whether the attribute is present.
func (a Attributes) Has(name string) bool {
	_, ok := a[name]
	return ok
}

// SetUnit sets a marker (unit) attribute.
func (a Attributes) SetUnit(name string) { a[name] = true }

// String returns a string attribute, or "" when absent or mistyped.
func (a Attributes) String(name string) string {
	s, _ := a[name].(string)
	return s
}

// Int returns an int64 attribute and whether it was present.
func (a Attributes) Int(name string) (int64, bool) {
	v, ok := a[name].(int64)
	return v, ok
}

// IntTriple returns a [3]int64 attribute (block/grid sizes) and whether
// it was present.
func (a Attributes) IntTriple(name string) ([3]int64, bool) {
	v, ok := a[name].([3]int64)
	return v, ok
}

// Runtime returns the Runtime attribute and whether it was present.
func (a Attributes) Runtime(name string) (Runtime, bool) {
	v, ok := a[name].(Runtime)
	return v, ok
}

// DimIndex maps an axis name to its index in a size triple: x=0, y=1,
// z=2. Any other axis yields -1 ("unknown", callers fall back to a
// runtime read).
func DimIndex(axis string) int {
	switch axis {
	case "x":
		return 0
	case "y":
		return 1
	case "z":
		return 2
	default:
		return -1
	}
}
