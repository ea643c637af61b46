package ir

// Runtime identifies the backend runtime family a function or kernel
// module targets. It is set by the scheduling stage via AttrExecRuntime
// and consumed by the lowering dispatcher.
type Runtime int

//go:generate go tool enumer -type=Runtime -trimprefix=Runtime -output=gen_runtime_enumer.go runtime.go

const (
	RuntimeNone Runtime = iota
	RuntimeCUDA
	RuntimeROCm
	RuntimeVulkan
	RuntimeOpenMP
	RuntimeDefault
)

// IsGPU reports whether the runtime is one of the lowerable GPU families.
// Vulkan here means the SPIR-V pipeline; OpenMP and None are not GPU
// runtimes.
func (r Runtime) IsGPU() bool {
	switch r {
	case RuntimeCUDA, RuntimeROCm, RuntimeVulkan, RuntimeDefault:
		return true
	default:
		return false
	}
}

// BarrierScope is the synchronization scope of an abstract barrier.
type BarrierScope int

//go:generate go tool enumer -type=BarrierScope -trimprefix=BarrierScope -output=gen_barrierscope_enumer.go runtime.go

const (
	// BarrierScopeBlock synchronizes all threads of a block.
	BarrierScopeBlock BarrierScope = iota
	// BarrierScopeWarp synchronizes the lanes of a warp (subgroup).
	BarrierScopeWarp
	// BarrierScopeThreadfence is a device-wide memory fence without a
	// execution synchronization point.
	BarrierScopeThreadfence
)
