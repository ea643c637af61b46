// Package gpulower implements the device-lowering core: resolving the
// target runtime of a kernel module, folding grid/block dimension
// queries, legalizing barriers, pairing host launch wrappers with their
// device kernels, and lowering warp-cooperative matrix-fragment
// operations to backend intrinsics.
//
// The package provides the conversion patterns; the per-backend
// pipelines under backends/ assemble them with their legal-operation
// sets.
package gpulower

import (
	"github.com/pkg/errors"

	"github.com/Arslan-e-Mustafa/Accera/ir"
)

// ResolveRuntime determines the runtime an operation's enclosing
// function targets, walking outward: function attributes, then the
// kernel module, then the whole module. A Default tag resolves to ROCm.
func ResolveRuntime(op *ir.Operation) (ir.Runtime, bool) {
	fn := op.Func()
	if fn == nil {
		return ir.RuntimeNone, false
	}
	return ResolveFuncRuntime(fn)
}

// ResolveFuncRuntime is ResolveRuntime starting from a function.
func ResolveFuncRuntime(fn *ir.Function) (ir.Runtime, bool) {
	if rt, ok := fn.Attrs().Runtime(ir.AttrExecRuntime); ok {
		return canonicalRuntime(rt), true
	}
	if km := fn.KernelModule(); km != nil {
		if rt, ok := km.Attrs().Runtime(ir.AttrExecRuntime); ok {
			return canonicalRuntime(rt), true
		}
	}
	if m := fn.Module(); m != nil {
		if rt, ok := m.Attrs().Runtime(ir.AttrExecRuntime); ok {
			return canonicalRuntime(rt), true
		}
	}
	return ir.RuntimeNone, false
}

// ModuleRuntime resolves the runtime of the whole module: the module's
// own tag if present, otherwise the tag of its first tagged kernel
// module.
func ModuleRuntime(m *ir.Module) (ir.Runtime, bool) {
	if rt, ok := m.Attrs().Runtime(ir.AttrExecRuntime); ok {
		return canonicalRuntime(rt), true
	}
	for _, km := range m.KernelModules() {
		if rt, ok := km.Attrs().Runtime(ir.AttrExecRuntime); ok {
			return canonicalRuntime(rt), true
		}
	}
	return ir.RuntimeNone, false
}

// HasRuntimeTarget reports whether the module resolves to the given
// runtime. Pipelines use it to no-op on modules targeting another
// backend.
func HasRuntimeTarget(m *ir.Module, rt ir.Runtime) bool {
	resolved, ok := ModuleRuntime(m)
	return ok && resolved == rt
}

// canonicalRuntime maps the Default tag to the default GPU runtime.
func canonicalRuntime(rt ir.Runtime) ir.Runtime {
	if rt == ir.RuntimeDefault {
		return ir.RuntimeROCm
	}
	return rt
}

// ResolveWarpSize returns the (x, y) warp decomposition of the runtime
// targeted by op's function: 8x8 lanes on ROCm-class hardware, 8x4 on
// CUDA-class.
func ResolveWarpSize(op *ir.Operation) (int64, int64) {
	rt, _ := ResolveRuntime(op)
	if rt == ir.RuntimeCUDA {
		return 8, 4
	}
	return 8, 8
}

// CheckKernelRuntimes validates every kernel module of m: each must
// carry a supported GPU runtime. ROCm targets are a strict superset of
// CUDA-class capabilities, so a ROCm kernel enables both. The returned
// set holds the enabled runtime families; an unsupported or missing
// runtime is a hard error naming the offending kernel module, and no
// further lowering of the module should be attempted.
func CheckKernelRuntimes(m *ir.Module) (map[ir.Runtime]bool, error) {
	enabled := make(map[ir.Runtime]bool)
	for _, km := range m.KernelModules() {
		rt, ok := km.Attrs().Runtime(ir.AttrExecRuntime)
		if !ok {
			return nil, errors.Errorf("kernel module %q must specify a runtime", km.Name())
		}
		switch rt {
		case ir.RuntimeROCm:
			enabled[ir.RuntimeROCm] = true
			enabled[ir.RuntimeCUDA] = true
		case ir.RuntimeCUDA:
			enabled[ir.RuntimeCUDA] = true
		default:
			return nil, errors.Errorf("kernel module %q targets unsupported runtime %s", km.Name(), rt)
		}
	}
	return enabled, nil
}
