package gpulower

import (
	"strings"

	"k8s.io/klog/v2"

	"github.com/Arslan-e-Mustafa/Accera/ir"
)

// KernelNameSuffix marks a device kernel paired with its host-visible
// launcher: the kernel is renamed `<launcher>__gpu__` so generated
// headers can associate the two symbols.
const KernelNameSuffix = "__gpu__"

// PairDeviceLaunchers scans the module for the launcher idiom and
// renames each paired kernel after its host entry point. The idiom is a
// header-visible raw-pointer host function whose body is a single call
// to a wrapper function that ends in a kernel launch. Functions that do
// not follow the idiom are silently skipped; only full matches are
// rewritten. Returns the number of kernels paired.
func PairDeviceLaunchers(m *ir.Module) int {
	paired := 0
	for _, fn := range m.Funcs() {
		if !fn.Attrs().Has(ir.AttrHeaderDecl) || !fn.Attrs().Has(ir.AttrRawPointerAPI) {
			continue
		}
		call := soleCall(fn)
		if call == nil {
			continue
		}
		callee := m.LookupFunc(call.Attrs().String(ir.AttrCallee))
		if callee == nil {
			continue
		}
		launch := trailingLaunch(callee)
		if launch == nil {
			continue
		}
		kernel := lookupKernel(m, launch.Attrs().String(ir.AttrKernel))
		if kernel == nil {
			continue
		}
		name := fn.Name() + KernelNameSuffix
		if strings.HasSuffix(kernel.Name(), KernelNameSuffix) || lookupKernel(m, name) != nil {
			continue // already paired, or the name is taken
		}
		klog.V(1).Infof("pairing kernel %q with launcher %q as %q", kernel.Name(), fn.Name(), name)
		kernel.SetName(name)
		launch.Attrs()[ir.AttrKernel] = name
		// The kernel inherits the launcher's linkage marks so the
		// emitted header declares both halves of the pair, and both
		// record the runtime the kernel resolved to.
		kernel.Attrs().SetUnit(ir.AttrHeaderDecl)
		kernel.Attrs().SetUnit(ir.AttrRawPointerAPI)
		kernel.Attrs()[ir.AttrExecTarget] = ir.ExecTargetGPU
		if rt, ok := ResolveFuncRuntime(kernel); ok {
			kernel.Attrs()[ir.AttrExecRuntime] = rt
			fn.Attrs()[ir.AttrExecRuntime] = rt
		}
		paired++
	}
	return paired
}

// soleCall returns the call making up fn's entire body, or nil when the
// body holds anything besides that one call and the terminator. A host
// entry point with extra logic is not a pure launch wrapper and must be
// left alone.
func soleCall(fn *ir.Function) *ir.Operation {
	var call *ir.Operation
	for _, op := range fn.Body().Ops() {
		if op.OpType() == ir.OpTypeReturn {
			continue
		}
		if op.OpType() != ir.OpTypeCall || call != nil {
			return nil
		}
		call = op
	}
	return call
}

// trailingLaunch returns the kernel launch ending fn's body: the launch
// must be the last operation, allowing only the function terminator
// after it.
func trailingLaunch(fn *ir.Function) *ir.Operation {
	ops := fn.Body().Ops()
	for i := len(ops) - 1; i >= 0; i-- {
		switch ops[i].OpType() {
		case ir.OpTypeReturn:
			continue
		case ir.OpTypeLaunchFunc:
			return ops[i]
		default:
			return nil
		}
	}
	return nil
}

func lookupKernel(m *ir.Module, name string) *ir.Function {
	for _, kernel := range m.Kernels() {
		if kernel.Name() == name {
			return kernel
		}
	}
	return nil
}
