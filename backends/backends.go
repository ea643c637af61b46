// Package backends defines the interface a device-lowering pipeline
// needs to implement, and the registry that maps runtimes to pipelines.
//
// Pipelines register themselves during package initialization; importing
// a pipeline package (backends/rocm, backends/cuda, backends/spirv) is
// what makes it available:
//
//	import _ "github.com/Arslan-e-Mustafa/Accera/backends/rocm"
package backends

import (
	"os"

	"k8s.io/klog/v2"

	"github.com/Arslan-e-Mustafa/Accera/gpulower"
	"github.com/Arslan-e-Mustafa/Accera/ir"
)

// Pipeline lowers the GPU-targeting operations of a module into one
// backend's legal operation set.
type Pipeline interface {
	// Name returns the short name of the pipeline, e.g. "rocm".
	Name() string

	// Runtime returns the runtime family the pipeline lowers for.
	Runtime() ir.Runtime

	// Lower rewrites the module in place. On failure the module may be
	// partially converted and must be discarded.
	Lower(m *ir.Module) error
}

// Constructor builds a fresh pipeline instance.
type Constructor func() Pipeline

var registeredConstructors = make(map[ir.Runtime]Constructor)

// Register installs a pipeline constructor for the given runtime.
//
// To be safe, call Register during initialization of a package.
func Register(rt ir.Runtime, constructor Constructor) {
	registeredConstructors[rt] = constructor
}

// ACCERA_RUNTIME is the environment variable that, when set, overrides
// the runtime the module resolves to. Its value is a Runtime name
// ("CUDA", "ROCm", ...).
const ACCERA_RUNTIME = "ACCERA_RUNTIME"

// ForRuntime returns the pipeline handling the given runtime, or nil
// when the runtime needs no GPU lowering (None, OpenMP) or no pipeline
// was registered for it. The Default runtime selects the ROCm-class
// pipeline.
func ForRuntime(rt ir.Runtime) Pipeline {
	switch rt {
	case ir.RuntimeNone, ir.RuntimeOpenMP:
		return nil
	case ir.RuntimeDefault:
		rt = ir.RuntimeROCm
	}
	constructor, found := registeredConstructors[rt]
	if !found {
		return nil
	}
	return constructor()
}

// Lower resolves the module's target runtime and runs the matching
// pipeline. Modules that target no GPU runtime, or whose runtime has no
// registered pipeline, are left untouched.
func Lower(m *ir.Module) error {
	rt, ok := gpulower.ModuleRuntime(m)
	if override, found := os.LookupEnv(ACCERA_RUNTIME); found {
		parsed, err := ir.RuntimeString(override)
		if err != nil {
			klog.Warningf("ignoring %s=%q: %v", ACCERA_RUNTIME, override, err)
		} else {
			rt, ok = parsed, true
		}
	}
	if !ok {
		klog.V(1).Infof("module %q has no runtime target, skipping GPU lowering", m.Name())
		return nil
	}
	pipeline := ForRuntime(rt)
	if pipeline == nil {
		klog.V(1).Infof("no pipeline for runtime %s, skipping GPU lowering of %q", rt, m.Name())
		return nil
	}
	klog.V(1).Infof("lowering module %q with the %s pipeline", m.Name(), pipeline.Name())
	return pipeline.Lower(m)
}
