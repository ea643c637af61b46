package main

import (
	json "github.com/goccy/go-json"
	"github.com/pkg/errors"

	"github.com/Arslan-e-Mustafa/Accera/ir"
)

// moduleSpec is the JSON description of a module to lower: a runtime
// tag, kernels with declared sizes and simple op bodies, and optional
// host launch wrappers.
type moduleSpec struct {
	Name      string         `json:"name"`
	Runtime   string         `json:"runtime"`
	Kernels   []kernelSpec   `json:"kernels"`
	Launchers []launcherSpec `json:"launchers,omitempty"`
}

type kernelSpec struct {
	Name      string    `json:"name"`
	BlockSize *[3]int64 `json:"blockSize,omitempty"`
	GridSize  *[3]int64 `json:"gridSize,omitempty"`
	Ops       []opSpec  `json:"ops"`
}

// opSpec is one abstract operation of a kernel body. Conditionals nest
// their body under "then".
type opSpec struct {
	Op    string   `json:"op"`
	Scope string   `json:"scope,omitempty"`
	Axis  string   `json:"axis,omitempty"`
	Then  []opSpec `json:"then,omitempty"`
}

// launcherSpec describes a header-visible host wrapper calling a
// launch function, matching the pairing idiom.
type launcherSpec struct {
	Name    string `json:"name"`
	Wrapper string `json:"wrapper"`
	Kernel  string `json:"kernel"`
}

// parseModuleSpec decodes and validates a JSON module description.
func parseModuleSpec(data []byte) (*moduleSpec, error) {
	var spec moduleSpec
	if err := json.Unmarshal(data, &spec); err != nil {
		return nil, errors.Wrap(err, "parsing module description")
	}
	if spec.Name == "" {
		spec.Name = "module"
	}
	if len(spec.Kernels) == 0 {
		return nil, errors.New("module description has no kernels")
	}
	return &spec, nil
}

// buildModule materializes the description as IR.
func buildModule(spec *moduleSpec) (*ir.Module, error) {
	m := ir.NewModule(spec.Name)
	rt := ir.RuntimeDefault
	if spec.Runtime != "" {
		parsed, err := ir.RuntimeString(spec.Runtime)
		if err != nil {
			return nil, errors.Wrapf(err, "unknown runtime %q", spec.Runtime)
		}
		rt = parsed
	}
	m.Attrs()[ir.AttrExecRuntime] = rt

	km := m.NewKernelModule(spec.Name + "_kernels")
	km.Attrs()[ir.AttrExecRuntime] = rt

	for _, ks := range spec.Kernels {
		kernel := km.NewKernel(ks.Name)
		if ks.BlockSize != nil {
			kernel.Attrs()[ir.AttrBlockSize] = *ks.BlockSize
		}
		if ks.GridSize != nil {
			kernel.Attrs()[ir.AttrGridSize] = *ks.GridSize
		}
		if err := buildOps(kernel.Body(), ks.Ops); err != nil {
			return nil, errors.Wrapf(err, "kernel %q", ks.Name)
		}
		kernel.Body().Append(ir.NewReturn())
	}

	for _, ls := range spec.Launchers {
		if err := buildLauncher(m, spec, ls); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func buildOps(b *ir.Block, ops []opSpec) error {
	for _, o := range ops {
		switch o.Op {
		case "barrier":
			scope := ir.BarrierScopeBlock
			if o.Scope != "" {
				parsed, err := ir.BarrierScopeString(o.Scope)
				if err != nil {
					return errors.Wrapf(err, "unknown barrier scope %q", o.Scope)
				}
				scope = parsed
			}
			b.Append(ir.NewBarrier(scope))
		case "threadId":
			b.Append(ir.NewThreadID(axisOrX(o.Axis)))
		case "blockId":
			b.Append(ir.NewBlockID(axisOrX(o.Axis)))
		case "blockDim":
			b.Append(ir.NewBlockDim(axisOrX(o.Axis)))
		case "gridDim":
			b.Append(ir.NewGridDim(axisOrX(o.Axis)))
		case "earlyReturn":
			b.Append(ir.NewEarlyReturn())
		case "if":
			cond := ir.NewAffineIf()
			if err := buildOps(cond.Regions()[0], o.Then); err != nil {
				return err
			}
			b.Append(cond)
		default:
			return errors.Errorf("unknown operation %q", o.Op)
		}
	}
	return nil
}

func axisOrX(axis string) string {
	if axis == "" {
		return "x"
	}
	return axis
}

// buildLauncher emits the host half of the pairing idiom: a
// header-visible raw-pointer entry calling a wrapper whose body ends in
// the kernel launch, with the launch configuration taken from the
// kernel's declared sizes.
func buildLauncher(m *ir.Module, spec *moduleSpec, ls launcherSpec) error {
	var ks *kernelSpec
	for i := range spec.Kernels {
		if spec.Kernels[i].Name == ls.Kernel {
			ks = &spec.Kernels[i]
			break
		}
	}
	if ks == nil {
		return errors.Errorf("launcher %q references unknown kernel %q", ls.Name, ls.Kernel)
	}
	grid, block := [3]int64{1, 1, 1}, [3]int64{1, 1, 1}
	if ks.GridSize != nil {
		grid = *ks.GridSize
	}
	if ks.BlockSize != nil {
		block = *ks.BlockSize
	}

	wrapper := m.NewFunc(ls.Wrapper)
	body := wrapper.Body()
	var gridVals, blockVals [3]*ir.Value
	for i := 0; i < 3; i++ {
		c := ir.NewConstantIndex(grid[i])
		body.Append(c)
		gridVals[i] = c.Result(0)
	}
	for i := 0; i < 3; i++ {
		c := ir.NewConstantIndex(block[i])
		body.Append(c)
		blockVals[i] = c.Result(0)
	}
	body.Append(ir.NewLaunchFunc(ls.Kernel, gridVals, blockVals))
	body.Append(ir.NewReturn())

	host := m.NewFunc(ls.Name)
	host.Attrs().SetUnit(ir.AttrHeaderDecl)
	host.Attrs().SetUnit(ir.AttrRawPointerAPI)
	host.Body().Append(ir.NewCall(ls.Wrapper))
	host.Body().Append(ir.NewReturn())
	return nil
}
