package ir

// Deep cloning of functions and kernel modules. Unlike Operation.Clone,
// these remap value uses so the clone is self-contained: operands that
// referenced results or block arguments of the source reference the
// corresponding clones instead.

func cloneBlockInto(dst, src *Block, remap map[*Value]*Value) {
	for _, arg := range src.args {
		newArg := dst.AddArg(arg.typ, arg.name)
		remap[arg] = newArg
	}
	for _, op := range src.ops {
		cloned := &Operation{
			opType: op.opType,
			attrs:  op.attrs.Clone(),
		}
		for _, operand := range op.operands {
			if mapped, ok := remap[operand]; ok {
				operand = mapped
			}
			cloned.operands = append(cloned.operands, operand)
		}
		for _, r := range op.results {
			newR := &Value{def: cloned, typ: r.typ, name: r.name}
			cloned.results = append(cloned.results, newR)
			remap[r] = newR
		}
		for _, region := range op.regions {
			cloneBlockInto(cloned.AddRegion(), region, remap)
		}
		dst.Append(cloned)
	}
}

// CloneInto deep-copies the function body and attributes into a new
// kernel of km under the given name.
func (f *Function) CloneInto(km *KernelModule, name string) *Function {
	cloned := km.NewKernel(name)
	cloned.attrs = f.attrs.Clone()
	cloned.kind = f.kind
	remap := make(map[*Value]*Value)
	for i, b := range f.blocks {
		var dst *Block
		if i == 0 {
			dst = cloned.Body()
		} else {
			dst = cloned.AddBlock()
		}
		cloneBlockInto(dst, b, remap)
	}
	return cloned
}

// Clone deep-copies the kernel module, including all kernels, into a new
// kernel module of the same parent module under the given name.
func (km *KernelModule) Clone(name string) *KernelModule {
	cloned := km.module.NewKernelModule(name)
	cloned.attrs = km.attrs.Clone()
	for _, k := range km.kernels {
		k.CloneInto(cloned, k.name)
	}
	return cloned
}

// Walk visits every operation of every kernel in the module.
func (km *KernelModule) Walk(visit func(*Operation)) {
	for _, k := range km.kernels {
		k.Walk(visit)
	}
}
