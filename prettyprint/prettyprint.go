// Package prettyprint renders a lowered module as CUDA-dialect source
// text: kernel declarations and definitions with launch bounds, host
// wrappers with triple-chevron launch statements, and the HIP/CUDA
// vector-type prelude.
//
// Diagnostics follow the printer convention of the translation stage:
// unsupported constructs are written into the output stream as
// `<<...>>` placeholders so partial output stays inspectable, and the
// first such failure is also returned as an error.
package prettyprint

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/x448/float16"

	"github.com/Arslan-e-Mustafa/Accera/ir"
)

// cudaPrelude is emitted once before any kernel. The HIP branch defines
// the ext-vector typedefs the vector ops print with; the CUDA branch
// pulls in half-precision support.
const cudaPrelude = `
#if defined(__HIP_PLATFORM_AMD__)
using vhalf = __fp16;
using vfloatx2_t = float __attribute__((ext_vector_type(2)));
using vfloatx4_t = float __attribute__((ext_vector_type(4)));
using vfloatx8_t = float __attribute__((ext_vector_type(8)));
using vfloatx16_t = float __attribute__((ext_vector_type(16)));
using vfloatx32_t = float __attribute__((ext_vector_type(32)));
using vfloatx64_t = float __attribute__((ext_vector_type(64)));
using vhalfx2_t = vhalf __attribute__((ext_vector_type(2)));
using vhalfx4_t = vhalf __attribute__((ext_vector_type(4)));
using vhalfx8_t = vhalf __attribute__((ext_vector_type(8)));
using vhalfx16_t = vhalf __attribute__((ext_vector_type(16)));
using vhalfx32_t = vhalf __attribute__((ext_vector_type(32)));
using vhalfx64_t = vhalf __attribute__((ext_vector_type(64)));
#elif defined(__CUDA__)
#include "cuda_fp16.h"
#endif // !defined(__HIP_PLATFORM_AMD__)

`

// Printer renders one module. It is single use: create with NewPrinter,
// call PrintModule once.
type Printer struct {
	w        io.Writer
	names    map[*ir.Value]string
	counters map[string]int
	runtimes map[ir.Runtime]bool
	indent   int
	firstErr error
}

// NewPrinter returns a printer writing to w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{
		w:        w,
		names:    make(map[*ir.Value]string),
		counters: make(map[string]int),
		runtimes: make(map[ir.Runtime]bool),
	}
}

// Print renders m to w and returns the first diagnostic encountered, if
// any.
func Print(w io.Writer, m *ir.Module) error {
	return NewPrinter(w).PrintModule(m)
}

// PrintModule renders the whole module: prelude, kernel declarations,
// kernel definitions, then host functions.
func (p *Printer) PrintModule(m *ir.Module) error {
	if err := p.detectRuntimes(m); err != nil {
		return err
	}
	if !p.runtimes[ir.RuntimeCUDA] {
		// No CUDA-class kernels; nothing to render.
		return nil
	}
	p.printf("%s", cudaPrelude)
	for _, kernel := range m.Kernels() {
		p.printFunctionDeclaration(kernel, true)
	}
	for _, kernel := range m.Kernels() {
		p.printKernel(kernel)
	}
	for _, fn := range m.Funcs() {
		p.printHostFunction(fn)
	}
	return p.firstErr
}

// detectRuntimes is the pre-printing pass: every kernel module must
// resolve to a CUDA-class runtime. ROCm enables the CUDA rendering as a
// superset; everything else is rejected before any output is produced.
func (p *Printer) detectRuntimes(m *ir.Module) error {
	for _, km := range m.KernelModules() {
		rt, ok := km.Attrs().Runtime(ir.AttrExecRuntime)
		if !ok {
			rt, ok = m.Attrs().Runtime(ir.AttrExecRuntime)
		}
		if !ok {
			return errors.Errorf("device functions of %q must specify a runtime", km.Name())
		}
		switch rt {
		case ir.RuntimeROCm:
			p.runtimes[ir.RuntimeROCm] = true
			p.runtimes[ir.RuntimeCUDA] = true
		case ir.RuntimeCUDA:
			p.runtimes[ir.RuntimeCUDA] = true
		default:
			return errors.Errorf("device function runtime %s of %q is unsupported", rt, km.Name())
		}
	}
	return nil
}

func (p *Printer) printf(format string, args ...any) {
	fmt.Fprintf(p.w, format, args...)
}

// line writes one indented statement line.
func (p *Printer) line(format string, args ...any) {
	p.printf("%s", strings.Repeat("    ", p.indent))
	p.printf(format, args...)
	p.printf("\n")
}

// fail writes a placeholder diagnostic into the stream and records it
// as the printer's failure.
func (p *Printer) fail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	p.line("<<%s>>", msg)
	if p.firstErr == nil {
		p.firstErr = errors.New(msg)
	}
}

// nameFor returns the stable name of v, creating one from prefix on
// first use.
func (p *Printer) nameFor(v *ir.Value, prefix string) string {
	if name, ok := p.names[v]; ok {
		return name
	}
	n := p.counters[prefix]
	p.counters[prefix]++
	name := fmt.Sprintf("%s%d", prefix, n)
	p.names[v] = name
	return name
}

func (p *Printer) name(v *ir.Value) string {
	return p.nameFor(v, "v")
}

func (p *Printer) nameList(values []*ir.Value) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = p.name(v)
	}
	return out
}

// scalarTypeName renders a scalar dtype as its CUDA spelling.
func scalarTypeName(dt ir.DType) string {
	switch dt {
	case ir.DTypeIndex:
		return "size_t"
	case ir.DTypeInt32:
		return "int32_t"
	case ir.DTypeFloat16:
		return "vhalf"
	case ir.DTypeFloat32:
		return "float"
	}
	return "void"
}

// vectorTypeName renders a vector type, failing with the printer's
// placeholder convention for unsupported element types and widths.
func (p *Printer) vectorTypeName(t ir.Type) (string, bool) {
	var base string
	switch t.DType {
	case ir.DTypeFloat32:
		base = "vfloat"
	case ir.DTypeFloat16:
		base = "vhalf"
	default:
		p.fail("only support fp32 and fp16 vec type")
		return "", false
	}
	if t.Lanes%2 != 0 {
		p.fail("can't be represented by %sx%d_t as it is not a multiple of 2", base, t.Lanes)
		return "", false
	}
	return fmt.Sprintf("%sx%d_t", base, t.Lanes), true
}

func (p *Printer) typeName(t ir.Type) string {
	if t.IsVector() {
		name, _ := p.vectorTypeName(t)
		return name
	}
	return scalarTypeName(t.DType)
}

// paramDecl renders one function parameter; memrefs decay to pointers.
func (p *Printer) paramDecl(arg *ir.Value) string {
	t := arg.Type()
	name := p.nameFor(arg, "arg")
	if t.IsMemref() {
		return fmt.Sprintf("%s *%s", scalarTypeName(t.DType), name)
	}
	return fmt.Sprintf("%s %s", p.typeName(t), name)
}

func (p *Printer) printFunctionDeclaration(fn *ir.Function, trailingSemicolon bool) {
	if fn.Attrs().Has(ir.AttrHeaderDecl) && fn.Attrs().Has(ir.AttrRawPointerAPI) {
		p.printf(`extern "C" `)
	}
	p.printf("__global__ ")
	if triple, ok := fn.Attrs().IntTriple(ir.AttrBlockSize); ok {
		p.printf("__launch_bounds__(%d) ", triple[0]*triple[1]*triple[2])
	}
	p.printf("void %s(", fn.Name())
	params := make([]string, 0, len(fn.Body().Args()))
	for _, arg := range fn.Body().Args() {
		params = append(params, p.paramDecl(arg))
	}
	p.printf("%s)", strings.Join(params, ", "))
	if trailingSemicolon {
		p.printf(";\n\n")
	}
}

func (p *Printer) printKernel(fn *ir.Function) {
	if len(fn.Blocks()) > 1 {
		p.fail("only single block functions supported")
		return
	}
	p.printFunctionDeclaration(fn, false)
	p.printf(" {\n")
	p.indent++
	p.printBlockOps(fn.Body())
	p.indent--
	p.printf("}\n\n")
}

func (p *Printer) printHostFunction(fn *ir.Function) {
	p.printf("void %s(", fn.Name())
	params := make([]string, 0, len(fn.Body().Args()))
	for _, arg := range fn.Body().Args() {
		params = append(params, p.paramDecl(arg))
	}
	p.printf("%s) {\n", strings.Join(params, ", "))
	p.indent++
	p.printBlockOps(fn.Body())
	p.indent--
	p.printf("}\n\n")
}

func (p *Printer) printBlockOps(b *ir.Block) {
	for _, op := range b.Ops() {
		p.printOp(op)
	}
}

// indexVarPrefix maps a hardware read to its variable prefix and
// register spelling.
func indexVar(opType ir.OpType, axis string) (prefix, register string) {
	switch opType {
	case ir.OpTypeThreadID, ir.OpTypeRawThreadID:
		return "threadIdx_" + axis + "_", "threadIdx." + axis
	case ir.OpTypeBlockID, ir.OpTypeRawBlockID:
		return "blockIdx_" + axis + "_", "blockIdx." + axis
	case ir.OpTypeBlockDim, ir.OpTypeRawBlockDim:
		return "blockDim_" + axis + "_", "blockDim." + axis
	default:
		return "gridDim_" + axis + "_", "gridDim." + axis
	}
}

// kernelSize reads the declared size triple governing the op: block
// size for thread ids and block dims, grid size for block ids and grid
// dims.
func kernelSize(op *ir.Operation, axis string) (int64, bool) {
	var attr string
	switch op.OpType() {
	case ir.OpTypeThreadID, ir.OpTypeRawThreadID, ir.OpTypeBlockDim, ir.OpTypeRawBlockDim:
		attr = ir.AttrBlockSize
	default:
		attr = ir.AttrGridSize
	}
	fn := op.Func()
	if fn == nil {
		return 0, false
	}
	triple, ok := fn.Attrs().IntTriple(attr)
	if !ok {
		if km := fn.KernelModule(); km != nil {
			triple, ok = km.Attrs().IntTriple(attr)
		}
	}
	idx := ir.DimIndex(axis)
	if !ok || idx < 0 {
		return 0, false
	}
	return triple[idx], true
}

// printDimQuery renders a hardware index or dimension read, folding
// against the kernel's declared sizes: dimension reads become literal
// constants, index reads are wrapped in a modulo by their bound.
func (p *Printer) printDimQuery(op *ir.Operation) {
	axis := op.Attrs().String(ir.AttrDimension)
	prefix, register := indexVar(op.OpType(), axis)
	name := p.nameFor(op.Result(0), prefix)
	bound, known := kernelSize(op, axis)
	switch op.OpType() {
	case ir.OpTypeBlockDim, ir.OpTypeRawBlockDim, ir.OpTypeGridDim, ir.OpTypeRawGridDim:
		if known {
			p.line("const size_t %s = %d;", name, bound)
		} else {
			p.line("const size_t %s = %s;", name, register)
		}
	default:
		if known {
			p.line("const size_t %s = (%s %% %d);", name, register, bound)
		} else {
			p.line("const size_t %s = %s;", name, register)
		}
	}
}

// floatLiteral renders a floating constant, rounding half-precision
// values to their representable form first.
func floatLiteral(dt ir.DType, v float64) string {
	if dt == ir.DTypeFloat16 {
		v = float64(float16.Fromfloat32(float32(v)).Float32())
		return fmt.Sprintf("(vhalf)%sf", strconv.FormatFloat(v, 'g', -1, 32))
	}
	return strconv.FormatFloat(v, 'g', -1, 32) + "f"
}

func (p *Printer) subscripts(names []string) string {
	var sb strings.Builder
	for _, n := range names {
		sb.WriteString("[")
		sb.WriteString(n)
		sb.WriteString("]")
	}
	return sb.String()
}

// memrefAccess renders base[i][j]... or the flattened pointer access
// base[i] for decayed single-index addressing.
func (p *Printer) memrefAccess(memref *ir.Value, indices []*ir.Value) string {
	return p.name(memref) + p.subscripts(p.nameList(indices))
}

func (p *Printer) printOp(op *ir.Operation) {
	switch op.OpType() {
	case ir.OpTypeThreadID, ir.OpTypeBlockID, ir.OpTypeBlockDim, ir.OpTypeGridDim,
		ir.OpTypeRawThreadID, ir.OpTypeRawBlockID, ir.OpTypeRawBlockDim, ir.OpTypeRawGridDim:
		p.printDimQuery(op)

	case ir.OpTypeConstantIndex:
		v, _ := op.Attrs().Int(ir.AttrValue)
		p.line("const size_t %s = %d;", p.name(op.Result(0)), v)
	case ir.OpTypeConstantInt:
		v, _ := op.Attrs().Int(ir.AttrValue)
		p.line("const int32_t %s = %d;", p.name(op.Result(0)), v)
	case ir.OpTypeConstantFloat:
		v, _ := op.Attrs()[ir.AttrValue].(float64)
		dt := op.Result(0).Type().DType
		p.line("const %s %s = %s;", scalarTypeName(dt), p.name(op.Result(0)), floatLiteral(dt, v))

	case ir.OpTypeAffineApply:
		m := ir.ApplyMap(op)
		rendered := m.RenderMap(p.nameList(op.Operands()))
		for i, expr := range rendered {
			p.line("const size_t %s = %s;", p.name(op.Result(i)), expr)
		}

	case ir.OpTypeLoad:
		res := op.Result(0)
		p.line("const %s %s = %s;", scalarTypeName(res.Type().DType), p.name(res),
			p.memrefAccess(op.Operands()[0], op.Operands()[1:]))
	case ir.OpTypeStore:
		p.line("%s = %s;", p.memrefAccess(op.Operands()[1], op.Operands()[2:]), p.name(op.Operands()[0]))

	case ir.OpTypeAlloc:
		t := op.Result(0).Type()
		dims := make([]string, len(t.MemrefDims))
		for i, d := range t.MemrefDims {
			dims[i] = strconv.FormatInt(d, 10)
		}
		p.line("%s %s%s;", scalarTypeName(t.DType), p.name(op.Result(0)), p.subscripts(dims))
	case ir.OpTypeDealloc:
		// Stack storage; nothing to free.

	case ir.OpTypeVectorBroadcast:
		t := op.Result(0).Type()
		if name, ok := p.vectorTypeName(t); ok {
			p.line("%s %s = %s;", name, p.name(op.Result(0)), p.name(op.Operands()[0]))
		}
	case ir.OpTypeVectorExtract:
		p.line("const %s %s = %s[%s];", scalarTypeName(op.Result(0).Type().DType),
			p.name(op.Result(0)), p.name(op.Operands()[0]), p.name(op.Operands()[1]))
	case ir.OpTypeVectorInsert:
		t := op.Result(0).Type()
		if name, ok := p.vectorTypeName(t); ok {
			res := p.name(op.Result(0))
			p.line("%s %s = %s;", name, res, p.name(op.Operands()[1]))
			p.line("%s[%s] = %s;", res, p.name(op.Operands()[2]), p.name(op.Operands()[0]))
		}

	case ir.OpTypeFPExt:
		p.line("const float %s = (float)%s;", p.name(op.Result(0)), p.name(op.Operands()[0]))
	case ir.OpTypeFPTrunc:
		p.line("const %s %s = (%s)%s;", scalarTypeName(op.Result(0).Type().DType),
			p.name(op.Result(0)), scalarTypeName(op.Result(0).Type().DType), p.name(op.Operands()[0]))
	case ir.OpTypeIndexCast:
		p.line("const %s %s = (%s)%s;", p.typeName(op.Result(0).Type()),
			p.name(op.Result(0)), p.typeName(op.Result(0).Type()), p.name(op.Operands()[0]))

	case ir.OpTypeSyncThreads:
		p.line("__syncthreads();")
	case ir.OpTypeBarrier:
		scope, _ := op.Attrs()[ir.AttrScope].(ir.BarrierScope)
		if scope == ir.BarrierScopeBlock {
			p.line("__syncthreads();")
		} else {
			p.fail("unhandled barrier scope %s", scope)
		}
	case ir.OpTypeFence:
		p.line("__threadfence();")

	case ir.OpTypeGPUReturn:
		// Kernel epilogue; implicit.
	case ir.OpTypeReturn:
		if op.Func() != nil && op.Func().Kind() == ir.FuncHost {
			p.line("return;")
		}
	case ir.OpTypeEarlyReturn:
		p.line("return;")

	case ir.OpTypeCall:
		args := strings.Join(p.nameList(op.Operands()), ", ")
		if len(op.Results()) > 0 {
			res := op.Result(0)
			p.line("const %s %s = %s(%s);", p.typeName(res.Type()), p.name(res),
				op.Attrs().String(ir.AttrCallee), args)
		} else {
			p.line("%s(%s);", op.Attrs().String(ir.AttrCallee), args)
		}

	case ir.OpTypeLaunchFunc:
		grid := p.nameList(op.Operands()[:3])
		block := p.nameList(op.Operands()[3:ir.LaunchNumConfigOperands])
		args := p.nameList(op.Operands()[ir.LaunchNumConfigOperands:])
		p.line("%s<<<dim3(%s), dim3(%s)>>>(%s);",
			op.Attrs().String(ir.AttrKernel),
			strings.Join(grid, ", "), strings.Join(block, ", "), strings.Join(args, ", "))

	case ir.OpTypeROCDLMFMA:
		res := op.Result(0)
		if name, ok := p.vectorTypeName(res.Type()); ok {
			p.line("%s %s = __builtin_amdgcn_%s(%s);", name, p.name(res),
				op.Attrs().String(ir.AttrIntrinsic),
				strings.Join(p.nameList(op.Operands()), ", "))
		}

	case ir.OpTypeFor:
		p.printFor(op)
	case ir.OpTypeIf:
		p.printIf(op)
	case ir.OpTypeYield:
		// Rendered by the enclosing loop.

	default:
		p.fail("unsupported operation %s", op.OpType())
	}
}

// printFor renders a bounded loop. Loop-carried values become mutable
// variables initialized before the loop and reassigned where the body
// yields; the loop results alias those variables.
func (p *Printer) printFor(op *ir.Operation) {
	lb, _ := op.Attrs().Int(ir.AttrLowerBound)
	ub, _ := op.Attrs().Int(ir.AttrUpperBound)
	step, _ := op.Attrs().Int(ir.AttrStep)
	body := op.Regions()[0]
	iv := ir.ForInductionVar(op)
	ivName := p.nameFor(iv, "idx")

	carried := ir.ForIterArgs(op)
	for i, arg := range carried {
		init := op.Operands()[i]
		accName := p.nameFor(arg, "acc")
		p.names[op.Results()[i]] = accName
		if arg.Type().IsVector() {
			if name, ok := p.vectorTypeName(arg.Type()); ok {
				p.line("%s %s = %s;", name, accName, p.name(init))
			}
		} else {
			p.line("%s %s = %s;", p.typeName(arg.Type()), accName, p.name(init))
		}
	}

	p.line("for (size_t %s = %d; %s < %d; %s += %d) {", ivName, lb, ivName, ub, ivName, step)
	p.indent++
	for _, bodyOp := range body.Ops() {
		if bodyOp.OpType() == ir.OpTypeYield {
			for i, operand := range bodyOp.Operands() {
				accName := p.names[carried[i]]
				if p.name(operand) != accName {
					p.line("%s = %s;", accName, p.name(operand))
				}
			}
			continue
		}
		p.printOp(bodyOp)
	}
	p.indent--
	p.line("}")
}

func (p *Printer) printIf(op *ir.Operation) {
	p.line("if (%s) {", p.name(op.Operands()[0]))
	p.indent++
	p.printBlockOps(op.Regions()[0])
	p.indent--
	if len(op.Regions()) > 1 {
		p.line("} else {")
		p.indent++
		p.printBlockOps(op.Regions()[1])
		p.indent--
	}
	p.line("}")
}
