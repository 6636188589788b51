package algofft3d

import (
	"fmt"
	"math"
	"strings"
)

// emitPackKernels lowers the four real-packing kernels into one source
// module. The packed axis is fixed at synthesis time, so the index
// arithmetic is emitted fully resolved rather than branching on PACKED_AXIS
// at run time.
func emitPackKernels(axis Axis, shape, packed GridShape, prec Precision) (string, map[string]string) {
	defines := map[string]string{
		"XSIZE":        intToSource(shape.X),
		"YSIZE":        intToSource(shape.Y),
		"ZSIZE":        intToSource(shape.Z),
		"PACKED_AXIS":  intToSource(int(axis)),
		"PACKED_XSIZE": intToSource(packed.X),
		"PACKED_YSIZE": intToSource(packed.Y),
		"PACKED_ZSIZE": intToSource(packed.Z),
		"M_PI":         floatToSource(math.Pi, prec),
	}

	// kVar is the packed-axis coordinate variable; pkSize its packed length
	// as a define name.
	var kVar, pkSize string
	switch axis {
	case AxisX:
		kVar, pkSize = "x", "PACKED_XSIZE"
	case AxisY:
		kVar, pkSize = "y", "PACKED_YSIZE"
	default:
		kVar, pkSize = "z", "PACKED_ZSIZE"
	}

	// fullIdx returns the full-grid index with the packed-axis coordinate
	// replaced by expr.
	fullIdx := func(expr string) string {
		switch axis {
		case AxisX:
			return fmt.Sprintf("(%s)*(YSIZE*ZSIZE)+y*ZSIZE+z", expr)
		case AxisY:
			return fmt.Sprintf("x*(YSIZE*ZSIZE)+(%s)*ZSIZE+z", expr)
		default:
			return fmt.Sprintf("x*(YSIZE*ZSIZE)+y*ZSIZE+(%s)", expr)
		}
	}
	mirrorIdx := "((PACKED_XSIZE-x)%PACKED_XSIZE)*(PACKED_YSIZE*PACKED_ZSIZE)+((PACKED_YSIZE-y)%PACKED_YSIZE)*PACKED_ZSIZE+((PACKED_ZSIZE-z)%PACKED_ZSIZE)"

	var b strings.Builder
	b.WriteString(emitVectorOps(prec))
	for _, key := range [...]string{
		"XSIZE", "YSIZE", "ZSIZE", "PACKED_AXIS",
		"PACKED_XSIZE", "PACKED_YSIZE", "PACKED_ZSIZE", "M_PI",
	} {
		fmt.Fprintf(&b, "#define %s %s\n", key, defines[key])
	}
	b.WriteString("\n")

	header := func(name, inType, outType string) {
		fmt.Fprintf(&b, "extern \"C\" __global__ void %s(const %s* __restrict__ in, %s* __restrict__ out) {\n", name, inType, outType)
		b.WriteString("const int gridSize = PACKED_XSIZE*PACKED_YSIZE*PACKED_ZSIZE;\n")
		b.WriteString("for (int index = blockIdx.x*blockDim.x+threadIdx.x; index < gridSize; index += blockDim.x*gridDim.x) {\n")
		b.WriteString("int x = index/(PACKED_YSIZE*PACKED_ZSIZE);\n")
		b.WriteString("int remainder = index-x*(PACKED_YSIZE*PACKED_ZSIZE);\n")
		b.WriteString("int y = remainder/PACKED_ZSIZE;\n")
		b.WriteString("int z = remainder-y*PACKED_ZSIZE;\n")
	}
	footer := func() { b.WriteString("}\n}\n\n") }
	half := floatToSource(0.5, prec)

	// Two adjacent real samples along the packed axis become one complex one.
	header(PackForward.EntryName(), "real", "real2")
	fmt.Fprintf(&b, "out[index] = make_real2(in[%s], in[%s]);\n",
		fullIdx("2*"+kVar), fullIdx("2*"+kVar+"+1"))
	footer()

	// Expand the half-size spectrum into the full Hermitian spectrum: split
	// into even/odd sub-spectra through the all-axes mirror, then recombine
	// with the axis twiddle.
	header(UnpackForward.EntryName(), "real2", "real2")
	b.WriteString("real2 g = in[index];\n")
	fmt.Fprintf(&b, "real2 gm = in[%s];\n", mirrorIdx)
	b.WriteString("gm.y = -gm.y;\n")
	fmt.Fprintf(&b, "real2 even = %s*(g+gm);\n", half)
	b.WriteString("real2 diff = g-gm;\n")
	fmt.Fprintf(&b, "real2 odd = %s*make_real2(diff.y, -diff.x);\n", half)
	fmt.Fprintf(&b, "real angle = -%s*2*M_PI/(2*%s);\n", kVar, pkSize)
	b.WriteString("real2 t = multiplyComplex(make_real2(cos(angle), sin(angle)), odd);\n")
	fmt.Fprintf(&b, "out[%s] = even+t;\n", fullIdx(kVar))
	fmt.Fprintf(&b, "out[%s] = even-t;\n", fullIdx(kVar+"+"+pkSize))
	footer()

	// Fold the full spectrum back to the packed one. Dropping the 1/2 here
	// keeps the unnormalized round-trip scale at XSIZE*YSIZE*ZSIZE.
	header(PackBackward.EntryName(), "real2", "real2")
	fmt.Fprintf(&b, "real2 fa = in[%s];\n", fullIdx(kVar))
	fmt.Fprintf(&b, "real2 fb = in[%s];\n", fullIdx(kVar+"+"+pkSize))
	b.WriteString("real2 even = fa+fb;\n")
	fmt.Fprintf(&b, "real angle = %s*2*M_PI/(2*%s);\n", kVar, pkSize)
	b.WriteString("real2 odd = multiplyComplex(make_real2(cos(angle), sin(angle)), fa-fb);\n")
	b.WriteString("out[index] = even+make_real2(-odd.y, odd.x);\n")
	footer()

	// One complex sample splits back into two adjacent real samples.
	header(UnpackBackward.EntryName(), "real2", "real")
	b.WriteString("real2 v = in[index];\n")
	fmt.Fprintf(&b, "out[%s] = v.x;\n", fullIdx("2*"+kVar))
	fmt.Fprintf(&b, "out[%s] = v.y;\n", fullIdx("2*"+kVar+"+1"))
	footer()

	return b.String(), defines
}
