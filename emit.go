package algofft3d

import (
	"fmt"
	"math"
	"strings"
)

// emitFFTKernel lowers an axis kernel spec to device source text. The
// returned define map carries the substitution keys the program was built
// with, so externally cached or diffed source stays reproducible.
func emitFFTKernel(spec *KernelSpec, tc trigConstants, prec Precision) (string, map[string]string) {
	compute := emitStages(spec, tc, prec)

	inputType := "real2"
	if spec.InputIsReal {
		inputType = "real"
	}
	outputType := "real2"
	if spec.OutputIsReal {
		outputType = "real"
	}
	sign := "1"
	if spec.Sign < 0 {
		sign = "-1"
	}
	defines := map[string]string{
		"XSIZE":             intToSource(spec.XSize),
		"YSIZE":             intToSource(spec.YSize),
		"ZSIZE":             intToSource(spec.ZSize),
		"BLOCKS_PER_GROUP":  intToSource(spec.BlocksPerGroup),
		"THREADS_PER_BLOCK": intToSource(spec.ThreadsPerBlock),
		"M_PI":              floatToSource(math.Pi, prec),
		"SIGN":              sign,
		"INPUT_TYPE":        inputType,
		"OUTPUT_TYPE":       outputType,
		"INPUT_IS_REAL":     boolToSource(spec.InputIsReal),
		"INPUT_IS_PACKED":   boolToSource(spec.InputIsPacked),
		"OUTPUT_IS_PACKED":  boolToSource(spec.OutputIsPacked),
		"COMPUTE_FFT":       compute,
	}

	var b strings.Builder
	b.WriteString(emitVectorOps(prec))
	for _, key := range [...]string{
		"XSIZE", "YSIZE", "ZSIZE", "BLOCKS_PER_GROUP", "THREADS_PER_BLOCK",
		"M_PI", "SIGN", "INPUT_IS_REAL", "INPUT_IS_PACKED", "OUTPUT_IS_PACKED",
	} {
		fmt.Fprintf(&b, "#define %s %s\n", key, defines[key])
	}
	b.WriteString("#define TWIDDLE(i) make_real2(w[i].x, -(SIGN)*w[i].y)\n\n")

	fmt.Fprintf(&b, "extern \"C\" __global__ void execFFT(const %s* __restrict__ in, %s* __restrict__ out, const real2* __restrict__ w) {\n",
		inputType, outputType)
	b.WriteString("__shared__ real2 data0[BLOCKS_PER_GROUP*ZSIZE];\n")
	b.WriteString("__shared__ real2 data1[BLOCKS_PER_GROUP*ZSIZE];\n")
	b.WriteString("int block = threadIdx.x/THREADS_PER_BLOCK;\n")
	b.WriteString("int index = blockIdx.x*BLOCKS_PER_GROUP+block;\n")
	b.WriteString("int x = index%XSIZE;\n")
	b.WriteString("int y = index/XSIZE;\n")
	b.WriteString("if (index < XSIZE*YSIZE)\n")
	b.WriteString("for (int i = threadIdx.x-block*THREADS_PER_BLOCK; i < ZSIZE; i += THREADS_PER_BLOCK)\n")
	switch {
	case spec.InputIsReal:
		b.WriteString("data0[i+block*ZSIZE] = make_real2(in[x*(YSIZE*ZSIZE)+y*ZSIZE+i], 0);\n")
	case spec.InputIsPacked:
		b.WriteString("{\n")
		b.WriteString("real2 v;\n")
		b.WriteString("if (i < ZSIZE/2+1)\n")
		b.WriteString("v = in[x*(YSIZE*(ZSIZE/2+1))+y*(ZSIZE/2+1)+i];\n")
		b.WriteString("else {\n")
		b.WriteString("v = in[((XSIZE-x)%XSIZE)*(YSIZE*(ZSIZE/2+1))+((YSIZE-y)%YSIZE)*(ZSIZE/2+1)+(ZSIZE-i)];\n")
		b.WriteString("v.y = -v.y;\n")
		b.WriteString("}\n")
		b.WriteString("data0[i+block*ZSIZE] = v;\n")
		b.WriteString("}\n")
	default:
		b.WriteString("data0[i+block*ZSIZE] = in[x*(YSIZE*ZSIZE)+y*ZSIZE+i];\n")
	}
	b.WriteString("__syncthreads();\n")
	b.WriteString(compute)

	final := len(spec.Stages) % 2
	outputSuffix := ""
	if spec.OutputIsReal {
		outputSuffix = ".x"
	}
	if spec.OutputIsPacked {
		b.WriteString("if (index < XSIZE*YSIZE && x < XSIZE/2+1)\n")
	} else {
		b.WriteString("if (index < XSIZE*YSIZE)\n")
	}
	b.WriteString("for (int i = threadIdx.x-block*THREADS_PER_BLOCK; i < ZSIZE; i += THREADS_PER_BLOCK)\n")
	if spec.OutputIsPacked {
		fmt.Fprintf(&b, "out[y*(ZSIZE*(XSIZE/2+1))+i*(XSIZE/2+1)+x] = data%d[i+block*ZSIZE]%s;\n", final, outputSuffix)
	} else {
		fmt.Fprintf(&b, "out[y*(ZSIZE*XSIZE)+i*XSIZE+x] = data%d[i+block*ZSIZE]%s;\n", final, outputSuffix)
	}
	b.WriteString("}\n")
	return b.String(), defines
}

// emitVectorOps emits the real/real2 typedefs and the small operator set the
// butterfly code relies on.
func emitVectorOps(prec Precision) string {
	real2, maker := "float2", "make_float2"
	if prec == PrecisionDouble {
		real2, maker = "double2", "make_double2"
	}
	var b strings.Builder
	if prec == PrecisionDouble {
		b.WriteString("typedef double real;\n")
	} else {
		b.WriteString("typedef float real;\n")
	}
	fmt.Fprintf(&b, "typedef %s real2;\n", real2)
	fmt.Fprintf(&b, "#define make_real2 %s\n", maker)
	b.WriteString("__device__ inline real2 operator+(real2 a, real2 b) { return make_real2(a.x+b.x, a.y+b.y); }\n")
	b.WriteString("__device__ inline real2 operator-(real2 a, real2 b) { return make_real2(a.x-b.x, a.y-b.y); }\n")
	b.WriteString("__device__ inline real2 operator-(real2 a) { return make_real2(-a.x, -a.y); }\n")
	b.WriteString("__device__ inline real2 operator*(real a, real2 b) { return make_real2(a*b.x, a*b.y); }\n")
	b.WriteString("__device__ inline real2 multiplyComplex(real2 a, real2 b) { return make_real2(a.x*b.x-a.y*b.y, a.x*b.y+a.y*b.x); }\n\n")
	return b.String()
}

// emitStages emits the full Cooley-Tukey stage loop body: one block per
// stage, closed-form butterfly per radix, barrier after every stage.
func emitStages(spec *KernelSpec, tc trigConstants, prec Precision) string {
	var b strings.Builder
	zs := spec.ZSize
	f := func(v float64) string { return floatToSource(v, prec) }
	for stage, st := range spec.Stages {
		input := stage % 2
		output := 1 - input
		radix, l, m := st.Radix, st.L, st.M

		b.WriteString("{\n")
		fmt.Fprintf(&b, "// Pass %d (radix %d)\n", stage+1, radix)
		if l*m < spec.ThreadsPerBlock {
			fmt.Fprintf(&b, "if (threadIdx.x < %d) {\n", spec.BlocksPerGroup*l*m)
		} else {
			b.WriteString("{\n")
		}
		fmt.Fprintf(&b, "int block = threadIdx.x/%d;\n", l*m)
		fmt.Fprintf(&b, "int i = threadIdx.x-block*%d;\n", l*m)
		fmt.Fprintf(&b, "int base = i+block*%d;\n", zs)
		fmt.Fprintf(&b, "int j = i/%d;\n", m)
		fmt.Fprintf(&b, "real2 c0 = data%d[base];\n", input)
		for t := 1; t < radix; t++ {
			fmt.Fprintf(&b, "real2 c%d = data%d[base+%d];\n", t, input, t*l*m)
		}

		var outs [7]string
		switch radix {
		case 2:
			outs[0] = "c0+c1"
			outs[1] = "c0-c1"

		case 3:
			fmt.Fprintf(&b, "real2 d0 = c1+c2;\n")
			fmt.Fprintf(&b, "real2 d1 = c0-%s*d0;\n", f(0.5))
			fmt.Fprintf(&b, "real2 d2 = (SIGN)*%s*make_real2(c1.y-c2.y, c2.x-c1.x);\n", f(tc.r3Sin))
			outs[0] = "c0+d0"
			outs[1] = "d1+d2"
			outs[2] = "d1-d2"

		case 4:
			b.WriteString("real2 d0 = c0+c2;\n")
			b.WriteString("real2 d1 = c0-c2;\n")
			b.WriteString("real2 d2 = c1+c3;\n")
			b.WriteString("real2 d3 = (SIGN)*make_real2(c1.y-c3.y, c3.x-c1.x);\n")
			outs[0] = "d0+d2"
			outs[1] = "d1+d3"
			outs[2] = "d0-d2"
			outs[3] = "d1-d3"

		case 5:
			b.WriteString("real2 d0 = c1+c4;\n")
			b.WriteString("real2 d1 = c2+c3;\n")
			fmt.Fprintf(&b, "real2 d2 = %s*(c1-c4);\n", f(tc.r5Sin04))
			fmt.Fprintf(&b, "real2 d3 = %s*(c2-c3);\n", f(tc.r5Sin04))
			b.WriteString("real2 d4 = d0+d1;\n")
			fmt.Fprintf(&b, "real2 d5 = %s*(d0-d1);\n", f(tc.r5Sqrt5Q))
			fmt.Fprintf(&b, "real2 d6 = c0-%s*d4;\n", f(0.25))
			b.WriteString("real2 d7 = d6+d5;\n")
			b.WriteString("real2 d8 = d6-d5;\n")
			ratio := f(tc.r5SinRatio)
			fmt.Fprintf(&b, "real2 d9 = (SIGN)*make_real2(d2.y+%s*d3.y, -d2.x-%s*d3.x);\n", ratio, ratio)
			fmt.Fprintf(&b, "real2 d10 = (SIGN)*make_real2(%s*d2.y-d3.y, d3.x-%s*d2.x);\n", ratio, ratio)
			outs[0] = "c0+d4"
			outs[1] = "d7+d9"
			outs[2] = "d8+d10"
			outs[3] = "d8-d10"
			outs[4] = "d7-d9"

		case 7:
			b.WriteString("real2 d0 = c1+c6;\n")
			b.WriteString("real2 d1 = c1-c6;\n")
			b.WriteString("real2 d2 = c2+c5;\n")
			b.WriteString("real2 d3 = c2-c5;\n")
			b.WriteString("real2 d4 = c4+c3;\n")
			b.WriteString("real2 d5 = c4-c3;\n")
			b.WriteString("real2 d6 = d2+d0;\n")
			b.WriteString("real2 d7 = d5+d3;\n")
			b.WriteString("real2 b0 = c0+d6+d4;\n")
			fmt.Fprintf(&b, "real2 b1 = %s*(d6+d4);\n", f(tc.r7C1))
			fmt.Fprintf(&b, "real2 b2 = %s*(d0-d4);\n", f(tc.r7C2))
			fmt.Fprintf(&b, "real2 b3 = %s*(d4-d2);\n", f(tc.r7C3))
			fmt.Fprintf(&b, "real2 b4 = %s*(d2-d0);\n", f(tc.r7C4))
			fmt.Fprintf(&b, "real2 b5 = -(SIGN)*%s*(d7+d1);\n", f(tc.r7S1))
			fmt.Fprintf(&b, "real2 b6 = -(SIGN)*%s*(d1-d5);\n", f(tc.r7S2))
			fmt.Fprintf(&b, "real2 b7 = -(SIGN)*%s*(d5-d3);\n", f(tc.r7S3))
			fmt.Fprintf(&b, "real2 b8 = -(SIGN)*%s*(d3-d1);\n", f(tc.r7S4))
			b.WriteString("real2 t0 = b0+b1;\n")
			b.WriteString("real2 t1 = b2+b3;\n")
			b.WriteString("real2 t2 = b4-b3;\n")
			b.WriteString("real2 t3 = -b2-b4;\n")
			b.WriteString("real2 t4 = b6+b7;\n")
			b.WriteString("real2 t5 = b8-b7;\n")
			b.WriteString("real2 t6 = -b8-b6;\n")
			b.WriteString("real2 t7 = t0+t1;\n")
			b.WriteString("real2 t8 = t0+t2;\n")
			b.WriteString("real2 t9 = t0+t3;\n")
			b.WriteString("real2 t10 = make_real2(t4.y+b5.y, -(t4.x+b5.x));\n")
			b.WriteString("real2 t11 = make_real2(t5.y+b5.y, -(t5.x+b5.x));\n")
			b.WriteString("real2 t12 = make_real2(t6.y+b5.y, -(t6.x+b5.x));\n")
			outs[0] = "b0"
			outs[1] = "t7-t10"
			outs[2] = "t9-t12"
			outs[3] = "t8+t11"
			outs[4] = "t8-t11"
			outs[5] = "t9+t12"
			outs[6] = "t7+t10"
		}

		fmt.Fprintf(&b, "data%d[base+%d*j*%d] = %s;\n", output, radix-1, m, outs[0])
		for t := 1; t < radix; t++ {
			fmt.Fprintf(&b, "data%d[base+(%d*j+%d)*%d] = multiplyComplex(TWIDDLE(j*%d/%d), %s);\n",
				output, radix-1, t, m, t*zs, radix*l, outs[t])
		}
		b.WriteString("}\n")
		b.WriteString("__syncthreads();\n")
		b.WriteString("}\n")
	}
	return b.String()
}

func boolToSource(v bool) string {
	if v {
		return "1"
	}
	return "0"
}
