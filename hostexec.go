package algofft3d

// Host-side reference execution of kernel specs. This is the semantic ground
// truth for the emitted device source: the gpu.HostExecutor backend runs
// plans through these interpreters, and the tests pin them against an
// independent DFT. Buffers are raw scalar words, interleaved real/imaginary
// for complex data, exactly like device memory.

// ExecuteHost runs the axis kernel on host memory. in and out are raw word
// slices; w is the caller-supplied twiddle table for this kernel's transform
// length, laid out as ZSize (cos, sin) pairs of the positive root
// exp(+2*pi*i*j/ZSize). The kernel folds in the direction sign.
func (k *KernelSpec) ExecuteHost(in, out, w []float64) error {
	xs, ys, zs := k.XSize, k.YSize, k.ZSize
	if len(w) < 2*zs {
		return ErrBufferTooSmall
	}
	if len(in) < k.inputWords() || len(out) < k.outputWords() {
		return ErrBufferTooSmall
	}
	tc := newTrigConstants()
	cur := make([]complex128, zs)
	next := make([]complex128, zs)
	half := zs/2 + 1
	outHalf := xs/2 + 1

	for y := 0; y < ys; y++ {
		for x := 0; x < xs; x++ {
			switch {
			case k.InputIsReal:
				for i := 0; i < zs; i++ {
					cur[i] = complex(in[x*(ys*zs)+y*zs+i], 0)
				}
			case k.InputIsPacked:
				// Hermitian-packed input stores only ZSize/2+1 columns; the
				// missing ones are the conjugate of the mirrored row.
				for i := 0; i < zs; i++ {
					if i < half {
						e := x*(ys*half) + y*half + i
						cur[i] = complex(in[2*e], in[2*e+1])
					} else {
						e := ((xs-x)%xs)*(ys*half) + ((ys-y)%ys)*half + (zs - i)
						cur[i] = complex(in[2*e], -in[2*e+1])
					}
				}
			default:
				for i := 0; i < zs; i++ {
					e := x*(ys*zs) + y*zs + i
					cur[i] = complex(in[2*e], in[2*e+1])
				}
			}

			for _, st := range k.Stages {
				runStage(&tc, st, k.Sign, cur, next, w)
				cur, next = next, cur
			}

			switch {
			case k.OutputIsPacked:
				if x < outHalf {
					for i := 0; i < zs; i++ {
						e := y*(zs*outHalf) + i*outHalf + x
						out[2*e] = real(cur[i])
						out[2*e+1] = imag(cur[i])
					}
				}
			case k.OutputIsReal:
				for i := 0; i < zs; i++ {
					out[y*(zs*xs)+i*xs+x] = real(cur[i])
				}
			default:
				for i := 0; i < zs; i++ {
					e := y*(zs*xs) + i*xs + x
					out[2*e] = real(cur[i])
					out[2*e+1] = imag(cur[i])
				}
			}
		}
	}
	return nil
}

// runStage executes one decomposition stage: gather radix samples strided by
// L*M from the current buffer, butterfly, twiddle, scatter strided by M into
// the next buffer. The buffer swap after each stage replaces the device-side
// barrier plus data0/data1 ping-pong.
func runStage(tc *trigConstants, st Stage, sign float64, cur, next []complex128, w []float64) {
	r, l, m := st.Radix, st.L, st.M
	var c, y [7]complex128
	for i := 0; i < l*m; i++ {
		j := i / m
		for t := 0; t < r; t++ {
			c[t] = cur[i+t*l*m]
		}
		tc.apply(r, sign, c[:r], y[:r])
		for t := 0; t < r; t++ {
			idx := j * t * m // == j*t*ZSize/(radix*L)
			tw := complex(w[2*idx], -sign*w[2*idx+1])
			next[i+((r-1)*j+t)*m] = tw * y[t]
		}
	}
}

// inputWords returns the minimum input capacity in scalar words.
func (k *KernelSpec) inputWords() int {
	switch {
	case k.InputIsReal:
		return k.XSize * k.YSize * k.ZSize
	case k.InputIsPacked:
		return 2 * k.XSize * k.YSize * (k.ZSize/2 + 1)
	default:
		return 2 * k.XSize * k.YSize * k.ZSize
	}
}

// outputWords returns the minimum output capacity in scalar words.
func (k *KernelSpec) outputWords() int {
	switch {
	case k.OutputIsPacked:
		return 2 * k.YSize * k.ZSize * (k.XSize/2 + 1)
	case k.OutputIsReal:
		return k.XSize * k.YSize * k.ZSize
	default:
		return 2 * k.XSize * k.YSize * k.ZSize
	}
}

// ExecuteHost runs the packing kernel on host memory. Layout is row-major
// (X, Y, Z) for both the full and the packed grid.
func (s *PackSpec) ExecuteHost(in, out []float64) error {
	f, p := s.Shape, s.Packed
	if len(in) < s.inputWords() || len(out) < s.outputWords() {
		return ErrBufferTooSmall
	}
	idxF := func(x, y, z int) int { return (x*f.Y+y)*f.Z + z }
	idxP := func(x, y, z int) int { return (x*p.Y+y)*p.Z + z }

	// m is the packed length of the halved axis, n its full length.
	var m int
	switch s.Axis {
	case AxisX:
		m = p.X
	case AxisY:
		m = p.Y
	default:
		m = p.Z
	}
	n := 2 * m

	// full returns the full-grid index with the packed axis set to k.
	full := func(x, y, z, k int) int {
		switch s.Axis {
		case AxisX:
			return idxF(k, y, z)
		case AxisY:
			return idxF(x, k, z)
		default:
			return idxF(x, y, k)
		}
	}
	axisCoord := func(x, y, z int) int {
		switch s.Axis {
		case AxisX:
			return x
		case AxisY:
			return y
		default:
			return z
		}
	}

	for x := 0; x < p.X; x++ {
		for y := 0; y < p.Y; y++ {
			for z := 0; z < p.Z; z++ {
				e := idxP(x, y, z)
				k := axisCoord(x, y, z)
				switch s.Kind {
				case PackForward:
					// Two adjacent real samples become one complex sample.
					out[2*e] = in[full(x, y, z, 2*k)]
					out[2*e+1] = in[full(x, y, z, 2*k+1)]

				case UnpackForward:
					// Split the packed spectrum into even/odd sub-spectra and
					// recombine into the full Hermitian-symmetric spectrum.
					// The mirror cell negates every axis frequency.
					g := complex(in[2*e], in[2*e+1])
					me := idxP((p.X-x)%p.X, (p.Y-y)%p.Y, (p.Z-z)%p.Z)
					gm := complex(in[2*me], -in[2*me+1])
					even := scale(0.5, g+gm)
					odd := scale(0.5, mulMinusI(g-gm))
					wk := twiddleNeg(k, n)
					hi := even + wk*odd
					lo := even - wk*odd
					a := full(x, y, z, k)
					b := full(x, y, z, k+m)
					out[2*a] = real(hi)
					out[2*a+1] = imag(hi)
					out[2*b] = real(lo)
					out[2*b+1] = imag(lo)

				case PackBackward:
					// Rebuild the packed spectrum from the full one. The
					// factor 2 folded in here restores the round-trip scale
					// to exactly XSIZE*YSIZE*ZSIZE.
					a := full(x, y, z, k)
					b := full(x, y, z, k+m)
					fa := complex(in[2*a], in[2*a+1])
					fb := complex(in[2*b], in[2*b+1])
					even := fa + fb
					odd := twiddlePos(k, n) * (fa - fb)
					v := even + mulPlusI(odd)
					out[2*e] = real(v)
					out[2*e+1] = imag(v)

				case UnpackBackward:
					// One complex sample splits back into two adjacent reals.
					out[full(x, y, z, 2*k)] = in[2*e]
					out[full(x, y, z, 2*k+1)] = in[2*e+1]
				}
			}
		}
	}
	return nil
}

func (s *PackSpec) inputWords() int {
	switch s.Kind {
	case PackForward:
		return s.Shape.Elements()
	case PackBackward:
		return 2 * s.Shape.Elements()
	default:
		return 2 * s.Packed.Elements()
	}
}

func (s *PackSpec) outputWords() int {
	switch s.Kind {
	case UnpackForward:
		return 2 * s.Shape.Elements()
	case UnpackBackward:
		return s.Shape.Elements()
	default:
		return 2 * s.Packed.Elements()
	}
}
