package algofft3d

import "math"

// trigConstants holds the pre-derived trigonometric coefficients used by the
// closed-form radix butterflies. They are computed once per synthesis call
// and shared between the source emitter and the host interpreter so both
// agree bit-for-bit on the math.
type trigConstants struct {
	// radix-3
	r3Sin float64 // sin(pi/3)

	// radix-5
	r5Sin04    float64 // sin(0.4*pi)
	r5Sqrt5Q   float64 // 0.25*sqrt(5)
	r5SinRatio float64 // sin(0.2*pi)/sin(0.4*pi)

	// radix-7, real and imaginary combination coefficients
	r7C1, r7C2, r7C3, r7C4 float64
	r7S1, r7S2, r7S3, r7S4 float64
}

func newTrigConstants() trigConstants {
	cos2 := math.Cos(2 * math.Pi / 7)
	cos4 := math.Cos(4 * math.Pi / 7)
	cos6 := math.Cos(6 * math.Pi / 7)
	sin2 := math.Sin(2 * math.Pi / 7)
	sin4 := math.Sin(4 * math.Pi / 7)
	sin6 := math.Sin(6 * math.Pi / 7)
	return trigConstants{
		r3Sin:      math.Sin(math.Pi / 3),
		r5Sin04:    math.Sin(0.4 * math.Pi),
		r5Sqrt5Q:   0.25 * math.Sqrt(5),
		r5SinRatio: math.Sin(0.2*math.Pi) / math.Sin(0.4*math.Pi),
		r7C1:       (cos2+cos4+cos6)/3 - 1,
		r7C2:       (2*cos2 - cos4 - cos6) / 3,
		r7C3:       (cos2 - 2*cos4 + cos6) / 3,
		r7C4:       (cos2 + cos4 - 2*cos6) / 3,
		r7S1:       (sin2 + sin4 - sin6) / 3,
		r7S2:       (2*sin2 - sin4 + sin6) / 3,
		r7S3:       (sin2 - 2*sin4 - sin6) / 3,
		r7S4:       (sin2 + sin4 + 2*sin6) / 3,
	}
}

// scale multiplies a complex value by a real coefficient.
func scale(s float64, v complex128) complex128 {
	return complex(s*real(v), s*imag(v))
}

// mulMinusI rotates a complex value by -i.
func mulMinusI(v complex128) complex128 {
	return complex(imag(v), -real(v))
}

// mulPlusI rotates a complex value by +i.
func mulPlusI(v complex128) complex128 {
	return complex(-imag(v), real(v))
}

// twiddleNeg returns exp(-2*pi*i*k/n).
func twiddleNeg(k, n int) complex128 {
	a := 2 * math.Pi * float64(k) / float64(n)
	return complex(math.Cos(a), -math.Sin(a))
}

// twiddlePos returns exp(+2*pi*i*k/n).
func twiddlePos(k, n int) complex128 {
	a := 2 * math.Pi * float64(k) / float64(n)
	return complex(math.Cos(a), math.Sin(a))
}

// apply computes one radix-point butterfly with explicit real/imaginary
// arithmetic. sign is +1 for forward transforms and -1 for inverse ones,
// matching the SIGN macro in emitted source. c and y must both hold radix
// elements; outputs are pre-twiddle.
func (tc *trigConstants) apply(radix int, sign float64, c, y []complex128) {
	switch radix {
	case 2:
		y[0] = c[0] + c[1]
		y[1] = c[0] - c[1]

	case 3:
		d0 := c[1] + c[2]
		d1 := c[0] - scale(0.5, d0)
		d2 := scale(sign*tc.r3Sin, mulMinusI(c[1]-c[2]))
		y[0] = c[0] + d0
		y[1] = d1 + d2
		y[2] = d1 - d2

	case 4:
		d0 := c[0] + c[2]
		d1 := c[0] - c[2]
		d2 := c[1] + c[3]
		d3 := scale(sign, mulMinusI(c[1]-c[3]))
		y[0] = d0 + d2
		y[1] = d1 + d3
		y[2] = d0 - d2
		y[3] = d1 - d3

	case 5:
		d0 := c[1] + c[4]
		d1 := c[2] + c[3]
		d2 := scale(tc.r5Sin04, c[1]-c[4])
		d3 := scale(tc.r5Sin04, c[2]-c[3])
		d4 := d0 + d1
		d5 := scale(tc.r5Sqrt5Q, d0-d1)
		d6 := c[0] - scale(0.25, d4)
		d7 := d6 + d5
		d8 := d6 - d5
		d9 := scale(sign, mulMinusI(d2+scale(tc.r5SinRatio, d3)))
		d10 := scale(sign, mulMinusI(scale(tc.r5SinRatio, d2)-d3))
		y[0] = c[0] + d4
		y[1] = d7 + d9
		y[2] = d8 + d10
		y[3] = d8 - d10
		y[4] = d7 - d9

	case 7:
		d0 := c[1] + c[6]
		d1 := c[1] - c[6]
		d2 := c[2] + c[5]
		d3 := c[2] - c[5]
		d4 := c[4] + c[3]
		d5 := c[4] - c[3]
		d6 := d2 + d0
		d7 := d5 + d3
		b0 := c[0] + d6 + d4
		b1 := scale(tc.r7C1, d6+d4)
		b2 := scale(tc.r7C2, d0-d4)
		b3 := scale(tc.r7C3, d4-d2)
		b4 := scale(tc.r7C4, d2-d0)
		b5 := scale(-sign*tc.r7S1, d7+d1)
		b6 := scale(-sign*tc.r7S2, d1-d5)
		b7 := scale(-sign*tc.r7S3, d5-d3)
		b8 := scale(-sign*tc.r7S4, d3-d1)
		t0 := b0 + b1
		t1 := b2 + b3
		t2 := b4 - b3
		t3 := -b2 - b4
		t4 := b6 + b7
		t5 := b8 - b7
		t6 := -b8 - b6
		t7 := t0 + t1
		t8 := t0 + t2
		t9 := t0 + t3
		t10 := mulMinusI(t4 + b5)
		t11 := mulMinusI(t5 + b5)
		t12 := mulMinusI(t6 + b5)
		y[0] = b0
		y[1] = t7 - t10
		y[2] = t9 - t12
		y[3] = t8 + t11
		y[4] = t8 - t11
		y[5] = t9 + t12
		y[6] = t7 + t10

	default:
		panic("algofft3d: unsupported radix")
	}
}
