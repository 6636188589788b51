package algofft3d

import (
	"math"
	"math/cmplx"
	"math/rand"
	"testing"
)

// naiveDFT is the O(n^2) reference transform. sign follows the kernel
// convention: +1 computes sum x[t]*exp(-2*pi*i*k*t/n), -1 the unnormalized
// inverse.
func naiveDFT(sign float64, in []complex128) []complex128 {
	n := len(in)
	out := make([]complex128, n)
	for k := 0; k < n; k++ {
		var sum complex128
		for t := 0; t < n; t++ {
			a := -sign * 2 * math.Pi * float64(k*t) / float64(n)
			sum += in[t] * cmplx.Exp(complex(0, a))
		}
		out[k] = sum
	}
	return out
}

// makeTwiddleTable builds the sign-free table of (cos, sin) pairs of
// exp(+2*pi*i*j/n) that axis kernels expect.
func makeTwiddleTable(n int) []float64 {
	w := make([]float64, 2*n)
	for j := 0; j < n; j++ {
		a := 2 * math.Pi * float64(j) / float64(n)
		w[2*j] = math.Cos(a)
		w[2*j+1] = math.Sin(a)
	}
	return w
}

func randomComplex(rng *rand.Rand, n int) []complex128 {
	out := make([]complex128, n)
	for i := range out {
		out[i] = complex(rng.Float64()*2-1, rng.Float64()*2-1)
	}
	return out
}

func complexWords(v []complex128) []float64 {
	out := make([]float64, 2*len(v))
	for i, c := range v {
		out[2*i] = real(c)
		out[2*i+1] = imag(c)
	}
	return out
}

func wordsComplex(w []float64) []complex128 {
	out := make([]complex128, len(w)/2)
	for i := range out {
		out[i] = complex(w[2*i], w[2*i+1])
	}
	return out
}

func requireClose(t *testing.T, want, got []complex128, tol float64, context string) {
	t.Helper()
	if len(want) != len(got) {
		t.Fatalf("%s: length mismatch: want %d, got %d", context, len(want), len(got))
	}
	for i := range want {
		if cmplx.Abs(want[i]-got[i]) > tol {
			t.Fatalf("%s: element %d: want %v, got %v (tol %g)", context, i, want[i], got[i], tol)
		}
	}
}
