package gpu_test

import (
	"math"
	"math/cmplx"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	algofft3d "github.com/cwbudde/algo-fft3d"
	"github.com/cwbudde/algo-fft3d/gpu"
)

// refDFT1 is the O(n^2) reference transform with the forward convention
// sum x[t]*exp(-2*pi*i*k*t/n).
func refDFT1(in []complex128) []complex128 {
	n := len(in)
	out := make([]complex128, n)
	for k := 0; k < n; k++ {
		var sum complex128
		for t := 0; t < n; t++ {
			a := -2 * math.Pi * float64(k*t) / float64(n)
			sum += in[t] * cmplx.Exp(complex(0, a))
		}
		out[k] = sum
	}
	return out
}

// refDFT3 applies the reference transform along each axis of a row-major
// (X, Y, Z) grid.
func refDFT3(shape algofft3d.GridShape, in []complex128) []complex128 {
	xs, ys, zs := shape.X, shape.Y, shape.Z
	out := append([]complex128(nil), in...)
	idx := func(x, y, z int) int { return (x*ys+y)*zs + z }

	row := make([]complex128, zs)
	for x := 0; x < xs; x++ {
		for y := 0; y < ys; y++ {
			for z := 0; z < zs; z++ {
				row[z] = out[idx(x, y, z)]
			}
			for z, v := range refDFT1(row) {
				out[idx(x, y, z)] = v
			}
		}
	}
	col := make([]complex128, ys)
	for x := 0; x < xs; x++ {
		for z := 0; z < zs; z++ {
			for y := 0; y < ys; y++ {
				col[y] = out[idx(x, y, z)]
			}
			for y, v := range refDFT1(col) {
				out[idx(x, y, z)] = v
			}
		}
	}
	pile := make([]complex128, xs)
	for y := 0; y < ys; y++ {
		for z := 0; z < zs; z++ {
			for x := 0; x < xs; x++ {
				pile[x] = out[idx(x, y, z)]
			}
			for x, v := range refDFT1(pile) {
				out[idx(x, y, z)] = v
			}
		}
	}
	return out
}

func randomGrid(rng *rand.Rand, n int) []complex128 {
	out := make([]complex128, n)
	for i := range out {
		out[i] = complex(rng.Float64()*2-1, rng.Float64()*2-1)
	}
	return out
}

func newPlanBuffers(t *testing.T, plan *algofft3d.Plan, exec *gpu.HostExecutor) (algofft3d.Buffer, algofft3d.Buffer) {
	t.Helper()
	a, err := exec.NewBuffer(plan.MinBufferWords())
	require.NoError(t, err)
	b, err := exec.NewBuffer(plan.MinBufferWords())
	require.NoError(t, err)
	t.Cleanup(func() {
		a.Close()
		b.Close()
	})
	return a, b
}

func requireGridClose(t *testing.T, want, got []complex128, tol float64) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		require.InDeltaf(t, real(want[i]), real(got[i]), tol, "element %d real part", i)
		require.InDeltaf(t, imag(want[i]), imag(got[i]), tol, "element %d imaginary part", i)
	}
}

func TestComplexForwardMatchesReference(t *testing.T) {
	rng := rand.New(rand.NewSource(21))
	exec := gpu.NewHostExecutor()
	for _, shape := range []algofft3d.GridShape{
		{X: 3, Y: 4, Z: 5},
		{X: 4, Y: 4, Z: 4},
		{X: 2, Y: 7, Z: 6},
	} {
		plan, err := algofft3d.NewPlan(exec, shape, algofft3d.PlanOptions{Precision: algofft3d.PrecisionDouble})
		require.NoError(t, err)

		n := shape.Elements()
		in := randomGrid(rng, n)
		a, b := newPlanBuffers(t, plan, exec)
		require.NoError(t, a.Upload(in))
		require.NoError(t, plan.Execute(a, b, true))

		got := make([]complex128, n)
		require.NoError(t, b.Download(got))
		requireGridClose(t, refDFT3(shape, in), got, 1e-9*float64(n))
		require.NoError(t, plan.Close())
	}
}

func TestComplexRoundTripScale(t *testing.T) {
	rng := rand.New(rand.NewSource(23))
	exec := gpu.NewHostExecutor()
	for _, shape := range []algofft3d.GridShape{
		{X: 4, Y: 4, Z: 4},
		{X: 8, Y: 3, Z: 10},
		{X: 5, Y: 6, Z: 7},
	} {
		plan, err := algofft3d.NewPlan(exec, shape, algofft3d.PlanOptions{})
		require.NoError(t, err)

		n := shape.Elements()
		in := randomGrid(rng, n)
		a, b := newPlanBuffers(t, plan, exec)
		require.NoError(t, a.Upload(in))
		require.NoError(t, plan.Execute(a, b, true))
		require.NoError(t, plan.Execute(b, a, false))

		got := make([]complex128, n)
		require.NoError(t, a.Download(got))
		want := make([]complex128, n)
		for i, v := range in {
			want[i] = complex(float64(n), 0) * v
		}
		requireGridClose(t, want, got, 1e-9*float64(n))
		require.NoError(t, plan.Close())
	}
}

// The transform of a unit impulse at the origin is flat.
func TestImpulseSpectrum(t *testing.T) {
	exec := gpu.NewHostExecutor()
	shape := algofft3d.GridShape{X: 4, Y: 4, Z: 4}
	plan, err := algofft3d.NewPlan(exec, shape, algofft3d.PlanOptions{})
	require.NoError(t, err)
	defer plan.Close()

	n := shape.Elements()
	in := make([]complex128, n)
	in[0] = 1
	a, b := newPlanBuffers(t, plan, exec)
	require.NoError(t, a.Upload(in))
	require.NoError(t, plan.Execute(a, b, true))

	got := make([]complex128, n)
	require.NoError(t, b.Download(got))
	for i, v := range got {
		require.InDeltaf(t, 1, real(v), 1e-12, "element %d real part", i)
		require.InDeltaf(t, 0, imag(v), 1e-12, "element %d imaginary part", i)
	}
}

func TestRealPackedTransform(t *testing.T) {
	rng := rand.New(rand.NewSource(29))
	exec := gpu.NewHostExecutor()
	shape := algofft3d.GridShape{X: 5, Y: 6, Z: 7}
	plan, err := algofft3d.NewPlan(exec, shape, algofft3d.PlanOptions{RealToComplex: true})
	require.NoError(t, err)
	defer plan.Close()

	axis, packed := plan.PackedAxis()
	require.True(t, packed)
	require.Equal(t, algofft3d.AxisY, axis)

	n := shape.Elements()
	data := make([]float64, n)
	grid := make([]complex128, n)
	for i := range data {
		data[i] = rng.Float64()*2 - 1
		grid[i] = complex(data[i], 0)
	}

	a, b := newPlanBuffers(t, plan, exec)
	require.NoError(t, a.Upload(data))
	require.NoError(t, plan.Execute(a, b, true))

	spectrum := make([]complex128, n)
	require.NoError(t, b.Download(spectrum))
	requireGridClose(t, refDFT3(shape, grid), spectrum, 1e-9*float64(n))

	// Real input gives a Hermitian-symmetric spectrum.
	idx := func(x, y, z int) int { return (x*shape.Y+y)*shape.Z + z }
	for x := 0; x < shape.X; x++ {
		for y := 0; y < shape.Y; y++ {
			for z := 0; z < shape.Z; z++ {
				m := spectrum[idx((shape.X-x)%shape.X, (shape.Y-y)%shape.Y, (shape.Z-z)%shape.Z)]
				v := spectrum[idx(x, y, z)]
				require.InDelta(t, real(v), real(m), 1e-9*float64(n))
				require.InDelta(t, imag(v), -imag(m), 1e-9*float64(n))
			}
		}
	}

	require.NoError(t, plan.Execute(b, a, false))
	back := make([]float64, n)
	require.NoError(t, a.Download(back))
	for i := range data {
		require.InDeltaf(t, float64(n)*data[i], back[i], 1e-9*float64(n), "element %d", i)
	}
}

func TestRealDirectTransform(t *testing.T) {
	rng := rand.New(rand.NewSource(31))
	exec := gpu.NewHostExecutor()
	shape := algofft3d.GridShape{X: 5, Y: 7, Z: 9}
	plan, err := algofft3d.NewPlan(exec, shape, algofft3d.PlanOptions{RealToComplex: true})
	require.NoError(t, err)
	defer plan.Close()

	_, packed := plan.PackedAxis()
	require.False(t, packed)

	n := shape.Elements()
	data := make([]float64, n)
	grid := make([]complex128, n)
	for i := range data {
		data[i] = rng.Float64()*2 - 1
		grid[i] = complex(data[i], 0)
	}

	a, b := newPlanBuffers(t, plan, exec)
	require.NoError(t, a.Upload(data))
	require.NoError(t, plan.Execute(a, b, true))

	// Without packing the forward output keeps only the non-redundant
	// Z/2+1 columns, laid out (X, Y, Zh).
	zh := shape.Z/2 + 1
	packedOut := make([]complex128, shape.X*shape.Y*zh)
	require.NoError(t, b.Download(packedOut))
	want := refDFT3(shape, grid)
	for x := 0; x < shape.X; x++ {
		for y := 0; y < shape.Y; y++ {
			for z := 0; z < zh; z++ {
				w := want[(x*shape.Y+y)*shape.Z+z]
				g := packedOut[(x*shape.Y+y)*zh+z]
				require.InDeltaf(t, real(w), real(g), 1e-9*float64(n), "(%d,%d,%d) real part", x, y, z)
				require.InDeltaf(t, imag(w), imag(g), 1e-9*float64(n), "(%d,%d,%d) imaginary part", x, y, z)
			}
		}
	}

	require.NoError(t, plan.Execute(b, a, false))
	back := make([]float64, n)
	require.NoError(t, a.Download(back))
	for i := range data {
		require.InDeltaf(t, float64(n)*data[i], back[i], 1e-9*float64(n), "element %d", i)
	}
}

func TestPlanValidation(t *testing.T) {
	exec := gpu.NewHostExecutor()

	_, err := algofft3d.NewPlan(nil, algofft3d.GridShape{X: 4, Y: 4, Z: 4}, algofft3d.PlanOptions{})
	require.ErrorIs(t, err, algofft3d.ErrNoExecutor)

	_, err = algofft3d.NewPlan(exec, algofft3d.GridShape{X: 0, Y: 4, Z: 4}, algofft3d.PlanOptions{})
	require.ErrorIs(t, err, algofft3d.ErrInvalidShape)

	_, err = algofft3d.NewPlan(exec, algofft3d.GridShape{X: 11, Y: 4, Z: 4}, algofft3d.PlanOptions{})
	require.ErrorIs(t, err, algofft3d.ErrIllegalSize)

	shape := algofft3d.GridShape{X: 4, Y: 4, Z: 4}
	plan, err := algofft3d.NewPlan(exec, shape, algofft3d.PlanOptions{})
	require.NoError(t, err)
	require.Equal(t, shape, plan.Shape())
	require.Equal(t, 2*shape.Elements(), plan.MinBufferWords())

	a, b := newPlanBuffers(t, plan, exec)
	require.ErrorIs(t, plan.Execute(nil, b, true), algofft3d.ErrNilBuffer)
	require.ErrorIs(t, plan.Execute(a, nil, true), algofft3d.ErrNilBuffer)

	short, err := exec.NewBuffer(plan.MinBufferWords() - 2)
	require.NoError(t, err)
	defer short.Close()
	require.ErrorIs(t, plan.Execute(short, b, true), algofft3d.ErrBufferTooSmall)

	require.NoError(t, plan.Close())
	require.NoError(t, plan.Close()) // idempotent
	require.ErrorIs(t, plan.Execute(a, b, true), algofft3d.ErrClosed)
}
