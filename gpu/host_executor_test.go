package gpu

import (
	"testing"

	"github.com/stretchr/testify/require"

	algofft3d "github.com/cwbudde/algo-fft3d"
)

func TestMaxBlockThreads(t *testing.T) {
	exec := NewHostExecutor()
	require.Equal(t, 256, exec.MaxBlockThreads(algofft3d.PrecisionSingle))
	require.Equal(t, 128, exec.MaxBlockThreads(algofft3d.PrecisionDouble))
}

func TestDeviceInfo(t *testing.T) {
	exec := NewHostExecutor()
	require.NotEmpty(t, exec.Info().Name)
	require.NotEmpty(t, exec.Device().ComputeCap)
}

func TestBufferUploadDownload(t *testing.T) {
	exec := NewHostExecutor()
	buf, err := exec.NewBuffer(8)
	require.NoError(t, err)
	require.Equal(t, 8, buf.Words())

	require.NoError(t, buf.Upload([]float64{1, 2, 3, 4}))
	got := make([]float64, 4)
	require.NoError(t, buf.Download(got))
	require.Equal(t, []float64{1, 2, 3, 4}, got)

	require.NoError(t, buf.Upload([]complex128{1 + 2i, 3 + 4i}))
	gotC := make([]complex128, 2)
	require.NoError(t, buf.Download(gotC))
	require.Equal(t, []complex128{1 + 2i, 3 + 4i}, gotC)

	require.ErrorIs(t, buf.Upload([]float64{1, 2, 3, 4, 5, 6, 7, 8, 9}), algofft3d.ErrBufferTooSmall)
	require.ErrorIs(t, buf.Upload([]complex128{1, 2, 3, 4, 5}), algofft3d.ErrBufferTooSmall)
	require.ErrorIs(t, buf.Upload([]int{1}), ErrUnsupportedData)
	require.ErrorIs(t, buf.Download([]int{1}), ErrUnsupportedData)

	require.NoError(t, buf.Close())
	require.ErrorIs(t, buf.Upload([]float64{1}), ErrBufferClosed)
	require.ErrorIs(t, buf.Download(got), ErrBufferClosed)

	_, err = exec.NewBuffer(-1)
	require.ErrorIs(t, err, ErrInvalidLaunch)
}

func TestBuildProgramValidation(t *testing.T) {
	exec := NewHostExecutor()

	_, err := exec.BuildProgram(nil)
	require.ErrorIs(t, err, ErrInvalidProgram)

	_, err = exec.BuildProgram(&algofft3d.Program{})
	require.ErrorIs(t, err, ErrInvalidProgram)

	_, err = exec.BuildProgram(&algofft3d.Program{Source: "// no kernels"})
	require.ErrorIs(t, err, ErrInvalidProgram)
}

func buildAxisModule(t *testing.T) (*HostExecutor, algofft3d.Module) {
	t.Helper()
	exec := NewHostExecutor()
	set, err := algofft3d.GeneratePrograms(algofft3d.GridShape{X: 2, Y: 2, Z: 4}, algofft3d.PlanOptions{}, 128)
	require.NoError(t, err)
	mod, err := exec.BuildProgram(set.Axis[0])
	require.NoError(t, err)
	return exec, mod
}

func TestModuleEntryPoints(t *testing.T) {
	_, mod := buildAxisModule(t)

	ep, err := mod.EntryPoint("execFFT")
	require.NoError(t, err)
	require.True(t, ep.Valid())
	require.False(t, ep.Grouped())

	_, err = mod.EntryPoint("noSuchKernel")
	require.ErrorIs(t, err, ErrUnknownKernel)

	require.NoError(t, mod.Release())
	_, err = mod.EntryPoint("execFFT")
	require.ErrorIs(t, err, ErrReleased)
}

type foreignHandle struct{}

func (foreignHandle) Name() string { return "foreign" }

func TestLaunchValidation(t *testing.T) {
	exec, mod := buildAxisModule(t)
	ep, err := mod.EntryPoint("execFFT")
	require.NoError(t, err)

	in, err := exec.NewBuffer(32)
	require.NoError(t, err)
	out, err := exec.NewBuffer(32)
	require.NoError(t, err)
	w, err := exec.NewBuffer(8)
	require.NoError(t, err)
	args := []algofft3d.Buffer{in, out, w}

	require.ErrorIs(t, exec.Launch(algofft3d.EntryPoint{}, args, 16, 16), ErrInvalidLaunch)
	require.ErrorIs(t, exec.Launch(ep, args, 0, 16), ErrInvalidLaunch)
	require.ErrorIs(t, exec.Launch(ep, args, 16, 0), ErrInvalidLaunch)
	require.ErrorIs(t, exec.Launch(ep, args[:2], 16, 16), ErrInvalidLaunch)

	foreign := algofft3d.SingleEntryPoint(foreignHandle{})
	require.ErrorIs(t, exec.Launch(foreign, args, 16, 16), ErrInvalidLaunch)

	require.NoError(t, exec.Launch(ep, args, 16, 16))
}

// A grouped entry point runs its handles in order: pack then unpack is the
// identity on real data.
func TestGroupedEntryPointLaunch(t *testing.T) {
	exec := NewHostExecutor()
	shape := algofft3d.GridShape{X: 2, Y: 3, Z: 3}
	set, err := algofft3d.GeneratePrograms(shape, algofft3d.PlanOptions{RealToComplex: true}, 128)
	require.NoError(t, err)
	require.NotNil(t, set.Pack)

	mod, err := exec.BuildProgram(set.Pack)
	require.NoError(t, err)
	packEP, err := mod.EntryPoint(algofft3d.PackForward.EntryName())
	require.NoError(t, err)
	unpackEP, err := mod.EntryPoint(algofft3d.UnpackBackward.EntryName())
	require.NoError(t, err)

	group := algofft3d.GroupEntryPoint(packEP.Handles()[0], unpackEP.Handles()[0])
	require.True(t, group.Grouped())
	require.Len(t, group.Handles(), 2)

	// Grouped launches reuse one argument list, so route pack and unpack
	// through the same buffer pair by aliasing in as the final output.
	n := shape.Elements()
	in, err := exec.NewBuffer(2 * n)
	require.NoError(t, err)
	scratch, err := exec.NewBuffer(2 * n)
	require.NoError(t, err)

	data := make([]float64, n)
	for i := range data {
		data[i] = float64(i + 1)
	}
	require.NoError(t, in.Upload(data))
	require.NoError(t, exec.Launch(algofft3d.SingleEntryPoint(packEP.Handles()[0]), []algofft3d.Buffer{in, scratch}, n/2, 128))
	require.NoError(t, exec.Launch(algofft3d.SingleEntryPoint(unpackEP.Handles()[0]), []algofft3d.Buffer{scratch, in}, n/2, 128))

	got := make([]float64, n)
	require.NoError(t, in.Download(got))
	require.Equal(t, data, got)

	// The same pair as one grouped launch cannot alias buffers per handle,
	// but still runs in order: pack(in, scratch) then unpack(in, scratch)
	// overwrites scratch with the unpacked view of in.
	require.NoError(t, exec.Launch(group, []algofft3d.Buffer{in, scratch}, n/2, 128))
}

func TestHostCapability(t *testing.T) {
	require.NotEmpty(t, hostCapability())
}
