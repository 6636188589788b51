//go:build cuda

package gpu

import algofft3d "github.com/cwbudde/algo-fft3d"

// CUDAExecutor is a stub executor enabled with the "cuda" build tag. A full
// implementation would compile Program.Source with nvrtc and launch the
// resulting CUfunctions.
type CUDAExecutor struct{}

func (e *CUDAExecutor) Info() ExecutorInfo {
	return ExecutorInfo{
		Name:        "cuda",
		Version:     "stub",
		Description: "CUDA executor stub (no implementation)",
	}
}

func (e *CUDAExecutor) MaxBlockThreads(p algofft3d.Precision) int {
	if p == algofft3d.PrecisionDouble {
		return 128
	}
	return 256
}

func (e *CUDAExecutor) NewBuffer(words int) (algofft3d.Buffer, error) {
	return nil, ErrUnavailable
}

func (e *CUDAExecutor) BuildProgram(prog *algofft3d.Program) (algofft3d.Module, error) {
	return nil, ErrUnavailable
}

func (e *CUDAExecutor) Launch(ep algofft3d.EntryPoint, args []algofft3d.Buffer, totalThreads, blockSize int) error {
	return ErrUnavailable
}
