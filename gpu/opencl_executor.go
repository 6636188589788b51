//go:build opencl

package gpu

import algofft3d "github.com/cwbudde/algo-fft3d"

// OpenCLExecutor is a stub executor enabled with the "opencl" build tag. A
// full implementation would build Program.Source with clBuildProgram and
// enqueue the resulting kernels.
type OpenCLExecutor struct{}

func (e *OpenCLExecutor) Info() ExecutorInfo {
	return ExecutorInfo{
		Name:        "opencl",
		Version:     "stub",
		Description: "OpenCL executor stub (no implementation)",
	}
}

func (e *OpenCLExecutor) MaxBlockThreads(p algofft3d.Precision) int {
	if p == algofft3d.PrecisionDouble {
		return 128
	}
	return 256
}

func (e *OpenCLExecutor) NewBuffer(words int) (algofft3d.Buffer, error) {
	return nil, ErrUnavailable
}

func (e *OpenCLExecutor) BuildProgram(prog *algofft3d.Program) (algofft3d.Module, error) {
	return nil, ErrUnavailable
}

func (e *OpenCLExecutor) Launch(ep algofft3d.EntryPoint, args []algofft3d.Buffer, totalThreads, blockSize int) error {
	return ErrUnavailable
}
