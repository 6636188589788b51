// Package gpu provides executor backends for algofft3d.
//
// HostExecutor is a CPU-backed executor for development and tests: it keeps
// "device" memory in flat float64 slices and runs kernels through the
// package's reference interpreter instead of compiling the emitted source.
// The CUDA and OpenCL executors are stubs enabled with build tags.
package gpu
