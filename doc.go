// Package algofft3d generates and orchestrates specialized device kernels for
// three-dimensional mixed-radix FFTs.
//
// Given a grid shape, a direction set (complex-to-complex or real-to-complex)
// and a numeric precision, NewPlan synthesizes one 1D-FFT kernel per axis and
// direction (six in total), plus optional real-packing kernels when an axis
// has even length. Synthesis happens once at plan construction; every
// Execute call afterwards is a fixed sequence of kernel launches on
// device-resident buffers.
//
// Kernels are described by a structured intermediate representation
// (KernelSpec/PackSpec) from which backend-specific source text is lowered.
// The IR is also executable on the host, which is what the gpu.HostExecutor
// backend uses and what makes every butterfly and layout rule testable
// without a device.
//
// Axis sizes must factor completely over {2, 3, 4, 5, 7}. LegalDimension
// rounds a requested size up to the nearest supported one.
package algofft3d
