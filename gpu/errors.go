package gpu

import "errors"

var (
	// ErrUnavailable is returned when the executor is not usable on the
	// current system (no device, driver missing, stub build).
	ErrUnavailable = errors.New("algofft3d/gpu: executor unavailable")

	// ErrInvalidProgram is returned when a program carries no structured
	// kernel description the executor can run.
	ErrInvalidProgram = errors.New("algofft3d/gpu: invalid program")

	// ErrUnknownKernel is returned when an entry-point name does not exist
	// in the module.
	ErrUnknownKernel = errors.New("algofft3d/gpu: unknown kernel")

	// ErrInvalidLaunch is returned for bad launch parameters or argument
	// lists.
	ErrInvalidLaunch = errors.New("algofft3d/gpu: invalid launch")

	// ErrUnsupportedData is returned when Upload/Download is given a slice
	// type the buffer cannot convert.
	ErrUnsupportedData = errors.New("algofft3d/gpu: unsupported data type")

	// ErrBufferClosed is returned when a released buffer is used.
	ErrBufferClosed = errors.New("algofft3d/gpu: buffer closed")

	// ErrReleased is returned when a released module is used.
	ErrReleased = errors.New("algofft3d/gpu: module released")
)
