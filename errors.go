package algofft3d

import "errors"

// Sentinel errors returned by plan construction and execution.
var (
	// ErrInvalidShape is returned when a grid dimension is not strictly positive.
	ErrInvalidShape = errors.New("algofft3d: grid dimensions must be positive")

	// ErrIllegalSize is returned when an axis length contains a prime factor
	// above 7 and therefore cannot be decomposed into supported radices.
	// Callers are expected to pre-legalize sizes with LegalDimension.
	ErrIllegalSize = errors.New("algofft3d: illegal size for FFT")

	// ErrNoExecutor is returned when a plan is created without an executor.
	ErrNoExecutor = errors.New("algofft3d: no executor")

	// ErrNilBuffer is returned when a nil buffer is passed to Execute.
	ErrNilBuffer = errors.New("algofft3d: nil buffer")

	// ErrBufferTooSmall is returned when a buffer cannot hold the grid.
	ErrBufferTooSmall = errors.New("algofft3d: buffer too small")

	// ErrClosed is returned when a plan is used after Close.
	ErrClosed = errors.New("algofft3d: plan is closed")

	// ErrInvalidLaunch is returned for non-positive launch parameters or an
	// unresolved entry point.
	ErrInvalidLaunch = errors.New("algofft3d: invalid launch parameters")
)
