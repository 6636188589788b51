package algofft3d

// Axis identifies one of the three transform axes.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	}
	return "invalid"
}

// Precision selects the numeric precision of generated kernels.
// The host executor always computes in float64; precision affects the
// emitted source types and the device thread budget.
type Precision uint8

const (
	PrecisionSingle Precision = iota
	PrecisionDouble
)

func (p Precision) String() string {
	if p == PrecisionDouble {
		return "double"
	}
	return "single"
}

// GridShape is the logical size of the 3D grid. All dimensions must be
// strictly positive.
type GridShape struct {
	X, Y, Z int
}

// Elements returns the number of logical grid points.
func (s GridShape) Elements() int { return s.X * s.Y * s.Z }

func (s GridShape) valid() bool { return s.X > 0 && s.Y > 0 && s.Z > 0 }

// PlanOptions controls plan creation.
type PlanOptions struct {
	// RealToComplex selects the real-input transform family. When set and at
	// least one axis has even length, the plan packs that axis to halve the
	// data handled by the core transform.
	RealToComplex bool

	// Precision selects single or double precision kernels.
	Precision Precision
}
