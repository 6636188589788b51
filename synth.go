package algofft3d

import "fmt"

// Indices into ProgramSet.Axis: the three forward kernels in launch order,
// then their inverses.
const (
	progZForward = iota
	progXForward
	progYForward
	progZInverse
	progXInverse
	progYInverse
)

// ProgramSet is the complete synthesis output for one plan configuration.
// It is independent of any executor, which keeps source generation usable
// for external caching or diffing.
type ProgramSet struct {
	Shape      GridShape
	Packed     GridShape // equals Shape when HasPacking is false
	PackedAxis Axis
	HasPacking bool

	// Axis holds the six axis-kernel programs, see the prog* indices.
	Axis [6]*Program

	// Pack is the packing module with its four entries, nil without packing.
	Pack *Program
}

// GeneratePrograms synthesizes every kernel program for the given shape and
// options. maxBlockThreads is the device thread budget per block, normally
// Executor.MaxBlockThreads for the chosen precision.
func GeneratePrograms(shape GridShape, opts PlanOptions, maxBlockThreads int) (*ProgramSet, error) {
	if !shape.valid() {
		return nil, fmt.Errorf("%w: got (%d,%d,%d)", ErrInvalidShape, shape.X, shape.Y, shape.Z)
	}
	if maxBlockThreads < 1 {
		return nil, fmt.Errorf("%w: max block threads %d", ErrInvalidLaunch, maxBlockThreads)
	}

	set := &ProgramSet{Shape: shape, Packed: shape}
	if opts.RealToComplex {
		// Pack the first even axis, halving the data the core transform
		// touches. All-odd shapes fall back to the direct real path.
		switch {
		case shape.X%2 == 0:
			set.HasPacking, set.PackedAxis = true, AxisX
			set.Packed.X /= 2
		case shape.Y%2 == 0:
			set.HasPacking, set.PackedAxis = true, AxisY
			set.Packed.Y /= 2
		case shape.Z%2 == 0:
			set.HasPacking, set.PackedAxis = true, AxisZ
			set.Packed.Z /= 2
		}
		if set.HasPacking {
			src, defines := emitPackKernels(set.PackedAxis, shape, set.Packed, opts.Precision)
			kinds := []PackKind{PackForward, UnpackForward, PackBackward, UnpackBackward}
			packs := make([]*PackSpec, 0, len(kinds))
			entries := make([]string, 0, len(kinds))
			for _, kind := range kinds {
				packs = append(packs, &PackSpec{
					Kind:   kind,
					Axis:   set.PackedAxis,
					Shape:  shape,
					Packed: set.Packed,
				})
				entries = append(entries, kind.EntryName())
			}
			set.Pack = &Program{Source: src, Defines: defines, Packs: packs, Entries: entries}
		}
	}

	inputIsReal := opts.RealToComplex && !set.HasPacking
	p := set.Packed
	axes := [3]struct {
		name       string
		xs, ys, zs int
	}{
		// Each kernel transforms along its last size; the cyclic size
		// rotation makes each kernel's output layout the next one's input.
		{"fftZ", p.X, p.Y, p.Z},
		{"fftX", p.Y, p.Z, p.X},
		{"fftY", p.Z, p.X, p.Y},
	}
	for i, ax := range axes {
		fwd, err := synthesizeAxisKernel(ax.name, ax.xs, ax.ys, ax.zs, i, true, inputIsReal, opts.Precision, maxBlockThreads)
		if err != nil {
			return nil, err
		}
		inv, err := synthesizeAxisKernel("inv"+ax.name, ax.xs, ax.ys, ax.zs, i, false, inputIsReal, opts.Precision, maxBlockThreads)
		if err != nil {
			return nil, err
		}
		set.Axis[i] = fwd
		set.Axis[i+3] = inv
	}
	return set, nil
}

// synthesizeAxisKernel builds the spec and program for one axis transform.
// axis is the position in the launch order (0 = first, 2 = last), which
// decides where the direct real path's special input/output handling lands.
func synthesizeAxisKernel(name string, xs, ys, zs, axis int, forward, inputIsReal bool, prec Precision, maxBlockThreads int) (*Program, error) {
	stages, err := stagePlan(zs)
	if err != nil {
		return nil, err
	}
	threadsPerBlock := zs / SmallestRadix(zs)
	blocksPerGroup := maxBlockThreads / threadsPerBlock
	if blocksPerGroup < 1 {
		blocksPerGroup = 1
	}
	sign := 1.0
	if !forward {
		sign = -1.0
	}
	spec := &KernelSpec{
		Name:            name,
		XSize:           xs,
		YSize:           ys,
		ZSize:           zs,
		Stages:          stages,
		Sign:            sign,
		InputIsReal:     inputIsReal && axis == 0 && forward,
		InputIsPacked:   inputIsReal && axis == 0 && !forward,
		OutputIsReal:    inputIsReal && axis == 2 && !forward,
		OutputIsPacked:  inputIsReal && axis == 2 && forward,
		ThreadsPerBlock: threadsPerBlock,
		BlocksPerGroup:  blocksPerGroup,
	}
	tc := newTrigConstants()
	src, defines := emitFFTKernel(spec, tc, prec)
	return &Program{
		Source:  src,
		Defines: defines,
		FFT:     spec,
		Entries: []string{"execFFT"},
	}, nil
}
