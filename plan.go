package algofft3d

import "math"

// packBlockSize is the fixed thread-block size of the packing kernels.
const packBlockSize = 128

// Plan is a compiled 3D FFT for one shape, direction family and precision.
// Construction synthesizes and builds every kernel once; Execute afterwards
// only issues launches. A Plan is immutable after construction and owns its
// modules and twiddle buffers until Close. Concurrent Execute calls are safe
// only if the executor serializes or buffer-isolates the launches.
type Plan struct {
	exec        Executor
	shape       GridShape
	packedShape GridShape
	opts        PlanOptions
	packed      bool
	packedAxis  Axis

	modules     []Module
	axis        [6]EntryPoint // prog* order: forward z,x,y then inverse z,x,y
	packEntries [4]EntryPoint // indexed by PackKind
	axisThreads [3]int        // block sizes for the z, x, y launches
	twiddles    [3]Buffer     // twiddle tables for the z, x, y launches
	closed      bool
}

// NewPlan synthesizes, builds and wires every kernel for the given shape.
// All axis sizes must be legal (see LegalDimension); construction fails with
// ErrIllegalSize otherwise. The plan owns the returned resources; release
// them with Close.
func NewPlan(exec Executor, shape GridShape, opts PlanOptions) (*Plan, error) {
	if exec == nil {
		return nil, ErrNoExecutor
	}
	set, err := GeneratePrograms(shape, opts, exec.MaxBlockThreads(opts.Precision))
	if err != nil {
		return nil, err
	}

	p := &Plan{
		exec:        exec,
		shape:       shape,
		packedShape: set.Packed,
		opts:        opts,
		packed:      set.HasPacking,
		packedAxis:  set.PackedAxis,
	}
	for i, prog := range set.Axis {
		mod, err := exec.BuildProgram(prog)
		if err != nil {
			p.release()
			return nil, err
		}
		p.modules = append(p.modules, mod)
		ep, err := mod.EntryPoint("execFFT")
		if err != nil {
			p.release()
			return nil, err
		}
		p.axis[i] = ep
		if i < 3 {
			p.axisThreads[i] = prog.FFT.BlocksPerGroup * prog.FFT.ThreadsPerBlock
		}
	}
	if set.Pack != nil {
		mod, err := exec.BuildProgram(set.Pack)
		if err != nil {
			p.release()
			return nil, err
		}
		p.modules = append(p.modules, mod)
		for _, kind := range []PackKind{PackForward, UnpackForward, PackBackward, UnpackBackward} {
			ep, err := mod.EntryPoint(kind.EntryName())
			if err != nil {
				p.release()
				return nil, err
			}
			p.packEntries[kind] = ep
		}
	}

	// One sign-free twiddle table per launch family, sized to that kernel's
	// transform length; the kernels fold in the direction sign.
	for i, n := range [3]int{set.Packed.Z, set.Packed.X, set.Packed.Y} {
		buf, err := exec.NewBuffer(2 * n)
		if err != nil {
			p.release()
			return nil, err
		}
		p.twiddles[i] = buf
		words := make([]float64, 2*n)
		for j := 0; j < n; j++ {
			a := 2 * math.Pi * float64(j) / float64(n)
			words[2*j] = math.Cos(a)
			words[2*j+1] = math.Sin(a)
		}
		if err := buf.Upload(words); err != nil {
			p.release()
			return nil, err
		}
	}
	return p, nil
}

// Shape returns the logical grid shape.
func (p *Plan) Shape() GridShape { return p.shape }

// PackedAxis reports which axis, if any, is packed for the real transform.
func (p *Plan) PackedAxis() (Axis, bool) { return p.packedAxis, p.packed }

// MinBufferWords returns the smallest buffer capacity, in scalar words, that
// Execute accepts for either argument. Both buffers must hold the full
// complex grid: intermediate axis passes write complex data even when the
// plan's input or output is real.
func (p *Plan) MinBufferWords() int { return 2 * p.shape.Elements() }

// Execute runs one transform. The launch order is fixed: each kernel's
// output is the next one's input, alternating between the two buffers, so
// the final result always lands in out. For real-to-complex plans, forward
// reads real data from in and writes the spectrum to out; inverse reads the
// spectrum from in and writes real data to out.
func (p *Plan) Execute(in, out Buffer, forward bool) error {
	if p.closed {
		return ErrClosed
	}
	if in == nil || out == nil {
		return ErrNilBuffer
	}
	if in.Words() < p.MinBufferWords() || out.Words() < p.MinBufferWords() {
		return ErrBufferTooSmall
	}

	var k1, k2, k3 EntryPoint
	if forward {
		k1, k2, k3 = p.axis[progZForward], p.axis[progXForward], p.axis[progYForward]
	} else {
		k1, k2, k3 = p.axis[progZInverse], p.axis[progXInverse], p.axis[progYInverse]
	}

	if p.packed {
		pack, unpack := p.packEntries[PackForward], p.packEntries[UnpackForward]
		if !forward {
			pack, unpack = p.packEntries[PackBackward], p.packEntries[UnpackBackward]
		}
		gridSize := p.shape.Elements() / 2

		if err := p.launch(pack, in, out, nil, gridSize, packBlockSize); err != nil {
			return err
		}
		if err := p.launch(k1, out, in, p.twiddles[0], gridSize, p.axisThreads[0]); err != nil {
			return err
		}
		if err := p.launch(k2, in, out, p.twiddles[1], gridSize, p.axisThreads[1]); err != nil {
			return err
		}
		if err := p.launch(k3, out, in, p.twiddles[2], gridSize, p.axisThreads[2]); err != nil {
			return err
		}
		return p.launch(unpack, in, out, nil, gridSize, packBlockSize)
	}

	n := p.shape.Elements()
	if err := p.launch(k1, in, out, p.twiddles[0], n, p.axisThreads[0]); err != nil {
		return err
	}
	if err := p.launch(k2, out, in, p.twiddles[1], n, p.axisThreads[1]); err != nil {
		return err
	}
	return p.launch(k3, in, out, p.twiddles[2], n, p.axisThreads[2])
}

func (p *Plan) launch(ep EntryPoint, src, dst, twiddle Buffer, totalThreads, blockSize int) error {
	args := []Buffer{src, dst}
	if twiddle != nil {
		args = append(args, twiddle)
	}
	return p.exec.Launch(ep, args, totalThreads, blockSize)
}

// Close releases the plan's modules and twiddle buffers. It is safe to call
// more than once.
func (p *Plan) Close() error {
	if p == nil || p.closed {
		return nil
	}
	p.closed = true
	return p.release()
}

func (p *Plan) release() error {
	var firstErr error
	for _, m := range p.modules {
		if m == nil {
			continue
		}
		if err := m.Release(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	p.modules = nil
	for i, b := range p.twiddles {
		if b == nil {
			continue
		}
		if err := b.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		p.twiddles[i] = nil
	}
	return firstErr
}
