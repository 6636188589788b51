package gpu

import (
	"fmt"

	algofft3d "github.com/cwbudde/algo-fft3d"
	"golang.org/x/sys/cpu"
)

// HostExecutor is a CPU-backed execution service for development and tests.
// It satisfies the executor contract but keeps buffers in host memory and
// runs kernels through the reference interpreter, so plans behave exactly as
// they would on a device, including real/complex buffer aliasing.
type HostExecutor struct {
	device DeviceInfo
}

// NewHostExecutor returns a host executor with a single fake device.
func NewHostExecutor() *HostExecutor {
	return &HostExecutor{
		device: DeviceInfo{
			Name:       "HostDevice",
			Vendor:     "algofft3d",
			Driver:     "host",
			MemoryMB:   0,
			ComputeCap: hostCapability(),
		},
	}
}

// Info reports the executor implementation.
func (e *HostExecutor) Info() ExecutorInfo {
	return ExecutorInfo{
		Name:        "host",
		Version:     "0.1",
		Description: "CPU-backed interpreter executor",
	}
}

// Device reports the fake device.
func (e *HostExecutor) Device() DeviceInfo { return e.device }

// MaxBlockThreads mirrors the register-pressure policy of real devices:
// double precision halves the thread budget.
func (e *HostExecutor) MaxBlockThreads(p algofft3d.Precision) int {
	if p == algofft3d.PrecisionDouble {
		return 128
	}
	return 256
}

// NewBuffer allocates a buffer of the given capacity in scalar words.
func (e *HostExecutor) NewBuffer(words int) (algofft3d.Buffer, error) {
	if words < 0 {
		return nil, fmt.Errorf("%w: %d words", ErrInvalidLaunch, words)
	}
	return &hostBuffer{words: make([]float64, words)}, nil
}

// BuildProgram accepts a synthesized program. The host executor does not
// compile the source text; it validates the program and keeps the structured
// kernel descriptions for interpretation at launch time.
func (e *HostExecutor) BuildProgram(prog *algofft3d.Program) (algofft3d.Module, error) {
	if prog == nil || prog.Source == "" {
		return nil, ErrInvalidProgram
	}
	if prog.FFT == nil && len(prog.Packs) == 0 {
		return nil, fmt.Errorf("%w: no kernel description", ErrInvalidProgram)
	}
	return &hostModule{prog: prog}, nil
}

// Launch runs the entry point synchronously. Grouped entry points run their
// handles in order. Axis kernels take (in, out, twiddle) arguments, packing
// kernels (in, out).
func (e *HostExecutor) Launch(ep algofft3d.EntryPoint, args []algofft3d.Buffer, totalThreads, blockSize int) error {
	if !ep.Valid() {
		return fmt.Errorf("%w: unresolved entry point", ErrInvalidLaunch)
	}
	if totalThreads < 1 || blockSize < 1 {
		return fmt.Errorf("%w: totalThreads=%d blockSize=%d", ErrInvalidLaunch, totalThreads, blockSize)
	}
	for _, h := range ep.Handles() {
		k, ok := h.(*hostKernel)
		if !ok {
			return fmt.Errorf("%w: foreign kernel handle %q", ErrInvalidLaunch, h.Name())
		}
		if err := k.run(args); err != nil {
			return err
		}
	}
	return nil
}

// hostCapability reports the host SIMD level for the fake device description.
func hostCapability() string {
	switch {
	case cpu.X86.HasAVX2:
		return "avx2"
	case cpu.X86.HasSSE2:
		return "sse2"
	case cpu.ARM64.HasASIMD:
		return "neon"
	default:
		return "generic"
	}
}

type hostBuffer struct {
	words  []float64
	closed bool
}

func (b *hostBuffer) Words() int { return len(b.words) }

func (b *hostBuffer) Upload(src any) error {
	if b.closed {
		return ErrBufferClosed
	}
	switch data := src.(type) {
	case []float64:
		if len(data) > len(b.words) {
			return algofft3d.ErrBufferTooSmall
		}
		copy(b.words, data)
		return nil
	case []complex128:
		if 2*len(data) > len(b.words) {
			return algofft3d.ErrBufferTooSmall
		}
		for i, v := range data {
			b.words[2*i] = real(v)
			b.words[2*i+1] = imag(v)
		}
		return nil
	default:
		return ErrUnsupportedData
	}
}

func (b *hostBuffer) Download(dst any) error {
	if b.closed {
		return ErrBufferClosed
	}
	switch data := dst.(type) {
	case []float64:
		if len(data) > len(b.words) {
			return algofft3d.ErrBufferTooSmall
		}
		copy(data, b.words)
		return nil
	case []complex128:
		if 2*len(data) > len(b.words) {
			return algofft3d.ErrBufferTooSmall
		}
		for i := range data {
			data[i] = complex(b.words[2*i], b.words[2*i+1])
		}
		return nil
	default:
		return ErrUnsupportedData
	}
}

func (b *hostBuffer) Close() error {
	b.words = nil
	b.closed = true
	return nil
}

type hostModule struct {
	prog     *algofft3d.Program
	released bool
}

func (m *hostModule) EntryPoint(name string) (algofft3d.EntryPoint, error) {
	if m.released {
		return algofft3d.EntryPoint{}, ErrReleased
	}
	if m.prog.FFT != nil && name == "execFFT" {
		return algofft3d.SingleEntryPoint(&hostKernel{name: name, fft: m.prog.FFT}), nil
	}
	for _, pack := range m.prog.Packs {
		if pack.Kind.EntryName() == name {
			return algofft3d.SingleEntryPoint(&hostKernel{name: name, pack: pack}), nil
		}
	}
	return algofft3d.EntryPoint{}, fmt.Errorf("%w: %q", ErrUnknownKernel, name)
}

func (m *hostModule) Release() error {
	m.released = true
	m.prog = nil
	return nil
}

type hostKernel struct {
	name string
	fft  *algofft3d.KernelSpec
	pack *algofft3d.PackSpec
}

func (k *hostKernel) Name() string { return k.name }

func (k *hostKernel) run(args []algofft3d.Buffer) error {
	if k.fft != nil {
		if len(args) != 3 {
			return fmt.Errorf("%w: axis kernel wants 3 args, got %d", ErrInvalidLaunch, len(args))
		}
		in, err := hostWords(args[0])
		if err != nil {
			return err
		}
		out, err := hostWords(args[1])
		if err != nil {
			return err
		}
		w, err := hostWords(args[2])
		if err != nil {
			return err
		}
		return k.fft.ExecuteHost(in, out, w)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: packing kernel wants 2 args, got %d", ErrInvalidLaunch, len(args))
	}
	in, err := hostWords(args[0])
	if err != nil {
		return err
	}
	out, err := hostWords(args[1])
	if err != nil {
		return err
	}
	return k.pack.ExecuteHost(in, out)
}

func hostWords(b algofft3d.Buffer) ([]float64, error) {
	hb, ok := b.(*hostBuffer)
	if !ok {
		return nil, fmt.Errorf("%w: foreign buffer", ErrInvalidLaunch)
	}
	if hb.closed {
		return nil, ErrBufferClosed
	}
	return hb.words, nil
}
