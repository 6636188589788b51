package algofft3d

// KernelSpec is the structured form of one axis kernel: everything a backend
// emitter needs to lower device source and the host interpreter needs to run
// it. Sizes are kernel-local; the transform runs along ZSize over
// XSize*YSize independent rows. Input rows are read with the transform axis
// fastest; output is written with the layout rotated one axis, so three
// consecutive axis kernels restore the original layout.
type KernelSpec struct {
	Name                string
	XSize, YSize, ZSize int
	Stages              []Stage

	// Sign is +1 for forward transforms and -1 for inverse ones.
	Sign float64

	// Flag interactions of the direct real path. At most one of the input
	// flags and one of the output flags is set, and only on the first or
	// last axis kernel of a real-to-complex plan without packing.
	InputIsReal    bool
	InputIsPacked  bool
	OutputIsReal   bool
	OutputIsPacked bool

	ThreadsPerBlock int
	BlocksPerGroup  int
}

// PackKind distinguishes the four real-packing kernels.
type PackKind uint8

const (
	PackForward PackKind = iota
	UnpackForward
	PackBackward
	UnpackBackward
)

// EntryName returns the kernel entry-point name for this packing kernel.
func (k PackKind) EntryName() string {
	switch k {
	case PackForward:
		return "packForwardData"
	case UnpackForward:
		return "unpackForwardData"
	case PackBackward:
		return "packBackwardData"
	case UnpackBackward:
		return "unpackBackwardData"
	}
	return "invalid"
}

// PackSpec describes one real-packing kernel: the grid shape, the axis whose
// even length is halved, and which of the four pack/unpack roles it plays.
type PackSpec struct {
	Kind   PackKind
	Axis   Axis
	Shape  GridShape // full logical sizes
	Packed GridShape // sizes with the packed axis halved
}

// Program is a synthesized compilation unit handed to the execution service.
// Source is the emitted device text; Defines carries the macro/template keys
// it was built with (useful when source is cached or diffed externally).
// Exactly one of FFT or Packs describes the structured form: an axis kernel
// module has a single "execFFT" entry, a packing module has four entries.
type Program struct {
	Source  string
	Defines map[string]string
	FFT     *KernelSpec
	Packs   []*PackSpec
	Entries []string
}

// KernelHandle is an opaque machine entry point owned by an executor.
type KernelHandle interface {
	Name() string
}

// EntryPoint is a tagged holder for either a single kernel handle or an
// ordered group of handles, for executors that fold several logical kernels
// into one binary. Launching a group runs its handles in order.
type EntryPoint struct {
	single KernelHandle
	group  []KernelHandle
}

// SingleEntryPoint wraps one kernel handle.
func SingleEntryPoint(h KernelHandle) EntryPoint {
	return EntryPoint{single: h}
}

// GroupEntryPoint wraps an ordered group of kernel handles.
func GroupEntryPoint(hs ...KernelHandle) EntryPoint {
	return EntryPoint{group: hs}
}

// Grouped reports whether the entry point holds more than one handle.
func (e EntryPoint) Grouped() bool { return len(e.group) > 0 }

// Valid reports whether the entry point resolves to at least one handle.
func (e EntryPoint) Valid() bool { return e.single != nil || len(e.group) > 0 }

// Handles returns the ordered handles to launch.
func (e EntryPoint) Handles() []KernelHandle {
	if len(e.group) > 0 {
		return e.group
	}
	if e.single != nil {
		return []KernelHandle{e.single}
	}
	return nil
}

// Buffer is a device-resident buffer measured in scalar words (complex
// samples occupy two words, interleaved real/imaginary). Real and complex
// data may alias the same buffer, which the packed path relies on.
type Buffer interface {
	// Words returns the capacity in scalar words.
	Words() int
	// Upload copies from host to device. Accepts []float64 or []complex128.
	Upload(src any) error
	// Download copies from device to host. Accepts []float64 or []complex128.
	Download(dst any) error
	Close() error
}

// Module is a compiled program owning its entry points.
type Module interface {
	// EntryPoint resolves a kernel by name.
	EntryPoint(name string) (EntryPoint, error)
	Release() error
}

// Executor is the accelerator execution service consumed by plans. It owns
// device discovery, compilation and kernel launches; this package only
// synthesizes programs and issues launches in dependency order.
//
// Launch semantics: totalThreads is the number of logical elements to cover
// and blockSize the threads per block. Launches within one Execute call form
// a dependency chain and are issued in program order; the executor may queue
// them asynchronously but must preserve that order.
type Executor interface {
	// MaxBlockThreads returns the device thread budget per block for the
	// given precision (double precision halves it for register pressure).
	MaxBlockThreads(p Precision) int
	NewBuffer(words int) (Buffer, error)
	BuildProgram(prog *Program) (Module, error)
	Launch(ep EntryPoint, args []Buffer, totalThreads, blockSize int) error
}
