// fft3dgen synthesizes the kernel programs for one grid shape and reports
// the plan layout: legalized sizes, packing decision, radix decomposition and
// launch geometry. With -dump it writes the generated device source files.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	algofft3d "github.com/cwbudde/algo-fft3d"
)

func main() {
	var (
		shapeArg  = flag.String("shape", "64,64,64", "grid shape as X,Y,Z (each rounded up to a legal size)")
		real      = flag.Bool("real", false, "real-to-complex transform family")
		precision = flag.String("precision", "single", "kernel precision: single or double")
		threads   = flag.Int("max-threads", 0, "device thread budget per block (0 = precision default)")
		dump      = flag.String("dump", "", "directory to write the generated source files into")
	)
	flag.Parse()

	shape, err := parseShape(*shapeArg)
	if err != nil {
		fatal(err)
	}
	opts := algofft3d.PlanOptions{RealToComplex: *real}
	switch *precision {
	case "single":
		opts.Precision = algofft3d.PrecisionSingle
	case "double":
		opts.Precision = algofft3d.PrecisionDouble
	default:
		fatal(fmt.Errorf("unknown precision %q", *precision))
	}

	legal := algofft3d.GridShape{
		X: algofft3d.LegalDimension(shape.X),
		Y: algofft3d.LegalDimension(shape.Y),
		Z: algofft3d.LegalDimension(shape.Z),
	}
	maxThreads := *threads
	if maxThreads == 0 {
		maxThreads = 256
		if opts.Precision == algofft3d.PrecisionDouble {
			maxThreads = 128
		}
	}

	set, err := algofft3d.GeneratePrograms(legal, opts, maxThreads)
	if err != nil {
		fatal(err)
	}

	fmt.Printf("requested shape: %d x %d x %d\n", shape.X, shape.Y, shape.Z)
	fmt.Printf("legal shape:     %d x %d x %d  (%d elements)\n", legal.X, legal.Y, legal.Z, legal.Elements())
	fmt.Printf("precision:       %s\n", opts.Precision)
	if set.HasPacking {
		fmt.Printf("packing:         axis %s halved to %d x %d x %d\n",
			set.PackedAxis, set.Packed.X, set.Packed.Y, set.Packed.Z)
	} else if opts.RealToComplex {
		fmt.Println("packing:         none (all axes odd, direct real path)")
	} else {
		fmt.Println("packing:         none (complex transform)")
	}

	fmt.Printf("\n%-10s %8s %8s %8s %8s %-16s\n", "kernel", "rows", "length", "threads", "blocks", "radices")
	for _, prog := range set.Axis[:3] {
		k := prog.FFT
		radices := make([]string, len(k.Stages))
		for i, st := range k.Stages {
			radices[i] = strconv.Itoa(st.Radix)
		}
		fmt.Printf("%-10s %8d %8d %8d %8d %-16s\n",
			k.Name, k.XSize*k.YSize, k.ZSize, k.ThreadsPerBlock, k.BlocksPerGroup, strings.Join(radices, "*"))
	}

	if *dump != "" {
		if err := dumpSources(*dump, set); err != nil {
			fatal(err)
		}
	}
}

func parseShape(arg string) (algofft3d.GridShape, error) {
	parts := strings.Split(arg, ",")
	if len(parts) != 3 {
		return algofft3d.GridShape{}, fmt.Errorf("shape must be X,Y,Z, got %q", arg)
	}
	var dims [3]int
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || v < 1 {
			return algofft3d.GridShape{}, fmt.Errorf("bad dimension %q", p)
		}
		dims[i] = v
	}
	return algofft3d.GridShape{X: dims[0], Y: dims[1], Z: dims[2]}, nil
}

func dumpSources(dir string, set *algofft3d.ProgramSet) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	write := func(name, src string) error {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
			return err
		}
		fmt.Printf("wrote %s (%d bytes)\n", path, len(src))
		return nil
	}
	for _, prog := range set.Axis {
		if err := write(prog.FFT.Name+".cu", prog.Source); err != nil {
			return err
		}
	}
	if set.Pack != nil {
		if err := write("pack.cu", set.Pack.Source); err != nil {
			return err
		}
	}
	return nil
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "fft3dgen:", err)
	os.Exit(1)
}
