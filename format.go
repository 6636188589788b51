package algofft3d

import "strconv"

// Source-text formatting helpers for the active precision mode. Floats are
// rendered at full precision; single-precision literals get an "f" suffix so
// the device compiler does not promote the arithmetic to double.

func intToSource(v int) string {
	return strconv.Itoa(v)
}

func floatToSource(v float64, p Precision) string {
	if p == PrecisionSingle {
		return strconv.FormatFloat(v, 'g', -1, 32) + "f"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
