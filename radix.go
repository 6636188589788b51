package algofft3d

import "fmt"

// Stage is one pass of the iterative Cooley-Tukey decomposition. L is the
// remaining unreduced length after this stage's radix has been divided out,
// and M is the accumulated product of the radices of all earlier stages.
// The stage gathers Radix samples strided by L*M and scatters strided by M.
type Stage struct {
	Radix int
	L     int
	M     int
}

// stageRadixOrder is the divisibility priority tested at every stage.
// 4 is a fused double radix-2 and is preferred over 3 and 2.
var stageRadixOrder = [...]int{7, 5, 4, 3, 2}

// stagePlan decomposes an axis length into an ordered radix sequence. The
// product of the returned radices equals size. Lengths with a prime factor
// above 7 yield ErrIllegalSize.
func stagePlan(size int) ([]Stage, error) {
	if size < 1 {
		return nil, fmt.Errorf("%w: %d", ErrIllegalSize, size)
	}
	var stages []Stage
	remaining := size
	m := 1
	for remaining > 1 {
		radix := 0
		for _, r := range stageRadixOrder {
			if remaining%r == 0 {
				radix = r
				break
			}
		}
		if radix == 0 {
			return nil, fmt.Errorf("%w: %d", ErrIllegalSize, size)
		}
		remaining /= radix
		stages = append(stages, Stage{Radix: radix, L: remaining, M: m})
		m *= radix
	}
	return stages, nil
}
