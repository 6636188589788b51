package algofft3d

// legalDimensionLimit bounds the upward scan of LegalDimension. Sizes
// factorable over {2,3,4,5,7} are dense well past any practical grid, so the
// limit exists only to keep the function total for absurd inputs.
const legalDimensionLimit = 1 << 20

// LegalDimension returns the smallest size >= minimum whose complete prime
// factorization uses only {2, 3, 5, 7}. For minimum < 1 it returns 1.
func LegalDimension(minimum int) int {
	if minimum < 1 {
		return 1
	}
	for candidate := minimum; candidate <= legalDimensionLimit; candidate++ {
		unfactored := candidate
		for factor := 2; factor < 8; factor++ {
			for unfactored > 1 && unfactored%factor == 0 {
				unfactored /= factor
			}
		}
		if unfactored == 1 {
			return candidate
		}
	}
	// Past the scan limit fall back to the next power of two, which is
	// always a legal size.
	size := 1
	for size < minimum {
		size <<= 1
	}
	return size
}

// SmallestRadix returns the smallest radix present when reducing size by the
// priority order 7, 5, 4, 3, 2, each radix fully exhausted before the next.
// It is used to pick thread-block sizes: a kernel runs Z/SmallestRadix(Z)
// threads per transform row.
func SmallestRadix(size int) int {
	if size < 1 {
		return 1
	}
	minRadix := 1
	unfactored := size
	for unfactored%7 == 0 {
		minRadix = 7
		unfactored /= 7
	}
	for unfactored%5 == 0 {
		minRadix = 5
		unfactored /= 5
	}
	for unfactored%4 == 0 {
		minRadix = 4
		unfactored /= 4
	}
	for unfactored%3 == 0 {
		minRadix = 3
		unfactored /= 3
	}
	for unfactored%2 == 0 {
		minRadix = 2
		unfactored /= 2
	}
	return minRadix
}
