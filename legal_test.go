package algofft3d

import "testing"

func TestLegalDimensionSmall(t *testing.T) {
	for _, minimum := range []int{-5, 0, 1} {
		if got := LegalDimension(minimum); got != 1 {
			t.Fatalf("LegalDimension(%d) = %d, want 1", minimum, got)
		}
	}
}

func TestLegalDimensionKnownValues(t *testing.T) {
	cases := []struct{ minimum, want int }{
		{2, 2},
		{7, 7},
		{11, 12},  // 11 is prime, 12 = 4*3
		{13, 14},  // 14 = 2*7
		{23, 24},  // 24 = 4*3*2
		{97, 98},  // 98 = 2*7*7
		{101, 105}, // 105 = 3*5*7
		{211, 216}, // 216 = 2^3*3^3
	}
	for _, c := range cases {
		if got := LegalDimension(c.minimum); got != c.want {
			t.Fatalf("LegalDimension(%d) = %d, want %d", c.minimum, got, c.want)
		}
	}
}

// factorsSupported reports whether n reduces to 1 over {2,3,5,7}.
func factorsSupported(n int) bool {
	for _, f := range []int{2, 3, 5, 7} {
		for n%f == 0 {
			n /= f
		}
	}
	return n == 1
}

func TestLegalDimensionProperties(t *testing.T) {
	for n := 1; n <= 3000; n++ {
		got := LegalDimension(n)
		if got < n {
			t.Fatalf("LegalDimension(%d) = %d < minimum", n, got)
		}
		if !factorsSupported(got) {
			t.Fatalf("LegalDimension(%d) = %d has unsupported factors", n, got)
		}
		if again := LegalDimension(got); again != got {
			t.Fatalf("LegalDimension not idempotent at %d: %d then %d", n, got, again)
		}
	}
}

func TestSmallestRadix(t *testing.T) {
	cases := []struct{ size, want int }{
		{1, 1},
		{2, 2},
		{3, 3},
		{4, 4},
		{5, 5},
		{7, 7},
		{8, 2},   // 8 = 4*2, the trailing 2 wins
		{12, 3},  // 12 = 4*3
		{16, 4},  // 16 = 4*4
		{28, 4},  // 28 = 7*4, the trailing 4 wins
		{35, 5},
		{280, 2}, // 7*5*4*2
	}
	for _, c := range cases {
		if got := SmallestRadix(c.size); got != c.want {
			t.Fatalf("SmallestRadix(%d) = %d, want %d", c.size, got, c.want)
		}
	}
}
