package randx

import (
	"math/rand/v2"

	"github.com/sw965/omw/mathx/randx"
)

// New returns a PCG generator. A zero seed draws one from the global source instead.
func New(seed uint64) *rand.Rand {
	if seed == 0 {
		return randx.NewPCGFromGlobalSeed()
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Bernoulli reports true with probability p. p <= 0 never succeeds, p >= 1 always does.
func Bernoulli(p float64, rng *rand.Rand) bool {
	return rng.Float64() < p
}

// Seeds returns n consecutive non-zero seeds starting at base.
func Seeds(base uint64, n int) []uint64 {
	if base == 0 {
		base = 1
	}
	seeds := make([]uint64, n)
	for i := range seeds {
		seeds[i] = base + uint64(i)
	}
	return seeds
}
