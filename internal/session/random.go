package session

import "math/rand/v2"

// Shuffle returns a new slice with the elements of in under a uniformly
// random permutation (Fisher–Yates). The input is left unmodified.
func Shuffle[T any](rng *rand.Rand, in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	for i := len(out) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// NewRand returns a seeded random source. Tests pass fixed seeds to
// reproduce specific orderings.
func NewRand(seed1, seed2 uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed1, seed2))
}
