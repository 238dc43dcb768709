package framework

import "math/rand/v2"

// NewRand returns a deterministic generator for the given seed and stream.
// Distinct streams of the same seed are decorrelated, so every worker of a
// generation can own one without sharing state.
//
// *rand.Rand is not safe for concurrent use.
func NewRand(seed, stream uint64) *rand.Rand {
	return rand.New(rand.NewPCG(mix(seed^mix(stream)), mix(stream+seed)))
}

// mix is the SplitMix64 finalizer.
func mix(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}

// Shuffle performs an in-place Fisher–Yates shuffle of n elements through swap,
// drawing indices from rng.
//
// Complexity: O(n) time, O(1) extra space.
func Shuffle(rng *rand.Rand, n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		swap(i, rng.IntN(i+1))
	}
}
