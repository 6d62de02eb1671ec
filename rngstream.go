package main

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// Stream is a single-use, value-semantics pseudorandom generator built on
// SplitMix64. Every draw returns the value together with the advanced
// stream; the consumed stream value must not be reused (two draws from the
// same value produce the same number). This is what makes repetitions
// reproducible regardless of how they are scheduled: fork one sub-stream
// per repetition index up front and never share a mutable source.
type Stream struct {
	state uint64
	gamma uint64
}

// goldenGamma is the SplitMix64 increment (2^64 / phi, forced odd).
const goldenGamma = 0x9E3779B97F4A7C15

// NewStream returns the master stream for a run. All per-repetition
// sub-streams derive from it via Fork.
func NewStream(seed uint64) Stream {
	return Stream{state: seed, gamma: goldenGamma}
}

// mix64 is the SplitMix64 finalizer.
func mix64(z uint64) uint64 {
	z ^= z >> 30
	z *= 0xBF58476D1CE4E5B9
	z ^= z >> 27
	z *= 0x94D049BB133111EB
	z ^= z >> 31
	return z
}

// Fork derives the independent sub-stream for index i without consuming
// the parent. Distinct indices (and distinct parent states) land on
// distinct state/gamma pairs, so forked streams do not overlap in practice.
func (s Stream) Fork(i int) Stream {
	seed := mix64(s.state + uint64(i+1)*goldenGamma)
	return Stream{state: seed, gamma: mix64(seed^goldenGamma) | 1}
}

// Next draws 64 uniform bits and returns the advanced stream.
func (s Stream) Next() (uint64, Stream) {
	s.state += s.gamma
	return mix64(s.state), s
}

// Float64 draws a uniform value in [0, 1).
func (s Stream) Float64() (float64, Stream) {
	u, next := s.Next()
	return float64(u>>11) / (1 << 53), next
}

// Intn draws a uniform integer in [0, n). n must be positive.
func (s Stream) Intn(n int) (int, Stream) {
	assert(n > 0, "Intn with non-positive n")
	u, next := s.Next()
	return int(u % uint64(n)), next
}

// Norm draws a standard normal via the inverse CDF. The uniform input is
// nudged off 0 so Quantile stays finite.
func (s Stream) Norm() (float64, Stream) {
	u, next := s.Float64()
	if u == 0 {
		u = math.SmallestNonzeroFloat64
	}
	return distuv.UnitNormal.Quantile(u), next
}
