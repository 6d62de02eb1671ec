package main

import (
	"fmt"
	"log"
	"math"
)

// assert fails loudly when a structural precondition is violated. These are
// caller bugs (out-of-range arm index, mismatched arm counts), not data
// conditions, so they terminate the process instead of substituting a
// value.
func assert(condition bool, message string) {
	if !condition {
		log.Fatalf("INVARIANT VIOLATION: %s\n", message)
	}
}

// assertFinite guards values that feed back into solver state; a NaN or Inf
// reward would silently poison every later estimate.
func assertFinite(x float64, what string) {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		assert(false, fmt.Sprintf("%s is not finite: %v", what, x))
	}
}
