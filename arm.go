package main

import "fmt"

// Arm is one Gaussian reward source. Immutable for the lifetime of an
// Environment.
type Arm struct {
	Mean   float64
	StdDev float64
}

// Environment is an ordered, fixed set of arms. It is read-only after
// construction; sampling consumes only the caller's stream.
type Environment struct {
	arms []Arm
}

// NewEnvironment builds an environment over the given arms.
func NewEnvironment(arms []Arm) Environment {
	assert(len(arms) >= 1, "environment needs at least one arm")
	cp := make([]Arm, len(arms))
	copy(cp, arms)
	return Environment{arms: cp}
}

// NumArms returns the arm count.
func (e Environment) NumArms() int {
	return len(e.arms)
}

// Arm returns the parameters of arm i.
func (e Environment) Arm(i int) Arm {
	assert(i >= 0 && i < len(e.arms),
		fmt.Sprintf("arm index %d out of range (%d arms)", i, len(e.arms)))
	return e.arms[i]
}

// Sample draws one reward from arm i. An out-of-range index is a caller
// bug and fails loudly.
func (e Environment) Sample(i int, s Stream) (float64, Stream) {
	assert(i >= 0 && i < len(e.arms),
		fmt.Sprintf("arm index %d out of range (%d arms)", i, len(e.arms)))
	z, next := s.Norm()
	return e.arms[i].Mean + e.arms[i].StdDev*z, next
}
