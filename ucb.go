package main

import "math"

// UCB1 plays the arm with the highest upper confidence bound
// mean_i + sqrt(2*ln(t) / n_i). Unpulled arms are maximally preferred, so
// the first numArms rounds explore every arm once in index order. Callers
// must ensure numArms <= rounds or that sweep cannot complete.
type UCB1 struct {
	solverBase
}

// NewUCB1 builds the policy for numArms arms and `horizon` rounds.
func NewUCB1(numArms, horizon int) *UCB1 {
	return &UCB1{solverBase: newSolverBase(numArms, horizon)}
}

// Prime is a no-op; UCB1 explores through its unpulled-arm preference.
func (u *UCB1) Prime(env Environment, s Stream) Stream {
	return s
}

// Select returns the lowest-indexed unpulled arm, or once every arm has a
// pull, the arm with the highest confidence bound (ties to the lowest
// index).
func (u *UCB1) Select(s Stream) (int, Stream) {
	for i := range u.arms {
		if u.arms[i].Pulls == 0 {
			return i, s
		}
	}

	t := 0
	for i := range u.arms {
		t += u.arms[i].Pulls
	}

	best := 0
	bestBound := math.Inf(-1)
	for i := range u.arms {
		bound := u.arms[i].Mean() + math.Sqrt(2*math.Log(float64(t))/float64(u.arms[i].Pulls))
		if bound > bestBound {
			best, bestBound = i, bound
		}
	}
	return best, s
}

// Update folds the observation into the pulled arm.
func (u *UCB1) Update(arm int, reward float64) {
	u.observe(arm, reward)
}
