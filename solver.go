package main

import "fmt"

// Solver is the contract every bandit policy implements. A solver owns its
// per-arm counters and remaining horizon; it never touches the environment
// outside Prime.
type Solver interface {
	// Prime performs any forced initial pulls before round 1. Policies
	// without a priming phase return the stream unchanged.
	Prime(env Environment, s Stream) Stream

	// Select returns the arm to pull next. The index is always in
	// [0, NumArms). Deterministic policies return the stream unchanged.
	Select(s Stream) (int, Stream)

	// Update applies exactly one observation to the pulled arm and burns
	// one round of horizon.
	Update(arm int, reward float64)

	// CumulativeReward is the total reward across all arms, priming
	// pulls included.
	CumulativeReward() float64

	// Arms returns a snapshot of the per-arm counters.
	Arms() []ArmStats
}

// solverBase carries the state shared by all policies: the ArmStats vector
// and the remaining-horizon counter. Keeping the invariants here once means
// no policy re-implements them.
type solverBase struct {
	arms    []ArmStats
	horizon int
}

func newSolverBase(numArms, horizon int) solverBase {
	assert(numArms >= 1, "solver needs at least one arm")
	assert(horizon >= 1, "solver needs a positive horizon")
	return solverBase{arms: make([]ArmStats, numArms), horizon: horizon}
}

func (b *solverBase) numArms() int {
	return len(b.arms)
}

// observe folds one reward into the pulled arm and decrements the horizon
// by exactly one. All Update implementations go through here.
func (b *solverBase) observe(arm int, reward float64) {
	assert(arm >= 0 && arm < len(b.arms),
		fmt.Sprintf("update for arm %d out of range (%d arms)", arm, len(b.arms)))
	b.arms[arm].Observe(reward)
	b.horizon--
}

// prime records a forced pull without consuming horizon; the horizon counts
// the rounds of the main loop only.
func (b *solverBase) prime(arm int, reward float64) {
	assert(arm >= 0 && arm < len(b.arms),
		fmt.Sprintf("priming pull for arm %d out of range (%d arms)", arm, len(b.arms)))
	b.arms[arm].Observe(reward)
}

func (b *solverBase) CumulativeReward() float64 {
	total := 0.0
	for i := range b.arms {
		total += b.arms[i].RewardSum
	}
	return total
}

func (b *solverBase) Arms() []ArmStats {
	cp := make([]ArmStats, len(b.arms))
	copy(cp, b.arms)
	return cp
}
