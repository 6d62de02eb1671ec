package main

// RoundReward is one trajectory point: the instant reward observed at a
// round index.
type RoundReward struct {
	Round  int
	Reward float64
}

// Trajectory is the ordered reward sequence of one repetition. It is merged
// into an Aggregate immediately after the repetition and not retained.
type Trajectory []RoundReward

// CumulativeReward sums the instant rewards of the main loop (priming pulls
// are not part of the trajectory).
func (t Trajectory) CumulativeReward() float64 {
	total := 0.0
	for _, rr := range t {
		total += rr.Reward
	}
	return total
}

// Run drives one repetition: prime the solver, then for each round select,
// sample, update, and record the instant reward. Purely a function of its
// inputs; two runs with the same stream produce bit-identical trajectories.
//
// buf, when non-nil, is reused as the trajectory's backing storage so large
// round counts do not churn the allocator (see trajPool).
func Run(env Environment, sv Solver, s Stream, rounds int, buf Trajectory) Trajectory {
	assert(rounds >= 1, "simulation needs at least one round")

	s = sv.Prime(env, s)

	traj := buf[:0]
	for t := 0; t < rounds; t++ {
		arm, next := sv.Select(s)
		reward, next := env.Sample(arm, next)
		sv.Update(arm, reward)
		traj = append(traj, RoundReward{Round: t, Reward: reward})
		s = next
	}
	return traj
}
