package main

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// RunRepetitions executes reps independent repetitions of the same
// configuration and aggregates them into per-round statistics.
//
// Repetitions are embarrassingly parallel: each one gets a fresh solver
// from the factory and its own sub-stream forked from the master by
// repetition index, so results do not depend on scheduling. Each
// trajectory is merged into the aggregate as soon as its repetition
// finishes and its buffer recycled, keeping memory bounded by the worker
// count rather than the repetition count. With workers = 1 the repetitions
// run in index order and the whole batch is bit-reproducible; with more
// workers the merge order varies, which moves results only within
// floating-point rounding.
func RunRepetitions(env Environment, newSolver func() Solver, master Stream, rounds, reps, workers int) *Aggregate {
	assert(reps >= 1, "need at least one repetition")
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	agg := NewAggregate(rounds)

	var g errgroup.Group
	g.SetLimit(workers)
	for rep := 0; rep < reps; rep++ {
		sub := master.Fork(rep)
		g.Go(func() error {
			buf := trajectories.Get(rounds)
			traj := Run(env, newSolver(), sub, rounds, buf)
			agg.Observe(traj)
			trajectories.Put(traj)
			return nil
		})
	}
	// Workers have no error paths; Wait is for completion only.
	_ = g.Wait()

	return agg
}
