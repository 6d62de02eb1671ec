package main

import (
	"fmt"
	"math"
	"sync"
)

// RunningStat is an online accumulator of (count, mean, sum of squared
// deviations) using Welford's update. Add is O(1) and never revisits
// history; Merge combines two accumulators with the parallel-variance
// formula, so any partition of the samples across workers yields the same
// result up to floating-point rounding.
type RunningStat struct {
	Count int
	Mean  float64
	m2    float64
}

// Add folds one sample in.
func (r *RunningStat) Add(x float64) {
	r.Count++
	delta := x - r.Mean
	r.Mean += delta / float64(r.Count)
	r.m2 += delta * (x - r.Mean)
}

// Merge folds another accumulator in. Commutative and associative up to
// rounding.
func (r *RunningStat) Merge(o RunningStat) {
	if o.Count == 0 {
		return
	}
	if r.Count == 0 {
		*r = o
		return
	}
	n := r.Count + o.Count
	delta := o.Mean - r.Mean
	r.m2 += o.m2 + delta*delta*float64(r.Count)*float64(o.Count)/float64(n)
	r.Mean += delta * float64(o.Count) / float64(n)
	r.Count = n
}

// StdDev is the sample standard deviation (n-1 denominator), 0 below two
// samples. The deviation sum is clamped at zero against rounding.
func (r RunningStat) StdDev() float64 {
	if r.Count < 2 {
		return 0
	}
	v := r.m2 / float64(r.Count-1)
	if v < 0 {
		v = 0
	}
	return math.Sqrt(v)
}

// Row is one line of aggregated output: per-round reward statistics across
// all repetitions seen so far.
type Row struct {
	Round  int
	Mean   float64
	StdDev float64
}

// Aggregate combines repetition trajectories into per-round statistics.
// Memory is O(rounds), not O(repetitions x rounds): each trajectory is
// merged on arrival and discarded. Observe and Merge are safe from multiple
// workers.
type Aggregate struct {
	mu     sync.Mutex
	rounds []RunningStat
}

// NewAggregate builds an empty aggregate over the given round count.
func NewAggregate(rounds int) *Aggregate {
	assert(rounds >= 1, "aggregate needs at least one round")
	return &Aggregate{rounds: make([]RunningStat, rounds)}
}

// NumRounds returns the round count the aggregate was sized for.
func (a *Aggregate) NumRounds() int {
	return len(a.rounds)
}

// Observe merges one repetition's trajectory, one sample per round index.
// A round index outside the configured range is a caller bug.
func (a *Aggregate) Observe(traj Trajectory) {
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, rr := range traj {
		assert(rr.Round >= 0 && rr.Round < len(a.rounds),
			fmt.Sprintf("trajectory round %d out of range (%d rounds)", rr.Round, len(a.rounds)))
		a.rounds[rr.Round].Add(rr.Reward)
	}
}

// Merge folds another aggregate in (tree reduction across workers). Both
// sides must cover the same round count. The other aggregate must not be
// receiving observations concurrently.
func (a *Aggregate) Merge(o *Aggregate) {
	assert(len(a.rounds) == len(o.rounds),
		fmt.Sprintf("merging aggregates of different round counts (%d vs %d)", len(a.rounds), len(o.rounds)))

	a.mu.Lock()
	defer a.mu.Unlock()
	for i := range a.rounds {
		a.rounds[i].Merge(o.rounds[i])
	}
}

// Row returns the (mean, stddev) pair for round t.
func (a *Aggregate) Row(t int) (float64, float64) {
	assert(t >= 0 && t < len(a.rounds),
		fmt.Sprintf("round %d out of range (%d rounds)", t, len(a.rounds)))

	a.mu.Lock()
	defer a.mu.Unlock()
	return a.rounds[t].Mean, a.rounds[t].StdDev()
}

// Rows returns the full (round, mean, stddev) sequence for the output
// layer.
func (a *Aggregate) Rows() []Row {
	a.mu.Lock()
	defer a.mu.Unlock()

	rows := make([]Row, len(a.rounds))
	for i := range a.rounds {
		rows[i] = Row{Round: i, Mean: a.rounds[i].Mean, StdDev: a.rounds[i].StdDev()}
	}
	return rows
}

// MeanCumulativeReward sums the per-round means: the expected cumulative
// reward of a single repetition. This is the scalar the outer noise search
// feeds back into its bandit.
func (a *Aggregate) MeanCumulativeReward() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()

	total := 0.0
	for i := range a.rounds {
		total += a.rounds[i].Mean
	}
	return total
}
