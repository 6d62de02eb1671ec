package main

import (
	"fmt"
	"math"
	"testing"

	tassert "github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// uniformPolicy picks arms uniformly at random; the baseline for the
// end-to-end comparison.
type uniformPolicy struct {
	solverBase
}

func newUniformPolicy(numArms, horizon int) *uniformPolicy {
	return &uniformPolicy{solverBase: newSolverBase(numArms, horizon)}
}

func (u *uniformPolicy) Prime(env Environment, s Stream) Stream { return s }

func (u *uniformPolicy) Select(s Stream) (int, Stream) {
	return s.Intn(u.numArms())
}

func (u *uniformPolicy) Update(arm int, reward float64) {
	u.observe(arm, reward)
}

// Every arm must be pulled at least once within the first numArms rounds.
func TestUCBExplorationInvariant(t *testing.T) {
	arms := []Arm{
		{Mean: 5, StdDev: 1}, {Mean: 1, StdDev: 1}, {Mean: 2, StdDev: 1},
		{Mean: 3, StdDev: 1}, {Mean: 4, StdDev: 1},
	}
	env := NewEnvironment(arms)

	sv := NewUCB1(len(arms), len(arms))
	Run(env, sv, NewStream(21), len(arms), nil)

	for i, a := range sv.Arms() {
		require.GreaterOrEqual(t, a.Pulls, 1, "arm %d never explored", i)
	}
}

func TestUCBUnpulledFirstAscending(t *testing.T) {
	u := NewUCB1(3, 10)
	arm, _ := u.Select(NewStream(1))
	require.Equal(t, 0, arm)

	u.Update(0, 1.0)
	arm, _ = u.Select(NewStream(1))
	require.Equal(t, 1, arm)

	u.Update(1, 1.0)
	arm, _ = u.Select(NewStream(1))
	require.Equal(t, 2, arm)
}

func TestUCBTieBreakLowestIndex(t *testing.T) {
	u := NewUCB1(3, 10)
	// Identical counters on every arm: identical bounds, lowest index wins.
	u.Update(0, 2.0)
	u.Update(1, 2.0)
	u.Update(2, 2.0)

	arm, _ := u.Select(NewStream(1))
	tassert.Equal(t, 0, arm)
}

// End-to-end: on a 2-arm Gaussian environment UCB1 must clearly beat the
// uniform-random baseline on average cumulative reward.
func TestUCBBeatsUniformBaseline(t *testing.T) {
	if testing.Short() {
		t.Skip("statistical end-to-end test")
	}

	env := NewEnvironment([]Arm{
		{Mean: 5.0, StdDev: 2.0},
		{Mean: 4.0, StdDev: 2.0},
	})
	const (
		rounds = 1000
		reps   = 200
	)

	meanCumulative := func(seed uint64, newSolver func() Solver) (float64, float64) {
		var rs RunningStat
		master := NewStream(seed)
		for rep := 0; rep < reps; rep++ {
			traj := Run(env, newSolver(), master.Fork(rep), rounds, nil)
			rs.Add(traj.CumulativeReward())
		}
		return rs.Mean, rs.StdDev() / math.Sqrt(float64(rs.Count))
	}

	ucbMean, ucbSE := meanCumulative(101, func() Solver { return NewUCB1(2, rounds) })
	baseMean, baseSE := meanCumulative(101, func() Solver { return newUniformPolicy(2, rounds) })

	fmt.Printf("ucb1=%.1f (se %.2f) uniform=%.1f (se %.2f)\n", ucbMean, ucbSE, baseMean, baseSE)

	// At least one standard error of separation; in practice the gap is
	// hundreds of reward units (~500 expected).
	tassert.Greater(t, ucbMean, baseMean+math.Max(ucbSE, baseSE))
}
