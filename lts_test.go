package main

import (
	"math"
	"testing"

	tassert "github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The conjugate update must match the closed form exactly:
// mu' = (av*r + ov*mu)/(av+ov), v' = av*ov/(av+ov).
func TestLTSConjugateUpdate(t *testing.T) {
	prior := Arm{Mean: 3.5, StdDev: 3.0}
	const noise = 0.1
	l := NewLTS(2, 10, prior, noise)

	const reward = 4.2
	l.Update(0, reward)

	av := 3.0 * 3.0
	ov := 0.1 * 0.1
	wantMean := (av*reward + ov*3.5) / (av + ov)
	wantSD := math.Sqrt(av * ov / (av + ov))

	tassert.InDelta(t, wantMean, l.post[0].mean, 1e-12)
	tassert.InDelta(t, wantSD, l.post[0].sd, 1e-12)

	// The unpulled arm's posterior is untouched.
	tassert.Equal(t, posterior{mean: 3.5, sd: 3.0}, l.post[1])
}

// Each observation strictly shrinks the pulled arm's posterior spread.
func TestLTSPosteriorShrinks(t *testing.T) {
	l := NewLTS(2, 100, Arm{Mean: 0, StdDev: 2.0}, 0.5)

	prev := l.post[0].sd
	for i := 0; i < 20; i++ {
		l.Update(0, 1.0)
		require.Less(t, l.post[0].sd, prev)
		prev = l.post[0].sd
	}
}

// A collapsed posterior (sd = 0) is a fixed point: further observations
// cannot move it and must not produce NaN.
func TestLTSCollapsedPosteriorFixed(t *testing.T) {
	l := NewLTS(2, 10, Arm{Mean: 1.5, StdDev: 0}, 0.1)
	l.Update(0, 100.0)

	tassert.Equal(t, 1.5, l.post[0].mean)
	tassert.Equal(t, 0.0, l.post[0].sd)
	tassert.False(t, math.IsNaN(l.post[0].mean))
}

// With strongly separated posteriors Thompson selection almost always
// plays the better-believed arm.
func TestLTSSelectFollowsPosterior(t *testing.T) {
	l := NewLTS(2, 10, Arm{Mean: 0, StdDev: 1}, 0.1)
	l.post[0] = posterior{mean: 10.0, sd: 0.01}
	l.post[1] = posterior{mean: -10.0, sd: 0.01}

	s := NewStream(33)
	picks := 0
	for i := 0; i < 100; i++ {
		var arm int
		arm, s = l.Select(s)
		if arm == 0 {
			picks++
		}
	}
	tassert.Equal(t, 100, picks)
}

// Averaged over repetitions, LTS with a reasonable noise assumption earns
// far more than uniform play on a clearly separated environment. A single
// repetition can misconverge (a small noise value collapses posteriors
// fast), so the assertion is on the batch mean.
func TestLTSFindsBestArm(t *testing.T) {
	env := NewEnvironment([]Arm{
		{Mean: 5.0, StdDev: 2.0},
		{Mean: 1.0, StdDev: 1.0},
		{Mean: 2.0, StdDev: 2.0},
	})
	const (
		rounds = 1000
		reps   = 50
	)

	factory := func() Solver { return NewLTS(3, rounds, Arm{Mean: 3.5, StdDev: 3.0}, 0.1) }
	agg := RunRepetitions(env, factory, NewStream(12), rounds, reps, 1)

	// Uniform play would average (5+1+2)/3 = 2.67 per round (~2667
	// cumulative); converging on the best arm pushes this toward 5000.
	tassert.Greater(t, agg.MeanCumulativeReward(), 3500.0)
}
