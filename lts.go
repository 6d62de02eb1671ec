package main

import (
	"fmt"
	"math"
)

// posterior is one arm's Gaussian belief, stored as (mean, stddev) like the
// prior it starts from.
type posterior struct {
	mean float64
	sd   float64
}

// LTS is local Thompson sampling with a tunable observation noise: the
// assumed per-observation measurement uncertainty used as the likelihood
// variance in the conjugate update. The noise value is the hyperparameter
// the outer search optimizes.
type LTS struct {
	solverBase
	noise float64 // assumed observation stddev, > 0
	post  []posterior
}

// NewLTS builds the policy with every arm's posterior seeded from the given
// prior estimate.
func NewLTS(numArms, horizon int, prior Arm, noise float64) *LTS {
	assert(noise > 0, "observation noise must be positive")
	post := make([]posterior, numArms)
	for i := range post {
		post[i] = posterior{mean: prior.Mean, sd: prior.StdDev}
	}
	return &LTS{
		solverBase: newSolverBase(numArms, horizon),
		noise:      noise,
		post:       post,
	}
}

// Prime is a no-op; the prior already defines every arm's belief.
func (l *LTS) Prime(env Environment, s Stream) Stream {
	return s
}

// Select draws one plausible mean per arm from its posterior and plays the
// arm with the largest draw.
func (l *LTS) Select(s Stream) (int, Stream) {
	best := 0
	bestDraw := math.Inf(-1)
	for i := range l.post {
		var z float64
		z, s = s.Norm()
		if draw := l.post[i].mean + l.post[i].sd*z; draw > bestDraw {
			best, bestDraw = i, draw
		}
	}
	return best, s
}

// Update folds the observation into the pulled arm's posterior with the
// standard Gaussian conjugate update, weighting the new reward by the
// observation-noise variance:
//
//	mu' = (av*reward + ov*mu) / (av + ov)
//	v'  = av*ov / (av + ov)
//
// with av the posterior variance and ov = noise^2. A collapsed posterior
// (sd = 0) stays fixed: av = 0 leaves mu' = mu, v' = 0.
func (l *LTS) Update(arm int, reward float64) {
	assert(arm >= 0 && arm < len(l.post),
		fmt.Sprintf("update for arm %d out of range (%d arms)", arm, len(l.post)))

	av := l.post[arm].sd * l.post[arm].sd
	ov := l.noise * l.noise
	l.post[arm] = posterior{
		mean: (av*reward + ov*l.post[arm].mean) / (av + ov),
		sd:   math.Sqrt(av * ov / (av + ov)),
	}
	l.observe(arm, reward)
}
