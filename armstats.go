package main

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// ArmStats holds the per-arm aggregate counters shared by every policy.
// Mutated only through Observe, once per round, for exactly the pulled arm.
type ArmStats struct {
	Pulls       int
	RewardSum   float64
	RewardSqSum float64
}

// Observe folds one reward into the counters.
func (a *ArmStats) Observe(reward float64) {
	a.Pulls++
	a.RewardSum += reward
	a.RewardSqSum += reward * reward
}

// Mean is the empirical mean reward. Callers must guard Pulls > 0; asking
// for the mean of an unpulled arm is a bug, not a data condition.
func (a ArmStats) Mean() float64 {
	assert(a.Pulls > 0, "mean of unpulled arm")
	return a.RewardSum / float64(a.Pulls)
}

// Deviation is the empirical standard deviation. Floating-point error can
// push the raw variance slightly negative; it is clamped at zero.
func (a ArmStats) Deviation() float64 {
	assert(a.Pulls > 0, "deviation of unpulled arm")
	m := a.RewardSum / float64(a.Pulls)
	v := a.RewardSqSum/float64(a.Pulls) - m*m
	if v < 0 {
		v = 0
	}
	return math.Sqrt(v)
}

// EstimateMu is the cross-arm fallback mean: the mean of empirical means
// over arms pulled at least once, 0 when no arm qualifies. Policies use it
// in place of Mean for unpulled arms so nothing divides by a zero count.
func EstimateMu(arms []ArmStats) float64 {
	var means []float64
	for i := range arms {
		if arms[i].Pulls > 0 {
			means = append(means, arms[i].Mean())
		}
	}
	if len(means) == 0 {
		return 0
	}
	return stat.Mean(means, nil)
}

// EstimateSigma is the cross-arm fallback deviation: the mean of empirical
// deviations over arms pulled at least twice (a single sample carries no
// spread information), 0 when no arm qualifies.
func EstimateSigma(arms []ArmStats) float64 {
	var devs []float64
	for i := range arms {
		if arms[i].Pulls > 1 {
			devs = append(devs, arms[i].Deviation())
		}
	}
	if len(devs) == 0 {
		return 0
	}
	return stat.Mean(devs, nil)
}
