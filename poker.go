package main

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// POKER is the probability-of-optimality policy. Each arm is priced as its
// expected mean plus the expected gain of discovering a better arm over the
// remaining horizon:
//
//	p(i) = mu_i + delta*h*(1 - Phi(((mu* + delta) - mu_i) * sqrt(n_i) / sigma_i))
//
// where delta is a running reward-gap estimate and mu* the running best
// empirical mean.
type POKER struct {
	solverBase
	delta    float64 // running reward-gap estimate
	bestMean float64 // running best empirical mean
}

// NewPOKER builds the policy for numArms arms and a horizon of `horizon`
// rounds. The policy requires at least two arms for its priming pulls.
func NewPOKER(numArms, horizon int) *POKER {
	assert(numArms >= 2, "POKER needs at least two arms to prime")
	return &POKER{solverBase: newSolverBase(numArms, horizon)}
}

// Prime force-pulls two distinct, randomly chosen arms once each and seeds
// the gap estimate from their rewards: delta = r0 - r1, mu* = r0.
func (p *POKER) Prime(env Environment, s Stream) Stream {
	n := p.numArms()
	first, s := s.Intn(n)
	offset, s := s.Intn(n - 1)
	second := (first + 1 + offset) % n

	r0, s := env.Sample(first, s)
	r1, s := env.Sample(second, s)
	p.prime(first, r0)
	p.prime(second, r1)

	p.delta = r0 - r1
	p.bestMean = r0
	return s
}

// Select prices every arm and keeps the strictly best one, scanning from
// the highest index down. Replacement only on a strictly greater price, so
// ties go to the higher-indexed arm.
func (p *POKER) Select(s Stream) (int, Stream) {
	fallbackMu := EstimateMu(p.arms)
	fallbackSigma := EstimateSigma(p.arms)

	best := p.numArms() - 1
	bestPrice := math.Inf(-1)
	for i := p.numArms() - 1; i >= 0; i-- {
		if price := p.price(i, fallbackMu, fallbackSigma); price > bestPrice {
			best, bestPrice = i, price
		}
	}
	return best, s
}

// price computes p(i), substituting the cross-arm fallbacks when the arm
// has too few pulls for its own estimates.
func (p *POKER) price(i int, fallbackMu, fallbackSigma float64) float64 {
	a := p.arms[i]

	mu := fallbackMu
	if a.Pulls > 0 {
		mu = a.Mean()
	}
	sigma := fallbackSigma
	if a.Pulls > 1 {
		sigma = a.Deviation()
	}

	h := float64(p.horizon)
	target := p.bestMean + p.delta
	if sigma == 0 {
		// Zero spread collapses the tail probability to a step at the
		// target: full exploration bonus at or above it, none below.
		if mu >= target {
			return mu + p.delta*h
		}
		return mu
	}

	z := (target - mu) * math.Sqrt(float64(a.Pulls)) / sigma
	return mu + p.delta*h*(1-distuv.UnitNormal.CDF(z))
}

// Update re-estimates delta and mu* from the pre-update counters, then
// folds the new observation in.
func (p *POKER) Update(arm int, reward float64) {
	pulled := 0
	for i := range p.arms {
		if p.arms[i].Pulls > 0 {
			pulled++
		}
	}
	if q := pulled - 1; q >= 1 {
		best := -1
		for i := range p.arms {
			if p.arms[i].Pulls == 0 {
				continue
			}
			if best < 0 || p.arms[i].Mean() > p.arms[best].Mean() {
				best = i
			}
		}
		// The arm at index floor(sqrt(q)) stands in for a "typical" arm.
		// That indexing is a heuristic carried over from the original
		// POKER formulation; keep it as-is.
		typical := int(math.Floor(math.Sqrt(float64(q))))
		typicalMean := EstimateMu(p.arms)
		if p.arms[typical].Pulls > 0 {
			typicalMean = p.arms[typical].Mean()
		}
		p.delta = (p.arms[best].Mean() - typicalMean) / math.Sqrt(float64(q))
		p.bestMean = p.arms[best].Mean()
	}
	p.observe(arm, reward)
}
