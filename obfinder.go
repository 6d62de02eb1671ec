package main

import "fmt"

// OuterRound records one pull of the observation-noise search: which noise
// value was tried and the mean cumulative reward its inner batch produced.
type OuterRound struct {
	Round            int
	Noise            float64
	CumulativeReward float64
}

// NoiseSearchConfig parameterizes the outer search.
type NoiseSearchConfig struct {
	Grid        []float64 // candidate observation-noise values, all > 0
	Prior       Arm       // prior (mean, stddev) handed to every inner LTS
	InnerRounds int       // rounds per inner repetition
	Repetitions int       // inner repetitions per outer pull
	OuterRounds int       // outer bandit horizon
	Workers     int       // inner worker bound; <= 0 means NumCPU
}

// SearchResult is the outcome of a noise search: the winning value plus the
// full outer-arm trajectory.
type SearchResult struct {
	BestNoise float64
	History   []OuterRound
}

// FindObservationNoise searches the noise grid by treating each candidate
// as an arm of an outer bandit. Each outer pull evaluates its candidate by
// running a complete inner batch (Repetitions x InnerRounds of LTS at that
// noise, in parallel) and feeding the mean cumulative reward back into the
// outer solver, exactly as any other bandit update. The outer loop itself
// is sequential: each evaluation informs the next selection.
//
// outer selects among the grid's candidates; nil defaults to UCB1 over the
// grid. The winner is the outer arm with the highest empirical mean after
// the final round.
func FindObservationNoise(env Environment, cfg NoiseSearchConfig, outer Solver, s Stream) SearchResult {
	assert(len(cfg.Grid) >= 1, "noise search needs at least one candidate")
	assert(cfg.OuterRounds >= 1, "noise search needs at least one outer round")
	for _, noise := range cfg.Grid {
		assert(noise > 0, fmt.Sprintf("noise candidate %g must be positive", noise))
	}

	if outer == nil {
		outer = NewUCB1(len(cfg.Grid), cfg.OuterRounds)
	}

	history := make([]OuterRound, 0, cfg.OuterRounds)
	for t := 0; t < cfg.OuterRounds; t++ {
		arm, next := outer.Select(s)
		noise := cfg.Grid[arm]

		// A fresh inner master stream per outer round; the outer stream
		// itself is consumed only by stochastic outer policies.
		innerMaster := next.Fork(t)
		newSolver := func() Solver {
			return NewLTS(env.NumArms(), cfg.InnerRounds, cfg.Prior, noise)
		}
		agg := RunRepetitions(env, newSolver, innerMaster, cfg.InnerRounds, cfg.Repetitions, cfg.Workers)
		reward := agg.MeanCumulativeReward()
		assertFinite(reward, "outer pull reward")

		outer.Update(arm, reward)
		history = append(history, OuterRound{Round: t, Noise: noise, CumulativeReward: reward})
		s = next
	}

	// Read the winner off the outer arms by empirical mean.
	arms := outer.Arms()
	best := 0
	for i := range arms {
		if arms[i].Pulls == 0 {
			continue
		}
		if arms[best].Pulls == 0 || arms[i].Mean() > arms[best].Mean() {
			best = i
		}
	}
	return SearchResult{BestNoise: cfg.Grid[best], History: history}
}
