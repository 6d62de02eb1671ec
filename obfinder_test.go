package main

import (
	"testing"

	tassert "github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A single-candidate grid is a degenerate search: the one value wins after
// one outer round.
func TestNoiseSearchSingleCandidate(t *testing.T) {
	env := NewEnvironment([]Arm{{Mean: 5, StdDev: 2}, {Mean: 4, StdDev: 2}})
	cfg := NoiseSearchConfig{
		Grid:        []float64{1.0},
		Prior:       Arm{Mean: 3.5, StdDev: 3.0},
		InnerRounds: 50,
		Repetitions: 3,
		OuterRounds: 1,
		Workers:     1,
	}

	res := FindObservationNoise(env, cfg, nil, NewStream(44))

	tassert.Equal(t, 1.0, res.BestNoise)
	require.Len(t, res.History, 1)
	tassert.Equal(t, 0, res.History[0].Round)
	tassert.Equal(t, 1.0, res.History[0].Noise)
}

func TestNoiseSearchHistoryShape(t *testing.T) {
	env := NewEnvironment([]Arm{{Mean: 5, StdDev: 2}, {Mean: 4, StdDev: 2}})
	grid := []float64{0.1, 0.5, 2.0}
	cfg := NoiseSearchConfig{
		Grid:        grid,
		Prior:       Arm{Mean: 3.5, StdDev: 3.0},
		InnerRounds: 40,
		Repetitions: 4,
		OuterRounds: 6,
		Workers:     1,
	}

	res := FindObservationNoise(env, cfg, nil, NewStream(9))

	require.Len(t, res.History, 6)
	inGrid := func(v float64) bool {
		for _, g := range grid {
			if g == v {
				return true
			}
		}
		return false
	}
	for i, or := range res.History {
		tassert.Equal(t, i, or.Round)
		tassert.True(t, inGrid(or.Noise), "round %d tried %g, not in grid", i, or.Noise)
	}
	tassert.True(t, inGrid(res.BestNoise))

	// The default UCB1 outer solver explores every candidate once first.
	seen := map[float64]bool{}
	for _, or := range res.History[:len(grid)] {
		seen[or.Noise] = true
	}
	tassert.Len(t, seen, len(grid))
}

func TestNoiseSearchReproducible(t *testing.T) {
	env := NewEnvironment([]Arm{{Mean: 5, StdDev: 2}, {Mean: 4, StdDev: 2}})
	cfg := NoiseSearchConfig{
		Grid:        []float64{0.1, 1.0},
		Prior:       Arm{Mean: 3.5, StdDev: 3.0},
		InnerRounds: 30,
		Repetitions: 5,
		OuterRounds: 4,
		Workers:     1,
	}

	a := FindObservationNoise(env, cfg, nil, NewStream(27))
	b := FindObservationNoise(env, cfg, nil, NewStream(27))
	require.Equal(t, a, b)
}

// An injected outer solver is used instead of the UCB1 default.
func TestNoiseSearchInjectedOuter(t *testing.T) {
	env := NewEnvironment([]Arm{{Mean: 5, StdDev: 2}, {Mean: 4, StdDev: 2}})
	grid := []float64{0.1, 0.5}
	cfg := NoiseSearchConfig{
		Grid:        grid,
		Prior:       Arm{Mean: 3.5, StdDev: 3.0},
		InnerRounds: 20,
		Repetitions: 2,
		OuterRounds: 4,
		Workers:     1,
	}

	outer := NewLTS(len(grid), cfg.OuterRounds, Arm{Mean: 100, StdDev: 50}, 10)
	res := FindObservationNoise(env, cfg, outer, NewStream(5))

	require.Len(t, res.History, 4)
	pulls := 0
	for _, a := range outer.Arms() {
		pulls += a.Pulls
	}
	tassert.Equal(t, 4, pulls)
}
