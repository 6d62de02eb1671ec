package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Policy names accepted by Scenario.Policy.
const (
	PolicyPOKER = "poker"
	PolicyUCB1  = "ucb1"
	PolicyLTS   = "lts"
)

// ArmSpec is an arm's (mean, stddev) pair as it appears in scenario files.
type ArmSpec struct {
	Mean   float64 `yaml:"mean"`
	StdDev float64 `yaml:"stddev"`
}

// GridSpec describes a swept observation-noise range.
type GridSpec struct {
	Min  float64 `yaml:"min"`
	Max  float64 `yaml:"max"`
	Step float64 `yaml:"step"`
}

// Scenario is the full boundary-layer configuration for a run. All
// validation happens here, before the core is invoked; the core assumes
// well-formed inputs.
type Scenario struct {
	// Environment: either an explicit arm list, or best/bad pairs where
	// arm 0 is the best arm and the rest are bad arms.
	NumArms int       `yaml:"num_arms"`
	BestArm ArmSpec   `yaml:"best_arm"`
	BadArm  ArmSpec   `yaml:"bad_arm"`
	Arms    []ArmSpec `yaml:"arms"`

	Rounds      int    `yaml:"rounds"`
	Repetitions int    `yaml:"repetitions"`
	Policy      string `yaml:"policy"` // poker | ucb1 | lts

	// LTS / noise search.
	ObservationNoise float64  `yaml:"observation_noise"`
	NoiseGrid        GridSpec `yaml:"noise_grid"`
	OuterRounds      int      `yaml:"outer_rounds"`
	Prior            ArmSpec  `yaml:"prior"`

	Seed    uint64 `yaml:"seed"`
	Workers int    `yaml:"workers"`
}

// DefaultScenario mirrors the reference setup: a clearly best arm against
// bad arms, the original prior, and a 10-step noise sweep.
func DefaultScenario() Scenario {
	return Scenario{
		NumArms:          2,
		BestArm:          ArmSpec{Mean: 5.0, StdDev: 2.0},
		BadArm:           ArmSpec{Mean: 4.0, StdDev: 2.0},
		Rounds:           1000,
		Repetitions:      200,
		Policy:           PolicyLTS,
		ObservationNoise: 0.1,
		NoiseGrid:        GridSpec{Min: 0.1, Max: 1.0, Step: 0.1},
		OuterRounds:      30,
		Prior:            ArmSpec{Mean: 3.5, StdDev: 3.0},
	}
}

// LoadScenario reads a YAML scenario file over the defaults.
func LoadScenario(path string) (Scenario, error) {
	sc := DefaultScenario()
	data, err := os.ReadFile(path)
	if err != nil {
		return sc, fmt.Errorf("read scenario: %w", err)
	}
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return sc, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	return sc, nil
}

// Validate checks every boundary precondition the core relies on.
func (sc Scenario) Validate() error {
	if len(sc.Arms) == 0 {
		if sc.NumArms < 2 {
			return fmt.Errorf("num_arms must be >= 2, got %d", sc.NumArms)
		}
		if sc.BestArm.StdDev < 0 || sc.BadArm.StdDev < 0 {
			return fmt.Errorf("arm stddev must be non-negative")
		}
		if sc.BadArm.Mean >= sc.BestArm.Mean {
			return fmt.Errorf("bad arm mean %g must be below best arm mean %g",
				sc.BadArm.Mean, sc.BestArm.Mean)
		}
	} else {
		if len(sc.Arms) < 2 {
			return fmt.Errorf("need at least 2 arms, got %d", len(sc.Arms))
		}
		for i, a := range sc.Arms {
			if a.StdDev < 0 {
				return fmt.Errorf("arm %d stddev must be non-negative, got %g", i, a.StdDev)
			}
		}
	}

	if sc.Rounds < 1 {
		return fmt.Errorf("rounds must be >= 1, got %d", sc.Rounds)
	}
	if sc.Repetitions < 1 {
		return fmt.Errorf("repetitions must be >= 1, got %d", sc.Repetitions)
	}

	switch sc.Policy {
	case PolicyPOKER:
	case PolicyUCB1:
		// Every arm must be explorable once.
		if n := sc.armCount(); n > sc.Rounds {
			return fmt.Errorf("ucb1 needs num_arms (%d) <= rounds (%d)", n, sc.Rounds)
		}
	case PolicyLTS:
		if sc.ObservationNoise <= 0 {
			return fmt.Errorf("observation_noise must be > 0, got %g", sc.ObservationNoise)
		}
		if sc.Prior.StdDev <= 0 {
			return fmt.Errorf("prior stddev must be > 0, got %g", sc.Prior.StdDev)
		}
	default:
		return fmt.Errorf("unknown policy %q (want poker, ucb1 or lts)", sc.Policy)
	}

	return nil
}

// ValidateSearch adds the noise-search preconditions on top of Validate.
func (sc Scenario) ValidateSearch() error {
	if err := sc.Validate(); err != nil {
		return err
	}
	if sc.Prior.StdDev <= 0 {
		return fmt.Errorf("prior stddev must be > 0, got %g", sc.Prior.StdDev)
	}
	if sc.OuterRounds < 1 {
		return fmt.Errorf("outer_rounds must be >= 1, got %d", sc.OuterRounds)
	}
	g := sc.NoiseGrid
	if g.Min <= 0 || g.Max < g.Min || (g.Max > g.Min && g.Step <= 0) {
		return fmt.Errorf("noise_grid must satisfy 0 < min <= max with a positive step, got min=%g max=%g step=%g",
			g.Min, g.Max, g.Step)
	}
	return nil
}

func (sc Scenario) armCount() int {
	if len(sc.Arms) > 0 {
		return len(sc.Arms)
	}
	return sc.NumArms
}

// BuildEnvironment constructs the arm set: either the explicit list, or
// arm 0 as the best arm with bad arms filling the rest.
func (sc Scenario) BuildEnvironment() Environment {
	if len(sc.Arms) > 0 {
		arms := make([]Arm, len(sc.Arms))
		for i, a := range sc.Arms {
			arms[i] = Arm{Mean: a.Mean, StdDev: a.StdDev}
		}
		return NewEnvironment(arms)
	}
	arms := make([]Arm, sc.NumArms)
	arms[0] = Arm{Mean: sc.BestArm.Mean, StdDev: sc.BestArm.StdDev}
	for i := 1; i < sc.NumArms; i++ {
		arms[i] = Arm{Mean: sc.BadArm.Mean, StdDev: sc.BadArm.StdDev}
	}
	return NewEnvironment(arms)
}

// BuildGrid expands the noise range into the candidate list. Step quanta
// are counted up front so a fractional step like 0.1 cannot drop the final
// candidate to accumulation error.
func (sc Scenario) BuildGrid() []float64 {
	g := sc.NoiseGrid
	if g.Max <= g.Min {
		return []float64{g.Min}
	}
	n := int((g.Max-g.Min)/g.Step+1e-9) + 1
	grid := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		grid = append(grid, g.Min+float64(i)*g.Step)
	}
	return grid
}

// NewSolver returns a factory producing one fresh solver per repetition for
// the configured policy.
func (sc Scenario) NewSolver() func() Solver {
	numArms := sc.armCount()
	switch sc.Policy {
	case PolicyPOKER:
		return func() Solver { return NewPOKER(numArms, sc.Rounds) }
	case PolicyUCB1:
		return func() Solver { return NewUCB1(numArms, sc.Rounds) }
	case PolicyLTS:
		prior := Arm{Mean: sc.Prior.Mean, StdDev: sc.Prior.StdDev}
		return func() Solver { return NewLTS(numArms, sc.Rounds, prior, sc.ObservationNoise) }
	}
	assert(false, fmt.Sprintf("unvalidated policy %q", sc.Policy))
	return nil
}
