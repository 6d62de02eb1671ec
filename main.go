package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"ob_noise_finder/logx"
)

func main() {
	fmt.Println("OB Noise Finder - Bandit Policy Simulator")
	fmt.Println("=========================================")

	mode := flag.String("mode", "sim", "sim (single configuration) or search (observation-noise sweep)")
	configPath := flag.String("config", "", "scenario YAML file (defaults used when empty)")
	policy := flag.String("policy", "", "override scenario policy: poker, ucb1 or lts")
	seedFlag := flag.Uint64("seed", 0, "random seed (0 = time-based, nonzero = reproducible)")
	rounds := flag.Int("rounds", 0, "override rounds per repetition")
	reps := flag.Int("reps", 0, "override repetition count")
	noise := flag.Float64("noise", 0, "override observation noise (lts only)")
	workers := flag.Int("workers", 0, "worker bound for parallel repetitions (0 = NumCPU)")
	outPath := flag.String("out", "results.txt", "output file for flat result rows")
	flag.Parse()

	sc := DefaultScenario()
	if *configPath != "" {
		loaded, err := LoadScenario(*configPath)
		if err != nil {
			fmt.Println(logx.Errorf("config error: %v", err))
			os.Exit(1)
		}
		sc = loaded
	}

	// Flag overrides win over the scenario file.
	if *policy != "" {
		sc.Policy = *policy
	}
	if *rounds > 0 {
		sc.Rounds = *rounds
	}
	if *reps > 0 {
		sc.Repetitions = *reps
	}
	if *noise > 0 {
		sc.ObservationNoise = *noise
	}
	if *workers > 0 {
		sc.Workers = *workers
	}
	if *seedFlag != 0 {
		sc.Seed = *seedFlag
	}

	seed := sc.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
		fmt.Printf("%s time-based seed: %d (pass -seed to reproduce)\n", logx.Channel("CFG "), seed)
	} else {
		fmt.Printf("%s reproducible seed: %d\n", logx.Channel("CFG "), seed)
	}
	master := NewStream(seed)

	switch *mode {
	case "sim":
		if err := sc.Validate(); err != nil {
			fmt.Println(logx.Errorf("invalid scenario: %v", err))
			os.Exit(1)
		}
		runSim(sc, master, *outPath)
	case "search":
		if err := sc.ValidateSearch(); err != nil {
			fmt.Println(logx.Errorf("invalid scenario: %v", err))
			os.Exit(1)
		}
		runSearch(sc, master, *outPath)
	default:
		fmt.Println(logx.Errorf("unknown mode %q (want sim or search)", *mode))
		os.Exit(1)
	}
}

func runSim(sc Scenario, master Stream, outPath string) {
	env := sc.BuildEnvironment()
	fmt.Printf("%s policy=%s arms=%d rounds=%d reps=%d\n",
		logx.Channel("SIM "), sc.Policy, env.NumArms(), sc.Rounds, sc.Repetitions)

	start := time.Now()
	agg := RunRepetitions(env, sc.NewSolver(), master, sc.Rounds, sc.Repetitions, sc.Workers)
	elapsed := time.Since(start)

	mean, sd := agg.Row(sc.Rounds - 1)
	fmt.Printf("%s final round: mean=%.4f stddev=%.4f | mean cumulative=%.2f | %s\n",
		logx.Channel("AGG "), mean, sd, agg.MeanCumulativeReward(), elapsed.Round(time.Millisecond))

	if err := WriteAggregateRows(outPath, agg); err != nil {
		fmt.Println(logx.Errorf("write results: %v", err))
		os.Exit(1)
	}
	fmt.Printf("%s %s\n", logx.Channel("RES "), logx.Successf("wrote %d rows to %s", agg.NumRounds(), outPath))
}

func runSearch(sc Scenario, master Stream, outPath string) {
	env := sc.BuildEnvironment()
	grid := sc.BuildGrid()
	cfg := NoiseSearchConfig{
		Grid:        grid,
		Prior:       Arm{Mean: sc.Prior.Mean, StdDev: sc.Prior.StdDev},
		InnerRounds: sc.Rounds,
		Repetitions: sc.Repetitions,
		OuterRounds: sc.OuterRounds,
		Workers:     sc.Workers,
	}
	fmt.Printf("%s grid=%d candidates [%.3f..%.3f] outer=%d inner=%dx%d\n",
		logx.Channel("OPT "), len(grid), grid[0], grid[len(grid)-1],
		sc.OuterRounds, sc.Repetitions, sc.Rounds)

	start := time.Now()
	res := FindObservationNoise(env, cfg, nil, master)
	elapsed := time.Since(start)

	fmt.Printf("%s best observation noise: %s | %s\n",
		logx.Channel("OPT "), logx.Highlight(fmt.Sprintf("%.4f", res.BestNoise)),
		elapsed.Round(time.Millisecond))

	if err := WriteSearchHistory(outPath, res); err != nil {
		fmt.Println(logx.Errorf("write results: %v", err))
		os.Exit(1)
	}
	fmt.Printf("%s %s\n", logx.Channel("RES "),
		logx.Successf("wrote %d outer rounds to %s", len(res.History), outPath))
}
