package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/swarmforge/neat"
	"github.com/lixenwraith/swarmforge/sim"
	"github.com/lixenwraith/swarmforge/snapshot"
)

var (
	benchIterations int
	benchGenomeFile string
	benchTeamSize   int
	benchNumTeams   int
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Micro-benchmark tick and inference throughput",
	RunE:  runBench,
}

func init() {
	benchCmd.Flags().IntVar(&benchIterations, "iterations", 1000, "number of ticks (or inference calls) to run")
	benchCmd.Flags().StringVar(&benchGenomeFile, "genome", "", "genome TOML file to benchmark inference with (optional)")
	benchCmd.Flags().IntVar(&benchTeamSize, "team-size", 4, "ships per team for the tick benchmark")
	benchCmd.Flags().IntVar(&benchNumTeams, "num-teams", 2, "number of teams for the tick benchmark")
}

func runBench(cmd *cobra.Command, args []string) error {
	cfg := sim.DefaultConfig()
	cfg.TeamSize = benchTeamSize
	cfg.NumTeams = benchNumTeams
	cfg.MaxTicks = int64(benchIterations) + 1
	cfg.EarlyExit = false

	w := sim.NewWorld(cfg, 1)
	controllers := make([]sim.Controller, len(w.Ships))
	rng := w.RNG()
	for i := range controllers {
		controllers[i] = sim.NewNaiveFSMController(rng)
	}

	start := time.Now()
	for i := 0; i < benchIterations; i++ {
		w.Step(controllers)
	}
	elapsed := time.Since(start)
	ticksPerSec := float64(benchIterations) / elapsed.Seconds()
	fmt.Printf("ticks: %d elapsed: %s ticks/sec: %.1f\n", benchIterations, elapsed, ticksPerSec)

	if benchGenomeFile != "" {
		mgr := snapshot.NewManager("")
		dto, err := mgr.LoadGenome(benchGenomeFile)
		if err != nil {
			return fmt.Errorf("bench: loading genome: %w", err)
		}
		genome := dto.ToGenome()

		nc, err := sim.NewNeuralController(genome, neat.Tanh, &cfg)
		if err != nil {
			return fmt.Errorf("bench: compiling genome: %w", err)
		}

		perception := sim.Perception{
			Enemies: make([]sim.EntityPerception, cfg.PerceptionK_Enemies),
			Allies:  make([]sim.EntityPerception, cfg.PerceptionK_Allies),
			Wrecks:  make([]sim.EntityPerception, cfg.PerceptionK_Wrecks),
		}
		start = time.Now()
		for i := 0; i < benchIterations; i++ {
			nc.Decide(perception, &cfg, 0, rng)
		}
		elapsed = time.Since(start)
		fmt.Printf("inferences: %d elapsed: %s inferences/sec: %.1f\n",
			benchIterations, elapsed, float64(benchIterations)/elapsed.Seconds())
	}

	return nil
}
