package match

import (
	"context"
	"testing"

	"github.com/lixenwraith/swarmforge/neat"
)

func testPopulation(t *testing.T, numInputs int) *neat.Population {
	t.Helper()
	mutator := &neat.Mutator{}
	cfg := neat.PopulationConfig{
		Size:               6,
		ThresholdInitial:   3.0,
		ThresholdStep:      0.3,
		ThresholdMin:       0.5,
		TargetSpeciesCount: 3,
		StagnationWindow:   15,
		ElitismThreshold:   2,
		CrossoverRate:      0.7,
		TournamentSize:     3,
		NumInputs:          numInputs,
		NumOutputs:         6,
		WeightRange:        1.0,
		Mutator:            mutator,
		Crossover:          &neat.Crossover{},
		HallOfFameCapacity: 5,
	}
	return neat.NewPopulation(cfg, 1)
}

func TestEvaluateGenerationSetsFitness(t *testing.T) {
	cfg := DefaultEvaluatorConfig()
	cfg.Sim.MaxTicks = 50
	cfg.Sim.TeamSize = 1
	cfg.Sim.NumTeams = 2
	cfg.Seeds = 2
	cfg.Workers = 2

	pop := testPopulation(t, cfg.Sim.PerceptionLength())
	ev := NewEvaluator(cfg)

	if err := ev.EvaluateGeneration(context.Background(), pop, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i, g := range pop.Genomes() {
		if g.Fitness < 0 {
			t.Fatalf("genome %d has negative fitness %v", i, g.Fitness)
		}
	}
}

func TestDeriveSeedIsDeterministic(t *testing.T) {
	a := deriveSeed(3, 17, 2, 0x1)
	b := deriveSeed(3, 17, 2, 0x1)
	if a != b {
		t.Fatalf("expected deriveSeed to be deterministic, got %d vs %d", a, b)
	}
	c := deriveSeed(3, 17, 2, 0x2)
	if a == c {
		t.Fatalf("expected different salts to diverge")
	}
}
