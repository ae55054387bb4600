package tournament

import (
	"context"
	"testing"

	"github.com/lixenwraith/swarmforge/match"
	"github.com/lixenwraith/swarmforge/sim"
)

func TestRoundRobinNaiveOnlyProducesResultsForEveryOrderedPair(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Rounds = 1
	cfg.Sim.MaxTicks = 100
	cfg.Sim.TeamSize = 1
	cfg.Sim.NumTeams = 2

	contestants := []Contestant{
		{ID: "fsm-a", Kind: match.ShipNaive},
		{ID: "fsm-b", Kind: match.ShipNaive},
		{ID: "fsm-c", Kind: match.ShipNaive},
	}

	ratings, results, err := RoundRobin(context.Background(), cfg, contestants)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 3*2*cfg.Rounds {
		t.Fatalf("expected %d results, got %d", 3*2*cfg.Rounds, len(results))
	}
	if len(ratings) != 3 {
		t.Fatalf("expected 3 rated contestants, got %d", len(ratings))
	}
}

func TestPairSeedDeterministic(t *testing.T) {
	a := pairSeed("x", "y", 0)
	b := pairSeed("x", "y", 0)
	if a != b {
		t.Fatalf("expected pairSeed to be deterministic")
	}
	if pairSeed("x", "y", 0) == pairSeed("y", "x", 0) {
		t.Fatalf("expected order to matter for pairSeed")
	}
}

func TestOutcomeFromStatsPrefersHigherHealth(t *testing.T) {
	stats := sim.MatchStatistics{Teams: map[sim.Team]sim.TeamStats{
		0: {FinalHealthSum: 10},
		1: {FinalHealthSum: 5},
	}}
	if outcomeFromStats(stats) != Win {
		t.Fatalf("expected Win when team 0 has more health")
	}
}
