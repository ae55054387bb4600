package match

import (
	"context"
	"testing"

	"github.com/lixenwraith/swarmforge/neat"
	"github.com/lixenwraith/swarmforge/sim"
)

func TestRunNaiveVsNaiveTerminates(t *testing.T) {
	cfg := sim.DefaultConfig()
	cfg.MaxTicks = 200
	cfg.TeamSize = 2
	cfg.NumTeams = 2

	specs := []ShipSpec{
		{Team: 0, Kind: ShipNaive}, {Team: 0, Kind: ShipNaive},
		{Team: 1, Kind: ShipNaive}, {Team: 1, Kind: ShipNaive},
	}

	r := Runner{Activation: neat.Tanh}
	stats, err := r.Run(context.Background(), cfg, 42, specs, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.Ticks == 0 {
		t.Fatalf("expected at least one tick to run")
	}
	if stats.Ticks > cfg.MaxTicks {
		t.Fatalf("expected termination by max ticks, got %d", stats.Ticks)
	}
}

func TestRunSpecCountMismatchErrors(t *testing.T) {
	cfg := sim.DefaultConfig()
	r := Runner{Activation: neat.Tanh}
	_, err := r.Run(context.Background(), cfg, 1, []ShipSpec{{Team: 0, Kind: ShipNaive}}, 0)
	if err == nil {
		t.Fatalf("expected an error for mismatched spec count")
	}
}

func TestRunRespectsContextCancellation(t *testing.T) {
	cfg := sim.DefaultConfig()
	cfg.MaxTicks = 1_000_000
	cfg.EarlyExit = false
	cfg.TeamSize = 1
	cfg.NumTeams = 2
	specs := []ShipSpec{{Team: 0, Kind: ShipNaive}, {Team: 1, Kind: ShipNaive}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := Runner{Activation: neat.Tanh}
	stats, err := r.Run(ctx, cfg, 7, specs, 0)
	if err == nil {
		t.Fatalf("expected context cancellation error")
	}
	if stats.TerminationReason != sim.TerminatedCancelled {
		t.Fatalf("expected TerminatedCancelled, got %v", stats.TerminationReason)
	}
}
