// Package match runs individual battles between genomes (or a fixed
// baseline controller) and aggregates per-generation evaluation results.
package match

import (
	"context"
	"fmt"

	"github.com/lixenwraith/swarmforge/neat"
	"github.com/lixenwraith/swarmforge/sim"
)

// ShipKind selects which controller variant fills a ship slot.
type ShipKind int

const (
	ShipNeural ShipKind = iota
	ShipNaive
)

// ShipSpec describes one ship slot. Specs must be supplied in the same
// team-major order sim.World.spawnShips produces: for team in
// [0,cfg.NumTeams), cfg.TeamSize consecutive specs.
type ShipSpec struct {
	Team   sim.Team
	Kind   ShipKind
	Genome neat.Genome // only consulted when Kind == ShipNeural
}

// Runner executes one match at a time; it holds no state across calls
// and is safe to invoke concurrently from distinct goroutines provided
// each call uses its own specs/world (no shared mutable state).
type Runner struct {
	Activation neat.Activation
}

// Run constructs a world, attaches one controller per ship per specs,
// and steps the pipeline to termination or ctx cancellation.
func (r *Runner) Run(ctx context.Context, cfg sim.Config, seed uint64, specs []ShipSpec, subjectShipIdx int) (sim.MatchStatistics, error) {
	w := sim.NewWorld(cfg, seed)
	if len(specs) != len(w.Ships) {
		return sim.MatchStatistics{}, fmt.Errorf("match: spec count %d does not match ship count %d", len(specs), len(w.Ships))
	}

	controllers := make([]sim.Controller, len(specs))
	compiled := make(map[uint64]*sim.NeuralController)
	for i, spec := range specs {
		switch spec.Kind {
		case ShipNaive:
			controllers[i] = sim.NewNaiveFSMController(w.RNG())
		default:
			nc, ok := compiled[spec.Genome.ID]
			if !ok {
				var err error
				nc, err = sim.NewNeuralController(spec.Genome, r.Activation, &cfg)
				if err != nil {
					return sim.MatchStatistics{}, fmt.Errorf("match: compiling genome %d: %w", spec.Genome.ID, err)
				}
				compiled[spec.Genome.ID] = nc
			}
			controllers[i] = nc
		}
	}

	var reason sim.TerminationReason
	for {
		select {
		case <-ctx.Done():
			return sim.BuildMatchStatistics(w, subjectShipIdx, sim.TerminatedCancelled), ctx.Err()
		default:
		}

		w.Step(controllers)
		reason = w.CheckTermination()
		if reason != sim.NotTerminated {
			break
		}
	}

	return sim.BuildMatchStatistics(w, subjectShipIdx, reason), nil
}
