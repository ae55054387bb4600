package tournament

import (
	"context"
	"fmt"

	"github.com/lixenwraith/swarmforge/match"
	"github.com/lixenwraith/swarmforge/neat"
	"github.com/lixenwraith/swarmforge/parameter"
	"github.com/lixenwraith/swarmforge/sim"
)

// Contestant is one named entrant in a round-robin: either a genome
// (Kind == match.ShipNeural) or the fixed Naive-FSM baseline.
type Contestant struct {
	ID     string
	Kind   match.ShipKind
	Genome neat.Genome
}

// NaiveBaselineID is the fixed identifier used for the Naive-FSM entrant.
const NaiveBaselineID = "naive-fsm"

// Config bundles the round-robin's match parameters.
type Config struct {
	Rounds  int
	KFactor float64
	Sim     sim.Config
}

// DefaultConfig wires parameter-package Elo defaults.
func DefaultConfig() Config {
	return Config{
		Rounds:  parameter.EloRoundsDefault,
		KFactor: parameter.EloKFactorDefault,
		Sim:     sim.DefaultConfig(),
	}
}

// Result is one completed ordered-pair match, kept for reporting.
type Result struct {
	A, B    string
	Outcome Outcome
}

// RoundRobin plays cfg.Rounds matches for every ordered pair of
// contestants, updates ratings and returns the final Table alongside
// the individual match results.
func RoundRobin(ctx context.Context, cfg Config, contestants []Contestant) (Table, []Result, error) {
	ids := make([]string, len(contestants))
	for i, c := range contestants {
		ids[i] = c.ID
	}
	ratings := NewTable(ids)

	var results []Result
	runner := match.Runner{Activation: neat.Tanh}

	for i, a := range contestants {
		for j, b := range contestants {
			if i == j {
				continue
			}
			for round := 0; round < cfg.Rounds; round++ {
				seed := pairSeed(a.ID, b.ID, round)
				specs := []match.ShipSpec{
					{Team: 0, Kind: a.Kind, Genome: a.Genome},
					{Team: 1, Kind: b.Kind, Genome: b.Genome},
				}
				stats, err := runner.Run(ctx, cfg.Sim, seed, specs, 0)
				if err != nil {
					return nil, nil, fmt.Errorf("tournament: match %s vs %s round %d: %w", a.ID, b.ID, round, err)
				}

				outcome := outcomeFromStats(stats)
				ratings.Update(a.ID, b.ID, outcome, cfg.KFactor)
				results = append(results, Result{A: a.ID, B: b.ID, Outcome: outcome})
			}
		}
	}

	return ratings, results, nil
}

func outcomeFromStats(stats sim.MatchStatistics) Outcome {
	a := stats.Teams[0]
	b := stats.Teams[1]
	switch {
	case a.FinalHealthSum > b.FinalHealthSum:
		return Win
	case b.FinalHealthSum > a.FinalHealthSum:
		return Loss
	default:
		return Draw
	}
}

// pairSeed derives a deterministic world seed from the ordered pair and
// round index so a re-run of the same tournament reproduces identical
// matches.
func pairSeed(a, b string, round int) uint64 {
	h := uint64(14695981039346656037)
	for _, s := range []string{a, b} {
		for _, c := range s {
			h ^= uint64(c)
			h *= 1099511628211
		}
		h ^= 0xff
		h *= 1099511628211
	}
	h ^= uint64(round) * 0x9E3779B97F4A7C15
	h *= 1099511628211
	return h
}
