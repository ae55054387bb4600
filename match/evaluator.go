package match

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"

	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/swarmforge/fitness"
	"github.com/lixenwraith/swarmforge/neat"
	"github.com/lixenwraith/swarmforge/parameter"
	"github.com/lixenwraith/swarmforge/sim"
)

// EvaluatorConfig bundles the opponent-sourcing and parallelism knobs of
// spec.md §4.7.
type EvaluatorConfig struct {
	Seeds                      int
	HoFMatchRate               float64
	TournamentK                int
	AlwaysIncludeNaiveBaseline bool
	Workers                    int
	Preset                     fitness.Preset

	Sim        sim.Config
	Activation neat.Activation
}

// DefaultEvaluatorConfig returns the parameter-package defaults.
func DefaultEvaluatorConfig() EvaluatorConfig {
	return EvaluatorConfig{
		Seeds:                      parameter.EvalSeedsDefault,
		HoFMatchRate:               parameter.EvalHoFMatchRate,
		TournamentK:                parameter.EvalTournamentK,
		AlwaysIncludeNaiveBaseline: parameter.EvalAlwaysIncludeNaiveBaseline,
		Workers:                    parameter.EvalWorkersDefault,
		Preset:                     fitness.Full,
		Sim:                        sim.DefaultConfig(),
		Activation:                 neat.Tanh,
	}
}

// Evaluator runs one full generation's worth of matches across a
// worker pool and writes fitness back onto the population.
type Evaluator struct {
	Cfg    EvaluatorConfig
	Runner Runner
}

// NewEvaluator wires Runner.Activation from Cfg.Activation.
func NewEvaluator(cfg EvaluatorConfig) *Evaluator {
	return &Evaluator{Cfg: cfg, Runner: Runner{Activation: cfg.Activation}}
}

// EvaluateGeneration plays Cfg.Seeds matches per genome against
// opponents drawn per spec.md §4.7, in parallel bounded by Cfg.Workers,
// and calls pop.SetFitness with each genome's mean match fitness.
// Results are written into a pre-sized slice indexed by population
// position, so aggregation is independent of goroutine completion
// order (spec.md §5's sorted-by-genome-id aggregation requirement).
func (e *Evaluator) EvaluateGeneration(ctx context.Context, pop *neat.Population, generation int) error {
	genomes := pop.Genomes()
	scores := make([]float64, len(genomes))
	failures := make([]int, len(genomes))

	g, gctx := errgroup.WithContext(ctx)
	if e.Cfg.Workers > 0 {
		g.SetLimit(e.Cfg.Workers)
	}

	for i := range genomes {
		i := i
		g.Go(func() error {
			score, failed, err := e.evaluateOne(gctx, pop, genomes, generation, i)
			if err != nil {
				return err
			}
			scores[i] = score
			failures[i] = failed
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("match: generation %d evaluation failed: %w", generation, err)
	}

	for i, s := range scores {
		pop.SetFitness(i, s)
	}
	return nil
}

// evaluateOne plays Cfg.Seeds matches for genomes[idx] and returns the
// mean fitness across them. A match whose Runner.Run returns an error or
// panics contributes a sentinel low fitness rather than aborting
// the whole genome's evaluation, per spec.md §4.10.
func (e *Evaluator) evaluateOne(ctx context.Context, pop *neat.Population, genomes []neat.Genome, generation, idx int) (float64, int, error) {
	subject := genomes[idx]
	seeds := e.Cfg.Seeds
	if seeds <= 0 {
		seeds = 1
	}

	naiveSlot := -1
	if e.Cfg.AlwaysIncludeNaiveBaseline {
		naiveSlot = seeds - 1
	}
	remaining := seeds
	if naiveSlot >= 0 {
		remaining--
	}
	hofCount := int(math.Round(float64(remaining) * e.Cfg.HoFMatchRate))

	var total float64
	var failed int
	for m := 0; m < seeds; m++ {
		selRNG := rand.New(rand.NewPCG(deriveSeed(generation, subject.ID, m, 0x1), deriveSeed(generation, subject.ID, m, 0x2)))

		var specs []ShipSpec
		var useNaive bool
		switch {
		case m == naiveSlot:
			useNaive = true
		case m < hofCount && pop.HoF.Len() > 0:
			sample := pop.HoF.Sample(pop.HoF.Len())
			opponent := sample[selRNG.IntN(len(sample))]
			specs = e.composeSpecs(subject, opponent, false)
		default:
			peer := e.sampleTournamentPeer(genomes, idx, selRNG)
			specs = e.composeSpecs(subject, peer, false)
		}
		if useNaive {
			specs = e.composeSpecs(subject, neat.Genome{}, true)
		}

		worldSeed := deriveSeed(generation, subject.ID, m, 0x3)
		stats, err := func() (st sim.MatchStatistics, err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("match: panic in match %d: %v", m, r)
				}
			}()
			return e.Runner.Run(ctx, e.Cfg.Sim, worldSeed, specs, 0)
		}()
		if err != nil {
			failed++
			total += 0 // sentinel low fitness contribution
			continue
		}
		total += fitness.Evaluate(stats, e.Cfg.Sim.MaxTicks, e.Cfg.Preset)
	}

	return total / float64(seeds), failed, nil
}

func (e *Evaluator) composeSpecs(subject, opponent neat.Genome, opponentIsNaive bool) []ShipSpec {
	cfg := e.Cfg.Sim
	specs := make([]ShipSpec, 0, cfg.NumTeams*cfg.TeamSize)
	for i := 0; i < cfg.TeamSize; i++ {
		specs = append(specs, ShipSpec{Team: 0, Kind: ShipNeural, Genome: subject})
	}
	for team := 1; team < cfg.NumTeams; team++ {
		for i := 0; i < cfg.TeamSize; i++ {
			if opponentIsNaive {
				specs = append(specs, ShipSpec{Team: sim.Team(team), Kind: ShipNaive})
			} else {
				specs = append(specs, ShipSpec{Team: sim.Team(team), Kind: ShipNeural, Genome: opponent})
			}
		}
	}
	return specs
}

func (e *Evaluator) sampleTournamentPeer(genomes []neat.Genome, excludeIdx int, rng *rand.Rand) neat.Genome {
	k := e.Cfg.TournamentK
	if k <= 0 {
		k = 1
	}
	best := -1
	for tries := 0; tries < k*4 && best == -1; tries++ {
		cand := rng.IntN(len(genomes))
		if cand != excludeIdx {
			best = cand
		}
	}
	if best == -1 {
		best = excludeIdx
	}
	return genomes[best]
}

// deriveSeed combines (generation, genomeID, matchIndex, salt) into a
// single deterministic stream seed via a MurmurHash3 fmix64-style
// finalizer, so replaying
// the same generation/genome/match always derives the same randomness
// regardless of goroutine scheduling order.
func deriveSeed(generation int, genomeID uint64, matchIndex int, salt uint64) uint64 {
	h := uint64(generation)*0x9E3779B97F4A7C15 + genomeID*0xD1B54A32D192ED03 + uint64(matchIndex)*0xBF58476D1CE4E5B9 + salt
	h ^= h >> 33
	h *= 0xff51afd7ed558ccd
	h ^= h >> 33
	h *= 0xc4ceb9fe1a85ec53
	h ^= h >> 33
	return h
}
