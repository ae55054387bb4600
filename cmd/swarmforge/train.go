package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/swarmforge/config"
	"github.com/lixenwraith/swarmforge/match"
	"github.com/lixenwraith/swarmforge/neat"
	"github.com/lixenwraith/swarmforge/parameter"
	"github.com/lixenwraith/swarmforge/snapshot"
	"github.com/lixenwraith/swarmforge/store"
)

// configSnapshot is the JSON-safe subset of config.TrainConfig persisted
// into the run store; the full struct carries function-typed fields
// (match.EvaluatorConfig's Activation) that json.Marshal
// cannot encode.
type configSnapshot struct {
	RunID            string  `json:"run_id"`
	Workers          int     `json:"workers"`
	DurationSeconds  int     `json:"duration_seconds"`
	Generations      int     `json:"generations"`
	SnapshotInterval int     `json:"snapshot_interval"`
	TeamSize         int     `json:"team_size"`
	NumTeams         int     `json:"num_teams"`
	FitnessFn        string  `json:"fitness_fn"`
	EvalSeeds        int     `json:"eval_seeds"`
	EnableSalvage    bool    `json:"enable_salvage"`
	DistanceMode     string  `json:"distance_mode"`
	Seed             uint64  `json:"seed"`
}

var (
	trainConfigFile string
	trainRuns       int
	trainDuration   int
	trainTeamSize   int
	trainNumTeams   int
	trainFitnessFn  string
	trainEvalSeeds  int
	trainSeed       int64
)

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Start a training run",
	RunE:  runTrain,
}

func init() {
	trainCmd.Flags().StringVar(&trainConfigFile, "config", "", "path to a TOML/YAML config file")
	trainCmd.Flags().IntVar(&trainRuns, "runs", 0, "number of generations to evolve (0 = unbounded, relies on duration_seconds)")
	trainCmd.Flags().IntVar(&trainDuration, "duration-seconds", 0, "wall-clock deadline in seconds (0 = unbounded, relies on runs)")
	trainCmd.Flags().IntVar(&trainTeamSize, "team-size", 0, "ships per team (0 = use config/default)")
	trainCmd.Flags().IntVar(&trainNumTeams, "num-teams", 0, "number of teams (0 = use config/default)")
	trainCmd.Flags().StringVar(&trainFitnessFn, "fitness-fn", "", "fitness preset name")
	trainCmd.Flags().IntVar(&trainEvalSeeds, "eval-seeds", 0, "matches played per genome per generation (0 = use config/default)")
	trainCmd.Flags().Int64Var(&trainSeed, "seed", 0, "deterministic base seed")
}

func envWorkers() (int, bool) {
	v := os.Getenv("SWARMFORGE_WORKERS")
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

func runTrain(cmd *cobra.Command, args []string) error {
	overrides := map[string]any{}
	if trainRuns > 0 {
		overrides["runs"] = trainRuns
	}
	if trainDuration > 0 {
		overrides["duration_seconds"] = trainDuration
	}
	if trainTeamSize > 0 {
		overrides["team_size"] = trainTeamSize
	}
	if trainNumTeams > 0 {
		overrides["num_teams"] = trainNumTeams
	}
	if trainFitnessFn != "" {
		overrides["fitness_fn"] = trainFitnessFn
	}
	if trainEvalSeeds > 0 {
		overrides["eval_seeds"] = trainEvalSeeds
	}
	if trainSeed != 0 {
		overrides["seed"] = uint64(trainSeed)
	}
	if workersFlag > 0 {
		overrides["workers"] = workersFlag
	} else if w, ok := envWorkers(); ok {
		overrides["workers"] = w
	}
	overrides["verbose"] = verboseFlag

	cfg, err := config.Load(trainConfigFile, overrides)
	if err != nil {
		return fmt.Errorf("train: %w", err)
	}

	runDir := filepath.Join(runDirFlag, cfg.RunID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return fmt.Errorf("train: creating run dir: %w", err)
	}

	db, err := store.Open(filepath.Join(runDir, "run.db"))
	if err != nil {
		return fmt.Errorf("train: opening run store: %w", err)
	}
	defer db.Close()

	configJSON, err := json.Marshal(configSnapshot{
		RunID: cfg.RunID, Workers: cfg.Workers, DurationSeconds: cfg.DurationSeconds,
		Generations: cfg.Generations, SnapshotInterval: cfg.SnapshotInterval,
		TeamSize: cfg.TeamSize, NumTeams: cfg.NumTeams, FitnessFn: cfg.FitnessFn,
		EvalSeeds: cfg.EvalSeeds, EnableSalvage: cfg.EnableSalvage,
		DistanceMode: cfg.DistanceMode, Seed: cfg.Seed,
	})
	if err != nil {
		return fmt.Errorf("train: marshaling config snapshot: %w", err)
	}
	if err := db.InsertRun(store.RunRecord{
		RunID:      cfg.RunID,
		ConfigJSON: string(configJSON),
		StartedAt:  time.Now().UTC().Format(time.RFC3339),
		Status:     "running",
	}); err != nil {
		return fmt.Errorf("train: recording run start: %w", err)
	}

	pop := neat.NewPopulation(neat.PopulationConfig{
		Size:               cfg.Eval.Sim.TeamSize * 16,
		ThresholdInitial:   3.0,
		ThresholdStep:      0.3,
		ThresholdMin:       0.5,
		TargetSpeciesCount: 8,
		StagnationWindow:   15,
		ElitismThreshold:   2,
		CrossoverRate:      0.75,
		TournamentSize:     3,
		NumInputs:          cfg.Sim.PerceptionLength(),
		NumOutputs:         6,
		WeightRange:        1.0,
		Compat: neat.CompatibilityParams{
			ExcessCoeff:      parameter.NEATCompatExcessCoefficient,
			DisjointCoeff:    parameter.NEATCompatDisjointCoefficient,
			WeightCoeff:      parameter.NEATCompatWeightCoefficient,
			SmallGenomeBelow: parameter.NEATCompatSmallGenomeThreshold,
		},
		Mutator:            &neat.Mutator{},
		Crossover:          &neat.Crossover{},
		HallOfFameCapacity: 10,
	}, cfg.Seed)

	evaluator := match.NewEvaluator(cfg.Eval)
	mgr := snapshot.NewManager(runDir)

	ctx := context.Background()
	var deadline time.Time
	if cfg.DurationSeconds > 0 {
		deadline = time.Now().Add(time.Duration(cfg.DurationSeconds) * time.Second)
	}

	for gen := 0; cfg.Generations <= 0 || gen < cfg.Generations; gen++ {
		if !deadline.IsZero() && time.Now().After(deadline) {
			break
		}

		start := time.Now()
		if err := evaluator.EvaluateGeneration(ctx, pop, gen); err != nil {
			return fmt.Errorf("train: generation %d: %w", gen, err)
		}
		stats := pop.CurrentStats()

		if err := db.InsertGeneration(store.GenerationRecord{
			RunID: cfg.RunID, Generation: gen,
			BestFitness: stats.BestFitness, AvgFitness: stats.AvgFitness,
			SpeciesCount: stats.SpeciesCount, WallTimeMs: time.Since(start).Milliseconds(),
		}); err != nil {
			return fmt.Errorf("train: recording generation %d: %w", gen, err)
		}

		if gen%cfg.SnapshotInterval == 0 || gen == cfg.Generations-1 {
			champion := pop.Best()
			dto := snapshot.FromGenome(champion, snapshot.Metadata{
				Timestamp:  time.Now().UTC().Format(time.RFC3339),
				Generation: gen,
			})
			if err := mgr.SaveChampion(gen, dto); err != nil {
				return fmt.Errorf("train: saving champion at generation %d: %w", gen, err)
			}

			championUUID := uuid.NewString()
			if err := db.InsertChampion(store.ChampionRecord{
				RunID: cfg.RunID, Generation: gen, ChampionUUID: championUUID,
				FilePath: mgr.GenomeFilePath(gen), Fitness: champion.Fitness,
			}); err != nil {
				return fmt.Errorf("train: recording champion at generation %d: %w", gen, err)
			}
		}

		pop.Advance()
	}

	return db.SetRunStatus(cfg.RunID, "completed")
}
