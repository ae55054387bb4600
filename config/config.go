// Package config builds a training run's configuration by merging CLI
// flags over environment variables over a config file over the
// parameter package's defaults, in that precedence order, using
// spf13/viper the way the pack's FromYaml helper drives it: a fresh
// viper instance per call rather than viper's global singleton, so
// independent config loads never clobber each other.
package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/lixenwraith/swarmforge/fitness"
	"github.com/lixenwraith/swarmforge/match"
	"github.com/lixenwraith/swarmforge/parameter"
	"github.com/lixenwraith/swarmforge/sim"
	"github.com/lixenwraith/swarmforge/vmath"
)

// TrainConfig is the fully merged configuration for a `train` run, per
// spec.md §6's CLI surface for the train subcommand.
type TrainConfig struct {
	RunID             string
	Workers           int
	DurationSeconds   int
	Generations       int
	SnapshotInterval  int
	TeamSize          int
	NumTeams          int
	FitnessFn         string
	EvalSeeds         int
	EnableSalvage     bool
	DistanceMode      string
	Seed              uint64
	Verbose           bool

	Sim  sim.Config
	Eval match.EvaluatorConfig
}

// defaults returns a TrainConfig seeded entirely from the parameter
// package, before any flag/env/file overrides are applied.
func defaults() TrainConfig {
	evalCfg := match.DefaultEvaluatorConfig()
	return TrainConfig{
		Workers:          parameter.EvalWorkersDefault,
		SnapshotInterval: parameter.SnapshotIntervalDefault,
		TeamSize:         evalCfg.Sim.TeamSize,
		NumTeams:         evalCfg.Sim.NumTeams,
		FitnessFn:        "full",
		EvalSeeds:        parameter.EvalSeedsDefault,
		EnableSalvage:    true,
		DistanceMode:     "toroidal",
		Sim:              evalCfg.Sim,
		Eval:             evalCfg,
	}
}

// Load merges, in ascending precedence (later wins): parameter defaults,
// configFile (TOML or YAML, optional — empty path skips the file
// layer), environment variables prefixed SWARMFORGE_, then flagOverrides
// (already-parsed cobra flag values; every key present in the map is
// applied, so callers pass only the flags they want to override).
func Load(configFile string, flagOverrides map[string]any) (TrainConfig, error) {
	cfg := defaults()

	vp := viper.New()
	vp.SetEnvPrefix("SWARMFORGE")
	vp.AutomaticEnv()
	vp.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	if configFile != "" {
		vp.SetConfigFile(configFile)
		vp.AddConfigPath(filepath.Dir(configFile))
		if err := vp.ReadInConfig(); err != nil {
			return cfg, fmt.Errorf("config: reading %s: %w", configFile, err)
		}
	}

	applyViperLayer(&cfg, vp)
	applyFlagLayer(&cfg, flagOverrides)

	if err := validate(cfg); err != nil {
		return cfg, err
	}

	cfg.Sim.TeamSize = cfg.TeamSize
	cfg.Sim.NumTeams = cfg.NumTeams
	cfg.Sim.Mode = parseDistanceMode(cfg.DistanceMode)

	cfg.Eval.Sim = cfg.Sim
	cfg.Eval.Seeds = cfg.EvalSeeds
	cfg.Eval.Preset = parsePreset(cfg.FitnessFn)
	cfg.Eval.Workers = cfg.Workers

	if cfg.RunID == "" {
		cfg.RunID = GenerateRunID(cfg.FitnessFn, parameter.FitnessWeightHealth, parameter.FitnessWeightDamage, parameter.FitnessWeightKills)
	}

	return cfg, nil
}

func applyViperLayer(cfg *TrainConfig, vp *viper.Viper) {
	if vp.IsSet("run_id") {
		cfg.RunID = vp.GetString("run_id")
	}
	if vp.IsSet("workers") {
		cfg.Workers = vp.GetInt("workers")
	}
	if vp.IsSet("duration_seconds") {
		cfg.DurationSeconds = vp.GetInt("duration_seconds")
	}
	if vp.IsSet("runs") {
		cfg.Generations = vp.GetInt("runs")
	}
	if vp.IsSet("snapshot_interval") {
		cfg.SnapshotInterval = vp.GetInt("snapshot_interval")
	}
	if vp.IsSet("team_size") {
		cfg.TeamSize = vp.GetInt("team_size")
	}
	if vp.IsSet("num_teams") {
		cfg.NumTeams = vp.GetInt("num_teams")
	}
	if vp.IsSet("fitness_fn") {
		cfg.FitnessFn = vp.GetString("fitness_fn")
	}
	if vp.IsSet("eval_seeds") {
		cfg.EvalSeeds = vp.GetInt("eval_seeds")
	}
	if vp.IsSet("enable_salvage") {
		cfg.EnableSalvage = vp.GetBool("enable_salvage")
	}
	if vp.IsSet("distance_mode") {
		cfg.DistanceMode = vp.GetString("distance_mode")
	}
	if vp.IsSet("seed") {
		cfg.Seed = uint64(vp.GetInt64("seed"))
	}
	if vp.IsSet("verbose") {
		cfg.Verbose = vp.GetBool("verbose")
	}
}

// applyFlagLayer applies cobra flag values, which take precedence over
// everything else. Only keys present in overrides are applied.
func applyFlagLayer(cfg *TrainConfig, overrides map[string]any) {
	for k, v := range overrides {
		switch k {
		case "run_id":
			cfg.RunID = v.(string)
		case "workers":
			cfg.Workers = v.(int)
		case "duration_seconds":
			cfg.DurationSeconds = v.(int)
		case "runs":
			cfg.Generations = v.(int)
		case "snapshot_interval":
			cfg.SnapshotInterval = v.(int)
		case "team_size":
			cfg.TeamSize = v.(int)
		case "num_teams":
			cfg.NumTeams = v.(int)
		case "fitness_fn":
			cfg.FitnessFn = v.(string)
		case "eval_seeds":
			cfg.EvalSeeds = v.(int)
		case "enable_salvage":
			cfg.EnableSalvage = v.(bool)
		case "distance_mode":
			cfg.DistanceMode = v.(string)
		case "seed":
			cfg.Seed = v.(uint64)
		case "verbose":
			cfg.Verbose = v.(bool)
		}
	}
}

func validate(cfg TrainConfig) error {
	if cfg.TeamSize <= 0 {
		return fmt.Errorf("config: team_size must be positive, got %d", cfg.TeamSize)
	}
	if cfg.NumTeams <= 1 {
		return fmt.Errorf("config: num_teams must be at least 2, got %d", cfg.NumTeams)
	}
	if cfg.Workers < 0 {
		return fmt.Errorf("config: workers must not be negative, got %d", cfg.Workers)
	}
	if cfg.DurationSeconds <= 0 && cfg.Generations <= 0 {
		return fmt.Errorf("config: one of duration_seconds or runs must be positive")
	}
	return nil
}

func parseDistanceMode(s string) vmath.DistanceMode {
	if strings.EqualFold(s, "euclidean") {
		return vmath.Euclidean
	}
	return vmath.Toroidal
}

func parsePreset(s string) fitness.Preset {
	switch strings.ToLower(s) {
	case "health_damage":
		return fitness.HealthDamage
	case "health_damage_kills":
		return fitness.HealthDamageKills
	case "health_damage_kills_time":
		return fitness.HealthDamageKillsTime
	case "health_damage_kills_time_salvage":
		return fitness.HealthDamageKillsTimeSalvage
	default:
		return fitness.Full
	}
}

// GenerateRunID formats spec.md §6's auto-generated run_id:
// <timestamp>-fn-<fn>-h<wh>-d<wd>-k<wk>, where wh/wd/wk are the
// health/damage/kills fitness weights in effect for the run.
func GenerateRunID(fitnessFn string, wHealth, wDamage, wKills float64) string {
	return fmt.Sprintf("%s-fn-%s-h%g-d%g-k%g",
		time.Now().UTC().Format("20060102T150405Z"), fitnessFn, wHealth, wDamage, wKills)
}
