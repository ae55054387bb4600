package config

import "testing"

func TestLoadDefaultsPassValidation(t *testing.T) {
	cfg, err := Load("", map[string]any{"runs": 50})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.RunID == "" {
		t.Fatalf("expected an auto-generated run_id")
	}
	if cfg.Eval.Seeds != cfg.EvalSeeds {
		t.Fatalf("expected Eval.Seeds to mirror EvalSeeds, got %d vs %d", cfg.Eval.Seeds, cfg.EvalSeeds)
	}
}

func TestFlagLayerOverridesDefaults(t *testing.T) {
	cfg, err := Load("", map[string]any{
		"runs":       10,
		"team_size":  3,
		"num_teams":  2,
		"fitness_fn": "health_damage_kills",
	})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.TeamSize != 3 || cfg.NumTeams != 2 {
		t.Fatalf("expected flag overrides to win, got team_size=%d num_teams=%d", cfg.TeamSize, cfg.NumTeams)
	}
	if cfg.Sim.TeamSize != 3 || cfg.Sim.NumTeams != 2 {
		t.Fatalf("expected sim.Config to mirror team/num overrides")
	}
}

func TestLoadRejectsMissingDurationAndGenerations(t *testing.T) {
	if _, err := Load("", map[string]any{"team_size": 1, "num_teams": 2}); err == nil {
		t.Fatalf("expected validation error when neither duration_seconds nor runs is set")
	}
}

func TestExplicitRunIDIsPreserved(t *testing.T) {
	cfg, err := Load("", map[string]any{"runs": 5, "run_id": "fixed-id"})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.RunID != "fixed-id" {
		t.Fatalf("expected explicit run_id to survive, got %q", cfg.RunID)
	}
}
