package main

import (
	"encoding/json"
	"os"
	"testing"
)

func TestConfigSnapshotMarshalsCleanly(t *testing.T) {
	snap := configSnapshot{RunID: "r1", Workers: 4, Generations: 50, TeamSize: 2, NumTeams: 2, FitnessFn: "full"}
	data, err := json.Marshal(snap)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back configSnapshot
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.RunID != "r1" || back.Workers != 4 {
		t.Fatalf("expected config snapshot to round-trip, got %+v", back)
	}
}

func TestEnvWorkersParsesIntOrIgnores(t *testing.T) {
	os.Setenv("SWARMFORGE_WORKERS", "8")
	defer os.Unsetenv("SWARMFORGE_WORKERS")
	n, ok := envWorkers()
	if !ok || n != 8 {
		t.Fatalf("expected envWorkers to parse 8, got %d %v", n, ok)
	}

	os.Setenv("SWARMFORGE_WORKERS", "not-a-number")
	if _, ok := envWorkers(); ok {
		t.Fatalf("expected envWorkers to reject non-numeric value")
	}

	os.Unsetenv("SWARMFORGE_WORKERS")
	if _, ok := envWorkers(); ok {
		t.Fatalf("expected envWorkers to report unset as false")
	}
}
