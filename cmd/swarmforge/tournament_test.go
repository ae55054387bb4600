package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lixenwraith/swarmforge/tournament"
)

func TestWriteEloRatingsFileRoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "elo_ratings.toml")

	ratings := tournament.NewTable([]string{"a", "b"})
	ratings.Update("a", "b", tournament.Win, 24)

	if err := writeEloRatingsFile(path, ratings); err != nil {
		t.Fatalf("writeEloRatingsFile: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading elo ratings file: %v", err)
	}
	if len(data) == 0 {
		t.Fatalf("expected a non-empty elo ratings file")
	}
}
