package snapshot

import (
	"path/filepath"
	"testing"

	"github.com/lixenwraith/swarmforge/neat"
)

func TestSaveLoadGenomeRoundTrip(t *testing.T) {
	dir := t.TempDir()
	m := NewManager(dir)

	g := sampleGenome()
	dto := FromGenome(g, Metadata{Generation: 5, Timestamp: "2026-07-30T00:00:00Z"})

	path := m.GenomeFilePath(5)
	if err := m.SaveGenome(path, dto); err != nil {
		t.Fatalf("SaveGenome: %v", err)
	}
	if !m.Exists(path) {
		t.Fatalf("expected genome file to exist at %s", path)
	}

	loaded, err := m.LoadGenome(path)
	if err != nil {
		t.Fatalf("LoadGenome: %v", err)
	}
	if loaded.ID != dto.ID || loaded.Metadata.Generation != 5 {
		t.Fatalf("expected loaded genome to match saved, got %+v", loaded)
	}
}

func TestSaveChampionWritesLatestAlongside(t *testing.T) {
	dir := t.TempDir()
	m := NewManager(dir)

	dto := FromGenome(sampleGenome(), Metadata{Generation: 9})
	if err := m.SaveChampion(9, dto); err != nil {
		t.Fatalf("SaveChampion: %v", err)
	}

	if !m.Exists(m.GenomeFilePath(9)) {
		t.Fatalf("expected per-generation champion file to exist")
	}
	latest := filepath.Join(dir, championLatestName)
	if !m.Exists(latest) {
		t.Fatalf("expected champion_latest file to exist at %s", latest)
	}
}

func TestSaveLoadPopulationRoundTrip(t *testing.T) {
	dir := t.TempDir()
	m := NewManager(dir)

	g1, g2 := sampleGenome(), sampleGenome()
	g2.ID = 99

	pop := FromGenomes(12, []neat.Genome{g1, g2}, Metadata{Generation: 12})
	if err := m.SavePopulation(12, pop); err != nil {
		t.Fatalf("SavePopulation: %v", err)
	}

	loaded, err := m.LoadPopulation(12)
	if err != nil {
		t.Fatalf("LoadPopulation: %v", err)
	}
	back := loaded.ToGenomes()
	if len(back) != 2 || back[0].ID != g1.ID || back[1].ID != g2.ID {
		t.Fatalf("expected population genomes to round-trip in order, got %+v", back)
	}
}
