package snapshot

import (
	"testing"

	"github.com/lixenwraith/swarmforge/neat"
)

func sampleGenome() neat.Genome {
	return neat.Genome{
		ID:      42,
		Fitness: 1.5,
		Nodes: []neat.NodeGene{
			{ID: 0, Kind: neat.NodeInput},
			{ID: 1, Kind: neat.NodeBias},
			{ID: 2, Kind: neat.NodeOutput},
			{ID: 3, Kind: neat.NodeHidden},
		},
		Conns: []neat.ConnGene{
			{Innovation: 0, From: 0, To: 3, Weight: 0.5, Enabled: true},
			{Innovation: 1, From: 3, To: 2, Weight: -0.75, Enabled: true},
			{Innovation: 2, From: 1, To: 2, Weight: 1.0, Enabled: false},
		},
	}
}

func TestGenomeDTORoundTrip(t *testing.T) {
	g := sampleGenome()
	dto := FromGenome(g, Metadata{Generation: 7})
	back := dto.ToGenome()

	if back.ID != g.ID || back.Fitness != g.Fitness {
		t.Fatalf("expected id/fitness to round-trip, got %+v", back)
	}
	if len(back.Nodes) != len(g.Nodes) || len(back.Conns) != len(g.Conns) {
		t.Fatalf("expected node/connection counts to round-trip")
	}
	for i := range g.Conns {
		if back.Conns[i] != g.Conns[i] {
			t.Fatalf("connection %d mismatch: got %+v want %+v", i, back.Conns[i], g.Conns[i])
		}
	}
}

func TestPopulationDTORoundTrip(t *testing.T) {
	genomes := []neat.Genome{sampleGenome(), sampleGenome()}
	genomes[1].ID = 43

	dto := FromGenomes(3, genomes, Metadata{Generation: 3})
	if dto.Generation != 3 {
		t.Fatalf("expected generation 3, got %d", dto.Generation)
	}

	back := dto.ToGenomes()
	if len(back) != 2 || back[0].ID != 42 || back[1].ID != 43 {
		t.Fatalf("expected genome ids to round-trip in order, got %+v", back)
	}
}
