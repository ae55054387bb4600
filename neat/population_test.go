package neat

import "testing"

func testPopulationConfig(numInputs int) PopulationConfig {
	return PopulationConfig{
		Size: 12,
		Compat: CompatibilityParams{
			ExcessCoeff:      1.0,
			DisjointCoeff:    1.0,
			WeightCoeff:      0.4,
			SmallGenomeBelow: 20,
		},
		ThresholdInitial:   3.0,
		ThresholdStep:      0.3,
		ThresholdMin:       0.5,
		TargetSpeciesCount: 3,
		StagnationWindow:   15,
		ElitismThreshold:   1,
		CrossoverRate:      0.7,
		TournamentSize:     3,
		NumInputs:          numInputs,
		NumOutputs:         2,
		WeightRange:        1.0,
		Mutator:            &Mutator{},
		Crossover:          &Crossover{},
		HallOfFameCapacity: 3,
	}
}

func TestNewPopulationSeedsRequestedSizeAndOneSpecies(t *testing.T) {
	p := NewPopulation(testPopulationConfig(4), 1)
	if len(p.Genomes()) != p.Cfg.Size {
		t.Fatalf("expected %d genomes, got %d", p.Cfg.Size, len(p.Genomes()))
	}
	if len(p.Species()) != 1 {
		t.Fatalf("expected all-minimal initial genomes to cluster into one species, got %d", len(p.Species()))
	}
}

func TestSpeciateSeparatesDistantGenomes(t *testing.T) {
	p := NewPopulation(testPopulationConfig(3), 2)
	// Push half the population far in weight space so it falls outside
	// the compatibility threshold of the other half's representative.
	for i := 0; i < len(p.candidates)/2; i++ {
		for j := range p.candidates[i].Data.Conns {
			p.candidates[i].Data.Conns[j].Weight += 50
		}
	}
	p.species = nil
	p.speciate()
	if len(p.species) < 2 {
		t.Fatalf("expected divergent weights to split into at least 2 species, got %d", len(p.species))
	}
}

func TestAdvanceAllocatesOffspringAndPreservesSize(t *testing.T) {
	p := NewPopulation(testPopulationConfig(3), 3)
	for i := range p.Genomes() {
		p.SetFitness(i, float64(i)+1)
	}
	p.Advance()
	if len(p.Genomes()) != p.Cfg.Size {
		t.Fatalf("expected population size to stay at %d after Advance, got %d", p.Cfg.Size, len(p.Genomes()))
	}
	if p.Generation != 1 {
		t.Fatalf("expected generation counter to increment, got %d", p.Generation)
	}
}

func TestAdvanceTracksHallOfFameChampion(t *testing.T) {
	p := NewPopulation(testPopulationConfig(3), 4)
	for i := range p.Genomes() {
		p.SetFitness(i, float64(i))
	}
	best := p.Best()
	p.Advance()
	if p.HoF.Len() == 0 {
		t.Fatalf("expected Hall of Fame to retain the pre-advance champion")
	}
	found := false
	for _, g := range p.HoF.All() {
		if g.ID == best.ID {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected Hall of Fame to contain the champion genome ID %d", best.ID)
	}
}

func TestAdjustThresholdTracksTargetSpeciesCount(t *testing.T) {
	p := NewPopulation(testPopulationConfig(3), 5)
	p.species = append(p.species,
		&Species{ID: 98, Representative: p.candidates[0].Data},
		&Species{ID: 99, Representative: p.candidates[0].Data},
		&Species{ID: 100, Representative: p.candidates[0].Data},
	)
	before := p.threshold
	p.adjustThreshold()
	if len(p.species) > p.Cfg.TargetSpeciesCount && p.threshold <= before {
		t.Fatalf("expected threshold to rise when species count exceeds target: before=%v after=%v", before, p.threshold)
	}
}

func TestHallOfFameEvictsLowestFitnessWhenFull(t *testing.T) {
	hof := NewHallOfFame(2)
	hof.Insert(Genome{ID: 1, Fitness: 1})
	hof.Insert(Genome{ID: 2, Fitness: 5})
	hof.Insert(Genome{ID: 3, Fitness: 3})
	if hof.Len() != 2 {
		t.Fatalf("expected capacity-bounded length 2, got %d", hof.Len())
	}
	for _, g := range hof.All() {
		if g.ID == 1 {
			t.Fatalf("expected the lowest-fitness entry to be evicted, found ID 1 still present")
		}
	}
}

func TestCurrentStatsReflectsFitness(t *testing.T) {
	p := NewPopulation(testPopulationConfig(3), 6)
	for i := range p.Genomes() {
		p.SetFitness(i, float64(i))
	}
	stats := p.CurrentStats()
	if stats.BestFitness != float64(len(p.Genomes())-1) {
		t.Fatalf("expected best fitness %v, got %v", len(p.Genomes())-1, stats.BestFitness)
	}
}
