package neat

import (
	"math/rand/v2"

	"github.com/lixenwraith/swarmforge/genetic"
)

// PopulationConfig bundles the speciation/reproduction parameters of
// spec.md §4.6, immutable for the run.
type PopulationConfig struct {
	Size int

	Compat             CompatibilityParams
	TargetSpeciesCount int
	ThresholdInitial   float64
	ThresholdStep      float64
	ThresholdMin       float64

	StagnationWindow int
	ElitismThreshold int

	CrossoverRate          float64
	InterspeciesMatingRate float64
	TournamentSize         int

	NumInputs, NumOutputs int
	WeightRange           float32

	Mutator   *Mutator
	Crossover *Crossover

	ResetInnovationPerGeneration bool
	HallOfFameCapacity           int
}

// Population is an ordered set of genomes of fixed target size plus a
// Hall of Fame and the process-wide innovation registry. Workers (the
// match evaluator) receive read-only genome snapshots; only the outer
// loop mutates Population state.
type Population struct {
	Cfg       PopulationConfig
	Tracker   *InnovationTracker
	HoF       *HallOfFame
	Generation int

	candidates []genetic.Candidate[Genome, float64]
	species    []*Species
	threshold  float64
	nextID     uint64
	nextSpecID int

	selector genetic.Selector[Genome, float64]
	rng      *rand.Rand
}

// NewPopulation seeds Size minimal genomes, fully connected input+bias
// to output with small random weights.
func NewPopulation(cfg PopulationConfig, seed uint64) *Population {
	rng := rand.New(rand.NewPCG(seed, seed^0xd1b54a32d192ed03))
	tracker := NewInnovationTracker(0, 0)
	init := InitializerFunc(tracker, cfg.NumInputs, cfg.NumOutputs, cfg.WeightRange)

	p := &Population{
		Cfg:       cfg,
		Tracker:   tracker,
		HoF:       NewHallOfFame(cfg.HallOfFameCapacity),
		threshold: cfg.ThresholdInitial,
		selector: &genetic.TournamentSelector[Genome, float64]{
			TournamentSize:  cfg.TournamentSize,
			WithReplacement: true,
		},
		rng: rng,
	}

	p.candidates = make([]genetic.Candidate[Genome, float64], cfg.Size)
	for i := range p.candidates {
		g := init(rng)
		g.ID = p.nextID
		p.nextID++
		p.candidates[i] = genetic.Candidate[Genome, float64]{Data: g, Metadata: map[string]any{}}
	}
	p.speciate()
	return p
}

// Genomes returns the current generation's genomes for evaluation. The
// returned slice must be treated as read-only by callers; fitness is
// reported back through SetFitness.
func (p *Population) Genomes() []Genome {
	out := make([]Genome, len(p.candidates))
	for i, c := range p.candidates {
		out[i] = c.Data
	}
	return out
}

// SetFitness records the evaluated fitness for genome index i.
func (p *Population) SetFitness(i int, fitness float64) {
	p.candidates[i].Score = fitness
	p.candidates[i].Data.Fitness = fitness
}

// speciate assigns each genome to the first species whose representative
// has δ < threshold, creating a new species otherwise.
func (p *Population) speciate() {
	for _, s := range p.species {
		s.Members = s.Members[:0]
	}

	for _, c := range p.candidates {
		placed := false
		for _, s := range p.species {
			if Distance(c.Data, s.Representative, p.Cfg.Compat) < p.threshold {
				s.Members = append(s.Members, c)
				placed = true
				break
			}
		}
		if !placed {
			p.nextSpecID++
			p.species = append(p.species, &Species{
				ID:             p.nextSpecID,
				Representative: c.Data,
				Members:        []genetic.Candidate[Genome, float64]{c},
			})
		}
	}

	kept := p.species[:0]
	for _, s := range p.species {
		if len(s.Members) > 0 {
			kept = append(kept, s)
		}
	}
	p.species = kept
}

// Advance runs one full generation transition per spec.md §4.6: cull
// stagnant species, allocate offspring proportional to adjusted fitness,
// apply elitism, reproduce by crossover/mutation, update the Hall of
// Fame, optionally reset the innovation memo, then re-speciate the new
// population.
func (p *Population) Advance() {
	if len(p.species) == 0 {
		// Degenerate: re-seed with random genomes (spec.md §4.10).
		p.reseed()
		return
	}

	overallBestID := p.overallBestSpeciesID()
	p.cullStagnant(overallBestID)

	if len(p.species) == 0 {
		p.reseed()
		return
	}

	if best := p.overallBest(); p.HoF != nil {
		p.HoF.Insert(best.Data)
	}

	allocations := p.allocateOffspring()

	var next []genetic.Candidate[Genome, float64]
	for _, s := range p.species {
		n := allocations[s.ID]
		if n == 0 && len(s.Members) > 0 {
			n = 1 // enforce minimum one offspring per surviving species
		}

		sorted := sortedByScoreDesc(s.Members)
		produced := 0
		if len(sorted) >= p.Cfg.ElitismThreshold {
			champion := sorted[0]
			champion.Data = champion.Data.Clone()
			next = append(next, champion)
			produced++
		}

		pool := &genetic.Pool[Genome, float64]{Members: sorted}
		for produced < n {
			child := p.reproduceOne(s, pool)
			next = append(next, child)
			produced++
		}
	}

	// Preserve total population size.
	for len(next) < p.Cfg.Size {
		donor := next[p.rng.IntN(len(next))]
		clone := donor.Data.Clone()
		clone.ID = p.nextID
		p.nextID++
		next = append(next, genetic.Candidate[Genome, float64]{Data: clone, Metadata: map[string]any{}})
	}
	if len(next) > p.Cfg.Size {
		next = next[:p.Cfg.Size]
	}

	p.candidates = next
	p.Generation++
	if p.Cfg.ResetInnovationPerGeneration {
		p.Tracker.Reset()
	}
	p.adjustThreshold()
	p.speciate()
}

func (p *Population) reproduceOne(s *Species, pool *genetic.Pool[Genome, float64]) genetic.Candidate[Genome, float64] {
	var childGenome Genome
	if p.rng.Float64() < p.Cfg.CrossoverRate && len(pool.Members) >= 2 {
		parents := p.selector.Select(pool, 2, p.rng)
		if p.rng.Float64() < p.Cfg.InterspeciesMatingRate && len(p.species) > 1 {
			other := p.species[p.rng.IntN(len(p.species))]
			if len(other.Members) > 0 {
				parents[1] = other.Members[p.rng.IntN(len(other.Members))]
			}
		}
		offspring := p.Cfg.Crossover.Combine(parents, p.rng)
		childGenome = offspring[0]
	} else {
		parents := p.selector.Select(pool, 1, p.rng)
		childGenome = parents[0].Data.Clone()
	}

	p.Cfg.Mutator.Perturb(&childGenome, 1.0, p.rng)
	childGenome.ID = p.nextID
	childGenome.Fitness = 0
	p.nextID++
	return genetic.Candidate[Genome, float64]{Data: childGenome, Metadata: map[string]any{}}
}

func (p *Population) cullStagnant(protectedSpeciesID int) {
	for _, s := range p.species {
		best := s.Best().Score
		if best > s.BestFitness {
			s.BestFitness = best
			s.StagnationGens = 0
		} else {
			s.StagnationGens++
		}
	}

	var kept []*Species
	for _, s := range p.species {
		if s.ID == protectedSpeciesID || s.StagnationGens < p.Cfg.StagnationWindow {
			kept = append(kept, s)
		}
	}
	p.species = kept
}

// Best returns the highest-fitness genome across all species in the
// current generation.
func (p *Population) Best() Genome {
	return p.overallBest().Data
}

func (p *Population) overallBestSpeciesID() int {
	best := p.species[0]
	for _, s := range p.species[1:] {
		if s.Best().Score > best.Best().Score {
			best = s
		}
	}
	return best.ID
}

func (p *Population) overallBest() genetic.Candidate[Genome, float64] {
	best := p.species[0].Best()
	for _, s := range p.species[1:] {
		if b := s.Best(); b.Score > best.Score {
			best = b
		}
	}
	return best
}

// allocateOffspring distributes Cfg.Size offspring proportional to each
// species' adjusted fitness sum, rounding while preserving the total.
func (p *Population) allocateOffspring() map[int]int {
	sums := make(map[int]float64, len(p.species))
	var total float64
	for _, s := range p.species {
		sum := s.AdjustedFitnessSum()
		sums[s.ID] = sum
		total += sum
	}

	alloc := make(map[int]int, len(p.species))
	if total <= 0 {
		// No fitness signal: split evenly.
		share := p.Cfg.Size / len(p.species)
		for _, s := range p.species {
			alloc[s.ID] = share
		}
		return alloc
	}

	assigned := 0
	for _, s := range p.species {
		n := int(float64(p.Cfg.Size) * sums[s.ID] / total)
		alloc[s.ID] = n
		assigned += n
	}
	// Distribute rounding remainder to the largest species.
	remainder := p.Cfg.Size - assigned
	if remainder > 0 && len(p.species) > 0 {
		largest := p.species[0]
		for _, s := range p.species[1:] {
			if len(s.Members) > len(largest.Members) {
				largest = s
			}
		}
		alloc[largest.ID] += remainder
	}
	return alloc
}

func (p *Population) adjustThreshold() {
	count := len(p.species)
	if count < p.Cfg.TargetSpeciesCount {
		p.threshold -= p.Cfg.ThresholdStep
	} else if count > p.Cfg.TargetSpeciesCount {
		p.threshold += p.Cfg.ThresholdStep
	}
	if p.threshold < p.Cfg.ThresholdMin {
		p.threshold = p.Cfg.ThresholdMin
	}
}

func (p *Population) reseed() {
	init := InitializerFunc(p.Tracker, p.Cfg.NumInputs, p.Cfg.NumOutputs, p.Cfg.WeightRange)
	p.candidates = make([]genetic.Candidate[Genome, float64], p.Cfg.Size)
	for i := range p.candidates {
		g := init(p.rng)
		g.ID = p.nextID
		p.nextID++
		p.candidates[i] = genetic.Candidate[Genome, float64]{Data: g, Metadata: map[string]any{}}
	}
	p.species = nil
	p.speciate()
}

func sortedByScoreDesc(in []genetic.Candidate[Genome, float64]) []genetic.Candidate[Genome, float64] {
	out := make([]genetic.Candidate[Genome, float64], len(in))
	copy(out, in)
	for i := 1; i < len(out); i++ {
		j := i
		for j > 0 && out[j-1].Score < out[j].Score {
			out[j-1], out[j] = out[j], out[j-1]
			j--
		}
	}
	return out
}

// Stats summarizes the current generation.
type Stats struct {
	Generation   int
	SpeciesCount int
	BestFitness  float64
	AvgFitness   float64
}

// CurrentStats computes best/avg fitness and species count over the
// current candidate set.
func (p *Population) CurrentStats() Stats {
	var best, sum float64
	for i, c := range p.candidates {
		if i == 0 || c.Score > best {
			best = c.Score
		}
		sum += c.Score
	}
	avg := 0.0
	if len(p.candidates) > 0 {
		avg = sum / float64(len(p.candidates))
	}
	return Stats{
		Generation:   p.Generation,
		SpeciesCount: len(p.species),
		BestFitness:  best,
		AvgFitness:   avg,
	}
}

// Species exposes the current species list, read-only.
func (p *Population) Species() []*Species { return p.species }
