package neat

import "github.com/lixenwraith/swarmforge/genetic"

// Species is a compatibility-clustered subset of the population. It
// tracks a representative genome used for next-generation assignment,
// cumulative adjusted fitness, and a stagnation counter.
type Species struct {
	ID             int
	Representative Genome
	Members        []genetic.Candidate[Genome, float64]
	BestFitness    float64
	StagnationGens int
}

// AdjustedFitnessSum returns the sum of raw/len(Members) over all
// members — equalizes reproduction pressure across species of different
// sizes.
func (s *Species) AdjustedFitnessSum() float64 {
	if len(s.Members) == 0 {
		return 0
	}
	var sum float64
	n := float64(len(s.Members))
	for _, m := range s.Members {
		sum += m.Score / n
	}
	return sum
}

// Best returns the highest-scoring member.
func (s *Species) Best() genetic.Candidate[Genome, float64] {
	best := s.Members[0]
	for _, m := range s.Members[1:] {
		if m.Score > best.Score {
			best = m
		}
	}
	return best
}
