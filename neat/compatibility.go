package neat

// CompatibilityParams bundles the c1,c2,c3 coefficients and the
// small-genome normalization threshold from spec.md §4.5.
type CompatibilityParams struct {
	ExcessCoeff      float64
	DisjointCoeff    float64
	WeightCoeff      float64
	SmallGenomeBelow int
}

// Distance computes δ = c1·E/N + c2·D/N + c3·W̄ between a and b.
func Distance(a, b Genome, p CompatibilityParams) float64 {
	ma := make(map[int]ConnGene, len(a.Conns))
	maxInnovA := 0
	for _, c := range a.Conns {
		ma[c.Innovation] = c
		if c.Innovation > maxInnovA {
			maxInnovA = c.Innovation
		}
	}
	mb := make(map[int]ConnGene, len(b.Conns))
	maxInnovB := 0
	for _, c := range b.Conns {
		mb[c.Innovation] = c
		if c.Innovation > maxInnovB {
			maxInnovB = c.Innovation
		}
	}

	var excess, disjoint float64
	var weightDiffSum float64
	var matching int

	lowMax := maxInnovA
	if maxInnovB < lowMax {
		lowMax = maxInnovB
	}

	seen := make(map[int]bool, len(ma)+len(mb))
	for innov, ca := range ma {
		seen[innov] = true
		cb, ok := mb[innov]
		if ok {
			matching++
			diff := ca.Weight - cb.Weight
			if diff < 0 {
				diff = -diff
			}
			weightDiffSum += float64(diff)
			continue
		}
		if innov > lowMax {
			excess++
		} else {
			disjoint++
		}
	}
	for innov := range mb {
		if seen[innov] {
			continue
		}
		if innov > lowMax {
			excess++
		} else {
			disjoint++
		}
	}

	n := len(a.Conns)
	if len(b.Conns) > n {
		n = len(b.Conns)
	}
	normN := float64(n)
	if n < p.SmallGenomeBelow || n == 0 {
		normN = 1
	}

	var meanWeightDiff float64
	if matching > 0 {
		meanWeightDiff = weightDiffSum / float64(matching)
	}

	return p.ExcessCoeff*excess/normN + p.DisjointCoeff*disjoint/normN + p.WeightCoeff*meanWeightDiff
}
