package neat

import (
	"math/rand/v2"
	"sort"

	"github.com/lixenwraith/swarmforge/genetic"
)

// Crossover implements genetic.Combiner[Genome, float64]: biparental
// recombination aligned by innovation id per spec.md §4.5.
type Crossover struct {
	// DisabledInheritRate is the chance a gene disabled in either parent
	// stays disabled in the child.
	DisabledInheritRate float64
}

// Combine produces a single offspring from the two fittest supplied
// parents (tournament selection upstream already narrowed to 2).
func (x *Crossover) Combine(parents []genetic.Candidate[Genome, float64], rng *rand.Rand) []Genome {
	if len(parents) == 0 {
		return nil
	}
	if len(parents) == 1 {
		return []Genome{parents[0].Data.Clone()}
	}

	p1, p2 := parents[0], parents[1]
	fitter, other := p1, p2
	equal := p1.Score == p2.Score
	if p2.Score > p1.Score {
		fitter, other = p2, p1
	}

	connByInnov := func(g Genome) map[int]ConnGene {
		m := make(map[int]ConnGene, len(g.Conns))
		for _, c := range g.Conns {
			m[c.Innovation] = c
		}
		return m
	}
	m1 := connByInnov(fitter.Data)
	m2 := connByInnov(other.Data)

	seen := make(map[int]bool)
	var childConns []ConnGene
	for innov, c1 := range m1 {
		if seen[innov] {
			continue
		}
		seen[innov] = true
		if c2, ok := m2[innov]; ok {
			// Matching gene: inherit randomly from either parent.
			chosen := c1
			if rng.Float64() < 0.5 {
				chosen = c2
			}
			if (!c1.Enabled || !c2.Enabled) && rng.Float64() < x.DisabledInheritRate {
				chosen.Enabled = false
			}
			childConns = append(childConns, chosen)
		} else {
			// Disjoint/excess gene: inherit from the fitter parent
			// (or randomly if equal fitness).
			if equal && rng.Float64() < 0.5 {
				continue
			}
			childConns = append(childConns, c1)
		}
	}
	if equal {
		// Equal fitness: genes present only in the other parent are
		// inherited at random as well.
		for _, c2 := range other.Data.Conns {
			if _, ok := m1[c2.Innovation]; !ok && rng.Float64() < 0.5 {
				childConns = append(childConns, c2)
			}
		}
	}

	nodeSet := make(map[int]NodeGene)
	for _, n := range fitter.Data.Nodes {
		nodeSet[n.ID] = n
	}
	for _, c := range childConns {
		if _, ok := nodeSet[c.From]; !ok {
			if n, ok2 := findNode(other.Data, c.From); ok2 {
				nodeSet[c.From] = n
			}
		}
		if _, ok := nodeSet[c.To]; !ok {
			if n, ok2 := findNode(other.Data, c.To); ok2 {
				nodeSet[c.To] = n
			}
		}
	}

	nodes := make([]NodeGene, 0, len(nodeSet))
	for _, n := range nodeSet {
		nodes = append(nodes, n)
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID < nodes[j].ID })

	sort.Slice(childConns, func(i, j int) bool { return childConns[i].Innovation < childConns[j].Innovation })

	child := Genome{Nodes: nodes, Conns: childConns}
	if !child.IsAcyclic() {
		// Crossover of two acyclic parents can occasionally recombine
		// into a cyclic child when edges inherited from the two parents
		// together close a loop; fall back to
		// the fitter parent's topology rather than emit an invalid genome.
		return []Genome{fitter.Data.Clone()}
	}
	return []Genome{child}
}

func findNode(g Genome, id int) (NodeGene, bool) {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return NodeGene{}, false
}
