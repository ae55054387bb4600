package neat

import "math/rand/v2"

// Mutator implements genetic.Perturbator[Genome]: structural and weight
// mutation operators per spec.md §4.5, each applied with its own
// independent probability. Population calls Perturb on every non-elite
// offspring; no engine-level rate decides whether it runs.
type Mutator struct {
	Tracker *InnovationTracker

	AddNodeRate              float64
	AddConnRate               float64
	AddConnMaxAttempts       int
	WeightPerturbRate        float64
	WeightReplaceRate        float64
	ToggleEnableRate         float64
	WeightPerturbStdDev      float32
	WeightRange              float32
}

// Perturb mutates g in place using the per-operator probabilities above.
// The rate argument is ignored.
func (m *Mutator) Perturb(g *Genome, _ float64, rng *rand.Rand) {
	m.mutateWeights(g, rng)
	if rng.Float64() < m.AddNodeRate {
		m.mutateAddNode(g, rng)
	}
	if rng.Float64() < m.AddConnRate {
		m.mutateAddConnection(g, rng)
	}
}

func (m *Mutator) mutateWeights(g *Genome, rng *rand.Rand) {
	for i := range g.Conns {
		c := &g.Conns[i]
		if rng.Float64() < m.WeightPerturbRate {
			c.Weight += float32(rng.NormFloat64()) * m.WeightPerturbStdDev
		} else if rng.Float64() < m.WeightReplaceRate {
			c.Weight = (rng.Float32()*2 - 1) * m.WeightRange
		}
		if rng.Float64() < m.ToggleEnableRate {
			c.Enabled = !c.Enabled
		}
	}
}

// mutateAddNode splits a random enabled connection u->v into u->h->v,
// disabling the original. Trivially preserves acyclicity since h sits on
// an existing edge.
func (m *Mutator) mutateAddNode(g *Genome, rng *rand.Rand) {
	var candidates []int
	for i, c := range g.Conns {
		if c.Enabled {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		return
	}
	idx := candidates[rng.IntN(len(candidates))]
	c := &g.Conns[idx]
	c.Enabled = false

	h := m.Tracker.NewNodeID()
	g.Nodes = append(g.Nodes, NodeGene{ID: h, Kind: NodeHidden})

	g.Conns = append(g.Conns,
		ConnGene{Innovation: m.Tracker.ConnInnovation(c.From, h), From: c.From, To: h, Weight: 1.0, Enabled: true},
		ConnGene{Innovation: m.Tracker.ConnInnovation(h, c.To), From: h, To: c.To, Weight: c.Weight, Enabled: true},
	)
}

// mutateAddConnection tries up to AddConnMaxAttempts random node pairs
// for one that keeps the graph acyclic and isn't already connected. A
// no-op if none is found.
func (m *Mutator) mutateAddConnection(g *Genome, rng *rand.Rand) {
	n := len(g.Nodes)
	if n < 2 {
		return
	}
	for attempt := 0; attempt < m.AddConnMaxAttempts; attempt++ {
		u := g.Nodes[rng.IntN(n)]
		v := g.Nodes[rng.IntN(n)]
		if u.ID == v.ID {
			continue
		}
		if v.Kind == NodeInput || v.Kind == NodeBias {
			continue
		}
		if g.HasConnection(u.ID, v.ID) {
			continue
		}
		if !keepsAcyclic(*g, u.ID, v.ID) {
			continue
		}
		w := (rng.Float32()*2 - 1) * m.WeightRange
		g.Conns = append(g.Conns, ConnGene{
			Innovation: m.Tracker.ConnInnovation(u.ID, v.ID),
			From:       u.ID, To: v.ID, Weight: w, Enabled: true,
		})
		return
	}
}

// keepsAcyclic reports whether adding edge from->to would keep the
// genome's graph acyclic, i.e. whether to cannot already reach from.
func keepsAcyclic(g Genome, from, to int) bool {
	if from == to {
		return false
	}
	adj := make(map[int][]int, len(g.Nodes))
	for _, c := range g.Conns {
		adj[c.From] = append(adj[c.From], c.To)
	}
	visited := make(map[int]bool)
	var stack []int
	stack = append(stack, to)
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n == from {
			return false
		}
		if visited[n] {
			continue
		}
		visited[n] = true
		stack = append(stack, adj[n]...)
	}
	return true
}
