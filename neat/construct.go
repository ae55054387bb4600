package neat

import "math/rand/v2"

// NewMinimalGenome builds a genome with numInputs input nodes, one bias
// node, numOutputs output nodes, and no hidden nodes or connections —
// the canonical NEAT starting topology. Node ids are assigned in
// ascending order: inputs, then bias, then outputs.
func NewMinimalGenome(tracker *InnovationTracker, numInputs, numOutputs int) Genome {
	var nodes []NodeGene
	for i := 0; i < numInputs; i++ {
		nodes = append(nodes, NodeGene{ID: tracker.NewNodeID(), Kind: NodeInput})
	}
	biasID := tracker.NewNodeID()
	nodes = append(nodes, NodeGene{ID: biasID, Kind: NodeBias})
	for i := 0; i < numOutputs; i++ {
		nodes = append(nodes, NodeGene{ID: tracker.NewNodeID(), Kind: NodeOutput})
	}
	return Genome{Nodes: nodes}
}

// InitializerFunc returns a genetic.InitializerFunc-compatible function
// that builds a minimal genome fully connected from inputs+bias to
// outputs with small random weights, matching NEAT's standard start.
func InitializerFunc(tracker *InnovationTracker, numInputs, numOutputs int, weightRange float32) func(rng *rand.Rand) Genome {
	return func(rng *rand.Rand) Genome {
		g := NewMinimalGenome(tracker, numInputs, numOutputs)
		var sources []int
		for _, n := range g.Nodes {
			if n.Kind == NodeInput || n.Kind == NodeBias {
				sources = append(sources, n.ID)
			}
		}
		for _, n := range g.Nodes {
			if n.Kind != NodeOutput {
				continue
			}
			for _, src := range sources {
				w := (rng.Float32()*2 - 1) * weightRange
				g.Conns = append(g.Conns, ConnGene{
					Innovation: tracker.ConnInnovation(src, n.ID),
					From:       src,
					To:         n.ID,
					Weight:     w,
					Enabled:    true,
				})
			}
		}
		return g
	}
}
