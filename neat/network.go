package neat

import (
	"fmt"
	"math"
)

// Activation is a bounded smooth nonlinearity applied to hidden and
// output node sums. The choice is fixed per run.
type Activation func(float32) float32

// Sigmoid is the logistic activation.
func Sigmoid(x float32) float32 {
	return float32(1.0 / (1.0 + math.Exp(-float64(x))))
}

// Tanh is the hyperbolic tangent activation.
func Tanh(x float32) float32 {
	return float32(math.Tanh(float64(x)))
}

type edge struct {
	from   int
	weight float32
}

// Network is a compiled, directly evaluable feed-forward view of a
// Genome: a topological node order plus incoming-edge lists.
type Network struct {
	order      []int
	kind       map[int]NodeKind
	incoming   map[int][]edge
	inputIDs   []int
	outputIDs  []int
	activation Activation
}

// BuildNetwork compiles g into a Network via topological traversal of
// its enabled connections. g must satisfy Genome.Validate.
func BuildNetwork(g Genome, activation Activation) (*Network, error) {
	kind := make(map[int]NodeKind, len(g.Nodes))
	for _, n := range g.Nodes {
		kind[n.ID] = n.Kind
	}

	incoming := make(map[int][]edge)
	outDeg := make(map[int]int)
	for _, c := range g.Conns {
		if !c.Enabled {
			continue
		}
		incoming[c.To] = append(incoming[c.To], edge{from: c.From, weight: c.Weight})
		outDeg[c.From]++
	}

	order, err := topoSort(g, incoming)
	if err != nil {
		return nil, err
	}

	return &Network{
		order:      order,
		kind:       kind,
		incoming:   incoming,
		inputIDs:   g.InputIDs(),
		outputIDs:  g.OutputIDs(),
		activation: activation,
	}, nil
}

// topoSort computes a Kahn's-algorithm order over the enabled subgraph.
// Nodes with no incoming edges (inputs, bias, unreached hidden) come
// first in ascending id order for determinism.
func topoSort(g Genome, incoming map[int][]edge) ([]int, error) {
	inDeg := make(map[int]int, len(g.Nodes))
	for _, n := range g.Nodes {
		inDeg[n.ID] = len(incoming[n.ID])
	}

	var ready []int
	for _, n := range g.Nodes {
		if inDeg[n.ID] == 0 {
			ready = append(ready, n.ID)
		}
	}

	outEdges := make(map[int][]int)
	for to, edges := range incoming {
		for _, e := range edges {
			outEdges[e.from] = append(outEdges[e.from], to)
		}
	}

	var order []int
	visited := make(map[int]bool, len(g.Nodes))
	for len(ready) > 0 {
		// Ascending id for deterministic ordering among ties.
		minIdx := 0
		for i := 1; i < len(ready); i++ {
			if ready[i] < ready[minIdx] {
				minIdx = i
			}
		}
		n := ready[minIdx]
		ready = append(ready[:minIdx], ready[minIdx+1:]...)
		if visited[n] {
			continue
		}
		visited[n] = true
		order = append(order, n)

		for _, next := range outEdges[n] {
			inDeg[next]--
			if inDeg[next] == 0 {
				ready = append(ready, next)
			}
		}
	}

	if len(order) != len(g.Nodes) {
		return nil, fmt.Errorf("neat: topological sort failed, graph has a cycle among enabled connections")
	}
	return order, nil
}

// Eval feeds inputs (in InputIDs order) through the network and returns
// activations for the output nodes (in OutputIDs order). Missing inputs
// default to 0; bias nodes always output 1.0.
func (n *Network) Eval(inputs []float32) []float32 {
	values := make(map[int]float32, len(n.order))

	for i, id := range n.inputIDs {
		if i < len(inputs) {
			values[id] = inputs[i]
		} else {
			values[id] = 0
		}
	}

	for _, id := range n.order {
		switch n.kind[id] {
		case NodeInput:
			// already set above
			continue
		case NodeBias:
			values[id] = 1.0
			continue
		}

		var sum float32
		for _, e := range n.incoming[id] {
			sum += values[e.from] * e.weight
		}
		values[id] = n.activation(sum)
	}

	out := make([]float32, len(n.outputIDs))
	for i, id := range n.outputIDs {
		out[i] = values[id]
	}
	return out
}
