package neat

import "sync"

// connKey identifies a structural mutation site for innovation reuse:
// two genomes that independently add the same (from,to) edge in the same
// generation receive the same innovation id.
type connKey struct{ from, to int }

// InnovationTracker assigns monotonically increasing innovation ids,
// shared process-wide for a training run so historical markings align
// across genomes. It is owned by the outer (single-threaded) evolutionary
// loop; if mutation is ever parallelized the mutex makes assignment safe,
// though assignment order is then permitted to vary per spec.md §5.
type InnovationTracker struct {
	mu        sync.Mutex
	nextInnov int
	nextNode  int
	seenConn  map[connKey]int
}

// NewInnovationTracker returns a tracker seeded past startNodeID/ids
// already used by an initial population template.
func NewInnovationTracker(startNodeID, startInnovation int) *InnovationTracker {
	return &InnovationTracker{
		nextInnov: startInnovation,
		nextNode:  startNodeID,
		seenConn:  make(map[connKey]int),
	}
}

// ConnInnovation returns the innovation id for edge (from,to), reusing a
// previously assigned id for the same structural site within the current
// generation if one exists.
func (t *InnovationTracker) ConnInnovation(from, to int) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	key := connKey{from, to}
	if id, ok := t.seenConn[key]; ok {
		return id
	}
	id := t.nextInnov
	t.nextInnov++
	t.seenConn[key] = id
	return id
}

// NewNodeID allocates a fresh node id.
func (t *InnovationTracker) NewNodeID() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	id := t.nextNode
	t.nextNode++
	return id
}

// Reset clears the per-generation structural-site cache. Innovation ids
// remain unique across the reset (the counter is not rewound); only the
// "same edge this generation reuses the same id" memo is cleared.
func (t *InnovationTracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.seenConn = make(map[connKey]int)
}
