package sim

import (
	"sort"

	"github.com/lixenwraith/swarmforge/vmath"
)

// EntityPerception is one nearest-K slot: a normalized position delta
// plus the observed entity's normalized vitals.
type EntityPerception struct {
	DXNorm, DYNorm float32
	HPNorm         float32
	ShieldNorm     float32
	PoolNorm       float32 // wrecks only
}

// Perception is the fixed-length encoding of world state as seen by one
// subject ship. Building it is pure with respect to world state and must
// only be called during the decision phase.
type Perception struct {
	SelfHealthNorm float32
	SelfShieldNorm float32
	Enemies        []EntityPerception
	Allies         []EntityPerception
	Wrecks         []EntityPerception

	// *Count records how many of the corresponding slots are real
	// entities rather than zero-padding; not part of ToVector's output,
	// consulted by controllers that need to distinguish "no enemy" from
	// "an enemy at exactly this normalized position".
	EnemyCount int
	AllyCount  int
	WreckCount int

	// HalfWidth/HalfHeight let a controller reconstruct an actual
	// metric-aware distance from a normalized delta.
	HalfWidth, HalfHeight float32
}

// NearestEnemyDistance reconstructs the actual metric-aware distance to
// the nearest encoded enemy, or (0, false) if no enemy was in range.
func (p Perception) NearestEnemyDistance() (float32, bool) {
	if p.EnemyCount == 0 {
		return 0, false
	}
	e := p.Enemies[0]
	dx := e.DXNorm * p.HalfWidth
	dy := e.DYNorm * p.HalfHeight
	return vmath.Vec2{X: dx, Y: dy}.Magnitude(), true
}

// NearestWreckDistance reconstructs the actual distance to the nearest
// encoded wreck, or (0, false) if no wreck was in range.
func (p Perception) NearestWreckDistance() (float32, bool) {
	if p.WreckCount == 0 {
		return 0, false
	}
	w := p.Wrecks[0]
	dx := w.DXNorm * p.HalfWidth
	dy := w.DYNorm * p.HalfHeight
	return vmath.Vec2{X: dx, Y: dy}.Magnitude(), true
}

// Len returns 2 + 4*K_e + 4*K_a + 3*K_w, matching Config.PerceptionLength.
func (p Perception) Len() int {
	return 2 + 4*len(p.Enemies) + 4*len(p.Allies) + 3*len(p.Wrecks)
}

// ToVector flattens the perception into the fixed-length neural input
// layout: [self_health, self_shield, enemies..., allies..., wrecks...].
func (p Perception) ToVector() []float32 {
	out := make([]float32, 0, p.Len())
	out = append(out, p.SelfHealthNorm, p.SelfShieldNorm)
	for _, e := range p.Enemies {
		out = append(out, e.DXNorm, e.DYNorm, e.HPNorm, e.ShieldNorm)
	}
	for _, a := range p.Allies {
		out = append(out, a.DXNorm, a.DYNorm, a.HPNorm, a.ShieldNorm)
	}
	for _, wr := range p.Wrecks {
		out = append(out, wr.DXNorm, wr.DYNorm, wr.PoolNorm)
	}
	return out
}

type candidate struct {
	idx  int
	dsq  float32
	pos  vmath.Vec2
	hp   float32
	shld float32
	pool float32
}

// nearestK selects the k candidates with smallest dsq, ties broken by
// lower index, without mutating the input slice's order guarantees
// beyond what sort.Slice needs.
func nearestK(cands []candidate, k int) []candidate {
	sort.Slice(cands, func(i, j int) bool {
		if cands[i].dsq != cands[j].dsq {
			return cands[i].dsq < cands[j].dsq
		}
		return cands[i].idx < cands[j].idx
	})
	if len(cands) > k {
		cands = cands[:k]
	}
	return cands
}

// BuildPerception constructs the fixed-length perception vector for the
// ship at subjectIdx. Dead ships and the subject itself are excluded from
// the enemy/ally pools.
func BuildPerception(w *World, subjectIdx int) Perception {
	cfg := w.Cfg
	subject := w.Ships[subjectIdx]
	halfW, halfH := cfg.Width/2, cfg.Height/2

	var enemyCands, allyCands []candidate
	for i, s := range w.Ships {
		if i == subjectIdx || !s.IsAlive() {
			continue
		}
		d := vmath.Delta(subject.Pos, s.Pos, cfg.Width, cfg.Height, cfg.Mode)
		c := candidate{idx: i, dsq: d.MagnitudeSq(), pos: d, hp: s.Health, shld: s.Shield}
		if s.Team == subject.Team {
			allyCands = append(allyCands, c)
		} else {
			enemyCands = append(enemyCands, c)
		}
	}

	var wreckCands []candidate
	for i, wr := range w.Wrecks {
		d := vmath.Delta(subject.Pos, wr.Pos, cfg.Width, cfg.Height, cfg.Mode)
		wreckCands = append(wreckCands, candidate{idx: i, dsq: d.MagnitudeSq(), pos: d, pool: wr.Pool})
	}

	enemies := nearestK(enemyCands, cfg.PerceptionK_Enemies)
	allies := nearestK(allyCands, cfg.PerceptionK_Allies)
	wrecks := nearestK(wreckCands, cfg.PerceptionK_Wrecks)

	p := Perception{
		SelfHealthNorm: clamp01(subject.Health / cfg.HealthMax),
		SelfShieldNorm: clamp01(subject.Shield / cfg.ShieldMax),
		Enemies:        make([]EntityPerception, cfg.PerceptionK_Enemies),
		Allies:         make([]EntityPerception, cfg.PerceptionK_Allies),
		Wrecks:         make([]EntityPerception, cfg.PerceptionK_Wrecks),
		EnemyCount:     len(enemies),
		AllyCount:      len(allies),
		WreckCount:     len(wrecks),
		HalfWidth:      halfW,
		HalfHeight:     halfH,
	}
	for i, c := range enemies {
		p.Enemies[i] = EntityPerception{
			DXNorm: c.pos.X / halfW, DYNorm: c.pos.Y / halfH,
			HPNorm: clamp01(c.hp / cfg.HealthMax), ShieldNorm: clamp01(c.shld / cfg.ShieldMax),
		}
	}
	for i, c := range allies {
		p.Allies[i] = EntityPerception{
			DXNorm: c.pos.X / halfW, DYNorm: c.pos.Y / halfH,
			HPNorm: clamp01(c.hp / cfg.HealthMax), ShieldNorm: clamp01(c.shld / cfg.ShieldMax),
		}
	}
	for i, c := range wrecks {
		p.Wrecks[i] = EntityPerception{
			DXNorm: c.pos.X / halfW, DYNorm: c.pos.Y / halfH,
			PoolNorm: clamp01(c.pool / cfg.HealthMax),
		}
	}
	return p
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// NearestEnemy returns the index and metric-aware squared distance of the
// closest living enemy to subjectIdx, or (-1, 0) if none exists.
func NearestEnemy(w *World, subjectIdx int) (int, float32) {
	cfg := w.Cfg
	subject := w.Ships[subjectIdx]
	best := -1
	var bestSq float32
	for i, s := range w.Ships {
		if i == subjectIdx || !s.IsAlive() || s.Team == subject.Team {
			continue
		}
		dsq := vmath.DistanceSq(subject.Pos, s.Pos, cfg.Width, cfg.Height, cfg.Mode)
		if best == -1 || dsq < bestSq {
			best, bestSq = i, dsq
		}
	}
	return best, bestSq
}

// NearestWreck returns the index and metric-aware squared distance of the
// closest wreck to subjectIdx, or (-1, 0) if none exists.
func NearestWreck(w *World, subjectIdx int) (int, float32) {
	cfg := w.Cfg
	subject := w.Ships[subjectIdx]
	best := -1
	var bestSq float32
	for i, wr := range w.Wrecks {
		dsq := vmath.DistanceSq(subject.Pos, wr.Pos, cfg.Width, cfg.Height, cfg.Mode)
		if best == -1 || dsq < bestSq {
			best, bestSq = i, dsq
		}
	}
	return best, bestSq
}
