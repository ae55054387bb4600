package sim

import (
	"math/rand/v2"

	"github.com/lixenwraith/swarmforge/vmath"
)

// World is the mutable simulation state for one match. It is created at
// match start, advanced by repeated calls to Step, and discarded at match
// end; it is never shared between concurrent matches.
type World struct {
	Cfg Config

	Tick int64

	Ships       []Ship
	Projectiles []Projectile
	Wrecks      []Wreck
	Hits        []HitSegment

	// CommandCounts tallies how many commands of each ActionKind were
	// issued in the most recently completed decision phase.
	CommandCounts [4]int64

	// DamageDealt and Kills are cumulative per-team combat stats, fed by
	// the combat and projectile phases.
	DamageDealt map[Team]float32
	Kills       map[Team]int

	// SalvageCollected is cumulative healing drained from wrecks, per ship
	// index, consulted by the salvage fitness term.
	SalvageCollected []float32

	// VisitedCells counts distinct coarse grid cells visited per ship
	// index, consulted by the exploration fitness term.
	VisitedCells []map[[2]int32]bool

	rng *rand.Rand
}

// NewWorld constructs a world with cfg.NumTeams*cfg.TeamSize ships placed
// by a deterministic quadrant spawn rule seeded by seed.
func NewWorld(cfg Config, seed uint64) *World {
	w := &World{
		Cfg: cfg,
		rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
	w.spawnShips()
	w.DamageDealt = make(map[Team]float32)
	w.Kills = make(map[Team]int)
	w.SalvageCollected = make([]float32, len(w.Ships))
	w.VisitedCells = make([]map[[2]int32]bool, len(w.Ships))
	for i := range w.VisitedCells {
		w.VisitedCells[i] = make(map[[2]int32]bool)
	}
	return w
}

// spawnShips places NumTeams*TeamSize ships: each team's ships around the
// team center from quadrantCenter, each jittered by up to
// SpawnQuadrantMargin of the world size per axis.
func (w *World) spawnShips() {
	cfg := w.Cfg
	total := cfg.NumTeams * cfg.TeamSize
	w.Ships = make([]Ship, 0, total)

	marginX := cfg.Width * cfg.SpawnQuadrantMargin
	marginY := cfg.Height * cfg.SpawnQuadrantMargin

	for team := 0; team < cfg.NumTeams; team++ {
		cx, cy := quadrantCenter(team, cfg.NumTeams, cfg.Width, cfg.Height)
		for i := 0; i < cfg.TeamSize; i++ {
			jitterX := (w.rng.Float32()*2 - 1) * marginX
			jitterY := (w.rng.Float32()*2 - 1) * marginY
			pos := vmath.Wrap(vmath.Vec2{X: cx + jitterX, Y: cy + jitterY}, cfg.Width, cfg.Height, cfg.Mode)
			w.Ships = append(w.Ships, Ship{
				Pos:         pos,
				Team:        Team(team),
				Health:      cfg.HealthMax,
				Shield:      cfg.ShieldMax,
				LastHitTick: 0,
			})
		}
	}
}

// quadrantCenter spaces team centers evenly on an ellipse around the arena
// center, at 0.35 of the width and height from it.
func quadrantCenter(team, numTeams int, w, h float32) (float32, float32) {
	if numTeams <= 0 {
		return w / 2, h / 2
	}
	angle := 2 * 3.14159265 * float32(team) / float32(numTeams)
	radiusX := w * 0.35
	radiusY := h * 0.35
	return w/2 + radiusX*cos32(angle), h/2 + radiusY*sin32(angle)
}

// RNG returns the world's private deterministic random source. No worker
// shares this instance; it is per-match.
func (w *World) RNG() *rand.Rand { return w.rng }

// AliveTeams returns the distinct teams with at least one living ship.
func (w *World) AliveTeams() map[Team]bool {
	teams := make(map[Team]bool)
	for _, s := range w.Ships {
		if s.IsAlive() {
			teams[s.Team] = true
		}
	}
	return teams
}
