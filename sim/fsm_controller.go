package sim

import (
	"math/rand/v2"

	"github.com/lixenwraith/swarmforge/vmath"
)

// fsmState enumerates the Naive FSM's five states.
type fsmState int

const (
	fsmIdle fsmState = iota
	fsmEngaging
	fsmRetreating
	fsmLooting
	fsmSearching
)

// NaiveFSMController is a deterministic rule-based controller. It is
// stateful across ticks: the FSM re-evaluates transitions every tick but
// keeps its prior state when no predicate fires, so it never silently
// falls through to Idle (a documented failure mode this implementation
// deliberately avoids).
type NaiveFSMController struct {
	state       fsmState
	searchDir   vmath.Vec2
	searchTimer int
}

// NewNaiveFSMController returns a controller starting in Searching with a
// freshly randomized direction.
func NewNaiveFSMController(rng *rand.Rand) *NaiveFSMController {
	c := &NaiveFSMController{state: fsmSearching}
	c.randomizeDirection(rng)
	return c
}

func (c *NaiveFSMController) randomizeDirection(rng *rand.Rand) {
	angle := rng.Float32() * 2 * 3.14159265
	c.searchDir = vmath.Vec2{X: cos32(angle), Y: sin32(angle)}
	c.searchTimer = 0
}

func (c *NaiveFSMController) Decide(p Perception, cfg *Config, shipIdx int, rng *rand.Rand) Action {
	enemyDist, hasEnemy := p.NearestEnemyDistance()
	_, hasWreck := p.NearestWreckDistance()

	// Re-evaluate transitions; retain prior state if nothing fires.
	switch {
	case hasEnemy && enemyDist <= cfg.LaserRangeDefault && p.SelfHealthNorm >= cfg.EngageThreshold:
		c.state = fsmEngaging
	case p.SelfHealthNorm <= cfg.FleeThreshold && hasWreck:
		c.state = fsmLooting
	case p.SelfHealthNorm <= cfg.FleeThreshold && !hasWreck:
		c.state = fsmRetreating
	default:
		if c.state == fsmIdle {
			c.state = fsmSearching
		}
	}

	switch c.state {
	case fsmEngaging:
		return c.actEngaging(p, cfg)
	case fsmRetreating:
		return c.actRetreating(p, cfg)
	case fsmLooting:
		return c.actLooting(p, cfg)
	default:
		return c.actSearching(p, cfg, rng)
	}
}

func (c *NaiveFSMController) actEngaging(p Perception, cfg *Config) Action {
	e := p.Enemies[0]
	dir := vmath.Vec2{X: e.DXNorm, Y: e.DYNorm}.Normalize()

	// Separation from nearby allies.
	sep := vmath.Vec2{}
	for i := 0; i < p.AllyCount; i++ {
		a := p.Allies[i]
		dx, dy := a.DXNorm*p.HalfWidth, a.DYNorm*p.HalfHeight
		dist := vmath.Vec2{X: dx, Y: dy}.Magnitude()
		if dist > 0 && dist <= cfg.SeparationRange {
			push := vmath.Vec2{X: -dx, Y: -dy}.Normalize().Scale((cfg.SeparationRange - dist) / cfg.SeparationRange)
			sep = sep.Add(push)
		}
	}

	enemyDist, _ := p.NearestEnemyDistance()
	if enemyDist <= cfg.LaserRangeDefault {
		return Action{
			Kind: ActionFire,
			Weapon: Weapon{
				Kind:   WeaponLaser,
				Damage: cfg.LaserDamageDefault,
				Range:  cfg.LaserRangeDefault,
			},
		}
	}

	thrust := dir.Add(sep).ClampMagnitude(1)
	return Action{Kind: ActionThrust, Thrust: thrust}
}

func (c *NaiveFSMController) actRetreating(p Perception, cfg *Config) Action {
	if p.EnemyCount == 0 {
		return Action{Kind: ActionIdle}
	}
	e := p.Enemies[0]
	away := vmath.Vec2{X: -e.DXNorm, Y: -e.DYNorm}.Normalize()
	return Action{Kind: ActionThrust, Thrust: away}
}

func (c *NaiveFSMController) actLooting(p Perception, cfg *Config) Action {
	dist, ok := p.NearestWreckDistance()
	if !ok {
		return Action{Kind: ActionIdle}
	}
	if dist <= cfg.LootRange {
		return Action{Kind: ActionLoot}
	}
	w := p.Wrecks[0]
	dir := vmath.Vec2{X: w.DXNorm, Y: w.DYNorm}.Normalize()
	return Action{Kind: ActionThrust, Thrust: dir}
}

func (c *NaiveFSMController) actSearching(p Perception, cfg *Config, rng *rand.Rand) Action {
	c.searchTimer++
	if c.searchTimer >= cfg.SearchTimerMax {
		c.randomizeDirection(rng)
	}
	return Action{Kind: ActionThrust, Thrust: c.searchDir}
}
