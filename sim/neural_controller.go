package sim

import (
	"math/rand/v2"

	"github.com/lixenwraith/swarmforge/neat"
	"github.com/lixenwraith/swarmforge/vmath"
)

// Neural output layout (fixed arity, decoded per spec.md §4.4):
//   [0] thrust x in [-1,1]
//   [1] thrust y in [-1,1]
//   [2..5] mode logits: argmax selects {Thrust-only, Fire, Loot, Idle}
const (
	neuralOutputThrustX = 0
	neuralOutputThrustY = 1
	neuralModeThrustOnly = 2
	neuralModeFire       = 3
	neuralModeLoot       = 4
	neuralModeIdle       = 5
	NeuralOutputCount    = 6
)

// NeuralController evaluates a compiled Network against the perception
// vector each tick and decodes its output into an Action.
type NeuralController struct {
	Net          *neat.Network
	LaserDamage  float32
	LaserRange   float32
	MissileDamage float32
	MissileSpeed  float32
	MissileTTL    int
}

// NewNeuralController compiles g and wraps it for repeated decision use
// within one match (compiling once per match, not per tick).
func NewNeuralController(g neat.Genome, activation neat.Activation, cfg *Config) (*NeuralController, error) {
	net, err := neat.BuildNetwork(g, activation)
	if err != nil {
		return nil, err
	}
	return &NeuralController{
		Net:           net,
		LaserDamage:   cfg.LaserDamageDefault,
		LaserRange:    cfg.LaserRangeDefault,
		MissileDamage: cfg.MissileDamageDefault,
		MissileSpeed:  cfg.MissileSpeedDefault,
		MissileTTL:    cfg.MissileTTLDefault,
	}, nil
}

func (c *NeuralController) Decide(p Perception, cfg *Config, shipIdx int, rng *rand.Rand) Action {
	out := c.Net.Eval(p.ToVector())
	if len(out) < NeuralOutputCount {
		return Action{Kind: ActionIdle}
	}

	mode := argmax(out[neuralModeThrustOnly:neuralModeIdle+1])
	thrust := vmath.Vec2{X: clampSigned(out[neuralOutputThrustX]), Y: clampSigned(out[neuralOutputThrustY])}

	switch mode {
	case 0: // Thrust-only
		return Action{Kind: ActionThrust, Thrust: thrust}
	case 1: // Fire
		dist, hasEnemy := p.NearestEnemyDistance()
		if !hasEnemy || dist > cfg.LaserRangeDefault {
			// Range gate: suppress the wasted shot, convert to
			// Thrust-toward-target.
			if hasEnemy {
				e := p.Enemies[0]
				dir := vmath.Vec2{X: e.DXNorm, Y: e.DYNorm}.Normalize()
				return Action{Kind: ActionThrust, Thrust: dir}
			}
			return Action{Kind: ActionThrust, Thrust: thrust}
		}
		return Action{Kind: ActionFire, Weapon: Weapon{Kind: WeaponLaser, Damage: c.LaserDamage, Range: c.LaserRange}}
	case 2: // Loot
		return Action{Kind: ActionLoot}
	default: // Idle
		return Action{Kind: ActionIdle}
	}
}

func argmax(v []float32) int {
	best := 0
	for i := 1; i < len(v); i++ {
		if v[i] > v[best] {
			best = i
		}
	}
	return best
}

func clampSigned(v float32) float32 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}
