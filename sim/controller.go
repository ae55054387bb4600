package sim

import "math/rand/v2"

// Controller is a polymorphic decision producer: given a perception, the
// run's immutable config, and the subject's ship index, produce an
// Action. Implementations must be deterministic for a given rng stream.
type Controller interface {
	Decide(p Perception, cfg *Config, shipIdx int, rng *rand.Rand) Action
}

// ControllerFunc adapts a plain function to the Controller interface.
type ControllerFunc func(p Perception, cfg *Config, shipIdx int, rng *rand.Rand) Action

func (f ControllerFunc) Decide(p Perception, cfg *Config, shipIdx int, rng *rand.Rand) Action {
	return f(p, cfg, shipIdx, rng)
}
