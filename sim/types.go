// Package sim implements the deterministic, fixed-timestep battle
// simulator: world state, the per-tick phase pipeline, the perception
// encoder, and the controller capability consumed by the phase pipeline.
package sim

import "github.com/lixenwraith/swarmforge/vmath"

// Team is a small nonnegative integer identifying a ship's side.
type Team int

// Ship is one combatant. A ship with Health <= 0 is dead and is skipped
// by every phase except death/wreck-spawn cleanup.
type Ship struct {
	Pos         vmath.Vec2
	Team        Team
	Health      float32
	Shield      float32
	LastHitTick int64
}

// IsAlive reports whether the ship still participates in the simulation.
func (s Ship) IsAlive() bool { return s.Health > 0 }

// Projectile is a missile in flight.
type Projectile struct {
	Pos         vmath.Vec2
	Vel         vmath.Vec2
	ShooterTeam Team
	Damage      float32
	TTL         int
}

// Wreck is a depletable healing pool left by a dead ship.
type Wreck struct {
	Pos  vmath.Vec2
	Pool float32
}

// HitSegment records a resolved laser shot for observation/replay. The
// hit log is cleared at the start of every tick.
type HitSegment struct {
	A, B vmath.Vec2
}

// WeaponKind distinguishes the two weapon variants.
type WeaponKind int

const (
	WeaponNone WeaponKind = iota
	WeaponLaser
	WeaponMissile
)

// Weapon is a tagged union: Laser fields are valid when Kind ==
// WeaponLaser, Missile fields when Kind == WeaponMissile.
type Weapon struct {
	Kind   WeaponKind
	Damage float32
	Range  float32 // Laser
	Speed  float32 // Missile
	TTL    int     // Missile
}

// ActionKind distinguishes the four action variants a controller may
// produce in a single tick.
type ActionKind int

const (
	ActionIdle ActionKind = iota
	ActionThrust
	ActionFire
	ActionLoot
)

// Action is the tagged union produced by a controller each tick.
type Action struct {
	Kind   ActionKind
	Thrust vmath.Vec2 // ActionThrust: acceleration, magnitude clamped downstream
	Weapon Weapon      // ActionFire
}
