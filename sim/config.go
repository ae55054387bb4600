package sim

import "github.com/lixenwraith/swarmforge/parameter"
import "github.com/lixenwraith/swarmforge/vmath"

// Config is an immutable bundle of simulation parameters shared by the
// phase pipeline, the perception encoder, and the Naive FSM controller.
// A Config is constructed once per run and never mutated afterward.
type Config struct {
	Width, Height float32
	Mode          vmath.DistanceMode

	Friction         float32
	MaxSpeed         float32
	ThrustAccelScale float32

	HealthMax float32
	ShieldMax float32

	ShieldRegenDelay int64
	ShieldRegenRate  float32

	LootInitRatio float32
	LootRange     float32
	LootFraction  float32
	LootFixed     float32

	MissileHitRadiusSq float32

	PerceptionK_Enemies int
	PerceptionK_Allies  int
	PerceptionK_Wrecks  int

	EngageThreshold float32 // fraction of HealthMax
	FleeThreshold   float32 // fraction of HealthMax
	SeparationRange float32
	SearchTimerMax  int

	MaxTicks  int64
	EarlyExit bool

	TeamSize            int
	NumTeams            int
	SpawnQuadrantMargin float32

	LaserDamageDefault   float32
	LaserRangeDefault    float32
	MissileDamageDefault float32
	MissileSpeedDefault  float32
	MissileTTLDefault    int
}

// DefaultConfig returns the parameter-package defaults.
func DefaultConfig() Config {
	return Config{
		Width:            parameter.WorldWidthDefault,
		Height:           parameter.WorldHeightDefault,
		Mode:             vmath.Toroidal,
		Friction:         parameter.ShipFriction,
		MaxSpeed:         parameter.ShipMaxSpeed,
		ThrustAccelScale: parameter.ShipThrustAccelScale,

		HealthMax: parameter.ShipHealthMax,
		ShieldMax: parameter.ShipShieldMax,

		ShieldRegenDelay: parameter.ShieldRegenDelay,
		ShieldRegenRate:  parameter.ShieldRegenRate,

		LootInitRatio: parameter.LootInitRatio,
		LootRange:     parameter.LootRange,
		LootFraction:  parameter.LootFraction,
		LootFixed:     parameter.LootFixed,

		MissileHitRadiusSq: parameter.MissileHitRadius * parameter.MissileHitRadius,

		PerceptionK_Enemies: parameter.PerceptionNearestEnemies,
		PerceptionK_Allies:  parameter.PerceptionNearestAllies,
		PerceptionK_Wrecks:  parameter.PerceptionNearestWrecks,

		EngageThreshold: parameter.FSMEngageThreshold,
		FleeThreshold:   parameter.FSMFleeThreshold,
		SeparationRange: parameter.FSMSeparationRange,
		SearchTimerMax:  parameter.FSMSearchTimerMax,

		MaxTicks:  parameter.MaxTicksDefault,
		EarlyExit: true,

		TeamSize:            parameter.TeamSizeDefault,
		NumTeams:             parameter.NumTeamsDefault,
		SpawnQuadrantMargin: parameter.SpawnQuadrantMargin,

		LaserDamageDefault:   parameter.LaserDamageDefault,
		LaserRangeDefault:    parameter.LaserRangeDefault,
		MissileDamageDefault: parameter.MissileDamageDefault,
		MissileSpeedDefault:  parameter.MissileSpeedDefault,
		MissileTTLDefault:    parameter.MissileTTLDefault,
	}
}

// PerceptionLength returns 2 + 4*K_e + 4*K_a + 3*K_w.
func (c Config) PerceptionLength() int {
	return 2 + 4*c.PerceptionK_Enemies + 4*c.PerceptionK_Allies + 3*c.PerceptionK_Wrecks
}
