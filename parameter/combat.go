package parameter

// World
const (
	// WorldWidthDefault is the default arena width (world units)
	WorldWidthDefault = 1000.0

	// WorldHeightDefault is the default arena height (world units)
	WorldHeightDefault = 1000.0

	// MaxTicksDefault is the default per-match hard cap
	MaxTicksDefault = 2000
)

// Ship
const (
	// ShipHealthMax is the maximum (and initial) hit points of a ship
	ShipHealthMax = 100.0

	// ShipShieldMax is the maximum (and initial) shield of a ship
	ShipShieldMax = 50.0

	// ShipFriction scales the current tick's thrust command before the
	// max-speed clamp; no velocity persists across ticks
	ShipFriction = 0.92

	// ShipMaxSpeed caps the post-friction, post-thrust displacement per tick
	ShipMaxSpeed = 6.0

	// ShipThrustAccelScale maps a controller's [-1,1] thrust component to
	// world-unit acceleration
	ShipThrustAccelScale = 1.5
)

// Shield regeneration
const (
	// ShieldRegenDelay is ticks since last_hit_tick before regen resumes
	ShieldRegenDelay = 30

	// ShieldRegenRate is shield gained per qualifying tick
	ShieldRegenRate = 1.0
)

// Weapons
const (
	// LaserDamageDefault is default laser damage per hit
	LaserDamageDefault = 20.0

	// LaserRangeDefault is default laser hitscan range
	LaserRangeDefault = 50.0

	// MissileDamageDefault is default missile impact damage
	MissileDamageDefault = 25.0

	// MissileSpeedDefault is default missile travel speed (world units/tick)
	MissileSpeedDefault = 8.0

	// MissileTTLDefault is default missile lifetime in ticks
	MissileTTLDefault = 60

	// MissileHitRadius is the collision radius for projectile-vs-ship
	// impact detection (squared into sim.Config.MissileHitRadiusSq)
	MissileHitRadius = 1.5
)

// Loot
const (
	// LootInitRatio sets a wreck's starting pool as a fraction of the
	// dead ship's health_max
	LootInitRatio = 0.5

	// LootRange is the distance within which a Loot action can drain a wreck
	LootRange = 10.0

	// LootFraction is the proportional share of the remaining pool drained per tick
	LootFraction = 0.2

	// LootFixed is the flat bonus added to the proportional drain
	LootFixed = 2.0
)

// Naive FSM controller thresholds
const (
	// FSMEngageThreshold is the minimum health fraction required to engage
	FSMEngageThreshold = 0.35

	// FSMFleeThreshold is the health fraction at or below which the FSM
	// prefers retreat/loot over engagement
	FSMFleeThreshold = 0.25

	// FSMSeparationRange is the distance below which allies trigger separation steering
	FSMSeparationRange = 6.0

	// FSMSearchTimerMax bounds ticks before a Searching ship re-randomizes direction
	FSMSearchTimerMax = 90
)

// Perception encoder
const (
	// PerceptionNearestEnemies is K_e, the number of nearest enemies encoded
	PerceptionNearestEnemies = 3

	// PerceptionNearestAllies is K_a, the number of nearest allies encoded
	PerceptionNearestAllies = 2

	// PerceptionNearestWrecks is K_w, the number of nearest wrecks encoded
	PerceptionNearestWrecks = 2
)

// Match composition
const (
	// TeamSizeDefault is ships per team
	TeamSizeDefault = 3

	// NumTeamsDefault is teams per match
	NumTeamsDefault = 2

	// SpawnQuadrantMargin keeps spawn points away from arena edges (fraction of W/H)
	SpawnQuadrantMargin = 0.15
)
