package sim

import (
	"testing"

	"github.com/lixenwraith/swarmforge/vmath"
)

func newTestWorld(t *testing.T, cfg Config) *World {
	t.Helper()
	w := &World{Cfg: cfg}
	w.DamageDealt = make(map[Team]float32)
	w.Kills = make(map[Team]int)
	w.SalvageCollected = make([]float32, 0)
	w.VisitedCells = make([]map[[2]int32]bool, 0)
	w.rng = nil
	return w
}

func TestLaserKill(t *testing.T) {
	cfg := DefaultConfig()
	cfg.HealthMax = 10
	cfg.ShieldMax = 0
	w := newTestWorld(t, cfg)
	w.Ships = []Ship{
		{Pos: vmath.Vec2{X: 10, Y: 10}, Team: 0, Health: 10, Shield: 0},
		{Pos: vmath.Vec2{X: 15, Y: 10}, Team: 1, Health: 10, Shield: 0},
	}
	w.SalvageCollected = make([]float32, 2)
	w.VisitedCells = make([]map[[2]int32]bool, 2)
	for i := range w.VisitedCells {
		w.VisitedCells[i] = make(map[[2]int32]bool)
	}

	commands := []Action{
		{Kind: ActionFire, Weapon: Weapon{Kind: WeaponLaser, Damage: 20, Range: 50}},
		{Kind: ActionIdle},
	}
	w.combat(commands)

	if w.Ships[1].Health != 0 {
		t.Fatalf("expected target health 0, got %v", w.Ships[1].Health)
	}
	if len(w.Hits) != 1 {
		t.Fatalf("expected one hit segment, got %d", len(w.Hits))
	}
	if w.DamageDealt[0] != 20 {
		t.Fatalf("expected 20 damage credited to team 0, got %v", w.DamageDealt[0])
	}
}

func TestLaserShieldSpillover(t *testing.T) {
	cfg := DefaultConfig()
	w := newTestWorld(t, cfg)
	w.Ships = []Ship{
		{Pos: vmath.Vec2{X: 0, Y: 0}, Team: 0, Health: 10, Shield: 0},
		{Pos: vmath.Vec2{X: 5, Y: 0}, Team: 1, Health: 10, Shield: 5},
	}
	commands := []Action{
		{Kind: ActionFire, Weapon: Weapon{Kind: WeaponLaser, Damage: 12, Range: 50}},
		{Kind: ActionIdle},
	}
	w.combat(commands)

	if w.Ships[1].Shield != 0 {
		t.Fatalf("expected shield depleted, got %v", w.Ships[1].Shield)
	}
	if w.Ships[1].Health != 3 {
		t.Fatalf("expected 7 spillover damage leaving health 3, got %v", w.Ships[1].Health)
	}
}

func TestToroidalWrapMovement(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width, cfg.Height = 100, 100
	cfg.Mode = vmath.Toroidal
	cfg.Friction = 1
	cfg.ThrustAccelScale = 1
	cfg.MaxSpeed = 100
	w := newTestWorld(t, cfg)
	w.Ships = []Ship{{Pos: vmath.Vec2{X: 0, Y: 0}, Team: 0, Health: 10}}
	w.SalvageCollected = make([]float32, 1)
	w.VisitedCells = []map[[2]int32]bool{{}}

	commands := []Action{{Kind: ActionThrust, Thrust: vmath.Vec2{X: -0.01, Y: -0.01}}}
	w.movement(commands)

	if w.Ships[0].Pos.X < 90 || w.Ships[0].Pos.Y < 90 {
		t.Fatalf("expected wrap near (100,100), got %v", w.Ships[0].Pos)
	}
}

func TestEuclideanClampMovement(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width, cfg.Height = 100, 100
	cfg.Mode = vmath.Euclidean
	cfg.Friction = 1
	cfg.ThrustAccelScale = 1
	cfg.MaxSpeed = 100
	w := newTestWorld(t, cfg)
	w.Ships = []Ship{{Pos: vmath.Vec2{X: 0, Y: 0}, Team: 0, Health: 10}}
	w.SalvageCollected = make([]float32, 1)
	w.VisitedCells = []map[[2]int32]bool{{}}

	commands := []Action{{Kind: ActionThrust, Thrust: vmath.Vec2{X: -0.01, Y: -0.01}}}
	w.movement(commands)

	if w.Ships[0].Pos.X != 0 || w.Ships[0].Pos.Y != 0 {
		t.Fatalf("expected clamp to (0,0), got %v", w.Ships[0].Pos)
	}
}

func TestShieldRegenGate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ShieldRegenDelay = 5
	cfg.ShieldRegenRate = 1
	cfg.ShieldMax = 10
	w := newTestWorld(t, cfg)
	w.Tick = 10
	w.Ships = []Ship{
		{Health: 10, Shield: 5, LastHitTick: 6}, // delta 4 < 5: no regen
		{Health: 10, Shield: 5, LastHitTick: 5}, // delta 5 >= 5: regen
	}
	w.regeneration()

	if w.Ships[0].Shield != 5 {
		t.Fatalf("expected no regen yet, got %v", w.Ships[0].Shield)
	}
	if w.Ships[1].Shield != 6 {
		t.Fatalf("expected regen to 6, got %v", w.Ships[1].Shield)
	}
}

func TestLootDrain(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LootRange = 20
	cfg.LootFraction = 0.5
	cfg.LootFixed = 1
	cfg.HealthMax = 100
	w := newTestWorld(t, cfg)
	w.Ships = []Ship{{Pos: vmath.Vec2{X: 0, Y: 0}, Team: 0, Health: 50}}
	w.Wrecks = []Wreck{{Pos: vmath.Vec2{X: 1, Y: 0}, Pool: 10}}
	w.SalvageCollected = make([]float32, 1)

	commands := []Action{{Kind: ActionLoot}}
	w.loot(commands)

	wantGain := float32(6) // min(10*0.5+1, 10) = 6
	if w.Ships[0].Health != 50+wantGain {
		t.Fatalf("expected health %v, got %v", 50+wantGain, w.Ships[0].Health)
	}
	if w.SalvageCollected[0] != wantGain {
		t.Fatalf("expected salvage %v, got %v", wantGain, w.SalvageCollected[0])
	}
	if len(w.Wrecks) != 1 || w.Wrecks[0].Pool != 4 {
		t.Fatalf("expected wreck pool drained to 4, got %+v", w.Wrecks)
	}
}

func TestLootDepletesWreck(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LootRange = 20
	cfg.LootFraction = 1
	cfg.LootFixed = 0
	cfg.HealthMax = 100
	w := newTestWorld(t, cfg)
	w.Ships = []Ship{{Pos: vmath.Vec2{X: 0, Y: 0}, Team: 0, Health: 50}}
	w.Wrecks = []Wreck{{Pos: vmath.Vec2{X: 1, Y: 0}, Pool: 10}}
	w.SalvageCollected = make([]float32, 1)

	w.loot([]Action{{Kind: ActionLoot}})

	if len(w.Wrecks) != 0 {
		t.Fatalf("expected wreck removed once pool reaches zero, got %+v", w.Wrecks)
	}
}

func TestDeathSpawnsWreckOnce(t *testing.T) {
	cfg := DefaultConfig()
	w := newTestWorld(t, cfg)
	w.Tick = 3
	w.Ships = []Ship{{Pos: vmath.Vec2{X: 5, Y: 5}, Health: 0, LastHitTick: 3}}
	w.deathToWreck()
	if len(w.Wrecks) != 1 {
		t.Fatalf("expected one wreck, got %d", len(w.Wrecks))
	}

	w.Tick = 4
	w.deathToWreck()
	if len(w.Wrecks) != 1 {
		t.Fatalf("expected no second wreck on a later tick, got %d", len(w.Wrecks))
	}
}

func TestCheckTerminationSingleTeamRemaining(t *testing.T) {
	cfg := DefaultConfig()
	cfg.EarlyExit = true
	cfg.MaxTicks = 1000
	w := newTestWorld(t, cfg)
	w.Ships = []Ship{
		{Team: 0, Health: 10},
		{Team: 1, Health: 0},
	}
	if got := w.CheckTermination(); got != TerminatedSingleTeamRemaining {
		t.Fatalf("expected TerminatedSingleTeamRemaining, got %v", got)
	}
}

func TestCheckTerminationMaxTicks(t *testing.T) {
	cfg := DefaultConfig()
	cfg.EarlyExit = false
	cfg.MaxTicks = 5
	w := newTestWorld(t, cfg)
	w.Tick = 5
	w.Ships = []Ship{{Team: 0, Health: 10}, {Team: 1, Health: 10}}
	if got := w.CheckTermination(); got != TerminatedMaxTicks {
		t.Fatalf("expected TerminatedMaxTicks, got %v", got)
	}
}
