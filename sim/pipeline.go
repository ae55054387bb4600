package sim

import (
	"github.com/lixenwraith/swarmforge/parameter"
	"github.com/lixenwraith/swarmforge/vmath"
)

// Step advances the world by exactly one tick, running the eight phases
// of the pipeline in order. controllers must be indexed the same as
// w.Ships; a nil entry is treated as producing no command (useful for
// dead slots, though dead ships are skipped regardless).
func (w *World) Step(controllers []Controller) {
	w.Hits = w.Hits[:0]

	commands := w.decide(controllers)
	w.movement(commands)
	w.combat(commands)
	w.projectiles()
	w.deathToWreck()
	w.loot(commands)
	w.regeneration()
	w.Tick++
}

// decide runs the perception/decision phase in ascending ship index
// order and returns the per-ship command table, last-write-wins.
func (w *World) decide(controllers []Controller) []Action {
	commands := make([]Action, len(w.Ships))
	var counts [4]int64
	for i := range w.Ships {
		if !w.Ships[i].IsAlive() {
			continue
		}
		if i >= len(controllers) || controllers[i] == nil {
			continue
		}
		p := BuildPerception(w, i)
		a := controllers[i].Decide(p, &w.Cfg, i, w.rng)
		commands[i] = a
		counts[a.Kind]++
	}
	w.CommandCounts = counts
	return commands
}

func (w *World) movement(commands []Action) {
	cfg := w.Cfg
	for i := range w.Ships {
		if !w.Ships[i].IsAlive() || commands[i].Kind != ActionThrust {
			continue
		}
		accel := commands[i].Thrust.Scale(cfg.ThrustAccelScale)
		disp := accel.Scale(cfg.Friction).ClampMagnitude(cfg.MaxSpeed)
		w.Ships[i].Pos = vmath.Wrap(w.Ships[i].Pos.Add(disp), cfg.Width, cfg.Height, cfg.Mode)
		w.markVisited(i)
	}
}

func (w *World) markVisited(shipIdx int) {
	cell := [2]int32{
		int32(w.Ships[shipIdx].Pos.X / parameter.FitnessExploreGridDivisor),
		int32(w.Ships[shipIdx].Pos.Y / parameter.FitnessExploreGridDivisor),
	}
	if shipIdx < len(w.VisitedCells) {
		w.VisitedCells[shipIdx][cell] = true
	}
}

// combat resolves all Fire(Laser) commands before any Fire(Missile)
// spawns, in ascending ship index order, so damage crediting within a
// tick is deterministic.
func (w *World) combat(commands []Action) {
	cfg := w.Cfg
	for i := range w.Ships {
		if !w.Ships[i].IsAlive() || commands[i].Kind != ActionFire || commands[i].Weapon.Kind != WeaponLaser {
			continue
		}
		wp := commands[i].Weapon
		targetIdx, distSq := nearestEnemyWithinRange(w, i, wp.Range)
		if targetIdx == -1 {
			continue
		}
		_ = distSq
		w.applyDamage(targetIdx, wp.Damage, w.Ships[i].Team)
		w.Hits = append(w.Hits, HitSegment{A: w.Ships[i].Pos, B: w.Ships[targetIdx].Pos})
	}

	for i := range w.Ships {
		if !w.Ships[i].IsAlive() || commands[i].Kind != ActionFire || commands[i].Weapon.Kind != WeaponMissile {
			continue
		}
		wp := commands[i].Weapon
		targetIdx, _ := NearestEnemy(w, i)
		if targetIdx == -1 {
			continue
		}
		dir := vmath.Delta(w.Ships[i].Pos, w.Ships[targetIdx].Pos, cfg.Width, cfg.Height, cfg.Mode).Normalize()
		w.Projectiles = append(w.Projectiles, Projectile{
			Pos:         w.Ships[i].Pos,
			Vel:         dir.Scale(wp.Speed),
			ShooterTeam: w.Ships[i].Team,
			Damage:      wp.Damage,
			TTL:         wp.TTL,
		})
	}
}

// nearestEnemyWithinRange returns the metric-aware closest ship of a
// different team within range, or (-1, 0) if none qualifies.
func nearestEnemyWithinRange(w *World, subjectIdx int, rng float32) (int, float32) {
	cfg := w.Cfg
	subject := w.Ships[subjectIdx]
	rngSq := rng * rng
	best := -1
	var bestSq float32
	for i, s := range w.Ships {
		if i == subjectIdx || !s.IsAlive() || s.Team == subject.Team {
			continue
		}
		dsq := vmath.DistanceSq(subject.Pos, s.Pos, cfg.Width, cfg.Height, cfg.Mode)
		if dsq > rngSq {
			continue
		}
		if best == -1 || dsq < bestSq {
			best, bestSq = i, dsq
		}
	}
	return best, bestSq
}

// applyDamage subtracts from shield first, spillover to health, caps
// health at zero, and credits team damage stats.
func (w *World) applyDamage(targetIdx int, damage float32, shooterTeam Team) {
	t := &w.Ships[targetIdx]
	wasAlive := t.IsAlive()
	remaining := damage
	if t.Shield > 0 {
		absorbed := min32(t.Shield, remaining)
		t.Shield -= absorbed
		remaining -= absorbed
	}
	if remaining > 0 {
		t.Health -= remaining
		if t.Health < 0 {
			t.Health = 0
		}
	}
	t.LastHitTick = w.Tick
	w.DamageDealt[shooterTeam] += damage
	if wasAlive && !t.IsAlive() {
		w.Kills[shooterTeam]++
	}
}

func min32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

// projectiles moves each in-flight missile, detects impact against any
// ship of a different team than its shooter, and expires on ttl.
func (w *World) projectiles() {
	cfg := w.Cfg
	kept := w.Projectiles[:0]
	for _, proj := range w.Projectiles {
		proj.Pos = vmath.Wrap(proj.Pos.Add(proj.Vel), cfg.Width, cfg.Height, cfg.Mode)
		proj.TTL--

		hitIdx := -1
		var hitSq float32
		for i, s := range w.Ships {
			if !s.IsAlive() || s.Team == proj.ShooterTeam {
				continue
			}
			dsq := vmath.DistanceSq(proj.Pos, s.Pos, cfg.Width, cfg.Height, cfg.Mode)
			if dsq <= cfg.MissileHitRadiusSq && (hitIdx == -1 || dsq < hitSq) {
				hitIdx, hitSq = i, dsq
			}
		}

		if hitIdx != -1 {
			w.applyDamage(hitIdx, proj.Damage, proj.ShooterTeam)
			continue
		}
		if proj.TTL <= 0 {
			continue
		}
		kept = append(kept, proj)
	}
	w.Projectiles = kept
}

// deathToWreck marks newly-dead ships and leaves a wreck at their
// position; a ship already at zero health from a prior tick does not
// spawn a second wreck.
func (w *World) deathToWreck() {
	cfg := w.Cfg
	for i := range w.Ships {
		if w.Ships[i].Health > 0 {
			continue
		}
		if w.Ships[i].LastHitTick != w.Tick {
			continue // died on a previous tick, already converted
		}
		w.Wrecks = append(w.Wrecks, Wreck{
			Pos:  w.Ships[i].Pos,
			Pool: cfg.HealthMax * cfg.LootInitRatio,
		})
	}
}

func (w *World) loot(commands []Action) {
	cfg := w.Cfg
	for i := range w.Ships {
		if !w.Ships[i].IsAlive() || commands[i].Kind != ActionLoot {
			continue
		}
		wreckIdx, distSq := NearestWreck(w, i)
		if wreckIdx == -1 || distSq > cfg.LootRange*cfg.LootRange {
			continue
		}
		wr := &w.Wrecks[wreckIdx]
		gain := min32(wr.Pool*cfg.LootFraction+cfg.LootFixed, wr.Pool)
		w.Ships[i].Health = min32(w.Ships[i].Health+gain, cfg.HealthMax)
		wr.Pool -= gain
		if i < len(w.SalvageCollected) {
			w.SalvageCollected[i] += gain
		}
	}

	kept := w.Wrecks[:0]
	for _, wr := range w.Wrecks {
		if wr.Pool > 0 {
			kept = append(kept, wr)
		}
	}
	w.Wrecks = kept
}

func (w *World) regeneration() {
	cfg := w.Cfg
	for i := range w.Ships {
		s := &w.Ships[i]
		if !s.IsAlive() {
			continue
		}
		if w.Tick-s.LastHitTick >= cfg.ShieldRegenDelay {
			s.Shield = min32(s.Shield+cfg.ShieldRegenRate, cfg.ShieldMax)
		}
	}
}

// TerminationReason enumerates why a match stopped.
type TerminationReason int

const (
	NotTerminated TerminationReason = iota
	TerminatedSingleTeamRemaining
	TerminatedMaxTicks
	TerminatedCancelled
)

// CheckTermination evaluates the termination conditions after a
// completed tick. The match runner is responsible for calling this and
// for honoring external cancellation (not observable from World alone).
func (w *World) CheckTermination() TerminationReason {
	if w.Cfg.EarlyExit && len(w.AliveTeams()) <= 1 {
		return TerminatedSingleTeamRemaining
	}
	if w.Tick >= w.Cfg.MaxTicks {
		return TerminatedMaxTicks
	}
	return NotTerminated
}
