package sim

// TeamStats aggregates one team's combat outcome over a completed match.
type TeamStats struct {
	FinalHealthSum  float32
	DamageInflicted float32
	Kills           int
}

// MatchStatistics is the fixed-shape result of one completed match,
// consumed by the fitness catalog and the tournament rating pass.
// SubjectTeam/SubjectShipIdx identify whose perspective fitness is
// scored from; salvage and exploration are tracked per ship since a
// team may field clones of more than one genome.
type MatchStatistics struct {
	Ticks int64
	Teams map[Team]TeamStats

	SubjectTeam    Team
	SubjectShipIdx int

	SalvageCollected     float32
	DistinctCellsVisited int

	TerminationReason TerminationReason
}

// BuildMatchStatistics summarizes a terminated world from subjectShipIdx's
// perspective.
func BuildMatchStatistics(w *World, subjectShipIdx int, reason TerminationReason) MatchStatistics {
	teams := make(map[Team]TeamStats)
	for _, s := range w.Ships {
		t := teams[s.Team]
		t.FinalHealthSum += s.Health
		teams[s.Team] = t
	}
	for team, dmg := range w.DamageDealt {
		t := teams[team]
		t.DamageInflicted = dmg
		teams[team] = t
	}
	for team, k := range w.Kills {
		t := teams[team]
		t.Kills = k
		teams[team] = t
	}

	var salvage float32
	var visited int
	subjectTeam := Team(-1)
	if subjectShipIdx >= 0 && subjectShipIdx < len(w.Ships) {
		subjectTeam = w.Ships[subjectShipIdx].Team
	}
	if subjectShipIdx >= 0 && subjectShipIdx < len(w.SalvageCollected) {
		salvage = w.SalvageCollected[subjectShipIdx]
	}
	if subjectShipIdx >= 0 && subjectShipIdx < len(w.VisitedCells) {
		visited = len(w.VisitedCells[subjectShipIdx])
	}

	return MatchStatistics{
		Ticks:                w.Tick,
		Teams:                teams,
		SubjectTeam:          subjectTeam,
		SubjectShipIdx:       subjectShipIdx,
		SalvageCollected:     salvage,
		DistinctCellsVisited: visited,
		TerminationReason:    reason,
	}
}
