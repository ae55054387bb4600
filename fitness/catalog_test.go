package fitness

import (
	"testing"

	"github.com/lixenwraith/swarmforge/sim"
)

func TestEvaluatePresetsAreMonotonicOnPositiveMetrics(t *testing.T) {
	stats := sim.MatchStatistics{
		Ticks:                500,
		SubjectTeam:          0,
		Teams:                map[sim.Team]sim.TeamStats{0: {FinalHealthSum: 80, DamageInflicted: 200, Kills: 2}},
		SalvageCollected:     10,
		DistinctCellsVisited: 5,
	}

	prev := Evaluate(stats, 2000, HealthDamage)
	for _, p := range []Preset{HealthDamageKills, HealthDamageKillsTime, HealthDamageKillsTimeSalvage, Full} {
		got := Evaluate(stats, 2000, p)
		if got < prev {
			t.Fatalf("preset %d scored lower (%v) than prior preset (%v)", p, got, prev)
		}
		prev = got
	}
}

func TestTimeBonusZeroWhenSubjectTeamWiped(t *testing.T) {
	stats := sim.MatchStatistics{
		Ticks:       100,
		SubjectTeam: 0,
		Teams:       map[sim.Team]sim.TeamStats{0: {FinalHealthSum: 0}},
	}
	metrics := ToMetrics(stats, 2000)
	if metrics[MetricTimeBonus] != 0 {
		t.Fatalf("expected zero time bonus for a wiped team, got %v", metrics[MetricTimeBonus])
	}
}

func TestTimeBonusPositiveWhenSubjectTeamSurvives(t *testing.T) {
	stats := sim.MatchStatistics{
		Ticks:       100,
		SubjectTeam: 0,
		Teams:       map[sim.Team]sim.TeamStats{0: {FinalHealthSum: 10}},
	}
	metrics := ToMetrics(stats, 2000)
	if metrics[MetricTimeBonus] != 1900 {
		t.Fatalf("expected time bonus 1900, got %v", metrics[MetricTimeBonus])
	}
}
