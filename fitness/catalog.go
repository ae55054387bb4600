// Package fitness converts a completed match's statistics into a single
// scalar score, using the weighted-metric aggregator from the genetic
// package over a named catalog of combat metrics.
package fitness

import (
	"github.com/lixenwraith/swarmforge/genetic/fitness"
	"github.com/lixenwraith/swarmforge/genetic/tracking"
	"github.com/lixenwraith/swarmforge/parameter"
	"github.com/lixenwraith/swarmforge/sim"
)

// Metric keys feeding the catalog, shared between ToMetrics and the
// aggregator's Weights map.
const (
	MetricSubjectHealth = "subject_health"
	MetricDamageDealt   = "damage_dealt"
	MetricKills         = "kills"
	MetricTimeBonus     = "time_bonus"
	MetricSalvage       = "salvage"
	MetricExploration   = "exploration"
)

// ToMetrics extracts a tracking.MetricBundle from MatchStatistics, raw
// (un-normalized) values; normalization is the aggregator's job.
func ToMetrics(stats sim.MatchStatistics, maxTicks int64) tracking.MetricBundle {
	team := stats.Teams[stats.SubjectTeam]
	survived := team.FinalHealthSum > 0

	var timeBonus float64
	if survived {
		remaining := maxTicks - stats.Ticks
		if remaining > 0 {
			timeBonus = float64(remaining)
		}
	}

	return tracking.MetricBundle{
		MetricSubjectHealth: float64(team.FinalHealthSum),
		MetricDamageDealt:   float64(team.DamageInflicted),
		MetricKills:         float64(team.Kills),
		MetricTimeBonus:     timeBonus,
		MetricSalvage:       float64(stats.SalvageCollected),
		MetricExploration:   float64(stats.DistinctCellsVisited),
	}
}

// Preset names a named combinator from spec §4.9's catalog. Each preset
// is additive over the previous: HealthDamage is the base, every other
// preset layers one more term on top.
type Preset int

const (
	HealthDamage Preset = iota
	HealthDamageKills
	HealthDamageKillsTime
	HealthDamageKillsTimeSalvage
	Full // + exploration
)

// NewAggregator builds a WeightedAggregator restricted to the metrics
// named by preset, using the parameter package's default weights and
// normalization bounds.
func NewAggregator(preset Preset) *fitness.WeightedAggregator {
	weights := map[string]float64{
		MetricSubjectHealth: parameter.FitnessWeightHealth,
		MetricDamageDealt:   parameter.FitnessWeightDamage,
	}
	normalizers := map[string]fitness.NormalizeFunc{
		MetricSubjectHealth: fitness.NormalizeCap(parameter.FitnessHealthMaxDefault),
		MetricDamageDealt:   fitness.NormalizeCap(parameter.FitnessDamageMaxDefault),
	}

	if preset >= HealthDamageKills {
		weights[MetricKills] = parameter.FitnessWeightKills
	}
	if preset >= HealthDamageKillsTime {
		weights[MetricTimeBonus] = parameter.FitnessWeightTime
	}
	if preset >= HealthDamageKillsTimeSalvage {
		weights[MetricSalvage] = parameter.FitnessWeightSalvage
		normalizers[MetricSalvage] = fitness.NormalizeCap(parameter.FitnessSalvageMaxDefault)
	}
	if preset >= Full {
		weights[MetricExploration] = parameter.FitnessWeightExplore
	}

	return &fitness.WeightedAggregator{Weights: weights, Normalizers: normalizers}
}

// Evaluate scores one match's statistics under the given preset.
func Evaluate(stats sim.MatchStatistics, maxTicks int64, preset Preset) float64 {
	agg := NewAggregator(preset)
	metrics := ToMetrics(stats, maxTicks)
	return agg.Calculate(metrics, nil)
}
