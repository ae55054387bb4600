// Package tournament runs round-robin matches between champion genomes
// and the Naive baseline, updating an Elo rating table and exporting a
// ranked report.
package tournament

import (
	"math"

	"github.com/lixenwraith/swarmforge/parameter"
)

// Outcome is a single match's result from the first player's perspective.
type Outcome int

const (
	Loss Outcome = iota
	Draw
	Win
)

// Rating tracks one champion's Elo rating and match history.
type Rating struct {
	Rating float64
	Wins   int
	Losses int
	Draws  int
}

// Table maps champion identifier to its current rating.
type Table map[string]*Rating

// NewTable seeds every id in ids at the default initial rating.
func NewTable(ids []string) Table {
	t := make(Table, len(ids))
	for _, id := range ids {
		t[id] = &Rating{Rating: parameter.EloInitialRating}
	}
	return t
}

// Update applies the standard Elo rating update for a single match
// between a and b from a's perspective, using kFactor.
func (t Table) Update(a, b string, outcome Outcome, kFactor float64) {
	ra, rb := t.ensure(a), t.ensure(b)

	expectedA := 1.0 / (1.0 + math.Pow(10, (rb.Rating-ra.Rating)/400))
	expectedB := 1.0 - expectedA

	var scoreA, scoreB float64
	switch outcome {
	case Win:
		scoreA, scoreB = 1, 0
		ra.Wins++
		rb.Losses++
	case Loss:
		scoreA, scoreB = 0, 1
		ra.Losses++
		rb.Wins++
	default:
		scoreA, scoreB = 0.5, 0.5
		ra.Draws++
		rb.Draws++
	}

	ra.Rating += kFactor * (scoreA - expectedA)
	rb.Rating += kFactor * (scoreB - expectedB)
}

func (t Table) ensure(id string) *Rating {
	r, ok := t[id]
	if !ok {
		r = &Rating{Rating: parameter.EloInitialRating}
		t[id] = r
	}
	return r
}

// RankedEntry is one row of the exported ranked list.
type RankedEntry struct {
	ID     string
	Rating float64
	Wins   int
	Losses int
	Draws  int
}

// Ranked returns t sorted by descending rating.
func (t Table) Ranked() []RankedEntry {
	out := make([]RankedEntry, 0, len(t))
	for id, r := range t {
		out = append(out, RankedEntry{ID: id, Rating: r.Rating, Wins: r.Wins, Losses: r.Losses, Draws: r.Draws})
	}
	for i := 1; i < len(out); i++ {
		j := i
		for j > 0 && out[j-1].Rating < out[j].Rating {
			out[j-1], out[j] = out[j], out[j-1]
			j--
		}
	}
	return out
}
