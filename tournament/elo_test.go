package tournament

import "testing"

func TestUpdateWinnerGainsRating(t *testing.T) {
	tbl := NewTable([]string{"a", "b"})
	before := tbl["a"].Rating
	tbl.Update("a", "b", Win, 24)
	if tbl["a"].Rating <= before {
		t.Fatalf("expected winner rating to increase, got %v -> %v", before, tbl["a"].Rating)
	}
	if tbl["b"].Rating >= before {
		t.Fatalf("expected loser rating to decrease below %v, got %v", before, tbl["b"].Rating)
	}
	if tbl["a"].Wins != 1 || tbl["b"].Losses != 1 {
		t.Fatalf("expected win/loss tallies to update")
	}
}

func TestUpdateDrawKeepsRatingsEqualWhenSeeded(t *testing.T) {
	tbl := NewTable([]string{"a", "b"})
	tbl.Update("a", "b", Draw, 24)
	if tbl["a"].Rating != tbl["b"].Rating {
		t.Fatalf("expected equal ratings after a draw between equally-seeded contestants")
	}
}

func TestRankedSortsDescending(t *testing.T) {
	tbl := NewTable([]string{"a", "b", "c"})
	tbl["a"].Rating = 1400
	tbl["b"].Rating = 1600
	tbl["c"].Rating = 1500

	ranked := tbl.Ranked()
	if ranked[0].ID != "b" || ranked[1].ID != "c" || ranked[2].ID != "a" {
		t.Fatalf("expected descending rating order, got %+v", ranked)
	}
}
