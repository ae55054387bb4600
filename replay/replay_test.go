package replay

import (
	"bytes"
	"io"
	"testing"

	"github.com/lixenwraith/swarmforge/sim"
)

func TestWriterReaderRoundTrip(t *testing.T) {
	cfg := sim.DefaultConfig()
	cfg.TeamSize = 1
	cfg.NumTeams = 2
	w := sim.NewWorld(cfg, 1)

	var buf bytes.Buffer
	rw := NewWriter(&buf)
	for i := 0; i < 3; i++ {
		if err := rw.Append(RecordFromWorld(w)); err != nil {
			t.Fatalf("Append: %v", err)
		}
		w.Tick++
	}
	if err := rw.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	rr := NewReader(&buf)
	records, err := rr.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	for i, rec := range records {
		if rec.Tick != int64(i) {
			t.Fatalf("expected tick %d, got %d", i, rec.Tick)
		}
		if len(rec.Ships) != len(w.Ships) {
			t.Fatalf("expected %d ships in record, got %d", len(w.Ships), len(rec.Ships))
		}
	}
}

func TestReaderNextReturnsEOFWhenExhausted(t *testing.T) {
	var buf bytes.Buffer
	rw := NewWriter(&buf)
	if err := rw.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	rr := NewReader(&buf)
	if _, err := rr.Next(); err != io.EOF {
		t.Fatalf("expected io.EOF on empty stream, got %v", err)
	}
}
