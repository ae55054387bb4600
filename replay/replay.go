// Package replay records and plays back per-tick match snapshots as
// newline-delimited JSON records, written through a snappy-framed
// stream so long matches don't balloon disk usage.
package replay

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/golang/snappy"

	"github.com/lixenwraith/swarmforge/sim"
)

// ShipRecord is the persisted form of one sim.Ship.
type ShipRecord struct {
	X           float32 `json:"x"`
	Y           float32 `json:"y"`
	Team        int     `json:"team"`
	Health      float32 `json:"health"`
	Shield      float32 `json:"shield"`
	LastHitTick int64   `json:"last_hit_tick"`
}

// ProjectileRecord is the persisted form of one sim.Projectile.
type ProjectileRecord struct {
	X           float32 `json:"x"`
	Y           float32 `json:"y"`
	VX          float32 `json:"vx"`
	VY          float32 `json:"vy"`
	ShooterTeam int     `json:"shooter_team"`
	Damage      float32 `json:"damage"`
	TTL         int     `json:"ttl"`
}

// WreckRecord is the persisted form of one sim.Wreck.
type WreckRecord struct {
	X    float32 `json:"x"`
	Y    float32 `json:"y"`
	Pool float32 `json:"pool"`
}

// TickRecord is one full-state snapshot of a world at a given tick.
type TickRecord struct {
	Tick        int64              `json:"tick"`
	Ships       []ShipRecord       `json:"ships"`
	Projectiles []ProjectileRecord `json:"projectiles"`
	Wrecks      []WreckRecord      `json:"wrecks"`
}

// RecordFromWorld builds a TickRecord from the world's current state.
func RecordFromWorld(w *sim.World) TickRecord {
	rec := TickRecord{
		Tick:        w.Tick,
		Ships:       make([]ShipRecord, len(w.Ships)),
		Projectiles: make([]ProjectileRecord, len(w.Projectiles)),
		Wrecks:      make([]WreckRecord, len(w.Wrecks)),
	}
	for i, s := range w.Ships {
		rec.Ships[i] = ShipRecord{
			X: s.Pos.X, Y: s.Pos.Y,
			Team: int(s.Team), Health: s.Health, Shield: s.Shield,
			LastHitTick: s.LastHitTick,
		}
	}
	for i, p := range w.Projectiles {
		rec.Projectiles[i] = ProjectileRecord{
			X: p.Pos.X, Y: p.Pos.Y, VX: p.Vel.X, VY: p.Vel.Y,
			ShooterTeam: int(p.ShooterTeam), Damage: p.Damage, TTL: p.TTL,
		}
	}
	for i, wr := range w.Wrecks {
		rec.Wrecks[i] = WreckRecord{X: wr.Pos.X, Y: wr.Pos.Y, Pool: wr.Pool}
	}
	return rec
}

// Writer appends TickRecords as newline-delimited JSON through a
// snappy-framed stream.
type Writer struct {
	sw  *snappy.Writer
	buf *bufio.Writer
	enc *json.Encoder
}

// NewWriter wraps w with a snappy frame writer.
func NewWriter(w io.Writer) *Writer {
	sw := snappy.NewBufferedWriter(w)
	return &Writer{sw: sw, enc: json.NewEncoder(sw)}
}

// Append writes one tick record.
func (rw *Writer) Append(rec TickRecord) error {
	if err := rw.enc.Encode(rec); err != nil {
		return fmt.Errorf("replay: encoding tick %d: %w", rec.Tick, err)
	}
	return nil
}

// Close flushes the underlying snappy frame writer.
func (rw *Writer) Close() error {
	return rw.sw.Close()
}

// Reader reads back TickRecords from a snappy-framed NDJSON stream.
type Reader struct {
	dec *json.Decoder
}

// NewReader wraps r with a snappy frame reader.
func NewReader(r io.Reader) *Reader {
	return &Reader{dec: json.NewDecoder(snappy.NewReader(r))}
}

// Next decodes the next tick record, returning io.EOF when exhausted.
func (rr *Reader) Next() (TickRecord, error) {
	var rec TickRecord
	if err := rr.dec.Decode(&rec); err != nil {
		return rec, err
	}
	return rec, nil
}

// ReadAll drains every remaining record from rr.
func (rr *Reader) ReadAll() ([]TickRecord, error) {
	var out []TickRecord
	for {
		rec, err := rr.Next()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return out, fmt.Errorf("replay: decoding record %d: %w", len(out), err)
		}
		out = append(out, rec)
	}
}
