// Package store persists the run catalog, per-generation summaries,
// champion records, and Elo ratings in a SQLite database, so CLI
// listing and tournament commands don't re-parse every per-run file on
// each invocation.
package store

import (
	"database/sql"
	_ "embed"
	"fmt"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// DB wraps a sql.DB for the run store.
type DB struct {
	conn *sql.DB
}

// Open opens (or creates) the SQLite database at path and applies the schema.
func Open(path string) (*DB, error) {
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_journal_mode=WAL", path)
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("store: open db: %w", err)
	}
	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("store: apply schema: %w", err)
	}
	return &DB{conn: conn}, nil
}

// Close closes the underlying connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// RunRecord is one row of the runs table.
type RunRecord struct {
	RunID      string
	ConfigJSON string
	StartedAt  string
	Status     string
}

// InsertRun records the start of a training run.
func (db *DB) InsertRun(r RunRecord) error {
	_, err := db.conn.Exec(`
		INSERT OR REPLACE INTO runs(run_id, config_json, started_at, status)
		VALUES (?, ?, ?, ?)`,
		r.RunID, r.ConfigJSON, r.StartedAt, r.Status,
	)
	return err
}

// SetRunStatus updates a run's status field (e.g. "running", "completed", "paused").
func (db *DB) SetRunStatus(runID, status string) error {
	_, err := db.conn.Exec(`UPDATE runs SET status = ? WHERE run_id = ?`, status, runID)
	return err
}

// GenerationRecord is one row of the generations table.
type GenerationRecord struct {
	RunID        string
	Generation   int
	BestFitness  float64
	AvgFitness   float64
	SpeciesCount int
	WallTimeMs   int64
}

// InsertGeneration records one generation's evaluation summary.
func (db *DB) InsertGeneration(g GenerationRecord) error {
	_, err := db.conn.Exec(`
		INSERT OR REPLACE INTO generations(run_id, generation, best_fitness, avg_fitness, species_count, wall_time_ms)
		VALUES (?, ?, ?, ?, ?, ?)`,
		g.RunID, g.Generation, g.BestFitness, g.AvgFitness, g.SpeciesCount, g.WallTimeMs,
	)
	return err
}

// ChampionRecord is one row of the champions table.
type ChampionRecord struct {
	RunID        string
	Generation   int
	ChampionUUID string
	FilePath     string
	Fitness      float64
}

// InsertChampion records a persisted champion genome file.
func (db *DB) InsertChampion(c ChampionRecord) error {
	_, err := db.conn.Exec(`
		INSERT OR REPLACE INTO champions(run_id, generation, champion_uuid, file_path, fitness)
		VALUES (?, ?, ?, ?, ?)`,
		c.RunID, c.Generation, c.ChampionUUID, c.FilePath, c.Fitness,
	)
	return err
}

// EloRecord is one row of the elo_ratings table.
type EloRecord struct {
	ChampionUUID string
	Rating       float64
	Wins         int
	Losses       int
	Draws        int
	UpdatedAt    string
}

// UpsertEloRating writes or overwrites a champion's rating row.
func (db *DB) UpsertEloRating(e EloRecord) error {
	_, err := db.conn.Exec(`
		INSERT OR REPLACE INTO elo_ratings(champion_uuid, rating, wins, losses, draws, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		e.ChampionUUID, e.Rating, e.Wins, e.Losses, e.Draws, e.UpdatedAt,
	)
	return err
}

// RunCatalogEntry is one row of spec.md §6's run catalog: {run_id, best_elo}.
type RunCatalogEntry struct {
	RunID   string
	BestElo float64
}

// RunCatalog returns every run and the best Elo rating among champions
// persisted under it, joining champions to elo_ratings.
func (db *DB) RunCatalog() ([]RunCatalogEntry, error) {
	rows, err := db.conn.Query(`
		SELECT r.run_id, COALESCE(MAX(e.rating), 0)
		FROM runs r
		LEFT JOIN champions c ON c.run_id = r.run_id
		LEFT JOIN elo_ratings e ON e.champion_uuid = c.champion_uuid
		GROUP BY r.run_id
		ORDER BY r.run_id`)
	if err != nil {
		return nil, fmt.Errorf("store: querying run catalog: %w", err)
	}
	defer rows.Close()

	var out []RunCatalogEntry
	for rows.Next() {
		var e RunCatalogEntry
		if err := rows.Scan(&e.RunID, &e.BestElo); err != nil {
			return nil, fmt.Errorf("store: scanning run catalog row: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// GenerationsForRun returns every generation record for runID, ordered
// by generation number ascending.
func (db *DB) GenerationsForRun(runID string) ([]GenerationRecord, error) {
	rows, err := db.conn.Query(`
		SELECT run_id, generation, best_fitness, avg_fitness, species_count, wall_time_ms
		FROM generations WHERE run_id = ? ORDER BY generation ASC`, runID)
	if err != nil {
		return nil, fmt.Errorf("store: querying generations: %w", err)
	}
	defer rows.Close()

	var out []GenerationRecord
	for rows.Next() {
		var g GenerationRecord
		if err := rows.Scan(&g.RunID, &g.Generation, &g.BestFitness, &g.AvgFitness, &g.SpeciesCount, &g.WallTimeMs); err != nil {
			return nil, fmt.Errorf("store: scanning generation row: %w", err)
		}
		out = append(out, g)
	}
	return out, rows.Err()
}
