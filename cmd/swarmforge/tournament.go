package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/swarmforge/match"
	"github.com/lixenwraith/swarmforge/snapshot"
	"github.com/lixenwraith/swarmforge/store"
	"github.com/lixenwraith/swarmforge/toml"
	"github.com/lixenwraith/swarmforge/tournament"
)

var (
	tournamentPopPath     string
	tournamentPopFiles    []string
	tournamentIncludeFSM  bool
	tournamentRounds      int
	tournamentKFactor     float64
)

var tournamentCmd = &cobra.Command{
	Use:   "tournament",
	Short: "Round-robin a population and rank contestants by Elo",
	RunE:  runTournament,
}

func init() {
	tournamentCmd.Flags().StringVar(&tournamentPopPath, "pop-path", "", "directory of genome TOML files")
	tournamentCmd.Flags().StringArrayVar(&tournamentPopFiles, "pop-file", nil, "explicit genome TOML file (repeatable)")
	tournamentCmd.Flags().BoolVar(&tournamentIncludeFSM, "include-naive", true, "include the Naive FSM baseline as a contestant")
	tournamentCmd.Flags().IntVar(&tournamentRounds, "rounds", 0, "matches per ordered pair (0 = use parameter default)")
	tournamentCmd.Flags().Float64Var(&tournamentKFactor, "k-factor", 0, "Elo K-factor (0 = use parameter default)")
}

// elo ratings file format, per spec.md §6.
type eloRatingsFile struct {
	Entries []eloRatingEntry `toml:"entries"`
}

type eloRatingEntry struct {
	ChampionPath string  `toml:"champion_path"`
	Elo          float64 `toml:"elo"`
	Wins         int     `toml:"wins"`
	Losses       int     `toml:"losses"`
	Draws        int     `toml:"draws"`
}

func runTournament(cmd *cobra.Command, args []string) error {
	files := append([]string{}, tournamentPopFiles...)
	if tournamentPopPath != "" {
		entries, err := os.ReadDir(tournamentPopPath)
		if err != nil {
			return fmt.Errorf("tournament: reading pop-path: %w", err)
		}
		for _, e := range entries {
			if !e.IsDir() && strings.HasSuffix(e.Name(), ".toml") {
				files = append(files, filepath.Join(tournamentPopPath, e.Name()))
			}
		}
	}
	if len(files) == 0 {
		return fmt.Errorf("tournament: no genome files given (use --pop-path or --pop-file)")
	}

	mgr := snapshot.NewManager("")
	contestants := make([]tournament.Contestant, 0, len(files)+1)
	for _, f := range files {
		dto, err := mgr.LoadGenome(f)
		if err != nil {
			return fmt.Errorf("tournament: loading %s: %w", f, err)
		}
		contestants = append(contestants, tournament.Contestant{
			ID: f, Kind: match.ShipNeural, Genome: dto.ToGenome(),
		})
	}
	if tournamentIncludeFSM {
		contestants = append(contestants, tournament.Contestant{ID: tournament.NaiveBaselineID, Kind: match.ShipNaive})
	}

	cfg := tournament.DefaultConfig()
	if tournamentRounds > 0 {
		cfg.Rounds = tournamentRounds
	}
	if tournamentKFactor > 0 {
		cfg.KFactor = tournamentKFactor
	}

	ratings, _, err := tournament.RoundRobin(context.Background(), cfg, contestants)
	if err != nil {
		return fmt.Errorf("tournament: %w", err)
	}

	runDir := runDirFlag
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return fmt.Errorf("tournament: creating run dir: %w", err)
	}
	if err := writeEloRatingsFile(filepath.Join(runDir, "elo_ratings.toml"), ratings); err != nil {
		return fmt.Errorf("tournament: %w", err)
	}

	if err := persistRatingsToStore(runDir, ratings); err != nil {
		return fmt.Errorf("tournament: %w", err)
	}

	tournament.PrintRanking(os.Stdout, ratings)
	return nil
}

func writeEloRatingsFile(path string, ratings tournament.Table) error {
	file := eloRatingsFile{}
	for _, e := range ratings.Ranked() {
		file.Entries = append(file.Entries, eloRatingEntry{
			ChampionPath: e.ID, Elo: e.Rating, Wins: e.Wins, Losses: e.Losses, Draws: e.Draws,
		})
	}
	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("marshaling elo ratings file: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

func persistRatingsToStore(runDir string, ratings tournament.Table) error {
	db, err := store.Open(filepath.Join(runDir, "run.db"))
	if err != nil {
		return fmt.Errorf("opening run store: %w", err)
	}
	defer db.Close()

	now := time.Now().UTC().Format(time.RFC3339)
	for id, r := range ratings {
		if err := db.UpsertEloRating(store.EloRecord{
			ChampionUUID: id, Rating: r.Rating, Wins: r.Wins, Losses: r.Losses, Draws: r.Draws, UpdatedAt: now,
		}); err != nil {
			return fmt.Errorf("recording elo rating for %s: %w", id, err)
		}
	}
	return nil
}
