package snapshot

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/lixenwraith/swarmforge/toml"
)

const championLatestName = "champion_latest.toml"

// Manager handles save/load of genome and population files under one
// run directory, mirroring the teacher's persistence.Manager shape
// (FilePath/Exists/Save/Load) generalized from one file per species to
// one file per champion generation plus a rolling "latest" pointer.
type Manager struct {
	runDir string
}

// NewManager creates a manager rooted at runDir.
func NewManager(runDir string) *Manager {
	return &Manager{runDir: runDir}
}

// GenomeFilePath returns the path for generation's champion file.
func (m *Manager) GenomeFilePath(generation int) string {
	return filepath.Join(m.runDir, fmt.Sprintf("champion_gen%05d.toml", generation))
}

// LatestGenomeFilePath returns the path of the rolling latest-champion file.
func (m *Manager) LatestGenomeFilePath() string {
	return filepath.Join(m.runDir, championLatestName)
}

// PopulationFilePath returns the path of the full population snapshot file.
func (m *Manager) PopulationFilePath(generation int) string {
	return filepath.Join(m.runDir, fmt.Sprintf("population_gen%05d.toml", generation))
}

// Exists reports whether the file at path is present.
func (m *Manager) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// SaveGenome writes dto to path, creating the run directory if needed.
func (m *Manager) SaveGenome(path string, dto GenomeDTO) error {
	if err := os.MkdirAll(m.runDir, 0755); err != nil {
		return fmt.Errorf("snapshot: creating run dir: %w", err)
	}
	data, err := toml.Marshal(dto)
	if err != nil {
		return fmt.Errorf("snapshot: marshaling genome: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// LoadGenome reads a genome file from path.
func (m *Manager) LoadGenome(path string) (GenomeDTO, error) {
	var dto GenomeDTO
	data, err := os.ReadFile(path)
	if err != nil {
		return dto, fmt.Errorf("snapshot: reading genome file: %w", err)
	}
	if err := toml.Unmarshal(data, &dto); err != nil {
		return dto, fmt.Errorf("snapshot: decoding genome file: %w", err)
	}
	return dto, nil
}

// SaveChampion writes a genome both to its per-generation file and to
// the rolling champion_latest file, per spec.md §6's persisted state
// layout ("per-generation champion files, a champion_latest").
func (m *Manager) SaveChampion(generation int, dto GenomeDTO) error {
	if err := m.SaveGenome(m.GenomeFilePath(generation), dto); err != nil {
		return err
	}
	return m.SaveGenome(m.LatestGenomeFilePath(), dto)
}

// SavePopulation writes a full population snapshot for generation.
func (m *Manager) SavePopulation(generation int, dto PopulationDTO) error {
	if err := os.MkdirAll(m.runDir, 0755); err != nil {
		return fmt.Errorf("snapshot: creating run dir: %w", err)
	}
	data, err := toml.Marshal(dto)
	if err != nil {
		return fmt.Errorf("snapshot: marshaling population: %w", err)
	}
	return os.WriteFile(m.PopulationFilePath(generation), data, 0644)
}

// LoadPopulation reads a population snapshot for generation.
func (m *Manager) LoadPopulation(generation int) (PopulationDTO, error) {
	var dto PopulationDTO
	data, err := os.ReadFile(m.PopulationFilePath(generation))
	if err != nil {
		return dto, fmt.Errorf("snapshot: reading population file: %w", err)
	}
	if err := toml.Unmarshal(data, &dto); err != nil {
		return dto, fmt.Errorf("snapshot: decoding population file: %w", err)
	}
	return dto, nil
}
