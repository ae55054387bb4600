// Package snapshot persists genomes and population state to TOML files,
// adapting the teacher's candidate/pool DTO shape to NEAT's node and
// connection gene lists.
package snapshot

import (
	"github.com/lixenwraith/swarmforge/neat"
)

// NodeDTO is one serializable node gene.
type NodeDTO struct {
	ID   int `toml:"id"`
	Kind int `toml:"kind"`
}

// ConnDTO is one serializable connection gene.
type ConnDTO struct {
	Innov   int     `toml:"innov"`
	From    int     `toml:"from"`
	To      int     `toml:"to"`
	Weight  float32 `toml:"weight"`
	Enabled bool    `toml:"enabled"`
}

// Metadata records the provenance of a persisted champion, per
// spec.md §6's genome file format.
type Metadata struct {
	Timestamp        string `toml:"timestamp"`
	Generation       int    `toml:"generation"`
	EvolutionConfig  string `toml:"evolution_config"`
	SimulationConfig string `toml:"simulation_config"`
}

// GenomeDTO is the serializable form of a neat.Genome.
type GenomeDTO struct {
	ID          uint64     `toml:"id"`
	Fitness     float64    `toml:"fitness"`
	Nodes       []NodeDTO  `toml:"nodes"`
	Connections []ConnDTO  `toml:"connections"`
	Metadata    Metadata   `toml:"metadata"`
}

// FromGenome converts a genome and its provenance into a GenomeDTO.
func FromGenome(g neat.Genome, meta Metadata) GenomeDTO {
	dto := GenomeDTO{
		ID:          g.ID,
		Fitness:     g.Fitness,
		Nodes:       make([]NodeDTO, len(g.Nodes)),
		Connections: make([]ConnDTO, len(g.Conns)),
		Metadata:    meta,
	}
	for i, n := range g.Nodes {
		dto.Nodes[i] = NodeDTO{ID: n.ID, Kind: int(n.Kind)}
	}
	for i, c := range g.Conns {
		dto.Connections[i] = ConnDTO{
			Innov:   c.Innovation,
			From:    c.From,
			To:      c.To,
			Weight:  c.Weight,
			Enabled: c.Enabled,
		}
	}
	return dto
}

// ToGenome converts a GenomeDTO back into a neat.Genome.
func (dto GenomeDTO) ToGenome() neat.Genome {
	g := neat.Genome{
		ID:      dto.ID,
		Fitness: dto.Fitness,
		Nodes:   make([]neat.NodeGene, len(dto.Nodes)),
		Conns:   make([]neat.ConnGene, len(dto.Connections)),
	}
	for i, n := range dto.Nodes {
		g.Nodes[i] = neat.NodeGene{ID: n.ID, Kind: neat.NodeKind(n.Kind)}
	}
	for i, c := range dto.Connections {
		g.Conns[i] = neat.ConnGene{
			Innovation: c.Innov,
			From:       c.From,
			To:         c.To,
			Weight:     c.Weight,
			Enabled:    c.Enabled,
		}
	}
	return g
}

// PopulationDTO is the serializable population snapshot: generation
// number plus every genome currently alive, mirroring the teacher's
// PopulationDTO{Generation, Candidates} shape.
type PopulationDTO struct {
	Generation int         `toml:"generation"`
	Genomes    []GenomeDTO `toml:"genomes"`
}

// FromGenomes builds a PopulationDTO from a generation number and a
// flat genome slice, all sharing one metadata record.
func FromGenomes(generation int, genomes []neat.Genome, meta Metadata) PopulationDTO {
	dto := PopulationDTO{Generation: generation, Genomes: make([]GenomeDTO, len(genomes))}
	for i, g := range genomes {
		dto.Genomes[i] = FromGenome(g, meta)
	}
	return dto
}

// ToGenomes extracts the plain genome slice from a PopulationDTO.
func (dto PopulationDTO) ToGenomes() []neat.Genome {
	out := make([]neat.Genome, len(dto.Genomes))
	for i, g := range dto.Genomes {
		out[i] = g.ToGenome()
	}
	return out
}
