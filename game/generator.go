package game

import (
	"fmt"

	"github.com/ojrac/opensimplex-go"

	"antiyoy/utils"
)

// GenerateConfig parameterizes random map generation.
type GenerateConfig struct {
	Dimension    int    `yaml:"dimension"`
	LandTiles    int    `yaml:"landTiles"`
	ProvinceSize int    `yaml:"provinceSize"`
	Seed         uint64 `yaml:"seed"`
}

// noiseFrequency scales tile coordinates into simplex-noise space. Lower
// values give smoother, blobbier islands.
const noiseFrequency = 0.15

// startingResources is the treasury every generated province begins with.
const startingResources = 10

// GenerateScenario builds a random scenario: one contiguous island grown
// tile by tile from a center seed, biased toward high ground of a simplex
// elevation field, then divided into spaced starting provinces of the
// requested size. The same config always produces the same scenario.
func GenerateScenario(cfg GenerateConfig, factionNames []string) (*Scenario, error) {
	if len(factionNames) == 0 {
		return nil, fmt.Errorf("%w: need at least one faction", ErrInvariantViolation)
	}
	if len(factionNames) >= cfg.LandTiles/2 {
		return nil, fmt.Errorf("%w: %d factions need fewer than half of %d land tiles",
			ErrInvariantViolation, len(factionNames), cfg.LandTiles)
	}
	if cfg.LandTiles > cfg.Dimension*cfg.Dimension {
		return nil, fmt.Errorf("%w: %d land tiles do not fit a %dx%d map",
			ErrInvariantViolation, cfg.LandTiles, cfg.Dimension, cfg.Dimension)
	}
	if len(factionNames)*cfg.ProvinceSize > cfg.LandTiles {
		return nil, fmt.Errorf("%w: not enough land for %d provinces of %d tiles",
			ErrInvariantViolation, len(factionNames), cfg.ProvinceSize)
	}
	if cfg.ProvinceSize < 2 {
		return nil, fmt.Errorf("%w: initial province size must be at least 2", ErrInvariantViolation)
	}

	factions := make([]*Faction, len(factionNames))
	for i, name := range factionNames {
		factions[i] = NewFaction(name)
	}
	grid := NewGrid(cfg.Dimension, cfg.Dimension)
	s := NewScenario("Random Generated Map", grid, factions, cfg.Seed)

	land := s.growIsland(cfg)
	if err := s.distributeTiles(land, cfg.ProvinceSize); err != nil {
		return nil, err
	}
	return s, nil
}

// growIsland converts water to land with frontier growth: starting from a
// tile near the map center, repeatedly promote the frontier tile with the
// highest noise elevation (plus a little jitter so coastlines stay ragged).
func (s *Scenario) growIsland(cfg GenerateConfig) []int {
	noise := opensimplex.NewNormalized(int64(cfg.Seed))
	elevation := func(tile int) float64 {
		row, col := s.Grid.RowCol(tile)
		return noise.Eval2(float64(col)*noiseFrequency, float64(row)*noiseFrequency)
	}

	center := cfg.Dimension / 2
	spread := cfg.Dimension / 4
	clamp := func(v int) int {
		if v < 0 {
			return 0
		}
		if v >= cfg.Dimension {
			return cfg.Dimension - 1
		}
		return v
	}
	startRow := clamp(center - spread + s.rng.Intn(2*spread+1))
	startCol := clamp(center - spread + s.rng.Intn(2*spread+1))
	start := startRow*cfg.Dimension + startCol

	s.Grid.Water[start] = false
	land := []int{start}

	var frontier []int
	addFrontier := func(tile int) {
		for _, n := range s.Grid.Neighbors(tile) {
			if n != NoTile && s.Grid.Water[n] && utils.FindIndex(frontier, n) < 0 {
				frontier = append(frontier, n)
			}
		}
	}
	addFrontier(start)

	for len(land) < cfg.LandTiles && len(frontier) > 0 {
		best, bestScore := -1, -1.0
		for i, t := range frontier {
			if score := elevation(t) + 0.35*s.rng.Float64(); score > bestScore {
				best, bestScore = i, score
			}
		}
		tile := frontier[best]
		frontier = append(frontier[:best], frontier[best+1:]...)

		s.Grid.Water[tile] = false
		land = append(land, tile)
		addFrontier(tile)
	}
	return land
}

// distributeTiles carves starting provinces out of the island: spaced
// starting tiles, then round-robin frontier expansion until every province
// reaches the target size or runs out of room, then capitals.
func (s *Scenario) distributeTiles(land []int, provinceSize int) error {
	starts := s.pickSpacedStarts(land, len(s.Factions))
	if len(starts) < len(s.Factions) {
		return fmt.Errorf("%w: could not place %d starting provinces", ErrInvariantViolation, len(s.Factions))
	}

	available := make(map[int]bool, len(land))
	for _, t := range land {
		available[t] = true
	}

	frontiers := make([][]int, len(s.Factions))
	for i := range s.Factions {
		start := starts[i]
		delete(available, start)
		p := NewProvince(s.reserveProvinceID(), i, []int{start}, startingResources)
		s.RegisterProvince(p)

		for _, n := range s.Grid.Neighbors(start) {
			if n != NoTile && available[n] {
				frontiers[i] = append(frontiers[i], n)
			}
		}
	}

	for {
		progressed := false
		for i, f := range s.Factions {
			p := s.Provinces[f.Provinces[0]]
			if len(p.Tiles) >= provinceSize || len(frontiers[i]) == 0 {
				continue
			}
			idx := s.rng.Intn(len(frontiers[i]))
			tile := frontiers[i][idx]
			frontiers[i] = append(frontiers[i][:idx], frontiers[i][idx+1:]...)
			progressed = true
			if !available[tile] {
				continue
			}

			delete(available, tile)
			p.Tiles = append(p.Tiles, tile)
			s.Owner[tile] = p.ID

			for _, n := range s.Grid.Neighbors(tile) {
				if n != NoTile && available[n] && utils.FindIndex(frontiers[i], n) < 0 {
					frontiers[i] = append(frontiers[i], n)
				}
			}
		}
		if !progressed {
			break
		}
	}

	for _, f := range s.Factions {
		p := s.Provinces[f.Provinces[0]]
		if len(p.Tiles) < 2 {
			continue
		}
		p.Active = true
		p.Resources = startingResources
		capital, _ := p.PlaceCapital(s, p.Tiles)
		s.Units[capital] = NewStructure(UnitCapital)
	}
	return nil
}

// pickSpacedStarts picks one starting tile per faction, the first at random
// and each next one maximizing its minimum grid distance to those already
// chosen.
func (s *Scenario) pickSpacedStarts(land []int, count int) []int {
	if count <= 0 || len(land) == 0 {
		return nil
	}
	starts := []int{land[s.rng.Intn(len(land))]}

	for len(starts) < count {
		best, bestDist := -1, -1
		for _, t := range land {
			if utils.FindIndex(starts, t) >= 0 {
				continue
			}
			row, col := s.Grid.RowCol(t)
			minDist := int(^uint(0) >> 1)
			for _, chosen := range starts {
				cr, cc := s.Grid.RowCol(chosen)
				d := abs(row-cr) + abs(col-cc)
				if d < minDist {
					minDist = d
				}
			}
			if minDist > bestDist {
				best, bestDist = t, minDist
			}
		}
		if best < 0 {
			break
		}
		starts = append(starts, best)
	}
	return starts
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
