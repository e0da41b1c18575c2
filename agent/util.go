package agent

import (
	"sort"

	"antiyoy/game"
)

// targetTiles returns the tiles a scripted agent wants soldiers on: land
// adjacent to the province that the faction does not hold (the frontier),
// plus the province's own tree tiles.
func targetTiles(s *game.Scenario, p *game.Province) map[int]bool {
	targets := make(map[int]bool)
	for _, t := range p.Tiles {
		if s.Units[t].Kind == game.UnitTree {
			targets[t] = true
		}
		for _, n := range s.Grid.Neighbors(t) {
			if n == game.NoTile || !s.Grid.IsLand(n) || s.Owner[n] == p.ID {
				continue
			}
			if q := s.Provinces[s.Owner[n]]; q != nil && q.Faction == p.Faction {
				continue
			}
			targets[n] = true
		}
	}
	return targets
}

func movableSoldiers(s *game.Scenario, p *game.Province) []int {
	var tiles []int
	for _, t := range p.Tiles {
		if u := s.Units[t]; u.IsSoldier() && u.CanMove {
			tiles = append(tiles, t)
		}
	}
	sort.Ints(tiles)
	return tiles
}

func soldierTiles(s *game.Scenario, p *game.Province) map[int]bool {
	tiles := make(map[int]bool)
	for _, t := range p.Tiles {
		if s.Units[t].IsSoldier() {
			tiles[t] = true
		}
	}
	return tiles
}

// bestStep picks the legal destination that brings the soldier closest to
// any target tile, skipping tiles already holding a friendly soldier so
// units do not merge into unaffordable stacks. Returns -1 when no
// destination helps.
func bestStep(s *game.Scenario, from int, targets, avoid map[int]bool) int {
	legal, err := s.MovementRangeFiltered(s.Grid.RowCol(from))
	if err != nil {
		return -1
	}
	best, bestDist := -1, -1
	for _, t := range legal {
		if avoid[t] {
			continue
		}
		d := distanceToNearest(s, t, targets)
		if d < 0 {
			continue
		}
		if best < 0 || d < bestDist || (d == bestDist && t < best) {
			best, bestDist = t, d
		}
	}
	return best
}

// distanceToNearest is a breadth-first distance over land tiles from the
// tile to the closest member of targets, -1 if unreachable.
func distanceToNearest(s *game.Scenario, from int, targets map[int]bool) int {
	if targets[from] {
		return 0
	}
	dist := map[int]int{from: 0}
	queue := []int{from}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, n := range s.Grid.Neighbors(current) {
			if n == game.NoTile || !s.Grid.IsLand(n) {
				continue
			}
			if _, seen := dist[n]; seen {
				continue
			}
			dist[n] = dist[current] + 1
			if targets[n] {
				return dist[n]
			}
			queue = append(queue, n)
		}
	}
	return -1
}

func sortedTiles(set map[int]bool) []int {
	tiles := make([]int, 0, len(set))
	for t := range set {
		tiles = append(tiles, t)
	}
	sort.Ints(tiles)
	return tiles
}
