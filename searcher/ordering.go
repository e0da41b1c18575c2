package searcher

import "antiyoy/game"

const unreachable = 1 << 20

// orderingCache memoizes the next-unit-to-move choice for one scenario
// state. The scenario's version counter invalidates it, since applying any
// action may change which unit should act next.
type orderingCache struct {
	scenario *game.Scenario
	version  uint64
	tile     int
	ok       bool
}

// nextUnitToMove picks the single soldier the planner considers moving this
// decision: highest tier first, ties broken by distance to the nearest
// worthwhile enemy tile, then by tile index for determinism. Restricting
// movement to one unit per decision is the main throttle on the branch
// space.
func (m *Minimax) nextUnitToMove(s *game.Scenario, faction int) (int, bool) {
	if m.ordering.scenario == s && m.ordering.version == s.Version() {
		return m.ordering.tile, m.ordering.ok
	}

	best, bestTier, bestDist := -1, 0, 0
	for _, id := range s.Factions[faction].Provinces {
		p := s.Provinces[id]
		if p == nil || !p.Active {
			continue
		}
		for _, t := range p.Tiles {
			u := s.Units[t]
			if !u.IsSoldier() || !u.CanMove {
				continue
			}
			d := distanceToNearestEnemy(s, t, faction)
			better := best < 0 ||
				u.Tier > bestTier ||
				(u.Tier == bestTier && d < bestDist) ||
				(u.Tier == bestTier && d == bestDist && t < best)
			if better {
				best, bestTier, bestDist = t, u.Tier, d
			}
		}
	}

	m.ordering = orderingCache{scenario: s, version: s.Version(), tile: best, ok: best >= 0}
	return m.ordering.tile, m.ordering.ok
}

// moveTargets filters a soldier's legal destinations down to the ones worth
// exploring: conquerable tiles and own tiles touching the enemy; failing
// that, border and tree tiles; failing that, the single reachable tile that
// brings the soldier closest to an enemy.
func (m *Minimax) moveTargets(s *game.Scenario, from int) []int {
	legal, err := s.MovementRangeFiltered(s.Grid.RowCol(from))
	if err != nil || len(legal) == 0 {
		return nil
	}
	pid := s.Owner[from]
	faction := s.Provinces[pid].Faction

	var front, fallback []int
	for _, t := range legal {
		switch {
		case s.Owner[t] != pid:
			front = append(front, t)
		case touchesEnemy(s, t, faction):
			front = append(front, t)
		case s.Units[t].Kind == game.UnitTree || borderTile(s, t, pid):
			fallback = append(fallback, t)
		}
	}
	if len(front) > 0 {
		return front
	}
	if len(fallback) > 0 {
		return fallback
	}

	// Nothing tactical in range: just walk toward the action.
	best, bestDist := -1, 0
	for _, t := range legal {
		if d := distanceToNearestEnemy(s, t, faction); best < 0 || d < bestDist {
			best, bestDist = t, d
		}
	}
	if best < 0 {
		return nil
	}
	return []int{best}
}

func touchesEnemy(s *game.Scenario, tile, faction int) bool {
	for _, n := range s.Grid.Neighbors(tile) {
		if n != game.NoTile && enemyTile(s, n, faction) {
			return true
		}
	}
	return false
}

func borderTile(s *game.Scenario, tile, pid int) bool {
	for _, n := range s.Grid.Neighbors(tile) {
		if n != game.NoTile && s.Grid.IsLand(n) && s.Owner[n] != pid {
			return true
		}
	}
	return false
}

// distanceToNearestEnemy walks land tiles breadth-first from the tile until
// it hits one owned by another faction's active multi-tile province. Tiles
// of dormant singleton provinces are not targets worth marching at.
func distanceToNearestEnemy(s *game.Scenario, from, faction int) int {
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
			if p := s.Provinces[s.Owner[n]]; p != nil && p.Faction != faction && p.Active && len(p.Tiles) >= 2 {
				return dist[n]
			}
			queue = append(queue, n)
		}
	}
	return unreachable
}
