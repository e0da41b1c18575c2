package searcher

import "antiyoy/game"

// forEachBranch enumerates full-turn action sequences for the acting
// faction depth-first, mutating s in place and undoing on the way back so
// siblings always start from the same state. Every prefix is itself a
// branch: the empty sequence (pass) is visited first, then each extension.
// The visitor returns false to abort enumeration (alpha-beta cutoff).
func (m *Minimax) forEachBranch(s *game.Scenario, visit func([]game.PlannedAction) bool) {
	var current []game.PlannedAction

	var rec func(decisions int) bool
	rec = func(decisions int) bool {
		if !visit(current) {
			return false
		}
		if decisions >= m.turnActions {
			return true
		}
		for _, option := range m.collectSingleStepActions(s) {
			applied, err := applyPlan(s, option)
			if err != nil {
				// stale option after earlier decisions in this branch;
				// the branch simply doesn't exist
				undoPlan(s, applied)
				continue
			}
			current = append(current, option...)
			ok := rec(decisions + 1)
			current = current[:len(current)-len(option)]
			undoPlan(s, option)
			if !ok {
				return false
			}
		}
		return true
	}
	rec(0)
}

// applyPlan applies a decision's actions in order. On failure it returns
// the applied prefix so the caller can roll it back.
func applyPlan(s *game.Scenario, plan []game.PlannedAction) ([]game.PlannedAction, error) {
	for i, pa := range plan {
		if err := s.ApplyAction(pa.Action, pa.Province); err != nil {
			return plan[:i], err
		}
	}
	return plan, nil
}

// undoPlan exactly reverses an applied plan. Inverses of successfully
// applied actions cannot fail.
func undoPlan(s *game.Scenario, plan []game.PlannedAction) {
	for i := len(plan) - 1; i >= 0; i-- {
		_ = s.ApplyAction(plan[i].Action.Invert(), plan[i].Province)
	}
}

// collectSingleStepActions gathers the acting faction's candidate decisions
// from the current state: every useful destination for the one next unit to
// move, then builds for each active province. Each option carries its
// consequence actions and the province paying for it.
func (m *Minimax) collectSingleStepActions(s *game.Scenario) [][]game.PlannedAction {
	faction := s.TurnFaction
	var options [][]game.PlannedAction

	if from, ok := m.nextUnitToMove(s, faction); ok {
		p := s.Provinces[s.Owner[from]]
		row, col := s.Grid.RowCol(from)
		for _, to := range m.moveTargets(s, from) {
			toRow, toCol := s.Grid.RowCol(to)
			actions, err := s.MoveUnit(row, col, toRow, toCol)
			if err != nil {
				continue
			}
			options = append(options, asPlanned(actions, p))
		}
	}

	for _, id := range s.Factions[faction].Provinces {
		p := s.Provinces[id]
		if p == nil || !p.Active {
			continue
		}
		options = append(options, m.buildOptions(s, p)...)
	}
	return options
}

// buildOptions proposes purchases for one province: the cheapest viable
// soldier on frontier, tree and mergeable-soldier tiles, a farm where one
// fits, and a tower on empty tiles within two hexes of an enemy.
func (m *Minimax) buildOptions(s *game.Scenario, p *game.Province) [][]game.PlannedAction {
	var options [][]game.PlannedAction

	propose := func(tile int, pick func([]game.Unit) (game.Unit, bool)) {
		row, col := s.Grid.RowCol(tile)
		buildable, err := s.BuildableUnits(row, col, p)
		if err != nil || len(buildable) == 0 {
			return
		}
		unit, ok := pick(buildable)
		if !ok {
			return
		}
		actions, err := s.BuildUnitOnTile(row, col, unit, p)
		if err != nil {
			return
		}
		options = append(options, asPlanned(actions, p))
	}

	for _, tile := range soldierBuildTiles(s, p) {
		propose(tile, cheapestSoldier)
	}
	for _, tile := range p.Tiles {
		if !s.Units[tile].IsEmpty() {
			continue
		}
		propose(tile, pickKind(game.UnitFarm))
		if withinTwoOfEnemy(s, tile, p.Faction) {
			propose(tile, pickKind(game.UnitTower1))
		}
	}
	return options
}

// soldierBuildTiles lists the tiles worth putting a soldier on: adjacent
// foreign/neutral tiles, own tree tiles, and own soldiers that could merge
// up.
func soldierBuildTiles(s *game.Scenario, p *game.Province) []int {
	var tiles []int
	seen := make(map[int]bool)
	add := func(t int) {
		if !seen[t] {
			seen[t] = true
			tiles = append(tiles, t)
		}
	}
	for _, t := range p.Tiles {
		u := s.Units[t]
		if u.Kind == game.UnitTree || (u.IsSoldier() && u.CanMove && u.Tier < game.MaxSoldierTier) {
			add(t)
		}
		for _, n := range s.Grid.Neighbors(t) {
			if n == game.NoTile || !s.Grid.IsLand(n) || s.Owner[n] == p.ID {
				continue
			}
			if s.Owner[n] != game.NoProvince {
				if q := s.Provinces[s.Owner[n]]; q != nil && q.Faction == p.Faction {
					continue
				}
			}
			add(n)
		}
	}
	return tiles
}

func cheapestSoldier(buildable []game.Unit) (game.Unit, bool) {
	for _, u := range buildable {
		if u.IsSoldier() {
			return u, true
		}
	}
	return game.Unit{}, false
}

func pickKind(kind game.UnitKind) func([]game.Unit) (game.Unit, bool) {
	return func(buildable []game.Unit) (game.Unit, bool) {
		for _, u := range buildable {
			if u.Kind == kind {
				return u, true
			}
		}
		return game.Unit{}, false
	}
}

func withinTwoOfEnemy(s *game.Scenario, tile, faction int) bool {
	for _, n := range s.Grid.Neighbors(tile) {
		if n == game.NoTile {
			continue
		}
		if enemyTile(s, n, faction) {
			return true
		}
		for _, nn := range s.Grid.Neighbors(n) {
			if nn != game.NoTile && enemyTile(s, nn, faction) {
				return true
			}
		}
	}
	return false
}

func enemyTile(s *game.Scenario, tile, faction int) bool {
	p := s.Provinces[s.Owner[tile]]
	return p != nil && p.Faction != faction
}

func asPlanned(actions []game.Action, p *game.Province) []game.PlannedAction {
	out := make([]game.PlannedAction, len(actions))
	for i, a := range actions {
		out[i] = game.PlannedAction{Action: a, Province: p}
	}
	return out
}
