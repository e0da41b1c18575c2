package agent

import (
	"github.com/rs/zerolog/log"

	"antiyoy/game"
)

// RuleBased is a simple scripted opponent: it marches every soldier toward
// the nearest frontier or tree tile and then spends the treasury on cheap
// soldiers along the frontier. It avoids stacking soldiers so its economy
// does not collapse under upkeep.
//
// Turns are simulated on a clone so intermediate results (captures, merges,
// chopped trees) feed later decisions, then translated back for the engine
// to apply.
type RuleBased struct{}

func (RuleBased) Name() string { return "rule-based" }

func (rb RuleBased) PlayTurn(s *game.Scenario, faction int) []game.PlannedAction {
	cloner := game.NewScenarioCloner(s)
	clone := cloner.Clone()
	var plan []game.PlannedAction

	provinces := append([]int(nil), clone.Factions[faction].Provinces...)
	for _, id := range provinces {
		p := clone.Provinces[id]
		if p == nil || !p.Active {
			continue
		}
		plan = append(plan, rb.moveSoldiers(clone, p)...)
		plan = append(plan, rb.buildSoldiers(clone, p)...)
	}
	return cloner.TranslateSequence(plan)
}

func (rb RuleBased) moveSoldiers(clone *game.Scenario, p *game.Province) []game.PlannedAction {
	var plan []game.PlannedAction

	soldiers := movableSoldiers(clone, p)
	for _, from := range soldiers {
		if !clone.Units[from].IsSoldier() || !clone.Units[from].CanMove {
			continue
		}
		targets := targetTiles(clone, p)
		if len(targets) == 0 {
			break
		}
		avoid := soldierTiles(clone, p)

		dest := bestStep(clone, from, targets, avoid)
		if dest < 0 {
			continue
		}
		fromRow, fromCol := clone.Grid.RowCol(from)
		toRow, toCol := clone.Grid.RowCol(dest)
		actions, err := clone.MoveUnit(fromRow, fromCol, toRow, toCol)
		if err != nil {
			continue
		}
		if err := clone.ApplySequence(actions, p); err != nil {
			log.Warn().Err(err).Msg("rule-based move failed to apply")
			continue
		}
		for _, a := range actions {
			plan = append(plan, game.PlannedAction{Action: a, Province: p})
		}
	}
	return plan
}

func (rb RuleBased) buildSoldiers(clone *game.Scenario, p *game.Province) []game.PlannedAction {
	var plan []game.PlannedAction

	for p.Resources >= 10 {
		built := false
		for _, tile := range sortedTiles(targetTiles(clone, p)) {
			row, col := clone.Grid.RowCol(tile)
			buildable, err := clone.BuildableUnits(row, col, p)
			if err != nil {
				continue
			}
			var soldier game.Unit
			for _, u := range buildable {
				if u.IsSoldier() {
					soldier = u
					break
				}
			}
			if soldier.IsEmpty() {
				continue
			}
			actions, err := clone.BuildUnitOnTile(row, col, soldier, p)
			if err != nil {
				continue
			}
			if err := clone.ApplySequence(actions, p); err != nil {
				log.Warn().Err(err).Msg("rule-based build failed to apply")
				continue
			}
			for _, a := range actions {
				plan = append(plan, game.PlannedAction{Action: a, Province: p})
			}
			built = true
			break
		}
		if !built {
			break
		}
	}
	return plan
}
