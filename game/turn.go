package game

// AdvanceTurn runs the departing faction's end-of-turn updates (income,
// bankruptcy, gravestone decay, mobility reset, tree growth), rotates the
// turn to the next faction and runs its start-of-turn updates. All induced
// actions are applied through ApplyAction as they are derived and returned
// so callers can record or replay them.
func (s *Scenario) AdvanceTurn() ([]PlannedAction, error) {
	if len(s.Factions) == 0 {
		return nil, nil
	}

	var out []PlannedAction
	run := func(f *Faction, update func(*Province) []Action) error {
		provinces := append([]int(nil), f.Provinces...)
		for _, id := range provinces {
			p := s.Provinces[id]
			if p == nil {
				continue
			}
			for _, a := range update(p) {
				if err := s.ApplyAction(a, p); err != nil {
					return err
				}
				out = append(out, PlannedAction{Action: a, Province: p})
			}
		}
		return nil
	}

	if err := run(s.Factions[s.TurnFaction], s.endOfTurnUpdate); err != nil {
		return out, err
	}

	s.TurnFaction = (s.TurnFaction + 1) % len(s.Factions)
	s.TurnCount++

	if err := run(s.Factions[s.TurnFaction], s.startOfTurnUpdate); err != nil {
		return out, err
	}
	return out, nil
}

// endOfTurnUpdate derives the closing bookkeeping for one province: apply
// income to the treasury (pinned at 0 when broke or inactive), decay
// gravestones into trees, starve soldiers into gravestones when the
// treasury hits 0, restore mobility otherwise, and spread trees onto empty
// same-faction neighbors.
func (s *Scenario) endOfTurnUpdate(p *Province) []Action {
	newResources := p.Resources + p.ComputeIncome(s)
	if newResources < 0 || !p.Active {
		newResources = 0
	}

	var actions []Action
	if newResources != p.Resources {
		actions = append(actions, Action{
			Type:          ProvinceResourceChangeAction,
			Consequence:   true,
			Province:      p.ID,
			PrevResources: p.Resources,
			NextResources: newResources,
		})
	}

	actions = append(actions, s.vegetationUpdate(p, newResources)...)
	actions = append(actions, s.treeGrowth(p)...)
	return actions
}

// startOfTurnUpdate mirrors endOfTurnUpdate for the faction about to play,
// except that no income is banked and no trees grow. The would-be balance
// still decides whether soldiers starve, so a broke province's units die
// before it can act.
func (s *Scenario) startOfTurnUpdate(p *Province) []Action {
	balance := p.Resources + p.ComputeIncome(s)
	if balance < 0 || !p.Active {
		balance = 0
	}
	return s.vegetationUpdate(p, balance)
}

func (s *Scenario) vegetationUpdate(p *Province, balance int) []Action {
	var actions []Action

	// Gravestones decay first so freshly starved soldiers stay gravestones
	// for a full turn.
	for _, t := range p.Tiles {
		if s.Units[t].Kind == UnitGravestone {
			actions = append(actions, Action{
				Type:        TileChangeAction,
				Consequence: true,
				Tile:        t,
				Prev:        UnitOnly(s.Units[t]),
				Next:        UnitOnly(NewStructure(UnitTree)),
			})
		}
	}

	for _, t := range p.Tiles {
		u := s.Units[t]
		if !u.IsSoldier() {
			continue
		}
		if balance == 0 {
			actions = append(actions, Action{
				Type:        TileChangeAction,
				Consequence: true,
				Tile:        t,
				Prev:        UnitOnly(u),
				Next:        UnitOnly(NewStructure(UnitGravestone)),
			})
		} else if !u.CanMove {
			rested := u
			rested.CanMove = true
			actions = append(actions, Action{
				Type:        TileChangeAction,
				Consequence: true,
				Tile:        t,
				Prev:        UnitOnly(u),
				Next:        UnitOnly(rested),
			})
		}
	}
	return actions
}

// treeGrowth rolls each tree's chance to spread onto adjacent empty tiles
// of the same faction, any province of it.
func (s *Scenario) treeGrowth(p *Province) []Action {
	var actions []Action
	for _, t := range p.Tiles {
		if s.Units[t].Kind != UnitTree {
			continue
		}
		for _, n := range s.Grid.Neighbors(t) {
			if n == NoTile || !s.Grid.IsLand(n) || !s.Units[n].IsEmpty() {
				continue
			}
			target := s.Provinces[s.Owner[n]]
			if target == nil || target.Faction != p.Faction {
				continue
			}
			if s.rng.Float64() < TreeGrowthChance {
				actions = append(actions, Action{
					Type:        TileChangeAction,
					Consequence: true,
					Tile:        n,
					Prev:        UnitOnly(s.Units[n]),
					Next:        UnitOnly(NewStructure(UnitTree)),
				})
			}
		}
	}
	return actions
}
