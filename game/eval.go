package game

// MaxGameTurns bounds a match; once reached the winner is decided by score.
const MaxGameTurns = 50

// NoWinner is returned by GameEnded for a draw.
const NoWinner = -1

// EstimatedIncome is the planner's cheap income figure for a whole faction:
// one per active-province tile, with tree tiles contributing nothing and
// each farm adding four on top of its tile. Soldier and tower upkeep is
// deliberately left out; armies are a means, not the position.
func EstimatedIncome(s *Scenario, faction int) int {
	income := 0
	for _, id := range s.Factions[faction].Provinces {
		p := s.Provinces[id]
		if p == nil || !p.Active {
			continue
		}
		for _, t := range p.Tiles {
			switch s.Units[t].Kind {
			case UnitTree:
				// tree cancels its own tile
			case UnitFarm:
				income += 5
			default:
				income++
			}
		}
	}
	return income
}

// IncomeRatio returns the faction's share of all factions' estimated income,
// in [0, 1]. Zero when nobody earns anything.
func IncomeRatio(s *Scenario, faction int) float64 {
	total := 0
	for i := range s.Factions {
		total += EstimatedIncome(s, i)
	}
	if total <= 0 {
		return 0
	}
	return float64(EstimatedIncome(s, faction)) / float64(total)
}

// Score values a faction for the turn-limit endgame: active tiles plus a
// tenth of banked resources.
func Score(s *Scenario, faction int) float64 {
	tiles, resources := 0, 0
	for _, id := range s.Factions[faction].Provinces {
		p := s.Provinces[id]
		if p == nil || !p.Active {
			continue
		}
		tiles += len(p.Tiles)
		resources += p.Resources
	}
	return float64(tiles) + float64(resources)/10
}

// ActiveFactions lists the factions still holding at least one active
// province.
func ActiveFactions(s *Scenario) []int {
	var out []int
	for i, f := range s.Factions {
		for _, id := range f.Provinces {
			if p := s.Provinces[id]; p != nil && p.Active {
				out = append(out, i)
				break
			}
		}
	}
	return out
}

// GameEnded reports whether the match is over and who won. A match ends
// when at most one faction keeps an active province, or at the turn limit,
// where the best score wins and scores within half a point are a draw.
func GameEnded(s *Scenario) (bool, int) {
	if s.TurnCount >= MaxGameTurns {
		best, second := NoWinner, NoWinner
		for i := range s.Factions {
			if best == NoWinner || Score(s, i) > Score(s, best) {
				second = best
				best = i
			} else if second == NoWinner || Score(s, i) > Score(s, second) {
				second = i
			}
		}
		if best == NoWinner {
			return true, NoWinner
		}
		if second != NoWinner && Score(s, best)-Score(s, second) < 0.5 {
			return true, NoWinner
		}
		return true, best
	}

	active := ActiveFactions(s)
	switch len(active) {
	case 0:
		return true, NoWinner
	case 1:
		return true, active[0]
	}
	return false, NoWinner
}
