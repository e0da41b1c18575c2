package game

import "golang.org/x/exp/rand"

// Clone returns a fully independent copy of the scenario: same grid (static,
// safely shared), copied tile arenas, deep-copied provinces and factions,
// and a random source duplicated at its current position so the clone's
// future rolls match what the original would have rolled.
func (s *Scenario) Clone() *Scenario {
	c := &Scenario{
		Name:           s.Name,
		Grid:           s.Grid,
		Owner:          append([]int(nil), s.Owner...),
		Units:          append([]Unit(nil), s.Units...),
		Provinces:      make(map[int]*Province, len(s.Provinces)),
		Factions:       make([]*Faction, len(s.Factions)),
		TurnFaction:    s.TurnFaction,
		TurnCount:      s.TurnCount,
		Seed:           s.Seed,
		nextProvinceID: s.nextProvinceID,
		version:        s.version,
	}
	for id, p := range s.Provinces {
		c.Provinces[id] = p.clone()
	}
	for i, f := range s.Factions {
		c.Factions[i] = f.clone()
	}
	c.src = &rand.PCGSource{}
	if state, err := s.src.MarshalBinary(); err == nil {
		// UnmarshalBinary only fails on a corrupt payload, which a fresh
		// MarshalBinary cannot produce.
		_ = c.src.UnmarshalBinary(state)
	}
	c.rng = rand.New(c.src)
	return c
}

// ScenarioCloner hands a planner an isolated copy of a scenario and
// translates plans derived on the copy back into the original's context.
// Province IDs are stable across the copy, so translation resolves each
// action's province against the original registry; provinces first created
// inside the copy (by a split the plan itself performs) have no original
// counterpart yet and translate to nil, their create actions carrying
// everything needed to apply them.
type ScenarioCloner struct {
	original *Scenario
	cloned   *Scenario
}

// NewScenarioCloner wraps the scenario to be planned against.
func NewScenarioCloner(original *Scenario) *ScenarioCloner {
	return &ScenarioCloner{original: original}
}

// Original returns the scenario the cloner was built from.
func (c *ScenarioCloner) Original() *Scenario {
	return c.original
}

// Clone returns the working copy, creating it on first use.
func (c *ScenarioCloner) Clone() *Scenario {
	if c.cloned == nil {
		c.cloned = c.original.Clone()
	}
	return c.cloned
}

// OriginalProvince resolves a province ID against the original scenario.
func (c *ScenarioCloner) OriginalProvince(id int) *Province {
	if id == NoProvince {
		return nil
	}
	return c.original.Provinces[id]
}

// TranslateSequence maps a plan derived on the clone back to the original
// scenario. Actions are value data keyed by stable IDs and carry over
// unchanged; the paired provinces are re-resolved against the original. A
// plan referencing a faction the original does not have translates to an
// empty plan.
func (c *ScenarioCloner) TranslateSequence(plan []PlannedAction) []PlannedAction {
	out := make([]PlannedAction, 0, len(plan))
	for _, pa := range plan {
		a := pa.Action
		switch a.Type {
		case ProvinceCreateAction, ProvinceDeleteAction:
			if a.Snapshot.Faction < 0 || a.Snapshot.Faction >= len(c.original.Factions) {
				return nil
			}
		}
		translated := PlannedAction{Action: a}
		if pa.Province != nil {
			translated.Province = c.OriginalProvince(pa.Province.ID)
		}
		out = append(out, translated)
	}
	return out
}
