package game

import (
	"fmt"

	"antiyoy/utils"
)

// PlannedAction pairs an action with the province paying (or receiving) its
// cost. Province is nil for actions that move no money.
type PlannedAction struct {
	Action   Action
	Province *Province
}

// ApplyAction is the only scenario mutator. It applies exactly the state
// slices the action names, keeps province tile-membership lists consistent
// with per-tile ownership, and moves money on the given province by the
// action's signed income/cost. It never derives consequences; those arrive
// as their own actions.
func (s *Scenario) ApplyAction(a Action, p *Province) error {
	switch a.Type {
	case MoveUnitAction:
		if err := s.checkTile(a.From); err != nil {
			return err
		}
		if err := s.checkTile(a.To); err != nil {
			return err
		}
		s.applyTileState(a.From, a.FromNext)
		s.applyTileState(a.To, a.ToNext)
		if a.Income != 0 {
			if p == nil {
				return fmt.Errorf("%w: move income of %d with no province to credit", ErrInvariantViolation, a.Income)
			}
			p.Resources += a.Income
		}

	case TileChangeAction:
		if err := s.checkTile(a.Tile); err != nil {
			return err
		}
		s.applyTileState(a.Tile, a.Next)
		if a.Cost != 0 {
			if p == nil {
				return fmt.Errorf("%w: tile change costing %d with no province to charge", ErrInvariantViolation, a.Cost)
			}
			p.Resources -= a.Cost
		}

	case ProvinceCreateAction:
		snap := a.Snapshot
		if snap.Faction < 0 || snap.Faction >= len(s.Factions) {
			return fmt.Errorf("%w: province %d references faction %d", ErrInvariantViolation, snap.ID, snap.Faction)
		}
		if s.Provinces[snap.ID] != nil {
			return fmt.Errorf("%w: province %d already exists", ErrInvariantViolation, snap.ID)
		}
		s.Provinces[snap.ID] = &Province{
			ID:        snap.ID,
			Faction:   snap.Faction,
			Tiles:     append([]int(nil), snap.Tiles...),
			Resources: snap.Resources,
			Active:    snap.Active,
		}
		f := s.Factions[snap.Faction]
		if utils.FindIndex(f.Provinces, snap.ID) < 0 {
			f.Provinces = append(f.Provinces, snap.ID)
		}
		if snap.ID >= s.nextProvinceID {
			s.nextProvinceID = snap.ID + 1
		}

	case ProvinceDeleteAction:
		id := a.Snapshot.ID
		prov := s.Provinces[id]
		if prov == nil {
			return fmt.Errorf("%w: deleting unknown province %d", ErrInvariantViolation, id)
		}
		delete(s.Provinces, id)
		f := s.Factions[prov.Faction]
		if i := utils.FindIndex(f.Provinces, id); i >= 0 {
			f.Provinces = append(f.Provinces[:i], f.Provinces[i+1:]...)
		}

	case ProvinceResourceChangeAction:
		prov := s.Provinces[a.Province]
		if prov == nil {
			return fmt.Errorf("%w: resource change for unknown province %d", ErrInvariantViolation, a.Province)
		}
		prov.Resources = a.NextResources

	case ProvinceActivationChangeAction:
		prov := s.Provinces[a.Province]
		if prov == nil {
			return fmt.Errorf("%w: activation change for unknown province %d", ErrInvariantViolation, a.Province)
		}
		prov.Active = a.NextActive

	default:
		return fmt.Errorf("%w: unknown action type %d", ErrInvariantViolation, a.Type)
	}

	s.version++
	return nil
}

// ApplySequence applies a derived action sequence in order, charging the
// given province. It stops at the first failure.
func (s *Scenario) ApplySequence(actions []Action, p *Province) error {
	for _, a := range actions {
		if err := s.ApplyAction(a, p); err != nil {
			return err
		}
	}
	return nil
}

// applyTileState writes the fields the delta names. Ownership changes keep
// both affected provinces' tile lists in sync; missing provinces are
// tolerated because inverse replays reorder tile changes relative to the
// province create that completes them.
func (s *Scenario) applyTileState(tile int, st TileState) {
	if st.HasUnit {
		s.Units[tile] = st.Unit
	}
	if st.HasOwner {
		s.setOwner(tile, st.Owner)
	}
}

func (s *Scenario) setOwner(tile, owner int) {
	old := s.Owner[tile]
	if old == owner {
		return
	}
	if old != NoProvince {
		if q := s.Provinces[old]; q != nil {
			q.detach(tile)
		}
	}
	if owner != NoProvince {
		if q := s.Provinces[owner]; q != nil {
			q.attach(tile)
		}
	}
	s.Owner[tile] = owner
}
