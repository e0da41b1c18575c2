package engine

import (
	"github.com/google/uuid"

	"antiyoy/game"
)

// Replay is the full record of one match: the scenario seed plus every
// policy action applied, turn by turn. Actions are pure data keyed by tile
// indexes and province IDs, so replaying them against a scenario generated
// from the same seed reproduces the match exactly; turn-advance bookkeeping
// is not stored because the scenario re-derives it deterministically.
type Replay struct {
	ID       uuid.UUID
	Scenario string
	Seed     uint64
	Turns    []TurnRecord
}

// RecordedAction pairs an action with the ID of the province that paid for
// it, game.NoProvince if none did.
type RecordedAction struct {
	Action   game.Action
	Province int
}

// TurnRecord holds the actions one faction's policy played in its turn.
type TurnRecord struct {
	Faction int
	Played  []RecordedAction
}

func NewReplay(s *game.Scenario) *Replay {
	return &Replay{
		ID:       uuid.New(),
		Scenario: s.Name,
		Seed:     s.Seed,
	}
}

func (r *Replay) Record(faction int, played []RecordedAction) {
	r.Turns = append(r.Turns, TurnRecord{Faction: faction, Played: played})
}

// Apply replays the recorded actions onto a scenario in record order. The
// scenario must be in the same state the replay started from.
func (r *Replay) Apply(s *game.Scenario) error {
	for _, turn := range r.Turns {
		for _, ra := range turn.Played {
			if err := s.ApplyAction(ra.Action, s.Province(ra.Province)); err != nil {
				return err
			}
		}
		if _, err := s.AdvanceTurn(); err != nil {
			return err
		}
	}
	return nil
}
