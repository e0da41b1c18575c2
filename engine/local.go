package engine

import (
	"github.com/rs/zerolog/log"

	"antiyoy/agent"
	"antiyoy/game"
)

// Engine drives one match: it asks each faction's policy for a turn plan,
// applies it action by action, advances the turn and records everything
// into a replay. The engine is the only caller of ApplyAction on the live
// scenario.
type Engine struct {
	Scenario *game.Scenario
	Policies []agent.Policy
	Replay   *Replay
}

// LocalEngine wires a scenario to one policy per faction.
func LocalEngine(s *game.Scenario, policies []agent.Policy) *Engine {
	if len(policies) != len(s.Factions) {
		panic("number of policies does not match number of factions")
	}
	if len(policies) < 2 {
		panic("need at least two policies")
	}
	return &Engine{
		Scenario: s,
		Policies: policies,
		Replay:   NewReplay(s),
	}
}

// Run plays the match until it ends and returns the winning faction index,
// game.NoWinner for a draw.
func (e *Engine) Run() int {
	log.Info().
		Str("scenario", e.Scenario.Name).
		Int("factions", len(e.Scenario.Factions)).
		Msg("match started")

	for {
		if ended, winner := game.GameEnded(e.Scenario); ended {
			log.Info().
				Int("winner", winner).
				Int("turns", e.Scenario.TurnCount).
				Str("replay", e.Replay.ID.String()).
				Msg("match over")
			return winner
		}

		faction := e.Scenario.TurnFaction
		policy := e.Policies[faction]
		plan := policy.PlayTurn(e.Scenario, faction)

		played := make([]RecordedAction, 0, len(plan))
		for _, pa := range plan {
			if err := e.Scenario.ApplyAction(pa.Action, pa.Province); err != nil {
				// Policy handed us something the engine rejects. Drop the
				// rest of its plan; the turn still advances.
				log.Warn().
					Err(err).
					Int("faction", faction).
					Str("policy", policy.Name()).
					Msg("rejected policy action")
				break
			}
			payer := game.NoProvince
			if pa.Province != nil {
				payer = pa.Province.ID
			}
			played = append(played, RecordedAction{Action: pa.Action, Province: payer})
		}

		if _, err := e.Scenario.AdvanceTurn(); err != nil {
			log.Error().Err(err).Msg("turn advance failed")
			return game.NoWinner
		}
		e.Replay.Record(faction, played)
	}
}
