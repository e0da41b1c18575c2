package agent

import "antiyoy/game"

// Policy decides a faction's whole turn. PlayTurn must not mutate the live
// scenario: implementations that need to simulate their own actions work on
// a clone and translate the result back. The returned actions are applied
// by the engine in list order.
type Policy interface {
	Name() string
	PlayTurn(s *game.Scenario, faction int) []game.PlannedAction
}

// Passive is the do-nothing baseline; it passes every turn.
type Passive struct{}

func (Passive) Name() string { return "passive" }

func (Passive) PlayTurn(*game.Scenario, int) []game.PlannedAction {
	return nil
}
