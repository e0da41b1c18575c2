package agent

import (
	"antiyoy/game"
	"antiyoy/searcher"
)

// MinimaxPolicy plans turns with the alpha-beta searcher.
type MinimaxPolicy struct {
	name    string
	planner *searcher.Minimax
}

func NewMinimaxPolicy(name string, options ...searcher.Option) *MinimaxPolicy {
	if name == "" {
		name = "minimax"
	}
	return &MinimaxPolicy{name: name, planner: searcher.NewMinimax(options...)}
}

func (m *MinimaxPolicy) Name() string { return m.name }

func (m *MinimaxPolicy) PlayTurn(s *game.Scenario, faction int) []game.PlannedAction {
	return m.planner.PlanTurn(s, faction)
}
