package searcher

import (
	"math"

	"github.com/rs/zerolog/log"

	"antiyoy/game"
)

const (
	// DefaultDepth is how many faction turns ahead the planner looks.
	DefaultDepth = 2

	// DefaultTurnActions caps the number of decisions (moves and builds)
	// considered within a single turn branch. Without a cap a turn with n
	// soldiers and a fat treasury branches into roughly 6^n continuations
	// per decision, so the raw space is on the order of 6^40 for a midgame
	// position; the cap plus the single-next-unit ordering below cut that
	// to something a depth-2 search walks in milliseconds.
	DefaultTurnActions = 4
)

type Option func(*Minimax)

// WithDepth sets the lookahead in faction turns.
func WithDepth(depth int) Option {
	return func(m *Minimax) {
		if depth > 0 {
			m.depth = depth
		}
	}
}

// WithTurnActions sets the per-turn decision cap.
func WithTurnActions(n int) Option {
	return func(m *Minimax) {
		if n > 0 {
			m.turnActions = n
		}
	}
}

// WithMetrics makes the planner record search counters.
func WithMetrics() Option {
	return func(m *Minimax) {
		m.metrics = NewCollector()
	}
}

// Minimax plans a faction's whole turn with depth-bounded alpha-beta search
// over scenario clones. The live scenario is never touched: planning runs
// on an isolated clone and the winning action sequence is translated back
// before being returned.
type Minimax struct {
	depth       int
	turnActions int
	metrics     Collector
	ordering    orderingCache
}

func NewMinimax(options ...Option) *Minimax {
	m := &Minimax{
		depth:       DefaultDepth,
		turnActions: DefaultTurnActions,
		metrics:     NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	return m
}

// PlanTurn returns the best full-turn action sequence for the faction, in
// live-scenario terms, ready to be applied in order. An empty plan means
// pass.
func (m *Minimax) PlanTurn(s *game.Scenario, faction int) []game.PlannedAction {
	m.metrics.Start(m.depth)

	cloner := game.NewScenarioCloner(s)
	value, plan := m.search(cloner.Clone(), faction, m.depth, math.Inf(-1), math.Inf(1))

	metric := m.metrics.Complete()
	log.Debug().
		Int("faction", faction).
		Float64("value", value).
		Int("actions", len(plan)).
		Int64("nodes", metric.Nodes).
		Int64("branches", metric.Branches).
		Int64("pruned", metric.Pruned).
		Dur("took", metric.Duration).
		Msg("turn planned")

	return cloner.TranslateSequence(plan)
}

// search evaluates the scenario for the maximizer faction. The acting
// faction's turn branches are enumerated on s itself with apply/undo; each
// surviving branch advances the turn on a private clone before recursing,
// since turn updates consume randomness and cannot be undone in place.
func (m *Minimax) search(s *game.Scenario, maximizer, depth int, alpha, beta float64) (float64, []game.PlannedAction) {
	m.metrics.AddNode()

	if depth <= 0 || len(game.ActiveFactions(s)) <= 1 {
		return game.IncomeRatio(s, maximizer), nil
	}

	maximizing := s.TurnFaction == maximizer
	best := math.Inf(1)
	if maximizing {
		best = math.Inf(-1)
	}
	var bestPlan []game.PlannedAction

	m.forEachBranch(s, func(branch []game.PlannedAction) bool {
		m.metrics.AddBranch()

		child := s.Clone()
		if _, err := child.AdvanceTurn(); err != nil {
			return true
		}
		value, _ := m.search(child, maximizer, depth-1, alpha, beta)

		if maximizing {
			if value > best {
				best = value
				bestPlan = append([]game.PlannedAction(nil), branch...)
			}
			if best > alpha {
				alpha = best
			}
		} else {
			if value < best {
				best = value
				bestPlan = append([]game.PlannedAction(nil), branch...)
			}
			if best < beta {
				beta = best
			}
		}

		if alpha >= beta {
			m.metrics.AddPruned()
			return false
		}
		return true
	})

	return best, bestPlan
}
