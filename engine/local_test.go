package engine

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"antiyoy/agent"
	"antiyoy/game"
)

/*
Engine tests.
- a full match between scripted policies terminates and is deterministic
- the recorded replay reproduces the final state on a fresh scenario
- mismatched wiring panics at construction
*/

var mapConfig = game.GenerateConfig{Dimension: 8, LandTiles: 24, ProvinceSize: 3, Seed: 5}

func newMatch(t *testing.T) (*game.Scenario, []agent.Policy) {
	t.Helper()
	s, err := game.GenerateScenario(mapConfig, []string{"red", "blue"})
	require.NoError(t, err)
	return s, []agent.Policy{agent.RuleBased{}, agent.Passive{}}
}

// fingerprint reduces a scenario to a comparable summary.
func fingerprint(s *game.Scenario) map[string]any {
	provinces := make(map[int][]int)
	resources := make(map[int]int)
	for id, p := range s.Provinces {
		tiles := append([]int(nil), p.Tiles...)
		sort.Ints(tiles)
		provinces[id] = tiles
		resources[id] = p.Resources
	}
	return map[string]any{
		"owner":     append([]int(nil), s.Owner...),
		"units":     append([]game.Unit(nil), s.Units...),
		"provinces": provinces,
		"resources": resources,
		"turn":      s.TurnCount,
	}
}

func TestEngineRunsFullMatch(t *testing.T) {
	s, policies := newMatch(t)
	e := LocalEngine(s, policies)

	winner := e.Run()
	require.LessOrEqual(t, s.TurnCount, game.MaxGameTurns, "the turn limit bounds every match")
	require.NotEmpty(t, e.Replay.Turns)
	require.Equal(t, 0, winner, "an acting policy beats one that always passes")
}

func TestEngineDeterminism(t *testing.T) {
	s1, p1 := newMatch(t)
	s2, p2 := newMatch(t)

	w1 := LocalEngine(s1, p1).Run()
	w2 := LocalEngine(s2, p2).Run()

	require.Equal(t, w1, w2)
	require.Equal(t, fingerprint(s1), fingerprint(s2), "same seed, same policies, same match")
}

func TestReplayReproducesMatch(t *testing.T) {
	s, policies := newMatch(t)
	e := LocalEngine(s, policies)
	e.Run()

	fresh, err := game.GenerateScenario(mapConfig, []string{"red", "blue"})
	require.NoError(t, err)
	require.NoError(t, e.Replay.Apply(fresh))
	require.Equal(t, fingerprint(s), fingerprint(fresh),
		"replaying the record rebuilds the final state")
	require.Equal(t, mapConfig.Seed, e.Replay.Seed)
}

func TestLocalEnginePanics(t *testing.T) {
	s, _ := newMatch(t)
	require.Panics(t, func() { LocalEngine(s, []agent.Policy{agent.Passive{}}) },
		"one policy for two factions")
}
