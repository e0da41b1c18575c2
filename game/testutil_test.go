package game

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

// flatGrid returns an all-land grid for tests that do not care about water.
func flatGrid(rows, cols int) *Grid {
	g := NewGrid(rows, cols)
	for i := range g.Water {
		g.Water[i] = false
	}
	return g
}

// twoFactionScenario builds a 4x4 all-land scenario with a red and a blue
// province over the given tile indexes.
func twoFactionScenario(t *testing.T, redTiles, blueTiles []int, redRes, blueRes int) *Scenario {
	t.Helper()
	s := NewScenario("test", flatGrid(4, 4),
		[]*Faction{NewFaction("red"), NewFaction("blue")}, 42)
	if len(redTiles) > 0 {
		s.RegisterProvince(NewProvince(s.reserveProvinceID(), 0, redTiles, redRes))
	}
	if len(blueTiles) > 0 {
		s.RegisterProvince(NewProvince(s.reserveProvinceID(), 1, blueTiles, blueRes))
	}
	return s
}

// provinceState is a comparable view of a province; tile sets are sorted
// because membership order is not part of the game state.
type provinceState struct {
	faction   int
	tiles     []int
	resources int
	active    bool
}

type scenarioState struct {
	owner     []int
	units     []Unit
	provinces map[int]provinceState
	factions  map[string][]int
	turn      int
}

func captureState(s *Scenario) scenarioState {
	snap := scenarioState{
		owner:     append([]int(nil), s.Owner...),
		units:     append([]Unit(nil), s.Units...),
		provinces: make(map[int]provinceState, len(s.Provinces)),
		factions:  make(map[string][]int, len(s.Factions)),
		turn:      s.TurnFaction,
	}
	for id, p := range s.Provinces {
		tiles := append([]int(nil), p.Tiles...)
		sort.Ints(tiles)
		snap.provinces[id] = provinceState{
			faction:   p.Faction,
			tiles:     tiles,
			resources: p.Resources,
			active:    p.Active,
		}
	}
	for _, f := range s.Factions {
		ids := append([]int(nil), f.Provinces...)
		sort.Ints(ids)
		snap.factions[f.Name] = ids
	}
	return snap
}

// mustApply applies a derived sequence and fails the test on any error.
func mustApply(t *testing.T, s *Scenario, actions []Action, p *Province) {
	t.Helper()
	for _, a := range actions {
		require.NoError(t, s.ApplyAction(a, p), "applying %s", a)
	}
}
