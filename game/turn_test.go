package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

/*
Turn rotation tests.
- the departing faction banks income, the arriving one does not
- a treasury pinned at zero starves soldiers into gravestones
- gravestones decay into trees one turn later
- the arriving faction's soldiers get their mobility back
- turn updates are deterministic per seed
*/

func TestAdvanceTurnIncome(t *testing.T) {
	s := twoFactionScenario(t, []int{0, 4}, []int{14, 15}, 0, 3)
	s.Units[0] = NewStructure(UnitCapital)

	induced, err := s.AdvanceTurn()
	require.NoError(t, err)
	require.NotEmpty(t, induced)
	require.Equal(t, 2, s.Provinces[0].Resources, "two tiles and a free capital yield two")
	require.Equal(t, 3, s.Provinces[1].Resources, "the arriving faction banks nothing yet")
	require.Equal(t, 1, s.TurnFaction)
	require.Equal(t, 1, s.TurnCount)
}

func TestAdvanceTurnStarvation(t *testing.T) {
	s := twoFactionScenario(t, []int{0, 4}, []int{14, 15}, 1, 0)
	s.Units[4] = Unit{Kind: UnitSoldier, Tier: 2, CanMove: true}

	_, err := s.AdvanceTurn()
	require.NoError(t, err)
	require.Equal(t, 0, s.Provinces[0].Resources, "a spearman's upkeep ruins the province")
	require.Equal(t, UnitGravestone, s.Units[4].Kind, "unpaid soldiers die on the spot")
}

func TestAdvanceTurnGravestoneDecay(t *testing.T) {
	s := twoFactionScenario(t, []int{0, 4}, []int{14, 15}, 5, 0)
	s.Units[4] = NewStructure(UnitGravestone)

	_, err := s.AdvanceTurn()
	require.NoError(t, err)
	require.Equal(t, UnitTree, s.Units[4].Kind)
	require.Equal(t, 6, s.Provinces[0].Resources, "the gravestone still charged upkeep this turn")
}

func TestAdvanceTurnMobility(t *testing.T) {
	s := twoFactionScenario(t, []int{0, 4}, []int{14, 15}, 0, 10)
	s.Units[14] = NewSoldier(1)

	_, err := s.AdvanceTurn()
	require.NoError(t, err)
	require.True(t, s.Units[14].CanMove, "the arriving faction's soldiers wake up")
	require.Equal(t, 10, s.Provinces[1].Resources)
}

func TestAdvanceTurnArrivalStarvation(t *testing.T) {
	s := twoFactionScenario(t, []int{0, 4}, []int{14, 15}, 0, 0)
	s.Units[14] = Unit{Kind: UnitSoldier, Tier: 2, CanMove: true}

	_, err := s.AdvanceTurn()
	require.NoError(t, err)
	require.Equal(t, UnitGravestone, s.Units[14].Kind,
		"a province that cannot pay loses its soldiers before it acts")
}

func TestAdvanceTurnDeterminism(t *testing.T) {
	build := func() *Scenario {
		s := twoFactionScenario(t, []int{0, 4, 8, 12}, []int{14, 15}, 20, 20)
		s.Units[4] = NewStructure(UnitTree)
		s.Units[8] = NewStructure(UnitTree)
		return s
	}
	a, b := build(), build()
	for i := 0; i < 8; i++ {
		_, err := a.AdvanceTurn()
		require.NoError(t, err)
		_, err = b.AdvanceTurn()
		require.NoError(t, err)
	}
	require.Equal(t, captureState(a), captureState(b),
		"equal seeds grow equal forests")
}
