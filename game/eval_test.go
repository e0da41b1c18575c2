package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEstimatedIncome(t *testing.T) {
	s := twoFactionScenario(t, []int{0, 4, 8}, []int{14, 15}, 0, 0)
	s.Units[0] = NewStructure(UnitCapital)
	s.Units[4] = NewStructure(UnitTree)
	s.Units[8] = NewStructure(UnitFarm)

	require.Equal(t, 6, EstimatedIncome(s, 0),
		"capital tile counts one, the tree cancels its tile, the farm is worth five")
	require.Equal(t, 2, EstimatedIncome(s, 1))
	require.InDelta(t, 0.75, IncomeRatio(s, 0), 1e-9)

	s.Provinces[0].Active = false
	require.Equal(t, 0, EstimatedIncome(s, 0), "inactive provinces earn nothing")
}

func TestGameEnded(t *testing.T) {
	t.Run("running game", func(t *testing.T) {
		s := twoFactionScenario(t, []int{0, 4}, []int{14, 15}, 0, 0)
		over, winner := GameEnded(s)
		require.False(t, over)
		require.Equal(t, NoWinner, winner)
	})

	t.Run("one faction standing", func(t *testing.T) {
		s := twoFactionScenario(t, []int{0, 4}, []int{14}, 0, 0)
		over, winner := GameEnded(s)
		require.True(t, over, "a lone inactive tile is no longer in the game")
		require.Equal(t, 0, winner)
	})

	t.Run("turn limit scores the board", func(t *testing.T) {
		s := twoFactionScenario(t, []int{0, 4, 8}, []int{14, 15}, 0, 0)
		s.TurnCount = MaxGameTurns
		over, winner := GameEnded(s)
		require.True(t, over)
		require.Equal(t, 0, winner, "three tiles beat two")
	})

	t.Run("close scores draw", func(t *testing.T) {
		s := twoFactionScenario(t, []int{0, 4}, []int{14, 15}, 4, 0)
		s.TurnCount = MaxGameTurns
		over, winner := GameEnded(s)
		require.True(t, over)
		require.Equal(t, NoWinner, winner, "a four-resource lead is within the draw margin")
	})
}

func TestActiveFactions(t *testing.T) {
	s := twoFactionScenario(t, []int{0, 4}, []int{14}, 0, 0)
	require.Equal(t, []int{0}, ActiveFactions(s))
}
