package game

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

/*
Movement and build tests on a 4x4 all-land map.
- the movement budget only spends inside the mover's own province
- the filtered range honors merge caps, defense ratings and the ban on
  entering sibling provinces
- moves and builds derive complete, applicable action sequences with the
  right costs, merges and claims
*/

func TestMovementRange(t *testing.T) {
	t.Run("expands through own province only", func(t *testing.T) {
		s := twoFactionScenario(t, []int{0, 4, 8, 12}, nil, 0, 0)
		got, err := s.MovementRange(0, 0)
		require.NoError(t, err)
		require.Equal(t, []int{0, 1, 4, 5, 8, 9, 12, 13}, got,
			"own tiles are crossed, everything else is endpoint only")
	})

	t.Run("water is impassable", func(t *testing.T) {
		s := twoFactionScenario(t, []int{0, 4, 8, 12}, nil, 0, 0)
		s.Grid.Water[5] = true
		got, err := s.MovementRange(0, 0)
		require.NoError(t, err)
		require.NotContains(t, got, 5)
	})

	t.Run("budget caps the walk", func(t *testing.T) {
		grid := flatGrid(6, 1)
		s := NewScenario("strip", grid, []*Faction{NewFaction("red")}, 1)
		s.RegisterProvince(NewProvince(0, 0, []int{0, 1, 2, 3, 4, 5}, 0))
		got, err := s.MovementRange(0, 0)
		require.NoError(t, err)
		require.Equal(t, []int{0, 1, 2, 3, 4}, got, "tile five sits one step past the budget")
	})

	t.Run("rejects off-map coordinates", func(t *testing.T) {
		s := twoFactionScenario(t, []int{0}, nil, 0, 0)
		_, err := s.MovementRange(9, 0)
		require.ErrorIs(t, err, ErrInvalidCoordinate)
	})
}

func TestMovementRangeFiltered(t *testing.T) {
	t.Run("requires a soldier at the origin", func(t *testing.T) {
		s := twoFactionScenario(t, []int{0, 4}, nil, 0, 0)
		_, err := s.MovementRangeFiltered(0, 0)
		require.ErrorIs(t, err, ErrIllegalMove)
	})

	t.Run("merge respects the tier cap", func(t *testing.T) {
		s := twoFactionScenario(t, []int{0, 4, 8}, nil, 0, 0)
		s.Units[0] = Unit{Kind: UnitSoldier, Tier: 1, CanMove: true}
		s.Units[4] = NewSoldier(3)
		got, err := s.MovementRangeFiltered(0, 0)
		require.NoError(t, err)
		require.Contains(t, got, 4, "tiers one and three merge into a baron")

		s.Units[4] = NewSoldier(4)
		got, err = s.MovementRangeFiltered(0, 0)
		require.NoError(t, err)
		require.NotContains(t, got, 4, "a baron cannot grow any further")
	})

	t.Run("sibling province tiles are off limits", func(t *testing.T) {
		s := twoFactionScenario(t, []int{0, 4}, []int{14, 15}, 0, 0)
		s.RegisterProvince(NewProvince(s.reserveProvinceID(), 0, []int{1, 2}, 0))
		s.Units[4] = Unit{Kind: UnitSoldier, Tier: 1, CanMove: true}
		got, err := s.MovementRangeFiltered(1, 0)
		require.NoError(t, err)
		require.NotContains(t, got, 1, "tiles of another own province are unreachable")
		require.Contains(t, got, 5)
	})

	t.Run("attack must beat the defense rating", func(t *testing.T) {
		s := twoFactionScenario(t, []int{0, 4, 8}, []int{5, 9}, 0, 0)
		s.Units[5] = NewStructure(UnitTower1)
		s.Units[4] = Unit{Kind: UnitSoldier, Tier: 2, CanMove: true}

		got, err := s.MovementRangeFiltered(1, 0)
		require.NoError(t, err)
		require.NotContains(t, got, 5, "a spearman ties the tower and loses")
		require.NotContains(t, got, 9, "the tower covers its neighbor too")

		s.Units[4] = Unit{Kind: UnitSoldier, Tier: 3, CanMove: true}
		got, err = s.MovementRangeFiltered(1, 0)
		require.NoError(t, err)
		require.Contains(t, got, 5)
		require.Contains(t, got, 9)
	})
}

func TestMoveUnit(t *testing.T) {
	t.Run("chopping an own tree pays out", func(t *testing.T) {
		s := twoFactionScenario(t, []int{0, 4}, nil, 0, 0)
		red := s.Provinces[0]
		s.Units[0] = Unit{Kind: UnitSoldier, Tier: 1, CanMove: true}
		s.Units[4] = NewStructure(UnitTree)

		plan, err := s.MoveUnit(0, 0, 1, 0)
		require.NoError(t, err)
		require.Equal(t, TreeChopIncome, plan[0].Income)
		mustApply(t, s, plan, red)
		require.Equal(t, TreeChopIncome, red.Resources)
		require.Equal(t, UnitSoldier, s.Units[4].Kind)
		require.True(t, s.Units[0].IsEmpty())
	})

	t.Run("merging soldiers sums tiers", func(t *testing.T) {
		s := twoFactionScenario(t, []int{0, 4}, nil, 0, 0)
		s.Units[0] = Unit{Kind: UnitSoldier, Tier: 1, CanMove: true}
		s.Units[4] = NewSoldier(2)

		plan, err := s.MoveUnit(0, 0, 1, 0)
		require.NoError(t, err)
		mustApply(t, s, plan, s.Provinces[0])
		require.Equal(t, 3, s.Units[4].Tier)
		require.False(t, s.Units[4].CanMove, "a merged soldier has moved for the turn")
	})

	t.Run("spent soldiers stay put", func(t *testing.T) {
		s := twoFactionScenario(t, []int{0, 4}, nil, 0, 0)
		s.Units[0] = NewSoldier(1)
		_, err := s.MoveUnit(0, 0, 1, 0)
		require.ErrorIs(t, err, ErrIllegalMove)
	})

	t.Run("inactive provinces cannot act", func(t *testing.T) {
		s := twoFactionScenario(t, []int{0}, nil, 0, 0)
		s.Units[0] = Unit{Kind: UnitSoldier, Tier: 1, CanMove: true}
		_, err := s.MoveUnit(0, 0, 0, 1)
		require.ErrorIs(t, err, ErrIllegalMove)
	})
}

func TestBuildableUnits(t *testing.T) {
	t.Run("own empty tile, modest treasury", func(t *testing.T) {
		s := twoFactionScenario(t, []int{0, 4, 8}, nil, 12, 0)
		s.Units[4] = NewStructure(UnitCapital)
		got, err := s.BuildableUnits(2, 0, s.Provinces[0])
		require.NoError(t, err)
		require.Equal(t, []Unit{NewSoldier(1), NewStructure(UnitFarm)}, got,
			"twelve resources buy a peasant or a farm next to the capital")
	})

	t.Run("own empty tile, full treasury", func(t *testing.T) {
		s := twoFactionScenario(t, []int{0, 4, 8}, nil, 40, 0)
		s.Units[4] = NewStructure(UnitCapital)
		got, err := s.BuildableUnits(2, 0, s.Provinces[0])
		require.NoError(t, err)
		require.Equal(t, []Unit{
			NewSoldier(1), NewSoldier(2), NewSoldier(3), NewSoldier(4),
			NewStructure(UnitTower1), NewStructure(UnitTower2), NewStructure(UnitFarm),
		}, got)
	})

	t.Run("farms need a capital or farm neighbor", func(t *testing.T) {
		s := twoFactionScenario(t, []int{0, 4, 8}, nil, 40, 0)
		s.Units[8] = NewStructure(UnitCapital)
		got, err := s.BuildableUnits(0, 0, s.Provinces[0])
		require.NoError(t, err)
		require.NotContains(t, got, NewStructure(UnitFarm),
			"tile zero touches neither the capital nor a farm")
	})

	t.Run("attacking builds must beat the defense", func(t *testing.T) {
		s := twoFactionScenario(t, []int{0, 4}, []int{5, 9}, 40, 0)
		s.Units[5] = NewSoldier(1)
		got, err := s.BuildableUnits(1, 1, s.Provinces[0])
		require.NoError(t, err)
		require.Equal(t, []Unit{NewSoldier(3), NewSoldier(4)}, got,
			"a defending peasant projects defense two onto its tile")
	})

	t.Run("unreachable and sibling tiles offer nothing", func(t *testing.T) {
		s := twoFactionScenario(t, []int{0, 4}, []int{14, 15}, 40, 0)
		got, err := s.BuildableUnits(3, 2, s.Provinces[0])
		require.NoError(t, err)
		require.Nil(t, got, "tile fourteen does not border the province")

		s.RegisterProvince(NewProvince(s.reserveProvinceID(), 0, []int{1, 2}, 0))
		got, err = s.BuildableUnits(0, 1, s.Provinces[0])
		require.NoError(t, err)
		require.Nil(t, got, "sibling province tiles cannot be built on")
	})

	t.Run("inactive provinces build nothing", func(t *testing.T) {
		s := twoFactionScenario(t, []int{0}, nil, 40, 0)
		got, err := s.BuildableUnits(0, 0, s.Provinces[0])
		require.NoError(t, err)
		require.Nil(t, got)
	})
}

func TestBuildUnitOnTile(t *testing.T) {
	t.Run("farm price scales with farm count", func(t *testing.T) {
		s := twoFactionScenario(t, []int{0, 4, 8}, nil, 20, 0)
		red := s.Provinces[0]
		s.Units[0] = NewStructure(UnitFarm)
		s.Units[4] = NewStructure(UnitCapital)

		plan, err := s.BuildUnitOnTile(2, 0, NewStructure(UnitFarm), red)
		require.NoError(t, err)
		require.Equal(t, 14, plan[0].Cost)
		mustApply(t, s, plan, red)
		require.Equal(t, 6, red.Resources)
		require.Equal(t, UnitFarm, s.Units[8].Kind)
	})

	t.Run("building over own vegetation is discounted", func(t *testing.T) {
		s := twoFactionScenario(t, []int{0, 4, 8}, nil, 7, 0)
		red := s.Provinces[0]
		s.Units[8] = NewStructure(UnitTree)

		plan, err := s.BuildUnitOnTile(2, 0, NewSoldier(1), red)
		require.NoError(t, err)
		require.Equal(t, 7, plan[0].Cost, "the chop refund comes off the price")
		mustApply(t, s, plan, red)
		require.Equal(t, 0, red.Resources)
	})

	t.Run("building onto an own soldier merges", func(t *testing.T) {
		s := twoFactionScenario(t, []int{0, 4, 8}, nil, 10, 0)
		red := s.Provinces[0]
		s.Units[8] = Unit{Kind: UnitSoldier, Tier: 1, CanMove: true}

		plan, err := s.BuildUnitOnTile(2, 0, NewSoldier(1), red)
		require.NoError(t, err)
		mustApply(t, s, plan, red)
		require.Equal(t, 2, s.Units[8].Tier)
		require.False(t, s.Units[8].CanMove, "bought reinforcements cannot act this turn")
	})

	t.Run("attacking build claims the tile", func(t *testing.T) {
		s := twoFactionScenario(t, []int{0, 4}, []int{5, 9}, 30, 4)
		red, blue := s.Provinces[0], s.Provinces[1]

		plan, err := s.BuildUnitOnTile(1, 1, NewSoldier(3), red)
		require.NoError(t, err)
		mustApply(t, s, plan, red)
		require.Equal(t, 0, red.Resources)
		require.Equal(t, red.ID, s.Owner[5])
		require.False(t, blue.Active, "the defender is down to one tile")
		require.Equal(t, 0, blue.Resources)
	})

	t.Run("bridging build pays before merging", func(t *testing.T) {
		s := twoFactionScenario(t, []int{0, 4}, []int{14, 15}, 20, 0)
		red := s.Provinces[0]
		other := NewProvince(s.reserveProvinceID(), 0, []int{2, 6}, 5)
		s.RegisterProvince(other)
		s.Units[0] = NewStructure(UnitCapital)
		s.Units[2] = NewStructure(UnitCapital)

		before := captureState(s)

		// Tile 1 is neutral and touches both red provinces, so buying a
		// soldier there merges them. The peasant's ten must come off the
		// treasury before the merge totals it with the absorbed five.
		plan, err := s.BuildUnitOnTile(0, 1, NewSoldier(1), red)
		require.NoError(t, err)
		mustApply(t, s, plan, red)

		require.Equal(t, 15, red.Resources, "twenty minus the peasant plus the absorbed five")
		tiles := append([]int(nil), red.Tiles...)
		sort.Ints(tiles)
		require.Equal(t, []int{0, 1, 2, 4, 6}, tiles)
		require.Nil(t, s.Provinces[other.ID])
		require.True(t, s.Units[2].IsEmpty(), "the absorbed capital is removed")

		require.NoError(t, s.ApplySequence(InvertSequence(plan), red))
		require.Equal(t, before, captureState(s), "cost, claim and merge all invert cleanly")
	})

	t.Run("bridging attack pays before merging", func(t *testing.T) {
		s := twoFactionScenario(t, []int{0, 4}, []int{1}, 30, 0)
		red := s.Provinces[0]
		other := NewProvince(s.reserveProvinceID(), 0, []int{2, 6}, 5)
		s.RegisterProvince(other)

		// Tile 1 belongs to the enemy and also bridges the two red
		// provinces; conquering it through a build goes through the
		// defender's tile loss before the claim merges the treasuries.
		plan, err := s.BuildUnitOnTile(0, 1, NewSoldier(1), red)
		require.NoError(t, err)
		mustApply(t, s, plan, red)

		require.Equal(t, 25, red.Resources, "thirty minus the peasant plus the absorbed five")
		require.Nil(t, s.Provinces[1], "the one-tile defender dies")
		require.Equal(t, red.ID, s.Owner[1])
	})

	t.Run("anything else is an illegal build", func(t *testing.T) {
		s := twoFactionScenario(t, []int{0, 4}, nil, 40, 0)
		s.Units[4] = NewSoldier(1)
		_, err := s.BuildUnitOnTile(1, 0, NewStructure(UnitTower1), s.Provinces[0])
		require.ErrorIs(t, err, ErrIllegalBuild, "towers need an empty tile")
	})
}

func TestApplyActionGuards(t *testing.T) {
	s := twoFactionScenario(t, []int{0, 4}, nil, 0, 0)

	err := s.ApplyAction(Action{Type: ProvinceResourceChangeAction, Province: 99}, nil)
	require.ErrorIs(t, err, ErrInvariantViolation, "unknown province")

	err = s.ApplyAction(Action{Type: MoveUnitAction, From: 0, To: 1, Income: 3}, nil)
	require.ErrorIs(t, err, ErrInvariantViolation, "income needs a province to credit")

	err = s.ApplyAction(Action{Type: ProvinceCreateAction, Snapshot: ProvinceSnapshot{ID: 0, Faction: 0}}, nil)
	require.ErrorIs(t, err, ErrInvariantViolation, "duplicate province ID")

	err = s.ApplyAction(Action{Type: ProvinceDeleteAction, Snapshot: ProvinceSnapshot{ID: 42}}, nil)
	require.ErrorIs(t, err, ErrInvariantViolation, "deleting a province that does not exist")

	err = s.ApplyAction(Action{Type: MoveUnitAction, From: -3, To: 1}, nil)
	require.ErrorIs(t, err, ErrInvalidCoordinate)

	v := s.Version()
	require.NoError(t, s.ApplyAction(Action{
		Type: TileChangeAction, Tile: 1, Prev: UnitOnly(Unit{}), Next: UnitOnly(NewStructure(UnitTree)),
	}, nil))
	require.Equal(t, v+1, s.Version(), "successful applies bump the version")
}
