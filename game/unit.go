package game

import "fmt"

// UnitKind enumerates everything that can occupy a tile.
type UnitKind uint8

const (
	UnitNone UnitKind = iota
	UnitSoldier
	UnitCapital
	UnitTower1
	UnitTower2
	UnitFarm
	UnitTree
	UnitGravestone
)

const (
	// MaxSoldierTier caps merge results: two soldiers can only merge when
	// their combined tier stays within this bound.
	MaxSoldierTier = 4

	// TreeChopIncome is credited to a province whose soldier steps onto one
	// of its own tree tiles.
	TreeChopIncome = 3

	// TreeGrowthChance is the per-neighbor probability that a tree spreads
	// onto an adjacent empty tile during a faction's end-of-turn update.
	TreeGrowthChance = 0.2
)

// unitStats holds attack, defense and upkeep per kind (soldiers indexed by
// tier). Costs live in UnitCost / FarmCost because the farm price scales.
type unitStats struct {
	attack  int
	defense int
	upkeep  int
	cost    int
}

var soldierStats = [MaxSoldierTier + 1]unitStats{
	{},             // no tier 0
	{1, 2, 2, 10},  // peasant
	{2, 3, 6, 20},  // spearman
	{3, 4, 18, 30}, // knight
	{4, 4, 36, 40}, // baron
}

var structureStats = map[UnitKind]unitStats{
	UnitCapital:    {0, 1, 0, 0},
	UnitTower1:     {0, 2, 1, 15},
	UnitTower2:     {0, 3, 6, 35},
	UnitFarm:       {0, 0, -4, 0}, // cost via FarmCost
	UnitTree:       {0, 0, 1, 0},
	UnitGravestone: {0, 0, 1, 0},
}

// Unit is a plain value living in the scenario's unit arena. The zero value
// is an empty tile. Soldiers carry a tier and a per-turn mobility flag;
// structures and vegetation use neither.
type Unit struct {
	Kind    UnitKind
	Tier    int
	CanMove bool
}

// NewSoldier returns a freshly built soldier of the given tier. New soldiers
// cannot act until their faction's next turn starts.
func NewSoldier(tier int) Unit {
	return Unit{Kind: UnitSoldier, Tier: tier}
}

// NewStructure returns a unit of a non-soldier kind.
func NewStructure(kind UnitKind) Unit {
	return Unit{Kind: kind}
}

// IsEmpty reports whether the tile holds nothing at all.
func (u Unit) IsEmpty() bool { return u.Kind == UnitNone }

// IsSoldier reports whether the unit is a mobile fighting unit.
func (u Unit) IsSoldier() bool { return u.Kind == UnitSoldier }

// IsVegetation reports whether the unit is a tree or gravestone, both of
// which any soldier may walk over.
func (u Unit) IsVegetation() bool {
	return u.Kind == UnitTree || u.Kind == UnitGravestone
}

// Attack returns the unit's attack power. Only soldiers attack.
func (u Unit) Attack() int {
	if u.Kind == UnitSoldier {
		return soldierStats[u.Tier].attack
	}
	return 0
}

// Defense returns the defense rating the unit projects onto its own tile
// and, for soldiers and towers, onto friendly neighbors.
func (u Unit) Defense() int {
	if u.Kind == UnitSoldier {
		return soldierStats[u.Tier].defense
	}
	return structureStats[u.Kind].defense
}

// Upkeep returns the per-turn cost the unit charges its province.
func (u Unit) Upkeep() int {
	if u.Kind == UnitSoldier {
		return soldierStats[u.Tier].upkeep
	}
	return structureStats[u.Kind].upkeep
}

// UnitCost returns the build price of a soldier or fixed-price structure.
// Use FarmCost for farms.
func UnitCost(u Unit) int {
	if u.Kind == UnitSoldier {
		return soldierStats[u.Tier].cost
	}
	return structureStats[u.Kind].cost
}

// FarmCost returns the price of the next farm given how many the province
// already owns. Each farm makes the next one more expensive.
func FarmCost(existingFarms int) int {
	return 12 + 2*existingFarms
}

func (u Unit) String() string {
	switch u.Kind {
	case UnitNone:
		return "empty"
	case UnitSoldier:
		return fmt.Sprintf("soldier-%d", u.Tier)
	case UnitCapital:
		return "capital"
	case UnitTower1:
		return "tower"
	case UnitTower2:
		return "strong-tower"
	case UnitFarm:
		return "farm"
	case UnitTree:
		return "tree"
	case UnitGravestone:
		return "gravestone"
	}
	return "unknown"
}
