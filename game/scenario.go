package game

import (
	"fmt"
	"sort"

	"golang.org/x/exp/rand"
)

// MovementBudget is how many hex edges a soldier can cross in one move while
// walking through its own province.
const MovementBudget = 4

// Scenario is the whole game state: the static grid plus per-tile dynamic
// arenas (owner province ID and occupying unit per tile index), the province
// registry and the faction turn order. All tile-addressed state lives in
// flat slices so cloning is a handful of copies.
//
// Nothing outside ApplyAction mutates a scenario once play has started;
// every other method either queries or derives Actions.
type Scenario struct {
	Name      string
	Grid      *Grid
	Owner     []int
	Units     []Unit
	Provinces map[int]*Province
	Factions  []*Faction

	TurnFaction int
	TurnCount   int
	Seed        uint64

	nextProvinceID int
	version        uint64
	src            *rand.PCGSource
	rng            *rand.Rand
}

// NewScenario builds an empty scenario over the grid: every tile unowned and
// unoccupied. The seed drives all in-game randomness (tree growth), so equal
// seeds and equal action sequences give bit-identical states.
func NewScenario(name string, grid *Grid, factions []*Faction, seed uint64) *Scenario {
	s := &Scenario{
		Name:      name,
		Grid:      grid,
		Owner:     make([]int, grid.Size()),
		Units:     make([]Unit, grid.Size()),
		Provinces: make(map[int]*Province),
		Factions:  factions,
		Seed:      seed,
	}
	for i := range s.Owner {
		s.Owner[i] = NoProvince
	}
	s.src = &rand.PCGSource{}
	s.src.Seed(seed)
	s.rng = rand.New(s.src)
	return s
}

// FactionToPlay returns the faction whose turn it is, nil for an empty
// scenario.
func (s *Scenario) FactionToPlay() *Faction {
	if s.TurnFaction < 0 || s.TurnFaction >= len(s.Factions) {
		return nil
	}
	return s.Factions[s.TurnFaction]
}

// Province returns the province with the given ID, nil if it does not exist.
func (s *Scenario) Province(id int) *Province {
	return s.Provinces[id]
}

// Version counts applied actions. The planner uses it to invalidate
// per-state caches.
func (s *Scenario) Version() uint64 {
	return s.version
}

// reserveProvinceID hands out the next unused province ID. IDs are never
// reused, so actions referencing provinces stay unambiguous across a whole
// game.
func (s *Scenario) reserveProvinceID() int {
	id := s.nextProvinceID
	s.nextProvinceID++
	return id
}

// RegisterProvince installs a province during scenario setup, wiring tile
// ownership and the faction's province list directly. Not for use once play
// has started; in-game province changes only happen through ApplyAction.
func (s *Scenario) RegisterProvince(p *Province) {
	s.Provinces[p.ID] = p
	if p.ID >= s.nextProvinceID {
		s.nextProvinceID = p.ID + 1
	}
	s.Factions[p.Faction].Provinces = append(s.Factions[p.Faction].Provinces, p.ID)
	for _, t := range p.Tiles {
		s.Owner[t] = p.ID
	}
}

func (s *Scenario) checkTile(tile int) error {
	if tile < 0 || tile >= s.Grid.Size() {
		return fmt.Errorf("%w: tile index %d outside arena of %d", ErrInvalidCoordinate, tile, s.Grid.Size())
	}
	return nil
}

// sameFaction reports whether two province IDs belong to the same faction.
func (s *Scenario) sameFaction(a, b int) bool {
	pa, pb := s.Provinces[a], s.Provinces[b]
	return pa != nil && pb != nil && pa.Faction == pb.Faction
}

// DefenseRating returns the highest defense power among the tile's occupant
// and the occupants of its same-owner neighbors. An attacker needs strictly
// more attack power than this to take the tile.
func (s *Scenario) DefenseRating(tile int) int {
	def := s.Units[tile].Defense()
	owner := s.Owner[tile]
	for _, n := range s.Grid.Neighbors(tile) {
		if n == NoTile || s.Owner[n] != owner {
			continue
		}
		if d := s.Units[n].Defense(); d > def {
			def = d
		}
	}
	return def
}

// MovementRange returns every tile reachable from (row, col) within the
// movement budget, expanding only through tiles of the origin's province.
// Tiles outside the province are reachable as endpoints but never crossed.
// The origin itself is included.
func (s *Scenario) MovementRange(row, col int) ([]int, error) {
	from, err := s.Grid.Index(row, col)
	if err != nil {
		return nil, err
	}
	pid := s.Owner[from]

	dist := map[int]int{from: 0}
	queue := []int{from}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if dist[current] == MovementBudget {
			continue
		}
		for _, n := range s.Grid.Neighbors(current) {
			if n == NoTile || !s.Grid.IsLand(n) {
				continue
			}
			if _, seen := dist[n]; seen {
				continue
			}
			dist[n] = dist[current] + 1
			if s.Owner[n] == pid {
				queue = append(queue, n)
			}
		}
	}

	result := make([]int, 0, len(dist))
	for t := range dist {
		result = append(result, t)
	}
	sort.Ints(result)
	return result, nil
}

// MovementRangeFiltered narrows MovementRange down to the tiles the soldier
// at (row, col) may actually move to: same-province tiles that are empty,
// hold vegetation, or hold a soldier it can merge with; and tiles of other
// factions (or no faction) whose defense rating its attack power beats.
// Tiles of sibling provinces of the same faction are never legal targets.
func (s *Scenario) MovementRangeFiltered(row, col int) ([]int, error) {
	from, err := s.Grid.Index(row, col)
	if err != nil {
		return nil, err
	}
	mover := s.Units[from]
	if !mover.IsSoldier() {
		return nil, fmt.Errorf("%w: no soldier at (%d, %d)", ErrIllegalMove, row, col)
	}
	pid := s.Owner[from]

	reachable, err := s.MovementRange(row, col)
	if err != nil {
		return nil, err
	}

	result := make([]int, 0, len(reachable))
	for _, t := range reachable {
		if t == from {
			continue
		}
		if s.Owner[t] == pid {
			occ := s.Units[t]
			if occ.IsEmpty() || occ.IsVegetation() ||
				(occ.IsSoldier() && occ.Tier+mover.Tier <= MaxSoldierTier) {
				result = append(result, t)
			}
			continue
		}
		if s.Owner[t] != NoProvince && s.sameFaction(s.Owner[t], pid) {
			continue
		}
		if mover.Attack() > s.DefenseRating(t) {
			result = append(result, t)
		}
	}
	return result, nil
}

// MoveUnit derives the action sequence for moving the soldier at from to the
// destination: one move action with the full before/after state of both
// tiles, followed by ownership-claim consequences when the destination
// changes hands. Nothing is applied. Merging onto a friendly soldier sums
// tiers; landing on an own-province tree credits the chop income.
func (s *Scenario) MoveUnit(fromRow, fromCol, toRow, toCol int) ([]Action, error) {
	from, err := s.Grid.Index(fromRow, fromCol)
	if err != nil {
		return nil, err
	}
	to, err := s.Grid.Index(toRow, toCol)
	if err != nil {
		return nil, err
	}

	mover := s.Units[from]
	if !mover.IsSoldier() {
		return nil, fmt.Errorf("%w: no soldier at (%d, %d)", ErrIllegalMove, fromRow, fromCol)
	}
	if !mover.CanMove {
		return nil, fmt.Errorf("%w: soldier at (%d, %d) has already moved", ErrIllegalMove, fromRow, fromCol)
	}
	p := s.Provinces[s.Owner[from]]
	if p == nil || !p.Active {
		return nil, fmt.Errorf("%w: soldier at (%d, %d) belongs to no active province", ErrIllegalMove, fromRow, fromCol)
	}

	legal, err := s.MovementRangeFiltered(fromRow, fromCol)
	if err != nil {
		return nil, err
	}
	inRange := false
	for _, t := range legal {
		if t == to {
			inRange = true
			break
		}
	}
	if !inRange {
		return nil, fmt.Errorf("%w: (%d, %d) is not a legal destination from (%d, %d)",
			ErrIllegalMove, toRow, toCol, fromRow, fromCol)
	}

	target := s.Units[to]
	moved := mover
	moved.CanMove = false
	income := 0
	if s.Owner[to] == p.ID {
		if target.IsSoldier() {
			moved.Tier += target.Tier
		}
		if target.Kind == UnitTree {
			income = TreeChopIncome
		}
	}

	actions := []Action{{
		Type:     MoveUnitAction,
		From:     from,
		To:       to,
		FromPrev: UnitOnly(mover),
		FromNext: UnitOnly(Unit{}),
		ToPrev:   UnitOnly(target),
		ToNext:   UnitOnly(moved),
		Income:   income,
	}}

	if s.Owner[to] != p.ID {
		var consequences []Action
		if s.Owner[to] == NoProvince {
			consequences, err = p.AddTile(s, to)
		} else {
			consequences, err = s.Provinces[s.Owner[to]].RemoveTile(s, to, p)
		}
		if err != nil {
			return nil, err
		}
		actions = append(actions, consequences...)
	}
	return actions, nil
}

// BuildableUnits returns every unit the province could construct on the tile
// this turn: soldiers and structures on owned tiles (treasury permitting,
// farms only next to a capital or farm), and attacking soldiers on adjacent
// tiles of other factions whose defense they beat. Inactive provinces build
// nothing.
func (s *Scenario) BuildableUnits(row, col int, p *Province) ([]Unit, error) {
	tile, err := s.Grid.Index(row, col)
	if err != nil {
		return nil, err
	}
	if p == nil || !p.Active || !s.Grid.IsLand(tile) {
		return nil, nil
	}

	occ := s.Units[tile]
	res := p.Resources
	var out []Unit

	if s.Owner[tile] == p.ID {
		discount := 0
		if occ.IsVegetation() {
			discount = TreeChopIncome
		}
		for tier := 1; tier <= MaxSoldierTier; tier++ {
			hostable := occ.IsEmpty() || occ.IsVegetation() ||
				(occ.IsSoldier() && occ.Tier+tier <= MaxSoldierTier)
			if hostable && res >= soldierStats[tier].cost-discount {
				out = append(out, NewSoldier(tier))
			}
		}
		if occ.IsEmpty() {
			if res >= structureStats[UnitTower1].cost {
				out = append(out, NewStructure(UnitTower1))
			}
			if res >= structureStats[UnitTower2].cost {
				out = append(out, NewStructure(UnitTower2))
			}
			if s.farmEligible(tile, p) && res >= FarmCost(p.CountFarms(s)) {
				out = append(out, NewStructure(UnitFarm))
			}
		}
		return out, nil
	}

	// Foreign or neutral tile: must border the province, and only soldiers
	// strong enough to take it are offered.
	if s.Owner[tile] != NoProvince && s.sameFaction(s.Owner[tile], p.ID) {
		return nil, nil
	}
	if !s.adjacentToProvince(tile, p) {
		return nil, nil
	}
	def := s.DefenseRating(tile)
	for tier := 1; tier <= MaxSoldierTier; tier++ {
		if soldierStats[tier].attack > def && res >= soldierStats[tier].cost {
			out = append(out, NewSoldier(tier))
		}
	}
	return out, nil
}

func (s *Scenario) farmEligible(tile int, p *Province) bool {
	for _, n := range s.Grid.Neighbors(tile) {
		if n == NoTile || s.Owner[n] != p.ID {
			continue
		}
		if k := s.Units[n].Kind; k == UnitCapital || k == UnitFarm {
			return true
		}
	}
	return false
}

func (s *Scenario) adjacentToProvince(tile int, p *Province) bool {
	for _, n := range s.Grid.Neighbors(tile) {
		if n != NoTile && s.Owner[n] == p.ID {
			return true
		}
	}
	return false
}

// BuildUnitOnTile derives the action sequence for the province buying the
// given unit onto the tile: one tile change carrying the cost, plus
// ownership-claim consequences when building onto a foreign or neutral
// tile. Nothing is applied.
func (s *Scenario) BuildUnitOnTile(row, col int, unit Unit, p *Province) ([]Action, error) {
	tile, err := s.Grid.Index(row, col)
	if err != nil {
		return nil, err
	}
	options, err := s.BuildableUnits(row, col, p)
	if err != nil {
		return nil, err
	}
	allowed := false
	for _, o := range options {
		if o.Kind == unit.Kind && o.Tier == unit.Tier {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, fmt.Errorf("%w: cannot build %s at (%d, %d)", ErrIllegalBuild, unit, row, col)
	}

	occ := s.Units[tile]
	cost := UnitCost(unit)
	switch {
	case unit.Kind == UnitFarm:
		cost = FarmCost(p.CountFarms(s))
	case unit.IsSoldier() && s.Owner[tile] == p.ID && occ.IsVegetation():
		cost -= TreeChopIncome
	}

	built := unit
	built.CanMove = false
	if unit.IsSoldier() && s.Owner[tile] == p.ID && occ.IsSoldier() {
		built.Tier = unit.Tier + occ.Tier
	}

	actions := []Action{{
		Type: TileChangeAction,
		Tile: tile,
		Prev: UnitOnly(occ),
		Next: UnitOnly(built),
		Cost: cost,
	}}

	if s.Owner[tile] != p.ID {
		// The build cost is charged when the first action applies, so claim
		// consequences derive against the balance left after paying it.
		var consequences []Action
		if s.Owner[tile] == NoProvince {
			consequences, err = p.addTileFrom(s, tile, p.Resources-cost)
		} else {
			consequences, err = s.Provinces[s.Owner[tile]].removeTileFrom(s, tile, p, p.Resources-cost)
		}
		if err != nil {
			return nil, err
		}
		actions = append(actions, consequences...)
	}
	return actions, nil
}
