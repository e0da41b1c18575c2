package game

import (
	"fmt"
	"sort"

	"golang.org/x/exp/rand"

	"antiyoy/utils"
)

// NoProvince marks a tile nobody owns.
const NoProvince = -1

// Province is a contiguous group of same-faction tiles with a shared
// treasury. A province with fewer than two tiles is inactive: its treasury
// is pinned at 0 and it cannot act until merged back into a normal province.
//
// Provinces never mutate themselves. Every method below derives Actions from
// the current scenario state; nothing changes until Scenario.ApplyAction
// consumes them.
type Province struct {
	ID        int
	Faction   int
	Tiles     []int
	Resources int
	Active    bool
}

// NewProvince builds a province over the given tiles. Activation follows the
// two-tile rule.
func NewProvince(id, faction int, tiles []int, resources int) *Province {
	return &Province{
		ID:        id,
		Faction:   faction,
		Tiles:     append([]int(nil), tiles...),
		Resources: resources,
		Active:    len(tiles) >= 2,
	}
}

func (p *Province) clone() *Province {
	c := *p
	c.Tiles = append([]int(nil), p.Tiles...)
	return &c
}

// Snapshot captures the province for province create/delete actions.
func (p *Province) Snapshot() ProvinceSnapshot {
	return ProvinceSnapshot{
		ID:        p.ID,
		Faction:   p.Faction,
		Tiles:     append([]int(nil), p.Tiles...),
		Resources: p.Resources,
		Active:    p.Active,
	}
}

// Contains reports whether the tile belongs to the province.
func (p *Province) Contains(tile int) bool {
	return utils.FindIndex(p.Tiles, tile) >= 0
}

// membership maintenance used by ApplyAction; both are idempotent because
// snapshot-based province creation can race ahead of per-tile owner changes
// during inverse replays.
func (p *Province) attach(tile int) {
	if !p.Contains(tile) {
		p.Tiles = append(p.Tiles, tile)
	}
}

func (p *Province) detach(tile int) {
	if i := utils.FindIndex(p.Tiles, tile); i >= 0 {
		p.Tiles = append(p.Tiles[:i], p.Tiles[i+1:]...)
	}
}

// ComputeIncome returns the per-turn income: one resource per tile, minus
// the upkeep of every unit standing on province tiles. Farms have negative
// upkeep and therefore add income.
func (p *Province) ComputeIncome(s *Scenario) int {
	income := 0
	for _, t := range p.Tiles {
		income++
		income -= s.Units[t].Upkeep()
	}
	return income
}

// CountFarms returns the number of farms in the province, which sets the
// price of the next one.
func (p *Province) CountFarms(s *Scenario) int {
	n := 0
	for _, t := range p.Tiles {
		if s.Units[t].Kind == UnitFarm {
			n++
		}
	}
	return n
}

// CapitalTile returns the tile holding the province capital, or NoTile.
func (p *Province) CapitalTile(s *Scenario) int {
	for _, t := range p.Tiles {
		if s.Units[t].Kind == UnitCapital {
			return t
		}
	}
	return NoTile
}

// PlaceCapital derives an action placing a capital on one of the given
// tiles, preferring empty tiles, then farm tiles, then anything. The pick is
// seeded by the group size so replays of the same split stay deterministic.
func (p *Province) PlaceCapital(s *Scenario, tiles []int) (int, []Action) {
	candidates := make([]int, len(tiles))
	copy(candidates, tiles)
	sort.Ints(candidates)

	var empty, farms []int
	for _, t := range candidates {
		switch s.Units[t].Kind {
		case UnitNone:
			empty = append(empty, t)
		case UnitFarm:
			farms = append(farms, t)
		}
	}

	pool := candidates
	if len(empty) > 0 {
		pool = empty
	} else if len(farms) > 0 {
		pool = farms
	}

	rng := rand.New(rand.NewSource(uint64(len(tiles))))
	capital := pool[rng.Intn(len(pool))]

	action := Action{
		Type:        TileChangeAction,
		Consequence: true,
		Tile:        capital,
		Prev:        UnitOnly(s.Units[capital]),
		Next:        UnitOnly(NewStructure(UnitCapital)),
	}
	return capital, []Action{action}
}

// AddTile derives actions giving the province ownership of a tile. If the
// acquisition makes the province adjacent to other provinces of the same
// faction, merge actions for each of them follow the ownership change.
func (p *Province) AddTile(s *Scenario, tile int) ([]Action, error) {
	return p.addTileFrom(s, tile, p.Resources)
}

// addTileFrom is AddTile with an explicit starting balance. Merge actions
// write absolute treasury values, so when earlier actions of the same
// sequence move money (a build cost charged at apply time) the caller must
// pass the post-charge balance or the merge would overwrite the charge.
func (p *Province) addTileFrom(s *Scenario, tile, balance int) ([]Action, error) {
	if p.Contains(tile) {
		return nil, nil
	}
	if !s.Grid.IsLand(tile) {
		return nil, fmt.Errorf("%w: cannot add water tile %d to a province", ErrInvalidCoordinate, tile)
	}

	actions := []Action{{
		Type:        TileChangeAction,
		Consequence: true,
		Tile:        tile,
		Prev:        OwnerOnly(s.Owner[tile]),
		Next:        OwnerOnly(p.ID),
	}}

	// Collect same-faction provinces that become adjacent through this tile.
	var mergeable []int
	consider := func(id int) {
		if id == NoProvince || id == p.ID {
			return
		}
		other := s.Provinces[id]
		if other == nil || other.Faction != p.Faction {
			return
		}
		if utils.FindIndex(mergeable, id) < 0 {
			mergeable = append(mergeable, id)
		}
	}
	consider(s.Owner[tile])
	for _, n := range s.Grid.Neighbors(tile) {
		if n != NoTile {
			consider(s.Owner[n])
		}
	}

	// Chained merges accumulate into a running balance so no treasury is
	// lost when several provinces join at once.
	resources := balance
	for _, id := range mergeable {
		merged, total, err := p.mergeWithBalance(s, s.Provinces[id], resources)
		if err != nil {
			return nil, err
		}
		actions = append(actions, merged...)
		resources = total
	}
	return actions, nil
}

// MergeProvinces derives actions absorbing another province into this one:
// its treasury is summed in, its tiles are reassigned, its capital removed
// and the province itself deleted.
func (p *Province) MergeProvinces(s *Scenario, other *Province) ([]Action, error) {
	actions, _, err := p.mergeWithBalance(s, other, p.Resources)
	return actions, err
}

func (p *Province) mergeWithBalance(s *Scenario, other *Province, balance int) ([]Action, int, error) {
	if other == nil || other.ID == p.ID {
		return nil, balance, nil
	}
	if other.Faction != p.Faction {
		return nil, balance, fmt.Errorf("%w: cannot merge provinces of factions %d and %d",
			ErrInvariantViolation, p.Faction, other.Faction)
	}

	actions := []Action{{
		Type:          ProvinceResourceChangeAction,
		Consequence:   true,
		Province:      p.ID,
		PrevResources: balance,
		NextResources: balance + other.Resources,
	}, {
		Type:        ProvinceDeleteAction,
		Consequence: true,
		Province:    other.ID,
		Snapshot:    other.Snapshot(),
	}}

	for _, t := range other.Tiles {
		actions = append(actions, Action{
			Type:        TileChangeAction,
			Consequence: true,
			Tile:        t,
			Prev:        OwnerOnly(other.ID),
			Next:        OwnerOnly(p.ID),
		})
	}

	// The surviving province keeps its own capital.
	if capital := other.CapitalTile(s); capital != NoTile {
		actions = append(actions, Action{
			Type:        TileChangeAction,
			Consequence: true,
			Tile:        capital,
			Prev:        UnitOnly(s.Units[capital]),
			Next:        UnitOnly(Unit{}),
		})
	}
	return actions, balance + other.Resources, nil
}

// RemoveTile derives actions for losing a tile to a conquering province of
// another faction. Handles province death (zero tiles left), deactivation
// (one tile left) and splitting when the loss breaks contiguity; in every
// case the conqueror's claim actions are appended last.
func (p *Province) RemoveTile(s *Scenario, tile int, conqueror *Province) ([]Action, error) {
	balance := 0
	if conqueror != nil {
		balance = conqueror.Resources
	}
	return p.removeTileFrom(s, tile, conqueror, balance)
}

// removeTileFrom is RemoveTile with an explicit conqueror balance, for the
// same reason as addTileFrom.
func (p *Province) removeTileFrom(s *Scenario, tile int, conqueror *Province, balance int) ([]Action, error) {
	if !p.Contains(tile) {
		return nil, nil
	}
	if conqueror == nil {
		return nil, fmt.Errorf("%w: removing tile %d without a conquering province", ErrInvariantViolation, tile)
	}
	if conqueror.Faction == p.Faction {
		return nil, fmt.Errorf("%w: conquering province must belong to another faction", ErrInvariantViolation)
	}

	actions := []Action{{
		Type:        TileChangeAction,
		Consequence: true,
		Tile:        tile,
		Prev:        OwnerOnly(p.ID),
		Next:        OwnerOnly(NoProvince),
	}}

	claim := func() error {
		conquer, err := conqueror.addTileFrom(s, tile, balance)
		if err != nil {
			return err
		}
		actions = append(actions, conquer...)
		return nil
	}

	// Last tile gone: the province disappears entirely.
	if len(p.Tiles) == 1 {
		actions = append(actions, Action{
			Type:        ProvinceDeleteAction,
			Consequence: true,
			Province:    p.ID,
			Snapshot:    p.Snapshot(),
		})
		if err := claim(); err != nil {
			return nil, err
		}
		return actions, nil
	}

	// Down to a single tile: deactivate and empty the treasury.
	if len(p.Tiles) == 2 {
		actions = append(actions,
			Action{
				Type:        ProvinceActivationChangeAction,
				Consequence: true,
				Province:    p.ID,
				PrevActive:  p.Active,
				NextActive:  false,
			},
			Action{
				Type:          ProvinceResourceChangeAction,
				Consequence:   true,
				Province:      p.ID,
				PrevResources: p.Resources,
				NextResources: 0,
			})
		if err := claim(); err != nil {
			return nil, err
		}
		return actions, nil
	}

	remaining := make([]int, 0, len(p.Tiles)-1)
	for _, t := range p.Tiles {
		if t != tile {
			remaining = append(remaining, t)
		}
	}
	groups := p.contiguousGroups(s, remaining)

	if len(groups) == 1 {
		if !p.Active {
			actions = append(actions, Action{
				Type:        ProvinceActivationChangeAction,
				Consequence: true,
				Province:    p.ID,
				PrevActive:  p.Active,
				NextActive:  true,
			})
		}
		if err := claim(); err != nil {
			return nil, err
		}
		if s.Units[tile].Kind == UnitCapital {
			_, capitalActions := p.PlaceCapital(s, remaining)
			actions = append(actions, capitalActions...)
		}
		return actions, nil
	}

	actions = append(actions, p.splitActions(s, groups)...)
	if err := claim(); err != nil {
		return nil, err
	}
	return actions, nil
}

// splitActions breaks the province into one fragment per contiguous group.
// The largest group keeps the province identity, capital and treasury; the
// others become new provinces with empty treasuries.
func (p *Province) splitActions(s *Scenario, groups [][]int) []Action {
	sort.SliceStable(groups, func(i, j int) bool {
		return len(groups[i]) > len(groups[j])
	})
	main := groups[0]
	rest := groups[1:]

	actions := []Action{{
		Type:        ProvinceActivationChangeAction,
		Consequence: true,
		Province:    p.ID,
		PrevActive:  p.Active,
		NextActive:  len(main) >= 2,
	}}

	mainHasCapital := false
	for _, t := range main {
		if s.Units[t].Kind == UnitCapital {
			mainHasCapital = true
			break
		}
	}
	if !mainHasCapital {
		_, capitalActions := p.PlaceCapital(s, main)
		actions = append(actions, capitalActions...)
	}

	for _, group := range rest {
		id := s.reserveProvinceID()
		fragment := NewProvince(id, p.Faction, group, 0)
		actions = append(actions, Action{
			Type:        ProvinceCreateAction,
			Consequence: true,
			Province:    id,
			Snapshot:    fragment.Snapshot(),
		})
		for _, t := range group {
			actions = append(actions, Action{
				Type:        TileChangeAction,
				Consequence: true,
				Tile:        t,
				Prev:        OwnerOnly(p.ID),
				Next:        OwnerOnly(id),
			})
		}

		if len(group) >= 2 {
			_, capitalActions := fragment.PlaceCapital(s, group)
			actions = append(actions, capitalActions...)
			continue
		}

		// Lone-tile fragments keep soldiers and trees, lose buildings:
		// a stranded capital turns into a tree, other structures vanish.
		single := group[0]
		switch s.Units[single].Kind {
		case UnitCapital:
			actions = append(actions, Action{
				Type:        TileChangeAction,
				Consequence: true,
				Tile:        single,
				Prev:        UnitOnly(s.Units[single]),
				Next:        UnitOnly(NewStructure(UnitTree)),
			})
		case UnitFarm, UnitTower1, UnitTower2:
			actions = append(actions, Action{
				Type:        TileChangeAction,
				Consequence: true,
				Tile:        single,
				Prev:        UnitOnly(s.Units[single]),
				Next:        UnitOnly(Unit{}),
			})
		}
	}
	return actions
}

// contiguousGroups partitions tiles into connected components under hex
// adjacency restricted to the given tile set.
func (p *Province) contiguousGroups(s *Scenario, tiles []int) [][]int {
	unvisited := make(map[int]bool, len(tiles))
	for _, t := range tiles {
		unvisited[t] = true
	}

	var groups [][]int
	for _, start := range tiles {
		if !unvisited[start] {
			continue
		}
		group := []int{start}
		unvisited[start] = false
		queue := []int{start}
		for len(queue) > 0 {
			current := queue[0]
			queue = queue[1:]
			for _, n := range s.Grid.Neighbors(current) {
				if n != NoTile && unvisited[n] {
					unvisited[n] = false
					group = append(group, n)
					queue = append(queue, n)
				}
			}
		}
		groups = append(groups, group)
	}
	return groups
}

func (p *Province) String() string {
	return fmt.Sprintf("province %d (faction %d): %d tiles, %d resources, active=%t",
		p.ID, p.Faction, len(p.Tiles), p.Resources, p.Active)
}
