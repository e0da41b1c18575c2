package game

import "fmt"

// ActionType tags the closed set of state mutations the engine knows how to
// apply and invert. Nothing mutates a scenario except ApplyAction consuming
// one of these.
type ActionType uint8

const (
	// MoveUnitAction relocates a soldier between two tiles, recording the
	// full before/after unit state of both tiles so the move replays and
	// inverts exactly (captures, merges and tree chops included).
	MoveUnitAction ActionType = iota

	// TileChangeAction rewrites the unit and/or owner of a single tile.
	// Builds, ownership claims, gravestone decay and tree growth are all
	// tile changes.
	TileChangeAction

	// ProvinceCreateAction registers a province from a full snapshot.
	ProvinceCreateAction

	// ProvinceDeleteAction removes a province, keeping its snapshot so the
	// inverse can restore it.
	ProvinceDeleteAction

	// ProvinceResourceChangeAction sets a province's treasury, recording
	// both old and new balance.
	ProvinceResourceChangeAction

	// ProvinceActivationChangeAction flips a province between active and
	// dormant.
	ProvinceActivationChangeAction
)

func (t ActionType) String() string {
	switch t {
	case MoveUnitAction:
		return "moveUnit"
	case TileChangeAction:
		return "tileChange"
	case ProvinceCreateAction:
		return "provinceCreate"
	case ProvinceDeleteAction:
		return "provinceDelete"
	case ProvinceResourceChangeAction:
		return "provinceResourceChange"
	case ProvinceActivationChangeAction:
		return "provinceActivationChange"
	}
	return "unknown"
}

// TileState is the delta payload for one tile. Fields only take effect when
// their Has flag is set, so an action touching a tile's unit leaves its
// ownership alone and vice versa.
type TileState struct {
	HasUnit  bool
	Unit     Unit
	HasOwner bool
	Owner    int // province ID, NoProvince for unowned
}

// UnitOnly returns a delta that sets just the tile's unit.
func UnitOnly(u Unit) TileState {
	return TileState{HasUnit: true, Unit: u}
}

// OwnerOnly returns a delta that sets just the tile's owning province.
func OwnerOnly(province int) TileState {
	return TileState{HasOwner: true, Owner: province}
}

// ProvinceSnapshot captures everything needed to recreate a province.
type ProvinceSnapshot struct {
	ID        int
	Faction   int
	Tiles     []int
	Resources int
	Active    bool
}

// Action is one atomic, exactly invertible scenario mutation. Fields are
// used per Type; unused fields stay zero. Consequence marks actions the
// engine derives from a player decision (ownership claims, merges, splits,
// turn updates) as opposed to the decision itself.
type Action struct {
	Type        ActionType
	Consequence bool

	// MoveUnitAction
	From, To           int
	FromPrev, FromNext TileState
	ToPrev, ToNext     TileState
	Income             int

	// TileChangeAction
	Tile       int
	Prev, Next TileState
	Cost       int

	// Province* actions
	Province      int
	Snapshot      ProvinceSnapshot
	PrevResources int
	NextResources int
	PrevActive    bool
	NextActive    bool
}

// Invert returns the action that exactly undoes a. It is total: every action
// kind has a well-defined inverse, and Invert(Invert(a)) == a up to snapshot
// slice identity.
func (a Action) Invert() Action {
	inv := a
	switch a.Type {
	case MoveUnitAction:
		inv.FromPrev, inv.FromNext = a.FromNext, a.FromPrev
		inv.ToPrev, inv.ToNext = a.ToNext, a.ToPrev
		inv.Income = -a.Income
	case TileChangeAction:
		inv.Prev, inv.Next = a.Next, a.Prev
		inv.Cost = -a.Cost
	case ProvinceCreateAction:
		inv.Type = ProvinceDeleteAction
	case ProvinceDeleteAction:
		inv.Type = ProvinceCreateAction
	case ProvinceResourceChangeAction:
		inv.PrevResources, inv.NextResources = a.NextResources, a.PrevResources
	case ProvinceActivationChangeAction:
		inv.PrevActive, inv.NextActive = a.NextActive, a.PrevActive
	}
	return inv
}

// InvertSequence returns the inverse of every action in reverse order, so
// applying plan then InvertSequence(plan) is a no-op on the scenario.
func InvertSequence(plan []Action) []Action {
	out := make([]Action, len(plan))
	for i, a := range plan {
		out[len(plan)-1-i] = a.Invert()
	}
	return out
}

func (a Action) String() string {
	switch a.Type {
	case MoveUnitAction:
		return fmt.Sprintf("moveUnit %d->%d (%s)", a.From, a.To, a.ToNext.Unit)
	case TileChangeAction:
		return fmt.Sprintf("tileChange %d (%+v)", a.Tile, a.Next)
	case ProvinceCreateAction, ProvinceDeleteAction:
		return fmt.Sprintf("%s %d", a.Type, a.Snapshot.ID)
	case ProvinceResourceChangeAction:
		return fmt.Sprintf("resourceChange %d: %d->%d", a.Province, a.PrevResources, a.NextResources)
	case ProvinceActivationChangeAction:
		return fmt.Sprintf("activationChange %d: %t->%t", a.Province, a.PrevActive, a.NextActive)
	}
	return "unknown action"
}
