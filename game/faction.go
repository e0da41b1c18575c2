package game

// Faction is one side in a scenario. Provinces lists the IDs of every
// province the faction currently owns, in creation order.
type Faction struct {
	Name      string
	Provinces []int
}

// NewFaction returns a faction with no provinces yet.
func NewFaction(name string) *Faction {
	return &Faction{Name: name}
}

func (f *Faction) clone() *Faction {
	c := &Faction{Name: f.Name}
	c.Provinces = append([]int(nil), f.Provinces...)
	return c
}
