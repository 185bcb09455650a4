package core

// Terrain categories; combat and movement modifiers are looked up per type.
type Terrain string

const (
	TerrainPlains    Terrain = "plains"
	TerrainHills     Terrain = "hills"
	TerrainForest    Terrain = "forest"
	TerrainMountains Terrain = "mountains"
	TerrainDesert    Terrain = "desert"
	TerrainCoast     Terrain = "coast"
)

// SupplyState is derived from the supply meter via fixed thresholds. It is
// never stored independently.
type SupplyState string

const (
	SupplySupplied  SupplyState = "supplied"
	SupplyStrained  SupplyState = "strained"
	SupplyExhausted SupplyState = "exhausted"
)

// Visibility of a territory for one nation.
type Visibility string

const (
	VisibilityHidden  Visibility = "hidden"
	VisibilityFogged  Visibility = "fogged"
	VisibilityVisible Visibility = "visible"
)

// Territory is one tile of the world graph. OwnerID changes only when an
// attacker wins combat; everything else mutates through action handlers,
// combat and upkeep.
type Territory struct {
	ID            string                `json:"id"`
	Name          string                `json:"name"`
	X             int                   `json:"x"`
	Y             int                   `json:"y"`
	Terrain       Terrain               `json:"terrain"`
	Neighbors     []string              `json:"neighbors"`
	OwnerID       string                `json:"ownerId"`
	Garrison      int                   `json:"garrison"`
	UnitCount     int                   `json:"unitCount"`
	Morale        int                   `json:"morale"`
	Supply        int                   `json:"supply"`
	SiegeProgress int                   `json:"siegeProgress"`
	Visibility    map[string]Visibility `json:"visibility"`
}

// SupplyState derives the supply band: >=70 supplied, >=40 strained,
// otherwise exhausted.
func (t *Territory) SupplyState() SupplyState {
	switch {
	case t.Supply >= 70:
		return SupplySupplied
	case t.Supply >= 40:
		return SupplyStrained
	default:
		return SupplyExhausted
	}
}

// AdjacentTo reports whether otherID is in the neighbor list.
func (t *Territory) AdjacentTo(otherID string) bool {
	for _, id := range t.Neighbors {
		if id == otherID {
			return true
		}
	}
	return false
}

// VisibleTo returns the visibility level for a nation, defaulting to hidden.
func (t *Territory) VisibleTo(nationID string) Visibility {
	if t.Visibility == nil {
		return VisibilityHidden
	}
	if v, ok := t.Visibility[nationID]; ok {
		return v
	}
	return VisibilityHidden
}

// SetVisibility records the visibility level for a nation.
func (t *Territory) SetVisibility(nationID string, v Visibility) {
	if t.Visibility == nil {
		t.Visibility = make(map[string]Visibility)
	}
	t.Visibility[nationID] = v
}
