package core

import "imperium/internal/common"

// Archetype is the fixed AI behavioral profile of a non-player nation.
type Archetype string

const (
	ArchetypeExpansionist  Archetype = "expansionist"
	ArchetypeDefensive     Archetype = "defensive"
	ArchetypeOpportunistic Archetype = "opportunistic"
)

// Archetypes lists the profiles in round-robin assignment order.
var Archetypes = []Archetype{ArchetypeExpansionist, ArchetypeDefensive, ArchetypeOpportunistic}

// Stats are the nine bounded nation meters. Every value stays in [0, 100];
// callers adjust fields directly and then call Clamp.
type Stats struct {
	Stability int `json:"stability"`
	Military  int `json:"military"`
	Tech      int `json:"tech"`
	Economy   int `json:"economy"`
	Crime     int `json:"crime"`
	Influence int `json:"influence"`
	Support   int `json:"support"`
	Science   int `json:"science"`
	Laws      int `json:"laws"`
}

// Clamp forces every meter back into [0, 100].
func (s *Stats) Clamp() {
	s.Stability = common.Clamp(s.Stability, 0, 100)
	s.Military = common.Clamp(s.Military, 0, 100)
	s.Tech = common.Clamp(s.Tech, 0, 100)
	s.Economy = common.Clamp(s.Economy, 0, 100)
	s.Crime = common.Clamp(s.Crime, 0, 100)
	s.Influence = common.Clamp(s.Influence, 0, 100)
	s.Support = common.Clamp(s.Support, 0, 100)
	s.Science = common.Clamp(s.Science, 0, 100)
	s.Laws = common.Clamp(s.Laws, 0, 100)
}

// Each visits every meter in declaration order.
func (s *Stats) Each(fn func(name string, value int)) {
	fn("stability", s.Stability)
	fn("military", s.Military)
	fn("tech", s.Tech)
	fn("economy", s.Economy)
	fn("crime", s.Crime)
	fn("influence", s.Influence)
	fn("support", s.Support)
	fn("science", s.Science)
	fn("laws", s.Laws)
}

// Army mirrors a garrison the nation maintains at a territory.
type Army struct {
	TerritoryID string `json:"territoryId"`
	Strength    int    `json:"strength"`
}

// Nation is a playable or AI power. Built once at game start and mutated
// every action and turn; a nation record persists even at zero territories.
type Nation struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Stats      Stats     `json:"stats"`
	Treasury   int       `json:"treasury"`
	Armies     []Army    `json:"armies"`
	Archetype  Archetype `json:"archetype,omitempty"` // empty for the player nation
	Researched []string  `json:"researched"`          // sorted tech ids
}

// AdjustTreasury applies delta, clamping at zero.
func (n *Nation) AdjustTreasury(delta int) {
	n.Treasury += delta
	if n.Treasury < 0 {
		n.Treasury = 0
	}
}

// ArmyAt returns the army record mirrored at the territory, or nil.
func (n *Nation) ArmyAt(territoryID string) *Army {
	for i := range n.Armies {
		if n.Armies[i].TerritoryID == territoryID {
			return &n.Armies[i]
		}
	}
	return nil
}

// SetArmyAt records strength at a territory, creating the mirror if needed
// and dropping it when strength reaches zero.
func (n *Nation) SetArmyAt(territoryID string, strength int) {
	if strength <= 0 {
		n.RemoveArmyAt(territoryID)
		return
	}
	if a := n.ArmyAt(territoryID); a != nil {
		a.Strength = strength
		return
	}
	n.Armies = append(n.Armies, Army{TerritoryID: territoryID, Strength: strength})
}

// RemoveArmyAt deletes the army mirror at the territory, if present.
func (n *Nation) RemoveArmyAt(territoryID string) {
	for i := range n.Armies {
		if n.Armies[i].TerritoryID == territoryID {
			n.Armies = append(n.Armies[:i], n.Armies[i+1:]...)
			return
		}
	}
}

// HasResearched reports whether the tech id is in the researched set.
func (n *Nation) HasResearched(techID string) bool {
	for _, id := range n.Researched {
		if id == techID {
			return true
		}
	}
	return false
}
