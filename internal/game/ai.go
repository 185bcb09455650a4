package game

import (
	"imperium/internal/game/core"
	"imperium/internal/game/rng"
)

// aiActionLimit caps how many actions an AI nation takes per turn. AI
// nations spend less than the player budget to keep the pace readable.
const aiActionLimit = 2

// decideActions plans up to aiActionLimit actions for one AI nation. The
// plan is built against the current state; the executor may still reject
// an action, which simply wastes that slot. All candidate scans walk the
// territory table in declaration order so that replays stay stable.
func (e *Engine) decideActions(n *core.Nation, r *rng.Generator) []core.Action {
	var primary, secondary core.Action
	switch n.Archetype {
	case core.ArchetypeExpansionist:
		primary, secondary = e.planExpansionist(n)
	case core.ArchetypeDefensive:
		primary, secondary = e.planDefensive(n, r)
	case core.ArchetypeOpportunistic:
		primary, secondary = e.planOpportunistic(n, r)
	default:
		return nil
	}
	return []core.Action{primary, secondary}
}

// planExpansionist picks a fight with the first bordering nation it is not
// already fighting, then presses any ongoing war with an assault. It
// always backs the plan with fresh recruits.
func (e *Engine) planExpansionist(n *core.Nation) (core.Action, core.Action) {
	primary := core.Action{Type: core.ActionRecruitArmy}
	if target := e.firstBorderNation(n.ID, func(otherID string) bool {
		return !e.state.Diplomacy.AtWar(n.ID, otherID)
	}); target != "" {
		primary = core.Action{Type: core.ActionDeclareWar, TargetNationID: target}
	} else if src, dst := e.firstAssault(n.ID); dst != "" {
		primary = core.Action{Type: core.ActionMoveArmy, SourceTerritoryID: src, TargetTerritoryID: dst}
	}

	secondary := core.Action{Type: core.ActionRecruitArmy}
	if owned := e.territoriesOf(n.ID); len(owned) > 0 {
		secondary.TargetTerritoryID = owned[0].ID
	}
	if primary.Type == core.ActionRecruitArmy {
		primary.TargetTerritoryID = secondary.TargetTerritoryID
	}
	return primary, secondary
}

// planDefensive tends the home front: crime first, stability next, tech
// otherwise. The second slot alternates between taxes and research on a
// coin flip so defensive nations are not perfectly predictable.
func (e *Engine) planDefensive(n *core.Nation, r *rng.Generator) (core.Action, core.Action) {
	var primary core.Action
	switch {
	case n.Stats.Crime > 60:
		primary = core.Action{Type: core.ActionSuppressCrime}
	case n.Stats.Stability < 55:
		primary = core.Action{Type: core.ActionPassLaw}
	default:
		primary = core.Action{Type: core.ActionInvestTech}
	}
	secondary := core.Action{Type: core.ActionInvestTech}
	if r.Next() > 0.5 {
		secondary = core.Action{Type: core.ActionCollectTaxes}
	}
	return primary, secondary
}

// planOpportunistic hunts weakened neighbors. A bordering territory whose
// owner is wobbling gets attacked; failing that, it flatters a strong
// neighbor or just collects taxes, and always keeps its spies on the
// player.
func (e *Engine) planOpportunistic(n *core.Nation, r *rng.Generator) (core.Action, core.Action) {
	primary := core.Action{Type: core.ActionCollectTaxes}
	if src, dst := e.firstWeakTarget(n.ID); dst != "" {
		primary = core.Action{Type: core.ActionMoveArmy, SourceTerritoryID: src, TargetTerritoryID: dst}
	} else if target := e.firstBorderNation(n.ID, func(string) bool { return true }); target != "" && r.Next() > 0.5 {
		primary = core.Action{Type: core.ActionDiplomacyOffer, TargetNationID: target}
	}
	secondary := core.Action{Type: core.ActionEspionage, TargetNationID: e.state.PlayerNationID}
	if n.ID == e.state.PlayerNationID {
		secondary = core.Action{Type: core.ActionCollectTaxes}
	}
	return primary, secondary
}

// firstBorderNation scans owned territories in declaration order and
// returns the first foreign neighbor's owner that passes the filter.
func (e *Engine) firstBorderNation(nationID string, keep func(otherID string) bool) string {
	for _, t := range e.territoriesOf(nationID) {
		for _, nb := range t.Neighbors {
			other := e.state.Territories[nb]
			if other == nil || other.OwnerID == nationID || other.OwnerID == "" {
				continue
			}
			if keep(other.OwnerID) {
				return other.OwnerID
			}
		}
	}
	return ""
}

// firstAssault returns the first owned territory adjacent to a tile held
// by a nation this one is at war with, plus that tile.
func (e *Engine) firstAssault(nationID string) (string, string) {
	for _, t := range e.territoriesOf(nationID) {
		for _, nb := range t.Neighbors {
			other := e.state.Territories[nb]
			if other == nil || other.OwnerID == nationID {
				continue
			}
			if e.state.Diplomacy.AtWar(nationID, other.OwnerID) {
				return t.ID, other.ID
			}
		}
	}
	return "", ""
}

// firstWeakTarget returns the first bordering enemy tile whose owner has
// stability under 60, plus the adjacent friendly source.
func (e *Engine) firstWeakTarget(nationID string) (string, string) {
	for _, t := range e.territoriesOf(nationID) {
		for _, nb := range t.Neighbors {
			other := e.state.Territories[nb]
			if other == nil || other.OwnerID == nationID || other.OwnerID == "" {
				continue
			}
			owner := e.state.Nations[other.OwnerID]
			if owner != nil && owner.Stats.Stability < 60 {
				return t.ID, other.ID
			}
		}
	}
	return "", ""
}
