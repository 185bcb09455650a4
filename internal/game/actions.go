package game

import (
	"fmt"
	"sort"

	"imperium/internal/common"
	"imperium/internal/game/core"
	"imperium/internal/game/mechanics"
	"imperium/internal/game/rng"
)

// ExecutePlayerAction validates and applies one player action. It returns
// true when the action took effect; rejected actions do not count against
// the per-turn budget and never mutate state beyond a notification.
func (e *Engine) ExecutePlayerAction(action core.Action, r *rng.Generator) bool {
	st := e.state
	if st.IsGameOver() || !st.Phase.CanReceiveActions() {
		return false
	}
	if st.ActionsTaken >= e.tun.Rules.ActionsPerTurn {
		st.PushNotification("No actions remain this turn.", true)
		return false
	}
	summary, ok := e.executeAction(st.PlayerNationID, action, r)
	if !ok {
		return false
	}
	st.ActionsTaken++
	if summary != "" {
		st.PushNotification(summary, false)
	}
	return true
}

// ValidateAction runs the static checks for an action without applying it.
// It returns nil when the action is well formed and affordable; callers can
// preflight orders before committing a turn slot.
func (e *Engine) ValidateAction(nationID string, action core.Action) error {
	st := e.state
	if st.IsGameOver() {
		return core.ErrGameOver
	}
	if !action.Type.Valid() {
		return core.ErrUnknownAction
	}
	n := st.Nations[nationID]
	if n == nil {
		return core.ErrUnknownNation
	}
	if n.Treasury < e.actionCost(n, action.Type) {
		return core.ErrInsufficientFunds
	}

	switch action.Type {
	case core.ActionDiplomacyOffer, core.ActionDeclareWar, core.ActionEspionage, core.ActionSabotage:
		if action.TargetNationID == "" || action.TargetNationID == nationID {
			return core.ErrMissingTarget
		}
		if st.Nations[action.TargetNationID] == nil {
			return core.ErrUnknownNation
		}
	case core.ActionRecruitArmy:
		if action.TargetTerritoryID == "" {
			return core.ErrMissingTarget
		}
		t := st.Territories[action.TargetTerritoryID]
		if t == nil {
			return core.ErrUnknownTerritory
		}
		if t.OwnerID != nationID {
			return core.ErrNotOwned
		}
	case core.ActionMoveArmy:
		if action.SourceTerritoryID == "" || action.TargetTerritoryID == "" {
			return core.ErrMissingTarget
		}
		source := st.Territories[action.SourceTerritoryID]
		target := st.Territories[action.TargetTerritoryID]
		if source == nil || target == nil {
			return core.ErrUnknownTerritory
		}
		if source.OwnerID != nationID {
			return core.ErrNotOwned
		}
		if !source.AdjacentTo(target.ID) {
			return core.ErrNotAdjacent
		}
		moveCost := e.tun.TerrainFor(string(target.Terrain)).MovementCost
		if source.Garrison-moveCost < 1 {
			return core.ErrInsufficientArmy
		}
	}
	return nil
}

// executeAction validates, dispatches to the handler and charges the cost.
// Shared by the player path and the AI phase.
func (e *Engine) executeAction(nationID string, action core.Action, r *rng.Generator) (string, bool) {
	st := e.state
	if err := e.ValidateAction(nationID, action); err != nil {
		e.logger.Debug().Err(err).Str("nation", nationID).Str("action", string(action.Type)).Msg("Action rejected")
		if nationID == st.PlayerNationID {
			st.PushNotification(fmt.Sprintf("Order refused: %s.", err), true)
		}
		return "", false
	}
	n := st.Nations[nationID]

	// Charge up front so handlers see spendable treasury; refund when the
	// handler rejects.
	cost := e.actionCost(n, action.Type)
	n.Treasury -= cost
	summary, ok := e.dispatch(n, action, r)
	if !ok {
		n.Treasury += cost
		return "", false
	}
	n.Stats.Clamp()
	st.PushLog(fmt.Sprintf("%s: %s", n.Name, summary))
	return summary, true
}

// actionCost is the static base cost adjusted by nation traits.
func (e *Engine) actionCost(n *core.Nation, t core.ActionType) int {
	cost := e.tun.Cost(string(t))
	// Carthaginian mercenary contracts make recruitment cheaper.
	if n.ID == "carthage" && t == core.ActionRecruitArmy {
		cost--
	}
	return common.Max(cost, 0)
}

// dispatch is the exhaustive handler switch over the 11 action kinds.
func (e *Engine) dispatch(n *core.Nation, action core.Action, r *rng.Generator) (string, bool) {
	switch action.Type {
	case core.ActionCollectTaxes:
		return e.handleCollectTaxes(n)
	case core.ActionRecruitArmy:
		return e.handleRecruitArmy(n, action)
	case core.ActionInvestTech:
		return e.handleInvestTech(n)
	case core.ActionPassLaw:
		return e.handlePassLaw(n)
	case core.ActionSuppressCrime:
		return e.handleSuppressCrime(n)
	case core.ActionHostGames:
		return e.handleHostGames(n)
	case core.ActionDiplomacyOffer:
		return e.handleDiplomacyOffer(n, action)
	case core.ActionDeclareWar:
		return e.handleDeclareWar(n, action)
	case core.ActionEspionage:
		return e.handleEspionage(n, action, r)
	case core.ActionSabotage:
		return e.handleSabotage(n, action, r)
	case core.ActionMoveArmy:
		return e.handleMoveArmy(n, action, r)
	}
	return "", false
}

func (e *Engine) handleCollectTaxes(n *core.Nation) (string, bool) {
	quote := mechanics.TradePrice(8, mechanics.TradeFactors{
		Influence: n.Stats.Influence,
		Blockade:  maxBlockadeAgainst(e.state.Diplomacy, n.ID),
		TreatyMod: 1,
		Tech:      n.Stats.Tech,
		Scarcity:  0.5,
	})
	income := 10 + n.Stats.Economy/6 + int(quote)
	n.AdjustTreasury(income)
	n.Stats.Support--
	// Tax farming breeds graft; Rome's courts are notoriously slow about it.
	if n.ID == "rome" {
		n.Stats.Crime += 3
	} else {
		n.Stats.Crime += 2
	}
	return fmt.Sprintf("Collected %d gold in taxes.", income), true
}

func (e *Engine) handleRecruitArmy(n *core.Nation, action core.Action) (string, bool) {
	t := e.state.Territories[action.TargetTerritoryID]
	if t == nil || t.OwnerID != n.ID {
		return "", false
	}
	recruits := 3
	// Assyrian heartland levies muster in strength.
	if n.ID == "assyria" && (t.ID == "assyria_nineveh" || t.ID == "assyria_ashur") {
		recruits++
	}
	e.setGarrison(t, t.Garrison+recruits)
	n.Stats.Military++
	return fmt.Sprintf("Recruited %d units in %s.", recruits, t.Name), true
}

func (e *Engine) handleInvestTech(n *core.Nation) (string, bool) {
	n.Stats.Tech += 2
	n.Stats.Science++

	// Unlock the cheapest researchable tech the treasury can fund;
	// declaration order breaks cost ties.
	prereqs := e.lib.TechPrereqs()
	for _, tech := range e.lib.TechsByCost() {
		if n.HasResearched(tech.ID) || tech.Cost > n.Treasury {
			continue
		}
		if !mechanics.PrereqsSatisfied(tech.ID, n.HasResearched, prereqs) {
			continue
		}
		n.Treasury -= tech.Cost
		n.Researched = append(n.Researched, tech.ID)
		sort.Strings(n.Researched)
		for stat, delta := range tech.Effects {
			applyStatDelta(&n.Stats, stat, delta)
		}
		return fmt.Sprintf("Invested in research and mastered %s.", tech.Name), true
	}
	return "Invested in research.", true
}

func (e *Engine) handlePassLaw(n *core.Nation) (string, bool) {
	// The Carthaginian council blocks reform while the state wobbles.
	if n.ID == "carthage" && n.Stats.Stability < 50 {
		if n.ID == e.state.PlayerNationID {
			e.state.PushNotification("The council refuses to legislate amid the unrest.", true)
		}
		return "", false
	}
	n.Stats.Laws += 3
	n.Stats.Stability++
	n.Stats.Support--
	n.Stats.Crime--
	return "A new law is on the books.", true
}

func (e *Engine) handleSuppressCrime(n *core.Nation) (string, bool) {
	reduction := 8 + n.Stats.Laws/25
	n.Stats.Crime -= reduction
	n.Stats.Support -= 2
	n.Stats.Stability++
	return fmt.Sprintf("Crackdown cut crime by %d.", reduction), true
}

func (e *Engine) handleHostGames(n *core.Nation) (string, bool) {
	n.Stats.Support += 6
	n.Stats.Stability += 2
	n.Stats.Influence++
	n.Stats.Crime--
	return "The games delight the public.", true
}

func (e *Engine) handleDiplomacyOffer(n *core.Nation, action core.Action) (string, bool) {
	target := e.state.Nations[action.TargetNationID]
	if target == nil || target.ID == n.ID {
		return "", false
	}
	d := e.state.Diplomacy
	penalty := mechanics.TreatyPenalty(mechanics.TreatyContext{
		SameTypeOthers: len(d.AllianceKeys()),
		RivalPartner:   d.AtWar(n.ID, target.ID),
		Relation:       d.Relation(n.ID, target.ID),
	})
	improvement := common.Max(4, 12-penalty/5)
	d.ModifyRelation(n.ID, target.ID, improvement)
	n.Stats.Influence++
	if d.Relation(n.ID, target.ID) >= 60 && !d.AtWar(n.ID, target.ID) {
		d.SetAlliance(n.ID, target.ID, true)
		return fmt.Sprintf("An alliance is struck with %s.", target.Name), true
	}
	return fmt.Sprintf("Envoys warm relations with %s.", target.Name), true
}

func (e *Engine) handleDeclareWar(n *core.Nation, action core.Action) (string, bool) {
	target := e.state.Nations[action.TargetNationID]
	if target == nil || target.ID == n.ID {
		return "", false
	}
	d := e.state.Diplomacy
	if d.AtWar(n.ID, target.ID) {
		return "", false
	}
	d.SetWar(n.ID, target.ID, true)
	d.ModifyRelation(n.ID, target.ID, -40)
	n.Stats.Stability -= 2
	n.Stats.Support -= 3
	if target.ID == e.state.PlayerNationID {
		e.state.PushNotification(fmt.Sprintf("%s has declared war on you!", n.Name), true)
	}
	return fmt.Sprintf("War is declared on %s.", target.Name), true
}

func (e *Engine) handleEspionage(n *core.Nation, action core.Action, r *rng.Generator) (string, bool) {
	target := e.state.Nations[action.TargetNationID]
	if target == nil || target.ID == n.ID {
		return "", false
	}
	d := e.state.Diplomacy
	odds := mechanics.IntrigueOdds(mechanics.IntrigueFactors{
		AgentSkill:  n.Stats.Science,
		TargetSkill: target.Stats.Science,
		Relation:    d.Relation(n.ID, target.ID),
		Support:     n.Stats.Support,
		Blockade:    d.Blockade(n.ID, target.ID),
	})
	if r.Next() < odds {
		n.Stats.Science++
		n.Stats.Influence++
		for _, t := range e.territoriesOf(target.ID) {
			if t.VisibleTo(n.ID) == core.VisibilityHidden {
				t.SetVisibility(n.ID, core.VisibilityFogged)
			}
		}
		return fmt.Sprintf("Agents return from %s with full ledgers.", target.Name), true
	}
	d.ModifyRelation(n.ID, target.ID, -10)
	n.Stats.Influence--
	if target.ID == e.state.PlayerNationID {
		e.state.PushNotification(fmt.Sprintf("A spy of %s was caught in your court.", n.Name), true)
	}
	return fmt.Sprintf("The mission in %s is blown.", target.Name), true
}

func (e *Engine) handleSabotage(n *core.Nation, action core.Action, r *rng.Generator) (string, bool) {
	target := e.state.Nations[action.TargetNationID]
	if target == nil || target.ID == n.ID {
		return "", false
	}
	d := e.state.Diplomacy
	odds := mechanics.IntrigueOdds(mechanics.IntrigueFactors{
		AgentSkill:  n.Stats.Military,
		TargetSkill: target.Stats.Laws,
		Relation:    d.Relation(n.ID, target.ID),
		Support:     n.Stats.Support,
		Blockade:    d.Blockade(n.ID, target.ID),
	})
	if r.Next() < odds {
		target.AdjustTreasury(-15)
		target.Stats.Economy -= 3
		target.Stats.Stability -= 2
		target.Stats.Clamp()
		if target.ID == e.state.PlayerNationID {
			e.state.PushNotification("Saboteurs torched your granaries.", true)
		}
		return fmt.Sprintf("Saboteurs cripple %s's stores.", target.Name), true
	}
	d.ModifyRelation(n.ID, target.ID, -15)
	n.Stats.Stability--
	n.Stats.Support--
	return fmt.Sprintf("The sabotage of %s fails loudly.", target.Name), true
}

// handleMoveArmy is the most involved handler: it validates adjacency and
// garrison retention, applies zone-of-control penalties, and either
// reinforces a friendly territory or hands off to the combat resolver.
func (e *Engine) handleMoveArmy(n *core.Nation, action core.Action, r *rng.Generator) (string, bool) {
	st := e.state
	source := st.Territories[action.SourceTerritoryID]
	target := st.Territories[action.TargetTerritoryID]
	if source == nil || target == nil || source.ID == target.ID {
		return "", false
	}
	if source.OwnerID != n.ID {
		return "", false
	}
	if !source.AdjacentTo(target.ID) {
		return "", false
	}

	moveCost := e.tun.TerrainFor(string(target.Terrain)).MovementCost
	force := common.Min(source.Garrison-moveCost, 12)
	if force < 1 {
		if n.ID == st.PlayerNationID {
			st.PushNotification("The garrison is too thin to march.", true)
		}
		return "", false
	}

	// Zone of control: marching past a warring neighbor strains the column.
	if e.contestedBy(source, n.ID) || e.contestedBy(target, n.ID) {
		penalty := mechanics.SupplyPenalty(mechanics.SupplyFactors{
			Distance:       moveCost,
			SupportDeficit: 100 - n.Stats.Support,
			Terrain:        common.ClampF(e.tun.TerrainFor(string(target.Terrain)).CombatModifier-1, 0, 0.2),
			Blockade:       maxBlockadeAgainst(st.Diplomacy, n.ID),
		})
		source.Supply = common.Clamp(source.Supply-int(penalty*20), 0, 100)
		source.Morale = common.Clamp(source.Morale-int(penalty*10), 0, 100)
	}

	if target.OwnerID == n.ID {
		e.setGarrison(source, source.Garrison-force)
		e.setGarrison(target, target.Garrison+force)
		target.Morale = common.Clamp(target.Morale+2, 0, 100)
		return fmt.Sprintf("%d units reinforce %s.", force, target.Name), true
	}

	defenderID := target.OwnerID
	if !st.Diplomacy.AtWar(n.ID, defenderID) {
		// Marching on foreign soil is a declaration in itself.
		st.Diplomacy.SetWar(n.ID, defenderID, true)
		st.Diplomacy.ModifyRelation(n.ID, defenderID, -30)
	}
	e.setGarrison(source, source.Garrison-force)
	result, err := e.ResolveCombat(n.ID, defenderID, target.ID, force, r, source.ID)
	if err != nil {
		return "", false
	}
	switch result.Outcome {
	case core.OutcomeAttackerVictory:
		return fmt.Sprintf("%s is taken by storm.", target.Name), true
	case core.OutcomeDefenderHolds:
		return fmt.Sprintf("The assault on %s is repulsed.", target.Name), true
	default:
		return fmt.Sprintf("The battle for %s grinds on (siege %d%%).", target.Name, result.SiegeProgress), true
	}
}

// contestedBy reports whether the territory or one of its neighbors is held
// by a nation at war with nationID.
func (e *Engine) contestedBy(t *core.Territory, nationID string) bool {
	if t.OwnerID != nationID && e.state.Diplomacy.AtWar(nationID, t.OwnerID) {
		return true
	}
	for _, nb := range t.Neighbors {
		other := e.state.Territories[nb]
		if other == nil || other.OwnerID == nationID {
			continue
		}
		if e.state.Diplomacy.AtWar(nationID, other.OwnerID) {
			return true
		}
	}
	return false
}

// applyStatDelta routes a named tech effect onto the stat block.
func applyStatDelta(s *core.Stats, stat string, delta int) {
	switch stat {
	case "stability":
		s.Stability += delta
	case "military":
		s.Military += delta
	case "tech":
		s.Tech += delta
	case "economy":
		s.Economy += delta
	case "crime":
		s.Crime += delta
	case "influence":
		s.Influence += delta
	case "support":
		s.Support += delta
	case "science":
		s.Science += delta
	case "laws":
		s.Laws += delta
	}
	s.Clamp()
}
