package game

import (
	"fmt"

	"imperium/internal/common"
	"imperium/internal/game/core"
	"imperium/internal/game/mechanics"
	"imperium/internal/game/rng"
)

// AdvanceTurn runs the AI phase, the upkeep and events phase, and the
// victory check, then opens the next player phase. All iteration is over
// sorted nation ids and declaration-order territories so that a fixed
// seed replays identically.
func (e *Engine) AdvanceTurn(r *rng.Generator) error {
	st := e.state
	if st.IsGameOver() {
		return core.ErrGameOver
	}

	st.Phase = core.PhaseAI
	e.runAIPhase(r)

	st.Phase = core.PhaseEvents
	e.runUpkeep()
	e.runTerritoryDrift()
	e.decayBlockades()
	e.runEvents(r)
	e.runRevolts(r)

	if e.checkVictory() {
		return nil
	}

	e.RecomputeVisibility()
	st.Turn++
	st.ActionsTaken = 0
	st.Phase = core.PhasePlayer
	e.logger.Debug().Int("turn", st.Turn).Msg("Turn advanced")
	return nil
}

func (e *Engine) runAIPhase(r *rng.Generator) {
	st := e.state
	for _, id := range st.NationIDs() {
		if id == st.PlayerNationID {
			continue
		}
		n := st.Nations[id]
		taken := 0
		for _, action := range e.decideActions(n, r) {
			if taken >= aiActionLimit {
				break
			}
			if _, ok := e.executeAction(id, action, r); ok {
				taken++
			}
		}
	}
}

// runUpkeep applies per-nation income, upkeep and stat drift.
func (e *Engine) runUpkeep() {
	st := e.state
	up := e.tun.Upkeep
	for _, id := range st.NationIDs() {
		n := st.Nations[id]
		owned := st.OwnedCount(id)
		n.AdjustTreasury(owned*up.IncomePerTerritory - owned*up.UpkeepPerTerritory)
		n.Stats.Support -= up.SupportDecay

		// Science drifts toward the tech level rather than decaying.
		if n.Stats.Science < n.Stats.Tech {
			n.Stats.Science += up.ScienceDrift
		} else if n.Stats.Science > n.Stats.Tech {
			n.Stats.Science -= up.ScienceDrift
		}

		n.Stats.Crime += up.CrimeGrowth
		n.Stats.Crime -= up.CrimeDecayLaws + n.Stats.Laws/30
		n.Stats.Stability -= up.WarStabilityDecay * len(st.Diplomacy.WarsOf(id))

		switch id {
		case "rome":
			if n.Stats.Crime > 70 {
				n.Stats.Stability -= 2
			}
		case "assyria":
			n.Stats.Laws--
		case "carthage":
			if n.Stats.Stability < 40 {
				n.Stats.Support -= 2
			}
		}
		n.Stats.Clamp()
	}
}

// runTerritoryDrift recovers or erodes supply and morale per tile and
// advances passive sieges.
func (e *Engine) runTerritoryDrift() {
	st := e.state
	up := e.tun.Upkeep
	for _, id := range e.lib.TerritoryOrder() {
		t := st.Territories[id]
		if t.SiegeProgress > 0 {
			t.Supply = common.Clamp(t.Supply-up.SiegeSupplyLoss, 0, 100)
			t.Morale = common.Clamp(t.Morale-up.SiegeMoraleLoss, 0, 100)
			e.advancePassiveSiege(t)
			continue
		}
		t.Supply = common.Clamp(t.Supply+up.SupplyRecovery, 0, 100)
		t.Morale = common.Clamp(t.Morale+up.MoraleRecovery, 0, 100)
	}
}

// advancePassiveSiege grinds an open siege forward using the combined
// garrisons of adjacent hostile tiles. A siege with no besieger left
// slackens instead.
func (e *Engine) advancePassiveSiege(t *core.Territory) {
	st := e.state
	besieging := 0
	for _, nb := range t.Neighbors {
		other := st.Territories[nb]
		if other == nil || other.OwnerID == t.OwnerID || other.OwnerID == "" {
			continue
		}
		if st.Diplomacy.AtWar(t.OwnerID, other.OwnerID) {
			besieging += other.Garrison
		}
	}
	if besieging == 0 {
		t.SiegeProgress = common.Max(t.SiegeProgress-e.tun.Combat.SiegeRetreatStep, 0)
		return
	}
	progress := mechanics.SiegeAdvance(float64(t.SiegeProgress)/100, float64(besieging), float64(t.Garrison), 0)
	t.SiegeProgress = common.Clamp(int(progress*100), 0, 100)
	if t.SiegeProgress >= 100 {
		e.fallToSiege(t)
	}
}

// fallToSiege resolves a siege that reached full progress outside combat:
// the strongest adjacent besieger takes the tile.
func (e *Engine) fallToSiege(t *core.Territory) {
	st := e.state
	var takerID string
	best := -1
	for _, nb := range t.Neighbors {
		other := st.Territories[nb]
		if other == nil || other.OwnerID == t.OwnerID || other.OwnerID == "" {
			continue
		}
		if st.Diplomacy.AtWar(t.OwnerID, other.OwnerID) && other.Garrison > best {
			best = other.Garrison
			takerID = other.OwnerID
		}
	}
	if takerID == "" {
		return
	}
	loser := t.OwnerID
	t.OwnerID = takerID
	t.SiegeProgress = 0
	t.Morale = 50
	t.Supply = common.Clamp(t.Supply, 20, 100)
	t.SetVisibility(takerID, core.VisibilityVisible)
	st.PushLog(fmt.Sprintf("%s falls after a long siege.", t.Name))
	if loser == st.PlayerNationID || takerID == st.PlayerNationID {
		st.PushNotification(fmt.Sprintf("%s has fallen to siege.", t.Name), loser == st.PlayerNationID)
	}
}

func (e *Engine) decayBlockades() {
	d := e.state.Diplomacy
	for key, severity := range d.Blockades {
		a, b := core.SplitRelationKey(key)
		d.SetBlockade(a, b, severity-e.tun.Upkeep.BlockadeDecay)
	}
}

// runEvents draws one event per nation. The player always gets one; AI
// nations are skipped on a fixed chance, but the skip roll itself is
// always consumed so that the draw sequence stays aligned.
func (e *Engine) runEvents(r *rng.Generator) {
	st := e.state
	for _, id := range st.NationIDs() {
		if id != st.PlayerNationID && r.Next() < e.tun.Events.AISkipChance {
			continue
		}
		e.applyEvent(st.Nations[id], r)
	}
}

// runRevolts checks every owned territory for unrest-driven uprisings.
func (e *Engine) runRevolts(r *rng.Generator) {
	st := e.state
	rv := e.tun.Revolt
	for _, id := range e.lib.TerritoryOrder() {
		t := st.Territories[id]
		if t.OwnerID == "" {
			continue
		}
		n := st.Nations[t.OwnerID]
		if n == nil {
			continue
		}
		unrest := n.Stats.Crime + (100 - t.Morale) - n.Stats.Stability
		if unrest <= rv.Threshold {
			continue
		}
		if r.Next() >= rv.Chance {
			continue
		}
		lost := common.Min(rv.MaxGarrison, t.Garrison)
		if lost > 0 {
			e.setGarrison(t, t.Garrison-lost)
		}
		n.Stats.Stability -= rv.StabilityCost
		n.Stats.Clamp()
		st.PushLog(fmt.Sprintf("Revolt in %s! %d garrison units desert.", t.Name, lost))
		if t.OwnerID == st.PlayerNationID {
			st.PushNotification(fmt.Sprintf("Revolt in %s!", t.Name), true)
		}
	}
}

// checkVictory ends the game when a win or defeat condition is met and
// reports whether it did.
func (e *Engine) checkVictory() bool {
	st := e.state
	v := e.tun.Victory
	player := st.Player()
	if player == nil {
		return false
	}
	owned := st.OwnedCount(player.ID)

	switch {
	case owned >= v.TerritoryGoal:
		st.Winner = player.ID
	case player.Stats.Influence >= v.InfluenceGoal && player.Stats.Stability >= v.StabilityGoal:
		st.Winner = player.ID
	case player.Stats.Stability <= v.DefeatStability || owned == 0:
		st.Defeated = true
	default:
		// Any rival reaching the territory goal also ends the game.
		for _, id := range st.NationIDs() {
			if id != player.ID && st.OwnedCount(id) >= v.TerritoryGoal {
				st.Winner = id
				break
			}
		}
	}

	if st.Winner == "" && !st.Defeated {
		return false
	}
	st.Phase = core.PhaseGameOver
	if st.Defeated {
		st.PushLog("The realm collapses. The game is over.")
		st.PushNotification("Your nation has fallen.", true)
	} else if st.Winner == player.ID {
		st.PushLog(fmt.Sprintf("%s stands triumphant.", player.Name))
		st.PushNotification("Victory is yours!", false)
	} else {
		winner := st.Nations[st.Winner]
		st.PushLog(fmt.Sprintf("%s has won the age.", winner.Name))
		st.PushNotification(fmt.Sprintf("%s has achieved dominion.", winner.Name), true)
	}
	e.logger.Info().Str("winner", st.Winner).Bool("defeated", st.Defeated).Msg("Game over")
	return true
}
