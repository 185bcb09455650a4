package game

import (
	"fmt"
	"math"

	"imperium/internal/common"
	"imperium/internal/game/core"
	"imperium/internal/game/rng"
)

// Supply and morale side effects by outcome. An attacker victory is the
// costliest battle for both quartermasters.
const (
	attackerSupplyVictory   = 14
	attackerSupplyStalemate = 11
	attackerSupplyHolds     = 8

	defenderSupplyVictory   = 24
	defenderSupplyStalemate = 16
	defenderSupplyHolds     = 8
)

// ResolveCombat resolves one attack on a territory and mutates state
// accordingly. Given identical state and a generator at the same position
// the outcome is bit-identical; the attacker's roll is always drawn before
// the defender's.
func (e *Engine) ResolveCombat(attackerID, defenderID, territoryID string, attackingStrength int, r *rng.Generator, sourceTerritoryID string) (core.CombatResult, error) {
	st := e.state
	attacker := st.Nations[attackerID]
	defender := st.Nations[defenderID]
	target := st.Territories[territoryID]
	if attacker == nil || defender == nil {
		return core.CombatResult{}, core.ErrUnknownNation
	}
	if target == nil {
		return core.CombatResult{}, core.ErrUnknownTerritory
	}
	var source *core.Territory
	if sourceTerritoryID != "" {
		source = st.Territories[sourceTerritoryID]
	}

	terrainMod := e.tun.TerrainFor(string(target.Terrain)).CombatModifier
	cmb := e.tun.Combat

	attackerMorale := 0.75
	attackerSupply := 1.0
	if source != nil {
		attackerMorale = 0.6 + float64(source.Morale)/200
		attackerSupply = 0.6 + float64(source.Supply)/200
	}
	attackerRoll := r.InRange(cmb.RandomnessMin, cmb.RandomnessMax)
	attackerPower := (float64(attackingStrength) + float64(attacker.Stats.Military)/4) *
		(1 + float64(attacker.Stats.Tech)/cmb.AttackerTechDiv) *
		(1 + float64(attacker.Stats.Support)/cmb.AttackerSupportDiv) *
		attackerMorale * attackerSupply * terrainMod * attackerRoll

	defenderSupply := math.Max(0.4, 0.6+float64(target.Supply)/200)
	defenderRoll := r.InRange(cmb.RandomnessMin, cmb.RandomnessMax)
	defenderPower := (float64(target.Garrison) + float64(defender.Stats.Military)/4) *
		(1 + float64(defender.Stats.Tech)/cmb.DefenderTechDiv) *
		(1 + float64(defender.Stats.Support)/cmb.DefenderSupportDiv) *
		(0.6 + float64(target.Morale)/200) *
		defenderSupply * terrainMod *
		(1 + float64(target.SiegeProgress)/150) *
		defenderRoll

	outcome := core.OutcomeStalemate
	switch {
	case attackerPower > defenderPower*cmb.DecisiveThreshold:
		outcome = core.OutcomeAttackerVictory
	case defenderPower > attackerPower*cmb.DecisiveThreshold:
		outcome = core.OutcomeDefenderHolds
	}

	// Siege is the slow road to the same gate: a stalemate that grinds the
	// progress bar to 100 becomes a victory.
	siege := target.SiegeProgress
	switch outcome {
	case core.OutcomeAttackerVictory:
		siege = 0
	case core.OutcomeDefenderHolds:
		siege = common.Max(0, siege-cmb.SiegeRetreatStep)
	case core.OutcomeStalemate:
		step := common.Max(4, int(math.Round(attackerPower/defenderPower*10)))
		siege = common.Clamp(siege+step, 0, 100)
		if siege >= 100 {
			outcome = core.OutcomeAttackerVictory
			siege = 0
		}
	}

	total := attackerPower + defenderPower
	attackerLoss := common.Clamp(int(math.Round(defenderPower/total*float64(attackingStrength))), 1, attackingStrength)
	defenderLoss := common.Clamp(int(math.Round(attackerPower/total*float64(target.Garrison))), 1, common.Max(target.Garrison, 1))

	attackerSupplyCost := attackerSupplyHolds
	defenderSupplyCost := defenderSupplyHolds
	switch outcome {
	case core.OutcomeAttackerVictory:
		attackerSupplyCost = attackerSupplyVictory
		defenderSupplyCost = defenderSupplyVictory
	case core.OutcomeStalemate:
		attackerSupplyCost = attackerSupplyStalemate
		defenderSupplyCost = defenderSupplyStalemate
	}

	if source != nil {
		source.Supply = common.Clamp(source.Supply-attackerSupplyCost, 0, 100)
		switch outcome {
		case core.OutcomeAttackerVictory:
			source.Morale = common.Clamp(source.Morale+6, 0, 100)
		case core.OutcomeStalemate:
			source.Morale = common.Clamp(source.Morale-2, 0, 100)
		case core.OutcomeDefenderHolds:
			source.Morale = common.Clamp(source.Morale-5, 0, 100)
		}
	}

	survivors := attackingStrength - attackerLoss

	if outcome == core.OutcomeAttackerVictory {
		defender.RemoveArmyAt(target.ID)
		target.OwnerID = attackerID
		target.SiegeProgress = 0
		target.Morale = 50
		target.Supply = common.Clamp(target.Supply-defenderSupplyCost, 20, 100)
		e.setGarrison(target, survivors)
		target.SetVisibility(attackerID, core.VisibilityVisible)

		defender.Stats.Stability -= 4
		defender.Stats.Support -= 2
		attacker.Stats.Stability -= 1
		defender.Stats.Clamp()
		attacker.Stats.Clamp()
	} else {
		target.SiegeProgress = siege
		target.Supply = common.Clamp(target.Supply-defenderSupplyCost, 0, 100)
		if outcome == core.OutcomeDefenderHolds {
			target.Morale = common.Clamp(target.Morale+4, 0, 100)
		} else {
			target.Morale = common.Clamp(target.Morale-3, 0, 100)
		}
		e.setGarrison(target, target.Garrison-defenderLoss)
		if source != nil && survivors > 0 {
			e.setGarrison(source, source.Garrison+survivors)
		}
	}

	result := core.CombatResult{
		Turn:               st.Turn,
		AttackerID:         attackerID,
		DefenderID:         defenderID,
		TerritoryID:        territoryID,
		Outcome:            outcome,
		AttackerLoss:       attackerLoss,
		DefenderLoss:       defenderLoss,
		SiegeProgress:      siege,
		AttackerSupplyCost: attackerSupplyCost,
		DefenderSupplyCost: defenderSupplyCost,
	}
	st.PushBattleReport(result)
	st.PushLog(fmt.Sprintf("%s attacked %s at %s: %s (losses %d/%d)",
		attacker.Name, defender.Name, target.Name, outcome, attackerLoss, defenderLoss))

	if attackerID == st.PlayerNationID || defenderID == st.PlayerNationID {
		e.RecomputeVisibility()
	}

	e.logger.Debug().
		Str("attacker", attackerID).
		Str("defender", defenderID).
		Str("territory", territoryID).
		Str("outcome", string(outcome)).
		Float64("attacker_power", attackerPower).
		Float64("defender_power", defenderPower).
		Msg("Combat resolved")

	return result, nil
}
