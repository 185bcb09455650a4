package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"imperium/internal/game/core"
	"imperium/internal/game/rng"
)

func TestResolveCombatDecisiveAssault(t *testing.T) {
	e := newTestEngine(t, "rome")
	st := e.State()
	r := rng.New(42)

	result, err := e.ResolveCombat("rome", "carthage", "carthage_carthage", 12, r, "rome_latium")
	require.NoError(t, err)

	assert.Equal(t, core.OutcomeAttackerVictory, result.Outcome)
	assert.Greater(t, result.AttackerLoss, 0)
	assert.Greater(t, result.DefenderLoss, 0)
	assert.LessOrEqual(t, result.AttackerLoss, 12)
	assert.Equal(t, 0, result.SiegeProgress)

	captured := st.Territories["carthage_carthage"]
	assert.Equal(t, "rome", captured.OwnerID)
	assert.Equal(t, 12-result.AttackerLoss, captured.Garrison)
	assert.Equal(t, 50, captured.Morale)
	assert.Equal(t, core.VisibilityVisible, captured.VisibleTo("rome"))

	// The loser keeps playing with the defeat penalties applied.
	assert.Equal(t, 2, st.OwnedCount("carthage"))
	assert.Nil(t, st.Nations["carthage"].ArmyAt("carthage_carthage"))
	require.NotNil(t, st.Nations["rome"].ArmyAt("carthage_carthage"))

	require.NotEmpty(t, st.BattleReports)
	assert.Equal(t, result, st.BattleReports[0])
}

func TestResolveCombatDefenderHolds(t *testing.T) {
	e := newTestEngine(t, "rome")
	st := e.State()
	r := rng.New(42)

	// A token column against a dug-in garrison is turned back.
	st.Nations["rome"].Stats.Military = 20
	target := st.Territories["carthage_carthage"]
	target.SiegeProgress = 30

	result, err := e.ResolveCombat("rome", "carthage", "carthage_carthage", 4, r, "rome_latium")
	require.NoError(t, err)

	assert.Equal(t, core.OutcomeDefenderHolds, result.Outcome)
	assert.Equal(t, "carthage", target.OwnerID)
	assert.Equal(t, 3, result.AttackerLoss)
	assert.Equal(t, 2, result.DefenderLoss)
	assert.Equal(t, 6, target.Garrison)
	// A repulsed assault slackens the siege.
	assert.Equal(t, 18, result.SiegeProgress)
	assert.Equal(t, 18, target.SiegeProgress)
	// Morale of the held territory rises.
	assert.Equal(t, 74, target.Morale)
	assert.Equal(t, attackerSupplyHolds, result.AttackerSupplyCost)
	assert.Equal(t, defenderSupplyHolds, result.DefenderSupplyCost)

	// The lone survivor rejoins the source garrison.
	source := st.Territories["rome_latium"]
	assert.Equal(t, 9, source.Garrison)
	assert.Equal(t, 65, source.Morale)
}

func TestResolveCombatLossBounds(t *testing.T) {
	for _, strength := range []int{1, 5, 12} {
		e := newTestEngine(t, "rome")
		garrison := e.State().Territories["carthage_carthage"].Garrison
		result, err := e.ResolveCombat("rome", "carthage", "carthage_carthage", strength, rng.New(9), "rome_latium")
		require.NoError(t, err)
		assert.GreaterOrEqual(t, result.AttackerLoss, 1)
		assert.LessOrEqual(t, result.AttackerLoss, strength)
		assert.GreaterOrEqual(t, result.DefenderLoss, 1)
		assert.LessOrEqual(t, result.DefenderLoss, garrison)
	}
}

func TestResolveCombatStalemateAdvancesSiege(t *testing.T) {
	e := newTestEngine(t, "rome")
	st := e.State()

	// Matched forces: equal stats and equal numbers keep both powers
	// inside the decisive threshold for these rolls.
	st.Nations["carthage"].Stats = st.Nations["rome"].Stats
	target := st.Territories["carthage_carthage"]

	result, err := e.ResolveCombat("rome", "carthage", "carthage_carthage", target.Garrison, rng.New(1), "rome_latium")
	require.NoError(t, err)

	assert.Equal(t, core.OutcomeStalemate, result.Outcome)
	assert.Equal(t, "carthage", target.OwnerID)
	assert.GreaterOrEqual(t, result.SiegeProgress, 4)
	assert.Equal(t, result.SiegeProgress, target.SiegeProgress)
	// Stalemates bleed the defenders' stores hardest.
	assert.Equal(t, attackerSupplyStalemate, result.AttackerSupplyCost)
	assert.Equal(t, defenderSupplyStalemate, result.DefenderSupplyCost)
}

func TestResolveCombatFullSiegeForcesCapture(t *testing.T) {
	e := newTestEngine(t, "rome")
	st := e.State()
	target := st.Territories["carthage_carthage"]
	target.SiegeProgress = 99

	// These rolls produce a stalemate; on a 99% siege any stalemate step
	// tips the progress over 100 and the tile falls.
	result, err := e.ResolveCombat("rome", "carthage", "carthage_carthage", 12, rng.New(1), "rome_latium")
	require.NoError(t, err)

	assert.Equal(t, core.OutcomeAttackerVictory, result.Outcome)
	assert.Equal(t, "rome", target.OwnerID)
	assert.Equal(t, 0, result.SiegeProgress)
	assert.Equal(t, 0, target.SiegeProgress)
}

func TestResolveCombatUnknownParties(t *testing.T) {
	e := newTestEngine(t, "rome")
	r := rng.New(1)

	_, err := e.ResolveCombat("rome", "atlantis", "carthage_carthage", 5, r, "")
	assert.ErrorIs(t, err, core.ErrUnknownNation)

	_, err = e.ResolveCombat("rome", "carthage", "nowhere", 5, r, "")
	assert.ErrorIs(t, err, core.ErrUnknownTerritory)
}
