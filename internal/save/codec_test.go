package save

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"imperium/internal/game/core"
	"imperium/internal/testutil"
)

func newTestState(t *testing.T) *core.GameState {
	t.Helper()
	e, err := testutil.NewTestEngine("rome")
	require.NoError(t, err)
	return e.State()
}

func TestSaveRoundTrip(t *testing.T) {
	st := newTestState(t)
	st.Turn = 7
	st.ActionsTaken = 2
	st.Diplomacy.SetWar("rome", "carthage", true)
	st.Diplomacy.SetAlliance("rome", "greece", true)
	st.Diplomacy.SetBlockade("rome", "carthage", 0.3)
	st.Ironman = true
	st.PushLog("a line for the annals")

	payload, err := QuickSaveState(st)
	require.NoError(t, err)

	loaded, warnings, err := LoadStateFromString(payload)
	require.NoError(t, err)
	assert.Empty(t, warnings)

	assert.Equal(t, 7, loaded.Turn)
	assert.Equal(t, 2, loaded.ActionsTaken)
	assert.Equal(t, "rome", loaded.PlayerNationID)
	assert.True(t, loaded.Ironman)
	assert.True(t, loaded.Diplomacy.AtWar("rome", "carthage"))
	assert.True(t, loaded.Diplomacy.Allied("rome", "greece"))
	assert.InDelta(t, 0.3, loaded.Diplomacy.Blockade("rome", "carthage"), 1e-9)
	assert.Equal(t, st.Log, loaded.Log)
	assert.Equal(t, core.CurrentSaveVersion, loaded.SaveVersion)

	for id, n := range st.Nations {
		assert.Equal(t, n.Stats, loaded.Nations[id].Stats, id)
		assert.Equal(t, n.Treasury, loaded.Nations[id].Treasury, id)
	}
	for id, tr := range st.Territories {
		assert.Equal(t, tr.OwnerID, loaded.Territories[id].OwnerID, id)
		assert.Equal(t, tr.Garrison, loaded.Territories[id].Garrison, id)
	}
}

func TestSaveIsDeterministic(t *testing.T) {
	st := newTestState(t)
	first, err := QuickSaveState(st)
	require.NoError(t, err)
	second, err := QuickSaveState(st)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestLoadRejectsMalformedJSON(t *testing.T) {
	_, _, err := LoadStateFromString("{not json")
	assert.Error(t, err)
}

func TestLoadRejectsEmptyPayload(t *testing.T) {
	_, _, err := LoadStateFromString("{}")
	assert.Error(t, err)
}

func TestLoadMigratesLegacySave(t *testing.T) {
	st := newTestState(t)
	payload, err := QuickSaveState(st)
	require.NoError(t, err)

	// Strip the version-2 fields to produce a version-1 payload. The
	// ironman flag is the last encoded field.
	legacy := strings.Replace(payload, `"saveVersion":2,`, "", 1)
	legacy = strings.Replace(legacy, `,"ironman":false}`, "}", 1)
	require.NotEqual(t, payload, legacy)

	loaded, warnings, err := LoadStateFromString(legacy)
	require.NoError(t, err)

	require.NotEmpty(t, warnings)
	joined := strings.Join(warnings, "; ")
	assert.Contains(t, joined, "legacy save")

	assert.False(t, loaded.Ironman)
	assert.Empty(t, loaded.Diplomacy.Blockades)
	// The loaded state is stamped with the current version.
	assert.Equal(t, core.CurrentSaveVersion, loaded.SaveVersion)
}

func TestLoadNewerVersionBestEffort(t *testing.T) {
	st := newTestState(t)
	payload, err := QuickSaveState(st)
	require.NoError(t, err)
	future := strings.Replace(payload, `"saveVersion":2`, `"saveVersion":9`, 1)

	loaded, warnings, err := LoadStateFromString(future)
	require.NoError(t, err)
	require.NotEmpty(t, warnings)
	assert.Contains(t, warnings[0], "newer than supported")
	assert.Equal(t, "rome", loaded.PlayerNationID)
}

func TestLoadRepairsUnknownPhase(t *testing.T) {
	st := newTestState(t)
	payload, err := QuickSaveState(st)
	require.NoError(t, err)
	broken := strings.Replace(payload, `"phase":"player"`, `"phase":"limbo"`, 1)

	loaded, warnings, err := LoadStateFromString(broken)
	require.NoError(t, err)
	assert.Equal(t, core.PhasePlayer, loaded.Phase)
	require.NotEmpty(t, warnings)
}
