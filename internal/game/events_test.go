package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"imperium/internal/game/rng"
)

func TestPickEventCoversTheWeightTable(t *testing.T) {
	// Seeds chosen so the single draw lands inside each cumulative band.
	cases := []struct {
		seed int64
		want string
	}{
		{1, "bountiful_harvest"},
		{36777, "drought"},
		{59776, "border_raid"},
		{80220, "festival"},
		{108330, "scholar_find"},
	}
	for _, tc := range cases {
		ev := pickEvent(rng.New(tc.seed))
		assert.Equal(t, tc.want, ev.id, "seed %d", tc.seed)
	}
}

func TestBountifulHarvestDoublesForEgypt(t *testing.T) {
	e := newTestEngine(t, "rome")
	st := e.State()

	romeBefore := st.Nations["rome"].Treasury
	egyptBefore := st.Nations["egypt"].Treasury

	e.applyEvent(st.Nations["rome"], rng.New(1))
	e.applyEvent(st.Nations["egypt"], rng.New(1))

	assert.Equal(t, romeBefore+18, st.Nations["rome"].Treasury)
	assert.Equal(t, egyptBefore+36, st.Nations["egypt"].Treasury)
}

func TestScholarFindFavorsGreece(t *testing.T) {
	e := newTestEngine(t, "rome")
	st := e.State()

	romeBefore := st.Nations["rome"].Stats.Science
	greeceBefore := st.Nations["greece"].Stats.Science

	e.applyEvent(st.Nations["rome"], rng.New(108330))
	e.applyEvent(st.Nations["greece"], rng.New(108330))

	assert.Equal(t, romeBefore+5, st.Nations["rome"].Stats.Science)
	assert.Equal(t, greeceBefore+7, st.Nations["greece"].Stats.Science)
}

func TestBorderRaidHitsFirstOwnedTerritory(t *testing.T) {
	e := newTestEngine(t, "rome")
	st := e.State()

	etruria := st.Territories["rome_etruria"]
	garrisonBefore := etruria.Garrison
	moraleBefore := etruria.Morale

	e.applyEvent(st.Nations["rome"], rng.New(59776))

	assert.Equal(t, garrisonBefore-1, etruria.Garrison)
	assert.Equal(t, moraleBefore-4, etruria.Morale)
	// Being the player, Rome gets a negative notification.
	require.NotEmpty(t, st.Notifications)
	assert.True(t, st.Notifications[0].Negative)
}

func TestEventsClampStats(t *testing.T) {
	e := newTestEngine(t, "rome")
	st := e.State()
	n := st.Nations["rome"]
	n.Stats.Economy = 100

	e.applyEvent(n, rng.New(1))
	assert.Equal(t, 100, n.Stats.Economy)
}
