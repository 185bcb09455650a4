package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	lib, err := Load()
	require.NoError(t, err)

	assert.Len(t, lib.Nations, 6)
	assert.Len(t, lib.Territories, 18)
	assert.NotEmpty(t, lib.Techs)

	rome := lib.Nation("rome")
	require.NotNil(t, rome)
	assert.Equal(t, "Rome", rome.Name)
	assert.Equal(t, 80, rome.Stats.Military)

	latium := lib.Territory("rome_latium")
	require.NotNil(t, latium)
	assert.Equal(t, "rome", latium.Owner)
	assert.Contains(t, latium.Neighbors, "carthage_carthage")
}

func TestAdjacencySymmetric(t *testing.T) {
	lib, err := Load()
	require.NoError(t, err)
	for _, tr := range lib.Territories {
		for _, n := range tr.Neighbors {
			other := lib.Territory(n)
			require.NotNil(t, other, "%s -> %s", tr.ID, n)
			assert.Contains(t, other.Neighbors, tr.ID, "%s -> %s", tr.ID, n)
		}
	}
}

func TestStableOrdering(t *testing.T) {
	lib, err := Load()
	require.NoError(t, err)

	order := lib.TerritoryOrder()
	require.NotEmpty(t, order)
	assert.Equal(t, "rome_etruria", order[0], "declaration order must be preserved")

	nations := lib.NationOrder()
	assert.Equal(t, "assyria", nations[0])
	assert.Equal(t, "rome", nations[len(nations)-1])
}

func TestTechsByCost(t *testing.T) {
	lib, err := Load()
	require.NoError(t, err)

	byCost := lib.TechsByCost()
	require.Len(t, byCost, len(lib.Techs))
	assert.Equal(t, "sailing", byCost[0].ID)
	for i := 1; i < len(byCost); i++ {
		assert.LessOrEqual(t, byCost[i-1].Cost, byCost[i].Cost)
	}
	// Stable: bronze_working precedes currency at equal cost.
	assert.Equal(t, "bronze_working", byCost[1].ID)
	assert.Equal(t, "currency", byCost[2].ID)
	// The library's own table is untouched.
	assert.Equal(t, "sailing", lib.Techs[0].ID)
}

func TestTechGraph(t *testing.T) {
	lib, err := Load()
	require.NoError(t, err)

	prereqs := lib.TechPrereqs()
	assert.Contains(t, prereqs, "siegecraft")
	assert.Equal(t, []string{"iron_working"}, prereqs["siegecraft"])
	for _, tech := range lib.Techs {
		for _, p := range tech.Prerequisites {
			assert.NotNil(t, lib.Tech(p), "tech %s prereq %s", tech.ID, p)
		}
	}
}
