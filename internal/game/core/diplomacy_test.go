package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRelationKey(t *testing.T) {
	assert.Equal(t, "carthage|rome", RelationKey("rome", "carthage"))
	assert.Equal(t, "carthage|rome", RelationKey("carthage", "rome"))

	a, b := SplitRelationKey("carthage|rome")
	assert.Equal(t, "carthage", a)
	assert.Equal(t, "rome", b)
}

func TestModifyRelationSymmetric(t *testing.T) {
	d := NewDiplomacy()
	d.ModifyRelation("rome", "carthage", -30)
	assert.Equal(t, -30, d.Relation("rome", "carthage"))
	assert.Equal(t, -30, d.Relation("carthage", "rome"))

	// Clamped at the floor, still symmetric.
	d.ModifyRelation("rome", "carthage", -200)
	assert.Equal(t, -100, d.Relation("rome", "carthage"))
	assert.Equal(t, -100, d.Relation("carthage", "rome"))

	d.ModifyRelation("rome", "carthage", 250)
	assert.Equal(t, 100, d.Relation("rome", "carthage"))
}

func TestModifyRelationSelf(t *testing.T) {
	d := NewDiplomacy()
	d.ModifyRelation("rome", "rome", 50)
	assert.Equal(t, 0, d.Relation("rome", "rome"))
}

func TestEnsureRelationMatrix(t *testing.T) {
	d := NewDiplomacy()
	d.ModifyRelation("rome", "carthage", 10)
	d.EnsureRelationMatrix([]string{"rome", "carthage", "egypt"})

	// Existing entries untouched, missing pairs initialized to zero.
	assert.Equal(t, 10, d.Relation("rome", "carthage"))
	for _, pair := range [][2]string{{"rome", "egypt"}, {"carthage", "egypt"}} {
		v, ok := d.Relations[pair[0]][pair[1]]
		assert.True(t, ok, "missing %s->%s", pair[0], pair[1])
		assert.Equal(t, 0, v)
	}
}

func TestWarAllianceExclusive(t *testing.T) {
	d := NewDiplomacy()
	d.SetAlliance("rome", "carthage", true)
	assert.True(t, d.Allied("rome", "carthage"))

	d.SetWar("carthage", "rome", true)
	assert.True(t, d.AtWar("rome", "carthage"))
	assert.False(t, d.Allied("rome", "carthage"), "war must clear alliance")

	d.SetAlliance("rome", "carthage", true)
	assert.False(t, d.AtWar("rome", "carthage"), "alliance must clear war")
}

func TestBlockadeClamping(t *testing.T) {
	d := NewDiplomacy()
	d.SetBlockade("rome", "carthage", 1.5)
	assert.Equal(t, 1.0, d.Blockade("carthage", "rome"))

	d.SetBlockade("rome", "carthage", -0.3)
	assert.Equal(t, 0.0, d.Blockade("rome", "carthage"))
	_, present := d.Blockades[RelationKey("rome", "carthage")]
	assert.False(t, present, "zero severity removes the entry")
}

func TestWarsOf(t *testing.T) {
	d := NewDiplomacy()
	d.SetWar("rome", "carthage", true)
	d.SetWar("egypt", "rome", true)
	d.SetWar("egypt", "persia", true)

	assert.Equal(t, []string{"carthage", "egypt"}, d.WarsOf("rome"))
	assert.Equal(t, []string{"persia", "rome"}, d.WarsOf("egypt"))
	assert.Empty(t, d.WarsOf("greece"))
}
