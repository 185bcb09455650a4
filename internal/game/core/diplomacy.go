package core

import (
	"sort"
	"strings"

	"imperium/internal/common"
)

// RelationKey returns the canonical unordered pair key for two nations.
// Wars, alliances and blockades are all keyed this way; save round-trips
// and cross-session lookups depend on the key being deterministic.
func RelationKey(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + "|" + b
}

// SplitRelationKey is the inverse of RelationKey.
func SplitRelationKey(key string) (string, string) {
	parts := strings.SplitN(key, "|", 2)
	if len(parts) != 2 {
		return key, ""
	}
	return parts[0], parts[1]
}

// Diplomacy holds the symmetric relation matrix and the war, alliance and
// blockade registries keyed by canonical pair keys.
type Diplomacy struct {
	Relations map[string]map[string]int
	Wars      map[string]struct{}
	Alliances map[string]struct{}
	Blockades map[string]float64
}

// NewDiplomacy returns an empty diplomacy block.
func NewDiplomacy() *Diplomacy {
	return &Diplomacy{
		Relations: make(map[string]map[string]int),
		Wars:      make(map[string]struct{}),
		Alliances: make(map[string]struct{}),
		Blockades: make(map[string]float64),
	}
}

// EnsureRelationMatrix fills in a zero entry for every nation pair that has
// none yet, so the matrix is always fully populated.
func (d *Diplomacy) EnsureRelationMatrix(nationIDs []string) {
	for _, a := range nationIDs {
		if d.Relations[a] == nil {
			d.Relations[a] = make(map[string]int)
		}
		for _, b := range nationIDs {
			if a == b {
				continue
			}
			if _, ok := d.Relations[a][b]; !ok {
				d.Relations[a][b] = 0
			}
		}
	}
}

// Relation returns the score between two nations, zero when unset.
func (d *Diplomacy) Relation(a, b string) int {
	return d.Relations[a][b]
}

// ModifyRelation applies delta symmetrically, clamped to [-100, 100].
// Missing matrix entries are initialized to zero first.
func (d *Diplomacy) ModifyRelation(from, to string, delta int) {
	if from == to {
		return
	}
	if d.Relations[from] == nil {
		d.Relations[from] = make(map[string]int)
	}
	if d.Relations[to] == nil {
		d.Relations[to] = make(map[string]int)
	}
	v := common.Clamp(d.Relations[from][to]+delta, -100, 100)
	d.Relations[from][to] = v
	d.Relations[to][from] = v
}

// SetWar adds or removes the pair from the war set. Declaring war clears any
// alliance between the pair; war and alliance are mutually exclusive.
func (d *Diplomacy) SetWar(a, b string, at bool) {
	key := RelationKey(a, b)
	if at {
		d.Wars[key] = struct{}{}
		delete(d.Alliances, key)
	} else {
		delete(d.Wars, key)
	}
}

// AtWar reports whether the pair is in the war set.
func (d *Diplomacy) AtWar(a, b string) bool {
	_, ok := d.Wars[RelationKey(a, b)]
	return ok
}

// SetAlliance mirrors SetWar for the alliance set.
func (d *Diplomacy) SetAlliance(a, b string, allied bool) {
	key := RelationKey(a, b)
	if allied {
		d.Alliances[key] = struct{}{}
		delete(d.Wars, key)
	} else {
		delete(d.Alliances, key)
	}
}

// Allied reports whether the pair is in the alliance set.
func (d *Diplomacy) Allied(a, b string) bool {
	_, ok := d.Alliances[RelationKey(a, b)]
	return ok
}

// SetBlockade stores blockade severity for the pair, clamped to [0, 1].
// A severity of zero removes the blockade.
func (d *Diplomacy) SetBlockade(a, b string, severity float64) {
	key := RelationKey(a, b)
	severity = common.ClampF(severity, 0, 1)
	if severity == 0 {
		delete(d.Blockades, key)
		return
	}
	d.Blockades[key] = severity
}

// Blockade returns the severity for the pair, zero when none.
func (d *Diplomacy) Blockade(a, b string) float64 {
	return d.Blockades[RelationKey(a, b)]
}

// WarsOf lists, in sorted order, every nation the given one is at war with.
func (d *Diplomacy) WarsOf(nationID string) []string {
	var out []string
	for key := range d.Wars {
		a, b := SplitRelationKey(key)
		switch nationID {
		case a:
			out = append(out, b)
		case b:
			out = append(out, a)
		}
	}
	sort.Strings(out)
	return out
}

// WarKeys returns the war pair keys in sorted order, for serialization.
func (d *Diplomacy) WarKeys() []string {
	return sortedKeys(d.Wars)
}

// AllianceKeys returns the alliance pair keys in sorted order.
func (d *Diplomacy) AllianceKeys() []string {
	return sortedKeys(d.Alliances)
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
