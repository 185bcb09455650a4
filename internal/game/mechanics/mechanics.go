// Package mechanics is the pure formula library of the simulation: pricing,
// intrigue odds, supply, sieges and treaty math. Every function is
// deterministic and side-effect free; randomness, where needed, is drawn by
// the caller and passed in as a value.
package mechanics

import "imperium/internal/common"

// TradeFactors are the inputs to a trade price quote.
type TradeFactors struct {
	Influence     int     // buyer influence stat, 0..100
	Blockade      float64 // blockade severity between the parties, 0..1
	SupplyPenalty float64 // route supply penalty, 0..0.75
	TreatyMod     float64 // treaty price modifier, clamped to 0.8..1.2
	Tech          int     // buyer tech stat, 0..100
	Scarcity      float64 // scarcity of the good, 0..1
}

// TradePrice multiplies the base price by six independently clamped
// factors and rounds to 2 decimals.
func TradePrice(base float64, f TradeFactors) float64 {
	influenceDiscount := 1 - float64(common.Clamp(f.Influence, 0, 100))/400
	blockadeMarkup := 1 + common.ClampF(f.Blockade, 0, 1)*0.5
	supplyMarkup := 1 + common.ClampF(f.SupplyPenalty, 0, 0.75)
	treatyMod := common.ClampF(f.TreatyMod, 0.8, 1.2)
	techDiscount := 1 - float64(common.Clamp(f.Tech, 0, 100))/500
	scarcityMarkup := 1 + common.ClampF(f.Scarcity, 0, 1)*0.6

	price := base * influenceDiscount * blockadeMarkup * supplyMarkup * treatyMod * techDiscount * scarcityMarkup
	return common.RoundTo(price, 2)
}

// IntrigueFactors are the inputs to an intrigue (espionage/sabotage) roll.
type IntrigueFactors struct {
	AgentSkill  int     // acting nation's relevant stat
	TargetSkill int     // target nation's counter stat
	Relation    int     // relation score between the two, -100..100
	Support     int     // acting nation's support stat
	Blockade    float64 // blockade severity between the two, 0..1
}

// IntrigueOdds returns the success probability of an intrigue attempt,
// clamped to [0.05, 0.95] and rounded to 3 decimals.
func IntrigueOdds(f IntrigueFactors) float64 {
	delta := common.Clamp(f.AgentSkill-f.TargetSkill, -60, 60)
	odds := 0.35 + float64(delta)/120
	if f.Relation > 0 {
		odds -= float64(f.Relation) / 500
	}
	odds += float64(common.Clamp(f.Support, 0, 100)) / 400
	odds -= common.ClampF(f.Blockade, 0, 1) * 0.1
	return common.RoundTo(common.ClampF(odds, 0.05, 0.95), 3)
}

// InfluenceFactors are the standing components of a nation's faction
// influence score.
type InfluenceFactors struct {
	Prestige        int
	Wonders         int
	TreatyNetwork   int
	Propaganda      int
	BlockadesBroken int
	IntrigueWins    int
	Crises          int
}

// FactionInfluence computes the weighted influence sum, clamped to [0, 100].
func FactionInfluence(f InfluenceFactors) int {
	score := float64(f.Prestige)*0.3 +
		float64(f.Wonders)*8 +
		float64(f.TreatyNetwork)*5 +
		float64(f.Propaganda)*0.2 +
		float64(f.BlockadesBroken)*6 +
		float64(f.IntrigueWins)*4 -
		float64(f.Crises)*7
	return common.Clamp(int(score), 0, 100)
}

// SupplyFactors are the route conditions feeding the supply penalty.
type SupplyFactors struct {
	Distance       int     // hops from the nearest friendly capital
	SupportDeficit int     // 0..100, how far support is below full
	Terrain        float64 // terrain hardship, 0..0.2
	Weather        float64 // seasonal hardship, 0..0.15
	Blockade       float64 // blockade severity on the route, 0..1
}

// SupplyPenalty sums five independently clamped component penalties; the
// total is clamped to [0, 0.75].
func SupplyPenalty(f SupplyFactors) float64 {
	total := float64(common.Clamp(f.Distance, 0, 10))*0.03 +
		float64(common.Clamp(f.SupportDeficit, 0, 100))/100*0.2 +
		common.ClampF(f.Terrain, 0, 0.2) +
		common.ClampF(f.Weather, 0, 0.15) +
		common.ClampF(f.Blockade, 0, 1)*0.25
	return common.ClampF(total, 0, 0.75)
}

// SiegeAdvance returns the new siege progress in [0, 1] after one tick of
// siege at the given power against the given fortification.
func SiegeAdvance(current, siegePower, fortification, supplyPenalty float64) float64 {
	rate := common.ClampF(siegePower/(fortification+5), 0.05, 0.35)
	rate *= 1 - supplyPenalty
	return common.ClampF(current+rate, 0, 1)
}

// TreatyContext describes a proposed treaty against the proposer's existing
// diplomatic web.
type TreatyContext struct {
	ExclusivityConflict bool // conflicts with an exclusive treaty already held
	RenewsIdentical     bool // identical treaty with the same partner exists
	SameTypeOthers      int  // same-type treaties with different partners
	RivalPartner        bool // partner is a declared rival
	Relation            int  // relation with the partner, -100..100
	RecentBreak         bool // proposer broke a treaty recently
}

// TreatyPenalty returns the acceptance penalty for a proposed treaty,
// floored at zero.
func TreatyPenalty(c TreatyContext) int {
	p := 0
	if c.ExclusivityConflict {
		p += 25
	}
	if c.RenewsIdentical {
		p -= 10
	}
	p += c.SameTypeOthers * 5
	if c.RivalPartner {
		p += 20
	}
	if c.Relation < 0 {
		p += -c.Relation / 2
	}
	if c.RecentBreak {
		p += 15
	}
	return common.Max(p, 0)
}

// PrereqsSatisfied walks the prerequisite graph depth first and reports
// whether every transitive prerequisite of id is researched. A node already
// on the visiting stack counts as satisfied, so cyclic definitions
// terminate instead of recursing forever.
func PrereqsSatisfied(id string, researched func(string) bool, prereqs map[string][]string) bool {
	stack := make(map[string]struct{})
	var visit func(string) bool
	visit = func(cur string) bool {
		if _, on := stack[cur]; on {
			return true
		}
		stack[cur] = struct{}{}
		defer delete(stack, cur)
		for _, p := range prereqs[cur] {
			if !researched(p) {
				return false
			}
			if !visit(p) {
				return false
			}
		}
		return true
	}
	return visit(id)
}
