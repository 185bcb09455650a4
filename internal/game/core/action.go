package core

// ActionType tags the closed set of player and AI actions. The literal
// strings appear in replay logs and saves and must stay stable.
type ActionType string

const (
	ActionCollectTaxes   ActionType = "collect_taxes"
	ActionRecruitArmy    ActionType = "recruit_army"
	ActionInvestTech     ActionType = "invest_tech"
	ActionPassLaw        ActionType = "pass_law"
	ActionSuppressCrime  ActionType = "suppress_crime"
	ActionHostGames      ActionType = "host_games"
	ActionDiplomacyOffer ActionType = "diplomacy_offer"
	ActionDeclareWar     ActionType = "declare_war"
	ActionEspionage      ActionType = "espionage"
	ActionSabotage       ActionType = "sabotage"
	ActionMoveArmy       ActionType = "move_army"
)

// ActionTypes lists every action kind; the executor dispatch and its test
// iterate this to keep the switch exhaustive.
var ActionTypes = []ActionType{
	ActionCollectTaxes,
	ActionRecruitArmy,
	ActionInvestTech,
	ActionPassLaw,
	ActionSuppressCrime,
	ActionHostGames,
	ActionDiplomacyOffer,
	ActionDeclareWar,
	ActionEspionage,
	ActionSabotage,
	ActionMoveArmy,
}

// Valid reports whether t is a known action type.
func (t ActionType) Valid() bool {
	for _, known := range ActionTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Action is one player or AI order. Target fields are optional and
// validated per action type by the executor.
type Action struct {
	Type              ActionType `json:"type"`
	TargetNationID    string     `json:"targetNationId,omitempty"`
	SourceTerritoryID string     `json:"sourceTerritoryId,omitempty"`
	TargetTerritoryID string     `json:"targetTerritoryId,omitempty"`
}
