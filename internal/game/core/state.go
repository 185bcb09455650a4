package core

import "sort"

// CurrentSaveVersion is stamped into every new game and save payload.
// Version 1 predates blockades and ironman.
const CurrentSaveVersion = 2

// Bounded rolling log capacities. The push helpers below are the only way
// entries are added, so length <= cap holds at all times.
const (
	MaxBattleReports = 6
	MaxLogEntries    = 100
	MaxNotifications = 5
)

// CombatOutcome is the result class of one battle. The literals are part of
// the save format.
type CombatOutcome string

const (
	OutcomeAttackerVictory CombatOutcome = "attackerVictory"
	OutcomeDefenderHolds   CombatOutcome = "defenderHolds"
	OutcomeStalemate       CombatOutcome = "stalemate"
)

// CombatResult records one resolved battle. Never mutated after creation.
type CombatResult struct {
	Turn               int           `json:"turn"`
	AttackerID         string        `json:"attackerId"`
	DefenderID         string        `json:"defenderId"`
	TerritoryID        string        `json:"territoryId"`
	Outcome            CombatOutcome `json:"outcome"`
	AttackerLoss       int           `json:"attackerLoss"`
	DefenderLoss       int           `json:"defenderLoss"`
	SiegeProgress      int           `json:"siegeProgress"`
	AttackerSupplyCost int           `json:"attackerSupplyCost"`
	DefenderSupplyCost int           `json:"defenderSupplyCost"`
}

// Notification is a short player-facing message.
type Notification struct {
	Message  string `json:"message"`
	Negative bool   `json:"negative"`
}

// GameState is the aggregate root of one game session. Every mutation is
// funneled through the action executor or the turn advancer.
type GameState struct {
	Turn           int
	Phase          Phase
	PlayerNationID string
	Nations        map[string]*Nation
	Territories    map[string]*Territory
	Diplomacy      *Diplomacy
	BattleReports  []CombatResult
	Log            []string
	Notifications  []Notification
	QueuedEvents   []string
	ActionsTaken   int
	Winner         string
	Defeated       bool
	SaveVersion    int
	Ironman        bool
}

// IsGameOver reports whether the session reached a terminal phase.
func (s *GameState) IsGameOver() bool {
	return s.Phase == PhaseGameOver
}

// PushLog appends a log line, truncating the oldest past the cap.
func (s *GameState) PushLog(line string) {
	s.Log = append(s.Log, line)
	if len(s.Log) > MaxLogEntries {
		s.Log = s.Log[len(s.Log)-MaxLogEntries:]
	}
}

// PushNotification prepends a notification, truncating past the cap.
func (s *GameState) PushNotification(message string, negative bool) {
	s.Notifications = append([]Notification{{Message: message, Negative: negative}}, s.Notifications...)
	if len(s.Notifications) > MaxNotifications {
		s.Notifications = s.Notifications[:MaxNotifications]
	}
}

// PushBattleReport prepends a combat result, truncating past the cap.
func (s *GameState) PushBattleReport(r CombatResult) {
	s.BattleReports = append([]CombatResult{r}, s.BattleReports...)
	if len(s.BattleReports) > MaxBattleReports {
		s.BattleReports = s.BattleReports[:MaxBattleReports]
	}
}

// NationIDs returns every nation id in sorted order. All per-nation loops in
// the engine iterate this, never the map, so draw order is reproducible.
func (s *GameState) NationIDs() []string {
	ids := make([]string, 0, len(s.Nations))
	for id := range s.Nations {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// OwnedCount returns the number of territories a nation controls.
func (s *GameState) OwnedCount(nationID string) int {
	n := 0
	for _, t := range s.Territories {
		if t.OwnerID == nationID {
			n++
		}
	}
	return n
}

// Nation returns the nation record or nil.
func (s *GameState) Nation(id string) *Nation {
	return s.Nations[id]
}

// Territory returns the territory record or nil.
func (s *GameState) Territory(id string) *Territory {
	return s.Territories[id]
}

// Player returns the player nation record.
func (s *GameState) Player() *Nation {
	return s.Nations[s.PlayerNationID]
}
