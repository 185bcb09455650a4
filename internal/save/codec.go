// Package save serializes game sessions to a stable JSON payload and loads
// older payloads forward. The payload is a flat projection of the game
// state: diplomacy sets become sorted arrays and map keys rely on JSON's
// key sorting, so encoding the same state twice yields identical bytes.
package save

import (
	"encoding/json"
	"fmt"

	"imperium/internal/game/core"
)

// payload is the on-disk shape. Pointer fields mark data that older
// versions did not write; nil after decode means "absent", which the
// migration step turns into a default plus a warning.
type payload struct {
	SaveVersion    int                        `json:"saveVersion,omitempty"`
	Turn           int                        `json:"turn"`
	Phase          core.Phase                 `json:"phase"`
	PlayerNationID string                     `json:"playerNationId"`
	Nations        map[string]*core.Nation    `json:"nations"`
	Territories    map[string]*core.Territory `json:"territories"`
	Relations      map[string]map[string]int  `json:"relations"`
	Wars           []string                   `json:"wars"`
	Alliances      []string                   `json:"alliances"`
	Blockades      map[string]float64         `json:"blockades,omitempty"`
	BattleReports  []core.CombatResult        `json:"battleReports"`
	Log            []string                   `json:"log"`
	Notifications  []core.Notification        `json:"notifications"`
	QueuedEvents   []string                   `json:"queuedEvents"`
	ActionsTaken   int                        `json:"actionsTaken"`
	Winner         string                     `json:"winner"`
	Defeated       bool                       `json:"defeated"`
	Ironman        *bool                      `json:"ironman,omitempty"`
}

// QuickSaveState encodes the state as a version-stamped JSON string.
func QuickSaveState(st *core.GameState) (string, error) {
	ironman := st.Ironman
	p := payload{
		SaveVersion:    core.CurrentSaveVersion,
		Turn:           st.Turn,
		Phase:          st.Phase,
		PlayerNationID: st.PlayerNationID,
		Nations:        st.Nations,
		Territories:    st.Territories,
		Relations:      st.Diplomacy.Relations,
		Wars:           st.Diplomacy.WarKeys(),
		Alliances:      st.Diplomacy.AllianceKeys(),
		Blockades:      st.Diplomacy.Blockades,
		BattleReports:  st.BattleReports,
		Log:            st.Log,
		Notifications:  st.Notifications,
		QueuedEvents:   st.QueuedEvents,
		ActionsTaken:   st.ActionsTaken,
		Winner:         st.Winner,
		Defeated:       st.Defeated,
		Ironman:        &ironman,
	}
	raw, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("save: encode: %w", err)
	}
	return string(raw), nil
}

// LoadStateFromString decodes a save payload, migrating older versions
// forward. Malformed JSON is a hard error; missing fields are filled with
// defaults and reported as warnings so the caller can surface them.
func LoadStateFromString(data string) (*core.GameState, []string, error) {
	var p payload
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return nil, nil, fmt.Errorf("save: decode: %w", err)
	}
	if p.Nations == nil || p.Territories == nil || p.PlayerNationID == "" {
		return nil, nil, fmt.Errorf("save: payload is missing required sections")
	}

	var warnings []string
	version := p.SaveVersion
	if version == 0 {
		version = 1
		warnings = append(warnings, "legacy save: no version stamp, treating as version 1")
	}
	if version > core.CurrentSaveVersion {
		warnings = append(warnings, fmt.Sprintf("save version %d is newer than supported %d; loading best effort", version, core.CurrentSaveVersion))
	}

	d := core.NewDiplomacy()
	if p.Relations != nil {
		d.Relations = p.Relations
	} else {
		warnings = append(warnings, "relations missing, reset to neutral")
	}
	for _, key := range p.Wars {
		a, b := core.SplitRelationKey(key)
		d.SetWar(a, b, true)
	}
	for _, key := range p.Alliances {
		a, b := core.SplitRelationKey(key)
		d.SetAlliance(a, b, true)
	}
	if p.Blockades != nil {
		d.Blockades = p.Blockades
	} else if version < 2 {
		warnings = append(warnings, "blockades missing, defaulting to none")
	}

	ironman := false
	if p.Ironman != nil {
		ironman = *p.Ironman
	} else if version < 2 {
		warnings = append(warnings, "ironman flag missing, defaulting to off")
	}

	phase := p.Phase
	if !core.ValidPhase(string(phase)) {
		phase = core.PhasePlayer
		warnings = append(warnings, fmt.Sprintf("unknown phase %q, resuming at player phase", p.Phase))
	}

	st := &core.GameState{
		Turn:           p.Turn,
		Phase:          phase,
		PlayerNationID: p.PlayerNationID,
		Nations:        p.Nations,
		Territories:    p.Territories,
		Diplomacy:      d,
		BattleReports:  p.BattleReports,
		Log:            p.Log,
		Notifications:  p.Notifications,
		QueuedEvents:   p.QueuedEvents,
		ActionsTaken:   p.ActionsTaken,
		Winner:         p.Winner,
		Defeated:       p.Defeated,
		SaveVersion:    core.CurrentSaveVersion,
		Ironman:        ironman,
	}
	if st.Turn < 1 {
		st.Turn = 1
		warnings = append(warnings, "turn counter missing, reset to 1")
	}
	for _, id := range st.NationIDs() {
		n := st.Nations[id]
		n.Stats.Clamp()
		if n.Researched == nil {
			n.Researched = []string{}
		}
	}
	d.EnsureRelationMatrix(st.NationIDs())
	return st, warnings, nil
}
