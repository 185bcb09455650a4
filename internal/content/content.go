// Package content holds the static definition tables: nations, territories
// and techs. The tables are reference data only; the engine never mutates
// them and every game session receives the same injected Library.
package content

import (
	"embed"
	"encoding/json"
	"fmt"
	"sort"

	"imperium/internal/game/core"
)

//go:embed data/*.json
var dataFS embed.FS

// NationDef is the static definition of a playable power.
type NationDef struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Advantage    string         `json:"advantage"`
	Disadvantage string         `json:"disadvantage"`
	Description  string         `json:"description"`
	Stats        core.Stats     `json:"stats"`
	Treasury     int            `json:"treasury"`
	Relations    map[string]int `json:"relations"`
}

// TerritoryDef is the static definition of one tile of the world graph.
type TerritoryDef struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	X         int      `json:"x"`
	Y         int      `json:"y"`
	Terrain   string   `json:"terrain"`
	Owner     string   `json:"owner"`
	Garrison  int      `json:"garrison"`
	Neighbors []string `json:"neighbors"`
}

// TechDef is one node of the technology prerequisite graph.
type TechDef struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Cost          int            `json:"cost"`
	Prerequisites []string       `json:"prerequisites"`
	Effects       map[string]int `json:"effects"`
}

// Library is the immutable bundle of all definition tables. Slices keep the
// declaration order from the data files; that order is the canonical
// iteration order for AI tie-breaks, so it must not be re-sorted.
type Library struct {
	Nations     []NationDef
	Territories []TerritoryDef
	Techs       []TechDef

	nationsByID     map[string]*NationDef
	territoriesByID map[string]*TerritoryDef
	techsByID       map[string]*TechDef
}

// Load parses the embedded definition tables and validates the world graph.
func Load() (*Library, error) {
	lib := &Library{}
	if err := readJSON("data/nations.json", &lib.Nations); err != nil {
		return nil, err
	}
	if err := readJSON("data/territories.json", &lib.Territories); err != nil {
		return nil, err
	}
	if err := readJSON("data/techs.json", &lib.Techs); err != nil {
		return nil, err
	}
	lib.index()
	if err := lib.validate(); err != nil {
		return nil, err
	}
	return lib, nil
}

// MustLoad is Load for program start paths where the embedded tables are
// known good.
func MustLoad() *Library {
	lib, err := Load()
	if err != nil {
		panic(err)
	}
	return lib
}

func readJSON(name string, out any) error {
	raw, err := dataFS.ReadFile(name)
	if err != nil {
		return fmt.Errorf("content: read %s: %w", name, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("content: parse %s: %w", name, err)
	}
	return nil
}

func (l *Library) index() {
	l.nationsByID = make(map[string]*NationDef, len(l.Nations))
	for i := range l.Nations {
		l.nationsByID[l.Nations[i].ID] = &l.Nations[i]
	}
	l.territoriesByID = make(map[string]*TerritoryDef, len(l.Territories))
	for i := range l.Territories {
		l.territoriesByID[l.Territories[i].ID] = &l.Territories[i]
	}
	l.techsByID = make(map[string]*TechDef, len(l.Techs))
	for i := range l.Techs {
		l.techsByID[l.Techs[i].ID] = &l.Techs[i]
	}
}

func (l *Library) validate() error {
	for _, t := range l.Territories {
		if l.nationsByID[t.Owner] == nil {
			return fmt.Errorf("content: territory %s has unknown owner %s", t.ID, t.Owner)
		}
		for _, n := range t.Neighbors {
			other := l.territoriesByID[n]
			if other == nil {
				return fmt.Errorf("content: territory %s has unknown neighbor %s", t.ID, n)
			}
			if !contains(other.Neighbors, t.ID) {
				return fmt.Errorf("content: adjacency %s -> %s is not symmetric", t.ID, n)
			}
		}
	}
	for _, tech := range l.Techs {
		for _, p := range tech.Prerequisites {
			if l.techsByID[p] == nil {
				return fmt.Errorf("content: tech %s has unknown prerequisite %s", tech.ID, p)
			}
		}
	}
	return nil
}

func contains(xs []string, s string) bool {
	for _, x := range xs {
		if x == s {
			return true
		}
	}
	return false
}

// Nation returns the definition for the id, or nil.
func (l *Library) Nation(id string) *NationDef { return l.nationsByID[id] }

// Territory returns the definition for the id, or nil.
func (l *Library) Territory(id string) *TerritoryDef { return l.territoriesByID[id] }

// Tech returns the definition for the id, or nil.
func (l *Library) Tech(id string) *TechDef { return l.techsByID[id] }

// TerritoryOrder returns territory ids in declaration order.
func (l *Library) TerritoryOrder() []string {
	out := make([]string, len(l.Territories))
	for i, t := range l.Territories {
		out[i] = t.ID
	}
	return out
}

// NationOrder returns nation ids in declaration order.
func (l *Library) NationOrder() []string {
	out := make([]string, len(l.Nations))
	for i, n := range l.Nations {
		out[i] = n.ID
	}
	return out
}

// TechsByCost returns the tech table ordered by ascending cost. The sort is
// stable so declaration order breaks cost ties.
func (l *Library) TechsByCost() []TechDef {
	out := make([]TechDef, len(l.Techs))
	copy(out, l.Techs)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Cost < out[j].Cost })
	return out
}

// TechPrereqs adapts the tech table to the prerequisite-resolution shape
// used by the mechanics package.
func (l *Library) TechPrereqs() map[string][]string {
	out := make(map[string][]string, len(l.Techs))
	for _, t := range l.Techs {
		out[t.ID] = t.Prerequisites
	}
	return out
}
