// Package game is the turn-resolution engine: action execution, combat, AI
// decisions, upkeep, events and victory evaluation. Everything is
// synchronous and single-threaded; the host serializes all calls, and every
// random draw comes from the generator threaded through the entry points so
// a seed plus an action log replays to an identical state.
package game

import (
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"imperium/internal/config"
	"imperium/internal/content"
	"imperium/internal/game/core"
	"imperium/internal/game/rng"
)

// Engine binds one game session's state to the injected reference data and
// tunables. State mutation happens only through ExecutePlayerAction,
// AdvanceTurn and ResolveCombat.
type Engine struct {
	state  *core.GameState
	lib    *content.Library
	tun    *config.Tunables
	logger zerolog.Logger
}

// NewEngine creates a fresh session for the given player nation. The seed
// normalization matches the RNG's, so the same seed always yields the same
// opening state and stream.
func NewEngine(lib *content.Library, tun *config.Tunables, playerNationID string, logger zerolog.Logger) (*Engine, error) {
	if lib.Nation(playerNationID) == nil {
		return nil, fmt.Errorf("engine: %w: %s", core.ErrUnknownNation, playerNationID)
	}
	e := &Engine{
		lib:    lib,
		tun:    tun,
		logger: logger.With().Str("component", "Engine").Logger(),
	}
	e.state = e.buildInitialState(playerNationID)
	e.RecomputeVisibility()
	e.state.Phase = core.PhasePlayer
	return e, nil
}

// Resume wraps an engine around previously loaded state.
func Resume(lib *content.Library, tun *config.Tunables, state *core.GameState, logger zerolog.Logger) *Engine {
	return &Engine{
		state:  state,
		lib:    lib,
		tun:    tun,
		logger: logger.With().Str("component", "Engine").Logger(),
	}
}

// State exposes the aggregate root. Callers must not mutate it directly.
func (e *Engine) State() *core.GameState { return e.state }

// buildInitialState constructs every nation and territory from the
// definition tables and assigns AI archetypes.
func (e *Engine) buildInitialState(playerNationID string) *core.GameState {
	st := &core.GameState{
		Turn:           1,
		Phase:          core.PhaseSetup,
		PlayerNationID: playerNationID,
		Nations:        make(map[string]*core.Nation),
		Territories:    make(map[string]*core.Territory),
		Diplomacy:      core.NewDiplomacy(),
		SaveVersion:    core.CurrentSaveVersion,
	}

	for _, def := range e.lib.Nations {
		st.Nations[def.ID] = &core.Nation{
			ID:         def.ID,
			Name:       def.Name,
			Stats:      def.Stats,
			Treasury:   def.Treasury,
			Researched: []string{},
		}
	}

	for _, def := range e.lib.Territories {
		t := &core.Territory{
			ID:         def.ID,
			Name:       def.Name,
			X:          def.X,
			Y:          def.Y,
			Terrain:    core.Terrain(def.Terrain),
			Neighbors:  append([]string(nil), def.Neighbors...),
			OwnerID:    def.Owner,
			Garrison:   def.Garrison,
			UnitCount:  def.Garrison,
			Morale:     70,
			Supply:     80,
			Visibility: make(map[string]core.Visibility),
		}
		st.Territories[t.ID] = t
		st.Nations[def.Owner].SetArmyAt(t.ID, t.Garrison)
	}

	// Archetypes cycle over the alphabetically sorted nation list, player
	// skipped. The assignment must be identical for every session with the
	// same player nation.
	ids := make([]string, 0, len(st.Nations))
	for id := range st.Nations {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	next := 0
	for _, id := range ids {
		if id == playerNationID {
			continue
		}
		st.Nations[id].Archetype = core.Archetypes[next%len(core.Archetypes)]
		next++
	}

	st.Diplomacy.EnsureRelationMatrix(ids)
	for _, def := range e.lib.Nations {
		for other, score := range def.Relations {
			if _, ok := st.Nations[other]; !ok {
				continue
			}
			// Definition tables store the full score, not a delta.
			st.Diplomacy.Relations[def.ID][other] = score
			st.Diplomacy.Relations[other][def.ID] = score
		}
	}

	st.PushLog(fmt.Sprintf("The campaign begins. You lead %s.", st.Nations[playerNationID].Name))
	return st
}

// territoriesOf returns the nation's territories in canonical content
// order. AI tie-breaks and upkeep iterate this, never the map.
func (e *Engine) territoriesOf(nationID string) []*core.Territory {
	var out []*core.Territory
	for _, id := range e.lib.TerritoryOrder() {
		if t := e.state.Territories[id]; t != nil && t.OwnerID == nationID {
			out = append(out, t)
		}
	}
	return out
}

// setGarrison updates a territory's garrison together with the owner's army
// mirror and unit count.
func (e *Engine) setGarrison(t *core.Territory, garrison int) {
	if garrison < 0 {
		garrison = 0
	}
	t.Garrison = garrison
	t.UnitCount = garrison
	if n := e.state.Nations[t.OwnerID]; n != nil {
		n.SetArmyAt(t.ID, garrison)
	}
}

// maxBlockadeAgainst returns the heaviest blockade severity applied against
// the nation by anyone.
func maxBlockadeAgainst(d *core.Diplomacy, nationID string) float64 {
	worst := 0.0
	for key, sev := range d.Blockades {
		a, b := core.SplitRelationKey(key)
		if (a == nationID || b == nationID) && sev > worst {
			worst = sev
		}
	}
	return worst
}

// RecomputeVisibility rebuilds the per-nation visibility of every
// territory: owned tiles are visible, tiles adjacent to owned are fogged,
// the rest hidden. Espionage grants last only until the next recompute.
func (e *Engine) RecomputeVisibility() {
	nationIDs := e.state.NationIDs()
	for _, tid := range e.lib.TerritoryOrder() {
		t := e.state.Territories[tid]
		if t == nil {
			continue
		}
		for _, nid := range nationIDs {
			level := core.VisibilityHidden
			if t.OwnerID == nid {
				level = core.VisibilityVisible
			} else {
				for _, nb := range t.Neighbors {
					if other := e.state.Territories[nb]; other != nil && other.OwnerID == nid {
						level = core.VisibilityFogged
						break
					}
				}
			}
			t.SetVisibility(nid, level)
		}
	}
}

// NewSessionRNG builds the session random stream for a seed; a convenience
// so hosts normalize seeds the same way the engine does.
func NewSessionRNG(seed int64) *rng.Generator {
	return rng.New(seed)
}
