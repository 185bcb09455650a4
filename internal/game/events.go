package game

import (
	"fmt"

	"imperium/internal/common"
	"imperium/internal/game/core"
	"imperium/internal/game/rng"
)

// eventTemplate is one entry of the random event pool. Weights are
// relative; apply mutates the nation and returns the log line.
type eventTemplate struct {
	id     string
	weight float64
	apply  func(e *Engine, n *core.Nation) string
}

// eventPool is declared in a fixed order because event selection walks it
// with a cumulative-weight scan; reordering entries changes replays.
var eventPool = []eventTemplate{
	{
		id:     "bountiful_harvest",
		weight: 28,
		apply: func(e *Engine, n *core.Nation) string {
			gain := 18
			// The Nile floods on schedule.
			if n.ID == "egypt" {
				gain *= 2
			}
			n.AdjustTreasury(gain)
			n.Stats.Economy += 2
			return fmt.Sprintf("A bountiful harvest fills %s's granaries (+%d gold).", n.Name, gain)
		},
	},
	{
		id:     "drought",
		weight: 18,
		apply: func(e *Engine, n *core.Nation) string {
			n.AdjustTreasury(-12)
			n.Stats.Economy -= 3
			n.Stats.Stability--
			return fmt.Sprintf("Drought withers the fields of %s.", n.Name)
		},
	},
	{
		id:     "border_raid",
		weight: 16,
		apply: func(e *Engine, n *core.Nation) string {
			n.AdjustTreasury(-10)
			n.Stats.Stability--
			owned := e.territoriesOf(n.ID)
			if len(owned) == 0 {
				return fmt.Sprintf("Raiders harry the roads of %s.", n.Name)
			}
			t := owned[0]
			if t.Garrison > 0 {
				e.setGarrison(t, t.Garrison-1)
			}
			t.Morale = common.Clamp(t.Morale-4, 0, 100)
			return fmt.Sprintf("Raiders strike %s; the garrison there is bloodied.", t.Name)
		},
	},
	{
		id:     "festival",
		weight: 22,
		apply: func(e *Engine, n *core.Nation) string {
			n.Stats.Support += 5
			n.Stats.Stability += 2
			n.AdjustTreasury(-8)
			return fmt.Sprintf("A great festival sweeps %s.", n.Name)
		},
	},
	{
		id:     "scholar_find",
		weight: 16,
		apply: func(e *Engine, n *core.Nation) string {
			n.Stats.Science += 5
			n.Stats.Tech += 2
			if n.ID == "greece" {
				n.Stats.Science += 2
			}
			return fmt.Sprintf("Scholars in %s recover a trove of old texts.", n.Name)
		},
	},
}

// pickEvent draws one event by cumulative weight using a single RNG call.
func pickEvent(r *rng.Generator) *eventTemplate {
	total := 0.0
	for i := range eventPool {
		total += eventPool[i].weight
	}
	roll := r.Next() * total
	cum := 0.0
	for i := range eventPool {
		cum += eventPool[i].weight
		if cum >= roll {
			return &eventPool[i]
		}
	}
	return &eventPool[len(eventPool)-1]
}

// applyEvent rolls and applies one event for the nation, logging the
// outcome and notifying the player when they are the subject.
func (e *Engine) applyEvent(n *core.Nation, r *rng.Generator) {
	ev := pickEvent(r)
	line := ev.apply(e, n)
	n.Stats.Clamp()
	e.state.PushLog(line)
	if n.ID == e.state.PlayerNationID {
		negative := ev.id == "drought" || ev.id == "border_raid"
		e.state.PushNotification(line, negative)
	}
	e.logger.Debug().Str("event", ev.id).Str("nation", n.ID).Msg("Event applied")
}
