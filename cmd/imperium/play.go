package main

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"imperium/internal/config"
	"imperium/internal/content"
	"imperium/internal/game"
	"imperium/internal/game/core"
	"imperium/internal/game/mechanics"
	"imperium/internal/game/rng"
	"imperium/internal/save"
	"imperium/internal/store"
)

var (
	flagNation  string
	flagSeed    int64
	flagIronman bool
	flagResume  bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start or resume an interactive session",
	Long: `Start a new game as the chosen nation, or resume the latest save.

Commands at the prompt:
  status                 - Your nation's meters and treasury
  map                    - Visible territories
  market                 - Trade quotes per nation
  log                    - Recent log entries
  tax | invest | law | crime | games
  recruit <territory>
  offer <nation> | war <nation> | spy <nation> | sabotage <nation>
  move <from> <to>
  end                    - End the turn
  save <name>            - Manual save (blocked in ironman)
  quit

Examples:
  imperium play --nation rome
  imperium play --nation carthage --seed 99 --ironman
  imperium play --resume`,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagNation, "nation", "rome", "Nation to play")
	playCmd.Flags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = time-based)")
	playCmd.Flags().BoolVar(&flagIronman, "ironman", false, "Ironman mode: autosave only, no manual saves")
	playCmd.Flags().BoolVar(&flagResume, "resume", false, "Resume the latest save for the nation")
}

func runPlay(cmd *cobra.Command, args []string) error {
	tun, err := loadTunables()
	if err != nil {
		return err
	}
	lib, err := content.Load()
	if err != nil {
		return err
	}
	slots, err := store.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer slots.Close()

	if flagConfig != "" {
		// Tunables edits apply from the next action without a restart.
		if _, err := config.Watch(flagConfig, func(updated *config.Tunables) {
			*tun = *updated
			log.Info().Msg("Tunables reloaded")
		}); err != nil {
			log.Warn().Err(err).Msg("Config watch unavailable")
		}
	}

	engine, err := openSession(lib, tun, slots)
	if err != nil {
		return err
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	r := game.NewSessionRNG(seed)
	log.Info().Int64("seed", seed).Str("nation", engine.State().PlayerNationID).Msg("Session started")

	runPrompt(engine, slots, r, tun.Rules.ActionsPerTurn)
	return nil
}

func openSession(lib *content.Library, tun *config.Tunables, slots *store.Store) (*game.Engine, error) {
	if flagResume {
		slot, err := slots.Latest(flagNation)
		if err != nil {
			return nil, err
		}
		if slot == nil {
			return nil, fmt.Errorf("no save found for %s", flagNation)
		}
		st, warnings, err := save.LoadStateFromString(slot.Payload)
		if err != nil {
			return nil, err
		}
		for _, w := range warnings {
			log.Warn().Msg(w)
		}
		return game.Resume(lib, tun, st, log.Logger), nil
	}
	engine, err := game.NewEngine(lib, tun, flagNation, log.Logger)
	if err != nil {
		return nil, err
	}
	engine.State().Ironman = flagIronman
	return engine, nil
}

func runPrompt(engine *game.Engine, slots *store.Store, r *rng.Generator, actionsPerTurn int) {
	st := engine.State()
	scanner := bufio.NewScanner(os.Stdin)
	printStatus(st)
	for {
		if st.IsGameOver() {
			printEndScreen(st)
			return
		}
		fmt.Printf("[turn %d, %d/%d actions] > ", st.Turn, st.ActionsTaken, actionsPerTurn)
		if !scanner.Scan() {
			return
		}
		fields := strings.Fields(strings.ToLower(scanner.Text()))
		if len(fields) == 0 {
			continue
		}
		arg := func(i int) string {
			if i < len(fields) {
				return fields[i]
			}
			return ""
		}

		switch fields[0] {
		case "quit", "exit":
			return
		case "status":
			printStatus(st)
		case "map":
			printMap(st)
		case "market":
			printMarket(st)
		case "log":
			for _, line := range tail(st.Log, 10) {
				fmt.Println(" ", line)
			}
		case "end":
			if err := engine.AdvanceTurn(r); err != nil {
				fmt.Println("cannot advance:", err)
				continue
			}
			autosave(engine, slots)
			printNotifications(st)
		case "save":
			name := arg(1)
			if name == "" {
				name = fmt.Sprintf("turn-%d", st.Turn)
			}
			payload, err := save.QuickSaveState(st)
			if err != nil {
				fmt.Println("save failed:", err)
				continue
			}
			id, err := slots.WriteManual(name, st.PlayerNationID, st.Turn, st.Ironman, payload)
			if err != nil {
				fmt.Println("save failed:", err)
				continue
			}
			fmt.Println("saved as", id)
		case "tax":
			submit(engine, r, core.Action{Type: core.ActionCollectTaxes})
		case "invest":
			submit(engine, r, core.Action{Type: core.ActionInvestTech})
		case "law":
			submit(engine, r, core.Action{Type: core.ActionPassLaw})
		case "crime":
			submit(engine, r, core.Action{Type: core.ActionSuppressCrime})
		case "games":
			submit(engine, r, core.Action{Type: core.ActionHostGames})
		case "recruit":
			submit(engine, r, core.Action{Type: core.ActionRecruitArmy, TargetTerritoryID: arg(1)})
		case "offer":
			submit(engine, r, core.Action{Type: core.ActionDiplomacyOffer, TargetNationID: arg(1)})
		case "war":
			submit(engine, r, core.Action{Type: core.ActionDeclareWar, TargetNationID: arg(1)})
		case "spy":
			submit(engine, r, core.Action{Type: core.ActionEspionage, TargetNationID: arg(1)})
		case "sabotage":
			submit(engine, r, core.Action{Type: core.ActionSabotage, TargetNationID: arg(1)})
		case "move":
			submit(engine, r, core.Action{
				Type:              core.ActionMoveArmy,
				SourceTerritoryID: arg(1),
				TargetTerritoryID: arg(2),
			})
		default:
			fmt.Println("unknown command; try status, map, tax, end, quit")
		}
	}
}

func submit(engine *game.Engine, r *rng.Generator, action core.Action) {
	st := engine.State()
	if err := engine.ValidateAction(st.PlayerNationID, action); err != nil {
		fmt.Println("refused:", err)
		return
	}
	if engine.ExecutePlayerAction(action, r) {
		if len(st.Notifications) > 0 {
			fmt.Println(" ", st.Notifications[0].Message)
		}
	}
}

func autosave(engine *game.Engine, slots *store.Store) {
	st := engine.State()
	payload, err := save.QuickSaveState(st)
	if err != nil {
		log.Error().Err(err).Msg("Autosave encode failed")
		return
	}
	if _, err := slots.WriteAuto(st.PlayerNationID, st.Turn, st.Ironman, payload); err != nil {
		log.Error().Err(err).Msg("Autosave write failed")
	}
}

func printStatus(st *core.GameState) {
	n := st.Player()
	fmt.Printf("%s, turn %d. Treasury %d, territories %d.\n",
		n.Name, st.Turn, n.Treasury, st.OwnedCount(n.ID))
	n.Stats.Each(func(name string, value int) {
		fmt.Printf("  %-10s %3d\n", name, value)
	})
	if wars := st.Diplomacy.WarsOf(n.ID); len(wars) > 0 {
		fmt.Println("  at war with:", strings.Join(wars, ", "))
	}
}

func printMap(st *core.GameState) {
	player := st.PlayerNationID
	for _, id := range sortedTerritoryIDs(st) {
		t := st.Territories[id]
		vis := t.VisibleTo(player)
		if vis == core.VisibilityHidden {
			continue
		}
		marker := " "
		if t.OwnerID == player {
			marker = "*"
		}
		line := fmt.Sprintf("%s %-22s %-10s garrison %2d", marker, t.Name, t.OwnerID, t.Garrison)
		if vis == core.VisibilityFogged {
			line = fmt.Sprintf("%s %-22s %-10s (fogged)", marker, t.Name, t.OwnerID)
		}
		if t.SiegeProgress > 0 {
			line += fmt.Sprintf("  [siege %d%%]", t.SiegeProgress)
		}
		fmt.Println(line)
	}
}

// printMarket quotes the price of a standard trade good against every other
// nation, reflecting blockades, treaties and the player's standing.
func printMarket(st *core.GameState) {
	player := st.Player()
	d := st.Diplomacy
	for _, id := range st.NationIDs() {
		if id == player.ID {
			continue
		}
		treatyMod := 1.0
		if d.Allied(player.ID, id) {
			treatyMod = 0.9
		} else if d.AtWar(player.ID, id) {
			treatyMod = 1.2
		}
		quote := mechanics.TradePrice(8, mechanics.TradeFactors{
			Influence: player.Stats.Influence,
			Blockade:  d.Blockade(player.ID, id),
			TreatyMod: treatyMod,
			Tech:      player.Stats.Tech,
			Scarcity:  0.5,
		})
		fmt.Printf("  %-10s %6.2f gold per load\n", st.Nations[id].Name, quote)
	}
}

func printNotifications(st *core.GameState) {
	for i := len(st.Notifications) - 1; i >= 0; i-- {
		n := st.Notifications[i]
		prefix := "  "
		if n.Negative {
			prefix = "! "
		}
		fmt.Println(prefix + n.Message)
	}
}

func printEndScreen(st *core.GameState) {
	if st.Defeated {
		fmt.Println("Your nation has fallen. Game over.")
		return
	}
	if st.Winner == st.PlayerNationID {
		fmt.Println("Victory! You have won the age.")
		return
	}
	fmt.Printf("%s has won the age. Game over.\n", st.Winner)
}

func sortedTerritoryIDs(st *core.GameState) []string {
	ids := make([]string, 0, len(st.Territories))
	for id := range st.Territories {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func tail(lines []string, n int) []string {
	if len(lines) <= n {
		return lines
	}
	return lines[len(lines)-n:]
}
