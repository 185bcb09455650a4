package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"imperium/internal/content"
	"imperium/internal/game"
	"imperium/internal/game/core"
	"imperium/internal/save"
)

var (
	flagSimSeed   int64
	flagSimTurns  int
	flagSimNation string
	flagSimDump   bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a headless seeded simulation",
	Long: `Run the simulation without a player for a fixed number of turns.
The player nation collects taxes every turn; everything else is driven by
the AI and the event pool. The same seed always produces the same run.

Examples:
  imperium simulate --seed 512 --turns 40
  imperium simulate --seed 7 --turns 100 --nation greece --dump`,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().Int64Var(&flagSimSeed, "seed", 1, "RNG seed")
	simulateCmd.Flags().IntVar(&flagSimTurns, "turns", 20, "Number of turns to run")
	simulateCmd.Flags().StringVar(&flagSimNation, "nation", "rome", "Player nation")
	simulateCmd.Flags().BoolVar(&flagSimDump, "dump", false, "Print the final save payload")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	tun, err := loadTunables()
	if err != nil {
		return err
	}
	lib, err := content.Load()
	if err != nil {
		return err
	}
	engine, err := game.NewEngine(lib, tun, flagSimNation, log.Logger)
	if err != nil {
		return err
	}
	r := game.NewSessionRNG(flagSimSeed)
	st := engine.State()

	for turn := 0; turn < flagSimTurns && !st.IsGameOver(); turn++ {
		engine.ExecutePlayerAction(core.Action{Type: core.ActionCollectTaxes}, r)
		if err := engine.AdvanceTurn(r); err != nil {
			return err
		}
		fmt.Printf("After turn %d:\n", st.Turn-1)
		for _, id := range st.NationIDs() {
			n := st.Nations[id]
			fmt.Printf("  %-10s territories %d, treasury %3d, stability %3d\n",
				n.Name, st.OwnedCount(id), n.Treasury, n.Stats.Stability)
		}
	}

	if st.IsGameOver() {
		if st.Defeated {
			fmt.Println("Result: player defeated")
		} else {
			fmt.Printf("Result: %s wins\n", st.Winner)
		}
	} else {
		fmt.Printf("Result: no winner after %d turns\n", flagSimTurns)
	}

	if flagSimDump {
		payload, err := save.QuickSaveState(st)
		if err != nil {
			return err
		}
		fmt.Println(payload)
	}
	return nil
}
