package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"imperium/internal/store"
)

var savesCmd = &cobra.Command{
	Use:   "saves",
	Short: "Manage save slots",
}

var savesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List save slots, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		slots, err := store.Open(flagDBPath)
		if err != nil {
			return err
		}
		defer slots.Close()

		entries, err := slots.List()
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("No saves.")
			return nil
		}
		for _, s := range entries {
			ironman := ""
			if s.Ironman {
				ironman = " [ironman]"
			}
			fmt.Printf("%s  %s  %-8s turn %3d  %-10s %s%s\n",
				s.ID, s.Created().Format("2006-01-02 15:04"), s.Kind, s.Turn, s.Nation, s.Name, ironman)
		}
		return nil
	},
}

var savesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a save slot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		slots, err := store.Open(flagDBPath)
		if err != nil {
			return err
		}
		defer slots.Close()

		if err := slots.Delete(args[0]); err != nil {
			return err
		}
		fmt.Println("Deleted", args[0])
		return nil
	},
}

func init() {
	savesCmd.AddCommand(savesListCmd)
	savesCmd.AddCommand(savesDeleteCmd)
}
