package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var flagYes bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete a save and its history",
	Long: `Delete the garden stored under the save key together with its
progress history. The next "garden play" starts a new garden.

Examples:
  garden reset --yes
  garden reset --key garden:alice --yes`,
	RunE: runReset,
}

func init() {
	resetCmd.Flags().BoolVarP(&flagYes, "yes", "y", false, "Confirm the reset")
}

func runReset(_ *cobra.Command, _ []string) error {
	if !flagYes {
		return errors.New("refusing to reset without --yes")
	}

	cfg, store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Delete(cfg.Save.Key); err != nil {
		return err
	}
	if err := store.ClearHistory(cfg.Save.Key); err != nil {
		return err
	}
	fmt.Printf("Garden %q reset.\n", cfg.Save.Key)
	return nil
}
