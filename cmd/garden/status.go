package main

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-garden/internal/catalog"
	"github.com/vovakirdan/tui-garden/internal/garden"
	"github.com/vovakirdan/tui-garden/internal/persist"
	"github.com/vovakirdan/tui-garden/internal/storage"
)

var (
	flagHistory int
	flagAll     bool
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show a save and its recent progress",
	Long: `Show the garden stored under the save key: suns, water, plots,
unlocked upgrades and the latest progress points.

Examples:
  garden status
  garden status --key garden:alice --history 20
  garden status --all`,
	RunE: runStatus,
}

func init() {
	statusCmd.Flags().IntVarP(&flagHistory, "history", "n", 10, "Number of progress points to show")
	statusCmd.Flags().BoolVar(&flagAll, "all", false, "List every save in the database")
}

func runStatus(_ *cobra.Command, _ []string) error {
	cfg, store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if flagAll {
		return listSaves(store)
	}

	st, err := persist.Load(store, cfg.Save.Key)
	if err != nil {
		return err
	}
	eco := garden.New(catalog.Builtin(), st, economyOptions(cfg)...)

	fmt.Printf("\n  Garden %q\n\n", cfg.Save.Key)
	fmt.Printf("  %-12s %s\n", "Suns", fmtSuns(eco.Suns()))
	fmt.Printf("  %-12s %s/s (x%d%%)\n", "Production", humanize.FormatFloat("#,###.##", eco.Production()), eco.Multiplier())
	fmt.Printf("  %-12s %d\n", "Water", eco.WaterLeft())
	fmt.Printf("  %-12s %d\n", "Plots", len(eco.PlotIDs()))
	fmt.Printf("  %-12s %d\n", "Items", st.ItemCount())

	almanac := eco.Almanac()
	fmt.Printf("  %-12s %d/%d\n", "Almanac", almanac.Discovered, almanac.Total)
	if badges := unlockedFeatures(eco.Unlocks()); len(badges) > 0 {
		fmt.Printf("  %-12s %s\n", "Upgrades", strings.Join(badges, ", "))
	}
	if custom := eco.Catalog().Custom(); len(custom) > 0 {
		fmt.Printf("  %-12s %d\n", "Creations", len(custom))
	}

	history, err := store.History(cfg.Save.Key, flagHistory)
	if err != nil {
		return err
	}
	if len(history) == 0 {
		fmt.Println("\n  No progress recorded yet.")
		return nil
	}

	fmt.Printf("\n  %-16s %18s %6s\n", "SAVED", "SUNS", "ITEMS")
	fmt.Println("  " + strings.Repeat("-", 42))
	for _, e := range history {
		fmt.Printf("  %-16s %18s %6d\n", humanize.Time(e.RecordedAt), fmtSuns(e.Suns), e.Items)
	}
	fmt.Println()
	return nil
}

func listSaves(store *storage.Store) error {
	keys, err := store.Keys()
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		fmt.Println("No saves yet.")
		return nil
	}

	fmt.Printf("\n  %-24s %18s %6s\n", "KEY", "SUNS", "ITEMS")
	fmt.Println("  " + strings.Repeat("-", 50))
	for _, key := range keys {
		st, err := persist.Load(store, key)
		if err != nil {
			fmt.Printf("  %-24s %18s\n", key, "unreadable")
			continue
		}
		fmt.Printf("  %-24s %18s %6d\n", key, fmtSuns(st.Suns), st.ItemCount())
	}
	fmt.Println()
	return nil
}

func unlockedFeatures(u catalog.Unlocks) []string {
	var out []string
	for _, f := range []catalog.Feature{
		catalog.FeatureVIP,
		catalog.FeatureCreator,
		catalog.FeatureBioEngineer,
		catalog.FeatureInterdimensional,
	} {
		if u.Has(f) {
			out = append(out, string(f))
		}
	}
	return out
}

func fmtSuns(suns float64) string {
	return humanize.Comma(garden.Floor(suns))
}
