package main

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-garden/internal/catalog"
)

var flagCategory string

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List everything the shop sells",
	Long: `List the built-in catalog with prices and production rates.

Examples:
  garden catalog
  garden catalog --type animal`,
	Run: runCatalog,
}

func init() {
	catalogCmd.Flags().StringVarP(&flagCategory, "type", "t", "", "Only list one category (plant, special_plant, animal, pool, object, upgrade)")
}

func runCatalog(_ *cobra.Command, _ []string) {
	cat := catalog.Builtin()

	items := cat.All()
	if flagCategory != "" {
		items = cat.ByCategory(catalog.Category(flagCategory))
		if len(items) == 0 {
			fatalf("Unknown category %q\n", flagCategory)
		}
	}

	fmt.Printf("\nCatalog v%d:\n\n", cat.Version())
	fmt.Printf("  %-5s %-3s %-24s %18s %10s  %-14s %s\n", "ID", "", "NAME", "COST", "SUNS/S", "TYPE", "NEEDS")
	fmt.Println("  " + strings.Repeat("-", 90))
	for _, it := range items {
		fmt.Printf("  %-5d %-3s %-24s %18s %10s  %-14s %s\n",
			it.ID,
			it.Glyph,
			it.Name,
			humanize.Comma(it.Cost),
			humanize.FormatFloat("#,###.##", it.Rate),
			it.Category,
			requirement(it),
		)
	}
	fmt.Println()
}

func requirement(it catalog.Item) string {
	var needs []string
	if f := it.RequiredFeature(); f != catalog.FeatureNone {
		needs = append(needs, string(f))
	}
	if it.RequiresPool {
		needs = append(needs, "pool")
	}
	if it.Unlocks != catalog.FeatureNone {
		needs = append(needs, "unlocks "+string(it.Unlocks))
	}
	return strings.Join(needs, ", ")
}
