// garden is an idle word garden that grows in your terminal.
//
// Usage:
//
//	garden play              - Tend your garden
//	garden serve             - Host gardens over SSH
//	garden idle --for 10m    - Let the garden grow without a screen
//	garden status            - Show a save and its recent progress
//	garden catalog           - List everything the shop sells
//	garden export            - Print a save as JSON or YAML
//	garden import <file>     - Replace a save with an exported file
//	garden reset             - Delete a save and its history
//
// Global flags:
//
//	--config <path>     - Garden config file (default: search ~/.garden, ./configs)
//	--db <path>         - Save database (env GARDEN_DB)
//	--key <name>        - Save key (env GARDEN_SAVE_KEY)
//	--seed <value>      - RNG seed for reproducible events
//	--log-level <lvl>   - debug, info, warn or error
package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-garden/internal/config"
	"github.com/vovakirdan/tui-garden/internal/garden"
	"github.com/vovakirdan/tui-garden/internal/storage"
)

var (
	// Global flags
	flagConfig   string
	flagDBPath   string
	flagSaveKey  string
	flagSeed     uint64
	flagLogLevel string
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "garden",
	Short: "Word Garden - grow suns while you learn to type",
	Long: `Word Garden is an idle game for the terminal. Plants, animals and
objects produce suns every second; spend them in the shop, water your seeds
and practice typing for extra income.

Available commands:
  play     - Tend your garden
  serve    - Host one garden per SSH user
  idle     - Let the garden grow headless for a while
  status   - Show a save and its recent progress
  catalog  - List everything the shop sells
  export   - Print a save as JSON or YAML
  import   - Replace a save with an exported JSON file
  reset    - Delete a save and its history

Examples:
  garden play
  garden play --key weekend --mono
  garden serve --ssh :2222 --metrics :9090
  garden idle --for 30m
  garden status --all`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		// A missing .env is fine; the environment and flags still apply.
		_ = godotenv.Load()

		level, err := log.ParseLevel(flagLogLevel)
		if err != nil {
			return fmt.Errorf("invalid --log-level: %w", err)
		}
		log.SetLevel(level)
		log.SetReportTimestamp(true)
		return nil
	},
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to garden.yaml (default: search ~/.garden and ./configs)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to the save database (default: $GARDEN_DB or the config)")
	rootCmd.PersistentFlags().StringVar(&flagSaveKey, "key", "", "Save key (default: $GARDEN_SAVE_KEY or the config)")
	rootCmd.PersistentFlags().Uint64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(idleCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(resetCmd)
}

// loadConfig reads the garden config and applies environment and flag
// overrides, flags last.
func loadConfig() (config.GardenConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}

	if v := os.Getenv("GARDEN_DB"); v != "" {
		cfg.Save.DB = v
	}
	if v := os.Getenv("GARDEN_SAVE_KEY"); v != "" {
		cfg.Save.Key = v
	}
	if flagDBPath != "" {
		cfg.Save.DB = flagDBPath
	}
	if flagSaveKey != "" {
		cfg.Save.Key = flagSaveKey
	}
	return cfg, nil
}

// openStore loads the config and opens its save database.
func openStore() (config.GardenConfig, *storage.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return cfg, nil, err
	}
	store, err := storage.Open(cfg.Save.DB)
	if err != nil {
		return cfg, nil, err
	}
	return cfg, store, nil
}

// economyOptions builds the economy options shared by every command.
func economyOptions(cfg config.GardenConfig) []garden.Option {
	opts := []garden.Option{garden.WithRules(cfg.Rules())}
	if flagSeed != 0 {
		opts = append(opts, garden.WithRand(rand.New(rand.NewPCG(flagSeed, flagSeed))))
	}
	return opts
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format, args...)
	os.Exit(1)
}
