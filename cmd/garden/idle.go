package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-garden/internal/garden"
	"github.com/vovakirdan/tui-garden/internal/persist"
)

var (
	flagIdleFor    time.Duration
	flagIdleReport time.Duration
)

var idleCmd = &cobra.Command{
	Use:   "idle",
	Short: "Let the garden grow without a screen",
	Long: `Run the garden headless: production ticks and random events keep
going and the save is updated as usual. Stops after --for or on Ctrl+C.

Examples:
  garden idle --for 10m
  garden idle --for 8h --report 1h`,
	RunE: runIdle,
}

func init() {
	idleCmd.Flags().DurationVar(&flagIdleFor, "for", 10*time.Minute, "How long to let the garden grow")
	idleCmd.Flags().DurationVar(&flagIdleReport, "report", time.Minute, "How often to log progress")
}

func runIdle(cmd *cobra.Command, _ []string) error {
	if flagIdleFor <= 0 {
		return errors.New("--for must be positive")
	}

	cfg, store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	logger := log.WithPrefix("idle")
	saverCfg := cfg.SaverConfig()
	saverCfg.Logger = log.WithPrefix("saver")

	sess, err := persist.Open(store, cfg.Save.Key, saverCfg, economyOptions(cfg)...)
	if err != nil {
		if !errors.Is(err, persist.ErrCorruptData) {
			sess.Close()
			return err
		}
		logger.Warn("starting a fresh garden", "key", cfg.Save.Key, "err", err)
	}

	start := sess.Economy.Suns()
	logger.Info("growing", "key", cfg.Save.Key, "for", flagIdleFor,
		"suns", fmtSuns(start), "rate", sess.Economy.Production())

	ctx, cancel := context.WithTimeout(cmd.Context(), flagIdleFor)
	defer cancel()

	runner := garden.NewRunner(sess.Economy)
	runner.Start(ctx)

	report := time.NewTicker(max(flagIdleReport, time.Second))
	defer report.Stop()

loop:
	for {
		select {
		case <-runner.Done():
			break loop
		case <-report.C:
			var suns float64
			var bonuses int
			err := runner.Do(func(e *garden.Economy) {
				suns = e.Suns()
				bonuses = len(e.Bonuses())
			})
			if errors.Is(err, garden.ErrStopped) {
				break loop
			}
			logger.Info("progress", "suns", fmtSuns(suns), "bonuses", bonuses)
		}
	}
	runner.Stop()

	if err := sess.Close(); err != nil {
		return fmt.Errorf("final save failed: %w", err)
	}

	end := sess.Economy.Suns()
	fmt.Printf("Grew %s suns, now %s.\n", fmtSuns(end-start), fmtSuns(end))
	return nil
}
