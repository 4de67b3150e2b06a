package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-garden/internal/core"
	"github.com/vovakirdan/tui-garden/internal/persist"
	"github.com/vovakirdan/tui-garden/internal/platform/tui"
)

var (
	flagMono    bool
	flagLogFile string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Tend your garden",
	Long: `Open your garden in the terminal.

The garden keeps producing while the screen is open and is saved a few
seconds after every change. Press ? inside the game for all keys.

Examples:
  garden play
  garden play --key weekend
  garden play --mono --log-file /tmp/garden.log`,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagMono, "mono", false, "Render without colors")
	playCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Write save logs to this file while playing")
}

func runPlay(_ *cobra.Command, _ []string) error {
	cfg, store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	// The game owns the terminal, so logs go to a file or nowhere.
	logOut := io.Discard
	if flagLogFile != "" {
		f, ferr := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if ferr != nil {
			return fmt.Errorf("cannot open log file: %w", ferr)
		}
		defer f.Close()
		logOut = f
	}
	logger := log.NewWithOptions(logOut, log.Options{
		ReportTimestamp: true,
		Prefix:          "saver",
		Level:           log.GetLevel(),
	})

	var failures atomic.Int64
	saverCfg := cfg.SaverConfig()
	saverCfg.Logger = logger
	saverCfg.OnError = func(error) { failures.Add(1) }

	sess, err := persist.Open(store, cfg.Save.Key, saverCfg, economyOptions(cfg)...)
	if err != nil {
		if !errors.Is(err, persist.ErrCorruptData) {
			sess.Close()
			return err
		}
		fmt.Fprintf(os.Stderr, "Save %q could not be read, starting a new garden: %v\n", cfg.Save.Key, err)
	}

	rc := core.DefaultConfig()
	rc.Seed = flagSeed
	rc.Player = cfg.Save.Key
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		rc.ScreenW = w
		rc.ScreenH = h
	}

	theme := tui.DefaultTheme()
	if flagMono {
		theme = tui.MonochromeTheme()
	}

	runErr := tui.Run(sess.Economy, tui.Options{
		Config: rc,
		Theme:  theme,
		Words:  cfg.Typing.Words,
	})

	closeErr := sess.Close()
	if n := failures.Load(); n > 0 {
		fmt.Fprintf(os.Stderr, "%d background saves failed\n", n)
	}
	if runErr != nil {
		return runErr
	}
	if closeErr != nil {
		return fmt.Errorf("final save failed: %w", closeErr)
	}

	fmt.Printf("Garden saved with %s suns.\n", fmtSuns(sess.Economy.Suns()))
	return nil
}
