package main

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-garden/internal/metrics"
	"github.com/vovakirdan/tui-garden/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagMetricsAddr string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Host gardens over SSH",
	Long: `Start an SSH server where every user tends their own garden.

Gardens are saved under "garden:<user>" in the save database. A user can
have one open session at a time.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.garden/host_key

Examples:
  garden serve                           # Listen on :23234 with auto-generated key
  garden serve --ssh :2222               # Listen on port 2222
  garden serve --metrics :9090           # Also expose /metrics and /healthz
  garden serve --db ./gardens.db         # Use specific database

Users can connect with:
  ssh localhost -p 23234`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagMetricsAddr, "metrics", "", "Serve Prometheus metrics on this address (disabled if empty)")
}

func runServe(cmd *cobra.Command, _ []string) {
	gardenCfg, err := loadConfig()
	if err != nil {
		fatalf("Error loading config: %v\n", err)
	}

	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		Garden:      gardenCfg,
	}

	ctx := cmd.Context()

	if flagMetricsAddr != "" {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		cfg.Metrics = metrics.New(reg)

		logger := log.WithPrefix("metrics")
		go func() {
			if err := metrics.Serve(ctx, flagMetricsAddr, metrics.NewRouter(reg, logger), logger); err != nil {
				logger.Error("metrics endpoint stopped", "err", err)
			}
		}()
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		fatalf("Error creating server: %v\n", err)
	}

	log.Info("Starting garden SSH server", "address", server.Addr(), "db", gardenCfg.Save.DB)
	log.Info("Press Ctrl+C to stop")

	if err := server.ListenAndServe(ctx); err != nil {
		fatalf("Server error: %v\n", err)
	}
}
