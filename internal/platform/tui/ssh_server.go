package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/tui-garden/internal/config"
	"github.com/vovakirdan/tui-garden/internal/core"
	"github.com/vovakirdan/tui-garden/internal/garden"
	"github.com/vovakirdan/tui-garden/internal/metrics"
	"github.com/vovakirdan/tui-garden/internal/persist"
	"github.com/vovakirdan/tui-garden/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.garden/host_key.
	HostKeyPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// Garden holds the economy tuning and the save location.
	Garden config.GardenConfig

	// Metrics receives economy events of every session. Optional.
	Metrics *metrics.Collector
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		IdleTimeout: 30 * time.Minute,
		Garden:      config.DefaultGardenConfig(),
	}
}

// SaveKey is the storage key of an SSH user's garden.
func SaveKey(user string) string {
	return "garden:" + user
}

type sessionKey struct{}

// saveStore is where the server keeps every user's garden.
type saveStore interface {
	persist.KV
	Close() error
}

// SSHServer hosts one garden per SSH user.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  saveStore
	logger *log.Logger

	mu     sync.Mutex
	active map[string]*persist.Session // by save key
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "garden-ssh",
	})

	store, err := storage.Open(cfg.Garden.Save.DB)
	if err != nil {
		return nil, err
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		logger: logger,
		active: make(map[string]*persist.Session),
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			store.Close()
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".garden", "host_key")
	}

	if mkdirErr := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); mkdirErr != nil {
		store.Close()
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	// Middlewares run last to first: logging wraps session cleanup, which
	// wraps the Bubble Tea program.
	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.sessionMiddleware,
			srv.loggingMiddleware,
		),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler loads the user's garden and creates its view.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	gs, err := s.open(sshSession.User())
	if err != nil {
		s.logger.Warn("garden not opened", "user", sshSession.User(), "err", err)
		if errors.Is(err, errGardenBusy) {
			wish.Println(sshSession, "Your garden is already open in another session.")
		} else {
			wish.Println(sshSession, "Your garden could not be loaded. Please try again later.")
		}
		return nil, nil
	}
	sshSession.Context().SetValue(sessionKey{}, gs)

	model := NewModel(gs.Economy, Options{
		Config: core.RuntimeConfig{
			ScreenW: pty.Window.Width,
			ScreenH: pty.Window.Height,
			Player:  sshSession.User(),
		},
		Theme: DefaultTheme(),
		Words: s.config.Garden.Typing.Words,
	})

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

var errGardenBusy = errors.New("garden already open")

// open claims the user's garden. One session per garden keeps saves from
// overwriting each other. An unreadable save starts a fresh garden; any
// other load failure is returned so the stored garden is never replaced
// by defaults.
func (s *SSHServer) open(user string) (*persist.Session, error) {
	key := SaveKey(user)

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.active[key]; busy {
		return nil, fmt.Errorf("%w: %s", errGardenBusy, key)
	}

	saverCfg := s.config.Garden.SaverConfig()
	saverCfg.Logger = s.logger.WithPrefix("saver")
	if s.config.Metrics != nil {
		saveFailures := s.config.Metrics.SaveFailures
		saverCfg.OnError = func(error) { saveFailures.Inc() }
	}

	gs, err := persist.Open(s.store, key, saverCfg, garden.WithRules(s.config.Garden.Rules()))
	if err != nil {
		if !errors.Is(err, persist.ErrCorruptData) {
			gs.Close()
			return nil, err
		}
		s.logger.Warn("starting a fresh garden", "key", key, "err", err)
	}
	if s.config.Metrics != nil {
		gs.Economy.Subscribe(s.config.Metrics.Observer(key))
		s.config.Metrics.Open()
	}
	s.active[key] = gs
	return gs, nil
}

// release saves and forgets the session's garden.
func (s *SSHServer) release(gs *persist.Session) {
	s.mu.Lock()
	if s.active[gs.Key] != gs {
		s.mu.Unlock()
		return
	}
	delete(s.active, gs.Key)
	s.mu.Unlock()

	if err := gs.Close(); err != nil {
		s.logger.Error("final save failed", "key", gs.Key, "err", err)
	}
	if s.config.Metrics != nil {
		s.config.Metrics.Close(gs.Key)
	}
}

// sessionMiddleware saves the garden once the program has exited.
func (s *SSHServer) sessionMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		next(sshSession)
		if gs, ok := sshSession.Context().Value(sessionKey{}).(*persist.Session); ok {
			s.release(gs)
		}
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until ctx is cancelled.
// Open gardens are saved before it returns.
func (s *SSHServer) ListenAndServe(ctx context.Context) error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		s.logger.Error("server error", "error", err)
		s.Shutdown()
		return err
	}

	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown stops accepting sessions, saves every open garden and closes
// the store.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := s.server.Shutdown(ctx)

	s.mu.Lock()
	open := make([]*persist.Session, 0, len(s.active))
	for _, gs := range s.active {
		open = append(open, gs)
	}
	s.mu.Unlock()
	for _, gs := range open {
		s.release(gs)
	}

	if cerr := s.store.Close(); err == nil {
		err = cerr
	}
	return err
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
