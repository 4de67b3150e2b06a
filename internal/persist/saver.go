package persist

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-garden/internal/garden"
)

// SaverConfig tunes a Saver.
type SaverConfig struct {
	// Quiet is how long the state must stay unchanged before a write.
	Quiet time.Duration
	// MaxDelay bounds how long a dirty state may wait, so a garden that
	// changes every tick is still written.
	MaxDelay time.Duration
	Logger   *log.Logger
	// AfterWrite runs after every successful write, on the writing goroutine.
	AfterWrite func(garden.State)
	// OnError runs after every failed background write.
	OnError func(error)
	// HistoryInterval is the minimum gap between two progress points when
	// the store keeps history. The last write is always recorded on Close.
	HistoryInterval time.Duration
}

// DefaultSaverConfig returns the reference debounce timings.
func DefaultSaverConfig() SaverConfig {
	return SaverConfig{
		Quiet:           3 * time.Second,
		MaxDelay:        30 * time.Second,
		HistoryInterval: time.Minute,
	}
}

// Saver writes state snapshots to a KV store with debouncing. Notify never
// blocks on I/O; Close flushes the last snapshot synchronously.
type Saver struct {
	kv  KV
	key string
	cfg SaverConfig
	now func() time.Time

	writeMu sync.Mutex // serializes writes so they land in notify order

	mu         sync.Mutex
	pending    *garden.State
	firstDirty time.Time
	timer      *time.Timer
	closed     bool
}

// NewSaver creates a saver writing under key.
func NewSaver(kv KV, key string, cfg SaverConfig) *Saver {
	def := DefaultSaverConfig()
	if cfg.Quiet <= 0 {
		cfg.Quiet = def.Quiet
	}
	if cfg.MaxDelay < cfg.Quiet {
		cfg.MaxDelay = max(def.MaxDelay, cfg.Quiet)
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	return &Saver{kv: kv, key: key, cfg: cfg, now: time.Now}
}

// Notify records st as the latest state. st must be a snapshot the caller
// no longer mutates.
func (s *Saver) Notify(st garden.State) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.pending = &st

	now := s.now()
	if s.timer == nil {
		s.firstDirty = now
		s.timer = time.AfterFunc(s.cfg.Quiet, s.fire)
		return
	}

	wait := s.cfg.Quiet
	if left := s.cfg.MaxDelay - now.Sub(s.firstDirty); left < wait {
		wait = max(left, 0)
	}
	s.timer.Reset(wait)
}

func (s *Saver) fire() {
	if err := s.Flush(); err != nil {
		s.cfg.Logger.Error("save failed", "key", s.key, "err", err)
		if s.cfg.OnError != nil {
			s.cfg.OnError(err)
		}
	}
}

// Pending reports whether a snapshot is waiting to be written.
func (s *Saver) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending != nil
}

// Flush writes the pending snapshot now, if any.
func (s *Saver) Flush() error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	st := s.pending
	s.pending = nil
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.mu.Unlock()

	if st == nil {
		return nil
	}
	if err := Save(s.kv, s.key, *st); err != nil {
		return err
	}
	s.cfg.Logger.Debug("saved", "key", s.key, "suns", garden.Floor(st.Suns), "items", st.ItemCount())
	if s.cfg.AfterWrite != nil {
		s.cfg.AfterWrite(*st)
	}
	return nil
}

// Close flushes the last snapshot and ignores later notifications.
func (s *Saver) Close() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return s.Flush()
}

// Attach subscribes the saver to an economy's persistent events.
func Attach(eco *garden.Economy, s *Saver) {
	eco.Subscribe(func(ev garden.Event) {
		if ev.Kind.Persistent() {
			s.Notify(eco.Snapshot())
		}
	})
}
