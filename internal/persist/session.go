package persist

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-garden/internal/catalog"
	"github.com/vovakirdan/tui-garden/internal/garden"
)

// History receives progress points after successful saves.
type History interface {
	RecordProgress(key string, suns float64, items int) (int64, error)
}

// Session is one loaded garden with a saver attached to its economy.
type Session struct {
	Key     string
	Economy *garden.Economy
	Saver   *Saver

	progress *progressRecorder
}

// Open loads the garden stored under key, builds its economy over a fresh
// built-in catalog and attaches a saver. When kv also implements History,
// writes append progress points at most once per cfg.HistoryInterval.
//
// An unreadable save still yields a new garden; the load error is returned
// next to the session so the caller can log it.
func Open(kv KV, key string, cfg SaverConfig, opts ...garden.Option) (*Session, error) {
	st, loadErr := Load(kv, key)

	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.HistoryInterval <= 0 {
		cfg.HistoryInterval = DefaultSaverConfig().HistoryInterval
	}
	sess := &Session{Key: key}
	if h, ok := kv.(History); ok {
		sess.progress = &progressRecorder{
			history: h,
			key:     key,
			every:   cfg.HistoryInterval,
			now:     time.Now,
			logger:  cfg.Logger,
			next:    cfg.AfterWrite,
		}
		cfg.AfterWrite = sess.progress.written
	}
	sess.Saver = NewSaver(kv, key, cfg)

	sess.Economy = garden.New(catalog.Builtin(), st, opts...)
	Attach(sess.Economy, sess.Saver)

	return sess, loadErr
}

// progressRecorder turns saver writes into History points, keeping back
// writes that land within every of the last recorded one.
type progressRecorder struct {
	history History
	key     string
	every   time.Duration
	now     func() time.Time
	logger  *log.Logger
	next    func(garden.State)

	mu      sync.Mutex
	last    time.Time
	skipped *garden.State
}

func (p *progressRecorder) written(st garden.State) {
	p.mu.Lock()
	now := p.now()
	if !p.last.IsZero() && now.Sub(p.last) < p.every {
		p.skipped = &st
	} else {
		p.record(st, now)
	}
	p.mu.Unlock()

	if p.next != nil {
		p.next(st)
	}
}

// flush records the newest write that was held back, if any.
func (p *progressRecorder) flush() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.skipped != nil {
		p.record(*p.skipped, p.now())
	}
}

func (p *progressRecorder) record(st garden.State, at time.Time) {
	p.skipped = nil
	p.last = at
	if _, err := p.history.RecordProgress(p.key, st.Suns, st.ItemCount()); err != nil {
		p.logger.Warn("progress not recorded", "key", p.key, "err", err)
	}
}

// Close writes the last snapshot and its progress point.
func (s *Session) Close() error {
	err := s.Saver.Close()
	if s.progress != nil {
		s.progress.flush()
	}
	return err
}
