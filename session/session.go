// Package session runs games back to back. It owns the perception feed, the
// current world's scheduler and the restart loop, and exposes the controls
// the terminal and the HTTP API share.
package session

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/princess-guard/config"
	"github.com/lixenwraith/princess-guard/engine"
	"github.com/lixenwraith/princess-guard/input"
	"github.com/lixenwraith/princess-guard/perception"
	"github.com/lixenwraith/princess-guard/status"
	"github.com/lixenwraith/princess-guard/systems"
)

// ErrNoGame is returned by controls before the first game is created
var ErrNoGame = errors.New("no game running")

// Muter toggles sound cues; audio.SoundManager satisfies it
type Muter interface {
	ToggleMute() bool
	Muted() bool
}

// Options injects collaborators; zero values get production defaults
type Options struct {
	// Handlers are registered on every new world's event router
	Handlers []engine.Handler
	Muter    Muter
	Time     engine.TimeProvider
	// Seed fixes the spawn and wander randomness; zero seeds from the clock
	Seed int64
	// Metrics receives per-tick gauges when set
	Metrics *status.Registry
}

// Session is safe for concurrent use; only the scheduler goroutine touches
// the world
type Session struct {
	cfg  *config.Config
	feed *perception.Feed
	log  *zap.Logger
	opts Options

	mu       sync.Mutex
	sched    *engine.ClockScheduler
	input    *systems.InputSystem
	viewport input.Viewport
	games    int
	gauges   *gauges

	snap     atomic.Pointer[engine.Snapshot]
	restart  chan struct{}
	quit     chan struct{}
	quitOnce sync.Once
}

// New creates a session; call Run to play
func New(cfg *config.Config, feed *perception.Feed, log *zap.Logger, opts Options) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Session{
		cfg:      cfg,
		feed:     feed,
		log:      log,
		opts:     opts,
		viewport: input.Viewport{Width: cfg.Camera.Aspect, Height: 1},
		gauges:   newGauges(opts.Metrics),
		restart:  make(chan struct{}, 1),
		quit:     make(chan struct{}),
	}
	return s
}

// Run plays games until Quit or ctx ends. After GameOver it waits for a
// restart, then rebuilds the world from scratch.
func (s *Session) Run(ctx context.Context) error {
	for {
		sched := s.newGame()

		err := sched.Run(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}

		select {
		case <-s.quit:
			return nil
		default:
		}

		snap := s.Snapshot()
		s.log.Info("waiting for restart",
			zap.String("session", snap.Session), zap.Int64("score", snap.Score))

		select {
		case <-ctx.Done():
			return nil
		case <-s.quit:
			return nil
		case <-s.restart:
		}

		// Frames queued while the game was over belong to the old world
		if n := s.feed.Drain(func(perception.Frame) {}); n > 0 {
			s.log.Debug("discarded stale frames", zap.Int("frames", n))
		}
	}
}

// newGame builds a world with systems and handlers and makes it current
func (s *Session) newGame() *engine.ClockScheduler {
	s.mu.Lock()
	defer s.mu.Unlock()

	seed := s.opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	seed += int64(s.games)
	s.games++

	world := engine.NewWorld(s.cfg, engine.WorldOptions{
		Time: s.opts.Time,
		Rand: rand.New(rand.NewSource(seed)),
		Log:  s.log,
	})
	for _, h := range s.opts.Handlers {
		world.Events.Register(h)
	}
	if s.viewport.Height > 0 {
		world.Camera.SetAspect(s.viewport.Width / s.viewport.Height)
	}

	in := systems.Register(world, s.viewport)
	sched := engine.NewClockScheduler(world, s.feed, in, s.cfg.TickInterval)
	games := s.games
	sched.OnTick(func(snap engine.Snapshot) {
		s.snap.Store(&snap)
		s.gauges.record(snap, s.feed, s.Muted(), games)
	})

	if s.cfg.Gameplay.AutoStart {
		if err := world.Start(); err != nil {
			s.log.Warn("auto start failed", zap.Error(err))
		}
	}

	// A restart requested while the previous world was still published as
	// over belongs to that world, not this one
	select {
	case <-s.restart:
	default:
	}
	snap := world.Snapshot(s.feed.Ready())
	s.snap.Store(&snap)

	s.sched = sched
	s.input = in
	s.log.Info("game created",
		zap.String("session", world.Session.String()),
		zap.String("variant", string(s.cfg.Variant)),
		zap.Int("game", s.games))
	return sched
}

// do queues task on the current scheduler
func (s *Session) do(task func(*engine.World)) error {
	s.mu.Lock()
	sched := s.sched
	s.mu.Unlock()
	if sched == nil {
		return ErrNoGame
	}
	return sched.Do(task)
}

// Start moves an idle game to Running. In the duo variant the feed must
// have delivered a frame first.
func (s *Session) Start() error {
	snap := s.Snapshot()
	if snap.Phase != engine.PhaseIdle {
		return fmt.Errorf("%w: start from %s", engine.ErrInvalidTransition, snap.Phase)
	}
	if s.cfg.Gameplay.RequireReady && !s.feed.Ready() {
		return engine.ErrNotReady
	}
	return s.do(func(w *engine.World) {
		if err := w.Start(); err != nil {
			w.Log.Debug("start ignored", zap.Error(err))
		}
	})
}

// Restart requests a fresh world; only valid after GameOver
func (s *Session) Restart() error {
	// Held across check and send so newGame cannot swap worlds in between
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.Snapshot()
	if snap.Phase != engine.PhaseGameOver {
		return fmt.Errorf("%w: restart from %s", engine.ErrInvalidTransition, snap.Phase)
	}
	select {
	case s.restart <- struct{}{}:
	default:
	}
	return nil
}

// Quit ends Run
func (s *Session) Quit() {
	s.quitOnce.Do(func() {
		close(s.quit)
		s.mu.Lock()
		sched := s.sched
		s.mu.Unlock()
		if sched != nil {
			sched.Stop()
		}
	})
}

// Publish hands a frame to the feed; false when it was dropped
func (s *Session) Publish(frame perception.Frame) bool {
	return s.feed.Publish(frame)
}

// Snapshot returns the state after the most recent tick
func (s *Session) Snapshot() engine.Snapshot {
	if p := s.snap.Load(); p != nil {
		return *p
	}
	return engine.Snapshot{Phase: engine.PhaseIdle, PhaseName: engine.PhaseIdle.String(), Variant: s.cfg.Variant}
}

// Games returns how many worlds have been created
func (s *Session) Games() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.games
}

// Resize updates the camera aspect and the input mapping surface
func (s *Session) Resize(vp input.Viewport) {
	if vp.Width <= 0 || vp.Height <= 0 {
		return
	}
	s.mu.Lock()
	s.viewport = vp
	in := s.input
	s.mu.Unlock()

	err := s.do(func(w *engine.World) {
		w.Camera.SetAspect(vp.Width / vp.Height)
		in.SetViewport(vp)
		w.Emit(engine.GameEvent{Type: engine.EventViewportChanged})
	})
	if err != nil {
		s.log.Debug("resize not applied", zap.Error(err))
	}
}
