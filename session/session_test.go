package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lixenwraith/princess-guard/config"
	"github.com/lixenwraith/princess-guard/constants"
	"github.com/lixenwraith/princess-guard/engine"
	"github.com/lixenwraith/princess-guard/input"
	"github.com/lixenwraith/princess-guard/perception"
	"github.com/lixenwraith/princess-guard/status"
)

// fastConfig ends a solo game within a few dozen ticks
func fastConfig(variant config.Variant) *config.Config {
	cfg := config.DefaultConfig(variant)
	cfg.TickInterval = time.Millisecond
	cfg.Gameplay.EnemySpeed = 0.5
	cfg.Gameplay.SpawnInterval = time.Millisecond
	return cfg
}

func newSession(t *testing.T, cfg *config.Config, opts Options) (*Session, *perception.Feed) {
	t.Helper()
	feed, err := perception.NewFeed(cfg.FeedBuffer, nil)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(feed.Close)
	if opts.Seed == 0 {
		opts.Seed = 1
	}
	return New(cfg, feed, nil, opts), feed
}

// runSession starts Run and returns a channel with its result
func runSession(t *testing.T, s *Session) <-chan error {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	stopped := make(chan struct{})
	go func() {
		done <- s.Run(ctx)
		close(stopped)
	}()
	t.Cleanup(func() {
		cancel()
		select {
		case <-stopped:
		case <-time.After(5 * time.Second):
			t.Error("session did not stop")
		}
	})
	return done
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func phaseIs(s *Session, p engine.Phase) func() bool {
	return func() bool { return s.Snapshot().Phase == p }
}

func TestSnapshotBeforeRun(t *testing.T) {
	s, _ := newSession(t, fastConfig(config.VariantDuo), Options{})
	snap := s.Snapshot()
	if snap.Phase != engine.PhaseIdle || snap.Variant != config.VariantDuo {
		t.Fatalf("unexpected initial snapshot %+v", snap)
	}
	if err := s.Restart(); !errors.Is(err, engine.ErrInvalidTransition) {
		t.Fatalf("Restart before run = %v", err)
	}
}

func TestDuoStartNeedsReadiness(t *testing.T) {
	s, feed := newSession(t, fastConfig(config.VariantDuo), Options{})
	runSession(t, s)
	waitFor(t, "first game", func() bool { return s.Games() == 1 })

	if err := s.Start(); !errors.Is(err, engine.ErrNotReady) {
		t.Fatalf("Start without frames = %v, want ErrNotReady", err)
	}

	feed.Publish(perception.Frame{
		Hands: []perception.Hand{perception.PointerHand(constants.HandednessRight, 0.1, 0.1)},
	})
	waitFor(t, "ready snapshot", func() bool { return s.Snapshot().Ready })

	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	waitFor(t, "running", phaseIs(s, engine.PhaseRunning))

	if err := s.Start(); !errors.Is(err, engine.ErrInvalidTransition) {
		t.Fatalf("second Start = %v, want ErrInvalidTransition", err)
	}
	if err := s.Restart(); !errors.Is(err, engine.ErrInvalidTransition) {
		t.Fatalf("Restart while running = %v, want ErrInvalidTransition", err)
	}
}

func TestSoloAutoStartsAndRestarts(t *testing.T) {
	s, _ := newSession(t, fastConfig(config.VariantSolo), Options{})
	runSession(t, s)

	waitFor(t, "game over", phaseIs(s, engine.PhaseGameOver))
	first := s.Snapshot()
	if first.Session == "" {
		t.Fatal("snapshot has no session id")
	}

	if err := s.Restart(); err != nil {
		t.Fatalf("Restart: %v", err)
	}
	waitFor(t, "second game", func() bool { return s.Games() == 2 })
	waitFor(t, "new session", func() bool {
		snap := s.Snapshot()
		return snap.Session != first.Session
	})
}

func TestQuitEndsRun(t *testing.T) {
	s, _ := newSession(t, fastConfig(config.VariantDuo), Options{})
	done := runSession(t, s)
	waitFor(t, "first game", func() bool { return s.Games() == 1 })

	if s.Control(input.Intent{Type: input.IntentQuit}) {
		t.Fatal("quit intent should stop the terminal")
	}
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after Quit")
	}
}

func TestQuitWhileGameOver(t *testing.T) {
	s, _ := newSession(t, fastConfig(config.VariantSolo), Options{})
	done := runSession(t, s)
	waitFor(t, "game over", phaseIs(s, engine.PhaseGameOver))

	s.Quit()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after Quit")
	}
}

type fakeMuter struct{ muted bool }

func (m *fakeMuter) ToggleMute() bool { m.muted = !m.muted; return m.muted }
func (m *fakeMuter) Muted() bool      { return m.muted }

func TestControlMute(t *testing.T) {
	m := &fakeMuter{}
	s, _ := newSession(t, fastConfig(config.VariantDuo), Options{Muter: m})

	if !s.Control(input.Intent{Type: input.IntentToggleMute}) {
		t.Fatal("mute should keep the terminal running")
	}
	if !s.Muted() {
		t.Fatal("expected muted")
	}

	noAudio, _ := newSession(t, fastConfig(config.VariantDuo), Options{})
	if !noAudio.Muted() {
		t.Fatal("session without audio reports muted")
	}
}

func TestMouthKeyPublishesFrame(t *testing.T) {
	s, feed := newSession(t, fastConfig(config.VariantDuo), Options{})
	s.Control(input.Intent{Type: input.IntentMouthOpen})

	var got []perception.Frame
	feed.Drain(func(f perception.Frame) { got = append(got, f) })
	if len(got) != 1 || got[0].Face == nil || got[0].Source != keyboardSource {
		t.Fatalf("unexpected frames %+v", got)
	}
}

type countingHandler struct{ n chan engine.EventType }

func (h *countingHandler) HandleEvent(ev engine.GameEvent) {
	select {
	case h.n <- ev.Type:
	default:
	}
}
func (h *countingHandler) EventTypes() []engine.EventType {
	return []engine.EventType{engine.EventStarted}
}

func TestHandlersRegisteredOnEveryGame(t *testing.T) {
	h := &countingHandler{n: make(chan engine.EventType, 8)}
	s, _ := newSession(t, fastConfig(config.VariantSolo), Options{Handlers: []engine.Handler{h}})
	runSession(t, s)

	waitFor(t, "game over", phaseIs(s, engine.PhaseGameOver))
	first := s.Snapshot().Session
	if err := s.Restart(); err != nil {
		t.Fatal(err)
	}
	waitFor(t, "second game over", func() bool {
		snap := s.Snapshot()
		return snap.Session != first && snap.Phase == engine.PhaseGameOver
	})
	if len(h.n) != 2 {
		t.Fatalf("started events = %d, want 2", len(h.n))
	}
}

func TestMetricsRecordedPerTick(t *testing.T) {
	reg := status.NewRegistry()
	s, _ := newSession(t, fastConfig(config.VariantSolo), Options{Metrics: reg})
	runSession(t, s)

	waitFor(t, "game over", phaseIs(s, engine.PhaseGameOver))
	waitFor(t, "phase gauge", func() bool {
		return reg.Strings.Get(status.GamePhase).Load() == engine.PhaseGameOver.String()
	})
	if reg.Ints.Get(status.EngineTicks).Load() == 0 {
		t.Fatal("no ticks recorded")
	}
	if reg.Ints.Get(status.GamesPlayed).Load() != 1 {
		t.Fatalf("games = %d", reg.Ints.Get(status.GamesPlayed).Load())
	}
	if !reg.Bools.Get(status.AudioMuted).Load() {
		t.Fatal("session without audio should report muted")
	}
}

func TestRepeatedRestartStartsOneGame(t *testing.T) {
	s, _ := newSession(t, fastConfig(config.VariantSolo), Options{})
	runSession(t, s)

	waitFor(t, "game over", phaseIs(s, engine.PhaseGameOver))
	first := s.Snapshot().Session

	if err := s.Restart(); err != nil {
		t.Fatalf("Restart: %v", err)
	}
	// A second press before the new world shows up must not carry over
	if err := s.Restart(); err != nil && !errors.Is(err, engine.ErrInvalidTransition) {
		t.Fatalf("second Restart = %v", err)
	}

	waitFor(t, "second game over", func() bool {
		snap := s.Snapshot()
		return snap.Session != first && snap.Phase == engine.PhaseGameOver
	})
	time.Sleep(200 * time.Millisecond)

	if got := s.Games(); got != 2 {
		t.Fatalf("games = %d, want 2", got)
	}
	if s.Snapshot().Phase != engine.PhaseGameOver {
		t.Fatal("game over should hold until the next restart")
	}
}
