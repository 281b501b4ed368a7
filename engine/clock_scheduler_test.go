package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lixenwraith/princess-guard/config"
	"github.com/lixenwraith/princess-guard/perception"
	"github.com/lixenwraith/princess-guard/vmath"
)

// sliceSource hands out queued frames on Drain
type sliceSource struct {
	frames []perception.Frame
	ready  bool
}

func (s *sliceSource) Drain(fn func(perception.Frame)) int {
	n := len(s.frames)
	for _, f := range s.frames {
		fn(f)
	}
	s.frames = nil
	return n
}

func (s *sliceSource) Ready() bool { return s.ready }

type countingHandler struct{ frames int }

func (h *countingHandler) HandleFrame(*World, perception.Frame) { h.frames++ }

// loseSystem ends the game on the given tick
type loseSystem struct{ at uint64 }

func (s loseSystem) Priority() int { return 0 }
func (s loseSystem) Update(w *World, _ time.Duration) {
	if w.Tick() == s.at && w.State.Running() {
		_ = w.State.End(w.Time.Now())
	}
}

func TestSchedulerStepOrder(t *testing.T) {
	w, _ := newTestWorld(config.VariantSolo)
	_ = w.Start()

	src := &sliceSource{frames: make([]perception.Frame, 3), ready: true}
	h := &countingHandler{}
	cs := NewClockScheduler(w, src, h, time.Millisecond)

	var snaps []Snapshot
	cs.OnTick(func(s Snapshot) { snaps = append(snaps, s) })

	cs.Step()

	if h.frames != 3 {
		t.Fatalf("handled %d frames, want 3", h.frames)
	}
	if cs.TickCount() != 1 || w.Tick() != 1 {
		t.Fatalf("ticks: scheduler %d world %d", cs.TickCount(), w.Tick())
	}
	if len(snaps) != 1 || !snaps[0].Ready || snaps[0].Tick != 1 {
		t.Fatalf("unexpected snapshots %+v", snaps)
	}
}

func TestSchedulerDiscardsFramesAfterGameOver(t *testing.T) {
	w, clock := newTestWorld(config.VariantSolo)
	_ = w.Start()
	_ = w.State.End(clock.Now())

	src := &sliceSource{frames: make([]perception.Frame, 4)}
	h := &countingHandler{}
	cs := NewClockScheduler(w, src, h, time.Millisecond)
	cs.Step()

	if h.frames != 0 {
		t.Fatalf("handled %d frames after game over", h.frames)
	}
	if len(src.frames) != 0 {
		t.Fatal("frames were not drained")
	}
}

func TestSchedulerRunStopsOnGameOver(t *testing.T) {
	w, _ := newTestWorld(config.VariantSolo)
	_ = w.Start()
	w.AddSystem(loseSystem{at: 5})

	cs := NewClockScheduler(w, nil, nil, time.Millisecond)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := cs.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !w.State.Over() {
		t.Fatal("Run returned before game over")
	}
	if cs.TickCount() != 5 {
		t.Fatalf("ticks = %d, want 5", cs.TickCount())
	}
	if err := cs.Do(func(*World) {}); !errors.Is(err, ErrSchedulerStopped) {
		t.Fatalf("Do after stop: %v", err)
	}
}

func TestSchedulerRunHonorsContext(t *testing.T) {
	w, _ := newTestWorld(config.VariantDuo)
	cs := NewClockScheduler(w, nil, nil, time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- cs.Run(ctx) }()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("Run: %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestSchedulerTasksRunOnLoop(t *testing.T) {
	w, _ := newTestWorld(config.VariantDuo)
	cs := NewClockScheduler(w, nil, nil, time.Millisecond)

	started := make(chan Phase, 4)
	cs.OnTick(func(s Snapshot) {
		if s.Phase == PhaseRunning {
			select {
			case started <- s.Phase:
			default:
			}
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = cs.Run(ctx) }()

	if err := cs.Do(func(w *World) {
		_ = w.Start()
		w.SpawnEnemy(vmath.V2(9, 9), 0)
	}); err != nil {
		t.Fatalf("Do: %v", err)
	}

	select {
	case <-started:
	case <-time.After(2 * time.Second):
		t.Fatal("start task never ran")
	}
	cs.Stop()
}
