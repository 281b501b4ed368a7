package engine

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/princess-guard/perception"
)

var (
	// ErrSchedulerStopped is returned by Do once the loop has exited
	ErrSchedulerStopped = errors.New("scheduler stopped")
	// ErrTaskQueueFull is returned by Do when the task queue is saturated
	ErrTaskQueueFull = errors.New("scheduler task queue full")
)

const taskQueueLen = 16

// FrameSource is drained at the start of every tick
type FrameSource interface {
	Drain(fn func(perception.Frame)) int
	Ready() bool
}

// FrameHandler applies one perception frame to the world
type FrameHandler interface {
	HandleFrame(world *World, frame perception.Frame)
}

// ClockScheduler runs the game on a fixed tick. It is the only goroutine
// touching the World: perception frames, control tasks and systems all run
// inside its loop, one after another. The loop exits when the game reaches
// GameOver or the context ends.
type ClockScheduler struct {
	world   *World
	frames  FrameSource
	handler FrameHandler

	tickInterval     time.Duration
	nextTickDeadline time.Time

	tasks     chan func(*World)
	onTick    func(Snapshot)
	tickCount atomic.Uint64

	running  atomic.Bool
	stopped  atomic.Bool
	stopChan chan struct{}
	stopOnce sync.Once
}

// NewClockScheduler creates a scheduler; frames and handler may be nil when
// the world has no perception input
func NewClockScheduler(world *World, frames FrameSource, handler FrameHandler, tickInterval time.Duration) *ClockScheduler {
	return &ClockScheduler{
		world:        world,
		frames:       frames,
		handler:      handler,
		tickInterval: tickInterval,
		tasks:        make(chan func(*World), taskQueueLen),
		stopChan:     make(chan struct{}),
	}
}

// OnTick registers the snapshot consumer, must be called before Run
func (cs *ClockScheduler) OnTick(fn func(Snapshot)) {
	cs.onTick = fn
}

// World returns the scheduled world. Callers outside the loop must only use
// it through Do.
func (cs *ClockScheduler) World() *World {
	return cs.world
}

// TickCount returns the number of processed ticks
func (cs *ClockScheduler) TickCount() uint64 {
	return cs.tickCount.Load()
}

// Do queues task to run on the scheduler goroutine between ticks. It never
// blocks.
func (cs *ClockScheduler) Do(task func(*World)) error {
	if cs.stopped.Load() {
		return ErrSchedulerStopped
	}
	select {
	case cs.tasks <- task:
		return nil
	default:
		return ErrTaskQueueFull
	}
}

// Stop ends Run without waiting for GameOver
func (cs *ClockScheduler) Stop() {
	cs.stopOnce.Do(func() {
		close(cs.stopChan)
	})
}

// Run drives ticks until GameOver, Stop or ctx cancellation. It returns nil
// on GameOver and Stop, ctx.Err() on cancellation.
func (cs *ClockScheduler) Run(ctx context.Context) error {
	if !cs.running.CompareAndSwap(false, true) {
		return errors.New("scheduler already running")
	}
	defer cs.stopped.Store(true)

	cs.publish()
	if cs.world.State.Over() {
		return nil
	}

	cs.nextTickDeadline = time.Now().Add(cs.tickInterval)

	timer := time.NewTimer(cs.tickInterval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-cs.stopChan:
			return nil

		case task := <-cs.tasks:
			cs.runTask(task)
			continue

		case <-timer.C:
		}

		cs.Step()
		if cs.world.State.Over() {
			cs.world.Log.Info("game over",
				zap.Int64("score", cs.world.State.Score()),
				zap.Uint64("tick", cs.world.Tick()))
			return nil
		}

		now := time.Now()
		cs.nextTickDeadline = cs.nextTickDeadline.Add(cs.tickInterval)
		maxBehind := cs.tickInterval * 2
		if now.Sub(cs.nextTickDeadline) > maxBehind {
			cs.nextTickDeadline = now.Add(cs.tickInterval)
		}

		sleep := cs.nextTickDeadline.Sub(now)
		if sleep < 0 {
			sleep = 0
		}
		timer.Reset(sleep)
	}
}

// Step executes one tick synchronously: drain perception, run systems,
// deliver events, publish the snapshot
func (cs *ClockScheduler) Step() {
	w := cs.world

	if cs.frames != nil {
		cs.frames.Drain(func(frame perception.Frame) {
			// Frames after GameOver are discarded
			if cs.handler != nil && !w.State.Over() {
				cs.handler.HandleFrame(w, frame)
			}
		})
	}

	w.Update(cs.tickInterval)
	w.Events.Dispatch()
	cs.tickCount.Add(1)
	cs.publish()
}

// runTask executes a control task between ticks and publishes its effects
func (cs *ClockScheduler) runTask(task func(*World)) {
	task(cs.world)
	cs.world.Events.Dispatch()
	cs.publish()
}

func (cs *ClockScheduler) publish() {
	if cs.onTick == nil {
		return
	}
	ready := cs.frames != nil && cs.frames.Ready()
	cs.onTick(cs.world.Snapshot(ready))
}
