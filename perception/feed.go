package perception

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"
)

// maxSources bounds concurrently running producers
const maxSources = 8

// ErrFeedClosed is returned when starting a source on a closed feed
var ErrFeedClosed = errors.New("perception feed closed")

// Source is a long-running producer of frames
type Source interface {
	Name() string
	// Run publishes frames until ctx is done or the source is exhausted
	Run(ctx context.Context, feed *Feed) error
}

// Feed is a bounded single-consumer queue of frames. Publishing never
// blocks: when the buffer is full the frame is dropped and the consumer keeps
// using the last positions it applied.
type Feed struct {
	frames chan Frame
	pool   *ants.Pool
	log    *zap.Logger
	now    func() time.Time

	wg        sync.WaitGroup
	closed    atomic.Bool
	ready     atomic.Bool
	published atomic.Uint64
	dropped   atomic.Uint64
}

// NewFeed creates a feed holding up to buffer undelivered frames
func NewFeed(buffer int, log *zap.Logger) (*Feed, error) {
	if buffer < 1 {
		buffer = 1
	}
	if log == nil {
		log = zap.NewNop()
	}

	f := &Feed{
		frames: make(chan Frame, buffer),
		log:    log,
		now:    time.Now,
	}

	pool, err := ants.NewPool(maxSources,
		ants.WithNonblocking(true),
		ants.WithPanicHandler(func(p any) {
			f.log.Error("perception source panicked", zap.Any("panic", p))
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("create source pool: %w", err)
	}
	f.pool = pool

	return f, nil
}

// Start runs src on the feed's worker pool. Source errors are logged, the
// capability stays inert and the game continues.
func (f *Feed) Start(ctx context.Context, src Source) error {
	if f.closed.Load() {
		return ErrFeedClosed
	}

	f.wg.Add(1)
	err := f.pool.Submit(func() {
		defer f.wg.Done()

		log := f.log.With(zap.String("source", src.Name()))
		log.Info("perception source started")
		if err := src.Run(ctx, f); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("perception source failed", zap.Error(err))
			return
		}
		log.Info("perception source stopped")
	})
	if err != nil {
		f.wg.Done()
		return fmt.Errorf("start source %s: %w", src.Name(), err)
	}
	return nil
}

// Publish enqueues frame without blocking; false means it was dropped
func (f *Feed) Publish(frame Frame) bool {
	if f.closed.Load() {
		return false
	}
	if frame.Received.IsZero() {
		frame.Received = f.now()
	}
	f.ready.Store(true)

	select {
	case f.frames <- frame:
		f.published.Add(1)
		return true
	default:
		if f.dropped.Add(1)%100 == 1 {
			f.log.Debug("perception feed full, frame dropped",
				zap.String("source", frame.Source),
				zap.Uint64("dropped", f.dropped.Load()))
		}
		return false
	}
}

// Drain hands every pending frame to fn and returns how many were consumed.
// It never waits for new frames. Only the game loop calls Drain.
func (f *Feed) Drain(fn func(Frame)) int {
	n := 0
	for {
		select {
		case frame := <-f.frames:
			fn(frame)
			n++
		default:
			return n
		}
	}
}

// Ready reports whether any producer has delivered a frame yet
func (f *Feed) Ready() bool {
	return f.ready.Load()
}

// Stats returns published and dropped frame counts
func (f *Feed) Stats() (published, dropped uint64) {
	return f.published.Load(), f.dropped.Load()
}

// Close rejects further frames, waits for running sources to return and
// releases the pool. Sources must observe their context to return.
func (f *Feed) Close() {
	if !f.closed.CompareAndSwap(false, true) {
		return
	}
	f.wg.Wait()
	f.pool.Release()
}
