package session

import (
	"sync/atomic"
	"time"

	"github.com/lixenwraith/princess-guard/engine"
	"github.com/lixenwraith/princess-guard/perception"
	"github.com/lixenwraith/princess-guard/status"
)

// gauges caches the registry pointers written after every tick
type gauges struct {
	phase     *status.AtomicString
	score     *atomic.Int64
	enemies   *atomic.Int64
	played    *atomic.Int64
	ticks     *atomic.Int64
	period    *status.AtomicFloat
	published *atomic.Int64
	dropped   *atomic.Int64
	ready     *atomic.Bool
	muted     *atomic.Bool

	lastTick time.Time
}

func newGauges(r *status.Registry) *gauges {
	if r == nil {
		return nil
	}
	return &gauges{
		phase:     r.Strings.Get(status.GamePhase),
		score:     r.Ints.Get(status.GameScore),
		enemies:   r.Ints.Get(status.GameEnemies),
		played:    r.Ints.Get(status.GamesPlayed),
		ticks:     r.Ints.Get(status.EngineTicks),
		period:    r.Floats.Get(status.EnginePeriodMS),
		published: r.Ints.Get(status.FeedPublished),
		dropped:   r.Ints.Get(status.FeedDropped),
		ready:     r.Bools.Get(status.FeedReady),
		muted:     r.Bools.Get(status.AudioMuted),
	}
}

// record runs on the scheduler goroutine after each tick
func (g *gauges) record(snap engine.Snapshot, feed *perception.Feed, muted bool, games int) {
	if g == nil {
		return
	}
	now := time.Now()
	if !g.lastTick.IsZero() {
		g.period.Set(float64(now.Sub(g.lastTick).Microseconds()) / 1000)
	}
	g.lastTick = now

	g.phase.Store(snap.PhaseName)
	g.score.Store(snap.Score)
	g.enemies.Store(int64(len(snap.Enemies)))
	g.played.Store(int64(games))
	g.ticks.Add(1)
	g.ready.Store(snap.Ready)
	g.muted.Store(muted)

	published, dropped := feed.Stats()
	g.published.Store(int64(published))
	g.dropped.Store(int64(dropped))
}
