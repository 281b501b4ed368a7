package systems

import (
	"math/rand"
	"testing"
	"time"

	"github.com/lixenwraith/princess-guard/config"
	"github.com/lixenwraith/princess-guard/engine"
	"github.com/lixenwraith/princess-guard/input"
)

var testEpoch = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

// testViewport matches the default 16:9 camera aspect
var testViewport = input.Viewport{Width: 1600, Height: 900}

// newRunningWorld builds a started world on a mock clock with a fixed seed
func newRunningWorld(t *testing.T, variant config.Variant, tweak func(*config.Config)) (*engine.World, *engine.MockTimeProvider) {
	t.Helper()

	cfg := config.DefaultConfig(variant)
	if tweak != nil {
		tweak(cfg)
	}
	clock := engine.NewMockTimeProvider(testEpoch)
	w := engine.NewWorld(cfg, engine.WorldOptions{
		Time: clock,
		Rand: rand.New(rand.NewSource(42)),
	})
	if err := w.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	w.Events.Dispatch()
	return w, clock
}

// enemyPositions returns enemy views from a fresh snapshot
func enemyPositions(w *engine.World) []engine.EntityView {
	snap := w.Snapshot(false)
	return snap.Enemies
}

// recorder collects routed events by type
type recorder struct {
	events []engine.GameEvent
}

func (r *recorder) HandleEvent(ev engine.GameEvent) { r.events = append(r.events, ev) }
func (r *recorder) EventTypes() []engine.EventType  { return engine.AllEvents }

func (r *recorder) count(t engine.EventType) int {
	n := 0
	for _, ev := range r.events {
		if ev.Type == t {
			n++
		}
	}
	return n
}
