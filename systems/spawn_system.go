package systems

import (
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/princess-guard/constants"
	"github.com/lixenwraith/princess-guard/engine"
	"github.com/lixenwraith/princess-guard/vmath"
)

// Edge is a side of the viewport enemies enter from
type Edge int

const (
	EdgeTop Edge = iota
	EdgeBottom
	EdgeLeft
	EdgeRight
	edgeCount
)

// SpawnSystem creates one enemy per spawn interval while the game runs
type SpawnSystem struct {
	lastSpawn time.Time
	capLogged bool
}

// NewSpawnSystem creates a spawn system; the first enemy appears on the
// first running tick
func NewSpawnSystem() *SpawnSystem {
	return &SpawnSystem{}
}

func (s *SpawnSystem) Priority() int {
	return constants.PrioritySpawn
}

// Update implements engine.System
func (s *SpawnSystem) Update(world *engine.World, dt time.Duration) {
	if !world.State.Running() {
		return
	}

	gp := world.Config.Gameplay
	now := world.Time.Now()
	if now.Sub(s.lastSpawn) <= gp.SpawnInterval {
		return
	}
	// Restarting from now, not lastSpawn+interval, lets the period stretch
	// to the next tick boundary; a spawn never lands early
	s.lastSpawn = now

	if gp.MaxEnemies > 0 && world.EnemyCount() >= gp.MaxEnemies {
		if !s.capLogged {
			world.Log.Debug("enemy cap reached, spawn skipped", zap.Int("enemies", world.EnemyCount()))
			s.capLogged = true
		}
		return
	}
	s.capLogged = false

	edge := Edge(world.Rand.Intn(int(edgeCount)))
	pos := SpawnPosition(world.Rand, edge, world.Camera.HalfWidth(), world.Camera.HalfHeight(), gp.EnemySize)
	sprite := world.Rand.Intn(constants.EnemySpriteCount)
	world.SpawnEnemy(pos, sprite)

	world.Emit(engine.GameEvent{Type: engine.EventEnemySpawned, Position: pos})
}

// SpawnPosition places an enemy one enemy-size beyond the chosen edge, at a
// uniformly random point along it
func SpawnPosition(rng *rand.Rand, edge Edge, halfW, halfH, enemySize float64) vmath.Vec2 {
	switch edge {
	case EdgeTop:
		return vmath.V2(randRange(rng, -halfW, halfW), halfH+enemySize)
	case EdgeBottom:
		return vmath.V2(randRange(rng, -halfW, halfW), -halfH-enemySize)
	case EdgeLeft:
		return vmath.V2(-halfW-enemySize, randRange(rng, -halfH, halfH))
	default:
		return vmath.V2(halfW+enemySize, randRange(rng, -halfH, halfH))
	}
}

// randRange returns a uniform value in [lo, hi)
func randRange(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
