package systems

import (
	"time"

	"github.com/mlange-42/ark/ecs"
	"go.uber.org/zap"

	"github.com/lixenwraith/princess-guard/components"
	"github.com/lixenwraith/princess-guard/constants"
	"github.com/lixenwraith/princess-guard/engine"
	"github.com/lixenwraith/princess-guard/vmath"
)

type kill struct {
	entity ecs.Entity
	pos    vmath.Vec2
	slot   int
}

// MotionSystem moves every enemy toward the princess and resolves
// collisions. Touching the princess ends the game; touching a player kills
// the enemy for KillScore.
type MotionSystem struct {
	kills []kill
}

func NewMotionSystem() *MotionSystem {
	return &MotionSystem{}
}

func (s *MotionSystem) Priority() int {
	return constants.PriorityMotion
}

// Update implements engine.System
func (s *MotionSystem) Update(world *engine.World, dt time.Duration) {
	if !world.State.Running() {
		return
	}

	speed := world.Config.Gameplay.EnemySpeed
	tpos, tbody, _ := world.Target()
	target := tpos.Vec2

	players := make([]components.PositionComponent, 0, world.PlayerCount())
	playerSizes := make([]float64, 0, world.PlayerCount())
	world.EachPlayer(func(_ int, pos *components.PositionComponent, b *components.BodyComponent) {
		players = append(players, *pos)
		playerSizes = append(playerSizes, b.Size)
	})

	s.kills = s.kills[:0]
	var lost bool
	var lostAt vmath.Vec2

	world.EachEnemy(func(e ecs.Entity, pos *components.PositionComponent, b *components.BodyComponent) bool {
		pos.Vec2 = pos.Add(pos.DirectionTo(target).Scale(speed))

		if vmath.Collides(pos.Vec2, b.Size, target, tbody.Size) {
			lost = true
			lostAt = pos.Vec2
			return false
		}

		// First player in range takes the kill; the enemy cannot be scored twice
		for slot, p := range players {
			if vmath.Collides(pos.Vec2, b.Size, p.Vec2, playerSizes[slot]) {
				s.kills = append(s.kills, kill{entity: e, pos: pos.Vec2, slot: slot})
				break
			}
		}
		return true
	})

	// Kills resolved before the princess was reached still count
	for _, k := range s.kills {
		if !world.RemoveEnemy(k.entity) {
			continue
		}
		score := world.State.AddKill(constants.KillScore)
		world.Emit(engine.GameEvent{Type: engine.EventEnemyKilled, Position: k.pos, Slot: k.slot, Score: score})
		world.Emit(engine.GameEvent{Type: engine.EventScoreChanged, Score: score})
	}

	if lost {
		if err := world.State.End(world.Time.Now()); err != nil {
			world.Log.Warn("game over transition rejected", zap.Error(err))
			return
		}
		world.Log.Info("princess reached",
			zap.Float64("x", lostAt.X), zap.Float64("y", lostAt.Y),
			zap.Int("enemies", world.EnemyCount()))
		world.Emit(engine.GameEvent{Type: engine.EventGameOver, Position: lostAt})
	}
}
