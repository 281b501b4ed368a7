package systems

import (
	"time"

	"github.com/lixenwraith/princess-guard/constants"
	"github.com/lixenwraith/princess-guard/engine"
	"github.com/lixenwraith/princess-guard/vmath"
)

// WanderSystem walks the princess between random waypoints inside the
// viewport. A new waypoint is picked when the wander interval elapses or
// the current one is reached.
type WanderSystem struct{}

func NewWanderSystem() *WanderSystem {
	return &WanderSystem{}
}

func (s *WanderSystem) Priority() int {
	return constants.PriorityWander
}

// Update implements engine.System
func (s *WanderSystem) Update(world *engine.World, dt time.Duration) {
	gp := world.Config.Gameplay
	if !gp.WanderTarget || !world.State.Running() {
		return
	}

	pos, b, target := world.Target()
	now := world.Time.Now()

	if !target.HasWaypoint ||
		now.Sub(target.LastPick) >= gp.WanderInterval ||
		pos.Dist(target.Waypoint) <= gp.WaypointArrive {
		target.Waypoint = PickWaypoint(world, b.Half())
		target.HasWaypoint = true
		target.LastPick = now
	}

	pos.Vec2 = pos.MoveToward(target.Waypoint, gp.TargetSpeed)
}

// PickWaypoint returns a uniform random point inside the viewport, inset so
// an entity of the given half-size stays fully visible
func PickWaypoint(world *engine.World, half float64) vmath.Vec2 {
	halfW := world.Camera.HalfWidth() - half
	halfH := world.Camera.HalfHeight() - half
	if halfW < 0 {
		halfW = 0
	}
	if halfH < 0 {
		halfH = 0
	}
	return vmath.V2(
		randRange(world.Rand, -halfW, halfW),
		randRange(world.Rand, -halfH, halfH),
	)
}
