// Package systems holds the per-tick game rules: spawning, princess
// wandering, enemy pursuit and collision, and the perception-driven input
// handler with its bonus clear.
package systems

import (
	"github.com/lixenwraith/princess-guard/engine"
	"github.com/lixenwraith/princess-guard/input"
)

// Register adds the rule systems for the world's variant and returns the
// frame handler the scheduler should feed perception into
func Register(world *engine.World, viewport input.Viewport) *InputSystem {
	world.AddSystem(NewSpawnSystem())
	if world.Config.Gameplay.WanderTarget {
		world.AddSystem(NewWanderSystem())
	}
	world.AddSystem(NewMotionSystem())
	return NewInputSystem(world, viewport)
}
