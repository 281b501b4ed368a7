package systems

import (
	"time"

	"github.com/lixenwraith/princess-guard/engine"
	"github.com/lixenwraith/princess-guard/input"
	"github.com/lixenwraith/princess-guard/perception"
)

// InputSystem applies perception frames to the world: each detected hand
// overwrites its player's position, and an open mouth triggers the bonus
// clear when the variant allows it. It runs inside the scheduler's drain
// step, before the tick's systems.
type InputSystem struct {
	mapper    *input.Mapper
	lastBonus time.Time
	hasBonus  bool
}

// NewInputSystem creates an input system mapping through the world camera
func NewInputSystem(world *engine.World, viewport input.Viewport) *InputSystem {
	return &InputSystem{
		mapper: input.NewMapper(world.Camera, viewport),
	}
}

// SetViewport updates the pixel size landmarks are mapped through
func (s *InputSystem) SetViewport(viewport input.Viewport) {
	s.mapper.Viewport = viewport
}

// Viewport returns the current mapping surface
func (s *InputSystem) Viewport() input.Viewport {
	return s.mapper.Viewport
}

// HandleFrame implements engine.FrameHandler
func (s *InputSystem) HandleFrame(world *engine.World, frame perception.Frame) {
	if world.State.Over() {
		return
	}

	players := world.PlayerCount()
	for _, hand := range frame.Hands {
		anchor, ok := hand.Anchor()
		if !ok {
			continue
		}
		slot, ok := input.SlotFor(hand, players)
		if !ok {
			continue
		}
		pos, _, ok := world.Player(slot)
		if !ok {
			continue
		}
		// No smoothing, the mapped point replaces the position outright
		pos.Vec2 = s.mapper.ToWorld(anchor)
	}

	gp := world.Config.Gameplay
	if !gp.MouthBonus || !world.State.Running() {
		return
	}
	if !input.MouthOpen(frame.Face, gp.MouthThreshold) {
		return
	}

	now := world.Time.Now()
	if gp.BonusCooldown > 0 && s.hasBonus && now.Sub(s.lastBonus) < gp.BonusCooldown {
		return
	}
	s.lastBonus = now
	s.hasBonus = true
	ApplyBonus(world)
}
