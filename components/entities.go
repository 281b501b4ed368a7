package components

import (
	"time"

	"github.com/lixenwraith/princess-guard/vmath"
)

// Kind tags what an entity is, for presentation
type Kind uint8

const (
	KindPlayer Kind = iota
	KindTarget
	KindEnemy
)

func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindTarget:
		return "target"
	case KindEnemy:
		return "enemy"
	default:
		return "unknown"
	}
}

// PositionComponent is the entity center on the z=0 plane
type PositionComponent struct {
	vmath.Vec2
}

// BodyComponent is the square body; Size is the full edge length and never
// changes after creation
type BodyComponent struct {
	Size float64
}

// Half returns the half-extent
func (b BodyComponent) Half() float64 {
	return b.Size / 2
}

// PlayerComponent marks a hand-driven avatar
type PlayerComponent struct {
	Slot int // 0 = player one, 1 = player two
}

// TargetComponent marks the princess and carries her wander state
type TargetComponent struct {
	Waypoint    vmath.Vec2
	HasWaypoint bool
	LastPick    time.Time
}

// EnemyComponent marks a pursuer
type EnemyComponent struct {
	Sprite  int // 0 stego, 1 tha, 2 trex
	Spawned time.Time
}
