// Package input turns perception landmarks into world-space player
// positions and detects the mouth-open gesture.
package input

import (
	"github.com/lixenwraith/princess-guard/constants"
	"github.com/lixenwraith/princess-guard/engine"
	"github.com/lixenwraith/princess-guard/perception"
	"github.com/lixenwraith/princess-guard/vmath"
)

// Viewport is the presentation surface size in pixels (or cells)
type Viewport struct {
	Width, Height float64
}

// Mapper converts normalized landmarks to positions on the play plane
type Mapper struct {
	Camera   *engine.Camera
	Viewport Viewport
}

// NewMapper creates a mapper for camera and viewport
func NewMapper(camera *engine.Camera, viewport Viewport) *Mapper {
	return &Mapper{Camera: camera, Viewport: viewport}
}

// ToWorld maps a landmark to the z=0 plane. The camera image is mirrored so
// moving a hand right moves the avatar right on screen.
func (m *Mapper) ToWorld(lm perception.Landmark) vmath.Vec2 {
	w, h := m.Viewport.Width, m.Viewport.Height
	if w <= 0 || h <= 0 {
		w, h = 1, 1
	}

	screenX := (1 - lm.X) * w
	screenY := lm.Y * h

	ndcX := (screenX/w)*2 - 1
	ndcY := -(screenY/h)*2 + 1

	return m.Camera.Unproject(ndcX, ndcY)
}

// SlotFor returns the player slot a hand drives. With one player every hand
// drives slot 0; with two, Right drives slot 0 and Left drives slot 1.
func SlotFor(hand perception.Hand, players int) (int, bool) {
	if players <= 1 {
		return 0, true
	}
	switch hand.Handedness {
	case constants.HandednessRight:
		return 0, true
	case constants.HandednessLeft:
		return 1, true
	default:
		return 0, false
	}
}
