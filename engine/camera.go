package engine

import (
	"math"

	"github.com/lixenwraith/princess-guard/vmath"
)

// Camera is a perspective camera on the +z axis looking at the z=0 play
// plane. It must match the projection the presentation uses, or spawn and
// waypoint positions drift from what is drawn.
type Camera struct {
	FOV    float64 // vertical field of view, degrees
	Z      float64 // distance from the play plane
	Aspect float64 // viewport width / height
}

// NewCamera creates a camera
func NewCamera(fov, z, aspect float64) *Camera {
	return &Camera{FOV: fov, Z: z, Aspect: aspect}
}

// HalfHeight returns the visible half-height of the play plane
func (c *Camera) HalfHeight() float64 {
	return c.Z * math.Tan(vmath.DegToRad(c.FOV/2))
}

// HalfWidth returns the visible half-width of the play plane
func (c *Camera) HalfWidth() float64 {
	return c.Aspect * c.HalfHeight()
}

// Bounds returns the visible rectangle of the play plane
func (c *Camera) Bounds() (min, max vmath.Vec2) {
	hw, hh := c.HalfWidth(), c.HalfHeight()
	return vmath.V2(-hw, -hh), vmath.V2(hw, hh)
}

// SetAspect updates the aspect after a viewport resize
func (c *Camera) SetAspect(aspect float64) {
	if aspect > 0 {
		c.Aspect = aspect
	}
}

// Unproject casts a ray from the camera through a point in normalized
// device coordinates (x right, y up, both in [-1, 1]) and returns where it
// meets the z=0 plane
func (c *Camera) Unproject(ndcX, ndcY float64) vmath.Vec2 {
	tanHalf := math.Tan(vmath.DegToRad(c.FOV / 2))

	// Ray direction in world space; the camera looks down -z with no rotation
	dx := ndcX * tanHalf * c.Aspect
	dy := ndcY * tanHalf
	dz := -1.0
	mag := math.Sqrt(dx*dx + dy*dy + dz*dz)
	dx, dy, dz = dx/mag, dy/mag, dz/mag

	distance := -c.Z / dz
	return vmath.V2(dx*distance, dy*distance)
}

// Project maps a point on the play plane to normalized device coordinates
func (c *Camera) Project(p vmath.Vec2) (ndcX, ndcY float64) {
	return p.X / c.HalfWidth(), p.Y / c.HalfHeight()
}
