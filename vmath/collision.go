package vmath

// CollisionFactor shrinks the touching distance so contact feels fair on screen
const CollisionFactor = 0.8

// CollisionRadius returns the contact distance for two square bodies given
// their full edge sizes: CollisionFactor * (sizeA/2 + sizeB/2)
func CollisionRadius(sizeA, sizeB float64) float64 {
	return (sizeA/2 + sizeB/2) * CollisionFactor
}

// Collides reports whether two bodies overlap; touching exactly at the
// radius is not a collision
func Collides(a Vec2, sizeA float64, b Vec2, sizeB float64) bool {
	return a.Dist(b) < CollisionRadius(sizeA, sizeB)
}
