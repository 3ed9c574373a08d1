package actor

import "github.com/go-gl/mathgl/mgl64"

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

// Overlaps checks if two AABBs overlap.
// Boxes are separated on an axis only if one max is strictly below the other
// min, so touching faces still overlap.
func (a AABB) Overlaps(other AABB) bool {
	separated := a.Max.X() < other.Min.X() || a.Max.Y() < other.Min.Y() ||
		a.Max.Z() < other.Min.Z() || other.Max.X() < a.Min.X() ||
		other.Max.Y() < a.Min.Y() || other.Max.Z() < a.Min.Z()

	return !separated
}

func (a AABB) Center() mgl64.Vec3 {
	return a.Min.Add(a.Max).Mul(0.5)
}

// Size returns the full extents
func (a AABB) Size() mgl64.Vec3 {
	return a.Max.Sub(a.Min)
}
