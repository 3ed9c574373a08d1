package actor

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const halfExtentScale = 0.5

// Collider is an axis-aligned box centered on its owner's world position.
// Its size is scaled by the owner's world scale but never rotated, even when
// the owner is.
type Collider struct {
	owner *Node
	size  mgl64.Vec3
}

func NewCollider(owner *Node) *Collider {
	return &Collider{owner: owner}
}

func (c *Collider) Owner() *Node {
	return c.owner
}

// SetSize stores the full extents, before scale
func (c *Collider) SetSize(size mgl64.Vec3) {
	c.size = size
}

func (c *Collider) Size() mgl64.Vec3 {
	return c.size
}

func (c *Collider) Center() mgl64.Vec3 {
	return c.owner.Position()
}

func (c *Collider) halfExtents() mgl64.Vec3 {
	scale := c.owner.WorldScale()
	return mgl64.Vec3{
		c.size.X() * scale.X() * halfExtentScale,
		c.size.Y() * scale.Y() * halfExtentScale,
		c.size.Z() * scale.Z() * halfExtentScale,
	}
}

func (c *Collider) Min() mgl64.Vec3 {
	return c.Center().Sub(c.halfExtents())
}

func (c *Collider) Max() mgl64.Vec3 {
	return c.Center().Add(c.halfExtents())
}

func (c *Collider) AABB() AABB {
	center := c.Center()
	half := c.halfExtents()

	return AABB{Min: center.Sub(half), Max: center.Add(half)}
}

// Intersect reports whether the two boxes overlap on all three axes
func (c *Collider) Intersect(other *Collider) bool {
	return c.AABB().Overlaps(other.AABB())
}

// MinOverlap returns the side of other with the smallest penetration and the
// offset that, added to this collider's owner position, makes the boxes
// tangent on that axis. It returns SideNone and a zero offset when the boxes
// do not intersect.
//
// Candidates are scanned back, front, left, right, bottom, top; a later side
// only wins if its distance is strictly smaller.
func (c *Collider) MinOverlap(other *Collider) (Side, mgl64.Vec3) {
	a := c.AABB()
	b := other.AABB()
	if !a.Overlaps(b) {
		return SideNone, mgl64.Vec3{}
	}

	candidates := [6]struct {
		side Side
		axis int
		dist float64
	}{
		{SideBack, 0, b.Min.X() - a.Max.X()},
		{SideFront, 0, b.Max.X() - a.Min.X()},
		{SideLeft, 1, b.Min.Y() - a.Max.Y()},
		{SideRight, 1, b.Max.Y() - a.Min.Y()},
		{SideBottom, 2, b.Min.Z() - a.Max.Z()},
		{SideTop, 2, b.Max.Z() - a.Min.Z()},
	}

	best := 0
	bestAbs := math.Abs(candidates[0].dist)
	for i := 1; i < len(candidates); i++ {
		if d := math.Abs(candidates[i].dist); d < bestAbs {
			best = i
			bestAbs = d
		}
	}

	var offset mgl64.Vec3
	offset[candidates[best].axis] = candidates[best].dist

	return candidates[best].side, offset
}
