// Package portal places portals on axis-aligned surfaces and maps points and
// directions from one portal opening to the other.
//
// A portal's local +X axis points out of the surface it sits on. Going through
// a portal means expressing a vector in the entry portal's local space,
// turning it half a turn about the local vertical axis, and reading it back
// from the exit portal's local space.
package portal

import (
	"errors"
	"fmt"
	"math"

	"github.com/akmonengine/aperture/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// Epsilon is the tolerance used to decide that two unit vectors are aligned
const Epsilon = 0.001

var ErrZeroNormal = errors.New("surface normal has zero length")

// Color distinguishes the two portals of a pair
type Color int

const (
	ColorBlue Color = iota
	ColorOrange
)

func (c Color) String() string {
	switch c {
	case ColorBlue:
		return "blue"
	case ColorOrange:
		return "orange"
	default:
		return "unknown"
	}
}

// Other returns the color of the linked portal
func (c Color) Other() Color {
	if c == ColorBlue {
		return ColorOrange
	}
	return ColorBlue
}

var (
	forwardAxis = mgl64.Vec3{1, 0, 0}
	upAxis      = mgl64.Vec3{0, 0, 1}
)

// Presets holds the collision box size used for a portal, depending on the
// world axis its surface normal follows.
type Presets struct {
	X mgl64.Vec3
	Y mgl64.Vec3
	Z mgl64.Vec3
}

func DefaultPresets() Presets {
	return Presets{
		X: mgl64.Vec3{10, 110, 125},
		Y: mgl64.Vec3{110, 10, 125},
		Z: mgl64.Vec3{125, 110, 10},
	}
}

// For returns the preset of the world axis the normal is most aligned with.
// Ties go to X, then Y.
func (p Presets) For(normal mgl64.Vec3) mgl64.Vec3 {
	x, y, z := math.Abs(normal.X()), math.Abs(normal.Y()), math.Abs(normal.Z())

	switch {
	case x >= y && x >= z:
		return p.X
	case y >= z:
		return p.Y
	default:
		return p.Z
	}
}

// SurfaceOrientation returns the rotation that turns the portal's canonical
// forward (+X) onto normal. The normal must not be zero.
func SurfaceOrientation(normal mgl64.Vec3) mgl64.Quat {
	facing := normal.Normalize()
	dot := mgl64.Clamp(forwardAxis.Dot(facing), -1, 1)

	switch {
	case nearlyEqual(dot, 1):
		return mgl64.QuatIdent()
	case nearlyEqual(dot, -1):
		// the cross product vanishes, any perpendicular axis works
		return mgl64.QuatRotate(math.Pi, upAxis)
	default:
		axis := forwardAxis.Cross(facing).Normalize()
		return mgl64.QuatRotate(math.Acos(dot), axis)
	}
}

// Portal is one opening of a pair. Its node and collider belong to the graph
// that spawned it.
type Portal struct {
	Color    Color
	Node     *actor.Node
	Collider *actor.Collider
	normal   mgl64.Vec3
}

// Setup spawns a portal node in graph at position, facing normal, with a
// collision box picked from presets.
func Setup(graph *actor.Graph, position, normal mgl64.Vec3, color Color, presets Presets) (*Portal, error) {
	if normal.Len() == 0 {
		return nil, fmt.Errorf("setup %s portal at %v: %w", color, position, ErrZeroNormal)
	}

	node, _ := graph.Get(graph.Spawn())
	node.SetPosition(position)
	node.SetOrientation(SurfaceOrientation(normal))

	collider := actor.NewCollider(node)
	collider.SetSize(presets.For(normal.Normalize()))

	return &Portal{
		Color:    color,
		Node:     node,
		Collider: collider,
		normal:   normal.Normalize(),
	}, nil
}

func (p *Portal) Handle() actor.Handle {
	return p.Node.Handle()
}

// Normal returns the unit surface normal the portal was set up with
func (p *Portal) Normal() mgl64.Vec3 {
	return p.normal
}

// IsVertical reports whether the portal sits on a floor or a ceiling
func (p *Portal) IsVertical() bool {
	return IsVertical(p.Node.Forward())
}

// IsVertical reports whether a unit direction points straight up or down
func IsVertical(direction mgl64.Vec3) bool {
	return nearlyEqual(math.Abs(direction.Z()), 1)
}

func nearlyEqual(a, b float64) bool {
	return math.Abs(a-b) <= Epsilon
}
