package actor

import "github.com/go-gl/mathgl/mgl64"

// BodyType represents the type of body
type BodyType int

const (
	// BodyTypeDynamic bodies are moved by their velocity and by gravity
	BodyTypeDynamic BodyType = iota

	// BodyTypeStatic bodies never move on their own (e.g., blocks, walls)
	BodyTypeStatic
)

func (t BodyType) String() string {
	switch t {
	case BodyTypeDynamic:
		return "dynamic"
	case BodyTypeStatic:
		return "static"
	default:
		return "unknown"
	}
}

// Body carries the linear motion of an entity
type Body struct {
	Type     BodyType
	Velocity mgl64.Vec3 // units/s, world space

	// GravityScale multiplies the world gravity, 0 for floating bodies
	GravityScale float64
}

// NewBody creates a body at rest, fully affected by gravity
func NewBody(bodyType BodyType) *Body {
	return &Body{
		Type:         bodyType,
		GravityScale: 1.0,
	}
}

// Integrate advances the velocity by gravity, then the node world position by
// the velocity (semi-implicit Euler).
func (b *Body) Integrate(node *Node, dt float64, gravity mgl64.Vec3) {
	if b.Type == BodyTypeStatic {
		return
	}

	b.Velocity = b.Velocity.Add(gravity.Mul(b.GravityScale * dt))
	node.SetWorldPosition(node.Position().Add(b.Velocity.Mul(dt)))
}

func (b *Body) Speed() float64 {
	return b.Velocity.Len()
}
