package actor

import "github.com/go-gl/mathgl/mgl64"

// Node is the transform of one entity: position, yaw, scale and a free
// orientation, composed with the parent's world matrix.
//
// The world matrix is cached and only rebuilt when the node is dirty. Every
// setter dirties the node and its whole subtree, never its ancestors.
type Node struct {
	graph  *Graph
	handle Handle

	position    mgl64.Vec3
	yaw         float64 // rotation about +Z, in radians
	scale       mgl64.Vec3
	orientation mgl64.Quat

	world mgl64.Mat4
	dirty bool

	parent   Handle
	children []Handle
}

func newNode(graph *Graph, handle Handle) *Node {
	return &Node{
		graph:       graph,
		handle:      handle,
		scale:       mgl64.Vec3{1, 1, 1},
		orientation: mgl64.QuatIdent(),
		world:       mgl64.Ident4(),
		dirty:       true,
	}
}

func (n *Node) Handle() Handle {
	return n.handle
}

// SetPosition sets the position relative to the parent
func (n *Node) SetPosition(position mgl64.Vec3) {
	n.position = position
	n.markDirty()
}

// SetYaw sets the rotation about the vertical axis. The angle is not wrapped.
func (n *Node) SetYaw(yaw float64) {
	n.yaw = yaw
	n.markDirty()
}

func (n *Node) SetScale(scale mgl64.Vec3) {
	n.scale = scale
	n.markDirty()
}

func (n *Node) SetUniformScale(scale float64) {
	n.SetScale(mgl64.Vec3{scale, scale, scale})
}

// SetOrientation sets the rotation applied after the yaw
func (n *Node) SetOrientation(orientation mgl64.Quat) {
	n.orientation = orientation
	n.markDirty()
}

func (n *Node) LocalPosition() mgl64.Vec3 {
	return n.position
}

func (n *Node) Yaw() float64 {
	return n.yaw
}

func (n *Node) Scale() mgl64.Vec3 {
	return n.scale
}

func (n *Node) Orientation() mgl64.Quat {
	return n.orientation
}

func (n *Node) IsDirty() bool {
	return n.dirty
}

// LocalTransform returns the node matrix without the parent.
// Points are scaled first, then yawed, then rotated by the orientation,
// then translated.
func (n *Node) LocalTransform() mgl64.Mat4 {
	translation := mgl64.Translate3D(n.position.X(), n.position.Y(), n.position.Z())
	rotation := n.orientation.Mat4()
	yaw := mgl64.HomogRotate3DZ(n.yaw)
	scale := mgl64.Scale3D(n.scale.X(), n.scale.Y(), n.scale.Z())

	return translation.Mul4(rotation).Mul4(yaw).Mul4(scale)
}

// WorldTransform returns the cached world matrix, rebuilding it first when
// the node is dirty. The parent is resolved (and rebuilt if needed) only
// during a rebuild.
func (n *Node) WorldTransform() mgl64.Mat4 {
	if !n.dirty {
		return n.world
	}

	n.dirty = false
	n.world = n.LocalTransform()
	if parent, ok := n.parentNode(); ok {
		n.world = parent.WorldTransform().Mul4(n.world)
	}

	return n.world
}

// SetWorldPosition places the node at a world space position, whatever its
// parent transform.
func (n *Node) SetWorldPosition(position mgl64.Vec3) {
	if parent, ok := n.parentNode(); ok {
		position = parent.WorldTransform().Inv().Mul4x1(position.Vec4(1)).Vec3()
	}
	n.SetPosition(position)
}

// Position returns the world space position
func (n *Node) Position() mgl64.Vec3 {
	return n.WorldTransform().Col(3).Vec3()
}

// WorldScale multiplies the scale of the node with the scale of all its
// ancestors. Rotations are ignored.
func (n *Node) WorldScale() mgl64.Vec3 {
	scale := n.scale

	current := n
	for {
		parent, ok := current.parentNode()
		if !ok {
			return scale
		}
		scale = mgl64.Vec3{
			scale.X() * parent.scale.X(),
			scale.Y() * parent.scale.Y(),
			scale.Z() * parent.scale.Z(),
		}
		current = parent
	}
}

// Forward is the world direction of the local +X axis
func (n *Node) Forward() mgl64.Vec3 {
	return n.axis(0)
}

// Right is the world direction of the local +Y axis
func (n *Node) Right() mgl64.Vec3 {
	return n.axis(1)
}

// Up is the world direction of the local +Z axis
func (n *Node) Up() mgl64.Vec3 {
	return n.axis(2)
}

func (n *Node) axis(col int) mgl64.Vec3 {
	v := n.WorldTransform().Col(col).Vec3()
	if v.Len() == 0 {
		return mgl64.Vec3{}
	}
	return v.Normalize()
}

// Parent returns the parent handle, Nil for a root
func (n *Node) Parent() Handle {
	return n.parent
}

func (n *Node) parentNode() (*Node, bool) {
	if n.graph == nil || n.parent.IsNil() {
		return nil, false
	}
	return n.graph.Get(n.parent)
}

// markDirty flags the node and every descendant.
func (n *Node) markDirty() {
	n.dirty = true

	if n.graph == nil {
		return
	}
	for _, child := range n.children {
		if c, ok := n.graph.Get(child); ok {
			c.markDirty()
		}
	}
}
