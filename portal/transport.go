package portal

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// halfTurn flips a vector front-to-back about the portal's local vertical
// axis, so walking into one portal comes out walking away from the other.
var halfTurn = mgl64.HomogRotate3DZ(math.Pi)

// Transport maps v from the entry opening to the exit opening. w is the
// homogeneous coordinate: 1 for points, 0 for directions which ignore
// translation.
func Transport(entryWorld, exitWorld mgl64.Mat4, v mgl64.Vec3, w float64) mgl64.Vec3 {
	local := entryWorld.Inv().Mul4x1(v.Vec4(w))
	turned := halfTurn.Mul4x1(local)

	return exitWorld.Mul4x1(turned).Vec3()
}

// TransportVector maps v through p to exit, using both portals' current world
// transforms. Callers must make sure exit exists.
func (p *Portal) TransportVector(v mgl64.Vec3, exit *Portal, w float64) mgl64.Vec3 {
	return Transport(p.Node.WorldTransform(), exit.Node.WorldTransform(), v, w)
}

// TransportPoint is TransportVector with w = 1
func (p *Portal) TransportPoint(point mgl64.Vec3, exit *Portal) mgl64.Vec3 {
	return p.TransportVector(point, exit, 1)
}

// TransportDirection is TransportVector with w = 0
func (p *Portal) TransportDirection(direction mgl64.Vec3, exit *Portal) mgl64.Vec3 {
	return p.TransportVector(direction, exit, 0)
}
