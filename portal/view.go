package portal

import "github.com/go-gl/mathgl/mgl64"

const viewTargetDistance = 50.0

// View is the virtual camera seen through an entry portal, placed behind the
// exit portal.
type View struct {
	Valid    bool
	Matrix   mgl64.Mat4
	Position mgl64.Vec3
	Forward  mgl64.Vec3
	Up       mgl64.Vec3
}

// LookDirection is the forward vector of a camera turned by yaw about +Z and
// pitched by pitch about its right axis.
func LookDirection(yaw, pitch float64) mgl64.Vec3 {
	rotation := mgl64.HomogRotate3DZ(yaw).Mul4(mgl64.HomogRotate3DY(pitch))
	return rotation.Mul4x1(forwardAxis.Vec4(0)).Vec3()
}

// ComputeView builds the camera seen through entry for a viewer at eye looking
// along yaw and pitch. Without an exit portal the view collapses everything to
// a point so nothing is drawn.
func ComputeView(entry, exit *Portal, eye mgl64.Vec3, yaw, pitch float64) View {
	if exit == nil {
		return View{Matrix: mgl64.Scale3D(0, 0, 0)}
	}

	position := entry.TransportPoint(eye, exit)
	forward := entry.TransportDirection(LookDirection(yaw, pitch), exit)
	up := exit.Node.Up()
	target := position.Add(forward.Mul(viewTargetDistance))

	return View{
		Valid:    true,
		Matrix:   mgl64.LookAtV(position, target, up),
		Position: position,
		Forward:  forward,
		Up:       up,
	}
}
