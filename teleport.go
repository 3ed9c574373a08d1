package aperture

import (
	"math"

	"github.com/akmonengine/aperture/actor"
	"github.com/akmonengine/aperture/config"
	"github.com/akmonengine/aperture/portal"
	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"
)

var worldForward = mgl64.Vec3{1, 0, 0}

// TeleportResult describes one trip through the portal pair
type TeleportResult struct {
	Handle   actor.Handle
	Style    TravelStyle
	Entry    portal.Color
	Exit     portal.Color
	From     mgl64.Vec3
	To       mgl64.Vec3
	Velocity mgl64.Vec3
}

// Teleport moves h through the portal its collider touches. It needs both
// portals, and a collider, a body and a ready traveler on h. On success the
// traveler cooldown restarts and a TeleportEvent is queued.
func (s *Scene) Teleport(h actor.Handle) (TeleportResult, bool) {
	traveler, ok := s.travelers[h]
	if !ok || !traveler.Ready() {
		return TeleportResult{}, false
	}
	collider, ok := s.colliders[h]
	if !ok {
		return TeleportResult{}, false
	}
	body, ok := s.bodies[h]
	if !ok {
		return TeleportResult{}, false
	}

	entry, exit, ok := s.portals.EntryFor(collider)
	if !ok {
		return TeleportResult{}, false
	}

	node := collider.Owner()
	result := TeleportResult{
		Handle: h,
		Style:  traveler.Style,
		Entry:  entry.Color,
		Exit:   exit.Color,
		From:   node.Position(),
	}

	switch traveler.Style {
	case TravelWalker:
		travelWalker(node, body, entry, exit, s.config.Teleport.Walker)
		traveler.cooldown = s.config.Teleport.Walker.Cooldown
	default:
		travelRigid(node, body, entry, exit)
		traveler.cooldown = s.config.Teleport.Rigid.Cooldown
	}

	result.To = node.Position()
	result.Velocity = body.Velocity
	s.events.emit(TeleportEvent{TeleportResult: result})

	s.logger.Debug("teleported",
		zap.Stringer("handle", h),
		zap.Stringer("style", traveler.Style),
		zap.Stringer("entry", entry.Color),
		zap.Float64s("to", result.To[:]),
	)
	return result, true
}

// travelRigid carries the position as a point and the velocity as a direction
func travelRigid(node *actor.Node, body *actor.Body, entry, exit *portal.Portal) {
	node.SetWorldPosition(entry.TransportPoint(node.Position(), exit))
	body.Velocity = entry.TransportDirection(body.Velocity, exit)
}

// travelWalker drops the traveler just in front of the exit portal. Floor and
// ceiling portals do not carry the relative position or heading: the traveler
// leaves along the exit normal.
func travelWalker(node *actor.Node, body *actor.Body, entry, exit *portal.Portal, tuning config.Walker) {
	entryForward := entry.Node.Forward()
	exitForward := exit.Node.Forward()
	throughFloor := portal.IsVertical(entryForward) || portal.IsVertical(exitForward)

	base := exit.Node.Position()
	if !throughFloor {
		base = entry.TransportPoint(node.Position(), exit)
	}
	node.SetWorldPosition(base.Add(exitForward.Mul(tuning.ExitOffset)))

	speed := body.Speed()
	direction := exitForward
	if !throughFloor && speed > 0 {
		direction = entry.TransportDirection(body.Velocity.Normalize(), exit).Normalize()
	}
	body.Velocity = direction.Mul(max(tuning.VelocityMultiplier*speed, tuning.MinVelocity))

	// coming out of a floor or ceiling keeps the current heading
	if portal.IsVertical(exitForward) {
		return
	}

	facing := exitForward
	if !portal.IsVertical(entryForward) {
		facing = entry.TransportDirection(node.Forward(), exit)
	}
	if yaw, ok := yawOf(facing); ok {
		node.SetYaw(yaw)
	}
}

// yawOf returns the signed angle about +Z from +X to facing flattened on the
// ground plane
func yawOf(facing mgl64.Vec3) (float64, bool) {
	flat := mgl64.Vec3{facing.X(), facing.Y(), 0}
	if flat.Len() == 0 {
		return 0, false
	}
	flat = flat.Normalize()

	angle := math.Acos(mgl64.Clamp(worldForward.Dot(flat), -1, 1))
	if worldForward.Cross(flat).Z() < 0 {
		angle = -angle
	}
	return angle, true
}
