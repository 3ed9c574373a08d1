package aperture

import (
	"github.com/akmonengine/aperture/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// Contact is one push applied by Resolve
type Contact struct {
	Other  actor.Handle
	Side   actor.Side
	Offset mgl64.Vec3
}

// Resolve pushes h out of every other collider, in registration order. Each
// push is applied at once, so later colliders see the corrected position.
// Portals are not part of the collider registry and never push.
func (s *Scene) Resolve(h actor.Handle) []Contact {
	collider, ok := s.colliders[h]
	if !ok {
		return nil
	}
	node := collider.Owner()

	var contacts []Contact
	for _, other := range s.colliderOrder {
		if other == h {
			continue
		}

		side, offset := collider.MinOverlap(s.colliders[other])
		if side == actor.SideNone {
			continue
		}

		node.SetWorldPosition(node.Position().Add(offset))
		contacts = append(contacts, Contact{Other: other, Side: side, Offset: offset})
	}
	return contacts
}
