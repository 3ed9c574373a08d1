package aperture

import (
	"slices"

	"github.com/akmonengine/aperture/actor"
	"github.com/akmonengine/aperture/portal"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	COLLISION_ENTER EventType = iota
	COLLISION_STAY
	COLLISION_EXIT
	TELEPORT
	PORTAL_PLACED
	PORTAL_CLEARED
)

type pairKey struct {
	a actor.Handle
	b actor.Handle
}

// makePairKey creates a normalized pair key with consistent ordering
func makePairKey(a, b actor.Handle) pairKey {
	if b.Less(a) {
		a, b = b, a
	}
	return pairKey{a: a, b: b}
}

func (k pairKey) has(h actor.Handle) bool {
	return k.a == h || k.b == h
}

func comparePairKeys(x, y pairKey) int {
	switch {
	case x.a.Less(y.a):
		return -1
	case y.a.Less(x.a):
		return 1
	case x.b.Less(y.b):
		return -1
	case y.b.Less(x.b):
		return 1
	default:
		return 0
	}
}

type EventType uint8

// Event interface - all events implement this
type Event interface {
	Type() EventType
}

// Collision events. A is always the lower handle.
type CollisionEnterEvent struct {
	A actor.Handle
	B actor.Handle
}

func (e CollisionEnterEvent) Type() EventType { return COLLISION_ENTER }

type CollisionStayEvent struct {
	A actor.Handle
	B actor.Handle
}

func (e CollisionStayEvent) Type() EventType { return COLLISION_STAY }

type CollisionExitEvent struct {
	A actor.Handle
	B actor.Handle
}

func (e CollisionExitEvent) Type() EventType { return COLLISION_EXIT }

// Portal events
type TeleportEvent struct {
	TeleportResult
}

func (e TeleportEvent) Type() EventType { return TELEPORT }

type PortalPlacedEvent struct {
	Handle   actor.Handle
	Color    portal.Color
	Position mgl64.Vec3
	Normal   mgl64.Vec3
}

func (e PortalPlacedEvent) Type() EventType { return PORTAL_PLACED }

type PortalClearedEvent struct {
	Handle actor.Handle
	Color  portal.Color
}

func (e PortalClearedEvent) Type() EventType { return PORTAL_CLEARED }

// Events queues what happened during the scene updates until the caller
// drains it
type Events struct {
	buffer []Event

	// Collision tracking for Enter/Stay/Exit detection
	previousActivePairs map[pairKey]bool
	currentActivePairs  map[pairKey]bool
}

func NewEvents() Events {
	return Events{
		buffer:              make([]Event, 0, 64),
		previousActivePairs: make(map[pairKey]bool),
		currentActivePairs:  make(map[pairKey]bool),
	}
}

func (e *Events) emit(event Event) {
	e.buffer = append(e.buffer, event)
}

// recordCollision marks a pair as touching during the current step
func (e *Events) recordCollision(a, b actor.Handle) {
	e.currentActivePairs[makePairKey(a, b)] = true
}

// processCollisionEvents compares current and previous pairs to detect
// Enter/Stay/Exit. It is called once per step, after resolution.
func (e *Events) processCollisionEvents() {
	current := sortedKeys(e.currentActivePairs)
	for _, pair := range current {
		if e.previousActivePairs[pair] {
			e.emit(CollisionStayEvent{A: pair.a, B: pair.b})
		} else {
			e.emit(CollisionEnterEvent{A: pair.a, B: pair.b})
		}
	}

	for _, pair := range sortedKeys(e.previousActivePairs) {
		if !e.currentActivePairs[pair] {
			e.emit(CollisionExitEvent{A: pair.a, B: pair.b})
		}
	}

	// Swap for next step and clear current
	e.previousActivePairs, e.currentActivePairs = e.currentActivePairs, e.previousActivePairs
	clear(e.currentActivePairs)
}

// forget drops every tracked pair involving h. A destroyed entity never
// produces an exit event.
func (e *Events) forget(h actor.Handle) {
	for pair := range e.previousActivePairs {
		if pair.has(h) {
			delete(e.previousActivePairs, pair)
		}
	}
	for pair := range e.currentActivePairs {
		if pair.has(h) {
			delete(e.currentActivePairs, pair)
		}
	}
}

// drain returns the queued events in emission order and empties the queue
func (e *Events) drain() []Event {
	if len(e.buffer) == 0 {
		return nil
	}
	events := slices.Clone(e.buffer)
	e.buffer = e.buffer[:0]
	return events
}

func sortedKeys(pairs map[pairKey]bool) []pairKey {
	keys := make([]pairKey, 0, len(pairs))
	for pair := range pairs {
		keys = append(keys, pair)
	}
	slices.SortFunc(keys, comparePairKeys)
	return keys
}
