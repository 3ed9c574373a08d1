// Package aperture ties transform nodes, collision boxes and the portal pair
// into a scene that gameplay code drives one step at a time.
package aperture

import (
	"errors"
	"fmt"
	"slices"

	"github.com/akmonengine/aperture/actor"
	"github.com/akmonengine/aperture/config"
	"github.com/akmonengine/aperture/portal"
	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"
)

var ErrPortalEntity = errors.New("portal entities cannot carry other capabilities")

type Scene struct {
	Graph *actor.Graph
	// Gravity acceleration applied to dynamic bodies
	Gravity mgl64.Vec3

	config config.Config
	logger *zap.Logger

	colliders map[actor.Handle]*actor.Collider
	// colliderOrder keeps registration order, resolution walks it
	colliderOrder []actor.Handle
	bodies        map[actor.Handle]*actor.Body
	travelers     map[actor.Handle]*Traveler

	portals portal.Pair
	events  Events
}

func NewScene(cfg config.Config, logger *zap.Logger) *Scene {
	return &Scene{
		Graph:     actor.NewGraph(),
		Gravity:   cfg.Gravity,
		config:    cfg,
		logger:    logger,
		colliders: make(map[actor.Handle]*actor.Collider),
		bodies:    make(map[actor.Handle]*actor.Body),
		travelers: make(map[actor.Handle]*Traveler),
		events:    NewEvents(),
	}
}

func (s *Scene) Config() config.Config {
	return s.config
}

// Spawn adds a bare root node
func (s *Scene) Spawn() actor.Handle {
	return s.Graph.Spawn()
}

func (s *Scene) Node(h actor.Handle) (*actor.Node, bool) {
	return s.Graph.Get(h)
}

// Destroy removes h, its descendants and all their capabilities. Destroyed
// portals leave the pair. It returns false for a stale handle.
func (s *Scene) Destroy(h actor.Handle) bool {
	destroyed := s.destroy(h)
	if len(destroyed) == 0 {
		return false
	}

	s.logger.Debug("entity destroyed",
		zap.Stringer("handle", h),
		zap.Int("subtree", len(destroyed)),
	)
	return true
}

// destroy releases the subtree of h and drops everything keyed on the
// destroyed handles. Portals still in the pair are removed and reported.
func (s *Scene) destroy(h actor.Handle) []actor.Handle {
	destroyed := s.Graph.Destroy(h)
	if len(destroyed) == 0 {
		return nil
	}

	for _, d := range destroyed {
		if p, ok := s.portals.Find(d); ok {
			s.portals.Remove(p.Color)
			s.events.emit(PortalClearedEvent{Handle: d, Color: p.Color})
		}

		delete(s.colliders, d)
		delete(s.bodies, d)
		delete(s.travelers, d)
		s.events.forget(d)
	}
	s.colliderOrder = slices.DeleteFunc(s.colliderOrder, func(c actor.Handle) bool {
		return !s.Graph.Alive(c)
	})
	return destroyed
}

// AddCollider gives h a collision box of the given full size. Calling it again
// only resizes the box.
func (s *Scene) AddCollider(h actor.Handle, size mgl64.Vec3) (*actor.Collider, error) {
	node, err := s.capable(h)
	if err != nil {
		return nil, fmt.Errorf("add collider: %w", err)
	}

	if c, ok := s.colliders[h]; ok {
		c.SetSize(size)
		return c, nil
	}

	c := actor.NewCollider(node)
	c.SetSize(size)
	s.colliders[h] = c
	s.colliderOrder = append(s.colliderOrder, h)
	return c, nil
}

func (s *Scene) AddBody(h actor.Handle, bodyType actor.BodyType) (*actor.Body, error) {
	if _, err := s.capable(h); err != nil {
		return nil, fmt.Errorf("add body: %w", err)
	}

	if b, ok := s.bodies[h]; ok {
		b.Type = bodyType
		return b, nil
	}

	b := actor.NewBody(bodyType)
	s.bodies[h] = b
	return b, nil
}

// AddTraveler lets h go through portals. Teleporting also needs a collider
// and a body on h.
func (s *Scene) AddTraveler(h actor.Handle, style TravelStyle) (*Traveler, error) {
	if _, err := s.capable(h); err != nil {
		return nil, fmt.Errorf("add traveler: %w", err)
	}

	if t, ok := s.travelers[h]; ok {
		t.Style = style
		return t, nil
	}

	t := &Traveler{Style: style}
	s.travelers[h] = t
	return t, nil
}

func (s *Scene) capable(h actor.Handle) (*actor.Node, error) {
	node, ok := s.Graph.Get(h)
	if !ok {
		return nil, fmt.Errorf("%v: %w", h, actor.ErrStaleHandle)
	}
	if _, ok := s.portals.Find(h); ok {
		return nil, fmt.Errorf("%v: %w", h, ErrPortalEntity)
	}
	return node, nil
}

func (s *Scene) Collider(h actor.Handle) (*actor.Collider, bool) {
	c, ok := s.colliders[h]
	return c, ok
}

func (s *Scene) Body(h actor.Handle) (*actor.Body, bool) {
	b, ok := s.bodies[h]
	return b, ok
}

func (s *Scene) Traveler(h actor.Handle) (*Traveler, bool) {
	t, ok := s.travelers[h]
	return t, ok
}

func (s *Scene) Portal(h actor.Handle) (*portal.Portal, bool) {
	return s.portals.Find(h)
}

// PortalOf returns the live portal of a color
func (s *Scene) PortalOf(color portal.Color) (*portal.Portal, bool) {
	return s.portals.Get(color)
}

// Has reports whether h currently carries the capability kind
func (s *Scene) Has(h actor.Handle, kind Kind) bool {
	var ok bool
	switch kind {
	case KindCollider:
		_, ok = s.colliders[h]
	case KindBody:
		_, ok = s.bodies[h]
	case KindPortal:
		_, ok = s.portals.Find(h)
	case KindTraveler:
		_, ok = s.travelers[h]
	}
	return ok
}

// Capabilities lists the kinds carried by h
func (s *Scene) Capabilities(h actor.Handle) []Kind {
	var carried []Kind
	for _, kind := range kinds {
		if s.Has(h, kind) {
			carried = append(carried, kind)
		}
	}
	return carried
}

// PlacePortal opens a portal of color on a surface. A live portal of the same
// color is destroyed first.
func (s *Scene) PlacePortal(position, normal mgl64.Vec3, color portal.Color) (*portal.Portal, error) {
	p, err := portal.Setup(s.Graph, position, normal, color, s.config.Portal.Presets())
	if err != nil {
		return nil, err
	}

	if replaced := s.portals.Place(p); replaced != nil {
		s.destroy(replaced.Handle())
		s.events.emit(PortalClearedEvent{Handle: replaced.Handle(), Color: replaced.Color})
	}
	normal = p.Normal()
	s.events.emit(PortalPlacedEvent{
		Handle:   p.Handle(),
		Color:    color,
		Position: position,
		Normal:   normal,
	})

	s.logger.Info("portal placed",
		zap.Stringer("color", color),
		zap.Stringer("handle", p.Handle()),
		zap.Float64s("position", position[:]),
		zap.Float64s("normal", normal[:]),
		zap.Bool("linked", s.portals.Complete()),
	)
	return p, nil
}

// ClearPortals destroys both portals, blue first
func (s *Scene) ClearPortals() {
	for _, p := range s.portals.Clear() {
		s.destroy(p.Handle())
		s.events.emit(PortalClearedEvent{Handle: p.Handle(), Color: p.Color})
		s.logger.Info("portal cleared", zap.Stringer("color", p.Color))
	}
}

// View is the camera seen through the portal of color by a viewer at eye
func (s *Scene) View(color portal.Color, eye mgl64.Vec3, yaw, pitch float64) portal.View {
	entry, ok := s.portals.Get(color)
	if !ok {
		return portal.View{Matrix: mgl64.Scale3D(0, 0, 0)}
	}
	exit, _ := s.portals.Exit(entry)
	return portal.ComputeView(entry, exit, eye, yaw, pitch)
}

// Events returns everything queued since the last call, oldest first
func (s *Scene) Events() []Event {
	return s.events.drain()
}

// Step advances the scene by dt seconds: bodies move, travelers go through
// portals, dynamic bodies are pushed out of other colliders, then collision
// events are queued.
func (s *Scene) Step(dt float64) {
	s.integrate(dt)
	teleported := s.teleport(dt)
	s.resolveBodies(teleported)
	s.recordCollisions()
	s.events.processCollisionEvents()
}

func (s *Scene) integrate(dt float64) {
	for h, body := range s.bodies {
		if node, ok := s.Graph.Get(h); ok {
			body.Integrate(node, dt, s.Gravity)
		}
	}
}

func (s *Scene) teleport(dt float64) map[actor.Handle]bool {
	for _, t := range s.travelers {
		t.tick(dt)
	}

	teleported := make(map[actor.Handle]bool)
	for _, h := range s.colliderOrder {
		if _, ok := s.travelers[h]; !ok {
			continue
		}
		if _, ok := s.Teleport(h); ok {
			teleported[h] = true
		}
	}
	return teleported
}

// resolveBodies pushes dynamic bodies out of every other collider. A body that
// teleported this step skips resolution so it is not pushed back through the
// exit wall.
func (s *Scene) resolveBodies(skip map[actor.Handle]bool) {
	for _, h := range s.colliderOrder {
		body, ok := s.bodies[h]
		if !ok || body.Type != actor.BodyTypeDynamic || skip[h] {
			continue
		}

		for _, contact := range s.Resolve(h) {
			axis := contact.Side.Axis()
			if body.Velocity[axis]*contact.Offset[axis] < 0 {
				body.Velocity[axis] = 0
			}
		}
	}
}

// recordCollisions tracks every touching pair where at least one side has a
// dynamic body
func (s *Scene) recordCollisions() {
	for i, a := range s.colliderOrder {
		for _, b := range s.colliderOrder[i+1:] {
			if !s.isDynamic(a) && !s.isDynamic(b) {
				continue
			}
			if s.colliders[a].Intersect(s.colliders[b]) {
				s.events.recordCollision(a, b)
			}
		}
	}
}

func (s *Scene) isDynamic(h actor.Handle) bool {
	body, ok := s.bodies[h]
	return ok && body.Type == actor.BodyTypeDynamic
}
