package aperture

import (
	"reflect"
	"unsafe"

	"github.com/akmonengine/aperture/actor"
	"github.com/go-gl/mathgl/mgl64"
	jsoniter "github.com/json-iterator/go"
)

// Make sure encoders are registered first
var json = func() jsoniter.API {
	jsoniter.RegisterTypeEncoderFunc(reflect.TypeOf(actor.Handle{}).String(), encodeHandle, emptyHandle)

	return jsoniter.Config{
		IndentionStep:                 0,
		MarshalFloatWith6Digits:       true,
		EscapeHTML:                    false,
		SortMapKeys:                   true,
		UseNumber:                     false,
		DisallowUnknownFields:         false,
		TagKey:                        "json",
		OnlyTaggedField:               false,
		ValidateJsonRawMessage:        false,
		ObjectFieldMustBeSimpleString: true,
		CaseSensitive:                 true,
	}.Froze()
}()

func encodeHandle(ptr unsafe.Pointer, stream *jsoniter.Stream) {
	stream.WriteString((*actor.Handle)(ptr).String())
}

func emptyHandle(ptr unsafe.Pointer) bool {
	return (*actor.Handle)(ptr).IsNil()
}

// EntitySnapshot is the state of one live node. Position is in world space,
// yaw and scale are local. Orientation is stored as w, x, y, z.
type EntitySnapshot struct {
	Handle       actor.Handle `json:"handle"`
	Parent       actor.Handle `json:"parent,omitempty"`
	Position     mgl64.Vec3   `json:"position"`
	Yaw          float64      `json:"yaw"`
	Scale        mgl64.Vec3   `json:"scale"`
	Orientation  [4]float64   `json:"orientation"`
	Capabilities []string     `json:"capabilities,omitempty"`
	Size         *mgl64.Vec3  `json:"size,omitempty"`
	Velocity     *mgl64.Vec3  `json:"velocity,omitempty"`
	Portal       string       `json:"portal,omitempty"`
	Cooldown     float64      `json:"cooldown,omitempty"`
}

type Snapshot struct {
	Entities []EntitySnapshot `json:"entities"`
	Linked   bool             `json:"linked"`
}

// Snapshot captures every live node, in handle slot order
func (s *Scene) Snapshot() Snapshot {
	snap := Snapshot{
		Entities: make([]EntitySnapshot, 0, s.Graph.Len()),
		Linked:   s.portals.Complete(),
	}

	s.Graph.Each(func(h actor.Handle, n *actor.Node) {
		q := n.Orientation()
		entity := EntitySnapshot{
			Handle:      h,
			Parent:      n.Parent(),
			Position:    n.Position(),
			Yaw:         n.Yaw(),
			Scale:       n.Scale(),
			Orientation: [4]float64{q.W, q.V.X(), q.V.Y(), q.V.Z()},
		}

		for _, kind := range s.Capabilities(h) {
			entity.Capabilities = append(entity.Capabilities, kind.String())
		}
		if c, ok := s.colliders[h]; ok {
			size := c.Size()
			entity.Size = &size
		}
		if b, ok := s.bodies[h]; ok {
			velocity := b.Velocity
			entity.Velocity = &velocity
		}
		if p, ok := s.portals.Find(h); ok {
			entity.Portal = p.Color.String()
			size := p.Collider.Size()
			entity.Size = &size
		}
		if t, ok := s.travelers[h]; ok {
			entity.Cooldown = t.Cooldown()
		}

		snap.Entities = append(snap.Entities, entity)
	})

	return snap
}

// MarshalSnapshot encodes a snapshot as compact JSON, handles written as
// "index#generation"
func MarshalSnapshot(snap Snapshot) ([]byte, error) {
	return json.Marshal(snap)
}
