package aperture

// Kind names a capability an entity can carry in a Scene
type Kind uint8

const (
	KindCollider Kind = iota
	KindBody
	KindPortal
	KindTraveler
)

var kinds = []Kind{KindCollider, KindBody, KindPortal, KindTraveler}

func (k Kind) String() string {
	switch k {
	case KindCollider:
		return "collider"
	case KindBody:
		return "body"
	case KindPortal:
		return "portal"
	case KindTraveler:
		return "traveler"
	default:
		return "unknown"
	}
}

// TravelStyle selects how a traveler comes out of the exit portal
type TravelStyle uint8

const (
	// TravelRigid keeps the exact trajectory: position and velocity are both
	// carried through the portals.
	TravelRigid TravelStyle = iota
	// TravelWalker is pushed out of the exit portal, boosted, and turned to
	// face where it was heading.
	TravelWalker
)

func (s TravelStyle) String() string {
	switch s {
	case TravelRigid:
		return "rigid"
	case TravelWalker:
		return "walker"
	default:
		return "unknown"
	}
}

// Traveler marks an entity allowed to go through portals
type Traveler struct {
	Style    TravelStyle
	cooldown float64
}

// Cooldown is the time left, in seconds, before the traveler may teleport again
func (t *Traveler) Cooldown() float64 {
	return t.cooldown
}

func (t *Traveler) Ready() bool {
	return t.cooldown <= 0
}

func (t *Traveler) tick(dt float64) {
	if t.cooldown > 0 {
		t.cooldown = max(0, t.cooldown-dt)
	}
}
