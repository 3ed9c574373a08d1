package actor

// Side names the face of the other box a collider was pushed against
type Side int

const (
	SideNone Side = iota
	SideTop
	SideBottom
	SideLeft
	SideRight
	SideFront
	SideBack
)

func (s Side) String() string {
	switch s {
	case SideNone:
		return "none"
	case SideTop:
		return "top"
	case SideBottom:
		return "bottom"
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	case SideFront:
		return "front"
	case SideBack:
		return "back"
	default:
		return "unknown"
	}
}

// Axis returns the world axis a contact on this side pushes along, or -1 for
// SideNone
func (s Side) Axis() int {
	switch s {
	case SideBack, SideFront:
		return 0
	case SideLeft, SideRight:
		return 1
	case SideBottom, SideTop:
		return 2
	default:
		return -1
	}
}
