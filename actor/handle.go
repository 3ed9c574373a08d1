package actor

import "fmt"

// Handle identifies a node in a Graph.
// A handle stays valid until its node is destroyed; after that the slot may be
// reused, but with a new generation, so old handles no longer resolve.
type Handle struct {
	Index      uint32
	Generation uint32
}

// Nil is the zero handle, it never resolves
var Nil = Handle{}

func (h Handle) IsNil() bool {
	return h.Generation == 0
}

func (h Handle) String() string {
	if h.IsNil() {
		return "nil"
	}
	return fmt.Sprintf("%d#%d", h.Index, h.Generation)
}

// Less orders handles by index then generation
func (h Handle) Less(other Handle) bool {
	if h.Index != other.Index {
		return h.Index < other.Index
	}
	return h.Generation < other.Generation
}
