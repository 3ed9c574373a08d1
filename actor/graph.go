package actor

import (
	"errors"
	"fmt"
)

var (
	ErrStaleHandle     = errors.New("stale handle")
	ErrAlreadyAttached = errors.New("node already has a parent")
	ErrSelfAttach      = errors.New("node cannot be its own parent")
	ErrCycle           = errors.New("attachment would create a cycle")
)

type slot struct {
	node       *Node
	generation uint32
}

// Graph owns every transform node. Nodes reference each other by Handle, so
// destroying a node only invalidates handles, it never leaves a dangling link.
type Graph struct {
	slots []slot
	free  []uint32
	live  int
}

func NewGraph() *Graph {
	return &Graph{
		slots: make([]slot, 0, 64),
	}
}

// Spawn creates a root node at the origin, with unit scale and no rotation
func (g *Graph) Spawn() Handle {
	var index uint32
	if n := len(g.free); n > 0 {
		index = g.free[n-1]
		g.free = g.free[:n-1]
	} else {
		index = uint32(len(g.slots))
		g.slots = append(g.slots, slot{})
	}

	s := &g.slots[index]
	s.generation++
	if s.generation == 0 {
		// skip the Nil generation on wrap around
		s.generation = 1
	}

	handle := Handle{Index: index, Generation: s.generation}
	s.node = newNode(g, handle)
	g.live++

	return handle
}

// Get resolves a handle. It returns false once the node has been destroyed.
func (g *Graph) Get(h Handle) (*Node, bool) {
	if h.IsNil() || int(h.Index) >= len(g.slots) {
		return nil, false
	}

	s := g.slots[h.Index]
	if s.node == nil || s.generation != h.Generation {
		return nil, false
	}

	return s.node, true
}

func (g *Graph) Alive(h Handle) bool {
	_, ok := g.Get(h)
	return ok
}

// Len returns the number of live nodes
func (g *Graph) Len() int {
	return g.live
}

// Attach makes parent the parent of child. A node can only be attached once.
// The child subtree is dirtied so its next read composes with the parent.
func (g *Graph) Attach(child, parent Handle) error {
	c, ok := g.Get(child)
	if !ok {
		return fmt.Errorf("attach child %s: %w", child, ErrStaleHandle)
	}
	p, ok := g.Get(parent)
	if !ok {
		return fmt.Errorf("attach to parent %s: %w", parent, ErrStaleHandle)
	}
	if child == parent {
		return fmt.Errorf("attach %s: %w", child, ErrSelfAttach)
	}
	if !c.parent.IsNil() {
		return fmt.Errorf("attach %s to %s: %w", child, parent, ErrAlreadyAttached)
	}

	// parent must not be inside the child subtree
	for ancestor := p; ancestor != nil; {
		if ancestor.handle == child {
			return fmt.Errorf("attach %s to %s: %w", child, parent, ErrCycle)
		}
		next, ok := ancestor.parentNode()
		if !ok {
			break
		}
		ancestor = next
	}

	c.parent = parent
	p.children = append(p.children, child)
	c.markDirty()

	return nil
}

// Parent returns the parent of h, if any
func (g *Graph) Parent(h Handle) (Handle, bool) {
	n, ok := g.Get(h)
	if !ok || n.parent.IsNil() {
		return Nil, false
	}
	return n.parent, true
}

// Children returns a copy of the child handles of h, in attachment order
func (g *Graph) Children(h Handle) []Handle {
	n, ok := g.Get(h)
	if !ok {
		return nil
	}

	children := make([]Handle, len(n.children))
	copy(children, n.children)

	return children
}

// Destroy removes h and its whole subtree. It returns the destroyed handles,
// h first, or nil when h was already stale.
func (g *Graph) Destroy(h Handle) []Handle {
	n, ok := g.Get(h)
	if !ok {
		return nil
	}

	if p, ok := n.parentNode(); ok {
		for i, child := range p.children {
			if child == h {
				p.children = append(p.children[:i], p.children[i+1:]...)
				break
			}
		}
	}

	destroyed := make([]Handle, 0, 1+len(n.children))
	return g.release(n, destroyed)
}

func (g *Graph) release(n *Node, destroyed []Handle) []Handle {
	destroyed = append(destroyed, n.handle)

	for _, child := range n.children {
		if c, ok := g.Get(child); ok {
			destroyed = g.release(c, destroyed)
		}
	}

	s := &g.slots[n.handle.Index]
	s.node = nil
	g.free = append(g.free, n.handle.Index)
	g.live--

	n.graph = nil
	n.parent = Nil
	n.children = nil

	return destroyed
}

// Each calls fn for every live node in slot order
func (g *Graph) Each(fn func(h Handle, n *Node)) {
	for i := range g.slots {
		s := g.slots[i]
		if s.node != nil {
			fn(s.node.handle, s.node)
		}
	}
}
