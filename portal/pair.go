package portal

import "github.com/akmonengine/aperture/actor"

// Pair tracks the live portal of each color. Either slot may be empty.
type Pair struct {
	portals [2]*Portal
}

// Place stores portal in the slot of its color and returns the portal it
// replaced, if any.
func (p *Pair) Place(portal *Portal) *Portal {
	replaced := p.portals[portal.Color]
	p.portals[portal.Color] = portal
	return replaced
}

func (p *Pair) Get(color Color) (*Portal, bool) {
	portal := p.portals[color]
	return portal, portal != nil
}

// Remove empties the slot of color and returns what it held
func (p *Pair) Remove(color Color) *Portal {
	removed := p.portals[color]
	p.portals[color] = nil
	return removed
}

// Clear empties both slots and returns the removed portals, blue first
func (p *Pair) Clear() []*Portal {
	removed := make([]*Portal, 0, 2)
	for _, color := range []Color{ColorBlue, ColorOrange} {
		if portal := p.Remove(color); portal != nil {
			removed = append(removed, portal)
		}
	}
	return removed
}

// Complete reports whether both portals are placed
func (p *Pair) Complete() bool {
	return p.portals[ColorBlue] != nil && p.portals[ColorOrange] != nil
}

// Exit returns the portal linked to entry
func (p *Pair) Exit(entry *Portal) (*Portal, bool) {
	return p.Get(entry.Color.Other())
}

// Find returns the placed portal owning handle h
func (p *Pair) Find(h actor.Handle) (*Portal, bool) {
	for _, portal := range p.portals {
		if portal != nil && portal.Handle() == h {
			return portal, true
		}
	}
	return nil, false
}

// EntryFor returns the portal collider touches and its exit. Blue is checked
// before orange. It needs both portals.
func (p *Pair) EntryFor(collider *actor.Collider) (entry, exit *Portal, ok bool) {
	if !p.Complete() {
		return nil, nil, false
	}

	blue, orange := p.portals[ColorBlue], p.portals[ColorOrange]
	switch {
	case collider.Intersect(blue.Collider):
		return blue, orange, true
	case collider.Intersect(orange.Collider):
		return orange, blue, true
	default:
		return nil, nil, false
	}
}
