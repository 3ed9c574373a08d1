package portal

import (
	"testing"

	"github.com/akmonengine/aperture/actor"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPair_PlaceAndGet(t *testing.T) {
	var pair Pair
	_, blue, orange := wallPair(t)

	_, ok := pair.Get(ColorBlue)
	assert.False(t, ok)
	assert.False(t, pair.Complete())

	assert.Nil(t, pair.Place(blue))
	got, ok := pair.Get(ColorBlue)
	require.True(t, ok)
	assert.Same(t, blue, got)
	assert.False(t, pair.Complete())

	assert.Nil(t, pair.Place(orange))
	assert.True(t, pair.Complete())
}

func TestPair_PlaceReplaces(t *testing.T) {
	var pair Pair
	g, blue, _ := wallPair(t)
	pair.Place(blue)

	second := mustSetup(t, g, mgl64.Vec3{0, 50, 0}, mgl64.Vec3{0, -1, 0}, ColorBlue)
	replaced := pair.Place(second)

	assert.Same(t, blue, replaced)
	got, _ := pair.Get(ColorBlue)
	assert.Same(t, second, got)
}

func TestPair_Exit(t *testing.T) {
	var pair Pair
	_, blue, orange := wallPair(t)
	pair.Place(blue)

	_, ok := pair.Exit(blue)
	assert.False(t, ok, "no exit without orange")

	pair.Place(orange)
	exit, ok := pair.Exit(blue)
	require.True(t, ok)
	assert.Same(t, orange, exit)

	exit, ok = pair.Exit(orange)
	require.True(t, ok)
	assert.Same(t, blue, exit)
}

func TestPair_RemoveAndClear(t *testing.T) {
	var pair Pair
	_, blue, orange := wallPair(t)
	pair.Place(orange)
	pair.Place(blue)

	assert.Same(t, orange, pair.Remove(ColorOrange))
	assert.Nil(t, pair.Remove(ColorOrange))
	assert.False(t, pair.Complete())

	pair.Place(orange)
	removed := pair.Clear()
	assert.Equal(t, []*Portal{blue, orange}, removed)
	assert.Empty(t, pair.Clear())
}

func TestPair_Find(t *testing.T) {
	var pair Pair
	_, blue, orange := wallPair(t)
	pair.Place(blue)

	got, ok := pair.Find(blue.Handle())
	require.True(t, ok)
	assert.Same(t, blue, got)

	_, ok = pair.Find(orange.Handle())
	assert.False(t, ok)
	_, ok = pair.Find(actor.Nil)
	assert.False(t, ok)
}

func TestPair_EntryFor(t *testing.T) {
	var pair Pair
	g, blue, orange := wallPair(t)

	traveler, _ := g.Get(g.Spawn())
	box := actor.NewCollider(traveler)
	box.SetSize(mgl64.Vec3{20, 20, 20})

	pair.Place(blue)
	_, _, ok := pair.EntryFor(box)
	assert.False(t, ok, "an incomplete pair never teleports")

	pair.Place(orange)
	entry, exit, ok := pair.EntryFor(box)
	require.True(t, ok)
	assert.Same(t, blue, entry)
	assert.Same(t, orange, exit)

	traveler.SetPosition(mgl64.Vec3{100, 5, 0})
	entry, exit, ok = pair.EntryFor(box)
	require.True(t, ok)
	assert.Same(t, orange, entry)
	assert.Same(t, blue, exit)

	traveler.SetPosition(mgl64.Vec3{0, 200, 0})
	_, _, ok = pair.EntryFor(box)
	assert.False(t, ok)
}

func TestPair_EntryForPrefersBlue(t *testing.T) {
	var pair Pair
	g := actor.NewGraph()
	pair.Place(mustSetup(t, g, mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 0, 0}, ColorOrange))
	pair.Place(mustSetup(t, g, mgl64.Vec3{0, 0, 0}, mgl64.Vec3{-1, 0, 0}, ColorBlue))

	traveler, _ := g.Get(g.Spawn())
	box := actor.NewCollider(traveler)
	box.SetSize(mgl64.Vec3{10, 10, 10})

	entry, _, ok := pair.EntryFor(box)
	require.True(t, ok)
	assert.Equal(t, ColorBlue, entry.Color)
}
