package aperture

import (
	"math"
	"testing"

	"github.com/akmonengine/aperture/actor"
	"github.com/akmonengine/aperture/portal"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type portalPose struct {
	position mgl64.Vec3
	normal   mgl64.Vec3
}

var (
	wallAtOrigin  = portalPose{mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 0, 0}}
	wallFacingY   = portalPose{mgl64.Vec3{100, 0, 0}, mgl64.Vec3{0, 1, 0}}
	floorAtOrigin = portalPose{mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, 0, 1}}
	floorFarAway  = portalPose{mgl64.Vec3{300, 0, 0}, mgl64.Vec3{0, 0, 1}}
)

func portalScene(t *testing.T, blue, orange portalPose) *Scene {
	t.Helper()
	s := newTestScene(t)
	s.Gravity = mgl64.Vec3{}

	_, err := s.PlacePortal(blue.position, blue.normal, portal.ColorBlue)
	require.NoError(t, err)
	_, err = s.PlacePortal(orange.position, orange.normal, portal.ColorOrange)
	require.NoError(t, err)
	s.Events()
	return s
}

func spawnTraveler(t *testing.T, s *Scene, position, velocity mgl64.Vec3, style TravelStyle) (actor.Handle, *actor.Node, *actor.Body) {
	t.Helper()
	h := spawnBox(t, s, position, mgl64.Vec3{4, 4, 4}, actor.BodyTypeDynamic)
	_, err := s.AddTraveler(h, style)
	require.NoError(t, err)

	node, _ := s.Node(h)
	body, _ := s.Body(h)
	body.Velocity = velocity
	return h, node, body
}

// =============================================================================
// Rigid Tests
// =============================================================================

func TestTeleport_Rigid(t *testing.T) {
	s := portalScene(t, wallAtOrigin, wallFacingY)
	h, node, body := spawnTraveler(t, s, mgl64.Vec3{2, 0, 0}, mgl64.Vec3{-100, 0, -30}, TravelRigid)
	node.SetYaw(1.25)

	result, ok := s.Teleport(h)
	require.True(t, ok)

	assertVec3(t, mgl64.Vec3{100, -2, 0}, node.Position())
	assertVec3(t, mgl64.Vec3{0, 100, -30}, body.Velocity)
	assert.Equal(t, 1.25, node.Yaw(), "rigid travel keeps the yaw")

	assert.Equal(t, h, result.Handle)
	assert.Equal(t, TravelRigid, result.Style)
	assert.Equal(t, portal.ColorBlue, result.Entry)
	assert.Equal(t, portal.ColorOrange, result.Exit)
	assertVec3(t, mgl64.Vec3{2, 0, 0}, result.From)
	assertVec3(t, node.Position(), result.To)
	assertVec3(t, body.Velocity, result.Velocity)

	events := s.Events()
	require.Len(t, events, 1)
	assert.Equal(t, TeleportEvent{TeleportResult: result}, events[0])
}

func TestTeleport_CooldownBlocksReturnTrip(t *testing.T) {
	s := portalScene(t, wallAtOrigin, wallFacingY)
	h, _, _ := spawnTraveler(t, s, mgl64.Vec3{2, 0, 0}, mgl64.Vec3{-100, 0, 0}, TravelRigid)

	_, ok := s.Teleport(h)
	require.True(t, ok)
	traveler, _ := s.Traveler(h)
	assert.InDelta(t, s.Config().Teleport.Rigid.Cooldown, traveler.Cooldown(), tolerance)

	// the exit box still overlaps the traveler
	_, ok = s.Teleport(h)
	assert.False(t, ok)

	traveler.tick(1)
	result, ok := s.Teleport(h)
	require.True(t, ok)
	assert.Equal(t, portal.ColorOrange, result.Entry)
	assertVec3(t, mgl64.Vec3{2, 0, 0}, result.To, "going back restores the start")
}

// =============================================================================
// Walker Tests
// =============================================================================

func TestTeleport_WalkerBetweenWalls(t *testing.T) {
	s := portalScene(t, wallAtOrigin, wallFacingY)
	h, node, body := spawnTraveler(t, s, mgl64.Vec3{2, 0, 0}, mgl64.Vec3{-100, 0, 0}, TravelWalker)
	node.SetYaw(math.Pi)

	_, ok := s.Teleport(h)
	require.True(t, ok)

	// transported to (100, -2, 0) then pushed 50 along the exit normal
	assertVec3(t, mgl64.Vec3{100, 48, 0}, node.Position())
	// 1.5 * 100 is below the minimum exit speed
	assertVec3(t, mgl64.Vec3{0, 350, 0}, body.Velocity)
	assert.InDelta(t, math.Pi/2, node.Yaw(), tolerance)

	traveler, _ := s.Traveler(h)
	assert.InDelta(t, s.Config().Teleport.Walker.Cooldown, traveler.Cooldown(), tolerance)
}

func TestTeleport_WalkerKeepsFastSpeed(t *testing.T) {
	s := portalScene(t, wallAtOrigin, wallFacingY)
	h, _, body := spawnTraveler(t, s, mgl64.Vec3{2, 0, 0}, mgl64.Vec3{-300, 0, -400}, TravelWalker)

	_, ok := s.Teleport(h)
	require.True(t, ok)

	assert.InDelta(t, 750, body.Speed(), 1e-6)
	assertVec3(t, mgl64.Vec3{0, 300, -400}.Normalize(), body.Velocity.Normalize())
}

func TestTeleport_WalkerStandingStill(t *testing.T) {
	s := portalScene(t, wallAtOrigin, wallFacingY)
	h, _, body := spawnTraveler(t, s, mgl64.Vec3{2, 0, 0}, mgl64.Vec3{}, TravelWalker)

	_, ok := s.Teleport(h)
	require.True(t, ok)
	assertVec3(t, mgl64.Vec3{0, 350, 0}, body.Velocity)
}

func TestTeleport_WalkerFromFloor(t *testing.T) {
	s := portalScene(t, floorAtOrigin, wallFacingY)
	h, node, body := spawnTraveler(t, s, mgl64.Vec3{7, 3, 3}, mgl64.Vec3{0, 0, -400}, TravelWalker)
	node.SetYaw(-2)

	_, ok := s.Teleport(h)
	require.True(t, ok)

	// relative position is dropped, the walker leaves from the exit center
	assertVec3(t, mgl64.Vec3{100, 50, 0}, node.Position())
	assertVec3(t, mgl64.Vec3{0, 600, 0}, body.Velocity)
	assert.InDelta(t, math.Pi/2, node.Yaw(), tolerance)
}

func TestTeleport_WalkerOntoFloor(t *testing.T) {
	s := portalScene(t, wallAtOrigin, floorFarAway)
	h, node, body := spawnTraveler(t, s, mgl64.Vec3{2, 0, 0}, mgl64.Vec3{-100, 0, 0}, TravelWalker)
	node.SetYaw(0.7)

	_, ok := s.Teleport(h)
	require.True(t, ok)

	assertVec3(t, mgl64.Vec3{300, 0, 50}, node.Position())
	assertVec3(t, mgl64.Vec3{0, 0, 350}, body.Velocity)
	assert.Equal(t, 0.7, node.Yaw(), "floor exits keep the heading")
}

// =============================================================================
// Precondition Tests
// =============================================================================

func TestTeleport_Preconditions(t *testing.T) {
	t.Run("single portal", func(t *testing.T) {
		s := newTestScene(t)
		_, err := s.PlacePortal(wallAtOrigin.position, wallAtOrigin.normal, portal.ColorBlue)
		require.NoError(t, err)
		h, _, _ := spawnTraveler(t, s, mgl64.Vec3{2, 0, 0}, mgl64.Vec3{}, TravelRigid)

		_, ok := s.Teleport(h)
		assert.False(t, ok)
	})

	t.Run("not a traveler", func(t *testing.T) {
		s := portalScene(t, wallAtOrigin, wallFacingY)
		h := spawnBox(t, s, mgl64.Vec3{2, 0, 0}, mgl64.Vec3{4, 4, 4}, actor.BodyTypeDynamic)

		_, ok := s.Teleport(h)
		assert.False(t, ok)
	})

	t.Run("no body", func(t *testing.T) {
		s := portalScene(t, wallAtOrigin, wallFacingY)
		h := s.Spawn()
		_, err := s.AddCollider(h, mgl64.Vec3{4, 4, 4})
		require.NoError(t, err)
		_, err = s.AddTraveler(h, TravelRigid)
		require.NoError(t, err)

		_, ok := s.Teleport(h)
		assert.False(t, ok)
	})

	t.Run("away from portals", func(t *testing.T) {
		s := portalScene(t, wallAtOrigin, wallFacingY)
		h, node, _ := spawnTraveler(t, s, mgl64.Vec3{0, 500, 0}, mgl64.Vec3{}, TravelRigid)

		_, ok := s.Teleport(h)
		assert.False(t, ok)
		assertVec3(t, mgl64.Vec3{0, 500, 0}, node.Position())
		assert.Nil(t, s.Events())
	})
}

func TestYawOf(t *testing.T) {
	tests := []struct {
		name   string
		facing mgl64.Vec3
		want   float64
		ok     bool
	}{
		{"forward", mgl64.Vec3{1, 0, 0}, 0, true},
		{"left", mgl64.Vec3{0, 1, 0}, math.Pi / 2, true},
		{"right", mgl64.Vec3{0, -3, 0}, -math.Pi / 2, true},
		{"back", mgl64.Vec3{-1, 0, 0}, math.Pi, true},
		{"tilted is flattened", mgl64.Vec3{1, 1, 5}, math.Pi / 4, true},
		{"straight up", mgl64.Vec3{0, 0, 1}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := yawOf(tt.facing)
			assert.Equal(t, tt.ok, ok)
			assert.InDelta(t, tt.want, got, tolerance)
		})
	}
}
