package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/akmonengine/aperture"
	"github.com/akmonengine/aperture/actor"
	"github.com/akmonengine/aperture/config"
	"github.com/akmonengine/aperture/internal/log"
	"github.com/akmonengine/aperture/portal"
	"github.com/go-gl/mathgl/mgl64"
)

// SetupScene builds a floor with a portal in it, linked to a portal on a wall,
// and drops a walker above the floor portal
func SetupScene(cfg config.Config) (*aperture.Scene, actor.Handle, error) {
	logger, err := log.New(cfg.Level())
	if err != nil {
		return nil, actor.Nil, err
	}
	scene := aperture.NewScene(cfg, logger)

	floor := scene.Spawn()
	floorNode, _ := scene.Node(floor)
	floorNode.SetPosition(mgl64.Vec3{0, 0, -50})
	if _, err := scene.AddCollider(floor, mgl64.Vec3{2000, 2000, 100}); err != nil {
		return nil, actor.Nil, err
	}
	if _, err := scene.AddBody(floor, actor.BodyTypeStatic); err != nil {
		return nil, actor.Nil, err
	}

	if _, err := scene.PlacePortal(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, 0, 1}, portal.ColorBlue); err != nil {
		return nil, actor.Nil, err
	}
	if _, err := scene.PlacePortal(mgl64.Vec3{500, 0, 100}, mgl64.Vec3{-1, 0, 0}, portal.ColorOrange); err != nil {
		return nil, actor.Nil, err
	}

	walker := scene.Spawn()
	walkerNode, _ := scene.Node(walker)
	walkerNode.SetPosition(mgl64.Vec3{0, 0, 200})
	if _, err := scene.AddCollider(walker, mgl64.Vec3{40, 40, 100}); err != nil {
		return nil, actor.Nil, err
	}
	if _, err := scene.AddBody(walker, actor.BodyTypeDynamic); err != nil {
		return nil, actor.Nil, err
	}
	if _, err := scene.AddTraveler(walker, aperture.TravelWalker); err != nil {
		return nil, actor.Nil, err
	}

	return scene, walker, nil
}

func describe(event aperture.Event) string {
	switch e := event.(type) {
	case aperture.TeleportEvent:
		return fmt.Sprintf("teleport %v: %s -> %s, now at %v moving %v", e.Handle, e.Entry, e.Exit, e.To, e.Velocity)
	case aperture.CollisionEnterEvent:
		return fmt.Sprintf("collision enter %v / %v", e.A, e.B)
	case aperture.CollisionExitEvent:
		return fmt.Sprintf("collision exit %v / %v", e.A, e.B)
	case aperture.PortalPlacedEvent:
		return fmt.Sprintf("%s portal placed at %v", e.Color, e.Position)
	case aperture.PortalClearedEvent:
		return fmt.Sprintf("%s portal cleared", e.Color)
	default:
		return ""
	}
}

func run(cfg config.Config, steps int) error {
	scene, walker, err := SetupScene(cfg)
	if err != nil {
		return err
	}

	const dt float64 = 1.0 / 60.0
	for step := 0; step < steps; step++ {
		scene.Step(dt)

		for _, event := range scene.Events() {
			if line := describe(event); line != "" {
				fmt.Printf("[%3d] %s\n", step+1, line)
			}
		}
	}

	node, _ := scene.Node(walker)
	fmt.Printf("walker ends at %v, yaw %.3f\n", node.Position(), node.Yaw())

	data, err := aperture.MarshalSnapshot(scene.Snapshot())
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func main() {
	configPath := flag.String("config", "", "YAML scene config, defaults when empty")
	steps := flag.Int("steps", 120, "number of 1/60 s steps to simulate")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		cfg = loaded
	}

	if err := run(cfg, *steps); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
