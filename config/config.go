// Package config loads scene tuning from YAML.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/akmonengine/aperture/internal/log"
	"github.com/akmonengine/aperture/portal"
	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"
)

var ErrInvalid = errors.New("invalid config")

type Config struct {
	LogLevel string     `yaml:"log_level"`
	Gravity  mgl64.Vec3 `yaml:"gravity"`
	Portal   Portal     `yaml:"portal"`
	Teleport Teleport   `yaml:"teleport"`
}

// Portal holds the collision box sizes of portals on surfaces facing each
// world axis.
type Portal struct {
	SizeX mgl64.Vec3 `yaml:"size_x"`
	SizeY mgl64.Vec3 `yaml:"size_y"`
	SizeZ mgl64.Vec3 `yaml:"size_z"`
}

func (p Portal) Presets() portal.Presets {
	return portal.Presets{X: p.SizeX, Y: p.SizeY, Z: p.SizeZ}
}

type Teleport struct {
	Walker Walker `yaml:"walker"`
	Rigid  Rigid  `yaml:"rigid"`
}

// Walker tunes travelers that walk out of the exit portal. Durations are in
// seconds.
type Walker struct {
	ExitOffset         float64 `yaml:"exit_offset"`
	VelocityMultiplier float64 `yaml:"velocity_multiplier"`
	MinVelocity        float64 `yaml:"min_velocity"`
	Cooldown           float64 `yaml:"cooldown"`
}

// Rigid tunes travelers that keep their exact trajectory through portals
type Rigid struct {
	Cooldown float64 `yaml:"cooldown"`
}

func Default() Config {
	presets := portal.DefaultPresets()

	return Config{
		LogLevel: "info",
		Gravity:  mgl64.Vec3{0, 0, -980},
		Portal: Portal{
			SizeX: presets.X,
			SizeY: presets.Y,
			SizeZ: presets.Z,
		},
		Teleport: Teleport{
			Walker: Walker{
				ExitOffset:         50,
				VelocityMultiplier: 1.5,
				MinVelocity:        350,
				Cooldown:           0.2,
			},
			Rigid: Rigid{
				Cooldown: 0.25,
			},
		},
	}
}

// Load reads a YAML file on top of the defaults
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	c, err := Parse(f)
	if err != nil {
		return Config{}, fmt.Errorf("load %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes YAML from r on top of the defaults. Keys missing from the
// document keep their default value; unknown keys are rejected.
func Parse(r io.Reader) (Config, error) {
	c := Default()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) Validate() error {
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	for i, size := range []mgl64.Vec3{c.Portal.SizeX, c.Portal.SizeY, c.Portal.SizeZ} {
		if size.X() <= 0 || size.Y() <= 0 || size.Z() <= 0 {
			return fmt.Errorf("%w: portal.size_%c must be positive on every axis, got %v", ErrInvalid, 'x'+rune(i), size)
		}
	}

	walker := c.Teleport.Walker
	switch {
	case walker.VelocityMultiplier <= 0:
		return fmt.Errorf("%w: teleport.walker.velocity_multiplier must be positive", ErrInvalid)
	case walker.MinVelocity < 0:
		return fmt.Errorf("%w: teleport.walker.min_velocity must not be negative", ErrInvalid)
	case walker.Cooldown < 0:
		return fmt.Errorf("%w: teleport.walker.cooldown must not be negative", ErrInvalid)
	case c.Teleport.Rigid.Cooldown < 0:
		return fmt.Errorf("%w: teleport.rigid.cooldown must not be negative", ErrInvalid)
	}

	return nil
}

// Level returns the parsed log level. It assumes a validated config.
func (c Config) Level() log.Level {
	level, _ := log.ParseLevel(c.LogLevel)
	return level
}
