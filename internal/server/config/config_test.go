package config

import (
	"errors"
	"testing"

	"github.com/OCharnyshevich/heightfield/internal/terrain"
	"github.com/OCharnyshevich/heightfield/internal/terrain/noise"
)

func TestDefaultConfigValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v", err)
	}
}

func TestDefaultWaterLevel(t *testing.T) {
	c := DefaultConfig()
	if c.WaterLevel != 30 {
		t.Errorf("WaterLevel = %v, want 30", c.WaterLevel)
	}
	// Elevations never drop below AmplitudeMin*HeightScale.
	if floor := c.AmplitudeMin * c.HeightScale; c.WaterLevel <= floor {
		t.Errorf("WaterLevel %v is at or below the lowest elevation %v", c.WaterLevel, floor)
	}
	if c.WaterLevel >= c.Bands.Rock {
		t.Errorf("WaterLevel %v reaches the rock band %v", c.WaterLevel, c.Bands.Rock)
	}
}

func TestValidateRejects(t *testing.T) {
	cases := map[string]func(c *Config){
		"port":           func(c *Config) { c.Port = 70000 },
		"tile size":      func(c *Config) { c.TileSize = 0 },
		"resolution":     func(c *Config) { c.Resolution = 1 },
		"height scale":   func(c *Config) { c.HeightScale = 0 },
		"amplitude grid": func(c *Config) { c.AmplitudeGridSize = 1 },
		"amplitude min":  func(c *Config) { c.AmplitudeMin = 0 },
		"amplitude max":  func(c *Config) { c.AmplitudeMax = 0.05 },
		"view radius":    func(c *Config) { c.ViewRadius = -1 },
		"wrap":           func(c *Config) { c.Wrap = "diagonal" },
	}
	for name, mutate := range cases {
		c := DefaultConfig()
		mutate(c)
		if err := c.Validate(); !errors.Is(err, terrain.ErrConfiguration) {
			t.Errorf("%s: Validate() = %v, want ErrConfiguration", name, err)
		}
	}
}

func TestWrapMode(t *testing.T) {
	c := DefaultConfig()
	for in, want := range map[string]noise.Wrap{"": noise.WrapPerAxis, "axis": noise.WrapPerAxis, "width": noise.WrapWidth} {
		c.Wrap = in
		got, err := c.WrapMode()
		if err != nil || got != want {
			t.Errorf("WrapMode(%q) = %v, %v, want %v", in, got, err, want)
		}
	}
}

func TestMergeRespectsExplicitFlags(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Port = 9000
	cfg.Seed = 1

	file := DefaultConfig()
	file.Port = 7000
	file.Seed = 99
	file.Resolution = 33
	file.Bands.Snow = 1000

	Merge(cfg, file, map[string]bool{"port": true})

	if cfg.Port != 9000 {
		t.Errorf("Port = %d, want explicit flag value 9000", cfg.Port)
	}
	if cfg.Seed != 99 {
		t.Errorf("Seed = %d, want file value 99", cfg.Seed)
	}
	if cfg.Resolution != 33 {
		t.Errorf("Resolution = %d, want file value 33", cfg.Resolution)
	}
	if cfg.Bands.Snow != 1000 {
		t.Errorf("Bands.Snow = %v, want file value 1000", cfg.Bands.Snow)
	}
}
