package config

import (
	"fmt"
	"math"

	"github.com/OCharnyshevich/heightfield/internal/terrain"
	"github.com/OCharnyshevich/heightfield/internal/terrain/noise"
	"github.com/OCharnyshevich/heightfield/internal/terrain/surface"
)

// Config holds the server and terrain configuration.
type Config struct {
	Port int    `json:"port"`
	Seed int64  `json:"seed"`
	Wrap string `json:"wrap"` // "axis" or "width"

	TileSize    float64 `json:"tile_size"`    // world length of a tile side
	Resolution  int     `json:"resolution"`   // points per tile side
	HeightScale float64 `json:"height_scale"` // global elevation multiplier
	ChunkBias   float64 `json:"chunk_bias"`   // octave falloff of per-tile noise

	AmplitudeGridSize int     `json:"amplitude_grid_size"` // side of the world-wide amplitude field
	AmplitudeBias     float64 `json:"amplitude_bias"`
	AmplitudeMin      float64 `json:"amplitude_min"`
	AmplitudeMax      float64 `json:"amplitude_max"`

	ViewRadius int           `json:"view_radius"` // tiles pre-generated around a query, 0 = only the queried tile
	WaterLevel float64       `json:"water_level"`
	Bands      surface.Bands `json:"bands"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Port:              8080,
		Wrap:              "axis",
		TileSize:          512,
		Resolution:        20,
		HeightScale:       200,
		ChunkBias:         1,
		AmplitudeGridSize: 10,
		AmplitudeBias:     0.2,
		AmplitudeMin:      0.1,
		AmplitudeMax:      1,
		ViewRadius:        2,
		WaterLevel:        30,
		Bands:             surface.DefaultBands(),
	}
}

// WrapMode returns the noise wrap selected by Wrap.
func (c *Config) WrapMode() (noise.Wrap, error) {
	switch c.Wrap {
	case "", "axis":
		return noise.WrapPerAxis, nil
	case "width":
		return noise.WrapWidth, nil
	default:
		return 0, fmt.Errorf("%w: unknown wrap %q", terrain.ErrConfiguration, c.Wrap)
	}
}

// Validate reports the first setting that cannot produce terrain.
func (c *Config) Validate() error {
	if _, err := c.WrapMode(); err != nil {
		return err
	}
	switch {
	case c.Port < 0 || c.Port > 65535:
		return fmt.Errorf("%w: port %d", terrain.ErrConfiguration, c.Port)
	case !(c.TileSize > 0) || math.IsInf(c.TileSize, 0):
		return fmt.Errorf("%w: tile size %v", terrain.ErrConfiguration, c.TileSize)
	case c.Resolution < 2:
		return fmt.Errorf("%w: resolution %d", terrain.ErrConfiguration, c.Resolution)
	case c.HeightScale == 0 || math.IsNaN(c.HeightScale) || math.IsInf(c.HeightScale, 0):
		return fmt.Errorf("%w: height scale %v", terrain.ErrConfiguration, c.HeightScale)
	case c.AmplitudeGridSize < 2:
		return fmt.Errorf("%w: amplitude grid size %d", terrain.ErrConfiguration, c.AmplitudeGridSize)
	case !(c.AmplitudeMin > 0) || !(c.AmplitudeMax >= c.AmplitudeMin):
		return fmt.Errorf("%w: amplitude range [%v,%v]", terrain.ErrConfiguration, c.AmplitudeMin, c.AmplitudeMax)
	case c.ViewRadius < 0:
		return fmt.Errorf("%w: view radius %d", terrain.ErrConfiguration, c.ViewRadius)
	}
	return nil
}

// Merge applies file-loaded config values into cfg, but only for fields
// that were NOT explicitly set via CLI flags. explicitFlags contains the
// flag names that were explicitly provided on the command line.
func Merge(cfg *Config, fromFile *Config, explicitFlags map[string]bool) {
	if !explicitFlags["port"] {
		cfg.Port = fromFile.Port
	}
	if !explicitFlags["seed"] {
		cfg.Seed = fromFile.Seed
	}
	if !explicitFlags["wrap"] {
		cfg.Wrap = fromFile.Wrap
	}
	if !explicitFlags["tile-size"] {
		cfg.TileSize = fromFile.TileSize
	}
	if !explicitFlags["resolution"] {
		cfg.Resolution = fromFile.Resolution
	}
	if !explicitFlags["height-scale"] {
		cfg.HeightScale = fromFile.HeightScale
	}
	if !explicitFlags["view-radius"] {
		cfg.ViewRadius = fromFile.ViewRadius
	}
	if !explicitFlags["water-level"] {
		cfg.WaterLevel = fromFile.WaterLevel
	}
	cfg.ChunkBias = fromFile.ChunkBias
	cfg.AmplitudeGridSize = fromFile.AmplitudeGridSize
	cfg.AmplitudeBias = fromFile.AmplitudeBias
	cfg.AmplitudeMin = fromFile.AmplitudeMin
	cfg.AmplitudeMax = fromFile.AmplitudeMax
	cfg.Bands = fromFile.Bands
}
