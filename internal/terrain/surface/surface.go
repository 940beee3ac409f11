// Package surface derives presentation data from a built chunk: a terrain kind
// per grid cell and a water flag. Nothing here feeds back into elevations.
package surface

import (
	"math"

	"github.com/OCharnyshevich/heightfield/internal/terrain/chunk"
)

// Kind is the terrain band a cell falls in.
type Kind uint8

const (
	Sand Kind = iota
	Grass
	Rock
	Snow
)

func (k Kind) String() string {
	switch k {
	case Grass:
		return "grass"
	case Rock:
		return "rock"
	case Snow:
		return "snow"
	default:
		return "sand"
	}
}

// Glyph returns a single character for text renderings.
func (k Kind) Glyph() byte {
	return "_.^*"[k]
}

// Bands are descending elevation thresholds. A cell at or above Snow is snow,
// at or above Rock is rock, at or above Grass is grass, anything lower is sand.
type Bands struct {
	Snow  float64 `json:"snow"`
	Rock  float64 `json:"rock"`
	Grass float64 `json:"grass"`
}

// DefaultBands returns the stock thresholds for a height scale of 200.
func DefaultBands() Bands {
	return Bands{Snow: 350, Rock: 250, Grass: 25}
}

// Classify returns the band of an elevation.
func (b Bands) Classify(y float64) Kind {
	switch {
	case y >= b.Snow:
		return Snow
	case y >= b.Rock:
		return Rock
	case y >= b.Grass:
		return Grass
	default:
		return Sand
	}
}

// Map holds the per-cell classification of one chunk, indexed [i][j] like the
// chunk's cells.
type Map struct {
	Kinds [][]Kind
	Water [][]bool
}

// Classify builds a Map for c. Each cell is classified by its (i, j) corner and
// flagged as water when its lowest corner is below waterLevel.
func Classify(c *chunk.Chunk, bands Bands, waterLevel float64) Map {
	n := c.Resolution() - 1
	m := Map{
		Kinds: make([][]Kind, n),
		Water: make([][]bool, n),
	}
	for i := 0; i < n; i++ {
		m.Kinds[i] = make([]Kind, n)
		m.Water[i] = make([]bool, n)
		for j := 0; j < n; j++ {
			m.Kinds[i][j] = bands.Classify(c.Point(i, j).Y())
			low := math.Min(
				math.Min(c.Point(i, j).Y(), c.Point(i+1, j).Y()),
				math.Min(c.Point(i, j+1).Y(), c.Point(i+1, j+1).Y()),
			)
			m.Water[i][j] = low < waterLevel
		}
	}
	return m
}

// WaterFraction returns the share of cells flagged as water.
func (m Map) WaterFraction() float64 {
	var total, wet int
	for _, col := range m.Water {
		for _, w := range col {
			total++
			if w {
				wet++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(wet) / float64(total)
}
