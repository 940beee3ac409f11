// Package noise synthesizes multi-octave value noise over a rectangular grid
// whose borders can be pinned to match previously generated neighbours.
//
// Grids are indexed [x][z]: the first index runs along the width, the second
// along the height. Edge sequences follow the tile package convention.
package noise

import (
	"fmt"
	"math"

	"github.com/OCharnyshevich/heightfield/internal/terrain"
	"github.com/OCharnyshevich/heightfield/internal/terrain/rng"
	"github.com/OCharnyshevich/heightfield/internal/terrain/tile"
)

// DefaultBias is substituted for a non-positive bias.
const DefaultBias = 0.2

// Wrap selects how the octave sampler wraps the z axis.
type Wrap int

const (
	// WrapPerAxis wraps x by the width and z by the height.
	WrapPerAxis Wrap = iota
	// WrapWidth wraps both axes by the width. This reproduces the historical
	// sampler and is only accepted when Width <= Height.
	WrapWidth
)

// Params configure a Field.
type Params struct {
	Width  int
	Height int
	// Bias divides the octave weight after every octave; larger values make
	// coarse octaves dominate.
	Bias  float64
	Edges tile.Edges
	Wrap  Wrap
}

// Field is a seed grid and the noise synthesized from it. It is immutable once built.
type Field struct {
	width, height int
	bias          float64
	octaves       int
	wrap          Wrap
	seed          [][]float64
	noise         [][]float64
}

// New builds a Field, drawing Width×Height seed values from src.
func New(p Params, src *rng.Source) (*Field, error) {
	if p.Width <= 1 || p.Height <= 1 {
		return nil, fmt.Errorf("%w: noise grid %dx%d must be at least 2x2", terrain.ErrConfiguration, p.Width, p.Height)
	}
	if src == nil {
		return nil, fmt.Errorf("%w: nil random source", terrain.ErrConfiguration)
	}
	bias := p.Bias
	if bias <= 0 {
		bias = DefaultBias
	}
	if math.IsNaN(bias) || math.IsInf(bias, 0) {
		return nil, fmt.Errorf("%w: bias %v", terrain.ErrConfiguration, p.Bias)
	}
	switch p.Wrap {
	case WrapPerAxis:
	case WrapWidth:
		if p.Width > p.Height {
			return nil, fmt.Errorf("%w: width wrap needs width <= height, got %dx%d", terrain.ErrConfiguration, p.Width, p.Height)
		}
	default:
		return nil, fmt.Errorf("%w: unknown wrap mode %d", terrain.ErrConfiguration, p.Wrap)
	}

	f := &Field{
		width:   p.Width,
		height:  p.Height,
		bias:    bias,
		octaves: max(1, int(math.Floor(math.Log(float64(p.Width))))),
		wrap:    p.Wrap,
	}

	f.seed = newGrid(f.width, f.height)
	for x := range f.seed {
		for z := range f.seed[x] {
			f.seed[x][z] = src.Next()
		}
	}
	ApplyEdges(f.seed, p.Edges)

	f.noise = f.synthesize()
	return f, nil
}

// Width returns the grid width.
func (f *Field) Width() int { return f.width }

// Height returns the grid height.
func (f *Field) Height() int { return f.height }

// Bias returns the bias in effect after defaulting.
func (f *Field) Bias() float64 { return f.bias }

// Octaves returns the number of octaves blended per cell.
func (f *Field) Octaves() int { return f.octaves }

// Seed returns a copy of the seed grid, edges already pinned.
func (f *Field) Seed() [][]float64 { return cloneGrid(f.seed) }

// Noise returns a copy of the unscaled noise grid.
func (f *Field) Noise() [][]float64 { return cloneGrid(f.noise) }

// Scaled returns the noise remapped linearly so its minimum becomes lo and its
// maximum hi. A constant field is returned unscaled.
func (f *Field) Scaled(lo, hi float64) [][]float64 {
	out := cloneGrid(f.noise)

	a, b := math.Inf(1), math.Inf(-1)
	for _, col := range out {
		for _, v := range col {
			a = math.Min(a, v)
			b = math.Max(b, v)
		}
	}
	if a == b {
		return out
	}

	for _, col := range out {
		for z, v := range col {
			v = (v - a) / (b - a)
			col[z] = (hi-lo)*v + lo
		}
	}
	return out
}

// ScaledWithBorders is Scaled followed by pinning edges to their absolute
// values, so a seam matches its neighbour regardless of either grid's range.
func (f *Field) ScaledWithBorders(lo, hi float64, edges tile.Edges) [][]float64 {
	out := f.Scaled(lo, hi)
	ApplyEdges(out, edges)
	return out
}

// synthesize blends the octaves of every cell. The pitch starts at the width
// and halves per octave; each octave bilinearly interpolates the seed values
// at the pitch-aligned corners around the cell.
func (f *Field) synthesize() [][]float64 {
	wrapZ := f.height
	if f.wrap == WrapWidth {
		wrapZ = f.width
	}

	out := newGrid(f.width, f.height)
	for x := 0; x < f.width; x++ {
		for z := 0; z < f.height; z++ {
			var sum, scaleSum float64
			scale := 1.0
			pitch := f.width
			for oct := 0; oct < f.octaves; oct++ {
				x1 := (x / pitch) * pitch
				z1 := (z / pitch) * pitch
				x2 := (x1 + pitch) % f.width
				z2 := (z1 + pitch) % wrapZ

				bx := float64(x-x1) / float64(pitch)
				bz := float64(z-z1) / float64(pitch)

				top := (1-bx)*f.seed[x1][z1] + bx*f.seed[x2][z1]
				bottom := (1-bx)*f.seed[x1][z2] + bx*f.seed[x2][z2]
				sum += (bz*(bottom-top) + top) * scale

				pitch /= 2
				scaleSum += scale
				scale /= f.bias
			}
			out[x][z] = sum / scaleSum
		}
	}
	return out
}

// ApplyEdges overwrites the borders of grid, indexed [x][z], with every edge
// whose length matches the side it spans. Sides are applied top, bottom, left,
// right, so at corners the later side wins.
func ApplyEdges(grid [][]float64, edges tile.Edges) {
	if len(grid) == 0 {
		return
	}
	w, h := len(grid), len(grid[0])
	for _, s := range tile.Sides {
		vals := edges.Get(s)
		if len(vals) != s.Span(w, h) {
			continue
		}
		for k, v := range vals {
			x, z := s.Cell(k, w, h)
			grid[x][z] = v
		}
	}
}

// Edge returns the values along side s of grid.
func Edge(grid [][]float64, s tile.Side) []float64 {
	if len(grid) == 0 {
		return nil
	}
	w, h := len(grid), len(grid[0])
	out := make([]float64, s.Span(w, h))
	for k := range out {
		x, z := s.Cell(k, w, h)
		out[k] = grid[x][z]
	}
	return out
}

func newGrid(w, h int) [][]float64 {
	g := make([][]float64, w)
	for x := range g {
		g[x] = make([]float64, h)
	}
	return g
}

func cloneGrid(src [][]float64) [][]float64 {
	out := make([][]float64, len(src))
	for x, col := range src {
		out[x] = append([]float64(nil), col...)
	}
	return out
}
