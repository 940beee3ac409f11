// Package chunk builds the terrain surface of one tile from a scaled noise grid.
//
// Elevations are stored absolute. Noise values are relative: a relative value v
// maps to amplitude*heightScale*(v+1), so v = -1 is ground level (y = 0) and
// the usual [0,1] noise range lands between one and two amplitude units up.
package chunk

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/OCharnyshevich/heightfield/internal/terrain"
	"github.com/OCharnyshevich/heightfield/internal/terrain/tile"
)

// Params are the inputs of New.
type Params struct {
	Coord      tile.Coord
	SideLength float64
	// Resolution is the number of points along each side of the tile.
	Resolution  int
	Noise       [][]float64
	HeightScale float64
	Amplitude   float64
	// Edges are absolute neighbour heights forced onto this tile's borders.
	Edges tile.Edges
}

// Chunk is the triangulated surface of one tile. It is read-only after New.
type Chunk struct {
	coord       tile.Coord
	id          tile.ID
	sideLength  float64
	resolution  int
	heightScale float64
	amplitude   float64
	center      mgl64.Vec3

	points [][]mgl64.Vec3
	// Each grid cell is split along its (i+1,j)-(i,j+1) diagonal: upper holds
	// the normal of the triangle touching (i,j), lower the one touching (i+1,j+1).
	upper [][]mgl64.Vec3
	lower [][]mgl64.Vec3
}

// New builds a chunk. It either returns a fully built chunk or an error.
func New(p Params) (*Chunk, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}

	c := &Chunk{
		coord:       p.Coord,
		id:          tile.IDFromCoord(p.Coord),
		sideLength:  p.SideLength,
		resolution:  p.Resolution,
		heightScale: p.HeightScale,
		amplitude:   p.Amplitude,
	}
	ox, oz := p.Coord.Origin(p.SideLength)
	c.center = mgl64.Vec3{ox + p.SideLength/2, 0, oz + p.SideLength/2}

	c.buildPoints(p.Noise)
	c.applyEdges(p.Edges)
	c.buildNormals()
	return c, nil
}

func (p Params) validate() error {
	switch {
	case p.Resolution < 2:
		return fmt.Errorf("%w: resolution %d must be at least 2", terrain.ErrConfiguration, p.Resolution)
	case !(p.SideLength > 0) || math.IsInf(p.SideLength, 0):
		return fmt.Errorf("%w: side length %v must be positive", terrain.ErrConfiguration, p.SideLength)
	case !(p.Amplitude > 0) || math.IsInf(p.Amplitude, 0):
		return fmt.Errorf("%w: amplitude %v must be positive", terrain.ErrConfiguration, p.Amplitude)
	case p.HeightScale == 0 || math.IsNaN(p.HeightScale) || math.IsInf(p.HeightScale, 0):
		return fmt.Errorf("%w: height scale %v must be finite and non-zero", terrain.ErrConfiguration, p.HeightScale)
	}
	if len(p.Noise) != p.Resolution {
		return fmt.Errorf("%w: noise grid has %d columns, want %d", terrain.ErrConfiguration, len(p.Noise), p.Resolution)
	}
	for i, col := range p.Noise {
		if len(col) != p.Resolution {
			return fmt.Errorf("%w: noise column %d has %d values, want %d", terrain.ErrConfiguration, i, len(col), p.Resolution)
		}
	}
	return nil
}

func (c *Chunk) squareSize() float64 {
	return c.sideLength / float64(c.resolution-1)
}

func (c *Chunk) buildPoints(noise [][]float64) {
	sq := c.squareSize()
	x0 := c.center.X() - c.sideLength/2
	z0 := c.center.Z() - c.sideLength/2

	c.points = make([][]mgl64.Vec3, c.resolution)
	for i := range c.points {
		c.points[i] = make([]mgl64.Vec3, c.resolution)
		for j := range c.points[i] {
			c.points[i][j] = mgl64.Vec3{
				x0 + float64(i)*sq,
				c.RelativeToAbsolute(noise[i][j]),
				z0 + float64(j)*sq,
			}
		}
	}
}

// applyEdges overwrites border elevations with the neighbours' absolute
// heights, top, bottom, left then right.
func (c *Chunk) applyEdges(edges tile.Edges) {
	n := c.resolution
	for _, s := range tile.Sides {
		vals := edges.Get(s)
		if len(vals) != n {
			continue
		}
		for k, y := range vals {
			i, j := s.Cell(k, n, n)
			c.points[i][j][1] = y
		}
	}
}

func (c *Chunk) buildNormals() {
	n := c.resolution - 1
	c.upper = make([][]mgl64.Vec3, n)
	c.lower = make([][]mgl64.Vec3, n)
	for i := 0; i < n; i++ {
		c.upper[i] = make([]mgl64.Vec3, n)
		c.lower[i] = make([]mgl64.Vec3, n)
		for j := 0; j < n; j++ {
			p1 := c.points[i][j]
			p2 := c.points[i+1][j]
			p3 := c.points[i][j+1]
			p4 := c.points[i+1][j+1]
			c.upper[i][j] = p2.Sub(p1).Cross(p3.Sub(p1))
			c.lower[i][j] = p2.Sub(p4).Cross(p3.Sub(p4))
		}
	}
}

// ID returns the tile id.
func (c *Chunk) ID() tile.ID { return c.id }

// Coord returns the tile coordinate.
func (c *Chunk) Coord() tile.Coord { return c.coord }

// Center returns the tile centre at y = 0.
func (c *Chunk) Center() mgl64.Vec3 { return c.center }

// SideLength returns the world length of a tile side.
func (c *Chunk) SideLength() float64 { return c.sideLength }

// Resolution returns the number of points per side.
func (c *Chunk) Resolution() int { return c.resolution }

// Amplitude returns the amplitude seed the chunk was built with.
func (c *Chunk) Amplitude() float64 { return c.amplitude }

// HeightScale returns the global height multiplier the chunk was built with.
func (c *Chunk) HeightScale() float64 { return c.heightScale }

// Point returns terrain point (i, j); i runs along x and j along z.
func (c *Chunk) Point(i, j int) mgl64.Vec3 { return c.points[i][j] }

// UpperNormal returns the normal of the triangle of cell (i, j) touching point (i, j).
func (c *Chunk) UpperNormal(i, j int) mgl64.Vec3 { return c.upper[i][j] }

// LowerNormal returns the normal of the triangle of cell (i, j) touching point (i+1, j+1).
func (c *Chunk) LowerNormal(i, j int) mgl64.Vec3 { return c.lower[i][j] }

// RelativeToAbsolute converts a noise value to an elevation.
func (c *Chunk) RelativeToAbsolute(v float64) float64 {
	return c.amplitude * c.heightScale * (v + 1)
}

// AbsoluteToRelative converts an elevation back to a noise value.
func (c *Chunk) AbsoluteToRelative(y float64) float64 {
	return y/(c.amplitude*c.heightScale) - 1
}

// Contains reports whether world (x, z) lies on this tile, borders included.
func (c *Chunk) Contains(x, z float64) bool {
	x0, z0 := c.coord.Origin(c.sideLength)
	x1, z1 := tile.Coord{X: c.coord.X + 1, Z: c.coord.Z + 1}.Origin(c.sideLength)
	return x >= x0 && x <= x1 && z >= z0 && z <= z1
}

// HeightAt returns the terrain elevation under p, ignoring p's y.
//
// The triangle is chosen by whichever of the cell's top-left or bottom-right
// corner is nearer in the xz plane, not by exact containment; near the cell
// diagonal this can pick the neighbouring triangle.
func (c *Chunk) HeightAt(p mgl64.Vec3) (float64, error) {
	x, z := p.X(), p.Z()
	if !c.Contains(x, z) {
		return 0, fmt.Errorf("%w: (%v, %v) not on tile %v", terrain.ErrOutOfBounds, x, z, c.coord)
	}

	sq := c.squareSize()
	x0, z0 := c.coord.Origin(c.sideLength)
	last := c.resolution - 2
	i := min(int(math.Floor((x-x0)/sq)), last)
	j := min(int(math.Floor((z-z0)/sq)), last)

	topLeft := c.points[i][j]
	bottomRight := c.points[i+1][j+1]
	if distance2D(topLeft, x, z) < distance2D(bottomRight, x, z) {
		return planeHeight(c.upper[i][j], topLeft, x, z), nil
	}
	return planeHeight(c.lower[i][j], bottomRight, x, z), nil
}

// EdgeHeights returns the elevations along side s, or their noise values if relative.
func (c *Chunk) EdgeHeights(s tile.Side, relative bool) []float64 {
	n := c.resolution
	out := make([]float64, n)
	for k := range out {
		i, j := s.Cell(k, n, n)
		y := c.points[i][j].Y()
		if relative {
			y = c.AbsoluteToRelative(y)
		}
		out[k] = y
	}
	return out
}

// planeHeight solves the plane through known with the given normal for y at (x, z).
// A vertical plane has no unique answer; the known corner's elevation is used.
func planeHeight(normal, known mgl64.Vec3, x, z float64) float64 {
	if normal.Y() == 0 {
		return known.Y()
	}
	return (normal.Dot(known) - normal.X()*x - normal.Z()*z) / normal.Y()
}

func distance2D(p mgl64.Vec3, x, z float64) float64 {
	return math.Hypot(p.X()-x, p.Z()-z)
}
