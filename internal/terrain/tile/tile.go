// Package tile maps integer tile coordinates to scalar ids and back.
//
// Ids enumerate an expanding square spiral around the origin: (0,0) is id 0,
// ring k (the tiles with max(|x|,|z|) == k) holds ids (2k-1)² through (2k+1)²-1.
// Each ring starts just below its north-east corner and walks down the east
// side, west along the south side, up the west side and east along the north side.
package tile

import (
	"fmt"
	"math"
)

// Coord is a tile coordinate. The tile covers world x in [X*size, (X+1)*size]
// and world z in [Z*size, (Z+1)*size].
type Coord struct {
	X, Z int64
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Z)
}

// ID is the scalar tile identifier.
type ID int64

// Side names one border of a tile. Top is the row at minimum z, Bottom the row
// at maximum z, Left the column at minimum x and Right the column at maximum x.
type Side int

const (
	Top Side = iota
	Bottom
	Left
	Right
)

// Sides lists every side in the order borders are applied.
var Sides = [4]Side{Top, Bottom, Left, Right}

func (s Side) String() string {
	switch s {
	case Top:
		return "top"
	case Bottom:
		return "bottom"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return fmt.Sprintf("side(%d)", int(s))
	}
}

// ParseSide converts a side name back to a Side.
func ParseSide(name string) (Side, error) {
	for _, s := range Sides {
		if s.String() == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown side %q", name)
}

// Opposite returns the side a neighbor shares with this one.
func (s Side) Opposite() Side {
	switch s {
	case Top:
		return Bottom
	case Bottom:
		return Top
	case Left:
		return Right
	default:
		return Left
	}
}

// Offset returns the coordinate delta of the neighbor across this side.
func (s Side) Offset() (dx, dz int64) {
	switch s {
	case Top:
		return 0, -1
	case Bottom:
		return 0, 1
	case Left:
		return -1, 0
	default:
		return 1, 0
	}
}

// Neighbor returns the coordinate across the given side.
func (c Coord) Neighbor(s Side) Coord {
	dx, dz := s.Offset()
	return Coord{X: c.X + dx, Z: c.Z + dz}
}

// Origin returns the world position of the tile's minimum corner.
func (c Coord) Origin(size float64) (x, z float64) {
	return float64(c.X) * size, float64(c.Z) * size
}

// IDFromCoord returns the spiral id of c.
func IDFromCoord(c Coord) ID {
	k := max(abs(c.X), abs(c.Z))
	if k == 0 {
		return 0
	}
	start := (2*k - 1) * (2*k - 1)
	var off int64
	switch {
	case c.X == k && c.Z > -k:
		off = c.Z + k - 1
	case c.Z == k:
		off = 2*k + (k - 1 - c.X)
	case c.X == -k:
		off = 4*k + (k - 1 - c.Z)
	default:
		off = 6*k + (c.X + k - 1)
	}
	return ID(start + off)
}

// Coord returns the tile coordinate of id. Negative ids are not produced by
// IDFromCoord; they map to the origin.
func (id ID) Coord() Coord {
	n := int64(id)
	if n <= 0 {
		return Coord{}
	}
	k := (isqrt(n) + 1) / 2
	off := n - (2*k-1)*(2*k-1)
	side, t := off/(2*k), off%(2*k)
	switch side {
	case 0:
		return Coord{X: k, Z: -k + 1 + t}
	case 1:
		return Coord{X: k - 1 - t, Z: k}
	case 2:
		return Coord{X: -k, Z: k - 1 - t}
	default:
		return Coord{X: -k + 1 + t, Z: -k}
	}
}

// CoordFromID is the inverse of IDFromCoord.
func CoordFromID(id ID) Coord {
	return id.Coord()
}

// Neighbor returns the id of the tile across the given side.
func (id ID) Neighbor(s Side) ID {
	return IDFromCoord(id.Coord().Neighbor(s))
}

// Above returns the id of the tile at z-1.
func (id ID) Above() ID { return id.Neighbor(Top) }

// Below returns the id of the tile at z+1.
func (id ID) Below() ID { return id.Neighbor(Bottom) }

// Left returns the id of the tile at x-1.
func (id ID) Left() ID { return id.Neighbor(Left) }

// Right returns the id of the tile at x+1.
func (id ID) Right() ID { return id.Neighbor(Right) }

// WithinRadius returns every coordinate whose x and z each differ from c by at
// most r, centre first and then ring by ring. r=2 yields the 5×5 block of 25 tiles.
func WithinRadius(c Coord, r int64) []Coord {
	if r < 0 {
		return nil
	}
	out := make([]Coord, 0, (2*r+1)*(2*r+1))
	for ring := int64(0); ring <= r; ring++ {
		for dx := -ring; dx <= ring; dx++ {
			for dz := -ring; dz <= ring; dz++ {
				if max(abs(dx), abs(dz)) != ring {
					continue
				}
				out = append(out, Coord{X: c.X + dx, Z: c.Z + dz})
			}
		}
	}
	return out
}

// WithinTaxicab returns every coordinate at Manhattan distance at most r from c.
func WithinTaxicab(c Coord, r int64) []Coord {
	if r < 0 {
		return nil
	}
	out := make([]Coord, 0, 2*r*(r+1)+1)
	for dx := -r; dx <= r; dx++ {
		rem := r - abs(dx)
		for dz := -rem; dz <= rem; dz++ {
			out = append(out, Coord{X: c.X + dx, Z: c.Z + dz})
		}
	}
	return out
}

// IDsWithinRadius returns the ids of WithinRadius(c, r).
func IDsWithinRadius(c Coord, r int64) []ID {
	coords := WithinRadius(c, r)
	ids := make([]ID, len(coords))
	for i, cc := range coords {
		ids[i] = IDFromCoord(cc)
	}
	return ids
}

// ContainingPoint returns the coordinate of the tile holding world point (x, z).
func ContainingPoint(x, z, size float64) Coord {
	return Coord{
		X: containingIndex(x, size),
		Z: containingIndex(z, size),
	}
}

// containingIndex floors v/size, then corrects the rounding of the division so
// the result agrees with Origin: k*size <= v < (k+1)*size.
func containingIndex(v, size float64) int64 {
	k := int64(math.Floor(v / size))
	for float64(k)*size > v {
		k--
	}
	for float64(k+1)*size <= v {
		k++
	}
	return k
}

// IDContainingPoint returns the id of the tile holding world point (x, z).
func IDContainingPoint(x, z, size float64) ID {
	return IDFromCoord(ContainingPoint(x, z, size))
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

// isqrt returns floor(sqrt(n)) for n >= 0.
func isqrt(n int64) int64 {
	r := int64(math.Sqrt(float64(n)))
	for r*r > n {
		r--
	}
	for (r+1)*(r+1) <= n {
		r++
	}
	return r
}
