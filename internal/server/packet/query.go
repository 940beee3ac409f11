package packet

import "github.com/OCharnyshevich/heightfield/internal/server/world"

// Request types.
const (
	TypeHeight = "height" // elevation at world X, Z
	TypeEdges  = "edges"  // border of tile TileX, TileZ along Side
	TypeTile   = "tile"   // full view of tile TileX, TileZ
	TypePregen = "pregen" // generate Radius around tile TileX, TileZ
)

// Request is a client query.
type Request struct {
	Type     string  `json:"type"`
	X        float64 `json:"x,omitempty"`
	Z        float64 `json:"z,omitempty"`
	TileX    int64   `json:"tile_x,omitempty"`
	TileZ    int64   `json:"tile_z,omitempty"`
	Side     string  `json:"side,omitempty"`
	Relative bool    `json:"relative,omitempty"`
	Radius   int     `json:"radius,omitempty"`
}

// Response answers one Request. Error is set instead of the payload when the
// query failed.
type Response struct {
	Type    string          `json:"type"`
	ID      int64           `json:"id"`
	Height  float64         `json:"height"`
	Heights []float64       `json:"heights,omitempty"`
	Tile    *world.TileView `json:"tile,omitempty"`
	Count   int             `json:"count,omitempty"`
	Error   string          `json:"error,omitempty"`
}
