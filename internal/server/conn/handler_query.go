package conn

import (
	"fmt"

	"github.com/OCharnyshevich/heightfield/internal/server/packet"
	"github.com/OCharnyshevich/heightfield/internal/terrain/tile"
)

// handleHeight answers the elevation at a world point. Like a player entering
// a tile, the query first makes sure the surrounding view radius exists.
func (c *Connection) handleHeight(req packet.Request) (packet.Response, error) {
	size := c.world.Config().TileSize
	at := tile.ContainingPoint(req.X, req.Z, size)
	if _, err := c.world.PreGenerateRadius(at, c.world.Config().ViewRadius); err != nil {
		return packet.Response{}, err
	}

	h, err := c.world.HeightAt(req.X, req.Z)
	if err != nil {
		return packet.Response{}, err
	}
	return packet.Response{ID: int64(tile.IDFromCoord(at)), Height: h}, nil
}

func (c *Connection) handleEdges(req packet.Request) (packet.Response, error) {
	side, err := tile.ParseSide(req.Side)
	if err != nil {
		return packet.Response{}, err
	}
	ch, err := c.world.GetOrGenerate(tile.Coord{X: req.TileX, Z: req.TileZ})
	if err != nil {
		return packet.Response{}, err
	}
	return packet.Response{ID: int64(ch.ID()), Heights: ch.EdgeHeights(side, req.Relative)}, nil
}

func (c *Connection) handleTile(req packet.Request) (packet.Response, error) {
	v, err := c.world.EncodeTile(tile.Coord{X: req.TileX, Z: req.TileZ})
	if err != nil {
		return packet.Response{}, err
	}
	return packet.Response{ID: v.ID, Tile: &v}, nil
}

// maxPregenRadius bounds how much work one pregen request can queue.
const maxPregenRadius = 16

func (c *Connection) handlePregen(req packet.Request) (packet.Response, error) {
	if req.Radius > maxPregenRadius {
		return packet.Response{}, fmt.Errorf("radius %d exceeds %d", req.Radius, maxPregenRadius)
	}
	center := tile.Coord{X: req.TileX, Z: req.TileZ}
	n, err := c.world.PreGenerateRadius(center, req.Radius)
	if err != nil {
		return packet.Response{}, err
	}
	return packet.Response{ID: int64(tile.IDFromCoord(center)), Count: n}, nil
}
