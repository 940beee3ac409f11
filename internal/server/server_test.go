package server

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"

	"github.com/OCharnyshevich/heightfield/internal/server/config"
	"github.com/OCharnyshevich/heightfield/internal/server/packet"
	"github.com/OCharnyshevich/heightfield/internal/server/world"
	"github.com/OCharnyshevich/heightfield/internal/terrain/tile"
)

func dial(t *testing.T) (*websocket.Conn, *world.World) {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := config.DefaultConfig()
	cfg.Seed = 7
	cfg.ViewRadius = 1
	w, err := world.New(cfg, log)
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	ts := httptest.NewServer(New(cfg, log, w).Handler(ctx))
	t.Cleanup(ts.Close)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", url, err)
	}
	t.Cleanup(func() { ws.Close() })
	return ws, w
}

func roundTrip(t *testing.T, ws *websocket.Conn, req packet.Request) packet.Response {
	t.Helper()
	if err := ws.WriteJSON(req); err != nil {
		t.Fatalf("write %s: %v", req.Type, err)
	}
	var resp packet.Response
	if err := ws.ReadJSON(&resp); err != nil {
		t.Fatalf("read %s: %v", req.Type, err)
	}
	return resp
}

func TestHeightQuery(t *testing.T) {
	ws, w := dial(t)

	resp := roundTrip(t, ws, packet.Request{Type: packet.TypeHeight, X: 700, Z: 100})
	if resp.Error != "" {
		t.Fatalf("height error: %s", resp.Error)
	}
	if resp.Type != packet.TypeHeight {
		t.Errorf("Type = %q, want %q", resp.Type, packet.TypeHeight)
	}
	if want := int64(tile.IDFromCoord(tile.Coord{X: 1})); resp.ID != want {
		t.Errorf("ID = %d, want %d", resp.ID, want)
	}
	want, err := w.HeightAt(700, 100)
	if err != nil {
		t.Fatal(err)
	}
	if resp.Height != want {
		t.Errorf("Height = %v, want %v", resp.Height, want)
	}

	// View radius 1 around the queried tile.
	if w.Len() != 9 {
		t.Errorf("world has %d tiles, want 9", w.Len())
	}
}

func TestEdgesQuery(t *testing.T) {
	ws, w := dial(t)

	resp := roundTrip(t, ws, packet.Request{Type: packet.TypeEdges, TileX: -1, TileZ: 2, Side: "left"})
	if resp.Error != "" {
		t.Fatalf("edges error: %s", resp.Error)
	}
	ch, ok := w.Chunk(tile.ID(resp.ID))
	if !ok {
		t.Fatal("tile not generated")
	}
	want := ch.EdgeHeights(tile.Left, false)
	if len(resp.Heights) != len(want) {
		t.Fatalf("got %d heights, want %d", len(resp.Heights), len(want))
	}
	for k := range want {
		if resp.Heights[k] != want[k] {
			t.Errorf("heights[%d] = %v, want %v", k, resp.Heights[k], want[k])
		}
	}

	bad := roundTrip(t, ws, packet.Request{Type: packet.TypeEdges, Side: "north"})
	if bad.Error == "" {
		t.Error("unknown side should fail")
	}
}

func TestTileQuery(t *testing.T) {
	ws, w := dial(t)

	resp := roundTrip(t, ws, packet.Request{Type: packet.TypeTile, TileX: 3, TileZ: 3})
	if resp.Error != "" {
		t.Fatalf("tile error: %s", resp.Error)
	}
	if resp.Tile == nil {
		t.Fatal("missing tile payload")
	}
	if resp.Tile.X != 3 || resp.Tile.Z != 3 {
		t.Errorf("tile coords = (%d,%d), want (3,3)", resp.Tile.X, resp.Tile.Z)
	}
	if n := w.Config().Resolution; len(resp.Tile.Heights) != n {
		t.Errorf("got %d height columns, want %d", len(resp.Tile.Heights), n)
	}
}

func TestPregenQuery(t *testing.T) {
	ws, w := dial(t)

	resp := roundTrip(t, ws, packet.Request{Type: packet.TypePregen, Radius: 2})
	if resp.Error != "" {
		t.Fatalf("pregen error: %s", resp.Error)
	}
	if resp.Count != 25 || w.Len() != 25 {
		t.Errorf("Count = %d, world tiles = %d, want 25", resp.Count, w.Len())
	}

	tooBig := roundTrip(t, ws, packet.Request{Type: packet.TypePregen, Radius: 1000})
	if tooBig.Error == "" {
		t.Error("oversized radius should fail")
	}
}

func TestUnknownRequest(t *testing.T) {
	ws, _ := dial(t)
	resp := roundTrip(t, ws, packet.Request{Type: "teleport"})
	if resp.Error == "" {
		t.Error("unknown request type should fail")
	}
	if resp.Type != "teleport" {
		t.Errorf("Type = %q, want echo of request type", resp.Type)
	}
}
