package conn

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/OCharnyshevich/heightfield/internal/server/packet"
	"github.com/OCharnyshevich/heightfield/internal/server/world"
)

// Connection serves queries from a single websocket client.
type Connection struct {
	ws     *websocket.Conn
	log    *slog.Logger
	ctx    context.Context
	cancel context.CancelFunc
	world  *world.World

	mu sync.Mutex
}

// NewConnection wraps an upgraded websocket connection.
func NewConnection(ctx context.Context, ws *websocket.Conn, log *slog.Logger, w *world.World) *Connection {
	ctx, cancel := context.WithCancel(ctx)
	return &Connection{
		ws:     ws,
		log:    log.With("addr", ws.RemoteAddr().String()),
		ctx:    ctx,
		cancel: cancel,
		world:  w,
	}
}

// Handle reads requests and answers them in order until the client goes away
// or the context is cancelled.
func (c *Connection) Handle() {
	defer func() {
		c.cancel()
		c.ws.Close()
		c.log.Info("connection closed")
	}()

	// Unblock ReadJSON when the server shuts down.
	go func() {
		<-c.ctx.Done()
		c.ws.Close()
	}()

	c.log.Info("connection accepted")

	for {
		var req packet.Request
		if err := c.ws.ReadJSON(&req); err != nil {
			if c.ctx.Err() != nil || websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return
			}
			var closeErr *websocket.CloseError
			if errors.As(err, &closeErr) {
				return
			}
			c.log.Error("reading request", "error", err)
			return
		}

		resp := c.handleRequest(req)
		if err := c.writeResponse(resp); err != nil {
			if c.ctx.Err() == nil {
				c.log.Error("writing response", "type", req.Type, "error", err)
			}
			return
		}
	}
}

func (c *Connection) handleRequest(req packet.Request) packet.Response {
	var (
		resp packet.Response
		err  error
	)
	switch req.Type {
	case packet.TypeHeight:
		resp, err = c.handleHeight(req)
	case packet.TypeEdges:
		resp, err = c.handleEdges(req)
	case packet.TypeTile:
		resp, err = c.handleTile(req)
	case packet.TypePregen:
		resp, err = c.handlePregen(req)
	default:
		err = fmt.Errorf("unknown request type %q", req.Type)
	}
	resp.Type = req.Type
	if err != nil {
		c.log.Warn("request failed", "type", req.Type, "error", err)
		resp.Error = err.Error()
	}
	return resp
}

// writeResponse writes a response under the write lock.
func (c *Connection) writeResponse(resp packet.Response) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ws.WriteJSON(resp)
}
