package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/OCharnyshevich/heightfield/internal/server/config"
	"github.com/OCharnyshevich/heightfield/internal/server/conn"
	"github.com/OCharnyshevich/heightfield/internal/server/world"
)

// Server answers terrain queries over websocket connections.
type Server struct {
	cfg      *config.Config
	log      *slog.Logger
	world    *world.World
	upgrader websocket.Upgrader
}

// New creates a new Server with the given config, logger and world.
func New(cfg *config.Config, log *slog.Logger, w *world.World) *Server {
	return &Server{
		cfg:   cfg,
		log:   log,
		world: w,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// Handler returns the HTTP handler serving the websocket endpoint at /ws.
func (s *Server) Handler(ctx context.Context) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		ws, err := s.upgrader.Upgrade(w, r, nil)
		if err != nil {
			s.log.Error("upgrade connection", "error", err)
			return
		}
		go conn.NewConnection(ctx, ws, s.log, s.world).Handle()
	})
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "ok %d tiles\n", s.world.Len())
	})
	return mux
}

// Start begins listening for connections and blocks until the context is cancelled.
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	lc := net.ListenConfig{}

	listener, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}

	srv := &http.Server{
		Handler:           s.Handler(ctx),
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.log.Info("server started",
		"port", s.cfg.Port,
		"seed", s.cfg.Seed,
		"tileSize", s.cfg.TileSize,
		"resolution", s.cfg.Resolution,
	)

	// Shut the HTTP server down when the context is cancelled.
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve: %w", err)
	}
	s.log.Info("server shutting down")
	return nil
}
