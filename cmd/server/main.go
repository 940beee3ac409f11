package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/OCharnyshevich/heightfield/internal/server"
	"github.com/OCharnyshevich/heightfield/internal/server/config"
	"github.com/OCharnyshevich/heightfield/internal/server/storage"
	"github.com/OCharnyshevich/heightfield/internal/server/world"
)

func main() {
	cfg := config.DefaultConfig()

	dataDir := flag.String("data", "./data", "directory holding config.json")
	debug := flag.Bool("debug", false, "log every generated tile")
	flag.IntVar(&cfg.Port, "port", cfg.Port, "server port")
	flag.Int64Var(&cfg.Seed, "seed", cfg.Seed, "world seed")
	flag.StringVar(&cfg.Wrap, "wrap", cfg.Wrap, `noise wrap: "axis" or "width"`)
	flag.Float64Var(&cfg.TileSize, "tile-size", cfg.TileSize, "world length of a tile side")
	flag.IntVar(&cfg.Resolution, "resolution", cfg.Resolution, "points per tile side")
	flag.Float64Var(&cfg.HeightScale, "height-scale", cfg.HeightScale, "global elevation multiplier")
	flag.IntVar(&cfg.ViewRadius, "view-radius", cfg.ViewRadius, "tiles generated around each height query")
	flag.Float64Var(&cfg.WaterLevel, "water-level", cfg.WaterLevel, "elevation below which cells are water")
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	explicit := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	store, err := storage.New(*dataDir, log)
	if err != nil {
		log.Error("open storage", "error", err)
		os.Exit(1)
	}
	fromFile := config.DefaultConfig()
	if err := store.LoadConfig(fromFile); err != nil {
		log.Error("load config", "error", err)
		os.Exit(1)
	}
	config.Merge(cfg, fromFile, explicit)

	w, err := world.New(cfg, log)
	if err != nil {
		log.Error("create world", "error", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	srv := server.New(cfg, log, w)
	if err := srv.Start(ctx); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
