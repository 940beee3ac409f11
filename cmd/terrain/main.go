package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/OCharnyshevich/heightfield/internal/preset"
	"github.com/OCharnyshevich/heightfield/internal/server/config"
	"github.com/OCharnyshevich/heightfield/internal/server/storage"
	"github.com/OCharnyshevich/heightfield/internal/server/world"
	"github.com/OCharnyshevich/heightfield/internal/terrain/tile"
)

func main() {
	cfg := config.DefaultConfig()

	var (
		src     = flag.String("preset", "", "go-getter source of a preset directory holding config.json")
		out     = flag.String("o", "./preset", "directory the preset is fetched into")
		dataDir = flag.String("data", "", "directory holding config.json (ignored with -preset)")
		cx      = flag.Int64("x", 0, "tile x at the centre of the map")
		cz      = flag.Int64("z", 0, "tile z at the centre of the map")
		radius  = flag.Int("radius", 2, "tiles generated around the centre")
		save    = flag.Bool("save", false, "write the effective config back to the config directory")
	)
	flag.Int64Var(&cfg.Seed, "seed", cfg.Seed, "world seed")
	flag.StringVar(&cfg.Wrap, "wrap", cfg.Wrap, `noise wrap: "axis" or "width"`)
	flag.Float64Var(&cfg.TileSize, "tile-size", cfg.TileSize, "world length of a tile side")
	flag.IntVar(&cfg.Resolution, "resolution", cfg.Resolution, "points per tile side")
	flag.Float64Var(&cfg.HeightScale, "height-scale", cfg.HeightScale, "global elevation multiplier")
	flag.Float64Var(&cfg.WaterLevel, "water-level", cfg.WaterLevel, "elevation below which cells are water")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	dir := *dataDir
	if *src != "" {
		dir = *out
		if err := os.RemoveAll(dir); err != nil {
			log.Error("clear preset directory", "path", dir, "error", err)
			os.Exit(1)
		}
		log.Info("fetching preset", "src", *src, "path", dir)
		if err := preset.Fetch(ctx, *src, dir); err != nil {
			log.Error("fetch preset", "error", err)
			os.Exit(1)
		}
	}

	if dir != "" {
		explicit := make(map[string]bool)
		flag.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

		store, err := storage.New(dir, log)
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

		if *save {
			if err := store.SaveConfig(cfg); err != nil {
				log.Error("save config", "error", err)
				os.Exit(1)
			}
			log.Info("saved config", "path", filepath.Join(dir, storage.ConfigFile))
		}
	}

	w, err := world.New(cfg, log)
	if err != nil {
		log.Error("create world", "error", err)
		os.Exit(1)
	}

	center := tile.Coord{X: *cx, Z: *cz}
	n, err := w.PreGenerateRadius(center, *radius)
	if err != nil {
		log.Error("generate tiles", "error", err)
		os.Exit(1)
	}
	log.Info("tiles generated", "count", n, "center", center.String())

	if err := printMap(w, center, *radius); err != nil {
		log.Error("print map", "error", err)
		os.Exit(1)
	}
}

// printMap writes one line per tile row with the tile's mean elevation, and
// the surface glyphs of the centre tile.
func printMap(w *world.World, center tile.Coord, radius int) error {
	r := int64(radius)
	for z := center.Z - r; z <= center.Z+r; z++ {
		for x := center.X - r; x <= center.X+r; x++ {
			v, err := w.EncodeTile(tile.Coord{X: x, Z: z})
			if err != nil {
				return err
			}
			fmt.Printf("%8.1f", mean(v.Heights))
		}
		fmt.Println()
	}

	v, err := w.EncodeTile(center)
	if err != nil {
		return err
	}
	fmt.Printf("\ntile %d %s amplitude %.3f water %.0f%%\n", v.ID, center, v.Amplitude, v.Water*100)
	// Kinds rows run along x; print them transposed so z runs down the page.
	for j := range v.Kinds[0] {
		line := make([]byte, len(v.Kinds))
		for i, row := range v.Kinds {
			line[i] = row[j]
		}
		fmt.Println(string(line))
	}
	return nil
}

func mean(grid [][]float64) float64 {
	var sum float64
	var n int
	for _, col := range grid {
		for _, v := range col {
			sum += v
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}
