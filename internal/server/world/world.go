package world

import (
	"fmt"
	"log/slog"
	"math"
	"sync"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/OCharnyshevich/heightfield/internal/server/config"
	"github.com/OCharnyshevich/heightfield/internal/terrain/chunk"
	"github.com/OCharnyshevich/heightfield/internal/terrain/noise"
	"github.com/OCharnyshevich/heightfield/internal/terrain/rng"
	"github.com/OCharnyshevich/heightfield/internal/terrain/surface"
	"github.com/OCharnyshevich/heightfield/internal/terrain/tile"
)

// minAmplitude keeps amplitude seeds usable as divisors.
const minAmplitude = 1e-6

// World generates tiles on first use and keeps them for its whole lifetime.
type World struct {
	cfg  *config.Config
	log  *slog.Logger
	wrap noise.Wrap

	// amplitudes is the world-wide amplitude field, indexed by tile
	// coordinate modulo its size.
	amplitudes [][]float64

	mu     sync.RWMutex
	chunks map[tile.ID]*chunk.Chunk

	// genMu serializes generation so a tile always sees every neighbour
	// that finished before it started.
	genMu sync.Mutex
}

// New creates a World from cfg.
func New(cfg *config.Config, log *slog.Logger) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	wrap, err := cfg.WrapMode()
	if err != nil {
		return nil, err
	}

	size := cfg.AmplitudeGridSize
	field, err := noise.New(noise.Params{
		Width:  size,
		Height: size,
		Bias:   cfg.AmplitudeBias,
		Wrap:   wrap,
	}, rng.New(cfg.Seed))
	if err != nil {
		return nil, fmt.Errorf("build amplitude field: %w", err)
	}

	return &World{
		cfg:        cfg,
		log:        log,
		wrap:       wrap,
		amplitudes: field.Scaled(cfg.AmplitudeMin, cfg.AmplitudeMax),
		chunks:     make(map[tile.ID]*chunk.Chunk),
	}, nil
}

// Config returns the configuration the world was built with.
func (w *World) Config() *config.Config {
	return w.cfg
}

// AmplitudeAt returns the amplitude seed of the tile at c.
func (w *World) AmplitudeAt(c tile.Coord) float64 {
	size := int64(len(w.amplitudes))
	a := w.amplitudes[mod(c.X, size)][mod(c.Z, size)]
	return math.Max(a, minAmplitude)
}

// Chunk returns the cached chunk with the given id, if it was generated.
func (w *World) Chunk(id tile.ID) (*chunk.Chunk, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	c, ok := w.chunks[id]
	return c, ok
}

// Len returns the number of generated chunks.
func (w *World) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.chunks)
}

// GetOrGenerate returns the chunk at c, generating and caching it if needed.
func (w *World) GetOrGenerate(c tile.Coord) (*chunk.Chunk, error) {
	id := tile.IDFromCoord(c)
	if ch, ok := w.Chunk(id); ok {
		return ch, nil
	}

	w.genMu.Lock()
	defer w.genMu.Unlock()

	// Double-check after acquiring the generation lock.
	if ch, ok := w.Chunk(id); ok {
		return ch, nil
	}

	ch, err := w.generate(c, id)
	if err != nil {
		return nil, fmt.Errorf("generate tile %v: %w", c, err)
	}

	w.mu.Lock()
	w.chunks[id] = ch
	w.mu.Unlock()

	w.log.Debug("chunk generated", "id", id, "coord", c.String(), "amplitude", ch.Amplitude())
	return ch, nil
}

// generate builds one tile, stitched to whichever neighbours already exist.
// Must be called with genMu held.
func (w *World) generate(c tile.Coord, id tile.ID) (*chunk.Chunk, error) {
	relative, absolute := w.neighbourEdges(c)

	field, err := noise.New(noise.Params{
		Width:  w.cfg.Resolution,
		Height: w.cfg.Resolution,
		Bias:   w.cfg.ChunkBias,
		Edges:  relative,
		Wrap:   w.wrap,
	}, rng.New(rng.TileSeed(w.cfg.Seed, int64(id))))
	if err != nil {
		return nil, err
	}

	return chunk.New(chunk.Params{
		Coord:       c,
		SideLength:  w.cfg.TileSize,
		Resolution:  w.cfg.Resolution,
		Noise:       field.ScaledWithBorders(0, 1, relative),
		HeightScale: w.cfg.HeightScale,
		Amplitude:   w.AmplitudeAt(c),
		Edges:       absolute,
	})
}

// neighbourEdges collects, for every existing neighbour, the border it shares
// with c, both as noise values and as elevations.
func (w *World) neighbourEdges(c tile.Coord) (relative, absolute tile.Edges) {
	for _, s := range tile.Sides {
		n, ok := w.Chunk(tile.IDFromCoord(c.Neighbor(s)))
		if !ok {
			continue
		}
		relative.Set(s, n.EdgeHeights(s.Opposite(), true))
		absolute.Set(s, n.EdgeHeights(s.Opposite(), false))
	}
	return relative, absolute
}

// HeightAt returns the terrain elevation at world (x, z), generating the tile if needed.
func (w *World) HeightAt(x, z float64) (float64, error) {
	c, err := w.GetOrGenerate(tile.ContainingPoint(x, z, w.cfg.TileSize))
	if err != nil {
		return 0, err
	}
	return c.HeightAt(mgl64.Vec3{x, 0, z})
}

// PreGenerateRadius generates every tile within radius of center, nearest
// rings first, and returns how many tiles that covers.
func (w *World) PreGenerateRadius(center tile.Coord, radius int) (int, error) {
	coords := tile.WithinRadius(center, int64(radius))
	for _, c := range coords {
		if _, err := w.GetOrGenerate(c); err != nil {
			return 0, err
		}
	}
	return len(coords), nil
}

// Surface classifies the tile at c, generating it if needed.
func (w *World) Surface(c tile.Coord) (surface.Map, error) {
	ch, err := w.GetOrGenerate(c)
	if err != nil {
		return surface.Map{}, err
	}
	return surface.Classify(ch, w.cfg.Bands, w.cfg.WaterLevel), nil
}

func mod(a, m int64) int64 {
	r := a % m
	if r < 0 {
		r += m
	}
	return r
}
