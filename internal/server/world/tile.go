package world

import (
	"github.com/OCharnyshevich/heightfield/internal/terrain/surface"
	"github.com/OCharnyshevich/heightfield/internal/terrain/tile"
)

// TileView is the serializable form of a generated tile.
type TileView struct {
	ID         int64       `json:"id"`
	X          int64       `json:"x"`
	Z          int64       `json:"z"`
	Center     [3]float64  `json:"center"`
	SideLength float64     `json:"side_length"`
	Amplitude  float64     `json:"amplitude"`
	Heights    [][]float64 `json:"heights"` // [i][j], i along x
	Kinds      []string    `json:"kinds"`   // one row of glyphs per i
	Water      float64     `json:"water"`   // share of cells under water
}

// EncodeTile returns the view of the tile at c, generating it if needed.
func (w *World) EncodeTile(c tile.Coord) (TileView, error) {
	ch, err := w.GetOrGenerate(c)
	if err != nil {
		return TileView{}, err
	}
	m := surface.Classify(ch, w.cfg.Bands, w.cfg.WaterLevel)

	n := ch.Resolution()
	v := TileView{
		ID:         int64(ch.ID()),
		X:          c.X,
		Z:          c.Z,
		Center:     ch.Center(),
		SideLength: ch.SideLength(),
		Amplitude:  ch.Amplitude(),
		Heights:    make([][]float64, n),
		Kinds:      make([]string, len(m.Kinds)),
		Water:      m.WaterFraction(),
	}
	for i := 0; i < n; i++ {
		v.Heights[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			v.Heights[i][j] = ch.Point(i, j).Y()
		}
	}
	for i, col := range m.Kinds {
		row := make([]byte, len(col))
		for j, k := range col {
			if m.Water[i][j] {
				row[j] = '~'
				continue
			}
			row[j] = k.Glyph()
		}
		v.Kinds[i] = string(row)
	}
	return v, nil
}
