package surface

import (
	"testing"

	"github.com/OCharnyshevich/heightfield/internal/terrain/chunk"
)

func TestBandsClassify(t *testing.T) {
	b := DefaultBands()
	cases := []struct {
		y    float64
		want Kind
	}{
		{400, Snow},
		{350, Snow},
		{349.9, Rock},
		{250, Rock},
		{100, Grass},
		{25, Grass},
		{24, Sand},
		{-10, Sand},
	}
	for _, tc := range cases {
		if got := b.Classify(tc.y); got != tc.want {
			t.Errorf("Classify(%v) = %v, want %v", tc.y, got, tc.want)
		}
	}
}

func TestClassifyChunk(t *testing.T) {
	// Elevation rises with i: column i sits at 100*i.
	const n = 5
	grid := make([][]float64, n)
	for i := range grid {
		grid[i] = make([]float64, n)
		for j := range grid[i] {
			grid[i][j] = float64(i) - 1
		}
	}
	c, err := chunk.New(chunk.Params{SideLength: 40, Resolution: n, Noise: grid, HeightScale: 100, Amplitude: 1})
	if err != nil {
		t.Fatal(err)
	}

	m := Classify(c, DefaultBands(), 50)
	if len(m.Kinds) != n-1 || len(m.Kinds[0]) != n-1 {
		t.Fatalf("map is %dx%d, want %dx%d", len(m.Kinds), len(m.Kinds[0]), n-1, n-1)
	}
	wantKinds := []Kind{Sand, Grass, Grass, Rock}
	for i, want := range wantKinds {
		for j := 0; j < n-1; j++ {
			if m.Kinds[i][j] != want {
				t.Errorf("Kinds[%d][%d] = %v, want %v", i, j, m.Kinds[i][j], want)
			}
		}
	}
	// Only column 0 touches elevation 0 < 50.
	for i := 0; i < n-1; i++ {
		for j := 0; j < n-1; j++ {
			if want := i == 0; m.Water[i][j] != want {
				t.Errorf("Water[%d][%d] = %v, want %v", i, j, m.Water[i][j], want)
			}
		}
	}
	if got := m.WaterFraction(); got != 0.25 {
		t.Errorf("WaterFraction() = %v, want 0.25", got)
	}
}

func TestKindGlyph(t *testing.T) {
	seen := make(map[byte]bool)
	for _, k := range []Kind{Sand, Grass, Rock, Snow} {
		if seen[k.Glyph()] {
			t.Errorf("glyph %q reused", k.Glyph())
		}
		seen[k.Glyph()] = true
	}
}

func TestEmptyMapWaterFraction(t *testing.T) {
	if got := (Map{}).WaterFraction(); got != 0 {
		t.Errorf("WaterFraction() = %v, want 0", got)
	}
}
