package tile

// Edges carries one optional height sequence per side. A nil or wrongly sized
// sequence means the side is left unconstrained.
type Edges struct {
	Top    []float64
	Bottom []float64
	Left   []float64
	Right  []float64
}

// Get returns the sequence for side s.
func (e Edges) Get(s Side) []float64 {
	switch s {
	case Top:
		return e.Top
	case Bottom:
		return e.Bottom
	case Left:
		return e.Left
	default:
		return e.Right
	}
}

// Set stores v as the sequence for side s.
func (e *Edges) Set(s Side, v []float64) {
	switch s {
	case Top:
		e.Top = v
	case Bottom:
		e.Bottom = v
	case Left:
		e.Left = v
	default:
		e.Right = v
	}
}

// Map returns a copy of e with fn applied to every value.
func (e Edges) Map(fn func(float64) float64) Edges {
	var out Edges
	for _, s := range Sides {
		src := e.Get(s)
		if src == nil {
			continue
		}
		dst := make([]float64, len(src))
		for i, v := range src {
			dst[i] = fn(v)
		}
		out.Set(s, dst)
	}
	return out
}

// Span returns the grid length a side of a width×height grid runs along:
// Top and Bottom span the width, Left and Right the height.
func (s Side) Span(width, height int) int {
	if s == Top || s == Bottom {
		return width
	}
	return height
}

// Cell returns the grid index of the k-th sample along side s of a
// width×height grid indexed [x][z].
func (s Side) Cell(k, width, height int) (x, z int) {
	switch s {
	case Top:
		return k, 0
	case Bottom:
		return k, height - 1
	case Left:
		return 0, k
	default:
		return width - 1, k
	}
}
