// Package rng provides a small reproducible random source for terrain synthesis.
package rng

import "math/bits"

// Default linear-congruential constants.
const (
	DefaultModulus    = 65536
	DefaultAdditive   = 6561
	DefaultMultiplier = 17
)

// Params are the constants of the recurrence state = (state*Multiplier + Additive) mod Modulus.
type Params struct {
	Modulus    int64
	Additive   int64
	Multiplier int64
}

// DefaultParams returns the stock recurrence constants.
func DefaultParams() Params {
	return Params{
		Modulus:    DefaultModulus,
		Additive:   DefaultAdditive,
		Multiplier: DefaultMultiplier,
	}
}

// Source is a linear-congruential generator. A Source is not safe for concurrent
// use; give each independent stream its own.
type Source struct {
	p     Params
	state int64
}

// New creates a Source with the default constants, starting from seed.
func New(seed int64) *Source {
	return NewWithParams(seed, DefaultParams())
}

// NewWithParams creates a Source with custom constants. A non-positive modulus
// falls back to the default constants.
func NewWithParams(seed int64, p Params) *Source {
	if p.Modulus <= 0 {
		p = DefaultParams()
	}
	return &Source{p: p, state: mod(seed, p.Modulus)}
}

// Next returns a value in [0, 1) and advances the state.
func (s *Source) Next() float64 {
	v := float64(s.state) / float64(s.p.Modulus)
	s.state = step(s.state, s.p)
	return v
}

// step computes (state*Multiplier + Additive) mod Modulus in 128 bits so large
// constants never overflow. state must already lie in [0, Modulus).
func step(state int64, p Params) int64 {
	m := uint64(p.Modulus)
	a := uint64(mod(p.Multiplier, p.Modulus))
	c := uint64(mod(p.Additive, p.Modulus))
	hi, lo := bits.Mul64(uint64(state), a)
	lo, carry := bits.Add64(lo, c, 0)
	_, r := bits.Div64(hi+carry, lo, m)
	return int64(r)
}

// State returns the value the next call to Next will be derived from.
func (s *Source) State() int64 {
	return s.state
}

// Params returns the recurrence constants in use.
func (s *Source) Params() Params {
	return s.p
}

// TileSeed derives a per-tile seed from a world seed and a tile id so every tile
// draws from its own reproducible stream regardless of generation order.
func TileSeed(worldSeed, id int64) int64 {
	h := uint64(worldSeed) ^ uint64(id)*0x9e3779b97f4a7c15
	h ^= h >> 33
	h *= 0xff51afd7ed558ccd
	h ^= h >> 33
	h *= 0xc4ceb9fe1a85ec53
	h ^= h >> 33
	return int64(h >> 1)
}

func mod(a, m int64) int64 {
	r := a % m
	if r < 0 {
		r += m
	}
	return r
}
