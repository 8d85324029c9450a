// Package random provides the injectable uniform source that every question
// generator and the session retry draw consume.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
	"sync"
)

// Source yields uniformly distributed values in [0, 1).
type Source interface {
	Float64() float64
}

// cryptoSource reads from the operating system CSPRNG. Unpredictable,
// but not a security boundary.
type cryptoSource struct{}

// Default returns the source used by interactive sessions.
func Default() Source {
	return cryptoSource{}
}

func (cryptoSource) Float64() float64 {
	var buf [8]byte
	if _, err := crand.Read(buf[:]); err != nil {
		return rand.Float64()
	}
	// 53 random bits give every representable float64 in [0,1) on the 2^-53 grid.
	return float64(binary.LittleEndian.Uint64(buf[:])>>11) / (1 << 53)
}

// Seeded is a reproducible source backed by a PCG generator.
type Seeded struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSeeded creates a Seeded source from seed.
func NewSeeded(seed uint64) *Seeded {
	return &Seeded{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (s *Seeded) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64()
}

// Sequence replays a fixed list of values, wrapping around at the end.
// Values outside [0,1) are clamped so callers can always index with them.
type Sequence struct {
	vals []float64
	pos  int
}

// NewSequence creates a Sequence. An empty list always yields 0.
func NewSequence(vals ...float64) *Sequence {
	return &Sequence{vals: vals}
}

func (s *Sequence) Float64() float64 {
	if len(s.vals) == 0 {
		return 0
	}
	v := s.vals[s.pos%len(s.vals)]
	s.pos++
	switch {
	case v < 0:
		return 0
	case v >= 1:
		return 1 - 1e-12
	}
	return v
}

// Drawn returns how many values have been consumed.
func (s *Sequence) Drawn() int {
	return s.pos
}

// IntN returns floor(src*n), always within [0, n). n must be positive.
func IntN(src Source, n int) int {
	i := int(src.Float64() * float64(n))
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}

// Between returns an integer uniformly drawn from [lo, hi].
func Between(src Source, lo, hi int) int {
	return lo + IntN(src, hi-lo+1)
}

// Pick returns a uniformly chosen element of items. items must be non-empty.
func Pick[T any](src Source, items []T) T {
	return items[IntN(src, len(items))]
}
