package random

import (
	"math/rand/v2"
	"sync"
)

// Source is a math/rand generator safe for concurrent use. Tests seed it
// with NewSeeded to get reproducible picks.
type Source struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func New() *Source {
	return &Source{rnd: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))}
}

func NewSeeded(seed uint64) *Source {
	return &Source{rnd: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (s *Source) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rnd.Float64()
}

// IntN returns a value in [0, n).
func (s *Source) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rnd.IntN(n)
}

// IntRange returns a value in [lo, hi].
func (s *Source) IntRange(lo, hi int) int {
	return lo + s.IntN(hi-lo+1)
}

func (s *Source) Perm(n int) []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rnd.Perm(n)
}
