package game

import (
	mathrand "math/rand"
	"sync"
	"time"
)

// RNG is the entropy source the engine draws from. Tests inject a seeded
// source for deterministic replay; production wires NewLockedRNG.
type RNG interface {
	// IntN returns a uniform int in [0, n). n must be > 0.
	IntN(n int) int
	// Float64 returns a uniform float64 in [0.0, 1.0).
	Float64() float64
}

type lockedRNG struct {
	mu sync.Mutex
	r  *mathrand.Rand
}

// NewLockedRNG returns a time-seeded RNG safe for use across requests.
func NewLockedRNG() RNG {
	return NewSeededRNG(time.Now().UnixNano())
}

// NewSeededRNG returns a deterministic RNG for the given seed.
func NewSeededRNG(seed int64) RNG {
	return &lockedRNG{r: mathrand.New(mathrand.NewSource(seed))}
}

func (l *lockedRNG) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Intn(n)
}

func (l *lockedRNG) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Float64()
}

// uniform draws a continuous uniform in [lo, hi).
func uniform(r RNG, lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}

// between draws an integer uniform in [lo, hi] inclusive.
func between(r RNG, lo, hi int64) int64 {
	if hi <= lo {
		return lo
	}
	return lo + int64(r.IntN(int(hi-lo+1)))
}
