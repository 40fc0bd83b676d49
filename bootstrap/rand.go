package bootstrap

import (
	"math/rand/v2"
	"time"
)

// Rand is the random source the simulator draws from. Implementations
// must not be shared across concurrent simulation calls; each call owns
// its own source.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

// NewRand returns a seeded PCG source for reproducible runs.
func NewRand(seed uint64) Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewUnseeded returns a time-seeded source for production runs.
func NewUnseeded() Rand {
	now := uint64(time.Now().UnixNano())
	return rand.New(rand.NewPCG(now, now^0xda942042e4dd58b5))
}

// deriveSeed spreads a base seed across worker cells so concurrent cells
// never share generator state. splitmix64 finalizer.
func deriveSeed(base uint64, cell int) uint64 {
	z := base + uint64(cell+1)*0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}
