// Package random provides the sampling primitives used by the schooling and
// idle drift systems. Every sampler draws from an explicit Source so that each
// agent can own an independent, reproducible stream.
package random

import (
	"encoding/binary"
	"math/rand/v2"

	"github.com/cespare/xxhash/v2"
)

// Source produces uniform reals in [0, 1).
// *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	Float64() float64
}

// NewStream returns a generator dedicated to one stream (usually one agent)
// of a seeded run. The stream key is mixed through xxhash so that adjacent
// keys start from unrelated PCG states.
func NewStream(seed, stream uint64) *rand.Rand {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[:8], seed)
	binary.LittleEndian.PutUint64(buf[8:], stream)
	return rand.New(rand.NewPCG(seed, xxhash.Sum64(buf[:])))
}
