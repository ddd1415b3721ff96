package rng

import (
	"crypto/rand"
	"encoding/binary"
	"hash/fnv"
	mathrand "math/rand"
	"time"
)

// Adapter implements ports.RNGPort on math/rand streams. Each call returns
// an independent generator, so concurrent callers never share a source.
type Adapter struct{}

// NewAdapter creates a new RNG adapter
func NewAdapter() *Adapter {
	return &Adapter{}
}

// Stream returns a random stream for a named operation, seeded from process
// entropy. Falls back to the clock if the entropy read fails.
func (a *Adapter) Stream(name string) *mathrand.Rand {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return a.SeededStream(name, time.Now().UnixNano())
	}
	seed := int64(binary.LittleEndian.Uint64(buf[:]))
	return a.SeededStream(name, seed)
}

// SeededStream returns a deterministic stream for (name, seed). The name is
// folded into the seed so distinct operations sharing a base seed do not
// replay each other's draws.
func (a *Adapter) SeededStream(name string, seed int64) *mathrand.Rand {
	h := fnv.New64a()
	h.Write([]byte(name))
	mixed := seed ^ int64(h.Sum64())
	return mathrand.New(mathrand.NewSource(mixed))
}
