package ports

import (
	"math/rand"
)

// RNGPort provides the simulator's source of randomness. The process-wide
// generator is never used directly; streams are handed in explicitly so a
// seeded or fake source can stand in during tests.
type RNGPort interface {
	// Stream returns a random stream for a named operation, seeded from
	// process entropy.
	Stream(name string) *rand.Rand

	// SeededStream returns a deterministic random stream for a named
	// operation. Identical (name, seed) pairs yield identical draws.
	SeededStream(name string, seed int64) *rand.Rand
}
