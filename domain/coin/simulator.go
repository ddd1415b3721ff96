package coin

import (
	"math/rand"
)

// Generate runs `count` independent Bernoulli trials against the supplied
// random stream and returns the ordered sequence of outcomes. Each draw is
// Heads with the given probability and Tails otherwise. The stream is an
// explicit dependency so callers can seed it for deterministic tests.
func Generate(rng *rand.Rand, count, maxFlips int, probability float64) (TrialSequence, error) {
	if err := ValidateParams(count, maxFlips, probability); err != nil {
		return nil, err
	}

	trials := make(TrialSequence, count)
	for i := range trials {
		if rng.Float64() < probability {
			trials[i] = Heads
		} else {
			trials[i] = Tails
		}
	}
	return trials, nil
}
