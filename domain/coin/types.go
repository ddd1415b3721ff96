package coin

import (
	"coinlab/internal/errors"
)

// ============================================================================
// STABLE PRIMITIVES (Canonical, never change)
// ============================================================================

// Outcome is the result of a single Bernoulli trial
type Outcome string

const (
	Heads Outcome = "heads"
	Tails Outcome = "tails"
)

// Valid reports whether the outcome is one of the two canonical values
func (o Outcome) Valid() bool {
	return o == Heads || o == Tails
}

// Label returns the display label for the outcome
func (o Outcome) Label() string {
	switch o {
	case Heads:
		return "Heads"
	case Tails:
		return "Tails"
	default:
		return string(o)
	}
}

// TrialSequence is an ordered, immutable run of trial outcomes.
// It is produced atomically by one simulation call; callers hold it for a
// display cycle and replace it wholesale on the next simulation.
type TrialSequence []Outcome

// Len returns the number of trials in the sequence
func (t TrialSequence) Len() int {
	return len(t)
}

// Clone returns an independent copy of the sequence
func (t TrialSequence) Clone() TrialSequence {
	if t == nil {
		return nil
	}
	out := make(TrialSequence, len(t))
	copy(out, t)
	return out
}

// Summary is a derived, non-owning view over a TrialSequence
// INVARIANTS:
// - Heads + Tails == Total
// - 0 <= HeadsPct, TailsPct <= 100; they sum to ~100 when Total > 0
type Summary struct {
	Total    int     `json:"total"`
	Heads    int     `json:"heads"`
	Tails    int     `json:"tails"`
	HeadsPct float64 `json:"heads_pct"`
	TailsPct float64 `json:"tails_pct"`
}

// Summarize computes counts and percentages for a trial sequence.
// An empty sequence yields a zeroed summary rather than an error.
func Summarize(trials TrialSequence) Summary {
	summary := Summary{Total: len(trials)}
	for _, outcome := range trials {
		if outcome == Heads {
			summary.Heads++
		} else {
			summary.Tails++
		}
	}
	if summary.Total > 0 {
		summary.HeadsPct = float64(summary.Heads) / float64(summary.Total) * 100
		summary.TailsPct = float64(summary.Tails) / float64(summary.Total) * 100
	}
	return summary
}

// Difference returns the absolute gap between heads and tails counts
func (s Summary) Difference() int {
	diff := s.Heads - s.Tails
	if diff < 0 {
		diff = -diff
	}
	return diff
}

// ============================================================================
// PARAMETER VALIDATION
// ============================================================================

// MaxFlipsDefault caps a single simulation unless overridden by configuration
const MaxFlipsDefault = 1000

// ValidateParams checks simulation parameters against the caller-enforced
// bounds. Violations fail with an INVALID_PARAMETER error; no partial
// sequence is ever produced.
func ValidateParams(count, maxFlips int, probability float64) error {
	if maxFlips < 1 {
		maxFlips = MaxFlipsDefault
	}
	if count < 1 || count > maxFlips {
		return errors.InvalidParameterf("flip count must be between 1 and %d, got %d", maxFlips, count)
	}
	if probability < 0 || probability > 1 {
		return errors.InvalidParameterf("heads probability must be in [0, 1], got %g", probability)
	}
	return nil
}
