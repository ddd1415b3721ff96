package stats

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"coinlab/internal/errors"
)

// Default test levels. The fairness threshold is a fixed two-sided alpha;
// repeated interactive tests are intentionally treated as independent
// single-shot tests, not a sequential procedure.
const (
	DefaultAlpha           = 0.05
	DefaultConfidenceLevel = 0.95
)

// quantileTol absorbs accumulated floating error when scanning the CDF
const quantileTol = 1e-12

// TestResult holds the outcome of a two-sided exact binomial test
type TestResult struct {
	Heads     int     `json:"heads"`
	Total     int     `json:"total"`
	ExpectedP float64 `json:"expected_p"`

	PValue float64 `json:"p_value"`
	Alpha  float64 `json:"alpha"`
	IsFair bool    `json:"is_fair"`

	// Central confidence interval over head counts under the null
	// hypothesis, equal-tailed by cumulative-probability construction.
	CILow           int     `json:"ci_low"`
	CIHigh          int     `json:"ci_high"`
	ConfidenceLevel float64 `json:"confidence_level"`
}

// BinomialTest runs a two-sided exact binomial test with the default
// significance and confidence levels.
func BinomialTest(heads, total int, expectedP float64) (*TestResult, error) {
	return BinomialTestWithLevels(heads, total, expectedP, DefaultAlpha, DefaultConfidenceLevel)
}

// BinomialTestWithLevels runs a two-sided exact binomial test of the null
// hypothesis that heads occur with probability expectedP.
//
// The p-value is the probability, under Binomial(total, expectedP), of a
// result at least as extreme as the observed count in either direction:
// 2*CDF(heads) when heads is at or below the mean, 2*(1-CDF(heads-1))
// otherwise, clamped to 1.
func BinomialTestWithLevels(heads, total int, expectedP, alpha, confidenceLevel float64) (*TestResult, error) {
	if total == 0 {
		return nil, errors.UndefinedTest("binomial test is undefined for zero trials")
	}
	if total < 0 {
		return nil, errors.InvalidParameterf("total must be positive, got %d", total)
	}
	if heads < 0 || heads > total {
		return nil, errors.InvalidParameterf("heads must be in [0, %d], got %d", total, heads)
	}
	if expectedP < 0 || expectedP > 1 {
		return nil, errors.InvalidParameterf("expected probability must be in [0, 1], got %g", expectedP)
	}
	if alpha <= 0 || alpha >= 1 {
		return nil, errors.InvalidParameterf("alpha must be in (0, 1), got %g", alpha)
	}
	if confidenceLevel <= 0 || confidenceLevel >= 1 {
		return nil, errors.InvalidParameterf("confidence level must be in (0, 1), got %g", confidenceLevel)
	}

	dist := distuv.Binomial{N: float64(total), P: expectedP}

	var pValue float64
	if float64(heads) <= float64(total)*expectedP {
		pValue = 2 * dist.CDF(float64(heads))
	} else {
		pValue = 2 * (1 - dist.CDF(float64(heads-1)))
	}
	pValue = clampProbability(pValue)

	ciLow, ciHigh := confidenceInterval(dist, total, confidenceLevel)

	return &TestResult{
		Heads:           heads,
		Total:           total,
		ExpectedP:       expectedP,
		PValue:          pValue,
		Alpha:           alpha,
		IsFair:          pValue > alpha,
		CILow:           ciLow,
		CIHigh:          ciHigh,
		ConfidenceLevel: confidenceLevel,
	}, nil
}

// confidenceInterval computes the equal-tailed interval [lo, hi] of head
// counts: lo is the smallest k with CDF(k) >= tail and hi the smallest k
// with CDF(k) >= 1-tail, where tail = (1-level)/2. The interval carries at
// least `level` of the distribution's mass and contains the mean.
func confidenceInterval(dist distuv.Binomial, total int, level float64) (int, int) {
	tail := (1 - level) / 2

	lo, hi := 0, total
	foundLow := false
	cum := 0.0
	for k := 0; k <= total; k++ {
		cum += dist.Prob(float64(k))
		if !foundLow && cum >= tail-quantileTol {
			lo = k
			foundLow = true
		}
		if cum >= 1-tail-quantileTol {
			hi = k
			break
		}
	}
	return lo, hi
}

// clampProbability keeps a probability inside [0, 1] and maps any residual
// floating noise to a well-defined finite value.
func clampProbability(p float64) float64 {
	if math.IsNaN(p) {
		return 1
	}
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
