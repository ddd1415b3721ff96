package app

import (
	"context"
	"time"

	"github.com/google/uuid"

	"coinlab/domain/coin"
	"coinlab/domain/stats"
	"coinlab/internal"
	"coinlab/internal/analysis"
	"coinlab/internal/config"
	"coinlab/internal/errors"
	"coinlab/ports"
)

// FlipService orchestrates one simulation cycle: validate parameters,
// generate trials, summarize, run the fairness test, and persist the
// snapshot for the session. Each call is independent given its inputs; the
// only state lives in the session store it is handed.
type FlipService struct {
	rng    ports.RNGPort
	store  ports.SessionStorePort
	sim    config.SimulationConfig
	logger *internal.Logger
}

// NewFlipService creates a new flip service
func NewFlipService(rng ports.RNGPort, store ports.SessionStorePort, sim config.SimulationConfig, logger *internal.Logger) *FlipService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &FlipService{
		rng:    rng,
		store:  store,
		sim:    sim,
		logger: logger,
	}
}

// FlipResult bundles everything one simulation produces for display
type FlipResult struct {
	Trials      coin.TrialSequence         `json:"trials"`
	Summary     coin.Summary               `json:"summary"`
	Test        *stats.TestResult          `json:"test"`
	Series      []analysis.CumulativePoint `json:"series"`
	Profile     analysis.Profile           `json:"profile"`
	Probability float64                    `json:"probability"`
}

// Flip runs count Bernoulli trials with the given heads probability,
// computes statistics and the fairness test, and stores the snapshot for
// the session.
func (s *FlipService) Flip(ctx context.Context, sessionID uuid.UUID, count int, probability float64) (*FlipResult, error) {
	trials, err := coin.Generate(s.rng.Stream("flip"), count, s.sim.MaxFlips, probability)
	if err != nil {
		return nil, err
	}

	summary := coin.Summarize(trials)

	// At least one trial exists here, so the test is always defined.
	test, err := stats.BinomialTestWithLevels(summary.Heads, summary.Total, 0.5, s.sim.SignificanceLevel, s.sim.ConfidenceLevel)
	if err != nil {
		return nil, errors.Wrap(err, "binomial test failed")
	}

	result := &FlipResult{
		Trials:      trials,
		Summary:     summary,
		Test:        test,
		Series:      analysis.CumulativeSeries(trials),
		Profile:     analysis.ProfileSequence(trials),
		Probability: probability,
	}

	if err := s.saveSnapshot(ctx, sessionID, result); err != nil {
		return nil, err
	}

	s.logger.Info("session %s: %d flips (p=%.2f) heads=%d tails=%d p-value=%.4f fair=%t",
		sessionID, summary.Total, probability, summary.Heads, summary.Tails, test.PValue, test.IsFair)

	return result, nil
}

// Last returns the stored snapshot for a session, or nil when none exists
func (s *FlipService) Last(ctx context.Context, sessionID uuid.UUID) (*ports.SessionSnapshot, error) {
	return s.store.Get(ctx, sessionID)
}

// Clear drops the stored snapshot for a session
func (s *FlipService) Clear(ctx context.Context, sessionID uuid.UUID) error {
	if err := s.store.Delete(ctx, sessionID); err != nil {
		return err
	}
	s.logger.Debug("session %s: results cleared", sessionID)
	return nil
}

// Test runs the fairness test for externally supplied counts using the
// configured levels.
func (s *FlipService) Test(heads, total int) (*stats.TestResult, error) {
	return stats.BinomialTestWithLevels(heads, total, 0.5, s.sim.SignificanceLevel, s.sim.ConfidenceLevel)
}

// MaxFlips exposes the configured per-simulation cap for edge validation
func (s *FlipService) MaxFlips() int {
	return s.sim.MaxFlips
}

func (s *FlipService) saveSnapshot(ctx context.Context, sessionID uuid.UUID, result *FlipResult) error {
	version := 1
	if prev, err := s.store.Get(ctx, sessionID); err != nil {
		return err
	} else if prev != nil {
		version = prev.Version + 1
	}

	return s.store.Save(ctx, &ports.SessionSnapshot{
		SessionID:   sessionID,
		Trials:      result.Trials,
		Summary:     result.Summary,
		Test:        result.Test,
		Probability: result.Probability,
		Version:     version,
		LastUpdated: time.Now(),
	})
}
