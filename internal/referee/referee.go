// Package referee orchestrates the provider fallback chain: each provider is
// tried in priority order and its output pushed through extraction and
// validation; the first valid comparison wins.
package referee

import (
	"context"
	"errors"

	"github.com/spigell/career-referee/internal/ai"
	"github.com/spigell/career-referee/internal/career"
	"github.com/spigell/career-referee/internal/logger"

	"go.uber.org/zap"
)

// Attempt outcomes, recorded per provider for fallback diagnostics.
const (
	outcomeSuccess           = "success"
	outcomeProviderFailure   = "provider-failure"
	outcomeParseFailure      = "parse-failure"
	outcomeValidationFailure = "validation-failure"
)

// Referee runs the sequential fallback chain. Providers are ordered by cost
// preference (local first, hosted second, mock last); the order is fixed at
// construction.
type Referee struct {
	providers []ai.Provider
	logger    *zap.Logger
}

// New creates a Referee over the given provider chain. The caller is expected
// to terminate the chain with a provider that cannot fail, such as the mock
// provider.
func New(providers []ai.Provider, log *zap.Logger) *Referee {
	return &Referee{
		providers: providers,
		logger:    logger.WithFields(log),
	}
}

// Compare runs one comparison. The inputs are trimmed, distinct career
// strings validated by the caller; the referee does not re-check them.
//
// With a mock-terminated chain the returned error is always nil. A non-nil
// error means every provider failed, including the guaranteed one — a code
// defect the caller should abort on rather than degrade silently.
func (r *Referee) Compare(ctx context.Context, careerA, careerB, userName string) (*career.ComparisonResult, error) {
	req := ai.Request{
		CareerA:  careerA,
		CareerB:  careerB,
		UserName: userName,
	}

	for _, provider := range r.providers {
		raw, err := provider.Generate(ctx, req)
		if err != nil {
			r.logAttempt(provider.Name(), outcomeProviderFailure, err)
			continue
		}

		parsed, err := ExtractJSON(raw)
		if err != nil {
			r.logAttempt(provider.Name(), outcomeParseFailure, err)
			continue
		}

		result, err := ValidateComparison(parsed)
		if err != nil {
			r.logAttempt(provider.Name(), outcomeValidationFailure, err)
			continue
		}

		r.logger.Info("comparison ready", logger.AttemptFields(provider.Name(), outcomeSuccess)...)

		return result, nil
	}

	return nil, errors.New("every provider failed to produce a valid comparison; the chain must end with an infallible provider")
}

func (r *Referee) logAttempt(provider, outcome string, err error) {
	fields := append(logger.AttemptFields(provider, outcome), zap.Error(err))
	r.logger.Warn("provider attempt failed, falling back", fields...)
}
