package scoring

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Engine runs the full analysis pipeline. It holds no state between
// invocations: repeated calls with identical input produce identical
// scores, grades, and flags (ID and timestamp excepted).
type Engine struct {
	market MarketReference
	now    func() time.Time
}

// NewEngine creates an engine against the given market reference.
func NewEngine(market MarketReference) *Engine {
	return &Engine{
		market: market,
		now:    time.Now,
	}
}

// Analyze validates the input, runs the four scorers, composes and maps
// the grade, applies trust capping, and validates structural consistency
// against the capped grade.
func (e *Engine) Analyze(input ScoringInput) (*AnalysisResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	enterprise := EnterpriseReliabilityScore(input.Enterprise)
	pricing := PricingAnomalyScore(input.Pricing, input.Lots, e.market)
	quality := QualityCompletenessScore(input.Quality)
	compliance := AggregateObligations(input.Obligations)

	composite := ComposeGlobalScore(enterprise, pricing, quality, compliance)
	composite = ApplyTrustCapping(composite, compliance, pricing)

	consistency := ValidateConsistency(
		enterprise, pricing, quality, compliance,
		composite.FinalGrade, input.HasCriticalLot())

	return &AnalysisResult{
		ID:          uuid.NewString(),
		CreatedAt:   e.now().UTC(),
		Input:       input,
		Enterprise:  enterprise,
		Pricing:     pricing,
		Quality:     quality,
		Compliance:  compliance,
		Composite:   composite,
		Consistency: consistency,
	}, nil
}

// AnalyzeBatch evaluates independent analyses concurrently with at most
// workers goroutines. Results keep the order of the inputs. The first
// validation failure cancels the batch.
func (e *Engine) AnalyzeBatch(ctx context.Context, inputs []ScoringInput, workers int) ([]*AnalysisResult, error) {
	if workers < 1 {
		workers = 1
	}

	results := make([]*AnalysisResult, len(inputs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, input := range inputs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := e.Analyze(input)
			if err != nil {
				return fmt.Errorf("input %d (%s): %w", i, input.QuoteRef, err)
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
