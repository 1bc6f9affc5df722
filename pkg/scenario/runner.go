package scenario

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/torplabs/torp/pkg/scoring"
)

// Result is the outcome of running one scenario through the engine and
// comparing it against the scenario's expectation.
type Result struct {
	Scenario       string                  `json:"scenario" yaml:"scenario"`
	Name           string                  `json:"name" yaml:"name"`
	RawGrade       scoring.Grade           `json:"raw_grade" yaml:"rawGrade"`
	FinalGrade     scoring.Grade           `json:"final_grade" yaml:"finalGrade"`
	Score          int                     `json:"score" yaml:"score"`
	Consistency    int                     `json:"consistency" yaml:"consistency"`
	Imbalance      bool                    `json:"imbalance" yaml:"imbalance"`
	CappingApplied bool                    `json:"capping_applied" yaml:"cappingApplied"`
	Flags          []string                `json:"flags,omitempty" yaml:"flags,omitempty"`
	Passed         bool                    `json:"passed" yaml:"passed"`
	Failures       []string                `json:"failures,omitempty" yaml:"failures,omitempty"`
	DurationMs     int64                   `json:"duration_ms" yaml:"durationMs"`
	Analysis       *scoring.AnalysisResult `json:"analysis,omitempty" yaml:"analysis,omitempty"`
}

// Run feeds one named scenario through the engine and evaluates its
// expectation.
func Run(e *scoring.Engine, name string) (*Result, error) {
	s, ok := Get(name)
	if !ok {
		return nil, fmt.Errorf("scenario not found: %q (known: %s)", name, strings.Join(List(), ", "))
	}

	start := time.Now()
	analysis, err := e.Analyze(s.Input)
	if err != nil {
		return nil, fmt.Errorf("scenario %s failed to score: %w", name, err)
	}

	res := &Result{
		Scenario:       name,
		Name:           s.Name,
		RawGrade:       analysis.Composite.RawGrade,
		FinalGrade:     analysis.Composite.FinalGrade,
		Score:          analysis.Composite.Score,
		Consistency:    analysis.Consistency.Score,
		Imbalance:      analysis.Consistency.Imbalance,
		CappingApplied: len(analysis.Composite.CappingReasons) > 0,
		Flags:          analysis.Consistency.Flags,
		DurationMs:     time.Since(start).Milliseconds(),
		Analysis:       analysis,
	}
	res.Failures = evaluate(s.Expect, analysis)
	res.Passed = len(res.Failures) == 0

	slog.Debug("scenario completed",
		"scenario", name,
		"grade", res.FinalGrade.String(),
		"flags", len(res.Flags),
		"passed", res.Passed)

	return res, nil
}

// RunAll runs every registered scenario, scoring them concurrently.
// Results come back in List() order.
func RunAll(ctx context.Context, e *scoring.Engine, workers int) ([]*Result, error) {
	names := List()
	results := make([]*Result, len(names))

	if workers < 1 {
		workers = 1
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, name := range names {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := Run(e, name)
			if err != nil {
				return err
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

func evaluate(expect Expectation, analysis *scoring.AnalysisResult) []string {
	var failures []string

	final := analysis.Composite.FinalGrade
	if final.Better(expect.BestGrade) {
		failures = append(failures, fmt.Sprintf(
			"grade %s better than expected best %s", final, expect.BestGrade))
	}
	if expect.WorstGrade.Better(final) {
		failures = append(failures, fmt.Sprintf(
			"grade %s worse than expected worst %s", final, expect.WorstGrade))
	}

	got := analysis.Consistency.Flags
	for _, f := range expect.Flags {
		if !analysis.Consistency.HasFlag(f) {
			failures = append(failures, fmt.Sprintf("expected flag %s not raised", f))
		}
	}
	if len(got) != len(expect.Flags) {
		failures = append(failures, fmt.Sprintf(
			"expected %d flags, got %d (%s)", len(expect.Flags), len(got), strings.Join(got, ", ")))
	}

	if expect.Imbalance != analysis.Consistency.Imbalance {
		failures = append(failures, fmt.Sprintf(
			"expected imbalance=%v, got %v", expect.Imbalance, analysis.Consistency.Imbalance))
	}

	capped := len(analysis.Composite.CappingReasons) > 0
	if expect.CappingApplied && !capped {
		failures = append(failures, "expected capping to apply, no reasons recorded")
	}
	if !expect.CappingApplied && capped {
		failures = append(failures, fmt.Sprintf(
			"unexpected capping: %s", strings.Join(analysis.Composite.CappingReasons, "; ")))
	}

	return failures
}
