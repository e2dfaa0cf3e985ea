package pipeline

import (
	"context"
	"time"

	"TrendSentinel/internal/insight"
	"TrendSentinel/internal/keyword"
	"TrendSentinel/internal/metrics"
	"TrendSentinel/internal/model"
	"TrendSentinel/internal/provider"
	"TrendSentinel/internal/signal"
	"TrendSentinel/internal/timewindow"
)

// Pipeline runs the trend analysis stages end to end. It holds no state
// across invocations; aside from the clock, each call is a pure function
// of its input text, and every external failure is absorbed by the stage
// that made the call.
type Pipeline struct {
	Extractor *keyword.Extractor
	Provider  *provider.Provider
	Insight   *insight.Synthesizer
	Now       func() time.Time
}

func New(ext *keyword.Extractor, prov *provider.Provider, ins *insight.Synthesizer) *Pipeline {
	return &Pipeline{
		Extractor: ext,
		Provider:  prov,
		Insight:   ins,
		Now:       time.Now,
	}
}

// Analyze converts a free-text request into a complete AnalysisResult.
// The only error it can return is keyword.ErrNoKeyword; every other
// degraded path still yields a well-formed result.
func (p *Pipeline) Analyze(ctx context.Context, text string) (*model.AnalysisResult, error) {
	kw, err := p.Extractor.Extract(ctx, text, true)
	if err != nil {
		return nil, err
	}
	return p.AnalyzeKeyword(ctx, kw, text), nil
}

// AnalyzeKeyword runs the pipeline for an already-known keyword. The
// window is still resolved from windowText (the scheduler passes "" for
// the default window).
func (p *Pipeline) AnalyzeKeyword(ctx context.Context, kw, windowText string) *model.AnalysisResult {
	window := timewindow.Resolve(windowText, p.Now())

	bundles := p.Provider.Fetch(ctx, []string{kw}, window)
	bundle := bundles[0]

	stats := metrics.Compute(bundle.Points)
	sig, confidence := signal.Classify(stats, bundle.Source)
	narrative := p.Insight.Synthesize(ctx, kw, stats, window)

	return &model.AnalysisResult{
		Keyword:    kw,
		Window:     window,
		Source:     bundle.Source,
		Stats:      stats,
		Signal:     sig,
		Confidence: confidence,
		Insight:    narrative,
	}
}
