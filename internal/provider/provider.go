package provider

import (
	"context"
	"log"

	"TrendSentinel/internal/model"
)

// MaxKeywordGroups is the statistics API's batch limit.
const MaxKeywordGroups = 5

// Provider wraps an optional live fetcher with the synthetic fallback so
// series acquisition degrades rather than fails: missing credentials,
// transport errors, malformed responses, and empty result sets all route
// to the deterministic generator.
type Provider struct {
	Fetcher Fetcher // nil when no credentials are configured
}

func NewProvider(fetcher Fetcher) *Provider {
	return &Provider{Fetcher: fetcher}
}

// Fetch returns exactly one bundle per input keyword (capped at
// MaxKeywordGroups) and never fails.
func (p *Provider) Fetch(ctx context.Context, keywords []string, window model.TimeWindow) []model.SeriesBundle {
	if len(keywords) > MaxKeywordGroups {
		keywords = keywords[:MaxKeywordGroups]
	}

	var live []model.SeriesBundle
	if p.Fetcher != nil {
		fetched, err := p.Fetcher.FetchSeries(ctx, keywords, window)
		if err != nil {
			log.Printf("[WARN] live series fetch failed, falling back to synthetic: %v", err)
		} else {
			live = fetched
		}
	}

	byGroup := make(map[string]model.SeriesBundle, len(live))
	for _, b := range live {
		byGroup[b.KeywordGroup] = b
	}

	bundles := make([]model.SeriesBundle, 0, len(keywords))
	for i, kw := range keywords {
		if b, ok := byGroup[kw]; ok && len(b.Points) > 0 {
			bundles = append(bundles, b)
			continue
		}
		// Positional match covers providers that rename groups.
		if i < len(live) && len(live[i].Points) > 0 {
			b := live[i]
			b.KeywordGroup = kw
			bundles = append(bundles, b)
			continue
		}
		bundles = append(bundles, GenerateSynthetic(kw, window))
	}
	return bundles
}
