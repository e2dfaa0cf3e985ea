package provider

import (
	"context"

	"TrendSentinel/internal/model"
)

// Fetcher retrieves interest-over-time series from an external
// statistics API.
type Fetcher interface {
	FetchSeries(ctx context.Context, keywords []string, window model.TimeWindow) ([]model.SeriesBundle, error)
	Name() string
}
