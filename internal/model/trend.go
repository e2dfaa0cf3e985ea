package model

import "time"

// Granularity is the sampling unit used to bucket a time series.
type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityWeek  Granularity = "week"
	GranularityMonth Granularity = "month"
)

// TimeWindow is an absolute date range resolved from relative-time phrases.
type TimeWindow struct {
	StartDate   time.Time   `json:"start_date"`
	EndDate     time.Time   `json:"end_date"`
	Granularity Granularity `json:"granularity"`
	SpanDays    int         `json:"span_days"`
}

// SeriesSource marks whether a series came from the live statistics API
// or from the deterministic synthetic generator.
type SeriesSource string

const (
	SourceLive      SeriesSource = "live"
	SourceSynthetic SeriesSource = "synthetic"
)

// SeriesPoint is a single interest-over-time observation. Date keeps the
// provider's original period string; unparseable dates keep input order.
type SeriesPoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// SeriesBundle is one keyword group's normalized series.
type SeriesBundle struct {
	KeywordGroup string        `json:"keyword_group"`
	Points       []SeriesPoint `json:"points"`
	Source       SeriesSource  `json:"source"`
}

// Momentum labels.
const (
	MomentumRising       = "상승"
	MomentumFalling      = "하락"
	MomentumFlat         = "보합"
	MomentumInsufficient = "데이터 부족"
)

// SeriesStats holds summary statistics derived from one normalized series.
// Numeric pointers are nil when the underlying quantity is undefined;
// when HasData is false every numeric field is nil.
type SeriesStats struct {
	HasData       bool         `json:"has_data"`
	DataPoints    int          `json:"data_points"`
	Average       *float64     `json:"average"`
	LatestValue   *float64     `json:"latest_value"`
	LatestDate    string       `json:"latest_date,omitempty"`
	FirstValue    *float64     `json:"first_value"`
	GrowthPct     *float64     `json:"growth_pct"`
	MomentumPct   *float64     `json:"momentum_pct"`
	MomentumLabel string       `json:"momentum_label"`
	Peak          *SeriesPoint `json:"peak"`
	Volatility    *float64     `json:"volatility"`
	SeriesTail    []SeriesPoint `json:"series_tail,omitempty"`
}

// Trend signal labels.
const (
	SignalStrongRise   = "급상승"
	SignalMildRise     = "완만한 상승"
	SignalFlat         = "보합"
	SignalMildFall     = "완만한 하락"
	SignalStrongFall   = "급하락"
	SignalInsufficient = "데이터 부족"
)

// Confidence tiers for a trend signal.
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
)

// AnalysisResult aggregates one full pipeline run. It is built once and
// never mutated after being returned to the caller.
type AnalysisResult struct {
	Keyword    string       `json:"keyword"`
	Window     TimeWindow   `json:"window"`
	Source     SeriesSource `json:"source"`
	Stats      SeriesStats  `json:"statistics"`
	Signal     string       `json:"signal"`
	Confidence string       `json:"confidence"`
	Insight    string       `json:"insight"`
}
