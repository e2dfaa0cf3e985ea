package metrics

import (
	"math"
	"sort"
	"time"

	"TrendSentinel/internal/model"
)

// momentumWindow is the maximum number of points in each of the early
// and late windows of the momentum split.
const momentumWindow = 3

var dateFormats = []string{
	time.RFC3339,
	"2006-01-02",
	"20060102",
}

type observation struct {
	point  model.SeriesPoint
	date   time.Time
	parsed bool
	index  int
}

// Compute derives summary statistics from a series. Input order does not
// matter: points are sorted by parsed date ascending, with the original
// index as tiebreak and as the stand-in position for unparseable dates.
func Compute(points []model.SeriesPoint) model.SeriesStats {
	obs := make([]observation, 0, len(points))
	for i, p := range points {
		if math.IsNaN(p.Value) || math.IsInf(p.Value, 0) {
			continue
		}
		t, ok := parseDate(p.Date)
		obs = append(obs, observation{point: p, date: t, parsed: ok, index: i})
	}

	if len(obs) == 0 {
		return model.SeriesStats{
			HasData:       false,
			MomentumLabel: model.MomentumInsufficient,
		}
	}

	sort.SliceStable(obs, func(i, j int) bool {
		a, b := obs[i], obs[j]
		if a.parsed && b.parsed && !a.date.Equal(b.date) {
			return a.date.Before(b.date)
		}
		if a.parsed != b.parsed {
			// Unparseable dates keep their input position relative to
			// each other and sort before dated points.
			return !a.parsed
		}
		return a.index < b.index
	})

	values := make([]float64, len(obs))
	sorted := make([]model.SeriesPoint, len(obs))
	for i, o := range obs {
		values[i] = o.point.Value
		sorted[i] = o.point
	}

	n := len(values)
	stats := model.SeriesStats{
		HasData:    true,
		DataPoints: n,
		LatestDate: sorted[n-1].Date,
	}

	stats.Average = ptr(mean(values))
	stats.FirstValue = ptr(values[0])
	stats.LatestValue = ptr(values[n-1])

	if values[0] != 0 {
		stats.GrowthPct = ptr((values[n-1] - values[0]) / values[0] * 100)
	}

	w := momentumWindow
	if n < w {
		w = n
	}
	early := mean(values[:w])
	late := mean(values[n-w:])
	if early != 0 {
		stats.MomentumPct = ptr((late - early) / early * 100)
	}
	stats.MomentumLabel = momentumLabel(stats.MomentumPct)

	peak := sorted[0]
	for _, p := range sorted[1:] {
		if p.Value > peak.Value {
			peak = p
		}
	}
	stats.Peak = &peak

	stats.Volatility = ptr(sampleStdDev(values))

	tail := n - 5
	if tail < 0 {
		tail = 0
	}
	stats.SeriesTail = sorted[tail:]

	return stats
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func momentumLabel(pct *float64) string {
	if pct == nil {
		return model.MomentumInsufficient
	}
	switch {
	case *pct > 5:
		return model.MomentumRising
	case *pct < -5:
		return model.MomentumFalling
	default:
		return model.MomentumFlat
	}
}

func mean(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// sampleStdDev returns the sample standard deviation, or 0 when fewer
// than 2 values exist.
func sampleStdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	m := mean(values)
	sum := 0.0
	for _, v := range values {
		d := v - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(values)-1))
}

func ptr(v float64) *float64 { return &v }
