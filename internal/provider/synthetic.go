package provider

import (
	"hash/fnv"
	"strconv"

	"TrendSentinel/internal/model"
)

const (
	syntheticMinPoints = 8
	syntheticMaxPoints = 20
)

// GenerateSynthetic produces a deterministic stand-in series for a
// keyword: a hashed baseline in [40,80) with a per-keyword linear slope
// in [-2,2] and per-point jitter in [-5,5), clamped to [5,100]. Two
// calls with the same keyword and window always produce identical
// output; there is no external entropy source.
func GenerateSynthetic(keyword string, window model.TimeWindow) model.SeriesBundle {
	unitDays := spacingDays(window.Granularity)

	n := window.SpanDays / unitDays
	if n < syntheticMinPoints {
		n = syntheticMinPoints
	}
	if n > syntheticMaxPoints {
		n = syntheticMaxPoints
	}

	h := hashString(keyword)
	baseline := 40 + float64(h%4000)/100                 // [40, 80)
	slope := (float64((h>>16)%401) - 200) / 100          // [-2, 2]

	points := make([]model.SeriesPoint, n)
	for i := 0; i < n; i++ {
		jitter := float64(hashString(keyword+"#"+strconv.Itoa(i))%1000)/100 - 5 // [-5, 5)
		value := baseline + slope*float64(i) + jitter
		if value < 5 {
			value = 5
		}
		if value > 100 {
			value = 100
		}
		// Points are anchored to the window end so the latest point
		// always lands on end_date.
		date := window.EndDate.AddDate(0, 0, -(n-1-i)*unitDays)
		points[i] = model.SeriesPoint{Date: date.Format("2006-01-02"), Value: value}
	}

	return model.SeriesBundle{
		KeywordGroup: keyword,
		Points:       points,
		Source:       model.SourceSynthetic,
	}
}

func spacingDays(g model.Granularity) int {
	switch g {
	case model.GranularityWeek:
		return 7
	case model.GranularityMonth:
		return 30
	default:
		return 1
	}
}

func hashString(s string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return h.Sum64()
}
