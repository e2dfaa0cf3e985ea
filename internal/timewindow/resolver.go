package timewindow

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"TrendSentinel/internal/model"
)

const (
	// DefaultSpanDays is used when no duration phrase is found.
	DefaultSpanDays = 180

	MinSpanDays = 7
	MaxSpanDays = 3650
)

// durationPatterns are scanned in priority order; the first match wins.
var durationPatterns = []struct {
	re   *regexp.Regexp
	days int
}{
	{regexp.MustCompile(`(?i)(\d+)\s*(?:일|days?)`), 1},
	{regexp.MustCompile(`(?i)(\d+)\s*(?:주일?|weeks?)`), 7},
	{regexp.MustCompile(`(?i)(\d+)\s*(?:개월|달|months?)`), 30},
	{regexp.MustCompile(`(?i)(\d+)\s*(?:년|years?)`), 365},
}

// idioms map fixed Korean duration phrases to day counts, checked in order.
var idioms = []struct {
	phrase string
	days   int
}{
	{"분기", 90},
	{"반년", 180},
	{"일년", 365},
	{"1년", 365},
	{"3년", 1095},
	{"5년", 1825},
}

// Resolve derives an absolute time window from relative-time phrases in
// the request text. It never fails: text without any duration phrase
// yields a 180-day window ending at now.
func Resolve(text string, now time.Time) model.TimeWindow {
	days := DefaultSpanDays

	if n, ok := scanDuration(text); ok {
		days = n
	} else if n, ok := scanIdiom(text); ok {
		days = n
	}

	if days < MinSpanDays {
		days = MinSpanDays
	}
	if days > MaxSpanDays {
		days = MaxSpanDays
	}

	return model.TimeWindow{
		StartDate:   now.AddDate(0, 0, -days),
		EndDate:     now,
		Granularity: granularityFor(days),
		SpanDays:    days,
	}
}

func scanDuration(text string) (int, bool) {
	for _, p := range durationPatterns {
		if m := p.re.FindStringSubmatch(text); m != nil {
			n, err := strconv.Atoi(m[1])
			if err != nil || n <= 0 {
				continue
			}
			return n * p.days, true
		}
	}
	return 0, false
}

func scanIdiom(text string) (int, bool) {
	for _, id := range idioms {
		if strings.Contains(text, id.phrase) {
			return id.days, true
		}
	}
	return 0, false
}

// granularityFor picks the sampling unit from the span: short windows
// stay daily, medium windows weekly, anything longer monthly.
func granularityFor(spanDays int) model.Granularity {
	switch {
	case spanDays <= 120:
		return model.GranularityDay
	case spanDays <= 730:
		return model.GranularityWeek
	default:
		return model.GranularityMonth
	}
}
