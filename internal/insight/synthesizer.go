package insight

import (
	"context"
	"fmt"
	"log"
	"strings"

	"TrendSentinel/internal/llm"
	"TrendSentinel/internal/model"
)

// Synthesizer produces a short natural-language narrative for an
// analysis. One generative attempt is made per call; any failure or an
// empty reply falls back to the deterministic template, so Synthesize
// never fails.
type Synthesizer struct {
	LLM llm.Client
}

func NewSynthesizer(client llm.Client) *Synthesizer {
	return &Synthesizer{LLM: client}
}

// Synthesize returns 2-3 narrative lines about the trend.
func (s *Synthesizer) Synthesize(ctx context.Context, kw string, stats model.SeriesStats, window model.TimeWindow) string {
	if s.LLM != nil {
		res := s.LLM.Chat(ctx, []llm.Message{
			{Role: "system", Content: "너는 커머스 마케팅 데이터 분석가다. 주어진 검색 트렌드 지표를 바탕으로 원인과 권장 대응을 2~3줄의 불릿으로 간결하게 설명하라."},
			{Role: "user", Content: digest(kw, stats, window)},
		})
		if res.Success && strings.TrimSpace(res.ReplyText) != "" {
			return strings.TrimSpace(res.ReplyText)
		}
		if !res.Success {
			log.Printf("[WARN] generative insight failed, using template: %s", res.Err)
		}
	}
	return Template(stats)
}

// digest renders a compact metrics summary for the generative call.
func digest(kw string, stats model.SeriesStats, window model.TimeWindow) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("키워드: %s\n", kw))
	b.WriteString(fmt.Sprintf("기간: %s ~ %s (%s)\n",
		window.StartDate.Format("2006-01-02"), window.EndDate.Format("2006-01-02"), window.Granularity))
	b.WriteString(fmt.Sprintf("평균 관심도: %s\n", fmtPct(stats.Average, "%.1f")))
	b.WriteString(fmt.Sprintf("성장률: %s%%\n", fmtPct(stats.GrowthPct, "%+.1f")))
	b.WriteString(fmt.Sprintf("모멘텀: %s (%s%%)\n", stats.MomentumLabel, fmtPct(stats.MomentumPct, "%+.1f")))
	if stats.Peak != nil {
		b.WriteString(fmt.Sprintf("피크: %s (%.1f)\n", stats.Peak.Date, stats.Peak.Value))
	}
	b.WriteString(fmt.Sprintf("변동성: %s\n", fmtPct(stats.Volatility, "%.1f")))
	return b.String()
}

// Template is the deterministic fallback narrative.
func Template(stats model.SeriesStats) string {
	if !stats.HasData {
		return "데이터가 충분하지 않습니다. 기간을 넓히거나 다른 키워드로 다시 시도해 주세요."
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("- 최근 모멘텀은 %s(%s%%) 흐름입니다.\n",
		stats.MomentumLabel, fmtPct(stats.MomentumPct, "%+.1f")))
	b.WriteString(fmt.Sprintf("- 기간 전체 성장률은 %s%%입니다.\n", fmtPct(stats.GrowthPct, "%+.1f")))

	switch stats.MomentumLabel {
	case model.MomentumRising:
		b.WriteString("- 관심도가 오르는 구간이므로 재고와 광고 예산을 선제적으로 늘리는 대응을 권장합니다.")
	case model.MomentumFalling:
		b.WriteString("- 관심도가 내려가는 구간이므로 할인·번들 등 수요 방어 전략을 권장합니다.")
	default:
		b.WriteString("- 뚜렷한 방향성이 없으므로 현재 수준의 운영을 유지하며 추이를 관찰하는 것을 권장합니다.")
	}
	return b.String()
}

func fmtPct(v *float64, format string) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf(format, *v)
}
