package agent

import (
	"fmt"
	"strings"

	"TrendSentinel/internal/model"
)

// FormatAnalysisReply renders an analysis as the chat reply text.
func FormatAnalysisReply(res *model.AnalysisResult) string {
	var b strings.Builder
	stats := res.Stats

	b.WriteString(fmt.Sprintf("📈 **트렌드 분석 결과: %s**\n\n", res.Keyword))
	b.WriteString(fmt.Sprintf("분석 기간: %s ~ %s (%s 단위)\n",
		res.Window.StartDate.Format("2006-01-02"),
		res.Window.EndDate.Format("2006-01-02"),
		granularityLabel(res.Window.Granularity)))

	if res.Source == model.SourceSynthetic {
		b.WriteString("※ 실제 검색 통계를 가져오지 못해 참고용 합성 데이터로 분석했습니다.\n")
	}
	b.WriteString("\n")

	if stats.HasData {
		b.WriteString(fmt.Sprintf("• 평균 관심도: %s\n", fmtStat(stats.Average, "%.1f")))
		b.WriteString(fmt.Sprintf("• 성장률: %s%%\n", fmtStat(stats.GrowthPct, "%+.1f")))
		b.WriteString(fmt.Sprintf("• 모멘텀: %s (%s%%)\n", stats.MomentumLabel, fmtStat(stats.MomentumPct, "%+.1f")))
		if stats.Peak != nil {
			b.WriteString(fmt.Sprintf("• 피크: %s (%.1f)\n", stats.Peak.Date, stats.Peak.Value))
		}
	}

	b.WriteString(fmt.Sprintf("\n**시그널: %s** (신뢰도: %s)\n\n", res.Signal, res.Confidence))
	b.WriteString("💡 **인사이트**\n")
	b.WriteString(res.Insight)

	return b.String()
}

func granularityLabel(g model.Granularity) string {
	switch g {
	case model.GranularityDay:
		return "일"
	case model.GranularityMonth:
		return "월"
	default:
		return "주"
	}
}

func fmtStat(v *float64, format string) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf(format, *v)
}
