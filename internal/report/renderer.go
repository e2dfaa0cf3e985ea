package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"TrendSentinel/internal/model"
)

// Renderer writes analysis reports as markdown files under a directory.
type Renderer struct {
	Dir string
}

// NewRenderer creates the report directory if needed.
func NewRenderer(dir string) (*Renderer, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create report dir: %w", err)
	}
	return &Renderer{Dir: dir}, nil
}

// Render writes the report file and returns its path.
func (r *Renderer) Render(id string, res *model.AnalysisResult) (string, error) {
	path := filepath.Join(r.Dir, id+".md")
	if err := os.WriteFile(path, []byte(Markdown(res)), 0644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return path, nil
}

// Markdown renders the full analysis report body.
func Markdown(res *model.AnalysisResult) string {
	var b strings.Builder
	stats := res.Stats

	b.WriteString(fmt.Sprintf("# 트렌드 분석 리포트: %s\n\n", res.Keyword))
	b.WriteString(fmt.Sprintf("- 분석 기간: %s ~ %s (%s)\n",
		res.Window.StartDate.Format("2006-01-02"),
		res.Window.EndDate.Format("2006-01-02"),
		res.Window.Granularity))
	b.WriteString(fmt.Sprintf("- 데이터 출처: %s\n", sourceLabel(res.Source)))
	b.WriteString(fmt.Sprintf("- 트렌드 시그널: **%s** (신뢰도: %s)\n\n", res.Signal, res.Confidence))

	b.WriteString("## 주요 지표\n\n")
	if !stats.HasData {
		b.WriteString("분석 가능한 데이터가 없습니다.\n\n")
	} else {
		b.WriteString("| 지표 | 값 |\n|---|---|\n")
		b.WriteString(fmt.Sprintf("| 데이터 수 | %d |\n", stats.DataPoints))
		b.WriteString(fmt.Sprintf("| 평균 관심도 | %s |\n", fmtVal(stats.Average, "%.1f")))
		b.WriteString(fmt.Sprintf("| 성장률 | %s%% |\n", fmtVal(stats.GrowthPct, "%+.1f")))
		b.WriteString(fmt.Sprintf("| 모멘텀 | %s (%s%%) |\n", stats.MomentumLabel, fmtVal(stats.MomentumPct, "%+.1f")))
		if stats.Peak != nil {
			b.WriteString(fmt.Sprintf("| 피크 | %s (%.1f) |\n", stats.Peak.Date, stats.Peak.Value))
		}
		b.WriteString(fmt.Sprintf("| 변동성 | %s |\n\n", fmtVal(stats.Volatility, "%.1f")))
	}

	b.WriteString("## 인사이트\n\n")
	b.WriteString(res.Insight)
	b.WriteString("\n")

	if len(stats.SeriesTail) > 0 {
		b.WriteString("\n## 최근 추이\n\n| 날짜 | 관심도 |\n|---|---|\n")
		for _, p := range stats.SeriesTail {
			b.WriteString(fmt.Sprintf("| %s | %.1f |\n", p.Date, p.Value))
		}
	}

	return b.String()
}

func sourceLabel(s model.SeriesSource) string {
	if s == model.SourceLive {
		return "검색 통계 API"
	}
	return "합성 데이터 (참고용)"
}

func fmtVal(v *float64, format string) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf(format, *v)
}
