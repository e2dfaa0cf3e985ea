package pipeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"TrendSentinel/internal/insight"
	"TrendSentinel/internal/keyword"
	"TrendSentinel/internal/llm"
	"TrendSentinel/internal/model"
	"TrendSentinel/internal/provider"
)

func newTestPipeline() *Pipeline {
	p := New(
		keyword.NewExtractor(llm.Disabled{}),
		provider.NewProvider(nil),
		insight.NewSynthesizer(llm.Disabled{}),
	)
	p.Now = func() time.Time {
		return time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)
	}
	return p
}

func TestAnalyze_EndToEnd(t *testing.T) {
	p := newTestPipeline()

	res, err := p.Analyze(context.Background(), "스마트워치 트렌드 분석해줘")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Keyword != "스마트워치" {
		t.Errorf("keyword = %q, want 스마트워치", res.Keyword)
	}
	if res.Window.SpanDays != 180 {
		t.Errorf("span = %d, want default 180", res.Window.SpanDays)
	}
	if res.Window.Granularity != model.GranularityWeek {
		t.Errorf("granularity = %s, want week", res.Window.Granularity)
	}
	if res.Source != model.SourceSynthetic {
		t.Errorf("source = %s, want synthetic without credentials", res.Source)
	}
	if n := res.Stats.DataPoints; n < 8 || n > 20 {
		t.Errorf("data points = %d, want within [8,20]", n)
	}
	if res.Signal == "" || res.Confidence == "" {
		t.Errorf("signal/confidence empty: %q / %q", res.Signal, res.Confidence)
	}
	if res.Confidence != model.ConfidenceMedium {
		t.Errorf("confidence = %q, want medium for synthetic data", res.Confidence)
	}
	if res.Insight == "" {
		t.Error("insight is empty")
	}
}

func TestAnalyze_NoKeyword(t *testing.T) {
	p := newTestPipeline()

	_, err := p.Analyze(context.Background(), "이거 트렌드 좀 봐줘")
	if !errors.Is(err, keyword.ErrNoKeyword) {
		t.Errorf("error = %v, want ErrNoKeyword", err)
	}
}

func TestAnalyze_Deterministic(t *testing.T) {
	p := newTestPipeline()

	a, err := p.Analyze(context.Background(), "최근 30일 캠핑용품 트렌드 알려줘")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := p.Analyze(context.Background(), "최근 30일 캠핑용품 트렌드 알려줘")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Signal != b.Signal || *a.Stats.Average != *b.Stats.Average {
		t.Error("same request produced different results")
	}
	if a.Window.SpanDays != 30 || a.Window.Granularity != model.GranularityDay {
		t.Errorf("window = %d days / %s, want 30 days / day", a.Window.SpanDays, a.Window.Granularity)
	}
}

func TestAnalyzeKeyword_DefaultWindow(t *testing.T) {
	p := newTestPipeline()

	res := p.AnalyzeKeyword(context.Background(), "등산화", "")
	if res.Keyword != "등산화" {
		t.Errorf("keyword = %q, want 등산화", res.Keyword)
	}
	if res.Window.SpanDays != 180 {
		t.Errorf("span = %d, want 180", res.Window.SpanDays)
	}
	if !res.Window.EndDate.Equal(p.Now()) {
		t.Errorf("window end = %v, want pinned clock %v", res.Window.EndDate, p.Now())
	}
}
