package agent

import (
	"context"
	"strings"
	"testing"

	"TrendSentinel/internal/insight"
	"TrendSentinel/internal/keyword"
	"TrendSentinel/internal/llm"
	"TrendSentinel/internal/model"
	"TrendSentinel/internal/pipeline"
	"TrendSentinel/internal/provider"
	"TrendSentinel/internal/report"
	"TrendSentinel/internal/store"
)

// memStore records calls so tests can inspect what the agent persisted.
type memStore struct {
	store.NoopStore
	messages []model.Message
	analyses []*model.AnalysisRecord
}

func (m *memStore) AppendMessage(sessionID, role, content string) error {
	m.messages = append(m.messages, model.Message{SessionID: sessionID, Role: role, Content: content})
	return nil
}

func (m *memStore) SaveAnalysis(rec *model.AnalysisRecord) error {
	m.analyses = append(m.analyses, rec)
	return nil
}

func newTestAgent(t *testing.T, withReports bool) (*TrendAgent, *memStore) {
	t.Helper()
	pl := pipeline.New(
		keyword.NewExtractor(llm.Disabled{}),
		provider.NewProvider(nil),
		insight.NewSynthesizer(llm.Disabled{}),
	)
	st := &memStore{}
	var rep *report.Renderer
	if withReports {
		r, err := report.NewRenderer(t.TempDir())
		if err != nil {
			t.Fatalf("new renderer: %v", err)
		}
		rep = r
	}
	return NewTrendAgent(pl, st, rep), st
}

func TestTrendAgent_Run(t *testing.T) {
	a, st := newTestAgent(t, false)

	res := a.Run(context.Background(), "", "캠핑용품 트렌드 분석해줘")
	if !res.Success {
		t.Fatalf("unexpected failure: %+v", res)
	}
	if res.SessionID == "" {
		t.Error("session ID is empty")
	}
	if !strings.Contains(res.ReplyText, "캠핑용품") {
		t.Errorf("reply %q should mention the keyword", res.ReplyText)
	}
	if res.ReportID != "" {
		t.Error("report rendered without a report trigger")
	}

	if len(st.analyses) != 1 {
		t.Fatalf("got %d analyses, want 1", len(st.analyses))
	}
	rec := st.analyses[0]
	if rec.Keyword != "캠핑용품" || rec.ResultJSON == "" {
		t.Errorf("analysis record incomplete: %+v", rec)
	}

	wantRoles := []string{"system", "user", "assistant"}
	if len(st.messages) != 3 {
		t.Fatalf("got %d messages, want 3", len(st.messages))
	}
	for i, m := range st.messages {
		if m.Role != wantRoles[i] {
			t.Errorf("message %d role = %s, want %s", i, m.Role, wantRoles[i])
		}
	}
	if st.messages[0].Content != "--- 트렌드 분석 시작 ---" {
		t.Errorf("separator message = %q", st.messages[0].Content)
	}
}

func TestTrendAgent_NoKeyword(t *testing.T) {
	a, st := newTestAgent(t, false)

	res := a.Run(context.Background(), "", "이거 트렌드 좀 봐줘")
	if res.Success {
		t.Error("expected failure for unresolvable keyword")
	}
	if !strings.Contains(res.ReplyText, "키워드를 찾지 못했습니다") {
		t.Errorf("reply = %q", res.ReplyText)
	}
	if len(res.Errors) == 0 {
		t.Error("expected error details")
	}
	if len(st.analyses) != 0 {
		t.Errorf("no analysis should be saved, got %d", len(st.analyses))
	}
}

func TestTrendAgent_ReportOnRequest(t *testing.T) {
	a, st := newTestAgent(t, true)

	res := a.Run(context.Background(), "", "캠핑용품 트렌드 리포트 만들어줘")
	if !res.Success {
		t.Fatalf("unexpected failure: %+v", res)
	}
	if res.ReportID == "" {
		t.Fatal("report ID is empty")
	}
	if len(st.analyses) != 1 || st.analyses[0].ReportPath == "" {
		t.Errorf("analysis record missing report path: %+v", st.analyses)
	}
	if !strings.Contains(res.ReplyText, "리포트가 생성되었습니다") {
		t.Errorf("reply %q should mention the generated report", res.ReplyText)
	}
}
