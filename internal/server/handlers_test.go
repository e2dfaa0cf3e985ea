package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"TrendSentinel/internal/agent"
	"TrendSentinel/internal/model"
	"TrendSentinel/internal/store"
)

type echoAgent struct{}

func (echoAgent) Name() string { return "echo" }

func (echoAgent) Run(ctx context.Context, sessionID, userMessage string) *model.AgentResult {
	return &model.AgentResult{
		Success:   true,
		SessionID: "s-echo",
		ReplyText: "echo: " + userMessage,
		ReportID:  "r1",
	}
}

func TestChat_OK(t *testing.T) {
	h := NewChatHandler(agent.NewRouter(echoAgent{}))

	req := httptest.NewRequest("POST", "/api/chat",
		strings.NewReader(`{"message":"캠핑용품 트렌드 분석해줘"}`))
	w := httptest.NewRecorder()
	h.Chat(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var resp ChatResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.SessionID != "s-echo" {
		t.Errorf("session = %q, want s-echo", resp.SessionID)
	}
	if !strings.HasPrefix(resp.ReplyText, "echo:") {
		t.Errorf("reply = %q", resp.ReplyText)
	}
	if resp.DownloadURL != "/api/report/r1" {
		t.Errorf("download URL = %q, want /api/report/r1", resp.DownloadURL)
	}
}

func TestChat_BadRequest(t *testing.T) {
	h := NewChatHandler(agent.NewRouter(echoAgent{}))

	for _, body := range []string{`{not json`, `{"message":""}`} {
		req := httptest.NewRequest("POST", "/api/chat", strings.NewReader(body))
		w := httptest.NewRecorder()
		h.Chat(w, req)
		if w.Code != http.StatusBadRequest {
			t.Errorf("body %q: status = %d, want 400", body, w.Code)
		}
	}
}

func TestChat_UnknownTaskStillOK(t *testing.T) {
	h := NewChatHandler(agent.NewRouter(echoAgent{}))

	req := httptest.NewRequest("POST", "/api/chat", strings.NewReader(`{"message":"안녕하세요"}`))
	w := httptest.NewRecorder()
	h.Chat(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 for guidance reply", w.Code)
	}
}

type reportStore struct {
	store.NoopStore
	rec *model.AnalysisRecord
}

func (s *reportStore) GetAnalysis(id string) (*model.AnalysisRecord, error) {
	if s.rec != nil && s.rec.ID == id {
		return s.rec, nil
	}
	return nil, nil
}

func TestDownload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "r1.md")
	if err := os.WriteFile(path, []byte("# 리포트"), 0o644); err != nil {
		t.Fatal(err)
	}
	st := &reportStore{rec: &model.AnalysisRecord{ID: "r1", Keyword: "캠핑용품", ReportPath: path}}
	h := NewReportHandler(st)

	r := newReportRequest(t, h, "r1")
	if r.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", r.Code)
	}
	if got := r.Header().Get("Content-Type"); !strings.HasPrefix(got, "text/markdown") {
		t.Errorf("content type = %q", got)
	}
	if !strings.Contains(r.Body.String(), "리포트") {
		t.Errorf("body = %q", r.Body.String())
	}
}

func TestDownload_NotFound(t *testing.T) {
	h := NewReportHandler(&reportStore{})
	if r := newReportRequest(t, h, "missing"); r.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", r.Code)
	}

	// Record exists but the file does not.
	st := &reportStore{rec: &model.AnalysisRecord{ID: "r1", ReportPath: "/no/such/file.md"}}
	h = NewReportHandler(st)
	if r := newReportRequest(t, h, "r1"); r.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404 for missing file", r.Code)
	}
}

// newReportRequest routes through chi so URL parameters resolve.
func newReportRequest(t *testing.T, h *ReportHandler, id string) *httptest.ResponseRecorder {
	t.Helper()
	mux := chi.NewRouter()
	mux.Get("/api/report/{id}", h.Download)
	req := httptest.NewRequest("GET", "/api/report/"+id, nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}
