package agent

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"

	"github.com/google/uuid"

	"TrendSentinel/internal/keyword"
	"TrendSentinel/internal/model"
	"TrendSentinel/internal/pipeline"
	"TrendSentinel/internal/report"
	"TrendSentinel/internal/store"
)

// reportTriggers in the user message make the trend agent render a
// downloadable report alongside the chat reply.
var reportTriggers = []string{"리포트", "보고서", "report", "pdf"}

// TrendAgent runs the trend analysis pipeline for a chat session and
// persists the conversation and result.
type TrendAgent struct {
	Pipeline *pipeline.Pipeline
	Store    store.Store
	Reports  *report.Renderer // nil disables report rendering
}

func NewTrendAgent(pl *pipeline.Pipeline, st store.Store, rep *report.Renderer) *TrendAgent {
	return &TrendAgent{Pipeline: pl, Store: st, Reports: rep}
}

func (a *TrendAgent) Name() string { return "trend" }

// Run ensures the session exists, records the exchange, and executes
// one pipeline invocation. An unresolvable keyword is the only failure
// that doesn't produce an analysis; it comes back as an explicit
// cannot-proceed reply, never a partial result.
func (a *TrendAgent) Run(ctx context.Context, sessionID, userMessage string) *model.AgentResult {
	sid := a.ensureSession(sessionID)

	a.appendMessage(sid, "system", "--- 트렌드 분석 시작 ---")
	a.appendMessage(sid, "user", userMessage)

	res, err := a.Pipeline.Analyze(ctx, userMessage)
	if err != nil {
		if !errors.Is(err, keyword.ErrNoKeyword) {
			log.Printf("[ERROR] trend analysis: %v", err)
		}
		reply := "분석할 키워드를 찾지 못했습니다. 예: \"스마트워치 트렌드 분석해줘\"처럼 상품이나 주제를 함께 알려주세요."
		a.appendMessage(sid, "assistant", reply)
		return &model.AgentResult{
			Success:   false,
			SessionID: sid,
			ReplyText: reply,
			Errors:    []string{err.Error()},
		}
	}

	reply := FormatAnalysisReply(res)

	rec := &model.AnalysisRecord{
		ID:        uuid.NewString(),
		SessionID: sid,
		Keyword:   res.Keyword,
		Summary:   reply,
	}
	if data, err := json.Marshal(res); err == nil {
		rec.ResultJSON = string(data)
	}

	var reportID string
	if a.Reports != nil && wantsReport(userMessage) {
		path, err := a.Reports.Render(rec.ID, res)
		if err != nil {
			log.Printf("[ERROR] render report: %v", err)
		} else {
			rec.ReportPath = path
			reportID = rec.ID
			reply += "\n\n📄 리포트가 생성되었습니다. 다운로드 링크를 확인하세요."
		}
	}

	if err := a.Store.SaveAnalysis(rec); err != nil {
		log.Printf("[ERROR] save analysis: %v", err)
	}
	a.appendMessage(sid, "assistant", reply)

	return &model.AgentResult{
		Success:   true,
		SessionID: sid,
		ReplyText: reply,
		ReportID:  reportID,
	}
}

func (a *TrendAgent) ensureSession(sessionID string) string {
	if sessionID != "" {
		if session, err := a.Store.GetSession(sessionID); err == nil && session != nil {
			return session.ID
		}
	}
	session, err := a.Store.CreateSession()
	if err != nil {
		log.Printf("[ERROR] create session: %v", err)
		return sessionID
	}
	return session.ID
}

func (a *TrendAgent) appendMessage(sessionID, role, content string) {
	if err := a.Store.AppendMessage(sessionID, role, content); err != nil {
		log.Printf("[ERROR] append message: %v", err)
	}
}

func wantsReport(message string) bool {
	lower := strings.ToLower(message)
	for _, trigger := range reportTriggers {
		if strings.Contains(lower, trigger) {
			return true
		}
	}
	return false
}
