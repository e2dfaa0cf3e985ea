package agent

import (
	"context"
	"fmt"
	"log"
	"strings"

	"TrendSentinel/internal/model"
)

// route binds one task category to the trigger words that select it.
type route struct {
	key         string
	name        string
	description string
	triggers    []string
	agent       Agent
}

// Router dispatches a chat message to the agent whose trigger words
// appear in it, in registration order.
type Router struct {
	routes []route
}

// NewRouter wires the trend agent plus stubs for the remaining task
// categories.
func NewRouter(trend Agent) *Router {
	return &Router{routes: []route{
		{
			key:         "trend",
			name:        "소비 트렌드 분석",
			description: "특정 키워드나 제품의 트렌드를 분석합니다.",
			triggers:    []string{"트렌드", "유행", "인기", "검색량", "관심도", "소비"},
			agent:       trend,
		},
		{
			key:         "ad_copy",
			name:        "광고 문구 생성",
			description: "제품/서비스에 맞는 광고 문구를 생성합니다.",
			triggers:    []string{"광고", "문구", "카피", "헤드라인", "슬로건", "마케팅"},
			agent:       NewStubAgent("ad_copy", "광고 문구 생성"),
		},
		{
			key:         "segment",
			name:        "사용자 세그먼트 분류",
			description: "사용자 데이터를 세그먼트로 분류합니다.",
			triggers:    []string{"세그먼트", "고객분류", "타겟", "페르소나", "클러스터", "그룹"},
			agent:       NewStubAgent("segment", "사용자 세그먼트 분류"),
		},
		{
			key:         "review",
			name:        "리뷰 감성 분석",
			description: "제품 리뷰의 감성을 분석하고 요약합니다.",
			triggers:    []string{"리뷰", "감성", "평가", "후기", "댓글", "의견"},
			agent:       NewStubAgent("review", "리뷰 감성 분석"),
		},
		{
			key:         "competitor",
			name:        "경쟁사 분석",
			description: "경쟁 제품/서비스를 분석하고 비교합니다.",
			triggers:    []string{"경쟁사", "비교", "가격", "시장", "벤치마크", "경쟁"},
			agent:       NewStubAgent("competitor", "경쟁사 분석"),
		},
	}}
}

// Detect returns the key of the first route whose trigger appears in
// the message, or "" when nothing matches.
func (r *Router) Detect(message string) string {
	lower := strings.ToLower(message)
	for _, rt := range r.routes {
		for _, trigger := range rt.triggers {
			if strings.Contains(lower, trigger) {
				return rt.key
			}
		}
	}
	return ""
}

// Route runs the detected agent, or replies with the available-task
// guide when no task matches.
func (r *Router) Route(ctx context.Context, sessionID, message string) *model.AgentResult {
	key := r.Detect(message)
	if key == "" {
		log.Printf("[WARN] no task detected: %.50s", message)
		return &model.AgentResult{
			Success:   false,
			SessionID: sessionID,
			ReplyText: r.AvailableTasks(),
			Errors:    []string{"unknown task"},
		}
	}

	for _, rt := range r.routes {
		if rt.key == key {
			log.Printf("[INFO] routing to agent: %s", rt.key)
			return rt.agent.Run(ctx, sessionID, message)
		}
	}
	// Unreachable as long as Detect only returns registered keys.
	return &model.AgentResult{Success: false, SessionID: sessionID, ReplyText: r.AvailableTasks()}
}

// AvailableTasks renders the task guide shown for unmatched messages.
func (r *Router) AvailableTasks() string {
	var b strings.Builder
	b.WriteString("🛍️ 커머스 마케팅 AI 에이전트 - 사용 가능한 태스크:\n\n")
	for _, rt := range r.routes {
		n := len(rt.triggers)
		if n > 3 {
			n = 3
		}
		b.WriteString(fmt.Sprintf("• **%s**\n", rt.name))
		b.WriteString(fmt.Sprintf("  - 설명: %s\n", rt.description))
		b.WriteString(fmt.Sprintf("  - 키워드: %s\n\n", strings.Join(rt.triggers[:n], ", ")))
	}
	b.WriteString("예시:\n")
	b.WriteString("- \"최근 반려동물 관련 트렌드 분석해줘\"\n")
	b.WriteString("- \"친환경 세제 광고 문구 만들어줘\"\n")
	b.WriteString("- \"이 제품 리뷰 감성 분석해줘\"\n")
	return b.String()
}
