package agent

import (
	"context"
	"fmt"

	"TrendSentinel/internal/model"
)

// StubAgent stands in for task categories that are not implemented yet.
type StubAgent struct {
	key     string
	display string
}

func NewStubAgent(key, display string) *StubAgent {
	return &StubAgent{key: key, display: display}
}

func (a *StubAgent) Name() string { return a.key }

func (a *StubAgent) Run(_ context.Context, sessionID, _ string) *model.AgentResult {
	return &model.AgentResult{
		Success:   false,
		SessionID: sessionID,
		ReplyText: fmt.Sprintf("✋ **%s** 에이전트는 현재 개발 중입니다.\n\n다른 태스크를 시도해 주세요.", a.display),
		Errors:    []string{fmt.Sprintf("agent not implemented: %s", a.key)},
	}
}
