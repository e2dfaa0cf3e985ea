package agent

import (
	"context"

	"TrendSentinel/internal/model"
)

// Agent handles one task category of the conversational surface.
// Run never returns an error: failures are reported inside the result
// so the chat caller always has a reply to show.
type Agent interface {
	Name() string
	Run(ctx context.Context, sessionID, userMessage string) *model.AgentResult
}
