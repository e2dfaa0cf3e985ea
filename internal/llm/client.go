package llm

import "context"

// Message is a role-tagged message sent to the generative model.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Result is the uniform outcome of one generative call. Failures are
// reported in-band, never raised, so callers degrade locally instead of
// propagating faults.
type Result struct {
	Success   bool
	ReplyText string
	Err       string
}

// Client issues one chat completion per call.
type Client interface {
	Chat(ctx context.Context, messages []Message) Result
	Name() string
}

// Disabled is used when no API key is configured. Every call reports
// failure without going out, which routes callers to their fallbacks.
type Disabled struct{}

func (Disabled) Name() string { return "disabled" }

func (Disabled) Chat(_ context.Context, _ []Message) Result {
	return Result{Success: false, Err: "generative API key not configured"}
}
