package model

import "time"

// ChatSession is one conversation thread.
type ChatSession struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

// Message is a single role-tagged chat message within a session.
type Message struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	Role      string    `json:"role"` // "system", "user", "assistant"
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// AnalysisRecord is a persisted pipeline result tied to a session.
type AnalysisRecord struct {
	ID         string    `json:"id"`
	SessionID  string    `json:"session_id"`
	Keyword    string    `json:"keyword"`
	ResultJSON string    `json:"result_json"`
	Summary    string    `json:"summary"`
	ReportPath string    `json:"report_path,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// AgentResult is what an agent run returns to the chat surface.
type AgentResult struct {
	Success   bool     `json:"success"`
	SessionID string   `json:"session_id"`
	ReplyText string   `json:"reply_text"`
	ReportID  string   `json:"report_id,omitempty"`
	Errors    []string `json:"errors,omitempty"`
}
