package store

import "TrendSentinel/internal/model"

// Store persists conversation and analysis state. Lookup methods return
// (nil, nil) when the row does not exist.
type Store interface {
	CreateSession() (*model.ChatSession, error)
	GetSession(id string) (*model.ChatSession, error)
	AppendMessage(sessionID, role, content string) error
	MessagesBySession(sessionID string) ([]model.Message, error)
	SaveAnalysis(rec *model.AnalysisRecord) error
	GetAnalysis(id string) (*model.AnalysisRecord, error)
	RecentAnalyses(keyword string, limit int) ([]model.AnalysisRecord, error)
	Close() error
}
