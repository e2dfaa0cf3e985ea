package store

import (
	"time"

	"github.com/google/uuid"

	"TrendSentinel/internal/model"
)

// NoopStore keeps nothing. It still hands out session IDs so the chat
// flow works when persistence is not configured.
type NoopStore struct{}

func NewNoopStore() *NoopStore { return &NoopStore{} }

func (n *NoopStore) CreateSession() (*model.ChatSession, error) {
	return &model.ChatSession{ID: uuid.NewString(), CreatedAt: time.Now()}, nil
}

func (n *NoopStore) GetSession(_ string) (*model.ChatSession, error)         { return nil, nil }
func (n *NoopStore) AppendMessage(_, _, _ string) error                      { return nil }
func (n *NoopStore) MessagesBySession(_ string) ([]model.Message, error)     { return nil, nil }
func (n *NoopStore) SaveAnalysis(_ *model.AnalysisRecord) error              { return nil }
func (n *NoopStore) GetAnalysis(_ string) (*model.AnalysisRecord, error)     { return nil, nil }
func (n *NoopStore) RecentAnalyses(_ string, _ int) ([]model.AnalysisRecord, error) {
	return nil, nil
}
func (n *NoopStore) Close() error { return nil }
