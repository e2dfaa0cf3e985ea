package scheduler

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/robfig/cron/v3"

	"TrendSentinel/internal/model"
	"TrendSentinel/internal/notifier"
	"TrendSentinel/internal/pipeline"
	"TrendSentinel/internal/store"
)

// watchSessionID groups scheduler-made analyses in the store.
const watchSessionID = "watchlist"

// Scheduler re-analyzes the configured watchlist keywords on a cron
// schedule, records the snapshots, and sends an optional digest.
type Scheduler struct {
	Cron     *cron.Cron
	Pipeline *pipeline.Pipeline
	Store    store.Store
	Notifier *notifier.TelegramNotifier // nil disables digests
	Keywords []string
	Ctx      context.Context
}

// NewScheduler creates a Scheduler.
func NewScheduler(ctx context.Context, pl *pipeline.Pipeline, st store.Store, tn *notifier.TelegramNotifier, keywords []string) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Pipeline: pl,
		Store:    st,
		Notifier: tn,
		Keywords: keywords,
		Ctx:      ctx,
	}
}

// Register adds the watch task under the given cron expression.
func (s *Scheduler) Register(watchCron string) error {
	if _, err := s.Cron.AddFunc(watchCron, s.watchTask); err != nil {
		return fmt.Errorf("register watch task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunWatchNow executes the watch task immediately (manual trigger).
func (s *Scheduler) RunWatchNow() {
	s.watchTask()
}

func (s *Scheduler) watchTask() {
	if len(s.Keywords) == 0 {
		return
	}
	log.Printf("[INFO] running watchlist analysis (%d keywords)", len(s.Keywords))

	var digest strings.Builder
	digest.WriteString("🔔 *워치리스트 트렌드 요약*\n\n")

	for _, kw := range s.Keywords {
		res := s.Pipeline.AnalyzeKeyword(s.Ctx, kw, "")

		rec := &model.AnalysisRecord{
			SessionID: watchSessionID,
			Keyword:   res.Keyword,
			Summary:   res.Insight,
		}
		if data, err := json.Marshal(res); err == nil {
			rec.ResultJSON = string(data)
		}
		if err := s.Store.SaveAnalysis(rec); err != nil {
			log.Printf("[ERROR] record watch analysis for %q: %v", kw, err)
		}

		digest.WriteString(formatWatchLine(res))
	}

	if s.Notifier != nil {
		if err := s.Notifier.SendWithRetry(s.Ctx, digest.String(), 3); err != nil {
			log.Printf("[ERROR] send watch digest: %v", err)
		}
	}
}

func formatWatchLine(res *model.AnalysisResult) string {
	growth := "N/A"
	if res.Stats.GrowthPct != nil {
		growth = fmt.Sprintf("%+.1f%%", *res.Stats.GrowthPct)
	}
	return fmt.Sprintf("• %s: %s (성장률 %s, 신뢰도 %s)\n", res.Keyword, res.Signal, growth, res.Confidence)
}
