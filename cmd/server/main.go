package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"TrendSentinel/internal/agent"
	"TrendSentinel/internal/config"
	"TrendSentinel/internal/insight"
	"TrendSentinel/internal/keyword"
	"TrendSentinel/internal/llm"
	"TrendSentinel/internal/notifier"
	"TrendSentinel/internal/pipeline"
	"TrendSentinel/internal/provider"
	"TrendSentinel/internal/report"
	"TrendSentinel/internal/scheduler"
	"TrendSentinel/internal/server"
	"TrendSentinel/internal/store"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] TrendSentinel starting...")

	if err := godotenv.Load(); err == nil {
		log.Println("[INFO] loaded .env")
	}

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init store
	var st store.Store
	if cfg.Database.SQLitePath != "" {
		ss, err := store.NewSQLiteStore(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite store failed, using noop: %v", err)
			st = store.NewNoopStore()
		} else {
			st = ss
			defer ss.Close()
		}
	} else {
		st = store.NewNoopStore()
	}

	// Init generative client
	llmClient := llm.New(cfg.OpenAI.APIKey, cfg.OpenAI.Model, cfg.OpenAI.BaseURL, cfg.Proxy)
	log.Printf("[INFO] generative client: %s", llmClient.Name())

	// Init series provider
	var fetcher provider.Fetcher
	if cfg.DataLab.ClientID != "" && cfg.DataLab.ClientSecret != "" {
		fetcher = provider.NewDataLabFetcher(cfg.DataLab.ClientID, cfg.DataLab.ClientSecret, cfg.DataLab.BaseURL, cfg.Proxy)
		log.Printf("[INFO] series source: %s", fetcher.Name())
	} else {
		log.Println("[INFO] no datalab credentials, series source: synthetic")
	}
	prov := provider.NewProvider(fetcher)

	// Init pipeline
	pl := pipeline.New(
		keyword.NewExtractor(llmClient),
		prov,
		insight.NewSynthesizer(llmClient),
	)

	// Init report renderer
	var reports *report.Renderer
	if cfg.Report.Dir != "" {
		rep, err := report.NewRenderer(cfg.Report.Dir)
		if err != nil {
			log.Printf("[WARN] init report renderer failed, reports disabled: %v", err)
		} else {
			reports = rep
		}
	}

	// Init agents
	trendAgent := agent.NewTrendAgent(pl, st, reports)
	agentRouter := agent.NewRouter(trendAgent)

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init Telegram notifier + polling
	var tn *notifier.TelegramNotifier
	if cfg.Telegram.BotToken != "" && cfg.Telegram.ChatID != "" {
		tn = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
	}

	// Init watchlist scheduler
	sched := scheduler.NewScheduler(ctx, pl, st, tn, cfg.Watch.Keywords)
	if len(cfg.Watch.Keywords) > 0 {
		if err := sched.Register(cfg.Watch.Cron); err != nil {
			log.Fatalf("[FATAL] register watch task: %v", err)
		}
		sched.Start()
		defer sched.Stop()
		log.Printf("[INFO] watching %d keywords (%s)", len(cfg.Watch.Keywords), cfg.Watch.Cron)
	}

	if tn != nil {
		go tn.StartPolling(ctx, func(ctx context.Context, text string) string {
			if text == "/watch" {
				go sched.RunWatchNow()
				return "워치리스트 분석을 시작했습니다."
			}
			return agentRouter.Route(ctx, "telegram", text).ReplyText
		})
		log.Println("[INFO] Telegram polling started")
	}

	// Start HTTP server
	srv := server.NewServer(cfg, agentRouter, st)
	go func() {
		log.Printf("[INFO] HTTP server listening on %s", srv.Addr())
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[FATAL] http server: %v", err)
		}
	}()

	log.Println("[INFO] TrendSentinel is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[ERROR] http shutdown: %v", err)
	}
	log.Println("[INFO] TrendSentinel stopped")
}
